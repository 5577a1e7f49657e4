package appcmd

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
)

// Registry is the table of top-level commands, keyed by identity
// (name, kind, parent). Registration is single-writer: it happens at
// startup, before interaction traffic begins, so there is no lock.
type Registry struct {
	order []*Command
	byKey map[string]*Command
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{byKey: make(map[string]*Command)}
}

// Register adds top-level commands. A command carrying a definition error,
// a parent, or a duplicate identity key is rejected.
func (r *Registry) Register(cmds ...*Command) error {
	for _, cmd := range cmds {
		if err := cmd.Err(); err != nil {
			return err
		}
		if cmd.parent != nil {
			return fmt.Errorf("command %q: %w", cmd.name, ErrNotTopLevel)
		}
		key := cmd.Key()
		if _, exists := r.byKey[key]; exists {
			return fmt.Errorf("command %q: %w", cmd.name, ErrDuplicateCommand)
		}
		r.byKey[key] = cmd
		r.order = append(r.order, cmd)
	}
	return nil
}

// Unregister detaches a command from the registry.
func (r *Registry) Unregister(cmd *Command) {
	key := cmd.Key()
	if _, ok := r.byKey[key]; !ok {
		return
	}
	delete(r.byKey, key)
	for i, c := range r.order {
		if c == cmd {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
}

// Lookup returns the top-level command with the given name and kind, or nil.
func (r *Registry) Lookup(name string, kind discordgo.ApplicationCommandType) *Command {
	return r.byKey[fmt.Sprintf("%d:%s", kind, name)]
}

// All returns the registered top-level commands in registration order.
func (r *Registry) All() []*Command {
	out := make([]*Command, len(r.order))
	copy(out, r.order)
	return out
}

// Match finds the command (possibly a subcommand) an inbound payload
// targets, or nil when nothing matches.
func (r *Registry) Match(data discordgo.ApplicationCommandInteractionData, guildID string) *Command {
	for _, cmd := range r.order {
		if matched := cmd.Match(data, guildID); matched != nil {
			return matched
		}
	}
	return nil
}

// Build serializes every registered command, split into the globally
// registered set and the per-guild sets, ready for bulk registration.
func (r *Registry) Build() (global []*discordgo.ApplicationCommand, byGuild map[string][]*discordgo.ApplicationCommand, err error) {
	byGuild = make(map[string][]*discordgo.ApplicationCommand)

	for _, cmd := range r.order {
		payload, err := cmd.Build()
		if err != nil {
			return nil, nil, err
		}
		if cmd.IsGlobal() {
			global = append(global, payload)
			continue
		}
		for _, guildID := range cmd.GuildIDs() {
			byGuild[guildID] = append(byGuild[guildID], payload)
		}
	}

	return global, byGuild, nil
}
