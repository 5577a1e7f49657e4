package appcmd

import (
	"reflect"
	"sort"

	"github.com/bwmarrin/discordgo"
)

// ResolvedOptions is the typed view of one invocation's option values.
// Every declared non-required option is present, nil when not supplied;
// payload values and injected defaults overwrite the nil entries.
type ResolvedOptions struct {
	values map[string]any
}

func newResolvedOptions(declared []*Option) *ResolvedOptions {
	values := make(map[string]any, len(declared))
	for _, o := range declared {
		if !o.Required {
			values[o.Name] = nil
		}
	}
	return &ResolvedOptions{values: values}
}

func (r *ResolvedOptions) set(name string, v any) {
	r.values[name] = v
}

// Get returns the raw value and whether the name is present at all.
func (r *ResolvedOptions) Get(name string) (any, bool) {
	v, ok := r.values[name]
	return v, ok
}

// Has reports whether the name is present (even with a nil value).
func (r *ResolvedOptions) Has(name string) bool {
	_, ok := r.values[name]
	return ok
}

// Len counts the options that actually carry a value.
func (r *ResolvedOptions) Len() int {
	n := 0
	for _, v := range r.values {
		if v != nil {
			n++
		}
	}
	return n
}

// Names returns all present option names, sorted.
func (r *ResolvedOptions) Names() []string {
	names := make([]string, 0, len(r.values))
	for name := range r.values {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Equal reports whether both views hold the same content.
func (r *ResolvedOptions) Equal(other *ResolvedOptions) bool {
	if other == nil {
		return r == nil
	}
	return reflect.DeepEqual(r.values, other.values)
}

// String returns the named string value, or "" when unset.
func (r *ResolvedOptions) String(name string) string {
	if s, ok := r.values[name].(string); ok {
		return s
	}
	return ""
}

// Int returns the named integer value, or 0 when unset. JSON numbers
// arrive as float64 and are narrowed here.
func (r *ResolvedOptions) Int(name string) int64 {
	switch v := r.values[name].(type) {
	case int64:
		return v
	case int:
		return int64(v)
	case float64:
		return int64(v)
	}
	return 0
}

// Float returns the named number value, or 0 when unset.
func (r *ResolvedOptions) Float(name string) float64 {
	switch v := r.values[name].(type) {
	case float64:
		return v
	case int64:
		return float64(v)
	case int:
		return float64(v)
	}
	return 0
}

// Bool returns the named boolean value, or false when unset.
func (r *ResolvedOptions) Bool(name string) bool {
	if b, ok := r.values[name].(bool); ok {
		return b
	}
	return false
}

// User returns the named user. A member value yields its user snapshot.
func (r *ResolvedOptions) User(name string) *discordgo.User {
	switch v := r.values[name].(type) {
	case *discordgo.User:
		return v
	case *discordgo.Member:
		return v.User
	}
	return nil
}

// Member returns the named member, or nil when the value resolved to a
// bare user (DM context or cache miss).
func (r *ResolvedOptions) Member(name string) *discordgo.Member {
	if m, ok := r.values[name].(*discordgo.Member); ok {
		return m
	}
	return nil
}

// Role returns the named role, or nil.
func (r *ResolvedOptions) Role(name string) *discordgo.Role {
	if role, ok := r.values[name].(*discordgo.Role); ok {
		return role
	}
	return nil
}

// Channel returns the named channel, or nil.
func (r *ResolvedOptions) Channel(name string) *discordgo.Channel {
	if ch, ok := r.values[name].(*discordgo.Channel); ok {
		return ch
	}
	return nil
}

// Attachment returns the named attachment, or nil.
func (r *ResolvedOptions) Attachment(name string) *discordgo.MessageAttachment {
	if a, ok := r.values[name].(*discordgo.MessageAttachment); ok {
		return a
	}
	return nil
}

// Mentionable returns the named user-or-role value: a *discordgo.Member,
// *discordgo.Role, or *discordgo.User.
func (r *ResolvedOptions) Mentionable(name string) any {
	return r.values[name]
}
