package main

import (
	"fmt"
	"log/slog"

	"github.com/bwmarrin/discordgo"

	"slashkit/internal/botcmds"
	"slashkit/internal/config"
	"slashkit/internal/storage"
	"slashkit/pkg/appcmd"
)

// BuildRegistry assembles the bot's command set. When the config names
// guilds, every command is scoped to them; otherwise everything registers
// globally.
func BuildRegistry(cfg *config.Config, store storage.Store) (*appcmd.Registry, error) {
	registry := appcmd.NewRegistry()

	cmds := []*appcmd.Command{
		botcmds.NewRoll(store, cfg.DefaultDiceSides),
		botcmds.NewRollConfig(store),
		botcmds.NewSaveQuote(store),
		botcmds.NewMemberInfo(),
	}
	scopeCommands(cfg, cmds)
	if err := registry.Register(cmds...); err != nil {
		return nil, fmt.Errorf("register commands: %w", err)
	}

	tagCog := botcmds.NewTagCog(store)
	scopeCommands(cfg, tagCog.Commands())
	if err := registry.AttachCog(tagCog); err != nil {
		return nil, fmt.Errorf("attach tag cog: %w", err)
	}

	return registry, nil
}

func scopeCommands(cfg *config.Config, cmds []*appcmd.Command) {
	if len(cfg.GuildIDs) == 0 {
		return
	}
	for _, cmd := range cmds {
		cmd.WithGuilds(cfg.GuildIDs...)
	}
}

// RegisterCommands pushes the built payloads to Discord, returning the
// created commands keyed by guild ("" for global) for later cleanup. A
// failed create is logged and skipped.
func RegisterCommands(session CommandSession, appID string, global []*discordgo.ApplicationCommand, byGuild map[string][]*discordgo.ApplicationCommand) map[string][]*discordgo.ApplicationCommand {
	registered := make(map[string][]*discordgo.ApplicationCommand)

	create := func(guildID string, cmds []*discordgo.ApplicationCommand) {
		for _, cmd := range cmds {
			created, err := session.ApplicationCommandCreate(appID, guildID, cmd)
			if err != nil {
				slog.Error("Cannot create command", "name", cmd.Name, "guild", guildID, "error", err)
				continue
			}
			registered[guildID] = append(registered[guildID], created)
			slog.Info("Registered command", "name", cmd.Name, "guild", guildID)
		}
	}

	create("", global)
	for guildID, cmds := range byGuild {
		create(guildID, cmds)
	}

	return registered
}

// CleanupCommands deletes previously registered commands.
func CleanupCommands(session CommandSession, appID string, registered map[string][]*discordgo.ApplicationCommand) {
	for guildID, cmds := range registered {
		for _, cmd := range cmds {
			if cmd == nil {
				continue
			}
			if err := session.ApplicationCommandDelete(appID, guildID, cmd.ID); err != nil {
				slog.Error("Cannot delete command", "name", cmd.Name, "guild", guildID, "error", err)
			}
		}
	}
}
