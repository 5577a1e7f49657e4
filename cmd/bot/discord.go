package main

import (
	"log/slog"

	"slashkit/internal/config"

	"github.com/bwmarrin/discordgo"
)

func NewDiscordSession(cfg *config.Config) (*discordgo.Session, error) {
	discord, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		slog.Error("Failed to create discord session", "error", err)
		return nil, err
	}

	// slash commands arrive as interactions; no message intents needed
	discord.Identify.Intents = discordgo.IntentsGuilds

	return discord, nil
}
