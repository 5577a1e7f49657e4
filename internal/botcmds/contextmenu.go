package botcmds

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"slashkit/internal/storage"
	"slashkit/pkg/appcmd"
)

var titleCaser = cases.Title(language.English)

// NewSaveQuote returns the "Save Quote" message command: right-click a
// message to store its content.
func NewSaveQuote(store storage.Store) *appcmd.Command {
	return appcmd.NewMessage("Save Quote").
		WithCheck(guildOnly).
		WithHandler(func(c *appcmd.Context) error {
			msg := c.TargetMessage
			if msg == nil || msg.Content == "" {
				return c.Respond("That message has no text to save.", true)
			}

			quote := storage.Quote{
				GuildID: c.GuildID(),
				Content: msg.Content,
				SavedBy: c.Invoker().ID,
			}
			if msg.Author != nil {
				quote.AuthorID = msg.Author.ID
			}

			ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
			defer cancel()

			if err := store.SaveQuote(ctx, quote); err != nil {
				return fmt.Errorf("save quote: %w", err)
			}

			return c.Respond("Quote saved.", true)
		})
}

// NewMemberInfo returns the "Member Info" user command: right-click a user
// for a short profile card.
func NewMemberInfo() *appcmd.Command {
	return appcmd.NewUser("Member Info").
		WithHandler(func(c *appcmd.Context) error {
			user := c.TargetUser
			if user == nil {
				return c.Respond("Could not resolve that user.", true)
			}

			var b strings.Builder
			fmt.Fprintf(&b, "**%s** (`%s`)\n", titleCaser.String(user.Username), user.ID)

			if member := c.TargetMember; member != nil {
				if member.Nick != "" {
					fmt.Fprintf(&b, "Known here as **%s**\n", member.Nick)
				}
				if !member.JoinedAt.IsZero() {
					fmt.Fprintf(&b, "Joined <t:%d:R>\n", member.JoinedAt.Unix())
				}
				if len(member.Roles) > 0 {
					fmt.Fprintf(&b, "%d roles\n", len(member.Roles))
				}
			}

			return c.Respond(b.String(), true)
		})
}
