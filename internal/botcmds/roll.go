// Package botcmds defines the reference bot's commands on top of the
// appcmd framework: a dice roller, a guild tag collection, and two
// context-menu commands.
package botcmds

import (
	"context"
	"errors"
	"fmt"
	"math/rand"

	"slashkit/internal/storage"
	"slashkit/pkg/appcmd"
)

// NewRoll returns the /roll command. The side count falls back to the
// guild's configured die, then to fallbackSides.
func NewRoll(store storage.Store, fallbackSides int) *appcmd.Command {
	sidesDefault := appcmd.DefaultFunc(func(c *appcmd.Context) (any, error) {
		ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
		defer cancel()

		sides, err := store.DiceSides(ctx, c.GuildID())
		if errors.Is(err, storage.ErrNotFound) {
			return int64(fallbackSides), nil
		}
		if err != nil {
			return nil, err
		}
		return int64(sides), nil
	})

	return appcmd.NewSlash("roll", "Roll a die").
		AddOption(appcmd.IntOption("sides", "How many sides the die has").
			Optional().
			WithMinValue(2).
			WithMaxValue(1000).
			WithDefault(sidesDefault)).
		WithHandler(func(c *appcmd.Context) error {
			sides := c.Options.Int("sides")
			result := rand.Int63n(sides) + 1
			return c.Respond(fmt.Sprintf("🎲 Rolled a d%d: **%d**", sides, result), false)
		})
}

// NewRollConfig returns the /rollconfig command, which stores a guild's
// preferred die size.
func NewRollConfig(store storage.Store) *appcmd.Command {
	return appcmd.NewSlash("rollconfig", "Set this server's default die").
		AddOption(appcmd.IntOption("sides", "Default side count").
			WithMinValue(2).
			WithMaxValue(1000)).
		WithCheck(guildOnly).
		WithHandler(func(c *appcmd.Context) error {
			sides := c.Options.Int("sides")

			ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
			defer cancel()

			if err := store.SetDiceSides(ctx, c.GuildID(), int(sides)); err != nil {
				return fmt.Errorf("store dice sides: %w", err)
			}
			return c.Respond(fmt.Sprintf("Default die set to d%d.", sides), true)
		})
}

// guildOnly rejects invocations outside a guild.
func guildOnly(c *appcmd.Context) (bool, error) {
	return c.GuildID() != "", nil
}
