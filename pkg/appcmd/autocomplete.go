package appcmd

import (
	"fmt"
	"log/slog"

	"github.com/bwmarrin/discordgo"
)

// maxChoices is Discord's cap on choices per autocomplete response.
const maxChoices = 25

// handleAutocomplete answers one autocomplete interaction inline: no
// checks, no defer, no handler chain. Failures are logged; there is
// nothing to show the typing user.
func (d *Dispatcher) handleAutocomplete(s Responder, i *discordgo.InteractionCreate, cmd *Command) {
	if err := d.Autocomplete(s, i, cmd); err != nil {
		slog.Error("Autocomplete failed", "command", cmd.name, "error", err)
	}
}

// Autocomplete runs the focused option's handler with the partial input and
// sends the suggestions as an autocomplete result response.
func (d *Dispatcher) Autocomplete(s Responder, i *discordgo.InteractionCreate, cmd *Command) error {
	data := i.ApplicationCommandData()

	focused := focusedOption(data.Options)
	if focused == nil {
		return fmt.Errorf("command %q: autocomplete payload has no focused option", cmd.name)
	}

	opt := cmd.Option(focused.Name)
	if opt == nil || opt.Autocomplete == nil {
		return fmt.Errorf("command %q: option %q has no autocomplete handler", cmd.name, focused.Name)
	}

	c := &Context{Session: s, Interaction: i, Command: cmd}

	partial := ""
	if focused.Value != nil {
		partial = fmt.Sprint(focused.Value)
	}

	values, err := opt.Autocomplete(c, partial)
	if err != nil {
		return err
	}

	var hookErr error
	defer func() {
		if d.hooks.AfterAutocomplete != nil {
			d.hooks.AfterAutocomplete(c, focused.Name, hookErr)
		}
	}()

	hookErr = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionApplicationCommandAutocompleteResult,
		Data: &discordgo.InteractionResponseData{
			Choices: normalizeChoices(values),
		},
	})
	return hookErr
}

// focusedOption finds the option the user is typing in, descending through
// subcommand and group markers.
func focusedOption(opts []*discordgo.ApplicationCommandInteractionDataOption) *discordgo.ApplicationCommandInteractionDataOption {
	queue := make([]*discordgo.ApplicationCommandInteractionDataOption, len(opts))
	copy(queue, opts)

	for len(queue) > 0 {
		opt := queue[0]
		queue = queue[1:]
		if opt.Focused {
			return opt
		}
		queue = append(queue, opt.Options...)
	}
	return nil
}

// normalizeChoices packages handler results as wire choices: Choice values
// pass through, bare scalars become choices named after their printed form.
func normalizeChoices(values []any) []*discordgo.ApplicationCommandOptionChoice {
	choices := make([]*discordgo.ApplicationCommandOptionChoice, 0, len(values))
	for _, v := range values {
		if len(choices) == maxChoices {
			break
		}
		switch c := v.(type) {
		case Choice:
			choices = append(choices, &discordgo.ApplicationCommandOptionChoice{Name: c.Name, Value: normalizeChoiceValue(c.Value)})
		case *Choice:
			choices = append(choices, &discordgo.ApplicationCommandOptionChoice{Name: c.Name, Value: normalizeChoiceValue(c.Value)})
		default:
			choices = append(choices, &discordgo.ApplicationCommandOptionChoice{Name: fmt.Sprint(v), Value: normalizeChoiceValue(v)})
		}
	}
	return choices
}
