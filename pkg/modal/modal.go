// Package modal builds Discord modal dialogs and reads their submissions.
// A modal is a small form of text inputs shown in response to an
// interaction; the submission comes back as its own interaction carrying
// the entered values keyed by custom id.
package modal

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
)

// ErrNoInputs is returned when a modal is built without any text inputs.
var ErrNoInputs = fmt.Errorf("modal has no inputs")

// TextInput is one field of a modal form.
type TextInput struct {
	CustomID    string
	Label       string
	Style       discordgo.TextInputStyle
	Placeholder string
	Value       string
	Required    bool
	MinLength   int
	MaxLength   int
}

// Short returns a single-line required text input.
func Short(customID, label string) TextInput {
	return TextInput{
		CustomID: customID,
		Label:    label,
		Style:    discordgo.TextInputShort,
		Required: true,
	}
}

// Paragraph returns a multi-line required text input.
func Paragraph(customID, label string) TextInput {
	return TextInput{
		CustomID: customID,
		Label:    label,
		Style:    discordgo.TextInputParagraph,
		Required: true,
	}
}

// Optional clears the required flag.
func (t TextInput) Optional() TextInput {
	t.Required = false
	return t
}

// WithPlaceholder sets the hint text shown in an empty input.
func (t TextInput) WithPlaceholder(placeholder string) TextInput {
	t.Placeholder = placeholder
	return t
}

// WithValue prefills the input.
func (t TextInput) WithValue(value string) TextInput {
	t.Value = value
	return t
}

// WithLengthBounds constrains the accepted input length.
func (t TextInput) WithLengthBounds(min, max int) TextInput {
	t.MinLength = min
	t.MaxLength = max
	return t
}

// Modal is a form dialog. CustomID identifies the submission interaction;
// each input goes into its own action row, which is all Discord currently
// allows for text inputs.
type Modal struct {
	CustomID string
	Title    string
	Inputs   []TextInput
}

// New returns a modal with the given identity and title.
func New(customID, title string, inputs ...TextInput) *Modal {
	return &Modal{CustomID: customID, Title: title, Inputs: inputs}
}

// AddInput appends a text input.
func (m *Modal) AddInput(input TextInput) *Modal {
	m.Inputs = append(m.Inputs, input)
	return m
}

// Response renders the modal as an interaction response.
func (m *Modal) Response() (*discordgo.InteractionResponse, error) {
	if len(m.Inputs) == 0 {
		return nil, fmt.Errorf("modal %q: %w", m.CustomID, ErrNoInputs)
	}

	components := make([]discordgo.MessageComponent, 0, len(m.Inputs))
	for _, input := range m.Inputs {
		components = append(components, discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.TextInput{
					CustomID:    input.CustomID,
					Label:       input.Label,
					Style:       input.Style,
					Placeholder: input.Placeholder,
					Value:       input.Value,
					Required:    input.Required,
					MinLength:   input.MinLength,
					MaxLength:   input.MaxLength,
				},
			},
		})
	}

	return &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseModal,
		Data: &discordgo.InteractionResponseData{
			CustomID:   m.CustomID,
			Title:      m.Title,
			Components: components,
		},
	}, nil
}

// Responder is the slice of the session needed to show a modal.
// *discordgo.Session satisfies it.
type Responder interface {
	InteractionRespond(interaction *discordgo.Interaction, resp *discordgo.InteractionResponse, options ...discordgo.RequestOption) error
}

// Show sends the modal as the response to an interaction.
func (m *Modal) Show(s Responder, i *discordgo.Interaction) error {
	resp, err := m.Response()
	if err != nil {
		return err
	}
	if err := s.InteractionRespond(i, resp); err != nil {
		return fmt.Errorf("show modal %q: %w", m.CustomID, err)
	}
	return nil
}

// Matches reports whether a submission payload belongs to this modal.
func (m *Modal) Matches(data discordgo.ModalSubmitInteractionData) bool {
	return data.CustomID == m.CustomID
}

// Values extracts the submitted input values keyed by input custom id.
// Unmarshaled components arrive as pointers; locally built ones are values,
// so both shapes are accepted.
func Values(data discordgo.ModalSubmitInteractionData) map[string]string {
	values := make(map[string]string)
	for _, row := range data.Components {
		var components []discordgo.MessageComponent
		switch r := row.(type) {
		case *discordgo.ActionsRow:
			components = r.Components
		case discordgo.ActionsRow:
			components = r.Components
		default:
			continue
		}
		for _, component := range components {
			switch input := component.(type) {
			case *discordgo.TextInput:
				values[input.CustomID] = input.Value
			case discordgo.TextInput:
				values[input.CustomID] = input.Value
			}
		}
	}
	return values
}
