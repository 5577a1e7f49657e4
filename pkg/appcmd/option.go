// Package appcmd is a declarative application-command layer for discordgo.
// Commands are declared once at startup (builder calls plus struct-field
// harvesting), serialized into the registration payload Discord expects,
// matched against inbound interactions, and executed through a layered
// check/callback/error pipeline with autocomplete support.
package appcmd

import (
	"fmt"
	"sort"

	"github.com/bwmarrin/discordgo"
)

// Choice is one predefined value of an option. The value must be a string,
// int64, or float64 matching the parent option's type.
type Choice struct {
	Name  string
	Value any
}

// DefaultProvider computes a default for an optional option that the user
// did not supply. It runs inside the dispatch pipeline with the invocation
// context, after payload values have been resolved.
type DefaultProvider interface {
	Default(c *Context) (any, error)
}

// DefaultFunc is the function form of DefaultProvider.
type DefaultFunc func(c *Context) (any, error)

// AutocompleteFunc produces suggestions for a focused option while the user
// is still typing. Returned values may be Choice values or bare scalars;
// scalars are wrapped into choices named after their printed form.
type AutocompleteFunc func(c *Context, partial string) ([]any, error)

// Option describes one parameter of a slash command.
type Option struct {
	Type         discordgo.ApplicationCommandOptionType
	Name         string
	Description  string
	Required     bool
	Choices      []Choice
	Sub          []*Option // subcommand/group entries only
	Default      any       // plain value, DefaultFunc, or DefaultProvider
	ChannelTypes []discordgo.ChannelType
	MinValue     *float64
	MaxValue     *float64
	Autocomplete AutocompleteFunc
}

// NewOption returns a required option of the given wire type.
func NewOption(t discordgo.ApplicationCommandOptionType, name, description string) *Option {
	return &Option{Type: t, Name: name, Description: description, Required: true}
}

// StringOption returns a required string option.
func StringOption(name, description string) *Option {
	return NewOption(discordgo.ApplicationCommandOptionString, name, description)
}

// IntOption returns a required integer option.
func IntOption(name, description string) *Option {
	return NewOption(discordgo.ApplicationCommandOptionInteger, name, description)
}

// NumberOption returns a required floating-point option.
func NumberOption(name, description string) *Option {
	return NewOption(discordgo.ApplicationCommandOptionNumber, name, description)
}

// BoolOption returns a required boolean option.
func BoolOption(name, description string) *Option {
	return NewOption(discordgo.ApplicationCommandOptionBoolean, name, description)
}

// UserOption returns a required user option.
func UserOption(name, description string) *Option {
	return NewOption(discordgo.ApplicationCommandOptionUser, name, description)
}

// RoleOption returns a required role option.
func RoleOption(name, description string) *Option {
	return NewOption(discordgo.ApplicationCommandOptionRole, name, description)
}

// ChannelOption returns a required channel option.
func ChannelOption(name, description string) *Option {
	return NewOption(discordgo.ApplicationCommandOptionChannel, name, description)
}

// MentionableOption returns a required user-or-role option.
func MentionableOption(name, description string) *Option {
	return NewOption(discordgo.ApplicationCommandOptionMentionable, name, description)
}

// AttachmentOption returns a required attachment option.
func AttachmentOption(name, description string) *Option {
	return NewOption(discordgo.ApplicationCommandOptionAttachment, name, description)
}

// Optional marks the option as not required.
func (o *Option) Optional() *Option {
	o.Required = false
	return o
}

// WithChoices sets the option's fixed choice list.
func (o *Option) WithChoices(choices ...Choice) *Option {
	o.Choices = choices
	return o
}

// WithDefault sets the value injected when an optional option was not
// supplied: a plain value, a DefaultFunc, or a DefaultProvider.
func (o *Option) WithDefault(def any) *Option {
	o.Default = def
	return o
}

// WithChannelTypes restricts a channel option to the given channel types.
func (o *Option) WithChannelTypes(types ...discordgo.ChannelType) *Option {
	o.ChannelTypes = append(o.ChannelTypes, types...)
	return o
}

// WithMinValue sets the lower bound for integer/number options.
func (o *Option) WithMinValue(v float64) *Option {
	o.MinValue = &v
	return o
}

// WithMaxValue sets the upper bound for integer/number options.
func (o *Option) WithMaxValue(v float64) *Option {
	o.MaxValue = &v
	return o
}

// WithAutocomplete attaches an autocomplete handler to the option.
func (o *Option) WithAutocomplete(fn AutocompleteFunc) *Option {
	o.Autocomplete = fn
	return o
}

// choiceType returns the option type implied by a choice value.
func choiceType(v any) (discordgo.ApplicationCommandOptionType, bool) {
	switch v.(type) {
	case string:
		return discordgo.ApplicationCommandOptionString, true
	case int, int64:
		return discordgo.ApplicationCommandOptionInteger, true
	case float64:
		return discordgo.ApplicationCommandOptionNumber, true
	}
	return 0, false
}

// validate checks the invariants that must hold before serialization.
func (o *Option) validate() error {
	if o.Type == 0 {
		return fmt.Errorf("option %q: %w", o.Name, ErrMissingOptionType)
	}

	for _, c := range o.Choices {
		ct, ok := choiceType(c.Value)
		if !ok {
			return fmt.Errorf("option %q, choice %q: %w: value must be string, int64, or float64",
				o.Name, c.Name, ErrInvalidChoice)
		}
		if ct != o.Type {
			return fmt.Errorf("option %q, choice %q: %w: value type does not match option type",
				o.Name, c.Name, ErrInvalidChoice)
		}
	}

	if len(o.Choices) > 0 && o.Autocomplete != nil {
		return fmt.Errorf("option %q: %w: choices and autocomplete are mutually exclusive",
			o.Name, ErrInvalidChoice)
	}

	if o.Default != nil {
		switch o.Default.(type) {
		case DefaultProvider, DefaultFunc, func(*Context) (any, error):
		case string, bool, int, int64, float64:
		default:
			return fmt.Errorf("option %q: %w", o.Name, ErrInvalidDefault)
		}
	}

	return nil
}

// build serializes the option, validating it first.
func (o *Option) build() (*discordgo.ApplicationCommandOption, error) {
	if err := o.validate(); err != nil {
		return nil, err
	}

	out := &discordgo.ApplicationCommandOption{
		Type:         o.Type,
		Name:         o.Name,
		Description:  o.Description,
		ChannelTypes: o.ChannelTypes,
		Autocomplete: o.Autocomplete != nil,
		MinValue:     o.MinValue,
	}

	switch o.Type {
	case discordgo.ApplicationCommandOptionSubCommand, discordgo.ApplicationCommandOptionSubCommandGroup:
		// subcommand markers carry no required flag
	default:
		out.Required = o.Required
	}

	if o.MaxValue != nil {
		out.MaxValue = *o.MaxValue
	}

	for _, c := range o.Choices {
		out.Choices = append(out.Choices, &discordgo.ApplicationCommandOptionChoice{
			Name:  c.Name,
			Value: normalizeChoiceValue(c.Value),
		})
	}

	for _, sub := range o.Sub {
		built, err := sub.build()
		if err != nil {
			return nil, err
		}
		out.Options = append(out.Options, built)
	}

	return out, nil
}

// normalizeChoiceValue widens plain ints so the wire value type is stable.
func normalizeChoiceValue(v any) any {
	if i, ok := v.(int); ok {
		return int64(i)
	}
	return v
}

// buildOptions serializes a declared option list with required options
// first. The stable sort is a wire-format requirement, not cosmetics.
func buildOptions(opts []*Option) ([]*discordgo.ApplicationCommandOption, error) {
	ordered := make([]*Option, len(opts))
	copy(ordered, opts)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Required && !ordered[j].Required
	})

	out := make([]*discordgo.ApplicationCommandOption, 0, len(ordered))
	for _, o := range ordered {
		built, err := o.build()
		if err != nil {
			return nil, err
		}
		out = append(out, built)
	}
	return out, nil
}
