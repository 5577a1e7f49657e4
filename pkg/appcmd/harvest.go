package appcmd

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/bwmarrin/discordgo"
)

// harvestOptions walks an options struct's exported fields in declaration
// order and produces the command's option list. The field's Go type supplies
// the option type, a pointer field marks the option not required, and tags
// carry the rest:
//
//	option      name override (default: lowercased field name); "-" skips
//	description option description
//	choices     comma-separated fixed choices (scalar options only)
//	channels    comma-separated channel-type filters (channel options only)
//	min, max    numeric bounds (integer/number options only)
//	type        explicit wire type; must agree with the field's Go type
func harvestOptions(spec any) ([]*Option, error) {
	t := reflect.TypeOf(spec)
	if t == nil {
		return nil, fmt.Errorf("%w: nil options spec", ErrInvalidOptionType)
	}
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w: options spec must be a struct, got %s", ErrInvalidOptionType, t)
	}

	var options []*Option
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() || field.Tag.Get("option") == "-" {
			continue
		}

		opt, err := harvestField(field)
		if err != nil {
			return nil, err
		}
		options = append(options, opt)
	}

	return options, nil
}

func harvestField(field reflect.StructField) (*Option, error) {
	name := field.Tag.Get("option")
	if name == "" {
		name = strings.ToLower(field.Name)
	}

	opt := &Option{
		Name:        name,
		Description: field.Tag.Get("description"),
		Required:    true,
	}

	ft := field.Type
	if ft.Kind() == reflect.Pointer {
		opt.Required = false
		ft = ft.Elem()
		if ft.Kind() == reflect.Pointer {
			return nil, fmt.Errorf("field %s: %w", field.Name, ErrInvalidOptional)
		}
	}

	resolved, channelTypes, err := resolveOptionType(ft)
	if err != nil {
		return nil, fmt.Errorf("field %s: %w", field.Name, err)
	}
	opt.Type = resolved
	opt.ChannelTypes = channelTypes

	if tag := field.Tag.Get("type"); tag != "" {
		explicit, ok := optionTypeNames[tag]
		if !ok {
			return nil, fmt.Errorf("field %s: %w: unknown type tag %q", field.Name, ErrInvalidOptionType, tag)
		}
		if explicit != resolved {
			return nil, fmt.Errorf("field %s: %w: type tag %q does not match field type %s",
				field.Name, ErrInvalidOptionType, tag, field.Type)
		}
	}

	if tag := field.Tag.Get("channels"); tag != "" {
		if opt.Type != discordgo.ApplicationCommandOptionChannel {
			return nil, fmt.Errorf("field %s: %w: channels tag on non-channel option", field.Name, ErrInvalidOptionType)
		}
		for _, part := range strings.Split(tag, ",") {
			ct, ok := channelTypeNames[strings.TrimSpace(part)]
			if !ok {
				return nil, fmt.Errorf("field %s: %w: unknown channel type %q", field.Name, ErrInvalidOptionType, part)
			}
			if !containsChannelType(opt.ChannelTypes, ct) {
				opt.ChannelTypes = append(opt.ChannelTypes, ct)
			}
		}
	}

	if tag := field.Tag.Get("choices"); tag != "" {
		choices, err := parseChoices(tag, opt.Type)
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", field.Name, err)
		}
		opt.Choices = choices
	}

	if tag := field.Tag.Get("min"); tag != "" {
		v, err := parseBound(tag, opt.Type)
		if err != nil {
			return nil, fmt.Errorf("field %s: min: %w", field.Name, err)
		}
		opt.MinValue = &v
	}
	if tag := field.Tag.Get("max"); tag != "" {
		v, err := parseBound(tag, opt.Type)
		if err != nil {
			return nil, fmt.Errorf("field %s: max: %w", field.Name, err)
		}
		opt.MaxValue = &v
	}

	return opt, nil
}

// parseChoices converts the choices tag into typed choice values. All values
// must parse as the option's scalar type; non-scalar options take no choices.
func parseChoices(tag string, t discordgo.ApplicationCommandOptionType) ([]Choice, error) {
	var choices []Choice
	for _, part := range strings.Split(tag, ",") {
		raw := strings.TrimSpace(part)
		switch t {
		case discordgo.ApplicationCommandOptionString:
			choices = append(choices, Choice{Name: raw, Value: raw})
		case discordgo.ApplicationCommandOptionInteger:
			v, err := strconv.ParseInt(raw, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: %q is not an integer", ErrInvalidChoice, raw)
			}
			choices = append(choices, Choice{Name: raw, Value: v})
		case discordgo.ApplicationCommandOptionNumber:
			v, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: %q is not a number", ErrInvalidChoice, raw)
			}
			choices = append(choices, Choice{Name: raw, Value: v})
		default:
			return nil, fmt.Errorf("%w: choices on non-scalar option", ErrInvalidChoice)
		}
	}
	return choices, nil
}

func parseBound(tag string, t discordgo.ApplicationCommandOptionType) (float64, error) {
	if t != discordgo.ApplicationCommandOptionInteger && t != discordgo.ApplicationCommandOptionNumber {
		return 0, fmt.Errorf("%w: bounds on non-numeric option", ErrInvalidOptionType)
	}
	v, err := strconv.ParseFloat(tag, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not numeric", ErrInvalidOptionType, tag)
	}
	return v, nil
}

func containsChannelType(types []discordgo.ChannelType, ct discordgo.ChannelType) bool {
	for _, t := range types {
		if t == ct {
			return true
		}
	}
	return false
}
