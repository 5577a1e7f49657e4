package appcmd

import (
	"fmt"
	"reflect"

	"github.com/bwmarrin/discordgo"
)

// Mentionable marks a declared option that accepts either a user or a role.
// The resolved value is a *discordgo.Member, *discordgo.Role, or
// *discordgo.User depending on what the invoker picked.
type Mentionable struct{}

// Channel-subtype markers. Declaring an option with one of these resolves
// to the channel option type with the matching channel-type filter applied.
type (
	TextChannel     struct{}
	VoiceChannel    struct{}
	CategoryChannel struct{}
	StageChannel    struct{}
)

var (
	userType        = reflect.TypeOf(discordgo.User{})
	memberType      = reflect.TypeOf(discordgo.Member{})
	roleType        = reflect.TypeOf(discordgo.Role{})
	channelType     = reflect.TypeOf(discordgo.Channel{})
	attachmentType  = reflect.TypeOf(discordgo.MessageAttachment{})
	mentionableType = reflect.TypeOf(Mentionable{})

	channelSubtypes = map[reflect.Type]discordgo.ChannelType{
		reflect.TypeOf(TextChannel{}):     discordgo.ChannelTypeGuildText,
		reflect.TypeOf(VoiceChannel{}):    discordgo.ChannelTypeGuildVoice,
		reflect.TypeOf(CategoryChannel{}): discordgo.ChannelTypeGuildCategory,
		reflect.TypeOf(StageChannel{}):    discordgo.ChannelTypeGuildStageVoice,
	}
)

// resolveOptionType maps a Go type to its wire option-type code. The mapping
// is closed: anything outside it is a definition error. Channel subtype
// markers additionally yield their implied channel-type filter.
func resolveOptionType(t reflect.Type) (discordgo.ApplicationCommandOptionType, []discordgo.ChannelType, error) {
	switch t.Kind() {
	case reflect.String:
		return discordgo.ApplicationCommandOptionString, nil, nil
	case reflect.Int, reflect.Int64:
		return discordgo.ApplicationCommandOptionInteger, nil, nil
	case reflect.Float64:
		return discordgo.ApplicationCommandOptionNumber, nil, nil
	case reflect.Bool:
		return discordgo.ApplicationCommandOptionBoolean, nil, nil
	}

	switch t {
	case userType, memberType:
		return discordgo.ApplicationCommandOptionUser, nil, nil
	case roleType:
		return discordgo.ApplicationCommandOptionRole, nil, nil
	case mentionableType:
		return discordgo.ApplicationCommandOptionMentionable, nil, nil
	case channelType:
		return discordgo.ApplicationCommandOptionChannel, nil, nil
	case attachmentType:
		return discordgo.ApplicationCommandOptionAttachment, nil, nil
	}

	if ct, ok := channelSubtypes[t]; ok {
		return discordgo.ApplicationCommandOptionChannel, []discordgo.ChannelType{ct}, nil
	}

	return 0, nil, fmt.Errorf("%w: %s", ErrInvalidOptionType, t)
}

// optionTypeNames maps the explicit `type` tag values to wire codes.
var optionTypeNames = map[string]discordgo.ApplicationCommandOptionType{
	"string":      discordgo.ApplicationCommandOptionString,
	"integer":     discordgo.ApplicationCommandOptionInteger,
	"number":      discordgo.ApplicationCommandOptionNumber,
	"boolean":     discordgo.ApplicationCommandOptionBoolean,
	"user":        discordgo.ApplicationCommandOptionUser,
	"channel":     discordgo.ApplicationCommandOptionChannel,
	"role":        discordgo.ApplicationCommandOptionRole,
	"mentionable": discordgo.ApplicationCommandOptionMentionable,
	"attachment":  discordgo.ApplicationCommandOptionAttachment,
}

// channelTypeNames maps the `channels` tag values to channel-type filters.
var channelTypeNames = map[string]discordgo.ChannelType{
	"text":     discordgo.ChannelTypeGuildText,
	"voice":    discordgo.ChannelTypeGuildVoice,
	"category": discordgo.ChannelTypeGuildCategory,
	"stage":    discordgo.ChannelTypeGuildStageVoice,
	"news":     discordgo.ChannelTypeGuildNews,
}
