package appcmd

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
)

// Responder is the slice of the Discord session the pipeline needs to send
// interaction responses. *discordgo.Session satisfies it.
type Responder interface {
	InteractionRespond(interaction *discordgo.Interaction, resp *discordgo.InteractionResponse, options ...discordgo.RequestOption) error
}

// Context carries one matched invocation through the pipeline. It lives for
// exactly one interaction: a fresh context per dispatch, discarded when the
// pipeline finishes.
type Context struct {
	Session     Responder
	Interaction *discordgo.InteractionCreate
	Command     *Command

	// Options is set for slash commands.
	Options *ResolvedOptions

	// TargetMessage is set for message commands.
	TargetMessage *discordgo.Message

	// TargetUser and TargetMember are set for user commands; TargetMember
	// is nil outside guilds or on a cache/payload miss.
	TargetUser   *discordgo.User
	TargetMember *discordgo.Member

	responded bool
}

// GuildID returns the guild the interaction came from, or "" in DMs.
func (c *Context) GuildID() string {
	return c.Interaction.GuildID
}

// Invoker returns the user who triggered the interaction.
func (c *Context) Invoker() *discordgo.User {
	if c.Interaction.Member != nil {
		return c.Interaction.Member.User
	}
	return c.Interaction.User
}

// Responded reports whether a response has been sent on this context.
func (c *Context) Responded() bool { return c.responded }

// RespondWith sends a raw interaction response.
func (c *Context) RespondWith(resp *discordgo.InteractionResponse) error {
	if err := c.Session.InteractionRespond(c.Interaction.Interaction, resp); err != nil {
		return fmt.Errorf("interaction response: %w", err)
	}
	c.responded = true
	return nil
}

// Respond sends a plain message response, optionally ephemeral.
func (c *Context) Respond(content string, ephemeral bool) error {
	var flags discordgo.MessageFlags
	if ephemeral {
		flags = discordgo.MessageFlagsEphemeral
	}

	return c.RespondWith(&discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
			Flags:   flags,
		},
	})
}

// Defer acknowledges the interaction without a visible message, keeping it
// alive until a followup arrives.
func (c *Context) Defer() error {
	return c.RespondWith(&discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
	})
}

// newContext builds the per-kind invocation context for a matched command.
func newContext(s Responder, state StateLookup, i *discordgo.InteractionCreate, cmd *Command) *Context {
	c := &Context{
		Session:     s,
		Interaction: i,
		Command:     cmd,
	}

	data := i.ApplicationCommandData()

	switch cmd.kind {
	case discordgo.ChatApplicationCommand:
		c.Options = ResolveOptions(state, i.GuildID, data, cmd.options)
	case discordgo.MessageApplicationCommand:
		c.TargetMessage = targetMessage(data)
	case discordgo.UserApplicationCommand:
		c.TargetUser, c.TargetMember = targetUser(state, i.GuildID, data)
	}

	return c
}

func targetMessage(data discordgo.ApplicationCommandInteractionData) *discordgo.Message {
	if data.Resolved != nil {
		if msg, ok := data.Resolved.Messages[data.TargetID]; ok {
			return msg
		}
	}
	return &discordgo.Message{ID: data.TargetID}
}

func targetUser(state StateLookup, guildID string, data discordgo.ApplicationCommandInteractionData) (*discordgo.User, *discordgo.Member) {
	resolved := resolveUser(state, guildID, data.TargetID, data.Resolved)
	switch v := resolved.(type) {
	case *discordgo.Member:
		return v.User, v
	case *discordgo.User:
		return v, nil
	}
	return &discordgo.User{ID: data.TargetID}, nil
}
