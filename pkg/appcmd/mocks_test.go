package appcmd

import (
	"github.com/bwmarrin/discordgo"
)

type mockSession struct {
	responses   []*discordgo.InteractionResponse
	respondFunc func(i *discordgo.Interaction, r *discordgo.InteractionResponse) error
}

func (m *mockSession) InteractionRespond(i *discordgo.Interaction, r *discordgo.InteractionResponse, opts ...discordgo.RequestOption) error {
	if m.respondFunc != nil {
		return m.respondFunc(i, r)
	}
	m.responses = append(m.responses, r)
	return nil
}

func (m *mockSession) last() *discordgo.InteractionResponse {
	if len(m.responses) == 0 {
		return nil
	}
	return m.responses[len(m.responses)-1]
}

// mockState is an in-memory StateLookup; members are keyed guildID/userID,
// roles guildID/roleID.
type mockState struct {
	guilds   map[string]*discordgo.Guild
	channels map[string]*discordgo.Channel
	members  map[string]*discordgo.Member
	users    map[string]*discordgo.User
	roles    map[string]*discordgo.Role
}

func (m *mockState) Guild(id string) *discordgo.Guild     { return m.guilds[id] }
func (m *mockState) Channel(id string) *discordgo.Channel { return m.channels[id] }
func (m *mockState) User(id string) *discordgo.User       { return m.users[id] }

func (m *mockState) Member(guildID, userID string) *discordgo.Member {
	return m.members[guildID+"/"+userID]
}

func (m *mockState) Role(guildID, roleID string) *discordgo.Role {
	return m.roles[guildID+"/"+roleID]
}

func makeInteraction(itype discordgo.InteractionType, guildID string, data discordgo.ApplicationCommandInteractionData) *discordgo.InteractionCreate {
	return &discordgo.InteractionCreate{
		Interaction: &discordgo.Interaction{
			Type:    itype,
			GuildID: guildID,
			Data:    data,
		},
	}
}

func makeCommandInteraction(name string, kind discordgo.ApplicationCommandType, guildID string, opts ...*discordgo.ApplicationCommandInteractionDataOption) *discordgo.InteractionCreate {
	return makeInteraction(discordgo.InteractionApplicationCommand, guildID, discordgo.ApplicationCommandInteractionData{
		Name:        name,
		CommandType: kind,
		Options:     opts,
	})
}

func strOpt(name, value string) *discordgo.ApplicationCommandInteractionDataOption {
	return &discordgo.ApplicationCommandInteractionDataOption{
		Type:  discordgo.ApplicationCommandOptionString,
		Name:  name,
		Value: value,
	}
}

func intOpt(name string, value float64) *discordgo.ApplicationCommandInteractionDataOption {
	return &discordgo.ApplicationCommandInteractionDataOption{
		Type:  discordgo.ApplicationCommandOptionInteger,
		Name:  name,
		Value: value,
	}
}

func subOpt(name string, opts ...*discordgo.ApplicationCommandInteractionDataOption) *discordgo.ApplicationCommandInteractionDataOption {
	return &discordgo.ApplicationCommandInteractionDataOption{
		Type:    discordgo.ApplicationCommandOptionSubCommand,
		Name:    name,
		Options: opts,
	}
}

func groupOpt(name string, opts ...*discordgo.ApplicationCommandInteractionDataOption) *discordgo.ApplicationCommandInteractionDataOption {
	return &discordgo.ApplicationCommandInteractionDataOption{
		Type:    discordgo.ApplicationCommandOptionSubCommandGroup,
		Name:    name,
		Options: opts,
	}
}
