package botcmds

import (
	"context"

	"github.com/bwmarrin/discordgo"

	"slashkit/internal/storage"
)

// mockStore is an in-memory storage.Store.
type mockStore struct {
	sides      map[string]int
	tags       map[string]storage.Tag // keyed guildID/name
	quotes     []storage.Quote
	listNames  []string
	failWith   error
	savedTags  []storage.Tag
	deleted    []string
	purged     int64
	listPrefix string
}

func newMockStore() *mockStore {
	return &mockStore{
		sides: make(map[string]int),
		tags:  make(map[string]storage.Tag),
	}
}

func (m *mockStore) DiceSides(ctx context.Context, guildID string) (int, error) {
	if m.failWith != nil {
		return 0, m.failWith
	}
	sides, ok := m.sides[guildID]
	if !ok {
		return 0, storage.ErrNotFound
	}
	return sides, nil
}

func (m *mockStore) SetDiceSides(ctx context.Context, guildID string, sides int) error {
	if m.failWith != nil {
		return m.failWith
	}
	m.sides[guildID] = sides
	return nil
}

func (m *mockStore) SaveTag(ctx context.Context, tag storage.Tag) error {
	if m.failWith != nil {
		return m.failWith
	}
	m.savedTags = append(m.savedTags, tag)
	m.tags[tag.GuildID+"/"+tag.Name] = tag
	return nil
}

func (m *mockStore) Tag(ctx context.Context, guildID, name string) (*storage.Tag, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	tag, ok := m.tags[guildID+"/"+name]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return &tag, nil
}

func (m *mockStore) DeleteTag(ctx context.Context, guildID, name string) error {
	if m.failWith != nil {
		return m.failWith
	}
	key := guildID + "/" + name
	if _, ok := m.tags[key]; !ok {
		return storage.ErrNotFound
	}
	delete(m.tags, key)
	m.deleted = append(m.deleted, name)
	return nil
}

func (m *mockStore) PurgeTags(ctx context.Context, guildID string) (int64, error) {
	if m.failWith != nil {
		return 0, m.failWith
	}
	return m.purged, nil
}

func (m *mockStore) ListTags(ctx context.Context, guildID, prefix string, limit int) ([]string, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	m.listPrefix = prefix
	return m.listNames, nil
}

func (m *mockStore) SaveQuote(ctx context.Context, quote storage.Quote) error {
	if m.failWith != nil {
		return m.failWith
	}
	m.quotes = append(m.quotes, quote)
	return nil
}

func (m *mockStore) Close() {}

type mockSession struct {
	responses []*discordgo.InteractionResponse
}

func (m *mockSession) InteractionRespond(i *discordgo.Interaction, r *discordgo.InteractionResponse, opts ...discordgo.RequestOption) error {
	m.responses = append(m.responses, r)
	return nil
}

func (m *mockSession) last() *discordgo.InteractionResponse {
	if len(m.responses) == 0 {
		return nil
	}
	return m.responses[len(m.responses)-1]
}

func (m *mockSession) lastContent() string {
	resp := m.last()
	if resp == nil || resp.Data == nil {
		return ""
	}
	return resp.Data.Content
}

func slashInteraction(name, guildID, userID string, opts ...*discordgo.ApplicationCommandInteractionDataOption) *discordgo.InteractionCreate {
	return &discordgo.InteractionCreate{
		Interaction: &discordgo.Interaction{
			Type:    discordgo.InteractionApplicationCommand,
			GuildID: guildID,
			Member:  &discordgo.Member{User: &discordgo.User{ID: userID}},
			Data: discordgo.ApplicationCommandInteractionData{
				Name:        name,
				CommandType: discordgo.ChatApplicationCommand,
				Options:     opts,
			},
		},
	}
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
