package appcmd

import "github.com/bwmarrin/discordgo"

// StateLookup is the narrow contract this package needs from the gateway's
// entity cache. Every method returns nil on a miss; the option resolver
// then falls back to the interaction's resolved payload or a bare id-only
// reference.
type StateLookup interface {
	Guild(guildID string) *discordgo.Guild
	Channel(channelID string) *discordgo.Channel
	Member(guildID, userID string) *discordgo.Member
	User(userID string) *discordgo.User
	Role(guildID, roleID string) *discordgo.Role
}

// sessionState adapts *discordgo.State to StateLookup.
type sessionState struct {
	state *discordgo.State
}

// StateOf wraps a session's cache as a StateLookup.
func StateOf(s *discordgo.Session) StateLookup {
	return &sessionState{state: s.State}
}

func (s *sessionState) Guild(guildID string) *discordgo.Guild {
	g, err := s.state.Guild(guildID)
	if err != nil {
		return nil
	}
	return g
}

func (s *sessionState) Channel(channelID string) *discordgo.Channel {
	ch, err := s.state.Channel(channelID)
	if err != nil {
		return nil
	}
	return ch
}

func (s *sessionState) Member(guildID, userID string) *discordgo.Member {
	m, err := s.state.Member(guildID, userID)
	if err != nil {
		return nil
	}
	return m
}

// User has no dedicated cache in discordgo's state; members carry their
// user snapshots instead, so a global lookup is always a miss.
func (s *sessionState) User(userID string) *discordgo.User {
	return nil
}

func (s *sessionState) Role(guildID, roleID string) *discordgo.Role {
	role, err := s.state.Role(guildID, roleID)
	if err != nil {
		return nil
	}
	return role
}

// NopState is a StateLookup with an empty cache. Useful in tests and for
// purely resolved-payload-driven resolution.
type NopState struct{}

func (NopState) Guild(string) *discordgo.Guild           { return nil }
func (NopState) Channel(string) *discordgo.Channel       { return nil }
func (NopState) Member(_, _ string) *discordgo.Member    { return nil }
func (NopState) User(string) *discordgo.User             { return nil }
func (NopState) Role(_, _ string) *discordgo.Role        { return nil }
