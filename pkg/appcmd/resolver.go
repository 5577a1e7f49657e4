package appcmd

import "github.com/bwmarrin/discordgo"

// ResolveOptions converts an interaction payload's raw option list into
// typed values, keyed by the declared option names. Entity options follow
// one precedence everywhere: live cache hit wins, then the payload's
// resolved snapshot, then a bare id-only reference. The resolver never
// fails on missing data; an entity the client has not observed degrades to
// its id.
//
// guildID is empty in DM context, which narrows the mentionable and user
// fallbacks to user-only resolution.
func ResolveOptions(state StateLookup, guildID string, data discordgo.ApplicationCommandInteractionData, declared []*Option) *ResolvedOptions {
	out := newResolvedOptions(declared)

	res := data.Resolved

	queue := make([]*discordgo.ApplicationCommandInteractionDataOption, len(data.Options))
	copy(queue, data.Options)

	for len(queue) > 0 {
		opt := queue[0]
		queue = queue[1:]

		// subcommand and group markers carry no value of their own
		if len(opt.Options) > 0 {
			queue = append(queue, opt.Options...)
			continue
		}
		if opt.Focused || opt.Value == nil {
			continue
		}

		out.set(opt.Name, resolveValue(state, guildID, res, opt))
	}

	return out
}

func resolveValue(state StateLookup, guildID string, res *discordgo.ApplicationCommandInteractionDataResolved, opt *discordgo.ApplicationCommandInteractionDataOption) any {
	switch opt.Type {
	case discordgo.ApplicationCommandOptionUser:
		return resolveUser(state, guildID, stringValue(opt), res)
	case discordgo.ApplicationCommandOptionChannel:
		return resolveChannel(state, guildID, stringValue(opt), res)
	case discordgo.ApplicationCommandOptionRole:
		return resolveRole(state, guildID, stringValue(opt), res)
	case discordgo.ApplicationCommandOptionMentionable:
		return resolveMentionable(state, guildID, stringValue(opt), res)
	case discordgo.ApplicationCommandOptionAttachment:
		return resolveAttachment(stringValue(opt), res)
	default:
		return opt.Value
	}
}

func stringValue(opt *discordgo.ApplicationCommandInteractionDataOption) string {
	s, _ := opt.Value.(string)
	return s
}

func resolveUser(state StateLookup, guildID, id string, res *discordgo.ApplicationCommandInteractionDataResolved) any {
	if guildID != "" {
		if m := state.Member(guildID, id); m != nil {
			return m
		}
	}
	if u := state.User(id); u != nil {
		return u
	}
	if res != nil {
		if m, ok := res.Members[id]; ok && guildID != "" {
			return hydrateMember(m, guildID, res.Users[id])
		}
		if u, ok := res.Users[id]; ok {
			return u
		}
	}
	return &discordgo.User{ID: id}
}

func resolveChannel(state StateLookup, guildID, id string, res *discordgo.ApplicationCommandInteractionDataResolved) any {
	if ch := state.Channel(id); ch != nil {
		return ch
	}
	if res != nil {
		if ch, ok := res.Channels[id]; ok {
			return ch
		}
	}
	return &discordgo.Channel{ID: id, GuildID: guildID}
}

func resolveRole(state StateLookup, guildID, id string, res *discordgo.ApplicationCommandInteractionDataResolved) any {
	if guildID != "" {
		if role := state.Role(guildID, id); role != nil {
			return role
		}
	}
	if res != nil {
		if role, ok := res.Roles[id]; ok {
			return role
		}
	}
	return &discordgo.Role{ID: id}
}

func resolveMentionable(state StateLookup, guildID, id string, res *discordgo.ApplicationCommandInteractionDataResolved) any {
	if guildID == "" {
		if u := state.User(id); u != nil {
			return u
		}
		if res != nil {
			if u, ok := res.Users[id]; ok {
				return u
			}
		}
		return &discordgo.User{ID: id}
	}

	if m := state.Member(guildID, id); m != nil {
		return m
	}
	if res != nil {
		if m, ok := res.Members[id]; ok {
			return hydrateMember(m, guildID, res.Users[id])
		}
	}
	if role := state.Role(guildID, id); role != nil {
		return role
	}
	if res != nil {
		if role, ok := res.Roles[id]; ok {
			return role
		}
	}
	return &discordgo.User{ID: id}
}

// resolveAttachment always hydrates fresh from the payload; attachments are
// never cached.
func resolveAttachment(id string, res *discordgo.ApplicationCommandInteractionDataResolved) any {
	if res != nil {
		if a, ok := res.Attachments[id]; ok {
			return a
		}
	}
	return &discordgo.MessageAttachment{ID: id}
}

// hydrateMember fills the gaps in a resolved member snapshot: Discord omits
// the user object and guild id from the members map.
func hydrateMember(m *discordgo.Member, guildID string, user *discordgo.User) *discordgo.Member {
	member := *m
	member.GuildID = guildID
	if member.User == nil {
		member.User = user
	}
	return &member
}
