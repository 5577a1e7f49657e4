package appcmd

import (
	"testing"

	"github.com/bwmarrin/discordgo"
)

func entityOpt(t discordgo.ApplicationCommandOptionType, name, id string) *discordgo.ApplicationCommandInteractionDataOption {
	return &discordgo.ApplicationCommandInteractionDataOption{Type: t, Name: name, Value: id}
}

func TestResolveOptions_ScalarsPassThrough(t *testing.T) {
	data := discordgo.ApplicationCommandInteractionData{
		Options: []*discordgo.ApplicationCommandInteractionDataOption{
			strOpt("name", "greeting"),
			intOpt("count", 3),
			{Type: discordgo.ApplicationCommandOptionBoolean, Name: "loud", Value: true},
		},
	}

	opts := ResolveOptions(NopState{}, "g1", data, nil)

	if got := opts.String("name"); got != "greeting" {
		t.Errorf("expected greeting, got %q", got)
	}
	if got := opts.Int("count"); got != 3 {
		t.Errorf("expected 3, got %d", got)
	}
	if !opts.Bool("loud") {
		t.Error("expected loud to be true")
	}
}

func TestResolveOptions_FlattensSubcommandPayload(t *testing.T) {
	data := discordgo.ApplicationCommandInteractionData{
		Options: []*discordgo.ApplicationCommandInteractionDataOption{
			groupOpt("manage", subOpt("remove", strOpt("name", "greeting"))),
		},
	}

	opts := ResolveOptions(NopState{}, "g1", data, nil)

	if got := opts.String("name"); got != "greeting" {
		t.Errorf("expected nested option value, got %q", got)
	}
	if opts.Has("manage") || opts.Has("remove") {
		t.Error("subcommand markers must not appear as values")
	}
}

func TestResolveOptions_SkipsFocused(t *testing.T) {
	data := discordgo.ApplicationCommandInteractionData{
		Options: []*discordgo.ApplicationCommandInteractionDataOption{
			{Type: discordgo.ApplicationCommandOptionString, Name: "name", Value: "gre", Focused: true},
		},
	}

	opts := ResolveOptions(NopState{}, "g1", data, nil)

	if opts.Has("name") {
		t.Error("a focused option carries a partial value and must be skipped")
	}
}

func TestResolveOptions_NilsDeclaredOptionals(t *testing.T) {
	declared := []*Option{
		StringOption("name", "tag name"),
		IntOption("count", "how many").Optional(),
	}
	data := discordgo.ApplicationCommandInteractionData{
		Options: []*discordgo.ApplicationCommandInteractionDataOption{
			strOpt("name", "greeting"),
		},
	}

	opts := ResolveOptions(NopState{}, "g1", data, declared)

	if v, ok := opts.Get("count"); !ok || v != nil {
		t.Errorf("absent optional should be present and nil, got %v %v", v, ok)
	}
	if opts.Len() != 1 {
		t.Errorf("expected 1 carried value, got %d", opts.Len())
	}
	if got := opts.Names(); len(got) != 2 || got[0] != "count" || got[1] != "name" {
		t.Errorf("unexpected names %v", got)
	}
}

func TestResolveUser_CacheWinsOverResolved(t *testing.T) {
	cached := &discordgo.Member{GuildID: "g1", Nick: "from-cache", User: &discordgo.User{ID: "u1"}}
	state := &mockState{members: map[string]*discordgo.Member{"g1/u1": cached}}
	data := discordgo.ApplicationCommandInteractionData{
		Options: []*discordgo.ApplicationCommandInteractionDataOption{
			entityOpt(discordgo.ApplicationCommandOptionUser, "target", "u1"),
		},
		Resolved: &discordgo.ApplicationCommandInteractionDataResolved{
			Members: map[string]*discordgo.Member{"u1": {Nick: "from-payload"}},
			Users:   map[string]*discordgo.User{"u1": {ID: "u1"}},
		},
	}

	opts := ResolveOptions(state, "g1", data, nil)

	if got := opts.Member("target"); got != cached {
		t.Fatalf("expected the cached member, got %#v", got)
	}
}

func TestResolveUser_ResolvedMemberIsHydrated(t *testing.T) {
	data := discordgo.ApplicationCommandInteractionData{
		Options: []*discordgo.ApplicationCommandInteractionDataOption{
			entityOpt(discordgo.ApplicationCommandOptionUser, "target", "u1"),
		},
		Resolved: &discordgo.ApplicationCommandInteractionDataResolved{
			Members: map[string]*discordgo.Member{"u1": {Nick: "resolved"}},
			Users:   map[string]*discordgo.User{"u1": {ID: "u1", Username: "someone"}},
		},
	}

	opts := ResolveOptions(&mockState{}, "g1", data, nil)

	m := opts.Member("target")
	if m == nil {
		t.Fatal("expected a member value")
	}
	if m.GuildID != "g1" {
		t.Errorf("expected guild id backfilled, got %q", m.GuildID)
	}
	if m.User == nil || m.User.Username != "someone" {
		t.Errorf("expected user snapshot backfilled, got %#v", m.User)
	}
	if u := opts.User("target"); u == nil || u.ID != "u1" {
		t.Errorf("User accessor should unwrap the member, got %#v", u)
	}
}

func TestResolveUser_DegradesToBareReference(t *testing.T) {
	data := discordgo.ApplicationCommandInteractionData{
		Options: []*discordgo.ApplicationCommandInteractionDataOption{
			entityOpt(discordgo.ApplicationCommandOptionUser, "target", "u9"),
		},
	}

	opts := ResolveOptions(&mockState{}, "g1", data, nil)

	u := opts.User("target")
	if u == nil || u.ID != "u9" || u.Username != "" {
		t.Fatalf("expected a bare id-only user, got %#v", u)
	}
	if opts.Member("target") != nil {
		t.Error("a bare reference is a user, not a member")
	}
}

func TestResolveChannel_Precedence(t *testing.T) {
	cached := &discordgo.Channel{ID: "c1", Name: "cached"}
	state := &mockState{channels: map[string]*discordgo.Channel{"c1": cached}}
	resolved := &discordgo.ApplicationCommandInteractionDataResolved{
		Channels: map[string]*discordgo.Channel{
			"c1": {ID: "c1", Name: "payload"},
			"c2": {ID: "c2", Name: "payload-only"},
		},
	}
	data := discordgo.ApplicationCommandInteractionData{
		Options: []*discordgo.ApplicationCommandInteractionDataOption{
			entityOpt(discordgo.ApplicationCommandOptionChannel, "here", "c1"),
			entityOpt(discordgo.ApplicationCommandOptionChannel, "there", "c2"),
			entityOpt(discordgo.ApplicationCommandOptionChannel, "nowhere", "c3"),
		},
		Resolved: resolved,
	}

	opts := ResolveOptions(state, "g1", data, nil)

	if got := opts.Channel("here"); got != cached {
		t.Errorf("cache should win, got %#v", got)
	}
	if got := opts.Channel("there"); got == nil || got.Name != "payload-only" {
		t.Errorf("resolved payload should serve cache misses, got %#v", got)
	}
	if got := opts.Channel("nowhere"); got == nil || got.ID != "c3" || got.GuildID != "g1" {
		t.Errorf("expected a bare channel reference, got %#v", got)
	}
}

func TestResolveRole_Precedence(t *testing.T) {
	cached := &discordgo.Role{ID: "r1", Name: "cached"}
	state := &mockState{roles: map[string]*discordgo.Role{"g1/r1": cached}}
	data := discordgo.ApplicationCommandInteractionData{
		Options: []*discordgo.ApplicationCommandInteractionDataOption{
			entityOpt(discordgo.ApplicationCommandOptionRole, "rank", "r1"),
			entityOpt(discordgo.ApplicationCommandOptionRole, "other", "r2"),
		},
		Resolved: &discordgo.ApplicationCommandInteractionDataResolved{
			Roles: map[string]*discordgo.Role{
				"r1": {ID: "r1", Name: "payload"},
				"r2": {ID: "r2", Name: "payload-only"},
			},
		},
	}

	opts := ResolveOptions(state, "g1", data, nil)

	if got := opts.Role("rank"); got != cached {
		t.Errorf("cache should win, got %#v", got)
	}
	if got := opts.Role("other"); got == nil || got.Name != "payload-only" {
		t.Errorf("resolved payload should serve cache misses, got %#v", got)
	}
}

func TestResolveMentionable_MemberBeforeRole(t *testing.T) {
	state := &mockState{
		members: map[string]*discordgo.Member{"g1/x1": {GuildID: "g1", User: &discordgo.User{ID: "x1"}}},
		roles:   map[string]*discordgo.Role{"g1/x2": {ID: "x2"}},
	}
	data := discordgo.ApplicationCommandInteractionData{
		Options: []*discordgo.ApplicationCommandInteractionDataOption{
			entityOpt(discordgo.ApplicationCommandOptionMentionable, "who", "x1"),
		},
	}

	opts := ResolveOptions(state, "g1", data, nil)

	if _, ok := opts.Mentionable("who").(*discordgo.Member); !ok {
		t.Fatalf("expected a member, got %#v", opts.Mentionable("who"))
	}
}

func TestResolveMentionable_FallsBackToRole(t *testing.T) {
	state := &mockState{roles: map[string]*discordgo.Role{"g1/x2": {ID: "x2", Name: "mods"}}}
	data := discordgo.ApplicationCommandInteractionData{
		Options: []*discordgo.ApplicationCommandInteractionDataOption{
			entityOpt(discordgo.ApplicationCommandOptionMentionable, "who", "x2"),
		},
	}

	opts := ResolveOptions(state, "g1", data, nil)

	role, ok := opts.Mentionable("who").(*discordgo.Role)
	if !ok || role.Name != "mods" {
		t.Fatalf("expected the cached role, got %#v", opts.Mentionable("who"))
	}
}

func TestResolveMentionable_DMContextIsUserOnly(t *testing.T) {
	data := discordgo.ApplicationCommandInteractionData{
		Options: []*discordgo.ApplicationCommandInteractionDataOption{
			entityOpt(discordgo.ApplicationCommandOptionMentionable, "who", "u1"),
		},
		Resolved: &discordgo.ApplicationCommandInteractionDataResolved{
			Users: map[string]*discordgo.User{"u1": {ID: "u1", Username: "someone"}},
			Roles: map[string]*discordgo.Role{"u1": {ID: "u1"}},
		},
	}

	opts := ResolveOptions(&mockState{}, "", data, nil)

	u, ok := opts.Mentionable("who").(*discordgo.User)
	if !ok || u.Username != "someone" {
		t.Fatalf("DM mentionable must resolve to a user, got %#v", opts.Mentionable("who"))
	}
}

func TestResolveAttachment(t *testing.T) {
	data := discordgo.ApplicationCommandInteractionData{
		Options: []*discordgo.ApplicationCommandInteractionDataOption{
			entityOpt(discordgo.ApplicationCommandOptionAttachment, "file", "a1"),
			entityOpt(discordgo.ApplicationCommandOptionAttachment, "ghost", "a2"),
		},
		Resolved: &discordgo.ApplicationCommandInteractionDataResolved{
			Attachments: map[string]*discordgo.MessageAttachment{
				"a1": {ID: "a1", Filename: "dog.png"},
			},
		},
	}

	opts := ResolveOptions(NopState{}, "g1", data, nil)

	if got := opts.Attachment("file"); got == nil || got.Filename != "dog.png" {
		t.Errorf("expected the resolved attachment, got %#v", got)
	}
	if got := opts.Attachment("ghost"); got == nil || got.ID != "a2" {
		t.Errorf("expected a bare attachment reference, got %#v", got)
	}
}

func TestResolveOptions_Idempotent(t *testing.T) {
	state := &mockState{
		members: map[string]*discordgo.Member{"g1/u1": {GuildID: "g1", User: &discordgo.User{ID: "u1"}}},
	}
	declared := []*Option{
		StringOption("name", "tag name"),
		UserOption("target", "who").Optional(),
	}
	data := discordgo.ApplicationCommandInteractionData{
		Options: []*discordgo.ApplicationCommandInteractionDataOption{
			strOpt("name", "greeting"),
			entityOpt(discordgo.ApplicationCommandOptionUser, "target", "u1"),
		},
	}

	first := ResolveOptions(state, "g1", data, declared)
	second := ResolveOptions(state, "g1", data, declared)

	if !first.Equal(second) {
		t.Fatal("resolution must be deterministic for identical input")
	}
}
