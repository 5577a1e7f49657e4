package appcmd

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
)

// HandlerFunc is a command callback. A nil handler is a no-op; the
// dispatcher still auto-defers so the interaction does not appear to hang.
type HandlerFunc func(c *Context) error

// CheckFunc gates a command callback. Returning false stops the pipeline
// silently; returning an error routes through the error-handler chain.
type CheckFunc func(c *Context) (bool, error)

// ErrorFunc handles an error raised by checks or the callback.
type ErrorFunc func(c *Context, err error)

// Command is one application command: a top-level slash, message, or user
// command, or a slash subcommand/group inside a parent. It is built once at
// startup and mutated only through its explicit setters; after interaction
// traffic begins it must be treated as read-only.
type Command struct {
	name              string
	description       string
	kind              discordgo.ApplicationCommandType
	parent            *Command
	group             bool
	defaultPermission bool
	guildIDs          []string
	global            bool
	globalSet         bool

	options   []*Option
	subOrder  []string
	subs      map[string]*Command
	cog       Cog
	handler   HandlerFunc
	check     CheckFunc
	onError   ErrorFunc
	buildErr  error
}

func newCommand(name string, kind discordgo.ApplicationCommandType) *Command {
	if kind == discordgo.ChatApplicationCommand {
		name = strings.ToLower(name)
	}
	return &Command{
		name:              name,
		kind:              kind,
		defaultPermission: true,
		subs:              make(map[string]*Command),
	}
}

// NewSlash returns a slash command. The name is lowercased; the description
// is mandatory for serialization.
func NewSlash(name, description string) *Command {
	c := newCommand(name, discordgo.ChatApplicationCommand)
	c.description = description
	return c
}

// NewMessage returns a message (right-click on a message) command.
func NewMessage(name string) *Command {
	return newCommand(name, discordgo.MessageApplicationCommand)
}

// NewUser returns a user (right-click on a user) command.
func NewUser(name string) *Command {
	return newCommand(name, discordgo.UserApplicationCommand)
}

// fail records the first definition error; later calls keep the original.
func (c *Command) fail(err error) *Command {
	if c.buildErr == nil {
		c.buildErr = err
	}
	return c
}

// Err reports the first definition error recorded while building the
// command, if any.
func (c *Command) Err() error { return c.buildErr }

// WithGuilds scopes the command to the given guilds. Unless overridden with
// WithGlobal, a guild-scoped command is not global.
func (c *Command) WithGuilds(guildIDs ...string) *Command {
	c.guildIDs = append(c.guildIDs, guildIDs...)
	return c
}

// WithGlobal overrides the derived global flag.
func (c *Command) WithGlobal(global bool) *Command {
	c.global = global
	c.globalSet = true
	return c
}

// WithDefaultPermission sets the registration payload's default_permission.
func (c *Command) WithDefaultPermission(allowed bool) *Command {
	c.defaultPermission = allowed
	return c
}

// AsGroup marks a slash command as a subcommand group.
func (c *Command) AsGroup() *Command {
	if c.kind != discordgo.ChatApplicationCommand {
		return c.fail(fmt.Errorf("command %q: %w: only slash commands can be groups", c.name, ErrInvalidParent))
	}
	c.group = true
	return c
}

// WithOptions harvests the command's option list from an options struct.
// See harvestOptions for the field and tag semantics.
func (c *Command) WithOptions(spec any) *Command {
	opts, err := harvestOptions(spec)
	if err != nil {
		return c.fail(fmt.Errorf("command %q: %w", c.name, err))
	}
	for _, o := range opts {
		c.AddOption(o)
	}
	return c
}

// AddOption appends one option, replacing any existing option of the same
// name.
func (c *Command) AddOption(o *Option) *Command {
	if err := o.validate(); err != nil {
		return c.fail(fmt.Errorf("command %q: %w", c.name, err))
	}
	for i, existing := range c.options {
		if existing.Name == o.Name {
			c.options[i] = o
			return c
		}
	}
	c.options = append(c.options, o)
	return c
}

// RemoveOption removes an option by name and returns it, or nil if the name
// is unknown.
func (c *Command) RemoveOption(name string) *Option {
	for i, o := range c.options {
		if o.Name == name {
			c.options = append(c.options[:i], c.options[i+1:]...)
			return o
		}
	}
	return nil
}

// Option returns the declared option with the given name, or nil.
func (c *Command) Option(name string) *Option {
	for _, o := range c.options {
		if o.Name == name {
			return o
		}
	}
	return nil
}

// Options returns the declared options in declaration order.
func (c *Command) Options() []*Option {
	out := make([]*Option, len(c.options))
	copy(out, c.options)
	return out
}

// WithAutocomplete attaches an autocomplete handler to a declared option.
func (c *Command) WithAutocomplete(option string, fn AutocompleteFunc) *Command {
	o := c.Option(option)
	if o == nil {
		return c.fail(fmt.Errorf("command %q: %w: unknown option %q", c.name, ErrMissingOptionType, option))
	}
	o.Autocomplete = fn
	return c
}

// WithDefault sets the default of a declared option.
func (c *Command) WithDefault(option string, def any) *Command {
	o := c.Option(option)
	if o == nil {
		return c.fail(fmt.Errorf("command %q: %w: unknown option %q", c.name, ErrMissingOptionType, option))
	}
	o.Default = def
	if err := o.validate(); err != nil {
		return c.fail(fmt.Errorf("command %q: %w", c.name, err))
	}
	return c
}

// WithParent attaches the command as a subcommand of parent. Both sides
// must be slash commands; the parent records the child under its name.
func (c *Command) WithParent(parent *Command) *Command {
	if parent == nil {
		return c
	}
	if c.kind != discordgo.ChatApplicationCommand {
		return c.fail(fmt.Errorf("command %q: %w", c.name, ErrInvalidParent))
	}
	if parent.kind != discordgo.ChatApplicationCommand {
		return c.fail(fmt.Errorf("command %q: %w: parent %q is not a slash command", c.name, ErrInvalidParent, parent.name))
	}
	c.parent = parent
	parent.addSubcommand(c)
	return c
}

// AddSubcommand attaches sub as a child of the command.
func (c *Command) AddSubcommand(sub *Command) *Command {
	sub.WithParent(c)
	if sub.buildErr != nil {
		c.fail(sub.buildErr)
	}
	return c
}

func (c *Command) addSubcommand(sub *Command) {
	if _, ok := c.subs[sub.name]; !ok {
		c.subOrder = append(c.subOrder, sub.name)
	}
	c.subs[sub.name] = sub
}

// WithHandler sets the command callback.
func (c *Command) WithHandler(fn HandlerFunc) *Command {
	c.handler = fn
	return c
}

// WithCheck sets the command-level check.
func (c *Command) WithCheck(fn CheckFunc) *Command {
	c.check = fn
	return c
}

// WithErrorHandler sets the command-level error handler.
func (c *Command) WithErrorHandler(fn ErrorFunc) *Command {
	c.onError = fn
	return c
}

// SetName renames the command. Slash names are lowercased.
func (c *Command) SetName(name string) {
	if c.kind == discordgo.ChatApplicationCommand {
		name = strings.ToLower(name)
	}
	c.name = name
}

// SetDescription replaces the command description.
func (c *Command) SetDescription(description string) {
	c.description = description
}

// SetKind replaces the command kind.
func (c *Command) SetKind(kind discordgo.ApplicationCommandType) {
	c.kind = kind
}

// Accessors.

func (c *Command) Name() string                              { return c.name }
func (c *Command) Description() string                       { return c.description }
func (c *Command) Kind() discordgo.ApplicationCommandType    { return c.kind }
func (c *Command) Parent() *Command                          { return c.parent }
func (c *Command) IsGroup() bool                             { return c.group }
func (c *Command) Cog() Cog                                  { return c.cog }
func (c *Command) GuildIDs() []string                        { return c.guildIDs }

// IsGlobal reports whether the command registers globally. Unless
// explicitly overridden, a command is global exactly when it has no guild
// scope.
func (c *Command) IsGlobal() bool {
	if c.globalSet {
		return c.global
	}
	return len(c.guildIDs) == 0
}

// Subcommands returns the direct children in attach order.
func (c *Command) Subcommands() []*Command {
	out := make([]*Command, 0, len(c.subOrder))
	for _, name := range c.subOrder {
		out = append(out, c.subs[name])
	}
	return out
}

// Key is the command's identity: name, kind code, and the parent's key. It
// is unique across a registry.
func (c *Command) Key() string {
	key := fmt.Sprintf("%d:%s", c.kind, c.name)
	if c.parent != nil {
		return c.parent.Key() + "/" + key
	}
	return key
}

// usedSubcommand extracts the invoked subcommand name from a payload's
// nested option list: a subcommand entry names it directly, a group entry
// holds it one level down. Only one level of group nesting exists on the
// wire.
func usedSubcommand(opts []*discordgo.ApplicationCommandInteractionDataOption) string {
	for _, opt := range opts {
		switch opt.Type {
		case discordgo.ApplicationCommandOptionSubCommand:
			return opt.Name
		case discordgo.ApplicationCommandOptionSubCommandGroup:
			for _, nested := range opt.Options {
				if nested.Type == discordgo.ApplicationCommandOptionSubCommand {
					return nested.Name
				}
			}
			return ""
		default:
			return ""
		}
	}
	return ""
}

// findSubcommand looks the name up among direct children and, flattened by
// name, their children.
func (c *Command) findSubcommand(name string) *Command {
	for _, key := range c.subOrder {
		sub := c.subs[key]
		if sub.name == name {
			return sub
		}
		if grandchild, ok := sub.subs[name]; ok {
			return grandchild
		}
	}
	return nil
}

// Match resolves an inbound interaction payload against the command. Guild
// scope is rejected first, independent of the name; then name and kind;
// then the subcommand tree. The returned command is the one whose options
// and pipeline apply, or nil when the payload is not for this command.
func (c *Command) Match(data discordgo.ApplicationCommandInteractionData, guildID string) *Command {
	if !c.IsGlobal() && guildID != "" && !containsString(c.guildIDs, guildID) {
		return nil
	}

	if c.name != data.Name || c.kind != data.CommandType {
		return nil
	}

	if len(c.subs) > 0 && len(data.Options) > 0 {
		if name := usedSubcommand(data.Options); name != "" {
			return c.findSubcommand(name)
		}
	}

	return c
}

// asOption renders the command as a subcommand or subcommand-group option,
// recursively including its own children.
func (c *Command) asOption() *Option {
	t := discordgo.ApplicationCommandOptionSubCommand
	if c.group {
		t = discordgo.ApplicationCommandOptionSubCommandGroup
	}

	sub := make([]*Option, 0, len(c.options)+len(c.subOrder))
	sub = append(sub, c.options...)
	for _, name := range c.subOrder {
		sub = append(sub, c.subs[name].asOption())
	}

	return &Option{
		Type:        t,
		Name:        c.name,
		Description: c.description,
		Sub:         sub,
	}
}

// Build serializes the command into its registration payload. Slash
// commands require a description; all options must carry resolved types.
func (c *Command) Build() (*discordgo.ApplicationCommand, error) {
	if c.buildErr != nil {
		return nil, c.buildErr
	}

	defaultPermission := c.defaultPermission
	out := &discordgo.ApplicationCommand{
		Name:              c.name,
		Type:              c.kind,
		DefaultPermission: &defaultPermission,
	}

	if c.kind != discordgo.ChatApplicationCommand {
		return out, nil
	}

	if c.description == "" {
		return nil, fmt.Errorf("command %q: %w", c.name, ErrMissingDescription)
	}
	out.Description = c.description

	all := make([]*Option, 0, len(c.options)+len(c.subOrder))
	all = append(all, c.options...)
	for _, name := range c.subOrder {
		all = append(all, c.subs[name].asOption())
	}

	if len(all) > 0 {
		built, err := buildOptions(all)
		if err != nil {
			return nil, fmt.Errorf("command %q: %w", c.name, err)
		}
		out.Options = built
	}

	return out, nil
}

// chainCheck walks from the command up through its parents and returns the
// first check found. Only that one runs.
func (c *Command) chainCheck() CheckFunc {
	for cur := c; cur != nil; cur = cur.parent {
		if cur.check != nil {
			return cur.check
		}
	}
	return nil
}

// chainErrorHandler is the error-handler analog of chainCheck.
func (c *Command) chainErrorHandler() ErrorFunc {
	for cur := c; cur != nil; cur = cur.parent {
		if cur.onError != nil {
			return cur.onError
		}
	}
	return nil
}

// setCog wires the cog pointer through the command and its subtree.
func (c *Command) setCog(cog Cog) {
	c.cog = cog
	for _, sub := range c.subs {
		sub.setCog(cog)
	}
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
