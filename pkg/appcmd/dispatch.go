package appcmd

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/bwmarrin/discordgo"
)

// Outcome classifies how a dispatch ended, for instrumentation hooks.
type Outcome string

const (
	OutcomeOK       Outcome = "ok"
	OutcomeRejected Outcome = "rejected" // a check returned false
	OutcomeError    Outcome = "error"
)

// Hooks are optional observation points for metrics and logging. They run
// on the dispatch goroutine after the pipeline finishes.
type Hooks struct {
	AfterDispatch     func(c *Context, outcome Outcome, err error, elapsed time.Duration)
	AfterAutocomplete func(c *Context, option string, err error)
}

// Dispatcher matches inbound interactions against a registry and runs the
// execution pipeline. Every interaction is dispatched on its own goroutine;
// contexts are never shared between invocations. Configure it fully before
// traffic starts.
type Dispatcher struct {
	registry *Registry
	state    StateLookup
	checks   []CheckFunc
	onError  ErrorFunc
	hooks    Hooks
}

// NewDispatcher returns a dispatcher over the given registry and cache.
func NewDispatcher(registry *Registry, state StateLookup) *Dispatcher {
	if state == nil {
		state = NopState{}
	}
	return &Dispatcher{registry: registry, state: state}
}

// AddCheck appends a global check. All global checks must pass before any
// command runs.
func (d *Dispatcher) AddCheck(fn CheckFunc) {
	d.checks = append(d.checks, fn)
}

// OnError sets the dispatcher-wide error hook. It fires for every pipeline
// error, after the cog handler and before the command-chain handler.
func (d *Dispatcher) OnError(fn ErrorFunc) {
	d.onError = fn
}

// WithHooks installs instrumentation hooks.
func (d *Dispatcher) WithHooks(h Hooks) {
	d.hooks = h
}

// HandleFunc adapts the dispatcher to discordgo.Session.AddHandler.
func (d *Dispatcher) HandleFunc() func(*discordgo.Session, *discordgo.InteractionCreate) {
	return func(s *discordgo.Session, i *discordgo.InteractionCreate) {
		d.Handle(s, i)
	}
}

// Handle routes one interaction: command invocations are dispatched on a
// fresh goroutine, autocomplete is answered inline. Non-command
// interactions are ignored.
func (d *Dispatcher) Handle(s Responder, i *discordgo.InteractionCreate) {
	d.route(s, i, true)
}

// HandleSync routes one interaction entirely on the calling goroutine.
// Hosts with their own task model, and tests, use this instead of Handle.
func (d *Dispatcher) HandleSync(s Responder, i *discordgo.InteractionCreate) {
	d.route(s, i, false)
}

func (d *Dispatcher) route(s Responder, i *discordgo.InteractionCreate, async bool) {
	switch i.Type {
	case discordgo.InteractionApplicationCommand, discordgo.InteractionApplicationCommandAutocomplete:
	default:
		return
	}

	data := i.ApplicationCommandData()
	cmd := d.registry.Match(data, i.GuildID)
	if cmd == nil {
		slog.Warn("No command matches interaction", "name", data.Name, "type", data.CommandType, "guild", i.GuildID)
		return
	}

	if i.Type == discordgo.InteractionApplicationCommandAutocomplete {
		d.handleAutocomplete(s, i, cmd)
		return
	}

	c := newContext(s, d.state, i, cmd)
	if async {
		go d.Dispatch(c)
		return
	}
	d.Dispatch(c)
}

// Dispatch runs the full pipeline for one prepared context. It is exposed
// so hosts with their own task model can schedule it themselves.
func (d *Dispatcher) Dispatch(c *Context) {
	start := time.Now()
	outcome, err := d.runPipeline(c)
	if err != nil {
		d.dispatchError(c, err)
	}
	if d.hooks.AfterDispatch != nil {
		d.hooks.AfterDispatch(c, outcome, err, time.Since(start))
	}
}

// runPipeline is the linear execution pipeline: default injection, global
// checks, cog check, command-chain check, callback, auto-defer. A false
// check stops silently; an error anywhere routes to the handler chain.
func (d *Dispatcher) runPipeline(c *Context) (Outcome, error) {
	cmd := c.Command

	if cmd.kind == discordgo.ChatApplicationCommand {
		if err := d.injectDefaults(c); err != nil {
			return OutcomeError, err
		}
	}

	for _, check := range d.checks {
		ok, err := check(c)
		if err != nil {
			return OutcomeError, err
		}
		if !ok {
			return OutcomeRejected, nil
		}
	}

	if cmd.cog != nil {
		if checker, ok := cmd.cog.(CogChecker); ok {
			allowed, err := checker.CommandCheck(c)
			if err != nil {
				return OutcomeError, err
			}
			if !allowed {
				return OutcomeRejected, nil
			}
		}
	}

	if check := cmd.chainCheck(); check != nil {
		ok, err := check(c)
		if err != nil {
			return OutcomeError, err
		}
		if !ok {
			return OutcomeRejected, nil
		}
	}

	if cmd.handler != nil {
		if err := cmd.handler(c); err != nil {
			return OutcomeError, err
		}
	}

	// best-effort: keep the interaction from appearing abandoned
	if !c.responded {
		if err := c.Defer(); err != nil {
			slog.Warn("Auto-defer failed", "command", cmd.name, "error", err)
		}
	}

	return OutcomeOK, nil
}

// injectDefaults fills still-unset optional options from their configured
// defaults. A value the invoker actually sent, including 0, false, and "",
// is never overwritten.
func (d *Dispatcher) injectDefaults(c *Context) error {
	for _, opt := range c.Command.options {
		if opt.Required || opt.Default == nil {
			continue
		}
		current, declared := c.Options.Get(opt.Name)
		if !declared || current != nil {
			continue
		}

		value, err := computeDefault(c, opt.Default)
		if err != nil {
			return fmt.Errorf("default for option %q: %w", opt.Name, err)
		}
		c.Options.set(opt.Name, value)
	}
	return nil
}

func computeDefault(c *Context, def any) (any, error) {
	switch v := def.(type) {
	case DefaultProvider:
		return v.Default(c)
	case DefaultFunc:
		return v(c)
	case func(*Context) (any, error):
		return v(c)
	default:
		return v, nil
	}
}

// dispatchError walks the handler chain: cog handler, dispatcher-wide hook,
// command-chain handler. All three run; errors raised inside handlers are
// not caught here.
func (d *Dispatcher) dispatchError(c *Context, err error) {
	if c.Command.cog != nil {
		if handler, ok := c.Command.cog.(CogErrorHandler); ok {
			handler.OnCommandError(c, err)
		}
	}

	if d.onError != nil {
		d.onError(c, err)
	}

	if handler := c.Command.chainErrorHandler(); handler != nil {
		handler(c, err)
	}
}
