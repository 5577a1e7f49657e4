package appcmd

// Cog groups related commands so they can be attached and detached as one
// unit. Optional behavior is added by implementing CogChecker and/or
// CogErrorHandler; the dispatcher discovers the overrides by interface
// assertion.
type Cog interface {
	// Commands returns the cog's top-level commands.
	Commands() []*Command
}

// CogChecker gates every command in the cog. It runs after the global
// checks and before the command-chain check.
type CogChecker interface {
	CommandCheck(c *Context) (bool, error)
}

// CogErrorHandler handles pipeline errors for the cog's commands. It runs
// before the dispatcher-wide error hook and the command-chain handler.
type CogErrorHandler interface {
	OnCommandError(c *Context, err error)
}

// AttachCog registers the cog's commands and wires the cog pointer through
// each command subtree.
func (r *Registry) AttachCog(cog Cog) error {
	cmds := cog.Commands()
	if err := r.Register(cmds...); err != nil {
		return err
	}
	for _, cmd := range cmds {
		cmd.setCog(cog)
	}
	return nil
}

// DetachCog unregisters the cog's commands and clears the cog pointers.
func (r *Registry) DetachCog(cog Cog) {
	for _, cmd := range cog.Commands() {
		r.Unregister(cmd)
		cmd.setCog(nil)
	}
}
