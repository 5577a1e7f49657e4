package appcmd

import "errors"

// Definition errors are raised while a command schema is being built. They
// are fatal: the command author has to fix the declaration. They surface
// through Command.Err, Registry.Register and Command.Build.
var (
	// ErrInvalidOptionType is returned when a Go type or type tag is outside
	// the closed option-type mapping.
	ErrInvalidOptionType = errors.New("invalid option type")

	// ErrMissingOptionType is returned when an option ends up with no
	// resolvable type.
	ErrMissingOptionType = errors.New("option has no resolved type")

	// ErrInvalidChoice is returned when choice values do not share one
	// scalar type, or that type does not match the option's declared type.
	ErrInvalidChoice = errors.New("invalid option choice")

	// ErrInvalidOptional is returned for a pointer-to-pointer field, which
	// has no option semantics.
	ErrInvalidOptional = errors.New("only one level of pointer optionality is supported")

	// ErrMissingDescription is returned when a slash command is serialized
	// without a description.
	ErrMissingDescription = errors.New("slash commands must have a description")

	// ErrInvalidParent is returned when a non-slash command is given a
	// parent, or the parent itself is not a slash command.
	ErrInvalidParent = errors.New("only slash commands can have slash parents")

	// ErrInvalidDefault is returned when an option default is neither a
	// plain value, a DefaultFunc, nor a DefaultProvider.
	ErrInvalidDefault = errors.New("invalid option default")

	// ErrNotTopLevel is returned when a command with a parent is registered
	// directly; subcommands are reachable only through their parent.
	ErrNotTopLevel = errors.New("subcommands are registered through their parent")

	// ErrDuplicateCommand is returned when a command with the same identity
	// key is already registered.
	ErrDuplicateCommand = errors.New("command already registered")
)
