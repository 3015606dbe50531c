package cli

import "errors"

// Sentinel errors returned by commands.
var (
	// ErrNoInstallation indicates no usable editor was configured or found.
	ErrNoInstallation = errors.New("no editor installation found")

	// ErrNotTerminal indicates an interactive command was run without a TTY.
	ErrNotTerminal = errors.New("interactive mode requires a terminal")

	// ErrConfigExists indicates config init would overwrite an existing file.
	ErrConfigExists = errors.New("configuration file already exists, use --force to overwrite")
)
