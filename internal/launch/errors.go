// Package launch opens a file in the selected editor, preferring the
// project's .code-workspace file over the bare project directory.
package launch

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by Open.
var (
	// ErrNoEditor indicates no editor executable was configured.
	ErrNoEditor = errors.New("no editor configured")

	// ErrLaunchFailed indicates the editor process could not be started.
	ErrLaunchFailed = errors.New("editor launch failed")
)

// launchError wraps a spawn failure with ErrLaunchFailed.
func launchError(editor string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrLaunchFailed, editor, err)
}
