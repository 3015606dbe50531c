package launch

import (
	"context"
	"io"
	"os"
	"os/exec"
)

// Spawner starts an external process without waiting for it.
// This interface enables testing without spawning real processes.
type Spawner interface {
	Start(ctx context.Context, name string, args []string, redirect bool) error
}

// ExecSpawner starts processes with os/exec. Output is discarded unless
// redirect is set, in which case it goes to Stdout and Stderr.
type ExecSpawner struct {
	Stdout io.Writer
	Stderr io.Writer
}

// Start launches name and releases the process handle. The child is not
// tied to ctx so it outlives the caller.
func (s ExecSpawner) Start(_ context.Context, name string, args []string, redirect bool) error {
	cmd := exec.Command(name, args...) //nolint:gosec // Editor path is user-selected.
	cmd.Env = os.Environ()
	if redirect {
		cmd.Stdout = orDefault(s.Stdout, os.Stdout)
		cmd.Stderr = orDefault(s.Stderr, os.Stderr)
	}

	if err := cmd.Start(); err != nil {
		return err
	}
	return cmd.Process.Release()
}

func orDefault(w, fallback io.Writer) io.Writer {
	if w == nil {
		return fallback
	}
	return w
}
