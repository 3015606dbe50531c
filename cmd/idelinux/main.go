// Command idelinux discovers Linux code editors and prepares game projects
// for them.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rshade/idelinux/internal/cli"
	"github.com/rshade/idelinux/internal/config"
	"github.com/rshade/idelinux/pkg/version"
)

// Exit codes.
const (
	exitOK            = 0
	exitError         = 1
	exitNoEditor      = 2
	exitInvalidConfig = 3
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := cli.NewRootCmd(version.GetVersion())
	root.SetArgs(args)

	err := root.ExecuteContext(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	return exitCode(err)
}

// exitCode maps command errors to process exit codes.
func exitCode(err error) int {
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, cli.ErrNoInstallation):
		return exitNoEditor
	case errors.Is(err, config.ErrInvalidConfig):
		return exitInvalidConfig
	default:
		return exitError
	}
}
