// Package cli implements the idelinux command line: editor discovery and
// selection, workspace synchronization, launching and the messaging
// listener.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rshade/idelinux/internal/config"
)

// NewRootCmd creates the root command for the running process.
func NewRootCmd(ver string) *cobra.Command {
	return NewRootCmdWithOptions(ver)
}

// NewRootCmdWithOptions creates the root command with injected collaborators.
func NewRootCmdWithOptions(ver string, opts ...Option) *cobra.Command {
	a := newApp(opts...)

	cmd := &cobra.Command{
		Use:           "idelinux",
		Short:         "Find Linux code editors and wire them into game projects",
		Long:          "idelinux discovers VS Code Insiders and Cursor installations, picks the best one, and keeps a project's .vscode configuration in shape for debugging.",
		Version:       ver,
		Example:       rootCmdExample,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.loadConfig(cmd); err != nil {
				return err
			}
			result := setupLogging(cmd, a.cfg.Logging)
			a.logResult = &result
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			return cleanupLogging(cmd, a.logResult)
		},
	}

	cmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	cmd.PersistentFlags().String("config", "", "config file (default $IDELINUX_HOME/config.yaml or ~/.idelinux/config.yaml)")

	cmd.AddCommand(
		newListCmd(a),
		newSelectCmd(a),
		newSyncCmd(a),
		newPatchCmd(),
		newOpenCmd(a),
		newListenCmd(a),
		newConfigCmd(a),
	)

	return cmd
}

// loadConfig reads the --config file, or the default one.
func (a *app) loadConfig(cmd *cobra.Command) error {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		var err error
		if path, err = config.DefaultPath(); err != nil {
			return err
		}
	}

	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	if err = cfg.Validate(); err != nil {
		return fmt.Errorf("config %s: %w", path, err)
	}

	a.cfg, a.cfgPath = cfg, path
	return nil
}

const rootCmdExample = `  # List every editor installation, best last
  idelinux list

  # Pick an editor interactively and remember it
  idelinux select --interactive --save

  # Generate the project and create or patch .vscode
  idelinux sync --project ~/Projects/Game --patch

  # Open a file at a position in the selected editor
  idelinux open Assets/Scripts/Player.cs --line 42 --solution ~/Projects/Game/Game.sln`
