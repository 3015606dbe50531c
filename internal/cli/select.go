package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rshade/idelinux/internal/discovery"
	"github.com/rshade/idelinux/internal/logging"
	"github.com/rshade/idelinux/internal/tui"
)

// newSelectCmd creates the select command.
func newSelectCmd(a *app) *cobra.Command {
	var (
		editor      string
		interactive bool
		save        bool
	)

	cmd := &cobra.Command{
		Use:   "select",
		Short: "Show the editor installation that would be used",
		Long: `Resolves the editor to use. An explicit --editor (or the configured
editor) is validated on its own; otherwise every installation is discovered
and the best one is chosen: stable before insiders, then newest version.`,
		Example: `  # Show the best installation
  idelinux select

  # Validate a specific executable
  idelinux select --editor /opt/cursor/cursor

  # Choose from a list and store the choice
  idelinux select --interactive --save`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if editor == "" {
				editor = a.cfg.Editor.Path
			}

			d, err := a.discoverer()
			if err != nil {
				return err
			}

			var (
				inst discovery.Installation
				ok   bool
			)
			if interactive {
				if !a.isTerminal() {
					return ErrNotTerminal
				}
				inst, ok, err = tui.RunPicker(ctx, discovery.Rank(d.All(ctx)), editor)
				if err != nil {
					return err
				}
				if !ok {
					return nil
				}
			} else if inst, ok = d.Select(ctx, editor); !ok {
				if editor != "" {
					return fmt.Errorf("%w: %s is not a supported editor", ErrNoInstallation, editor)
				}
				return ErrNoInstallation
			}

			cmd.Println(inst.Details())

			if save && !discovery.SamePath(a.cfg.Editor.Path, inst.Path) {
				a.cfg.Editor.Path = inst.Path
				if err = a.cfg.Save(a.cfgPath); err != nil {
					return err
				}
				logging.FromContext(ctx).Info().
					Ctx(ctx).
					Str("component", "cli").
					Str("operation", "select").
					Str("editor", inst.Path).
					Str("config", a.cfgPath).
					Msg("editor saved")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&editor, "editor", "", "editor executable to validate instead of discovering")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "choose from a list (requires a terminal)")
	cmd.Flags().BoolVar(&save, "save", false, "store the selected editor in the config file")
	return cmd
}
