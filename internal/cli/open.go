package cli

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/rshade/idelinux/internal/config"
	"github.com/rshade/idelinux/internal/generation"
	"github.com/rshade/idelinux/internal/launch"
)

// newOpenCmd creates the open command.
func newOpenCmd(a *app) *cobra.Command {
	var (
		line     int
		column   int
		solution string
		redirect bool
	)

	cmd := &cobra.Command{
		Use:   "open [FILE]",
		Short: "Open the project, and optionally a file position, in the selected editor",
		Long: `Starts the selected editor on the solution's directory, or on the
.code-workspace file there when exactly one exists. With FILE the editor
jumps to FILE:LINE:COLUMN. The command returns once the editor was started.`,
		Example: `  idelinux open --solution ~/Projects/Game/Game.sln
  idelinux open Assets/Player.cs --line 42 --column 7 --solution ~/Projects/Game/Game.sln`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			if solution == "" {
				cwd, err := filepath.Abs(".")
				if err != nil {
					return err
				}
				solution = generation.SolutionPath(cwd)
			}
			cfg := config.WithProject(ctx, a.cfg, filepath.Dir(solution))

			d, err := a.discovererFor(cfg)
			if err != nil {
				return err
			}
			inst, ok := d.Select(ctx, cfg.Editor.Path)
			if !ok {
				return ErrNoInstallation
			}

			var file string
			if len(args) == 1 {
				file = args[0]
			}

			c := &launch.Coordinator{Editor: inst.Path, Spawner: a.spawner, Redirect: redirect}
			return c.Open(ctx, file, line, column, solution)
		},
	}

	cmd.Flags().IntVar(&line, "line", 1, "line to go to (minimum 1)")
	cmd.Flags().IntVar(&column, "column", 0, "column to go to (minimum 0)")
	cmd.Flags().StringVar(&solution, "solution", "", "solution file (default ./<dirname>.sln)")
	cmd.Flags().BoolVar(&redirect, "redirect", false, "forward the editor's output to this terminal")
	return cmd
}
