package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/rshade/idelinux/internal/config"
	"github.com/rshade/idelinux/internal/generation"
	"github.com/rshade/idelinux/internal/workspace"
)

// newSyncCmd creates the sync command.
func newSyncCmd(a *app) *cobra.Command {
	var (
		project  string
		solution string
		patch    bool
	)

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Generate the project for the selected editor and set up .vscode",
		Long: `Runs project generation for the configured editor, or for the best
discovered one if the configured editor is not usable. The .vscode folder is
created when missing and patched when --patch (or workspace.patch) is set.`,
		Example: `  idelinux sync --project ~/Projects/Game
  idelinux sync --project ~/Projects/Game --patch`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			dir, err := filepath.Abs(project)
			if err != nil {
				return err
			}
			cfg := config.WithProject(ctx, a.cfg, dir)

			d, err := a.discovererFor(cfg)
			if err != nil {
				return err
			}

			s := &generation.Synchronizer{
				Discoverer: d,
				Editor:     generation.NewEditorContext(cfg.Editor.Path),
				Generator:  generation.SolutionFileGenerator{ProjectDir: dir, Env: a.env},
				Patcher:    workspace.NewPatcher(),
			}
			result := s.Sync(ctx, generation.Request{
				ProjectDir:   dir,
				SolutionFile: solution,
				Patch:        patch || cfg.Workspace.Patch,
			})

			if !result.Found {
				cmd.Println("Editor: none found")
				return ErrNoInstallation
			}
			cmd.Printf("Editor: %s\n", result.Installation.Details())
			if result.GenerateErr != nil {
				cmd.Printf("Generation failed: %v\n", result.GenerateErr)
			}
			if result.Patched {
				cmd.Printf("Workspace: %s\n", result.Report)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&project, "project", ".", "project directory")
	cmd.Flags().StringVar(&solution, "solution", "", "solution file (default <project>/<dirname>.sln)")
	cmd.Flags().BoolVar(&patch, "patch", false, "patch an existing .vscode folder")
	return cmd
}

// newPatchCmd creates the patch command.
func newPatchCmd() *cobra.Command {
	var (
		project  string
		solution string
	)

	cmd := &cobra.Command{
		Use:   "patch",
		Short: "Create or patch the .vscode configuration only",
		Example: `  idelinux patch --project ~/Projects/Game --solution ~/Projects/Game/Game.sln`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			dir, err := filepath.Abs(project)
			if err != nil {
				return err
			}
			if solution == "" {
				solution = generation.SolutionPath(dir)
			}

			report := workspace.NewPatcher().Apply(cmd.Context(), dir, solution)
			cmd.Println(report.String())

			for _, o := range []workspace.Outcome{report.Launch, report.Settings, report.Extensions} {
				if o == workspace.Failed {
					return fmt.Errorf("patching %s: %s", filepath.Join(dir, workspace.ConfigDir), report)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&project, "project", ".", "project directory")
	cmd.Flags().StringVar(&solution, "solution", "", "solution file (default <project>/<dirname>.sln)")
	return cmd
}
