package generation

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rshade/idelinux/internal/discovery"
	"github.com/rshade/idelinux/internal/logging"
)

// ErrProjectNotFound indicates the project directory does not exist.
var ErrProjectNotFound = errors.New("project directory not found")

// Generator produces the project files for an editor installation.
type Generator interface {
	Generate(ctx context.Context, inst discovery.Installation) error
}

// SolutionPath returns the solution file a project generator writes for
// projectDir: <projectDir>/<dirname>.sln.
func SolutionPath(projectDir string) string {
	clean := filepath.Clean(projectDir)
	return filepath.Join(clean, filepath.Base(clean)+".sln")
}

// SolutionFileGenerator reports the solution file for ProjectDir without
// writing any project files.
type SolutionFileGenerator struct {
	ProjectDir string
	// Env locates the installation's analyzer assemblies.
	Env discovery.Env
}

// Generate checks the project directory and logs the expected solution.
func (g SolutionFileGenerator) Generate(ctx context.Context, inst discovery.Installation) error {
	info, err := os.Stat(g.ProjectDir)
	if err != nil || !info.IsDir() {
		return fmt.Errorf("%w: %s", ErrProjectNotFound, g.ProjectDir)
	}

	solution := SolutionPath(g.ProjectDir)
	_, statErr := os.Stat(solution)

	logging.FromContext(ctx).Info().
		Ctx(ctx).
		Str("component", "generation").
		Str("operation", "generate").
		Str("editor", inst.Name).
		Str("solution", solution).
		Bool("solution_exists", statErr == nil).
		Strs("analyzers", inst.Analyzers(g.Env)).
		Msg("project files synchronized")

	return nil
}
