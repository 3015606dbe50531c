package launch

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rshade/idelinux/internal/logging"
)

// WorkspaceExt is the suffix of editor workspace files.
const WorkspaceExt = ".code-workspace"

// Coordinator opens files in Editor through Spawner.
type Coordinator struct {
	Editor  string
	Spawner Spawner
	// Redirect forwards the editor's output instead of discarding it.
	Redirect bool
}

// NewCoordinator returns a Coordinator using ExecSpawner.
func NewCoordinator(editor string) *Coordinator {
	return &Coordinator{Editor: editor, Spawner: ExecSpawner{}}
}

// Open starts the editor on the solution's directory, or on its workspace
// file when there is exactly one, and jumps to path:line:column when path
// is not empty. line is clamped to at least 1 and column to at least 0.
// Open returns as soon as the process was requested to start.
func (c *Coordinator) Open(ctx context.Context, path string, line, column int, solution string) error {
	log := logging.FromContext(ctx)

	if c.Editor == "" {
		return ErrNoEditor
	}

	target := filepath.Dir(solution)
	if ws, ok := FindWorkspace(target); ok {
		target = ws
	}
	args := BuildArgs(target, path, line, column)

	log.Debug().
		Ctx(ctx).
		Str("component", "launch").
		Str("operation", "open").
		Str("editor", c.Editor).
		Strs("args", args).
		Msg("starting editor")

	spawner := c.Spawner
	if spawner == nil {
		spawner = ExecSpawner{}
	}
	if err := spawner.Start(ctx, c.Editor, args, c.Redirect); err != nil {
		log.Warn().
			Ctx(ctx).
			Str("component", "launch").
			Str("operation", "open").
			Str("editor", c.Editor).
			Err(err).
			Msg("editor did not start")
		return launchError(c.Editor, err)
	}
	return nil
}

// FindWorkspace returns the single regular *.code-workspace file directly
// in dir. Zero or several matches report false.
func FindWorkspace(dir string) (string, bool) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", false
	}

	found := ""
	for _, entry := range entries {
		if !strings.HasSuffix(entry.Name(), WorkspaceExt) {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if !isRegularFile(entry, path) {
			continue
		}
		if found != "" {
			return "", false
		}
		found = path
	}
	return found, found != ""
}

// isRegularFile reports whether entry is a regular file, following a
// symlink to its target.
func isRegularFile(entry os.DirEntry, path string) bool {
	if entry.Type()&os.ModeSymlink == 0 {
		return entry.Type().IsRegular()
	}
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// BuildArgs returns the editor arguments for opening target and, when path
// is set, going to path:line:column.
func BuildArgs(target, path string, line, column int) []string {
	if path == "" {
		return []string{target}
	}
	line = max(line, 1)
	column = max(column, 0)
	return []string{target, "-g", path + ":" + strconv.Itoa(line) + ":" + strconv.Itoa(column)}
}
