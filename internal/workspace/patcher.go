// Package workspace creates and patches the per-project editor
// configuration in .vscode/: the debugger launch configuration, the
// workspace settings and the recommended extensions.
//
// Patching is idempotent and conservative. A missing file is created with
// default content; an existing file only ever gains the single entry
// idelinux needs, keeps the order of everything else, and is not touched
// at all when that entry is already present. Files that are not valid
// JSON are left alone.
package workspace

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"

	"github.com/rshade/idelinux/internal/logging"
)

// Directory and file names of the managed configuration.
const (
	ConfigDir      = ".vscode"
	LaunchFile     = "launch.json"
	SettingsFile   = "settings.json"
	ExtensionsFile = "extensions.json"
)

// indent is the indentation of every document written by the patcher.
const indent = "    "

// Patcher holds the values the managed entries are built from.
type Patcher struct {
	// ExtensionID is the recommended extension.
	ExtensionID string
	// DebuggerType marks the launch configuration idelinux manages.
	DebuggerType string
	// SolutionKey is the settings key naming the default solution.
	SolutionKey string
}

// NewPatcher returns a Patcher with the default extension, debugger type
// and solution key.
func NewPatcher() *Patcher {
	return &Patcher{
		ExtensionID:  DefaultExtensionID,
		DebuggerType: DefaultDebuggerType,
		SolutionKey:  DefaultSolutionKey,
	}
}

// Apply creates or patches the three documents in projectDir/.vscode.
// Each document is handled independently; failures are logged and
// recorded in the report, never returned.
func (p *Patcher) Apply(ctx context.Context, projectDir, solutionFile string) Report {
	log := logging.FromContext(ctx)
	dir := filepath.Join(projectDir, ConfigDir)

	if err := os.MkdirAll(dir, 0o755); err != nil {
		log.Warn().
			Ctx(ctx).
			Str("component", "workspace").
			Str("operation", "apply").
			Str("dir", dir).
			Err(err).
			Msg("cannot create workspace config directory")
		return Report{Launch: Failed, Settings: Failed, Extensions: Failed}
	}

	report := Report{
		Launch:     p.PatchLaunch(ctx, filepath.Join(dir, LaunchFile)),
		Settings:   p.PatchSettings(ctx, filepath.Join(dir, SettingsFile), solutionFile),
		Extensions: p.PatchExtensions(ctx, filepath.Join(dir, ExtensionsFile)),
	}

	log.Debug().
		Ctx(ctx).
		Str("component", "workspace").
		Str("operation", "apply").
		Str("dir", dir).
		Str("launch", report.Launch.String()).
		Str("settings", report.Settings.String()).
		Str("extensions", report.Extensions.String()).
		Msg("workspace configuration processed")

	return report
}

// PatchLaunch makes sure launch.json has a configuration of the managed
// debugger type. Only the "type" field is compared.
func (p *Patcher) PatchLaunch(ctx context.Context, path string) Outcome {
	return p.patch(ctx, path, DefaultLaunch(p.DebuggerType), func(doc []byte) ([]byte, Outcome, error) {
		configurations := gjson.GetBytes(doc, "configurations")
		if !configurations.IsArray() {
			return nil, Skipped, nil
		}

		for _, entry := range configurations.Array() {
			if entry.Get("type").String() == p.DebuggerType {
				return nil, Unchanged, nil
			}
		}

		updated, err := sjson.SetRawBytes(doc, "configurations.-1", []byte(attachConfiguration(p.DebuggerType)))
		return updated, Patched, err
	})
}

// PatchSettings points the solution key at the solution file name. A
// settings.json without a "files.exclude" section is not one idelinux
// manages and is skipped.
func (p *Patcher) PatchSettings(ctx context.Context, path, solutionFile string) Outcome {
	if solutionFile == "" {
		return Skipped
	}
	solution := filepath.Base(solutionFile)
	key := escapeKey(p.SolutionKey)

	return p.patch(ctx, path, DefaultSettings(p.SolutionKey, solution), func(doc []byte) ([]byte, Outcome, error) {
		if !gjson.GetBytes(doc, escapeKey("files.exclude")).Exists() {
			return nil, Skipped, nil
		}

		current := gjson.GetBytes(doc, key)
		if current.Type == gjson.String && current.Str == solution {
			return nil, Unchanged, nil
		}

		updated, err := sjson.SetBytes(doc, key, solution)
		return updated, Patched, err
	})
}

// PatchExtensions makes sure the extension is listed in "recommendations".
func (p *Patcher) PatchExtensions(ctx context.Context, path string) Outcome {
	return p.patch(ctx, path, DefaultExtensions(p.ExtensionID), func(doc []byte) ([]byte, Outcome, error) {
		recommendations := gjson.GetBytes(doc, "recommendations")
		if !recommendations.IsArray() {
			return nil, Skipped, nil
		}

		for _, entry := range recommendations.Array() {
			if entry.Type == gjson.String && entry.Str == p.ExtensionID {
				return nil, Unchanged, nil
			}
		}

		updated, err := sjson.SetBytes(doc, "recommendations.-1", p.ExtensionID)
		return updated, Patched, err
	})
}

// mergeFunc computes the patched document. It returns Patched with the new
// content, or another outcome and nil content when nothing is written.
type mergeFunc func(doc []byte) ([]byte, Outcome, error)

// patch runs the read-merge-write cycle for one document.
func (p *Patcher) patch(ctx context.Context, path, defaultContent string, merge mergeFunc) Outcome {
	outcome, err := patchFile(path, defaultContent, merge)

	event := logging.FromContext(ctx).Debug()
	if err != nil {
		event = logging.FromContext(ctx).Warn().Err(err)
	}
	event.
		Ctx(ctx).
		Str("component", "workspace").
		Str("operation", "patch").
		Str("file", path).
		Str("outcome", outcome.String()).
		Msg("workspace document processed")

	return outcome
}

func patchFile(path, defaultContent string, merge mergeFunc) (Outcome, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		if writeErr := writeFile(path, []byte(defaultContent)); writeErr != nil {
			return Failed, writeErr
		}
		return Created, nil
	}
	if err != nil {
		return Failed, fmt.Errorf("reading %s: %w", path, err)
	}

	if !gjson.ValidBytes(data) {
		return Unparsed, nil
	}

	updated, outcome, err := merge(data)
	if err != nil {
		return Failed, fmt.Errorf("patching %s: %w", path, err)
	}
	if outcome != Patched {
		return outcome, nil
	}

	if writeErr := writeFile(path, reindent(updated)); writeErr != nil {
		return Failed, writeErr
	}
	return Patched, nil
}

// reindent formats doc with four-space indentation, keeping key order.
func reindent(doc []byte) []byte {
	return pretty.PrettyOptions(doc, &pretty.Options{Indent: indent})
}

// writeFile replaces path with data through a temporary file in the same
// directory. An existing file keeps its permissions.
func writeFile(path string, data []byte) error {
	perm := fs.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		perm = info.Mode().Perm()
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file for %s: %w", path, err)
	}
	tmpPath := tmp.Name()

	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err = tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("closing %s: %w", path, err)
	}
	if err = os.Chmod(tmpPath, perm); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("setting permissions on %s: %w", path, err)
	}
	if err = os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("replacing %s: %w", path, err)
	}
	return nil
}
