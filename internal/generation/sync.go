package generation

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rshade/idelinux/internal/discovery"
	"github.com/rshade/idelinux/internal/logging"
	"github.com/rshade/idelinux/internal/workspace"
)

// Request describes one synchronization.
type Request struct {
	ProjectDir string
	// SolutionFile defaults to SolutionPath(ProjectDir).
	SolutionFile string
	// Patch forces the workspace patcher even when .vscode already exists.
	Patch bool
}

// Result is what a synchronization did.
type Result struct {
	// Installation is the editor generated for; Found is false when none
	// was configured or discovered.
	Installation discovery.Installation
	Found        bool
	// Discovered is true when the installation came from a full scan
	// rather than the current editor.
	Discovered bool

	GenerateErr error

	Patched bool
	Report  workspace.Report
}

// Synchronizer runs the generation flow.
type Synchronizer struct {
	Discoverer *discovery.Discoverer
	Editor     *EditorContext
	Generator  Generator
	Patcher    *workspace.Patcher
}

// Sync generates the project for the current editor when it resolves to a
// known installation; otherwise it scans, logs every installation found and
// makes the best one current for the duration of generation. The previous
// editor is restored afterwards, also when generation panics. A generator
// failure is logged and recorded, not returned.
func (s *Synchronizer) Sync(ctx context.Context, req Request) Result {
	log := logging.FromContext(ctx)

	solution := req.SolutionFile
	if solution == "" {
		solution = SolutionPath(req.ProjectDir)
	}

	var result Result
	if inst, ok := s.Discoverer.Probe(ctx, s.Editor.Get()); ok {
		result.Installation, result.Found = inst, true
	} else {
		all := s.Discoverer.All(ctx)
		for _, found := range all {
			log.Info().
				Ctx(ctx).
				Str("component", "generation").
				Str("operation", "sync").
				Msg("Detected " + found.Details())
		}

		if best, ok := discovery.Best(all); ok {
			result.Installation, result.Found, result.Discovered = best, true, true
			restore := s.Editor.Swap(best.Path)
			defer restore()
		}
	}

	if !result.Found {
		log.Warn().
			Ctx(ctx).
			Str("component", "generation").
			Str("operation", "sync").
			Msg("no IDE installation found")
		return result
	}

	result.GenerateErr = s.generate(ctx, result.Installation)

	if req.Patch || !configDirExists(req.ProjectDir) {
		patcher := s.Patcher
		if patcher == nil {
			patcher = workspace.NewPatcher()
		}
		result.Report = patcher.Apply(ctx, req.ProjectDir, solution)
		result.Patched = true
	}

	log.Debug().
		Ctx(ctx).
		Str("component", "generation").
		Str("operation", "sync").
		Str("editor", result.Installation.Path).
		Bool("found", result.Found).
		Bool("patched", result.Patched).
		Msg("synchronization complete")

	return result
}

func (s *Synchronizer) generate(ctx context.Context, inst discovery.Installation) error {
	if s.Generator == nil {
		return nil
	}

	err := s.Generator.Generate(ctx, inst)
	if err != nil {
		logging.FromContext(ctx).Warn().
			Ctx(ctx).
			Str("component", "generation").
			Str("operation", "generate").
			Err(err).
			Msg("project generation failed")
	}
	return err
}

func configDirExists(projectDir string) bool {
	info, err := os.Stat(filepath.Join(projectDir, workspace.ConfigDir))
	if errors.Is(err, fs.ErrNotExist) {
		return false
	}
	return err == nil && info.IsDir()
}
