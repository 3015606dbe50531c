package config

import (
	"context"
	"os"
	"path/filepath"

	"github.com/rshade/idelinux/internal/logging"
)

// ProjectFileName is the per-project overlay file.
const ProjectFileName = ".idelinux.yaml"

// WithProject returns a copy of base with the project overlay in
// projectDir merged on top. Environment overrides are reapplied to the
// merged result. A missing, broken or invalid overlay leaves the copy equal
// to base.
func WithProject(ctx context.Context, base *Config, projectDir string) *Config {
	merged := *base
	merged.Editor.Families = append([]string(nil), base.Editor.Families...)

	if projectDir == "" {
		return &merged
	}

	overlayPath := filepath.Join(projectDir, ProjectFileName)
	if _, err := os.Stat(overlayPath); err != nil {
		return &merged
	}

	candidate := merged
	if err := ShallowMergeYAML(&candidate, overlayPath); err != nil {
		logging.FromContext(ctx).Warn().
			Ctx(ctx).
			Str("component", "config").
			Str("operation", "merge_project_config").
			Str("overlay_path", overlayPath).
			Err(err).
			Msg("failed to merge project config, using global settings")
		return &merged
	}

	candidate.ApplyEnv()
	if err := candidate.Validate(); err != nil {
		logging.FromContext(ctx).Warn().
			Ctx(ctx).
			Str("component", "config").
			Str("operation", "merge_project_config").
			Str("overlay_path", overlayPath).
			Err(err).
			Msg("project config is invalid, using global settings")
		return &merged
	}
	return &candidate
}
