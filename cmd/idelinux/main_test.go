package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rshade/idelinux/internal/cli"
	"github.com/rshade/idelinux/internal/config"
	"github.com/rshade/idelinux/pkg/version"
)

func TestMainComponents(t *testing.T) {
	t.Run("version available", func(t *testing.T) {
		assert.NotEmpty(t, version.GetVersion())
	})

	t.Run("cli root command", func(t *testing.T) {
		root := cli.NewRootCmd(version.GetVersion())
		assert.NotNil(t, root)
		assert.Equal(t, "idelinux", root.Use)
	})
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil error", nil, exitOK},
		{"no editor", cli.ErrNoInstallation, exitNoEditor},
		{"wrapped no editor", fmt.Errorf("select: %w", cli.ErrNoInstallation), exitNoEditor},
		{"invalid config", fmt.Errorf("config x: %w", config.ErrInvalidConfig), exitInvalidConfig},
		{"generic error", errors.New("boom"), exitError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, exitCode(tt.err))
		})
	}
}

func TestRun_Version(t *testing.T) {
	t.Setenv(config.EnvHome, t.TempDir())
	assert.Equal(t, exitOK, run([]string{"--version"}))
}

func TestRun_InvalidConfig(t *testing.T) {
	t.Setenv(config.EnvLogLevel, "verbose")
	path := filepath.Join(t.TempDir(), "config.yaml")

	assert.Equal(t, exitInvalidConfig, run([]string{"--config", path, "config", "show"}))
}
