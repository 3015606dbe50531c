// Package config loads and saves the idelinux YAML configuration.
//
// The global file lives at <Dir()>/config.yaml. A project may carry an
// .idelinux.yaml overlay whose top-level sections replace the global ones.
// Environment variables override both.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/rshade/idelinux/internal/family"
	"github.com/rshade/idelinux/internal/logging"
)

// FileName is the name of the global config file inside Dir().
const FileName = "config.yaml"

// Environment variables read by the config layer.
const (
	EnvHome      = "IDELINUX_HOME"
	EnvLogLevel  = "IDELINUX_LOG_LEVEL"
	EnvLogFormat = "IDELINUX_LOG_FORMAT"
	EnvEditor    = "IDELINUX_EDITOR"
)

// DefaultMessagingPort is the UDP port of the messaging socket.
const DefaultMessagingPort = 56002

// ErrInvalidConfig indicates a configuration value is out of range.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config is the idelinux configuration.
type Config struct {
	Logging   LoggingConfig   `yaml:"logging"`
	Editor    EditorConfig    `yaml:"editor"`
	Workspace WorkspaceConfig `yaml:"workspace"`
	Messaging MessagingConfig `yaml:"messaging"`
}

// LoggingConfig configures the logger.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file,omitempty"`
}

// EditorConfig selects the editor.
type EditorConfig struct {
	// Path is the configured editor executable; empty means discover.
	Path string `yaml:"path,omitempty"`
	// Families limits discovery to these family ids; empty means all.
	Families []string `yaml:"families,omitempty"`
}

// WorkspaceConfig controls the .vscode patcher.
type WorkspaceConfig struct {
	// Patch forces patching on every sync, not only when .vscode is missing.
	Patch bool `yaml:"patch"`
}

// MessagingConfig configures the messaging socket.
type MessagingConfig struct {
	Port int `yaml:"port"`
}

// New returns the default configuration.
func New() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:  "info",
			Format: logging.FormatConsole,
		},
		Messaging: MessagingConfig{
			Port: DefaultMessagingPort,
		},
	}
}

// Dir returns the configuration directory: $IDELINUX_HOME, or ~/.idelinux.
func Dir() (string, error) {
	if home := os.Getenv(EnvHome); home != "" {
		return home, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(homeDir, ".idelinux"), nil
}

// DefaultPath returns the path of the global config file.
func DefaultPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, FileName), nil
}

// Load reads path on top of the defaults and applies environment
// overrides. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := New()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	default:
		if err = yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", path, err)
		}
	}

	cfg.ApplyEnv()
	return cfg, nil
}

// ApplyEnv applies the IDELINUX_* environment overrides.
func (c *Config) ApplyEnv() {
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv(EnvLogFormat); v != "" {
		c.Logging.Format = v
	}
	if v := os.Getenv(EnvEditor); v != "" {
		c.Editor.Path = v
	}
}

// Save writes the configuration to path with 0600 permissions, creating
// the parent directory.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	dir := filepath.Dir(path)
	if err = os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp config in %s: %w", dir, err)
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmp.Name())
		}
	}()

	_, err = tmp.Write(data)
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return fmt.Errorf("writing config %s: %w", tmp.Name(), err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replacing config %s: %w", path, err)
	}
	return nil
}

// Validate checks the log settings, family ids and port range.
func (c *Config) Validate() error {
	var errs []error

	switch strings.ToLower(c.Logging.Level) {
	case "trace", "debug", "info", "warn", "error", "fatal", "panic", "disabled":
	default:
		errs = append(errs, fmt.Errorf("logging.level %q", c.Logging.Level))
	}

	switch c.Logging.Format {
	case logging.FormatConsole, logging.FormatJSON:
	default:
		errs = append(errs, fmt.Errorf("logging.format %q", c.Logging.Format))
	}

	known := family.Default()
	for _, id := range c.Editor.Families {
		if _, ok := known.Lookup(family.ID(id)); !ok {
			errs = append(errs, fmt.Errorf("editor.families: unknown family %q", id))
		}
	}

	if c.Messaging.Port < 0 || c.Messaging.Port > 65535 {
		errs = append(errs, fmt.Errorf("messaging.port %d out of range", c.Messaging.Port))
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
	}
	return nil
}

// FamilyIDs returns Editor.Families as family ids.
func (c *Config) FamilyIDs() []family.ID {
	if len(c.Editor.Families) == 0 {
		return nil
	}
	ids := make([]family.ID, 0, len(c.Editor.Families))
	for _, id := range c.Editor.Families {
		ids = append(ids, family.ID(id))
	}
	return ids
}
