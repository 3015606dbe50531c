package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Top-level YAML config key names used for shallow merge.
const (
	keyLogging   = "logging"
	keyEditor    = "editor"
	keyWorkspace = "workspace"
	keyMessaging = "messaging"
)

// ShallowMergeYAML loads a YAML file and merges its top-level keys onto
// the target Config. Keys present in the overlay replace entire sections
// in the target. Keys absent in the overlay are left unchanged; unknown
// keys are ignored.
func ShallowMergeYAML(target *Config, overlayPath string) error {
	if target == nil {
		return errors.New("nil target *Config in ShallowMergeYAML")
	}

	data, err := os.ReadFile(overlayPath)
	if err != nil {
		return fmt.Errorf("reading overlay file %s: %w", overlayPath, err)
	}

	var overlay map[string]yaml.Node
	if err = yaml.Unmarshal(data, &overlay); err != nil {
		return fmt.Errorf("parsing overlay YAML from %s: %w", overlayPath, err)
	}

	for key, node := range overlay {
		if err = unmarshalSection(target, key, &node); err != nil {
			return fmt.Errorf("applying overlay section %q: %w", key, err)
		}
	}
	return nil
}

// unmarshalSection decodes node into a fresh value of the section's type
// so the section is replaced, not merged.
func unmarshalSection(target *Config, key string, node *yaml.Node) error {
	switch key {
	case keyLogging:
		var v LoggingConfig
		if err := node.Decode(&v); err != nil {
			return err
		}
		target.Logging = v
	case keyEditor:
		var v EditorConfig
		if err := node.Decode(&v); err != nil {
			return err
		}
		target.Editor = v
	case keyWorkspace:
		var v WorkspaceConfig
		if err := node.Decode(&v); err != nil {
			return err
		}
		target.Workspace = v
	case keyMessaging:
		var v MessagingConfig
		if err := node.Decode(&v); err != nil {
			return err
		}
		target.Messaging = v
	}
	return nil
}
