package config

import "github.com/rshade/idelinux/internal/logging"

// ToLoggingConfig converts the logging section for logging.NewLogger.
func (lc LoggingConfig) ToLoggingConfig() logging.Config {
	return logging.Config{
		Level:  lc.Level,
		Format: lc.Format,
		File:   lc.File,
	}
}
