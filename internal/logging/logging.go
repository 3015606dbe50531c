// Package logging provides zerolog-based structured logging for idelinux.
//
// Loggers travel through context.Context: callers attach one with
// zerolog's WithContext and packages retrieve it with FromContext. Every
// event logged with .Ctx(ctx) is stamped with the trace ID stored in that
// context, so a single discovery or sync run can be followed across
// components.
package logging

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Supported output formats.
const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

// Config describes how a logger should be built.
type Config struct {
	// Level is a zerolog level name; unknown values fall back to info.
	Level string
	// Format is "console" (human readable) or "json".
	Format string
	// File, when set, sends log output to this file instead of stderr.
	File string
	// Caller adds the caller's file:line to every event.
	Caller bool
}

// Result is the outcome of NewLogger.
type Result struct {
	Logger zerolog.Logger

	// FilePath is the log file in use, empty when logging to stderr.
	FilePath string
	// UsingFile reports whether output goes to FilePath.
	UsingFile bool
	// FallbackUsed is true when a file was requested but could not be opened.
	FallbackUsed   bool
	FallbackReason string

	file *os.File
}

// Close releases the log file, if any. It is safe to call more than once.
func (r *Result) Close() error {
	if r == nil || r.file == nil {
		return nil
	}
	err := r.file.Close()
	r.file = nil
	return err
}

// ParseLevel converts a level name to a zerolog level, defaulting to info.
func ParseLevel(level string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}

// NewLogger builds a logger from cfg. Console output goes to stderr. If the
// configured log file cannot be opened the logger falls back to stderr and
// the reason is reported in the result rather than as an error.
func NewLogger(cfg Config, stderr io.Writer) Result {
	if stderr == nil {
		stderr = os.Stderr
	}

	var result Result
	out := stderr

	if cfg.File != "" {
		f, err := os.OpenFile(cfg.File, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
		if err != nil {
			result.FallbackUsed = true
			result.FallbackReason = err.Error()
		} else {
			result.file = f
			result.FilePath = cfg.File
			result.UsingFile = true
			out = f
		}
	}

	if cfg.Format != FormatJSON && !result.UsingFile {
		out = zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: time.RFC3339,
		}
	}

	ctx := zerolog.New(out).
		Level(ParseLevel(cfg.Level)).
		Hook(traceHook{}).
		With().
		Timestamp()
	if cfg.Caller {
		ctx = ctx.Caller()
	}
	result.Logger = ctx.Logger()

	return result
}

// FromContext returns the logger stored in ctx. Without one it returns a
// disabled logger so library code can always log unconditionally.
func FromContext(ctx context.Context) *zerolog.Logger {
	if ctx == nil {
		return zerolog.Ctx(context.Background())
	}
	return zerolog.Ctx(ctx)
}

// ComponentLogger returns a child logger tagged with the component name.
func ComponentLogger(l zerolog.Logger, component string) zerolog.Logger {
	return l.With().Str("component", component).Logger()
}

// PrintFallbackWarning tells the user that file logging is unavailable.
func PrintFallbackWarning(w io.Writer, reason string) {
	_, _ = fmt.Fprintf(w, "Warning: could not open log file, logging to stderr: %s\n", reason)
}
