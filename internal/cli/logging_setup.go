package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/rshade/idelinux/internal/config"
	"github.com/rshade/idelinux/internal/logging"
)

// setupLogging builds the logger from the config and the --debug flag and
// stores it, with a trace ID, in the command context.
func setupLogging(cmd *cobra.Command, loggingCfg config.LoggingConfig) logging.Result {
	debug, _ := cmd.Flags().GetBool("debug")
	if debug {
		loggingCfg.Level = "debug"
		loggingCfg.Format = logging.FormatConsole
		loggingCfg.File = ""
	}

	result := logging.NewLogger(loggingCfg.ToLoggingConfig(), cmd.ErrOrStderr())
	logger := logging.ComponentLogger(result.Logger, "cli")

	if result.FallbackUsed {
		logging.PrintFallbackWarning(cmd.ErrOrStderr(), result.FallbackReason)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	traceID := logging.GetOrGenerateTraceID(ctx)
	ctx = logging.ContextWithTraceID(ctx, traceID)
	ctx = logger.WithContext(ctx)
	cmd.SetContext(ctx)

	logger.Debug().Ctx(ctx).Str("command", cmd.Name()).Msg("command started")

	return result
}

// cleanupLogging closes the log file handle.
func cleanupLogging(_ *cobra.Command, logResult *logging.Result) error {
	if logResult != nil {
		return logResult.Close()
	}
	return nil
}
