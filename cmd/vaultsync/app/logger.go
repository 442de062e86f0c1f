package app

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/agentstation/vaultsync/pkg/logging"
)

// NewLogger builds the process logger from the resolved configuration.
//
// The effective level comes from, in order: --log-level (LoadConfig folds
// LOG_LEVEL into the same field), then -q/--quiet, then -v/--verbose, then
// "info". Caller annotations switch on automatically at debug and below.
func NewLogger(config *Config) zerolog.Logger {
	level := resolveLevel(config)

	return logging.NewLoggerFromConfig(&logging.Config{
		Level:     level,
		Format:    config.LogFormat,
		Output:    config.LogOutput,
		NoColor:   config.NoColor,
		AddCaller: level == "debug" || level == "trace",
	})
}

// resolveLevel applies the level precedence rules to the configuration.
func resolveLevel(config *Config) string {
	if config.LogLevel != "" {
		return normalizeLevel(config.LogLevel)
	}

	switch {
	case config.Verbose && config.Quiet:
		// Quiet is the more restrictive of the two, so it wins.
		fmt.Fprintln(os.Stderr, "Warning: both --verbose and --quiet specified, using --quiet")
		return "warn"
	case config.Quiet:
		return "warn"
	case config.Verbose:
		return "debug"
	}

	return "info"
}

// normalizeLevel returns level if it names a zerolog level this tool
// accepts, and falls back to "info" with a warning otherwise.
func normalizeLevel(level string) string {
	switch level {
	case "trace", "debug", "info", "warn", "error":
		return level
	}

	fmt.Fprintf(os.Stderr, "Warning: invalid log level %q, using \"info\"\n", level)
	return "info"
}
