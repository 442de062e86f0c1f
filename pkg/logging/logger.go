// Package logging provides structured logging for the vaultsync system using zerolog.
// It offers a process-wide default logger, config-driven construction with
// console output for terminals and JSON for scripted environments, and a
// context carrier so the sync pipeline can thread one logger through its
// stages.
//
// Log events describe the sync pipeline in counts and stages only. Entry
// names, usernames, passwords, and notes never appear in log fields.
//
// Example usage:
//
//	log := logging.Default()
//	log.Info().Str("vault", "lastpass").Int("entries", 42).Msg("Export complete")
//
//	// Carry the logger through a sync run
//	ctx := logging.WithRunID(logging.WithLogger(context.Background(), log), runID)
//	logging.FromContext(ctx).Error().
//	    Err(err).
//	    Str("stage", "importing").
//	    Msg("Sync failed")
package logging

import (
	"io"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// defaultLogger is the process-wide logger, initialized from the LOG_*
// environment so library users get sane logging without any setup call.
var defaultLogger zerolog.Logger

func init() {
	defaultLogger = NewLoggerFromConfig(EnvConfig())
}

// Default returns the process-wide logger.
func Default() *zerolog.Logger {
	return &defaultLogger
}

// SetDefault replaces the process-wide logger.
func SetDefault(logger zerolog.Logger) {
	defaultLogger = logger
	log.Logger = logger // keep zerolog's own global in step
}

// New creates a JSON logger writing to w at the current global level.
func New(w io.Writer) zerolog.Logger {
	return zerolog.New(w).
		Level(zerolog.GlobalLevel()).
		With().
		Timestamp().
		Logger()
}

// With creates a child context on the default logger.
func With() zerolog.Context {
	return defaultLogger.With()
}

// Debug starts a new debug level log event on the default logger.
func Debug() *zerolog.Event {
	return defaultLogger.Debug()
}

// Info starts a new info level log event on the default logger.
func Info() *zerolog.Event {
	return defaultLogger.Info()
}

// Warn starts a new warning level log event on the default logger.
func Warn() *zerolog.Event {
	return defaultLogger.Warn()
}

// Error starts a new error level log event on the default logger.
func Error() *zerolog.Event {
	return defaultLogger.Error()
}

// Fatal starts a new fatal level log event (exits after logging).
func Fatal() *zerolog.Event {
	return defaultLogger.Fatal()
}

// Err starts an error or info level event depending on whether err is nil.
func Err(err error) *zerolog.Event {
	return defaultLogger.Err(err)
}
