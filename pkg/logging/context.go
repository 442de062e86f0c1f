package logging

import (
	"context"

	"github.com/rs/zerolog"
)

// contextKey is a private key type so this package's context values cannot
// collide with anyone else's.
type contextKey int

const (
	loggerKey contextKey = iota
	runIDKey
)

// WithLogger returns a context carrying logger. A nil logger stores the
// default, so downstream FromContext callers never see nil.
func WithLogger(ctx context.Context, logger *zerolog.Logger) context.Context {
	if logger == nil {
		logger = Default()
	}
	return context.WithValue(ctx, loggerKey, logger)
}

// FromContext returns the logger carried by ctx, or the default logger
// when ctx carries none. Safe to call with a nil context.
func FromContext(ctx context.Context) *zerolog.Logger {
	if ctx == nil {
		return Default()
	}
	if logger, ok := ctx.Value(loggerKey).(*zerolog.Logger); ok && logger != nil {
		return logger
	}
	return Default()
}

// WithRunID tags the context and its logger with a sync run identifier, so
// every event from one run can be grepped out of a shared log stream.
func WithRunID(ctx context.Context, runID string) context.Context {
	ctx = context.WithValue(ctx, runIDKey, runID)
	return WithField(ctx, "run_id", runID)
}

// RunID returns the run identifier set by WithRunID, or "".
func RunID(ctx context.Context) string {
	if id, ok := ctx.Value(runIDKey).(string); ok {
		return id
	}
	return ""
}

// WithField returns a context whose logger carries an extra field.
func WithField(ctx context.Context, key string, value any) context.Context {
	logger := FromContext(ctx).With()
	logger = appendField(logger, key, value)
	child := logger.Logger()
	return WithLogger(ctx, &child)
}

// WithFields returns a context whose logger carries all the given fields.
func WithFields(ctx context.Context, fields map[string]any) context.Context {
	logger := FromContext(ctx).With()
	for key, value := range fields {
		logger = appendField(logger, key, value)
	}
	child := logger.Logger()
	return WithLogger(ctx, &child)
}

// appendField adds one typed field to a logger context.
func appendField(c zerolog.Context, key string, value any) zerolog.Context {
	switch v := value.(type) {
	case string:
		return c.Str(key, v)
	case int:
		return c.Int(key, v)
	case int64:
		return c.Int64(key, v)
	case float64:
		return c.Float64(key, v)
	case bool:
		return c.Bool(key, v)
	case error:
		return c.AnErr(key, v)
	default:
		return c.Interface(key, v)
	}
}

// WithVault tags the context logger with the vault being operated on.
func WithVault(ctx context.Context, vault string) context.Context {
	return WithField(ctx, "vault", vault)
}

// WithStage tags the context logger with the current pipeline stage.
func WithStage(ctx context.Context, stage string) context.Context {
	return WithField(ctx, "stage", stage)
}

// WithOperation tags the context logger with the operation being run.
func WithOperation(ctx context.Context, operation string) context.Context {
	return WithField(ctx, "operation", operation)
}
