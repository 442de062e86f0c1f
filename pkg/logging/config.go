package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/agentstation/vaultsync/pkg/constants"
)

// Config holds logger construction options.
type Config struct {
	// Level is the minimum level to emit (trace, debug, info, warn, error).
	Level string

	// Format selects the encoding: "console", "json", or "auto" to pick
	// console on a terminal and JSON everywhere else.
	Format string

	// Output is where log lines go: "stderr", "stdout", "discard", or a
	// file path. Summaries print to stdout, so logs default to stderr.
	Output string

	// TimeFormat names the console timestamp layout (kitchen, rfc3339, ...).
	// JSON output always uses zerolog's native timestamp.
	TimeFormat string

	// NoColor disables color in console output.
	NoColor bool

	// AddCaller includes file:line in every event.
	AddCaller bool
}

// DefaultConfig returns the configuration used when nothing is specified:
// info level, format auto-detected, stderr output.
func DefaultConfig() *Config {
	return &Config{
		Level:      "info",
		Format:     "auto",
		Output:     "stderr",
		TimeFormat: "kitchen",
		NoColor:    os.Getenv("NO_COLOR") != "",
	}
}

// EnvConfig returns DefaultConfig overridden by the LOG_* environment
// variables (LOG_LEVEL, LOG_FORMAT, LOG_OUTPUT, LOG_TIME_FORMAT,
// LOG_CALLER).
func EnvConfig() *Config {
	cfg := DefaultConfig()
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Level = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.Format = v
	}
	if v := os.Getenv("LOG_OUTPUT"); v != "" {
		cfg.Output = v
	}
	if v := os.Getenv("LOG_TIME_FORMAT"); v != "" {
		cfg.TimeFormat = v
	}
	cfg.AddCaller = os.Getenv("LOG_CALLER") == "true"
	return cfg
}

// NewLoggerFromConfig builds a logger from cfg. The parsed level also
// becomes the zerolog global level, so child loggers created with New
// inherit it.
func NewLoggerFromConfig(cfg *Config) zerolog.Logger {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	level := parseLevel(cfg.Level)
	zerolog.SetGlobalLevel(level)

	logger := zerolog.New(getWriter(cfg)).
		Level(level).
		With().
		Timestamp().
		Logger()

	if cfg.AddCaller || level <= zerolog.DebugLevel {
		logger = logger.With().Caller().Logger()
	}

	return logger
}

// Configure replaces the default logger with one built from cfg.
func Configure(cfg *Config) {
	SetDefault(NewLoggerFromConfig(cfg))
}

// ConfigureFromEnv replaces the default logger using the LOG_* environment.
func ConfigureFromEnv() {
	Configure(EnvConfig())
}

// getWriter assembles the configured writer: the raw output stream for
// JSON, or a ConsoleWriter wrapping it for console output.
func getWriter(cfg *Config) io.Writer {
	out := outputWriter(cfg.Output)

	switch resolveFormat(cfg.Format, out) {
	case "console", "pretty":
		return zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: parseTimeFormat(cfg.TimeFormat),
			NoColor:    cfg.NoColor,
		}
	default:
		return out
	}
}

// outputWriter maps an output name to a writer. Unrecognized names are
// file paths; a path that cannot be opened falls back to stderr so a bad
// log destination never stops a sync run.
func outputWriter(name string) io.Writer {
	switch strings.ToLower(name) {
	case "", "stderr":
		return os.Stderr
	case "stdout":
		return os.Stdout
	case "discard", "none":
		return io.Discard
	}

	f, err := os.OpenFile(name, os.O_CREATE|os.O_APPEND|os.O_WRONLY, constants.FilePermissions)
	if err != nil {
		return os.Stderr
	}
	return f
}

// resolveFormat turns "auto" into "console" when the output is an
// interactive terminal and "json" otherwise, so piped and scripted runs
// get machine-readable logs without configuration.
func resolveFormat(format string, out io.Writer) string {
	format = strings.ToLower(format)
	if format != "" && format != "auto" {
		return format
	}

	if f, ok := out.(*os.File); ok {
		if info, err := f.Stat(); err == nil && info.Mode()&os.ModeCharDevice != 0 {
			return "console"
		}
	}
	return "json"
}

// parseLevel parses a level name, defaulting to info for anything
// unrecognized rather than failing logger construction.
func parseLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "", "info":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "disabled", "none", "off":
		return zerolog.Disabled
	}

	if l, err := zerolog.ParseLevel(strings.ToLower(level)); err == nil {
		return l
	}
	return zerolog.InfoLevel
}

// parseTimeFormat maps a timestamp layout name to its Go layout string.
// An unrecognized value that looks like a reference layout is used as-is.
func parseTimeFormat(format string) string {
	switch strings.ToLower(format) {
	case "", "kitchen":
		return time.Kitchen
	case "rfc3339":
		return time.RFC3339
	case "rfc3339nano":
		return time.RFC3339Nano
	case "unix", "epoch":
		return "" // zerolog renders Unix timestamps for an empty layout
	}

	if strings.Contains(format, "2006") || strings.Contains(format, "15:04") {
		return format
	}
	return time.Kitchen
}
