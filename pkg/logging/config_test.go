package logging_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/vaultsync/pkg/logging"
)

// logFile returns a path for a test logger to write to and a reader for
// its contents.
func logFile(t *testing.T) (string, func() string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "vaultsync.log")
	return path, func() string {
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		return string(data)
	}
}

func TestConfig(t *testing.T) {
	originalLogger := *logging.Default()
	originalLevel := zerolog.GlobalLevel()
	defer func() {
		logging.SetDefault(originalLogger)
		zerolog.SetGlobalLevel(originalLevel)
	}()

	t.Run("DefaultConfig", func(t *testing.T) {
		cfg := logging.DefaultConfig()
		assert.Equal(t, "info", cfg.Level)
		assert.Equal(t, "auto", cfg.Format)
		assert.Equal(t, "stderr", cfg.Output)
		assert.False(t, cfg.AddCaller)
	})

	t.Run("EnvConfig overrides defaults", func(t *testing.T) {
		t.Setenv("LOG_LEVEL", "debug")
		t.Setenv("LOG_FORMAT", "json")
		t.Setenv("LOG_OUTPUT", "stdout")
		t.Setenv("LOG_CALLER", "true")

		cfg := logging.EnvConfig()
		assert.Equal(t, "debug", cfg.Level)
		assert.Equal(t, "json", cfg.Format)
		assert.Equal(t, "stdout", cfg.Output)
		assert.True(t, cfg.AddCaller)
	})

	t.Run("file output in JSON format", func(t *testing.T) {
		path, read := logFile(t)

		logger := logging.NewLoggerFromConfig(&logging.Config{
			Level:  "info",
			Format: "json",
			Output: path,
		})
		logger.Info().Str("vault", "lastpass").Int("entries", 3).Msg("Export complete")

		output := read()
		assert.Contains(t, output, `"vault":"lastpass"`)
		assert.Contains(t, output, `"entries":3`)
		assert.Contains(t, output, "Export complete")
	})

	t.Run("console format", func(t *testing.T) {
		path, read := logFile(t)

		logger := logging.NewLoggerFromConfig(&logging.Config{
			Level:   "info",
			Format:  "console",
			Output:  path,
			NoColor: true,
		})
		logger.Info().Msg("Reconciled vaults")

		output := read()
		assert.Contains(t, output, "Reconciled vaults")
		assert.Contains(t, output, "INF")
	})

	t.Run("Configure gates levels globally", func(t *testing.T) {
		path, read := logFile(t)

		logging.Configure(&logging.Config{
			Level:  "warn",
			Format: "json",
			Output: path,
		})

		logging.Debug().Msg("suppressed debug")
		logging.Info().Msg("suppressed info")
		logging.Warn().Msg("kept warn")
		logging.Error().Msg("kept error")

		output := read()
		assert.NotContains(t, output, "suppressed debug")
		assert.NotContains(t, output, "suppressed info")
		assert.Contains(t, output, "kept warn")
		assert.Contains(t, output, "kept error")
	})

	t.Run("ConfigureFromEnv applies LOG_LEVEL", func(t *testing.T) {
		t.Setenv("LOG_LEVEL", "error")
		t.Setenv("LOG_FORMAT", "json")

		logging.ConfigureFromEnv()
		assert.Equal(t, zerolog.ErrorLevel, zerolog.GlobalLevel())
	})

	t.Run("invalid level falls back to info", func(t *testing.T) {
		logging.NewLoggerFromConfig(&logging.Config{Level: "loud", Format: "json", Output: "discard"})
		assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())
	})

	t.Run("auto format with discard output", func(t *testing.T) {
		// Auto-detection must cope with outputs that are not files.
		assert.NotPanics(t, func() {
			logger := logging.NewLoggerFromConfig(&logging.Config{Format: "auto", Output: "discard"})
			logger.Info().Msg("dropped")
		})
	})

	t.Run("unwritable file path falls back to stderr", func(t *testing.T) {
		assert.NotPanics(t, func() {
			logging.NewLoggerFromConfig(&logging.Config{
				Level:  "error",
				Format: "json",
				Output: filepath.Join(t.TempDir(), "missing", "vaultsync.log"),
			})
		})
	})

	t.Run("nil config uses defaults", func(t *testing.T) {
		assert.NotPanics(t, func() {
			logging.NewLoggerFromConfig(nil)
		})
		assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())
	})
}
