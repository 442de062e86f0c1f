package logging_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/agentstation/vaultsync/pkg/logging"
)

// swapDefault points the package logger at buf for the duration of the
// test and restores the original logger and global level afterwards.
func swapDefault(t *testing.T, buf *bytes.Buffer) {
	t.Helper()
	original := *logging.Default()
	originalLevel := zerolog.GlobalLevel()
	t.Cleanup(func() {
		logging.SetDefault(original)
		zerolog.SetGlobalLevel(originalLevel)
	})
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	logging.SetDefault(zerolog.New(buf).Level(zerolog.DebugLevel).With().Timestamp().Logger())
}

func TestDefaultLogger(t *testing.T) {
	buf := &bytes.Buffer{}
	swapDefault(t, buf)

	logging.Debug().Msg("debug message")
	logging.Info().Msg("info message")
	logging.Warn().Msg("warning message")
	logging.Error().Msg("error message")

	output := buf.String()
	for _, want := range []string{"debug message", "info message", "warning message", "error message"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in output, got: %s", want, output)
		}
	}
}

func TestErr(t *testing.T) {
	buf := &bytes.Buffer{}
	swapDefault(t, buf)

	logging.Err(errors.New("bw exited early")).Msg("import aborted")
	if !strings.Contains(buf.String(), `"error":"bw exited early"`) {
		t.Errorf("expected error field in output, got: %s", buf.String())
	}
	if !strings.Contains(buf.String(), `"level":"error"`) {
		t.Errorf("expected error level for non-nil error, got: %s", buf.String())
	}

	buf.Reset()
	logging.Err(nil).Msg("import finished")
	if !strings.Contains(buf.String(), `"level":"info"`) {
		t.Errorf("expected info level for nil error, got: %s", buf.String())
	}
}

func TestNew(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := logging.New(buf)

	logger.Info().Str("vault", "bitwarden").Msg("status checked")

	output := buf.String()
	if !strings.Contains(output, `"vault":"bitwarden"`) {
		t.Errorf("expected JSON field in output, got: %s", output)
	}
	if !strings.Contains(output, "status checked") {
		t.Errorf("expected message in output, got: %s", output)
	}
}

func TestWith(t *testing.T) {
	buf := &bytes.Buffer{}
	swapDefault(t, buf)

	logger := logging.With().Str("component", "engine").Logger()
	logger.Info().Msg("derived logger")

	if !strings.Contains(buf.String(), `"component":"engine"`) {
		t.Errorf("expected derived field in output, got: %s", buf.String())
	}
}

func TestLoggerLevel(t *testing.T) {
	originalLevel := zerolog.GlobalLevel()
	t.Cleanup(func() { zerolog.SetGlobalLevel(originalLevel) })

	buf := &bytes.Buffer{}
	logger := logging.NewLoggerFromConfig(&logging.Config{Level: "error", Format: "json", Output: "discard"})
	logger = logger.Output(buf)

	logger.Info().Msg("suppressed")
	logger.Error().Msg("kept")

	output := buf.String()
	if strings.Contains(output, "suppressed") {
		t.Errorf("info should be suppressed at error level, got: %s", output)
	}
	if !strings.Contains(output, "kept") {
		t.Errorf("expected error message in output, got: %s", output)
	}
}
