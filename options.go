package vaultsync

import (
	"fmt"
	"os"
	"time"

	"github.com/agentstation/vaultsync/pkg/constants"
	"github.com/agentstation/vaultsync/pkg/errors"
)

// options are the configured construction options for a client.
type options struct {
	source         Source
	destination    Destination
	lastpassCLI    string
	bitwardenCLI   string
	tempDir        string
	commandTimeout time.Duration
}

// defaults returns the default construction options.
func defaults() *options {
	return &options{
		lastpassCLI:    constants.DefaultLastPassCLI,
		bitwardenCLI:   constants.DefaultBitwardenCLI,
		tempDir:        "", // system temp dir
		commandTimeout: constants.DefaultCommandTimeout,
	}
}

// apply applies the given options.
func (o *options) apply(opts ...Option) *options {
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// validate checks the configured options.
func (o *options) validate() error {
	if o.lastpassCLI == "" {
		return &errors.ValidationError{
			Field:   "LastPassCLI",
			Value:   o.lastpassCLI,
			Message: "binary must not be empty",
		}
	}

	if o.bitwardenCLI == "" {
		return &errors.ValidationError{
			Field:   "BitwardenCLI",
			Value:   o.bitwardenCLI,
			Message: "binary must not be empty",
		}
	}

	if o.commandTimeout < 0 {
		return &errors.ValidationError{
			Field:   "CommandTimeout",
			Value:   o.commandTimeout,
			Message: "command timeout must be non-negative",
		}
	}

	if o.tempDir != "" {
		info, err := os.Stat(o.tempDir)
		if err != nil || !info.IsDir() {
			return &errors.ValidationError{
				Field:   "TempDir",
				Value:   o.tempDir,
				Message: fmt.Sprintf("directory '%s' does not exist", o.tempDir),
			}
		}
	}

	return nil
}

// Option is a function that configures a Syncer.
type Option func(*options)

// WithSource overrides the source vault client.
func WithSource(source Source) Option {
	return func(o *options) {
		o.source = source
	}
}

// WithDestination overrides the destination vault client.
func WithDestination(destination Destination) Option {
	return func(o *options) {
		o.destination = destination
	}
}

// WithLastPassCLI sets the lpass binary name or path to invoke.
func WithLastPassCLI(binary string) Option {
	return func(o *options) {
		o.lastpassCLI = binary
	}
}

// WithBitwardenCLI sets the bw binary name or path to invoke.
func WithBitwardenCLI(binary string) Option {
	return func(o *options) {
		o.bitwardenCLI = binary
	}
}

// WithTempDir sets the directory the import payload is staged in.
// Empty means the system temp dir.
func WithTempDir(dir string) Option {
	return func(o *options) {
		o.tempDir = dir
	}
}

// WithCommandTimeout bounds each individual CLI invocation.
func WithCommandTimeout(timeout time.Duration) Option {
	return func(o *options) {
		o.commandTimeout = timeout
	}
}
