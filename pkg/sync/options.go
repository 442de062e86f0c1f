package sync

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/agentstation/vaultsync/pkg/constants"
	"github.com/agentstation/vaultsync/pkg/errors"
)

// Options controls a single sync run.
type Options struct {
	// DryRun stops after reconciling and reports the would-be import count.
	// No temp file is created and the destination is never touched.
	DryRun bool

	// Timeout bounds the entire run. Zero means the default.
	Timeout time.Duration

	// ReportPath, when set, is where the YAML run report is written.
	ReportPath string
}

// Defaults returns the default sync options.
func Defaults() *Options {
	return &Options{
		DryRun:     false,
		Timeout:    constants.DefaultSyncTimeout,
		ReportPath: "",
	}
}

// Apply applies the given options.
func (o *Options) Apply(opts ...Option) *Options {
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Option is a function that configures sync Options.
type Option func(*Options)

// Validate checks if the sync options are valid.
func (o *Options) Validate() error {
	if o.Timeout < 0 {
		return &errors.ValidationError{
			Field:   "Timeout",
			Value:   o.Timeout,
			Message: "timeout must be non-negative",
		}
	}

	if o.ReportPath != "" {
		dir := filepath.Dir(o.ReportPath)
		if dir != "." && dir != "/" {
			if _, err := os.Stat(dir); os.IsNotExist(err) {
				return &errors.ValidationError{
					Field:   "ReportPath",
					Value:   o.ReportPath,
					Message: fmt.Sprintf("report directory '%s' does not exist", dir),
				}
			}
		}
	}

	return nil
}

// WithDryRun configures dry run mode.
func WithDryRun(dryRun bool) Option {
	return func(opts *Options) {
		opts.DryRun = dryRun
	}
}

// WithTimeout configures the timeout for the entire run.
func WithTimeout(timeout time.Duration) Option {
	return func(opts *Options) {
		opts.Timeout = timeout
	}
}

// WithReportPath configures where the YAML run report is written.
func WithReportPath(path string) Option {
	return func(opts *Options) {
		opts.ReportPath = path
	}
}
