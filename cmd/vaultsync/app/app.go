// Package app wires the vaultsync CLI together: it loads configuration,
// builds the process logger, and hands commands a lazily constructed sync
// engine through the application.Application interface.
package app

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/agentstation/vaultsync"
	"github.com/agentstation/vaultsync/cmd/application"
)

// App holds the CLI's dependencies: build metadata, the loaded
// configuration, the process logger, and the cached sync engine.
type App struct {
	version string
	commit  string
	date    string
	builtBy string

	config *Config
	logger *zerolog.Logger

	// Guards the lazily built engine below.
	mu     sync.RWMutex
	syncer vaultsync.Syncer
}

// Ensure App implements the command-facing application interface.
var _ application.Application = (*App)(nil)

// New builds the application: configuration is loaded from files, the
// environment and defaults, the logger is derived from it, and any options
// are applied on top (options run last so tests can replace either).
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	config, err := LoadConfig()
	if err != nil {
		return nil, err
	}
	logger := NewLogger(config)

	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
		config:  config,
		logger:  &logger,
	}

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	return app, nil
}

// Config returns the loaded application configuration.
func (a *App) Config() *Config {
	return a.config
}

// Logger returns the process logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// Version returns the application version string.
func (a *App) Version() string { return a.version }

// Commit returns the git commit hash.
func (a *App) Commit() string { return a.commit }

// Date returns the build date.
func (a *App) Date() string { return a.date }

// BuiltBy returns the build system identifier.
func (a *App) BuiltBy() string { return a.builtBy }

// Syncer returns the sync engine. Without options it returns a cached
// process-wide instance, built on first use; concurrent callers are safe.
// With options it builds a fresh engine layered on the configured defaults,
// for commands that need settings different from the app instance (e.g. an
// alternate temp dir).
func (a *App) Syncer(opts ...vaultsync.Option) (vaultsync.Syncer, error) {
	if len(opts) > 0 {
		// Custom engines are never cached.
		return vaultsync.New(append(a.engineOptions(), opts...)...)
	}

	a.mu.RLock()
	s := a.syncer
	a.mu.RUnlock()
	if s != nil {
		return s, nil
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if a.syncer == nil {
		s, err := vaultsync.New(a.engineOptions()...)
		if err != nil {
			return nil, err
		}
		a.syncer = s
	}
	return a.syncer, nil
}

// engineOptions translates the loaded configuration into sync engine options.
func (a *App) engineOptions() []vaultsync.Option {
	var opts []vaultsync.Option
	if a.config.LastPassCLI != "" {
		opts = append(opts, vaultsync.WithLastPassCLI(a.config.LastPassCLI))
	}
	if a.config.BitwardenCLI != "" {
		opts = append(opts, vaultsync.WithBitwardenCLI(a.config.BitwardenCLI))
	}
	if a.config.TempDir != "" {
		opts = append(opts, vaultsync.WithTempDir(a.config.TempDir))
	}
	return opts
}

// Option customizes the App during New.
type Option func(*App) error

// WithConfig replaces the loaded configuration.
func WithConfig(config *Config) Option {
	return func(a *App) error {
		a.config = config
		return nil
	}
}

// WithLogger replaces the derived logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		return nil
	}
}

// WithSyncer seeds the engine cache, so commands under test get a fake.
func WithSyncer(s vaultsync.Syncer) Option {
	return func(a *App) error {
		a.syncer = s
		return nil
	}
}
