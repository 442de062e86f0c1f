package application

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/vaultsync"
)

// Mock is a function-field test double for Application. Only the fields a
// test cares about need to be set; every nil field falls back to a harmless
// default, so a zero Mock can be handed straight to NewCommand.
//
//	mock := &application.Mock{
//	    SyncerFunc: func(_ ...vaultsync.Option) (vaultsync.Syncer, error) {
//	        return testSyncer, nil
//	    },
//	}
//	cmd := sync.NewCommand(mock, &sync.Flags{})
type Mock struct {
	SyncerFunc  func(opts ...vaultsync.Option) (vaultsync.Syncer, error)
	LoggerFunc  func() *zerolog.Logger
	VersionFunc func() string
	CommitFunc  func() string
	DateFunc    func() string
	BuiltByFunc func() string
}

var _ Application = (*Mock)(nil)

// Syncer calls SyncerFunc when set. The nil, nil fallback suits commands
// that never touch the engine.
func (m *Mock) Syncer(opts ...vaultsync.Option) (vaultsync.Syncer, error) {
	if m.SyncerFunc == nil {
		return nil, nil
	}
	return m.SyncerFunc(opts...)
}

// Logger calls LoggerFunc when set, otherwise returns a no-op logger so
// commands under test stay silent.
func (m *Mock) Logger() *zerolog.Logger {
	if m.LoggerFunc == nil {
		nop := zerolog.Nop()
		return &nop
	}
	return m.LoggerFunc()
}

// Build metadata accessors. Each returns its function field's value when
// set and a recognizable placeholder otherwise.

func (m *Mock) Version() string { return orElse(m.VersionFunc, "dev") }
func (m *Mock) Commit() string  { return orElse(m.CommitFunc, "unknown") }
func (m *Mock) Date() string    { return orElse(m.DateFunc, "unknown") }
func (m *Mock) BuiltBy() string { return orElse(m.BuiltByFunc, "test") }

func orElse(fn func() string, fallback string) string {
	if fn == nil {
		return fallback
	}
	return fn()
}
