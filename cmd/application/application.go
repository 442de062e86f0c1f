// Package application defines the contract between the vaultsync application
// layer and its command implementations.
//
// Command packages accept the Application interface instead of the concrete
// App struct, which keeps them testable: a command under test receives a Mock
// with only the methods it touches filled in.
//
// Usage in Commands:
//
//	import (
//	    "github.com/agentstation/vaultsync/cmd/application"
//	)
//
//	func NewCommand(app application.Application) *cobra.Command {
//	    return &cobra.Command{
//	        RunE: func(cmd *cobra.Command, args []string) error {
//	            syncer, err := app.Syncer()
//	            if err != nil {
//	                return err
//	            }
//	            result, err := syncer.Sync(cmd.Context())
//	            // ... report result
//	            return err
//	        },
//	    }
//	}
//
// Testing with Mocks:
//
//	mock := &application.Mock{
//	    SyncerFunc: func(_ ...vaultsync.Option) (vaultsync.Syncer, error) {
//	        return testSyncer, nil
//	    },
//	}
//	cmd := NewCommand(mock)
//	// ... test command behavior
package application

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/vaultsync"
)

// Application is what commands need from the surrounding application: a sync
// engine, a logger, and build metadata. The App struct in cmd/vaultsync/app
// implements it.
//
// Implementations must be safe for concurrent use.
type Application interface {
	// Syncer returns the sync engine. Without options it returns the
	// process-wide instance, lazily built from the loaded configuration and
	// cached. With options it builds a fresh engine layered on the
	// configured defaults, bypassing the cache.
	//
	// Examples:
	//   s, err := app.Syncer()                 // default instance (cached)
	//   s, err := app.Syncer(opt1, opt2)       // custom instance (new)
	Syncer(opts ...vaultsync.Option) (vaultsync.Syncer, error)

	// Logger returns the process logger commands should log through.
	Logger() *zerolog.Logger

	// Build metadata, injected by the build via main.
	Version() string
	Commit() string
	Date() string
	BuiltBy() string
}
