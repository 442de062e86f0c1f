// Package vaultsync provides one-way synchronization of credential entries
// from a LastPass vault into a Bitwarden vault, mediated entirely by the two
// official CLIs (lpass, bw).
//
// A sync run exports the source vault, reads the destination vault,
// fingerprints both sides, and imports only the entries the destination is
// missing. Existing destination entries are never modified or deleted.
// Entry data stays in memory except for the staged import payload, which is
// written with owner-only permissions and removed on every exit path.
//
// Example usage:
//
//	s, err := vaultsync.New()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := s.Sync(ctx, sync.WithDryRun(true))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Summary())
package vaultsync

import (
	"context"

	"github.com/agentstation/vaultsync/internal/sources/bitwarden"
	"github.com/agentstation/vaultsync/internal/sources/lastpass"
	"github.com/agentstation/vaultsync/pkg/sync"
	"github.com/agentstation/vaultsync/pkg/tempfile"
	"github.com/agentstation/vaultsync/pkg/vault"
)

// Compile-time interface checks to ensure proper implementation.
var (
	_ Syncer      = (*client)(nil)
	_ Source      = (*lastpass.Client)(nil)
	_ Destination = (*bitwarden.Client)(nil)
)

// Source exports credential entries from the vault being synced from.
type Source interface {
	// Name identifies the vault in logs and summaries.
	Name() string

	// Installed verifies the vault's CLI is available on PATH.
	Installed() error

	// Status verifies the vault session is usable. It never attempts
	// a login.
	Status(ctx context.Context) error

	// Export returns every entry in the vault, preserving vault order.
	Export(ctx context.Context) ([]vault.Entry, error)
}

// Destination reads and imports entries in the vault being synced into.
type Destination interface {
	// Name identifies the vault in logs and summaries.
	Name() string

	// Installed verifies the vault's CLI is available on PATH.
	Installed() error

	// Status verifies the vault is unlocked. It never attempts a login
	// or unlock.
	Status(ctx context.Context) error

	// List returns the login entries currently in the vault.
	List(ctx context.Context) ([]vault.Entry, error)

	// WriteImportFile stages entries as an import payload under dir.
	// Ownership of the returned file passes to the caller.
	WriteImportFile(dir string, entries []vault.Entry) (*tempfile.File, error)

	// Import loads a staged payload into the vault. It never removes
	// the file.
	Import(ctx context.Context, path string) error
}

// Vaults provides access to the configured vault clients.
type Vaults interface {
	// Source returns the source vault client
	Source() Source

	// Destination returns the destination vault client
	Destination() Destination
}

// Syncer runs one-way credential syncs from a source vault into a
// destination vault.
type Syncer interface {

	// Vaults provides access to the configured vault clients
	Vaults

	// Sync runs the pipeline once. The returned result is populated on
	// failed runs too, so callers can report the stage that failed along
	// with the cause.
	Sync(ctx context.Context, opts ...sync.Option) (*sync.Result, error)
}

// client is the internal implementation of the Syncer interface.
type client struct {

	// options are the configured options for the client
	options *options

	// vault clients
	source      Source
	destination Destination
}

// New creates a new Syncer with the given options. Without overrides it
// drives the lpass and bw binaries found on PATH.
func New(opts ...Option) (Syncer, error) {
	c := &client{
		options: defaults().apply(opts...),
	}

	if err := c.options.validate(); err != nil {
		return nil, err
	}

	// Use injected clients when provided, otherwise build the CLI-backed
	// defaults from the configured binaries.
	c.source = c.options.source
	if c.source == nil {
		c.source = lastpass.New(
			lastpass.WithBinary(c.options.lastpassCLI),
			lastpass.WithCommandTimeout(c.options.commandTimeout),
		)
	}

	c.destination = c.options.destination
	if c.destination == nil {
		c.destination = bitwarden.New(
			bitwarden.WithBinary(c.options.bitwardenCLI),
			bitwarden.WithCommandTimeout(c.options.commandTimeout),
		)
	}

	return c, nil
}

// Source returns the source vault client.
func (c *client) Source() Source { return c.source }

// Destination returns the destination vault client.
func (c *client) Destination() Destination { return c.destination }
