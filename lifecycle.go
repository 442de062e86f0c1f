package vaultsync

import (
	"context"

	"github.com/agentstation/vaultsync/pkg/logging"
	pkgsync "github.com/agentstation/vaultsync/pkg/sync"
	"github.com/agentstation/vaultsync/pkg/tempfile"
)

// vaultClient is the precondition surface both vault clients share.
type vaultClient interface {
	Name() string
	Installed() error
	Status(ctx context.Context) error
}

// preflight verifies both CLIs are installed and both vault sessions are
// usable before any entry data moves. Failing fast here means a locked
// destination is reported before the source is ever exported.
func (c *client) preflight(ctx context.Context) error {
	logger := logging.FromContext(ctx)

	for _, vc := range []vaultClient{c.source, c.destination} {
		if err := vc.Installed(); err != nil {
			return err
		}
		logger.Debug().Str("vault", vc.Name()).Msg("CLI found")
	}

	for _, vc := range []vaultClient{c.source, c.destination} {
		if err := vc.Status(ctx); err != nil {
			return err
		}
		logger.Debug().Str("vault", vc.Name()).Msg("Vault session ready")
	}

	return nil
}

// removePayload removes the staged import payload. Cleanup problems are
// logged rather than returned: they never change a run's outcome.
func removePayload(ctx context.Context, f *tempfile.File) {
	if f == nil {
		return
	}
	if err := f.Remove(); err != nil {
		logging.FromContext(ctx).Warn().
			Err(err).
			Str("path", f.Name()).
			Msg("Could not remove import payload")
	}
}

// writeReport writes the optional YAML run report. The report is advisory
// output; problems writing it are logged, not returned.
func writeReport(ctx context.Context, result *pkgsync.Result, path string) {
	if path == "" {
		return
	}
	if err := result.WriteReport(path); err != nil {
		logging.FromContext(ctx).Warn().
			Err(err).
			Str("path", path).
			Msg("Could not write run report")
	}
}
