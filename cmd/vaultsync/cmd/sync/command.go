// Package sync implements the `vaultsync sync` command, which runs the
// one-way LastPass to Bitwarden pipeline.
package sync

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/agentstation/vaultsync/cmd/application"
	"github.com/agentstation/vaultsync/pkg/logging"
	pkgsync "github.com/agentstation/vaultsync/pkg/sync"
)

// Flags holds the sync command's flag values.
type Flags struct {
	DryRun  bool
	Report  string
	Timeout time.Duration
}

// NewCommand creates the sync command using app context. The defaults
// struct seeds flag defaults from the app configuration so that
// command-line flags keep the highest precedence.
func NewCommand(app application.Application, defaults *Flags) *cobra.Command {
	var flags *Flags

	cmd := &cobra.Command{
		Use:     "sync",
		GroupID: "core",
		Short:   "Copy missing LastPass entries into Bitwarden",
		Long: `Sync exports the LastPass vault, reads the Bitwarden vault, and imports
the entries Bitwarden does not already hold.

The pipeline:

1. Verify both CLIs are installed and both vault sessions are unlocked
2. Export all LastPass credentials (lpass export)
3. Read current Bitwarden login items (bw list items)
4. Reconcile: keep source entries absent from the destination
5. Stage the missing entries as an owner-only CSV and import it (bw import)

Nothing is ever written back to LastPass, and existing Bitwarden entries
are never modified or deleted. The staged file is removed before the
command returns, whether the run succeeds or fails.`,
		Example: `  vaultsync sync                      # Full sync
  vaultsync sync --dry-run            # Preview without importing
  vaultsync sync --report run.yaml    # Write a YAML run report
  vaultsync sync --timeout 5m         # Bound the whole run`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			return ExecuteSync(ctx, cmd, app, flags)
		},
	}

	// Add sync-specific flags
	flags = addSyncFlags(cmd, defaults)

	return cmd
}

// ExecuteSync runs the pipeline and prints the run summary on success.
// Failures propagate to the root error handler, which maps them to the
// exit status for their failure class.
func ExecuteSync(ctx context.Context, cmd *cobra.Command, app application.Application, flags *Flags) error {
	syncer, err := app.Syncer()
	if err != nil {
		return err
	}

	// Hand the app logger to the engine through the context
	ctx = logging.WithLogger(ctx, app.Logger())

	result, err := syncer.Sync(ctx, buildSyncOptions(flags)...)
	if err != nil {
		return err
	}

	cmd.Println(result.Summary())
	return nil
}

// buildSyncOptions converts flag values into engine run options.
func buildSyncOptions(flags *Flags) []pkgsync.Option {
	var opts []pkgsync.Option

	if flags.DryRun {
		opts = append(opts, pkgsync.WithDryRun(true))
	}
	if flags.Report != "" {
		opts = append(opts, pkgsync.WithReportPath(flags.Report))
	}
	if flags.Timeout > 0 {
		opts = append(opts, pkgsync.WithTimeout(flags.Timeout))
	}

	return opts
}

// addSyncFlags defines sync-specific flags and returns the bound struct.
func addSyncFlags(cmd *cobra.Command, defaults *Flags) *Flags {
	flags := &Flags{}

	cmd.Flags().BoolVar(&flags.DryRun, "dry-run", defaults.DryRun, "reconcile and report without importing anything")
	cmd.Flags().StringVar(&flags.Report, "report", defaults.Report, "write a YAML run report to this file")
	cmd.Flags().DurationVar(&flags.Timeout, "timeout", defaults.Timeout, "overall time budget for the run")

	return flags
}
