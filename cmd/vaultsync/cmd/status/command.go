// Package status implements the `vaultsync status` command, a read-only
// readiness probe for the two vault CLIs.
package status

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/agentstation/vaultsync/cmd/application"
)

// NewCommand creates the status command using app context.
func NewCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:     "status",
		GroupID: "core",
		Short:   "Check vault CLI and session readiness",
		Long: `Status checks that the lpass and bw binaries are installed and reports
each vault's session state without logging in or reading any entries.

For each vault it shows whether the CLI was found on PATH and whether the
session is unlocked. The exit status is zero only when both vaults are
ready to sync.`,
		Example: `  vaultsync status                       # Check both vaults
  vaultsync status && vaultsync sync     # Sync only when both are ready`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runStatus(cmd, app)
		},
	}
}

// VaultStatus holds readiness details for one vault.
type VaultStatus struct {
	Vault     string
	Installed bool
	Ready     bool
	Detail    string

	err error
}

// vaultClient is the readiness surface shared by both vault clients.
type vaultClient interface {
	Name() string
	Installed() error
	Status(ctx context.Context) error
}

// runStatus probes both vaults and prints one line per vault. The first
// failure is returned after printing, so both vaults are always reported
// and the exit status reflects the first problem found.
func runStatus(cmd *cobra.Command, app application.Application) error {
	ctx := cmd.Context()

	syncer, err := app.Syncer()
	if err != nil {
		return err
	}

	statuses := collectVaultStatuses(ctx, syncer.Source(), syncer.Destination())

	var firstErr error
	for _, vs := range statuses {
		if vs.Ready {
			cmd.Printf("%-10s ready\n", vs.Vault)
			continue
		}
		cmd.Printf("%-10s %s\n", vs.Vault, vs.Detail)
		if firstErr == nil {
			firstErr = vs.err
		}
	}

	return firstErr
}

// collectVaultStatuses probes every vault and never stops early: a broken
// source must not hide the state of the destination.
func collectVaultStatuses(ctx context.Context, vaults ...vaultClient) []VaultStatus {
	statuses := make([]VaultStatus, 0, len(vaults))

	for _, v := range vaults {
		vs := VaultStatus{Vault: v.Name()}

		if err := v.Installed(); err != nil {
			vs.Detail = err.Error()
			vs.err = err
			statuses = append(statuses, vs)
			continue
		}
		vs.Installed = true

		if err := v.Status(ctx); err != nil {
			vs.Detail = err.Error()
			vs.err = err
			statuses = append(statuses, vs)
			continue
		}
		vs.Ready = true

		statuses = append(statuses, vs)
	}

	return statuses
}
