package status

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/agentstation/vaultsync"
	"github.com/agentstation/vaultsync/cmd/application"
	"github.com/agentstation/vaultsync/pkg/errors"
	pkgsync "github.com/agentstation/vaultsync/pkg/sync"
	"github.com/agentstation/vaultsync/pkg/tempfile"
	"github.com/agentstation/vaultsync/pkg/vault"
)

// fakeVault implements the readiness probes for one vault.
type fakeVault struct {
	name       string
	installErr error
	statusErr  error
}

func (f *fakeVault) Name() string                   { return f.name }
func (f *fakeVault) Installed() error               { return f.installErr }
func (f *fakeVault) Status(_ context.Context) error { return f.statusErr }

// fakeSource extends fakeVault with the vaultsync.Source surface.
type fakeSource struct{ fakeVault }

func (f *fakeSource) Export(_ context.Context) ([]vault.Entry, error) { return nil, nil }

// fakeDestination extends fakeVault with the vaultsync.Destination surface.
type fakeDestination struct{ fakeVault }

func (f *fakeDestination) List(_ context.Context) ([]vault.Entry, error) { return nil, nil }
func (f *fakeDestination) WriteImportFile(_ string, _ []vault.Entry) (*tempfile.File, error) {
	return nil, nil
}
func (f *fakeDestination) Import(_ context.Context, _ string) error { return nil }

// fakeSyncer hands the command its two vault clients.
type fakeSyncer struct {
	source      vaultsync.Source
	destination vaultsync.Destination
}

func (f *fakeSyncer) Source() vaultsync.Source           { return f.source }
func (f *fakeSyncer) Destination() vaultsync.Destination { return f.destination }
func (f *fakeSyncer) Sync(_ context.Context, _ ...pkgsync.Option) (*pkgsync.Result, error) {
	return nil, nil
}

// execute runs the status command against the given vaults and captures output.
func execute(t *testing.T, src *fakeSource, dst *fakeDestination) (string, error) {
	t.Helper()

	mock := &application.Mock{
		SyncerFunc: func(_ ...vaultsync.Option) (vaultsync.Syncer, error) {
			return &fakeSyncer{source: src, destination: dst}, nil
		},
	}

	cmd := NewCommand(mock)
	// The root command silences cobra's usage and error output in
	// production; mirror that so failures don't echo the help text.
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(out)
	cmd.SetArgs(nil)

	err := cmd.Execute()
	return out.String(), err
}

func TestCollectVaultStatuses(t *testing.T) {
	tests := []struct {
		name          string
		vault         *fakeVault
		wantInstalled bool
		wantReady     bool
	}{
		{
			name:          "ready vault",
			vault:         &fakeVault{name: "lastpass"},
			wantInstalled: true,
			wantReady:     true,
		},
		{
			name: "CLI not installed",
			vault: &fakeVault{
				name:       "lastpass",
				installErr: errors.NewDependencyError("lpass", "not found in PATH"),
			},
			wantInstalled: false,
			wantReady:     false,
		},
		{
			name: "session locked",
			vault: &fakeVault{
				name:      "bitwarden",
				statusErr: errors.NewAuthenticationError("bitwarden", "run 'bw unlock'", nil),
			},
			wantInstalled: true,
			wantReady:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			statuses := collectVaultStatuses(context.Background(), tt.vault)

			if len(statuses) != 1 {
				t.Fatalf("collectVaultStatuses() returned %d statuses, want 1", len(statuses))
			}

			vs := statuses[0]
			if vs.Vault != tt.vault.name {
				t.Errorf("Vault = %q, want %q", vs.Vault, tt.vault.name)
			}
			if vs.Installed != tt.wantInstalled {
				t.Errorf("Installed = %v, want %v", vs.Installed, tt.wantInstalled)
			}
			if vs.Ready != tt.wantReady {
				t.Errorf("Ready = %v, want %v", vs.Ready, tt.wantReady)
			}
			if !tt.wantReady && vs.Detail == "" {
				t.Error("Detail should explain why the vault is not ready")
			}
			if tt.wantReady && vs.err != nil {
				t.Errorf("ready vault should carry no error, got %v", vs.err)
			}
		})
	}
}

// TestCollectVaultStatuses_ProbesAllVaults verifies a broken source does not
// hide the destination's state.
func TestCollectVaultStatuses_ProbesAllVaults(t *testing.T) {
	broken := &fakeVault{
		name:       "lastpass",
		installErr: errors.NewDependencyError("lpass", "not found in PATH"),
	}
	healthy := &fakeVault{name: "bitwarden"}

	statuses := collectVaultStatuses(context.Background(), broken, healthy)

	if len(statuses) != 2 {
		t.Fatalf("collectVaultStatuses() returned %d statuses, want 2", len(statuses))
	}
	if statuses[0].Ready {
		t.Error("broken vault reported ready")
	}
	if !statuses[1].Ready {
		t.Error("healthy vault not probed after a broken one")
	}
}

func TestStatusCommand_BothReady(t *testing.T) {
	src := &fakeSource{fakeVault{name: "lastpass"}}
	dst := &fakeDestination{fakeVault{name: "bitwarden"}}

	out, err := execute(t, src, dst)
	if err != nil {
		t.Fatalf("Execute() failed: %v", err)
	}

	if got := strings.Count(out, "ready"); got != 2 {
		t.Errorf("output should report both vaults ready, got %q", out)
	}
}

func TestStatusCommand_LockedDestination(t *testing.T) {
	src := &fakeSource{fakeVault{name: "lastpass"}}
	dst := &fakeDestination{fakeVault{
		name:      "bitwarden",
		statusErr: errors.NewAuthenticationError("bitwarden", "run 'bw unlock' and export BW_SESSION", nil),
	}}

	out, err := execute(t, src, dst)
	if err == nil {
		t.Fatal("Execute() should fail when a vault is locked")
	}

	if !errors.IsAuthenticationRequired(err) {
		t.Errorf("error should keep its failure class, got %v", err)
	}
	if errors.ExitCode(err) != errors.ExitAuthentication {
		t.Errorf("ExitCode = %d, want %d", errors.ExitCode(err), errors.ExitAuthentication)
	}

	// Both vaults are still reported
	if !strings.Contains(out, "lastpass") || !strings.Contains(out, "bitwarden") {
		t.Errorf("output should report both vaults, got %q", out)
	}
	if got := strings.Count(out, "ready"); got != 1 {
		t.Errorf("only the source should be ready, got %q", out)
	}
}

// TestStatusCommand_ReportsFirstError verifies the exit status reflects the
// first problem when both vaults fail.
func TestStatusCommand_ReportsFirstError(t *testing.T) {
	src := &fakeSource{fakeVault{
		name:       "lastpass",
		installErr: errors.NewDependencyError("lpass", "not found in PATH"),
	}}
	dst := &fakeDestination{fakeVault{
		name:      "bitwarden",
		statusErr: errors.NewAuthenticationError("bitwarden", "run 'bw unlock'", nil),
	}}

	out, err := execute(t, src, dst)
	if err == nil {
		t.Fatal("Execute() should fail when both vaults are broken")
	}

	if !errors.IsCLINotFound(err) {
		t.Errorf("first error (missing CLI) should win, got %v", err)
	}
	if strings.Contains(out, "ready") {
		t.Errorf("no vault should be ready, got %q", out)
	}
}
