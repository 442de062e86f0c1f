package sync_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/vaultsync/pkg/errors"
	"github.com/agentstation/vaultsync/pkg/sync"
)

func TestResultSummary(t *testing.T) {
	tests := []struct {
		name   string
		result *sync.Result
		want   string
	}{
		{
			name: "imported entries",
			result: &sync.Result{
				SourceCount:   10,
				DeltaCount:    3,
				ImportedCount: 3,
				Stage:         sync.StageDone,
				Status:        sync.StatusSuccess,
			},
			want: "Imported 3 of 10 source entries",
		},
		{
			name: "nothing to sync",
			result: &sync.Result{
				SourceCount: 10,
				DeltaCount:  0,
				Stage:       sync.StageDone,
				Status:      sync.StatusSuccess,
			},
			want: "Nothing to sync: destination already holds all 10 source entries",
		},
		{
			name: "dry run",
			result: &sync.Result{
				SourceCount: 10,
				DeltaCount:  4,
				DryRun:      true,
				Stage:       sync.StageReconciling,
				Status:      sync.StatusSuccess,
			},
			want: "Dry run: 4 of 10 source entries would be imported",
		},
		{
			name: "failure reports stage",
			result: &sync.Result{
				Stage:  sync.StageImporting,
				Status: sync.StatusFailed,
				Err:    errors.New("exit status 1"),
			},
			want: "Sync failed during importing: exit status 1",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.result.Summary())
		})
	}
}

func TestResultHasChanges(t *testing.T) {
	assert.True(t, (&sync.Result{DeltaCount: 1}).HasChanges())
	assert.False(t, (&sync.Result{DeltaCount: 0}).HasChanges())
}

func TestResultReport(t *testing.T) {
	t.Run("success run", func(t *testing.T) {
		started := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
		result := &sync.Result{
			SourceCount:      12,
			DestinationCount: 9,
			DeltaCount:       3,
			ImportedCount:    3,
			Stage:            sync.StageDone,
			Status:           sync.StatusSuccess,
			StartedAt:        started,
			Duration:         1500 * time.Millisecond,
		}

		report := result.Report()

		assert.Equal(t, sync.StatusSuccess, report.Status)
		assert.Equal(t, sync.StageDone, report.Stage)
		assert.Equal(t, 12, report.Source)
		assert.Equal(t, 9, report.Destination)
		assert.Equal(t, 3, report.Delta)
		assert.Equal(t, 3, report.Imported)
		assert.Equal(t, "1.5s", report.Duration)
		assert.Empty(t, report.Error)
	})

	t.Run("failed run carries error text", func(t *testing.T) {
		result := &sync.Result{
			Stage:  sync.StageExportingSource,
			Status: sync.StatusFailed,
			Err:    errors.NewExportError("lastpass", errors.New("exit status 1")),
		}

		report := result.Report()

		assert.Equal(t, sync.StatusFailed, report.Status)
		assert.Contains(t, report.Error, "export from lastpass failed")
	})
}

func TestWriteReport(t *testing.T) {
	t.Run("writes readable yaml", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "report.yaml")

		result := &sync.Result{
			SourceCount:      5,
			DestinationCount: 5,
			DeltaCount:       0,
			Stage:            sync.StageDone,
			Status:           sync.StatusSuccess,
			StartedAt:        time.Now(),
			Duration:         250 * time.Millisecond,
		}

		require.NoError(t, result.WriteReport(path))

		data, err := os.ReadFile(path)
		require.NoError(t, err)

		var report sync.Report
		require.NoError(t, yaml.Unmarshal(data, &report))
		assert.Equal(t, sync.StatusSuccess, report.Status)
		assert.Equal(t, 5, report.Source)
		assert.Equal(t, 0, report.Delta)
		assert.Equal(t, "250ms", report.Duration)
	})

	t.Run("unwritable path fails without write classification", func(t *testing.T) {
		result := &sync.Result{Stage: sync.StageDone, Status: sync.StatusSuccess}

		err := result.WriteReport(filepath.Join(t.TempDir(), "missing", "report.yaml"))

		require.Error(t, err)
		// A report failure is not an import payload write failure
		assert.False(t, errors.IsWriteFailed(err))
	})
}

func TestStageError(t *testing.T) {
	base := errors.NewImportError("bitwarden", "/tmp/f.csv", errors.New("exit status 1"))
	err := sync.NewStageError(sync.StageImporting, base)

	assert.Contains(t, err.Error(), "stage importing")
	assert.Equal(t, base, err.Unwrap())
	assert.True(t, errors.IsImportFailed(err))
}
