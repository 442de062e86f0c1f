package sync

import (
	"fmt"
	"os"
	"time"

	"github.com/goccy/go-yaml"

	"github.com/agentstation/vaultsync/pkg/constants"
	"github.com/agentstation/vaultsync/pkg/errors"
)

// Result represents the complete result of a sync run.
type Result struct {
	// Entry counts per pipeline step
	SourceCount      int // Entries exported from the source vault
	DestinationCount int // Entries read from the destination vault
	DeltaCount       int // Source entries missing from the destination
	ImportedCount    int // Entries actually imported this run

	// Operation metadata
	DryRun    bool          // Whether this was a dry run
	Stage     Stage         // Last stage reached
	Status    Status        // Terminal outcome
	Err       error         // Failure cause when Status is StatusFailed
	StartedAt time.Time     // When the run began
	Duration  time.Duration // Wall-clock time for the run
}

// HasChanges returns true if the run found entries missing from the destination.
func (r *Result) HasChanges() bool {
	return r.DeltaCount > 0
}

// Summary returns a human-readable summary of the sync run.
func (r *Result) Summary() string {
	if r.Status == StatusFailed {
		return fmt.Sprintf("Sync failed during %s: %v", r.Stage, r.Err)
	}

	if !r.HasChanges() {
		return fmt.Sprintf("Nothing to sync: destination already holds all %d source entries", r.SourceCount)
	}

	if r.DryRun {
		return fmt.Sprintf("Dry run: %d of %d source entries would be imported", r.DeltaCount, r.SourceCount)
	}

	return fmt.Sprintf("Imported %d of %d source entries", r.ImportedCount, r.SourceCount)
}

// Report is the YAML-serializable rendering of a Result. Counts and stage
// names only; entries never appear in a report.
type Report struct {
	Status      Status    `yaml:"status"`
	Stage       Stage     `yaml:"stage"`
	DryRun      bool      `yaml:"dry_run"`
	Source      int       `yaml:"source_entries"`
	Destination int       `yaml:"destination_entries"`
	Delta       int       `yaml:"delta_entries"`
	Imported    int       `yaml:"imported_entries"`
	StartedAt   time.Time `yaml:"started_at"`
	Duration    string    `yaml:"duration"`
	Error       string    `yaml:"error,omitempty"`
}

// Report converts the result to its serializable form.
func (r *Result) Report() *Report {
	report := &Report{
		Status:      r.Status,
		Stage:       r.Stage,
		DryRun:      r.DryRun,
		Source:      r.SourceCount,
		Destination: r.DestinationCount,
		Delta:       r.DeltaCount,
		Imported:    r.ImportedCount,
		StartedAt:   r.StartedAt,
		Duration:    r.Duration.String(),
	}
	if r.Err != nil {
		report.Error = r.Err.Error()
	}
	return report
}

// WriteReport writes the YAML run report to path.
func (r *Result) WriteReport(path string) error {
	data, err := yaml.Marshal(r.Report())
	if err != nil {
		return errors.WrapIO("report", path, err)
	}
	if err := os.WriteFile(path, data, constants.FilePermissions); err != nil {
		return errors.WrapIO("report", path, err)
	}
	return nil
}
