// Package sync defines the observable shape of a sync run: the pipeline
// stages, the terminal result with its entry counts, and the optional YAML
// run report. The pipeline itself lives in the root package; this package
// carries no secrets, only counts and stage names.
package sync

import (
	"fmt"
)

// Stage identifies a phase of the sync pipeline.
type Stage string

// Pipeline stages in execution order
const (
	// StageInit covers precondition checks: both CLIs present, both
	// vaults authenticated.
	StageInit Stage = "init"

	// StageExportingSource is the source vault export.
	StageExportingSource Stage = "exporting_source"

	// StageReadingDestination is the destination vault read.
	StageReadingDestination Stage = "reading_destination"

	// StageReconciling is the fingerprint delta computation.
	StageReconciling Stage = "reconciling"

	// StageWritingDelta is the import payload write.
	StageWritingDelta Stage = "writing_delta"

	// StageImporting is the destination vault import.
	StageImporting Stage = "importing"

	// StageDone means the pipeline ran to completion.
	StageDone Stage = "done"
)

// String returns the string representation of a stage.
func (s Stage) String() string {
	return string(s)
}

// Status is the terminal outcome of a sync run.
type Status string

// Terminal statuses
const (
	// StatusSuccess means the run completed, including the no-op case
	// where the destination already held every source entry.
	StatusSuccess Status = "success"

	// StatusFailed means the run stopped at some stage with an error.
	StatusFailed Status = "failed"
)

// String returns the string representation of a status.
func (s Status) String() string {
	return string(s)
}

// StageError records which pipeline stage a failure surfaced in. The
// underlying error keeps its failure class for exit-code mapping.
type StageError struct {
	Stage Stage
	Err   error
}

// Error implements the error interface
func (e *StageError) Error() string {
	return fmt.Sprintf("stage %s: %v", e.Stage, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *StageError) Unwrap() error {
	return e.Err
}

// NewStageError wraps err with the stage it surfaced in.
func NewStageError(stage Stage, err error) *StageError {
	return &StageError{Stage: stage, Err: err}
}
