package vaultsync

import (
	"context"
	"time"

	"github.com/agentstation/vaultsync/pkg/logging"
	"github.com/agentstation/vaultsync/pkg/reconcile"
	pkgsync "github.com/agentstation/vaultsync/pkg/sync"
)

// Sync runs the staged pipeline: verify both CLIs and sessions, export the
// source vault, read the destination vault, reconcile by fingerprint, stage
// the missing entries as an import payload, and import them. The payload is
// removed on every exit path, success or failure.
func (c *client) Sync(ctx context.Context, opts ...pkgsync.Option) (*pkgsync.Result, error) {
	// Step 0: Tolerate a nil context from library callers
	if ctx == nil {
		ctx = context.Background()
	}

	// Step 1: Resolve and validate the run options
	options := pkgsync.Defaults().Apply(opts...)
	if err := options.Validate(); err != nil {
		return nil, err
	}

	// Step 2: Apply the run timeout
	cancel := context.CancelFunc(func() {})
	if options.Timeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, options.Timeout)
	}
	defer cancel()

	logger := logging.FromContext(ctx)

	result := &pkgsync.Result{
		DryRun:    options.DryRun,
		Stage:     pkgsync.StageInit,
		Status:    pkgsync.StatusFailed,
		StartedAt: time.Now(),
	}

	// fail records the stage the pipeline stopped in and wraps the cause,
	// so callers see both the stage and the failure class.
	fail := func(err error) (*pkgsync.Result, error) {
		stageErr := pkgsync.NewStageError(result.Stage, err)
		result.Err = stageErr
		result.Duration = time.Since(result.StartedAt)
		writeReport(ctx, result, options.ReportPath)
		return result, stageErr
	}

	// finish marks the run successful and writes the optional report.
	finish := func() (*pkgsync.Result, error) {
		result.Stage = pkgsync.StageDone
		result.Status = pkgsync.StatusSuccess
		result.Duration = time.Since(result.StartedAt)
		writeReport(ctx, result, options.ReportPath)
		return result, nil
	}

	logger.Info().
		Str("source", c.source.Name()).
		Str("destination", c.destination.Name()).
		Bool("dry_run", options.DryRun).
		Msg("Starting sync")

	// Step 3: Preconditions — both CLIs installed, both vaults authenticated
	if err := c.preflight(logging.WithStage(ctx, result.Stage.String())); err != nil {
		return fail(err)
	}

	// Step 4: Export the source vault
	result.Stage = pkgsync.StageExportingSource
	source, err := c.source.Export(logging.WithStage(ctx, result.Stage.String()))
	if err != nil {
		return fail(err)
	}
	result.SourceCount = len(source)

	// Step 5: Read the destination vault
	result.Stage = pkgsync.StageReadingDestination
	destination, err := c.destination.List(logging.WithStage(ctx, result.Stage.String()))
	if err != nil {
		return fail(err)
	}
	result.DestinationCount = len(destination)

	// Step 6: Fingerprint both sides and keep what the destination lacks
	result.Stage = pkgsync.StageReconciling
	delta := reconcile.Delta(source, destination)
	result.DeltaCount = len(delta)

	logger.Info().
		Int("source", result.SourceCount).
		Int("destination", result.DestinationCount).
		Int("delta", result.DeltaCount).
		Msg("Reconciled vaults")

	if result.DeltaCount == 0 {
		logger.Info().Msg("Nothing to sync")
		return finish()
	}

	if options.DryRun {
		logger.Info().Int("entries", result.DeltaCount).Msg("Dry run completed - no changes applied")
		return finish()
	}

	// Step 7: Stage the import payload
	result.Stage = pkgsync.StageWritingDelta
	payload, err := c.destination.WriteImportFile(c.options.tempDir, delta)
	if err != nil {
		return fail(err)
	}
	defer removePayload(ctx, payload)

	// Step 8: Import into the destination vault
	result.Stage = pkgsync.StageImporting
	if err := c.destination.Import(logging.WithStage(ctx, result.Stage.String()), payload.Name()); err != nil {
		return fail(err)
	}
	result.ImportedCount = result.DeltaCount

	logger.Info().
		Int("imported", result.ImportedCount).
		Msg("Sync completed successfully")

	return finish()
}
