package migration

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/desertwitch/migover/internal/configuration"
	"github.com/desertwitch/migover/internal/queue"
	"github.com/desertwitch/migover/internal/schema"
	"github.com/desertwitch/migover/internal/validation"
)

// Migrate performs a one-shot migration of all regular files of a flat
// source directory into a target directory, as per the given
// [schema.Options].
//
// Write access to the target directory is established before any file is
// touched. Files whose target copy already matches the source content are
// skipped and never enter the rollback record. All content is written through
// digest-verified temporary files, with an outdated target copy only ever
// replaced by a fully verified one.
//
// A first failure aborts the migration with any remaining files left
// unprocessed, unless continuation was requested with
// [schema.Options.SkipOnError]. Files already migrated in a failed run remain
// in place for either a caller-driven rollback or an idempotent
// re-invocation.
//
// The given [queue.Manager] must be freshly established per invocation; its
// transfer queue carries the processing record and can be observed for
// progress while the migration is running.
//
// The returned [schema.Result] is always populated with the partial state of
// the run, also when a non-nil error is returned alongside it.
func (m *Handler) Migrate(ctx context.Context, queues *queue.Manager, sourceDir string, targetDir string, opts *schema.Options) (*schema.Result, error) {
	result := &schema.Result{StartedAt: time.Now()}

	if err := validation.ValidateRequest(sourceDir, targetDir, opts); err != nil {
		return finalize(result, fmt.Errorf("(migration) %w", err))
	}

	if err := m.fsHandler.CanReadDir(sourceDir); err != nil {
		return finalize(result, fmt.Errorf("(migration) %w: %w", ErrSourceUnreadable, err))
	}

	exists, err := m.fsHandler.Exists(targetDir)
	if err != nil {
		return finalize(result, fmt.Errorf("(migration) failed to check target existence: %w", err))
	}

	if !exists {
		if !opts.CreateTarget {
			return finalize(result, fmt.Errorf("(migration) %w: %s", ErrTargetMissing, targetDir))
		}

		if err := m.osHandler.MkdirAll(targetDir, 0o755); err != nil { //nolint:mnd
			return finalize(result, fmt.Errorf("(migration) %w: %w", ErrTargetNotWritable, err))
		}
	}

	if err := m.fsHandler.CanWriteDir(targetDir); err != nil {
		return finalize(result, fmt.Errorf("(migration) %w: %w", ErrTargetNotWritable, err))
	}

	entries, err := m.fsHandler.ListEntries(ctx, sourceDir, targetDir, configuration.PolicyFileName)
	if err != nil {
		return finalize(result, fmt.Errorf("(migration) %w: %w", ErrSourceUnreadable, err))
	}

	queues.Transfer.Enqueue(entries...)

	var procErr error

	processFunc := func(e *schema.Entry) int {
		skipped, err := m.processEntry(ctx, e, opts)
		if err != nil {
			if procErr == nil {
				procErr = fmt.Errorf("(migration) failed to process %s: %w", e.Name, err)
			}

			if opts.SkipOnError {
				slog.Warn("Failed: continuing with remaining files",
					"name", e.Name,
					"err", err,
				)

				return queue.DecisionFailed
			}

			slog.Error("Failed: aborting migration",
				"name", e.Name,
				"err", err,
			)

			return queue.DecisionAbort
		}

		if skipped {
			slog.Info("Skipped: already migrated",
				"name", e.Name,
				"path", e.TargetPath,
			)

			return queue.DecisionSkipped
		}

		queues.Transfer.AddBytesTransferred(e.Metadata.Size)

		slog.Info("Migrated:",
			"name", e.Name,
			"path", e.TargetPath,
		)

		return queue.DecisionSuccess
	}

	queueErr := queues.Transfer.DequeueAndProcess(ctx, processFunc)

	m.assembleResult(result, queues, opts, sourceDir, targetDir)

	switch {
	case procErr != nil:
		return finalize(result, procErr)
	case queueErr != nil:
		return finalize(result, fmt.Errorf("(migration) %w", queueErr))
	default:
		return finalize(result, nil)
	}
}

// assembleResult populates a [schema.Result] from the processing record of
// the transfer queue, producing the rollback descriptor and integrity report
// when requested.
func (m *Handler) assembleResult(result *schema.Result, queues *queue.Manager, opts *schema.Options, sourceDir string, targetDir string) {
	for _, e := range queues.Transfer.GetSuccessful() {
		result.MigratedFiles = append(result.MigratedFiles, e.Name)
	}
	for _, e := range queues.Transfer.GetSkipped() {
		result.SkippedFiles = append(result.SkippedFiles, e.Name)
	}
	for _, e := range queues.Transfer.GetFailed() {
		result.FailedFiles = append(result.FailedFiles, e.Name)
	}

	result.BytesMigrated = queues.Transfer.BytesTransferred()

	if opts.CreateRollback {
		desc := newRollbackDescriptor(sourceDir, targetDir)
		desc.Migrated = append(desc.Migrated, result.MigratedFiles...)
		result.Rollback = desc
	}

	if opts.IntegrityChecks {
		report := &schema.IntegrityReport{
			Algorithm: m.hasher.Algorithm(),
			Checksums: make(map[string]string),
		}

		for _, e := range queues.Transfer.GetSuccessful() {
			report.Checksums[e.Name] = e.Checksum
		}
		for _, e := range queues.Transfer.GetSkipped() {
			report.Checksums[e.Name] = e.Checksum
		}

		report.FileCount = len(report.Checksums)
		report.AllChecksPassed = len(result.FailedFiles) == 0

		result.Integrity = report
	}
}

// finalize stamps the finish time on a [schema.Result] and derives its
// success state from the given error, recording its description for the
// caller.
func finalize(result *schema.Result, err error) (*schema.Result, error) {
	result.FinishedAt = time.Now()

	if err != nil {
		result.Err = err.Error()

		return result, err
	}

	result.Success = true

	return result, nil
}
