package migration

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/desertwitch/migover/internal/schema"
	"github.com/desertwitch/migover/internal/validation"
)

// Rollback undoes a prior migration using its [schema.RollbackDescriptor],
// removing exactly the files the descriptor lists from its recorded target
// directory. Files not listed in the descriptor are never touched.
//
// Rollback is idempotent: a listed file that is already absent counts as
// skipped, not as a failure, so repeating a rollback with the same descriptor
// still reports success. Unexpected removal failures are collected and
// reported after every listed file was attempted.
//
// Rollback does not restore removed source files; a migration that ran
// without [schema.Options.PreserveOriginal] is not reversible through it.
func (m *Handler) Rollback(ctx context.Context, desc *schema.RollbackDescriptor) (*schema.Result, error) {
	result := &schema.Result{StartedAt: time.Now()}

	if err := validation.ValidateDescriptor(desc); err != nil {
		return finalize(result, fmt.Errorf("(migration) %w", err))
	}

	if desc.Version > schema.DescriptorVersion {
		return finalize(result, fmt.Errorf("(migration) %w: %d", ErrDescriptorVersion, desc.Version))
	}

	var errs []error

	for _, name := range desc.Migrated {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)

			break
		}

		path := filepath.Join(desc.TargetDir, name)

		if err := m.osHandler.Remove(path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				slog.Info("Skipped: rollback target already absent",
					"name", name,
					"path", path,
				)
				result.SkippedFiles = append(result.SkippedFiles, name)

				continue
			}

			slog.Warn("Failed: rollback target not removable",
				"name", name,
				"path", path,
				"err", err,
			)
			result.FailedFiles = append(result.FailedFiles, name)
			errs = append(errs, fmt.Errorf("failed to remove %s: %w", path, err))

			continue
		}

		slog.Info("Rolled back:",
			"name", name,
			"path", path,
		)
		result.MigratedFiles = append(result.MigratedFiles, name)
	}

	if len(errs) > 0 {
		return finalize(result, fmt.Errorf("(migration) %w", errors.Join(errs...)))
	}

	return finalize(result, nil)
}
