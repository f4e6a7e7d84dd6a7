// Package validation implements the pre-flight validations for migration
// requests and rollback descriptors, before any filesystem operations are
// attempted on their behalf.
package validation

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/desertwitch/migover/internal/schema"
)

// ValidateRequest validates a migration request of a source directory, target
// directory and [schema.Options] for structural soundness. It does not touch
// the filesystem; existence and permissions are established by the caller.
func ValidateRequest(sourceDir string, targetDir string, opts *schema.Options) error {
	if opts == nil {
		return fmt.Errorf("(validation) %w", ErrNoOptions)
	}

	if sourceDir == "" {
		return fmt.Errorf("(validation) %w", ErrNoSource)
	}

	if !filepath.IsAbs(sourceDir) {
		return fmt.Errorf("(validation) %w", ErrSourcePathRelative)
	}

	if targetDir == "" {
		return fmt.Errorf("(validation) %w", ErrNoTarget)
	}

	if !filepath.IsAbs(targetDir) {
		return fmt.Errorf("(validation) %w", ErrTargetPathRelative)
	}

	sourceClean := filepath.Clean(sourceDir)
	targetClean := filepath.Clean(targetDir)

	if sourceClean == targetClean {
		return fmt.Errorf("(validation) %w", ErrSameDirectory)
	}

	if strings.HasPrefix(targetClean, sourceClean+string(filepath.Separator)) {
		return fmt.Errorf("(validation) %w", ErrTargetInsideSource)
	}

	return nil
}

// ValidateDescriptor validates a [schema.RollbackDescriptor] for structural
// soundness, before a rollback is attempted on its behalf.
func ValidateDescriptor(d *schema.RollbackDescriptor) error {
	if d == nil {
		return fmt.Errorf("(validation) %w", ErrNoDescriptor)
	}

	if d.ID == "" {
		return fmt.Errorf("(validation) %w", ErrDescriptorNoID)
	}

	if d.SourceDir == "" || d.TargetDir == "" {
		return fmt.Errorf("(validation) %w", ErrDescriptorNoDirs)
	}

	if !filepath.IsAbs(d.SourceDir) || !filepath.IsAbs(d.TargetDir) {
		return fmt.Errorf("(validation) %w", ErrDescriptorRelative)
	}

	for _, name := range d.Migrated {
		if name == "" {
			return fmt.Errorf("(validation) %w", ErrDescriptorNoName)
		}

		if strings.ContainsRune(name, filepath.Separator) {
			return fmt.Errorf("(validation) %w: %s", ErrDescriptorNested, name)
		}
	}

	return nil
}
