package migration

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"time"

	"github.com/desertwitch/migover/internal/schema"
	"github.com/desertwitch/migover/internal/validation"
	"github.com/google/uuid"
)

// newRollbackDescriptor returns a pointer to a new, uniquely identified
// [schema.RollbackDescriptor] with an empty migration record.
func newRollbackDescriptor(sourceDir string, targetDir string) *schema.RollbackDescriptor {
	return &schema.RollbackDescriptor{
		Version:   schema.DescriptorVersion,
		ID:        uuid.NewString(),
		SourceDir: sourceDir,
		TargetDir: targetDir,
		Migrated:  []string{},
		CreatedAt: time.Now(),
	}
}

// SaveDescriptor persists a [schema.RollbackDescriptor] as JSON to the given
// path, establishing any missing parent directories in the process. This
// allows a rollback even after the migrating process has exited.
func (m *Handler) SaveDescriptor(desc *schema.RollbackDescriptor, path string) error {
	if err := validation.ValidateDescriptor(desc); err != nil {
		return fmt.Errorf("(migration) %w", err)
	}

	data, err := json.MarshalIndent(desc, "", "  ")
	if err != nil {
		return fmt.Errorf("(migration) failed to marshal descriptor: %w", err)
	}

	if err := m.osHandler.MkdirAll(filepath.Dir(path), 0o755); err != nil { //nolint:mnd
		return fmt.Errorf("(migration) failed to create descriptor dir: %w", err)
	}

	if err := m.osHandler.WriteFile(path, data, 0o644); err != nil { //nolint:mnd,gosec
		return fmt.Errorf("(migration) failed to write descriptor: %w", err)
	}

	return nil
}

// LoadDescriptor reads a [schema.RollbackDescriptor] back from a JSON file,
// rejecting descriptors of unsupported format versions or with structurally
// unsound contents.
func (m *Handler) LoadDescriptor(path string) (*schema.RollbackDescriptor, error) {
	data, err := m.osHandler.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("(migration) failed to read descriptor: %w", err)
	}

	desc := &schema.RollbackDescriptor{}
	if err := json.Unmarshal(data, desc); err != nil {
		return nil, fmt.Errorf("(migration) failed to unmarshal descriptor: %w", err)
	}

	if desc.Version > schema.DescriptorVersion {
		return nil, fmt.Errorf("(migration) %w: %d", ErrDescriptorVersion, desc.Version)
	}

	if err := validation.ValidateDescriptor(desc); err != nil {
		return nil, fmt.Errorf("(migration) %w", err)
	}

	return desc, nil
}
