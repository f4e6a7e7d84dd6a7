package migration

import (
	"fmt"

	"github.com/desertwitch/migover/internal/schema"
	"golang.org/x/sys/unix"
)

// ensurePermissions carries ownership and permissions of the source metadata
// onto a migrated target file. Ownership is set first, as it strips any
// setuid/setgid bits that the subsequent permission change re-establishes.
func (m *Handler) ensurePermissions(path string, metadata *schema.Metadata) error {
	if err := m.unixHandler.Chown(path, int(metadata.UID), int(metadata.GID)); err != nil {
		return fmt.Errorf("failed to set ownership on %s: %w", path, err)
	}

	if err := m.unixHandler.Chmod(path, metadata.Perms); err != nil {
		return fmt.Errorf("failed to set permissions on %s: %w", path, err)
	}

	return nil
}

// ensureTimestamp carries the access and modification timestamps of the
// source metadata onto a migrated target file.
func (m *Handler) ensureTimestamp(path string, metadata *schema.Metadata) error {
	ts := []unix.Timespec{metadata.AccessedAt, metadata.ModifiedAt}

	if err := m.unixHandler.UtimesNano(path, ts); err != nil {
		return fmt.Errorf("failed to set timestamp on %s: %w", path, err)
	}

	return nil
}
