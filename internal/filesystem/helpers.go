package filesystem

import (
	"errors"
	"fmt"
	"io/fs"
)

// GetDiskUsage gets [DiskStats] for a path, wrapping the established
// [diskStatProvider] implementation's respective function.
func (f *Handler) GetDiskUsage(path string) (DiskStats, error) {
	data, err := f.diskStatHandler.GetDiskUsage(path)
	if err != nil {
		return data, fmt.Errorf("(fs-diskusage) %w", err)
	}

	return data, nil
}

// HasEnoughFreeSpace allows checking if the filesystem behind a certain path
// can house a certain fileSize without exceeding a certain minFree threshold.
// For this it wraps the established [diskStatProvider] implementation's
// respective function.
func (f *Handler) HasEnoughFreeSpace(path string, minFree uint64, fileSize uint64) (bool, error) {
	data, err := f.diskStatHandler.HasEnoughFreeSpace(path, minFree, fileSize)
	if err != nil {
		return data, fmt.Errorf("(fs-enoughspace) %w", err)
	}

	return data, nil
}

// IsEmptyDir is a helper function checking if a path is an empty directory.
func (f *Handler) IsEmptyDir(path string) (bool, error) {
	entries, err := f.osHandler.ReadDir(path)
	if err != nil {
		return false, fmt.Errorf("(fs-isempty) failed to readdir: %w", err)
	}

	return len(entries) == 0, nil
}

// Exists is a helper function checking if a path already exists.
func (f *Handler) Exists(path string) (bool, error) {
	if _, err := f.osHandler.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}

		return false, fmt.Errorf("(fs-exists) failed to stat: %w", err)
	}

	return true, nil
}

// handleSize converts a int64 filesize to a uint64 filesize (with sizes < 0 becoming 0).
func handleSize(size int64) uint64 {
	if size < 0 {
		return 0
	}

	return uint64(size)
}
