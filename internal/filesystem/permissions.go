package filesystem

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// CanReadDir checks whether the effective process credentials allow
// enumerating and descending into the given directory.
func (f *Handler) CanReadDir(path string) error {
	if err := f.unixHandler.Access(path, unix.R_OK|unix.X_OK); err != nil {
		return fmt.Errorf("(fs-perms) failed to access %s for reading: %w", path, err)
	}

	return nil
}

// CanWriteDir checks whether the effective process credentials allow creating
// and removing entries inside the given directory.
func (f *Handler) CanWriteDir(path string) error {
	if err := f.unixHandler.Access(path, unix.W_OK|unix.X_OK); err != nil {
		return fmt.Errorf("(fs-perms) failed to access %s for writing: %w", path, err)
	}

	return nil
}

// CanReadFile checks whether the effective process credentials allow reading
// the contents of the given file.
func (f *Handler) CanReadFile(path string) error {
	if err := f.unixHandler.Access(path, unix.R_OK); err != nil {
		return fmt.Errorf("(fs-perms) failed to access %s for reading: %w", path, err)
	}

	return nil
}
