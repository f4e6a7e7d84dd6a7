// Package migration implements the core migration primitive of the
// application: one-shot, idempotent transferral of the regular files of a
// flat source directory into a target directory, with optional integrity
// reporting, metadata preservation, rollback recording and source removal.
//
// A migration invocation is synchronous and sequential; it holds no state
// across calls. Repeating an invocation against an unchanged source and
// target pair performs no writes and reports an empty migrated list.
package migration

import (
	"context"
	"os"

	"github.com/desertwitch/migover/internal/schema"
	"golang.org/x/sys/unix"
)

// TempSuffix is appended to a target path while its content is in flight.
// Only fully written and digest-verified temporary files are ever renamed to
// their final target names.
const TempSuffix = ".migover"

// fsProvider defines the methods needed from a filesystem-facing
// implementation.
type fsProvider interface {
	CanReadDir(path string) error
	CanReadFile(path string) error
	CanWriteDir(path string) error
	Exists(path string) (bool, error)
	HasEnoughFreeSpace(path string, minFree uint64, fileSize uint64) (bool, error)
	ListEntries(ctx context.Context, sourceDir string, targetDir string, skipNames ...string) ([]*schema.Entry, error)
}

// osProvider defines the methods needed from an OS-facing implementation.
type osProvider interface {
	MkdirAll(path string, perm os.FileMode) error
	Open(name string) (*os.File, error)
	OpenFile(name string, flag int, perm os.FileMode) (*os.File, error)
	ReadFile(name string) ([]byte, error)
	Remove(name string) error
	Rename(oldpath, newpath string) error
	Stat(name string) (os.FileInfo, error)
	WriteFile(name string, data []byte, perm os.FileMode) error
}

// unixProvider defines the methods needed from a Unix-facing implementation.
type unixProvider interface {
	Chmod(path string, mode uint32) error
	Chown(path string, uid, gid int) error
	UtimesNano(path string, times []unix.Timespec) error
}

// Handler is the migration-facing handler of the application.
type Handler struct {
	fsHandler   fsProvider
	osHandler   osProvider
	unixHandler unixProvider
	hasher      schema.Hasher
}

// NewHandler returns a pointer to a new [Handler], digesting any file
// contents with the given [schema.Hasher].
func NewHandler(fsHandler fsProvider, osHandler osProvider, unixHandler unixProvider, hasher schema.Hasher) *Handler {
	return &Handler{
		fsHandler:   fsHandler,
		osHandler:   osHandler,
		unixHandler: unixHandler,
		hasher:      hasher,
	}
}
