// Package filesystem provides the filesystem-facing operations of the
// application. It handles enumeration of migratable files, metadata
// establishment, permission prechecking and disk usage interrogation.
package filesystem

import (
	"context"
	"os"

	"golang.org/x/sys/unix"
)

// osProvider defines the methods needed from an OS-facing implementation.
type osProvider interface {
	ReadDir(name string) ([]os.DirEntry, error)
	Readlink(name string) (string, error)
	Stat(name string) (os.FileInfo, error)
}

// unixProvider defines the methods needed from a Unix-facing implementation.
type unixProvider interface {
	Access(path string, mode uint32) error
	Lstat(path string, stat *unix.Stat_t) error
	Statfs(path string, buf *unix.Statfs_t) error
}

// diskStatProvider defines the methods needed from a disk usage
// implementation.
type diskStatProvider interface {
	GetDiskUsage(path string) (DiskStats, error)
	HasEnoughFreeSpace(path string, minFree uint64, fileSize uint64) (bool, error)
}

// Handler is the filesystem-facing handler of the application.
type Handler struct {
	osHandler       osProvider
	unixHandler     unixProvider
	diskStatHandler diskStatProvider
}

// NewHandler returns a pointer to a new [Handler]. A [DiskUsageCacher] is
// spawned for the handler, periodically refreshing its statistics until the
// given context is canceled.
func NewHandler(ctx context.Context, osHandler osProvider, unixHandler unixProvider) *Handler {
	diskStatHandler := NewDiskUsageCacher(ctx, unixHandler)

	return &Handler{
		osHandler:       osHandler,
		unixHandler:     unixHandler,
		diskStatHandler: diskStatHandler,
	}
}
