package schema

import "golang.org/x/sys/unix"

// Metadata is the filesystem metadata of a single filesystem element, as
// recorded at enumeration time.
type Metadata struct {
	Inode      uint64
	Perms      uint32
	UID        uint32
	GID        uint32
	AccessedAt unix.Timespec
	ModifiedAt unix.Timespec
	Size       uint64
	IsDir      bool
	IsSymlink  bool
	SymlinkTo  string
}

// IsRegular returns whether the [Metadata] describes a regular file, meaning
// neither a directory nor a symbolic link.
func (m *Metadata) IsRegular() bool {
	return !m.IsDir && !m.IsSymlink
}
