package migration

import "errors"

var (
	// ErrDescriptorVersion occurs when a rollback descriptor was recorded with
	// a newer format version than the running program supports.
	ErrDescriptorVersion = errors.New("rollback descriptor version not supported")

	// ErrHashMismatch is an error that occurs when there is a source/target
	// digest mismatch, this usually means that there are underlying
	// transfer/hardware issues.
	ErrHashMismatch = errors.New("hash mismatch")

	// ErrNotEnoughSpace is an error that occurs when there is not enough free
	// space to take the to be migrated file on the target filesystem.
	ErrNotEnoughSpace = errors.New("not enough free space on target")

	// ErrRenameExists is an error that occurs when the final target path is
	// already occupied by something other than an overwritable regular file.
	ErrRenameExists = errors.New("rename destination is not an overwritable file")

	// ErrSourceUnreadable occurs when the source directory or one of its
	// files cannot be read with the effective process credentials.
	ErrSourceUnreadable = errors.New("source is not readable")

	// ErrTargetMissing occurs when the target directory does not exist and
	// establishing it was not requested.
	ErrTargetMissing = errors.New("target directory does not exist")

	// ErrTargetNotWritable occurs when the target directory cannot be written
	// with the effective process credentials. It is raised before any file is
	// touched.
	ErrTargetNotWritable = errors.New("target directory is not writable")
)
