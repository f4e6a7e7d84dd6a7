package validation

import "errors"

var (
	// ErrDescriptorNested occurs when a rollback descriptor records a migrated
	// name that is not a plain filename, but a nested path instead.
	ErrDescriptorNested = errors.New("rollback descriptor contains a nested name")

	// ErrDescriptorNoDirs occurs when a rollback descriptor is missing either
	// its source or its target directory.
	ErrDescriptorNoDirs = errors.New("rollback descriptor has no directories")

	// ErrDescriptorNoID occurs when a rollback descriptor is missing its
	// unique identification.
	ErrDescriptorNoID = errors.New("rollback descriptor has no id")

	// ErrDescriptorNoName occurs when a rollback descriptor records an empty
	// migrated name.
	ErrDescriptorNoName = errors.New("rollback descriptor contains an empty name")

	// ErrDescriptorRelative occurs when a rollback descriptor directory is
	// provided as relative rather than absolute.
	ErrDescriptorRelative = errors.New("rollback descriptor path is relative")

	// ErrNoDescriptor occurs when no rollback descriptor is set.
	ErrNoDescriptor = errors.New("no rollback descriptor")

	// ErrNoOptions occurs when no migration options are set.
	ErrNoOptions = errors.New("no migration options")

	// ErrNoSource occurs when no source directory is set.
	ErrNoSource = errors.New("no source directory")

	// ErrNoTarget occurs when no target directory is set.
	ErrNoTarget = errors.New("no target directory")

	// ErrSameDirectory occurs when source and target point to the same
	// directory.
	ErrSameDirectory = errors.New("source and target are the same directory")

	// ErrSourcePathRelative occurs when a source path is provided as relative
	// rather than absolute.
	ErrSourcePathRelative = errors.New("source path is relative")

	// ErrTargetInsideSource occurs when the target directory is nested inside
	// the source directory.
	ErrTargetInsideSource = errors.New("target directory is nested inside source directory")

	// ErrTargetPathRelative occurs when a target path is provided as relative
	// rather than absolute.
	ErrTargetPathRelative = errors.New("target path is relative")
)
