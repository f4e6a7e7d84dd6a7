package schema

// Options is the configuration value object for a single migration
// invocation. The zero value is not useful as a default; use
// [DefaultOptions] instead.
type Options struct {
	// PreserveOriginal keeps the source files in place after a verified
	// write (copy semantics). When false, each source file is removed after
	// its target copy has been re-verified against the source digest (move
	// semantics).
	PreserveOriginal bool

	// CreateRollback records every file the migration actually wrote into a
	// [RollbackDescriptor], returned as part of the [Result].
	CreateRollback bool

	// IntegrityChecks computes a content digest per transferred file and
	// reports them aggregated in an [IntegrityReport].
	IntegrityChecks bool

	// PreserveMetadata carries ownership, permissions and timestamps of the
	// source file onto the migrated target file.
	PreserveMetadata bool

	// SkipOnError continues with the remaining files when a single file
	// fails, reporting the failures afterwards. When false, the migration
	// aborts on the first failing file.
	SkipOnError bool

	// CreateTarget creates the target directory (including parents) when it
	// does not exist yet.
	CreateTarget bool

	// SpaceFloor is the minimum amount of bytes that must remain free on the
	// target filesystem after the migration. Zero disables the check.
	SpaceFloor uint64
}

// DefaultOptions returns the default [Options]: copy semantics with rollback
// recording, integrity checks and metadata preservation enabled.
func DefaultOptions() Options {
	return Options{
		PreserveOriginal: true,
		CreateRollback:   true,
		IntegrityChecks:  true,
		PreserveMetadata: true,
	}
}
