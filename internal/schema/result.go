package schema

import "time"

// Result is the self-contained outcome of a migration or rollback
// invocation. It is created fresh per invocation and holds no references to
// internal state.
type Result struct {
	// Success reports whether every file was either skipped (already
	// correct) or processed without error.
	Success bool

	// Err contains a description of the first encountered failure. It is
	// empty when Success is true.
	Err string

	// MigratedFiles lists the relative names of all files the invocation
	// actually changed: written for a migration, removed for a rollback.
	MigratedFiles []string

	// SkippedFiles lists the relative names of all files that needed no
	// change: already correct at the target for a migration, already absent
	// for a rollback.
	SkippedFiles []string

	// FailedFiles lists the relative names of all files that could not be
	// processed. It is only populated when processing continues past
	// failures.
	FailedFiles []string

	// BytesMigrated is the total amount of content bytes written.
	BytesMigrated uint64

	// StartedAt and FinishedAt delimit the invocation.
	StartedAt  time.Time
	FinishedAt time.Time

	// Rollback is the [RollbackDescriptor] for undoing this invocation, when
	// requested.
	Rollback *RollbackDescriptor

	// Integrity is the [IntegrityReport] for this invocation, when
	// requested.
	Integrity *IntegrityReport
}

// DescriptorVersion is the on-disk format version of a persisted
// [RollbackDescriptor]. Descriptors recorded with a newer version than the
// running program supports are rejected on load.
const DescriptorVersion = 1

// RollbackDescriptor records enough information to undo a prior migration:
// which files were newly written, and where. It is bound to the exact target
// directory it was produced for.
//
// The descriptor is returned to the caller, who is responsible for
// persisting it (see the migration package's save and load functions) if a
// rollback may be needed after the producing process has exited.
type RollbackDescriptor struct {
	Version   int       `json:"version"`
	ID        string    `json:"id"`
	SourceDir string    `json:"source_dir"`
	TargetDir string    `json:"target_dir"`
	Migrated  []string  `json:"migrated"`
	CreatedAt time.Time `json:"created_at"`
}

// IntegrityReport aggregates the per-file content digests of a migration
// invocation.
type IntegrityReport struct {
	// Algorithm names the hashing algorithm the digests were computed with.
	Algorithm string `json:"algorithm"`

	// Checksums maps relative file names to hexadecimal content digests.
	Checksums map[string]string `json:"checksums"`

	// FileCount is the number of files that were digested.
	FileCount int `json:"file_count"`

	// AllChecksPassed reports whether every transferred file passed its
	// source/target digest comparison.
	AllChecksPassed bool `json:"all_checks_passed"`
}
