package schema

// Entry is the principal structure for a single migration candidate: one
// regular file of the source directory, together with its resolved paths and
// filesystem metadata.
//
// Entries are meant to be passed by reference (pointer) and are not
// thread-safe.
//
// By design an [Entry] is entirely autonomous and can be processed
// independently of other [Entry] elements.
type Entry struct {
	// Name is the file name relative to the source directory. Under
	// flat-directory semantics this never contains a path separator.
	Name string

	// SourcePath is the absolute path the [Entry] is located at.
	SourcePath string

	// TargetPath is the absolute path the [Entry] is to be written to.
	TargetPath string

	// Metadata is the filesystem [Metadata] for the specific [Entry].
	Metadata *Metadata

	// Checksum is the hexadecimal content digest of the [Entry], filled in
	// during transfer. It backs the pre-removal re-verification of move
	// semantics and the reported integrity checksums.
	Checksum string
}
