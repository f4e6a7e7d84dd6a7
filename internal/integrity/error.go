package integrity

import "errors"

var (
	// ErrChecksumMismatch occurs when recomputed content does not digest to
	// its expected checksum. It is never silently ignored.
	ErrChecksumMismatch = errors.New("checksum mismatch")

	// ErrManifestNested occurs when a manifest records a checksum for a name
	// that is not a plain filename, but a nested path instead.
	ErrManifestNested = errors.New("manifest contains a nested name")

	// ErrManifestVersion occurs when a manifest was recorded with a newer
	// format version than the running program supports.
	ErrManifestVersion = errors.New("manifest version not supported")

	// ErrNoManifest occurs when no manifest is set.
	ErrNoManifest = errors.New("no manifest")

	// ErrNoReport occurs when no integrity report is set.
	ErrNoReport = errors.New("no integrity report")

	// ErrTreeNotVerified occurs when a verified tree holds files that are
	// missing, mismatched or unreadable against its manifest.
	ErrTreeNotVerified = errors.New("tree content does not match manifest")
)
