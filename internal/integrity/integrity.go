// Package integrity implements the post-hoc content verification of the
// application: checking byte slices or files against expected digests and
// re-verifying whole migrated trees against persisted checksum manifests.
package integrity

import (
	"os"

	"github.com/desertwitch/migover/internal/schema"
)

// osProvider defines the methods needed from an OS-facing implementation.
type osProvider interface {
	MkdirAll(path string, perm os.FileMode) error
	Open(name string) (*os.File, error)
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm os.FileMode) error
}

// Verifier is the verification-facing handler of the application.
type Verifier struct {
	osHandler osProvider
	hasher    schema.Hasher
}

// NewVerifier returns a pointer to a new [Verifier], digesting any file
// contents with the given [schema.Hasher]. Manifest-driven verifications
// resolve their digest algorithm from the manifest instead.
func NewVerifier(osHandler osProvider, hasher schema.Hasher) *Verifier {
	return &Verifier{
		osHandler: osHandler,
		hasher:    hasher,
	}
}
