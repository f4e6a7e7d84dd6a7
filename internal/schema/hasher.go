package schema

import "hash"

// Hasher is the pluggable hashing strategy used for content digests. Only
// collision-resistant (cryptographic) implementations are acceptable;
// additive or cyclic-redundancy checksums must not be used for content
// integrity.
type Hasher interface {
	// Algorithm returns the canonical lower-case name of the algorithm.
	Algorithm() string

	// New returns a fresh [hash.Hash] for one streaming digest computation.
	New() hash.Hash
}
