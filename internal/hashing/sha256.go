package hashing

import (
	"crypto/sha256"
	"hash"
)

// SHA256 is a [schema.Hasher] producing SHA-256 digests. It is provided as
// an alternative for environments standardized on the SHA-2 family.
type SHA256 struct{}

// Algorithm returns the canonical name of the algorithm.
func (s *SHA256) Algorithm() string {
	return AlgorithmSHA256
}

// New returns a new [hash.Hash] for computation of a single digest.
func (s *SHA256) New() hash.Hash {
	return sha256.New()
}
