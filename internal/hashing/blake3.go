package hashing

import (
	"hash"

	"github.com/zeebo/blake3"
)

// Blake3 is a [schema.Hasher] producing BLAKE3 digests. It is the default
// algorithm for migration integrity checking.
type Blake3 struct{}

// Algorithm returns the canonical name of the algorithm.
func (b *Blake3) Algorithm() string {
	return AlgorithmBlake3
}

// New returns a new [hash.Hash] for computation of a single digest.
func (b *Blake3) New() hash.Hash {
	return blake3.New()
}
