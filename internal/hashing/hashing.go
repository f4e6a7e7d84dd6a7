// Package hashing provides the content digest implementations selectable for
// migration integrity checking, along with streaming helpers for digesting
// byte slices, readers and files. All provided algorithms are cryptographic;
// weaker checksum families are deliberately not offered.
package hashing

import (
	"context"
	"encoding/hex"
	"fmt"
	"io"

	"github.com/desertwitch/migover/internal/schema"
)

// Algorithm names accepted by [ForAlgorithm].
const (
	AlgorithmBlake3 = "blake3"
	AlgorithmSHA256 = "sha256"
)

// ForAlgorithm returns the [schema.Hasher] implementation for a canonical
// algorithm name.
func ForAlgorithm(name string) (schema.Hasher, error) {
	switch name {
	case AlgorithmBlake3:
		return &Blake3{}, nil
	case AlgorithmSHA256:
		return &SHA256{}, nil
	default:
		return nil, fmt.Errorf("(hashing) %w: %q", ErrUnknownAlgorithm, name)
	}
}

// HashBytes returns the hexadecimal digest of a byte slice.
func HashBytes(hasher schema.Hasher, content []byte) string {
	h := hasher.New()
	h.Write(content) //nolint:errcheck

	return hex.EncodeToString(h.Sum(nil))
}

// HashReader streams a reader into a digest, returning the hexadecimal
// digest and the amount of bytes read. The read is aborted when the given
// context is canceled.
func HashReader(ctx context.Context, hasher schema.Hasher, r io.Reader) (string, uint64, error) {
	h := hasher.New()

	ctxReader := &contextReader{
		ctx:    ctx,
		reader: r,
	}

	n, err := io.Copy(h, ctxReader)
	if err != nil {
		return "", 0, fmt.Errorf("(hashing) failed to digest reader: %w", err)
	}

	return hex.EncodeToString(h.Sum(nil)), uint64(n), nil //nolint:gosec
}

//nolint:containedctx
type contextReader struct {
	ctx    context.Context
	reader io.Reader
}

func (cr *contextReader) Read(p []byte) (int, error) {
	select {
	case <-cr.ctx.Done():
		return 0, context.Canceled
	default:
		return cr.reader.Read(p)
	}
}
