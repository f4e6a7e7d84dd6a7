package integrity

import (
	"context"
	"fmt"

	"github.com/desertwitch/migover/internal/hashing"
	"github.com/desertwitch/migover/internal/schema"
)

// VerifyBytes recomputes the digest of a byte slice and compares it against
// an expected checksum, returning [ErrChecksumMismatch] on inequality.
func (v *Verifier) VerifyBytes(content []byte, expected string) error {
	digest := hashing.HashBytes(v.hasher, content)

	if digest != expected {
		return fmt.Errorf("(integrity) %w: %s (want) != %s (got)", ErrChecksumMismatch, expected, digest)
	}

	return nil
}

// VerifyFile streams a file into a recomputed digest and compares it against
// an expected checksum, returning [ErrChecksumMismatch] on inequality.
func (v *Verifier) VerifyFile(ctx context.Context, path string, expected string) error {
	if err := v.verifyFileWith(ctx, v.hasher, path, expected); err != nil {
		return fmt.Errorf("(integrity) %w", err)
	}

	return nil
}

// verifyFileWith is the common file verification core, digesting with an
// explicitly given [schema.Hasher].
func (v *Verifier) verifyFileWith(ctx context.Context, hasher schema.Hasher, path string, expected string) error {
	f, err := v.osHandler.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	digest, _, err := hashing.HashReader(ctx, hasher, f)
	if err != nil {
		return fmt.Errorf("failed to digest file: %w", err)
	}

	if digest != expected {
		return fmt.Errorf("%w: %s (want) != %s (got)", ErrChecksumMismatch, expected, digest)
	}

	return nil
}
