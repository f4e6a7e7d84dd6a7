package hashing

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestForAlgorithm_Success tests that the algorithm factory returns the
// correct implementations.
func TestForAlgorithm_Success(t *testing.T) {
	t.Parallel()

	b3, err := ForAlgorithm(AlgorithmBlake3)
	require.NoError(t, err)
	assert.Equal(t, AlgorithmBlake3, b3.Algorithm())

	sha, err := ForAlgorithm(AlgorithmSHA256)
	require.NoError(t, err)
	assert.Equal(t, AlgorithmSHA256, sha.Algorithm())
}

// TestForAlgorithm_Fail_UnknownAlgorithm tests that an unknown algorithm
// name fails with the correct error.
func TestForAlgorithm_Fail_UnknownAlgorithm(t *testing.T) {
	t.Parallel()

	h, err := ForAlgorithm("crc32")
	require.ErrorIs(t, err, ErrUnknownAlgorithm)
	assert.Nil(t, h)
}

// TestHashBytes_Success tests that digesting is deterministic and
// content-sensitive.
func TestHashBytes_Success(t *testing.T) {
	t.Parallel()

	for _, name := range []string{AlgorithmBlake3, AlgorithmSHA256} {
		hasher, err := ForAlgorithm(name)
		require.NoError(t, err)

		a := HashBytes(hasher, []byte("hello world"))
		b := HashBytes(hasher, []byte("hello world"))
		c := HashBytes(hasher, []byte("hello worlb"))

		assert.NotEmpty(t, a, name)
		assert.Equal(t, a, b, name)
		assert.NotEqual(t, a, c, name)
	}
}

// TestHashBytes_Success_AlgorithmsDiffer tests that the two algorithm
// families produce distinct digests.
func TestHashBytes_Success_AlgorithmsDiffer(t *testing.T) {
	t.Parallel()

	b3 := HashBytes(&Blake3{}, []byte("hello world"))
	sha := HashBytes(&SHA256{}, []byte("hello world"))

	assert.NotEqual(t, b3, sha)
}

// TestHashReader_Success tests that streaming digestion matches whole-slice
// digestion.
func TestHashReader_Success(t *testing.T) {
	t.Parallel()

	content := bytes.Repeat([]byte("abcdefgh"), 4096)
	hasher := &Blake3{}

	digest, n, err := HashReader(t.Context(), hasher, bytes.NewReader(content))
	require.NoError(t, err)

	assert.Equal(t, HashBytes(hasher, content), digest)
	assert.Equal(t, uint64(len(content)), n)
}

// TestHashReader_Success_EmptyReader tests that digesting an empty reader
// succeeds with zero bytes read.
func TestHashReader_Success_EmptyReader(t *testing.T) {
	t.Parallel()

	digest, n, err := HashReader(t.Context(), &Blake3{}, strings.NewReader(""))
	require.NoError(t, err)

	assert.NotEmpty(t, digest)
	assert.Zero(t, n)
}

// TestHashReader_Fail_ContextCanceled tests that a canceled context aborts
// the streaming digestion.
func TestHashReader_Fail_ContextCanceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	_, _, err := HashReader(ctx, &Blake3{}, strings.NewReader("hello world"))
	require.ErrorIs(t, err, context.Canceled)
}
