package configuration_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/desertwitch/migover/internal/configuration"
	"github.com/desertwitch/migover/internal/hashing"
	"github.com/desertwitch/migover/internal/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLoadPolicy_Success_NoFile tests that a source without a policy file
// keeps the base behavior.
func TestLoadPolicy_Success_NoFile(t *testing.T) {
	t.Parallel()

	configHandler := newTestHandler()

	baseOpts := schema.DefaultOptions()

	policy, err := configHandler.LoadPolicy(t.TempDir(), &baseOpts, hashing.AlgorithmBlake3)
	require.NoError(t, err)

	assert.Same(t, &baseOpts, policy.Options)
	assert.Equal(t, hashing.AlgorithmBlake3, policy.Algorithm)
}

// TestLoadPolicy_Success_Overrides tests that policy file settings override
// the base behavior.
func TestLoadPolicy_Success_Overrides(t *testing.T) {
	t.Parallel()

	configHandler := newTestHandler()

	sourceDir := t.TempDir()
	policyFile := filepath.Join(sourceDir, configuration.PolicyFileName)

	content := "migrationMode=move\n" +
		"skipOnError=yes\n" +
		"preserveMetadata=no\n" +
		"spaceFloor=4096\n" +
		"hashAlgorithm=sha256\n"
	require.NoError(t, os.WriteFile(policyFile, []byte(content), 0o644))

	baseOpts := schema.DefaultOptions()

	policy, err := configHandler.LoadPolicy(sourceDir, &baseOpts, hashing.AlgorithmBlake3)
	require.NoError(t, err)

	assert.False(t, policy.Options.PreserveOriginal)
	assert.True(t, policy.Options.SkipOnError)
	assert.False(t, policy.Options.PreserveMetadata)
	assert.Equal(t, uint64(4096), policy.Options.SpaceFloor)
	assert.Equal(t, hashing.AlgorithmSHA256, policy.Algorithm)

	// Unset keys keep the base behavior.
	assert.Equal(t, baseOpts.CreateRollback, policy.Options.CreateRollback)
	assert.Equal(t, baseOpts.IntegrityChecks, policy.Options.IntegrityChecks)

	// The base options themselves must stay untouched.
	assert.True(t, baseOpts.PreserveOriginal)
	assert.False(t, baseOpts.SkipOnError)
}

// TestLoadPolicy_Fail_BadMode tests an unknown migration mode in the policy.
func TestLoadPolicy_Fail_BadMode(t *testing.T) {
	t.Parallel()

	configHandler := newTestHandler()

	sourceDir := t.TempDir()
	policyFile := filepath.Join(sourceDir, configuration.PolicyFileName)
	require.NoError(t, os.WriteFile(policyFile, []byte("migrationMode=teleport\n"), 0o644))

	baseOpts := schema.DefaultOptions()

	_, err := configHandler.LoadPolicy(sourceDir, &baseOpts, hashing.AlgorithmBlake3)
	require.ErrorIs(t, err, configuration.ErrBadMode)
}

// TestLoadPolicy_Fail_BadAlgorithm tests an unknown algorithm in the policy.
func TestLoadPolicy_Fail_BadAlgorithm(t *testing.T) {
	t.Parallel()

	configHandler := newTestHandler()

	sourceDir := t.TempDir()
	policyFile := filepath.Join(sourceDir, configuration.PolicyFileName)
	require.NoError(t, os.WriteFile(policyFile, []byte("hashAlgorithm=crc32\n"), 0o644))

	baseOpts := schema.DefaultOptions()

	_, err := configHandler.LoadPolicy(sourceDir, &baseOpts, hashing.AlgorithmBlake3)
	require.ErrorIs(t, err, hashing.ErrUnknownAlgorithm)
}
