package configuration_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/desertwitch/migover/internal/configuration"
	"github.com/desertwitch/migover/internal/hashing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestDefaultAppConfig_Success tests that the defaults validate.
func TestDefaultAppConfig_Success(t *testing.T) {
	t.Parallel()

	config := configuration.DefaultAppConfig()

	require.NoError(t, config.Validate())

	assert.Equal(t, configuration.ModeCopy, config.Migration.Mode)
	assert.Equal(t, hashing.AlgorithmBlake3, config.Migration.HashAlgorithm)
	assert.True(t, config.Migration.IntegrityChecks)
	assert.True(t, config.Migration.CreateRollback)
	assert.False(t, config.Migration.SkipOnError)
}

// TestAppConfigValidate_Fail tests validation of broken configurations.
func TestAppConfigValidate_Fail(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		mod  func(config *configuration.AppConfig)
		want error
	}{
		{"bad mode", func(config *configuration.AppConfig) {
			config.Migration.Mode = "teleport"
		}, configuration.ErrBadMode},
		{"bad algorithm", func(config *configuration.AppConfig) {
			config.Migration.HashAlgorithm = "crc32"
		}, hashing.ErrUnknownAlgorithm},
		{"bad workers", func(config *configuration.AppConfig) {
			config.Verify.MaxWorkers = 0
		}, configuration.ErrBadWorkers},
		{"bad log level", func(config *configuration.AppConfig) {
			config.Logging.Level = "verbose"
		}, configuration.ErrBadLogLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			config := configuration.DefaultAppConfig()
			tt.mod(config)

			assert.ErrorIs(t, config.Validate(), tt.want)
		})
	}
}

// TestAppConfigToOptions_Success tests conversion into migration options.
func TestAppConfigToOptions_Success(t *testing.T) {
	t.Parallel()

	config := configuration.DefaultAppConfig()
	config.Migration.Mode = configuration.ModeMove
	config.Migration.SkipOnError = true
	config.Migration.SpaceFloor = 1024

	opts := config.ToOptions()

	assert.False(t, opts.PreserveOriginal)
	assert.True(t, opts.SkipOnError)
	assert.True(t, opts.IntegrityChecks)
	assert.Equal(t, uint64(1024), opts.SpaceFloor)
}

// TestSaveLoadAppConfig_Success tests saving and re-loading a configuration.
func TestSaveLoadAppConfig_Success(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	config := configuration.DefaultAppConfig()
	config.Migration.Mode = configuration.ModeMove
	config.Verify.MaxWorkers = 8

	require.NoError(t, configuration.SaveAppConfig(config, path))

	loaded, err := configuration.LoadAppConfig(path)
	require.NoError(t, err)

	assert.Equal(t, configuration.ModeMove, loaded.Migration.Mode)
	assert.Equal(t, 8, loaded.Verify.MaxWorkers)
}

// TestLoadAppConfig_Success_PartialFile tests that unset YAML fields fall
// back to the defaults.
func TestLoadAppConfig_Success_PartialFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("migration:\n  mode: move\n"), 0o644))

	loaded, err := configuration.LoadAppConfig(path)
	require.NoError(t, err)

	assert.Equal(t, configuration.ModeMove, loaded.Migration.Mode)
	assert.Equal(t, hashing.AlgorithmBlake3, loaded.Migration.HashAlgorithm)
	assert.Equal(t, 4, loaded.Verify.MaxWorkers)
}

// TestLoadAppConfig_Fail_BadYAML tests loading a malformed file.
func TestLoadAppConfig_Fail_BadYAML(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("{{not yaml"), 0o644))

	_, err := configuration.LoadAppConfig(path)
	require.Error(t, err)
}

// TestLoadAppConfig_Fail_Invalid tests loading a file failing validation.
func TestLoadAppConfig_Fail_Invalid(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("migration:\n  mode: teleport\n"), 0o644))

	_, err := configuration.LoadAppConfig(path)
	require.ErrorIs(t, err, configuration.ErrBadMode)
}
