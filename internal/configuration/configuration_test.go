package configuration_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/desertwitch/migover/internal/configuration"
	"github.com/desertwitch/migover/internal/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHandler() *configuration.Handler {
	return configuration.NewHandler(&configuration.GodotenvProvider{}, &schema.OS{})
}

// TestReadGeneric_Success tests reading a Unix-type configuration file.
func TestReadGeneric_Success(t *testing.T) {
	t.Parallel()

	configHandler := newTestHandler()

	path := filepath.Join(t.TempDir(), "test.cfg")
	require.NoError(t, os.WriteFile(path, []byte("keyA=\"valueA\"\nkeyB=42\n"), 0o644))

	configMap, err := configHandler.ReadGeneric(path)
	require.NoError(t, err)

	assert.Equal(t, "valueA", configMap["keyA"])
	assert.Equal(t, "42", configMap["keyB"])
}

// TestReadGeneric_Fail_Missing tests reading a missing configuration file.
func TestReadGeneric_Fail_Missing(t *testing.T) {
	t.Parallel()

	configHandler := newTestHandler()

	_, err := configHandler.ReadGeneric(filepath.Join(t.TempDir(), "missing.cfg"))
	require.Error(t, err)
}

// TestMapKeyHelpers_Success tests the map value conversion helpers.
func TestMapKeyHelpers_Success(t *testing.T) {
	t.Parallel()

	configHandler := newTestHandler()

	configMap := map[string]string{
		"str":     "value",
		"int":     "42",
		"uint":    "1099511627776",
		"boolYes": "yes",
		"boolNo":  "no",
		"boolOne": "1",
		"garbage": "not-a-number",
	}

	assert.Equal(t, "value", configHandler.MapKeyToString(configMap, "str"))
	assert.Empty(t, configHandler.MapKeyToString(configMap, "missing"))

	assert.Equal(t, 42, configHandler.MapKeyToInt(configMap, "int"))
	assert.Equal(t, -1, configHandler.MapKeyToInt(configMap, "missing"))
	assert.Equal(t, -1, configHandler.MapKeyToInt(configMap, "garbage"))

	assert.Equal(t, uint64(1099511627776), configHandler.MapKeyToUInt64(configMap, "uint"))
	assert.Equal(t, uint64(0), configHandler.MapKeyToUInt64(configMap, "missing"))
	assert.Equal(t, uint64(0), configHandler.MapKeyToUInt64(configMap, "garbage"))

	assert.True(t, configHandler.MapKeyToBool(configMap, "boolYes", false))
	assert.False(t, configHandler.MapKeyToBool(configMap, "boolNo", true))
	assert.True(t, configHandler.MapKeyToBool(configMap, "boolOne", false))
	assert.True(t, configHandler.MapKeyToBool(configMap, "missing", true))
	assert.False(t, configHandler.MapKeyToBool(configMap, "garbage", false))
}
