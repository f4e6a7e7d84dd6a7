// Package configuration implements the configuration layers of the
// application. It handles both the principal YAML application configuration
// and the per-source policy files overriding migration behavior.
package configuration

import (
	"os"
	"strconv"
	"strings"
)

// genericConfigProvider defines the methods needed from a configuration
// file-reading implementation.
type genericConfigProvider interface {
	Read(filenames ...string) (envMap map[string]string, err error)
}

// osProvider defines the methods needed from an OS-facing implementation.
type osProvider interface {
	Stat(name string) (os.FileInfo, error)
}

// Handler is the configuration-facing handler of the application.
type Handler struct {
	genericHandler genericConfigProvider
	osHandler      osProvider
}

// NewHandler returns a pointer to a new [Handler].
func NewHandler(genericHandler genericConfigProvider, osHandler osProvider) *Handler {
	return &Handler{
		genericHandler: genericHandler,
		osHandler:      osHandler,
	}
}

// ReadGeneric reads generic Unix-type configuration files into a map
// (map[key]value), wrapping the established [genericConfigProvider]
// implementation's respective function.
func (c *Handler) ReadGeneric(filenames ...string) (map[string]string, error) {
	return c.genericHandler.Read(filenames...)
}

// MapKeyToString returns the string value for a configuration key, or an
// empty string when the key is not set.
func (c *Handler) MapKeyToString(envMap map[string]string, key string) string {
	if value, exists := envMap[key]; exists {
		return value
	}

	return ""
}

// MapKeyToInt returns the integer value for a configuration key, or -1 when
// the key is not set or not parseable.
func (c *Handler) MapKeyToInt(envMap map[string]string, key string) int {
	value := c.MapKeyToString(envMap, key)
	if value == "" {
		return -1
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		return -1
	}

	return intValue
}

// MapKeyToUInt64 returns the unsigned integer value for a configuration key,
// or 0 when the key is not set or not parseable.
func (c *Handler) MapKeyToUInt64(envMap map[string]string, key string) uint64 {
	value := c.MapKeyToString(envMap, key)
	if value == "" {
		return 0
	}
	intValue, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		return 0
	}

	return intValue
}

// MapKeyToBool returns the boolean value for a configuration key, or the
// given fallback when the key is not set or not parseable.
func (c *Handler) MapKeyToBool(envMap map[string]string, key string, fallback bool) bool {
	value := strings.ToLower(c.MapKeyToString(envMap, key))

	switch value {
	case "yes", "true", "1":
		return true
	case "no", "false", "0":
		return false
	default:
		return fallback
	}
}
