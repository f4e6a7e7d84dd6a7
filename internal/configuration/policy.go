package configuration

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/desertwitch/migover/internal/hashing"
	"github.com/desertwitch/migover/internal/schema"
)

const (
	// PolicyFileName is the name of the per-source policy file. A file of that
	// name inside a source directory overrides migration behavior for that
	// directory; it is never migrated itself.
	PolicyFileName = ".migover.cfg"

	SettingMigrationMode    = "migrationMode"
	SettingHashAlgorithm    = "hashAlgorithm"
	SettingIntegrityChecks  = "integrityChecks"
	SettingPreserveMetadata = "preserveMetadata"
	SettingCreateRollback   = "createRollback"
	SettingCreateTarget     = "createTarget"
	SettingSkipOnError      = "skipOnError"
	SettingSpaceFloor       = "spaceFloor"
)

// Policy holds the effective migration behavior for a source directory, after
// any per-source policy file was overlaid onto the application configuration.
type Policy struct {
	// Options are the effective [schema.Options].
	Options *schema.Options

	// Algorithm is the effective hashing algorithm name.
	Algorithm string
}

// LoadPolicy establishes the effective [Policy] for a source directory. Base
// options and algorithm are taken as given; when a [PolicyFileName] file
// exists inside the source directory, its settings override the base values.
func (c *Handler) LoadPolicy(sourceDir string, baseOpts *schema.Options, baseAlgorithm string) (*Policy, error) {
	policy := &Policy{
		Options:   baseOpts,
		Algorithm: baseAlgorithm,
	}

	path := filepath.Join(sourceDir, PolicyFileName)

	if _, err := c.osHandler.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return policy, nil
		}

		return nil, fmt.Errorf("(config-policy) failed to stat policy file: %w", err)
	}

	configMap, err := c.ReadGeneric(path)
	if err != nil {
		return nil, fmt.Errorf("(config-policy) failed to read policy file: %w", err)
	}

	opts := *baseOpts

	if mode := strings.ToLower(c.MapKeyToString(configMap, SettingMigrationMode)); mode != "" {
		switch mode {
		case ModeCopy:
			opts.PreserveOriginal = true
		case ModeMove:
			opts.PreserveOriginal = false
		default:
			return nil, fmt.Errorf("(config-policy) %w: %q", ErrBadMode, mode)
		}
	}

	opts.IntegrityChecks = c.MapKeyToBool(configMap, SettingIntegrityChecks, opts.IntegrityChecks)
	opts.PreserveMetadata = c.MapKeyToBool(configMap, SettingPreserveMetadata, opts.PreserveMetadata)
	opts.CreateRollback = c.MapKeyToBool(configMap, SettingCreateRollback, opts.CreateRollback)
	opts.CreateTarget = c.MapKeyToBool(configMap, SettingCreateTarget, opts.CreateTarget)
	opts.SkipOnError = c.MapKeyToBool(configMap, SettingSkipOnError, opts.SkipOnError)

	if floor := c.MapKeyToUInt64(configMap, SettingSpaceFloor); floor > 0 {
		opts.SpaceFloor = floor
	}

	if algorithm := strings.ToLower(c.MapKeyToString(configMap, SettingHashAlgorithm)); algorithm != "" {
		if _, err := hashing.ForAlgorithm(algorithm); err != nil {
			return nil, fmt.Errorf("(config-policy) %w", err)
		}
		policy.Algorithm = algorithm
	}

	policy.Options = &opts

	return policy, nil
}
