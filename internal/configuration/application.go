package configuration

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/desertwitch/migover/internal/hashing"
	"github.com/desertwitch/migover/internal/schema"
	"gopkg.in/yaml.v3"
)

const (
	// ModeCopy leaves source files in place after a successful migration.
	ModeCopy = "copy"

	// ModeMove removes source files after a successful, re-verified migration.
	ModeMove = "move"
)

// AppConfig is the principal structure holding the application configuration.
type AppConfig struct {
	Migration MigrationConfig `yaml:"migration"`
	Verify    VerifyConfig    `yaml:"verify"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// MigrationConfig holds the migration behavior settings.
type MigrationConfig struct {
	Mode             string `yaml:"mode"`
	HashAlgorithm    string `yaml:"hash_algorithm"`
	IntegrityChecks  bool   `yaml:"integrity_checks"`
	PreserveMetadata bool   `yaml:"preserve_metadata"`
	CreateRollback   bool   `yaml:"create_rollback"`
	CreateTarget     bool   `yaml:"create_target"`
	SkipOnError      bool   `yaml:"skip_on_error"`
	SpaceFloor       uint64 `yaml:"space_floor"`
}

// VerifyConfig holds the verification behavior settings.
type VerifyConfig struct {
	MaxWorkers int `yaml:"max_workers"`
}

// LoggingConfig holds the logging behavior settings.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// DefaultAppConfig returns a pointer to a new [AppConfig] with the
// application defaults.
func DefaultAppConfig() *AppConfig {
	return &AppConfig{
		Migration: MigrationConfig{
			Mode:             ModeCopy,
			HashAlgorithm:    hashing.AlgorithmBlake3,
			IntegrityChecks:  true,
			PreserveMetadata: true,
			CreateRollback:   true,
			CreateTarget:     false,
			SkipOnError:      false,
			SpaceFloor:       0,
		},
		Verify: VerifyConfig{
			MaxWorkers: 4, //nolint:mnd
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Validate checks an [AppConfig] for structural soundness.
func (a *AppConfig) Validate() error {
	if a.Migration.Mode != ModeCopy && a.Migration.Mode != ModeMove {
		return fmt.Errorf("(config) %w: %q", ErrBadMode, a.Migration.Mode)
	}

	if _, err := hashing.ForAlgorithm(a.Migration.HashAlgorithm); err != nil {
		return fmt.Errorf("(config) %w", err)
	}

	if a.Verify.MaxWorkers < 1 {
		return fmt.Errorf("(config) %w: %d", ErrBadWorkers, a.Verify.MaxWorkers)
	}

	switch a.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("(config) %w: %q", ErrBadLogLevel, a.Logging.Level)
	}

	return nil
}

// ToOptions converts the migration settings of an [AppConfig] into
// [schema.Options] for handing to the migration handler.
func (a *AppConfig) ToOptions() *schema.Options {
	return &schema.Options{
		PreserveOriginal: a.Migration.Mode != ModeMove,
		CreateRollback:   a.Migration.CreateRollback,
		IntegrityChecks:  a.Migration.IntegrityChecks,
		PreserveMetadata: a.Migration.PreserveMetadata,
		SkipOnError:      a.Migration.SkipOnError,
		CreateTarget:     a.Migration.CreateTarget,
		SpaceFloor:       a.Migration.SpaceFloor,
	}
}

// LoadAppConfig loads an [AppConfig] from a YAML file, with any unset fields
// falling back to the application defaults.
func LoadAppConfig(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("(config) failed to read config file: %w", err)
	}

	config := DefaultAppConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("(config) failed to parse config file: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("(config) invalid configuration: %w", err)
	}

	return config, nil
}

// SaveAppConfig saves an [AppConfig] to a YAML file, establishing any missing
// parent directories in the process.
func SaveAppConfig(config *AppConfig, path string) error {
	if err := config.Validate(); err != nil {
		return fmt.Errorf("(config) invalid configuration: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("(config) failed to marshal config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil { //nolint:mnd
		return fmt.Errorf("(config) failed to create config dir: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil { //nolint:mnd,gosec
		return fmt.Errorf("(config) failed to write config file: %w", err)
	}

	return nil
}

// DefaultAppConfigPath returns the default application configuration path
// inside the user configuration directory.
func DefaultAppConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("(config) failed to get home dir: %w", err)
	}

	return filepath.Join(home, ".config", "migover", "config.yaml"), nil
}

// LoadAppConfigOrDefault attempts to load an [AppConfig] from the default
// location, returning the application defaults when no file exists there.
func LoadAppConfigOrDefault() (*AppConfig, error) {
	path, err := DefaultAppConfigPath()
	if err != nil {
		return nil, err
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return DefaultAppConfig(), nil
	}

	return LoadAppConfig(path)
}
