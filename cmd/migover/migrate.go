package main

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/desertwitch/migover/internal/configuration"
	"github.com/desertwitch/migover/internal/integrity"
	"github.com/desertwitch/migover/internal/migration"
	"github.com/desertwitch/migover/internal/queue"
	"github.com/desertwitch/migover/internal/schema"
	"github.com/spf13/cobra"
)

// migrateFlags holds the migration behavior flags, shared between the migrate
// and watch commands.
type migrateFlags struct {
	source           string
	target           string
	preserveOriginal bool
	preserveMetadata bool
	integrity        bool
	skipOnError      bool
	createTarget     bool
	hash             string
	spaceFloor       uint64
	rollbackFile     string
	manifestFile     string
}

// newMigrateCommand returns the migrate command.
func newMigrateCommand(app *App) *cobra.Command {
	flags := &migrateFlags{}

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Migrate the files of a flat source directory into a target directory",
		Long: `Migrate transfers all regular files of a flat source directory into a
target directory, one-shot and idempotent: files already present with
identical content are skipped, changed files are overwritten, and any
incomplete transfer is discarded rather than left half-written.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runMigrate(app, flags, cmd)
		},
	}

	addMigrateFlags(cmd, flags)

	return cmd
}

// addMigrateFlags registers the migration behavior flags on a command. The
// displayed defaults are the application defaults; a configuration file
// changes the effective defaults at runtime, with explicitly set flags
// overriding both.
func addMigrateFlags(cmd *cobra.Command, flags *migrateFlags) {
	defaults := configuration.DefaultAppConfig()

	cmd.Flags().StringVarP(&flags.source, "source", "s", "", "source directory (required)")
	cmd.Flags().StringVarP(&flags.target, "target", "t", "", "target directory (required)")
	_ = cmd.MarkFlagRequired("source")
	_ = cmd.MarkFlagRequired("target")

	cmd.Flags().BoolVar(&flags.preserveOriginal, "preserve-original", defaults.Migration.Mode != configuration.ModeMove,
		"keep source files after migration (copy semantics)")
	cmd.Flags().BoolVar(&flags.preserveMetadata, "preserve-metadata", defaults.Migration.PreserveMetadata,
		"restore permissions, ownership and timestamps on migrated files")
	cmd.Flags().BoolVar(&flags.integrity, "integrity", defaults.Migration.IntegrityChecks,
		"produce a per-file checksum report")
	cmd.Flags().BoolVar(&flags.skipOnError, "skip-on-error", defaults.Migration.SkipOnError,
		"continue with remaining files when one fails")
	cmd.Flags().BoolVar(&flags.createTarget, "create-target", defaults.Migration.CreateTarget,
		"create the target directory when missing")
	cmd.Flags().StringVar(&flags.hash, "hash", defaults.Migration.HashAlgorithm,
		"checksum algorithm (blake3, sha256)")
	cmd.Flags().Uint64Var(&flags.spaceFloor, "space-floor", defaults.Migration.SpaceFloor,
		"bytes to keep free on the target filesystem")
	cmd.Flags().StringVar(&flags.rollbackFile, "rollback-file", "",
		"write the rollback descriptor to this file")
	cmd.Flags().StringVar(&flags.manifestFile, "manifest", "",
		"write a checksum manifest to this file")
}

// effectiveOptions layers the option sources for a migration run: the
// application configuration as the base, explicitly set command-line flags
// over it, and finally any policy file inside the source directory. Requested
// output artifacts imply the options producing them.
func (f *migrateFlags) effectiveOptions(app *App, cmd *cobra.Command, sourceDir string) (*schema.Options, string, error) {
	opts := app.cfg.ToOptions()
	algorithm := app.cfg.Migration.HashAlgorithm

	if cmd.Flags().Changed("preserve-original") {
		opts.PreserveOriginal = f.preserveOriginal
	}

	if cmd.Flags().Changed("preserve-metadata") {
		opts.PreserveMetadata = f.preserveMetadata
	}

	if cmd.Flags().Changed("integrity") {
		opts.IntegrityChecks = f.integrity
	}

	if cmd.Flags().Changed("skip-on-error") {
		opts.SkipOnError = f.skipOnError
	}

	if cmd.Flags().Changed("create-target") {
		opts.CreateTarget = f.createTarget
	}

	if cmd.Flags().Changed("space-floor") {
		opts.SpaceFloor = f.spaceFloor
	}

	if cmd.Flags().Changed("hash") {
		algorithm = f.hash
	}

	policy, err := app.configHandler.LoadPolicy(sourceDir, opts, algorithm)
	if err != nil {
		return nil, "", err
	}

	effOpts := policy.Options

	if f.rollbackFile != "" {
		effOpts.CreateRollback = true
	}

	if f.manifestFile != "" {
		effOpts.IntegrityChecks = true
	}

	return effOpts, policy.Algorithm, nil
}

func runMigrate(app *App, flags *migrateFlags, cmd *cobra.Command) error {
	ctx := cmd.Context()

	sourceDir, err := filepath.Abs(flags.source)
	if err != nil {
		return fmt.Errorf("(cmd-migrate) failed to resolve source: %w", err)
	}

	targetDir, err := filepath.Abs(flags.target)
	if err != nil {
		return fmt.Errorf("(cmd-migrate) failed to resolve target: %w", err)
	}

	opts, algorithm, err := flags.effectiveOptions(app, cmd, sourceDir)
	if err != nil {
		return err
	}

	migrationHandler, err := app.MigrationHandler(algorithm)
	if err != nil {
		return err
	}

	queues := queue.NewManager()

	var result *schema.Result

	runErr := app.RunWithUI(ctx, queues, func(ctx context.Context) error {
		var err error
		result, err = migrationHandler.Migrate(ctx, queues, sourceDir, targetDir, opts)

		return err
	})

	if result != nil {
		logResultSummary(result)

		// Artifacts of a partial run are still written: a descriptor of a
		// failed migration is exactly what a later rollback needs.
		if err := saveMigrationArtifacts(app, flags, migrationHandler, result, algorithm); err != nil {
			return err
		}
	}

	return runErr
}

// saveMigrationArtifacts persists the rollback descriptor and checksum
// manifest of a run whenever output files were requested for them.
func saveMigrationArtifacts(app *App, flags *migrateFlags, m *migration.Handler, result *schema.Result, algorithm string) error {
	if flags.rollbackFile != "" && result.Rollback != nil {
		if err := m.SaveDescriptor(result.Rollback, flags.rollbackFile); err != nil {
			return err
		}

		slog.Info("Saved: rollback descriptor",
			"path", flags.rollbackFile,
		)
	}

	if flags.manifestFile != "" && result.Integrity != nil {
		manifest, err := integrity.NewManifest(result.Integrity)
		if err != nil {
			return err
		}

		verifier, err := app.Verifier(algorithm)
		if err != nil {
			return err
		}

		if err := verifier.SaveManifest(manifest, flags.manifestFile); err != nil {
			return err
		}

		slog.Info("Saved: checksum manifest",
			"path", flags.manifestFile,
		)
	}

	return nil
}
