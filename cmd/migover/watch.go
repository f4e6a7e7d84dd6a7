package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/desertwitch/migover/internal/queue"
	"github.com/desertwitch/migover/internal/watcher"
	"github.com/spf13/cobra"
)

type watchFlags struct {
	migrateFlags
	settle time.Duration
}

// newWatchCommand returns the watch command.
func newWatchCommand(app *App) *cobra.Command {
	flags := &watchFlags{}

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Continuously migrate a source directory as it changes",
		Long: `Watch observes a source directory and re-runs the migration whenever
its contents have settled after a change. Each pass is the same
idempotent migration the migrate command performs, so files already
transferred are skipped and only new or changed content moves.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runWatch(app, flags, cmd)
		},
	}

	addMigrateFlags(cmd, &flags.migrateFlags)
	cmd.Flags().DurationVar(&flags.settle, "settle", watcher.DefaultSettle,
		"quiet period after a change before a migration pass")

	return cmd
}

func runWatch(app *App, flags *watchFlags, cmd *cobra.Command) error {
	ctx := cmd.Context()

	sourceDir, err := filepath.Abs(flags.source)
	if err != nil {
		return fmt.Errorf("(cmd-watch) failed to resolve source: %w", err)
	}

	targetDir, err := filepath.Abs(flags.target)
	if err != nil {
		return fmt.Errorf("(cmd-watch) failed to resolve target: %w", err)
	}

	opts, algorithm, err := flags.effectiveOptions(app, cmd, sourceDir)
	if err != nil {
		return err
	}

	migrationHandler, err := app.MigrationHandler(algorithm)
	if err != nil {
		return err
	}

	w := watcher.NewHandler(sourceDir, flags.settle, func(ctx context.Context) error {
		result, err := migrationHandler.Migrate(ctx, queue.NewManager(), sourceDir, targetDir, opts)

		if result != nil {
			logResultSummary(result)

			if saveErr := saveMigrationArtifacts(app, &flags.migrateFlags, migrationHandler, result, algorithm); saveErr != nil {
				slog.Warn("Failed: could not save migration artifacts",
					"error", saveErr,
				)
			}
		}

		return err
	})

	if err := w.Run(ctx); err != nil {
		// Cancellation is the regular way of stopping a watch.
		if errors.Is(err, context.Canceled) {
			return nil
		}

		return err
	}

	return nil
}
