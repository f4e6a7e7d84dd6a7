package main

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/desertwitch/migover/internal/configuration"
	"github.com/desertwitch/migover/internal/integrity"
	"github.com/desertwitch/migover/internal/queue"
	"github.com/spf13/cobra"
)

type verifyFlags struct {
	dir      string
	manifest string
	workers  int
}

// newVerifyCommand returns the verify command.
func newVerifyCommand(app *App) *cobra.Command {
	flags := &verifyFlags{}

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Re-verify a directory against a saved checksum manifest",
		Long: `Verify recomputes the checksum of every file a manifest records and
compares it against the manifest, reporting files that are missing,
changed or unreadable since the manifest was written.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runVerify(app, flags, cmd)
		},
	}

	defaults := configuration.DefaultAppConfig()

	cmd.Flags().StringVarP(&flags.dir, "dir", "d", "", "directory to verify (required)")
	cmd.Flags().StringVarP(&flags.manifest, "manifest", "m", "", "checksum manifest file (required)")
	cmd.Flags().IntVarP(&flags.workers, "workers", "w", defaults.Verify.MaxWorkers, "concurrent verification workers")
	_ = cmd.MarkFlagRequired("dir")
	_ = cmd.MarkFlagRequired("manifest")

	return cmd
}

func runVerify(app *App, flags *verifyFlags, cmd *cobra.Command) error {
	ctx := cmd.Context()

	dir, err := filepath.Abs(flags.dir)
	if err != nil {
		return fmt.Errorf("(cmd-verify) failed to resolve directory: %w", err)
	}

	workers := flags.workers
	if !cmd.Flags().Changed("workers") {
		workers = app.cfg.Verify.MaxWorkers
	}

	verifier, err := app.Verifier(app.cfg.Migration.HashAlgorithm)
	if err != nil {
		return err
	}

	manifest, err := verifier.LoadManifest(flags.manifest)
	if err != nil {
		return err
	}

	queues := queue.NewManager()

	var report *integrity.Report

	runErr := app.RunWithUI(ctx, queues, func(ctx context.Context) error {
		var err error
		report, err = verifier.VerifyTree(ctx, queues, dir, manifest, workers)

		return err
	})

	if report != nil {
		slog.Info("Verified:",
			"passed", report.AllPassed(),
			"verified", len(report.Verified),
			"mismatched", len(report.Mismatched),
			"missing", len(report.Missing),
			"failed", len(report.Failed),
		)
	}

	return runErr
}
