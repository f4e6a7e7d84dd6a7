package main

import (
	"github.com/spf13/cobra"
)

type rollbackFlags struct {
	from string
}

// newRollbackCommand returns the rollback command.
func newRollbackCommand(app *App) *cobra.Command {
	flags := &rollbackFlags{}

	cmd := &cobra.Command{
		Use:   "rollback",
		Short: "Restore migrated files back into their source directory",
		Long: `Rollback reverses an earlier migration using its saved rollback
descriptor, moving the recorded files from the target back into the
source directory. Files the descriptor names that no longer exist in
the target are skipped, so a rollback can itself be re-run safely.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRollback(app, flags, cmd)
		},
	}

	cmd.Flags().StringVar(&flags.from, "from", "", "rollback descriptor file (required)")
	_ = cmd.MarkFlagRequired("from")

	return cmd
}

func runRollback(app *App, flags *rollbackFlags, cmd *cobra.Command) error {
	ctx := cmd.Context()

	migrationHandler, err := app.MigrationHandler(app.cfg.Migration.HashAlgorithm)
	if err != nil {
		return err
	}

	descriptor, err := migrationHandler.LoadDescriptor(flags.from)
	if err != nil {
		return err
	}

	result, err := migrationHandler.Rollback(ctx, descriptor)

	if result != nil {
		logResultSummary(result)
	}

	return err
}
