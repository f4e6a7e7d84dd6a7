package main

import (
	"github.com/spf13/cobra"
)

// newRootCommand returns the root command with all subcommands and the
// persistent application flags attached.
func newRootCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migover",
		Short: "Safe one-shot migration of flat directory contents",
		Long: `migover transfers the regular files of a flat source directory into a
target directory with checksum-verified writes, metadata preservation,
rollback descriptors and re-verifiable checksum manifests. Migrations
are idempotent and are retried by simply re-running them.`,
		Version:       versionString(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return app.Bootstrap(cmd.Context())
		},
	}

	cmd.PersistentFlags().StringVar(&app.flags.configPath, "config", "", "application configuration file")
	cmd.PersistentFlags().BoolVar(&app.flags.uiEnabled, "ui", true, "enable the UI")
	cmd.PersistentFlags().StringVar(&app.flags.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	cmd.PersistentFlags().StringVar(&app.flags.cpuProfile, "cpuprofile", "", "write cpu profile to file")
	cmd.PersistentFlags().StringVar(&app.flags.memProfile, "memprofile", "", "write memory profile to this file")

	cmd.AddCommand(newMigrateCommand(app))
	cmd.AddCommand(newRollbackCommand(app))
	cmd.AddCommand(newVerifyCommand(app))
	cmd.AddCommand(newWatchCommand(app))
	cmd.AddCommand(newConfigCommand(app))

	return cmd
}

// versionString returns the build version, with a development fallback.
func versionString() string {
	if Version == "" {
		return "dev"
	}

	return Version
}
