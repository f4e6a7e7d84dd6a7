package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/desertwitch/migover/internal/configuration"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// newConfigCommand returns the config command with its subcommands.
func newConfigCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the application configuration",
	}

	cmd.AddCommand(newConfigInitCommand(app))
	cmd.AddCommand(newConfigShowCommand(app))

	return cmd
}

// newConfigInitCommand returns the config init subcommand. It must run
// without an existing configuration, so it bypasses the usual application
// bootstrap.
func newConfigInitCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Write a default configuration file",
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return nil
		},
		RunE: func(_ *cobra.Command, _ []string) error {
			return runConfigInit(app)
		},
	}
}

// newConfigShowCommand returns the config show subcommand.
func newConfigShowCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigShow(app, cmd)
		},
	}
}

func runConfigInit(app *App) error {
	path := app.flags.configPath

	if path == "" {
		defaultPath, err := configuration.DefaultAppConfigPath()
		if err != nil {
			return err
		}
		path = defaultPath
	}

	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("(cmd-config) %w: %s", ErrConfigExists, path)
	}

	if err := configuration.SaveAppConfig(configuration.DefaultAppConfig(), path); err != nil {
		return err
	}

	slog.Info("Saved: default configuration",
		"path", path,
	)

	return nil
}

func runConfigShow(app *App, cmd *cobra.Command) error {
	content, err := yaml.Marshal(app.cfg)
	if err != nil {
		return fmt.Errorf("(cmd-config) failed to encode configuration: %w", err)
	}

	fmt.Fprint(cmd.OutOrStdout(), string(content))

	return nil
}
