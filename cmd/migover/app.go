package main

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/desertwitch/migover/internal/configuration"
	"github.com/desertwitch/migover/internal/filesystem"
	"github.com/desertwitch/migover/internal/hashing"
	"github.com/desertwitch/migover/internal/integrity"
	"github.com/desertwitch/migover/internal/migration"
	"github.com/desertwitch/migover/internal/queue"
	"github.com/desertwitch/migover/internal/schema"
	"github.com/desertwitch/migover/internal/ui"
	"github.com/dustin/go-humanize"
)

// rootFlags holds the persistent command-line flags.
type rootFlags struct {
	configPath string
	uiEnabled  bool
	logLevel   string
	cpuProfile string
	memProfile string
}

// App wires the handlers of the application together and carries the
// process-wide helpers through the command lifecycle.
type App struct {
	cancel context.CancelFunc

	flags *rootFlags
	cfg   *configuration.AppConfig

	osProvider    *schema.OS
	unixProvider  *schema.Unix
	fsHandler     *filesystem.Handler
	configHandler *configuration.Handler

	memObserver   *memoryObserver
	cpuProfiler   *cpuProfiler
	allocProfiler *allocProfiler
}

// NewApp returns a pointer to a new [App].
func NewApp(cancel context.CancelFunc) *App {
	return &App{
		cancel: cancel,
		flags:  &rootFlags{},
	}
}

// Bootstrap loads the application configuration and establishes logging,
// profiling and the shared handlers. It is called once before a command runs.
func (app *App) Bootstrap(ctx context.Context) error {
	cfg, err := app.loadConfig()
	if err != nil {
		return fmt.Errorf("(app) %w", err)
	}
	app.cfg = cfg

	setupTerminalLogging(app.logLevel())

	app.memObserver = newMemoryObserver(ctx)
	app.cpuProfiler = newCPUProfiler(ctx, &app.flags.cpuProfile)
	app.allocProfiler = newAllocProfiler(ctx, &app.flags.memProfile)

	app.osProvider = &schema.OS{}
	app.unixProvider = &schema.Unix{}
	app.fsHandler = filesystem.NewHandler(ctx, app.osProvider, app.unixProvider)
	app.configHandler = configuration.NewHandler(&configuration.GodotenvProvider{}, app.osProvider)

	return nil
}

// Shutdown stops the process-wide helpers. It is safe to call without a
// previous [App.Bootstrap].
func (app *App) Shutdown() {
	if app.cpuProfiler != nil {
		app.cpuProfiler.Stop()
	}

	if app.allocProfiler != nil {
		app.allocProfiler.Stop()
	}

	if app.memObserver != nil {
		app.memObserver.Stop()
	}
}

// loadConfig loads the application configuration from an explicitly given
// file, or from the default location with a fallback to the application
// defaults.
func (app *App) loadConfig() (*configuration.AppConfig, error) {
	if app.flags.configPath != "" {
		return configuration.LoadAppConfig(app.flags.configPath)
	}

	return configuration.LoadAppConfigOrDefault()
}

// logLevel returns the effective logging level, with the command-line flag
// overriding the configured level.
func (app *App) logLevel() slog.Level {
	if app.flags.logLevel != "" {
		return parseLogLevel(app.flags.logLevel)
	}

	if app.cfg != nil {
		return parseLogLevel(app.cfg.Logging.Level)
	}

	return slog.LevelInfo
}

// MigrationHandler returns a migration handler digesting with the given
// algorithm.
func (app *App) MigrationHandler(algorithm string) (*migration.Handler, error) {
	hasher, err := hashing.ForAlgorithm(algorithm)
	if err != nil {
		return nil, fmt.Errorf("(app) %w", err)
	}

	return migration.NewHandler(app.fsHandler, app.osProvider, app.unixProvider, hasher), nil
}

// Verifier returns an integrity verifier digesting with the given algorithm.
func (app *App) Verifier(algorithm string) (*integrity.Verifier, error) {
	hasher, err := hashing.ForAlgorithm(algorithm)
	if err != nil {
		return nil, fmt.Errorf("(app) %w", err)
	}

	return integrity.NewVerifier(app.osProvider, hasher), nil
}

// RunWithUI executes the given work function, either plainly or framed by the
// command-line user interface observing the given queues. With the interface
// enabled, the work is held back until the interface has initialized; the
// interface then remains open for reviewing the outcome until quit by the
// user.
func (app *App) RunWithUI(ctx context.Context, queues *queue.Manager, workFunc func(context.Context) error) error {
	if !app.flags.uiEnabled {
		return workFunc(ctx)
	}

	uiHandler := ui.NewHandler(ctx, app.cancel, queues)

	var wg sync.WaitGroup
	var workErr error

	wg.Add(1)
	go func() {
		defer wg.Done()
		defer setupTerminalLogging(app.logLevel())

		setupUILogging(uiHandler.LogWriter, app.logLevel())

		if err := uiHandler.Launch(); err != nil {
			slog.Error("UI failure: falling back to terminal.",
				"err", err,
			)
		}
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()

		slog.Info("Waiting for UI...")
		for {
			select {
			case <-ctx.Done():
				workErr = fmt.Errorf("(app) %w", ctx.Err())

				return
			default:
			}
			if uiHandler.Initialized.Load() || uiHandler.Failed.Load() {
				break
			}
		}

		workErr = workFunc(ctx)
	}()

	wg.Wait()

	return workErr
}

// logResultSummary logs the outcome of a migration or rollback run.
func logResultSummary(result *schema.Result) {
	attrs := []any{
		"success", result.Success,
		"migrated", len(result.MigratedFiles),
		"skipped", len(result.SkippedFiles),
		"failed", len(result.FailedFiles),
		"bytes", humanize.Bytes(result.BytesMigrated),
		"duration", result.FinishedAt.Sub(result.StartedAt).Round(time.Millisecond).String(),
	}

	if result.Success {
		slog.Info("Finished:", attrs...)
	} else {
		slog.Error("Finished with failures:", attrs...)
	}
}
