// Package watcher implements the continuous operation mode of the
// application: it observes a flat source directory for filesystem changes
// and triggers a fresh migration pass whenever the directory has been quiet
// for a configurable settle interval.
//
// Migration passes are idempotent, so spurious triggers are harmless; a pass
// finding nothing new to do reports only skipped files. A failing pass does
// not stop the observation, the next settling change retries it.
package watcher

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultSettle is the default quiet interval after which a changed source
// directory is considered settled.
const DefaultSettle = 2 * time.Second

// MigrateFunc is the migration pass invoked for a settled source directory.
type MigrateFunc func(ctx context.Context) error

// Handler is the principal implementation structure of the watcher.
type Handler struct {
	sourceDir string
	settle    time.Duration
	migrate   MigrateFunc
}

// NewHandler returns a pointer to a new watcher [Handler]. A non-positive
// settle interval falls back to [DefaultSettle].
func NewHandler(sourceDir string, settle time.Duration, migrate MigrateFunc) *Handler {
	if settle <= 0 {
		settle = DefaultSettle
	}

	return &Handler{
		sourceDir: sourceDir,
		settle:    settle,
		migrate:   migrate,
	}
}

// Run observes the source directory until the context is cancelled, running
// an initial migration pass and another one each time the directory settles
// after changes. Only the watch on the source directory itself is
// established, matching the flat migration semantics.
//
// Run blocks for its whole lifetime; the only regular way out is a context
// cancellation, which is returned wrapped.
func (w *Handler) Run(ctx context.Context) error {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("(watcher) failed to establish watcher: %w", err)
	}
	defer fsWatcher.Close()

	if err := fsWatcher.Add(w.sourceDir); err != nil {
		return fmt.Errorf("(watcher) failed to watch %s: %w", w.sourceDir, err)
	}

	slog.Info("Watching: observing source for settling changes",
		"source", w.sourceDir,
		"settle", w.settle,
	)

	if err := w.runPass(ctx); err != nil {
		return err
	}

	// The timer's first expiry finds the dirty flag unset and does nothing;
	// it is only armed for real by observed events.
	settle := time.NewTimer(w.settle)
	defer settle.Stop()

	dirty := false

	for {
		select {
		case <-ctx.Done():
			return fmt.Errorf("(watcher) %w", ctx.Err())

		case event, ok := <-fsWatcher.Events:
			if !ok {
				return fmt.Errorf("(watcher) %w", ErrChannelClosed)
			}

			if !event.Op.Has(fsnotify.Create | fsnotify.Write | fsnotify.Rename | fsnotify.Remove) {
				continue
			}

			slog.Debug("Observed: source has changed",
				"op", event.Op.String(),
				"path", event.Name,
			)

			dirty = true
			settle.Reset(w.settle)

		case err, ok := <-fsWatcher.Errors:
			if !ok {
				return fmt.Errorf("(watcher) %w", ErrChannelClosed)
			}

			slog.Warn("Failed: watcher has reported an error",
				"err", err,
			)

		case <-settle.C:
			if !dirty {
				continue
			}
			dirty = false

			if err := w.runPass(ctx); err != nil {
				return err
			}
		}
	}
}

// runPass invokes the migration pass, logging any per-pass failure and
// propagating only a context cancellation as fatal.
func (w *Handler) runPass(ctx context.Context) error {
	if err := w.migrate(ctx); err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("(watcher) %w", ctx.Err())
		}

		slog.Warn("Failed: migration pass unsuccessful, awaiting further changes",
			"err", err,
		)
	}

	return nil
}
