package filesystem

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"slices"

	"github.com/desertwitch/migover/internal/schema"
)

// ListEntries enumerates the regular files of a flat source directory into
// [schema.Entry] elements, establishing their metadata and target paths.
//
// Nested directories, symbolic links and other non-regular files are not
// migratable and skipped with a diagnostic. Any names given as skipNames are
// left out of the enumeration entirely.
func (f *Handler) ListEntries(ctx context.Context, sourceDir string, targetDir string, skipNames ...string) ([]*schema.Entry, error) {
	entries := []*schema.Entry{}

	srcInfo, err := f.osHandler.Stat(sourceDir)
	if err != nil {
		return nil, fmt.Errorf("(fs-entries) failed to stat source: %w", err)
	}
	if !srcInfo.IsDir() {
		return nil, fmt.Errorf("(fs-entries) %w: %s", ErrNotADirectory, sourceDir)
	}

	dirEntries, err := f.osHandler.ReadDir(sourceDir)
	if err != nil {
		return nil, fmt.Errorf("(fs-entries) failed to readdir: %w", err)
	}

	for _, d := range dirEntries {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("(fs-entries) %w", ctx.Err())
		}

		if slices.Contains(skipNames, d.Name()) {
			continue
		}

		path := filepath.Join(sourceDir, d.Name())

		metadata, err := f.GetMetadata(path)
		if err != nil {
			return nil, fmt.Errorf("(fs-entries) failed to get metadata: %w", err)
		}

		if !metadata.IsRegular() {
			slog.Warn("Skipped entry: not a regular file",
				"path", path,
			)

			continue
		}

		entries = append(entries, &schema.Entry{
			Name:       d.Name(),
			SourcePath: path,
			TargetPath: filepath.Join(targetDir, d.Name()),
			Metadata:   metadata,
		})
	}

	return entries, nil
}
