package integrity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/desertwitch/migover/internal/hashing"
	"github.com/desertwitch/migover/internal/queue"
	"github.com/desertwitch/migover/internal/schema"
)

// ManifestVersion is the on-disk format version of a persisted [Manifest].
// Manifests recorded with a newer version than the running program supports
// are rejected on load.
const ManifestVersion = 1

// Manifest is the persistable checksum inventory of a migrated tree,
// self-describing through its recorded digest algorithm. It allows
// re-verifying the tree content long after the migrating process has exited,
// such as validating a backup before a restore.
type Manifest struct {
	Version   int               `json:"version"`
	Algorithm string            `json:"algorithm"`
	CreatedAt time.Time         `json:"created_at"`
	FileCount int               `json:"file_count"`
	Checksums map[string]string `json:"checksums"`
}

// Report aggregates the outcome of a tree verification against a [Manifest].
type Report struct {
	// Verified lists all files that digested to their recorded checksums.
	Verified []string

	// Mismatched lists all files whose recomputed digests differ from their
	// recorded checksums.
	Mismatched []string

	// Missing lists all recorded files that no longer exist in the tree.
	Missing []string

	// Failed lists all files that could not be read for re-verification.
	Failed []string
}

// AllPassed reports whether every recorded file was verified successfully.
func (r *Report) AllPassed() bool {
	return len(r.Mismatched) == 0 && len(r.Missing) == 0 && len(r.Failed) == 0
}

// NewManifest returns a pointer to a new [Manifest] recording the per-file
// checksums of a [schema.IntegrityReport].
func NewManifest(report *schema.IntegrityReport) (*Manifest, error) {
	if report == nil {
		return nil, fmt.Errorf("(integrity) %w", ErrNoReport)
	}

	checksums := make(map[string]string, len(report.Checksums))
	for name, digest := range report.Checksums {
		checksums[name] = digest
	}

	return &Manifest{
		Version:   ManifestVersion,
		Algorithm: report.Algorithm,
		CreatedAt: time.Now(),
		FileCount: len(checksums),
		Checksums: checksums,
	}, nil
}

// SaveManifest persists a [Manifest] as JSON to the given path, establishing
// any missing parent directories in the process.
func (v *Verifier) SaveManifest(manifest *Manifest, path string) error {
	if err := validateManifest(manifest); err != nil {
		return fmt.Errorf("(integrity) %w", err)
	}

	data, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return fmt.Errorf("(integrity) failed to marshal manifest: %w", err)
	}

	if err := v.osHandler.MkdirAll(filepath.Dir(path), 0o755); err != nil { //nolint:mnd
		return fmt.Errorf("(integrity) failed to create manifest dir: %w", err)
	}

	if err := v.osHandler.WriteFile(path, data, 0o644); err != nil { //nolint:mnd,gosec
		return fmt.Errorf("(integrity) failed to write manifest: %w", err)
	}

	return nil
}

// LoadManifest reads a [Manifest] back from a JSON file, rejecting manifests
// of unsupported format versions or with structurally unsound contents.
func (v *Verifier) LoadManifest(path string) (*Manifest, error) {
	data, err := v.osHandler.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("(integrity) failed to read manifest: %w", err)
	}

	manifest := &Manifest{}
	if err := json.Unmarshal(data, manifest); err != nil {
		return nil, fmt.Errorf("(integrity) failed to unmarshal manifest: %w", err)
	}

	if manifest.Version > ManifestVersion {
		return nil, fmt.Errorf("(integrity) %w: %d", ErrManifestVersion, manifest.Version)
	}

	if err := validateManifest(manifest); err != nil {
		return nil, fmt.Errorf("(integrity) %w", err)
	}

	return manifest, nil
}

// validateManifest checks a [Manifest] for structural soundness.
func validateManifest(manifest *Manifest) error {
	if manifest == nil {
		return ErrNoManifest
	}

	if _, err := hashing.ForAlgorithm(manifest.Algorithm); err != nil {
		return err
	}

	for name := range manifest.Checksums {
		if strings.ContainsRune(name, filepath.Separator) {
			return fmt.Errorf("%w: %s", ErrManifestNested, name)
		}
	}

	return nil
}

// VerifyTree re-digests every file a [Manifest] records against the given
// directory, concurrently with up to maxWorkers workers, and reports any
// mismatched, missing or unreadable files. The digest algorithm is resolved
// from the manifest itself.
//
// The given [queue.Manager] must be freshly established per invocation; its
// verify queue carries the processing record and can be observed for
// progress while the verification is running.
//
// A non-nil [Report] is returned alongside [ErrTreeNotVerified] whenever the
// tree content does not match the manifest.
func (v *Verifier) VerifyTree(ctx context.Context, queues *queue.Manager, dir string, manifest *Manifest, maxWorkers int) (*Report, error) {
	if err := validateManifest(manifest); err != nil {
		return nil, fmt.Errorf("(integrity) %w", err)
	}

	hasher, err := hashing.ForAlgorithm(manifest.Algorithm)
	if err != nil {
		return nil, fmt.Errorf("(integrity) %w", err)
	}

	names := make([]string, 0, len(manifest.Checksums))
	for name := range manifest.Checksums {
		names = append(names, name)
	}
	slices.Sort(names)

	entries := make([]*schema.Entry, 0, len(names))
	for _, name := range names {
		entries = append(entries, &schema.Entry{
			Name:       name,
			TargetPath: filepath.Join(dir, name),
			Checksum:   manifest.Checksums[name],
		})
	}

	queues.Verify.Enqueue(entries...)

	report := &Report{}

	var mu sync.Mutex

	processFunc := func(e *schema.Entry) int {
		err := v.verifyFileWith(ctx, hasher, e.TargetPath, e.Checksum)

		mu.Lock()
		defer mu.Unlock()

		switch {
		case err == nil:
			report.Verified = append(report.Verified, e.Name)

			return queue.DecisionSuccess

		case errors.Is(err, fs.ErrNotExist):
			slog.Warn("Missing: recorded file no longer exists",
				"name", e.Name,
				"path", e.TargetPath,
			)
			report.Missing = append(report.Missing, e.Name)

			return queue.DecisionFailed

		case errors.Is(err, ErrChecksumMismatch):
			slog.Warn("Mismatched: content differs from recorded checksum",
				"name", e.Name,
				"path", e.TargetPath,
				"err", err,
			)
			report.Mismatched = append(report.Mismatched, e.Name)

			return queue.DecisionFailed

		default:
			slog.Warn("Failed: file could not be re-verified",
				"name", e.Name,
				"path", e.TargetPath,
				"err", err,
			)
			report.Failed = append(report.Failed, e.Name)

			return queue.DecisionFailed
		}
	}

	if err := queues.Verify.DequeueAndProcessConc(ctx, max(maxWorkers, 1), processFunc); err != nil {
		return report, fmt.Errorf("(integrity) %w", err)
	}

	slices.Sort(report.Verified)
	slices.Sort(report.Mismatched)
	slices.Sort(report.Missing)
	slices.Sort(report.Failed)

	if !report.AllPassed() {
		return report, fmt.Errorf("(integrity) %w", ErrTreeNotVerified)
	}

	return report, nil
}
