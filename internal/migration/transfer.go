package migration

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/desertwitch/migover/internal/hashing"
	"github.com/desertwitch/migover/internal/schema"
)

//nolint:containedctx
type contextReader struct {
	ctx    context.Context
	reader io.Reader
}

func (cr *contextReader) Read(p []byte) (int, error) {
	select {
	case <-cr.ctx.Done():
		return 0, context.Canceled
	default:
		return cr.reader.Read(p)
	}
}

// processEntry runs the full per-file pipeline on a single [schema.Entry],
// reporting whether the file was skipped as already migrated.
func (m *Handler) processEntry(ctx context.Context, e *schema.Entry, opts *schema.Options) (bool, error) {
	if err := m.fsHandler.CanReadFile(e.SourcePath); err != nil {
		return false, fmt.Errorf("%w: %w", ErrSourceUnreadable, err)
	}

	identical, err := m.alreadyMigrated(ctx, e)
	if err != nil {
		return false, fmt.Errorf("failed to check for a prior migration: %w", err)
	}

	if identical {
		if !opts.PreserveOriginal {
			if err := m.removeSource(ctx, e); err != nil {
				return false, fmt.Errorf("failed to remove source file: %w", err)
			}
		}

		return true, nil
	}

	if opts.SpaceFloor > 0 {
		enoughSpace, err := m.fsHandler.HasEnoughFreeSpace(filepath.Dir(e.TargetPath), opts.SpaceFloor, e.Metadata.Size)
		if err != nil {
			return false, fmt.Errorf("failed to check for enough space: %w", err)
		}
		if !enoughSpace {
			return false, fmt.Errorf("%w: %s", ErrNotEnoughSpace, e.TargetPath)
		}
	}

	if err := m.transferFile(ctx, e); err != nil {
		return false, fmt.Errorf("failed to transfer file: %w", err)
	}

	if opts.PreserveMetadata {
		if err := m.ensurePermissions(e.TargetPath, e.Metadata); err != nil {
			return false, fmt.Errorf("failed to ensure permissions: %w", err)
		}
		if err := m.ensureTimestamp(e.TargetPath, e.Metadata); err != nil {
			return false, fmt.Errorf("failed to ensure timestamp: %w", err)
		}
	}

	if !opts.PreserveOriginal {
		if err := m.removeSource(ctx, e); err != nil {
			return false, fmt.Errorf("failed to remove source file: %w", err)
		}
	}

	return false, nil
}

// alreadyMigrated checks whether the target path already holds a regular file
// with content identical to the source file. On an established match, the
// source digest is recorded on the [schema.Entry].
func (m *Handler) alreadyMigrated(ctx context.Context, e *schema.Entry) (bool, error) {
	tgtInfo, err := m.osHandler.Stat(e.TargetPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}

		return false, fmt.Errorf("failed to stat target file: %w", err)
	}

	if !tgtInfo.Mode().IsRegular() {
		return false, fmt.Errorf("%w: %s", ErrRenameExists, e.TargetPath)
	}

	if uint64(tgtInfo.Size()) != e.Metadata.Size { //nolint:gosec
		return false, nil
	}

	srcFile, err := m.osHandler.Open(e.SourcePath)
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrSourceUnreadable, err)
	}
	defer srcFile.Close()

	srcDigest, _, err := hashing.HashReader(ctx, m.hasher, srcFile)
	if err != nil {
		return false, fmt.Errorf("failed to digest source file: %w", err)
	}

	tgtFile, err := m.osHandler.Open(e.TargetPath)
	if err != nil {
		return false, fmt.Errorf("failed to open target file: %w", err)
	}
	defer tgtFile.Close()

	tgtDigest, _, err := hashing.HashReader(ctx, m.hasher, tgtFile)
	if err != nil {
		return false, fmt.Errorf("failed to digest target file: %w", err)
	}

	if srcDigest != tgtDigest {
		return false, nil
	}

	e.Checksum = srcDigest

	return true, nil
}

// transferFile copies the source file content to a temporary file beside the
// target path, digesting both streams in flight. Only on digest equality is
// the temporary file renamed to the final target name, overwriting an
// outdated regular file if one exists there. The source digest is recorded on
// the [schema.Entry].
func (m *Handler) transferFile(ctx context.Context, e *schema.Entry) error {
	var transferComplete bool

	srcFile, err := m.osHandler.Open(e.SourcePath)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSourceUnreadable, err)
	}
	defer srcFile.Close()

	tmpPath := e.TargetPath + TempSuffix
	defer func() {
		if !transferComplete {
			m.osHandler.Remove(tmpPath) //nolint:errcheck
		}
	}()

	dstFile, err := m.osHandler.OpenFile(tmpPath, os.O_CREATE|os.O_WRONLY|os.O_EXCL, os.FileMode(e.Metadata.Perms))
	if err != nil {
		return fmt.Errorf("failed to open temporary file %s: %w", tmpPath, err)
	}
	defer dstFile.Close()

	srcHasher := m.hasher.New()
	dstHasher := m.hasher.New()

	ctxReader := &contextReader{
		ctx:    ctx,
		reader: io.TeeReader(srcFile, srcHasher),
	}
	multiWriter := io.MultiWriter(dstFile, dstHasher)

	if _, err := io.Copy(multiWriter, ctxReader); err != nil {
		if errors.Is(err, context.Canceled) {
			return fmt.Errorf("transfer canceled: %w", err)
		}

		return fmt.Errorf("failed to copy file: %w", err)
	}

	if err := dstFile.Sync(); err != nil {
		return fmt.Errorf("failed to sync temporary file: %w", err)
	}

	srcChecksum := hex.EncodeToString(srcHasher.Sum(nil))
	dstChecksum := hex.EncodeToString(dstHasher.Sum(nil))

	if srcChecksum != dstChecksum {
		return fmt.Errorf("%w: %s (src) != %s (dst)", ErrHashMismatch, srcChecksum, dstChecksum)
	}

	if tgtInfo, err := m.osHandler.Stat(e.TargetPath); err == nil {
		if !tgtInfo.Mode().IsRegular() {
			return fmt.Errorf("%w: %s", ErrRenameExists, e.TargetPath)
		}

		if err := m.osHandler.Remove(e.TargetPath); err != nil {
			return fmt.Errorf("failed to remove outdated target file: %w", err)
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to check rename destination existence: %w", err)
	}

	if err := m.osHandler.Rename(tmpPath, e.TargetPath); err != nil {
		return fmt.Errorf("failed to rename temporary file to target file: %w", err)
	}

	transferComplete = true

	e.Checksum = srcChecksum

	return nil
}

// removeSource removes a source file after its target copy was re-read and
// re-verified against the recorded source digest, so that a source is never
// lost to an unnoticed bad write.
func (m *Handler) removeSource(ctx context.Context, e *schema.Entry) error {
	tgtFile, err := m.osHandler.Open(e.TargetPath)
	if err != nil {
		return fmt.Errorf("failed to open target for re-verification: %w", err)
	}
	defer tgtFile.Close()

	tgtDigest, _, err := hashing.HashReader(ctx, m.hasher, tgtFile)
	if err != nil {
		return fmt.Errorf("failed to re-verify target: %w", err)
	}

	if tgtDigest != e.Checksum {
		return fmt.Errorf("%w: %s (src) != %s (dst)", ErrHashMismatch, e.Checksum, tgtDigest)
	}

	if err := m.osHandler.Remove(e.SourcePath); err != nil {
		return fmt.Errorf("failed to remove source after verified transfer: %w", err)
	}

	return nil
}
