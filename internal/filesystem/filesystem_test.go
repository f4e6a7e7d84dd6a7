package filesystem_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/desertwitch/migover/internal/filesystem"
	"github.com/desertwitch/migover/internal/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHandler(t *testing.T) *filesystem.Handler {
	t.Helper()

	return filesystem.NewHandler(t.Context(), &schema.OS{}, &schema.Unix{})
}

// TestListEntries_Success tests flat enumeration of a populated directory.
func TestListEntries_Success(t *testing.T) {
	t.Parallel()

	fsHandler := newTestHandler(t)

	sourceDir := t.TempDir()
	targetDir := t.TempDir()

	require.NoError(t, os.WriteFile(filepath.Join(sourceDir, "alpha.txt"), []byte("hello world"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(sourceDir, "beta.bin"), []byte{0x00, 0x01, 0x02}, 0o600))

	entries, err := fsHandler.ListEntries(t.Context(), sourceDir, targetDir)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, "alpha.txt", entries[0].Name)
	assert.Equal(t, filepath.Join(sourceDir, "alpha.txt"), entries[0].SourcePath)
	assert.Equal(t, filepath.Join(targetDir, "alpha.txt"), entries[0].TargetPath)
	assert.Equal(t, uint64(11), entries[0].Metadata.Size)

	assert.Equal(t, "beta.bin", entries[1].Name)
	assert.Equal(t, uint64(3), entries[1].Metadata.Size)
}

// TestListEntries_Success_SkipsNonRegular tests that directories and symlinks
// are left out of the enumeration.
func TestListEntries_Success_SkipsNonRegular(t *testing.T) {
	t.Parallel()

	fsHandler := newTestHandler(t)

	sourceDir := t.TempDir()
	targetDir := t.TempDir()

	require.NoError(t, os.WriteFile(filepath.Join(sourceDir, "file.txt"), []byte("data"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(sourceDir, "nested"), 0o755))
	require.NoError(t, os.Symlink(filepath.Join(sourceDir, "file.txt"), filepath.Join(sourceDir, "link.txt")))

	entries, err := fsHandler.ListEntries(t.Context(), sourceDir, targetDir)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	assert.Equal(t, "file.txt", entries[0].Name)
}

// TestListEntries_Success_SkipNames tests that given names are excluded.
func TestListEntries_Success_SkipNames(t *testing.T) {
	t.Parallel()

	fsHandler := newTestHandler(t)

	sourceDir := t.TempDir()
	targetDir := t.TempDir()

	require.NoError(t, os.WriteFile(filepath.Join(sourceDir, "file.txt"), []byte("data"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(sourceDir, ".migover.cfg"), []byte("migrationMode=copy"), 0o644))

	entries, err := fsHandler.ListEntries(t.Context(), sourceDir, targetDir, ".migover.cfg")
	require.NoError(t, err)
	require.Len(t, entries, 1)

	assert.Equal(t, "file.txt", entries[0].Name)
}

// TestListEntries_Success_EmptyDir tests enumeration of an empty directory.
func TestListEntries_Success_EmptyDir(t *testing.T) {
	t.Parallel()

	fsHandler := newTestHandler(t)

	entries, err := fsHandler.ListEntries(t.Context(), t.TempDir(), t.TempDir())
	require.NoError(t, err)

	assert.Empty(t, entries)
}

// TestListEntries_Fail_NotADirectory tests enumeration of a non-directory.
func TestListEntries_Fail_NotADirectory(t *testing.T) {
	t.Parallel()

	fsHandler := newTestHandler(t)

	sourceDir := t.TempDir()
	filePath := filepath.Join(sourceDir, "file.txt")
	require.NoError(t, os.WriteFile(filePath, []byte("data"), 0o644))

	_, err := fsHandler.ListEntries(t.Context(), filePath, t.TempDir())
	require.ErrorIs(t, err, filesystem.ErrNotADirectory)
}

// TestListEntries_Fail_MissingSource tests enumeration of a missing directory.
func TestListEntries_Fail_MissingSource(t *testing.T) {
	t.Parallel()

	fsHandler := newTestHandler(t)

	_, err := fsHandler.ListEntries(t.Context(), filepath.Join(t.TempDir(), "missing"), t.TempDir())
	require.Error(t, err)
}

// TestGetMetadata_Success tests metadata establishment for a regular file.
func TestGetMetadata_Success(t *testing.T) {
	t.Parallel()

	fsHandler := newTestHandler(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "file.txt")
	require.NoError(t, os.WriteFile(path, []byte("hello"), 0o640))

	metadata, err := fsHandler.GetMetadata(path)
	require.NoError(t, err)

	assert.Equal(t, uint64(5), metadata.Size)
	assert.Equal(t, uint32(0o640), metadata.Perms)
	assert.False(t, metadata.IsDir)
	assert.False(t, metadata.IsSymlink)
	assert.True(t, metadata.IsRegular())
	assert.NotZero(t, metadata.Inode)
	assert.NotZero(t, metadata.ModifiedAt.Sec)
}

// TestGetMetadata_Success_Symlink tests metadata establishment for a symlink.
func TestGetMetadata_Success_Symlink(t *testing.T) {
	t.Parallel()

	fsHandler := newTestHandler(t)

	dir := t.TempDir()
	filePath := filepath.Join(dir, "file.txt")
	linkPath := filepath.Join(dir, "link.txt")

	require.NoError(t, os.WriteFile(filePath, []byte("hello"), 0o644))
	require.NoError(t, os.Symlink(filePath, linkPath))

	metadata, err := fsHandler.GetMetadata(linkPath)
	require.NoError(t, err)

	assert.True(t, metadata.IsSymlink)
	assert.False(t, metadata.IsRegular())
	assert.Equal(t, filePath, metadata.SymlinkTo)
}

// TestGetMetadata_Fail_Missing tests metadata establishment for a missing path.
func TestGetMetadata_Fail_Missing(t *testing.T) {
	t.Parallel()

	fsHandler := newTestHandler(t)

	_, err := fsHandler.GetMetadata(filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
}

// TestExists_Success tests path existence checking.
func TestExists_Success(t *testing.T) {
	t.Parallel()

	fsHandler := newTestHandler(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "file.txt")
	require.NoError(t, os.WriteFile(path, []byte("hello"), 0o644))

	exists, err := fsHandler.Exists(path)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = fsHandler.Exists(filepath.Join(dir, "missing"))
	require.NoError(t, err)
	assert.False(t, exists)
}

// TestIsEmptyDir_Success tests empty directory checking.
func TestIsEmptyDir_Success(t *testing.T) {
	t.Parallel()

	fsHandler := newTestHandler(t)

	dir := t.TempDir()

	empty, err := fsHandler.IsEmptyDir(dir)
	require.NoError(t, err)
	assert.True(t, empty)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "file.txt"), []byte("hello"), 0o644))

	empty, err = fsHandler.IsEmptyDir(dir)
	require.NoError(t, err)
	assert.False(t, empty)
}

// TestCanReadDir_Success tests directory read permission checking.
func TestCanReadDir_Success(t *testing.T) {
	t.Parallel()

	fsHandler := newTestHandler(t)

	require.NoError(t, fsHandler.CanReadDir(t.TempDir()))
}

// TestCanWriteDir_Fail_ReadOnly tests directory write permission checking
// against a read-only directory.
func TestCanWriteDir_Fail_ReadOnly(t *testing.T) {
	t.Parallel()

	if os.Geteuid() == 0 {
		t.Skip("running as root, permission checks are bypassed")
	}

	fsHandler := newTestHandler(t)

	dir := t.TempDir()
	require.NoError(t, os.Chmod(dir, 0o500))
	t.Cleanup(func() { _ = os.Chmod(dir, 0o700) })

	require.NoError(t, fsHandler.CanReadDir(dir))
	require.Error(t, fsHandler.CanWriteDir(dir))
}

// TestCanReadFile_Fail_NoAccess tests file read permission checking against
// an unreadable file.
func TestCanReadFile_Fail_NoAccess(t *testing.T) {
	t.Parallel()

	if os.Geteuid() == 0 {
		t.Skip("running as root, permission checks are bypassed")
	}

	fsHandler := newTestHandler(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "file.txt")
	require.NoError(t, os.WriteFile(path, []byte("hello"), 0o000))
	t.Cleanup(func() { _ = os.Chmod(path, 0o600) })

	require.Error(t, fsHandler.CanReadFile(path))
}

// TestGetDiskUsage_Success tests disk usage interrogation.
func TestGetDiskUsage_Success(t *testing.T) {
	t.Parallel()

	fsHandler := newTestHandler(t)

	stats, err := fsHandler.GetDiskUsage(t.TempDir())
	require.NoError(t, err)

	assert.Positive(t, stats.TotalSize)
}

// TestHasEnoughFreeSpace_Success tests free space checking.
func TestHasEnoughFreeSpace_Success(t *testing.T) {
	t.Parallel()

	fsHandler := newTestHandler(t)

	enough, err := fsHandler.HasEnoughFreeSpace(t.TempDir(), 0, 0)
	require.NoError(t, err)

	assert.True(t, enough)
}
