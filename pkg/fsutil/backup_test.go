package fsutil_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gopyfix/pkg/fsutil"
)

func TestBackupPath(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "/tmp/a.py~", fsutil.BackupPath("/tmp/a.py"))
}

func TestBackupPath_ResolvesSymlink(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	target := writeFile(t, dir, "real.py", "x = 1\n")
	link := filepath.Join(dir, "link.py")
	require.NoError(t, os.Symlink(target, link))

	resolved, err := filepath.EvalSymlinks(target)
	require.NoError(t, err)
	assert.Equal(t, resolved+"~", fsutil.BackupPath(link))
}

func TestRenameBackup(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeFile(t, dir, "a.py", "original\n")

	require.NoError(t, fsutil.RenameBackup(path))

	// The original is gone; the backup holds its content.
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))

	content, err := os.ReadFile(path + "~")
	require.NoError(t, err)
	assert.Equal(t, "original\n", string(content))
}

func TestRenameBackup_ReplacesStaleBackup(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeFile(t, dir, "a.py", "fresh\n")
	writeFile(t, dir, "a.py~", "stale\n")

	require.NoError(t, fsutil.RenameBackup(path))

	content, err := os.ReadFile(path + "~")
	require.NoError(t, err)
	assert.Equal(t, "fresh\n", string(content))
}

func TestRenameBackup_MissingFile(t *testing.T) {
	t.Parallel()

	err := fsutil.RenameBackup(filepath.Join(t.TempDir(), "missing.py"))
	assert.Error(t, err)
}

func TestRestoreBackup(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeFile(t, dir, "a.py", "original\n")
	require.NoError(t, fsutil.RenameBackup(path))
	writeFile(t, dir, "a.py", "broken\n")

	restored, err := fsutil.RestoreBackup(path)
	require.NoError(t, err)
	assert.True(t, restored)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "original\n", string(content))
	assert.False(t, fsutil.BackupExists(path))
}

func TestRestoreBackup_NoBackup(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeFile(t, dir, "a.py", "x = 1\n")

	restored, err := fsutil.RestoreBackup(path)
	require.NoError(t, err)
	assert.False(t, restored)
}

func TestRemoveBackup(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeFile(t, dir, "a.py", "x = 1\n")
	writeFile(t, dir, "a.py~", "old\n")

	require.True(t, fsutil.BackupExists(path))

	removed, err := fsutil.RemoveBackup(path)
	require.NoError(t, err)
	assert.True(t, removed)
	assert.False(t, fsutil.BackupExists(path))

	removed, err = fsutil.RemoveBackup(path)
	require.NoError(t, err)
	assert.False(t, removed)
}
