package fsutil_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gopyfix/pkg/fsutil"
)

func TestWriteAtomic(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "a.py")

	require.NoError(t, fsutil.WriteAtomic(context.Background(), path, []byte("x = 1\n"), 0))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "x = 1\n", string(content))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, fsutil.DefaultFileMode, info.Mode().Perm())
}

func TestWriteAtomic_PreservesMode(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "a.py")

	require.NoError(t, fsutil.WriteAtomic(context.Background(), path, []byte("x = 1\n"), 0o600))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestWriteAtomic_Overwrites(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeFile(t, dir, "a.py", "old\n")

	require.NoError(t, fsutil.WriteAtomic(context.Background(), path, []byte("new\n"), 0))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "new\n", string(content))
}

func TestWriteAtomic_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := fsutil.WriteAtomic(ctx, filepath.Join(t.TempDir(), "a.py"), []byte("x"), 0)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestWriteAtomic_NoTempLeftover(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "a.py")

	require.NoError(t, fsutil.WriteAtomic(context.Background(), path, []byte("x = 1\n"), 0))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "a.py", entries[0].Name())
}

func TestWriteAtomicIfChanged(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "a.py")

	written, err := fsutil.WriteAtomicIfChanged(context.Background(), path, []byte("x = 1\n"), 0)
	require.NoError(t, err)
	assert.True(t, written, "missing file should be written")

	written, err = fsutil.WriteAtomicIfChanged(context.Background(), path, []byte("x = 1\n"), 0)
	require.NoError(t, err)
	assert.False(t, written, "identical content should be skipped")

	written, err = fsutil.WriteAtomicIfChanged(context.Background(), path, []byte("y = 2\n"), 0)
	require.NoError(t, err)
	assert.True(t, written)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "y = 2\n", string(content))
}
