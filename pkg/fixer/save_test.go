package fixer_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gopyfix/pkg/fixer"
	"github.com/yaklabco/gopyfix/pkg/pytoken"
)

func writeSource(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestSaveFile_InPlaceWithBackup(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeSource(t, dir, "a.py", "x=1\n")

	f := fixer.New(path, pytoken.SplitLines("x=1\n"), fixer.Options{
		InPlace: true,
		Backup:  true,
	})
	res, _, _ := f.FixIssue(1, 1, "E225")
	require.Equal(t, fixer.Applied, res)

	written, err := f.SaveFile(context.Background(), "utf-8")
	require.NoError(t, err)
	assert.True(t, written)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "x = 1\n", string(content))

	backup, err := os.ReadFile(path + "~")
	require.NoError(t, err)
	assert.Equal(t, "x=1\n", string(backup))
}

func TestSaveFile_NoBackup(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeSource(t, dir, "a.py", "x=1\n")

	f := fixer.New(path, pytoken.SplitLines("x=1\n"), fixer.Options{InPlace: true})
	f.FixIssue(1, 1, "E225")

	written, err := f.SaveFile(context.Background(), "utf-8")
	require.NoError(t, err)
	assert.True(t, written)
	assert.NoFileExists(t, path+"~")
}

func TestSaveFile_Unmodified(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "missing.py")

	f := fixer.New(path, pytoken.SplitLines("x = 1\n"), fixer.Options{InPlace: true})
	written, err := f.SaveFile(context.Background(), "utf-8")
	require.NoError(t, err)
	assert.False(t, written)
	assert.NoFileExists(t, path)
}

func TestSaveFile_SkipsIdenticalContent(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeSource(t, dir, "a.py", "x = 1\n")

	// The buffer was read before an external edit already applied the same
	// fix; the save has nothing new to write.
	f := fixer.New(path, pytoken.SplitLines("x = 1 \n"), fixer.Options{InPlace: true})
	res, _, _ := f.FixIssue(1, 5, "W291")
	require.Equal(t, fixer.Applied, res)
	require.True(t, f.Modified())

	written, err := f.SaveFile(context.Background(), "utf-8")
	require.NoError(t, err)
	assert.False(t, written)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "x = 1\n", string(content))
}

func TestSaveFile_CopyMode(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeSource(t, dir, "a.py", "x=1\n")

	f := fixer.New(path, pytoken.SplitLines("x=1\n"), fixer.Options{InPlace: false})
	f.FixIssue(1, 1, "E225")

	written, err := f.SaveFile(context.Background(), "utf-8")
	require.NoError(t, err)
	assert.True(t, written)

	// The original is untouched; the fix lands in a prefixed copy.
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "x=1\n", string(content))

	fixed, err := os.ReadFile(filepath.Join(dir, "fixed_a.py"))
	require.NoError(t, err)
	assert.Equal(t, "x = 1\n", string(fixed))
}

func TestSaveFile_BOMEncoding(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeSource(t, dir, "a.py", "\xEF\xBB\xBFx=1\n")

	f := fixer.New(path, pytoken.SplitLines("x=1\n"), fixer.Options{InPlace: true})
	f.FixIssue(1, 1, "E225")

	written, err := f.SaveFile(context.Background(), "utf-8-bom")
	require.NoError(t, err)
	assert.True(t, written)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "\xEF\xBB\xBFx = 1\n", string(content))
}

func TestSaveFile_UnknownEncoding(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeSource(t, dir, "a.py", "x=1\n")

	f := fixer.New(path, pytoken.SplitLines("x=1\n"), fixer.Options{
		InPlace: true,
		Backup:  true,
	})
	f.FixIssue(1, 1, "E225")

	_, err := f.SaveFile(context.Background(), "no-such-codec")
	require.Error(t, err)

	var writeErr *fixer.WriteError
	require.ErrorAs(t, err, &writeErr)
	assert.Equal(t, path, writeErr.Path)

	// Encoding fails before the backup rename, so the file keeps its
	// original content and no backup appears.
	content, readErr := os.ReadFile(path)
	require.NoError(t, readErr)
	assert.Equal(t, "x=1\n", string(content))
	assert.NoFileExists(t, path+"~")
}
