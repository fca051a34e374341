package runner_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/yaklabco/gopyfix/pkg/runner"
)

func mkdir(t *testing.T, dir string) {
	t.Helper()
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("setup: %v", err)
	}
}

func basenames(paths []string) []string {
	names := make([]string, len(paths))
	for i, p := range paths {
		names[i] = filepath.Base(p)
	}
	return names
}

func TestDiscover_DefaultExtensions(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "a.py", "pass\n")
	writeFile(t, dir, "b.pyw", "pass\n")
	writeFile(t, dir, "c.txt", "not python\n")
	writeFile(t, dir, "d.go", "package main\n")

	files, err := runner.Discover(context.Background(), runner.Options{
		Paths:      []string{"."},
		WorkingDir: dir,
	})
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}

	names := basenames(files)
	want := []string{"a.py", "b.pyw"}
	if len(names) != len(want) {
		t.Fatalf("discovered %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("files[%d] = %s, want %s", i, names[i], want[i])
		}
	}
}

func TestDiscover_Recursive(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	sub := filepath.Join(dir, "pkg", "sub")
	mkdir(t, sub)
	writeFile(t, dir, "top.py", "pass\n")
	writeFile(t, sub, "deep.py", "pass\n")

	files, err := runner.Discover(context.Background(), runner.Options{
		Paths:      []string{"."},
		WorkingDir: dir,
	})
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}

	if len(files) != 2 {
		t.Errorf("discovered %d files, want 2: %v", len(files), files)
	}
}

func TestDiscover_SkipsHiddenAndPycache(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	hidden := filepath.Join(dir, ".venv")
	cache := filepath.Join(dir, "__pycache__")
	mkdir(t, hidden)
	mkdir(t, cache)
	writeFile(t, dir, "keep.py", "pass\n")
	writeFile(t, hidden, "skip.py", "pass\n")
	writeFile(t, cache, "skip2.py", "pass\n")
	writeFile(t, dir, ".hidden.py", "pass\n")

	files, err := runner.Discover(context.Background(), runner.Options{
		Paths:      []string{"."},
		WorkingDir: dir,
	})
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}

	if len(files) != 1 || filepath.Base(files[0]) != "keep.py" {
		t.Errorf("discovered %v, want only keep.py", basenames(files))
	}
}

func TestDiscover_ExcludeGlobs(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	vendor := filepath.Join(dir, "vendor")
	mkdir(t, vendor)
	writeFile(t, dir, "main.py", "pass\n")
	writeFile(t, vendor, "dep.py", "pass\n")
	writeFile(t, dir, "conftest.py", "pass\n")

	files, err := runner.Discover(context.Background(), runner.Options{
		Paths:        []string{"."},
		WorkingDir:   dir,
		ExcludeGlobs: []string{"vendor/**", "conftest.py"},
	})
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}

	if len(files) != 1 || filepath.Base(files[0]) != "main.py" {
		t.Errorf("discovered %v, want only main.py", basenames(files))
	}
}

func TestDiscover_IncludeGlobs(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "test_foo.py", "pass\n")
	writeFile(t, dir, "foo.py", "pass\n")

	files, err := runner.Discover(context.Background(), runner.Options{
		Paths:        []string{"."},
		WorkingDir:   dir,
		IncludeGlobs: []string{"test_*.py"},
	})
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}

	if len(files) != 1 || filepath.Base(files[0]) != "test_foo.py" {
		t.Errorf("discovered %v, want only test_foo.py", basenames(files))
	}
}

func TestDiscover_ShebangDetection(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "pytool", "#!/usr/bin/env python3\nprint('hi')\n")
	writeFile(t, dir, "shtool", "#!/bin/sh\necho hi\n")
	writeFile(t, dir, "plain", "no shebang here\n")

	// Off by default.
	files, err := runner.Discover(context.Background(), runner.Options{
		Paths:      []string{"."},
		WorkingDir: dir,
	})
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}
	if len(files) != 0 {
		t.Errorf("discovered %v without DetectByContent, want none", basenames(files))
	}

	// On: only the python shebang script matches.
	files, err = runner.Discover(context.Background(), runner.Options{
		Paths:           []string{"."},
		WorkingDir:      dir,
		DetectByContent: true,
	})
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}
	if len(files) != 1 || filepath.Base(files[0]) != "pytool" {
		t.Errorf("discovered %v, want only pytool", basenames(files))
	}
}

func TestDiscover_ExplicitFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "one.py", "pass\n")
	writeFile(t, dir, "two.py", "pass\n")

	files, err := runner.Discover(context.Background(), runner.Options{
		Paths:      []string{"one.py"},
		WorkingDir: dir,
	})
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}

	if len(files) != 1 || filepath.Base(files[0]) != "one.py" {
		t.Errorf("discovered %v, want only one.py", basenames(files))
	}
}

func TestDiscover_Deduplicates(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "dup.py", "pass\n")

	files, err := runner.Discover(context.Background(), runner.Options{
		Paths:      []string{".", "dup.py"},
		WorkingDir: dir,
	})
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}

	if len(files) != 1 {
		t.Errorf("discovered %v, want a single entry", basenames(files))
	}
}

func TestDiscover_MissingPath(t *testing.T) {
	t.Parallel()

	_, err := runner.Discover(context.Background(), runner.Options{
		Paths:      []string{"no-such-path"},
		WorkingDir: t.TempDir(),
	})
	if err == nil {
		t.Fatal("expected error for missing path")
	}
}

func TestDiscover_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := runner.Discover(ctx, runner.Options{
		Paths:      []string{"."},
		WorkingDir: t.TempDir(),
	})
	if err == nil {
		t.Fatal("expected cancellation error")
	}
}
