package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gopyfix/pkg/runner"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	root := NewRootCommand(BuildInfo{Version: "test", Commit: "none", Date: "unknown"})
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)

	err := root.Execute()
	return out.String(), err
}

func writePy(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRootCommand_Subcommands(t *testing.T) {
	root := NewRootCommand(BuildInfo{})

	var names []string
	for _, sub := range root.Commands() {
		names = append(names, sub.Name())
	}

	for _, want := range []string{"fix", "check", "codes", "init", "migrate", "version"} {
		assert.Contains(t, names, want)
	}
}

func TestFixCommand_FixesFile(t *testing.T) {
	dir := t.TempDir()
	path := writePy(t, dir, "sample.py", "x=1\n")

	_, err := execute(t, "fix", path, "--no-backups", "--color", "never")
	require.NoError(t, err)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "x = 1\n", string(content))
}

func TestFixCommand_DryRun(t *testing.T) {
	dir := t.TempDir()
	path := writePy(t, dir, "sample.py", "x=1\n")

	out, err := execute(t, "fix", path, "--dry-run", "--color", "never")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrIssuesFound)

	// File untouched, diff rendered.
	content, readErr := os.ReadFile(path)
	require.NoError(t, readErr)
	assert.Equal(t, "x=1\n", string(content))
	assert.Contains(t, out, "-x=1")
	assert.Contains(t, out, "+x = 1")
}

func TestFixCommand_Strict(t *testing.T) {
	dir := t.TempDir()
	path := writePy(t, dir, "sample.py", "x=1\n")

	_, err := execute(t, "fix", path, "--no-backups", "--strict", "--color", "never")
	assert.ErrorIs(t, err, ErrIssuesFound)
}

func TestFixCommand_CleanFile(t *testing.T) {
	dir := t.TempDir()
	path := writePy(t, dir, "clean.py", "x = 1\n")

	out, err := execute(t, "fix", path, "--no-backups", "--color", "never")
	require.NoError(t, err)
	assert.Contains(t, out, "No issues found")
}

func TestFixCommand_InvalidFormat(t *testing.T) {
	dir := t.TempDir()
	writePy(t, dir, "sample.py", "x = 1\n")

	_, err := execute(t, "fix", dir, "--format", "bogus")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "format")
}

func TestCheckCommand_ReportsWithoutFixing(t *testing.T) {
	dir := t.TempDir()
	path := writePy(t, dir, "sample.py", "x=1\n")

	out, err := execute(t, "check", path, "--color", "never")
	assert.ErrorIs(t, err, ErrIssuesFound)

	content, readErr := os.ReadFile(path)
	require.NoError(t, readErr)
	assert.Equal(t, "x=1\n", string(content))
	assert.Contains(t, out, "E225")
}

func TestCheckCommand_Clean(t *testing.T) {
	dir := t.TempDir()
	path := writePy(t, dir, "clean.py", "x = 1\n")

	_, err := execute(t, "check", path, "--color", "never")
	assert.NoError(t, err)
}

func TestCodesCommand_JSON(t *testing.T) {
	out, err := execute(t, "codes", "--format", "json")
	require.NoError(t, err)

	var infos []struct {
		Code        string
		Description string
	}
	require.NoError(t, json.Unmarshal([]byte(out), &infos))
	assert.Greater(t, len(infos), 50)

	var found bool
	for _, info := range infos {
		if info.Code == "E501" {
			found = true
			assert.NotEmpty(t, info.Description)
		}
	}
	assert.True(t, found, "E501 missing from codes list")
}

func TestCodesCommand_Text(t *testing.T) {
	out, err := execute(t, "codes", "--color", "never")
	require.NoError(t, err)
	assert.Contains(t, out, "CODE")
	assert.Contains(t, out, "W291")
}

func TestCodesCommand_InvalidFormat(t *testing.T) {
	_, err := execute(t, "codes", "--format", "xml")
	assert.Error(t, err)
}

func TestInitCommand(t *testing.T) {
	dir := t.TempDir()
	output := filepath.Join(dir, ".gopyfix.yml")

	_, err := execute(t, "init", "--output", output)
	require.NoError(t, err)

	content, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Contains(t, string(content), "max_line_length: 79")
}

func TestInitCommand_ExistingFile(t *testing.T) {
	dir := t.TempDir()
	output := filepath.Join(dir, ".gopyfix.yml")
	require.NoError(t, os.WriteFile(output, []byte("max_line_length: 100\n"), 0o644))

	_, err := execute(t, "init", "--output", output)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	// Force overwrites.
	_, err = execute(t, "init", "--output", output, "--force")
	assert.NoError(t, err)
}

func TestInitCommand_Full(t *testing.T) {
	dir := t.TempDir()
	output := filepath.Join(dir, ".gopyfix.yml")

	_, err := execute(t, "init", "--output", output, "--full")
	require.NoError(t, err)

	content, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Contains(t, string(content), "E501")
}

func TestMigrateCommand(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "setup.cfg")
	require.NoError(t, os.WriteFile(input, []byte("[pycodestyle]\nmax-line-length = 100\nignore = E711,E712\n"), 0o644))
	output := filepath.Join(dir, ".gopyfix.yml")

	_, err := execute(t, "migrate", "--input", input, "--output", output)
	require.NoError(t, err)

	content, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Contains(t, string(content), "max_line_length: 100")
	assert.Contains(t, string(content), "E711")
}

func TestMigrateCommand_NotMigratable(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "setup.cfg")
	require.NoError(t, os.WriteFile(input, []byte("[metadata]\nname = demo\n"), 0o644))

	_, err := execute(t, "migrate", "--input", input, "--output", filepath.Join(dir, "out.yml"))
	assert.Error(t, err)
}

func TestVersionCommand(t *testing.T) {
	_, err := execute(t, "version")
	assert.NoError(t, err)
}

func TestExitCodeFromResult(t *testing.T) {
	tests := []struct {
		name   string
		result *runner.Result
		strict bool
		want   int
	}{
		{"nil result", nil, false, ExitSuccess},
		{"clean", &runner.Result{}, false, ExitSuccess},
		{
			"all fixed",
			&runner.Result{Stats: runner.Stats{IssuesTotal: 2, IssuesFixed: 2}},
			false,
			ExitSuccess,
		},
		{
			"all fixed strict",
			&runner.Result{Stats: runner.Stats{IssuesTotal: 2, IssuesFixed: 2}},
			true,
			ExitIssuesFound,
		},
		{
			"unfixed remain",
			&runner.Result{Stats: runner.Stats{IssuesTotal: 3, IssuesFixed: 1}},
			false,
			ExitIssuesRemaining,
		},
		{
			"errors",
			&runner.Result{Stats: runner.Stats{FilesErrored: 1}},
			false,
			ExitIOError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExitCodeFromResult(tt.result, tt.strict))
		})
	}
}

func TestErrIssuesFoundSentinel(t *testing.T) {
	wrapped := errors.Join(errors.New("context"), ErrIssuesFound)
	assert.True(t, errors.Is(wrapped, ErrIssuesFound))
}
