package pretty_test

import (
	"strings"
	"testing"

	"github.com/yaklabco/gopyfix/internal/ui/pretty"
	"github.com/yaklabco/gopyfix/pkg/checker"
	"github.com/yaklabco/gopyfix/pkg/config"
	"github.com/yaklabco/gopyfix/pkg/diff"
	"github.com/yaklabco/gopyfix/pkg/fixer"
	"github.com/yaklabco/gopyfix/pkg/runner"
)

func noColor() *pretty.Styles {
	return pretty.NewStyles(false)
}

func TestFormatIssue(t *testing.T) {
	t.Parallel()

	outcome := runner.IssueOutcome{
		Issue:  checker.Issue{Line: 3, Pos: 1, Code: "E225"},
		Result: fixer.NotFixed,
	}

	out := noColor().FormatIssue("pkg/mod.py", outcome)
	if !strings.Contains(out, "pkg/mod.py:3:2") {
		t.Errorf("missing location in %q", out)
	}
	if !strings.Contains(out, "E225") {
		t.Errorf("missing code in %q", out)
	}
	if !strings.Contains(out, "missing whitespace around operator") {
		t.Errorf("missing description in %q", out)
	}
	if strings.Contains(out, "[fixed") {
		t.Errorf("unexpected fixed marker in %q", out)
	}
}

func TestFormatIssue_Fixed(t *testing.T) {
	t.Parallel()

	outcome := runner.IssueOutcome{
		Issue:  checker.Issue{Line: 1, Pos: 0, Code: "W291"},
		Result: fixer.Applied,
	}

	out := noColor().FormatIssue("a.py", outcome)
	if !strings.Contains(out, "[fixed:") {
		t.Errorf("missing fixed marker in %q", out)
	}
}

func TestFormatSourceContext(t *testing.T) {
	t.Parallel()

	out := noColor().FormatSourceContext("x=1", 2)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %q", len(lines), out)
	}
	if !strings.HasSuffix(lines[1], "^") {
		t.Errorf("expected caret line, got %q", lines[1])
	}
	// Caret under the second column.
	if strings.Index(lines[1], "^") != strings.Index(lines[0], "x")+1 {
		t.Errorf("caret misaligned:\n%s", out)
	}
}

func TestFormatSummaryOneLine(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		stats    runner.Stats
		contains []string
	}{
		{
			name:     "clean",
			stats:    runner.Stats{FilesProcessed: 4},
			contains: []string{"No issues found", "4 files checked"},
		},
		{
			name: "fixed",
			stats: runner.Stats{
				FilesProcessed:  2,
				FilesWithIssues: 1,
				FilesModified:   1,
				IssuesTotal:     3,
				IssuesFixed:     3,
			},
			contains: []string{"3 issues", "in 1 file", "3 fixed in 1 file"},
		},
		{
			name: "remaining",
			stats: runner.Stats{
				FilesProcessed:  1,
				FilesWithIssues: 1,
				IssuesTotal:     5,
				IssuesFixed:     3,
				FilesModified:   1,
			},
			contains: []string{"5 issues", "3 fixed", "2 remaining"},
		},
		{
			name: "single issue",
			stats: runner.Stats{
				FilesProcessed:  1,
				FilesWithIssues: 1,
				IssuesTotal:     1,
			},
			contains: []string{"1 issue in 1 file"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			out := noColor().FormatSummaryOneLine(tt.stats)
			for _, want := range tt.contains {
				if !strings.Contains(out, want) {
					t.Errorf("missing %q in %q", want, out)
				}
			}
		})
	}
}

func TestFormatSummary(t *testing.T) {
	t.Parallel()

	stats := runner.Stats{
		FilesProcessed:  3,
		FilesWithIssues: 2,
		FilesModified:   2,
		IssuesTotal:     7,
		IssuesFixed:     7,
	}

	out := noColor().FormatSummary(stats)
	for _, want := range []string{"Summary", "Files checked:", "3", "Total issues:", "7", "All issues fixed"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in summary:\n%s", want, out)
		}
	}
}

func TestFormatCodeBreakdown(t *testing.T) {
	t.Parallel()

	stats := runner.Stats{
		IssuesByCode: map[string]int{"E225": 5, "W291": 2, "E501": 5},
	}

	out := noColor().FormatCodeBreakdown(stats)

	// Highest count first, ties by code.
	e225 := strings.Index(out, "E225")
	e501 := strings.Index(out, "E501")
	w291 := strings.Index(out, "W291")
	if !(e225 < e501 && e501 < w291) {
		t.Errorf("unexpected order:\n%s", out)
	}
}

func TestFormatDiff(t *testing.T) {
	t.Parallel()

	d := diff.Generate("a.py", "x=1\n", "x = 1\n")
	out := noColor().FormatDiff(d)

	for _, want := range []string{"--- a/a.py", "+++ b/a.py", "-x=1", "+x = 1", "@@"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in diff:\n%s", want, out)
		}
	}
}

func TestFormatCodesTable(t *testing.T) {
	t.Parallel()

	codes := []config.CodeInfo{
		{Code: "E101", Description: "indentation contains mixed spaces and tabs"},
		{Code: "W291", Description: "trailing whitespace"},
	}

	out := noColor().FormatCodesTable(codes)
	if !strings.Contains(out, "CODE") || !strings.Contains(out, "DESCRIPTION") {
		t.Errorf("missing header in:\n%s", out)
	}
	if !strings.Contains(out, "E101") || !strings.Contains(out, "trailing whitespace") {
		t.Errorf("missing rows in:\n%s", out)
	}
}

func TestIsColorEnabled(t *testing.T) {
	t.Parallel()

	if !pretty.IsColorEnabled("always", nil) {
		t.Error("always should enable color")
	}
	if pretty.IsColorEnabled("never", nil) {
		t.Error("never should disable color")
	}
	if pretty.IsColorEnabled("auto", &strings.Builder{}) {
		t.Error("auto with non-TTY writer should disable color")
	}
}
