package analysis_test

import (
	"testing"

	"github.com/yaklabco/gopyfix/pkg/analysis"
	"github.com/yaklabco/gopyfix/pkg/checker"
	"github.com/yaklabco/gopyfix/pkg/fixer"
	"github.com/yaklabco/gopyfix/pkg/runner"
)

func outcome(line, pos int, code fixer.Code, result int) runner.IssueOutcome {
	return runner.IssueOutcome{
		Issue:  checker.Issue{Line: line, Pos: pos, Code: code},
		Result: result,
	}
}

func sampleResult() *runner.Result {
	return &runner.Result{
		Files: []runner.FileOutcome{
			{
				Path: "/work/a.py",
				Result: &runner.PipelineResult{
					Path:    "/work/a.py",
					Written: true,
					Issues: []runner.IssueOutcome{
						outcome(1, 1, "E225", fixer.Applied),
						outcome(2, 0, "W291", fixer.Applied),
						outcome(3, 79, "E501", fixer.NotFixed),
					},
				},
			},
			{
				Path: "/work/b.py",
				Result: &runner.PipelineResult{
					Path: "/work/b.py",
					Issues: []runner.IssueOutcome{
						outcome(5, 1, "E225", fixer.NotFixed),
					},
				},
			},
			{
				Path:   "/work/clean.py",
				Result: &runner.PipelineResult{Path: "/work/clean.py"},
			},
		},
	}
}

func TestAnalyze_Nil(t *testing.T) {
	t.Parallel()

	report := analysis.Analyze(nil, analysis.DefaultOptions())
	if report.Totals.Issues != 0 || report.Totals.Files != 0 {
		t.Errorf("expected empty totals, got %+v", report.Totals)
	}
	if report.Version != analysis.ReportVersion {
		t.Errorf("missing version")
	}
}

func TestAnalyze_Totals(t *testing.T) {
	t.Parallel()

	report := analysis.Analyze(sampleResult(), analysis.DefaultOptions())

	if report.Totals.Files != 3 {
		t.Errorf("Files = %d, want 3", report.Totals.Files)
	}
	if report.Totals.FilesWithIssues != 2 {
		t.Errorf("FilesWithIssues = %d, want 2", report.Totals.FilesWithIssues)
	}
	if report.Totals.FilesModified != 1 {
		t.Errorf("FilesModified = %d, want 1", report.Totals.FilesModified)
	}
	if report.Totals.Issues != 4 {
		t.Errorf("Issues = %d, want 4", report.Totals.Issues)
	}
	if report.Totals.Fixed != 2 {
		t.Errorf("Fixed = %d, want 2", report.Totals.Fixed)
	}
	if report.Totals.Remaining != 2 {
		t.Errorf("Remaining = %d, want 2", report.Totals.Remaining)
	}
}

func TestAnalyze_ByCode(t *testing.T) {
	t.Parallel()

	report := analysis.Analyze(sampleResult(), analysis.DefaultOptions())

	if len(report.ByCode) != 3 {
		t.Fatalf("ByCode length = %d, want 3", len(report.ByCode))
	}
	// E225 has the highest count, then ties sort by code.
	if report.ByCode[0].Code != "E225" {
		t.Errorf("first code = %s, want E225", report.ByCode[0].Code)
	}
	if report.ByCode[0].Issues != 2 {
		t.Errorf("E225 issues = %d, want 2", report.ByCode[0].Issues)
	}
	if len(report.ByCode[0].Files) != 2 {
		t.Errorf("E225 files = %v, want 2 entries", report.ByCode[0].Files)
	}
	if report.ByCode[0].Description == "" {
		t.Error("missing description for E225")
	}
}

func TestAnalyze_ByFile(t *testing.T) {
	t.Parallel()

	report := analysis.Analyze(sampleResult(), analysis.DefaultOptions())

	if len(report.ByFile) != 2 {
		t.Fatalf("ByFile length = %d, want 2", len(report.ByFile))
	}
	if report.ByFile[0].Path != "/work/a.py" {
		t.Errorf("first file = %s, want /work/a.py", report.ByFile[0].Path)
	}
	if report.ByFile[0].Issues != 3 || report.ByFile[0].Fixed != 2 {
		t.Errorf("a.py = %+v", report.ByFile[0])
	}
	if !report.ByFile[0].Modified {
		t.Error("a.py should be modified")
	}
}

func TestAnalyze_RelativePaths(t *testing.T) {
	t.Parallel()

	opts := analysis.DefaultOptions()
	opts.WorkingDir = "/work"

	report := analysis.Analyze(sampleResult(), opts)

	if len(report.Issues) == 0 {
		t.Fatal("expected issues")
	}
	if report.Issues[0].FilePath != "a.py" {
		t.Errorf("path = %s, want a.py", report.Issues[0].FilePath)
	}
}

func TestAnalyze_IssueEntries(t *testing.T) {
	t.Parallel()

	report := analysis.Analyze(sampleResult(), analysis.DefaultOptions())

	if len(report.Issues) != 4 {
		t.Fatalf("Issues length = %d, want 4", len(report.Issues))
	}
	first := report.Issues[0]
	if first.Code != "E225" || first.Line != 1 || first.Column != 2 {
		t.Errorf("unexpected entry: %+v", first)
	}
	if !first.Fixed {
		t.Error("first issue should be fixed")
	}
	if report.Issues[2].Fixed {
		t.Error("E501 should not be fixed")
	}
}

func TestAnalyze_Errored(t *testing.T) {
	t.Parallel()

	result := &runner.Result{
		Files: []runner.FileOutcome{
			{Path: "/work/missing.py", Error: runner.ErrFileNotFound},
		},
	}

	report := analysis.Analyze(result, analysis.DefaultOptions())
	if report.Totals.FilesErrored != 1 {
		t.Errorf("FilesErrored = %d, want 1", report.Totals.FilesErrored)
	}
}

func TestAnalyze_SortAlpha(t *testing.T) {
	t.Parallel()

	opts := analysis.DefaultOptions()
	opts.SortBy = analysis.SortByAlpha

	report := analysis.Analyze(sampleResult(), opts)
	if report.ByCode[0].Code != "E225" || report.ByCode[2].Code != "W291" {
		t.Errorf("unexpected alpha order: %+v", report.ByCode)
	}
}
