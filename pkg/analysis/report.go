package analysis

import "time"

// Report contains pre-computed views of check results.
// Computed once by Analyze(), used by all renderers.
type Report struct {
	// Issues is the flat list for detailed output.
	Issues []IssueEntry `json:"issues,omitempty"`

	// ByFile groups issues by file path.
	ByFile []FileAnalysis `json:"byFile,omitempty"`

	// ByCode groups issues by issue code.
	ByCode []CodeAnalysis `json:"byCode,omitempty"`

	// Totals contains aggregate statistics.
	Totals Totals `json:"summary"`

	// Version is the report format version.
	Version string `json:"version"`

	// Timestamp is when the analysis was performed.
	Timestamp time.Time `json:"timestamp"`
}

// IssueEntry represents a single issue in the report.
type IssueEntry struct {
	FilePath    string `json:"filePath"`
	Code        string `json:"code"`
	Description string `json:"description"`
	Line        int    `json:"line"`
	Column      int    `json:"column"`
	Fixed       bool   `json:"fixed"`
	Message     string `json:"message,omitempty"`
}

// Totals contains aggregate statistics for the report.
type Totals struct {
	Files           int `json:"filesChecked"`
	FilesWithIssues int `json:"filesWithIssues"`
	FilesModified   int `json:"filesModified"`
	FilesSkipped    int `json:"filesSkipped"`
	FilesErrored    int `json:"filesErrored"`
	Issues          int `json:"totalIssues"`
	Fixed           int `json:"fixed"`
	Remaining       int `json:"remaining"`
}

// HasIssues returns true if there are any issues.
func (t Totals) HasIssues() bool {
	return t.Issues > 0
}

// FileAnalysis contains aggregated data for a single file.
type FileAnalysis struct {
	Path     string   `json:"path"`
	Issues   int      `json:"issues"`
	Fixed    int      `json:"fixed"`
	Modified bool     `json:"modified"`
	Codes    []string `json:"codes,omitempty"`
}

// CodeAnalysis contains aggregated data for a single issue code.
type CodeAnalysis struct {
	Code        string   `json:"code"`
	Description string   `json:"description"`
	Issues      int      `json:"issues"`
	Fixed       int      `json:"fixed"`
	Files       []string `json:"files,omitempty"`
}
