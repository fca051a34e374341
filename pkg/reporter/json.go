package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"github.com/yaklabco/gopyfix/pkg/checker"
	"github.com/yaklabco/gopyfix/pkg/fixer"
	"github.com/yaklabco/gopyfix/pkg/runner"
)

// JSONOutput is the top-level JSON structure.
type JSONOutput struct {
	Version string           `json:"version"`
	Files   []JSONFileResult `json:"files"`
	Summary JSONSummary      `json:"summary"`
}

// JSONFileResult represents a single file's results.
type JSONFileResult struct {
	Path       string      `json:"path"`
	Encoding   string      `json:"encoding,omitempty"`
	Issues     []JSONIssue `json:"issues"`
	Modified   bool        `json:"modified,omitempty"`
	Skipped    bool        `json:"skipped,omitempty"`
	SkipReason string      `json:"skipReason,omitempty"`
	Error      string      `json:"error,omitempty"`
}

// JSONIssue represents a single issue.
type JSONIssue struct {
	Code        string `json:"code"`
	Description string `json:"description"`
	Line        int    `json:"line"`
	Column      int    `json:"column"`
	Fixed       bool   `json:"fixed"`
	Message     string `json:"message,omitempty"`
}

// JSONSummary contains aggregate statistics.
type JSONSummary struct {
	FilesChecked    int            `json:"filesChecked"`
	FilesWithIssues int            `json:"filesWithIssues"`
	FilesModified   int            `json:"filesModified"`
	FilesSkipped    int            `json:"filesSkipped"`
	FilesErrored    int            `json:"filesErrored"`
	TotalIssues     int            `json:"totalIssues"`
	IssuesFixed     int            `json:"issuesFixed"`
	ByCode          map[string]int `json:"byCode"`
}

// JSONReporter formats results as JSON.
type JSONReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *JSONReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	output := r.buildOutput(result)

	encoder := json.NewEncoder(r.bw)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}

	if err := encoder.Encode(output); err != nil {
		return 0, fmt.Errorf("encode JSON: %w", err)
	}

	return output.Summary.TotalIssues, nil
}

func (r *JSONReporter) buildOutput(result *runner.Result) *JSONOutput {
	output := &JSONOutput{
		Version: "1.0.0",
		Files:   make([]JSONFileResult, 0),
		Summary: JSONSummary{
			ByCode: make(map[string]int),
		},
	}

	if result == nil {
		return output
	}

	if len(result.Files) > 0 {
		output.Files = make([]JSONFileResult, 0, len(result.Files))
	}

	for _, file := range result.Files {
		fileResult := JSONFileResult{
			Path:   file.Path,
			Issues: make([]JSONIssue, 0),
		}

		if file.Error != nil {
			fileResult.Error = file.Error.Error()
			output.Summary.FilesErrored++
		}

		if file.Result != nil {
			fileResult.Encoding = file.Result.Encoding
			fileResult.Modified = file.Result.Written
			fileResult.Skipped = file.Result.Skipped
			fileResult.SkipReason = file.Result.SkipReason

			for _, outcome := range file.Result.Issues {
				jsonIssue := JSONIssue{
					Code:        string(outcome.Issue.Code),
					Description: checker.Descriptions[outcome.Issue.Code],
					Line:        outcome.Issue.Line,
					Column:      outcome.Issue.Pos + 1,
					Fixed:       outcome.Result == fixer.Applied,
				}
				if jsonIssue.Fixed {
					jsonIssue.Message = outcome.Message.String()
					output.Summary.IssuesFixed++
				}

				fileResult.Issues = append(fileResult.Issues, jsonIssue)
				output.Summary.TotalIssues++
				output.Summary.ByCode[jsonIssue.Code]++
			}
		}

		if len(fileResult.Issues) > 0 {
			output.Summary.FilesWithIssues++
		}
		if fileResult.Modified {
			output.Summary.FilesModified++
		}
		if fileResult.Skipped {
			output.Summary.FilesSkipped++
		}

		output.Files = append(output.Files, fileResult)
		output.Summary.FilesChecked++
	}

	return output
}
