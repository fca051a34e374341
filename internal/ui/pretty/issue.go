package pretty

import (
	"fmt"
	"strings"

	"github.com/yaklabco/gopyfix/pkg/checker"
	"github.com/yaklabco/gopyfix/pkg/diff"
	"github.com/yaklabco/gopyfix/pkg/fixer"
	"github.com/yaklabco/gopyfix/pkg/runner"
)

// FormatIssue formats a single issue outcome for terminal output.
func (s *Styles) FormatIssue(path string, outcome runner.IssueOutcome) string {
	var builder strings.Builder

	// Location: path:line:col (1-based column for display)
	location := fmt.Sprintf("%s:%d:%d",
		s.FilePath.Render(path),
		outcome.Issue.Line,
		outcome.Issue.Pos+1,
	)

	code := s.Code.Render(string(outcome.Issue.Code))
	description := checker.Descriptions[outcome.Issue.Code]

	builder.WriteString(fmt.Sprintf("  %s  %s  %s",
		location,
		code,
		s.Message.Render(description),
	))

	switch outcome.Result {
	case fixer.Applied:
		builder.WriteString("  " + s.Fixed.Render("[fixed: "+outcome.Message.String()+"]"))
	case fixer.Deferred:
		builder.WriteString("  " + s.Dim.Render("[deferred]"))
	}
	builder.WriteString("\n")

	return builder.String()
}

// FormatSourceContext formats the source line with a caret marker.
func (s *Styles) FormatSourceContext(line string, column int) string {
	var builder strings.Builder

	// Indent to align with issue output
	const indent = "        "

	builder.WriteString(indent + s.SourceLine.Render(line) + "\n")

	if column > 0 {
		padding := indent + strings.Repeat(" ", column-1)
		builder.WriteString(padding + s.Caret.Render("^") + "\n")
	}

	return builder.String()
}

// FormatFileHeader formats a file header for grouped output.
func (s *Styles) FormatFileHeader(path string, issueCount int) string {
	header := s.FilePath.Render(path)
	if issueCount > 0 {
		header += s.Dim.Render(fmt.Sprintf(" (%d issues)", issueCount))
	}
	return header
}

// FormatDiff renders a unified diff with per-line styling.
func (s *Styles) FormatDiff(d *diff.Diff) string {
	if !d.HasChanges() {
		return ""
	}

	var builder strings.Builder
	path := strings.TrimPrefix(d.Path, "/")
	builder.WriteString(s.DiffHeader.Render("--- a/"+path) + "\n")
	builder.WriteString(s.DiffHeader.Render("+++ b/"+path) + "\n")

	for _, hunk := range d.Hunks {
		builder.WriteString(s.DiffHunk.Render(fmt.Sprintf("@@ -%d,%d +%d,%d @@",
			hunk.OriginalStart, hunk.OriginalCount,
			hunk.ModifiedStart, hunk.ModifiedCount)) + "\n")

		for _, line := range hunk.Lines {
			switch line.Kind {
			case diff.Add:
				builder.WriteString(s.DiffAdd.Render("+"+line.Content) + "\n")
			case diff.Remove:
				builder.WriteString(s.DiffRemove.Render("-"+line.Content) + "\n")
			default:
				builder.WriteString(s.DiffContext.Render(" "+line.Content) + "\n")
			}
		}
	}

	return builder.String()
}
