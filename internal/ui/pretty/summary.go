package pretty

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/yaklabco/gopyfix/pkg/runner"
)

const (
	summaryDividerWidth = 40
	wordFile            = "file"
	wordFiles           = "files"
)

// FormatSummaryOneLine formats run statistics as a single line.
// Example: "12 issues in 3 files, 10 fixed in 2 files".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats) string {
	if stats.IssuesTotal == 0 {
		msg := s.Success.Render("No issues found") +
			s.Dim.Render(fmt.Sprintf(" (%d files checked)", stats.FilesProcessed))
		return msg + "\n"
	}

	var parts []string

	issueWord := "issues"
	if stats.IssuesTotal == 1 {
		issueWord = "issue"
	}
	parts = append(parts, fmt.Sprintf("%d %s", stats.IssuesTotal, issueWord))

	fileWord := wordFiles
	if stats.FilesWithIssues == 1 {
		fileWord = wordFile
	}
	parts = append(parts, fmt.Sprintf("in %d %s", stats.FilesWithIssues, fileWord))

	if stats.IssuesFixed > 0 {
		fixedFileWord := wordFiles
		if stats.FilesModified == 1 {
			fixedFileWord = wordFile
		}
		parts = append(parts, s.Success.Render(
			fmt.Sprintf("%d fixed in %d %s", stats.IssuesFixed, stats.FilesModified, fixedFileWord)))
	}

	if remaining := stats.IssuesTotal - stats.IssuesFixed; remaining > 0 && stats.IssuesFixed > 0 {
		parts = append(parts, s.Warning.Render(fmt.Sprintf("%d remaining", remaining)))
	}

	if stats.FilesSkipped > 0 {
		parts = append(parts, s.Dim.Render(fmt.Sprintf("%d skipped", stats.FilesSkipped)))
	}

	return strings.Join(parts, ", ") + "\n"
}

// FormatSummary formats run statistics as a summary block.
func (s *Styles) FormatSummary(stats runner.Stats) string {
	var builder strings.Builder

	builder.WriteString("\n")
	builder.WriteString(s.SummaryTitle.Render("Summary"))
	builder.WriteString("\n")
	builder.WriteString(strings.Repeat("-", summaryDividerWidth))
	builder.WriteString("\n")

	builder.WriteString("  Files checked:     " +
		s.SummaryValue.Render(strconv.Itoa(stats.FilesProcessed)) + "\n")

	if stats.FilesWithIssues > 0 {
		builder.WriteString("  Files with issues: " +
			s.Failure.Render(strconv.Itoa(stats.FilesWithIssues)) + "\n")
	}

	if stats.FilesModified > 0 {
		builder.WriteString("  Files modified:    " +
			s.Success.Render(strconv.Itoa(stats.FilesModified)) + "\n")
	}

	if stats.FilesSkipped > 0 {
		builder.WriteString("  Files skipped:     " +
			s.SummaryValue.Render(strconv.Itoa(stats.FilesSkipped)) + "\n")
	}

	builder.WriteString("\n")

	builder.WriteString("  Total issues:      " +
		s.SummaryValue.Render(strconv.Itoa(stats.IssuesTotal)) + "\n")

	if stats.IssuesFixed > 0 {
		builder.WriteString("    Fixed:           " +
			s.Success.Render(strconv.Itoa(stats.IssuesFixed)) + "\n")
	}
	if remaining := stats.IssuesTotal - stats.IssuesFixed; remaining > 0 {
		builder.WriteString("    Remaining:       " +
			s.Warning.Render(strconv.Itoa(remaining)) + "\n")
	}

	builder.WriteString("\n")

	// Overall status
	switch {
	case stats.IssuesTotal == 0:
		builder.WriteString(s.Success.Render("All clean"))
	case stats.IssuesTotal == stats.IssuesFixed:
		builder.WriteString(s.Success.Render("All issues fixed"))
	default:
		builder.WriteString(s.Warning.Render("Issues remain"))
	}
	builder.WriteString("\n")

	return builder.String()
}

// FormatCodeBreakdown renders the per-code issue counts, most frequent first.
func (s *Styles) FormatCodeBreakdown(stats runner.Stats) string {
	if len(stats.IssuesByCode) == 0 {
		return ""
	}

	codes := make([]string, 0, len(stats.IssuesByCode))
	for code := range stats.IssuesByCode {
		codes = append(codes, code)
	}
	sort.Slice(codes, func(i, j int) bool {
		a, b := codes[i], codes[j]
		if stats.IssuesByCode[a] != stats.IssuesByCode[b] {
			return stats.IssuesByCode[a] > stats.IssuesByCode[b]
		}
		return a < b
	})

	var builder strings.Builder
	builder.WriteString(s.SummaryTitle.Render("Issues by code") + "\n")
	for _, code := range codes {
		builder.WriteString(fmt.Sprintf("  %s %s\n",
			s.Code.Render(fmt.Sprintf("%-6s", code)),
			s.SummaryValue.Render(strconv.Itoa(stats.IssuesByCode[code]))))
	}
	return builder.String()
}
