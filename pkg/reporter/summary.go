package reporter

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/yaklabco/gopyfix/internal/ui/pretty"
	"github.com/yaklabco/gopyfix/pkg/analysis"
)

// Table layout constants for summary output.
// Both tables use the same width for visual consistency.
const (
	tableWidth        = 90 // Width of table separators (same for both tables).
	codeColWidth      = 10 // Width of the issue code column.
	descColWidth      = 44 // Width of the description column.
	fileColWidth      = 60 // Width of the file path column (wider for relative paths).
	numColWidth       = 7  // Width of numeric columns.
	fixedColWidth     = 8  // Width of fixed column.
	maxDescLength     = 42 // Maximum characters for a description before truncation.
	maxFilePathLength = 58 // Maximum characters for file path before truncation.
)

// padRight pads a string to the given width with spaces on the right.
// This must be called BEFORE applying ANSI styles.
func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

// padLeft pads a string to the given width with spaces on the left.
// This must be called BEFORE applying ANSI styles.
func padLeft(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return strings.Repeat(" ", width-len(s)) + s
}

// SummaryRenderer formats results as aggregated summary tables.
type SummaryRenderer struct {
	opts   Options
	styles *pretty.Styles
	out    io.Writer
}

// NewSummaryRenderer creates a new summary renderer.
func NewSummaryRenderer(opts Options) *SummaryRenderer {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &SummaryRenderer{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		out:    opts.Writer,
	}
}

// Render implements Renderer.
func (r *SummaryRenderer) Render(_ context.Context, report *analysis.Report) error {
	if report.Totals.Issues == 0 {
		fmt.Fprintln(r.out, r.styles.Success.Render("No issues found"))
		return nil
	}

	r.renderCodeTable(report.ByCode)
	fmt.Fprintln(r.out)
	r.renderFileTable(report.ByFile)

	fmt.Fprintln(r.out)
	r.renderTotals(report.Totals)

	return nil
}

func (r *SummaryRenderer) renderCodeTable(codes []analysis.CodeAnalysis) {
	if len(codes) == 0 {
		return
	}

	fmt.Fprintln(r.out, r.styles.Bold.Render("Issues by Code"))
	fmt.Fprintln(r.out, r.styles.TableSeparator.Render(strings.Repeat("─", tableWidth)))

	// Header - pad first, then style
	fmt.Fprintf(r.out, "%s %s %s %s\n",
		r.styles.TableHeader.Render(padRight("Code", codeColWidth)),
		r.styles.TableHeader.Render(padRight("Description", descColWidth)),
		r.styles.TableHeader.Render(padLeft("Count", numColWidth)),
		r.styles.TableHeader.Render(padLeft("Fixed", fixedColWidth)),
	)
	fmt.Fprintln(r.out, r.styles.TableSeparator.Render(strings.Repeat("─", tableWidth)))

	for _, code := range codes {
		desc := code.Description
		if len(desc) > maxDescLength {
			desc = desc[:maxDescLength] + "…"
		}

		paddedCode := padRight(code.Code, codeColWidth)
		styledCode := paddedCode
		if code.Fixed < code.Issues {
			styledCode = r.styles.Warning.Render(paddedCode)
		}

		fixed := padLeft(strconv.Itoa(code.Fixed), fixedColWidth)
		if code.Fixed == code.Issues {
			fixed = r.styles.Success.Render(fixed)
		}

		fmt.Fprintf(r.out, "%s %s %s %s\n",
			styledCode,
			padRight(desc, descColWidth),
			padLeft(strconv.Itoa(code.Issues), numColWidth),
			fixed,
		)
	}
}

func (r *SummaryRenderer) renderFileTable(files []analysis.FileAnalysis) {
	if len(files) == 0 {
		return
	}

	fmt.Fprintln(r.out, r.styles.Bold.Render("Files Summary"))
	fmt.Fprintln(r.out, r.styles.TableSeparator.Render(strings.Repeat("─", tableWidth)))

	// Header - pad first, then style
	fmt.Fprintf(r.out, "%s %s %s\n",
		r.styles.TableHeader.Render(padRight("File", fileColWidth)),
		r.styles.TableHeader.Render(padLeft("Count", numColWidth)),
		r.styles.TableHeader.Render(padLeft("Fixed", fixedColWidth)),
	)
	fmt.Fprintln(r.out, r.styles.TableSeparator.Render(strings.Repeat("─", tableWidth)))

	for _, file := range files {
		path := file.Path
		if len(path) > maxFilePathLength {
			path = "…" + path[len(path)-(maxFilePathLength-1):]
		}

		paddedPath := padRight(path, fileColWidth)
		styledPath := paddedPath
		if file.Fixed < file.Issues {
			styledPath = r.styles.Warning.Render(paddedPath)
		}

		fmt.Fprintf(r.out, "%s %s %s\n",
			styledPath,
			padLeft(strconv.Itoa(file.Issues), numColWidth),
			padLeft(strconv.Itoa(file.Fixed), fixedColWidth),
		)
	}
}

func (r *SummaryRenderer) renderTotals(totals analysis.Totals) {
	var parts []string

	issueWord := "issues"
	if totals.Issues == 1 {
		issueWord = "issue"
	}
	parts = append(parts, fmt.Sprintf("%d %s", totals.Issues, issueWord))

	fileWord := "files"
	if totals.FilesWithIssues == 1 {
		fileWord = "file"
	}
	parts = append(parts, fmt.Sprintf("in %d %s", totals.FilesWithIssues, fileWord))

	if totals.Fixed > 0 {
		parts = append(parts, r.styles.Success.Render(fmt.Sprintf("%d fixed", totals.Fixed)))
	}
	if totals.Remaining > 0 {
		parts = append(parts, r.styles.Warning.Render(fmt.Sprintf("%d remaining", totals.Remaining)))
	}

	fmt.Fprintln(r.out, r.styles.Bold.Render("Total: ")+strings.Join(parts, " "))
}
