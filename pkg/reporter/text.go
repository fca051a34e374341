package reporter

import (
	"bufio"
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/yaklabco/gopyfix/internal/ui/pretty"
	"github.com/yaklabco/gopyfix/pkg/runner"
)

// TextReporter formats results as styled terminal output.
type TextReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewTextReporter creates a new text reporter.
func NewTextReporter(opts Options) *TextReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &TextReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TextReporter) Report(ctx context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil || len(result.Files) == 0 {
		if r.opts.ShowSummary {
			fmt.Fprintln(r.bw, r.styles.Success.Render("No files to check."))
		}
		return 0, nil
	}

	var totalIssues int

	if r.opts.GroupByFile {
		totalIssues = r.reportGrouped(ctx, result)
	} else {
		totalIssues = r.reportFlat(ctx, result)
	}

	if r.opts.ShowSummary {
		fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(result.Stats))
	}

	return totalIssues, nil
}

// reportGrouped writes issues grouped by file.
func (r *TextReporter) reportGrouped(_ context.Context, result *runner.Result) int {
	var total int

	for _, file := range result.Files {
		displayPath := r.displayPath(file.Path)

		if file.Error != nil {
			fmt.Fprintf(r.bw, "%s: %s\n",
				r.styles.FilePath.Render(displayPath),
				r.styles.Error.Render(fmt.Sprintf("error: %v", file.Error)),
			)
			continue
		}

		if file.Result == nil {
			continue
		}

		if file.Result.Skipped {
			fmt.Fprintf(r.bw, "%s: %s\n",
				r.styles.FilePath.Render(displayPath),
				r.styles.Warning.Render("skipped: "+file.Result.SkipReason),
			)
		}

		if !file.Result.HasIssues() {
			continue
		}

		fmt.Fprintln(r.bw, r.styles.FormatFileHeader(displayPath, len(file.Result.Issues)))

		for _, outcome := range file.Result.Issues {
			fmt.Fprint(r.bw, r.styles.FormatIssue(displayPath, outcome))
			if r.opts.ShowContext {
				line := sourceLine(file.Result, outcome.Issue.Line)
				if line != "" {
					fmt.Fprint(r.bw, r.styles.FormatSourceContext(line, outcome.Issue.Pos+1))
				}
			}
			total++
		}

		// Blank line between files
		fmt.Fprintln(r.bw)
	}

	return total
}

// reportFlat writes issues without grouping.
func (r *TextReporter) reportFlat(_ context.Context, result *runner.Result) int {
	var total int

	for _, file := range result.Files {
		displayPath := r.displayPath(file.Path)

		if file.Error != nil {
			fmt.Fprintf(r.bw, "%s: %s\n",
				r.styles.FilePath.Render(displayPath),
				r.styles.Error.Render(fmt.Sprintf("error: %v", file.Error)),
			)
			continue
		}

		if file.Result == nil {
			continue
		}

		for _, outcome := range file.Result.Issues {
			fmt.Fprint(r.bw, r.styles.FormatIssue(displayPath, outcome))
			total++
		}
	}

	return total
}

// displayPath converts a path for display, relative to WorkingDir when set.
func (r *TextReporter) displayPath(path string) string {
	if r.opts.WorkingDir == "" {
		return path
	}
	rel, err := filepath.Rel(r.opts.WorkingDir, path)
	if err != nil {
		return path
	}
	return rel
}

// sourceLine extracts a specific 1-based line from the original source.
func sourceLine(result *runner.PipelineResult, lineNum int) string {
	if result == nil || lineNum < 1 || lineNum > len(result.SourceLines) {
		return ""
	}
	return strings.TrimRight(result.SourceLines[lineNum-1], "\r\n")
}
