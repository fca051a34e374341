// Package analysis aggregates run results into renderable reports.
package analysis

import (
	"cmp"
	"path/filepath"
	"slices"
	"time"

	"github.com/yaklabco/gopyfix/pkg/checker"
	"github.com/yaklabco/gopyfix/pkg/fixer"
	"github.com/yaklabco/gopyfix/pkg/runner"
)

// ReportVersion is the current report format version.
const ReportVersion = "1.0.0"

// makeRelativePath converts an absolute path to a relative path from workDir.
// If workDir is empty or conversion fails, returns the original path.
func makeRelativePath(absPath, workDir string) string {
	if workDir == "" {
		return absPath
	}
	relPath, err := filepath.Rel(workDir, absPath)
	if err != nil {
		return absPath
	}
	return relPath
}

// analysisContext holds temporary state during analysis.
type analysisContext struct {
	codeMap   map[string]*CodeAnalysis
	fileMap   map[string]*FileAnalysis
	codeFiles map[string]map[string]bool
	fileCodes map[string]map[string]bool
}

func newAnalysisContext() *analysisContext {
	return &analysisContext{
		codeMap:   make(map[string]*CodeAnalysis),
		fileMap:   make(map[string]*FileAnalysis),
		codeFiles: make(map[string]map[string]bool),
		fileCodes: make(map[string]map[string]bool),
	}
}

// getOrCreateFileAnalysis returns existing or creates new FileAnalysis.
func (ctx *analysisContext) getOrCreateFileAnalysis(path string) *FileAnalysis {
	if _, ok := ctx.fileMap[path]; !ok {
		ctx.fileMap[path] = &FileAnalysis{Path: path}
		ctx.fileCodes[path] = make(map[string]bool)
	}
	return ctx.fileMap[path]
}

// getOrCreateCodeAnalysis returns existing or creates new CodeAnalysis.
func (ctx *analysisContext) getOrCreateCodeAnalysis(code string) *CodeAnalysis {
	if _, ok := ctx.codeMap[code]; !ok {
		ctx.codeMap[code] = &CodeAnalysis{
			Code:        code,
			Description: checker.Descriptions[fixer.Code(code)],
		}
		ctx.codeFiles[code] = make(map[string]bool)
	}
	return ctx.codeMap[code]
}

// createIssueEntry builds an IssueEntry from an issue outcome.
func createIssueEntry(path string, outcome runner.IssueOutcome) IssueEntry {
	entry := IssueEntry{
		FilePath:    path,
		Code:        string(outcome.Issue.Code),
		Description: checker.Descriptions[outcome.Issue.Code],
		Line:        outcome.Issue.Line,
		Column:      outcome.Issue.Pos + 1,
		Fixed:       outcome.Result == fixer.Applied,
	}
	if entry.Fixed {
		entry.Message = outcome.Message.String()
	}
	return entry
}

// buildByCode constructs the ByCode slice from accumulated data.
func (ctx *analysisContext) buildByCode(opts Options) []CodeAnalysis {
	result := make([]CodeAnalysis, 0, len(ctx.codeMap))
	for code, ca := range ctx.codeMap {
		for f := range ctx.codeFiles[code] {
			ca.Files = append(ca.Files, f)
		}
		slices.Sort(ca.Files)
		result = append(result, *ca)
	}
	sortCodeAnalysis(result, opts.SortBy, opts.SortDesc)
	return result
}

// buildByFile constructs the ByFile slice from accumulated data.
func (ctx *analysisContext) buildByFile(opts Options) []FileAnalysis {
	var result []FileAnalysis
	for path, fa := range ctx.fileMap {
		if fa.Issues == 0 {
			continue
		}
		for c := range ctx.fileCodes[path] {
			fa.Codes = append(fa.Codes, c)
		}
		slices.Sort(fa.Codes)
		result = append(result, *fa)
	}
	sortFileAnalysis(result, opts.SortBy, opts.SortDesc)
	return result
}

// Analyze transforms a runner.Result into a Report.
// It performs a single pass through issue outcomes to compute all views.
func Analyze(result *runner.Result, opts Options) *Report {
	report := &Report{
		Version:   ReportVersion,
		Timestamp: time.Now(),
	}

	if result == nil {
		return report
	}

	ctx := newAnalysisContext()

	for _, file := range result.Files {
		report.Totals.Files++
		if file.Error != nil {
			report.Totals.FilesErrored++
			continue
		}
		if file.Result == nil {
			continue
		}
		if file.Result.Skipped {
			report.Totals.FilesSkipped++
		}
		if file.Result.Written {
			report.Totals.FilesModified++
		}
		if !file.Result.HasIssues() {
			continue
		}
		report.Totals.FilesWithIssues++

		displayPath := makeRelativePath(file.Path, opts.WorkingDir)
		fa := ctx.getOrCreateFileAnalysis(displayPath)
		fa.Modified = file.Result.Written

		for _, outcome := range file.Result.Issues {
			report.Totals.Issues++
			code := string(outcome.Issue.Code)
			fixed := outcome.Result == fixer.Applied
			if fixed {
				report.Totals.Fixed++
			}

			fa.Issues++
			if fixed {
				fa.Fixed++
			}
			ctx.fileCodes[displayPath][code] = true

			ca := ctx.getOrCreateCodeAnalysis(code)
			ca.Issues++
			if fixed {
				ca.Fixed++
			}
			ctx.codeFiles[code][displayPath] = true

			if opts.IncludeIssues {
				report.Issues = append(report.Issues, createIssueEntry(displayPath, outcome))
			}
		}
	}

	report.Totals.Remaining = report.Totals.Issues - report.Totals.Fixed

	if opts.IncludeByCode {
		report.ByCode = ctx.buildByCode(opts)
	}
	if opts.IncludeByFile {
		report.ByFile = ctx.buildByFile(opts)
	}

	return report
}

func sortCodeAnalysis(codes []CodeAnalysis, sortBy SortField, desc bool) {
	slices.SortFunc(codes, func(left, right CodeAnalysis) int {
		if sortBy == SortByAlpha {
			return cmp.Compare(left.Code, right.Code)
		}
		result := cmp.Compare(left.Issues, right.Issues)
		if desc {
			result = -result
		}
		if result == 0 {
			result = cmp.Compare(left.Code, right.Code)
		}
		return result
	})
}

func sortFileAnalysis(files []FileAnalysis, sortBy SortField, desc bool) {
	slices.SortFunc(files, func(left, right FileAnalysis) int {
		if sortBy == SortByAlpha {
			return cmp.Compare(left.Path, right.Path)
		}
		result := cmp.Compare(left.Issues, right.Issues)
		if desc {
			result = -result
		}
		if result == 0 {
			result = cmp.Compare(left.Path, right.Path)
		}
		return result
	})
}
