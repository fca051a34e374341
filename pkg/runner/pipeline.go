package runner

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/yaklabco/gopyfix/pkg/checker"
	"github.com/yaklabco/gopyfix/pkg/config"
	"github.com/yaklabco/gopyfix/pkg/diff"
	"github.com/yaklabco/gopyfix/pkg/fixer"
	"github.com/yaklabco/gopyfix/pkg/fsutil"
	"github.com/yaklabco/gopyfix/pkg/pysrc"
)

// Pipeline error types for categorization.
var (
	// ErrFileNotFound indicates the file does not exist.
	ErrFileNotFound = errors.New("file not found")

	// ErrPermissionDenied indicates a permission error.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrWriteFailure indicates a write error.
	ErrWriteFailure = errors.New("write failure")
)

// IssueOutcome pairs a detected issue with its fix result.
type IssueOutcome struct {
	// Issue is the detected style violation.
	Issue checker.Issue

	// Result is fixer.Applied, fixer.NotFixed or fixer.Deferred. Deferred
	// outcomes are resolved after Finalize, so after ProcessFile returns
	// the value is never Deferred unless fixing was disabled mid-way.
	Result int

	// Message describes the applied fix, empty in check-only mode.
	Message fixer.Message
}

// PipelineResult contains the outcome of processing a single file.
type PipelineResult struct {
	// Path is the file path that was processed.
	Path string

	// Encoding is the detected source encoding.
	Encoding string

	// OriginalInfo is the file state before processing.
	OriginalInfo *fsutil.FileInfo

	// Issues are the detected violations with their fix outcomes, in
	// reading order.
	Issues []IssueOutcome

	// SourceLines are the decoded original lines, terminators included.
	// Kept so reporters can show the offending line.
	SourceLines []string

	// Fixed is the number of issues fixed.
	Fixed int

	// Modified is true if the line buffer was changed.
	Modified bool

	// Diff is the unified diff for dry-run mode (nil otherwise).
	Diff *diff.Diff

	// Skipped is true if the file was skipped (e.g., due to concurrent
	// modification).
	Skipped bool

	// SkipReason explains why the file was skipped.
	SkipReason string

	// Written is true if the fixed file was written to disk.
	Written bool

	// OutputPath is where the result was (or would be) written. Equal to
	// Path when fixing in place, "fixed_<name>" otherwise.
	OutputPath string
}

// HasIssues reports whether any violations were found.
func (pr *PipelineResult) HasIssues() bool {
	return pr != nil && len(pr.Issues) > 0
}

// Summary returns a human-readable summary of the pipeline result.
func (pr *PipelineResult) Summary() string {
	if pr.Skipped {
		return "skipped: " + pr.SkipReason
	}
	if pr.Written {
		return fmt.Sprintf("fixed %d issue(s)", pr.Fixed)
	}
	if pr.Modified {
		return "changes pending"
	}
	if pr.HasIssues() {
		return "issues found"
	}
	return "ok"
}

// PipelineOptions controls per-file processing behavior.
type PipelineOptions struct {
	// Fix enables applying fixes; false means check-only.
	Fix bool

	// DryRun generates diffs without writing files.
	DryRun bool

	// InPlace overwrites originals instead of writing "fixed_<name>".
	InPlace bool

	// Backup keeps a "<name>~" copy before the first in-place save.
	Backup bool

	// MaxLineLength is the long-line limit.
	MaxLineLength int

	// FixCodes and NoFixCodes are comma separated code filters.
	FixCodes   string
	NoFixCodes string

	// EOL is the terminator for newly inserted lines ("" keeps the file's).
	EOL string
}

// DefaultPipelineOptions returns sensible defaults.
func DefaultPipelineOptions() PipelineOptions {
	return PipelineOptions{
		Fix:           true,
		InPlace:       true,
		Backup:        true,
		MaxLineLength: 79,
	}
}

// PipelineOptionsFromConfig creates PipelineOptions from config.Config.
func PipelineOptionsFromConfig(cfg *config.Config) PipelineOptions {
	if cfg == nil {
		return DefaultPipelineOptions()
	}
	return PipelineOptions{
		Fix:           !cfg.DryRun,
		DryRun:        cfg.DryRun,
		InPlace:       cfg.InPlace,
		Backup:        cfg.Backups.Enabled && !cfg.NoBackups,
		MaxLineLength: cfg.MaxLineLength,
		FixCodes:      strings.Join(cfg.FixCodes, ","),
		NoFixCodes:    strings.Join(cfg.NoFixCodes, ","),
		EOL:           cfg.EOLString(),
	}
}

// Pipeline orchestrates the processing of a single file.
type Pipeline struct{}

// NewPipeline creates a file processing pipeline.
func NewPipeline() *Pipeline {
	return &Pipeline{}
}

// ProcessFile runs the full pipeline for a single file:
//  1. Read and hash the original file.
//  2. Decode it using the PEP 263 encoding.
//  3. Detect style issues.
//  4. Feed each issue to the fixer, then finalize deferred fixes.
//  5. Generate a diff (dry-run) or check for concurrent modification and
//     write the result back in the original encoding.
func (p *Pipeline) ProcessFile(
	ctx context.Context,
	path string,
	opts PipelineOptions,
) (*PipelineResult, error) {
	result := &PipelineResult{
		Path:       path,
		OutputPath: path,
	}

	content, info, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		return nil, categorizeError(err)
	}
	result.OriginalInfo = info

	text, encoding := fsutil.DecodeSource(content)
	result.Encoding = encoding

	lines := pysrc.FromSource(text).Lines()
	result.SourceLines = lines

	issues := checker.New(opts.MaxLineLength).Check(lines)

	if !opts.Fix && !opts.DryRun {
		for _, issue := range issues {
			result.Issues = append(result.Issues, IssueOutcome{
				Issue:  issue,
				Result: fixer.NotFixed,
			})
		}
		return result, nil
	}

	fx, outcomes := p.applyFixes(ctx, path, lines, issues, opts)
	result.Issues = outcomes
	result.Fixed = fx.Fixed()
	result.Modified = fx.Modified()
	result.OutputPath = fx.FileName()

	if !result.Modified {
		return result, nil
	}

	if opts.DryRun {
		result.Diff = diff.Generate(path, text, strings.Join(fx.Lines(), ""))
		return result, nil
	}

	// Only an in-place save can clobber concurrent edits.
	if opts.InPlace {
		modified, err := fsutil.CheckModified(ctx, info)
		if err != nil {
			return nil, fmt.Errorf("check modified: %w", err)
		}
		if modified {
			result.Skipped = true
			result.SkipReason = "file modified during processing"
			return result, nil
		}
	}

	written, err := fx.SaveFile(ctx, encoding)
	if err != nil {
		restoreOriginal(path, opts)
		return nil, fmt.Errorf("%w: %w", ErrWriteFailure, err)
	}
	result.Written = written

	return result, nil
}

// applyFixes feeds issues to a fresh fixer and resolves deferred outcomes.
func (p *Pipeline) applyFixes(
	ctx context.Context,
	path string,
	lines []string,
	issues []checker.Issue,
	opts PipelineOptions,
) (*fixer.Fixer, []IssueOutcome) {
	fx := fixer.New(path, lines, fixer.Options{
		FixCodes:      opts.FixCodes,
		NoFixCodes:    opts.NoFixCodes,
		MaxLineLength: opts.MaxLineLength,
		InPlace:       opts.InPlace,
		EOL:           opts.EOL,
		Backup:        opts.Backup,
	})

	outcomes := make([]IssueOutcome, 0, len(issues))
	deferred := make(map[int]int, len(issues)) // fix id -> outcome index

	for _, issue := range issues {
		select {
		case <-ctx.Done():
			return fx, outcomes
		default:
		}

		res, message, id := fx.FixIssue(issue.Line, issue.Pos, issue.Code)
		outcomes = append(outcomes, IssueOutcome{
			Issue:   issue,
			Result:  res,
			Message: message,
		})
		if res == fixer.Deferred {
			deferred[id] = len(outcomes) - 1
		}
	}

	for id, fr := range fx.Finalize() {
		idx, ok := deferred[id]
		if !ok {
			continue
		}
		outcomes[idx].Result = fr.Result
		outcomes[idx].Message = fr.Message
	}

	return fx, outcomes
}

// restoreOriginal puts the file back from its backup after a failed
// in-place save. It only acts when the save renamed the original away,
// so a stale backup from an earlier run is never restored over current
// content.
func restoreOriginal(path string, opts PipelineOptions) {
	if !opts.InPlace || !opts.Backup {
		return
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		return
	}
	if fsutil.BackupExists(path) {
		_, _ = fsutil.RestoreBackup(path)
	}
}

// categorizeError wraps an error with the appropriate pipeline error type.
// It uses errors.Is for robust error detection rather than string matching.
func categorizeError(err error) error {
	if err == nil {
		return nil
	}

	// Check for file not found errors.
	if errors.Is(err, fsutil.ErrNotFound) || errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w: %w", ErrFileNotFound, err)
	}

	// Check for permission errors.
	if errors.Is(err, fsutil.ErrPermissionDenied) || errors.Is(err, os.ErrPermission) {
		return fmt.Errorf("%w: %w", ErrPermissionDenied, err)
	}

	return err
}

// IsPipelineError checks if an error is a known pipeline error type.
func IsPipelineError(err error) bool {
	return errors.Is(err, ErrFileNotFound) ||
		errors.Is(err, ErrPermissionDenied) ||
		errors.Is(err, ErrWriteFailure)
}
