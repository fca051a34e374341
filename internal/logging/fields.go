// Package logging provides a structured logging wrapper around charmbracelet/log.
package logging

// Field name constants for structured logging.
// Using constants prevents typos and enables IDE autocomplete.
const (
	// Common fields.
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldFiles      = "files"
	FieldEncoding   = "encoding"
	FieldWorkingDir = "working_dir"

	// Configuration fields.
	FieldMaxLineLength = "max_line_length"
	FieldInPlace       = "in_place"
	FieldDryRun        = "dry_run"
	FieldJobs          = "jobs"

	// Statistics fields.
	FieldFilesDiscovered = "files_discovered"
	FieldFilesProcessed  = "files_processed"
	FieldFilesWithIssues = "files_with_issues"
	FieldIssuesTotal     = "issues_total"
	FieldIssuesFixed     = "issues_fixed"
	FieldFilesModified   = "files_modified"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"

	// Issue fields.
	FieldCode        = "code"
	FieldLine        = "line"
	FieldFixable     = "fixable"
	FieldDescription = "description"
)
