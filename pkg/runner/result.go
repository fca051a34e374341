package runner

// FileOutcome wraps PipelineResult with resolved path metadata.
type FileOutcome struct {
	// Path is the file path that was processed.
	Path string

	// Result contains the pipeline result for this file.
	// May be nil if the file encountered an error during processing.
	Result *PipelineResult

	// Error is set if the file could not be processed.
	Error error
}

// Stats captures aggregate information about a run.
type Stats struct {
	// FilesDiscovered is the total number of files found during discovery.
	FilesDiscovered int

	// FilesProcessed is the number of files successfully processed.
	FilesProcessed int

	// FilesSkipped is the number of files skipped (e.g., due to concurrent modification).
	FilesSkipped int

	// FilesErrored is the number of files that encountered errors.
	FilesErrored int

	// IssuesTotal is the total number of issues across all files.
	IssuesTotal int

	// IssuesFixed is the total number of issues fixed across all files.
	IssuesFixed int

	// IssuesByCode maps issue codes to counts.
	IssuesByCode map[string]int

	// FilesWithIssues is the number of files with at least one issue.
	FilesWithIssues int

	// FilesModified is the number of files that were modified by fixes.
	FilesModified int
}

// Result is the overall runner result.
type Result struct {
	// Files contains the outcome for each processed file.
	// Files are ordered deterministically (by path).
	Files []FileOutcome

	// Stats contains aggregate statistics for the run.
	Stats Stats

	// Errors contains any non-file-specific errors encountered.
	Errors []error
}

// HasErrors reports whether any file failed to process.
func (r *Result) HasErrors() bool {
	if r == nil {
		return false
	}
	return r.Stats.FilesErrored > 0 || len(r.Errors) > 0
}

// HasIssues reports whether any issues were found.
func (r *Result) HasIssues() bool {
	if r == nil {
		return false
	}
	return r.Stats.IssuesTotal > 0
}

// HasUnfixedIssues reports whether issues remain that were not fixed.
func (r *Result) HasUnfixedIssues() bool {
	if r == nil {
		return false
	}
	return r.Stats.IssuesTotal > r.Stats.IssuesFixed
}

// newStats creates a new Stats with initialized maps.
func newStats() Stats {
	return Stats{
		IssuesByCode: make(map[string]int),
	}
}

// accumulate updates the result with a file outcome.
func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	if outcome.Error != nil {
		r.Stats.FilesErrored++
		return
	}

	if outcome.Result == nil {
		return
	}

	r.Stats.FilesProcessed++

	if outcome.Result.Skipped {
		r.Stats.FilesSkipped++
	}

	if outcome.Result.Written {
		r.Stats.FilesModified++
	}

	r.Stats.IssuesFixed += outcome.Result.Fixed

	issueCount := len(outcome.Result.Issues)
	r.Stats.IssuesTotal += issueCount
	if issueCount > 0 {
		r.Stats.FilesWithIssues++
	}

	for _, io := range outcome.Result.Issues {
		r.Stats.IssuesByCode[string(io.Issue.Code)]++
	}
}
