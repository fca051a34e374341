package cli

import "github.com/yaklabco/gopyfix/pkg/runner"

// Exit codes for gopyfix.
const (
	// ExitSuccess indicates successful execution with no remaining issues.
	ExitSuccess = 0

	// ExitIssuesRemaining indicates the run completed but unfixed issues remain.
	ExitIssuesRemaining = 1

	// ExitIssuesFound indicates issues were found (strict or check-only mode),
	// even when every one of them was fixed.
	ExitIssuesFound = 2

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)

// ExitCodeFromResult determines the exit code based on result and strict mode.
func ExitCodeFromResult(result *runner.Result, strict bool) int {
	if result == nil {
		return ExitSuccess
	}

	if result.HasErrors() {
		return ExitIOError
	}

	if result.HasUnfixedIssues() {
		return ExitIssuesRemaining
	}

	if strict && result.HasIssues() {
		return ExitIssuesFound
	}

	return ExitSuccess
}
