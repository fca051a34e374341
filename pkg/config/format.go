package config

// FormatIssue renders an issue code with its description, e.g.
// "E501 line too long". Falls back to the bare code when no description is
// known.
func FormatIssue(code, description string) string {
	if description == "" {
		return code
	}
	return code + " " + description
}
