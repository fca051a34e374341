// Package checker detects a fixable subset of Python style issues with
// line-based heuristics. It deliberately favors precision over recall: an
// issue is only reported when the matching fix is safe to apply.
package checker

import (
	"strings"

	"github.com/yaklabco/gopyfix/pkg/fixer"
	"github.com/yaklabco/gopyfix/pkg/pysrc"
)

// Issue is one detected style violation.
type Issue struct {
	// Line is the 1-based line number.
	Line int

	// Pos is the 0-based column of the violation.
	Pos int

	// Code identifies the violation class.
	Code fixer.Code
}

// Descriptions holds the English description per issue code.
var Descriptions = map[fixer.Code]string{
	"E101": "indentation contains mixed spaces and tabs",
	"E111": "indentation is not a multiple of four",
	"E225": "missing whitespace around operator",
	"E231": "missing whitespace after comma or semicolon",
	"E301": "expected 1 blank line",
	"E302": "expected 2 blank lines",
	"E303": "too many blank lines",
	"E401": "multiple imports on one line",
	"E501": "line too long",
	"E701": "multiple statements on one line (colon)",
	"E702": "multiple statements on one line (semicolon)",
	"E703": "statement ends with a semicolon",
	"E711": "comparison to None should be 'if cond is None:'",
	"E712": "comparison to True/False should be 'if cond is True:'",
	"W191": "indentation contains tabs",
	"W291": "trailing whitespace",
	"W292": "no newline at end of file",
	"W293": "whitespace on blank line",
	"W391": "blank line at end of file",
	"W603": "'<>' is deprecated, use '!='",
}

// Checker scans source lines for fixable style issues.
type Checker struct {
	maxLineLength int
}

// New creates a checker flagging lines longer than maxLineLength.
func New(maxLineLength int) *Checker {
	if maxLineLength == 0 {
		maxLineLength = 79
	}
	return &Checker{maxLineLength: maxLineLength}
}

// Check scans the source lines (with terminators) and returns the detected
// issues in reading order.
func (c *Checker) Check(lines []string) []Issue {
	var issues []Issue
	source := strings.Join(lines, "")

	multiRows, docRows := pysrc.MultilineStringLines(source)
	inString := func(row int) bool { return multiRows[row+1] || docRows[row+1] }

	indentChar := detectIndentChar(lines)

	blanks := 0
	for i, line := range lines {
		row := i + 1
		text := strings.TrimRight(line, "\r\n")
		stripped := strings.TrimSpace(text)

		if stripped == "" {
			if text != "" && !inString(i) {
				issues = append(issues, Issue{Line: row, Pos: 0, Code: "W293"})
			}
			blanks++
			continue
		}

		if !inString(i) {
			issues = append(issues, c.checkIndentation(row, text, indentChar)...)
			issues = append(issues, c.checkBlankLines(lines, i, blanks)...)
			masked := maskStrings(text)
			issues = append(issues, c.checkTrailing(row, text)...)
			issues = append(issues, c.checkStatements(row, text, masked)...)
			issues = append(issues, c.checkComparisons(row, masked)...)
			issues = append(issues, c.checkImports(row, text, masked)...)
			issues = append(issues, c.checkOperators(row, masked)...)
		}
		if len(text) > c.maxLineLength {
			issues = append(issues, Issue{Line: row, Pos: c.maxLineLength, Code: "E501"})
		}
		blanks = 0
	}

	issues = append(issues, c.checkFileEnd(lines)...)
	return issues
}

func detectIndentChar(lines []string) byte {
	for _, line := range lines {
		if strings.HasPrefix(line, "\t") {
			return '\t'
		}
		if strings.HasPrefix(line, " ") && strings.TrimSpace(line) != "" {
			return ' '
		}
	}
	return ' '
}

func (c *Checker) checkIndentation(row int, text string, indentChar byte) []Issue {
	var issues []Issue
	indent := pysrc.IndentOf(text)
	if strings.Contains(indent, "\t") {
		issues = append(issues, Issue{Line: row, Pos: 0, Code: "W191"})
		if indentChar == ' ' {
			issues = append(issues, Issue{Line: row, Pos: 0, Code: "E101"})
		}
	}
	return issues
}

func (c *Checker) checkTrailing(row int, text string) []Issue {
	if trimmed := strings.TrimRight(text, " \t"); trimmed != text {
		return []Issue{{Line: row, Pos: len(trimmed), Code: "W291"}}
	}
	return nil
}

// checkBlankLines flags def/class headers with the wrong number of
// preceding blank lines and runs of more than two blanks.
func (c *Checker) checkBlankLines(lines []string, i, blanks int) []Issue {
	row := i + 1
	text := strings.TrimRight(lines[i], "\r\n")
	stripped := strings.TrimLeft(text, " \t")
	var issues []Issue

	if blanks > 2 {
		issues = append(issues, Issue{Line: row, Pos: 0, Code: "E303"})
	}

	isDef := strings.HasPrefix(stripped, "def ") ||
		strings.HasPrefix(stripped, "class ") ||
		strings.HasPrefix(stripped, "async def ")
	if !isDef || i == 0 {
		return issues
	}

	// The previous significant line decides whether blanks are required:
	// decorators and comments suppress the check.
	prev := ""
	for j := i - blanks - 1; j >= 0; j-- {
		if strings.TrimSpace(lines[j]) != "" {
			prev = strings.TrimLeft(strings.TrimRight(lines[j], "\r\n"), " \t")
			break
		}
	}
	if prev == "" || strings.HasPrefix(prev, "@") || strings.HasPrefix(prev, "#") {
		return issues
	}

	topLevel := !strings.HasPrefix(text, " ") && !strings.HasPrefix(text, "\t")
	if topLevel {
		if blanks != 2 {
			issues = append(issues, Issue{Line: row, Pos: 0, Code: "E302"})
		}
	} else if blanks == 0 {
		// Directly after the class header no blank line is expected.
		if !strings.HasPrefix(prev, "class ") && !strings.HasPrefix(prev, "def ") &&
			!strings.HasPrefix(prev, "async def ") {
			issues = append(issues, Issue{Line: row, Pos: 0, Code: "E301"})
		}
	}
	return issues
}

// checkStatements flags compound statements: a statement after a depth-zero
// colon of a block keyword (E701), statements joined by a semicolon (E702)
// and a trailing semicolon (E703).
func (c *Checker) checkStatements(row int, text, masked string) []Issue {
	var issues []Issue
	stripped := strings.TrimLeft(masked, " \t")
	offset := len(masked) - len(stripped)

	if firstWordIn(stripped,
		"if", "elif", "else", "try", "except", "finally",
		"for", "while", "with", "def", "class") {
		depth := 0
		for k := 0; k < len(stripped); k++ {
			switch stripped[k] {
			case '(', '[', '{':
				depth++
			case ')', ']', '}':
				depth--
			case '#':
				k = len(stripped)
			case ':':
				if depth == 0 {
					rest := strings.TrimSpace(stripped[k+1:])
					if rest != "" && !strings.HasPrefix(rest, "#") {
						issues = append(issues, Issue{Line: row, Pos: offset + k, Code: "E701"})
					}
					k = len(stripped)
				}
			}
		}
	}

	depth := 0
	for k := 0; k < len(masked); k++ {
		switch masked[k] {
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			depth--
		case '#':
			k = len(masked)
		case ';':
			if depth == 0 {
				rest := strings.TrimSpace(masked[k+1:])
				code := fixer.Code("E702")
				if rest == "" || strings.HasPrefix(rest, "#") {
					code = "E703"
				}
				issues = append(issues, Issue{Line: row, Pos: k, Code: code})
				k = len(masked)
			}
		}
	}
	return issues
}

func (c *Checker) checkComparisons(row int, masked string) []Issue {
	var issues []Issue
	for k := 0; k+1 < len(masked); k++ {
		two := masked[k : k+2]
		if two == "<>" {
			issues = append(issues, Issue{Line: row, Pos: k, Code: "W603"})
			continue
		}
		if two != "==" && two != "!=" {
			continue
		}
		rest := strings.TrimLeft(masked[k+2:], " \t")
		var code fixer.Code
		if startsWithWord(rest, "None") {
			code = "E711"
		} else if startsWithWord(rest, "True") || startsWithWord(rest, "False") {
			code = "E712"
		} else {
			continue
		}
		issues = append(issues, Issue{Line: row, Pos: k, Code: code})
		k++
	}
	return issues
}

func (c *Checker) checkImports(row int, text, masked string) []Issue {
	stripped := strings.TrimLeft(masked, " \t")
	offset := len(masked) - len(stripped)
	if !strings.HasPrefix(stripped, "import ") || strings.Contains(masked, ";") {
		return nil
	}
	if idx := strings.IndexByte(stripped, ','); idx >= 0 {
		return []Issue{{Line: row, Pos: offset + idx, Code: "E401"}}
	}
	return nil
}

// checkOperators flags a missing space after comma/semicolon (E231) and a
// bare keyword-less '=' without surrounding spaces (E225).
func (c *Checker) checkOperators(row int, masked string) []Issue {
	var issues []Issue
	depth := 0
	for k := 0; k < len(masked); k++ {
		ch := masked[k]
		switch ch {
		case '(', '[', '{':
			depth++
			continue
		case ')', ']', '}':
			depth--
			continue
		case '#':
			return issues
		}

		if (ch == ',' || ch == ';') && k+1 < len(masked) {
			next := masked[k+1]
			if next != ' ' && next != '\t' && next != ')' && next != ']' &&
				next != '}' && next != ',' {
				issues = append(issues, Issue{Line: row, Pos: k, Code: "E231"})
			}
		}

		// Assignment outside brackets; inside brackets '=' is a keyword
		// argument where spaces are not wanted.
		if ch == '=' && depth == 0 {
			prev := byte(0)
			if k > 0 {
				prev = masked[k-1]
			}
			next := byte(0)
			if k+1 < len(masked) {
				next = masked[k+1]
			}
			if isWordByte(prev) && isWordByte(next) {
				issues = append(issues, Issue{Line: row, Pos: k, Code: "E225"})
			}
			if next == '=' {
				k++
			}
		}
	}
	return issues
}

func (c *Checker) checkFileEnd(lines []string) []Issue {
	if len(lines) == 0 {
		return nil
	}
	last := lines[len(lines)-1]
	var issues []Issue
	if !strings.HasSuffix(last, "\n") && strings.TrimSpace(last) != "" {
		issues = append(issues, Issue{
			Line: len(lines), Pos: len(strings.TrimRight(last, "\r\n")), Code: "W292"})
	}
	if strings.TrimSpace(last) == "" {
		// Point at the last non-blank line, matching how the fix walks up.
		row := len(lines)
		issues = append(issues, Issue{Line: row, Pos: 0, Code: "W391"})
	}
	return issues
}

// maskStrings blanks out single-line string literals so position scans do
// not trip over operators inside them.
func maskStrings(text string) string {
	b := []byte(text)
	var quote byte
	for k := 0; k < len(b); k++ {
		ch := b[k]
		if quote != 0 {
			if ch == '\\' {
				if k+1 < len(b) {
					b[k], b[k+1] = 'x', 'x'
					k++
				}
				continue
			}
			if ch == quote {
				quote = 0
				continue
			}
			b[k] = 'x'
			continue
		}
		if ch == '\'' || ch == '"' {
			quote = ch
		} else if ch == '#' {
			break
		}
	}
	return string(b)
}

func firstWordIn(s string, words ...string) bool {
	for _, w := range words {
		if startsWithWord(s, w) {
			return true
		}
	}
	return false
}

func startsWithWord(s, word string) bool {
	if !strings.HasPrefix(s, word) {
		return false
	}
	if len(s) == len(word) {
		return true
	}
	return !isWordByte(s[len(word)])
}

func isWordByte(b byte) bool {
	return b == '_' || b >= '0' && b <= '9' || b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z'
}
