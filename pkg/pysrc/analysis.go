package pysrc

import (
	"strings"

	"github.com/yaklabco/gopyfix/pkg/pytoken"
)

// RowCol addresses a position in the buffer: 0-based row, 0-based column.
type RowCol struct {
	Row int
	Col int
}

// LogicalLine is one complete statement, possibly spanning several physical
// lines via brackets or backslash continuation. Lines holds the original
// physical lines composing it.
type LogicalLine struct {
	Start RowCol
	End   RowCol
	Lines []string
}

// LogicalLines scans the token stream of source and returns the start and
// end positions of every logical line. A logical line begins at the first
// significant token after the previous logical NEWLINE at bracket depth
// zero and ends at the next one. Comments, INDENT/DEDENT, NL and the end
// marker are transparent.
func LogicalLines(source string) (starts, ends []RowCol, err error) {
	tokens, err := pytoken.Tokenize(source)
	if err != nil {
		return nil, nil, err
	}
	lastNewline := true
	parens := 0
	for _, tk := range tokens {
		if tk.IsTrivia() {
			continue
		}
		if parens == 0 && tk.Type == pytoken.Newline {
			lastNewline = true
			ends = append(ends, RowCol{Row: tk.End.Row - 1, Col: tk.Start.Col})
			continue
		}
		if lastNewline && parens == 0 {
			starts = append(starts, RowCol{Row: tk.Start.Row - 1, Col: tk.Start.Col})
			lastNewline = false
		}
		if tk.OpenBracket() {
			parens++
		} else if tk.CloseBracket() {
			parens--
		}
	}
	return starts, ends, nil
}

// LogicalLineAt returns the logical line whose end lies strictly after the
// given position. line is 1-based, col is 0-based, matching issue
// coordinates. The second return value is false when the position is not
// inside any logical line or the buffer cannot be tokenized.
func LogicalLineAt(buf *Buffer, line, col int) (LogicalLine, bool) {
	starts, ends, err := LogicalLines(buf.Join())
	if err != nil {
		return LogicalLine{}, false
	}
	row := line - 1
	for i := range starts {
		if i >= len(ends) {
			break
		}
		end := ends[i]
		if end.Row > row || (end.Row == row && end.Col > col) {
			start := starts[i]
			return LogicalLine{
				Start: start,
				End:   end,
				Lines: buf.Slice(start.Row, end.Row+1),
			}, true
		}
	}
	return LogicalLine{}, false
}

// IndentWord returns the literal text of the first INDENT token of source,
// i.e. the file's indentation unit. Four spaces are returned when the file
// has no indented block or cannot be tokenized.
func IndentWord(source string) string {
	tokens, _ := pytoken.Tokenize(source)
	for _, tk := range tokens {
		if tk.Type == pytoken.Indent {
			return tk.Text
		}
	}
	return "    "
}

// MultilineStringLines classifies the rows covered by multi-line string
// tokens. Rows are 1-based and inclusive of both the start and end row.
// A string token directly preceded by an INDENT token counts as a
// docstring, every other multi-line string does not.
func MultilineStringLines(source string) (multi, doc map[int]bool) {
	multi = make(map[int]bool)
	doc = make(map[int]bool)
	tokens, _ := pytoken.Tokenize(source)
	prev := pytoken.EndMarker
	for _, tk := range tokens {
		if tk.Type == pytoken.String && tk.Start.Row != tk.End.Row {
			target := multi
			if prev == pytoken.Indent {
				target = doc
			}
			for row := tk.Start.Row; row <= tk.End.Row; row++ {
				target[row] = true
			}
		}
		prev = tk.Type
	}
	return multi, doc
}

// IndentOf returns the leading whitespace of line.
func IndentOf(line string) string {
	return line[:len(line)-len(strings.TrimLeft(line, " \t"))]
}

// LeadingSpaces counts the leading space characters of line. Tabs are not
// counted; the reindenter expands tabs before measuring.
func LeadingSpaces(line string) int {
	i := 0
	for i < len(line) && line[i] == ' ' {
		i++
	}
	return i
}

// ExpandIndent measures the indentation of line in columns with tab stops
// of eight, the way pep8's expand_indent does.
func ExpandIndent(line string) int {
	line = strings.TrimRight(line, "\r\n")
	if !strings.Contains(line, "\t") {
		return len(line) - len(strings.TrimLeft(line, " "))
	}
	indent := 0
	for _, ch := range line {
		switch ch {
		case '\t':
			indent = indent/8*8 + 8
		case ' ':
			indent++
		default:
			return indent
		}
	}
	return indent
}

// ExpandTabs replaces tabs with spaces up to the next tab stop of eight.
func ExpandTabs(line string) string {
	if !strings.Contains(line, "\t") {
		return line
	}
	var b strings.Builder
	col := 0
	for _, ch := range line {
		switch ch {
		case '\t':
			n := 8 - col%8
			b.WriteString(strings.Repeat(" ", n))
			col += n
		case '\n', '\r':
			b.WriteRune(ch)
			col = 0
		default:
			b.WriteRune(ch)
			col++
		}
	}
	return b.String()
}
