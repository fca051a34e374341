package pytoken

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// tabSize is the tab stop width used when measuring indentation columns.
const tabSize = 8

// operators ordered longest first so the scanner always takes the longest
// match.
var operators = []string{
	"**=", "//=", ">>=", "<<=", "...",
	"**", "//", "<<", ">>", "<=", ">=", "==", "!=", "<>", "->",
	"+=", "-=", "*=", "/=", "%=", "&=", "|=", "^=", ":=", "@=",
	"+", "-", "*", "/", "%", "&", "|", "^", "~", "<", ">",
	"(", ")", "[", "]", "{", "}", ",", ":", ".", ";", "@", "=",
}

// Tokenize scans Python source text into a token stream. The source is the
// full file content; line terminators may be LF or CRLF. On malformed input
// (unterminated string, EOF inside brackets, inconsistent dedent) a
// *TokenizeError is returned along with the tokens produced so far.
func Tokenize(source string) ([]Token, error) {
	t := &tokenizer{
		lines:   SplitLines(source),
		indents: []int{0},
	}
	if err := t.run(); err != nil {
		return t.tokens, err
	}
	return t.tokens, nil
}

// SplitLines splits source into physical lines, each retaining its line
// terminator. The final line is kept even without a terminator.
func SplitLines(source string) []string {
	if source == "" {
		return nil
	}
	var lines []string
	start := 0
	for i := 0; i < len(source); i++ {
		if source[i] == '\n' {
			lines = append(lines, source[start:i+1])
			start = i + 1
		}
	}
	if start < len(source) {
		lines = append(lines, source[start:])
	}
	return lines
}

type tokenizer struct {
	lines     []string
	tokens    []Token
	indents   []int
	depth     int
	continued bool
}

func (t *tokenizer) run() error {
	i := 0
	for i < len(t.lines) {
		pos := 0

		if t.depth == 0 && !t.continued {
			var blank bool
			var err error
			pos, blank, err = t.measureIndent(i)
			if err != nil {
				return err
			}
			if blank {
				i++
				continue
			}
		} else {
			t.continued = false
		}

		next, err := t.scanLine(i, pos)
		if err != nil {
			return err
		}
		i = next + 1
	}

	if t.depth > 0 || t.continued {
		return &TokenizeError{
			Msg: "EOF in multi-line statement",
			Pos: Pos{Row: len(t.lines) + 1, Col: 0},
		}
	}

	t.closeStream()
	return nil
}

// measureIndent handles the start of a fresh logical line at bracket depth
// zero: it computes the indentation column, emits COMMENT/NL for blank and
// comment-only lines, and maintains the INDENT/DEDENT stack otherwise.
// It returns the scan position and whether the line was blank.
func (t *tokenizer) measureIndent(i int) (int, bool, error) {
	line := t.lines[i]
	lnum := i + 1
	col := 0
	pos := 0
	for pos < len(line) {
		switch line[pos] {
		case ' ':
			col++
		case '\t':
			col = col/tabSize*tabSize + tabSize
		case '\f':
			col = 0
		default:
			goto measured
		}
		pos++
	}
measured:
	if pos >= len(line) || line[pos] == '\n' || line[pos] == '#' ||
		(line[pos] == '\r' && restIsNewline(line, pos)) {
		// Blank or comment-only line: no indent bookkeeping.
		if pos < len(line) && line[pos] == '#' {
			end := len(line)
			for end > pos && (line[end-1] == '\n' || line[end-1] == '\r') {
				end--
			}
			t.emit(Comment, line[pos:end], Pos{lnum, pos}, Pos{lnum, end}, line)
			pos = end
		}
		t.emit(NL, line[pos:], Pos{lnum, pos}, Pos{lnum, len(line)}, line)
		return 0, true, nil
	}

	top := t.indents[len(t.indents)-1]
	if col > top {
		t.indents = append(t.indents, col)
		t.emit(Indent, line[:pos], Pos{lnum, 0}, Pos{lnum, pos}, line)
	}
	for col < t.indents[len(t.indents)-1] {
		t.indents = t.indents[:len(t.indents)-1]
		t.emit(Dedent, "", Pos{lnum, pos}, Pos{lnum, pos}, line)
	}
	if col != t.indents[len(t.indents)-1] {
		return 0, false, &TokenizeError{
			Msg: "unindent does not match any outer indentation level",
			Pos: Pos{Row: lnum, Col: pos},
		}
	}
	return pos, false, nil
}

// scanLine scans tokens from lines[i] starting at pos. It returns the index
// of the last line consumed (beyond i when a string literal spans lines).
func (t *tokenizer) scanLine(i, pos int) (int, error) {
	line := t.lines[i]
	lnum := i + 1
	for pos < len(line) {
		c := line[pos]
		switch {
		case c == ' ' || c == '\t' || c == '\f':
			pos++

		case c == '\n' || (c == '\r' && restIsNewline(line, pos)):
			typ := Newline
			if t.depth > 0 {
				typ = NL
			}
			t.emit(typ, line[pos:], Pos{lnum, pos}, Pos{lnum, len(line)}, line)
			return i, nil

		case c == '#':
			end := len(line)
			for end > pos && (line[end-1] == '\n' || line[end-1] == '\r') {
				end--
			}
			t.emit(Comment, line[pos:end], Pos{lnum, pos}, Pos{lnum, end}, line)
			pos = end

		case c == '\\' && restIsNewline(line, pos+1):
			t.continued = true
			return i, nil

		case c == '\'' || c == '"' || isStringStart(line, pos):
			var err error
			i, pos, err = t.scanString(i, pos)
			if err != nil {
				return i, err
			}
			line = t.lines[i]
			lnum = i + 1

		case c >= '0' && c <= '9' || (c == '.' && pos+1 < len(line) && line[pos+1] >= '0' && line[pos+1] <= '9'):
			pos = t.scanNumber(i, pos)

		case isIdentStart(line, pos):
			pos = t.scanName(i, pos)

		default:
			pos = t.scanOp(i, pos)
		}
	}
	return i, nil
}

// scanString consumes a string literal starting at lines[i][pos] (at the
// prefix if present). It returns the line index and position just past the
// closing quote.
func (t *tokenizer) scanString(i, pos int) (int, int, error) {
	line := t.lines[i]
	start := Pos{i + 1, pos}

	j := pos
	for j < len(line) && line[j] != '\'' && line[j] != '"' {
		j++
	}
	quote := line[j]
	triple := strings.HasPrefix(line[j:], strings.Repeat(string(quote), 3))

	var text strings.Builder
	text.WriteString(line[pos:j])

	if triple {
		text.WriteString(line[j : j+3])
		k, off := i, j+3
		for {
			cur := t.lines[k]
			closed, end := findCloser(cur, off, quote, 3)
			if closed {
				text.WriteString(cur[off : end+3])
				return k, end + 3, t.emitString(text.String(), start, Pos{k + 1, end + 3}, i, k)
			}
			text.WriteString(cur[off:])
			k++
			if k >= len(t.lines) {
				return i, 0, &TokenizeError{Msg: "EOF in multi-line string", Pos: start}
			}
			off = 0
		}
	}

	text.WriteByte(quote)
	k, off := i, j+1
	for {
		cur := t.lines[k]
		if off >= len(cur) || cur[off] == '\n' || (cur[off] == '\r' && restIsNewline(cur, off)) {
			return i, 0, &TokenizeError{Msg: "EOL in single-quoted string", Pos: start}
		}
		if cur[off] == '\\' {
			if restIsNewline(cur, off+1) {
				// Escaped newline: the literal continues on the next line.
				text.WriteString(cur[off:])
				k++
				if k >= len(t.lines) {
					return i, 0, &TokenizeError{Msg: "EOF in multi-line string", Pos: start}
				}
				off = 0
				continue
			}
			text.WriteString(cur[off : off+2])
			off += 2
			continue
		}
		if cur[off] == quote {
			text.WriteByte(quote)
			return k, off + 1, t.emitString(text.String(), start, Pos{k + 1, off + 1}, i, k)
		}
		text.WriteByte(cur[off])
		off++
	}
}

// emitString appends a STRING token whose Line field joins all spanned
// physical lines.
func (t *tokenizer) emitString(text string, start, end Pos, firstLine, lastLine int) error {
	t.emit(String, text, start, end, strings.Join(t.lines[firstLine:lastLine+1], ""))
	return nil
}

// findCloser looks for count consecutive quote characters in line at or
// after off, honouring backslash escapes. It returns the index of the first
// quote of the closer.
func findCloser(line string, off int, quote byte, count int) (bool, int) {
	for k := off; k < len(line); k++ {
		if line[k] == '\\' {
			k++
			continue
		}
		if line[k] == quote && k+count <= len(line) && line[k:k+count] == strings.Repeat(string(quote), count) {
			return true, k
		}
	}
	return false, 0
}

func (t *tokenizer) scanNumber(i, pos int) int {
	line := t.lines[i]
	j := pos
	hex := strings.HasPrefix(line[j:], "0x") || strings.HasPrefix(line[j:], "0X")
	for j < len(line) {
		c := line[j]
		switch {
		case c >= '0' && c <= '9' || c == '.' || c == '_':
			j++
		case (c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z') &&
			(hex || strings.ContainsRune("eEjJlLxXoObB", rune(c))):
			j++
		case (c == '+' || c == '-') && !hex && j > pos &&
			(line[j-1] == 'e' || line[j-1] == 'E'):
			j++
		default:
			t.emit(Number, line[pos:j], Pos{i + 1, pos}, Pos{i + 1, j}, line)
			return j
		}
	}
	t.emit(Number, line[pos:j], Pos{i + 1, pos}, Pos{i + 1, j}, line)
	return j
}

func (t *tokenizer) scanName(i, pos int) int {
	line := t.lines[i]
	j := pos
	for j < len(line) {
		r, size := utf8.DecodeRuneInString(line[j:])
		if r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) {
			j += size
			continue
		}
		break
	}
	t.emit(Name, line[pos:j], Pos{i + 1, pos}, Pos{i + 1, j}, line)
	return j
}

func (t *tokenizer) scanOp(i, pos int) int {
	line := t.lines[i]
	for _, op := range operators {
		if strings.HasPrefix(line[pos:], op) {
			switch op {
			case "(", "[", "{":
				t.depth++
			case ")", "]", "}":
				if t.depth > 0 {
					t.depth--
				}
			}
			t.emit(Op, op, Pos{i + 1, pos}, Pos{i + 1, pos + len(op)}, line)
			return pos + len(op)
		}
	}
	// Unknown character: pass it through as a one-byte operator token so a
	// single stray glyph does not abort the whole analysis.
	t.emit(Op, line[pos:pos+1], Pos{i + 1, pos}, Pos{i + 1, pos + 1}, line)
	return pos + 1
}

// closeStream synthesizes the trailing NEWLINE for sources missing a final
// terminator, unwinds the indent stack and appends the end marker.
func (t *tokenizer) closeStream() {
	endRow := len(t.lines) + 1
	for k := len(t.tokens) - 1; k >= 0; k-- {
		tk := t.tokens[k]
		if tk.Type == Comment || tk.Type == NL {
			continue
		}
		if tk.Type != Newline && tk.Type != Indent && tk.Type != Dedent {
			last := t.lines[len(t.lines)-1]
			t.emit(Newline, "", Pos{len(t.lines), len(last)}, Pos{len(t.lines), len(last) + 1}, last)
		}
		break
	}
	for len(t.indents) > 1 {
		t.indents = t.indents[:len(t.indents)-1]
		t.emit(Dedent, "", Pos{endRow, 0}, Pos{endRow, 0}, "")
	}
	t.emit(EndMarker, "", Pos{endRow, 0}, Pos{endRow, 0}, "")
}

func (t *tokenizer) emit(typ Type, text string, start, end Pos, line string) {
	t.tokens = append(t.tokens, Token{Type: typ, Text: text, Start: start, End: end, Line: line})
}

func restIsNewline(line string, pos int) bool {
	rest := line[pos:]
	return rest == "" || rest == "\n" || rest == "\r\n" || rest == "\r"
}

// isStringStart reports whether line[pos:] begins a string literal prefix
// (r, u, b, f and two-letter combinations) immediately followed by a quote.
func isStringStart(line string, pos int) bool {
	j := pos
	for j < len(line) && j-pos < 3 {
		c := line[j]
		if c == '\'' || c == '"' {
			return j > pos && validStringPrefix(line[pos:j])
		}
		if !isPrefixLetter(c) {
			return false
		}
		j++
	}
	return false
}

func isPrefixLetter(c byte) bool {
	switch c {
	case 'r', 'R', 'u', 'U', 'b', 'B', 'f', 'F':
		return true
	default:
		return false
	}
}

func validStringPrefix(p string) bool {
	switch strings.ToLower(p) {
	case "r", "u", "b", "f", "br", "rb", "fr", "rf", "ur":
		return true
	default:
		return false
	}
}

func isIdentStart(line string, pos int) bool {
	r, _ := utf8.DecodeRuneInString(line[pos:])
	return r == '_' || unicode.IsLetter(r)
}
