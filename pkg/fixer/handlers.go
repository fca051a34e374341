package fixer

import (
	"regexp"
	"strings"

	"github.com/yaklabco/gopyfix/pkg/pysrc"
	"github.com/yaklabco/gopyfix/pkg/shorten"
)

func rstrip(s string) string {
	return strings.TrimRight(s, " \t\r\n\f\v")
}

func lstrip(s string) string {
	return strings.TrimLeft(s, " \t\r\n\f\v")
}

func startsWithAny(s string, prefixes ...string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}

func endsWithAny(s string, suffixes ...string) bool {
	for _, suffix := range suffixes {
		if strings.HasSuffix(s, suffix) {
			return true
		}
	}
	return false
}

// rsplit1 splits s at the last occurrence of sep.
func rsplit1(s, sep string) (string, string) {
	idx := strings.LastIndex(s, sep)
	if idx < 0 {
		return s, ""
	}
	return s[:idx], s[idx+len(sep):]
}

// fixWhitespace rewrites the whitespace run at offset to replacement.
// Comment text is left alone.
func fixWhitespace(line string, offset int, replacement string) string {
	if offset < 0 {
		offset = 0
	}
	if offset > len(line) {
		offset = len(line)
	}
	left := strings.TrimRight(line[:offset], " \t")
	right := strings.TrimLeft(line[offset:], " \t")
	if strings.HasPrefix(right, "#") {
		return line
	}
	return left + replacement + right
}

// getLogical returns the logical line containing the issue position.
func (f *Fixer) getLogical(line, pos int) (pysrc.LogicalLine, bool) {
	return pysrc.LogicalLineAt(f.source, line, pos)
}

// fixReindent corrects a continuation line by replacing its initial indent
// with the first acceptable indent computed for its row.
func (f *Fixer) fixReindent(line, pos int, logical pysrc.LogicalLine) bool {
	cont, err := pysrc.NewContinuation(logical.Lines)
	if err != nil {
		return false
	}
	validIndents := cont.ExpectedIndents()
	if len(cont.RelIndent) == 0 {
		return false
	}

	ls := logical.Start
	if line <= ls.Row {
		return false
	}
	row := line - ls.Row - 1
	if row >= len(validIndents) || row >= len(cont.RelIndent) {
		return false
	}
	valid := validIndents[row]
	got := cont.RelIndent[row]

	indentTo := valid[0]
	if got == indentTo {
		return false
	}

	lineIndex := ls.Row + row
	origLine := f.source.Line(lineIndex)
	newLine := strings.Repeat(" ", indentTo) + strings.TrimLeft(origLine, " \t")
	if newLine == origLine {
		return false
	}
	f.source.SetLine(lineIndex, newLine)
	return true
}

// multilineStringLines lazily classifies rows inside multi-line strings.
// The result is cached; later edits do not refresh it.
func (f *Fixer) multilineStringLines() (multi, doc map[int]bool) {
	if f.multiLines == nil {
		f.multiLines, f.docLines = pysrc.MultilineStringLines(f.source.Join())
	}
	return f.multiLines, f.docLines
}

var docQuoteRe = regexp.MustCompile(`^\s*[ru]?('''|'|")`)

// fixD111 rewrites a docstring's quotes to triple double quotes.
func (f *Fixer) fixD111(code Code, line, pos int, apply bool) (int, Message, int) {
	line--
	m := docQuoteRe.FindStringSubmatch(f.source.Line(line))
	if m == nil {
		return NotFixed, Message{}, 0
	}
	quotes := m[1]
	left, right, _ := strings.Cut(f.source.Line(line), quotes)
	f.source.SetLine(line, left+`"""`+right)
	for line < f.source.Len() {
		if strings.HasSuffix(rstrip(f.source.Line(line)), quotes) {
			left, right = rsplit1(f.source.Line(line), quotes)
			f.source.SetLine(line, left+`"""`+right)
			break
		}
		line++
	}
	return Applied, msg("FD111"), 0
}

// fixD112 adds the raw/unicode marker in front of the leading quotes.
func (f *Fixer) fixD112(code Code, line, pos int, apply bool) (int, Message, int) {
	line--
	var insertChar string
	switch code {
	case "D112":
		insertChar = "r"
	case "D113":
		insertChar = "u"
	default:
		return NotFixed, Message{}, 0
	}
	text := f.source.Line(line)
	f.source.SetLine(line, pysrc.IndentOf(text)+insertChar+lstrip(text))
	return Applied, msg("FD112", insertChar), 0
}

// fixD121 joins a single-line docstring spread over several lines.
func (f *Fixer) fixD121(code Code, line, pos int, apply bool) (int, Message, int) {
	if !apply {
		return f.deferToStack(code, line, pos)
	}
	line--
	if !startsWithAny(lstrip(f.source.Line(line)), `"""`, `r"""`, `u"""`) {
		// Only correctly formatted docstrings are joined.
		return NotFixed, Message{}, 0
	}
	if line+2 >= f.source.Len() {
		return NotFixed, Message{}, 0
	}

	docstring := rstrip(f.source.Line(line)) + strings.TrimSpace(f.source.Line(line+1))
	if strings.HasSuffix(docstring, `"""`) {
		docstring += f.eol
	} else {
		docstring += lstrip(f.source.Line(line + 2))
		f.source.SetLine(line+2, "")
	}
	f.source.SetLine(line, docstring)
	f.source.SetLine(line+1, "")
	return Applied, msg("FD121"), 0
}

// fixD131 appends the missing period to a docstring summary line.
func (f *Fixer) fixD131(code Code, line, pos int, apply bool) (int, Message, int) {
	line--
	text := f.source.Line(line)
	newText := ""
	if endsWithAny(rstrip(text), `"""`, "'''") &&
		startsWithAny(lstrip(text), `"""`, `r"""`, `u"""`) {
		rs := rstrip(text)
		newText = rstrip(rs[:len(rs)-3]) + "." + rs[len(rs)-3:] + f.eol
	} else if line < f.source.Len()-1 {
		next := f.source.Line(line + 1)
		if strings.TrimSpace(next) == "" ||
			strings.HasPrefix(lstrip(next), "@") ||
			((strings.TrimSpace(next) == `"""` || strings.TrimSpace(next) == "'''") &&
				!strings.HasPrefix(lstrip(text), "@")) {
			newText = rstrip(text) + "." + f.eol
		}
	}
	if newText == "" {
		return NotFixed, Message{}, 0
	}
	f.source.SetLine(line, newText)
	return Applied, msg("FD131"), 0
}

// fixD141 removes the blank line before a function docstring.
func (f *Fixer) fixD141(code Code, line, pos int, apply bool) (int, Message, int) {
	if !apply {
		return f.deferToStack(code, line, pos)
	}
	line--
	f.source.SetLine(line-1, "")
	return Applied, msg("FD141"), 0
}

// fixD142 inserts a blank line before a class docstring.
func (f *Fixer) fixD142(code Code, line, pos int, apply bool) (int, Message, int) {
	if !apply {
		return f.deferToStack(code, line, pos)
	}
	line--
	f.source.SetLine(line, f.eol+f.source.Line(line))
	return Applied, msg("FD142"), 0
}

// fixD143 inserts a blank line after a class docstring.
func (f *Fixer) fixD143(code Code, line, pos int, apply bool) (int, Message, int) {
	if !apply {
		return f.deferToStack(code, line, pos)
	}
	line--
	f.source.SetLine(line, f.source.Line(line)+f.eol)
	return Applied, msg("FD143"), 0
}

// fixD144 inserts a blank line after the docstring summary.
func (f *Fixer) fixD144(code Code, line, pos int, apply bool) (int, Message, int) {
	if !apply {
		return f.deferToStack(code, line, pos)
	}
	line--
	if !strings.HasSuffix(rstrip(f.source.Line(line)), ".") {
		// Only completed summary lines can be fixed here.
		return NotFixed, Message{}, 0
	}
	f.source.SetLine(line, f.source.Line(line)+f.eol)
	return Applied, msg("FD144"), 0
}

// fixD145 inserts a blank line before the last docstring paragraph.
func (f *Fixer) fixD145(code Code, line, pos int, apply bool) (int, Message, int) {
	if !apply {
		return f.deferToStack(code, line, pos)
	}
	line--
	f.source.SetLine(line, f.eol+f.source.Line(line))
	return Applied, msg("FD145"), 0
}

// fixD221 puts leading (D221) or trailing (D222) docstring quotes on their
// own line.
func (f *Fixer) fixD221(code Code, line, pos int, apply bool) (int, Message, int) {
	if !apply {
		return f.deferToStack(code, line, pos)
	}
	line--
	indent := pysrc.IndentOf(f.source.Line(line))
	source := strings.TrimSpace(f.source.Line(line))
	var first, second string
	if code == "D221" {
		if startsWithAny(source, "r", "u") {
			first, second = source[:4], strings.TrimSpace(source[4:])
		} else {
			first, second = source[:3], strings.TrimSpace(source[3:])
		}
	} else {
		first, second = strings.TrimSpace(source[:len(source)-3]), source[len(source)-3:]
	}
	f.source.SetLine(line, indent+first+f.eol+indent+second+f.eol)
	if code == "D221" {
		return Applied, msg("FD221"), 0
	}
	return Applied, msg("FD222"), 0
}

// fixD242 removes the blank line before a class (D242) or function (D244)
// docstring.
func (f *Fixer) fixD242(code Code, line, pos int, apply bool) (int, Message, int) {
	if !apply {
		return f.deferToStack(code, line, pos)
	}
	line--
	f.source.SetLine(line-1, "")
	if code == "D242" {
		return Applied, msg("FD242"), 0
	}
	return Applied, msg("FD244"), 0
}

// fixD243 removes the blank line after a class (D243) or function (D245)
// docstring.
func (f *Fixer) fixD243(code Code, line, pos int, apply bool) (int, Message, int) {
	if !apply {
		return f.deferToStack(code, line, pos)
	}
	line--
	f.source.SetLine(line+1, "")
	if code == "D243" {
		return Applied, msg("FD243"), 0
	}
	return Applied, msg("FD245"), 0
}

// fixD247 removes the blank line after the last docstring paragraph.
func (f *Fixer) fixD247(code Code, line, pos int, apply bool) (int, Message, int) {
	if !apply {
		return f.deferToStack(code, line, pos)
	}
	line--
	f.source.SetLine(line-1, "")
	return Applied, msg("FD247"), 0
}

// fixE101 replaces tabs and off-grid indentation using the re-indenter.
func (f *Fixer) fixE101(code Code, line, pos int, apply bool) (int, Message, int) {
	if f.reindenter == nil {
		f.reindenter = pysrc.NewReindenter(f.source.Lines())
		f.reindenter.Run()
	}
	fixedLine, ok := f.reindenter.FixedLine(line - 1)
	if !ok || fixedLine == f.source.Line(line-1) {
		return NotFixed, Message{}, 0
	}
	f.source.SetLine(line-1, fixedLine)
	if code == "E101" || code == "W191" {
		return Applied, msg("FE101"), 0
	}
	return Applied, msg("FE111"), 0
}

// fixE121 adjusts the initial indent of continuation lines and closing
// brackets.
func (f *Fixer) fixE121(code Code, line, pos int, apply bool) (int, Message, int) {
	if !apply {
		return f.deferToLogical(code, line, pos)
	}
	if logical, ok := f.getLogical(line, pos); ok {
		if f.fixReindent(line, pos, logical) {
			if code == "E121" {
				return Applied, msg("FE121"), 0
			}
			return Applied, msg("FE124"), 0
		}
	}
	return NotFixed, Message{}, 0
}

// fixE122 adds the missing indent of a continuation line.
func (f *Fixer) fixE122(code Code, line, pos int, apply bool) (int, Message, int) {
	if !apply {
		return f.deferToLogical(code, line, pos)
	}
	logical, ok := f.getLogical(line, pos)
	if !ok {
		return NotFixed, Message{}, 0
	}
	if !f.fixReindent(line, pos, logical) {
		// Fall back to simply indenting one level deeper.
		line--
		text := f.source.Line(line)
		f.source.SetLine(line, pysrc.IndentOf(text)+f.indentWord+lstrip(text))
	}
	return Applied, msg("FE122"), 0
}

// fixE123 aligns a closing bracket with its opening line.
func (f *Fixer) fixE123(code Code, line, pos int, apply bool) (int, Message, int) {
	if !apply {
		return f.deferToLogical(code, line, pos)
	}
	logical, ok := f.getLogical(line, pos)
	if !ok || len(logical.Lines) == 0 {
		return NotFixed, Message{}, 0
	}
	row := line - 1
	text := f.source.Line(row)
	newText := pysrc.IndentOf(logical.Lines[0]) + lstrip(text)
	changed := false
	if newText == text {
		changed = f.fixReindent(line, pos, logical)
	} else {
		f.source.SetLine(row, newText)
		changed = true
	}
	if changed {
		return Applied, msg("FE123"), 0
	}
	return NotFixed, Message{}, 0
}

// fixE125 indents a continuation line so it differs from the next logical
// line.
func (f *Fixer) fixE125(code Code, line, pos int, apply bool) (int, Message, int) {
	if !apply {
		return f.deferToLogical(code, line, pos)
	}
	logical, ok := f.getLogical(line, pos)
	if !ok {
		return NotFixed, Message{}, 0
	}
	if !f.fixReindent(line, pos, logical) {
		row := line - 1
		text := f.source.Line(row)
		f.source.SetLine(row, pysrc.IndentOf(text)+f.indentWord+lstrip(text))
	}
	return Applied, msg("FE125"), 0
}

// fixE126 corrects over- or under-indented hanging indentation.
func (f *Fixer) fixE126(code Code, line, pos int, apply bool) (int, Message, int) {
	if !apply {
		return f.deferToLogical(code, line, pos)
	}
	logical, ok := f.getLogical(line, pos)
	if !ok || len(logical.Lines) == 0 {
		return NotFixed, Message{}, 0
	}
	row := line - 1
	text := f.source.Line(row)
	newText := pysrc.IndentOf(logical.Lines[0]) + f.indentWord + lstrip(text)
	changed := false
	if newText == text {
		changed = f.fixReindent(line, pos, logical)
	} else {
		f.source.SetLine(row, newText)
		changed = true
	}
	if changed {
		return Applied, msg("FE126"), 0
	}
	return NotFixed, Message{}, 0
}

// fixE127 corrects visual indentation of continuation lines.
func (f *Fixer) fixE127(code Code, line, pos int, apply bool) (int, Message, int) {
	if !apply {
		return f.deferToLogical(code, line, pos)
	}
	logical, ok := f.getLogical(line, pos)
	if !ok || len(logical.Lines) == 0 {
		return NotFixed, Message{}, 0
	}
	row := line - 1
	text := f.source.Line(row)
	newText := text

	first := logical.Lines[0]
	if strings.HasSuffix(rstrip(first), "\\") {
		newText = pysrc.IndentOf(first) + f.indentWord + lstrip(text)
	} else {
		startIndex := -1
		for _, symbol := range "([{" {
			if idx := strings.IndexRune(first, symbol); idx >= 0 {
				if startIndex == -1 || idx+1 < startIndex {
					startIndex = idx + 1
				}
			}
		}
		if startIndex != -1 {
			newText = strings.Repeat(" ", startIndex) + lstrip(text)
		}
	}

	changed := false
	if newText == text {
		changed = f.fixReindent(line, pos, logical)
	} else {
		f.source.SetLine(row, newText)
		changed = true
	}
	if changed {
		return Applied, msg("FE127"), 0
	}
	return NotFixed, Message{}, 0
}

// fixE201 removes extraneous whitespace at the issue position.
func (f *Fixer) fixE201(code Code, line, pos int, apply bool) (int, Message, int) {
	line--
	text := f.source.Line(line)
	if strings.Contains(text, `"""`) || strings.Contains(text, "'''") ||
		strings.HasSuffix(rstrip(text), "\\") {
		return NotFixed, Message{}, 0
	}
	newText := fixWhitespace(text, pos, "")
	if newText == text {
		return NotFixed, Message{}, 0
	}
	f.source.SetLine(line, newText)
	return Applied, msg("FE201"), 0
}

// fixE221 normalizes whitespace around an operator or keyword to a single
// space.
func (f *Fixer) fixE221(code Code, line, pos int, apply bool) (int, Message, int) {
	line--
	text := f.source.Line(line)
	if strings.Contains(text, `"""`) || strings.Contains(text, "'''") ||
		strings.HasSuffix(rstrip(text), "\\") {
		return NotFixed, Message{}, 0
	}
	newText := fixWhitespace(text, pos, " ")
	if newText == text {
		return NotFixed, Message{}, 0
	}
	f.source.SetLine(line, newText)
	return Applied, msg("FE221"), 0
}

// fixE225 adds the missing whitespace around an operator. The operator
// length is scanned from the issue position; only the first five operator
// characters may repeat.
func (f *Fixer) fixE225(code Code, line, pos int, apply bool) (int, Message, int) {
	line--
	text := f.source.Line(line)
	if strings.Contains(text, `"""`) || strings.Contains(text, "'''") ||
		strings.HasSuffix(rstrip(text), "\\") {
		return NotFixed, Message{}, 0
	}

	newText := text
	const operatorChars = "<>*/=^&|%!+-"
	pos2 := pos
	delimiter := len(operatorChars)
	for i := 0; i < 3; i++ {
		if pos2 < len(text) && strings.IndexByte(operatorChars[:delimiter], text[pos2]) >= 0 {
			pos2++
			delimiter = 5
		} else {
			break
		}
	}
	if pos2 < len(text) && text[pos2] != ' ' && text[pos2] != '\t' {
		newText = fixWhitespace(newText, pos2, " ")
	}
	newText = fixWhitespace(newText, pos, " ")
	if newText == text {
		return NotFixed, Message{}, 0
	}
	f.source.SetLine(line, newText)
	return Applied, msg("FE225"), 0
}

// fixE231 inserts the missing whitespace after ',;:'.
func (f *Fixer) fixE231(code Code, line, pos int, apply bool) (int, Message, int) {
	line--
	pos++
	text := f.source.Line(line)
	if pos > len(text) {
		return NotFixed, Message{}, 0
	}
	f.source.SetLine(line, text[:pos]+" "+text[pos:])
	return Applied, msg("FE231"), 0
}

// fixE251 removes whitespace around a default-parameter equals sign,
// handling the escaped-newline form "def foo(a=\".
func (f *Fixer) fixE251(code Code, line, pos int, apply bool) (int, Message, int) {
	line--
	text := f.source.Line(line)
	if len(text) == 0 {
		return NotFixed, Message{}, 0
	}

	// Reported columns can point past the physical line, e.g. foo(bar\n=None).
	col := min(pos, len(text)-1)
	if col < 0 {
		col = 0
	}
	var newText string
	if strings.TrimSpace(string(text[col])) != "" {
		newText = text
	} else {
		newText = strings.TrimRight(text[:col], " \t") + strings.TrimLeft(text[col:], " \t")
	}

	if endsWithAny(newText, "=\\\n", "=\\\r\n", "=\\\r") {
		f.source.SetLine(line, strings.TrimRight(newText, "\n\r \t\\"))
		f.source.SetLine(line+1, lstrip(f.source.Line(line+1)))
	} else {
		f.source.SetLine(line, newText)
	}
	return Applied, msg("FE251"), 0
}

// fixE261 normalizes the whitespace and hash signs around an inline
// comment.
func (f *Fixer) fixE261(code Code, line, pos int, apply bool) (int, Message, int) {
	line--
	text := f.source.Line(line)
	if pos > len(text) {
		pos = len(text)
	}
	left := strings.TrimRight(text[:pos], " \t#")
	right := strings.TrimLeft(text[pos:], " \t#")
	newText := left
	if strings.TrimSpace(right) != "" {
		newText += "  # " + right
	} else {
		newText += right
	}
	f.source.SetLine(line, newText)
	return Applied, msg("FE261"), 0
}

// fixE301 inserts one blank line before the flagged line.
func (f *Fixer) fixE301(code Code, line, pos int, apply bool) (int, Message, int) {
	if !apply {
		return f.deferToStack(code, line, pos)
	}
	f.source.InsertAt(line-1, f.eol)
	return Applied, msg("FE301"), 0
}

// fixE302 makes exactly two blank lines precede the flagged line.
func (f *Fixer) fixE302(code Code, line, pos int, apply bool) (int, Message, int) {
	if !apply {
		return f.deferToStack(code, line, pos)
	}
	index := line - 1
	blanks := 0
	for index > 0 {
		if strings.TrimSpace(f.source.Line(index-1)) == "" {
			blanks++
			index--
		} else {
			break
		}
	}
	delta := blanks - 2

	line--
	switch {
	case delta < 0:
		for ; delta < 0; delta++ {
			f.source.InsertAt(line, f.eol)
		}
		return Applied, msg("FE302+", 2-blanks), 0
	case delta > 0:
		for ; delta > 0; delta-- {
			f.source.DeleteAt(line - 1)
			line--
		}
		return Applied, msg("FE302-", blanks-2), 0
	default:
		return NotFixed, Message{}, 0
	}
}

// fixE303 deletes the blank lines beyond the allowed two.
func (f *Fixer) fixE303(code Code, line, pos int, apply bool) (int, Message, int) {
	if !apply {
		return f.deferToStack(code, line, pos)
	}
	index := line - 3
	for index > 0 && index < f.source.Len() {
		if strings.TrimSpace(f.source.Line(index)) == "" {
			f.source.DeleteAt(index)
			index--
		} else {
			break
		}
	}
	return Applied, msg("FE303"), 0
}

// fixE304 deletes blank lines between a decorator and its function.
func (f *Fixer) fixE304(code Code, line, pos int, apply bool) (int, Message, int) {
	if !apply {
		return f.deferToStack(code, line, pos)
	}
	index := line - 2
	for index > 0 && index < f.source.Len() {
		if strings.TrimSpace(f.source.Line(index)) == "" {
			f.source.DeleteAt(index)
			index--
		} else {
			break
		}
	}
	return Applied, msg("FE304"), 0
}

// fixE401 splits multiple imports on one line.
func (f *Fixer) fixE401(code Code, line, pos int, apply bool) (int, Message, int) {
	if !apply {
		return f.deferToStack(code, line, pos)
	}
	line--
	text := f.source.Line(line)
	if !strings.HasPrefix(lstrip(text), "import") {
		return NotFixed, Message{}, 0
	}
	// A semicolon on the line means the reported column points into an
	// unrelated statement.
	if strings.Contains(text, ";") {
		return NotFixed, Message{}, 0
	}
	if pos > len(text) {
		return NotFixed, Message{}, 0
	}
	newText := strings.TrimRight(text[:pos], "\t ,") + f.eol +
		pysrc.IndentOf(text) + "import " + strings.TrimLeft(text[pos:], "\t ,")
	f.source.SetLine(line, newText)
	return Applied, msg("FE401"), 0
}

// fixE501 shortens an over-long line.
func (f *Fixer) fixE501(code Code, line, pos int, apply bool) (int, Message, int) {
	if !apply {
		return f.deferToStack(code, line, pos)
	}
	_, docStringLines := f.multilineStringLines()
	isDocString := docStringLines[line]
	line--
	text := f.source.Line(line)
	prevText := ""
	if line > 0 {
		prevText = f.source.Line(line - 1)
	}
	nextText := ""
	if line < f.source.Len()-1 {
		nextText = f.source.Line(line + 1)
	}
	shortener := shorten.New(text, prevText, nextText, shorten.Options{
		MaxLength:   f.maxLineLength,
		EOL:         f.eol,
		IndentWord:  f.indentWord,
		IsDocString: isDocString,
	})
	changed, newText, newNextText := shortener.Shorten()
	if !changed {
		return NotFixed, Message{}, 0
	}
	if newText != text {
		f.source.SetLine(line, newText)
	}
	if newNextText != "" && newNextText != nextText {
		if newNextText == " " {
			newNextText = ""
		}
		f.source.SetLine(line+1, newNextText)
	}
	return Applied, msg("FE501"), 0
}

// fixE502 removes the redundant backslash inside brackets.
func (f *Fixer) fixE502(code Code, line, pos int, apply bool) (int, Message, int) {
	f.source.SetLine(line-1,
		strings.TrimRight(f.source.Line(line-1), "\n\r \t\\")+f.eol)
	return Applied, msg("FE502"), 0
}

// fixE701 puts the body of a colon-compound statement on its own line.
func (f *Fixer) fixE701(code Code, line, pos int, apply bool) (int, Message, int) {
	if !apply {
		return f.deferToStack(code, line, pos)
	}
	line--
	text := f.source.Line(line)
	pos++
	if pos > len(text) {
		return NotFixed, Message{}, 0
	}
	newText := text[:pos] + f.eol + pysrc.IndentOf(text) + f.indentWord +
		strings.TrimLeft(text[pos:], "\n\r \t\\") + f.eol
	f.source.SetLine(line, newText)
	return Applied, msg("FE701"), 0
}

// fixE702 splits semicolon-separated statements (E702) and strips the
// trailing semicolon (E703).
func (f *Fixer) fixE702(code Code, line, pos int, apply bool) (int, Message, int) {
	if !apply {
		return f.deferToStack(code, line, pos)
	}
	line--
	text := f.source.Line(line)

	if strings.HasSuffix(rstrip(text), "\\") {
		// Normalize '1; \<eol>2' into '1; 2' first.
		f.source.SetLine(line, strings.TrimRight(text, "\n\r \t\\"))
		f.source.SetLine(line+1, lstrip(f.source.Line(line+1)))
	} else if strings.HasSuffix(rstrip(text), ";") {
		f.source.SetLine(line, strings.TrimRight(text, "\n\r \t;")+f.eol)
	} else {
		if pos > len(text) {
			return NotFixed, Message{}, 0
		}
		first := strings.TrimRight(text[:pos], "\n\r \t;") + f.eol
		second := strings.TrimLeft(text[pos:], "\n\r \t;")
		f.source.SetLine(line, first+pysrc.IndentOf(text)+second)
	}
	return Applied, msg("FE702"), 0
}

// fixE711 rewrites equality comparison against None/True/False to use
// "is" / "is not". Lines where the right side is not one of those literal
// names are left alone.
func (f *Fixer) fixE711(code Code, line, pos int, apply bool) (int, Message, int) {
	line--
	text := f.source.Line(line)

	rightPos := pos + 2
	if rightPos >= len(text) {
		return NotFixed, Message{}, 0
	}

	left := rstrip(text[:pos])
	center := text[pos:rightPos]
	right := lstrip(text[rightPos:])

	if !startsWithAny(right, "None", "True", "False") {
		return NotFixed, Message{}, 0
	}

	switch strings.TrimSpace(center) {
	case "==":
		center = "is"
	case "!=":
		center = "is not"
	default:
		return NotFixed, Message{}, 0
	}

	f.source.SetLine(line, left+" "+center+" "+right)
	return Applied, msg("FE711"), 0
}

// fixN804 inserts the missing cls (N804) or self (N805) first argument.
func (f *Fixer) fixN804(code Code, line, pos int, apply bool) (int, Message, int) {
	if !apply {
		return f.deferToStack(code, line, pos)
	}
	line--
	text := f.source.Line(line)
	arg := "self"
	if code == "N804" {
		arg = "cls"
	}

	var newText string
	if strings.HasSuffix(rstrip(text), "(") {
		newText = text + pysrc.IndentOf(text) + f.indentWord + arg + "," + f.eol
	} else {
		index := strings.Index(text, "(") + 1
		if index == 0 {
			return NotFixed, Message{}, 0
		}
		left := text[:index]
		right := text[index:]
		center := arg + ", "
		if strings.HasPrefix(right, ")") {
			center = arg
		}
		newText = left + center + right
	}
	f.source.SetLine(line, newText)
	return Applied, msg("FN804", arg), 0
}

// fixN806 removes the cls/self first argument of a static method, merging
// a continuation line that held only the argument.
func (f *Fixer) fixN806(code Code, line, pos int, apply bool) (int, Message, int) {
	if !apply {
		return f.deferToStack(code, line, pos)
	}
	line--
	text := f.source.Line(line)
	index := strings.Index(text, "(") + 1
	if index == 0 {
		return NotFixed, Message{}, 0
	}
	left := text[:index]
	right := text[index:]
	var arg string

	if startsWithAny(right, "cls", "self") {
		if strings.HasPrefix(right, "cls") {
			right = right[3:]
			arg = "cls"
		} else {
			right = right[4:]
			arg = "self"
		}
		right = strings.TrimLeft(right, ", ")
		f.source.SetLine(line, left+right)
	} else {
		// The argument sits on the next line.
		line++
		text = f.source.Line(line)
		indent := pysrc.IndentOf(text)
		right = lstrip(text)
		if strings.HasPrefix(right, "cls") {
			right = right[3:]
			arg = "cls"
		} else if strings.HasPrefix(right, "self") {
			right = right[4:]
			arg = "self"
		} else {
			return NotFixed, Message{}, 0
		}
		right = strings.TrimLeft(right, ", ")
		if strings.HasPrefix(right, "):") {
			f.source.SetLine(line-1, rstrip(f.source.Line(line-1))+right)
			f.source.SetLine(line, "")
		} else {
			f.source.SetLine(line, indent+right)
		}
	}
	return Applied, msg("FN806", arg), 0
}

var trailingWhitespaceRe = regexp.MustCompile(`[\t ]+(\r?\n?)$`)

// fixW291 strips trailing whitespace, keeping the line terminator.
func (f *Fixer) fixW291(code Code, line, pos int, apply bool) (int, Message, int) {
	f.source.SetLine(line-1,
		trailingWhitespaceRe.ReplaceAllString(f.source.Line(line-1), "$1"))
	return Applied, msg("FW291"), 0
}

// fixW292 appends the missing newline at the end of the file.
func (f *Fixer) fixW292(code Code, line, pos int, apply bool) (int, Message, int) {
	f.source.SetLine(line-1, f.source.Line(line-1)+f.eol)
	return Applied, msg("FW292"), 0
}

// fixW391 deletes trailing blank lines at the end of the file.
func (f *Fixer) fixW391(code Code, line, pos int, apply bool) (int, Message, int) {
	index := line - 1
	for index > 0 && index < f.source.Len() {
		if strings.TrimSpace(f.source.Line(index)) == "" {
			f.source.DeleteAt(index)
			index--
		} else {
			break
		}
	}
	return Applied, msg("FW391"), 0
}

// fixW603 replaces the deprecated '<>' operator.
func (f *Fixer) fixW603(code Code, line, pos int, apply bool) (int, Message, int) {
	f.source.SetLine(line-1, strings.ReplaceAll(f.source.Line(line-1), "<>", "!="))
	return Applied, msg("FW603"), 0
}
