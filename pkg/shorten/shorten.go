// Package shorten rewrites over-long source lines. Given a long line and
// its neighbours it produces at most one rewrite (plus an optional change
// to the following line), picking the best-scoring candidate from breaks at
// operators, comment relocation and string splitting.
package shorten

import (
	"strings"

	"github.com/yaklabco/gopyfix/pkg/pysyntax"
	"github.com/yaklabco/gopyfix/pkg/pytoken"
)

// Options configures a Shortener.
type Options struct {
	MaxLength  int
	EOL        string
	IndentWord string

	// IsDocString marks the line as part of a documentation string, which
	// uses plain text wrapping instead of token-based splitting.
	IsDocString bool
}

// Shortener shortens a single line given its immediate neighbours. It holds
// no persistent state; one instance serves one long-line issue.
type Shortener struct {
	text     string
	prevText string
	nextText string
	opts     Options
}

// New creates a shortener for curLine with its surrounding lines.
func New(curLine, prevLine, nextLine string, opts Options) *Shortener {
	if opts.MaxLength == 0 {
		opts.MaxLength = 79
	}
	if opts.EOL == "" {
		opts.EOL = "\n"
	}
	if opts.IndentWord == "" {
		opts.IndentWord = "    "
	}
	return &Shortener{text: curLine, prevText: prevLine, nextText: nextLine, opts: opts}
}

// Shorten attempts to shorten the wrapped line. It returns whether a
// rewrite was found, the replacement text for the line, and the replacement
// for the next line (empty when the next line is unaffected; a single space
// means "make the next line empty").
func (s *Shortener) Shorten() (bool, string, string) {
	// Whole-line comments are word-wrapped or trimmed.
	if strings.HasPrefix(strings.TrimLeft(s.text, " \t"), "#") {
		lastComment := !strings.HasPrefix(strings.TrimLeft(s.nextText, " \t"), "#")
		newText := s.shortenComment(lastComment)
		if newText == s.text {
			return false, "", ""
		}
		return true, newText, ""
	}
	if strings.Contains(s.text, "#") {
		// Move the trailing comment onto its own following line.
		pos := strings.LastIndex(s.text, "#")
		newText := strings.TrimRight(s.text[:pos], " \t") + s.opts.EOL +
			indentOf(s.text) + s.text[pos:]
		if newText == s.text {
			return false, "", ""
		}
		return true, newText, ""
	}

	if s.opts.IsDocString {
		return s.shortenDocString()
	}

	indent := indentOf(s.text)
	source := s.text[len(indent):]

	tokens, err := pytoken.Tokenize(source)
	if err != nil {
		if strings.HasSuffix(strings.TrimRight(source, " \t\r\n"), "\\") {
			// Join the continuation line; a later pass shortens the result
			// once it tokenizes cleanly.
			rs := strings.TrimRight(source, " \t\r\n")
			newText := indent + strings.TrimRight(rs[:len(rs)-1], " \t") + " " +
				strings.TrimLeft(s.nextText, " \t")
			newNext := indent
			if newNext == "" {
				newNext = " "
			}
			return true, newText, newNext
		}
		if newText, newNext, ok := s.breakMultiline(); ok {
			return true, newText, newNext
		}
		return false, "", ""
	}

	// Put a return expression on its own line; the next pass shortens it.
	if strings.HasPrefix(source, "return ") {
		newText := indent + "return (" + s.opts.EOL +
			indent + s.opts.IndentWord + strings.TrimPrefix(source, "return ") +
			indent + ")" + s.opts.EOL
		return true, newText, ""
	}

	candidates := s.shortenAtTokens(tokens, source, indent)
	if len(candidates) > 0 {
		best := s.pickBest(candidates)
		if best == s.text {
			return false, "", ""
		}
		return true, best, ""
	}

	return s.shortenStringAssignment(indent)
}

// shortenDocString breaks a documentation-string line at the last space
// fitting the limit, merging the remainder into the next line unless that
// line opens a parameter-doc block.
func (s *Shortener) shortenDocString() (bool, string, string) {
	source := strings.TrimRight(s.text, " \t\r\n")
	blank := strings.LastIndex(source, " ")
	for blank > s.opts.MaxLength && blank != -1 {
		blank = strings.LastIndex(source[:blank], " ")
	}
	if blank == -1 {
		return false, "", ""
	}
	first := s.text[:blank]
	second := strings.TrimLeft(s.text[blank:], " \t")
	var newText, newNext string
	if strings.TrimSpace(s.nextText) != "" {
		if strings.HasPrefix(strings.TrimLeft(s.nextText, " \t"), "@") {
			// Parameter-doc marker follows: give the remainder its own line.
			newText = first + s.opts.EOL + indentOf(first) + s.opts.IndentWord + second
		} else {
			newText = first + s.opts.EOL
			newNext = indentOf(s.nextText) + strings.TrimRight(second, " \t\r\n") +
				" " + strings.TrimLeft(s.nextText, " \t")
		}
	} else {
		newText = first + s.opts.EOL + indentOf(first) + second
	}
	return true, newText, newNext
}

// shortenComment word-wraps prose comments, trims decoration runs and
// leaves anything else untouched.
func (s *Shortener) shortenComment(isLast bool) string {
	if len(s.text) <= s.opts.MaxLength {
		return s.text
	}
	newText := strings.TrimRight(s.text, " \t\r\n")

	// Comment text is capped at 72 characters past the comment marker.
	indentation := indentOf(newText) + "# "
	maxLength := min(s.opts.MaxLength, len(indentation)+72)

	const minCharacterRepeat = 5
	last := newText[len(newText)-1]
	if len(newText)-len(strings.TrimRight(newText, string(last))) >= minCharacterRepeat &&
		!isAlnum(last) {
		// Trim decoration runs like ---------.
		return newText[:maxLength] + s.opts.EOL
	}
	if isLast && looksLikeProse(newText) {
		wrapped := wrapWords(strings.TrimLeft(newText, " \t#"), indentation, maxLength)
		return strings.Join(wrapped, s.opts.EOL) + s.opts.EOL
	}
	return newText + s.opts.EOL
}

// breakMultiline splits a line that is part of a multi-line construct,
// either right after an opening bracket that follows a trailing comma or
// percent, or at the last fitting space.
func (s *Shortener) breakMultiline() (string, string, bool) {
	indentation := indentOf(s.text)

	for _, symbol := range "([{" {
		if strings.ContainsRune(s.text, symbol) &&
			strings.TrimSpace(s.text) != string(symbol) &&
			hasSuffixAny(strings.TrimRight(s.text, " \t\r\n"), ",", "%") {
			index := 1 + strings.IndexRune(s.text, symbol)
			if index <= len(s.opts.IndentWord)+len(indentation) {
				continue
			}
			if probablyInsideStringOrComment(s.text, index-1) {
				continue
			}
			return strings.TrimRight(s.text[:index], " \t") + s.opts.EOL +
				indentation + s.opts.IndentWord +
				strings.TrimLeft(s.text[index:], " \t"), "", true
		}
	}

	blank := strings.LastIndex(s.text, " ")
	for blank > s.opts.MaxLength && blank != -1 {
		blank = strings.LastIndex(s.text[:blank], " ")
	}
	if blank == -1 {
		return "", "", false
	}
	first := s.text[:blank]
	second := strings.TrimSpace(s.text[blank:])
	newText := first + s.opts.EOL
	var newNext string
	if strings.TrimSpace(s.nextText) != "" {
		if strings.HasSuffix(second, ")") {
			// Don't merge with the next line.
			newText += indentOf(first) + second + s.opts.EOL
		} else {
			newNext = indentOf(s.nextText) + second + " " +
				strings.TrimLeft(s.nextText, " \t")
		}
	} else {
		newNext = indentOf(s.nextText) + second + s.opts.EOL +
			strings.TrimLeft(s.nextText, " \t")
	}
	return newText, newNext, true
}

// shortenAtTokens enumerates candidate split points: before a trailing
// comment, or after any operator except a keyword equals. Each candidate is
// syntax-checked before being admitted.
func (s *Shortener) shortenAtTokens(tokens []pytoken.Token, source, indent string) []string {
	var candidates []string

	for _, tk := range tokens {
		if tk.Type == pytoken.Comment &&
			!strings.HasSuffix(strings.TrimRight(s.prevText, " \t\r\n"), "\\") {
			// Move the inline comment to the previous line.
			offset := tk.Start.Col
			if offset > len(source) {
				continue
			}
			first := source[:offset]
			second := source[offset:]
			candidates = append(candidates,
				indent+strings.TrimSpace(second)+s.opts.EOL+
					indent+strings.TrimSpace(first)+s.opts.EOL)
			continue
		}
		if tk.Type != pytoken.Op || tk.Text == "=" {
			// Breaking at '=' after a keyword violates the style rules.
			continue
		}

		offset := tk.Start.Col + 1
		if offset > len(source) {
			continue
		}
		first := source[:offset]

		secondIndent := indent
		switch {
		case strings.HasSuffix(strings.TrimRight(first, " \t"), "("):
			secondIndent += s.opts.IndentWord
		case strings.Contains(first, "("):
			secondIndent += strings.Repeat(" ", 1+strings.Index(first, "("))
		default:
			secondIndent += s.opts.IndentWord
		}
		second := secondIndent + strings.TrimLeft(source[offset:], " \t")
		if strings.TrimSpace(second) == "" {
			continue
		}
		if strings.HasPrefix(strings.TrimLeft(second, " \t"), ",") {
			continue
		}
		if strings.HasSuffix(strings.TrimRight(first, " \t"), ".") {
			continue
		}

		var newText string
		if len(tk.Text) == 1 && strings.Contains("+-*/,", tk.Text) {
			newText = first + " \\" + s.opts.EOL + second
		} else {
			newText = first + s.opts.EOL + second
		}

		if pysyntax.Valid(s.normalizeMultiline(newText)) {
			candidates = append(candidates, indent+newText)
		}
	}

	return candidates
}

// shortenStringAssignment breaks a quoted string at the last fitting space
// into a backslash-continued concatenation of two literals.
func (s *Shortener) shortenStringAssignment(indent string) (bool, string, string) {
	source := s.text
	rs := strings.TrimRight(source, " \t\r\n")
	if !hasSuffixAny(rs, "'", "\"") || !strings.Contains(source, " ") {
		return false, "", ""
	}
	var quote string
	if hasSuffixAny(rs, "\"\"\"", "'''") {
		quote = rs[len(rs)-3:]
	} else {
		quote = rs[len(rs)-1:]
	}
	blank := strings.LastIndex(source, " ")
	maxLen := s.opts.MaxLength - 2 - len(quote)
	for blank > maxLen && blank != -1 {
		blank = strings.LastIndex(source[:blank], " ")
	}
	if blank == -1 {
		return false, "", ""
	}
	var first, second string
	if strings.HasPrefix(source[blank+1:], quote) {
		first = source[:maxLen]
		second = source[maxLen:]
	} else {
		first = source[:blank]
		second = source[blank+1:]
	}
	return true,
		first + quote + " \\" + s.opts.EOL +
			indent + s.opts.IndentWord + quote + second,
		""
}

// normalizeMultiline patches fragments that are only valid inside a larger
// construct (dict entries, def headers) so they can be syntax-checked in
// isolation.
func (s *Shortener) normalizeMultiline(text string) string {
	for _, quote := range []string{"'", "\""} {
		if matchesDictEntry(text, quote) {
			if !strings.HasSuffix(strings.TrimSpace(text), "}") {
				text += "}"
			}
			return "{" + text
		}
	}

	if strings.HasPrefix(text, "def ") &&
		strings.HasSuffix(strings.TrimRight(text, " \t\r\n"), ":") {
		// A lone ':' is invalid; strip the header decoration instead.
		parts := strings.Split(text, s.opts.EOL)
		lonely := false
		for _, item := range parts {
			t := strings.TrimSpace(item)
			if t == ":" || t == "def" {
				lonely = true
			}
		}
		if !lonely {
			return strings.TrimSuffix(strings.TrimSpace(text[len("def"):]), ":")
		}
	}

	return text
}

// pickBest ranks the candidates (with the unmodified original included as a
// dispreferred fallback) and returns the lowest-scoring one.
func (s *Shortener) pickBest(candidates []string) string {
	seen := map[string]bool{s.text: true}
	all := []string{s.text}
	for _, c := range candidates {
		if !seen[c] {
			seen[c] = true
			all = append(all, c)
		}
	}
	best := all[0]
	bestRank := s.rank(best)
	for _, c := range all[1:] {
		r := s.rank(c)
		if r < bestRank || (r == bestRank && c < best) {
			best = c
			bestRank = r
		}
	}
	return best
}
