package shorten

import (
	"regexp"
	"strings"
)

var arithmeticBeforeParen = regexp.MustCompile(`.*[+\-*/] \($`)

// rank scores a candidate rewrite; lower is better. Keeping the original
// unchanged and visually awkward breaks are penalized, trailing percent
// formatting and for-loop lines get a bonus.
func (s *Shortener) rank(candidate string) int {
	rank := 0
	if strings.TrimSpace(candidate) == "" {
		return 100000
	}

	if candidate == s.text {
		rank += 50
	}

	lines := strings.Split(candidate, s.opts.EOL)

	offset := 0
	firstTrimmed := strings.TrimRight(lines[0], " \t")
	if firstTrimmed != "" && !strings.ContainsRune("([{", rune(firstTrimmed[len(firstTrimmed)-1])) {
		for _, symbol := range "([{" {
			offset = max(offset, 1+strings.IndexRune(lines[0], symbol))
		}
	}
	maxLength := 0
	for _, line := range lines {
		maxLength = max(maxLength, offset+len(strings.TrimSpace(line)))
	}
	rank += maxLength
	rank += len(lines)

	if len(lines) > 1 && len(firstTrimmed) > 0 {
		if bad, ok := badBreakStart[firstTrimmed[len(firstTrimmed)-1]]; ok {
			if strings.HasPrefix(strings.TrimLeft(lines[1], " \t"), string(bad)) {
				rank += 20
			}
		}
	}

	if arithmeticBeforeParen.MatchString(lines[0]) {
		rank += 100
	}

	for _, line := range lines {
		for _, badStart := range []string{".", "%", "+", "-", "/"} {
			if strings.HasPrefix(line, badStart) {
				rank += 100
			}
		}
		for _, ending := range "([{" {
			if strings.HasSuffix(line, string(ending)) &&
				len(strings.TrimSpace(line)) <= len(s.opts.IndentWord) {
				rank += 100
			}
		}
		if strings.HasSuffix(line, "%") {
			rank -= 20
		}
		if strings.HasPrefix(strings.TrimLeft(line, " \t"), "for") {
			rank -= 50
		}
		rank += 10 * countUnbalancedBrackets(line)
	}

	return max(0, rank)
}

// badBreakStart maps the character a line ends with to the character the
// following line must not begin with.
var badBreakStart = map[byte]byte{
	'(': ')',
	'[': ']',
	'{': '}',
}

// countUnbalancedBrackets sums, per bracket pair, how far open and close
// counts diverge on one line.
func countUnbalancedBrackets(line string) int {
	count := 0
	for _, pair := range []struct{ open, close string }{
		{"(", ")"}, {"[", "]"}, {"{", "}"},
	} {
		diff := strings.Count(line, pair.open) - strings.Count(line, pair.close)
		if diff < 0 {
			diff = -diff
		}
		count += diff
	}
	return count
}
