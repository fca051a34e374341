package shorten

import (
	"regexp"
	"strings"
)

var proseComment = regexp.MustCompile(`^\s*#+\s*\w+`)

func looksLikeProse(line string) bool {
	return proseComment.MatchString(line)
}

func indentOf(line string) string {
	return line[:len(line)-len(strings.TrimLeft(line, " \t"))]
}

func hasSuffixAny(s string, suffixes ...string) bool {
	for _, suffix := range suffixes {
		if strings.HasSuffix(s, suffix) {
			return true
		}
	}
	return false
}

func isAlnum(b byte) bool {
	return b >= '0' && b <= '9' || b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z'
}

// probablyInsideStringOrComment reports whether a quote or comment marker
// opens before index, meaning a bracket found there is likely literal text.
func probablyInsideStringOrComment(line string, index int) bool {
	for _, marker := range []string{"\"", "'", "#"} {
		pos := strings.Index(line, marker)
		if pos != -1 && pos <= index {
			return true
		}
	}
	return false
}

// matchesDictEntry reports whether text looks like the start of a dict
// literal entry: a quoted key followed by a colon.
func matchesDictEntry(text, quote string) bool {
	pattern := "^" + quote + "[^" + quote + "]*" + quote + " *: *"
	re, err := regexp.Compile(pattern)
	if err != nil {
		return false
	}
	return re.MatchString(text)
}

// wrapWords greedily fills lines up to width, prefixing each with indent.
// Words longer than the width are kept whole on their own line.
func wrapWords(text, indent string, width int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}
	var result []string
	current := indent + words[0]
	for _, word := range words[1:] {
		if len(current)+1+len(word) > width {
			result = append(result, current)
			current = indent + word
			continue
		}
		current += " " + word
	}
	result = append(result, current)
	return result
}
