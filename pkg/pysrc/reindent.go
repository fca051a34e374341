package pysrc

import (
	"strings"

	"github.com/yaklabco/gopyfix/pkg/pytoken"
)

// Reindenter normalizes badly indented code to uniform four-space
// indentation. It simulates a full-file re-indent: for every statement and
// comment line it records the nesting level the tokenizer saw, then rewrites
// each run of lines so the observed leading-space count maps onto the
// canonical level. Comment lines (level unknown to the tokenizer) reuse the
// mapping of the most recent line with the same observed indent, adopt the
// indentation of the following real statement, or shift along with a
// previous statement as a hanging comment.
type Reindenter struct {
	raw   []string
	lines []string // index 0 unused so rows match tokenize's 1-based numbering
	after []string
}

// lineStat pairs a 1-based line number with its indent level. A level of -1
// marks a comment line whose level must be resolved heuristically.
type lineStat struct {
	line  int
	level int
}

// NewReindenter creates a reindenter over the given physical lines.
func NewReindenter(sourceLines []string) *Reindenter {
	lines := make([]string, 0, len(sourceLines)+1)
	lines = append(lines, "")
	for _, line := range sourceLines {
		lines = append(lines, strings.TrimRight(ExpandTabs(line), " \t\r\n")+"\n")
	}
	raw := make([]string, len(sourceLines))
	copy(raw, sourceLines)
	return &Reindenter{raw: raw, lines: lines}
}

// Run performs the re-indent simulation. It reports whether the rewritten
// program differs from the input; on tokenize failure nothing is produced.
func (r *Reindenter) Run() bool {
	stats, ok := r.genStats()
	if !ok {
		return false
	}

	lines := r.lines
	for len(lines) > 1 && lines[len(lines)-1] == "\n" {
		lines = lines[:len(lines)-1]
	}
	stats = append(stats, lineStat{line: len(lines), level: 0})

	have2want := make(map[int]int)
	var after []string

	first := stats[0].line
	after = append(after, lines[1:min(first, len(lines))]...)
	for i := 0; i < len(stats)-1; i++ {
		thisStmt, thisLevel := stats[i].line, stats[i].level
		nextStmt := stats[i+1].line
		if thisStmt >= len(lines) {
			break
		}
		have := LeadingSpaces(lines[thisStmt])
		want := thisLevel * 4
		if want < 0 {
			want = r.commentWant(stats, i, have, have2want, after, lines)
		}
		have2want[have] = want
		diff := want - have
		end := min(nextStmt, len(lines))
		if diff == 0 || have == 0 {
			after = append(after, lines[thisStmt:end]...)
		} else {
			for _, line := range lines[thisStmt:end] {
				if diff > 0 {
					if line == "\n" {
						after = append(after, line)
					} else {
						after = append(after, strings.Repeat(" ", diff)+line)
					}
				} else {
					remove := min(LeadingSpaces(line), -diff)
					after = append(after, line[remove:])
				}
			}
		}
	}
	r.after = after

	if len(r.raw) != len(after) {
		return true
	}
	for i := range after {
		if r.raw[i] != after[i] {
			return true
		}
	}
	return false
}

// commentWant resolves the target indent for a comment line.
func (r *Reindenter) commentWant(
	stats []lineStat, i, have int,
	have2want map[int]int, after, lines []string,
) int {
	if have == 0 {
		return 0
	}
	want, ok := have2want[have]
	if !ok {
		want = -1
	}
	if want < 0 {
		// Probably belongs to the next real statement.
		for j := i + 1; j < len(stats)-1; j++ {
			if stats[j].level >= 0 {
				if stats[j].line < len(lines) && have == LeadingSpaces(lines[stats[j].line]) {
					want = stats[j].level * 4
				}
				break
			}
		}
	}
	if want < 0 {
		// Hanging comment: shift it like its base line got shifted.
		for j := i - 1; j >= 0; j-- {
			if stats[j].level >= 0 {
				if stats[j].line-1 < len(after) && stats[j].line < len(lines) {
					want = have +
						LeadingSpaces(after[stats[j].line-1]) -
						LeadingSpaces(lines[stats[j].line])
				}
				break
			}
		}
	}
	if want < 0 {
		want = have
	}
	return want
}

// FixedLine returns the rewritten line at the 0-based index. The second
// return value is false when the index lies beyond the rewritten program.
func (r *Reindenter) FixedLine(i int) (string, bool) {
	if i < 0 || i >= len(r.after) {
		return "", false
	}
	return r.after[i], true
}

// genStats tokenizes the normalized lines and records one (line, level)
// entry per statement and per comment line that opens a fresh statement
// position.
func (r *Reindenter) genStats() ([]lineStat, bool) {
	tokens, err := pytoken.Tokenize(strings.Join(r.lines[1:], ""))
	if err != nil {
		return nil, false
	}
	findStmt := true
	level := 0
	var stats []lineStat
	for _, tk := range tokens {
		switch tk.Type {
		case pytoken.Newline:
			findStmt = true
		case pytoken.Indent:
			findStmt = true
			level++
		case pytoken.Dedent:
			findStmt = true
			level--
		case pytoken.Comment:
			if findStmt {
				stats = append(stats, lineStat{line: tk.Start.Row, level: -1})
				// Still looking for the next real statement.
			}
		case pytoken.NL:
			// Transparent.
		default:
			if findStmt {
				findStmt = false
				if tk.Line != "" {
					stats = append(stats, lineStat{line: tk.Start.Row, level: level})
				}
			}
		}
	}
	return stats, true
}
