// Package diff produces unified diffs between the original and fixed
// rendition of a source file, for dry-run review.
package diff

import (
	"fmt"
	"strings"
)

// LineKind classifies a diff line.
type LineKind int

const (
	// Context is an unchanged line.
	Context LineKind = iota

	// Add is a line present only in the fixed rendition.
	Add

	// Remove is a line present only in the original.
	Remove
)

// Line is a single line in a hunk.
type Line struct {
	Kind    LineKind
	Content string
}

// Hunk is one contiguous change region with surrounding context.
type Hunk struct {
	OriginalStart int
	OriginalCount int
	ModifiedStart int
	ModifiedCount int
	Lines         []Line
}

// Diff is a unified diff between two renditions of one file.
type Diff struct {
	// Path is the file path for the diff header.
	Path string

	// Hunks are the change regions, in file order.
	Hunks []Hunk

	// Additions and Deletions count changed lines across all hunks.
	Additions int
	Deletions int
}

// contextLines is the number of context lines shown around changes.
const contextLines = 3

// Generate computes the unified diff between original and modified.
// Returns nil when the renditions are identical.
func Generate(path, original, modified string) *Diff {
	origLines := splitLines(original)
	modLines := splitLines(modified)

	ops := diffOps(origLines, modLines)
	hunks := groupHunks(ops)
	if len(hunks) == 0 {
		return nil
	}

	d := &Diff{Path: path, Hunks: hunks}
	for _, hunk := range hunks {
		for _, line := range hunk.Lines {
			switch line.Kind {
			case Add:
				d.Additions++
			case Remove:
				d.Deletions++
			}
		}
	}
	return d
}

// HasChanges returns true if the diff contains any changes.
func (d *Diff) HasChanges() bool {
	return d != nil && len(d.Hunks) > 0
}

// String renders the diff in unified format.
func (d *Diff) String() string {
	if !d.HasChanges() {
		return ""
	}

	path := strings.TrimPrefix(d.Path, "/")

	var builder strings.Builder
	fmt.Fprintf(&builder, "--- a/%s\n", path)
	fmt.Fprintf(&builder, "+++ b/%s\n", path)

	for _, hunk := range d.Hunks {
		fmt.Fprintf(&builder, "@@ -%d,%d +%d,%d @@\n",
			hunk.OriginalStart, hunk.OriginalCount,
			hunk.ModifiedStart, hunk.ModifiedCount)

		for _, line := range hunk.Lines {
			switch line.Kind {
			case Context:
				builder.WriteString(" ")
			case Add:
				builder.WriteString("+")
			case Remove:
				builder.WriteString("-")
			}
			builder.WriteString(line.Content)
			builder.WriteString("\n")
		}
	}

	return builder.String()
}

// splitLines splits content into lines without trailing terminators.
func splitLines(content string) []string {
	if content == "" {
		return nil
	}
	lines := strings.Split(content, "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}

type op struct {
	kind    LineKind
	content string
}

// diffOps builds the flat operation sequence from an LCS of the two sides.
func diffOps(orig, mod []string) []op {
	lcs := longestCommonSubsequence(orig, mod)

	var ops []op
	origIdx, modIdx, lcsIdx := 0, 0, 0

	for origIdx < len(orig) || modIdx < len(mod) {
		if lcsIdx < len(lcs) && origIdx < len(orig) && modIdx < len(mod) &&
			orig[origIdx] == lcs[lcsIdx] && mod[modIdx] == lcs[lcsIdx] {
			ops = append(ops, op{kind: Context, content: orig[origIdx]})
			origIdx++
			modIdx++
			lcsIdx++
			continue
		}

		for origIdx < len(orig) && (lcsIdx >= len(lcs) || orig[origIdx] != lcs[lcsIdx]) {
			ops = append(ops, op{kind: Remove, content: orig[origIdx]})
			origIdx++
		}
		for modIdx < len(mod) && (lcsIdx >= len(lcs) || mod[modIdx] != lcs[lcsIdx]) {
			ops = append(ops, op{kind: Add, content: mod[modIdx]})
			modIdx++
		}
	}

	return ops
}

// groupHunks clusters change operations into hunks with context, merging
// regions closer than twice the context width.
func groupHunks(ops []op) []Hunk {
	type span struct{ start, end int }

	var spans []span
	inChange := false
	spanStart := 0
	for i, o := range ops {
		isChange := o.kind != Context
		if isChange && !inChange {
			spanStart = i
			inChange = true
		} else if !isChange && inChange {
			spans = append(spans, span{spanStart, i})
			inChange = false
		}
	}
	if inChange {
		spans = append(spans, span{spanStart, len(ops)})
	}
	if len(spans) == 0 {
		return nil
	}

	var hunks []Hunk
	for i := 0; i < len(spans); {
		j := i + 1
		for j < len(spans) && spans[j].start-spans[j-1].end <= contextLines*2 {
			j++
		}
		hunks = append(hunks, buildHunk(ops, spans[i].start, spans[j-1].end))
		i = j
	}
	return hunks
}

func buildHunk(ops []op, changeStart, changeEnd int) Hunk {
	start := max(changeStart-contextLines, 0)
	end := min(changeEnd+contextLines, len(ops))

	hunk := Hunk{OriginalStart: 1, ModifiedStart: 1}
	for i := range start {
		if ops[i].kind != Add {
			hunk.OriginalStart++
		}
		if ops[i].kind != Remove {
			hunk.ModifiedStart++
		}
	}

	for i := start; i < end; i++ {
		hunk.Lines = append(hunk.Lines, Line{Kind: ops[i].kind, Content: ops[i].content})
		switch ops[i].kind {
		case Context:
			hunk.OriginalCount++
			hunk.ModifiedCount++
		case Remove:
			hunk.OriginalCount++
		case Add:
			hunk.ModifiedCount++
		}
	}

	return hunk
}

// longestCommonSubsequence computes the LCS of two line slices.
func longestCommonSubsequence(orig, mod []string) []string {
	origLen, modLen := len(orig), len(mod)
	if origLen == 0 || modLen == 0 {
		return nil
	}

	dp := make([][]int, origLen+1)
	for idx := range dp {
		dp[idx] = make([]int, modLen+1)
	}
	for row := 1; row <= origLen; row++ {
		for col := 1; col <= modLen; col++ {
			if orig[row-1] == mod[col-1] {
				dp[row][col] = dp[row-1][col-1] + 1
			} else {
				dp[row][col] = max(dp[row-1][col], dp[row][col-1])
			}
		}
	}

	lcsLen := dp[origLen][modLen]
	if lcsLen == 0 {
		return nil
	}

	lcs := make([]string, lcsLen)
	row, col, idx := origLen, modLen, lcsLen-1
	for row > 0 && col > 0 {
		switch {
		case orig[row-1] == mod[col-1]:
			lcs[idx] = orig[row-1]
			row--
			col--
			idx--
		case dp[row-1][col] > dp[row][col-1]:
			row--
		default:
			col--
		}
	}

	return lcs
}
