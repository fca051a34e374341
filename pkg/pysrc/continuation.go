package pysrc

import (
	"sort"
	"strings"

	"github.com/yaklabco/gopyfix/pkg/pytoken"
)

type chanceKind int

const (
	chanceToken  chanceKind = iota // a specific operator may continue here
	chanceString                   // a string token may hang here
	chanceTrue                     // confirmed visual indent
)

type indentChance struct {
	kind chanceKind
	text string
}

// Continuation analyses one logical line and computes, per physical row,
// the ranked indentation columns the continuation-line checker accepts.
// It replays the pep8 continuation_line_indentation state machine: bracket
// depth, per-row open parens, relative indents and the "indent chances"
// that visual indenters like to line up with.
type Continuation struct {
	lines   []string
	tokens  []pytoken.Token
	logical string

	// RelIndent holds, after ExpectedIndents has run, each row's observed
	// indent relative to the logical line's base indent.
	RelIndent []int
}

// NewContinuation tokenizes the physical lines of one logical line. A
// tokenize failure means the continuation fix is unavailable.
func NewContinuation(physicalLines []string) (*Continuation, error) {
	lines := make([]string, len(physicalLines))
	copy(lines, physicalLines)
	tokens, err := pytoken.Tokenize(strings.Join(lines, ""))
	if err != nil {
		return nil, err
	}
	c := &Continuation{lines: lines}
	for _, tk := range tokens {
		if len(c.tokens) == 0 && tk.IsTrivia() {
			continue
		}
		if tk.Type != pytoken.EndMarker {
			c.tokens = append(c.tokens, tk)
		}
	}
	c.logical = c.buildLogical()
	return c, nil
}

// buildLogical joins the significant tokens into the single logical-line
// string, inserting the original inter-token fill on a shared row and a
// separating space across rows.
func (c *Continuation) buildLogical() string {
	var logical []string
	var prev *pytoken.Token
	for i := range c.tokens {
		tk := c.tokens[i]
		if tk.IsTrivia() || tk.Type == pytoken.Newline {
			continue
		}
		if prev != nil {
			endRow, end := prev.End.Row, prev.End.Col
			startRow, start := tk.Start.Row, tk.Start.Col
			if endRow != startRow {
				prevLine := c.lineAt(endRow)
				if end-1 >= 0 && end-1 < len(prevLine) {
					prevText := prevLine[end-1]
					if prevText == ',' || (!strings.ContainsRune("{[(", rune(prevText)) &&
						!strings.Contains("}])", tk.Text)) {
						logical = append(logical, " ")
					}
				}
			} else if end != start {
				line := c.lineAt(endRow)
				if end <= len(line) && start <= len(line) {
					logical = append(logical, line[end:start])
				}
			}
		}
		logical = append(logical, tk.Text)
		prev = &c.tokens[i]
	}
	return strings.Join(logical, "")
}

func (c *Continuation) lineAt(row int) string {
	if row-1 < 0 || row-1 >= len(c.lines) {
		return ""
	}
	return c.lines[row-1]
}

// ExpectedIndents returns one ranked list of acceptable indent columns per
// physical row of the logical line; the first entry of each list is the
// expected indent. Row 0 always carries the logical line's actual indent.
func (c *Continuation) ExpectedIndents() [][]int {
	if len(c.tokens) == 0 {
		return nil
	}

	firstRow := c.tokens[0].Start.Row
	nrows := 1 + c.tokens[len(c.tokens)-1].Start.Row - firstRow
	indentLevel := c.tokens[0].Start.Col

	valid := make([][]int, nrows)
	valid[0] = []int{indentLevel}
	if nrows == 1 {
		return valid
	}

	indentNext := strings.HasSuffix(c.logical, ":")

	row, depth := 0, 0
	parens := make([]int, nrows)
	c.RelIndent = make([]int, nrows)
	indent := []int{indentLevel}
	chances := make(map[int]indentChance)
	lastIndentCol := 0
	lastTokenMultiline := false

	for _, tk := range c.tokens {
		start, end := tk.Start, tk.End
		newline := row < start.Row-firstRow
		if newline {
			row = start.Row - firstRow
			newline = !lastTokenMultiline &&
				tk.Type != pytoken.NL && tk.Type != pytoken.Newline
		}

		if newline && row < nrows {
			openRow := 0
			if depth > 0 {
				for r := row - 1; r >= 0; r-- {
					if parens[r] > 0 {
						openRow = r
						break
					}
				}
			}

			var vi []int
			addSecondChances := false
			switch {
			case tk.CloseBracket():
				// A closing bracket closes at the indent of its opener.
				if indent[depth] != 0 {
					vi = append(vi, indent[depth]) // hanging indent
				} else {
					vi = append(vi, indentLevel+c.RelIndent[openRow]) // visual
				}
			case depth > 0 && indent[depth] != 0:
				// Visual indent was previously confirmed.
				vi = append(vi, indent[depth])
				addSecondChances = true
			case depth > 0 && anyConfirmed(chances):
				if depth > 1 && indent[depth-1] != 0 {
					vi = append(vi, indent[depth-1])
				} else {
					vi = append(vi, indentLevel+4)
				}
				addSecondChances = true
			case depth == 0:
				vi = append(vi, indentLevel+4)
			default:
				// Hanging indent.
				vi = append(vi, indentLevel+c.RelIndent[openRow]+4)
			}

			// Distinguish the final continuation row from the indented
			// block that follows a trailing colon.
			if indentNext && vi[0] == indentLevel+4 && nrows == row+1 {
				vi[0] += 4
			}

			if addSecondChances {
				minIndent := vi[0]
				for col, what := range chances {
					if col > minIndent &&
						(what.kind == chanceTrue ||
							(what.kind == chanceString && tk.Type == pytoken.String) ||
							(what.kind == chanceToken && what.text == tk.Text && tk.Type == pytoken.Op)) {
						vi = append(vi, col)
					}
				}
				sort.Ints(vi)
			}

			valid[row] = vi

			visual, hasVisual := chances[start.Col]
			lastIndentCol = start.Col
			c.RelIndent[row] = ExpandIndent(tk.Line) - indentLevel

			if tk.CloseBracket() {
				// Nothing to confirm for a closing bracket.
			} else if hasVisual && visual.kind == chanceTrue && indent[depth] == 0 {
				indent[depth] = start.Col
			}
		}

		// Comments must not define a visual indent.
		if row < nrows && parens[row] > 0 && indent[depth] == 0 &&
			tk.Type != pytoken.NL && tk.Type != pytoken.Comment {
			indent[depth] = start.Col
			chances[start.Col] = indentChance{kind: chanceTrue}
		} else if tk.Type == pytoken.String ||
			tk.Text == "u" || tk.Text == "ur" || tk.Text == "b" || tk.Text == "br" {
			chances[start.Col] = indentChance{kind: chanceString}
		}

		if tk.Type == pytoken.Op {
			if tk.OpenBracket() {
				depth++
				indent = append(indent, 0)
				if row < nrows {
					parens[row]++
				}
			} else if tk.CloseBracket() && depth > 0 {
				prevIndent := indent[len(indent)-1]
				indent = indent[:len(indent)-1]
				if prevIndent == 0 {
					prevIndent = lastIndentCol
				}
				for d := 0; d < depth; d++ {
					if indent[d] > prevIndent {
						indent[d] = 0
					}
				}
				for col := range chances {
					if col >= prevIndent {
						delete(chances, col)
					}
				}
				depth--
				if depth > 0 && indent[depth] != 0 {
					chances[indent[depth]] = indentChance{kind: chanceTrue}
				}
				for idx := min(row, nrows-1); idx >= 0; idx-- {
					if parens[idx] > 0 {
						parens[idx]--
						break
					}
				}
			}
			if _, ok := chances[start.Col]; !ok {
				chances[start.Col] = indentChance{kind: chanceToken, text: tk.Text}
			}
		}

		lastTokenMultiline = start.Row != end.Row
	}

	for i := range valid {
		if valid[i] == nil {
			valid[i] = []int{indentLevel}
		}
	}
	return valid
}

func anyConfirmed(chances map[int]indentChance) bool {
	for _, what := range chances {
		if what.kind == chanceTrue {
			return true
		}
	}
	return false
}
