// Package fixer repairs code style issues in Python sources. A Fixer owns
// the line buffer of one file; issues are reported to it one by one via
// FixIssue, fixes that must run after all inline edits are deferred to
// Finalize, and SaveFile writes the result back.
package fixer

import (
	"path/filepath"

	"github.com/yaklabco/gopyfix/pkg/pysrc"
)

// Options configures a Fixer.
type Options struct {
	// FixCodes and NoFixCodes are comma separated code filters. See
	// codeMatch for the prefix semantics; NoFixCodes wins.
	FixCodes   string
	NoFixCodes string

	// MaxLineLength is the limit the long-line fix shortens to.
	MaxLineLength int

	// InPlace writes the fixed file over the original. When false the
	// result goes to "fixed_<name>" next to the original.
	InPlace bool

	// EOL is the line terminator for newly created lines.
	EOL string

	// Backup keeps a "<name>~" copy of the original before the first
	// in-place save.
	Backup bool
}

// Applied, NotFixed and Deferred are the outcome values of FixIssue and
// FixResult.
const (
	Deferred = -1
	NotFixed = 0
	Applied  = 1
)

// FixResult is the outcome of one deferred fix.
type FixResult struct {
	Result  int
	Message Message
}

type deferredFix struct {
	id   int
	code Code
	line int
	pos  int
}

type fixHandler func(code Code, line, pos int, apply bool) (int, Message, int)

// Fixer fixes style issues in one source file.
type Fixer struct {
	filename string
	origName string
	source   *pysrc.Buffer

	fixCodes      []string
	noFixCodes    []string
	maxLineLength int
	eol           string
	createBackup  bool
	indentWord    string

	fixes map[Code]fixHandler

	// reindenter is built once, at the first indentation fix, and reused
	// for all later ones even though the buffer may have changed.
	reindenter *pysrc.Reindenter

	// multiLines and docLines are computed once, at the first long-line
	// fix, keyed by 1-based row.
	multiLines map[int]bool
	docLines   map[int]bool

	stackLogical []deferredFix // deferred fixes on logical lines
	stack        []deferredFix // deferred fixes changing the line count

	modified bool
	fixed    int
	lastID   int
}

// New creates a fixer for the named file over a copy of sourceLines, which
// must retain their line terminators.
func New(filename string, sourceLines []string, opts Options) *Fixer {
	if opts.MaxLineLength == 0 {
		opts.MaxLineLength = 79
	}
	if opts.EOL == "" {
		opts.EOL = "\n"
	}

	f := &Fixer{
		filename:      filename,
		source:        pysrc.NewBuffer(sourceLines),
		fixCodes:      splitCodeList(opts.FixCodes),
		noFixCodes:    splitCodeList(opts.NoFixCodes),
		maxLineLength: opts.MaxLineLength,
		eol:           opts.EOL,
	}
	f.indentWord = pysrc.IndentWord(f.source.Join())

	if opts.InPlace {
		f.createBackup = opts.Backup
	} else {
		f.origName = filename
		f.filename = filepath.Join(
			filepath.Dir(filename), "fixed_"+filepath.Base(filename))
	}

	f.fixes = map[Code]fixHandler{
		"D111": f.fixD111,
		"D112": f.fixD112,
		"D113": f.fixD112,
		"D121": f.fixD121,
		"D131": f.fixD131,
		"D141": f.fixD141,
		"D142": f.fixD142,
		"D143": f.fixD143,
		"D144": f.fixD144,
		"D145": f.fixD145,
		"D221": f.fixD221,
		"D222": f.fixD221,
		"D231": f.fixD131,
		"D242": f.fixD242,
		"D243": f.fixD243,
		"D244": f.fixD242,
		"D245": f.fixD243,
		"D246": f.fixD144,
		"D247": f.fixD247,
		"E101": f.fixE101,
		"E111": f.fixE101,
		"E121": f.fixE121,
		"E122": f.fixE122,
		"E123": f.fixE123,
		"E124": f.fixE121,
		"E125": f.fixE125,
		"E126": f.fixE126,
		"E127": f.fixE127,
		"E128": f.fixE127,
		"E133": f.fixE126,
		"E201": f.fixE201,
		"E202": f.fixE201,
		"E203": f.fixE201,
		"E211": f.fixE201,
		"E221": f.fixE221,
		"E222": f.fixE221,
		"E223": f.fixE221,
		"E224": f.fixE221,
		"E225": f.fixE225,
		"E226": f.fixE225,
		"E227": f.fixE225,
		"E228": f.fixE225,
		"E231": f.fixE231,
		"E241": f.fixE221,
		"E242": f.fixE221,
		"E251": f.fixE251,
		"E261": f.fixE261,
		"E262": f.fixE261,
		"E271": f.fixE221,
		"E272": f.fixE221,
		"E273": f.fixE221,
		"E274": f.fixE221,
		"E301": f.fixE301,
		"E302": f.fixE302,
		"E303": f.fixE303,
		"E304": f.fixE304,
		"E401": f.fixE401,
		"E501": f.fixE501,
		"E502": f.fixE502,
		"E701": f.fixE701,
		"E702": f.fixE702,
		"E703": f.fixE702,
		"E711": f.fixE711,
		"E712": f.fixE711,
		"N804": f.fixN804,
		"N805": f.fixN804,
		"N806": f.fixN806,
		"W191": f.fixE101,
		"W291": f.fixW291,
		"W292": f.fixW292,
		"W293": f.fixW291,
		"W391": f.fixW391,
		"W603": f.fixW603,
	}
	return f
}

// FixIssue fixes the issue with the given code at line (1-based) and pos
// (0-based column). The first return value is Applied, NotFixed or
// Deferred; deferred fixes carry a non-zero ID that keys their entry in the
// Finalize results.
func (f *Fixer) FixIssue(line, pos int, code Code) (int, Message, int) {
	if line > f.source.Len() || !codeMatch(code, f.fixCodes, f.noFixCodes) {
		return NotFixed, Message{}, 0
	}
	handler, ok := f.fixes[code]
	if !ok {
		return NotFixed, Message{}, 0
	}
	res, m, id := handler(code, line, pos, false)
	if res == Applied {
		f.modified = true
		f.fixed++
	}
	return res, m, id
}

// Finalize applies all deferred fixes and returns their outcomes keyed by
// deferred-fix ID. Logical-line fixes run first, in registration order;
// fixes that change the line count run afterwards in reverse registration
// order so earlier line numbers stay valid.
func (f *Fixer) Finalize() map[int]FixResult {
	results := make(map[int]FixResult)

	for _, d := range f.stackLogical {
		res, m, _ := f.fixes[d.code](d.code, d.line, d.pos, true)
		if res == Applied {
			f.modified = true
			f.fixed++
		}
		results[d.id] = FixResult{Result: res, Message: m}
	}

	for i := len(f.stack) - 1; i >= 0; i-- {
		d := f.stack[i]
		res, m, _ := f.fixes[d.code](d.code, d.line, d.pos, true)
		if res == Applied {
			f.modified = true
			f.fixed++
		}
		results[d.id] = FixResult{Result: res, Message: m}
	}

	return results
}

// Fixed returns the number of fixes applied so far.
func (f *Fixer) Fixed() int {
	return f.fixed
}

// Modified reports whether any fix changed the buffer.
func (f *Fixer) Modified() bool {
	return f.modified
}

// FileName returns the path the fixed source will be saved to.
func (f *Fixer) FileName() string {
	return f.filename
}

// Lines returns a copy of the current source lines.
func (f *Fixer) Lines() []string {
	return f.source.Lines()
}

func (f *Fixer) nextID() int {
	f.lastID++
	return f.lastID
}

func (f *Fixer) deferToStack(code Code, line, pos int) (int, Message, int) {
	id := f.nextID()
	f.stack = append(f.stack, deferredFix{id: id, code: code, line: line, pos: pos})
	return Deferred, Message{}, id
}

func (f *Fixer) deferToLogical(code Code, line, pos int) (int, Message, int) {
	id := f.nextID()
	f.stackLogical = append(f.stackLogical, deferredFix{id: id, code: code, line: line, pos: pos})
	return Deferred, Message{}, id
}
