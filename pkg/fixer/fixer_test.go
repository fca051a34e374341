package fixer_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gopyfix/pkg/fixer"
	"github.com/yaklabco/gopyfix/pkg/pytoken"
)

func newFixer(src string, opts fixer.Options) *fixer.Fixer {
	return fixer.New("test.py", pytoken.SplitLines(src), opts)
}

func joined(f *fixer.Fixer) string {
	return strings.Join(f.Lines(), "")
}

func TestFixIssue_Immediate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		source  string
		line    int
		pos     int
		code    fixer.Code
		want    string
		message string
	}{
		{
			"trailing whitespace", "x = 1 \n", 1, 5, "W291",
			"x = 1\n", "Whitespace stripped from end of line.",
		},
		{
			"missing final newline", "x = 1", 1, 5, "W292",
			"x = 1\n", "Newline added to end of file.",
		},
		{
			"blank lines at end of file", "x = 1\n\n\n", 3, 0, "W391",
			"x = 1\n", "Superfluous trailing blank lines removed from end of file.",
		},
		{
			"diamond operator", "if a <> b:\n    pass\n", 1, 5, "W603",
			"if a != b:\n    pass\n", "'<>' replaced by '!='.",
		},
		{
			"space around equals", "x=1\n", 1, 1, "E225",
			"x = 1\n", "Missing whitespaces added.",
		},
		{
			"space after comma", "f(1,2)\n", 1, 3, "E231",
			"f(1, 2)\n", "Missing whitespace added.",
		},
		{
			"comparison to none", "if x == None:\n    pass\n", 1, 5, "E711",
			"if x is None:\n    pass\n", "Comparison to None/True/False corrected.",
		},
		{
			"negated comparison to true", "if x != True:\n    pass\n", 1, 5, "E712",
			"if x is not True:\n    pass\n", "Comparison to None/True/False corrected.",
		},
		{
			"whitespace after bracket", "f( 1)\n", 1, 2, "E201",
			"f(1)\n", "Extraneous whitespace removed.",
		},
		{
			"inline comment spacing", "x = 1 # note\n", 1, 6, "E261",
			"x = 1  # note\n", "Whitespace around comment sign corrected.",
		},
		{
			"tab indentation", "if a:\n\tb = 1\n", 2, 0, "W191",
			"if a:\n    b = 1\n", "Tab converted to 4 spaces.",
		},
		{
			"docstring quotes", "def f():\n    '''Doc.'''\n", 2, 4, "D111",
			"def f():\n    \"\"\"Doc.\"\"\"\n",
			"Triple single quotes converted to triple double quotes.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			f := newFixer(tt.source, fixer.Options{})

			res, m, id := f.FixIssue(tt.line, tt.pos, tt.code)
			require.Equal(t, fixer.Applied, res)
			assert.Zero(t, id)
			assert.Equal(t, tt.message, m.String())
			assert.Equal(t, tt.want, joined(f))
			assert.True(t, f.Modified())
			assert.Equal(t, 1, f.Fixed())
		})
	}
}

func TestFixIssue_Deferred(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		source  string
		line    int
		pos     int
		code    fixer.Code
		want    string
		message string
	}{
		{
			"semicolon statements", "x = 1; y = 2\n", 1, 5, "E702",
			"x = 1\ny = 2\n", "Compound statement corrected.",
		},
		{
			"trailing semicolon", "x = 1;\n", 1, 5, "E703",
			"x = 1\n", "Compound statement corrected.",
		},
		{
			"statement after colon", "if x: y = 1\n", 1, 4, "E701",
			"if x:\n    y = 1\n\n", "Compound statement corrected.",
		},
		{
			"multiple imports", "import os, sys\n", 1, 9, "E401",
			"import os\nimport sys\n", "Imports were put on separate lines.",
		},
		{
			"blank lines before def", "def a():\n    pass\ndef b():\n    pass\n", 3, 0, "E302",
			"def a():\n    pass\n\n\ndef b():\n    pass\n", "2 blank lines inserted.",
		},
		{
			"continuation line indent", "x = (\n1)\n", 2, 0, "E122",
			"x = (\n    1)\n", "Missing indentation of continuation line corrected.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			f := newFixer(tt.source, fixer.Options{})

			res, _, id := f.FixIssue(tt.line, tt.pos, tt.code)
			require.Equal(t, fixer.Deferred, res)
			require.NotZero(t, id)
			assert.Equal(t, tt.source, joined(f), "deferred fix must not edit yet")

			results := f.Finalize()
			outcome, ok := results[id]
			require.True(t, ok, "no result for deferred id %d", id)
			assert.Equal(t, fixer.Applied, outcome.Result)
			assert.Equal(t, tt.message, outcome.Message.String())
			assert.Equal(t, tt.want, joined(f))
		})
	}
}

func TestFinalize_StructuralFixesInReverseLineOrder(t *testing.T) {
	t.Parallel()

	// Two line-count-changing fixes on one file: the one on line 6 must
	// apply before the one on line 1 expands it, or its line number would
	// point at the wrong row.
	f := newFixer("if x: y = 1\na = 1\n\n\n\nb = 2\n", fixer.Options{})

	res, _, id1 := f.FixIssue(1, 4, "E701")
	require.Equal(t, fixer.Deferred, res)
	res, _, id2 := f.FixIssue(6, 0, "E303")
	require.Equal(t, fixer.Deferred, res)

	results := f.Finalize()
	assert.Equal(t, fixer.Applied, results[id1].Result)
	assert.Equal(t, fixer.Applied, results[id2].Result)
	assert.Equal(t, "if x:\n    y = 1\n\na = 1\n\nb = 2\n", joined(f))
	assert.Equal(t, 2, f.Fixed())
}

func TestFixIssue_LongLineSplitAtOperator(t *testing.T) {
	t.Parallel()

	source := "result = aaaaaaaaaa + bbbbbbbbbb + cccccccccc + " +
		"dddddddddd + eeeeeeeeee + ffffffffff\n"
	f := newFixer(source, fixer.Options{})

	res, _, id := f.FixIssue(1, 79, "E501")
	require.Equal(t, fixer.Deferred, res)

	results := f.Finalize()
	require.Equal(t, fixer.Applied, results[id].Result)
	assert.Equal(t, "Long lines have been shortened.", results[id].Message.String())

	want := "result = aaaaaaaaaa + bbbbbbbbbb + \\\n" +
		"    cccccccccc + dddddddddd + eeeeeeeeee + ffffffffff\n"
	assert.Equal(t, want, joined(f))

	for _, line := range strings.Split(strings.TrimRight(joined(f), "\n"), "\n") {
		assert.LessOrEqual(t, len(line), 79, "line still too long: %q", line)
	}
}

func TestFixIssue_ComparisonNonLiteralRefused(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		source string
		code   fixer.Code
	}{
		{"equality against name", "if x == y:\n    pass\n", "E711"},
		{"inequality against name", "if x != flag:\n    pass\n", "E712"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			f := newFixer(tt.source, fixer.Options{})

			res, _, _ := f.FixIssue(1, 5, tt.code)
			assert.Equal(t, fixer.NotFixed, res)
			assert.Equal(t, tt.source, joined(f))
			assert.False(t, f.Modified())
		})
	}
}

func TestFixIssue_TooManyBlankLines(t *testing.T) {
	t.Parallel()

	f := newFixer("x = 1\n\n\n\n\ny = 2\n", fixer.Options{})
	res, _, id := f.FixIssue(6, 0, "E303")
	require.Equal(t, fixer.Deferred, res)

	results := f.Finalize()
	assert.Equal(t, fixer.Applied, results[id].Result)
	assert.Equal(t, "x = 1\n\ny = 2\n", joined(f))
}

func TestFixIssue_CodeFilters(t *testing.T) {
	t.Parallel()

	t.Run("no-fix list blocks by prefix", func(t *testing.T) {
		t.Parallel()
		f := newFixer("x = 1 \n", fixer.Options{NoFixCodes: "W"})
		res, _, _ := f.FixIssue(1, 5, "W291")
		assert.Equal(t, fixer.NotFixed, res)
		assert.Equal(t, "x = 1 \n", joined(f))
	})

	t.Run("fix list restricts selection", func(t *testing.T) {
		t.Parallel()
		f := newFixer("x=1\n", fixer.Options{FixCodes: "E5"})
		res, _, _ := f.FixIssue(1, 1, "E225")
		assert.Equal(t, fixer.NotFixed, res)
	})

	t.Run("fix list matches by prefix", func(t *testing.T) {
		t.Parallel()
		f := newFixer("x=1\n", fixer.Options{FixCodes: "E"})
		res, _, _ := f.FixIssue(1, 1, "E225")
		assert.Equal(t, fixer.Applied, res)
	})

	t.Run("no-fix wins over fix", func(t *testing.T) {
		t.Parallel()
		f := newFixer("x=1\n", fixer.Options{FixCodes: "E", NoFixCodes: "E225"})
		res, _, _ := f.FixIssue(1, 1, "E225")
		assert.Equal(t, fixer.NotFixed, res)
	})
}

func TestFixIssue_OutOfRange(t *testing.T) {
	t.Parallel()

	f := newFixer("x = 1\n", fixer.Options{})
	res, _, _ := f.FixIssue(99, 0, "W291")
	assert.Equal(t, fixer.NotFixed, res)
}

func TestFixIssue_UnknownCode(t *testing.T) {
	t.Parallel()

	f := newFixer("x = 1\n", fixer.Options{})
	res, _, _ := f.FixIssue(1, 0, "E999")
	assert.Equal(t, fixer.NotFixed, res)
	assert.False(t, f.Modified())
}

func TestFileName(t *testing.T) {
	t.Parallel()

	inPlace := fixer.New("a.py", []string{"x = 1\n"}, fixer.Options{InPlace: true})
	assert.Equal(t, "a.py", inPlace.FileName())

	copying := fixer.New("a.py", []string{"x = 1\n"}, fixer.Options{InPlace: false})
	assert.Equal(t, "fixed_a.py", copying.FileName())
}

func TestFixer_CustomEOL(t *testing.T) {
	t.Parallel()

	f := newFixer("x = 1", fixer.Options{EOL: "\r\n"})
	res, _, _ := f.FixIssue(1, 5, "W292")
	require.Equal(t, fixer.Applied, res)
	assert.Equal(t, "x = 1\r\n", joined(f))
}

func TestFixable(t *testing.T) {
	t.Parallel()

	assert.True(t, fixer.Fixable("E501"))
	assert.True(t, fixer.Fixable("W603"))
	assert.False(t, fixer.Fixable("E999"))
	assert.Len(t, fixer.FixableCodes, 73)
}

func TestMessageString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		msg  fixer.Message
		want string
	}{
		{"empty", fixer.Message{}, ""},
		{"plain", fixer.Message{Key: "FW291"}, "Whitespace stripped from end of line."},
		{"formatted", fixer.Message{Key: "FD112", Args: []any{"r"}}, `Introductory quotes corrected to be r"""`},
		{"singular insert", fixer.Message{Key: "FE302+", Args: []any{1}}, "1 blank line inserted."},
		{"plural insert", fixer.Message{Key: "FE302+", Args: []any{3}}, "3 blank lines inserted."},
		{"singular remove", fixer.Message{Key: "FE302-", Args: []any{1}}, "1 superfluous line removed."},
		{"unknown key", fixer.Message{Key: "FX000"}, "FX000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.msg.String())
		})
	}
}
