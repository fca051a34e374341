package pytoken_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gopyfix/pkg/pytoken"
)

func types(tokens []pytoken.Token) []pytoken.Type {
	out := make([]pytoken.Type, len(tokens))
	for i, tk := range tokens {
		out[i] = tk.Type
	}
	return out
}

func countType(tokens []pytoken.Token, typ pytoken.Type) int {
	n := 0
	for _, tk := range tokens {
		if tk.Type == typ {
			n++
		}
	}
	return n
}

func TestTokenize_SimpleStatement(t *testing.T) {
	t.Parallel()

	tokens, err := pytoken.Tokenize("x = 1\n")
	require.NoError(t, err)

	assert.Equal(t, []pytoken.Type{
		pytoken.Name, pytoken.Op, pytoken.Number, pytoken.Newline, pytoken.EndMarker,
	}, types(tokens))

	assert.Equal(t, "x", tokens[0].Text)
	assert.Equal(t, pytoken.Pos{Row: 1, Col: 0}, tokens[0].Start)
	assert.Equal(t, pytoken.Pos{Row: 1, Col: 1}, tokens[0].End)
	assert.Equal(t, "=", tokens[1].Text)
	assert.Equal(t, "1", tokens[2].Text)
	assert.Equal(t, "x = 1\n", tokens[0].Line)
}

func TestTokenize_IndentDedent(t *testing.T) {
	t.Parallel()

	tokens, err := pytoken.Tokenize("if a:\n    b = 1\nc = 2\n")
	require.NoError(t, err)

	assert.Equal(t, []pytoken.Type{
		pytoken.Name, pytoken.Name, pytoken.Op, pytoken.Newline,
		pytoken.Indent, pytoken.Name, pytoken.Op, pytoken.Number, pytoken.Newline,
		pytoken.Dedent, pytoken.Name, pytoken.Op, pytoken.Number, pytoken.Newline,
		pytoken.EndMarker,
	}, types(tokens))

	indent := tokens[4]
	assert.Equal(t, "    ", indent.Text)
}

func TestTokenize_NewlineInsideBrackets(t *testing.T) {
	t.Parallel()

	tokens, err := pytoken.Tokenize("f(1,\n  2)\n")
	require.NoError(t, err)

	// The break inside the call is a non-logical NL; only the final
	// terminator is a logical NEWLINE.
	assert.Equal(t, 1, countType(tokens, pytoken.NL))
	assert.Equal(t, 1, countType(tokens, pytoken.Newline))
}

func TestTokenize_CommentLine(t *testing.T) {
	t.Parallel()

	tokens, err := pytoken.Tokenize("# hi\nx = 1\n")
	require.NoError(t, err)

	require.GreaterOrEqual(t, len(tokens), 2)
	assert.Equal(t, pytoken.Comment, tokens[0].Type)
	assert.Equal(t, "# hi", tokens[0].Text)
	assert.Equal(t, pytoken.NL, tokens[1].Type)
}

func TestTokenize_InlineComment(t *testing.T) {
	t.Parallel()

	tokens, err := pytoken.Tokenize("x = 1  # note\n")
	require.NoError(t, err)

	assert.Equal(t, 1, countType(tokens, pytoken.Comment))
	for _, tk := range tokens {
		if tk.Type == pytoken.Comment {
			assert.Equal(t, "# note", tk.Text)
			assert.Equal(t, 7, tk.Start.Col)
		}
	}
}

func TestTokenize_TripleQuotedString(t *testing.T) {
	t.Parallel()

	tokens, err := pytoken.Tokenize("s = \"\"\"a\nb\"\"\"\n")
	require.NoError(t, err)

	var str pytoken.Token
	for _, tk := range tokens {
		if tk.Type == pytoken.String {
			str = tk
		}
	}
	assert.Equal(t, "\"\"\"a\nb\"\"\"", str.Text)
	assert.Equal(t, pytoken.Pos{Row: 1, Col: 4}, str.Start)
	assert.Equal(t, pytoken.Pos{Row: 2, Col: 4}, str.End)
	assert.Equal(t, "s = \"\"\"a\nb\"\"\"\n", str.Line)
}

func TestTokenize_StringPrefix(t *testing.T) {
	t.Parallel()

	tokens, err := pytoken.Tokenize("x = r\"a\"\n")
	require.NoError(t, err)

	assert.Equal(t, 1, countType(tokens, pytoken.String))
	for _, tk := range tokens {
		if tk.Type == pytoken.String {
			assert.Equal(t, `r"a"`, tk.Text)
		}
	}
}

func TestTokenize_EscapedQuote(t *testing.T) {
	t.Parallel()

	tokens, err := pytoken.Tokenize(`x = 'a\'b'` + "\n")
	require.NoError(t, err)

	for _, tk := range tokens {
		if tk.Type == pytoken.String {
			assert.Equal(t, `'a\'b'`, tk.Text)
		}
	}
}

func TestTokenize_BackslashContinuation(t *testing.T) {
	t.Parallel()

	tokens, err := pytoken.Tokenize("x = 1 + \\\n    2\n")
	require.NoError(t, err)

	// One logical line, despite the two physical lines.
	assert.Equal(t, 1, countType(tokens, pytoken.Newline))
	assert.Equal(t, 0, countType(tokens, pytoken.Indent))
}

func TestTokenize_MissingFinalNewline(t *testing.T) {
	t.Parallel()

	tokens, err := pytoken.Tokenize("x = 1")
	require.NoError(t, err)

	require.GreaterOrEqual(t, len(tokens), 2)
	assert.Equal(t, pytoken.Newline, tokens[len(tokens)-2].Type)
	assert.Equal(t, pytoken.EndMarker, tokens[len(tokens)-1].Type)
}

func TestTokenize_LongestOperatorMatch(t *testing.T) {
	t.Parallel()

	tests := []struct {
		source string
		op     string
	}{
		{"a **= b\n", "**="},
		{"a // b\n", "//"},
		{"a <> b\n", "<>"},
		{"a := b\n", ":="},
		{"a -> b\n", "->"},
	}

	for _, tt := range tests {
		tokens, err := pytoken.Tokenize(tt.source)
		require.NoError(t, err, tt.source)

		var ops []string
		for _, tk := range tokens {
			if tk.Type == pytoken.Op {
				ops = append(ops, tk.Text)
			}
		}
		assert.Equal(t, []string{tt.op}, ops, tt.source)
	}
}

func TestTokenize_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		source string
		msg    string
	}{
		{"unterminated string", "s = \"abc\n", "EOL in single-quoted string"},
		{"unterminated triple string", "s = \"\"\"abc\n", "EOF in multi-line string"},
		{"open bracket at eof", "f(1,\n", "EOF in multi-line statement"},
		{"bad dedent", "if a:\n        b = 1\n   c = 2\n", "unindent does not match"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := pytoken.Tokenize(tt.source)
			require.Error(t, err)

			var tokErr *pytoken.TokenizeError
			require.ErrorAs(t, err, &tokErr)
			assert.Contains(t, tokErr.Error(), tt.msg)
		})
	}
}

func TestSplitLines(t *testing.T) {
	t.Parallel()

	assert.Nil(t, pytoken.SplitLines(""))
	assert.Equal(t, []string{"a\n"}, pytoken.SplitLines("a\n"))
	assert.Equal(t, []string{"a\n", "b"}, pytoken.SplitLines("a\nb"))
	assert.Equal(t, []string{"a\r\n", "b\r\n"}, pytoken.SplitLines("a\r\nb\r\n"))
}

func TestTypeString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "NEWLINE", pytoken.Newline.String())
	assert.Equal(t, "NL", pytoken.NL.String())
	assert.Equal(t, "INDENT", pytoken.Indent.String())
}
