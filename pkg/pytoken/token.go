// Package pytoken provides a Python source tokenizer producing a
// tokenize-compatible stream: INDENT/DEDENT pairs, logical NEWLINE versus
// non-logical NL, and operator/string/comment tokens with exact positions.
package pytoken

import "fmt"

// Type identifies the kind of a token.
type Type int

// Token types. The set mirrors the classic tokenize stream: NEWLINE
// terminates a logical line, NL is a non-logical line break (blank lines,
// breaks inside brackets), INDENT/DEDENT track block structure.
const (
	EndMarker Type = iota
	Name
	Number
	String
	Op
	Comment
	NL
	Newline
	Indent
	Dedent
)

// String returns the token type name.
func (t Type) String() string {
	switch t {
	case EndMarker:
		return "ENDMARKER"
	case Name:
		return "NAME"
	case Number:
		return "NUMBER"
	case String:
		return "STRING"
	case Op:
		return "OP"
	case Comment:
		return "COMMENT"
	case NL:
		return "NL"
	case Newline:
		return "NEWLINE"
	case Indent:
		return "INDENT"
	case Dedent:
		return "DEDENT"
	default:
		return fmt.Sprintf("Type(%d)", int(t))
	}
}

// Pos is a position in the source. Row is 1-based, Col is 0-based,
// matching tokenize conventions.
type Pos struct {
	Row int
	Col int
}

// Token is a single lexical token.
type Token struct {
	Type  Type
	Text  string
	Start Pos
	End   Pos

	// Line is the physical source line the token starts on, including
	// its terminator. Multi-line strings carry all spanned lines.
	Line string
}

// IsTrivia reports whether the token carries no logical-line content:
// comments, non-logical newlines, indentation bookkeeping and the end marker.
func (t Token) IsTrivia() bool {
	switch t.Type {
	case Comment, NL, Indent, Dedent, EndMarker:
		return true
	default:
		return false
	}
}

// OpenBracket reports whether the token is an opening bracket operator.
func (t Token) OpenBracket() bool {
	return t.Type == Op && (t.Text == "(" || t.Text == "[" || t.Text == "{")
}

// CloseBracket reports whether the token is a closing bracket operator.
func (t Token) CloseBracket() bool {
	return t.Type == Op && (t.Text == ")" || t.Text == "]" || t.Text == "}")
}

// TokenizeError describes a failure to tokenize the source, such as an
// unterminated string or an EOF inside brackets. Callers are expected to
// treat it as "analysis unavailable" rather than a fatal condition.
type TokenizeError struct {
	Msg string
	Pos Pos
}

// Error implements the error interface.
func (e *TokenizeError) Error() string {
	return fmt.Sprintf("%s at line %d, column %d", e.Msg, e.Pos.Row, e.Pos.Col)
}
