// Package pysyntax validates Python code fragments using the tree-sitter
// Python grammar. The line shortener uses it to reject rewrite candidates
// that would not parse.
package pysyntax

import (
	"context"
	"strings"
	"sync"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"
)

var parserPool = sync.Pool{
	New: func() any {
		p := sitter.NewParser()
		p.SetLanguage(python.GetLanguage())
		return p
	},
}

// Valid reports whether code parses as Python without syntax errors.
// Line terminators are normalized to LF before parsing.
func Valid(code string) bool {
	code = strings.ReplaceAll(code, "\r\n", "\n")
	code = strings.ReplaceAll(code, "\r", "\n")

	parser := parserPool.Get().(*sitter.Parser)
	defer parserPool.Put(parser)

	tree, err := parser.ParseCtx(context.Background(), nil, []byte(code))
	if err != nil || tree == nil {
		return false
	}
	defer tree.Close()

	root := tree.RootNode()
	return root != nil && !root.HasError()
}
