// Package langdetect decides whether file content is Python source.
// It uses go-enry so that extensionless scripts with a shebang line are
// picked up during discovery.
package langdetect

import (
	"path/filepath"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

const languagePython = "Python"

// pythonExtensions are file extensions treated as Python without looking
// at the content.
var pythonExtensions = map[string]bool{
	".py":  true,
	".pyw": true,
}

// HasPythonExtension reports whether the path carries a Python extension.
func HasPythonExtension(path string) bool {
	return pythonExtensions[strings.ToLower(filepath.Ext(path))]
}

// IsPython reports whether the file at path with the given content is
// Python source. The extension wins when present; extensionless files are
// classified by their shebang line.
func IsPython(path string, content []byte) bool {
	if ext := filepath.Ext(path); ext != "" {
		return pythonExtensions[strings.ToLower(ext)]
	}
	return IsPythonContent(content)
}

// IsPythonContent classifies content alone, without a path.
func IsPythonContent(content []byte) bool {
	if len(content) == 0 {
		return false
	}
	if lang, safe := enry.GetLanguageByShebang(content); safe {
		return lang == languagePython
	}
	return false
}
