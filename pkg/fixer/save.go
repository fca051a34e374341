package fixer

import (
	"context"
	"fmt"
	"strings"

	"github.com/yaklabco/gopyfix/pkg/fsutil"
)

// WriteError reports a failure to save the fixed file. The file is skipped;
// the in-memory fixes are not lost.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("could not save %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}

// SaveFile writes the fixed source back using the given source encoding,
// reporting whether anything was written. Content identical to what is
// already on disk is not rewritten. With backups enabled the previous file
// content survives as "<name>~".
func (f *Fixer) SaveFile(ctx context.Context, encoding string) (bool, error) {
	if !f.modified {
		return false, nil
	}

	// Encode before touching the file so an unknown codec leaves the
	// original in place.
	data, err := encodeText(f.source.Join(), encoding)
	if err != nil {
		return false, &WriteError{Path: f.filename, Err: err}
	}

	if f.createBackup {
		// Best effort; a failed backup must not block the save.
		_ = fsutil.RenameBackup(f.filename)
	}

	written, err := fsutil.WriteAtomicIfChanged(ctx, f.filename, data, 0)
	if err != nil {
		return false, &WriteError{Path: f.filename, Err: err}
	}
	return written, nil
}

var bomUTF8 = []byte{0xEF, 0xBB, 0xBF}

// encodeText encodes text for writing. The pseudo encoding "utf-8-bom"
// produces UTF-8 with a leading byte order mark; other names resolve
// through the IANA registry.
func encodeText(text, name string) ([]byte, error) {
	switch strings.ToLower(name) {
	case "", "utf-8", "utf8", "ascii":
		return []byte(text), nil
	case "utf-8-bom":
		return append(append([]byte(nil), bomUTF8...), text...), nil
	}
	enc, err := fsutil.EncodingByName(name)
	if err != nil {
		return nil, err
	}
	return enc.NewEncoder().Bytes([]byte(text))
}
