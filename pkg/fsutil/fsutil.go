// Package fsutil provides file system utilities and safety primitives for
// gopyfix: atomic writes, modification detection, rename backups and
// source-encoding detection for Python files.
package fsutil

import (
	"bytes"
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
)

// Sentinel errors for error categorization via errors.Is.
var (
	// ErrNilFileInfo is returned when a nil FileInfo is passed.
	ErrNilFileInfo = errors.New("nil FileInfo")

	// ErrNotFound indicates the file does not exist.
	ErrNotFound = errors.New("file not found")

	// ErrPermissionDenied indicates a permission error.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrIsDirectory indicates the path is a directory, not a file.
	ErrIsDirectory = errors.New("path is a directory")
)

// FileInfo captures the state of a file at a point in time.
// It is used for modification detection during the fix pipeline.
type FileInfo struct {
	// Path is the absolute or relative path to the file.
	Path string

	// Mode is the file's permission and mode bits.
	Mode os.FileMode

	// ModTime is the file's modification time.
	ModTime time.Time

	// Size is the file size in bytes.
	Size int64

	// Hash is the SHA-256 hash of the file content.
	Hash [32]byte
}

// ReadFile reads a file and returns its content along with metadata.
// The returned FileInfo can be used for modification detection.
func ReadFile(ctx context.Context, path string) ([]byte, *FileInfo, error) {
	select {
	case <-ctx.Done():
		return nil, nil, fmt.Errorf("read file: %w", ctx.Err())
	default:
	}

	stat, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, fmt.Errorf("%w: %s: %w", ErrNotFound, path, err)
		}
		if os.IsPermission(err) {
			return nil, nil, fmt.Errorf("%w: %s: %w", ErrPermissionDenied, path, err)
		}
		return nil, nil, fmt.Errorf("stat %s: %w", path, err)
	}

	if stat.IsDir() {
		return nil, nil, fmt.Errorf("%w: %s", ErrIsDirectory, path)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsPermission(err) {
			return nil, nil, fmt.Errorf("%w: %s: %w", ErrPermissionDenied, path, err)
		}
		return nil, nil, fmt.Errorf("read %s: %w", path, err)
	}

	info := &FileInfo{
		Path:    path,
		Mode:    stat.Mode(),
		ModTime: stat.ModTime(),
		Size:    stat.Size(),
		Hash:    sha256.Sum256(content),
	}

	return content, info, nil
}

// CheckModified returns true if the file has been modified since the given
// FileInfo. Used to detect concurrent external modifications.
//
// The check uses a two-tier approach:
//  1. Quick check: compare mod time and size (fast, catches most cases)
//  2. Hash check: re-read and hash content (catches all changes)
func CheckModified(ctx context.Context, info *FileInfo) (bool, error) {
	if info == nil {
		return false, ErrNilFileInfo
	}

	select {
	case <-ctx.Done():
		return false, fmt.Errorf("check modified: %w", ctx.Err())
	default:
	}

	stat, err := os.Stat(info.Path)
	if err != nil {
		if os.IsNotExist(err) {
			// File was deleted - that's a modification.
			return true, nil
		}
		return false, fmt.Errorf("stat %s: %w", info.Path, err)
	}

	// Quick check: mod time and size.
	if !stat.ModTime().Equal(info.ModTime) || stat.Size() != info.Size {
		return true, nil
	}

	content, err := os.ReadFile(info.Path)
	if err != nil {
		return false, fmt.Errorf("read %s: %w", info.Path, err)
	}

	currentHash := sha256.Sum256(content)
	return currentHash != info.Hash, nil
}

var bomUTF8 = []byte{0xEF, 0xBB, 0xBF}

// PEP 263 coding cookie.
var codingCookieRe = regexp.MustCompile(`coding[:=]\s*([-\w.]+)`)

// DetectEncoding determines the source encoding of Python file content:
// a UTF-8 byte order mark yields the pseudo name "utf-8-bom", otherwise a
// coding cookie in the first two lines decides, with "utf-8" the default.
func DetectEncoding(content []byte) string {
	if bytes.HasPrefix(content, bomUTF8) {
		return "utf-8-bom"
	}
	lines := bytes.SplitN(content, []byte("\n"), 3)
	for i := 0; i < len(lines) && i < 2; i++ {
		if m := codingCookieRe.FindSubmatch(lines[i]); m != nil {
			return string(m[1])
		}
	}
	return "utf-8"
}

// DecodeSource decodes Python file content into text using its detected
// encoding and returns both. Content that cannot be decoded is returned
// as-is with the detected name so the caller can decide.
func DecodeSource(content []byte) (string, string) {
	name := DetectEncoding(content)
	switch name {
	case "utf-8-bom":
		return string(bytes.TrimPrefix(content, bomUTF8)), name
	case "utf-8", "utf8", "ascii":
		return string(content), name
	}
	enc, err := EncodingByName(name)
	if err != nil {
		return string(content), name
	}
	decoded, err := enc.NewDecoder().Bytes(content)
	if err != nil {
		return string(content), name
	}
	return string(decoded), name
}

// encodingAliases maps Python codec spellings that the IANA registry does
// not know to their registered names.
var encodingAliases = map[string]string{
	"latin-1": "latin1",
	"latin_1": "latin1",
	"latin":   "latin1",
	"cp1252":  "windows-1252",
}

// EncodingByName resolves a codec name from a coding cookie. Python
// spellings such as "latin-1" or "iso_8859_15" are accepted alongside
// registered IANA names.
func EncodingByName(name string) (encoding.Encoding, error) {
	lower := strings.ToLower(strings.TrimSpace(name))
	if alias, ok := encodingAliases[lower]; ok {
		lower = alias
	}
	enc, err := ianaindex.IANA.Encoding(lower)
	if err != nil || enc == nil {
		enc, err = ianaindex.IANA.Encoding(strings.ReplaceAll(lower, "_", "-"))
	}
	if err != nil || enc == nil {
		return nil, fmt.Errorf("unknown encoding %q", name)
	}
	return enc, nil
}
