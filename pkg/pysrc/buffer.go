// Package pysrc provides the mutable source line buffer and the structural
// analyses (logical lines, indentation, multiline strings) used by the fix
// handlers.
package pysrc

import "strings"

// Buffer is an owned, growable sequence of physical source lines, each
// retaining its line terminator. Indexing is 0-based. The constructor takes
// a defensive copy so callers never alias the working buffer.
type Buffer struct {
	lines []string
}

// NewBuffer creates a buffer from a copy of lines.
func NewBuffer(lines []string) *Buffer {
	owned := make([]string, len(lines))
	copy(owned, lines)
	return &Buffer{lines: owned}
}

// FromSource creates a buffer by splitting source into terminated lines.
func FromSource(source string) *Buffer {
	return &Buffer{lines: splitKeepEnds(source)}
}

// Len returns the number of physical lines.
func (b *Buffer) Len() int {
	return len(b.lines)
}

// Line returns line i. Out-of-range indexes return the empty string.
func (b *Buffer) Line(i int) string {
	if i < 0 || i >= len(b.lines) {
		return ""
	}
	return b.lines[i]
}

// SetLine replaces line i. Out-of-range indexes are ignored.
func (b *Buffer) SetLine(i int, text string) {
	if i < 0 || i >= len(b.lines) {
		return
	}
	b.lines[i] = text
}

// InsertAt splices text in before line i, growing the buffer by one line.
func (b *Buffer) InsertAt(i int, text string) {
	if i < 0 {
		i = 0
	}
	if i > len(b.lines) {
		i = len(b.lines)
	}
	b.lines = append(b.lines, "")
	copy(b.lines[i+1:], b.lines[i:])
	b.lines[i] = text
}

// DeleteAt removes line i, shrinking the buffer by one line.
func (b *Buffer) DeleteAt(i int) {
	if i < 0 || i >= len(b.lines) {
		return
	}
	b.lines = append(b.lines[:i], b.lines[i+1:]...)
}

// Slice returns a copy of lines [i, j).
func (b *Buffer) Slice(i, j int) []string {
	if i < 0 {
		i = 0
	}
	if j > len(b.lines) {
		j = len(b.lines)
	}
	if i >= j {
		return nil
	}
	out := make([]string, j-i)
	copy(out, b.lines[i:j])
	return out
}

// Lines returns a copy of all lines.
func (b *Buffer) Lines() []string {
	return b.Slice(0, len(b.lines))
}

// Join returns the full source text.
func (b *Buffer) Join() string {
	return strings.Join(b.lines, "")
}

func splitKeepEnds(source string) []string {
	if source == "" {
		return nil
	}
	var lines []string
	start := 0
	for i := 0; i < len(source); i++ {
		if source[i] == '\n' {
			lines = append(lines, source[start:i+1])
			start = i + 1
		}
	}
	if start < len(source) {
		lines = append(lines, source[start:])
	}
	return lines
}
