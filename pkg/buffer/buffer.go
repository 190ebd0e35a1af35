package buffer

import (
	"strings"
	"unicode/utf8"
)

// Snapshot is an immutable view of the buffer at a given revision
type Snapshot struct {
	Text     string
	Revision uint64
}

// Buffer holds the raw markup the user is editing.
// It has a single writer (the edit event) and is read synchronously
// by the preview renderer and the search engine after each write.
type Buffer struct {
	text     string
	revision uint64
}

// New creates a buffer seeded with the initial content
func New(initial string) *Buffer {
	return &Buffer{text: initial}
}

// Text returns the current content
func (b *Buffer) Text() string {
	return b.text
}

// Revision returns the number of content-changing writes so far
func (b *Buffer) Revision() uint64 {
	return b.revision
}

// Set replaces the content. It reports whether the content changed;
// the revision is bumped only when it did.
func (b *Buffer) Set(text string) bool {
	if text == b.text {
		return false
	}
	b.text = text
	b.revision++
	return true
}

// Snapshot captures the current text and revision
func (b *Buffer) Snapshot() Snapshot {
	return Snapshot{Text: b.text, Revision: b.revision}
}

// Trimmed returns the content with surrounding whitespace removed
func (b *Buffer) Trimmed() string {
	return strings.TrimSpace(b.text)
}

// IsBlank checks if the buffer holds nothing but whitespace
func (b *Buffer) IsBlank() bool {
	return b.Trimmed() == ""
}

// Position maps a byte offset to a zero-based line and a rune column
func (s Snapshot) Position(offset int) (line, col int) {
	return Position(s.Text, offset)
}

// Position maps a byte offset in text to a zero-based line and a rune column.
// Offsets outside the text are clamped.
func Position(text string, offset int) (line, col int) {
	if offset < 0 {
		offset = 0
	}
	if offset > len(text) {
		offset = len(text)
	}

	before := text[:offset]
	line = strings.Count(before, "\n")
	lineStart := strings.LastIndexByte(before, '\n') + 1
	col = utf8.RuneCountInString(before[lineStart:])
	return line, col
}

// CountLines counts lines the way an editor shows them
func CountLines(text string) int {
	if text == "" {
		return 0
	}
	return strings.Count(text, "\n") + 1
}
