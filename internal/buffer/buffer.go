// Package buffer provides a line-addressed text buffer and the
// index-shift-safe primitives for moving a line within it.
package buffer

import (
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyText indicates a mutation was requested with nothing to insert.
// The buffer is left untouched.
var ErrEmptyText = errors.New("empty text")

// Buffer is one document's content as a sequence of lines.
// It remembers whether the source text ended with a newline so that
// Text() round-trips byte-for-byte.
type Buffer struct {
	lines           []string
	trailingNewline bool
}

// FromText splits full document text into a buffer.
func FromText(text string) *Buffer {
	if text == "" {
		return &Buffer{}
	}
	lines := strings.Split(text, "\n")
	trailing := strings.HasSuffix(text, "\n")
	if trailing {
		lines = lines[:len(lines)-1]
	}
	return &Buffer{lines: lines, trailingNewline: trailing}
}

// FromLines builds a buffer from explicit lines. The rejoined text ends
// with a newline, the usual shape for files on disk.
func FromLines(lines []string) *Buffer {
	copied := make([]string, len(lines))
	copy(copied, lines)
	return &Buffer{lines: copied, trailingNewline: true}
}

// Len returns the number of lines.
func (b *Buffer) Len() int { return len(b.lines) }

// Line returns the line at index i.
func (b *Buffer) Line(i int) (string, bool) {
	if i < 0 || i >= len(b.lines) {
		return "", false
	}
	return b.lines[i], true
}

// Lines returns a copy of all lines.
func (b *Buffer) Lines() []string {
	out := make([]string, len(b.lines))
	copy(out, b.lines)
	return out
}

// Text rejoins the buffer into full document text.
func (b *Buffer) Text() string {
	if len(b.lines) == 0 {
		return ""
	}
	text := strings.Join(b.lines, "\n")
	if b.trailingNewline {
		text += "\n"
	}
	return text
}

// InsertLine inserts text as a new line at index i, shifting every line at
// or after i down by one. i is clamped to [0, Len], so an index past the
// end appends.
func (b *Buffer) InsertLine(i int, text string) {
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

// DeleteLine removes the line at index i, shifting later lines up by one.
// Out-of-range indexes are a no-op.
func (b *Buffer) DeleteLine(i int) bool {
	if i < 0 || i >= len(b.lines) {
		return false
	}
	b.lines = append(b.lines[:i], b.lines[i+1:]...)
	return true
}

// MoveLine relocates text from sourceLine to insertLine within this buffer.
// Both indexes address the buffer as it is NOW; the insert and the delete
// are sequenced so neither invalidates the other's coordinates:
//
//   - moving up (insertLine <= sourceLine): insert first, which pushes the
//     source down to sourceLine+1, then delete there;
//   - moving down (insertLine > sourceLine): delete first, then insert at
//     the original insertLine. The delete only shifts lines below the
//     source, and the insert point is past it, so no readjustment.
//
// Returns the line the cursor should rest on. The line count is unchanged.
func (b *Buffer) MoveLine(sourceLine, insertLine int, text string) (int, error) {
	if strings.TrimSpace(text) == "" {
		return 0, ErrEmptyText
	}
	if sourceLine < 0 || sourceLine >= len(b.lines) {
		return 0, fmt.Errorf("source line %d out of range [0, %d)", sourceLine, len(b.lines))
	}
	if insertLine < 0 {
		return 0, fmt.Errorf("insert line %d out of range", insertLine)
	}

	if insertLine <= sourceLine {
		b.InsertLine(insertLine, text)
		b.DeleteLine(sourceLine + 1)
		return insertLine, nil
	}

	b.DeleteLine(sourceLine)
	b.InsertLine(insertLine, text)
	cursor := sourceLine
	if cursor > len(b.lines)-1 {
		cursor = len(b.lines) - 1
	}
	return cursor, nil
}

// SpliceText inserts text as a new line at the given index of full document
// text and returns the rejoined result. Used for documents that are not
// open in a live buffer: read, splice, write back.
func SpliceText(fullText string, line int, text string) string {
	b := FromText(fullText)
	// The spliced line always ends with a separator, even when it lands at
	// the end of a file that had no final newline.
	b.trailingNewline = true
	b.InsertLine(line, text)
	return b.Text()
}
