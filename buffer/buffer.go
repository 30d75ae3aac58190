// Copyright © 2025 RNano contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: buffer/buffer.go
// Summary: In-memory text buffer with cursor state and edit operations.
// Usage: Owned by the editor loop; mutated by edit commands, serialized on save.

package buffer

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// Direction identifies a cursor movement.
type Direction int

const (
	DirUp Direction = iota
	DirDown
	DirLeft
	DirRight
)

// LineEnding is the terminator convention observed when a file was loaded.
// It is re-emitted verbatim on save so a round-trip is byte identical.
type LineEnding int

const (
	EndingLF LineEnding = iota
	EndingCRLF
)

func (e LineEnding) String() string {
	if e == EndingCRLF {
		return "\r\n"
	}
	return "\n"
}

// Position addresses a point in the buffer. Col is a rune offset into the
// line, never a byte offset, so multi-byte characters stay addressable.
type Position struct {
	Line int
	Col  int
}

// TextBuffer holds the editable document: an ordered slice of lines (no
// embedded terminators), the primary cursor, an optional secondary cursor,
// and the modified flag that gates the exit confirmation.
type TextBuffer struct {
	lines    []string
	cursor   Position
	second   *Position
	modified bool

	Filename string

	ending   LineEnding
	trailing bool // document ended with a terminator on load
}

// New returns an empty buffer holding a single empty line.
func New() *TextBuffer {
	return &TextBuffer{lines: []string{""}}
}

// Load builds a buffer from a byte stream. A CRLF anywhere selects CRLF as
// the convention re-emitted on save. Input that is not valid UTF-8 is
// rejected rather than silently re-encoded.
func Load(r io.Reader) (*TextBuffer, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read contents: %w", err)
	}
	if !utf8.Valid(data) {
		return nil, fmt.Errorf("contents are not valid UTF-8")
	}

	b := New()
	if len(data) == 0 {
		return b, nil
	}

	// Lines split on every newline regardless of the detected convention,
	// so a mixed-terminator file still yields terminator-free lines. Save
	// re-emits the detected convention throughout.
	text := string(data)
	if strings.Contains(text, "\r\n") {
		b.ending = EndingCRLF
	}
	if strings.HasSuffix(text, "\n") {
		b.trailing = true
		text = strings.TrimSuffix(text, "\n")
	}
	b.lines = strings.Split(text, "\n")
	for i, line := range b.lines {
		b.lines[i] = strings.TrimSuffix(line, "\r")
	}
	return b, nil
}

// Save serializes the buffer using the recorded terminator convention and
// clears the modified flag once every byte has been written.
func (b *TextBuffer) Save(w io.Writer) error {
	term := b.ending.String()
	out := strings.Join(b.lines, term)
	if b.trailing {
		out += term
	}
	if _, err := io.WriteString(w, out); err != nil {
		return fmt.Errorf("write contents: %w", err)
	}
	b.modified = false
	return nil
}

// Cursor returns the primary cursor position.
func (b *TextBuffer) Cursor() Position { return b.cursor }

// Secondary returns the secondary cursor position and whether it is active.
func (b *TextBuffer) Secondary() (Position, bool) {
	if b.second == nil {
		return Position{}, false
	}
	return *b.second, true
}

// Modified reports whether the buffer has unsaved changes.
func (b *TextBuffer) Modified() bool { return b.modified }

// LineCount returns the number of lines. Never zero.
func (b *TextBuffer) LineCount() int { return len(b.lines) }

// Line returns the content of line i, or "" when i is out of range.
func (b *TextBuffer) Line(i int) string {
	if i < 0 || i >= len(b.lines) {
		return ""
	}
	return b.lines[i]
}

// Ending returns the terminator convention recorded on load.
func (b *TextBuffer) Ending() LineEnding { return b.ending }

func lineLen(s string) int { return utf8.RuneCountInString(s) }

// InsertChar inserts ch at the primary cursor and advances it one column.
// With the secondary cursor active the character is inserted there too.
func (b *TextBuffer) InsertChar(ch rune) Position {
	b.cursor = b.insertAt(b.cursor, ch)
	if b.second != nil {
		p := b.insertAt(*b.second, ch)
		b.second = &p
	}
	b.modified = true
	return b.cursor
}

func (b *TextBuffer) insertAt(pos Position, ch rune) Position {
	line := []rune(b.lines[pos.Line])
	col := pos.Col
	if col > len(line) {
		col = len(line)
	}
	line = append(line[:col], append([]rune{ch}, line[col:]...)...)
	b.lines[pos.Line] = string(line)
	return Position{Line: pos.Line, Col: col + 1}
}

// InsertNewline splits the current line at the cursor column. The cursor
// lands on column 0 of the freshly created line.
func (b *TextBuffer) InsertNewline() Position {
	line := []rune(b.lines[b.cursor.Line])
	col := b.cursor.Col
	if col > len(line) {
		col = len(line)
	}
	left, right := string(line[:col]), string(line[col:])
	b.lines[b.cursor.Line] = left
	b.lines = append(b.lines[:b.cursor.Line+1],
		append([]string{right}, b.lines[b.cursor.Line+1:]...)...)
	b.cursor = Position{Line: b.cursor.Line + 1, Col: 0}
	b.modified = true
	return b.cursor
}

// DeleteBackward removes the character before the cursor. At column 0 of a
// non-first line it joins the current line onto the previous one and the
// cursor lands at the join point. At the very start of the buffer it is a
// no-op and the modified flag is left alone.
func (b *TextBuffer) DeleteBackward() Position {
	switch {
	case b.cursor.Col > 0:
		line := []rune(b.lines[b.cursor.Line])
		col := b.cursor.Col
		if col > len(line) {
			col = len(line)
		}
		b.lines[b.cursor.Line] = string(append(line[:col-1:col-1], line[col:]...))
		b.cursor.Col = col - 1
		b.modified = true
	case b.cursor.Line > 0:
		removed := b.lines[b.cursor.Line]
		b.lines = append(b.lines[:b.cursor.Line], b.lines[b.cursor.Line+1:]...)
		b.cursor.Line--
		b.cursor.Col = lineLen(b.lines[b.cursor.Line])
		b.lines[b.cursor.Line] += removed
		b.modified = true
	}
	return b.cursor
}

// MoveCursor moves the primary cursor, clamped to the buffer bounds. Left
// at column 0 wraps to the end of the previous line; Right at end of line
// wraps to the start of the next. Content and the modified flag are never
// touched.
func (b *TextBuffer) MoveCursor(dir Direction) Position {
	b.cursor = b.move(b.cursor, dir)
	return b.cursor
}

func (b *TextBuffer) move(p Position, dir Direction) Position {
	switch dir {
	case DirUp:
		if p.Line > 0 {
			p.Line--
			p.Col = min(p.Col, lineLen(b.lines[p.Line]))
		}
	case DirDown:
		if p.Line < len(b.lines)-1 {
			p.Line++
			p.Col = min(p.Col, lineLen(b.lines[p.Line]))
		}
	case DirLeft:
		if p.Col > 0 {
			p.Col--
		} else if p.Line > 0 {
			p.Line--
			p.Col = lineLen(b.lines[p.Line])
		}
	case DirRight:
		if p.Col < lineLen(b.lines[p.Line]) {
			p.Col++
		} else if p.Line < len(b.lines)-1 {
			p.Line++
			p.Col = 0
		}
	}
	return p
}

// SetCursor places the primary cursor, clamping to the buffer bounds.
func (b *TextBuffer) SetCursor(p Position) Position {
	if p.Line < 0 {
		p.Line = 0
	}
	if p.Line >= len(b.lines) {
		p.Line = len(b.lines) - 1
	}
	if p.Col < 0 {
		p.Col = 0
	}
	if n := lineLen(b.lines[p.Line]); p.Col > n {
		p.Col = n
	}
	b.cursor = p
	return b.cursor
}

// ToggleSecondary enables the secondary cursor at the primary position, or
// disables it when already active.
func (b *TextBuffer) ToggleSecondary() bool {
	if b.second != nil {
		b.second = nil
		return false
	}
	p := b.cursor
	b.second = &p
	return true
}

// MoveSecondary moves the secondary cursor with the same clamping rules as
// the primary. Enables it at the primary position when inactive.
func (b *TextBuffer) MoveSecondary(dir Direction) Position {
	if b.second == nil {
		p := b.cursor
		b.second = &p
	}
	p := b.move(*b.second, dir)
	b.second = &p
	return p
}

// Contents joins the lines with the recorded terminator. Test helper and
// status reporting only; Save is the persistence path.
func (b *TextBuffer) Contents() string {
	out := strings.Join(b.lines, b.ending.String())
	if b.trailing {
		out += b.ending.String()
	}
	return out
}
