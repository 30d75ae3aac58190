// Copyright © 2025 RNano contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: screen/cell.go
// Summary: Cell and Frame types backing the diff renderer.

package screen

import "github.com/gdamore/tcell/v2"

// Cell is one character position on the terminal plus its display
// attributes. A Ch of 0 marks the continuation of a wide rune in the
// preceding cell; drivers skip it on output.
type Cell struct {
	Ch    rune
	Style tcell.Style
}

// Frame is a fixed-size grid of cells mirroring the physical terminal,
// indexed [row][col].
type Frame [][]Cell

// NewFrame returns a width×height frame filled with blank cells.
func NewFrame(width, height int) Frame {
	f := make(Frame, height)
	for y := range f {
		f[y] = make([]Cell, width)
		for x := range f[y] {
			f[y][x] = Cell{Ch: ' ', Style: tcell.StyleDefault}
		}
	}
	return f
}

// Size returns the frame's width and height.
func (f Frame) Size() (int, int) {
	if len(f) == 0 {
		return 0, 0
	}
	return len(f[0]), len(f)
}

// Clone returns a deep copy. The renderer keeps a copy, never a reference,
// as its previous frame.
func (f Frame) Clone() Frame {
	out := make(Frame, len(f))
	for y, row := range f {
		out[y] = make([]Cell, len(row))
		copy(out[y], row)
	}
	return out
}

// SetText writes s starting at (row, col) with the given style, clipping
// at the right edge.
func (f Frame) SetText(row, col int, s string, style tcell.Style) {
	if row < 0 || row >= len(f) {
		return
	}
	x := col
	for _, ch := range s {
		if x < 0 || x >= len(f[row]) {
			break
		}
		f[row][x] = Cell{Ch: ch, Style: style}
		x++
	}
}
