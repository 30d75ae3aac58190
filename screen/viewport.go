// Copyright © 2025 RNano contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: screen/viewport.go
// Summary: Maps buffer rows to the visible terminal window.

package screen

// Viewport is the window of buffer rows currently on screen. Top is the
// first visible buffer line; Gutter is the width of the line-number column
// (0 when line numbers are off).
type Viewport struct {
	Top    int
	Width  int
	Height int
	Gutter int
}

// Track scrolls the viewport the minimum distance needed to keep
// cursorLine visible, then clamps Top to [0, totalLines-Height]. Pure in
// everything but the previous Top, so scroll behavior is deterministic.
func (v *Viewport) Track(cursorLine, totalLines int) {
	if v.Height <= 0 {
		v.Top = 0
		return
	}
	if cursorLine < v.Top {
		v.Top = cursorLine
	} else if cursorLine > v.Top+v.Height-1 {
		v.Top = cursorLine - v.Height + 1
	}
	if limit := totalLines - v.Height; v.Top > limit {
		v.Top = limit
	}
	if v.Top < 0 {
		v.Top = 0
	}
}

// Contains reports whether buffer line i is inside the window.
func (v *Viewport) Contains(i int) bool {
	return i >= v.Top && i < v.Top+v.Height
}
