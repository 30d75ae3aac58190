// Copyright © 2025 RNano contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: screen/render.go
// Summary: Builds frames from buffer + viewport state and presents them
// through the differ.

package screen

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/TC999/rnano/buffer"
)

// GutterWidth is the line-number column width when line numbers are on:
// three digits and a space.
const GutterWidth = 4

var (
	styleText    = tcell.StyleDefault
	styleBar     = tcell.StyleDefault.Reverse(true)
	styleGutter  = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	styleCursor  = tcell.StyleDefault.Reverse(true)
	styleSecond  = tcell.StyleDefault.Background(tcell.ColorYellow).Foreground(tcell.ColorBlack)
	styleOverlay = tcell.StyleDefault.Dim(true)
)

// helpPanel is the static help overlay content. Layered over the bottom
// rows of the text area; the keys mirror the dispatcher's binding table.
var helpPanel = []string{
	" RNano help ",
	" ^X  exit        ^O  save ",
	" ^G  close help  M-C multi-cursor ",
	" M-arrows move the second cursor ",
	" arrows/enter/backspace edit as usual ",
}

// Status carries everything the chrome rows need besides the buffer.
type Status struct {
	AppTitle    string
	Message     string
	Prompt      string
	PromptInput string
	HelpVisible bool
}

// Compose renders the buffer, viewport and chrome into a fresh frame:
// title bar on row 0, text area with optional gutter, status line and key
// hints on the last two rows, help panel layered on top when active.
func Compose(buf *buffer.TextBuffer, vp Viewport, st Status) Frame {
	width, height := vp.Width, vp.Height+3
	f := NewFrame(width, height)
	if width == 0 || height < 3 {
		return f
	}

	name := buf.Filename
	if name == "" {
		name = "New Buffer"
	}
	fillRow(f, 0, styleBar)
	f.SetText(0, 0, " "+st.AppTitle+"  "+name, styleBar)

	for lineIdx := vp.Top; lineIdx < buf.LineCount() && vp.Contains(lineIdx); lineIdx++ {
		renderLine(f, lineIdx-vp.Top+1, buf, vp, lineIdx)
	}

	composeStatus(f, buf, st)

	if st.HelpVisible {
		overlayHelp(f, vp)
	}
	return f
}

func renderLine(f Frame, row int, buf *buffer.TextBuffer, vp Viewport, lineIdx int) {
	if vp.Gutter > 0 {
		f.SetText(row, 0, fmt.Sprintf("%3d ", lineIdx+1), styleGutter)
	}

	cursor := buf.Cursor()
	second, hasSecond := buf.Secondary()

	x := vp.Gutter
	col := 0
	for _, ch := range buf.Line(lineIdx) {
		w := runewidth.RuneWidth(ch)
		if w == 0 {
			w = 1
		}
		if x+w > vp.Width {
			break
		}
		style := styleText
		if lineIdx == cursor.Line && col == cursor.Col {
			style = styleCursor
		} else if hasSecond && lineIdx == second.Line && col == second.Col {
			style = styleSecond
		}
		f[row][x] = Cell{Ch: ch, Style: style}
		for i := 1; i < w; i++ {
			f[row][x+i] = Cell{Ch: 0, Style: style}
		}
		x += w
		col++
	}

	// Cursor sitting past the last character gets a highlighted blank.
	if lineIdx == cursor.Line && cursor.Col >= col && x < vp.Width {
		f[row][x] = Cell{Ch: ' ', Style: styleCursor}
	} else if hasSecond && lineIdx == second.Line && second.Col >= col && x < vp.Width {
		f[row][x] = Cell{Ch: ' ', Style: styleSecond}
	}
}

func composeStatus(f Frame, buf *buffer.TextBuffer, st Status) {
	_, height := f.Size()
	statusRow, hintRow := height-2, height-1

	fillRow(f, statusRow, styleBar)
	switch {
	case st.Prompt != "":
		f.SetText(statusRow, 0, " "+st.Prompt+" "+st.PromptInput, styleBar)
	case st.Message != "":
		f.SetText(statusRow, 0, " "+st.Message, styleBar)
	default:
		name := buf.Filename
		if name == "" {
			name = "New Buffer"
		}
		modified := ""
		if buf.Modified() {
			modified = " [Modified]"
		}
		multi := ""
		if _, ok := buf.Secondary(); ok {
			multi = " [multi]"
		}
		c := buf.Cursor()
		line := fmt.Sprintf(" %s - %d lines%s%s  Ln %d, Col %d",
			name, buf.LineCount(), modified, multi, c.Line+1, c.Col+1)
		f.SetText(statusRow, 0, line, styleBar)
	}

	fillRow(f, hintRow, styleBar)
	f.SetText(hintRow, 0, " ^X Exit  ^O Save  ^G Help  M-C Multi-cursor", styleBar)
}

func overlayHelp(f Frame, vp Viewport) {
	start := vp.Height + 1 - len(helpPanel)
	if start < 1 {
		start = 1
	}
	for i, line := range helpPanel {
		row := start + i
		if row >= vp.Height+1 {
			break
		}
		fillRow(f, row, styleOverlay)
		f.SetText(row, 0, line, styleOverlay)
	}
}

func fillRow(f Frame, row int, style tcell.Style) {
	if row < 0 || row >= len(f) {
		return
	}
	for x := range f[row] {
		f[row][x] = Cell{Ch: ' ', Style: style}
	}
}

// Renderer owns the previous frame and pushes minimal updates to the
// driver. Exactly one previous frame is retained; Present replaces it
// with a copy of what was just drawn.
type Renderer struct {
	drv  Driver
	prev Frame
}

// NewRenderer returns a renderer with no previous frame; the first
// Present paints everything.
func NewRenderer(drv Driver) *Renderer {
	return &Renderer{drv: drv}
}

// Present draws next to the terminal. When the dimensions match the
// previous frame only differing runs are written; otherwise the screen is
// cleared once and repainted in full. Output is flushed at the end so the
// frame lands atomically.
func (r *Renderer) Present(next Frame) []Run {
	var runs []Run
	w, h := next.Size()
	pw, ph := r.prev.Size()
	if r.prev == nil || pw != w || ph != h {
		r.drv.Clear()
		for y, row := range next {
			cells := make([]Cell, len(row))
			copy(cells, row)
			runs = append(runs, Run{Row: y, Col: 0, Cells: cells})
		}
	} else {
		runs = Diff(r.prev, next)
	}
	for _, run := range runs {
		r.drv.WriteRun(run.Row, run.Col, run.Cells)
	}
	r.drv.Flush()
	r.prev = next.Clone()
	return runs
}

// Invalidate drops the previous frame so the next Present repaints in
// full. The resize path uses it.
func (r *Renderer) Invalidate() {
	r.prev = nil
}
