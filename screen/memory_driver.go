// Copyright © 2025 RNano contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: screen/memory_driver.go
// Summary: In-memory driver for tests and headless runs.

package screen

import "github.com/gdamore/tcell/v2"

// MemoryDriver implements Driver against an in-memory grid. It records
// every run and clear it receives, so tests can assert both the final
// screen content and how it was reached.
type MemoryDriver struct {
	width, height int
	grid          Frame

	Runs    []Run
	Clears  int
	Flushes int

	events []tcell.Event
}

// NewMemoryDriver returns a blank width×height in-memory terminal.
func NewMemoryDriver(width, height int) *MemoryDriver {
	return &MemoryDriver{
		width:  width,
		height: height,
		grid:   NewFrame(width, height),
	}
}

func (d *MemoryDriver) Size() (int, int) { return d.width, d.height }

func (d *MemoryDriver) WriteRun(row, col int, cells []Cell) {
	run := Run{Row: row, Col: col, Cells: append([]Cell(nil), cells...)}
	d.Runs = append(d.Runs, run)
	if row < 0 || row >= d.height {
		return
	}
	for i, c := range cells {
		if x := col + i; x >= 0 && x < d.width {
			d.grid[row][x] = c
		}
	}
}

func (d *MemoryDriver) Flush() { d.Flushes++ }

func (d *MemoryDriver) Clear() {
	d.Clears++
	d.grid = NewFrame(d.width, d.height)
}

// Resize changes the reported terminal size and blanks the grid.
func (d *MemoryDriver) Resize(width, height int) {
	d.width, d.height = width, height
	d.grid = NewFrame(width, height)
}

// Grid returns the current in-memory screen content.
func (d *MemoryDriver) Grid() Frame { return d.grid }

// Row returns the visible text of one screen row, trailing blanks trimmed.
func (d *MemoryDriver) Row(y int) string {
	if y < 0 || y >= d.height {
		return ""
	}
	out := make([]rune, 0, d.width)
	for _, c := range d.grid[y] {
		if c.Ch != 0 {
			out = append(out, c.Ch)
		}
	}
	for len(out) > 0 && out[len(out)-1] == ' ' {
		out = out[:len(out)-1]
	}
	return string(out)
}

// QueueEvent appends an event for PollEvent to return.
func (d *MemoryDriver) QueueEvent(ev tcell.Event) {
	d.events = append(d.events, ev)
}

// QueueKeys appends one key event per argument.
func (d *MemoryDriver) QueueKeys(evs ...*tcell.EventKey) {
	for _, ev := range evs {
		d.events = append(d.events, ev)
	}
}

func (d *MemoryDriver) PollEvent() tcell.Event {
	if len(d.events) == 0 {
		return nil
	}
	ev := d.events[0]
	d.events = d.events[1:]
	return ev
}

func (d *MemoryDriver) HasPendingEvent() bool { return len(d.events) > 0 }

func (d *MemoryDriver) Fini() {}
