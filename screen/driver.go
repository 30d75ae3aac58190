// Copyright © 2025 RNano contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: screen/driver.go
// Summary: Terminal boundary: key events in, cell runs out.

package screen

import (
	"github.com/gdamore/tcell/v2"
)

// Driver is the terminal collaborator. The renderer hands it changed cell
// runs and flushes once per iteration, so a partially drawn frame is never
// observable; the dispatcher reads key events from it.
type Driver interface {
	Size() (int, int)
	WriteRun(row, col int, cells []Cell)
	Flush()
	// Clear wipes the physical screen. Only the resize path calls it.
	Clear()
	PollEvent() tcell.Event
	HasPendingEvent() bool
	Fini()
}

type tcellDriver struct {
	scr tcell.Screen
}

// NewTcellDriver wraps an initialized tcell.Screen. Pass a
// tcell.SimulationScreen to run headless.
func NewTcellDriver(scr tcell.Screen) Driver {
	return &tcellDriver{scr: scr}
}

// Init creates and initializes a real terminal screen and returns a driver
// over it.
func Init() (Driver, error) {
	scr, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := scr.Init(); err != nil {
		return nil, err
	}
	scr.SetStyle(tcell.StyleDefault)
	scr.HideCursor()
	return &tcellDriver{scr: scr}, nil
}

func (d *tcellDriver) Size() (int, int) { return d.scr.Size() }

func (d *tcellDriver) WriteRun(row, col int, cells []Cell) {
	for i, c := range cells {
		if c.Ch == 0 {
			// Continuation of a wide rune; tcell tracks it from the main cell.
			continue
		}
		d.scr.SetContent(col+i, row, c.Ch, nil, c.Style)
	}
}

func (d *tcellDriver) Flush() { d.scr.Show() }

func (d *tcellDriver) Clear() {
	d.scr.Clear()
	d.scr.Sync()
}

func (d *tcellDriver) PollEvent() tcell.Event { return d.scr.PollEvent() }

func (d *tcellDriver) HasPendingEvent() bool { return d.scr.HasPendingEvent() }

func (d *tcellDriver) Fini() { d.scr.Fini() }
