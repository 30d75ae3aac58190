// Copyright © 2025 RNano contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: input/dispatcher.go
// Summary: Maps raw tcell key events onto edit commands.
// Notes: Collapses duplicate key events some input layers emit for a
// single physical press.

package input

import (
	"github.com/gdamore/tcell/v2"

	"github.com/TC999/rnano/buffer"
	"github.com/TC999/rnano/screen"
)

// Action identifies an edit command. The set is closed; the processor
// switches over it exhaustively.
type Action int

const (
	ActionNone Action = iota
	ActionInsert
	ActionNewline
	ActionBackspace
	ActionMove
	ActionMoveSecondary
	ActionToggleSecondary
	ActionSave
	ActionQuit
	ActionToggleHelp
	ActionCancel
	ActionResize
)

// Command is one decoded edit command. Ch is set for ActionInsert, Dir
// for the movement actions.
type Command struct {
	Action Action
	Ch     rune
	Dir    buffer.Direction
}

// Mode selects which bindings are honored.
type Mode int

const (
	ModeNormal Mode = iota
	// ModeHelp only honors closing the overlay and quitting.
	ModeHelp
)

// Dispatcher turns raw key events into commands through a static binding
// table. Next blocks on the driver until an event arrives.
type Dispatcher struct {
	drv  screen.Driver
	mode Mode

	// carried holds an event read while collapsing duplicates that turned
	// out to be distinct; it is served before polling again.
	carried tcell.Event
}

// NewDispatcher returns a dispatcher reading from drv in normal mode.
func NewDispatcher(drv screen.Driver) *Dispatcher {
	return &Dispatcher{drv: drv}
}

// SetMode switches the active binding table.
func (d *Dispatcher) SetMode(m Mode) { d.mode = m }

// Mode returns the active binding table.
func (d *Dispatcher) Mode() Mode { return d.mode }

// Next reads one logical key event and maps it to a command. Identical
// raw key events already pending in the same poll are collapsed into one
// before mapping, compensating for input layers that deliver a single
// press twice.
func (d *Dispatcher) Next() Command {
	ev := d.carried
	d.carried = nil
	if ev == nil {
		ev = d.drv.PollEvent()
	}

	switch ev := ev.(type) {
	case *tcell.EventResize:
		return Command{Action: ActionResize}
	case *tcell.EventKey:
		d.collapseDuplicates(ev)
		return d.mapKey(ev)
	default:
		return Command{Action: ActionNone}
	}
}

func (d *Dispatcher) collapseDuplicates(ev *tcell.EventKey) {
	for d.drv.HasPendingEvent() {
		next := d.drv.PollEvent()
		dup, ok := next.(*tcell.EventKey)
		if ok && dup.Key() == ev.Key() && dup.Rune() == ev.Rune() && dup.Modifiers() == ev.Modifiers() {
			continue
		}
		d.carried = next
		return
	}
}

func (d *Dispatcher) mapKey(ev *tcell.EventKey) Command {
	if d.mode == ModeHelp {
		switch ev.Key() {
		case tcell.KeyCtrlG:
			return Command{Action: ActionToggleHelp}
		case tcell.KeyCtrlX:
			return Command{Action: ActionQuit}
		}
		return Command{Action: ActionNone}
	}

	switch ev.Key() {
	case tcell.KeyCtrlX:
		return Command{Action: ActionQuit}
	case tcell.KeyCtrlO:
		return Command{Action: ActionSave}
	case tcell.KeyCtrlG:
		return Command{Action: ActionToggleHelp}
	case tcell.KeyEscape:
		return Command{Action: ActionCancel}
	case tcell.KeyEnter:
		return Command{Action: ActionNewline}
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return Command{Action: ActionBackspace}
	case tcell.KeyUp:
		return moveCommand(buffer.DirUp, ev.Modifiers())
	case tcell.KeyDown:
		return moveCommand(buffer.DirDown, ev.Modifiers())
	case tcell.KeyLeft:
		return moveCommand(buffer.DirLeft, ev.Modifiers())
	case tcell.KeyRight:
		return moveCommand(buffer.DirRight, ev.Modifiers())
	case tcell.KeyRune:
		if ev.Modifiers()&tcell.ModAlt != 0 {
			if ev.Rune() == 'c' || ev.Rune() == 'C' {
				return Command{Action: ActionToggleSecondary}
			}
			return Command{Action: ActionNone}
		}
		return Command{Action: ActionInsert, Ch: ev.Rune()}
	}
	return Command{Action: ActionNone}
}

func moveCommand(dir buffer.Direction, mods tcell.ModMask) Command {
	if mods&tcell.ModAlt != 0 {
		return Command{Action: ActionMoveSecondary, Dir: dir}
	}
	return Command{Action: ActionMove, Dir: dir}
}
