// Copyright © 2025 RNano contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package input

import (
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/TC999/rnano/buffer"
	"github.com/TC999/rnano/screen"
)

func key(k tcell.Key, r rune, mods tcell.ModMask) *tcell.EventKey {
	return tcell.NewEventKey(k, r, mods)
}

func TestBindingTable(t *testing.T) {
	cases := []struct {
		name string
		ev   *tcell.EventKey
		want Command
	}{
		{"ctrl-x quits", key(tcell.KeyCtrlX, 0, tcell.ModCtrl), Command{Action: ActionQuit}},
		{"ctrl-o saves", key(tcell.KeyCtrlO, 0, tcell.ModCtrl), Command{Action: ActionSave}},
		{"ctrl-g toggles help", key(tcell.KeyCtrlG, 0, tcell.ModCtrl), Command{Action: ActionToggleHelp}},
		{"enter", key(tcell.KeyEnter, 0, 0), Command{Action: ActionNewline}},
		{"backspace", key(tcell.KeyBackspace2, 0, 0), Command{Action: ActionBackspace}},
		{"legacy backspace", key(tcell.KeyBackspace, 0, 0), Command{Action: ActionBackspace}},
		{"up", key(tcell.KeyUp, 0, 0), Command{Action: ActionMove, Dir: buffer.DirUp}},
		{"right", key(tcell.KeyRight, 0, 0), Command{Action: ActionMove, Dir: buffer.DirRight}},
		{"alt-left moves secondary", key(tcell.KeyLeft, 0, tcell.ModAlt), Command{Action: ActionMoveSecondary, Dir: buffer.DirLeft}},
		{"alt-c toggles secondary", key(tcell.KeyRune, 'c', tcell.ModAlt), Command{Action: ActionToggleSecondary}},
		{"printable rune", key(tcell.KeyRune, 'q', 0), Command{Action: ActionInsert, Ch: 'q'}},
		{"escape cancels", key(tcell.KeyEscape, 0, 0), Command{Action: ActionCancel}},
		{"unbound key is a no-op", key(tcell.KeyF5, 0, 0), Command{Action: ActionNone}},
		{"unbound alt rune is a no-op", key(tcell.KeyRune, 'z', tcell.ModAlt), Command{Action: ActionNone}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			drv := screen.NewMemoryDriver(10, 5)
			drv.QueueEvent(tc.ev)
			d := NewDispatcher(drv)
			if got := d.Next(); got != tc.want {
				t.Fatalf("got %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestHelpModeFiltersInput(t *testing.T) {
	drv := screen.NewMemoryDriver(10, 5)
	drv.QueueKeys(
		key(tcell.KeyRune, 'a', 0),
		key(tcell.KeyEnter, 0, 0),
		key(tcell.KeyCtrlG, 0, tcell.ModCtrl),
		key(tcell.KeyCtrlX, 0, tcell.ModCtrl),
	)
	d := NewDispatcher(drv)
	d.SetMode(ModeHelp)

	if got := d.Next(); got.Action != ActionNone {
		t.Fatalf("printable in help mode = %+v, want no-op", got)
	}
	if got := d.Next(); got.Action != ActionNone {
		t.Fatalf("enter in help mode = %+v, want no-op", got)
	}
	if got := d.Next(); got.Action != ActionToggleHelp {
		t.Fatalf("ctrl-g in help mode = %+v, want toggle", got)
	}
	if got := d.Next(); got.Action != ActionQuit {
		t.Fatalf("ctrl-x in help mode = %+v, want quit", got)
	}
}

func TestDuplicateEventsCollapse(t *testing.T) {
	drv := screen.NewMemoryDriver(10, 5)
	// The same physical press delivered twice within one poll.
	drv.QueueKeys(
		key(tcell.KeyRune, 'a', 0),
		key(tcell.KeyRune, 'a', 0),
		key(tcell.KeyRune, 'b', 0),
	)
	d := NewDispatcher(drv)

	if got := d.Next(); got.Action != ActionInsert || got.Ch != 'a' {
		t.Fatalf("first command = %+v, want insert a", got)
	}
	if got := d.Next(); got.Action != ActionInsert || got.Ch != 'b' {
		t.Fatalf("second command = %+v, want insert b (duplicate collapsed)", got)
	}
	if drv.HasPendingEvent() {
		t.Fatalf("no events should remain")
	}
}

func TestDistinctEventsAreNotCollapsed(t *testing.T) {
	drv := screen.NewMemoryDriver(10, 5)
	drv.QueueKeys(
		key(tcell.KeyRune, 'a', 0),
		key(tcell.KeyRune, 'b', 0),
	)
	d := NewDispatcher(drv)

	if got := d.Next(); got.Ch != 'a' {
		t.Fatalf("first = %+v", got)
	}
	if got := d.Next(); got.Ch != 'b' {
		t.Fatalf("carried event lost: %+v", got)
	}
}

func TestResizeEvent(t *testing.T) {
	drv := screen.NewMemoryDriver(10, 5)
	drv.QueueEvent(tcell.NewEventResize(100, 40))
	d := NewDispatcher(drv)
	if got := d.Next(); got.Action != ActionResize {
		t.Fatalf("resize event = %+v, want ActionResize", got)
	}
}
