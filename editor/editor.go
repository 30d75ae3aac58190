// Copyright © 2025 RNano contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: editor/editor.go
// Summary: Command processor and event loop tying buffer, viewport,
// renderer and dispatcher together.

package editor

import (
	"fmt"
	"log"

	"github.com/TC999/rnano/buffer"
	"github.com/TC999/rnano/history"
	"github.com/TC999/rnano/input"
	"github.com/TC999/rnano/screen"
	"github.com/TC999/rnano/version"
)

// ExitState drives the two-step quit confirmation. The loop only ends at
// StateExited; a single quit keystroke over a modified buffer merely
// reaches StateExitPending.
type ExitState int

const (
	StateEditing ExitState = iota
	StateExitPending
	StateExited
)

const exitPrompt = "Buffer modified: ^O save and exit, ^X discard and exit, any other key cancels"

// Options tunes a new editor.
type Options struct {
	LineNumbers bool
	History     *history.Store
}

// Editor owns all mutable state of one editing session. Every field is
// touched only from Run's loop; components receive it by reference each
// iteration and keep no copies of their own.
type Editor struct {
	drv  screen.Driver
	buf  *buffer.TextBuffer
	vp   screen.Viewport
	rend *screen.Renderer
	disp *input.Dispatcher
	hist *history.Store

	state       ExitState
	status      string
	helpVisible bool

	// Save-as prompt. pendingExit marks a prompt launched while exiting,
	// so a successful prompted save finishes the quit.
	promptActive bool
	promptInput  []rune
	pendingExit  bool
}

// New assembles an editor over drv editing buf. When a history store is
// given and the buffer is named, the cursor restores to its last recorded
// position.
func New(drv screen.Driver, buf *buffer.TextBuffer, opts Options) *Editor {
	e := &Editor{
		drv:  drv,
		buf:  buf,
		rend: screen.NewRenderer(drv),
		disp: input.NewDispatcher(drv),
		hist: opts.History,
	}
	w, h := drv.Size()
	e.vp = screen.Viewport{Width: w, Height: textHeight(h)}
	if opts.LineNumbers {
		e.vp.Gutter = screen.GutterWidth
	}

	if e.hist != nil && buf.Filename != "" {
		line, col, ok, err := e.hist.Position(buf.Filename)
		if err != nil {
			log.Printf("History: %v", err)
		} else if ok {
			buf.SetCursor(buffer.Position{Line: line, Col: col})
		}
	}
	e.track()
	return e
}

// SetStatus replaces the transient status message.
func (e *Editor) SetStatus(msg string) { e.status = msg }

// State returns the current exit state.
func (e *Editor) State() ExitState { return e.state }

// Run renders the first frame, then applies one command per input event
// until the exit machine lands on StateExited.
func (e *Editor) Run() error {
	e.refresh()
	for e.state != StateExited {
		cmd := e.disp.Next()
		e.apply(cmd)
		if e.state == StateExited {
			break
		}
		e.refresh()
	}
	e.recordPosition()
	return nil
}

func (e *Editor) recordPosition() {
	if e.hist == nil || e.buf.Filename == "" {
		return
	}
	c := e.buf.Cursor()
	if err := e.hist.Record(e.buf.Filename, c.Line, c.Col); err != nil {
		log.Printf("History: %v", err)
	}
}

// apply routes one command through the prompt, the exit machine, or the
// normal editing path, then re-tracks the viewport.
func (e *Editor) apply(cmd input.Command) {
	if cmd.Action == input.ActionResize {
		e.handleResize()
		return
	}
	switch {
	case e.promptActive:
		e.applyPrompt(cmd)
	case e.state == StateExitPending:
		e.applyExitPending(cmd)
	default:
		e.applyEditing(cmd)
	}
	e.track()
}

func (e *Editor) applyEditing(cmd input.Command) {
	switch cmd.Action {
	case input.ActionInsert:
		e.buf.InsertChar(cmd.Ch)
		e.status = ""
	case input.ActionNewline:
		e.buf.InsertNewline()
		e.status = ""
	case input.ActionBackspace:
		e.buf.DeleteBackward()
		e.status = ""
	case input.ActionMove:
		e.buf.MoveCursor(cmd.Dir)
	case input.ActionMoveSecondary:
		e.buf.MoveSecondary(cmd.Dir)
	case input.ActionToggleSecondary:
		if e.buf.ToggleSecondary() {
			e.status = "Multi-cursor enabled"
		} else {
			e.status = "Multi-cursor disabled"
		}
	case input.ActionSave:
		e.startSave(false)
	case input.ActionQuit:
		if e.buf.Modified() {
			e.state = StateExitPending
			e.status = exitPrompt
		} else {
			e.state = StateExited
		}
	case input.ActionToggleHelp:
		e.toggleHelp()
	case input.ActionCancel, input.ActionNone:
		// Unbound input never reaches the buffer.
	}
}

// applyExitPending is the second half of the quit confirmation: quit
// again discards, save writes and exits, anything else cancels and is
// applied as a normal command.
func (e *Editor) applyExitPending(cmd input.Command) {
	switch cmd.Action {
	case input.ActionQuit:
		e.state = StateExited
	case input.ActionSave:
		e.state = StateEditing
		e.startSave(true)
	default:
		e.state = StateEditing
		e.status = ""
		e.applyEditing(cmd)
	}
}

// startSave saves to the current filename, or opens the save-as prompt
// when the buffer is unnamed. exiting marks that a successful save should
// finish a pending quit.
func (e *Editor) startSave(exiting bool) {
	if e.buf.Filename == "" {
		e.promptActive = true
		e.promptInput = nil
		e.pendingExit = exiting
		return
	}
	if err := e.save(e.buf.Filename); err != nil {
		e.status = fmt.Sprintf("Save failed: %v", err)
		return
	}
	e.status = fmt.Sprintf("Wrote %d lines to %s", e.buf.LineCount(), e.buf.Filename)
	if exiting {
		e.state = StateExited
	}
}

func (e *Editor) applyPrompt(cmd input.Command) {
	switch cmd.Action {
	case input.ActionInsert:
		e.promptInput = append(e.promptInput, cmd.Ch)
	case input.ActionBackspace:
		if len(e.promptInput) > 0 {
			e.promptInput = e.promptInput[:len(e.promptInput)-1]
		}
	case input.ActionNewline:
		name := string(e.promptInput)
		e.promptActive = false
		if name == "" {
			e.status = "Save cancelled: empty file name"
			e.pendingExit = false
			return
		}
		e.buf.Filename = name
		if err := e.save(name); err != nil {
			e.status = fmt.Sprintf("Save failed: %v", err)
			e.pendingExit = false
			return
		}
		e.status = fmt.Sprintf("Wrote %d lines to %s", e.buf.LineCount(), name)
		if e.pendingExit {
			e.state = StateExited
		}
		e.pendingExit = false
	case input.ActionCancel, input.ActionQuit:
		e.promptActive = false
		e.pendingExit = false
		e.status = "Save cancelled"
	}
}

func (e *Editor) toggleHelp() {
	e.helpVisible = !e.helpVisible
	if e.helpVisible {
		e.disp.SetMode(input.ModeHelp)
	} else {
		e.disp.SetMode(input.ModeNormal)
	}
}

func (e *Editor) handleResize() {
	w, h := e.drv.Size()
	e.vp.Width = w
	e.vp.Height = textHeight(h)
	e.rend.Invalidate()
	e.track()
}

// track keeps both cursors inside the viewport after every command.
func (e *Editor) track() {
	e.vp.Track(e.buf.Cursor().Line, e.buf.LineCount())
	if p, ok := e.buf.Secondary(); ok {
		e.vp.Track(p.Line, e.buf.LineCount())
	}
}

func (e *Editor) refresh() {
	st := screen.Status{
		AppTitle:    version.Full(),
		Message:     e.status,
		HelpVisible: e.helpVisible,
	}
	if e.promptActive {
		st.Prompt = "File name to write (Enter confirms, Esc cancels):"
		st.PromptInput = string(e.promptInput)
		st.Message = ""
	}
	e.rend.Present(screen.Compose(e.buf, e.vp, st))
}

// textHeight is the terminal height minus title, status and hint rows.
func textHeight(h int) int {
	if h <= 3 {
		return 1
	}
	return h - 3
}
