// Copyright © 2025 RNano contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package screen

import (
	"math/rand"
	"testing"

	"github.com/gdamore/tcell/v2"
)

func applyRuns(f Frame, runs []Run) Frame {
	out := f.Clone()
	for _, run := range runs {
		for i, c := range run.Cells {
			out[run.Row][run.Col+i] = c
		}
	}
	return out
}

func framesEqual(a, b Frame) bool {
	if len(a) != len(b) {
		return false
	}
	for y := range a {
		if len(a[y]) != len(b[y]) {
			return false
		}
		for x := range a[y] {
			if a[y][x] != b[y][x] {
				return false
			}
		}
	}
	return true
}

func TestDiffRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	styles := []tcell.Style{
		tcell.StyleDefault,
		tcell.StyleDefault.Reverse(true),
		tcell.StyleDefault.Foreground(tcell.ColorYellow),
	}
	for trial := 0; trial < 50; trial++ {
		prev := NewFrame(30, 10)
		next := NewFrame(30, 10)
		for y := range next {
			for x := range next[y] {
				prev[y][x] = Cell{Ch: rune('a' + rng.Intn(4)), Style: styles[rng.Intn(len(styles))]}
				next[y][x] = Cell{Ch: rune('a' + rng.Intn(4)), Style: styles[rng.Intn(len(styles))]}
			}
		}
		got := applyRuns(prev, Diff(prev, next))
		if !framesEqual(got, next) {
			t.Fatalf("trial %d: applying diff runs did not reproduce next frame", trial)
		}
	}
}

func TestDiffSkipsUnchangedRows(t *testing.T) {
	prev := NewFrame(20, 5)
	next := prev.Clone()
	next.SetText(2, 3, "xy", tcell.StyleDefault)
	next.SetText(2, 10, "z", tcell.StyleDefault)

	runs := Diff(prev, next)
	if len(runs) != 2 {
		t.Fatalf("got %d runs, want 2 (one per contiguous change)", len(runs))
	}
	for _, run := range runs {
		if run.Row != 2 {
			t.Fatalf("run on row %d, want only row 2", run.Row)
		}
	}
	if runs[0].Col != 3 || len(runs[0].Cells) != 2 {
		t.Fatalf("first run = col %d len %d, want col 3 len 2", runs[0].Col, len(runs[0].Cells))
	}
	if runs[1].Col != 10 || len(runs[1].Cells) != 1 {
		t.Fatalf("second run = col %d len %d, want col 10 len 1", runs[1].Col, len(runs[1].Cells))
	}
}

func TestDiffIdenticalFramesEmitNothing(t *testing.T) {
	f := NewFrame(10, 4)
	f.SetText(1, 1, "hello", tcell.StyleDefault)
	if runs := Diff(f, f.Clone()); len(runs) != 0 {
		t.Fatalf("identical frames produced %d runs", len(runs))
	}
}

func TestRendererDiffsBetweenFrames(t *testing.T) {
	drv := NewMemoryDriver(20, 6)
	r := NewRenderer(drv)

	first := NewFrame(20, 6)
	first.SetText(0, 0, "hello", tcell.StyleDefault)
	r.Present(first)

	if drv.Clears != 1 {
		t.Fatalf("initial present: %d clears, want exactly 1", drv.Clears)
	}
	if drv.Flushes != 1 {
		t.Fatalf("initial present: %d flushes, want 1", drv.Flushes)
	}

	second := first.Clone()
	second.SetText(0, 5, "!", tcell.StyleDefault)
	drv.Runs = nil
	runs := r.Present(second)

	if drv.Clears != 1 {
		t.Fatalf("diff present must not clear the screen (clears=%d)", drv.Clears)
	}
	if len(runs) != 1 || runs[0].Row != 0 || runs[0].Col != 5 {
		t.Fatalf("unexpected runs %+v, want single run at row 0 col 5", runs)
	}
	if got := drv.Row(0); got != "hello!" {
		t.Fatalf("screen row = %q, want %q", got, "hello!")
	}
}

func TestRendererRepaintsOnSizeChange(t *testing.T) {
	drv := NewMemoryDriver(20, 6)
	r := NewRenderer(drv)
	r.Present(NewFrame(20, 6))

	drv.Resize(30, 8)
	r.Present(NewFrame(30, 8))
	if drv.Clears != 2 {
		t.Fatalf("resize must trigger exactly one more clear (clears=%d)", drv.Clears)
	}
}

func TestRendererKeepsCopyNotReference(t *testing.T) {
	drv := NewMemoryDriver(10, 2)
	r := NewRenderer(drv)

	f := NewFrame(10, 2)
	f.SetText(0, 0, "abc", tcell.StyleDefault)
	r.Present(f)

	// Mutating the caller's frame must not disturb the retained copy.
	f.SetText(0, 0, "xyz", tcell.StyleDefault)
	runs := r.Present(f)
	if len(runs) == 0 {
		t.Fatalf("expected runs: retained frame should still hold the old content")
	}
}
