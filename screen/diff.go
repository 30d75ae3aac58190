// Copyright © 2025 RNano contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: screen/diff.go
// Summary: Frame differ emitting minimal contiguous cell runs.
// Notes: The diff, not a full clear-and-redraw, is what keeps keystrokes
// from flashing the terminal.

package screen

// Run is one contiguous stretch of changed cells within a single row.
type Run struct {
	Row   int
	Col   int
	Cells []Cell
}

// Diff scans prev and next row by row and returns one Run per maximal
// contiguous stretch of differing cells. Unchanged rows produce nothing.
// Both frames must share dimensions; resize handling repaints from scratch
// before the differ is consulted again.
func Diff(prev, next Frame) []Run {
	var runs []Run
	for y := range next {
		row := next[y]
		old := prev[y]
		x := 0
		for x < len(row) {
			if row[x] == old[x] {
				x++
				continue
			}
			start := x
			for x < len(row) && row[x] != old[x] {
				x++
			}
			cells := make([]Cell, x-start)
			copy(cells, row[start:x])
			runs = append(runs, Run{Row: y, Col: start, Cells: cells})
		}
	}
	return runs
}
