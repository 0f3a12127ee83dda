package grid

import (
	"sort"

	"github.com/KirkDiggler/termtris/internal/entities/tetromino"
)

// RowComplete reports whether every column of row is occupied
func (g *Grid) RowComplete(row int) bool {
	if row < TopRow || row > g.height {
		return false
	}
	for col := 0; col < g.width; col++ {
		if !g.cells.Has(row*g.width + col) {
			return false
		}
	}
	return true
}

// CompletedRows returns the affected rows that are full, ascending and without
// duplicates. Only affected rows are checked.
func (g *Grid) CompletedRows(affected []int) []int {
	seen := make(map[int]bool, len(affected))
	var completed []int

	for _, row := range affected {
		if seen[row] {
			continue
		}
		seen[row] = true
		if g.RowComplete(row) {
			completed = append(completed, row)
		}
	}

	sort.Ints(completed)
	return completed
}

// ClearAndCompact returns a fresh grid with the completed rows removed. Every
// surviving cell drops by the number of cleared rows below it, so cells under
// the lowest cleared row stay put and non-contiguous clears compact correctly.
// The receiver is left untouched.
func (g *Grid) ClearAndCompact(completed []int) *Grid {
	cleared := make(map[int]bool, len(completed))
	for _, row := range completed {
		cleared[row] = true
	}

	next := newGrid(g.width, g.height)
	g.cells.ForEach(func(k int, kind tetromino.Kind) bool {
		c := g.cell(k)
		if cleared[c.Row] {
			return true
		}

		shift := 0
		for row := range cleared {
			if row > c.Row {
				shift++
			}
		}
		c.Row += shift
		next.cells.Put(next.key(c), kind)
		return true
	})

	return next
}
