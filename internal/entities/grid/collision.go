package grid

import (
	"sort"

	"github.com/KirkDiggler/termtris/internal/entities/tetromino"
)

// ValidatePositions gates horizontal moves and rotations. It fails if any cell
// is above the top row, below the floor, outside the side walls, or already
// occupied.
func (g *Grid) ValidatePositions(cells []tetromino.Cell) bool {
	for _, c := range cells {
		if !g.Contains(c) {
			return false
		}
		if g.cells.Has(g.key(c)) {
			return false
		}
	}
	return true
}

// IsInsideStack is the lock predicate for downward advances: true when any cell
// overlaps the stack or has sunk past the floor. A piece resting on the floor
// proposes a row of Height+1 and must lock rather than merely be rejected.
func (g *Grid) IsInsideStack(cells []tetromino.Cell) bool {
	for _, c := range cells {
		if c.Row > g.height {
			return true
		}
		if g.Occupied(c) {
			return true
		}
	}
	return false
}

// Merge locks cells into the grid tagged with kind and returns the distinct rows
// touched, ascending. Callers confirm the lock with IsInsideStack first; cells
// outside the grid are dropped.
func (g *Grid) Merge(cells []tetromino.Cell, kind tetromino.Kind) []int {
	seen := make(map[int]bool, len(cells))
	rows := make([]int, 0, len(cells))

	for _, c := range cells {
		if !g.Contains(c) {
			continue
		}
		g.cells.Put(g.key(c), kind)
		if !seen[c.Row] {
			seen[c.Row] = true
			rows = append(rows, c.Row)
		}
	}

	sort.Ints(rows)
	return rows
}
