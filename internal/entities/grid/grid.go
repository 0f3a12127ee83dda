// Package grid is the locked stack: occupancy, collision checks, and row
// clearing with compaction.
package grid

import (
	"github.com/kamstrup/intmap"

	"github.com/KirkDiggler/termtris/internal/entities/tetromino"
	"github.com/KirkDiggler/termtris/internal/errors"
)

// TopRow is the first playable row. Rows run 1..Height top to bottom and
// columns 0..Width-1 left to right.
const TopRow = 1

// Grid maps locked cells to the kind of piece that left them there.
// Cells are keyed by row*width+col.
type Grid struct {
	width  int
	height int
	cells  *intmap.Map[int, tetromino.Kind]
}

// New creates an empty grid. Width and height must both be positive.
func New(width, height int) (*Grid, error) {
	vb := errors.NewValidationBuilder()
	errors.ValidatePositive("width", width, vb)
	errors.ValidatePositive("height", height, vb)
	if err := vb.Build(); err != nil {
		return nil, errors.Wrap(err, "invalid grid dimensions")
	}

	return newGrid(width, height), nil
}

func newGrid(width, height int) *Grid {
	return &Grid{
		width:  width,
		height: height,
		cells:  intmap.New[int, tetromino.Kind](width * height),
	}
}

// Width returns the number of columns
func (g *Grid) Width() int {
	return g.width
}

// Height returns the number of playable rows
func (g *Grid) Height() int {
	return g.height
}

// Contains reports whether c lies inside the playable area
func (g *Grid) Contains(c tetromino.Cell) bool {
	return c.Row >= TopRow && c.Row <= g.height && c.Col >= 0 && c.Col < g.width
}

// Occupied reports whether c holds a locked cell. Cells outside the grid are
// never occupied.
func (g *Grid) Occupied(c tetromino.Cell) bool {
	if !g.Contains(c) {
		return false
	}
	return g.cells.Has(g.key(c))
}

// KindAt returns the occupant of c
func (g *Grid) KindAt(c tetromino.Cell) (tetromino.Kind, bool) {
	if !g.Contains(c) {
		return 0, false
	}
	return g.cells.Get(g.key(c))
}

// Len returns the number of locked cells
func (g *Grid) Len() int {
	return g.cells.Len()
}

// Cells returns a copy of the occupancy map for rendering
func (g *Grid) Cells() map[tetromino.Cell]tetromino.Kind {
	out := make(map[tetromino.Cell]tetromino.Kind, g.cells.Len())
	g.cells.ForEach(func(k int, kind tetromino.Kind) bool {
		out[g.cell(k)] = kind
		return true
	})
	return out
}

// Clone returns an independent copy
func (g *Grid) Clone() *Grid {
	clone := newGrid(g.width, g.height)
	g.cells.ForEach(func(k int, kind tetromino.Kind) bool {
		clone.cells.Put(k, kind)
		return true
	})
	return clone
}

func (g *Grid) key(c tetromino.Cell) int {
	return c.Row*g.width + c.Col
}

func (g *Grid) cell(key int) tetromino.Cell {
	return tetromino.Cell{Row: key / g.width, Col: key % g.width}
}
