package tetromino

// placement is a pivot plus orientation, the full state of a piece on the grid
type placement struct {
	pivot       Cell
	orientation Orientation
}

// Piece is the single falling unit. Movement is two-phase: a move method stages
// a candidate placement and returns its cells, then the caller validates them and
// commits with AcceptMove or discards with RejectMove. Committed state changes
// only in AcceptMove.
type Piece struct {
	kind      Kind
	committed placement
	staged    *placement

	// previous is the committed placement before the last accepted move; kept so
	// a renderer can erase the old cells
	previous *placement
}

// New creates a piece of kind k in its spawn orientation at pivot
func New(k Kind, pivot Cell) *Piece {
	return &Piece{
		kind: k,
		committed: placement{
			pivot:       pivot,
			orientation: SpawnOrientation(k),
		},
	}
}

// Kind returns the piece kind
func (p *Piece) Kind() Kind {
	return p.kind
}

// Orientation returns the committed orientation
func (p *Piece) Orientation() Orientation {
	return p.committed.orientation
}

// Pivot returns the committed pivot cell
func (p *Piece) Pivot() Cell {
	return p.committed.pivot
}

// HasStaged reports whether a candidate move is awaiting AcceptMove or RejectMove
func (p *Piece) HasStaged() bool {
	return p.staged != nil
}

// MoveLeft stages a one-column shift left
func (p *Piece) MoveLeft() []Cell {
	return p.stage(p.committed.pivot.Add(Cell{Col: -1}), p.committed.orientation)
}

// MoveRight stages a one-column shift right
func (p *Piece) MoveRight() []Cell {
	return p.stage(p.committed.pivot.Add(Cell{Col: 1}), p.committed.orientation)
}

// SoftDropStep stages a one-row advance down
func (p *Piece) SoftDropStep() []Cell {
	return p.stage(p.committed.pivot.Add(Cell{Row: 1}), p.committed.orientation)
}

// RotateClockwise stages the next clockwise orientation around the same pivot
func (p *Piece) RotateClockwise() []Cell {
	return p.stage(p.committed.pivot, Next(p.kind, p.committed.orientation, Clockwise))
}

// RotateAntiClockwise stages the next anti-clockwise orientation around the same pivot
func (p *Piece) RotateAntiClockwise() []Cell {
	return p.stage(p.committed.pivot, Next(p.kind, p.committed.orientation, AntiClockwise))
}

// AcceptMove commits the staged candidate. It returns false when nothing was staged.
func (p *Piece) AcceptMove() bool {
	if p.staged == nil {
		return false
	}

	prev := p.committed
	p.previous = &prev
	p.committed = *p.staged
	p.staged = nil
	return true
}

// RejectMove discards the staged candidate; committed state is untouched
func (p *Piece) RejectMove() {
	p.staged = nil
}

// CurrentCells returns the four absolute cells of the committed placement
func (p *Piece) CurrentCells() []Cell {
	return CellsAt(p.kind, p.committed.orientation, p.committed.pivot)
}

// PreviousCells returns the cells occupied before the last accepted move
func (p *Piece) PreviousCells() ([]Cell, bool) {
	if p.previous == nil {
		return nil, false
	}
	return CellsAt(p.kind, p.previous.orientation, p.previous.pivot), true
}

// stage replaces any pending candidate; an unresolved proposal never survives
// the next one
func (p *Piece) stage(pivot Cell, o Orientation) []Cell {
	p.staged = &placement{pivot: pivot, orientation: o}
	return CellsAt(p.kind, o, pivot)
}
