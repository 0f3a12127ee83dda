// Package tetromino holds the seven piece kinds, their rotation tables and the
// falling piece with its propose/accept/reject movement.
package tetromino

import "fmt"

// Kind identifies one of the seven fixed piece shapes
type Kind int

// Piece kinds
const (
	KindSquare Kind = iota
	KindLongBar
	KindL
	KindJ
	KindZ
	KindS
	KindT

	kindCount
)

// AllKinds lists every piece kind in table order
var AllKinds = [...]Kind{KindSquare, KindLongBar, KindL, KindJ, KindZ, KindS, KindT}

// KindCount is the number of distinct piece kinds
const KindCount = int(kindCount)

var kindNames = [kindCount]string{
	KindSquare:  "square",
	KindLongBar: "long_bar",
	KindL:       "l",
	KindJ:       "j",
	KindZ:       "z",
	KindS:       "s",
	KindT:       "t",
}

// String returns the kind name
func (k Kind) String() string {
	if !k.Valid() {
		return fmt.Sprintf("kind(%d)", int(k))
	}
	return kindNames[k]
}

// Valid reports whether k is one of the seven kinds
func (k Kind) Valid() bool {
	return k >= 0 && k < kindCount
}

// Orientation is a rotation state. Which orientations a kind uses is fixed by
// its rotation table.
type Orientation int

// Orientations
const (
	OrientationConstant Orientation = iota
	OrientationVertical
	OrientationHorizontal
	OrientationDown
	OrientationLeft
	OrientationUp
	OrientationRight

	orientationCount
)

var orientationNames = [orientationCount]string{
	OrientationConstant:   "constant",
	OrientationVertical:   "vertical",
	OrientationHorizontal: "horizontal",
	OrientationDown:       "down",
	OrientationLeft:       "left",
	OrientationUp:         "up",
	OrientationRight:      "right",
}

// String returns the orientation name
func (o Orientation) String() string {
	if o < 0 || o >= orientationCount {
		return fmt.Sprintf("orientation(%d)", int(o))
	}
	return orientationNames[o]
}

// Direction selects which way a rotation turns
type Direction int

// Rotation directions
const (
	Clockwise Direction = iota
	AntiClockwise
)

// Cell is a (row, col) grid coordinate. Rows grow downward.
type Cell struct {
	Row int
	Col int
}

// Add returns c offset by o
func (c Cell) Add(o Cell) Cell {
	return Cell{Row: c.Row + o.Row, Col: c.Col + o.Col}
}

// Shape is the four offsets of a piece relative to its pivot
type Shape [4]Cell
