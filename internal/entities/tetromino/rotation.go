package tetromino

// rotation describes one kind: its orientation cycle in clockwise order and the
// offset table for each orientation in that cycle.
type rotation struct {
	cycle   []Orientation
	offsets [orientationCount]Shape
}

// fourWay is the clockwise cycle shared by L, J and T
var fourWay = []Orientation{OrientationDown, OrientationLeft, OrientationUp, OrientationRight}

var rotationSystem = [kindCount]rotation{
	// 0 1
	// 2 3   pivot = 1
	KindSquare: {
		cycle: []Orientation{OrientationConstant},
		offsets: [orientationCount]Shape{
			OrientationConstant: {{0, -1}, {0, 0}, {1, -1}, {1, 0}},
		},
	},
	// 0 1 2 3   pivot = 2
	KindLongBar: {
		cycle: []Orientation{OrientationVertical, OrientationHorizontal},
		offsets: [orientationCount]Shape{
			OrientationVertical:   {{0, -2}, {0, -1}, {0, 0}, {0, 1}},
			OrientationHorizontal: {{2, 0}, {1, 0}, {0, 0}, {-1, 0}},
		},
	},
	// 1 2 3
	// 0       pivot = 2
	KindL: {
		cycle: fourWay,
		offsets: [orientationCount]Shape{
			OrientationDown:  {{1, -1}, {0, -1}, {0, 0}, {0, 1}},
			OrientationLeft:  {{-1, -1}, {-1, 0}, {0, 0}, {1, 0}},
			OrientationUp:    {{-1, 1}, {0, 1}, {0, 0}, {0, -1}},
			OrientationRight: {{1, 1}, {1, 0}, {0, 0}, {-1, 0}},
		},
	},
	// 0 1 2
	//     3   pivot = 1
	KindJ: {
		cycle: fourWay,
		offsets: [orientationCount]Shape{
			OrientationDown:  {{0, -1}, {0, 0}, {0, 1}, {1, 1}},
			OrientationLeft:  {{-1, 0}, {0, 0}, {1, 0}, {1, -1}},
			OrientationUp:    {{0, 1}, {0, 0}, {0, -1}, {-1, -1}},
			OrientationRight: {{1, 0}, {0, 0}, {-1, 0}, {-1, 1}},
		},
	},
	// 0 1
	//   2 3   pivot = 1
	KindZ: {
		cycle: []Orientation{OrientationLeft, OrientationUp},
		offsets: [orientationCount]Shape{
			OrientationLeft: {{0, -1}, {0, 0}, {1, 0}, {1, 1}},
			OrientationUp:   {{-1, 0}, {0, 0}, {0, -1}, {1, -1}},
		},
	},
	//   0 1
	// 2 3     pivot = 0
	KindS: {
		cycle: []Orientation{OrientationRight, OrientationUp},
		offsets: [orientationCount]Shape{
			OrientationRight: {{0, 0}, {0, 1}, {1, -1}, {1, 0}},
			OrientationUp:    {{0, 0}, {-1, 0}, {0, 1}, {1, 1}},
		},
	},
	// 0 1 2
	//   3     pivot = 1
	KindT: {
		cycle: fourWay,
		offsets: [orientationCount]Shape{
			OrientationDown:  {{0, -1}, {0, 0}, {0, 1}, {1, 0}},
			OrientationLeft:  {{-1, 0}, {0, 0}, {1, 0}, {0, -1}},
			OrientationUp:    {{0, 1}, {0, 0}, {0, -1}, {-1, 0}},
			OrientationRight: {{1, 0}, {0, 0}, {-1, 0}, {0, 1}},
		},
	},
}

// SpawnOrientation returns the orientation a freshly spawned piece of kind k uses
func SpawnOrientation(k Kind) Orientation {
	return rotationSystem[k].cycle[0]
}

// Orientations returns the clockwise orientation cycle of kind k.
// The returned slice is a copy.
func Orientations(k Kind) []Orientation {
	cycle := rotationSystem[k].cycle
	out := make([]Orientation, len(cycle))
	copy(out, cycle)
	return out
}

// Offsets returns the pivot-relative offsets for kind k in orientation o.
// An orientation outside the kind's cycle falls back to the spawn orientation.
func Offsets(k Kind, o Orientation) Shape {
	r := &rotationSystem[k]
	if r.index(o) < 0 {
		o = r.cycle[0]
	}
	return r.offsets[o]
}

// Next returns the orientation reached by rotating kind k from o in direction d.
// Square has a one-state cycle, so every rotation returns o unchanged; two-state
// kinds toggle in either direction.
func Next(k Kind, o Orientation, d Direction) Orientation {
	r := &rotationSystem[k]
	i := r.index(o)
	if i < 0 {
		return r.cycle[0]
	}

	n := len(r.cycle)
	if d == AntiClockwise {
		return r.cycle[(i+n-1)%n]
	}
	return r.cycle[(i+1)%n]
}

// CellsAt returns the absolute cells of kind k in orientation o around pivot
func CellsAt(k Kind, o Orientation, pivot Cell) []Cell {
	shape := Offsets(k, o)
	cells := make([]Cell, len(shape))
	for i, off := range shape {
		cells[i] = pivot.Add(off)
	}
	return cells
}

func (r *rotation) index(o Orientation) int {
	for i, c := range r.cycle {
		if c == o {
			return i
		}
	}
	return -1
}
