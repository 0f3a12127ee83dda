package grid_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/termtris/internal/entities/grid"
	"github.com/KirkDiggler/termtris/internal/entities/tetromino"
	"github.com/KirkDiggler/termtris/internal/errors"
)

const (
	testWidth  = 10
	testHeight = 20
)

type GridTestSuite struct {
	suite.Suite
	grid *grid.Grid
}

func TestGridSuite(t *testing.T) {
	suite.Run(t, new(GridTestSuite))
}

func (s *GridTestSuite) SetupTest() {
	g, err := grid.New(testWidth, testHeight)
	s.Require().NoError(err)
	s.grid = g
}

// fillRow occupies every column of row except the listed gaps
func (s *GridTestSuite) fillRow(row int, gaps ...int) {
	skip := make(map[int]bool, len(gaps))
	for _, c := range gaps {
		skip[c] = true
	}
	var cells []tetromino.Cell
	for col := 0; col < testWidth; col++ {
		if !skip[col] {
			cells = append(cells, tetromino.Cell{Row: row, Col: col})
		}
	}
	s.grid.Merge(cells, tetromino.KindLongBar)
}

func (s *GridTestSuite) TestNewRejectsBadDimensions() {
	testCases := []struct {
		name          string
		width, height int
		errMsg        string
	}{
		{"zero width", 0, 20, "width"},
		{"negative height", 10, -1, "height"},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			g, err := grid.New(tc.width, tc.height)
			s.Nil(g)
			s.Require().Error(err)
			s.True(errors.IsInvalidArgument(err))
			s.Contains(err.Error(), tc.errMsg)
		})
	}
}

func (s *GridTestSuite) TestValidatePositions() {
	s.grid.Merge([]tetromino.Cell{{Row: 10, Col: 4}}, tetromino.KindT)

	testCases := []struct {
		name     string
		cells    []tetromino.Cell
		expected bool
	}{
		{"empty interior", []tetromino.Cell{{Row: 1, Col: 0}, {Row: 20, Col: 9}}, true},
		{"left wall", []tetromino.Cell{{Row: 5, Col: -1}}, false},
		{"right wall", []tetromino.Cell{{Row: 5, Col: testWidth}}, false},
		{"row zero", []tetromino.Cell{{Row: 0, Col: 3}}, false},
		{"negative row", []tetromino.Cell{{Row: -2, Col: 3}}, false},
		{"below floor", []tetromino.Cell{{Row: testHeight + 1, Col: 3}}, false},
		{"occupied", []tetromino.Cell{{Row: 9, Col: 4}, {Row: 10, Col: 4}}, false},
		{"next to occupied", []tetromino.Cell{{Row: 10, Col: 5}}, true},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.Equal(tc.expected, s.grid.ValidatePositions(tc.cells))
		})
	}
}

func (s *GridTestSuite) TestIsInsideStack() {
	s.grid.Merge([]tetromino.Cell{{Row: 15, Col: 2}}, tetromino.KindS)

	s.False(s.grid.IsInsideStack([]tetromino.Cell{{Row: testHeight, Col: 0}}))
	s.True(s.grid.IsInsideStack([]tetromino.Cell{{Row: testHeight + 1, Col: 0}}))
	s.True(s.grid.IsInsideStack([]tetromino.Cell{{Row: 14, Col: 2}, {Row: 15, Col: 2}}))
	s.False(s.grid.IsInsideStack([]tetromino.Cell{{Row: 14, Col: 2}}))
}

func (s *GridTestSuite) TestMergeReturnsDistinctAffectedRows() {
	p := tetromino.New(tetromino.KindT, tetromino.Cell{Row: 19, Col: 5})

	rows := s.grid.Merge(p.CurrentCells(), p.Kind())

	s.Equal([]int{19, 20}, rows)
	s.Equal(4, s.grid.Len())
	kind, ok := s.grid.KindAt(tetromino.Cell{Row: 20, Col: 5})
	s.True(ok)
	s.Equal(tetromino.KindT, kind)
	s.False(s.grid.Occupied(tetromino.Cell{Row: 20, Col: 4}))
}

func (s *GridTestSuite) TestOutOfBoundsNeverOccupied() {
	s.fillRow(1)
	s.False(s.grid.Occupied(tetromino.Cell{Row: 0, Col: testWidth}))
	s.False(s.grid.Occupied(tetromino.Cell{Row: 2, Col: -testWidth}))
	_, ok := s.grid.KindAt(tetromino.Cell{Row: 1, Col: testWidth})
	s.False(ok)
}

func (s *GridTestSuite) TestCompletedRows() {
	s.fillRow(18)
	s.fillRow(19, 7)
	s.fillRow(20)

	s.Equal([]int{18, 20}, s.grid.CompletedRows([]int{20, 19, 18, 20}))
	s.Empty(s.grid.CompletedRows([]int{19}))
	s.Empty(s.grid.CompletedRows([]int{5}), "rows outside the affected set are ignored")
	s.False(s.grid.RowComplete(0))
}

func (s *GridTestSuite) TestClearAndCompactNonContiguous() {
	s.fillRow(5)
	s.fillRow(7)
	s.grid.Merge([]tetromino.Cell{
		{Row: 3, Col: 2},
		{Row: 6, Col: 4},
		{Row: 8, Col: 1},
	}, tetromino.KindJ)

	next := s.grid.ClearAndCompact([]int{5, 7})

	s.Equal(3, next.Len())
	s.True(next.Occupied(tetromino.Cell{Row: 5, Col: 2}), "above both cleared rows shifts by 2")
	s.True(next.Occupied(tetromino.Cell{Row: 7, Col: 4}), "between cleared rows shifts by 1")
	s.True(next.Occupied(tetromino.Cell{Row: 8, Col: 1}), "below the lowest cleared row stays")
	s.False(next.Occupied(tetromino.Cell{Row: 3, Col: 2}))

	kind, ok := next.KindAt(tetromino.Cell{Row: 5, Col: 2})
	s.True(ok)
	s.Equal(tetromino.KindJ, kind)

	s.Equal(2*testWidth+3, s.grid.Len(), "previous snapshot is untouched")
}

func (s *GridTestSuite) TestClearAndCompactContiguousBottom() {
	s.fillRow(19)
	s.fillRow(20)
	s.grid.Merge([]tetromino.Cell{{Row: 18, Col: 0}, {Row: 17, Col: 9}}, tetromino.KindL)

	next := s.grid.ClearAndCompact([]int{19, 20})

	s.Equal(map[tetromino.Cell]tetromino.Kind{
		{Row: 20, Col: 0}: tetromino.KindL,
		{Row: 19, Col: 9}: tetromino.KindL,
	}, next.Cells())
}

func (s *GridTestSuite) TestCloneIsIndependent() {
	s.grid.Merge([]tetromino.Cell{{Row: 4, Col: 4}}, tetromino.KindZ)
	clone := s.grid.Clone()
	clone.Merge([]tetromino.Cell{{Row: 4, Col: 5}}, tetromino.KindZ)

	s.Equal(1, s.grid.Len())
	s.Equal(2, clone.Len())
	s.Equal(s.grid.Width(), clone.Width())
	s.Equal(s.grid.Height(), clone.Height())
}
