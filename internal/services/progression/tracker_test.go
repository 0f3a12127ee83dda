package progression_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/termtris/internal/entities/tetromino"
	"github.com/KirkDiggler/termtris/internal/errors"
	"github.com/KirkDiggler/termtris/internal/services/progression"
)

type TrackerTestSuite struct {
	suite.Suite
	tracker *progression.Tracker
}

func TestTrackerSuite(t *testing.T) {
	suite.Run(t, new(TrackerTestSuite))
}

func (s *TrackerTestSuite) SetupTest() {
	tracker, err := progression.NewTracker(progression.DefaultConfig())
	s.Require().NoError(err)
	s.tracker = tracker
}

// clear applies a sequence of simultaneous clears
func (s *TrackerTestSuite) clear(counts ...int) {
	for _, n := range counts {
		_, err := s.tracker.OnLinesCleared(n)
		s.Require().NoError(err)
	}
}

func (s *TrackerTestSuite) TestNewTrackerValidation() {
	testCases := []struct {
		name   string
		cfg    *progression.Config
		errMsg string
	}{
		{"nil config", nil, "config is required"},
		{"zero initial", &progression.Config{IntervalStep: time.Millisecond, MinInterval: time.Millisecond}, "InitialInterval"},
		{"negative step", &progression.Config{InitialInterval: time.Second, IntervalStep: -1, MinInterval: time.Millisecond}, "IntervalStep"},
		{"floor above initial", &progression.Config{InitialInterval: time.Second, MinInterval: 2 * time.Second}, "MinInterval"},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			tracker, err := progression.NewTracker(tc.cfg)
			s.Nil(tracker)
			s.Require().Error(err)
			s.Contains(err.Error(), tc.errMsg)
		})
	}
}

func (s *TrackerTestSuite) TestInitialState() {
	snap := s.tracker.Snapshot()
	s.Equal(0, snap.Score)
	s.Equal(0, snap.LinesCleared)
	s.Equal(0, snap.Level)
	s.Equal(time.Second, snap.GravityInterval)
	s.Empty(snap.Spawned)
}

func (s *TrackerTestSuite) TestScoreTableAtLevelZero() {
	testCases := []struct {
		lines    int
		expected int
	}{
		{1, 40},
		{2, 100},
		{3, 300},
		{4, 1200},
	}

	for _, tc := range testCases {
		s.Run("", func() {
			tracker, err := progression.NewTracker(progression.DefaultConfig())
			s.Require().NoError(err)

			_, err = tracker.OnLinesCleared(tc.lines)
			s.Require().NoError(err)
			s.Equal(tc.expected, tracker.Score())
			s.Equal(tc.lines, tracker.LinesCleared())
		})
	}
}

func (s *TrackerTestSuite) TestTetrisAtLevelTwo() {
	s.clear(4, 4, 4, 4, 4)
	s.Require().Equal(2, s.tracker.Level())
	before := s.tracker.Score()

	s.clear(4)

	s.Equal(3600, s.tracker.Score()-before)
}

func (s *TrackerTestSuite) TestLevelIsDerivedFromLines() {
	s.clear(4, 4, 4, 4, 4, 4, 3)
	s.Equal(27, s.tracker.LinesCleared())
	s.Equal(2, s.tracker.Level())

	s.clear(3)
	s.Equal(30, s.tracker.LinesCleared())
	s.Equal(3, s.tracker.Level())
}

func (s *TrackerTestSuite) TestGravityShrinksPerLevel() {
	interval, err := s.tracker.OnLinesCleared(4)
	s.Require().NoError(err)
	s.Equal(time.Second, interval, "still level 0")

	s.clear(4, 2)
	s.Equal(1, s.tracker.Level())
	s.Equal(900*time.Millisecond, s.tracker.GravityInterval())

	s.clear(4, 4, 2)
	s.Equal(2, s.tracker.Level())
	s.Equal(800*time.Millisecond, s.tracker.GravityInterval())
}

func (s *TrackerTestSuite) TestGravityNeverBelowFloorAndNeverIncreases() {
	previous := s.tracker.GravityInterval()
	for i := 0; i < 40; i++ {
		interval, err := s.tracker.OnLinesCleared(4)
		s.Require().NoError(err)
		s.LessOrEqual(interval, previous)
		s.GreaterOrEqual(interval, progression.DefaultMinInterval)
		previous = interval
	}
	s.Equal(progression.DefaultMinInterval, s.tracker.GravityInterval())
}

func (s *TrackerTestSuite) TestInvalidClearCount() {
	for _, n := range []int{0, 5, -1} {
		interval, err := s.tracker.OnLinesCleared(n)
		s.Require().Error(err)
		s.True(errors.IsOutOfRange(err))
		s.Equal(time.Second, interval)
	}
	s.Equal(0, s.tracker.Score())
	s.Equal(0, s.tracker.LinesCleared())
}

func (s *TrackerTestSuite) TestScoreFor() {
	score, err := progression.ScoreFor(2, 4)
	s.Require().NoError(err)
	s.Equal(500, score)

	_, err = progression.ScoreFor(7, 0)
	s.Error(err)
}

func (s *TrackerTestSuite) TestSpawnStatistics() {
	s.tracker.OnPieceSpawned(tetromino.KindT)
	s.tracker.OnPieceSpawned(tetromino.KindT)
	s.tracker.OnPieceSpawned(tetromino.KindSquare)
	s.tracker.OnPieceSpawned(tetromino.Kind(42))

	s.Equal(map[tetromino.Kind]int{
		tetromino.KindT:      2,
		tetromino.KindSquare: 1,
	}, s.tracker.Snapshot().Spawned)
}
