package spawner_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/termtris/internal/entities/tetromino"
	"github.com/KirkDiggler/termtris/internal/errors"
	"github.com/KirkDiggler/termtris/internal/services/spawner"
)

// scriptedRoller returns queued values and records requested die sizes
type scriptedRoller struct {
	values []int
	sizes  []int
	err    error
}

func (r *scriptedRoller) Roll(size int) (int, error) {
	r.sizes = append(r.sizes, size)
	if r.err != nil {
		return 0, r.err
	}
	v := r.values[0]
	r.values = r.values[1:]
	return v, nil
}

func (r *scriptedRoller) RollN(count, size int) ([]int, error) {
	out := make([]int, count)
	for i := range out {
		v, err := r.Roll(size)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

type RandomizerTestSuite struct {
	suite.Suite
	ctx context.Context
}

func TestRandomizerSuite(t *testing.T) {
	suite.Run(t, new(RandomizerTestSuite))
}

func (s *RandomizerTestSuite) SetupTest() {
	s.ctx = context.Background()
}

func (s *RandomizerTestSuite) TestNewDiceRandomizerValidation() {
	r, err := spawner.NewDiceRandomizer(nil)
	s.Nil(r)
	s.ErrorContains(err, "config is required")

	r, err = spawner.NewDiceRandomizer(&spawner.Config{})
	s.Nil(r)
	s.ErrorContains(err, "Roller: is required")
}

func (s *RandomizerTestSuite) TestRollMapsToKinds() {
	roller := &scriptedRoller{values: []int{1, 2, 3, 4, 5, 6, 7}}
	r, err := spawner.NewDiceRandomizer(&spawner.Config{Roller: roller})
	s.Require().NoError(err)

	for _, expected := range tetromino.AllKinds {
		kind, err := r.Next(s.ctx)
		s.Require().NoError(err)
		s.Equal(expected, kind)
	}
	s.Equal([]int{7, 7, 7, 7, 7, 7, 7}, roller.sizes)
}

func (s *RandomizerTestSuite) TestRepeatsAllowedByDefault() {
	roller := &scriptedRoller{values: []int{7, 7}}
	r, err := spawner.NewDiceRandomizer(&spawner.Config{Roller: roller})
	s.Require().NoError(err)

	first, _ := r.Next(s.ctx)
	second, _ := r.Next(s.ctx)
	s.Equal(tetromino.KindT, first)
	s.Equal(tetromino.KindT, second)
}

func (s *RandomizerTestSuite) TestRerollRepeats() {
	roller := &scriptedRoller{values: []int{7, 7, 2, 2, 2}}
	r, err := spawner.NewDiceRandomizer(&spawner.Config{Roller: roller, RerollRepeats: true})
	s.Require().NoError(err)

	kinds := make([]tetromino.Kind, 0, 3)
	for i := 0; i < 3; i++ {
		kind, err := r.Next(s.ctx)
		s.Require().NoError(err)
		kinds = append(kinds, kind)
	}

	// the second 2 is kept: only one reroll per piece
	s.Equal([]tetromino.Kind{tetromino.KindT, tetromino.KindLongBar, tetromino.KindLongBar}, kinds)
	s.Empty(roller.values)
}

func (s *RandomizerTestSuite) TestRollerFailure() {
	r, err := spawner.NewDiceRandomizer(&spawner.Config{Roller: &scriptedRoller{err: fmt.Errorf("entropy exhausted")}})
	s.Require().NoError(err)

	_, err = r.Next(s.ctx)
	s.Require().Error(err)
	s.Contains(err.Error(), "failed to roll for next piece")
}

func (s *RandomizerTestSuite) TestRollOutOfRange() {
	r, err := spawner.NewDiceRandomizer(&spawner.Config{Roller: &scriptedRoller{values: []int{8}}})
	s.Require().NoError(err)

	_, err = r.Next(s.ctx)
	s.True(errors.IsInternal(err))
}

func (s *RandomizerTestSuite) TestCanceledContext() {
	r, err := spawner.NewDiceRandomizer(&spawner.Config{Roller: &scriptedRoller{values: []int{1}}})
	s.Require().NoError(err)

	ctx, cancel := context.WithCancel(s.ctx)
	cancel()

	_, err = r.Next(ctx)
	s.Equal(errors.CodeCanceled, errors.GetCode(err))
}
