package main

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/termtris/internal/errors"
	"github.com/KirkDiggler/termtris/internal/orchestrators/game"
	gamemock "github.com/KirkDiggler/termtris/internal/orchestrators/game/mock"
)

type fakeInput struct {
	mu       sync.Mutex
	commands []game.Command
	drained  bool
	waited   bool
	resized  bool
}

func (f *fakeInput) Poll() game.Command {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.commands) == 0 {
		return game.CommandNone
	}
	cmd := f.commands[0]
	f.commands = f.commands[1:]
	return cmd
}

func (f *fakeInput) Drain() { f.drained = true }

func (f *fakeInput) WaitForKey(context.Context) error {
	f.waited = true
	return nil
}

func (f *fakeInput) TakeResize() bool {
	r := f.resized
	f.resized = false
	return r
}

type fakeDrawer struct {
	frames []*game.Snapshot
}

func (f *fakeDrawer) Draw(snap *game.Snapshot) {
	f.frames = append(f.frames, snap)
}

type LoopTestSuite struct {
	suite.Suite
	ctrl     *gomock.Controller
	mockGame *gamemock.MockService
	input    *fakeInput
	drawer   *fakeDrawer
	ctx      context.Context
}

func TestLoopSuite(t *testing.T) {
	suite.Run(t, new(LoopTestSuite))
}

func (s *LoopTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockGame = gamemock.NewMockService(s.ctrl)
	s.input = &fakeInput{}
	s.drawer = &fakeDrawer{}
	s.ctx = context.Background()
}

func (s *LoopTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *LoopTestSuite) config() *loopConfig {
	return &loopConfig{
		Game:   s.mockGame,
		Input:  s.input,
		Drawer: s.drawer,
		Player: "ada",
		Tick:   time.Millisecond,
	}
}

func (s *LoopTestSuite) expectStart() *game.Snapshot {
	snap := &game.Snapshot{GameID: "game_1", State: game.StateRunning}
	s.mockGame.EXPECT().
		Start(gomock.Any(), &game.StartInput{Player: "ada"}).
		Return(&game.StartOutput{GameID: "game_1", Snapshot: snap}, nil)
	return snap
}

func (s *LoopTestSuite) TestQuitEndsLoop() {
	s.input.commands = []game.Command{game.CommandMoveLeft, game.CommandQuit}
	first := s.expectStart()

	moved := &game.Snapshot{GameID: "game_1", State: game.StateRunning}
	quit := &game.Snapshot{GameID: "game_1", State: game.StateQuit}
	gomock.InOrder(
		s.mockGame.EXPECT().
			Step(gomock.Any(), &game.StepInput{Command: game.CommandMoveLeft}).
			Return(&game.StepOutput{Accepted: true, Snapshot: moved}, nil),
		s.mockGame.EXPECT().
			Step(gomock.Any(), &game.StepInput{Command: game.CommandQuit}).
			Return(&game.StepOutput{Quit: true, Snapshot: quit}, nil),
	)

	final, err := runLoop(s.ctx, s.config())
	s.Require().NoError(err)
	s.Same(quit, final)
	s.Equal([]*game.Snapshot{first, moved, quit}, s.drawer.frames)
	s.False(s.input.waited)
}

func (s *LoopTestSuite) TestGameOverWaitsForKey() {
	s.expectStart()
	over := &game.Snapshot{GameID: "game_1", State: game.StateGameOver}
	s.mockGame.EXPECT().
		Step(gomock.Any(), &game.StepInput{Command: game.CommandNone}).
		Return(&game.StepOutput{GameOver: true, Snapshot: over}, nil)

	final, err := runLoop(s.ctx, s.config())
	s.Require().NoError(err)
	s.Same(over, final)
	s.True(s.input.drained)
	s.True(s.input.waited)
}

func (s *LoopTestSuite) TestStartFailure() {
	s.mockGame.EXPECT().
		Start(gomock.Any(), gomock.Any()).
		Return(nil, errors.Internal("no pieces"))

	final, err := runLoop(s.ctx, s.config())
	s.Nil(final)
	s.ErrorContains(err, "failed to start game")
	s.Empty(s.drawer.frames)
}

func (s *LoopTestSuite) TestStepFailure() {
	s.expectStart()
	s.mockGame.EXPECT().
		Step(gomock.Any(), gomock.Any()).
		Return(nil, errors.Internal("boom"))

	_, err := runLoop(s.ctx, s.config())
	s.ErrorContains(err, "game step failed")
}

func (s *LoopTestSuite) TestTerminalStepErrorEndsQuietly() {
	s.expectStart()
	s.mockGame.EXPECT().
		Step(gomock.Any(), gomock.Any()).
		Return(nil, errors.FailedPrecondition("game has ended"))

	_, err := runLoop(s.ctx, s.config())
	s.NoError(err)
}

func (s *LoopTestSuite) TestCanceledContextStops() {
	first := s.expectStart()
	s.mockGame.EXPECT().Step(gomock.Any(), gomock.Any()).
		Return(&game.StepOutput{Snapshot: first}, nil).AnyTimes()

	ctx, cancel := context.WithTimeout(s.ctx, 20*time.Millisecond)
	defer cancel()

	final, err := runLoop(ctx, s.config())
	s.NoError(err)
	s.NotNil(final)
}

func (s *LoopTestSuite) TestResizeTriggersCallback() {
	s.expectStart()
	s.input.resized = true
	s.input.commands = []game.Command{game.CommandQuit}
	s.mockGame.EXPECT().Step(gomock.Any(), gomock.Any()).
		Return(&game.StepOutput{Quit: true, Snapshot: &game.Snapshot{}}, nil)

	resized := 0
	cfg := s.config()
	cfg.OnResize = func() { resized++ }

	_, err := runLoop(s.ctx, cfg)
	s.Require().NoError(err)
	s.Equal(1, resized)
}
