// Package game implements the cycle-driven game loop: commands and gravity move the
// active piece, locks merge it into the grid, complete rows clear, and progression
// feeds the gravity interval back into the loop.
package game

//go:generate mockgen -destination=mock/mock_service.go -package=gamemock github.com/KirkDiggler/termtris/internal/orchestrators/game Service

import (
	"context"
	"log/slog"
	"time"

	"github.com/KirkDiggler/rpg-toolkit/events"

	"github.com/KirkDiggler/termtris/internal/entities/grid"
	"github.com/KirkDiggler/termtris/internal/entities/tetromino"
	"github.com/KirkDiggler/termtris/internal/errors"
	"github.com/KirkDiggler/termtris/internal/pkg/clock"
	"github.com/KirkDiggler/termtris/internal/pkg/idgen"
	"github.com/KirkDiggler/termtris/internal/repositories/scores"
	"github.com/KirkDiggler/termtris/internal/services/progression"
	"github.com/KirkDiggler/termtris/internal/services/spawner"
)

// Defaults for the classic well
const (
	DefaultWidth  = 10
	DefaultHeight = 20
	DefaultPlayer = "player"
)

// DefaultSpawnPivot is where every new piece's pivot appears
var DefaultSpawnPivot = tetromino.Cell{Row: grid.TopRow, Col: 5}

// Service runs one game at a time
type Service interface {
	Start(ctx context.Context, input *StartInput) (*StartOutput, error)
	Step(ctx context.Context, input *StepInput) (*StepOutput, error)
	Snapshot() *Snapshot
}

// Config holds the dependencies for the game orchestrator
type Config struct {
	Width      int
	Height     int
	SpawnPivot tetromino.Cell

	Progression *progression.Config
	Randomizer  spawner.Randomizer
	EventBus    events.EventBus
	ScoreRepo   scores.Repository
	Clock       clock.Clock
	IDGenerator idgen.Generator
}

// Validate ensures dimensions are sane and all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	errors.ValidatePositive("Width", c.Width, vb)
	errors.ValidatePositive("Height", c.Height, vb)
	if c.Width > 0 && c.Height > 0 {
		errors.ValidateRange("SpawnPivot.Row", c.SpawnPivot.Row, grid.TopRow, c.Height, vb)
		errors.ValidateRange("SpawnPivot.Col", c.SpawnPivot.Col, 0, c.Width-1, vb)
	}

	if c.Progression == nil {
		vb.RequiredField("Progression")
	} else if err := c.Progression.Validate(); err != nil {
		vb.InvalidField("Progression", errors.GetMessage(err))
	}
	if c.Randomizer == nil {
		vb.RequiredField("Randomizer")
	}
	if c.EventBus == nil {
		vb.RequiredField("EventBus")
	}
	if c.ScoreRepo == nil {
		vb.RequiredField("ScoreRepo")
	}
	if c.Clock == nil {
		vb.RequiredField("Clock")
	}
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}

	return vb.Build()
}

// session is the mutable state of the game in progress
type session struct {
	id     string
	player string
	state  State
	reason GameOverReason

	grid         *grid.Grid
	previousGrid *grid.Grid
	lastCleared  []int

	piece   *tetromino.Piece
	next    tetromino.Kind
	tracker *progression.Tracker

	lastGravity time.Time
}

type orchestrator struct {
	width       int
	height      int
	spawnPivot  tetromino.Cell
	progression *progression.Config
	randomizer  spawner.Randomizer
	bus         events.EventBus
	scoreRepo   scores.Repository
	clock       clock.Clock
	idGen       idgen.Generator

	session *session
}

// NewOrchestrator creates a new game orchestrator with the provided dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &orchestrator{
		width:       cfg.Width,
		height:      cfg.Height,
		spawnPivot:  cfg.SpawnPivot,
		progression: cfg.Progression,
		randomizer:  cfg.Randomizer,
		bus:         cfg.EventBus,
		scoreRepo:   cfg.ScoreRepo,
		clock:       cfg.Clock,
		idGen:       cfg.IDGenerator,
	}, nil
}

// Start begins a new game, abandoning any game already in progress
func (o *orchestrator) Start(ctx context.Context, input *StartInput) (*StartOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	player := input.Player
	if player == "" {
		player = DefaultPlayer
	}

	g, err := grid.New(o.width, o.height)
	if err != nil {
		return nil, err
	}

	tracker, err := progression.NewTracker(o.progression)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create progression tracker")
	}

	first, err := o.randomizer.Next(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to choose first piece")
	}
	next, err := o.randomizer.Next(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to choose next piece")
	}

	o.session = &session{
		id:          o.idGen.Generate(),
		player:      player,
		state:       StateRunning,
		grid:        g,
		next:        next,
		tracker:     tracker,
		lastGravity: o.clock.Now(),
	}

	slog.Info("Game started",
		"game_id", o.session.id,
		"player", player,
		"width", o.width,
		"height", o.height,
		"first", first.String(),
		"next", next.String())

	if err := o.publish(ctx, EventGameStarted, map[string]any{
		KeyPlayer:   player,
		KeyKind:     first,
		KeyNextKind: next,
	}); err != nil {
		return nil, err
	}

	if err := o.place(ctx, first); err != nil {
		return nil, err
	}

	return &StartOutput{
		GameID:   o.session.id,
		Snapshot: o.Snapshot(),
	}, nil
}

// Step runs one cycle: at most one command, then at most one gravity advance
func (o *orchestrator) Step(ctx context.Context, input *StepInput) (*StepOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if !input.Command.Valid() {
		return nil, errors.InvalidArgumentf("unknown command %d", input.Command)
	}
	if o.session == nil {
		return nil, errors.FailedPrecondition("game has not been started")
	}
	if o.session.state.Terminal() {
		return nil, errors.FailedPreconditionf("game %s has ended: %s", o.session.id, o.session.state).
			WithMeta("game_id", o.session.id)
	}

	now := o.clock.Now()
	out := &StepOutput{}
	s := o.session

	gravityDue := true
	switch input.Command {
	case CommandQuit:
		if err := o.quit(ctx); err != nil {
			return nil, err
		}
		out.Quit = true
		out.Snapshot = o.Snapshot()
		return out, nil

	case CommandMoveLeft:
		out.Accepted = o.tryMove(s.piece.MoveLeft())
	case CommandMoveRight:
		out.Accepted = o.tryMove(s.piece.MoveRight())
	case CommandRotateCW:
		out.Accepted = o.tryMove(s.piece.RotateClockwise())
	case CommandRotateCCW:
		out.Accepted = o.tryMove(s.piece.RotateAntiClockwise())

	case CommandSoftDrop:
		moved, err := o.advance(ctx, out)
		if err != nil {
			return nil, err
		}
		out.Accepted = moved
		if out.Locked {
			// the fresh piece gets a full interval before gravity touches it
			s.lastGravity = now
			gravityDue = false
		}
	}

	if gravityDue && s.state == StateRunning && now.Sub(s.lastGravity) >= s.tracker.GravityInterval() {
		s.lastGravity = now
		out.GravityApplied = true
		if _, err := o.advance(ctx, out); err != nil {
			return nil, err
		}
	}

	out.GameOver = s.state == StateGameOver
	out.Snapshot = o.Snapshot()
	return out, nil
}

// Snapshot copies the current game state; nil before the first Start
func (o *orchestrator) Snapshot() *Snapshot {
	s := o.session
	if s == nil {
		return nil
	}

	snap := &Snapshot{
		GameID:      s.id,
		Player:      s.player,
		State:       s.state,
		Reason:      s.reason,
		Width:       o.width,
		Height:      o.height,
		Next:        s.next,
		Grid:        s.grid.Cells(),
		LastCleared: append([]int(nil), s.lastCleared...),
		Progression: s.tracker.Snapshot(),
	}
	if s.previousGrid != nil {
		snap.PreviousGrid = s.previousGrid.Cells()
	}
	if s.state == StateRunning && s.piece != nil {
		view := &PieceView{
			Kind:        s.piece.Kind(),
			Orientation: s.piece.Orientation(),
			Pivot:       s.piece.Pivot(),
			Cells:       s.piece.CurrentCells(),
		}
		if prev, ok := s.piece.PreviousCells(); ok {
			view.PreviousCells = prev
		}
		snap.Active = view
	}
	return snap
}

// tryMove validates a staged horizontal or rotational candidate and resolves it
func (o *orchestrator) tryMove(candidate []tetromino.Cell) bool {
	piece := o.session.piece
	if !o.session.grid.ValidatePositions(candidate) {
		piece.RejectMove()
		return false
	}
	return piece.AcceptMove()
}

// advance pushes the piece down one row, locking it when the row below is taken.
// It reports whether the piece moved.
func (o *orchestrator) advance(ctx context.Context, out *StepOutput) (bool, error) {
	s := o.session
	candidate := s.piece.SoftDropStep()
	if !s.grid.IsInsideStack(candidate) {
		return s.piece.AcceptMove(), nil
	}

	s.piece.RejectMove()
	return false, o.lock(ctx, out)
}

func (o *orchestrator) quit(ctx context.Context) error {
	s := o.session
	s.state = StateQuit

	slog.Info("Game quit",
		"game_id", s.id,
		"score", s.tracker.Score(),
		"lines", s.tracker.LinesCleared())

	return o.publish(ctx, EventGameQuit, map[string]any{
		KeyScore: s.tracker.Score(),
	})
}
