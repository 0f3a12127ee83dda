package game

import (
	"context"
	"log/slog"

	"github.com/KirkDiggler/termtris/internal/entities/grid"
	"github.com/KirkDiggler/termtris/internal/entities/tetromino"
	"github.com/KirkDiggler/termtris/internal/errors"
	"github.com/KirkDiggler/termtris/internal/repositories/scores"
)

// lock merges the active piece, then either ends the game or clears rows and
// brings in the next piece. Row 1 is checked before any clearing.
func (o *orchestrator) lock(ctx context.Context, out *StepOutput) error {
	s := o.session
	kind := s.piece.Kind()
	affected := s.grid.Merge(s.piece.CurrentCells(), kind)
	out.Locked = true

	if err := o.publish(ctx, EventPieceLocked, map[string]any{
		KeyKind: kind,
		KeyRows: affected,
	}); err != nil {
		return err
	}

	if containsRow(affected, grid.TopRow) {
		return o.endGame(ctx, ReasonTopOut)
	}

	completed := s.grid.CompletedRows(affected)
	if len(completed) > 0 {
		if err := o.clearRows(ctx, completed); err != nil {
			return err
		}
		out.ClearedRows = completed
	}

	return o.spawnNext(ctx)
}

func (o *orchestrator) clearRows(ctx context.Context, completed []int) error {
	s := o.session
	levelBefore := s.tracker.Level()

	s.previousGrid = s.grid
	s.grid = s.grid.ClearAndCompact(completed)
	s.lastCleared = completed

	interval, err := s.tracker.OnLinesCleared(len(completed))
	if err != nil {
		return errors.Wrap(err, "failed to score cleared rows")
	}

	slog.Info("Lines cleared",
		"game_id", s.id,
		"rows", completed,
		"count", len(completed),
		"score", s.tracker.Score(),
		"level", s.tracker.Level(),
		"lines", s.tracker.LinesCleared())

	if s.tracker.Level() != levelBefore {
		slog.Info("Level up",
			"game_id", s.id,
			"level", s.tracker.Level(),
			"gravity_interval", interval)
	}

	return o.publish(ctx, EventLinesCleared, map[string]any{
		KeyRows:  completed,
		KeyCount: len(completed),
		KeyScore: s.tracker.Score(),
		KeyLevel: s.tracker.Level(),
		KeyLines: s.tracker.LinesCleared(),
	})
}

// spawnNext promotes the preview kind to the active piece and draws a new preview
func (o *orchestrator) spawnNext(ctx context.Context) error {
	s := o.session
	kind := s.next

	next, err := o.randomizer.Next(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to choose next piece")
	}
	s.next = next

	if err := o.place(ctx, kind); err != nil {
		return err
	}
	if s.state != StateRunning {
		return nil
	}

	return o.publish(ctx, EventPieceSpawned, map[string]any{
		KeyKind:     kind,
		KeyNextKind: next,
	})
}

// place puts a new piece of kind at the spawn pivot, ending the game when the
// stack already covers any of its cells. Only pieces that enter play are counted.
func (o *orchestrator) place(ctx context.Context, kind tetromino.Kind) error {
	s := o.session
	s.piece = tetromino.New(kind, o.spawnPivot)

	if !s.grid.ValidatePositions(s.piece.CurrentCells()) {
		return o.endGame(ctx, ReasonSpawnBlocked)
	}
	s.tracker.OnPieceSpawned(kind)
	return nil
}

func (o *orchestrator) endGame(ctx context.Context, reason GameOverReason) error {
	s := o.session
	s.state = StateGameOver
	s.reason = reason

	slog.Info("Game over",
		"game_id", s.id,
		"reason", string(reason),
		"score", s.tracker.Score(),
		"level", s.tracker.Level(),
		"lines", s.tracker.LinesCleared())

	o.recordScore(ctx)

	return o.publish(ctx, EventGameOver, map[string]any{
		KeyReason: string(reason),
		KeyScore:  s.tracker.Score(),
		KeyLevel:  s.tracker.Level(),
		KeyLines:  s.tracker.LinesCleared(),
	})
}

// recordScore writes the result to the leaderboard. Failures never change the outcome.
func (o *orchestrator) recordScore(ctx context.Context) {
	s := o.session
	out, err := o.scoreRepo.Record(ctx, &scores.RecordInput{
		Entry: scores.Entry{
			GameID:     s.id,
			Player:     s.player,
			Score:      s.tracker.Score(),
			Lines:      s.tracker.LinesCleared(),
			Level:      s.tracker.Level(),
			FinishedAt: o.clock.Now(),
		},
	})
	if err != nil {
		slog.Error("Failed to record score",
			"game_id", s.id,
			"error", err)
		return
	}

	slog.Info("Score recorded",
		"game_id", s.id,
		"rank", out.Rank)
}

func containsRow(rows []int, row int) bool {
	for _, r := range rows {
		if r == row {
			return true
		}
	}
	return false
}
