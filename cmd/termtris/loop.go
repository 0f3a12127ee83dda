package main

import (
	"context"
	"log/slog"
	"time"

	"github.com/KirkDiggler/termtris/internal/errors"
	"github.com/KirkDiggler/termtris/internal/orchestrators/game"
)

// frameTick is the cycle period; ~60 cycles a second keeps input responsive
const frameTick = 16 * time.Millisecond

// commandSource is what the loop needs from terminal.Input
type commandSource interface {
	Poll() game.Command
	Drain()
	WaitForKey(ctx context.Context) error
	TakeResize() bool
}

// frameDrawer is what the loop needs from terminal.Renderer
type frameDrawer interface {
	Draw(snap *game.Snapshot)
}

type loopConfig struct {
	Game     game.Service
	Input    commandSource
	Drawer   frameDrawer
	Player   string
	Tick     time.Duration
	OnResize func()
}

// runLoop plays one game to completion and returns its final snapshot.
// Each tick polls at most one command and runs exactly one Step.
func runLoop(ctx context.Context, cfg *loopConfig) (*game.Snapshot, error) {
	started, err := cfg.Game.Start(ctx, &game.StartInput{Player: cfg.Player})
	if err != nil {
		return nil, errors.Wrap(err, "failed to start game")
	}
	cfg.Drawer.Draw(started.Snapshot)

	ticker := time.NewTicker(cfg.Tick)
	defer ticker.Stop()

	last := started.Snapshot
	for {
		select {
		case <-ctx.Done():
			slog.Info("Game interrupted", "game_id", started.GameID)
			return last, nil
		case <-ticker.C:
		}

		if cfg.Input.TakeResize() && cfg.OnResize != nil {
			cfg.OnResize()
		}

		out, err := cfg.Game.Step(ctx, &game.StepInput{Command: cfg.Input.Poll()})
		if err != nil {
			if errors.GetCode(err).Terminal() {
				slog.Warn("Game loop stopped", "game_id", started.GameID, "error", err)
				return last, nil
			}
			return last, errors.Wrap(err, "game step failed")
		}

		last = out.Snapshot
		cfg.Drawer.Draw(out.Snapshot)

		if out.Quit {
			return last, nil
		}
		if out.GameOver {
			cfg.Input.Drain()
			if err := cfg.Input.WaitForKey(ctx); err != nil {
				slog.Debug("Stopped waiting for key", "error", err)
			}
			return last, nil
		}
	}
}
