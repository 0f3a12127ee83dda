// Package spawner chooses which piece kind enters the grid next
package spawner

//go:generate mockgen -destination=mock/mock_randomizer.go -package=spawnermock github.com/KirkDiggler/termtris/internal/services/spawner Randomizer

import (
	"context"

	"github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/KirkDiggler/termtris/internal/entities/tetromino"
	"github.com/KirkDiggler/termtris/internal/errors"
)

// Randomizer picks the next piece kind
type Randomizer interface {
	Next(ctx context.Context) (tetromino.Kind, error)
}

// Config holds the dependencies for the dice randomizer
type Config struct {
	Roller dice.Roller

	// RerollRepeats rolls once more when the result matches the previous kind,
	// which thins out long runs of the same piece without forbidding them
	RerollRepeats bool
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Roller == nil {
		vb.RequiredField("Roller")
	}

	return vb.Build()
}

type diceRandomizer struct {
	roller        dice.Roller
	rerollRepeats bool
	last          tetromino.Kind
	hasLast       bool
}

// NewDiceRandomizer creates a randomizer that rolls a d7 per piece
func NewDiceRandomizer(cfg *Config) (Randomizer, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &diceRandomizer{
		roller:        cfg.Roller,
		rerollRepeats: cfg.RerollRepeats,
	}, nil
}

// Next rolls for the next kind
func (r *diceRandomizer) Next(ctx context.Context) (tetromino.Kind, error) {
	if err := ctx.Err(); err != nil {
		return 0, errors.WrapWithCode(err, errors.CodeCanceled, "piece selection canceled")
	}

	kind, err := r.roll()
	if err != nil {
		return 0, err
	}

	if r.rerollRepeats && r.hasLast && kind == r.last {
		kind, err = r.roll()
		if err != nil {
			return 0, err
		}
	}

	r.last = kind
	r.hasLast = true
	return kind, nil
}

func (r *diceRandomizer) roll() (tetromino.Kind, error) {
	value, err := r.roller.Roll(tetromino.KindCount)
	if err != nil {
		return 0, errors.Wrap(err, "failed to roll for next piece")
	}
	if value < 1 || value > tetromino.KindCount {
		return 0, errors.Internalf("roller returned %d for a d%d", value, tetromino.KindCount)
	}
	return tetromino.AllKinds[value-1], nil
}
