// Package progression tracks score, cleared lines, level and the gravity
// interval derived from them.
package progression

import (
	"log/slog"
	"time"

	"github.com/KirkDiggler/termtris/internal/entities/tetromino"
	"github.com/KirkDiggler/termtris/internal/errors"
)

const (
	// LinesPerLevel is how many cleared lines advance one level
	LinesPerLevel = 10

	// MaxSimultaneousLines is the most rows a single lock can clear
	MaxSimultaneousLines = 4

	DefaultInitialInterval = time.Second
	DefaultIntervalStep    = 100 * time.Millisecond
	DefaultMinInterval     = 100 * time.Millisecond
)

// lineScores is the base award per simultaneous clear count, multiplied by level+1
var lineScores = [MaxSimultaneousLines + 1]int{0, 40, 100, 300, 1200}

// Config holds the gravity timing parameters
type Config struct {
	InitialInterval time.Duration
	IntervalStep    time.Duration
	MinInterval     time.Duration
}

// DefaultConfig returns 1s initial gravity shrinking 100ms per level down to 100ms
func DefaultConfig() *Config {
	return &Config{
		InitialInterval: DefaultInitialInterval,
		IntervalStep:    DefaultIntervalStep,
		MinInterval:     DefaultMinInterval,
	}
}

// Validate ensures the intervals are usable
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.InitialInterval <= 0 {
		vb.Field("InitialInterval", "must be positive")
	}
	if c.IntervalStep < 0 {
		vb.Field("IntervalStep", "must not be negative")
	}
	if c.MinInterval <= 0 {
		vb.Field("MinInterval", "must be positive")
	}
	if c.MinInterval > c.InitialInterval {
		vb.Field("MinInterval", "must not exceed InitialInterval")
	}

	return vb.Build()
}

// Snapshot is a read-only view of progression for display
type Snapshot struct {
	Score           int
	LinesCleared    int
	Level           int
	GravityInterval time.Duration
	Spawned         map[tetromino.Kind]int
}

// Tracker owns score and line state for one game. It is not safe for
// concurrent use; the game orchestrator is its only owner.
type Tracker struct {
	cfg      Config
	score    int
	lines    int
	interval time.Duration
	spawned  [tetromino.KindCount]int
}

// NewTracker creates a tracker at level 0 with the initial gravity interval
func NewTracker(cfg *Config) (*Tracker, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &Tracker{
		cfg:      *cfg,
		interval: cfg.InitialInterval,
	}, nil
}

// Score returns the current score
func (t *Tracker) Score() int {
	return t.score
}

// LinesCleared returns the total cleared line count
func (t *Tracker) LinesCleared() int {
	return t.lines
}

// Level is always derived from the line count
func (t *Tracker) Level() int {
	return t.lines / LinesPerLevel
}

// GravityInterval returns the current wall-clock period between forced advances
func (t *Tracker) GravityInterval() time.Duration {
	return t.interval
}

// ScoreFor returns the award for clearing n rows at once at the given level
func ScoreFor(n, level int) (int, error) {
	if n < 1 || n > MaxSimultaneousLines {
		return 0, errors.OutOfRangef("cleared line count must be between 1 and %d, got %d", MaxSimultaneousLines, n)
	}
	return lineScores[n] * (level + 1), nil
}

// OnLinesCleared records n simultaneously completed rows and returns the new
// gravity interval. The award uses the level in force before the clear. The
// interval only ever shrinks and never drops below MinInterval.
func (t *Tracker) OnLinesCleared(n int) (time.Duration, error) {
	delta, err := ScoreFor(n, t.Level())
	if err != nil {
		return t.interval, err
	}

	t.lines += n
	t.score += delta

	level := t.Level()
	candidate := t.cfg.InitialInterval - time.Duration(level)*t.cfg.IntervalStep
	if candidate < t.cfg.MinInterval {
		candidate = t.cfg.MinInterval
	}
	if candidate < t.interval {
		t.interval = candidate
	}

	slog.Debug("Lines cleared",
		"count", n,
		"delta", delta,
		"score", t.score,
		"lines", t.lines,
		"level", level,
		"gravity_interval", t.interval,
	)

	return t.interval, nil
}

// OnPieceSpawned counts a spawn of kind k
func (t *Tracker) OnPieceSpawned(k tetromino.Kind) {
	if !k.Valid() {
		return
	}
	t.spawned[k]++
}

// Snapshot returns the current values
func (t *Tracker) Snapshot() Snapshot {
	spawned := make(map[tetromino.Kind]int, tetromino.KindCount)
	for _, k := range tetromino.AllKinds {
		if t.spawned[k] > 0 {
			spawned[k] = t.spawned[k]
		}
	}

	return Snapshot{
		Score:           t.score,
		LinesCleared:    t.lines,
		Level:           t.Level(),
		GravityInterval: t.interval,
		Spawned:         spawned,
	}
}
