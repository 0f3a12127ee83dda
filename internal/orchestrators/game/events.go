package game

import (
	"context"

	"github.com/KirkDiggler/rpg-toolkit/core"
	"github.com/KirkDiggler/rpg-toolkit/events"

	"github.com/KirkDiggler/termtris/internal/errors"
)

// Event types published on the bus
const (
	EventGameStarted  = "termtris.game_started"
	EventPieceSpawned = "termtris.piece_spawned"
	EventPieceLocked  = "termtris.piece_locked"
	EventLinesCleared = "termtris.lines_cleared"
	EventGameOver     = "termtris.game_over"
	EventGameQuit     = "termtris.game_quit"
)

// Keys set on the event context
const (
	KeyPlayer   = "player"
	KeyKind     = "kind"
	KeyNextKind = "next_kind"
	KeyRows     = "rows"
	KeyCount    = "count"
	KeyScore    = "score"
	KeyLevel    = "level"
	KeyLines    = "lines"
	KeyReason   = "reason"
)

// EntityType identifies a game session as an event source
const EntityType = "termtris_game"

// sessionEntity lets a game act as the source of toolkit events
type sessionEntity struct {
	id string
}

func (e *sessionEntity) GetID() string   { return e.id }
func (e *sessionEntity) GetType() string { return EntityType }

var _ core.Entity = (*sessionEntity)(nil)

// publish sends a game event with the session as both source and target
func (o *orchestrator) publish(ctx context.Context, eventType string, payload map[string]any) error {
	entity := &sessionEntity{id: o.session.id}
	ev := events.NewGameEvent(eventType, entity, entity)
	for k, v := range payload {
		ev.Context().Set(k, v)
	}

	if err := o.bus.Publish(ctx, ev); err != nil {
		return errors.Wrapf(err, "failed to publish %s", eventType)
	}
	return nil
}
