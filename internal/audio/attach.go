package audio

import (
	"context"

	"github.com/KirkDiggler/rpg-toolkit/events"

	"github.com/KirkDiggler/termtris/internal/orchestrators/game"
)

// handlerPriority keeps sound cues behind any gameplay subscribers
const handlerPriority = 100

// Attach subscribes player to the game's clear and game-over events.
// The returned function removes both subscriptions.
func Attach(bus events.EventBus, player Player) func() {
	ids := []string{
		bus.SubscribeFunc(game.EventLinesCleared, handlerPriority, func(_ context.Context, e events.Event) error {
			v, ok := e.Context().Get(game.KeyCount)
			if !ok {
				return nil
			}
			count, ok := v.(int)
			if !ok {
				return nil
			}
			if sound, ok := SoundForLines(count); ok {
				player.Play(sound)
			}
			return nil
		}),
		bus.SubscribeFunc(game.EventGameOver, handlerPriority, func(_ context.Context, _ events.Event) error {
			player.Play(SoundGameOver)
			return nil
		}),
	}

	return func() {
		for _, id := range ids {
			_ = bus.Unsubscribe(id)
		}
	}
}
