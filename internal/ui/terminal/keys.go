// Package terminal draws games with tcell and turns key presses into game commands
package terminal

import (
	"context"
	"sync/atomic"

	"github.com/gdamore/tcell/v2"

	"github.com/KirkDiggler/termtris/internal/orchestrators/game"
)

const inputBuffer = 64

// CommandForKey maps a key press to a game command. Unbound keys map to CommandNone.
func CommandForKey(key tcell.Key, r rune) game.Command {
	switch key {
	case tcell.KeyLeft:
		return game.CommandMoveLeft
	case tcell.KeyRight:
		return game.CommandMoveRight
	case tcell.KeyDown:
		return game.CommandSoftDrop
	case tcell.KeyUp:
		return game.CommandRotateCW
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return game.CommandQuit
	case tcell.KeyRune:
		switch r {
		case 'h', 'H':
			return game.CommandMoveLeft
		case 'l', 'L':
			return game.CommandMoveRight
		case 'j', 'J':
			return game.CommandSoftDrop
		case 'x', 'X':
			return game.CommandRotateCW
		case 'z', 'Z':
			return game.CommandRotateCCW
		case 'q', 'Q':
			return game.CommandQuit
		}
	}
	return game.CommandNone
}

// EventSource yields terminal events; tcell.Screen satisfies it.
// PollEvent returns nil once the source is finalized.
type EventSource interface {
	PollEvent() tcell.Event
}

// Input buffers commands read from an EventSource on a background goroutine
type Input struct {
	commands chan game.Command
	anyKey   chan struct{}
	resized  atomic.Bool
	done     chan struct{}
}

// NewInput starts reading src. Reading stops when src returns a nil event.
func NewInput(src EventSource) *Input {
	in := &Input{
		commands: make(chan game.Command, inputBuffer),
		anyKey:   make(chan struct{}, 1),
		done:     make(chan struct{}),
	}
	go in.read(src)
	return in
}

func (in *Input) read(src EventSource) {
	defer close(in.done)
	for {
		ev := src.PollEvent()
		if ev == nil {
			return
		}

		switch ev := ev.(type) {
		case *tcell.EventKey:
			select {
			case in.anyKey <- struct{}{}:
			default:
			}

			cmd := CommandForKey(ev.Key(), ev.Rune())
			if cmd == game.CommandNone {
				continue
			}
			select {
			case in.commands <- cmd:
			default:
				// loop is behind; drop
			}
		case *tcell.EventResize:
			in.resized.Store(true)
		}
	}
}

// Poll returns the oldest pending command, or CommandNone when nothing is waiting
func (in *Input) Poll() game.Command {
	select {
	case cmd := <-in.commands:
		return cmd
	default:
		return game.CommandNone
	}
}

// Drain discards pending commands and key presses
func (in *Input) Drain() {
	for {
		select {
		case <-in.commands:
		case <-in.anyKey:
		default:
			return
		}
	}
}

// WaitForKey blocks until any key is pressed, the source closes, or ctx ends
func (in *Input) WaitForKey(ctx context.Context) error {
	select {
	case <-in.anyKey:
		return nil
	case <-in.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// TakeResize reports whether the terminal was resized since the last call
func (in *Input) TakeResize() bool {
	return in.resized.Swap(false)
}

// Done is closed once the event source has been finalized
func (in *Input) Done() <-chan struct{} {
	return in.done
}
