package game

import (
	"github.com/KirkDiggler/termtris/internal/entities/tetromino"
	"github.com/KirkDiggler/termtris/internal/services/progression"
)

// Command is the discrete player input consumed by one cycle
type Command int

// Commands accepted by Step
const (
	CommandNone Command = iota
	CommandMoveLeft
	CommandMoveRight
	CommandSoftDrop
	CommandRotateCW
	CommandRotateCCW
	CommandQuit
	commandCount
)

var commandNames = [commandCount]string{
	CommandNone:      "none",
	CommandMoveLeft:  "move_left",
	CommandMoveRight: "move_right",
	CommandSoftDrop:  "soft_drop",
	CommandRotateCW:  "rotate_cw",
	CommandRotateCCW: "rotate_ccw",
	CommandQuit:      "quit",
}

func (c Command) String() string {
	if c < 0 || c >= commandCount {
		return "unknown"
	}
	return commandNames[c]
}

// Valid reports whether c is a known command
func (c Command) Valid() bool {
	return c >= 0 && c < commandCount
}

// State is the lifecycle of one game
type State int

// Game states
const (
	StateRunning State = iota
	StateGameOver
	StateQuit
)

func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateGameOver:
		return "game_over"
	case StateQuit:
		return "quit"
	default:
		return "unknown"
	}
}

// Terminal reports whether the game accepts no further cycles
func (s State) Terminal() bool {
	return s != StateRunning
}

// GameOverReason explains why a game ended
type GameOverReason string

// Reasons a game can end
const (
	ReasonNone         GameOverReason = ""
	ReasonTopOut       GameOverReason = "top_out"
	ReasonSpawnBlocked GameOverReason = "spawn_blocked"
)

// StartInput begins a new game
type StartInput struct {
	Player string
}

// StartOutput identifies the new game and its opening position
type StartOutput struct {
	GameID   string
	Snapshot *Snapshot
}

// StepInput carries at most one command for the cycle
type StepInput struct {
	Command Command
}

// StepOutput describes what happened during one cycle
type StepOutput struct {
	// Accepted is true when the command's candidate move was committed
	Accepted bool

	// GravityApplied is true when the gravity interval elapsed this cycle
	GravityApplied bool

	// Locked is true when the active piece merged into the grid
	Locked bool

	// ClearedRows lists completed rows removed this cycle, ascending
	ClearedRows []int

	GameOver bool
	Quit     bool
	Snapshot *Snapshot
}

// PieceView is the active piece as the renderer sees it
type PieceView struct {
	Kind          tetromino.Kind
	Orientation   tetromino.Orientation
	Pivot         tetromino.Cell
	Cells         []tetromino.Cell
	PreviousCells []tetromino.Cell
}

// Snapshot is a copy of everything a frontend needs to draw one frame.
// Mutating it never affects the game.
type Snapshot struct {
	GameID string
	Player string
	State  State
	Reason GameOverReason
	Width  int
	Height int

	// Active is nil once the game has ended
	Active *PieceView
	Next   tetromino.Kind

	Grid map[tetromino.Cell]tetromino.Kind

	// PreviousGrid is the stack as it was before the most recent clear
	PreviousGrid map[tetromino.Cell]tetromino.Kind

	// LastCleared holds the rows removed by the most recent clear
	LastCleared []int

	Progression progression.Snapshot
}
