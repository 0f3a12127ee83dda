// Package scores stores the results of finished games and answers leaderboard queries
package scores

import (
	"context"
	"sort"
	"time"
)

//go:generate mockgen -destination=mock/mock_repository.go -package=scoresmock github.com/KirkDiggler/termtris/internal/repositories/scores Repository

// DefaultListLimit is used when ListTop is called without a limit
const DefaultListLimit = 10

// Entry is one finished game
type Entry struct {
	GameID     string    `json:"game_id"`
	Player     string    `json:"player"`
	Score      int       `json:"score"`
	Lines      int       `json:"lines"`
	Level      int       `json:"level"`
	FinishedAt time.Time `json:"finished_at"`
}

// RecordInput contains the finished game to store
type RecordInput struct {
	Entry Entry
}

// RecordOutput reports where the entry landed on the leaderboard
type RecordOutput struct {
	// Rank is 1-based; 1 is the best score on the board
	Rank int
}

// ListTopInput limits the leaderboard query
type ListTopInput struct {
	Limit int
}

// ListTopOutput holds entries ordered best first
type ListTopOutput struct {
	Entries []Entry
}

// Repository persists finished games
type Repository interface {
	Record(ctx context.Context, input *RecordInput) (*RecordOutput, error)
	ListTop(ctx context.Context, input *ListTopInput) (*ListTopOutput, error)
}

// sortEntries orders by descending score, earlier finish first on ties
func sortEntries(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Score != entries[j].Score {
			return entries[i].Score > entries[j].Score
		}
		return entries[i].FinishedAt.Before(entries[j].FinishedAt)
	})
}

func resolveLimit(input *ListTopInput) int {
	if input == nil || input.Limit <= 0 {
		return DefaultListLimit
	}
	return input.Limit
}
