package scores

import (
	"context"
	"sync"

	"github.com/KirkDiggler/termtris/internal/errors"
)

// InMemoryRepository keeps the leaderboard for the lifetime of the process.
// It backs `termtris play` when no Redis address is configured.
type InMemoryRepository struct {
	mu      sync.RWMutex
	entries map[string]Entry
}

// NewInMemory creates a new in-memory repository
func NewInMemory() *InMemoryRepository {
	return &InMemoryRepository{
		entries: make(map[string]Entry),
	}
}

var _ Repository = (*InMemoryRepository)(nil)

// Record stores a finished game, replacing any earlier entry with the same game ID
func (r *InMemoryRepository) Record(ctx context.Context, input *RecordInput) (*RecordOutput, error) {
	if err := validateRecord(input); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries[input.Entry.GameID] = input.Entry

	rank := 1
	for id, e := range r.entries {
		if id == input.Entry.GameID {
			continue
		}
		if e.Score > input.Entry.Score ||
			(e.Score == input.Entry.Score && e.FinishedAt.Before(input.Entry.FinishedAt)) {
			rank++
		}
	}

	return &RecordOutput{Rank: rank}, nil
}

// ListTop returns the best entries
func (r *InMemoryRepository) ListTop(ctx context.Context, input *ListTopInput) (*ListTopOutput, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeCanceled, "list canceled")
	}

	r.mu.RLock()
	entries := make([]Entry, 0, len(r.entries))
	for _, e := range r.entries {
		entries = append(entries, e)
	}
	r.mu.RUnlock()

	sortEntries(entries)

	if limit := resolveLimit(input); len(entries) > limit {
		entries = entries[:limit]
	}

	return &ListTopOutput{Entries: entries}, nil
}
