package scores

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	redis "github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/termtris/internal/errors"
	redisclient "github.com/KirkDiggler/termtris/internal/redis"
)

const (
	// Key patterns: {prefix}:score:{game_id} and {prefix}:leaderboard
	defaultKeyPrefix = "termtris"
	scoreKeyPart     = "score"
	leaderboardPart  = "leaderboard"
)

// Config holds the configuration for the Redis repository
type Config struct {
	Client redisclient.Client

	// KeyPrefix namespaces every key; defaults to "termtris"
	KeyPrefix string
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()
	if c.Client == nil {
		vb.RequiredField("Client")
	}
	return vb.Build()
}

type redisRepository struct {
	client redisclient.Client
	prefix string
}

// NewRedisRepository creates a leaderboard backed by a Redis sorted set
func NewRedisRepository(cfg *Config) (Repository, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	prefix := cfg.KeyPrefix
	if prefix == "" {
		prefix = defaultKeyPrefix
	}

	return &redisRepository{
		client: cfg.Client,
		prefix: prefix,
	}, nil
}

var _ Repository = (*redisRepository)(nil)

// Record writes the entry and its leaderboard membership in one transaction
func (r *redisRepository) Record(ctx context.Context, input *RecordInput) (*RecordOutput, error) {
	if err := validateRecord(input); err != nil {
		return nil, err
	}

	entry := input.Entry
	data, err := json.Marshal(entry)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal score entry")
	}

	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, r.entryKey(entry.GameID), data, 0)
		pipe.ZAdd(ctx, r.leaderboardKey(), redis.Z{
			Score:  float64(entry.Score),
			Member: entry.GameID,
		})
		return nil
	})
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to store score in Redis")
	}

	rank, err := r.rankOf(ctx, entry)
	if err != nil {
		return nil, err
	}

	return &RecordOutput{Rank: rank}, nil
}

// ListTop reads the highest scores. Members tied with the last slot are pulled in
// too so the finish-time tie break is applied before truncating.
func (r *redisRepository) ListTop(ctx context.Context, input *ListTopInput) (*ListTopOutput, error) {
	limit := resolveLimit(input)

	top, err := r.client.ZRevRangeWithScores(ctx, r.leaderboardKey(), 0, int64(limit-1)).Result()
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to read leaderboard")
	}
	if len(top) == 0 {
		return &ListTopOutput{Entries: []Entry{}}, nil
	}

	ids := make([]string, 0, len(top))
	seen := make(map[string]struct{}, len(top))
	for _, z := range top {
		id := fmt.Sprint(z.Member)
		ids = append(ids, id)
		seen[id] = struct{}{}
	}

	lowest := top[len(top)-1].Score
	ties, err := r.membersWithScore(ctx, lowest)
	if err != nil {
		return nil, err
	}
	for _, id := range ties {
		if _, ok := seen[id]; !ok {
			ids = append(ids, id)
		}
	}

	entries, err := r.load(ctx, ids)
	if err != nil {
		return nil, err
	}

	sortEntries(entries)
	if len(entries) > limit {
		entries = entries[:limit]
	}

	return &ListTopOutput{Entries: entries}, nil
}

func (r *redisRepository) rankOf(ctx context.Context, entry Entry) (int, error) {
	above, err := r.client.ZCount(ctx, r.leaderboardKey(),
		"("+strconv.Itoa(entry.Score), "+inf").Result()
	if err != nil {
		return 0, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to rank score")
	}

	ties, err := r.membersWithScore(ctx, float64(entry.Score))
	if err != nil {
		return 0, err
	}

	others := make([]string, 0, len(ties))
	for _, id := range ties {
		if id != entry.GameID {
			others = append(others, id)
		}
	}

	tiedEntries, err := r.load(ctx, others)
	if err != nil {
		return 0, err
	}

	rank := int(above) + 1
	for _, e := range tiedEntries {
		if e.FinishedAt.Before(entry.FinishedAt) {
			rank++
		}
	}
	return rank, nil
}

func (r *redisRepository) membersWithScore(ctx context.Context, score float64) ([]string, error) {
	bound := strconv.FormatFloat(score, 'f', -1, 64)
	ids, err := r.client.ZRangeByScore(ctx, r.leaderboardKey(), &redis.ZRangeBy{
		Min: bound,
		Max: bound,
	}).Result()
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to read tied scores")
	}
	return ids, nil
}

// load fetches entries by game ID, skipping members whose entry key has gone missing
func (r *redisRepository) load(ctx context.Context, ids []string) ([]Entry, error) {
	if len(ids) == 0 {
		return []Entry{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = r.entryKey(id)
	}

	values, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to load score entries")
	}

	entries := make([]Entry, 0, len(values))
	for i, v := range values {
		raw, ok := v.(string)
		if !ok {
			continue
		}
		var e Entry
		if err := json.Unmarshal([]byte(raw), &e); err != nil {
			return nil, errors.Wrapf(err, "failed to unmarshal score entry %s", ids[i])
		}
		entries = append(entries, e)
	}
	return entries, nil
}

func (r *redisRepository) entryKey(gameID string) string {
	return fmt.Sprintf("%s:%s:%s", r.prefix, scoreKeyPart, gameID)
}

func (r *redisRepository) leaderboardKey() string {
	return fmt.Sprintf("%s:%s", r.prefix, leaderboardPart)
}
