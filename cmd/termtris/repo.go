package main

import (
	"context"
	"log/slog"
	"time"

	"github.com/KirkDiggler/termtris/internal/redis"
	"github.com/KirkDiggler/termtris/internal/repositories/scores"
)

const redisPingTimeout = 2 * time.Second

// openRedisScores connects to the leaderboard at addr and checks the server answers
func openRedisScores(ctx context.Context, addr string) (scores.Repository, func(), error) {
	client, err := redis.NewClient(addr, &redis.Options{
		DialTimeout: redisPingTimeout,
		MaxRetries:  1,
	})
	if err != nil {
		return nil, nil, err
	}
	closeClient := func() { _ = client.Close() }

	if err := redis.Ping(ctx, client, redisPingTimeout); err != nil {
		closeClient()
		return nil, nil, err
	}

	repo, err := scores.NewRedisRepository(&scores.Config{Client: client})
	if err != nil {
		closeClient()
		return nil, nil, err
	}
	return repo, closeClient, nil
}

// openPlayScores prefers Redis but keeps the game playable without it
func openPlayScores(ctx context.Context, addr string) (scores.Repository, func()) {
	if addr == "" {
		return scores.NewInMemory(), func() {}
	}

	repo, closeRepo, err := openRedisScores(ctx, addr)
	if err != nil {
		slog.Warn("Leaderboard unavailable, scores kept in memory",
			"redis_addr", addr,
			"error", err)
		return scores.NewInMemory(), func() {}
	}
	return repo, closeRepo
}
