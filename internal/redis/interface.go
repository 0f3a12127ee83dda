package redis

import (
	"github.com/redis/go-redis/v9"
)

// Client is the subset of go-redis the score store depends on. Both the
// single-node client and miniredis-backed test clients satisfy it.
type Client interface {
	redis.UniversalClient
}

// Pipeliner wraps redis.Pipeliner for batch operations
type Pipeliner interface {
	redis.Pipeliner
}
