// Package cache provides the Redis-backed store for finished seeded
// mazes. Seeded generation is deterministic, so identical parameters can
// share one stored grid.
package cache

import (
	"context"
	"time"

	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/redis/go-redis/v9"
)

const defaultTTLSeconds = 3600

// RedisMazeCache stores hex-serialized mazes by parameter key with TTL
// support. Implements i.MazeCache.
type RedisMazeCache struct {
	client *redis.Client
	locker *redsync.Redsync
	ttl    time.Duration
}

// NewRedisMazeCache initializes a RedisMazeCache with the provided Redis
// client and TTL. A non-positive TTL keeps the one-hour default.
func NewRedisMazeCache(client *redis.Client, ttlSeconds int) (*RedisMazeCache, error) {
	if ttlSeconds <= 0 {
		ttlSeconds = defaultTTLSeconds
	}
	mazeCache := &RedisMazeCache{
		client: client,
		ttl:    time.Duration(ttlSeconds) * time.Second,
	}
	pool := goredis.NewPool(client)
	mazeCache.locker = redsync.New(pool)
	return mazeCache, nil
}

// Remember returns the cached maze for key, or builds and stores it. The
// build runs under a distributed mutex so concurrent requests for the
// same parameters generate only once.
func (rc *RedisMazeCache) Remember(ctx context.Context, key string, build func() (string, error)) (string, error) {
	if hexGrid, err := rc.client.Get(ctx, key).Result(); err == nil {
		return hexGrid, nil
	}

	mutex := rc.locker.NewMutex(key + ":build_lock")
	if err := mutex.Lock(); err != nil {
		return "", err
	}
	defer func() {
		_, _ = mutex.Unlock()
	}()

	// another holder may have stored it while we waited for the lock
	if hexGrid, err := rc.client.Get(ctx, key).Result(); err == nil {
		return hexGrid, nil
	}

	hexGrid, err := build()
	if err != nil {
		return "", err
	}
	if err := rc.client.Set(ctx, key, hexGrid, rc.ttl).Err(); err != nil {
		return "", err
	}
	return hexGrid, nil
}
