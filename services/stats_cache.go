package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// StatsCache holds computed MealStats per user. Entries are keyed by a
// per-user version that every meal write bumps, so a result computed from a
// read that raced with a write lands under a version nobody reads again.
type StatsCache interface {
	Version(ctx context.Context, userID string) (int64, error)
	Get(ctx context.Context, userID string, version int64) (*MealStats, bool, error)
	Set(ctx context.Context, userID string, version int64, stats MealStats) error
	Invalidate(ctx context.Context, userID string) error
}

type NoopStatsCache struct{}

func (NoopStatsCache) Version(context.Context, string) (int64, error) { return 0, nil }
func (NoopStatsCache) Get(context.Context, string, int64) (*MealStats, bool, error) {
	return nil, false, nil
}
func (NoopStatsCache) Set(context.Context, string, int64, MealStats) error { return nil }
func (NoopStatsCache) Invalidate(context.Context, string) error { return nil }

type RedisStatsCache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

func NewRedisStatsCache(client *redis.Client, prefix string, ttl time.Duration) (*RedisStatsCache, error) {
	if client == nil {
		return nil, errors.New("stats cache requires a redis client")
	}
	if ttl <= 0 {
		return nil, errors.New("stats cache requires a positive ttl")
	}
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		prefix = "dailydiet:stats"
	}
	return &RedisStatsCache{client: client, prefix: prefix, ttl: ttl}, nil
}

func (c *RedisStatsCache) versionKey(userID string) string {
	return fmt.Sprintf("%s:%s:version", c.prefix, userID)
}

func (c *RedisStatsCache) key(userID string, version int64) string {
	return fmt.Sprintf("%s:%s:v%d", c.prefix, userID, version)
}

// Version returns 0 for a user whose meals were never written through the cache.
func (c *RedisStatsCache) Version(ctx context.Context, userID string) (int64, error) {
	v, err := c.client.Get(ctx, c.versionKey(userID)).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, err
	}
	return v, nil
}

func (c *RedisStatsCache) Get(ctx context.Context, userID string, version int64) (*MealStats, bool, error) {
	raw, err := c.client.Get(ctx, c.key(userID, version)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, err
	}
	var stats MealStats
	if err := json.Unmarshal(raw, &stats); err != nil {
		return nil, false, fmt.Errorf("decode cached stats: %w", err)
	}
	return &stats, true, nil
}

func (c *RedisStatsCache) Set(ctx context.Context, userID string, version int64, stats MealStats) error {
	raw, err := json.Marshal(stats)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key(userID, version), raw, c.ttl).Err()
}

// Invalidate bumps the user's version. The version key has no TTL; losing it
// would let an old entry under a reused version be read again.
func (c *RedisStatsCache) Invalidate(ctx context.Context, userID string) error {
	return c.client.Incr(ctx, c.versionKey(userID)).Err()
}
