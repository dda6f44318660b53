package cache

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/skyloyalty/miles-ledger/internal/domain/entity"
	cacheport "github.com/skyloyalty/miles-ledger/internal/domain/port/cache"
	coreport "github.com/skyloyalty/miles-ledger/internal/domain/port/core"
)

const leaderboardKeyPrefix = "miles:leaderboard:"

// RedisLeaderboardCache caches serialized leaderboard pages in Redis,
// one key per requested limit. All errors are logged and swallowed so
// that an unreachable cache degrades to plain store queries.
type RedisLeaderboardCache struct {
	client *redis.Client
	ttl    coreport.Duration
	logger coreport.Logger
}

// NewRedisLeaderboardCache creates a new Redis-backed leaderboard cache
func NewRedisLeaderboardCache(client *redis.Client, ttl coreport.Duration, logger coreport.Logger) cacheport.LeaderboardCache {
	return &RedisLeaderboardCache{
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

func leaderboardKey(limit int) string {
	return fmt.Sprintf("%s%d", leaderboardKeyPrefix, limit)
}

// Get returns the cached entries for the given limit, if present.
func (c *RedisLeaderboardCache) Get(ctx context.Context, limit int) ([]entity.LeaderboardEntry, bool) {
	payload, err := c.client.Get(ctx, leaderboardKey(limit)).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("Leaderboard cache read failed", map[string]any{
				"limit": limit,
				"error": err.Error(),
			})
		}
		return nil, false
	}

	var entries []entity.LeaderboardEntry
	if err := json.Unmarshal(payload, &entries); err != nil {
		c.logger.Warn("Leaderboard cache entry corrupted, dropping", map[string]any{
			"limit": limit,
			"error": err.Error(),
		})
		c.client.Del(ctx, leaderboardKey(limit))
		return nil, false
	}
	return entries, true
}

// Set stores the entries for the given limit.
func (c *RedisLeaderboardCache) Set(ctx context.Context, limit int, entries []entity.LeaderboardEntry) {
	payload, err := json.Marshal(entries)
	if err != nil {
		c.logger.Warn("Failed to serialize leaderboard for cache", map[string]any{
			"limit": limit,
			"error": err.Error(),
		})
		return
	}

	if err := c.client.Set(ctx, leaderboardKey(limit), payload, c.ttl.Std()).Err(); err != nil {
		c.logger.Warn("Leaderboard cache write failed", map[string]any{
			"limit": limit,
			"error": err.Error(),
		})
	}
}

// Invalidate drops every cached leaderboard page.
func (c *RedisLeaderboardCache) Invalidate(ctx context.Context) {
	iter := c.client.Scan(ctx, 0, leaderboardKeyPrefix+"*", 0).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		c.logger.Warn("Leaderboard cache scan failed", map[string]any{
			"error": err.Error(),
		})
		return
	}
	if len(keys) == 0 {
		return
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		c.logger.Warn("Leaderboard cache invalidation failed", map[string]any{
			"error": err.Error(),
		})
	}
}
