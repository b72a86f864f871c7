// Package cache is a Redis-backed cache for derived views (dashboard stats,
// recent activity, daily cash summaries). Mutating services invalidate the
// keys of every dependent view so the next read recomputes from the database.
// Cache failures are never fatal: readers fall through to the database and
// writers log and move on.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// Keys of the cached derived views.
const (
	KeyDashboardStats = "views:dashboard-stats"
	KeyRecentActivity = "views:recent-activity"
	keyCashSummary    = "views:cash-summary:" // + YYYY-MM-DD
)

// KeyCashSummary returns the cache key of one date's summary.
func KeyCashSummary(date string) string { return keyCashSummary + date }

const defaultTTL = 5 * time.Minute

type QueryCache struct {
	rdb *redis.Client
}

func NewQueryCache(rdb *redis.Client) *QueryCache { return &QueryCache{rdb: rdb} }

// GetJSON loads a cached view into dest. Returns false on miss, on a
// malformed payload, or on any Redis error — the caller recomputes.
func (c *QueryCache) GetJSON(ctx context.Context, key string, dest interface{}) bool {
	if c == nil || c.rdb == nil {
		return false
	}
	data, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Warn().Str("key", key).Err(err).Msg("cache read failed, recomputing")
		}
		return false
	}
	if err := json.Unmarshal(data, dest); err != nil {
		log.Warn().Str("key", key).Err(err).Msg("malformed cache entry, recomputing")
		return false
	}
	return true
}

// SetJSON stores a computed view. Failures are logged and ignored.
func (c *QueryCache) SetJSON(ctx context.Context, key string, value interface{}) {
	if c == nil || c.rdb == nil {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		log.Warn().Str("key", key).Err(err).Msg("cache marshal failed")
		return
	}
	if err := c.rdb.Set(ctx, key, data, defaultTTL).Err(); err != nil {
		log.Warn().Str("key", key).Err(err).Msg("cache write failed")
	}
}

// Invalidate drops the given keys. Key-pattern "views:cash-summary:*" style
// wildcards are not used — callers name every key they dirty.
func (c *QueryCache) Invalidate(ctx context.Context, keys ...string) {
	if c == nil || c.rdb == nil || len(keys) == 0 {
		return
	}
	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		log.Warn().Strs("keys", keys).Err(err).Msg("cache invalidation failed")
	}
}

// InvalidateCashSummaries drops every cached daily summary. Used by mutations
// whose affected date is not known in advance (e.g. deleting an old movement).
func (c *QueryCache) InvalidateCashSummaries(ctx context.Context) {
	if c == nil || c.rdb == nil {
		return
	}
	iter := c.rdb.Scan(ctx, 0, keyCashSummary+"*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		log.Warn().Err(err).Msg("cache summary scan failed")
		return
	}
	if len(keys) > 0 {
		c.Invalidate(ctx, keys...)
	}
}
