package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// AvailabilityCache keeps computed availability listings in Redis,
// keyed by (date, service). Invalidation is by version counter: every
// mutation touching a date bumps the date's version, orphaning all
// cached entries for it, so there is no pattern-scan deletion. A nil
// cache (no Redis configured) is valid and turns every call into a
// no-op.
type AvailabilityCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func New(rdb *redis.Client, ttl time.Duration) *AvailabilityCache {
	if rdb == nil {
		return nil
	}
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &AvailabilityCache{rdb: rdb, ttl: ttl}
}

// Cached is a raw cache hit.
type Cached []byte

func (c Cached) Unmarshal(v any) bool {
	return json.Unmarshal(c, v) == nil
}

func (c *AvailabilityCache) key(ctx context.Context, date, service string) string {
	version, err := c.rdb.Get(ctx, "avail:ver:"+date).Int64()
	if err != nil && err != redis.Nil {
		version = -1 // unknown version, key will simply miss
	}
	return fmt.Sprintf("avail:%s:%d:%s", date, version, service)
}

func (c *AvailabilityCache) Get(ctx context.Context, date, service string) (Cached, bool) {
	if c == nil {
		return nil, false
	}

	raw, err := c.rdb.Get(ctx, c.key(ctx, date, service)).Bytes()
	if err != nil {
		return nil, false
	}
	return Cached(raw), true
}

func (c *AvailabilityCache) Set(ctx context.Context, date, service string, v any) {
	if c == nil {
		return
	}

	raw, err := json.Marshal(v)
	if err != nil {
		return
	}

	if err := c.rdb.Set(ctx, c.key(ctx, date, service), raw, c.ttl).Err(); err != nil {
		zap.L().Debug("availability cache set failed", zap.Error(err))
	}
}

// InvalidateDate orphans every cached listing for the date.
func (c *AvailabilityCache) InvalidateDate(ctx context.Context, date string) {
	if c == nil {
		return
	}

	if err := c.rdb.Incr(ctx, "avail:ver:"+date).Err(); err != nil {
		zap.L().Warn("availability cache invalidation failed",
			zap.String("date", date), zap.Error(err))
	}
}
