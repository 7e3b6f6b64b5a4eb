// Package cache provides Redis caching decorators for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"chart_backend/internal/feature/candles/domain/entity"
	"chart_backend/internal/feature/candles/usecase"
)

// CachingCandleRepository decorates a CandleRepository with Redis caching.
// A nil Redis client turns every call into a pass-through.
type CachingCandleRepository struct {
	inner     usecase.CandleRepository
	rdb       *redis.Client
	ttl       time.Duration
	ttlFn     func() time.Duration // 設定時は書き込みごとにTTLを計算する
	namespace string
}

var _ usecase.CandleRepository = (*CachingCandleRepository)(nil)

// NewCachingCandleRepository decorates a CandleRepository with Redis caching.
// If ttl is 0, it defaults to 5 minutes. If namespace is empty, it uses "candles".
func NewCachingCandleRepository(rdb *redis.Client, ttl time.Duration, inner usecase.CandleRepository, namespace string) *CachingCandleRepository {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if namespace == "" {
		namespace = "candles"
	}
	return &CachingCandleRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// NewRefreshingCandleRepository caches entries until the next 08:00 JST,
// computed at write time so entries never outlive the nightly ingest.
func NewRefreshingCandleRepository(rdb *redis.Client, inner usecase.CandleRepository, namespace string) *CachingCandleRepository {
	c := NewCachingCandleRepository(rdb, 0, inner, namespace)
	c.ttlFn = TimeUntilNext8AM
	return c
}

// UpsertBatch writes through to the inner repository and then drops every
// cached query for the affected symbol+interval pairs.
func (c *CachingCandleRepository) UpsertBatch(ctx context.Context, candles []entity.Candle) error {
	if err := c.inner.UpsertBatch(ctx, candles); err != nil {
		return err
	}
	if c.rdb == nil || len(candles) == 0 {
		return nil
	}

	seen := map[string]struct{}{}
	for _, cd := range candles {
		prefix := c.cacheKeyPrefix(cd.Symbol, cd.Interval)
		if _, ok := seen[prefix]; ok {
			continue
		}
		seen[prefix] = struct{}{}
		_ = c.deleteByPattern(ctx, prefix+"*") // best effort
	}
	return nil
}

// Find returns the newest candles, served from cache when possible.
func (c *CachingCandleRepository) Find(ctx context.Context, symbol, interval string, outputsize int) ([]entity.Candle, error) {
	if c.rdb == nil {
		return c.inner.Find(ctx, symbol, interval, outputsize)
	}
	key := fmt.Sprintf("%s%d", c.cacheKeyPrefix(symbol, interval), outputsize)
	return c.remember(ctx, key, func() ([]entity.Candle, error) {
		return c.inner.Find(ctx, symbol, interval, outputsize)
	})
}

// FindRange returns candles in [from, to), served from cache when possible.
func (c *CachingCandleRepository) FindRange(ctx context.Context, symbol, interval string, from, to time.Time) ([]entity.Candle, error) {
	if c.rdb == nil {
		return c.inner.FindRange(ctx, symbol, interval, from, to)
	}
	key := fmt.Sprintf("%srange:%d:%d", c.cacheKeyPrefix(symbol, interval), from.Unix(), to.Unix())
	return c.remember(ctx, key, func() ([]entity.Candle, error) {
		return c.inner.FindRange(ctx, symbol, interval, from, to)
	})
}

// remember reads key from Redis, falling back to load and storing its result.
func (c *CachingCandleRepository) remember(ctx context.Context, key string, load func() ([]entity.Candle, error)) ([]entity.Candle, error) {
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out []entity.Candle
		if err := json.Unmarshal(b, &out); err == nil {
			return out, nil
		}
		// corrupted entry
		_ = c.rdb.Del(ctx, key).Err()
	}

	out, err := load()
	if err != nil {
		return nil, err
	}

	ttl := c.ttl
	if c.ttlFn != nil {
		ttl = c.ttlFn()
	}
	if b, err := json.Marshal(out); err == nil {
		_ = c.rdb.Set(ctx, key, b, ttl).Err()
	}
	return out, nil
}

// cacheKeyPrefix is shared by every key of a symbol+interval so UpsertBatch can invalidate them together.
func (c *CachingCandleRepository) cacheKeyPrefix(symbol, interval string) string {
	return fmt.Sprintf("%s:%s:%s:",
		c.namespace,
		safe(symbol),
		safe(interval),
	)
}

// deleteByPattern deletes all cache keys matching a given pattern using SCAN.
func (c *CachingCandleRepository) deleteByPattern(ctx context.Context, pattern string) error {
	var cursor uint64
	for {
		keys, cur, err := c.rdb.Scan(ctx, cursor, pattern, 200).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		cursor = cur
		if cursor == 0 {
			break
		}
	}
	return nil
}

// safe escapes characters that are problematic for Redis keys.
func safe(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, ":", "_")
	return s
}
