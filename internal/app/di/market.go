// Package di provides dependency injection factories for creating application components.
package di

import (
	"time"

	candleadapters "chart_backend/internal/feature/candles/adapters"
	candleusecase "chart_backend/internal/feature/candles/usecase"
	"chart_backend/internal/platform/cache"
	"chart_backend/internal/platform/externalapi/twelvedata"
	infrahttp "chart_backend/internal/platform/http"
	"chart_backend/internal/shared/ratelimiter"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// NewMarket creates a TwelveDataMarket over a tuned HTTP client, together
// with a limiter sized to the plan's requests-per-minute quota.
func NewMarket(cfg twelvedata.Config) (*twelvedata.TwelveDataMarket, *ratelimiter.RateLimiter) {
	httpClient := infrahttp.NewHTTPClient(cfg.Timeout)
	return twelvedata.NewTwelveDataMarket(cfg, httpClient),
		ratelimiter.NewRateLimiter(cfg.RequestsPerMinute, time.Minute)
}

// NewCandleRepository returns the gorm candle repository, wrapped in a Redis
// read-through cache when rdb is non-nil. Cached entries live until the next
// 08:00 JST refresh.
func NewCandleRepository(db *gorm.DB, rdb *redis.Client) candleusecase.CandleRepository {
	repo := candleadapters.NewCandleRepository(db)
	if rdb == nil {
		return repo
	}
	return cache.NewRefreshingCandleRepository(rdb, repo, "candles")
}
