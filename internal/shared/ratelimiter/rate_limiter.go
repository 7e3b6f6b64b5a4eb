// Package ratelimiter は外部API呼び出しの頻度を固定ウィンドウで制限します。
package ratelimiter

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// RateLimiter は interval ごとに limit 回までの呼び出しを許可します。
type RateLimiter struct {
	mu        sync.Mutex
	limit     int           // ウィンドウあたりの上限
	interval  time.Duration // ウィンドウの長さ
	count     int
	lastReset time.Time
	now       func() time.Time
}

// NewRateLimiter は新しいRateLimiterを生成します。limit が0以下の場合は1として扱います。
func NewRateLimiter(limit int, interval time.Duration) *RateLimiter {
	if limit <= 0 {
		limit = 1
	}
	return &RateLimiter{
		limit:     limit,
		interval:  interval,
		lastReset: time.Now(),
		now:       time.Now,
	}
}

// reserve は今回の呼び出し枠を確保し、必要な待機時間を返します。
// lastReset は予約済みの最も新しいウィンドウの先頭で、現在時刻より未来になることがあります。
func (rl *RateLimiter) reserve() time.Duration {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	if now.Sub(rl.lastReset) >= rl.interval {
		rl.count = 0
		rl.lastReset = now
	}

	// 予約済みウィンドウが埋まっていれば次のウィンドウへ進める
	if rl.count >= rl.limit {
		rl.count = 0
		rl.lastReset = rl.lastReset.Add(rl.interval)
	}
	rl.count++

	if wait := rl.lastReset.Sub(now); wait > 0 {
		return wait
	}
	return 0
}

// Wait は上限に達している場合に次のウィンドウまで待機します。
// 待機中にコンテキストが終了した場合はそのエラーを返します。
func (rl *RateLimiter) Wait(ctx context.Context) error {
	wait := rl.reserve()
	if wait <= 0 {
		return ctx.Err()
	}

	slog.Info("rate limit reached, waiting", "limit", rl.limit, "wait", wait)
	timer := time.NewTimer(wait)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
