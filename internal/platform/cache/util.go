package cache

import (
	"time"
)

// DefaultRefreshHour is the local hour at which the nightly ingest has finished
// and cached candles become stale.
const DefaultRefreshHour = 8

// TTLUntilRefresh returns the duration from now until the next refreshHour:00
// in loc. At exactly refreshHour:00 the next day's refresh is used.
func TTLUntilRefresh(now time.Time, loc *time.Location, refreshHour int) time.Duration {
	if loc == nil {
		loc = time.UTC
	}
	local := now.In(loc)
	next := time.Date(local.Year(), local.Month(), local.Day(), refreshHour, 0, 0, 0, loc)
	if !local.Before(next) {
		next = next.AddDate(0, 0, 1)
	}
	return next.Sub(local)
}

// TimeUntilNext8AM は次の午前8時（日本時間）までの期間を返します。
// タイムゾーン情報が取得できない環境ではUTC+9の固定ゾーンを使います。
func TimeUntilNext8AM() time.Duration {
	loc, err := time.LoadLocation("Asia/Tokyo")
	if err != nil {
		loc = time.FixedZone("JST", 9*60*60)
	}
	return TTLUntilRefresh(time.Now(), loc, DefaultRefreshHour)
}
