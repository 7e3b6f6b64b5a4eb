// Package usecase はローソク足データの取得・取り込みのビジネスロジックを実装します。
package usecase

import (
	"context"
	"time"

	"chart_backend/internal/feature/candles/domain/entity"
)

// CandleRepository はローソク足データの永続化レイヤーを抽象化します。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type CandleRepository interface {
	// Find は新しい順に最大 outputsize 件のローソク足を返します。
	Find(ctx context.Context, symbol, interval string, outputsize int) ([]entity.Candle, error)
	// FindRange は from <= Time < to のローソク足を古い順に返します。
	FindRange(ctx context.Context, symbol, interval string, from, to time.Time) ([]entity.Candle, error)
	// UpsertBatch は symbol/interval/time をキーに一括で挿入または更新します。
	UpsertBatch(ctx context.Context, candles []entity.Candle) error
}

// MarketRepository は外部の株価APIから時系列データを取得します。
type MarketRepository interface {
	// GetTimeSeries は直近 outputsize 本を取得します。
	GetTimeSeries(ctx context.Context, symbol, interval string, outputsize int) ([]entity.Candle, error)
	// GetTimeSeriesRange は start から end までの期間を取得します。
	GetTimeSeriesRange(ctx context.Context, symbol, interval string, start, end time.Time) ([]entity.Candle, error)
}
