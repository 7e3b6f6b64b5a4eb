package usecase

import (
	"context"
	"errors"
	"log/slog"

	"chart_backend/internal/feature/candles/domain/entity"
	chartentity "chart_backend/internal/feature/chartquery/domain/entity"
	"chart_backend/internal/shared/validation"
)

const (
	ingestOutputSize = 200 // 1回のリクエストで取得するデータ件数
)

// RateLimiter はAPI呼び出しの頻度を制限します。
type RateLimiter interface {
	Wait(ctx context.Context) error
}

// ErrInvalidBackfillRange は Backfill に渡された期間が不正な場合のエラーです。
var ErrInvalidBackfillRange = errors.New("backfill range must be two YYYY-MM-DD dates with end not before start")

// IngestResult は IngestAll の処理結果の集計です。
type IngestResult struct {
	Ingested int // 保存に成功した銘柄×時間足の組数
	Failed   int // 取得または保存に失敗した組数
	Skipped  int // 銘柄コードが不正でスキップした銘柄数
}

// IngestUsecase は外部APIからデータを取得し、データベースに永続化するユースケースです。
type IngestUsecase struct {
	market  MarketRepository
	candle  CandleRepository
	limiter RateLimiter
}

// NewIngestUsecase は新しい IngestUsecase を作成します。
func NewIngestUsecase(market MarketRepository, candle CandleRepository, limiter RateLimiter) *IngestUsecase {
	return &IngestUsecase{market: market, candle: candle, limiter: limiter}
}

// store は取得したデータに銘柄コードと時間足を付与して一括保存します。
func (iu *IngestUsecase) store(ctx context.Context, symbol, interval string, cs []entity.Candle) error {
	for i := range cs {
		cs[i].Symbol = symbol
		cs[i].Interval = interval
	}
	return iu.candle.UpsertBatch(ctx, cs)
}

// ingestOne は1銘柄・1時間足の時系列データを取得し、銘柄コードと時間足を付与して一括保存します。
func (iu *IngestUsecase) ingestOne(ctx context.Context, symbol, interval string, outputsize int) error {
	cs, err := iu.market.GetTimeSeries(ctx, symbol, interval, outputsize)
	if err != nil {
		return err
	}
	return iu.store(ctx, symbol, interval, cs)
}

// forEach は有効な銘柄と全時間足の組ごとに、レートリミッターで待機してから fn を実行します。
func (iu *IngestUsecase) forEach(ctx context.Context, symbols []string, fn func(symbol, interval string) error) (IngestResult, error) {
	var res IngestResult
	for _, s := range symbols {
		if !validation.IsValidSymbol(s) {
			slog.Warn("skipping invalid symbol", "symbol", s)
			res.Skipped++
			continue
		}
		for _, series := range chartentity.AllTimeSeries() {
			interval := series.Interval()
			if err := iu.limiter.Wait(ctx); err != nil {
				return res, err
			}
			if err := fn(s, interval); err != nil {
				slog.Error("failed to ingest data", "symbol", s, "interval", interval, "error", err)
				res.Failed++
				continue
			}
			res.Ingested++
		}
	}
	return res, nil
}

// IngestAll は全銘柄について、チャートで選択可能なすべての時間足のデータを取り込みます。
// 銘柄コードが不正なものはAPIを呼ばずにスキップし、個別の失敗はログに出して処理を続けます。
// コンテキストがキャンセルされた場合のみエラーを返します。
func (iu *IngestUsecase) IngestAll(ctx context.Context, symbols []string) (IngestResult, error) {
	return iu.forEach(ctx, symbols, func(symbol, interval string) error {
		return iu.ingestOne(ctx, symbol, interval, ingestOutputSize)
	})
}

// Backfill は start から end（YYYY-MM-DD）までの過去データを全銘柄・全時間足について取り込みます。
// 期間が不正な場合はAPIを呼ばずに ErrInvalidBackfillRange を返します。
func (iu *IngestUsecase) Backfill(ctx context.Context, symbols []string, start, end string) (IngestResult, error) {
	if !validation.IsValidDateRange(start, end) {
		return IngestResult{}, ErrInvalidBackfillRange
	}
	from, _ := validation.ParseDate(start)
	to, _ := validation.ParseDate(end)

	return iu.forEach(ctx, symbols, func(symbol, interval string) error {
		cs, err := iu.market.GetTimeSeriesRange(ctx, symbol, interval, from, to)
		if err != nil {
			return err
		}
		return iu.store(ctx, symbol, interval, cs)
	})
}
