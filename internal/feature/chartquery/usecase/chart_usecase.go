// Package usecase はチャート表示リクエストの検証とデータ取得を実装します。
package usecase

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	candleentity "chart_backend/internal/feature/candles/domain/entity"
	"chart_backend/internal/feature/chartquery/domain"
	"chart_backend/internal/feature/chartquery/domain/entity"
	"chart_backend/internal/shared/validation"
)

// CandleRepository はチャートに必要なローソク足の読み取りを抽象化します。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type CandleRepository interface {
	FindRange(ctx context.Context, symbol, interval string, from, to time.Time) ([]candleentity.Candle, error)
}

// ChartUsecase はチャートリクエストのユースケースです。
type ChartUsecase struct {
	candle CandleRepository
}

// NewChartUsecase は新しい ChartUsecase を生成します。
func NewChartUsecase(candle CandleRepository) *ChartUsecase {
	return &ChartUsecase{candle: candle}
}

// ParseQuery は文字列の入力を検証し、ChartQuery を組み立てます。
// 不正な項目はすべて errors.Join でまとめて返します。
// 日付範囲の前後関係は、開始日・終了日がそれぞれ有効な場合のみ検査します。
func (u *ChartUsecase) ParseQuery(symbol, chart, series, start, end string) (entity.ChartQuery, error) {
	var errs []error

	if !validation.IsValidSymbol(symbol) {
		errs = append(errs, domain.ErrInvalidSymbol)
	}
	if !validation.IsValidChartType(chart) {
		errs = append(errs, domain.ErrInvalidChartType)
	}
	if !validation.IsValidTimeSeries(series) {
		errs = append(errs, domain.ErrInvalidTimeSeries)
	}
	startOK := validation.IsValidDate(start)
	if !startOK {
		errs = append(errs, domain.ErrInvalidStartDate)
	}
	endOK := validation.IsValidDate(end)
	if !endOK {
		errs = append(errs, domain.ErrInvalidEndDate)
	}
	if startOK && endOK && !validation.IsValidDateRange(start, end) {
		errs = append(errs, domain.ErrInvalidDateRange)
	}
	if len(errs) > 0 {
		return entity.ChartQuery{}, errors.Join(errs...)
	}

	// ここまでで形式は保証されているため、変換は失敗しない
	c, _ := strconv.Atoi(chart)
	s, _ := strconv.Atoi(series)
	from, _ := validation.ParseDate(start)
	to, _ := validation.ParseDate(end)

	return entity.ChartQuery{
		Symbol: symbol,
		Chart:  entity.ChartType(c),
		Series: entity.TimeSeries(s),
		Start:  from,
		End:    to,
	}, nil
}

// GetChart は検証済みのクエリに対応するローソク足を取得します。終了日は当日分を含みます。
func (u *ChartUsecase) GetChart(ctx context.Context, q entity.ChartQuery) (entity.Chart, error) {
	cs, err := u.candle.FindRange(ctx, q.Symbol, q.Series.Interval(), q.Start, q.End.AddDate(0, 0, 1))
	if err != nil {
		return entity.Chart{}, fmt.Errorf("load candles: %w", err)
	}
	return entity.Chart{Query: q, Candles: cs}, nil
}
