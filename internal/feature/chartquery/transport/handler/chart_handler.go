// Package handler はchartqueryフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"chart_backend/internal/feature/chartquery/domain"
	"chart_backend/internal/feature/chartquery/domain/entity"
	"chart_backend/internal/feature/chartquery/transport/http/dto"
	"chart_backend/internal/shared/validation"

	"github.com/gin-gonic/gin"
)

// intradayLayout は時間足のローソク足に使う時刻書式です（UTC）。
const intradayLayout = "2006-01-02 15:04:05"

// ChartUsecase はチャートリクエストのユースケースインターフェースです。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type ChartUsecase interface {
	ParseQuery(symbol, chart, series, start, end string) (entity.ChartQuery, error)
	GetChart(ctx context.Context, q entity.ChartQuery) (entity.Chart, error)
}

// ChartHandler はチャートに関するHTTPリクエストを処理します。
type ChartHandler struct {
	uc ChartUsecase
}

// NewChartHandler は新しい ChartHandler を作成します。
func NewChartHandler(uc ChartUsecase) *ChartHandler {
	return &ChartHandler{uc: uc}
}

// GetChart は銘柄・チャート種別・時系列・期間を検証し、ローソク足をJSONで返します。
//
// エンドポイント例:
// GET /charts/:symbol?chart=1&series=1&start=2024-01-01&end=2024-01-31
func (h *ChartHandler) GetChart(c *gin.Context) {
	q, err := h.uc.ParseQuery(
		c.Param("symbol"),
		c.Query("chart"),
		c.Query("series"),
		c.Query("start"),
		c.Query("end"),
	)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ValidationErrorResponse{
			Error:  "invalid chart request",
			Fields: invalidFields(err),
		})
		return
	}

	chart, err := h.uc.GetChart(c.Request.Context(), q)
	if err != nil {
		slog.Error("failed to load chart", "symbol", q.Symbol, "interval", q.Series.Interval(), "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	out := dto.ChartResponse{
		Symbol:     q.Symbol,
		ChartType:  q.Chart.String(),
		TimeSeries: q.Series.String(),
		Interval:   q.Series.Interval(),
		Start:      q.Start.Format(validation.DateLayout),
		End:        q.End.Format(validation.DateLayout),
		Candles:    make([]dto.CandleItem, 0, len(chart.Candles)),
	}
	layout := candleTimeLayout(q.Series)
	for _, x := range chart.Candles {
		out.Candles = append(out.Candles, dto.CandleItem{
			Time:   x.Time.UTC().Format(layout),
			Open:   x.Open,
			High:   x.High,
			Low:    x.Low,
			Close:  x.Close,
			Volume: x.Volume,
		})
	}
	c.JSON(http.StatusOK, out)
}

// candleTimeLayout は日足以上なら日付のみ、時間足なら時刻まで含めた書式を返します。
func candleTimeLayout(s entity.TimeSeries) string {
	if s == entity.SeriesOther {
		return intradayLayout
	}
	return validation.DateLayout
}

// Validate は型不定のJSON入力を項目ごとに検証し、結果を返します。
// 文字列以外の値は変換せずに不正として扱います。
//
// エンドポイント例:
// POST /charts/validate {"symbol":"AAPL","chart_type":"1","time_series":"2","start":"2024-01-01","end":"2024-01-10"}
func (h *ChartHandler) Validate(c *gin.Context) {
	var req dto.ValidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "request body must be a JSON object"})
		return
	}

	res := dto.ValidateResponse{
		Symbol:     validation.SymbolValue(req.Symbol),
		ChartType:  validation.ChartTypeValue(req.ChartType),
		TimeSeries: validation.TimeSeriesValue(req.TimeSeries),
		Start:      validation.DateValue(req.Start),
		End:        validation.DateValue(req.End),
		DateRange:  validation.DateRangeValue(req.Start, req.End),
	}
	res.Valid = res.Symbol && res.ChartType && res.TimeSeries && res.DateRange
	c.JSON(http.StatusOK, res)
}

// invalidFields は errors.Join でまとめられた検証エラーから項目名を取り出します。
func invalidFields(err error) []string {
	errs := []error{err}
	var joined interface{ Unwrap() []error }
	if errors.As(err, &joined) {
		errs = joined.Unwrap()
	}
	fields := make([]string, 0, len(errs))
	for _, e := range errs {
		if f := domain.FieldOf(e); f != "" {
			fields = append(fields, f)
		}
	}
	return fields
}
