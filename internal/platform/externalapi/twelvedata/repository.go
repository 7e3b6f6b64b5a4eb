package twelvedata

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"chart_backend/internal/feature/candles/domain/entity"
	"chart_backend/internal/feature/candles/usecase"
	"chart_backend/internal/platform/externalapi/twelvedata/dto"
	"chart_backend/internal/shared/validation"

	"github.com/cenkalti/backoff/v4"
)

const (
	// maxOutputSize is the largest outputsize the time_series endpoint accepts.
	maxOutputSize = 5000
	maxRetries    = 3
)

// httpStatusError は time_series エンドポイントが返したHTTPエラーです。
type httpStatusError struct {
	code int
}

func (e *httpStatusError) Error() string { return fmt.Sprintf("twelvedata http %d", e.code) }

// retryable は 429 と 5xx のみ再試行対象とします。
func (e *httpStatusError) retryable() bool {
	return e.code == http.StatusTooManyRequests || e.code >= 500
}

func defaultBackOff() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = time.Second
	b.MaxElapsedTime = 30 * time.Second
	return backoff.WithMaxRetries(b, maxRetries)
}

// TwelveDataMarket はTwelve Data外部APIから株価データを取得するMarketRepository実装です。
type TwelveDataMarket struct {
	cfg        Config
	client     *http.Client
	newBackOff func() backoff.BackOff
}

// TwelveDataMarketがMarketRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.MarketRepository = (*TwelveDataMarket)(nil)

// NewTwelveDataMarket は指定された設定とHTTPクライアントでTwelveDataMarketの新しいインスタンスを生成します。
func NewTwelveDataMarket(cfg Config, client *http.Client) *TwelveDataMarket {
	return &TwelveDataMarket{cfg: cfg, client: client, newBackOff: defaultBackOff}
}

// GetTimeSeries は直近 outputsize 本の時系列データを取得します。
func (t *TwelveDataMarket) GetTimeSeries(ctx context.Context, symbol, interval string, outputsize int) ([]entity.Candle, error) {
	q := url.Values{}
	q.Set("symbol", symbol)
	q.Set("interval", interval)
	q.Set("outputsize", strconv.Itoa(outputsize))
	return t.fetch(ctx, q)
}

// GetTimeSeriesRange は start から end までの時系列データを取得します。
func (t *TwelveDataMarket) GetTimeSeriesRange(ctx context.Context, symbol, interval string, start, end time.Time) ([]entity.Candle, error) {
	q := url.Values{}
	q.Set("symbol", symbol)
	q.Set("interval", interval)
	q.Set("start_date", start.Format(validation.DateLayout))
	q.Set("end_date", end.Format(validation.DateLayout))
	q.Set("outputsize", strconv.Itoa(maxOutputSize))
	return t.fetch(ctx, q)
}

// fetch は time_series エンドポイントを呼び出し、レスポンスをローソク足に変換します。
// レート制限・サーバーエラー・通信エラーは指数バックオフで再試行します。
func (t *TwelveDataMarket) fetch(ctx context.Context, q url.Values) ([]entity.Candle, error) {
	q.Set("apikey", t.cfg.TwelveDataAPIKey)
	u := fmt.Sprintf("%s/time_series?%s", t.cfg.BaseURL, q.Encode())

	var body dto.TimeSeriesResponse
	op := func() error {
		err := t.get(ctx, u, &body)
		if err == nil {
			return nil
		}
		var se *httpStatusError
		switch {
		case ctx.Err() != nil:
			return backoff.Permanent(err)
		case errors.As(err, &se) && !se.retryable():
			return backoff.Permanent(err)
		case errors.As(err, &se), isTransport(err):
			slog.Warn("twelvedata request failed, retrying", "symbol", q.Get("symbol"), "interval", q.Get("interval"), "error", err)
			return err
		default:
			return backoff.Permanent(err)
		}
	}
	if err := backoff.Retry(op, backoff.WithContext(t.newBackOff(), ctx)); err != nil {
		return nil, err
	}
	if body.Status == "error" {
		return nil, fmt.Errorf("twelvedata: %s", body.Message)
	}

	candles := make([]entity.Candle, 0, len(body.Values))
	for _, v := range body.Values {
		c, err := toCandle(v)
		if err != nil {
			return nil, err
		}
		candles = append(candles, c)
	}
	return candles, nil
}

// transportError は接続やレスポンス読み取りの失敗を表します。
type transportError struct{ err error }

func (e *transportError) Error() string { return e.err.Error() }
func (e *transportError) Unwrap() error { return e.err }

func isTransport(err error) bool {
	var te *transportError
	return errors.As(err, &te)
}

// get は1回分のリクエストを実行し、JSONを out にデコードします。
func (t *TwelveDataMarket) get(ctx context.Context, u string, out *dto.TimeSeriesResponse) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}

	res, err := t.client.Do(req)
	if err != nil {
		return &transportError{err: err}
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	if res.StatusCode >= 400 {
		return &httpStatusError{code: res.StatusCode}
	}

	*out = dto.TimeSeriesResponse{}
	return json.NewDecoder(res.Body).Decode(out)
}

// toCandle は文字列で届く1本分の値をパースします。日付のみの値は日足以上の時間足です。
func toCandle(v dto.TimeSeriesValue) (entity.Candle, error) {
	tm, err := time.Parse("2006-01-02 15:04:05", v.Datetime)
	if err != nil {
		var ok bool
		if tm, ok = validation.ParseDate(v.Datetime); !ok {
			return entity.Candle{}, fmt.Errorf("parse time %q: %w", v.Datetime, err)
		}
	}
	o, err := strconv.ParseFloat(v.Open, 64)
	if err != nil {
		return entity.Candle{}, fmt.Errorf("parse open %q: %w", v.Open, err)
	}
	h, err := strconv.ParseFloat(v.High, 64)
	if err != nil {
		return entity.Candle{}, fmt.Errorf("parse high %q: %w", v.High, err)
	}
	l, err := strconv.ParseFloat(v.Low, 64)
	if err != nil {
		return entity.Candle{}, fmt.Errorf("parse low %q: %w", v.Low, err)
	}
	c, err := strconv.ParseFloat(v.Close, 64)
	if err != nil {
		return entity.Candle{}, fmt.Errorf("parse close %q: %w", v.Close, err)
	}
	// 指数や為替は volume を返さないため 0 とする
	var vol int64
	if v.Volume != "" {
		if vol, err = strconv.ParseInt(v.Volume, 10, 64); err != nil {
			return entity.Candle{}, fmt.Errorf("parse volume %q: %w", v.Volume, err)
		}
	}

	return entity.Candle{
		Time:   tm,
		Open:   o,
		High:   h,
		Low:    l,
		Close:  c,
		Volume: vol,
	}, nil
}
