package twelvedata

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// newTestMarket は固定のレスポンスを返すテストサーバーに接続したクライアントを返します。
func newTestMarket(t *testing.T, status int, body string) *TwelveDataMarket {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("apikey") != "test-key" {
			t.Errorf("expected apikey test-key, got %q", r.URL.Query().Get("apikey"))
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)

	return withoutDelay(NewTwelveDataMarket(Config{TwelveDataAPIKey: "test-key", BaseURL: server.URL}, server.Client()))
}

// withoutDelay は再試行の待機を無くしたクライアントを返します。
func withoutDelay(m *TwelveDataMarket) *TwelveDataMarket {
	m.newBackOff = func() backoff.BackOff {
		return backoff.WithMaxRetries(&backoff.ZeroBackOff{}, maxRetries)
	}
	return m
}

// TestTwelveDataMarket_Retry は429・5xxのみ再試行され、上限回数で打ち切られることを検証します。
func TestTwelveDataMarket_Retry(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		statuses  []int // 順に返すステータス。尽きたら200
		wantErr   string
		wantCalls int32
	}{
		{"recovers after 503", []int{503, 503}, "", 3},
		{"recovers after 429", []int{429}, "", 2},
		{"gives up after max retries", []int{500, 500, 500, 500, 500}, "twelvedata http 500", 4},
		{"401 is not retried", []int{401}, "twelvedata http 401", 1},
		{"404 is not retried", []int{404}, "twelvedata http 404", 1},
	}

	for _, tt := range tests {

		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var calls atomic.Int32
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				n := int(calls.Add(1)) - 1
				if n < len(tt.statuses) {
					w.WriteHeader(tt.statuses[n])
					return
				}
				_, _ = w.Write([]byte(`{"status":"ok","values":[{"datetime":"2024-01-02","open":"1","high":"1","low":"1","close":"1","volume":"1"}]}`))
			}))
			defer server.Close()

			market := withoutDelay(NewTwelveDataMarket(Config{BaseURL: server.URL}, server.Client()))

			candles, err := market.GetTimeSeries(context.Background(), "AAPL", "1day", 1)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if len(candles) != 1 {
					t.Errorf("expected 1 candle, got %d", len(candles))
				}
			} else if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error containing %q, got %v", tt.wantErr, err)
			}
			if got := calls.Load(); got != tt.wantCalls {
				t.Errorf("expected %d calls, got %d", tt.wantCalls, got)
			}
		})
	}
}

func TestTwelveDataMarket_GetTimeSeries_Success(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("symbol") != "AAPL" || q.Get("interval") != "1week" || q.Get("outputsize") != "100" {
			t.Errorf("unexpected query: %s", r.URL.RawQuery)
		}
		_, _ = w.Write([]byte(`{
			"status": "ok",
			"symbol": "AAPL",
			"interval": "1week",
			"values": [
				{"datetime": "2025-01-13", "open": "150.00", "high": "155.00", "low": "149.00", "close": "154.50", "volume": "1000000"},
				{"datetime": "2025-01-06 09:30:00", "open": "148.00", "high": "151.00", "low": "147.50", "close": "150.00", "volume": "900000"}
			]
		}`))
	}))
	defer server.Close()

	market := NewTwelveDataMarket(Config{TwelveDataAPIKey: "test-key", BaseURL: server.URL}, server.Client())

	candles, err := market.GetTimeSeries(context.Background(), "AAPL", "1week", 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(candles) != 2 {
		t.Fatalf("expected 2 candles, got %d", len(candles))
	}
	if candles[0].Open != 150.00 || candles[0].Close != 154.50 || candles[0].Volume != 1000000 {
		t.Errorf("unexpected first candle: %+v", candles[0])
	}
	if candles[1].Time.Hour() != 9 || candles[1].Time.Minute() != 30 {
		t.Errorf("expected intraday timestamp, got %v", candles[1].Time)
	}
}

func TestTwelveDataMarket_GetTimeSeries_Errors(t *testing.T) {
	t.Parallel()

	value := func(field, bad string) string {
		fields := map[string]string{
			"datetime": "2025-01-15", "open": "150.00", "high": "155.00",
			"low": "149.00", "close": "154.50", "volume": "1000000",
		}
		fields[field] = bad
		return `{"status":"ok","values":[{"datetime":"` + fields["datetime"] + `","open":"` + fields["open"] +
			`","high":"` + fields["high"] + `","low":"` + fields["low"] + `","close":"` + fields["close"] +
			`","volume":"` + fields["volume"] + `"}]}`
	}

	tests := []struct {
		name    string
		status  int
		body    string
		wantErr string
	}{
		{"bad request", http.StatusBadRequest, "", "twelvedata http 400"},
		{"unauthorized", http.StatusUnauthorized, "", "twelvedata http 401"},
		{"service unavailable", http.StatusServiceUnavailable, "", "twelvedata http 503"},
		{"api error", http.StatusOK, `{"status":"error","code":401,"message":"Invalid API key"}`, "Invalid API key"},
		{"invalid json", http.StatusOK, `{invalid json`, "invalid character"},
		{"invalid datetime", http.StatusOK, value("datetime", "invalid-date"), "parse time"},
		{"single digit month", http.StatusOK, value("datetime", "2025-1-15"), "parse time"},
		{"invalid open", http.StatusOK, value("open", "abc"), "parse open"},
		{"invalid high", http.StatusOK, value("high", "xyz"), "parse high"},
		{"invalid low", http.StatusOK, value("low", "bad"), "parse low"},
		{"invalid close", http.StatusOK, value("close", "bad"), "parse close"},
		{"invalid volume", http.StatusOK, value("volume", "not-a-number"), "parse volume"},
	}

	for _, tt := range tests {

		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			market := newTestMarket(t, tt.status, tt.body)

			_, err := market.GetTimeSeries(context.Background(), "AAPL", "1day", 100)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestTwelveDataMarket_GetTimeSeries_NoVolume(t *testing.T) {
	t.Parallel()

	market := newTestMarket(t, http.StatusOK, `{
		"status": "ok",
		"values": [
			{"datetime": "2025-01-13", "open": "5800.10", "high": "5850.00", "low": "5790.00", "close": "5840.25"},
			{"datetime": "2025-01-10", "open": "5790.00", "high": "5810.00", "low": "5770.00", "close": "5800.10", "volume": ""}
		]
	}`)

	candles, err := market.GetTimeSeries(context.Background(), "SPX", "1day", 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(candles) != 2 {
		t.Fatalf("expected 2 candles, got %d", len(candles))
	}
	for _, c := range candles {
		if c.Volume != 0 {
			t.Errorf("expected zero volume, got %d", c.Volume)
		}
	}
	if candles[0].Close != 5840.25 {
		t.Errorf("unexpected close: %v", candles[0].Close)
	}
}

func TestTwelveDataMarket_GetTimeSeries_EmptyValues(t *testing.T) {
	t.Parallel()

	market := newTestMarket(t, http.StatusOK, `{"status":"ok","values":[]}`)

	candles, err := market.GetTimeSeries(context.Background(), "AAPL", "1day", 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(candles) != 0 {
		t.Errorf("expected 0 candles, got %d", len(candles))
	}
}

func TestTwelveDataMarket_GetTimeSeries_ContextCancellation(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(100 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	market := NewTwelveDataMarket(Config{BaseURL: server.URL}, server.Client())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	if _, err := market.GetTimeSeries(ctx, "AAPL", "1day", 100); err == nil {
		t.Fatal("expected error due to context cancellation, got nil")
	}
}

func TestTwelveDataMarket_GetTimeSeriesRange(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("start_date") != "2024-01-01" || q.Get("end_date") != "2024-01-10" {
			t.Errorf("unexpected range %s..%s", q.Get("start_date"), q.Get("end_date"))
		}
		if q.Get("outputsize") != "5000" {
			t.Errorf("expected outputsize 5000, got %s", q.Get("outputsize"))
		}
		if q.Get("interval") != "1h" {
			t.Errorf("expected interval 1h, got %s", q.Get("interval"))
		}
		_, _ = w.Write([]byte(`{"status":"ok","values":[
			{"datetime":"2024-01-02 10:00:00","open":"1","high":"2","low":"0.5","close":"1.5","volume":"10"}
		]}`))
	}))
	defer server.Close()

	market := NewTwelveDataMarket(Config{BaseURL: server.URL}, server.Client())

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	candles, err := market.GetTimeSeriesRange(context.Background(), "AAPL", "1h", start, end)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(candles) != 1 || candles[0].Time.Hour() != 10 {
		t.Fatalf("unexpected candles: %+v", candles)
	}
}

func TestLoadConfig(t *testing.T) {
	t.Setenv("TWELVE_DATA_BASE_URL", "")
	t.Setenv("TWELVE_DATA_TIMEOUT", "")
	t.Setenv("TWELVE_DATA_RPM", "")

	cfg := LoadConfig()

	if cfg.Timeout != 10*time.Second {
		t.Errorf("expected timeout 10s, got %v", cfg.Timeout)
	}
	if cfg.BaseURL != "https://api.twelvedata.com" {
		t.Errorf("expected default base URL, got %q", cfg.BaseURL)
	}
	if cfg.RequestsPerMinute != 8 {
		t.Errorf("expected 8 requests per minute, got %d", cfg.RequestsPerMinute)
	}
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("TWELVE_DATA_BASE_URL", "http://localhost:9999")
	t.Setenv("TWELVE_DATA_TIMEOUT", "3s")
	t.Setenv("TWELVE_DATA_RPM", "55")

	cfg := LoadConfig()

	if cfg.BaseURL != "http://localhost:9999" || cfg.Timeout != 3*time.Second || cfg.RequestsPerMinute != 55 {
		t.Errorf("overrides not applied: %+v", cfg)
	}
}
