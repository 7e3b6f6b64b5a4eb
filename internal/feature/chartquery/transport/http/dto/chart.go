// Package dto defines data transfer objects for the chartquery HTTP API.
package dto

// CandleItem はチャート1本分のレスポンスです。
type CandleItem struct {
	Time   string  `json:"time"`
	Open   float64 `json:"open"`
	High   float64 `json:"high"`
	Low    float64 `json:"low"`
	Close  float64 `json:"close"`
	Volume int64   `json:"volume"`
}

// ChartResponse は GET /charts/:symbol のレスポンスです。
type ChartResponse struct {
	Symbol     string       `json:"symbol"`
	ChartType  string       `json:"chart_type"`
	TimeSeries string       `json:"time_series"`
	Interval   string       `json:"interval"`
	Start      string       `json:"start"`
	End        string       `json:"end"`
	Candles    []CandleItem `json:"candles"`
}

// ValidationErrorResponse は入力検証エラー時のレスポンスです。
type ValidationErrorResponse struct {
	Error  string   `json:"error"`
	Fields []string `json:"fields"`
}

// ValidateRequest は POST /charts/validate のリクエストです。
// 各項目は型を問わず受け取り、文字列以外は不正として扱います。
type ValidateRequest struct {
	Symbol     any `json:"symbol"`
	ChartType  any `json:"chart_type"`
	TimeSeries any `json:"time_series"`
	Start      any `json:"start"`
	End        any `json:"end"`
}

// ValidateResponse は項目ごとの検証結果です。
type ValidateResponse struct {
	Symbol     bool `json:"symbol"`
	ChartType  bool `json:"chart_type"`
	TimeSeries bool `json:"time_series"`
	Start      bool `json:"start"`
	End        bool `json:"end"`
	DateRange  bool `json:"date_range"`
	Valid      bool `json:"valid"`
}
