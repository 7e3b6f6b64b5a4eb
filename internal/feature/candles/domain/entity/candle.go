// Package entity defines the domain models for the candles feature.
package entity

import "time"

// Candle is one OHLCV bar of a symbol at a given provider interval.
type Candle struct {
	Symbol   string    // Ticker symbol (e.g., "AAPL")
	Interval string    // Provider interval (e.g., "1day", "1week", "1month", "1h")
	Time     time.Time // Start of the bar period
	Open     float64
	High     float64
	Low      float64
	Close    float64
	Volume   int64
}
