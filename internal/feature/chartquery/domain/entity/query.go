// Package entity defines the domain models for the chartquery feature.
package entity

import (
	"time"

	candleentity "chart_backend/internal/feature/candles/domain/entity"
)

// ChartType is the rendering style selected by the user.
type ChartType int

const (
	ChartLine ChartType = 1
	ChartBar  ChartType = 2
)

// String returns "line" or "bar".
func (c ChartType) String() string {
	switch c {
	case ChartLine:
		return "line"
	case ChartBar:
		return "bar"
	default:
		return "unknown"
	}
}

// TimeSeries is the sampling granularity selected by the user.
type TimeSeries int

const (
	SeriesDaily   TimeSeries = 1
	SeriesWeekly  TimeSeries = 2
	SeriesMonthly TimeSeries = 3
	SeriesOther   TimeSeries = 4
)

// AllTimeSeries returns every selectable time series in menu order.
func AllTimeSeries() []TimeSeries {
	return []TimeSeries{SeriesDaily, SeriesWeekly, SeriesMonthly, SeriesOther}
}

// Interval maps the selection to the market data provider's interval name.
// SeriesOther is served as hourly bars.
func (s TimeSeries) Interval() string {
	switch s {
	case SeriesDaily:
		return "1day"
	case SeriesWeekly:
		return "1week"
	case SeriesMonthly:
		return "1month"
	case SeriesOther:
		return "1h"
	default:
		return ""
	}
}

// String returns the human readable name of the selection.
func (s TimeSeries) String() string {
	switch s {
	case SeriesDaily:
		return "daily"
	case SeriesWeekly:
		return "weekly"
	case SeriesMonthly:
		return "monthly"
	case SeriesOther:
		return "other"
	default:
		return "unknown"
	}
}

// ChartQuery is a fully validated chart request. Start and End are calendar
// days (UTC midnight) with Start <= End.
type ChartQuery struct {
	Symbol string
	Chart  ChartType
	Series TimeSeries
	Start  time.Time
	End    time.Time
}

// Chart is the data returned for a ChartQuery.
type Chart struct {
	Query   ChartQuery
	Candles []candleentity.Candle
}
