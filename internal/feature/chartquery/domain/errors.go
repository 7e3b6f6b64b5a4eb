// Package domain defines domain-level errors for the chartquery feature.
package domain

import "errors"

// Validation errors for chart requests. A request can fail several checks at
// once; the usecase joins them and callers match with errors.Is.
var (
	ErrInvalidSymbol     = errors.New("symbol must be 1-7 uppercase letters A-Z")
	ErrInvalidChartType  = errors.New("chart type must be 1 (line) or 2 (bar)")
	ErrInvalidTimeSeries = errors.New("time series must be 1 (daily), 2 (weekly), 3 (monthly) or 4 (other)")
	ErrInvalidStartDate  = errors.New("start date must be a valid YYYY-MM-DD date")
	ErrInvalidEndDate    = errors.New("end date must be a valid YYYY-MM-DD date")
	// ErrInvalidDateRange is only reported when both dates are valid on their own.
	ErrInvalidDateRange = errors.New("end date must not be before start date")
)

// FieldOf returns the request field a validation error refers to, or "" if
// err is not one of the validation errors above.
func FieldOf(err error) string {
	switch {
	case errors.Is(err, ErrInvalidSymbol):
		return "symbol"
	case errors.Is(err, ErrInvalidChartType):
		return "chart"
	case errors.Is(err, ErrInvalidTimeSeries):
		return "series"
	case errors.Is(err, ErrInvalidStartDate):
		return "start"
	case errors.Is(err, ErrInvalidEndDate):
		return "end"
	case errors.Is(err, ErrInvalidDateRange):
		return "range"
	default:
		return ""
	}
}
