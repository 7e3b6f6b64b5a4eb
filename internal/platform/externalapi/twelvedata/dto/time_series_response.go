// Package dto defines data transfer objects for the Twelve Data API responses.
package dto

// TimeSeriesValue is one bar of the time_series endpoint. Numbers arrive as strings.
type TimeSeriesValue struct {
	Datetime string `json:"datetime"`
	Open     string `json:"open"`
	High     string `json:"high"`
	Low      string `json:"low"`
	Close    string `json:"close"`
	Volume   string `json:"volume"`
}

// TimeSeriesResponse represents the JSON response from the Twelve Data time_series endpoint.
type TimeSeriesResponse struct {
	Status   string            `json:"status"`
	Code     int               `json:"code,omitempty"`
	Message  string            `json:"message,omitempty"`
	Symbol   string            `json:"symbol"`
	Interval string            `json:"interval"`
	Values   []TimeSeriesValue `json:"values"`
}
