// Package dto defines data transfer objects for the symbollist HTTP API.
package dto

// SymbolItem is one chartable ticker. Internal fields (ID, SortKey, IsActive)
// are not exposed.
type SymbolItem struct {
	Code   string `json:"code"`
	Name   string `json:"name"`
	Market string `json:"market"`
}

// SymbolListResponse is the body of GET /symbols.
type SymbolListResponse struct {
	Symbols []SymbolItem `json:"symbols"`
	Count   int          `json:"count"`
}
