// Package usecase implements the business logic for symbol-related operations.
package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"chart_backend/internal/feature/symbollist/domain"
	"chart_backend/internal/feature/symbollist/domain/entity"
	"chart_backend/internal/shared/validation"
)

// SymbolRepository abstracts the persistence layer for symbol (stock ticker) data.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type SymbolRepository interface {
	ListActive(ctx context.Context) ([]entity.Symbol, error)
	ListActiveCodes(ctx context.Context) ([]string, error)
	Upsert(ctx context.Context, symbols []entity.Symbol) error
}

// SymbolUsecase provides business logic for symbol operations.
type SymbolUsecase struct {
	repo SymbolRepository
}

// NewSymbolUsecase creates a new SymbolUsecase with the given repository.
func NewSymbolUsecase(r SymbolRepository) *SymbolUsecase {
	return &SymbolUsecase{repo: r}
}

// ListActiveSymbols returns active symbols in sort order.
// Rows whose code could never be charted are logged and left out.
func (u *SymbolUsecase) ListActiveSymbols(ctx context.Context) ([]entity.Symbol, error) {
	symbols, err := u.repo.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]entity.Symbol, 0, len(symbols))
	for _, s := range symbols {
		if !validation.IsValidSymbol(s.Code) {
			slog.Warn("dropping stored symbol with invalid code", "code", s.Code, "id", s.ID)
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

// ListActiveCodes returns the codes of active symbols, filtered the same way
// as ListActiveSymbols. The ingest job feeds these to the market data API.
func (u *SymbolUsecase) ListActiveCodes(ctx context.Context) ([]string, error) {
	codes, err := u.repo.ListActiveCodes(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(codes))
	for _, c := range codes {
		if !validation.IsValidSymbol(c) {
			slog.Warn("dropping stored symbol with invalid code", "code", c)
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

// SeedSymbols inserts or updates the given symbols keyed by code.
// Every entry is checked before anything is written; invalid codes are
// reported together and nothing is stored.
func (u *SymbolUsecase) SeedSymbols(ctx context.Context, symbols []entity.Symbol) error {
	var errs []error
	for _, s := range symbols {
		if !validation.IsValidSymbol(s.Code) {
			errs = append(errs, fmt.Errorf("%w: %q", domain.ErrInvalidSymbolCode, s.Code))
		}
	}
	if err := errors.Join(errs...); err != nil {
		return err
	}
	if len(symbols) == 0 {
		return nil
	}
	return u.repo.Upsert(ctx, symbols)
}
