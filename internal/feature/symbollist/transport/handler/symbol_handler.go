package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"chart_backend/internal/feature/symbollist/domain/entity"
	"chart_backend/internal/feature/symbollist/transport/http/dto"

	"github.com/gin-gonic/gin"
)

// SymbolUsecase は銘柄情報に関するユースケースのインターフェースです。
type SymbolUsecase interface {
	ListActiveSymbols(ctx context.Context) ([]entity.Symbol, error)
}

// SymbolHandler は銘柄情報に関するHTTPリクエストを処理します。
type SymbolHandler struct {
	uc SymbolUsecase
}

// NewSymbolHandler は新しい SymbolHandler を作成します。
func NewSymbolHandler(uc SymbolUsecase) *SymbolHandler {
	return &SymbolHandler{uc: uc}
}

// List はチャートを要求できる銘柄の一覧を返します。
// ?market=NYSE のように指定すると市場で絞り込みます（大文字小文字は区別しない）。
//
// Usecaseのエラーは詳細をログにのみ出し、クライアントには500と固定文言を返します。
func (h *SymbolHandler) List(c *gin.Context) {
	symbols, err := h.uc.ListActiveSymbols(c.Request.Context())
	if err != nil {
		slog.Error("failed to list symbols", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list symbols"})
		return
	}

	market := strings.TrimSpace(c.Query("market"))
	out := make([]dto.SymbolItem, 0, len(symbols))
	for _, s := range symbols {
		if market != "" && !strings.EqualFold(s.Market, market) {
			continue
		}
		out = append(out, dto.SymbolItem{Code: s.Code, Name: s.Name, Market: s.Market})
	}
	c.JSON(http.StatusOK, dto.SymbolListResponse{Symbols: out, Count: len(out)})
}
