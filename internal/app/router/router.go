// Package router はHTTPルーティングを組み立てます。
package router

import (
	charthandler "chart_backend/internal/feature/chartquery/transport/handler"
	symbollisthandler "chart_backend/internal/feature/symbollist/transport/handler"
	"chart_backend/internal/platform/http/handler"
	jwtmw "chart_backend/internal/platform/jwt"

	"github.com/gin-gonic/gin"
)

// NewRouter はエンドポイントを登録したGinエンジンを返します。
// readiness が nil の場合 /readyz は登録しません。
func NewRouter(chart *charthandler.ChartHandler, symbol *symbollisthandler.SymbolHandler,
	readiness gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	// 認証不要
	r.GET("/healthz", handler.Health)
	r.HEAD("/healthz", handler.Health)
	if readiness != nil {
		r.GET("/readyz", readiness)
	}

	// Bearer トークン必須
	auth := r.Group("/")
	auth.Use(jwtmw.AuthRequired())
	{
		auth.GET("/charts/:symbol", chart.GetChart)
		auth.POST("/charts/validate", chart.Validate)
		auth.GET("/symbols", symbol.List)
	}

	return r
}
