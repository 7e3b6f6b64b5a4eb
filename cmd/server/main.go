package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	redisv9 "github.com/redis/go-redis/v9"

	"chart_backend/internal/app/di"
	"chart_backend/internal/app/router"
	charthandler "chart_backend/internal/feature/chartquery/transport/handler"
	chartusecase "chart_backend/internal/feature/chartquery/usecase"
	symbollistadapters "chart_backend/internal/feature/symbollist/adapters"
	symbollisthandler "chart_backend/internal/feature/symbollist/transport/handler"
	symbollistusecase "chart_backend/internal/feature/symbollist/usecase"
	infradb "chart_backend/internal/platform/db"
	"chart_backend/internal/platform/http/handler"
	infraredis "chart_backend/internal/platform/redis"
	jwtmw "chart_backend/internal/platform/jwt"
)

func main() {
	// .env はローカル開発用。本番では環境変数を直接設定する
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("[WARN] failed to load .env: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// db
	db, err := infradb.OpenDB(infradb.LoadConfigFromEnv())
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("failed to get sql.DB: %v", err)
	}
	defer func() { _ = sqlDB.Close() }()

	// Redis（未設定または接続失敗時はキャッシュ無し）
	var rdb *redisv9.Client
	if cfg := infraredis.LoadConfig(); cfg.Addr == "" {
		log.Println("[INFO] REDIS_HOST not set. Running without cache.")
	} else if tmp, err := infraredis.NewRedisClient(ctx, cfg); err != nil {
		log.Println("[WARN] Redis unavailable. Running without cache.")
	} else {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				log.Println("[ERROR] Failed to close Redis client:", err)
			}
		}()
	}

	// Repository
	candleRepo := di.NewCandleRepository(db, rdb)
	symbolRepo := symbollistadapters.NewSymbolRepository(db)

	// Usecase
	chartUC := chartusecase.NewChartUsecase(candleRepo)
	symbolUC := symbollistusecase.NewSymbolUsecase(symbolRepo)

	// Handler
	chartH := charthandler.NewChartHandler(chartUC)
	symbolH := symbollisthandler.NewSymbolHandler(symbolUC)

	r := router.NewRouter(chartH, symbolH, handler.Readiness(sqlDB))

	if os.Getenv(jwtmw.EnvKeyJWTSecret) == "" {
		log.Println("[WARN] JWT_SECRET is not set. Authenticated routes will return 500.")
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Printf("[INFO] listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("[ERROR] graceful shutdown failed: %v", err)
	}
}
