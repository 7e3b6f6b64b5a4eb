package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	redisv9 "github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"

	"chart_backend/internal/app/di"
	candleusecase "chart_backend/internal/feature/candles/usecase"
	symbollistadapters "chart_backend/internal/feature/symbollist/adapters"
	symbollistusecase "chart_backend/internal/feature/symbollist/usecase"
	infradb "chart_backend/internal/platform/db"
	"chart_backend/internal/platform/externalapi/twelvedata"
	infraredis "chart_backend/internal/platform/redis"
)

const defaultRunTimeout = 30 * time.Minute

// job は1回分の取り込み処理です。
type job struct {
	symbols *symbollistusecase.SymbolUsecase
	ingest  *candleusecase.IngestUsecase
	start   string // INGEST_START（YYYY-MM-DD）。end と共に設定時はバックフィル
	end     string
	timeout time.Duration
}

func (j *job) run(parent context.Context) {
	ctx, cancel := context.WithTimeout(parent, j.timeout)
	defer cancel()

	codes, err := j.symbols.ListActiveCodes(ctx)
	if err != nil {
		log.Printf("[ERROR] failed to load symbols: %v", err)
		return
	}

	var res candleusecase.IngestResult
	if j.start != "" || j.end != "" {
		res, err = j.ingest.Backfill(ctx, codes, j.start, j.end)
	} else {
		res, err = j.ingest.IngestAll(ctx, codes)
	}
	if err != nil {
		log.Printf("[ERROR] ingest aborted: %v (ingested=%d failed=%d skipped=%d)", err, res.Ingested, res.Failed, res.Skipped)
		return
	}
	log.Printf("[INFO] ingest ok: ingested=%d failed=%d skipped=%d", res.Ingested, res.Failed, res.Skipped)
}

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("[WARN] failed to load .env: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := infradb.OpenDB(infradb.LoadConfigFromEnv())
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("failed to get sql.DB: %v", err)
	}
	defer func() { _ = sqlDB.Close() }()

	// 取り込み後にキャッシュを無効化するため、Redisが設定されていれば接続する
	var rdb *redisv9.Client
	if cfg := infraredis.LoadConfig(); cfg.Addr != "" {
		if rdb, err = infraredis.NewRedisClient(ctx, cfg); err != nil {
			log.Println("[WARN] Redis unavailable. Cached charts will expire on their own.")
		} else {
			defer func() { _ = rdb.Close() }()
		}
	}

	symbolUC := symbollistusecase.NewSymbolUsecase(symbollistadapters.NewSymbolRepository(db))

	if path := os.Getenv("SYMBOLS_FILE"); path != "" {
		seeds, err := symbollistadapters.LoadSeedFile(path)
		if err != nil {
			log.Fatal(err)
		}
		if err := symbolUC.SeedSymbols(ctx, seeds); err != nil {
			log.Fatalf("failed to seed symbols: %v", err)
		}
		log.Printf("[INFO] seeded %d symbols from %s", len(seeds), path)
	}

	market, limiter := di.NewMarket(twelvedata.LoadConfig())
	j := &job{
		symbols: symbolUC,
		ingest:  candleusecase.NewIngestUsecase(market, di.NewCandleRepository(db, rdb), limiter),
		start:   os.Getenv("INGEST_START"),
		end:     os.Getenv("INGEST_END"),
		timeout: defaultRunTimeout,
	}
	if d, err := time.ParseDuration(os.Getenv("INGEST_TIMEOUT")); err == nil && d > 0 {
		j.timeout = d
	}

	schedule := os.Getenv("INGEST_CRON")
	if schedule == "" {
		j.run(ctx)
		return
	}

	// 前回の実行が終わっていなければ次の実行はスキップする
	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger)))
	if _, err := c.AddFunc(schedule, func() { j.run(ctx) }); err != nil {
		log.Fatalf("invalid INGEST_CRON %q: %v", schedule, err)
	}
	c.Start()
	log.Printf("[INFO] scheduler started: %s", schedule)

	<-ctx.Done()
	<-c.Stop().Done()
	log.Println("[INFO] scheduler stopped")
}
