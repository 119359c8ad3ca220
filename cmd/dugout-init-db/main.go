// One-shot tool: create the SQLite database and backfill the rolling
// window, ending at yesterday.
//
// Usage:
//
//	go run cmd/dugout-init-db/main.go [-fresh] [-days 45]
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dugout/internal/config"
	"dugout/internal/ingest"
	"dugout/internal/statsapi"
	"dugout/internal/store"
	"dugout/internal/util"
)

func main() {
	fresh := flag.Bool("fresh", false, "delete existing rows before backfilling")
	days := flag.Int("days", 0, "days to backfill (0 = retention window)")
	flag.Parse()

	cfgPath := "config/dugout.yaml"
	if p := os.Getenv("DUGOUT_CONFIG"); p != "" {
		cfgPath = p
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := util.NewLogger(os.Stdout, cfg.Logging.Level, cfg.Logging.Format)
	slog.SetDefault(logger)

	st, err := store.NewSQLiteStore(cfg.Storage.SQLitePath)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer st.Close()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if *fresh {
		if err := st.Reset(ctx); err != nil {
			log.Fatalf("failed to reset database: %v", err)
		}
		slog.Info("existing rows cleared")
	}

	client := statsapi.NewClient(cfg.Provider)
	job := ingest.NewJob(client, st, cfg.Retention.Days)

	n := *days
	if n <= 0 {
		n = cfg.Retention.Days
	}
	end := time.Now().AddDate(0, 0, -1)
	start := end.AddDate(0, 0, -(n - 1))

	slog.Info("backfill starting", "start", start.Format("2006-01-02"), "end", end.Format("2006-01-02"))
	if err := job.Backfill(ctx, start, end); err != nil {
		log.Fatalf("backfill error: %v", err)
	}

	if _, err := job.Prune(ctx, time.Now()); err != nil {
		log.Fatalf("prune error: %v", err)
	}
	if _, err := job.VerifyWindow(ctx); err != nil {
		log.Fatalf("window check error: %v", err)
	}

	slog.Info("database initialized", "path", cfg.Storage.SQLitePath)
}
