// Daily update: fetch yesterday's stats, prune rows outside the retention
// window, verify the stored window, and write the leaderboard report.
// Intended to run once per day from cron.
//
// Usage:
//
//	go run cmd/dugout-daily/main.go [-date 2026-08-30]
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dugout/internal/config"
	"dugout/internal/ingest"
	"dugout/internal/report"
	"dugout/internal/statsapi"
	"dugout/internal/store"
	"dugout/internal/util"
)

func main() {
	dateFlag := flag.String("date", "", "data date to fetch (default yesterday)")
	flag.Parse()

	cfgPath := "config/dugout.yaml"
	if p := os.Getenv("DUGOUT_CONFIG"); p != "" {
		cfgPath = p
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Dual logger: stdout + /tmp log file.
	logFileName := fmt.Sprintf("/tmp/dugout-daily-%s.log", time.Now().Format("2006-01-02"))
	logFile, err := os.Create(logFileName)
	if err != nil {
		log.Fatalf("failed to create log file: %v", err)
	}
	defer logFile.Close()

	w := io.MultiWriter(os.Stdout, logFile)
	logger := util.NewLogger(w, cfg.Logging.Level, cfg.Logging.Format)
	slog.SetDefault(logger)

	st, err := store.NewSQLiteStore(cfg.Storage.SQLitePath)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer st.Close()

	client := statsapi.NewClient(cfg.Provider)
	job := ingest.NewJob(client, st, cfg.Retention.Days)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	date := *dateFlag
	if date == "" {
		date = time.Now().AddDate(0, 0, -1).Format("2006-01-02")
	}

	if err := job.RunDay(ctx, date); err != nil {
		log.Fatalf("daily update failed for %s: %v", date, err)
	}

	if _, err := job.Prune(ctx, time.Now()); err != nil {
		log.Fatalf("prune error: %v", err)
	}
	if _, err := job.VerifyWindow(ctx); err != nil {
		log.Fatalf("window check error: %v", err)
	}

	gen := report.NewGenerator(st, cfg.Report)
	path, err := gen.Write(ctx, cfg.Storage.OutputDir, time.Now(), cfg.Retention.Days)
	if err != nil {
		log.Fatalf("report error: %v", err)
	}

	slog.Info("daily update complete", "date", date, "report", path)
}
