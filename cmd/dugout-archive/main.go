// One-shot tool: snapshot one stored day to Parquet files under the
// archive directory, so data survives aging out of the retention window.
//
// Usage:
//
//	go run cmd/dugout-archive/main.go [-date 2026-08-30]
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"time"

	"dugout/internal/config"
	"dugout/internal/store"
	"dugout/internal/util"
)

func main() {
	dateFlag := flag.String("date", "", "data date to archive (default yesterday)")
	flag.Parse()

	cfgPath := "config/dugout.yaml"
	if p := os.Getenv("DUGOUT_CONFIG"); p != "" {
		cfgPath = p
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if cfg.Storage.ArchiveDir == "" {
		log.Fatal("storage.archive_dir is not configured")
	}

	logger := util.NewLogger(os.Stdout, cfg.Logging.Level, cfg.Logging.Format)
	slog.SetDefault(logger)

	st, err := store.NewSQLiteStore(cfg.Storage.SQLitePath)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer st.Close()

	date := *dateFlag
	if date == "" {
		date = time.Now().AddDate(0, 0, -1).Format("2006-01-02")
	}

	ctx := context.Background()
	hitting, err := st.HittingBetween(ctx, date, date)
	if err != nil {
		log.Fatalf("failed to load hitting lines: %v", err)
	}
	pitching, err := st.PitchingBetween(ctx, date, date)
	if err != nil {
		log.Fatalf("failed to load pitching lines: %v", err)
	}
	pitches, err := st.PitchesBetween(ctx, date, date)
	if err != nil {
		log.Fatalf("failed to load pitch events: %v", err)
	}

	archive := store.NewParquetArchive(cfg.Storage.ArchiveDir)
	if err := archive.Snapshot(ctx, date, hitting, pitching, pitches); err != nil {
		log.Fatalf("failed to write snapshot: %v", err)
	}

	slog.Info("snapshot written",
		"date", date,
		"hitting", len(hitting),
		"pitching", len(pitching),
		"pitches", len(pitches),
		"dir", cfg.Storage.ArchiveDir,
	)
}
