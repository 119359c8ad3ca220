// Generates the HTML dashboard for one player from locally stored data.
// The player name is matched exactly; use dugout-find-players to look up
// the stored spelling.
//
// Usage:
//
//	go run cmd/dugout-dashboard/main.go "Aaron Judge"
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"dugout/internal/config"
	"dugout/internal/dashboard"
	"dugout/internal/store"
	"dugout/internal/util"
)

func main() {
	outDir := flag.String("out", "", "output directory (default from config)")
	flag.Parse()

	name := strings.TrimSpace(strings.Join(flag.Args(), " "))
	if name == "" {
		fmt.Fprintln(os.Stderr, "usage: dugout-dashboard [-out dir] <player name>")
		os.Exit(2)
	}

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

	ctx := context.Background()
	data, err := dashboard.LoadPlayerData(ctx, st, name, time.Now(), cfg.Retention.Days)
	if errors.Is(err, store.ErrNoData) {
		fmt.Printf("no data found for %q in the last %d days\n", name, cfg.Retention.Days)
		return
	}
	if err != nil {
		log.Fatalf("failed to load player data: %v", err)
	}

	dir := *outDir
	if dir == "" {
		dir = cfg.Storage.OutputDir
	}

	path, err := dashboard.Render(data, dir)
	if err != nil {
		log.Fatalf("failed to render dashboard: %v", err)
	}

	fmt.Printf("dashboard written to %s\n", path)
}
