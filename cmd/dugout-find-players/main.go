// Lists players stored in the database, optionally filtered by a name
// substring. Handy for finding the exact spelling dugout-dashboard needs.
//
// Usage:
//
//	go run cmd/dugout-find-players/main.go [judge]
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"dugout/internal/config"
	"dugout/internal/store"
)

func main() {
	flag.Parse()
	substring := strings.TrimSpace(strings.Join(flag.Args(), " "))

	cfgPath := "config/dugout.yaml"
	if p := os.Getenv("DUGOUT_CONFIG"); p != "" {
		cfgPath = p
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	st, err := store.NewSQLiteStore(cfg.Storage.SQLitePath)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer st.Close()

	players, err := st.ListPlayers(context.Background(), substring)
	if err != nil {
		log.Fatalf("failed to list players: %v", err)
	}
	if len(players) == 0 {
		fmt.Println("no players found")
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Player", "Class", "Stat Days", "Pitches"})
	for _, p := range players {
		t.AppendRow(table.Row{p.Name, p.Class, p.StatDays, p.PitchCount})
	}
	t.Render()
}
