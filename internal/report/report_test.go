package report

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"dugout/internal/config"
	"dugout/internal/domain"
	"dugout/internal/store"
)

func newTestStore(t *testing.T) *store.SQLiteStore {
	t.Helper()
	s, err := store.NewSQLiteStore(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestAggregateHitters(t *testing.T) {
	lines := []domain.HittingLine{
		{Date: "2026-08-01", PlayerName: "Test Player", AtBats: 4, Hits: 2, HomeRuns: 1, Walks: 1},
		{Date: "2026-08-02", PlayerName: "Test Player", AtBats: 3, Hits: 1, Doubles: 1},
	}

	hitters := aggregateHitters(lines)
	if len(hitters) != 1 {
		t.Fatalf("got %d hitters, want 1", len(hitters))
	}

	h := hitters[0]
	if h.AtBats != 7 || h.Hits != 3 || h.HomeRuns != 1 {
		t.Errorf("totals = %+v", h)
	}
	if math.Abs(h.avg()-3.0/7.0) > 1e-9 {
		t.Errorf("avg = %v, want %v", h.avg(), 3.0/7.0)
	}
	// OBP = (3 hits + 1 walk) / (7 AB + 1 walk).
	if math.Abs(h.obp()-0.5) > 1e-9 {
		t.Errorf("obp = %v, want 0.5", h.obp())
	}
	// Total bases: 1 single + 1 double + 1 HR = 1 + 2 + 4 = 7.
	if math.Abs(h.slg()-1.0) > 1e-9 {
		t.Errorf("slg = %v, want 1.0", h.slg())
	}
}

func TestAggregatePitchers(t *testing.T) {
	lines := []domain.PitchingLine{
		{Date: "2026-08-01", PlayerName: "Some Pitcher", InningsPitched: 6, EarnedRuns: 2, Strikeouts: 8},
		{Date: "2026-08-06", PlayerName: "Some Pitcher", InningsPitched: 3, EarnedRuns: 1, Strikeouts: 4},
	}

	pitchers := aggregatePitchers(lines)
	if len(pitchers) != 1 {
		t.Fatalf("got %d pitchers, want 1", len(pitchers))
	}

	p := pitchers[0]
	if p.Innings != 9 || p.EarnedRuns != 3 || p.Strikeouts != 12 {
		t.Errorf("totals = %+v", p)
	}
	if math.Abs(p.era()-3.0) > 1e-9 {
		t.Errorf("era = %v, want 3.00", p.era())
	}
}

func TestQualified(t *testing.T) {
	pitchers := []pitcherTotals{
		{Name: "Starter", Innings: 40},
		{Name: "Opener", Innings: 5},
	}

	q := qualified(pitchers, 10)
	if len(q) != 1 || q[0].Name != "Starter" {
		t.Errorf("qualified = %+v, want only Starter", q)
	}
}

func TestWrite(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.UpsertHitting(ctx, []domain.HittingLine{
		{Date: "2026-08-30", PlayerName: "Big Bat", Team: "NYY", Games: 1, AtBats: 4, Hits: 3, HomeRuns: 2, Walks: 1},
		{Date: "2026-08-30", PlayerName: "Slap Hitter", Team: "KC", Games: 1, AtBats: 4, Hits: 1},
	})
	if err != nil {
		t.Fatalf("upsert hitting failed: %v", err)
	}
	_, err = s.UpsertPitching(ctx, []domain.PitchingLine{
		{Date: "2026-08-30", PlayerName: "Ace", Team: "LAD", InningsPitched: 12, EarnedRuns: 2, Strikeouts: 15},
		{Date: "2026-08-30", PlayerName: "Mopup", Team: "COL", InningsPitched: 2, EarnedRuns: 5, Strikeouts: 1},
	})
	if err != nil {
		t.Fatalf("upsert pitching failed: %v", err)
	}

	dir := t.TempDir()
	gen := NewGenerator(s, config.Report{TopN: 5, QualifyIP: 10})
	now := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)

	path, err := gen.Write(ctx, dir, now, 45)
	if err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if filepath.Base(path) != "leaders_2026-08-31.txt" {
		t.Errorf("report file = %s", filepath.Base(path))
	}

	body, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read report: %v", err)
	}
	text := string(body)

	for _, want := range []string{"Top OPS", "Top Home Runs", "Top Strikeouts", "Big Bat", "Ace", "League:"} {
		if !strings.Contains(text, want) {
			t.Errorf("report missing %q:\n%s", want, text)
		}
	}

	// Mopup has too few innings to qualify for the ERA board.
	eraSection := text[strings.Index(text, "Top ERA"):]
	eraSection = eraSection[:strings.Index(eraSection, "Top Strikeouts")]
	if strings.Contains(eraSection, "Mopup") {
		t.Errorf("unqualified pitcher on ERA board:\n%s", eraSection)
	}
}
