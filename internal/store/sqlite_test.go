package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"dugout/internal/domain"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func hittingLine(date, name string) domain.HittingLine {
	return domain.HittingLine{
		Date:       date,
		PlayerName: name,
		Team:       "NYY",
		AtBats:     4,
		Hits:       2,
		HomeRuns:   1,
		OPS:        1.100,
	}
}

func pitchingLine(date, name string) domain.PitchingLine {
	return domain.PitchingLine{
		Date:           date,
		PlayerName:     name,
		Team:           "LAD",
		InningsPitched: 6,
		EarnedRuns:     2,
		Strikeouts:     8,
		ERA:            3.00,
	}
}

func pitchEvent(date string, gamePK int64, balls int) domain.PitchEvent {
	return domain.PitchEvent{
		Date:         date,
		GamePK:       gamePK,
		PitcherID:    100,
		BatterID:     200,
		PitcherName:  "Some Pitcher",
		BatterName:   "Some Batter",
		PitchType:    "FF",
		ReleaseSpeed: 95.5,
		Balls:        balls,
		Strikes:      1,
	}
}

func TestUpsertHittingIdempotent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	line := hittingLine("2026-08-01", "Test Player")
	if _, err := s.UpsertHitting(ctx, []domain.HittingLine{line}); err != nil {
		t.Fatalf("first upsert failed: %v", err)
	}

	// Refetching the same day replaces rather than duplicates.
	line.Hits = 3
	if _, err := s.UpsertHitting(ctx, []domain.HittingLine{line}); err != nil {
		t.Fatalf("second upsert failed: %v", err)
	}

	got, err := s.HittingForPlayer(ctx, "Test Player", "2026-08-01", "2026-08-01")
	if err != nil {
		t.Fatalf("HittingForPlayer failed: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d rows, want 1", len(got))
	}
	if got[0].Hits != 3 {
		t.Errorf("Hits = %d, want updated value 3", got[0].Hits)
	}
	if got[0].HomeRuns != 1 {
		t.Errorf("HomeRuns = %d, want 1", got[0].HomeRuns)
	}
}

func TestUpsertPitchesIdempotent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	events := []domain.PitchEvent{
		pitchEvent("2026-08-01", 1, 0),
		pitchEvent("2026-08-01", 1, 1),
	}
	if _, err := s.UpsertPitches(ctx, events); err != nil {
		t.Fatalf("first upsert failed: %v", err)
	}
	if _, err := s.UpsertPitches(ctx, events); err != nil {
		t.Fatalf("second upsert failed: %v", err)
	}

	got, err := s.PitchesBetween(ctx, "2026-08-01", "2026-08-01")
	if err != nil {
		t.Fatalf("PitchesBetween failed: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("got %d rows, want 2", len(got))
	}
}

func TestPitchLaunchDataRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	contact := pitchEvent("2026-08-01", 1, 0)
	contact.HasLaunch = true
	contact.LaunchSpeed = 104.2
	contact.LaunchAngle = 27.5
	contact.Barrel = true

	whiff := pitchEvent("2026-08-01", 1, 1)

	if _, err := s.UpsertPitches(ctx, []domain.PitchEvent{contact, whiff}); err != nil {
		t.Fatalf("upsert failed: %v", err)
	}

	got, err := s.PitchesForPlayer(ctx, "Some Batter", "2026-08-01", "2026-08-01")
	if err != nil {
		t.Fatalf("PitchesForPlayer failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d rows, want 2", len(got))
	}

	var withLaunch, withoutLaunch int
	for _, e := range got {
		if e.HasLaunch {
			withLaunch++
			if e.LaunchSpeed != 104.2 || e.LaunchAngle != 27.5 {
				t.Errorf("launch data = %v/%v, want 104.2/27.5", e.LaunchSpeed, e.LaunchAngle)
			}
			if !e.Barrel {
				t.Error("barrel flag lost in round trip")
			}
		} else {
			withoutLaunch++
		}
	}
	if withLaunch != 1 || withoutLaunch != 1 {
		t.Errorf("launch split = %d/%d, want 1/1", withLaunch, withoutLaunch)
	}
}

func TestPrune(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	dates := []string{"2026-07-01", "2026-07-15", "2026-08-01"}
	for _, d := range dates {
		if _, err := s.UpsertHitting(ctx, []domain.HittingLine{hittingLine(d, "Test Player")}); err != nil {
			t.Fatalf("upsert hitting failed: %v", err)
		}
		if _, err := s.UpsertPitching(ctx, []domain.PitchingLine{pitchingLine(d, "Test Pitcher")}); err != nil {
			t.Fatalf("upsert pitching failed: %v", err)
		}
		if _, err := s.UpsertPitches(ctx, []domain.PitchEvent{pitchEvent(d, 1, 0)}); err != nil {
			t.Fatalf("upsert pitches failed: %v", err)
		}
		rec := domain.UpdateRecord{UpdateTime: time.Now(), DataDate: d, Status: domain.UpdateSuccess}
		if err := s.RecordUpdate(ctx, rec); err != nil {
			t.Fatalf("record update failed: %v", err)
		}
	}

	res, err := s.Prune(ctx, "2026-07-15")
	if err != nil {
		t.Fatalf("Prune failed: %v", err)
	}
	if res.Hitting != 1 || res.Pitching != 1 || res.Pitches != 1 || res.Updates != 1 {
		t.Errorf("PruneResult = %+v, want one row per table", res)
	}

	// Rows dated exactly at the cutoff survive.
	got, err := s.HittingBetween(ctx, "2026-01-01", "2026-12-31")
	if err != nil {
		t.Fatalf("HittingBetween failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d hitting rows after prune, want 2", len(got))
	}
	if got[0].Date != "2026-07-15" {
		t.Errorf("oldest surviving date = %s, want 2026-07-15", got[0].Date)
	}

	sum, err := s.WindowSummary(ctx)
	if err != nil {
		t.Fatalf("WindowSummary failed: %v", err)
	}
	if sum.OldestDate != "2026-07-15" || sum.NewestDate != "2026-08-01" {
		t.Errorf("window = %s..%s, want 2026-07-15..2026-08-01", sum.OldestDate, sum.NewestDate)
	}
	if sum.Days != 2 || sum.PitchRows != 2 {
		t.Errorf("window days/rows = %d/%d, want 2/2", sum.Days, sum.PitchRows)
	}
}

func TestPruneEverything(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if _, err := s.UpsertHitting(ctx, []domain.HittingLine{hittingLine("2026-08-01", "Test Player")}); err != nil {
		t.Fatalf("upsert failed: %v", err)
	}

	// A cutoff after every stored date empties the table.
	res, err := s.Prune(ctx, "2026-08-02")
	if err != nil {
		t.Fatalf("Prune failed: %v", err)
	}
	if res.Hitting != 1 {
		t.Errorf("deleted %d hitting rows, want 1", res.Hitting)
	}

	got, err := s.HittingBetween(ctx, "2026-01-01", "2026-12-31")
	if err != nil {
		t.Fatalf("HittingBetween failed: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("got %d rows after full prune, want 0", len(got))
	}
}

func TestRecordUpdateReplacesDate(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	first := domain.UpdateRecord{
		UpdateTime: time.Date(2026, 8, 2, 6, 0, 0, 0, time.UTC),
		DataDate:   "2026-08-01",
		Status:     "error: provider returned status 500",
	}
	if err := s.RecordUpdate(ctx, first); err != nil {
		t.Fatalf("first record failed: %v", err)
	}

	second := first
	second.UpdateTime = second.UpdateTime.Add(time.Hour)
	second.HittingRows = 250
	second.Status = domain.UpdateSuccess
	if err := s.RecordUpdate(ctx, second); err != nil {
		t.Fatalf("second record failed: %v", err)
	}

	recs, err := s.Updates(ctx)
	if err != nil {
		t.Fatalf("Updates failed: %v", err)
	}
	if len(recs) != 1 {
		t.Fatalf("got %d records, want 1", len(recs))
	}
	if recs[0].Status != domain.UpdateSuccess {
		t.Errorf("Status = %q, want %q", recs[0].Status, domain.UpdateSuccess)
	}
	if recs[0].HittingRows != 250 {
		t.Errorf("HittingRows = %d, want 250", recs[0].HittingRows)
	}
	if !recs[0].UpdateTime.Equal(second.UpdateTime) {
		t.Errorf("UpdateTime = %v, want %v", recs[0].UpdateTime, second.UpdateTime)
	}
}

func TestListPlayers(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if _, err := s.UpsertHitting(ctx, []domain.HittingLine{
		hittingLine("2026-08-01", "Aaron Judge"),
		hittingLine("2026-08-02", "Aaron Judge"),
		hittingLine("2026-08-01", "Shohei Ohtani"),
	}); err != nil {
		t.Fatalf("upsert hitting failed: %v", err)
	}
	if _, err := s.UpsertPitching(ctx, []domain.PitchingLine{
		pitchingLine("2026-08-01", "Shohei Ohtani"),
		pitchingLine("2026-08-01", "Tarik Skubal"),
	}); err != nil {
		t.Fatalf("upsert pitching failed: %v", err)
	}

	players, err := s.ListPlayers(ctx, "")
	if err != nil {
		t.Fatalf("ListPlayers failed: %v", err)
	}
	if len(players) != 3 {
		t.Fatalf("got %d players, want 3", len(players))
	}

	byName := make(map[string]domain.PlayerSummary)
	for _, p := range players {
		byName[p.Name] = p
	}
	if byName["Aaron Judge"].Class != domain.ClassHitter {
		t.Errorf("Judge class = %q, want hitter", byName["Aaron Judge"].Class)
	}
	if byName["Shohei Ohtani"].Class != domain.ClassTwoWay {
		t.Errorf("Ohtani class = %q, want two-way", byName["Shohei Ohtani"].Class)
	}
	if byName["Tarik Skubal"].Class != domain.ClassPitcher {
		t.Errorf("Skubal class = %q, want pitcher", byName["Tarik Skubal"].Class)
	}
	if byName["Aaron Judge"].StatDays != 2 {
		t.Errorf("Judge stat days = %d, want 2", byName["Aaron Judge"].StatDays)
	}

	filtered, err := s.ListPlayers(ctx, "ohtani")
	if err != nil {
		t.Fatalf("filtered ListPlayers failed: %v", err)
	}
	if len(filtered) != 1 || filtered[0].Name != "Shohei Ohtani" {
		t.Errorf("filtered = %+v, want just Shohei Ohtani", filtered)
	}
}

func TestReset(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if _, err := s.UpsertHitting(ctx, []domain.HittingLine{hittingLine("2026-08-01", "Test Player")}); err != nil {
		t.Fatalf("upsert failed: %v", err)
	}
	if err := s.Reset(ctx); err != nil {
		t.Fatalf("Reset failed: %v", err)
	}

	got, err := s.HittingBetween(ctx, "2026-01-01", "2026-12-31")
	if err != nil {
		t.Fatalf("HittingBetween failed: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("got %d rows after reset, want 0", len(got))
	}
}
