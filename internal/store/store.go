// Package store defines storage interfaces for persisting and retrieving
// daily stat lines, pitch events, and update log records, plus the
// retention pass that keeps the rolling window bounded.
package store

import (
	"context"
	"errors"

	"dugout/internal/domain"
)

// ErrNoData is returned when a player has no rows inside the window.
var ErrNoData = errors.New("no data in window")

// HittingStore persists and retrieves daily hitting stat lines.
type HittingStore interface {
	// UpsertHitting inserts or replaces lines keyed by (date, player name).
	// It returns the number of lines written.
	UpsertHitting(ctx context.Context, lines []domain.HittingLine) (int, error)

	// HittingForPlayer returns a player's lines with start <= date <= end,
	// ordered by date.
	HittingForPlayer(ctx context.Context, name, start, end string) ([]domain.HittingLine, error)

	// HittingBetween returns all lines with start <= date <= end.
	HittingBetween(ctx context.Context, start, end string) ([]domain.HittingLine, error)
}

// PitchingStore persists and retrieves daily pitching stat lines.
type PitchingStore interface {
	// UpsertPitching inserts or replaces lines keyed by (date, player name).
	// It returns the number of lines written.
	UpsertPitching(ctx context.Context, lines []domain.PitchingLine) (int, error)

	// PitchingForPlayer returns a player's lines with start <= date <= end,
	// ordered by date.
	PitchingForPlayer(ctx context.Context, name, start, end string) ([]domain.PitchingLine, error)

	// PitchingBetween returns all lines with start <= date <= end.
	PitchingBetween(ctx context.Context, start, end string) ([]domain.PitchingLine, error)
}

// PitchStore persists and retrieves pitch-by-pitch events.
type PitchStore interface {
	// UpsertPitches inserts or replaces events keyed by their natural key.
	// It returns the number of events written.
	UpsertPitches(ctx context.Context, events []domain.PitchEvent) (int, error)

	// PitchesForPlayer returns events where the player appears as batter or
	// pitcher, with start <= date <= end, ordered by date.
	PitchesForPlayer(ctx context.Context, name, start, end string) ([]domain.PitchEvent, error)

	// PitchesBetween returns all events with start <= date <= end.
	PitchesBetween(ctx context.Context, start, end string) ([]domain.PitchEvent, error)
}

// UpdateLogStore records ingestion runs, one row per data date.
type UpdateLogStore interface {
	// RecordUpdate inserts or replaces the update record for its data date.
	RecordUpdate(ctx context.Context, rec domain.UpdateRecord) error

	// Updates returns all update records ordered by data date.
	Updates(ctx context.Context) ([]domain.UpdateRecord, error)
}

// PruneResult reports rows deleted from each table by a retention pass.
type PruneResult struct {
	Hitting  int64
	Pitching int64
	Pitches  int64
	Updates  int64
}

// Total returns the total rows deleted across all tables.
func (r PruneResult) Total() int64 {
	return r.Hitting + r.Pitching + r.Pitches + r.Updates
}

// WindowSummary describes the stored window, used by the post-update
// integrity check.
type WindowSummary struct {
	OldestDate string
	NewestDate string
	Days       int
	PitchRows  int64
}

// Pruner deletes rows that have aged out of the retention window.
type Pruner interface {
	// Prune deletes all rows with date < cutoff across every table.
	Prune(ctx context.Context, cutoff string) (PruneResult, error)

	// WindowSummary reports the date range currently stored.
	WindowSummary(ctx context.Context) (WindowSummary, error)
}

// PlayerIndex enumerates players present in the store.
type PlayerIndex interface {
	// ListPlayers returns players whose name contains substring (all
	// players when substring is empty), sorted by name.
	ListPlayers(ctx context.Context, substring string) ([]domain.PlayerSummary, error)
}
