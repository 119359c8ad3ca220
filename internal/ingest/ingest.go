// Package ingest implements the daily ETL job: fetch one day of league
// stats and pitch events from the provider, upsert them into the store,
// and prune rows that have aged out of the retention window.
package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"dugout/internal/domain"
	"dugout/internal/store"
)

// Fetcher retrieves one day of data from the stats provider.
type Fetcher interface {
	FetchHitting(ctx context.Context, date string) ([]domain.HittingLine, error)
	FetchPitching(ctx context.Context, date string) ([]domain.PitchingLine, error)
	FetchPitches(ctx context.Context, date string) ([]domain.PitchEvent, error)
}

// Store is the slice of storage the job writes through.
type Store interface {
	store.HittingStore
	store.PitchingStore
	store.PitchStore
	store.UpdateLogStore
	store.Pruner
}

// Job runs fetch → upsert → prune for single days or date ranges. Runs are
// sequential and single-threaded; a fetch failure aborts the day and is
// recorded in the update log.
type Job struct {
	fetcher   Fetcher
	store     Store
	retention int
	log       *slog.Logger
}

// NewJob creates a Job with the given provider, store, and retention window
// in days.
func NewJob(f Fetcher, s Store, retentionDays int) *Job {
	if retentionDays <= 0 {
		retentionDays = domain.RetentionDays
	}
	return &Job{
		fetcher:   f,
		store:     s,
		retention: retentionDays,
		log:       slog.Default().With("job", "ingest"),
	}
}

// Cutoff returns the retention cutoff date for the given reference time:
// rows dated before it are outside the window.
func (j *Job) Cutoff(now time.Time) string {
	return domain.DateOf(now.AddDate(0, 0, -j.retention))
}

// RunDay fetches all feeds for one date and upserts the rows. Any fetch
// error aborts the day, records a failure in the update log, and is
// returned. Refetching a date is idempotent.
func (j *Job) RunDay(ctx context.Context, date string) error {
	start := time.Now()

	hitting, pitching, pitches, err := j.fetchDay(ctx, date)
	if err != nil {
		rec := domain.UpdateRecord{
			UpdateTime: time.Now(),
			DataDate:   date,
			Status:     fmt.Sprintf("error: %v", err),
		}
		if logErr := j.store.RecordUpdate(ctx, rec); logErr != nil {
			return fmt.Errorf("recording fetch failure for %s: %w (fetch error: %v)", date, logErr, err)
		}
		return err
	}

	// Barrel classification happens at ingest time so the flag is stored
	// with the row.
	for i := range pitches {
		if pitches[i].HasLaunch {
			pitches[i].Barrel = domain.IsBarrel(pitches[i].LaunchSpeed, pitches[i].LaunchAngle)
		}
	}

	hitRows, err := j.store.UpsertHitting(ctx, hitting)
	if err != nil {
		return fmt.Errorf("upserting hitting for %s: %w", date, err)
	}
	pitRows, err := j.store.UpsertPitching(ctx, pitching)
	if err != nil {
		return fmt.Errorf("upserting pitching for %s: %w", date, err)
	}
	pitchRows, err := j.store.UpsertPitches(ctx, pitches)
	if err != nil {
		return fmt.Errorf("upserting pitches for %s: %w", date, err)
	}

	rec := domain.UpdateRecord{
		UpdateTime:   time.Now(),
		DataDate:     date,
		HittingRows:  hitRows,
		PitchingRows: pitRows,
		PitchRows:    pitchRows,
		Status:       domain.UpdateSuccess,
	}
	if err := j.store.RecordUpdate(ctx, rec); err != nil {
		return err
	}

	if hitRows+pitRows+pitchRows == 0 {
		j.log.Info("no data available", "date", date)
	} else {
		j.log.Info("day ingested",
			"date", date,
			"hitting", hitRows,
			"pitching", pitRows,
			"pitches", pitchRows,
			"elapsed", time.Since(start).Round(time.Millisecond),
		)
	}
	return nil
}

func (j *Job) fetchDay(ctx context.Context, date string) ([]domain.HittingLine, []domain.PitchingLine, []domain.PitchEvent, error) {
	hitting, err := j.fetcher.FetchHitting(ctx, date)
	if err != nil {
		return nil, nil, nil, err
	}
	pitching, err := j.fetcher.FetchPitching(ctx, date)
	if err != nil {
		return nil, nil, nil, err
	}
	pitches, err := j.fetcher.FetchPitches(ctx, date)
	if err != nil {
		return nil, nil, nil, err
	}
	return hitting, pitching, pitches, nil
}

// Backfill runs RunDay for every date in [start, end]. A failed day is
// recorded and skipped; the backfill continues with the next date.
func (j *Job) Backfill(ctx context.Context, start, end time.Time) error {
	var failed int
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		date := domain.DateOf(d)
		if err := j.RunDay(ctx, date); err != nil {
			failed++
			j.log.Error("day failed", "date", date, "err", err)
		}
	}
	if failed > 0 {
		j.log.Warn("backfill finished with failures", "failed", failed)
	}
	return nil
}

// Prune deletes rows older than the retention cutoff relative to now.
func (j *Job) Prune(ctx context.Context, now time.Time) (store.PruneResult, error) {
	cutoff := j.Cutoff(now)
	res, err := j.store.Prune(ctx, cutoff)
	if err != nil {
		return res, fmt.Errorf("pruning before %s: %w", cutoff, err)
	}
	j.log.Info("retention pass complete",
		"cutoff", cutoff,
		"hitting", res.Hitting,
		"pitching", res.Pitching,
		"pitches", res.Pitches,
		"updates", res.Updates,
	)
	return res, nil
}

// VerifyWindow logs and returns the stored window summary, mirroring the
// integrity check the daily update prints after pruning.
func (j *Job) VerifyWindow(ctx context.Context) (store.WindowSummary, error) {
	sum, err := j.store.WindowSummary(ctx)
	if err != nil {
		return sum, fmt.Errorf("summarizing window: %w", err)
	}
	j.log.Info("window summary",
		"oldest", sum.OldestDate,
		"newest", sum.NewestDate,
		"days", sum.Days,
		"pitchRows", sum.PitchRows,
	)
	return sum, nil
}
