// Package dashboard computes derived stat series for a single player and
// renders them as a self-contained HTML page of charts.
package dashboard

import (
	"context"
	"fmt"
	"time"

	"dugout/internal/domain"
	"dugout/internal/store"
)

// Source is the slice of storage the renderer reads from.
type Source interface {
	store.HittingStore
	store.PitchingStore
	store.PitchStore
}

// LoadPlayerData reads everything stored for a player inside the retention
// window ending at now. It returns store.ErrNoData when nothing is found;
// callers report that as a message, not a failure.
func LoadPlayerData(ctx context.Context, src Source, name string, now time.Time, windowDays int) (*domain.PlayerData, error) {
	if windowDays <= 0 {
		windowDays = domain.RetentionDays
	}
	start := domain.DateOf(now.AddDate(0, 0, -windowDays))
	end := domain.DateOf(now)

	hitting, err := src.HittingForPlayer(ctx, name, start, end)
	if err != nil {
		return nil, fmt.Errorf("loading hitting lines: %w", err)
	}
	pitching, err := src.PitchingForPlayer(ctx, name, start, end)
	if err != nil {
		return nil, fmt.Errorf("loading pitching lines: %w", err)
	}
	pitches, err := src.PitchesForPlayer(ctx, name, start, end)
	if err != nil {
		return nil, fmt.Errorf("loading pitch events: %w", err)
	}

	if len(hitting) == 0 && len(pitching) == 0 && len(pitches) == 0 {
		return nil, fmt.Errorf("player %q: %w", name, store.ErrNoData)
	}

	return &domain.PlayerData{
		Name:     name,
		Hitting:  hitting,
		Pitching: pitching,
		Pitches:  pitches,
	}, nil
}
