// Package statsapi fetches daily league-wide stats and Statcast pitch
// events from the external stats provider. Daily hitting and pitching
// stats come back as JSON; pitch events come back as the provider's CSV
// export.
package statsapi

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-resty/resty/v2"

	"dugout/internal/config"
	"dugout/internal/domain"
	"dugout/internal/util"
)

// Client talks to the stats provider. All fetches go through the shared
// rate limiter so backfills stay polite.
type Client struct {
	http        *resty.Client
	statcastURL string
	limiter     *util.RateLimiter
	maxAttempts int
	log         *slog.Logger
}

// NewClient creates a Client from provider configuration.
func NewClient(cfg config.Provider) *Client {
	httpClient := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(time.Duration(cfg.TimeoutSeconds) * time.Second).
		SetHeader("User-Agent", "dugout/1.0")

	return &Client{
		http:        httpClient,
		statcastURL: cfg.StatcastURL,
		limiter:     util.NewRateLimiter(cfg.RateLimitPerMin),
		maxAttempts: cfg.MaxAttempts,
		log:         slog.Default().With("component", "statsapi"),
	}
}

// FetchHitting retrieves all league hitting lines for a date.
func (c *Client) FetchHitting(ctx context.Context, date string) ([]domain.HittingLine, error) {
	var lines []domain.HittingLine
	err := c.getJSON(ctx, "/api/v1/stats/hitting", date, &lines)
	if err != nil {
		return nil, fmt.Errorf("fetching hitting stats for %s: %w", date, err)
	}
	for i := range lines {
		lines[i].Date = date
	}
	return lines, nil
}

// FetchPitching retrieves all league pitching lines for a date.
func (c *Client) FetchPitching(ctx context.Context, date string) ([]domain.PitchingLine, error) {
	var lines []domain.PitchingLine
	err := c.getJSON(ctx, "/api/v1/stats/pitching", date, &lines)
	if err != nil {
		return nil, fmt.Errorf("fetching pitching stats for %s: %w", date, err)
	}
	for i := range lines {
		lines[i].Date = date
	}
	return lines, nil
}

// FetchPitches retrieves pitch-by-pitch events for a date from the Statcast
// CSV export endpoint.
func (c *Client) FetchPitches(ctx context.Context, date string) ([]domain.PitchEvent, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	var body []byte
	err := util.Retry(ctx, c.maxAttempts, time.Second, func() error {
		resp, err := c.http.R().
			SetContext(ctx).
			SetQueryParams(map[string]string{
				"all":          "true",
				"type":         "details",
				"game_date_gt": date,
				"game_date_lt": date,
			}).
			Get(c.statcastURL)
		if err != nil {
			return err
		}
		if resp.StatusCode() != 200 {
			return fmt.Errorf("statcast export returned status %d", resp.StatusCode())
		}
		body = resp.Body()
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("fetching pitch events for %s: %w", date, err)
	}

	events, err := ParsePitchCSV(body, date)
	if err != nil {
		return nil, fmt.Errorf("parsing pitch events for %s: %w", date, err)
	}

	c.log.Debug("fetched pitch events", "date", date, "count", len(events))
	return events, nil
}

// getJSON performs a rate-limited GET for one of the JSON stat endpoints.
func (c *Client) getJSON(ctx context.Context, path, date string, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	return util.Retry(ctx, c.maxAttempts, time.Second, func() error {
		resp, err := c.http.R().
			SetContext(ctx).
			SetQueryParam("date", date).
			SetResult(out).
			Get(path)
		if err != nil {
			return err
		}
		if resp.StatusCode() != 200 {
			return fmt.Errorf("provider returned status %d", resp.StatusCode())
		}
		return nil
	})
}
