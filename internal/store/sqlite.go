package store

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strings"
	"time"

	"dugout/internal/domain"

	_ "modernc.org/sqlite" // Pure-Go SQLite driver.
)

// Compile-time interface checks.
var _ HittingStore = (*SQLiteStore)(nil)
var _ PitchingStore = (*SQLiteStore)(nil)
var _ PitchStore = (*SQLiteStore)(nil)
var _ UpdateLogStore = (*SQLiteStore)(nil)
var _ Pruner = (*SQLiteStore)(nil)
var _ PlayerIndex = (*SQLiteStore)(nil)

const schema = `
CREATE TABLE IF NOT EXISTS daily_hitting (
	date              TEXT NOT NULL,
	player_id         TEXT,
	player_name       TEXT NOT NULL,
	team              TEXT,
	games             INTEGER,
	plate_appearances INTEGER,
	at_bats           INTEGER,
	runs              INTEGER,
	hits              INTEGER,
	doubles           INTEGER,
	triples           INTEGER,
	home_runs         INTEGER,
	rbi               INTEGER,
	stolen_bases      INTEGER,
	caught_stealing   INTEGER,
	walks             INTEGER,
	strikeouts        INTEGER,
	batting_avg       REAL,
	on_base_pct       REAL,
	slugging_pct      REAL,
	ops               REAL,
	woba              REAL,
	war               REAL,
	UNIQUE(date, player_name)
);

CREATE TABLE IF NOT EXISTS daily_pitching (
	date              TEXT NOT NULL,
	player_id         TEXT,
	player_name       TEXT NOT NULL,
	team              TEXT,
	games             INTEGER,
	games_started     INTEGER,
	innings_pitched   REAL,
	hits_allowed      INTEGER,
	runs_allowed      INTEGER,
	earned_runs       INTEGER,
	home_runs_allowed INTEGER,
	walks_allowed     INTEGER,
	strikeouts        INTEGER,
	era               REAL,
	whip              REAL,
	fip               REAL,
	war               REAL,
	saves             INTEGER,
	holds             INTEGER,
	UNIQUE(date, player_name)
);

CREATE TABLE IF NOT EXISTS pitch_events (
	date              TEXT NOT NULL,
	game_pk           INTEGER NOT NULL,
	pitcher_id        INTEGER NOT NULL,
	batter_id         INTEGER NOT NULL,
	pitcher_name      TEXT,
	batter_name       TEXT,
	pitch_type        TEXT NOT NULL,
	release_speed     REAL,
	release_spin_rate REAL,
	release_extension REAL,
	release_pos_x     REAL,
	release_pos_z     REAL,
	pfx_x             REAL,
	pfx_z             REAL,
	plate_x           REAL,
	plate_z           REAL,
	sz_top            REAL,
	sz_bot            REAL,
	zone              INTEGER,
	balls             INTEGER NOT NULL,
	strikes           INTEGER NOT NULL,
	stand             TEXT,
	p_throws          TEXT,
	events            TEXT,
	description       TEXT,
	type              TEXT,
	bb_type           TEXT,
	launch_speed      REAL,
	launch_angle      REAL,
	hit_distance      REAL,
	hc_x              REAL,
	hc_y              REAL,
	home_team         TEXT,
	away_team         TEXT,
	barrel            INTEGER NOT NULL DEFAULT 0,
	UNIQUE(date, game_pk, pitcher_id, batter_id, balls, strikes, pitch_type)
);

CREATE TABLE IF NOT EXISTS update_log (
	update_time   TEXT NOT NULL,
	data_date     TEXT NOT NULL,
	hitting_rows  INTEGER,
	pitching_rows INTEGER,
	pitch_rows    INTEGER,
	status        TEXT NOT NULL,
	UNIQUE(data_date)
);

CREATE INDEX IF NOT EXISTS idx_hitting_date    ON daily_hitting(date);
CREATE INDEX IF NOT EXISTS idx_hitting_player  ON daily_hitting(player_name);
CREATE INDEX IF NOT EXISTS idx_pitching_date   ON daily_pitching(date);
CREATE INDEX IF NOT EXISTS idx_pitching_player ON daily_pitching(player_name);
CREATE INDEX IF NOT EXISTS idx_pitch_date      ON pitch_events(date);
CREATE INDEX IF NOT EXISTS idx_pitch_pitcher   ON pitch_events(pitcher_name);
CREATE INDEX IF NOT EXISTS idx_pitch_batter    ON pitch_events(batter_name);
`

// SQLiteStore implements every store interface backed by a single SQLite
// database file. Each process owns the file exclusively for its duration.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (or creates) a SQLite database at dbPath, ensures
// the schema exists, and returns a ready-to-use SQLiteStore.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Reset deletes every row from every table. Used by the -fresh backfill.
func (s *SQLiteStore) Reset(ctx context.Context) error {
	for _, table := range []string{"daily_hitting", "daily_pitching", "pitch_events", "update_log"} {
		if _, err := s.db.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clearing %s: %w", table, err)
		}
	}
	return nil
}

// ---------------------------------------------------------------------------
// HittingStore implementation
// ---------------------------------------------------------------------------

const upsertHittingSQL = `
INSERT INTO daily_hitting (
	date, player_id, player_name, team, games, plate_appearances, at_bats,
	runs, hits, doubles, triples, home_runs, rbi, stolen_bases,
	caught_stealing, walks, strikeouts, batting_avg, on_base_pct,
	slugging_pct, ops, woba, war
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(date, player_name) DO UPDATE SET
	player_id = excluded.player_id,
	team = excluded.team,
	games = excluded.games,
	plate_appearances = excluded.plate_appearances,
	at_bats = excluded.at_bats,
	runs = excluded.runs,
	hits = excluded.hits,
	doubles = excluded.doubles,
	triples = excluded.triples,
	home_runs = excluded.home_runs,
	rbi = excluded.rbi,
	stolen_bases = excluded.stolen_bases,
	caught_stealing = excluded.caught_stealing,
	walks = excluded.walks,
	strikeouts = excluded.strikeouts,
	batting_avg = excluded.batting_avg,
	on_base_pct = excluded.on_base_pct,
	slugging_pct = excluded.slugging_pct,
	ops = excluded.ops,
	woba = excluded.woba,
	war = excluded.war`

// UpsertHitting inserts or replaces hitting lines keyed by (date, player name).
func (s *SQLiteStore) UpsertHitting(ctx context.Context, lines []domain.HittingLine) (int, error) {
	if len(lines) == 0 {
		return 0, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, upsertHittingSQL)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	for _, l := range lines {
		_, err := stmt.ExecContext(ctx,
			l.Date, l.PlayerID, l.PlayerName, l.Team, l.Games,
			l.PlateAppearances, l.AtBats, l.Runs, l.Hits, l.Doubles,
			l.Triples, l.HomeRuns, l.RBI, l.StolenBases, l.CaughtStealing,
			l.Walks, l.Strikeouts, l.BattingAvg, l.OnBasePct, l.SluggingPct,
			l.OPS, l.WOBA, l.WAR,
		)
		if err != nil {
			return 0, fmt.Errorf("upserting hitting line for %s/%s: %w", l.PlayerName, l.Date, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return len(lines), nil
}

const selectHittingSQL = `
SELECT date, player_id, player_name, team, games, plate_appearances, at_bats,
	runs, hits, doubles, triples, home_runs, rbi, stolen_bases,
	caught_stealing, walks, strikeouts, batting_avg, on_base_pct,
	slugging_pct, ops, woba, war
FROM daily_hitting`

func scanHittingRows(rows *sql.Rows) ([]domain.HittingLine, error) {
	var lines []domain.HittingLine
	for rows.Next() {
		var l domain.HittingLine
		err := rows.Scan(
			&l.Date, &l.PlayerID, &l.PlayerName, &l.Team, &l.Games,
			&l.PlateAppearances, &l.AtBats, &l.Runs, &l.Hits, &l.Doubles,
			&l.Triples, &l.HomeRuns, &l.RBI, &l.StolenBases, &l.CaughtStealing,
			&l.Walks, &l.Strikeouts, &l.BattingAvg, &l.OnBasePct, &l.SluggingPct,
			&l.OPS, &l.WOBA, &l.WAR,
		)
		if err != nil {
			return nil, err
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}

// HittingForPlayer returns a player's hitting lines within [start, end].
func (s *SQLiteStore) HittingForPlayer(ctx context.Context, name, start, end string) ([]domain.HittingLine, error) {
	rows, err := s.db.QueryContext(ctx,
		selectHittingSQL+" WHERE player_name = ? AND date BETWEEN ? AND ? ORDER BY date",
		name, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanHittingRows(rows)
}

// HittingBetween returns all hitting lines within [start, end].
func (s *SQLiteStore) HittingBetween(ctx context.Context, start, end string) ([]domain.HittingLine, error) {
	rows, err := s.db.QueryContext(ctx,
		selectHittingSQL+" WHERE date BETWEEN ? AND ? ORDER BY date, player_name",
		start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanHittingRows(rows)
}

// ---------------------------------------------------------------------------
// PitchingStore implementation
// ---------------------------------------------------------------------------

const upsertPitchingSQL = `
INSERT INTO daily_pitching (
	date, player_id, player_name, team, games, games_started,
	innings_pitched, hits_allowed, runs_allowed, earned_runs,
	home_runs_allowed, walks_allowed, strikeouts, era, whip, fip, war,
	saves, holds
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(date, player_name) DO UPDATE SET
	player_id = excluded.player_id,
	team = excluded.team,
	games = excluded.games,
	games_started = excluded.games_started,
	innings_pitched = excluded.innings_pitched,
	hits_allowed = excluded.hits_allowed,
	runs_allowed = excluded.runs_allowed,
	earned_runs = excluded.earned_runs,
	home_runs_allowed = excluded.home_runs_allowed,
	walks_allowed = excluded.walks_allowed,
	strikeouts = excluded.strikeouts,
	era = excluded.era,
	whip = excluded.whip,
	fip = excluded.fip,
	war = excluded.war,
	saves = excluded.saves,
	holds = excluded.holds`

// UpsertPitching inserts or replaces pitching lines keyed by (date, player name).
func (s *SQLiteStore) UpsertPitching(ctx context.Context, lines []domain.PitchingLine) (int, error) {
	if len(lines) == 0 {
		return 0, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, upsertPitchingSQL)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	for _, l := range lines {
		_, err := stmt.ExecContext(ctx,
			l.Date, l.PlayerID, l.PlayerName, l.Team, l.Games, l.GamesStarted,
			l.InningsPitched, l.HitsAllowed, l.RunsAllowed, l.EarnedRuns,
			l.HomeRunsAllowed, l.WalksAllowed, l.Strikeouts, l.ERA, l.WHIP,
			l.FIP, l.WAR, l.Saves, l.Holds,
		)
		if err != nil {
			return 0, fmt.Errorf("upserting pitching line for %s/%s: %w", l.PlayerName, l.Date, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return len(lines), nil
}

const selectPitchingSQL = `
SELECT date, player_id, player_name, team, games, games_started,
	innings_pitched, hits_allowed, runs_allowed, earned_runs,
	home_runs_allowed, walks_allowed, strikeouts, era, whip, fip, war,
	saves, holds
FROM daily_pitching`

func scanPitchingRows(rows *sql.Rows) ([]domain.PitchingLine, error) {
	var lines []domain.PitchingLine
	for rows.Next() {
		var l domain.PitchingLine
		err := rows.Scan(
			&l.Date, &l.PlayerID, &l.PlayerName, &l.Team, &l.Games,
			&l.GamesStarted, &l.InningsPitched, &l.HitsAllowed, &l.RunsAllowed,
			&l.EarnedRuns, &l.HomeRunsAllowed, &l.WalksAllowed, &l.Strikeouts,
			&l.ERA, &l.WHIP, &l.FIP, &l.WAR, &l.Saves, &l.Holds,
		)
		if err != nil {
			return nil, err
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}

// PitchingForPlayer returns a player's pitching lines within [start, end].
func (s *SQLiteStore) PitchingForPlayer(ctx context.Context, name, start, end string) ([]domain.PitchingLine, error) {
	rows, err := s.db.QueryContext(ctx,
		selectPitchingSQL+" WHERE player_name = ? AND date BETWEEN ? AND ? ORDER BY date",
		name, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanPitchingRows(rows)
}

// PitchingBetween returns all pitching lines within [start, end].
func (s *SQLiteStore) PitchingBetween(ctx context.Context, start, end string) ([]domain.PitchingLine, error) {
	rows, err := s.db.QueryContext(ctx,
		selectPitchingSQL+" WHERE date BETWEEN ? AND ? ORDER BY date, player_name",
		start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanPitchingRows(rows)
}

// ---------------------------------------------------------------------------
// PitchStore implementation
// ---------------------------------------------------------------------------

const upsertPitchSQL = `
INSERT INTO pitch_events (
	date, game_pk, pitcher_id, batter_id, pitcher_name, batter_name,
	pitch_type, release_speed, release_spin_rate, release_extension,
	release_pos_x, release_pos_z, pfx_x, pfx_z, plate_x, plate_z,
	sz_top, sz_bot, zone, balls, strikes, stand, p_throws,
	events, description, type, bb_type,
	launch_speed, launch_angle, hit_distance, hc_x, hc_y,
	home_team, away_team, barrel
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(date, game_pk, pitcher_id, batter_id, balls, strikes, pitch_type) DO UPDATE SET
	pitcher_name = excluded.pitcher_name,
	batter_name = excluded.batter_name,
	release_speed = excluded.release_speed,
	release_spin_rate = excluded.release_spin_rate,
	release_extension = excluded.release_extension,
	release_pos_x = excluded.release_pos_x,
	release_pos_z = excluded.release_pos_z,
	pfx_x = excluded.pfx_x,
	pfx_z = excluded.pfx_z,
	plate_x = excluded.plate_x,
	plate_z = excluded.plate_z,
	sz_top = excluded.sz_top,
	sz_bot = excluded.sz_bot,
	zone = excluded.zone,
	stand = excluded.stand,
	p_throws = excluded.p_throws,
	events = excluded.events,
	description = excluded.description,
	type = excluded.type,
	bb_type = excluded.bb_type,
	launch_speed = excluded.launch_speed,
	launch_angle = excluded.launch_angle,
	hit_distance = excluded.hit_distance,
	hc_x = excluded.hc_x,
	hc_y = excluded.hc_y,
	home_team = excluded.home_team,
	away_team = excluded.away_team,
	barrel = excluded.barrel`

// nullIf returns a driver NULL when present is false.
func nullIf(present bool, v float64) any {
	if !present {
		return nil
	}
	return v
}

// UpsertPitches inserts or replaces pitch events keyed by their natural key.
func (s *SQLiteStore) UpsertPitches(ctx context.Context, events []domain.PitchEvent) (int, error) {
	if len(events) == 0 {
		return 0, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, upsertPitchSQL)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	for _, e := range events {
		_, err := stmt.ExecContext(ctx,
			e.Date, e.GamePK, e.PitcherID, e.BatterID, e.PitcherName, e.BatterName,
			e.PitchType, e.ReleaseSpeed, e.ReleaseSpinRate, e.ReleaseExtension,
			e.ReleasePosX, e.ReleasePosZ, e.PfxX, e.PfxZ, e.PlateX, e.PlateZ,
			e.SzTop, e.SzBot, e.Zone, e.Balls, e.Strikes, e.Stand, e.PThrows,
			e.Events, e.Description, e.Type, e.BBType,
			nullIf(e.HasLaunch, e.LaunchSpeed), nullIf(e.HasLaunch, e.LaunchAngle),
			nullIf(e.HasLaunch, e.HitDistance),
			nullIf(e.HasHitLocation, e.HcX), nullIf(e.HasHitLocation, e.HcY),
			e.HomeTeam, e.AwayTeam, boolToInt(e.Barrel),
		)
		if err != nil {
			return 0, fmt.Errorf("upserting pitch %s/g%d/%d-%d: %w", e.Date, e.GamePK, e.Balls, e.Strikes, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return len(events), nil
}

const selectPitchSQL = `
SELECT date, game_pk, pitcher_id, batter_id, pitcher_name, batter_name,
	pitch_type, release_speed, release_spin_rate, release_extension,
	release_pos_x, release_pos_z, pfx_x, pfx_z, plate_x, plate_z,
	sz_top, sz_bot, zone, balls, strikes, stand, p_throws,
	events, description, type, bb_type,
	launch_speed, launch_angle, hit_distance, hc_x, hc_y,
	home_team, away_team, barrel
FROM pitch_events`

// PitchesForPlayer returns pitch events where the player appears as batter
// or pitcher within [start, end].
func (s *SQLiteStore) PitchesForPlayer(ctx context.Context, name, start, end string) ([]domain.PitchEvent, error) {
	rows, err := s.db.QueryContext(ctx,
		selectPitchSQL+` WHERE (batter_name = ? OR pitcher_name = ?)
			AND date BETWEEN ? AND ? ORDER BY date`,
		name, name, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanPitchRows(rows)
}

// PitchesBetween returns all pitch events within [start, end].
func (s *SQLiteStore) PitchesBetween(ctx context.Context, start, end string) ([]domain.PitchEvent, error) {
	rows, err := s.db.QueryContext(ctx,
		selectPitchSQL+" WHERE date BETWEEN ? AND ? ORDER BY date, game_pk",
		start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanPitchRows(rows)
}

func scanPitchRows(rows *sql.Rows) ([]domain.PitchEvent, error) {
	var events []domain.PitchEvent
	for rows.Next() {
		var e domain.PitchEvent
		var launchSpeed, launchAngle, hitDistance, hcX, hcY sql.NullFloat64
		var barrel int
		err := rows.Scan(
			&e.Date, &e.GamePK, &e.PitcherID, &e.BatterID, &e.PitcherName, &e.BatterName,
			&e.PitchType, &e.ReleaseSpeed, &e.ReleaseSpinRate, &e.ReleaseExtension,
			&e.ReleasePosX, &e.ReleasePosZ, &e.PfxX, &e.PfxZ, &e.PlateX, &e.PlateZ,
			&e.SzTop, &e.SzBot, &e.Zone, &e.Balls, &e.Strikes, &e.Stand, &e.PThrows,
			&e.Events, &e.Description, &e.Type, &e.BBType,
			&launchSpeed, &launchAngle, &hitDistance, &hcX, &hcY,
			&e.HomeTeam, &e.AwayTeam, &barrel,
		)
		if err != nil {
			return nil, err
		}
		if launchSpeed.Valid && launchAngle.Valid {
			e.HasLaunch = true
			e.LaunchSpeed = launchSpeed.Float64
			e.LaunchAngle = launchAngle.Float64
			e.HitDistance = hitDistance.Float64
		}
		if hcX.Valid && hcY.Valid {
			e.HasHitLocation = true
			e.HcX = hcX.Float64
			e.HcY = hcY.Float64
		}
		e.Barrel = barrel != 0
		events = append(events, e)
	}
	return events, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// ---------------------------------------------------------------------------
// UpdateLogStore implementation
// ---------------------------------------------------------------------------

// RecordUpdate inserts or replaces the update record for its data date.
func (s *SQLiteStore) RecordUpdate(ctx context.Context, rec domain.UpdateRecord) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO update_log (update_time, data_date, hitting_rows, pitching_rows, pitch_rows, status)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(data_date) DO UPDATE SET
			update_time = excluded.update_time,
			hitting_rows = excluded.hitting_rows,
			pitching_rows = excluded.pitching_rows,
			pitch_rows = excluded.pitch_rows,
			status = excluded.status`,
		rec.UpdateTime.UTC().Format("2006-01-02 15:04:05"), rec.DataDate,
		rec.HittingRows, rec.PitchingRows, rec.PitchRows, rec.Status,
	)
	if err != nil {
		return fmt.Errorf("recording update for %s: %w", rec.DataDate, err)
	}
	return nil
}

// Updates returns all update records ordered by data date.
func (s *SQLiteStore) Updates(ctx context.Context) ([]domain.UpdateRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT update_time, data_date, hitting_rows, pitching_rows, pitch_rows, status
		FROM update_log ORDER BY data_date`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recs []domain.UpdateRecord
	for rows.Next() {
		var r domain.UpdateRecord
		var ts string
		if err := rows.Scan(&ts, &r.DataDate, &r.HittingRows, &r.PitchingRows, &r.PitchRows, &r.Status); err != nil {
			return nil, err
		}
		r.UpdateTime, _ = time.Parse("2006-01-02 15:04:05", ts)
		recs = append(recs, r)
	}
	return recs, rows.Err()
}

// ---------------------------------------------------------------------------
// Pruner implementation
// ---------------------------------------------------------------------------

// Prune deletes all rows with date < cutoff across every table.
func (s *SQLiteStore) Prune(ctx context.Context, cutoff string) (PruneResult, error) {
	var res PruneResult

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return res, err
	}
	defer tx.Rollback()

	del := func(table, dateCol string) (int64, error) {
		r, err := tx.ExecContext(ctx,
			fmt.Sprintf("DELETE FROM %s WHERE %s < ?", table, dateCol), cutoff)
		if err != nil {
			return 0, fmt.Errorf("pruning %s: %w", table, err)
		}
		return r.RowsAffected()
	}

	if res.Hitting, err = del("daily_hitting", "date"); err != nil {
		return res, err
	}
	if res.Pitching, err = del("daily_pitching", "date"); err != nil {
		return res, err
	}
	if res.Pitches, err = del("pitch_events", "date"); err != nil {
		return res, err
	}
	if res.Updates, err = del("update_log", "data_date"); err != nil {
		return res, err
	}

	if err := tx.Commit(); err != nil {
		return res, err
	}
	return res, nil
}

// WindowSummary reports the stored date range and pitch row count.
func (s *SQLiteStore) WindowSummary(ctx context.Context) (WindowSummary, error) {
	var sum WindowSummary
	var oldest, newest sql.NullString
	err := s.db.QueryRowContext(ctx, `
		SELECT MIN(date), MAX(date), COUNT(DISTINCT date), COUNT(*)
		FROM pitch_events`).Scan(&oldest, &newest, &sum.Days, &sum.PitchRows)
	if err != nil {
		return sum, err
	}
	sum.OldestDate = oldest.String
	sum.NewestDate = newest.String
	return sum, nil
}

// ---------------------------------------------------------------------------
// PlayerIndex implementation
// ---------------------------------------------------------------------------

// ListPlayers returns players whose name contains substring, classified as
// hitter, pitcher, or two-way based on which stat tables they appear in.
func (s *SQLiteStore) ListPlayers(ctx context.Context, substring string) ([]domain.PlayerSummary, error) {
	countByName := func(query string) (map[string]int, error) {
		rows, err := s.db.QueryContext(ctx, query)
		if err != nil {
			return nil, err
		}
		defer rows.Close()
		m := make(map[string]int)
		for rows.Next() {
			var name string
			var n int
			if err := rows.Scan(&name, &n); err != nil {
				return nil, err
			}
			if name != "" {
				m[name] += n
			}
		}
		return m, rows.Err()
	}

	hitters, err := countByName(
		`SELECT player_name, COUNT(DISTINCT date) FROM daily_hitting GROUP BY player_name`)
	if err != nil {
		return nil, err
	}
	pitchers, err := countByName(
		`SELECT player_name, COUNT(DISTINCT date) FROM daily_pitching GROUP BY player_name`)
	if err != nil {
		return nil, err
	}
	pitchAsBatter, err := countByName(
		`SELECT batter_name, COUNT(*) FROM pitch_events GROUP BY batter_name`)
	if err != nil {
		return nil, err
	}
	pitchAsPitcher, err := countByName(
		`SELECT pitcher_name, COUNT(*) FROM pitch_events GROUP BY pitcher_name`)
	if err != nil {
		return nil, err
	}

	names := make(map[string]struct{}, len(hitters)+len(pitchers))
	for n := range hitters {
		names[n] = struct{}{}
	}
	for n := range pitchers {
		names[n] = struct{}{}
	}

	needle := strings.ToLower(substring)
	var players []domain.PlayerSummary
	for name := range names {
		if needle != "" && !strings.Contains(strings.ToLower(name), needle) {
			continue
		}

		p := domain.PlayerSummary{
			Name:       name,
			StatDays:   hitters[name] + pitchers[name],
			PitchCount: pitchAsBatter[name] + pitchAsPitcher[name],
		}
		switch {
		case hitters[name] > 0 && pitchers[name] > 0:
			p.Class = domain.ClassTwoWay
		case pitchers[name] > 0:
			p.Class = domain.ClassPitcher
		default:
			p.Class = domain.ClassHitter
		}
		players = append(players, p)
	}

	sort.Slice(players, func(i, j int) bool { return players[i].Name < players[j].Name })
	return players, nil
}
