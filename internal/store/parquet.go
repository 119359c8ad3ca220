package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/parquet-go/parquet-go"

	"dugout/internal/domain"
)

// ParquetArchive writes columnar snapshots of the stat tables to disk, so
// days that age out of the retention window survive in queryable form.
// Layout: <ArchiveDir>/<table>/<YYYY-MM-DD>.parquet, keyed by snapshot date.
type ParquetArchive struct {
	ArchiveDir string
}

// NewParquetArchive creates a ParquetArchive rooted at the given directory.
func NewParquetArchive(dir string) *ParquetArchive {
	return &ParquetArchive{ArchiveDir: dir}
}

// ---------------------------------------------------------------------------
// Parquet record types (on-disk schema)
// ---------------------------------------------------------------------------

// HittingRecord is the Parquet schema for daily hitting lines.
type HittingRecord struct {
	Date             string  `parquet:"date"`
	PlayerID         string  `parquet:"player_id"`
	PlayerName       string  `parquet:"player_name"`
	Team             string  `parquet:"team"`
	Games            int32   `parquet:"games"`
	PlateAppearances int32   `parquet:"plate_appearances"`
	AtBats           int32   `parquet:"at_bats"`
	Runs             int32   `parquet:"runs"`
	Hits             int32   `parquet:"hits"`
	Doubles          int32   `parquet:"doubles"`
	Triples          int32   `parquet:"triples"`
	HomeRuns         int32   `parquet:"home_runs"`
	RBI              int32   `parquet:"rbi"`
	StolenBases      int32   `parquet:"stolen_bases"`
	CaughtStealing   int32   `parquet:"caught_stealing"`
	Walks            int32   `parquet:"walks"`
	Strikeouts       int32   `parquet:"strikeouts"`
	BattingAvg       float64 `parquet:"batting_avg"`
	OnBasePct        float64 `parquet:"on_base_pct"`
	SluggingPct      float64 `parquet:"slugging_pct"`
	OPS              float64 `parquet:"ops"`
	WOBA             float64 `parquet:"woba"`
	WAR              float64 `parquet:"war"`
}

// PitchingRecord is the Parquet schema for daily pitching lines.
type PitchingRecord struct {
	Date            string  `parquet:"date"`
	PlayerID        string  `parquet:"player_id"`
	PlayerName      string  `parquet:"player_name"`
	Team            string  `parquet:"team"`
	Games           int32   `parquet:"games"`
	GamesStarted    int32   `parquet:"games_started"`
	InningsPitched  float64 `parquet:"innings_pitched"`
	HitsAllowed     int32   `parquet:"hits_allowed"`
	RunsAllowed     int32   `parquet:"runs_allowed"`
	EarnedRuns      int32   `parquet:"earned_runs"`
	HomeRunsAllowed int32   `parquet:"home_runs_allowed"`
	WalksAllowed    int32   `parquet:"walks_allowed"`
	Strikeouts      int32   `parquet:"strikeouts"`
	ERA             float64 `parquet:"era"`
	WHIP            float64 `parquet:"whip"`
	FIP             float64 `parquet:"fip"`
	WAR             float64 `parquet:"war"`
	Saves           int32   `parquet:"saves"`
	Holds           int32   `parquet:"holds"`
}

// PitchRecord is the Parquet schema for pitch events. Absent batted-ball
// values are written as zero with has_launch/has_hit_location cleared.
type PitchRecord struct {
	Date             string  `parquet:"date"`
	GamePK           int64   `parquet:"game_pk"`
	PitcherID        int64   `parquet:"pitcher_id"`
	BatterID         int64   `parquet:"batter_id"`
	PitcherName      string  `parquet:"pitcher_name"`
	BatterName       string  `parquet:"batter_name"`
	PitchType        string  `parquet:"pitch_type"`
	ReleaseSpeed     float64 `parquet:"release_speed"`
	ReleaseSpinRate  float64 `parquet:"release_spin_rate"`
	ReleaseExtension float64 `parquet:"release_extension"`
	PlateX           float64 `parquet:"plate_x"`
	PlateZ           float64 `parquet:"plate_z"`
	Zone             int32   `parquet:"zone"`
	Balls            int32   `parquet:"balls"`
	Strikes          int32   `parquet:"strikes"`
	Stand            string  `parquet:"stand"`
	PThrows          string  `parquet:"p_throws"`
	Events           string  `parquet:"events"`
	Description      string  `parquet:"description"`
	HasLaunch        bool    `parquet:"has_launch"`
	LaunchSpeed      float64 `parquet:"launch_speed"`
	LaunchAngle      float64 `parquet:"launch_angle"`
	HitDistance      float64 `parquet:"hit_distance"`
	HasHitLocation   bool    `parquet:"has_hit_location"`
	HcX              float64 `parquet:"hc_x"`
	HcY              float64 `parquet:"hc_y"`
	Barrel           bool    `parquet:"barrel"`
}

// ---------------------------------------------------------------------------
// Snapshot writing
// ---------------------------------------------------------------------------

// Snapshot writes the given rows to per-table Parquet files keyed by the
// snapshot date. Existing snapshots for the same date are overwritten.
func (a *ParquetArchive) Snapshot(_ context.Context, date string, hitting []domain.HittingLine, pitching []domain.PitchingLine, pitches []domain.PitchEvent) error {
	hitRecs := make([]HittingRecord, 0, len(hitting))
	for _, l := range hitting {
		hitRecs = append(hitRecs, HittingRecord{
			Date: l.Date, PlayerID: l.PlayerID, PlayerName: l.PlayerName, Team: l.Team,
			Games: int32(l.Games), PlateAppearances: int32(l.PlateAppearances),
			AtBats: int32(l.AtBats), Runs: int32(l.Runs), Hits: int32(l.Hits),
			Doubles: int32(l.Doubles), Triples: int32(l.Triples),
			HomeRuns: int32(l.HomeRuns), RBI: int32(l.RBI),
			StolenBases: int32(l.StolenBases), CaughtStealing: int32(l.CaughtStealing),
			Walks: int32(l.Walks), Strikeouts: int32(l.Strikeouts),
			BattingAvg: l.BattingAvg, OnBasePct: l.OnBasePct,
			SluggingPct: l.SluggingPct, OPS: l.OPS, WOBA: l.WOBA, WAR: l.WAR,
		})
	}
	if err := writeParquetFile(a.tablePath("daily_hitting", date), hitRecs); err != nil {
		return fmt.Errorf("archiving daily_hitting: %w", err)
	}

	pitRecs := make([]PitchingRecord, 0, len(pitching))
	for _, l := range pitching {
		pitRecs = append(pitRecs, PitchingRecord{
			Date: l.Date, PlayerID: l.PlayerID, PlayerName: l.PlayerName, Team: l.Team,
			Games: int32(l.Games), GamesStarted: int32(l.GamesStarted),
			InningsPitched: l.InningsPitched, HitsAllowed: int32(l.HitsAllowed),
			RunsAllowed: int32(l.RunsAllowed), EarnedRuns: int32(l.EarnedRuns),
			HomeRunsAllowed: int32(l.HomeRunsAllowed), WalksAllowed: int32(l.WalksAllowed),
			Strikeouts: int32(l.Strikeouts), ERA: l.ERA, WHIP: l.WHIP, FIP: l.FIP,
			WAR: l.WAR, Saves: int32(l.Saves), Holds: int32(l.Holds),
		})
	}
	if err := writeParquetFile(a.tablePath("daily_pitching", date), pitRecs); err != nil {
		return fmt.Errorf("archiving daily_pitching: %w", err)
	}

	pitchRecs := make([]PitchRecord, 0, len(pitches))
	for _, e := range pitches {
		pitchRecs = append(pitchRecs, PitchRecord{
			Date: e.Date, GamePK: e.GamePK, PitcherID: e.PitcherID, BatterID: e.BatterID,
			PitcherName: e.PitcherName, BatterName: e.BatterName, PitchType: e.PitchType,
			ReleaseSpeed: e.ReleaseSpeed, ReleaseSpinRate: e.ReleaseSpinRate,
			ReleaseExtension: e.ReleaseExtension, PlateX: e.PlateX, PlateZ: e.PlateZ,
			Zone: int32(e.Zone), Balls: int32(e.Balls), Strikes: int32(e.Strikes),
			Stand: e.Stand, PThrows: e.PThrows, Events: e.Events, Description: e.Description,
			HasLaunch: e.HasLaunch, LaunchSpeed: e.LaunchSpeed, LaunchAngle: e.LaunchAngle,
			HitDistance: e.HitDistance, HasHitLocation: e.HasHitLocation,
			HcX: e.HcX, HcY: e.HcY, Barrel: e.Barrel,
		})
	}
	if err := writeParquetFile(a.tablePath("pitch_events", date), pitchRecs); err != nil {
		return fmt.Errorf("archiving pitch_events: %w", err)
	}

	return nil
}

// ReadHittingSnapshot reads back an archived hitting snapshot.
func (a *ParquetArchive) ReadHittingSnapshot(date string) ([]HittingRecord, error) {
	return readParquetFile[HittingRecord](a.tablePath("daily_hitting", date))
}

// ReadPitchSnapshot reads back an archived pitch-event snapshot.
func (a *ParquetArchive) ReadPitchSnapshot(date string) ([]PitchRecord, error) {
	return readParquetFile[PitchRecord](a.tablePath("pitch_events", date))
}

// ListSnapshots returns the snapshot dates available for a table, sorted.
func (a *ParquetArchive) ListSnapshots(table string) ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(a.ArchiveDir, table))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var dates []string
	for _, e := range entries {
		if name, ok := strings.CutSuffix(e.Name(), ".parquet"); ok {
			dates = append(dates, name)
		}
	}
	sort.Strings(dates)
	return dates, nil
}

// tablePath returns the filesystem path for a table snapshot.
// Layout: <ArchiveDir>/<table>/<YYYY-MM-DD>.parquet
func (a *ParquetArchive) tablePath(table, date string) string {
	return filepath.Join(a.ArchiveDir, table, date+".parquet")
}

// ---------------------------------------------------------------------------
// Parquet file helpers
// ---------------------------------------------------------------------------

func writeParquetFile[T any](path string, records []T) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return parquet.WriteFile(path, records)
}

func readParquetFile[T any](path string) ([]T, error) {
	rows, err := parquet.ReadFile[T](path)
	if err != nil {
		return nil, err
	}
	return rows, nil
}
