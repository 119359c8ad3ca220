// Package domain defines the core data types shared across the system:
// daily stat lines, pitch-by-pitch events, update log records, and player
// classification.
package domain

import "time"

// DateLayout is the canonical date format for all stat rows. Dates are
// stored as YYYY-MM-DD text, which compares correctly with < and >.
const DateLayout = "2006-01-02"

// DateOf formats t as a canonical stat date.
func DateOf(t time.Time) string {
	return t.Format(DateLayout)
}

// RetentionDays is the rolling-window size: rows older than this many days
// are removed by the retention pass.
const RetentionDays = 45

// ---------------------------------------------------------------------------
// Daily stat lines
// ---------------------------------------------------------------------------

// HittingLine is one player's hitting stat line for a single date.
// Unique on (Date, PlayerName).
type HittingLine struct {
	Date             string  `json:"date"`
	PlayerID         string  `json:"player_id"`
	PlayerName       string  `json:"player_name"`
	Team             string  `json:"team"`
	Games            int     `json:"games"`
	PlateAppearances int     `json:"plate_appearances"`
	AtBats           int     `json:"at_bats"`
	Runs             int     `json:"runs"`
	Hits             int     `json:"hits"`
	Doubles          int     `json:"doubles"`
	Triples          int     `json:"triples"`
	HomeRuns         int     `json:"home_runs"`
	RBI              int     `json:"rbi"`
	StolenBases      int     `json:"stolen_bases"`
	CaughtStealing   int     `json:"caught_stealing"`
	Walks            int     `json:"walks"`
	Strikeouts       int     `json:"strikeouts"`
	BattingAvg       float64 `json:"batting_avg"`
	OnBasePct        float64 `json:"on_base_pct"`
	SluggingPct      float64 `json:"slugging_pct"`
	OPS              float64 `json:"ops"`
	WOBA             float64 `json:"woba"`
	WAR              float64 `json:"war"`
}

// PitchingLine is one player's pitching stat line for a single date.
// Unique on (Date, PlayerName).
type PitchingLine struct {
	Date            string  `json:"date"`
	PlayerID        string  `json:"player_id"`
	PlayerName      string  `json:"player_name"`
	Team            string  `json:"team"`
	Games           int     `json:"games"`
	GamesStarted    int     `json:"games_started"`
	InningsPitched  float64 `json:"innings_pitched"`
	HitsAllowed     int     `json:"hits_allowed"`
	RunsAllowed     int     `json:"runs_allowed"`
	EarnedRuns      int     `json:"earned_runs"`
	HomeRunsAllowed int     `json:"home_runs_allowed"`
	WalksAllowed    int     `json:"walks_allowed"`
	Strikeouts      int     `json:"strikeouts"`
	ERA             float64 `json:"era"`
	WHIP            float64 `json:"whip"`
	FIP             float64 `json:"fip"`
	WAR             float64 `json:"war"`
	Saves           int     `json:"saves"`
	Holds           int     `json:"holds"`
}

// ---------------------------------------------------------------------------
// Pitch events
// ---------------------------------------------------------------------------

// PitchEvent is one tracked pitch from the Statcast feed.
// Unique on (Date, GamePK, PitcherID, BatterID, Balls, Strikes, PitchType).
type PitchEvent struct {
	Date        string
	GamePK      int64
	PitcherID   int64
	BatterID    int64
	PitcherName string
	BatterName  string

	PitchType        string
	ReleaseSpeed     float64
	ReleaseSpinRate  float64
	ReleaseExtension float64
	ReleasePosX      float64
	ReleasePosZ      float64
	PfxX             float64
	PfxZ             float64
	PlateX           float64
	PlateZ           float64
	SzTop            float64
	SzBot            float64
	Zone             int
	Balls            int
	Strikes          int
	Stand            string
	PThrows          string

	Events      string
	Description string
	Type        string
	BBType      string

	// Batted-ball data is absent for non-contact pitches; HasLaunch marks
	// rows where LaunchSpeed/LaunchAngle carry real values.
	HasLaunch   bool
	LaunchSpeed float64
	LaunchAngle float64
	HitDistance float64

	// Hit coordinates for spray charts; absent on most rows.
	HasHitLocation bool
	HcX            float64
	HcY            float64

	HomeTeam string
	AwayTeam string

	Barrel bool
}

// IsBarrel reports whether a batted ball qualifies as a barrel under the
// simplified rule used throughout: EV >= 98 mph at a 26-30 degree angle.
func IsBarrel(launchSpeed, launchAngle float64) bool {
	return launchSpeed >= 98 && launchAngle >= 26 && launchAngle <= 30
}

// ---------------------------------------------------------------------------
// Update log
// ---------------------------------------------------------------------------

// Update statuses recorded in the update log.
const (
	UpdateSuccess = "success"
)

// UpdateRecord is one ingestion run for a single data date. Refetching the
// same date replaces the previous record.
type UpdateRecord struct {
	UpdateTime   time.Time
	DataDate     string
	HittingRows  int
	PitchingRows int
	PitchRows    int
	Status       string
}

// ---------------------------------------------------------------------------
// Player classification
// ---------------------------------------------------------------------------

// PlayerClass categorizes a player by which stat tables they appear in.
type PlayerClass string

const (
	ClassHitter  PlayerClass = "hitter"
	ClassPitcher PlayerClass = "pitcher"
	ClassTwoWay  PlayerClass = "two-way"
)

// PlayerSummary describes one player found in the store.
type PlayerSummary struct {
	Name       string
	Class      PlayerClass
	StatDays   int // distinct dates with a hitting or pitching line
	PitchCount int // pitch events as batter or pitcher
}

// PlayerData bundles everything stored for one player inside the retention
// window.
type PlayerData struct {
	Name     string
	Hitting  []HittingLine
	Pitching []PitchingLine
	Pitches  []PitchEvent
}

// Class returns the player classification implied by the data present.
func (d *PlayerData) Class() PlayerClass {
	switch {
	case len(d.Hitting) > 0 && len(d.Pitching) > 0:
		return ClassTwoWay
	case len(d.Pitching) > 0:
		return ClassPitcher
	default:
		return ClassHitter
	}
}
