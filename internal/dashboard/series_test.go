package dashboard

import (
	"math"
	"testing"

	"dugout/internal/domain"
)

func battedPitch(date, batter string, speed, angle float64) domain.PitchEvent {
	return domain.PitchEvent{
		Date:        date,
		BatterName:  batter,
		PitcherName: "Some Pitcher",
		PitchType:   "FF",
		HasLaunch:   true,
		LaunchSpeed: speed,
		LaunchAngle: angle,
		Barrel:      domain.IsBarrel(speed, angle),
	}
}

func thrownPitch(date, pitcher, pitchType string, velo, spin float64) domain.PitchEvent {
	return domain.PitchEvent{
		Date:            date,
		PitcherName:     pitcher,
		BatterName:      "Some Batter",
		PitchType:       pitchType,
		ReleaseSpeed:    velo,
		ReleaseSpinRate: spin,
	}
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestBattedBalls(t *testing.T) {
	pitches := []domain.PitchEvent{
		battedPitch("2026-08-01", "Test Player", 102, 28),
		battedPitch("2026-08-01", "Other Player", 95, 10),
		{Date: "2026-08-01", BatterName: "Test Player", Description: "swinging_strike"},
	}

	balls := BattedBalls("Test Player", pitches)
	if len(balls) != 1 {
		t.Fatalf("got %d batted balls, want 1", len(balls))
	}
	if !balls[0].Barrel {
		t.Error("102 mph at 28 degrees should be a barrel")
	}
}

func TestSummarizeHitter(t *testing.T) {
	balls := []BattedBall{
		{LaunchSpeed: 100, LaunchAngle: 28, Barrel: true},
		{LaunchSpeed: 90, LaunchAngle: 10},
		{LaunchSpeed: 80, LaunchAngle: 50},
		{LaunchSpeed: 110, LaunchAngle: 27, Barrel: true},
	}

	s := SummarizeHitter(balls)
	if !almostEqual(s.AvgExitVelo, 95) {
		t.Errorf("AvgExitVelo = %v, want 95", s.AvgExitVelo)
	}
	if s.MaxExitVelo != 110 {
		t.Errorf("MaxExitVelo = %v, want 110", s.MaxExitVelo)
	}
	if !almostEqual(s.BarrelRate, 50) {
		t.Errorf("BarrelRate = %v, want 50", s.BarrelRate)
	}
	if s.BattedBalls != 4 {
		t.Errorf("BattedBalls = %d, want 4", s.BattedBalls)
	}
}

func TestDailyMeanEV(t *testing.T) {
	pitches := []domain.PitchEvent{
		battedPitch("2026-08-02", "Test Player", 100, 20),
		battedPitch("2026-08-01", "Test Player", 90, 15),
		battedPitch("2026-08-01", "Test Player", 110, 25),
	}

	series := DailyMeanEV("Test Player", pitches)
	if len(series) != 2 {
		t.Fatalf("got %d points, want 2", len(series))
	}
	if series[0].Date != "2026-08-01" || !almostEqual(series[0].Value, 100) {
		t.Errorf("first point = %+v, want 2026-08-01 / 100", series[0])
	}
	if series[1].Date != "2026-08-02" || !almostEqual(series[1].Value, 100) {
		t.Errorf("second point = %+v, want 2026-08-02 / 100", series[1])
	}

	peak := DailyMaxEV("Test Player", pitches)
	if !almostEqual(peak[0].Value, 110) {
		t.Errorf("max for first day = %v, want 110", peak[0].Value)
	}
}

func TestRollingMean(t *testing.T) {
	series := []DatedValue{
		{Date: "2026-08-01", Value: 10},
		{Date: "2026-08-02", Value: 20},
		{Date: "2026-08-03", Value: 30},
		{Date: "2026-08-04", Value: 40},
	}

	out := RollingMean(series, 3)
	want := []float64{10, 15, 20, 30}
	for i, w := range want {
		if !almostEqual(out[i].Value, w) {
			t.Errorf("rolling[%d] = %v, want %v", i, out[i].Value, w)
		}
	}
	if out[3].Date != "2026-08-04" {
		t.Errorf("dates should be preserved, got %s", out[3].Date)
	}
}

func TestZoneGrid(t *testing.T) {
	pitches := []domain.PitchEvent{
		battedPitch("2026-08-01", "Test Player", 100, 20),
		battedPitch("2026-08-01", "Test Player", 90, 20),
		battedPitch("2026-08-01", "Test Player", 80, 20),
	}
	pitches[0].Zone = 1
	pitches[1].Zone = 1
	pitches[2].Zone = 5
	// Out-of-zone pitches are ignored.
	pitches = append(pitches, battedPitch("2026-08-01", "Test Player", 120, 20))
	pitches[3].Zone = 11

	grid := ZoneGrid("Test Player", pitches)
	if !almostEqual(grid[0][0], 95) {
		t.Errorf("zone 1 = %v, want 95", grid[0][0])
	}
	if !almostEqual(grid[1][1], 80) {
		t.Errorf("zone 5 = %v, want 80", grid[1][1])
	}
	if grid[2][2] != 0 {
		t.Errorf("empty zone 9 = %v, want 0", grid[2][2])
	}
}

func TestEVByCount(t *testing.T) {
	p1 := battedPitch("2026-08-01", "Test Player", 100, 20)
	p1.Balls, p1.Strikes = 3, 2
	p2 := battedPitch("2026-08-01", "Test Player", 90, 20)
	p2.Balls, p2.Strikes = 0, 0

	out := EVByCount("Test Player", []domain.PitchEvent{p1, p2})
	if len(out) != 2 {
		t.Fatalf("got %d counts, want 2", len(out))
	}
	if out[0].Name != "0-0" || !almostEqual(out[0].Value, 90) {
		t.Errorf("first = %+v, want 0-0 / 90", out[0])
	}
	if out[1].Name != "3-2" || !almostEqual(out[1].Value, 100) {
		t.Errorf("second = %+v, want 3-2 / 100", out[1])
	}
}

func TestPitchUsage(t *testing.T) {
	pitches := []domain.PitchEvent{
		thrownPitch("2026-08-01", "Some Pitcher", "FF", 96, 2300),
		thrownPitch("2026-08-01", "Some Pitcher", "FF", 97, 2350),
		thrownPitch("2026-08-01", "Some Pitcher", "SL", 86, 2600),
		thrownPitch("2026-08-01", "Other Pitcher", "CH", 84, 1700),
	}

	usage := PitchUsage("Some Pitcher", pitches)
	if len(usage) != 2 {
		t.Fatalf("got %d types, want 2", len(usage))
	}
	if usage[0].Name != "FF" || usage[0].Count != 2 {
		t.Errorf("top usage = %+v, want FF x2", usage[0])
	}
	if usage[1].Name != "SL" || usage[1].Count != 1 {
		t.Errorf("second usage = %+v, want SL x1", usage[1])
	}
}

func TestVeloByPitchTypeCap(t *testing.T) {
	var pitches []domain.PitchEvent
	types := []string{"FF", "FF", "FF", "SL", "SL", "CH"}
	for _, pt := range types {
		pitches = append(pitches, thrownPitch("2026-08-01", "Some Pitcher", pt, 90, 2200))
	}

	groups := VeloByPitchType("Some Pitcher", pitches, 2)
	if len(groups) != 2 {
		t.Fatalf("got %d types, want 2 (capped)", len(groups))
	}
	if _, ok := groups["FF"]; !ok {
		t.Error("FF should survive the usage cap")
	}
	if _, ok := groups["CH"]; ok {
		t.Error("CH is least used and should be dropped")
	}
}

func TestWhiffRateByType(t *testing.T) {
	whiff := thrownPitch("2026-08-01", "Some Pitcher", "SL", 86, 2600)
	whiff.Description = "swinging_strike"
	foul := thrownPitch("2026-08-01", "Some Pitcher", "SL", 85, 2580)
	foul.Description = "foul"
	blocked := thrownPitch("2026-08-01", "Some Pitcher", "FF", 96, 2300)
	blocked.Description = "swinging_strike_blocked"

	out := WhiffRateByType("Some Pitcher", []domain.PitchEvent{whiff, foul, blocked})
	if len(out) != 2 {
		t.Fatalf("got %d types, want 2", len(out))
	}
	if out[0].Name != "FF" || !almostEqual(out[0].Value, 100) {
		t.Errorf("FF whiff rate = %+v, want 100 (blocked counts)", out[0])
	}
	if out[1].Name != "SL" || !almostEqual(out[1].Value, 50) {
		t.Errorf("SL whiff rate = %+v, want 50", out[1])
	}
}

func TestLocationHeatmap(t *testing.T) {
	center := thrownPitch("2026-08-01", "Some Pitcher", "FF", 96, 2300)
	center.PlateX, center.PlateZ = 0.01, 2.0
	outside := thrownPitch("2026-08-01", "Some Pitcher", "FF", 96, 2300)
	outside.PlateX, outside.PlateZ = 3.0, 2.0 // beyond the binned area

	bins := LocationHeatmap("Some Pitcher", []domain.PitchEvent{center, outside})

	var total int
	for zi := range bins {
		for xi := range bins[zi] {
			total += bins[zi][xi]
		}
	}
	if total != 1 {
		t.Fatalf("binned %d pitches, want 1 (outlier excluded)", total)
	}
	if bins[4][4] != 1 {
		t.Errorf("center pitch should land in the middle cell, bins[4][4] = %d", bins[4][4])
	}
}

func TestSummarizePitcher(t *testing.T) {
	p1 := thrownPitch("2026-08-01", "Some Pitcher", "FF", 96, 2300)
	p2 := thrownPitch("2026-08-01", "Some Pitcher", "SL", 86, 2500)
	p2.Description = "swinging_strike"

	s := SummarizePitcher("Some Pitcher", []domain.PitchEvent{p1, p2})
	if !almostEqual(s.AvgVelocity, 91) {
		t.Errorf("AvgVelocity = %v, want 91", s.AvgVelocity)
	}
	if !almostEqual(s.AvgSpinRate, 2400) {
		t.Errorf("AvgSpinRate = %v, want 2400", s.AvgSpinRate)
	}
	if !almostEqual(s.WhiffRate, 50) {
		t.Errorf("WhiffRate = %v, want 50", s.WhiffRate)
	}
	if s.Pitches != 2 {
		t.Errorf("Pitches = %d, want 2", s.Pitches)
	}
}
