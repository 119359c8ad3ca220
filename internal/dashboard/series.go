package dashboard

import (
	"fmt"
	"sort"
	"strings"

	"dugout/internal/domain"
)

// DatedValue is one point in a date-keyed series.
type DatedValue struct {
	Date  string
	Value float64
}

// NamedValue is one labeled aggregate (per pitch type, per count, ...).
type NamedValue struct {
	Name  string
	Value float64
}

// NamedCount is one labeled occurrence count.
type NamedCount struct {
	Name  string
	Count int
}

// ---------------------------------------------------------------------------
// Hitter series
// ---------------------------------------------------------------------------

// BattedBall is one ball in play with launch data, for the EV/LA scatter.
type BattedBall struct {
	LaunchSpeed float64
	LaunchAngle float64
	Event       string
	Barrel      bool
}

// HitterSummary holds the headline indicators for a hitter page.
type HitterSummary struct {
	AvgExitVelo float64
	MaxExitVelo float64
	BarrelRate  float64 // percent of batted balls
	BattedBalls int
}

// BattedBalls extracts balls in play (rows with launch data) where the
// player was the batter.
func BattedBalls(name string, pitches []domain.PitchEvent) []BattedBall {
	var balls []BattedBall
	for _, e := range pitches {
		if e.BatterName != name || !e.HasLaunch {
			continue
		}
		balls = append(balls, BattedBall{
			LaunchSpeed: e.LaunchSpeed,
			LaunchAngle: e.LaunchAngle,
			Event:       e.Events,
			Barrel:      e.Barrel,
		})
	}
	return balls
}

// batterEvents filters pitch events where the player batted.
func batterEvents(name string, pitches []domain.PitchEvent) []domain.PitchEvent {
	var out []domain.PitchEvent
	for _, e := range pitches {
		if e.BatterName == name {
			out = append(out, e)
		}
	}
	return out
}

// pitcherEvents filters pitch events where the player pitched.
func pitcherEvents(name string, pitches []domain.PitchEvent) []domain.PitchEvent {
	var out []domain.PitchEvent
	for _, e := range pitches {
		if e.PitcherName == name {
			out = append(out, e)
		}
	}
	return out
}

// DailyMeanEV computes the mean exit velocity per date for a batter,
// ordered by date.
func DailyMeanEV(name string, pitches []domain.PitchEvent) []DatedValue {
	return dailyAgg(batterEvents(name, pitches), func(e domain.PitchEvent) (float64, bool) {
		return e.LaunchSpeed, e.HasLaunch
	}, meanAgg)
}

// DailyMaxEV computes the max exit velocity per date for a batter.
func DailyMaxEV(name string, pitches []domain.PitchEvent) []DatedValue {
	return dailyAgg(batterEvents(name, pitches), func(e domain.PitchEvent) (float64, bool) {
		return e.LaunchSpeed, e.HasLaunch
	}, maxAgg)
}

// RollingMean smooths a dated series with a trailing window of up to n
// points (fewer at the start, matching a min-periods-of-one rolling mean).
func RollingMean(series []DatedValue, n int) []DatedValue {
	if n < 1 {
		n = 1
	}
	out := make([]DatedValue, len(series))
	for i := range series {
		lo := i - n + 1
		if lo < 0 {
			lo = 0
		}
		var sum float64
		for j := lo; j <= i; j++ {
			sum += series[j].Value
		}
		out[i] = DatedValue{Date: series[i].Date, Value: sum / float64(i-lo+1)}
	}
	return out
}

// EVByPitchType computes a batter's mean exit velocity per pitch type.
func EVByPitchType(name string, pitches []domain.PitchEvent) []NamedValue {
	return namedMean(batterEvents(name, pitches),
		func(e domain.PitchEvent) string { return e.PitchType },
		func(e domain.PitchEvent) (float64, bool) { return e.LaunchSpeed, e.HasLaunch })
}

// EVByCount computes a batter's mean exit velocity per balls-strikes count,
// labeled "B-S" and ordered by count.
func EVByCount(name string, pitches []domain.PitchEvent) []NamedValue {
	return namedMean(batterEvents(name, pitches),
		func(e domain.PitchEvent) string { return fmt.Sprintf("%d-%d", e.Balls, e.Strikes) },
		func(e domain.PitchEvent) (float64, bool) { return e.LaunchSpeed, e.HasLaunch })
}

// EVByPitcherHand computes a batter's mean exit velocity against left and
// right handed pitchers.
func EVByPitcherHand(name string, pitches []domain.PitchEvent) []NamedValue {
	return namedMean(batterEvents(name, pitches),
		func(e domain.PitchEvent) string { return e.PThrows },
		func(e domain.PitchEvent) (float64, bool) { return e.LaunchSpeed, e.HasLaunch })
}

// ZoneGrid computes mean exit velocity for strike zones 1-9 as a 3x3 grid
// (row 0 = zones 1-3). Cells with no data are zero.
func ZoneGrid(name string, pitches []domain.PitchEvent) [3][3]float64 {
	var sum, count [3][3]float64
	for _, e := range batterEvents(name, pitches) {
		if !e.HasLaunch || e.Zone < 1 || e.Zone > 9 {
			continue
		}
		r := (e.Zone - 1) / 3
		c := (e.Zone - 1) % 3
		sum[r][c] += e.LaunchSpeed
		count[r][c]++
	}
	var grid [3][3]float64
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			if count[r][c] > 0 {
				grid[r][c] = sum[r][c] / count[r][c]
			}
		}
	}
	return grid
}

// SummarizeHitter computes the headline indicators for a hitter.
func SummarizeHitter(balls []BattedBall) HitterSummary {
	var s HitterSummary
	if len(balls) == 0 {
		return s
	}
	var sum float64
	var barrels int
	for _, b := range balls {
		sum += b.LaunchSpeed
		if b.LaunchSpeed > s.MaxExitVelo {
			s.MaxExitVelo = b.LaunchSpeed
		}
		if b.Barrel {
			barrels++
		}
	}
	s.BattedBalls = len(balls)
	s.AvgExitVelo = sum / float64(len(balls))
	s.BarrelRate = float64(barrels) / float64(len(balls)) * 100
	return s
}

// ---------------------------------------------------------------------------
// Pitcher series
// ---------------------------------------------------------------------------

// PitcherSummary holds the headline indicators for a pitcher page.
type PitcherSummary struct {
	AvgVelocity float64
	AvgSpinRate float64
	WhiffRate   float64 // percent of pitches drawing a swinging strike
	Pitches     int
}

// VeloByPitchType groups a pitcher's release speeds by pitch type, sorted
// by usage (most thrown first), capped at the top n types.
func VeloByPitchType(name string, pitches []domain.PitchEvent, n int) map[string][]float64 {
	events := pitcherEvents(name, pitches)
	groups := make(map[string][]float64)
	for _, e := range events {
		if e.PitchType == "" || e.ReleaseSpeed == 0 {
			continue
		}
		groups[e.PitchType] = append(groups[e.PitchType], e.ReleaseSpeed)
	}
	for _, t := range typesByUsage(groups)[min(n, len(groups)):] {
		delete(groups, t)
	}
	return groups
}

// typesByUsage returns pitch types sorted by descending sample count.
func typesByUsage(groups map[string][]float64) []string {
	types := make([]string, 0, len(groups))
	for t := range groups {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool {
		if len(groups[types[i]]) != len(groups[types[j]]) {
			return len(groups[types[i]]) > len(groups[types[j]])
		}
		return types[i] < types[j]
	})
	return types
}

// PitchUsage counts a pitcher's pitches per type, most used first.
func PitchUsage(name string, pitches []domain.PitchEvent) []NamedCount {
	counts := make(map[string]int)
	for _, e := range pitcherEvents(name, pitches) {
		if e.PitchType != "" {
			counts[e.PitchType]++
		}
	}
	out := make([]NamedCount, 0, len(counts))
	for t, n := range counts {
		out = append(out, NamedCount{Name: t, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// DailyVeloByType computes a pitcher's mean velocity per date for each
// pitch type, keeping the top n types by usage.
func DailyVeloByType(name string, pitches []domain.PitchEvent, n int) map[string][]DatedValue {
	events := pitcherEvents(name, pitches)
	byType := make(map[string][]domain.PitchEvent)
	for _, e := range events {
		if e.PitchType != "" && e.ReleaseSpeed > 0 {
			byType[e.PitchType] = append(byType[e.PitchType], e)
		}
	}

	usage := make(map[string][]float64, len(byType))
	for t, es := range byType {
		usage[t] = make([]float64, len(es))
	}
	keep := typesByUsage(usage)
	if len(keep) > n {
		keep = keep[:n]
	}

	out := make(map[string][]DatedValue, len(keep))
	for _, t := range keep {
		out[t] = dailyAgg(byType[t], func(e domain.PitchEvent) (float64, bool) {
			return e.ReleaseSpeed, true
		}, meanAgg)
	}
	return out
}

// VeloSpinPoint is one pitch in the velocity/spin scatter.
type VeloSpinPoint struct {
	Velocity  float64
	SpinRate  float64
	PitchType string
}

// VeloSpin extracts velocity/spin pairs for a pitcher.
func VeloSpin(name string, pitches []domain.PitchEvent) []VeloSpinPoint {
	var points []VeloSpinPoint
	for _, e := range pitcherEvents(name, pitches) {
		if e.ReleaseSpeed == 0 || e.ReleaseSpinRate == 0 {
			continue
		}
		points = append(points, VeloSpinPoint{
			Velocity:  e.ReleaseSpeed,
			SpinRate:  e.ReleaseSpinRate,
			PitchType: e.PitchType,
		})
	}
	return points
}

// LocationBins is the plate-location histogram: x spans -1.5..1.5 ft and z
// spans 0..4 ft, each split into 9 bins. Cell [zi][xi] counts pitches.
type LocationBins [9][9]int

// LocationHeatmap bins a pitcher's plate locations.
func LocationHeatmap(name string, pitches []domain.PitchEvent) LocationBins {
	var bins LocationBins
	for _, e := range pitcherEvents(name, pitches) {
		if e.PlateX == 0 && e.PlateZ == 0 {
			continue
		}
		xi := int((e.PlateX + 1.5) / 3.0 * 9)
		zi := int(e.PlateZ / 4.0 * 9)
		if xi < 0 || xi >= 9 || zi < 0 || zi >= 9 {
			continue
		}
		bins[zi][xi]++
	}
	return bins
}

// WhiffRateByType computes the percentage of each pitch type drawing a
// swinging strike.
func WhiffRateByType(name string, pitches []domain.PitchEvent) []NamedValue {
	whiffs := make(map[string]int)
	totals := make(map[string]int)
	for _, e := range pitcherEvents(name, pitches) {
		if e.PitchType == "" {
			continue
		}
		totals[e.PitchType]++
		if strings.Contains(e.Description, "swinging_strike") {
			whiffs[e.PitchType]++
		}
	}

	out := make([]NamedValue, 0, len(totals))
	for t, total := range totals {
		out = append(out, NamedValue{Name: t, Value: float64(whiffs[t]) / float64(total) * 100})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// SummarizePitcher computes the headline indicators for a pitcher.
func SummarizePitcher(name string, pitches []domain.PitchEvent) PitcherSummary {
	events := pitcherEvents(name, pitches)
	var s PitcherSummary
	if len(events) == 0 {
		return s
	}

	var veloSum, spinSum float64
	var veloN, spinN, whiffs int
	for _, e := range events {
		if e.ReleaseSpeed > 0 {
			veloSum += e.ReleaseSpeed
			veloN++
		}
		if e.ReleaseSpinRate > 0 {
			spinSum += e.ReleaseSpinRate
			spinN++
		}
		if strings.Contains(e.Description, "swinging_strike") {
			whiffs++
		}
	}

	s.Pitches = len(events)
	if veloN > 0 {
		s.AvgVelocity = veloSum / float64(veloN)
	}
	if spinN > 0 {
		s.AvgSpinRate = spinSum / float64(spinN)
	}
	s.WhiffRate = float64(whiffs) / float64(len(events)) * 100
	return s
}

// ---------------------------------------------------------------------------
// Aggregation helpers
// ---------------------------------------------------------------------------

type aggFunc func(values []float64) float64

func meanAgg(values []float64) float64 {
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func maxAgg(values []float64) float64 {
	m := values[0]
	for _, v := range values[1:] {
		if v > m {
			m = v
		}
	}
	return m
}

// dailyAgg groups event values by date and reduces each group, returning a
// date-ordered series.
func dailyAgg(events []domain.PitchEvent, value func(domain.PitchEvent) (float64, bool), agg aggFunc) []DatedValue {
	groups := make(map[string][]float64)
	for _, e := range events {
		if v, ok := value(e); ok {
			groups[e.Date] = append(groups[e.Date], v)
		}
	}

	out := make([]DatedValue, 0, len(groups))
	for date, values := range groups {
		out = append(out, DatedValue{Date: date, Value: agg(values)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

// namedMean groups event values by a label and averages each group,
// returning label-sorted results.
func namedMean(events []domain.PitchEvent, label func(domain.PitchEvent) string, value func(domain.PitchEvent) (float64, bool)) []NamedValue {
	groups := make(map[string][]float64)
	for _, e := range events {
		name := label(e)
		if name == "" {
			continue
		}
		if v, ok := value(e); ok {
			groups[name] = append(groups[name], v)
		}
	}

	out := make([]NamedValue, 0, len(groups))
	for name, values := range groups {
		out = append(out, NamedValue{Name: name, Value: meanAgg(values)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
