package dashboard

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"dugout/internal/domain"
)

// topPitchTypes caps the pitch-type breakdowns so rarely thrown pitches do
// not clutter the pitcher charts.
const topPitchTypes = 5

// Render writes a self-contained HTML dashboard for the player into
// outputDir and returns the file path. Hitters get batted-ball charts,
// pitchers get arsenal charts; two-way players get the hitting view.
func Render(data *domain.PlayerData, outputDir string) (string, error) {
	page := components.NewPage()
	page.PageTitle = data.Name + " Dashboard"
	page.SetLayout(components.PageFlexLayout)

	if data.Class() == domain.ClassPitcher {
		addPitcherCharts(page, data)
	} else {
		addHitterCharts(page, data)
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return "", fmt.Errorf("creating output dir: %w", err)
	}
	path := filepath.Join(outputDir, strings.ReplaceAll(data.Name, " ", "_")+"_dashboard.html")
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating dashboard file: %w", err)
	}
	defer f.Close()

	if err := page.Render(f); err != nil {
		return "", fmt.Errorf("rendering dashboard for %s: %w", data.Name, err)
	}
	return path, nil
}

func addHitterCharts(page *components.Page, data *domain.PlayerData) {
	name := data.Name
	balls := BattedBalls(name, data.Pitches)
	sum := SummarizeHitter(balls)

	page.AddCharts(
		evLaunchScatter(balls, sum),
		dailyEVLine(name, data.Pitches),
		namedBar("Exit Velocity by Pitch Type", "mph", EVByPitchType(name, data.Pitches)),
		namedBar("Exit Velocity by Count", "mph", EVByCount(name, data.Pitches)),
		zoneHeatmap(ZoneGrid(name, data.Pitches)),
		namedBar("Exit Velocity by Pitcher Hand", "mph", EVByPitcherHand(name, data.Pitches)),
	)
}

func addPitcherCharts(page *components.Page, data *domain.PlayerData) {
	name := data.Name
	sum := SummarizePitcher(name, data.Pitches)

	page.AddCharts(
		veloBoxPlot(name, data.Pitches, sum),
		usagePie(PitchUsage(name, data.Pitches)),
		dailyVeloLine(DailyVeloByType(name, data.Pitches, topPitchTypes)),
		veloSpinScatter(VeloSpin(name, data.Pitches)),
		locationHeatmap(LocationHeatmap(name, data.Pitches)),
		namedBar("Whiff Rate by Pitch Type", "%", WhiffRateByType(name, data.Pitches)),
	)
}

// ---------------------------------------------------------------------------
// Hitter charts
// ---------------------------------------------------------------------------

func evLaunchScatter(balls []BattedBall, sum HitterSummary) *charts.Scatter {
	sc := charts.NewScatter()
	sc.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title: "Exit Velocity vs Launch Angle",
			Subtitle: fmt.Sprintf("avg EV %.1f mph, max %.1f mph, barrel rate %.1f%% on %d batted balls",
				sum.AvgExitVelo, sum.MaxExitVelo, sum.BarrelRate, sum.BattedBalls),
		}),
		charts.WithXAxisOpts(opts.XAxis{Name: "launch angle", Type: "value"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "exit velo (mph)"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)

	var regular, barrels []opts.ScatterData
	for _, b := range balls {
		d := opts.ScatterData{Name: b.Event, Value: []interface{}{b.LaunchAngle, b.LaunchSpeed}}
		if b.Barrel {
			barrels = append(barrels, d)
		} else {
			regular = append(regular, d)
		}
	}
	sc.AddSeries("batted balls", regular)
	sc.AddSeries("barrels", barrels)
	return sc
}

func dailyEVLine(name string, pitches []domain.PitchEvent) *charts.Line {
	mean := DailyMeanEV(name, pitches)
	peak := DailyMaxEV(name, pitches)
	rolling := RollingMean(mean, 10)

	dates := make([]string, len(mean))
	meanData := make([]opts.LineData, len(mean))
	rollData := make([]opts.LineData, len(mean))
	peakData := make([]opts.LineData, len(mean))
	for i, p := range mean {
		dates[i] = p.Date
		meanData[i] = opts.LineData{Value: p.Value}
		rollData[i] = opts.LineData{Value: rolling[i].Value}
		peakData[i] = opts.LineData{Value: peak[i].Value}
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Daily Exit Velocity"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "mph"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
	)
	line.SetXAxis(dates).
		AddSeries("mean EV", meanData).
		AddSeries("rolling mean (10)", rollData).
		AddSeries("max EV", peakData)
	return line
}

func zoneHeatmap(grid [3][3]float64) *charts.HeatMap {
	xLabels := []string{"left", "middle", "right"}
	yLabels := []string{"low", "middle", "high"}

	var data []opts.HeatMapData
	var maxv float64
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			v := grid[r][c]
			if v > maxv {
				maxv = v
			}
			// Grid row 0 holds zones 1-3, the top of the zone.
			data = append(data, opts.HeatMapData{Value: [3]interface{}{c, 2 - r, v}})
		}
	}

	hm := charts.NewHeatMap()
	hm.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Exit Velocity by Zone"}),
		charts.WithXAxisOpts(opts.XAxis{Type: "category", Data: xLabels}),
		charts.WithYAxisOpts(opts.YAxis{Type: "category", Data: yLabels}),
		charts.WithVisualMapOpts(opts.VisualMap{Calculable: opts.Bool(true), Min: 0, Max: float32(maxv)}),
	)
	hm.AddSeries("zone EV", data)
	return hm
}

// ---------------------------------------------------------------------------
// Pitcher charts
// ---------------------------------------------------------------------------

func veloBoxPlot(name string, pitches []domain.PitchEvent, sum PitcherSummary) *charts.BoxPlot {
	groups := VeloByPitchType(name, pitches, topPitchTypes)
	types := typesByUsage(groups)

	data := make([]opts.BoxPlotData, len(types))
	for i, t := range types {
		data[i] = opts.BoxPlotData{Value: fiveNumber(groups[t])}
	}

	bp := charts.NewBoxPlot()
	bp.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title: "Velocity by Pitch Type",
			Subtitle: fmt.Sprintf("avg velo %.1f mph, avg spin %.0f rpm, whiff rate %.1f%% on %d pitches",
				sum.AvgVelocity, sum.AvgSpinRate, sum.WhiffRate, sum.Pitches),
		}),
		charts.WithYAxisOpts(opts.YAxis{Name: "mph"}),
	)
	bp.SetXAxis(types).AddSeries("velocity", data)
	return bp
}

// fiveNumber computes the box plot five-number summary with linear
// interpolation between order statistics.
func fiveNumber(values []float64) []float64 {
	s := append([]float64(nil), values...)
	sort.Float64s(s)
	q := func(p float64) float64 {
		pos := p * float64(len(s)-1)
		lo := int(pos)
		if lo+1 >= len(s) {
			return s[len(s)-1]
		}
		return s[lo] + (pos-float64(lo))*(s[lo+1]-s[lo])
	}
	return []float64{s[0], q(0.25), q(0.5), q(0.75), s[len(s)-1]}
}

func usagePie(usage []NamedCount) *charts.Pie {
	pie := charts.NewPie()
	pie.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Pitch Usage"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)
	data := make([]opts.PieData, len(usage))
	for i, u := range usage {
		data[i] = opts.PieData{Name: u.Name, Value: u.Count}
	}
	pie.AddSeries("usage", data)
	return pie
}

func dailyVeloLine(byType map[string][]DatedValue) *charts.Line {
	dateSet := make(map[string]struct{})
	for _, series := range byType {
		for _, p := range series {
			dateSet[p.Date] = struct{}{}
		}
	}
	dates := make([]string, 0, len(dateSet))
	for d := range dateSet {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Daily Velocity by Pitch Type"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "mph"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
	)
	line.SetXAxis(dates)

	types := make([]string, 0, len(byType))
	for t := range byType {
		types = append(types, t)
	}
	sort.Strings(types)

	for _, t := range types {
		byDate := make(map[string]float64, len(byType[t]))
		for _, p := range byType[t] {
			byDate[p.Date] = p.Value
		}
		data := make([]opts.LineData, len(dates))
		for i, d := range dates {
			if v, ok := byDate[d]; ok {
				data[i] = opts.LineData{Value: v}
			} else {
				data[i] = opts.LineData{Value: "-"} // gap marker
			}
		}
		line.AddSeries(t, data)
	}
	return line
}

func veloSpinScatter(points []VeloSpinPoint) *charts.Scatter {
	byType := make(map[string][]opts.ScatterData)
	for _, p := range points {
		byType[p.PitchType] = append(byType[p.PitchType],
			opts.ScatterData{Value: []interface{}{p.Velocity, p.SpinRate}})
	}
	types := make([]string, 0, len(byType))
	for t := range byType {
		types = append(types, t)
	}
	sort.Strings(types)

	sc := charts.NewScatter()
	sc.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Velocity vs Spin Rate"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "mph", Type: "value"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "rpm"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
	)
	for _, t := range types {
		sc.AddSeries(t, byType[t])
	}
	return sc
}

func locationHeatmap(bins LocationBins) *charts.HeatMap {
	xLabels := make([]string, 9)
	zLabels := make([]string, 9)
	for i := 0; i < 9; i++ {
		xLabels[i] = fmt.Sprintf("%.1f", -1.5+(float64(i)+0.5)/3.0)
		zLabels[i] = fmt.Sprintf("%.1f", (float64(i)+0.5)*4.0/9)
	}

	var data []opts.HeatMapData
	var maxv int
	for zi := 0; zi < 9; zi++ {
		for xi := 0; xi < 9; xi++ {
			n := bins[zi][xi]
			if n > maxv {
				maxv = n
			}
			data = append(data, opts.HeatMapData{Value: [3]interface{}{xi, zi, n}})
		}
	}

	hm := charts.NewHeatMap()
	hm.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Pitch Location", Subtitle: "catcher's view, feet from plate center"}),
		charts.WithXAxisOpts(opts.XAxis{Type: "category", Data: xLabels}),
		charts.WithYAxisOpts(opts.YAxis{Type: "category", Data: zLabels}),
		charts.WithVisualMapOpts(opts.VisualMap{Calculable: opts.Bool(true), Min: 0, Max: float32(maxv)}),
	)
	hm.AddSeries("pitches", data)
	return hm
}

// ---------------------------------------------------------------------------
// Shared chart helpers
// ---------------------------------------------------------------------------

func namedBar(title, unit string, values []NamedValue) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithYAxisOpts(opts.YAxis{Name: unit}),
	)
	labels := make([]string, len(values))
	data := make([]opts.BarData, len(values))
	for i, v := range values {
		labels[i] = v.Name
		data[i] = opts.BarData{Value: v.Value}
	}
	bar.SetXAxis(labels).AddSeries(unit, data)
	return bar
}
