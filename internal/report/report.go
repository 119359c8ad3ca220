// Package report writes the daily leaderboard report: top hitters and
// pitchers over the stored window, plus league averages.
package report

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"

	"dugout/internal/config"
	"dugout/internal/domain"
	"dugout/internal/store"
)

// Source is the slice of storage the report reads from.
type Source interface {
	store.HittingStore
	store.PitchingStore
}

// Generator builds the daily leaderboard report.
type Generator struct {
	src       Source
	topN      int
	qualifyIP float64
	log       *slog.Logger
}

// NewGenerator creates a Generator with the given report settings.
func NewGenerator(src Source, cfg config.Report) *Generator {
	return &Generator{
		src:       src,
		topN:      cfg.TopN,
		qualifyIP: cfg.QualifyIP,
		log:       slog.Default().With("component", "report"),
	}
}

// Write renders the leaderboard for the window ending at now and writes it
// to <outputDir>/leaders_<date>.txt, returning the file path.
func (g *Generator) Write(ctx context.Context, outputDir string, now time.Time, windowDays int) (string, error) {
	if windowDays <= 0 {
		windowDays = domain.RetentionDays
	}
	start := domain.DateOf(now.AddDate(0, 0, -windowDays))
	end := domain.DateOf(now)

	hitting, err := g.src.HittingBetween(ctx, start, end)
	if err != nil {
		return "", fmt.Errorf("loading hitting lines: %w", err)
	}
	pitching, err := g.src.PitchingBetween(ctx, start, end)
	if err != nil {
		return "", fmt.Errorf("loading pitching lines: %w", err)
	}

	body := g.render(hitting, pitching, start, end)

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return "", fmt.Errorf("creating output dir: %w", err)
	}
	path := filepath.Join(outputDir, "leaders_"+end+".txt")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		return "", fmt.Errorf("writing report: %w", err)
	}

	g.log.Info("report written", "path", path, "hitters", len(hitting), "pitchers", len(pitching))
	return path, nil
}

func (g *Generator) render(hitting []domain.HittingLine, pitching []domain.PitchingLine, start, end string) string {
	hitters := aggregateHitters(hitting)
	pitchers := aggregatePitchers(pitching)

	var b strings.Builder
	fmt.Fprintf(&b, "League Leaders, %s to %s\n\n", start, end)

	b.WriteString(leaderTable("Top OPS", topHitters(hitters, g.topN, func(h hitterTotals) float64 { return h.ops() }),
		"OPS", func(h hitterTotals) string { return fmt.Sprintf("%.3f", h.ops()) }))
	b.WriteString(leaderTable("Top Home Runs", topHitters(hitters, g.topN, func(h hitterTotals) float64 { return float64(h.HomeRuns) }),
		"HR", func(h hitterTotals) string { return fmt.Sprintf("%d", h.HomeRuns) }))
	b.WriteString(pitcherTable(fmt.Sprintf("Top ERA (min %.0f IP)", g.qualifyIP),
		topPitchers(qualified(pitchers, g.qualifyIP), g.topN, func(p pitcherTotals) float64 { return -p.era() }),
		"ERA", func(p pitcherTotals) string { return fmt.Sprintf("%.2f", p.era()) }))
	b.WriteString(pitcherTable("Top Strikeouts",
		topPitchers(pitchers, g.topN, func(p pitcherTotals) float64 { return float64(p.Strikeouts) }),
		"SO", func(p pitcherTotals) string { return fmt.Sprintf("%d", p.Strikeouts) }))

	b.WriteString(leagueLine(hitters, pitchers))
	return b.String()
}

// ---------------------------------------------------------------------------
// Window aggregation
// ---------------------------------------------------------------------------

// hitterTotals sums a hitter's counting stats over the window. Rate stats
// are recomputed from the totals rather than averaged across days.
type hitterTotals struct {
	Name     string
	Team     string
	Games    int
	AtBats   int
	Hits     int
	Doubles  int
	Triples  int
	HomeRuns int
	RBI      int
	Walks    int
}

func (h hitterTotals) avg() float64 {
	if h.AtBats == 0 {
		return 0
	}
	return float64(h.Hits) / float64(h.AtBats)
}

func (h hitterTotals) obp() float64 {
	denom := h.AtBats + h.Walks
	if denom == 0 {
		return 0
	}
	return float64(h.Hits+h.Walks) / float64(denom)
}

func (h hitterTotals) slg() float64 {
	if h.AtBats == 0 {
		return 0
	}
	bases := h.Hits + h.Doubles + 2*h.Triples + 3*h.HomeRuns
	return float64(bases) / float64(h.AtBats)
}

func (h hitterTotals) ops() float64 {
	return h.obp() + h.slg()
}

type pitcherTotals struct {
	Name       string
	Team       string
	Innings    float64
	EarnedRuns int
	Strikeouts int
	Walks      int
	Hits       int
}

func (p pitcherTotals) era() float64 {
	if p.Innings == 0 {
		return 0
	}
	return float64(p.EarnedRuns) * 9 / p.Innings
}

func (p pitcherTotals) whip() float64 {
	if p.Innings == 0 {
		return 0
	}
	return float64(p.Walks+p.Hits) / p.Innings
}

func aggregateHitters(lines []domain.HittingLine) []hitterTotals {
	byName := make(map[string]*hitterTotals)
	for _, l := range lines {
		h, ok := byName[l.PlayerName]
		if !ok {
			h = &hitterTotals{Name: l.PlayerName}
			byName[l.PlayerName] = h
		}
		h.Team = l.Team
		h.Games += l.Games
		h.AtBats += l.AtBats
		h.Hits += l.Hits
		h.Doubles += l.Doubles
		h.Triples += l.Triples
		h.HomeRuns += l.HomeRuns
		h.RBI += l.RBI
		h.Walks += l.Walks
	}
	out := make([]hitterTotals, 0, len(byName))
	for _, h := range byName {
		out = append(out, *h)
	}
	return out
}

func aggregatePitchers(lines []domain.PitchingLine) []pitcherTotals {
	byName := make(map[string]*pitcherTotals)
	for _, l := range lines {
		p, ok := byName[l.PlayerName]
		if !ok {
			p = &pitcherTotals{Name: l.PlayerName}
			byName[l.PlayerName] = p
		}
		p.Team = l.Team
		p.Innings += l.InningsPitched
		p.EarnedRuns += l.EarnedRuns
		p.Strikeouts += l.Strikeouts
		p.Walks += l.WalksAllowed
		p.Hits += l.HitsAllowed
	}
	out := make([]pitcherTotals, 0, len(byName))
	for _, p := range byName {
		out = append(out, *p)
	}
	return out
}

func qualified(pitchers []pitcherTotals, minIP float64) []pitcherTotals {
	var out []pitcherTotals
	for _, p := range pitchers {
		if p.Innings >= minIP {
			out = append(out, p)
		}
	}
	return out
}

func topHitters(hitters []hitterTotals, n int, key func(hitterTotals) float64) []hitterTotals {
	s := append([]hitterTotals(nil), hitters...)
	sort.Slice(s, func(i, j int) bool {
		if key(s[i]) != key(s[j]) {
			return key(s[i]) > key(s[j])
		}
		return s[i].Name < s[j].Name
	})
	if len(s) > n {
		s = s[:n]
	}
	return s
}

func topPitchers(pitchers []pitcherTotals, n int, key func(pitcherTotals) float64) []pitcherTotals {
	s := append([]pitcherTotals(nil), pitchers...)
	sort.Slice(s, func(i, j int) bool {
		if key(s[i]) != key(s[j]) {
			return key(s[i]) > key(s[j])
		}
		return s[i].Name < s[j].Name
	})
	if len(s) > n {
		s = s[:n]
	}
	return s
}

// ---------------------------------------------------------------------------
// Rendering
// ---------------------------------------------------------------------------

func leaderTable(title string, hitters []hitterTotals, statName string, stat func(hitterTotals) string) string {
	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.SetTitle(title)
	t.AppendHeader(table.Row{"#", "Player", "Team", "G", "AVG", statName})
	for i, h := range hitters {
		t.AppendRow(table.Row{i + 1, h.Name, h.Team, h.Games, fmt.Sprintf("%.3f", h.avg()), stat(h)})
	}
	return t.Render() + "\n\n"
}

func pitcherTable(title string, pitchers []pitcherTotals, statName string, stat func(pitcherTotals) string) string {
	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.SetTitle(title)
	t.AppendHeader(table.Row{"#", "Player", "Team", "IP", "WHIP", statName})
	for i, p := range pitchers {
		t.AppendRow(table.Row{i + 1, p.Name, p.Team, fmt.Sprintf("%.1f", p.Innings), fmt.Sprintf("%.2f", p.whip()), stat(p)})
	}
	return t.Render() + "\n\n"
}

func leagueLine(hitters []hitterTotals, pitchers []pitcherTotals) string {
	var league hitterTotals
	for _, h := range hitters {
		league.AtBats += h.AtBats
		league.Hits += h.Hits
		league.Doubles += h.Doubles
		league.Triples += h.Triples
		league.HomeRuns += h.HomeRuns
		league.Walks += h.Walks
	}
	var er int
	var ip float64
	for _, p := range pitchers {
		er += p.EarnedRuns
		ip += p.Innings
	}
	var era float64
	if ip > 0 {
		era = float64(er) * 9 / ip
	}
	return fmt.Sprintf("League: AVG %.3f, OBP %.3f, SLG %.3f, ERA %.2f\n",
		league.avg(), league.obp(), league.slg(), era)
}
