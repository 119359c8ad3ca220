package statsapi

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"dugout/internal/domain"
)

// ParsePitchCSV parses the provider's Statcast CSV export into pitch
// events. Columns are resolved by header name, so extra columns are
// ignored and missing optional columns yield zero values. Blank
// batted-ball fields mark the row as having no launch data.
func ParsePitchCSV(data []byte, date string) ([]domain.PitchEvent, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1 // tolerate ragged rows

	header, err := r.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}

	col := make(map[string]int, len(header))
	for i, name := range header {
		col[name] = i
	}

	field := func(row []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(row) {
			return ""
		}
		return row[i]
	}
	floatField := func(row []string, name string) (float64, bool) {
		s := field(row, name)
		if s == "" || s == "null" {
			return 0, false
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		return v, true
	}
	intField := func(row []string, name string) int {
		v, _ := floatField(row, name)
		return int(v)
	}
	int64Field := func(row []string, name string) int64 {
		v, _ := floatField(row, name)
		return int64(v)
	}

	var events []domain.PitchEvent
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading row %d: %w", len(events)+1, err)
		}

		e := domain.PitchEvent{
			Date:        date,
			GamePK:      int64Field(row, "game_pk"),
			PitcherID:   int64Field(row, "pitcher"),
			BatterID:    int64Field(row, "batter"),
			PitcherName: field(row, "player_name"),
			BatterName:  field(row, "batter_name"),
			PitchType:   field(row, "pitch_type"),
			Zone:        intField(row, "zone"),
			Balls:       intField(row, "balls"),
			Strikes:     intField(row, "strikes"),
			Stand:       field(row, "stand"),
			PThrows:     field(row, "p_throws"),
			Events:      field(row, "events"),
			Description: field(row, "description"),
			Type:        field(row, "type"),
			BBType:      field(row, "bb_type"),
			HomeTeam:    field(row, "home_team"),
			AwayTeam:    field(row, "away_team"),
		}

		// The export names the pitcher "player_name"; a separate
		// pitcher_name column wins when present.
		if n := field(row, "pitcher_name"); n != "" {
			e.PitcherName = n
		}
		if d := field(row, "game_date"); d != "" {
			e.Date = d
		}

		e.ReleaseSpeed, _ = floatField(row, "release_speed")
		e.ReleaseSpinRate, _ = floatField(row, "release_spin_rate")
		e.ReleaseExtension, _ = floatField(row, "release_extension")
		e.ReleasePosX, _ = floatField(row, "release_pos_x")
		e.ReleasePosZ, _ = floatField(row, "release_pos_z")
		e.PfxX, _ = floatField(row, "pfx_x")
		e.PfxZ, _ = floatField(row, "pfx_z")
		e.PlateX, _ = floatField(row, "plate_x")
		e.PlateZ, _ = floatField(row, "plate_z")
		e.SzTop, _ = floatField(row, "sz_top")
		e.SzBot, _ = floatField(row, "sz_bot")

		ls, okSpeed := floatField(row, "launch_speed")
		la, okAngle := floatField(row, "launch_angle")
		if okSpeed && okAngle {
			e.HasLaunch = true
			e.LaunchSpeed = ls
			e.LaunchAngle = la
			e.HitDistance, _ = floatField(row, "hit_distance_sc")
		}

		hcx, okX := floatField(row, "hc_x")
		hcy, okY := floatField(row, "hc_y")
		if okX && okY {
			e.HasHitLocation = true
			e.HcX = hcx
			e.HcY = hcy
		}

		events = append(events, e)
	}

	return events, nil
}
