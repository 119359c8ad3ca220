package domain

import (
	"testing"
	"time"
)

func TestIsBarrel(t *testing.T) {
	tests := []struct {
		name  string
		speed float64
		angle float64
		want  bool
	}{
		{"classic barrel", 105, 28, true},
		{"minimum speed and angle", 98, 26, true},
		{"maximum angle", 98, 30, true},
		{"too slow", 97.9, 28, false},
		{"angle too low", 105, 25.9, false},
		{"angle too high", 105, 30.1, false},
		{"ground ball", 102, 5, false},
		{"pop up", 99, 60, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsBarrel(tt.speed, tt.angle); got != tt.want {
				t.Errorf("IsBarrel(%v, %v) = %v, want %v", tt.speed, tt.angle, got, tt.want)
			}
		})
	}
}

func TestDateOf(t *testing.T) {
	ts := time.Date(2026, 8, 30, 23, 59, 0, 0, time.UTC)
	if got := DateOf(ts); got != "2026-08-30" {
		t.Errorf("DateOf = %q, want %q", got, "2026-08-30")
	}
}

func TestPlayerDataClass(t *testing.T) {
	hitter := &PlayerData{Hitting: []HittingLine{{}}}
	if got := hitter.Class(); got != ClassHitter {
		t.Errorf("hitter Class = %q, want %q", got, ClassHitter)
	}

	pitcher := &PlayerData{Pitching: []PitchingLine{{}}}
	if got := pitcher.Class(); got != ClassPitcher {
		t.Errorf("pitcher Class = %q, want %q", got, ClassPitcher)
	}

	twoWay := &PlayerData{Hitting: []HittingLine{{}}, Pitching: []PitchingLine{{}}}
	if got := twoWay.Class(); got != ClassTwoWay {
		t.Errorf("two-way Class = %q, want %q", got, ClassTwoWay)
	}
}
