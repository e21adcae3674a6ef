package timer

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

const (
	MinWork  = 1
	MaxWork  = 120
	MinBreak = 1
	MaxBreak = 60
)

// Settings are interval lengths in whole minutes.
type Settings struct {
	WorkDuration  int `json:"workDuration"`
	BreakDuration int `json:"breakDuration"`
}

var DefaultSettings = Settings{WorkDuration: 25, BreakDuration: 5}

// Preset is a named quick choice offered by the settings form.
type Preset struct {
	Label    string
	Settings Settings
}

var Presets = []Preset{
	{"15 min", Settings{15, 3}},
	{"25 min", Settings{25, 5}},
	{"45 min", Settings{45, 10}},
	{"60 min", Settings{60, 15}},
}

// Clamp forces both durations into their allowed ranges.
func (s Settings) Clamp() Settings {
	return Settings{
		WorkDuration:  clamp(s.WorkDuration, MinWork, MaxWork),
		BreakDuration: clamp(s.BreakDuration, MinBreak, MaxBreak),
	}
}

// ParseSettings turns free-form minute fields into clamped settings.
// Non-digit characters are dropped; a field with no usable number becomes 1.
func ParseSettings(work, brk string) Settings {
	return Settings{
		WorkDuration:  parseMinutes(work),
		BreakDuration: parseMinutes(brk),
	}.Clamp()
}

func parseMinutes(s string) int {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, s)
	n, err := strconv.Atoi(digits)
	if errors.Is(err, strconv.ErrRange) {
		return math.MaxInt
	}
	if err != nil || n < 1 {
		return 1
	}
	return n
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
