// Package calendar holds the clock and the date math shared by the planner
// and the activity rollup. Day keys are the join key between them, so every
// date string in the application is produced here.
package calendar

import (
	"fmt"
	"time"
)

// DayKeyLayout is the canonical YYYY-MM-DD form of a day key.
const DayKeyLayout = "2006-01-02"

// WeekdayLabels are the column labels of a Monday-start week.
var WeekdayLabels = []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// Clock provides the current time.
type Clock interface {
	Now() time.Time
}

// RealClock reads the system clock in local time.
type RealClock struct{}

func (RealClock) Now() time.Time {
	return time.Now()
}

// FixedClock always returns T. Tests move it by assigning T.
type FixedClock struct {
	T time.Time
}

func (c *FixedClock) Now() time.Time {
	return c.T
}

// DateKey formats a {year, 0-based month, day} triple as a day key.
func DateKey(year, month0, day int) string {
	return fmt.Sprintf("%04d-%02d-%02d", year, month0+1, day)
}

// DayKey returns the day key of t's calendar date in t's location.
func DayKey(t time.Time) string {
	return t.Format(DayKeyLayout)
}

// ParseDayKey parses a day key into local midnight.
func ParseDayKey(key string) (time.Time, error) {
	t, err := time.ParseInLocation(DayKeyLayout, key, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse day key %q: %w", key, err)
	}
	return t, nil
}

// Midnight truncates t to the start of its calendar day.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// MondayOffset is the number of days between t and the Monday that starts
// its week. Sunday counts as the last day of the week, not the first.
func MondayOffset(t time.Time) int {
	dow := int(t.Weekday())
	if dow == 0 {
		return 6
	}
	return dow - 1
}

// WeekDays returns the seven midnights Monday..Sunday of the week containing now.
func WeekDays(now time.Time) []time.Time {
	monday := Midnight(now).AddDate(0, 0, -MondayOffset(now))
	days := make([]time.Time, 7)
	for i := range days {
		days[i] = monday.AddDate(0, 0, i)
	}
	return days
}

// WeekKeys is WeekDays formatted as day keys.
func WeekKeys(now time.Time) []string {
	days := WeekDays(now)
	keys := make([]string, len(days))
	for i, d := range days {
		keys[i] = DayKey(d)
	}
	return keys
}

// DaysInMonth returns the number of days in the given 0-based month.
func DaysInMonth(year, month0 int) int {
	// Day 0 of the next month is the last day of this one.
	return time.Date(year, time.Month(month0+2), 0, 0, 0, 0, 0, time.UTC).Day()
}

// MonthCells lays a month out on a Monday-start grid. Leading cells before
// the 1st are 0; the rest are the day numbers 1..DaysInMonth.
func MonthCells(year, month0 int) []int {
	first := time.Date(year, time.Month(month0+1), 1, 0, 0, 0, 0, time.UTC)
	lead := MondayOffset(first)
	n := DaysInMonth(year, month0)

	cells := make([]int, 0, lead+n)
	for i := 0; i < lead; i++ {
		cells = append(cells, 0)
	}
	for d := 1; d <= n; d++ {
		cells = append(cells, d)
	}
	return cells
}
