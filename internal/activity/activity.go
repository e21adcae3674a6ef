// Package activity rolls the task ledger and the interval timer up into
// per-day activity and a Monday-start weekly summary.
//
// Each refresh overwrites only today's entry from the latest persisted
// snapshots, so running it any number of times for the same day yields the
// same result. Entries for past days are never recomputed.
package activity

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/sadopc/zenflow/internal/calendar"
	"github.com/sadopc/zenflow/internal/store"
	"github.com/sadopc/zenflow/internal/tasks"
	"github.com/sadopc/zenflow/internal/timer"
)

// StorageKey is the record holding the weekly activity map.
const StorageKey = "zenflow-weekly-activity"

// DefaultInterval is how often the dashboard refreshes the rollup.
const DefaultInterval = 5 * time.Second

type DailyActivity struct {
	Sessions       int `json:"sessions"`
	FocusMinutes   int `json:"focusMinutes"`
	TasksCompleted int `json:"tasksCompleted"`
}

// WeeklyMap maps day keys to activity. It grows without pruning.
type WeeklyMap map[string]DailyActivity

// Day is one column of the weekly view.
type Day struct {
	Key      string
	Label    string
	Date     time.Time
	IsToday  bool
	Activity DailyActivity
}

type Totals struct {
	Sessions       int
	FocusMinutes   int
	TasksCompleted int
}

// Report is the result of one refresh.
type Report struct {
	Today  string
	Days   [7]Day
	Totals Totals
	Map    WeeklyMap
}

type Aggregator struct {
	records store.Records
	clock   calendar.Clock
	log     *slog.Logger
}

func New(records store.Records, clock calendar.Clock, logger *slog.Logger) *Aggregator {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Aggregator{records: records, clock: clock, log: logger}
}

// ReadMap returns the persisted weekly map, or an empty map if it is absent
// or unreadable.
func ReadMap(records store.Records, logger *slog.Logger) WeeklyMap {
	var m WeeklyMap
	if !store.LoadJSON(records, StorageKey, &m, logger) || m == nil {
		return WeeklyMap{}
	}
	return m
}

// Refresh folds the current timer and ledger snapshots into today's entry,
// persists the map and returns the week containing today. A persist failure
// is returned alongside a complete report.
func (a *Aggregator) Refresh() (Report, error) {
	m := ReadMap(a.records, a.log)
	now := a.clock.Now()
	today := calendar.DayKey(now)

	entry := m[today]
	if state, ok, settings := timer.ReadSnapshot(a.records, a.log); ok {
		entry.Sessions = state.Sessions
		entry.FocusMinutes = state.Sessions * settings.WorkDuration
	}
	if ts, ok := tasks.ReadSnapshot(a.records, a.log); ok {
		entry.TasksCompleted = tasks.CountCompleted(ts)
	}
	m[today] = entry

	report := Week(m, now)
	a.log.Debug("activity refreshed", "day", today,
		"sessions", entry.Sessions, "tasks_completed", entry.TasksCompleted)

	if err := store.SetJSON(a.records, StorageKey, m); err != nil {
		a.log.Error("persist weekly activity", "err", err)
		return report, fmt.Errorf("save weekly activity: %w", err)
	}
	return report, nil
}

// Week builds the Monday..Sunday view of m around now. Days missing from m
// contribute zero.
func Week(m WeeklyMap, now time.Time) Report {
	r := Report{Today: calendar.DayKey(now), Map: m}
	for i, d := range calendar.WeekDays(now) {
		key := calendar.DayKey(d)
		act := m[key]
		r.Days[i] = Day{
			Key:      key,
			Label:    calendar.WeekdayLabels[i],
			Date:     d,
			IsToday:  key == r.Today,
			Activity: act,
		}
		r.Totals.Sessions += act.Sessions
		r.Totals.FocusMinutes += act.FocusMinutes
		r.Totals.TasksCompleted += act.TasksCompleted
	}
	return r
}

// Watch calls fn with a refresh immediately and then every period until ctx
// is done. No refresh starts after ctx is cancelled.
func (a *Aggregator) Watch(ctx context.Context, every time.Duration, fn func(Report, error)) {
	if ctx.Err() != nil {
		return
	}
	fn(a.Refresh())

	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if ctx.Err() != nil {
				return
			}
			fn(a.Refresh())
		}
	}
}
