// Package timer implements the work/break interval timer. The engine is
// driven externally: callers invoke Tick once per elapsed second while the
// timer runs, and every state change is persisted immediately.
package timer

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/sadopc/zenflow/internal/store"
)

const (
	StateKey    = "zenflow-pomodoro"
	SettingsKey = "zenflow-timer-settings"
)

type Mode string

const (
	ModeWork  Mode = "work"
	ModeBreak Mode = "break"
)

// State is the persisted countdown snapshot.
type State struct {
	TimeRemaining int  `json:"timeRemaining"` // seconds
	Mode          Mode `json:"mode"`
	IsRunning     bool `json:"isRunning"`
	Sessions      int  `json:"sessions"`
}

type Engine struct {
	records store.Records
	log     *slog.Logger

	settings Settings
	state    State
}

// Load restores the engine from records. Persisted isRunning is ignored: a
// loaded engine always starts stopped, and no time elapses while closed.
func Load(records store.Records, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	e := &Engine{records: records, log: logger}
	e.Reload()
	return e
}

// Reload discards in-memory state and re-reads settings and state.
func (e *Engine) Reload() {
	state, ok, settings := ReadSnapshot(e.records, e.log)
	e.settings = settings
	if !ok {
		state = State{Mode: ModeWork, TimeRemaining: settings.WorkDuration * 60}
	}
	if state.Mode != ModeWork && state.Mode != ModeBreak {
		state.Mode = ModeWork
	}
	if state.TimeRemaining < 0 {
		state.TimeRemaining = 0
	}
	if state.Sessions < 0 {
		state.Sessions = 0
	}
	state.IsRunning = false
	e.state = state
}

// ReadSnapshot returns the last persisted state and settings without
// building an engine. ok reports whether a state record was readable;
// settings fall back to defaults.
func ReadSnapshot(records store.Records, logger *slog.Logger) (state State, ok bool, settings Settings) {
	// Fields missing from the record keep their defaults.
	s := DefaultSettings
	if store.LoadJSON(records, SettingsKey, &s, logger) {
		settings = s.Clamp()
	} else {
		settings = DefaultSettings
	}
	ok = store.LoadJSON(records, StateKey, &state, logger)
	if !ok {
		state = State{}
	}
	return state, ok, settings
}

func (e *Engine) State() State       { return e.state }
func (e *Engine) Settings() Settings { return e.settings }
func (e *Engine) Running() bool      { return e.state.IsRunning }

// Duration is the full length in seconds of an interval in mode m.
func (e *Engine) Duration(m Mode) int {
	if m == ModeBreak {
		return e.settings.BreakDuration * 60
	}
	return e.settings.WorkDuration * 60
}

// Tick advances the countdown by one second. When the interval ends the
// engine switches mode and keeps running; finishing a work interval counts
// one session. Tick is a no-op while stopped.
func (e *Engine) Tick() error {
	if !e.state.IsRunning {
		return nil
	}
	if e.state.TimeRemaining <= 1 {
		if e.state.Mode == ModeWork {
			e.state.Sessions++
			e.state.Mode = ModeBreak
		} else {
			e.state.Mode = ModeWork
		}
		e.state.TimeRemaining = e.Duration(e.state.Mode)
	} else {
		e.state.TimeRemaining--
	}
	return e.saveState()
}

func (e *Engine) ToggleRunning() error {
	e.state.IsRunning = !e.state.IsRunning
	return e.saveState()
}

// Reset stops the timer and refills the current interval.
func (e *Engine) Reset() error {
	e.state.IsRunning = false
	e.state.TimeRemaining = e.Duration(e.state.Mode)
	return e.saveState()
}

// SwitchMode stops the timer and starts a full interval of m.
func (e *Engine) SwitchMode(m Mode) error {
	if m != ModeWork && m != ModeBreak {
		return fmt.Errorf("unknown timer mode %q", m)
	}
	e.state.Mode = m
	e.state.TimeRemaining = e.Duration(m)
	e.state.IsRunning = false
	return e.saveState()
}

// ApplySettings clamps and stores s, stops the timer and refills the
// current interval from the new durations.
func (e *Engine) ApplySettings(s Settings) error {
	e.settings = s.Clamp()
	e.state.TimeRemaining = e.Duration(e.state.Mode)
	e.state.IsRunning = false

	var settingsErr error
	if err := store.SetJSON(e.records, SettingsKey, e.settings); err != nil {
		e.log.Error("persist timer settings", "err", err)
		settingsErr = fmt.Errorf("save timer settings: %w", err)
	}
	if err := e.saveState(); err != nil {
		return err
	}
	return settingsErr
}

// Display formats the remaining time as mm:ss.
func (e *Engine) Display() string {
	return FormatClock(e.state.TimeRemaining)
}

// Progress is the elapsed fraction of the current interval in [0,1].
func (e *Engine) Progress() float64 {
	total := e.Duration(e.state.Mode)
	if total <= 0 {
		return 0
	}
	p := float64(total-e.state.TimeRemaining) / float64(total)
	switch {
	case p < 0:
		return 0
	case p > 1:
		return 1
	}
	return p
}

// FocusMinutes is completed work time at the current work duration.
func (e *Engine) FocusMinutes() int {
	return e.state.Sessions * e.settings.WorkDuration
}

// FormatClock renders seconds as zero-padded mm:ss. Minutes may exceed 59.
func FormatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

func (e *Engine) saveState() error {
	if err := store.SetJSON(e.records, StateKey, e.state); err != nil {
		e.log.Error("persist timer state", "err", err)
		return fmt.Errorf("save timer state: %w", err)
	}
	return nil
}
