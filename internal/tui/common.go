package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"
	"github.com/sadopc/zenflow/internal/activity"
)

// viewState represents the currently active view.
type viewState int

const (
	viewDashboard viewState = iota
	viewTasks
	viewCalendar
	viewFocus
	viewAnalytics
	viewSettings
)

var viewNames = []string{"Dashboard", "Tasks", "Calendar", "Focus", "Analytics", "Settings"}

// --- Messages ---

type statusMsg struct {
	text    string
	isError bool
}

// timerTickMsg is one second of countdown. gen ties it to the run that
// scheduled it; ticks from an earlier run are dropped.
type timerTickMsg struct {
	gen int
}

// timerChangedMsg is sent after any control that may start or stop the timer.
type timerChangedMsg struct{}

type refreshTickMsg time.Time

type activityMsg struct {
	report activity.Report
	err    error
}

type dataClearedMsg struct{}

type exportDoneMsg struct {
	path string
}

// --- Helpers ---

func timerTickCmd(gen int) tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return timerTickMsg{gen: gen}
	})
}

func refreshTickCmd(every time.Duration) tea.Cmd {
	return tea.Tick(every, func(t time.Time) tea.Msg {
		return refreshTickMsg(t)
	})
}

func statusCmd(text string) tea.Cmd {
	return func() tea.Msg { return statusMsg{text: text} }
}

// errorCmd reports err as a non-blocking status line, or nothing if err is nil.
func errorCmd(err error) tea.Cmd {
	if err == nil {
		return nil
	}
	return func() tea.Msg {
		return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
	}
}

// truncate cuts s to at most w terminal cells.
func truncate(s string, w int) string {
	if w <= 0 {
		return ""
	}
	return runewidth.Truncate(s, w, "…")
}

// padRight pads s with spaces to w terminal cells.
func padRight(s string, w int) string {
	return runewidth.FillRight(truncate(s, w), w)
}

func progressBar(frac float64, width int) string {
	if width < 1 {
		return ""
	}
	filled := int(frac*float64(width) + 0.5)
	filled = max(0, min(filled, width))
	return successStyle.Render(strings.Repeat("█", filled)) +
		mutedStyle.Render(strings.Repeat("░", width-filled))
}
