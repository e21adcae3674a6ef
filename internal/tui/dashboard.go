package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/zenflow/internal/activity"
	"github.com/sadopc/zenflow/internal/app"
	"github.com/sadopc/zenflow/internal/calendar"
	"github.com/sadopc/zenflow/internal/timer"
)

// Compact chart: one row per completed task, at most compactRows.
const compactRows = 5

type dashboardModel struct {
	c      *app.Container
	width  int
	height int

	report activity.Report
}

func newDashboardModel(c *app.Container) dashboardModel {
	return dashboardModel{c: c}
}

func (d *dashboardModel) setSize(w, h int) {
	d.width = w
	d.height = h
}

func (d dashboardModel) update(msg tea.Msg) (dashboardModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, keys.Toggle):
			err := d.c.Timer.ToggleRunning()
			return d, tea.Batch(errorCmd(err), func() tea.Msg { return timerChangedMsg{} })
		}
	}
	return d, nil
}

func (d dashboardModel) view() string {
	if d.width < 20 {
		return "Terminal too small"
	}

	contentWidth := d.width - 4
	half := contentWidth/2 - 1

	top := lipgloss.JoinHorizontal(lipgloss.Top,
		d.renderTasksPanel(half),
		d.renderTimerPanel(contentWidth-half),
	)
	bottom := lipgloss.JoinHorizontal(lipgloss.Top,
		d.renderWeekPanel(half),
		d.renderEventsPanel(contentWidth-half),
	)
	return lipgloss.JoinVertical(lipgloss.Left, top, bottom)
}

func (d dashboardModel) renderTasksPanel(w int) string {
	sum := d.c.Tasks.List()
	title := titleStyle.Render("Tasks")
	pct := highlightStyle.Render(fmt.Sprintf("%d%%", sum.ProgressPercent))

	rows := []string{
		fmt.Sprintf("%s  %s", title, pct),
		progressBar(float64(sum.ProgressPercent)/100, max(w-8, 1)),
		mutedStyle.Render(fmt.Sprintf("%d of %d done", sum.CompletedCount, sum.Total)),
		"",
	}
	if len(sum.Pending) == 0 {
		rows = append(rows, mutedStyle.Render("Nothing pending"))
	}
	for i, t := range sum.Pending {
		if i == 3 {
			rows = append(rows, mutedStyle.Render(fmt.Sprintf("+%d more", len(sum.Pending)-3)))
			break
		}
		rows = append(rows, "○ "+truncate(t.Text, w-10))
	}
	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func (d dashboardModel) renderTimerPanel(w int) string {
	st := d.c.Timer.State()
	style := timerStyle
	indicator := mutedStyle.Render("■  PAUSED")
	if st.IsRunning {
		style = timerWorkStyle
		if st.Mode == timer.ModeBreak {
			style = timerBreakStyle
		}
		indicator = successStyle.Render("●  RUNNING")
	}

	mode := accentStyle.Bold(true).Render("WORK")
	if st.Mode == timer.ModeBreak {
		mode = successStyle.Bold(true).Render("BREAK")
	}

	content := lipgloss.JoinVertical(lipgloss.Center,
		style.Width(w-6).Render(d.c.Timer.Display()),
		mode+"  "+indicator,
		mutedStyle.Render(fmt.Sprintf("%d sessions · %s focus",
			st.Sessions, activity.FormatFocus(d.c.Timer.FocusMinutes()))),
		mutedStyle.Render("space: start/pause"),
	)
	if st.IsRunning {
		return activePanelStyle.Width(w).Render(content)
	}
	return panelStyle.Width(w).Render(content)
}

func (d dashboardModel) renderWeekPanel(w int) string {
	t := d.report.Totals
	header := fmt.Sprintf("%s  %s",
		titleStyle.Render("This Week"),
		mutedStyle.Render(fmt.Sprintf("%d sessions · %s · %d tasks",
			t.Sessions, activity.FormatFocus(t.FocusMinutes), t.TasksCompleted)),
	)
	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left, header, "", renderCompactChart(d.report.Days)),
	)
}

// renderCompactChart draws tasks completed per day as short vertical bars.
// Days with no tasks show a baseline tick.
func renderCompactChart(days [7]activity.Day) string {
	var heights [7]int
	for i, day := range days {
		heights[i] = activity.FixedBarHeight(day.Activity.TasksCompleted, 1, compactRows)
	}

	var lines []string
	for row := compactRows; row >= 1; row-- {
		var b strings.Builder
		for i, h := range heights {
			cell := "   "
			switch {
			case h >= row:
				cell = " █ "
			case row == 1 && h == 0:
				cell = " ▁ "
			}
			style := taskBarStyle
			if h == 0 {
				style = mutedStyle
			}
			if days[i].IsToday && h > 0 {
				style = highlightStyle
			}
			b.WriteString(style.Render(cell))
		}
		lines = append(lines, b.String())
	}

	var labels strings.Builder
	for _, day := range days {
		l := day.Label
		if l == "" {
			l = "   "
		}
		if day.IsToday {
			labels.WriteString(highlightStyle.Render(l))
		} else {
			labels.WriteString(mutedStyle.Render(l))
		}
	}
	lines = append(lines, labels.String())
	return strings.Join(lines, "\n")
}

func (d dashboardModel) renderEventsPanel(w int) string {
	today := calendar.DayKey(d.c.Clock.Now())
	rows := []string{titleStyle.Render("Today's Events"), ""}

	evs := d.c.Events.EventsOn(today)
	if len(evs) == 0 {
		rows = append(rows, mutedStyle.Render("No events today"))
	}
	for _, ev := range evs {
		if ev.Completed {
			rows = append(rows, doneItemStyle.Render("✓ "+truncate(ev.Title, w-10)))
		} else {
			rows = append(rows, normalItemStyle.Render("• "+truncate(ev.Title, w-10)))
		}
	}
	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
