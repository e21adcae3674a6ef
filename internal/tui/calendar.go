package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/zenflow/internal/app"
	"github.com/sadopc/zenflow/internal/calendar"
)

type calendarModel struct {
	c      *app.Container
	width  int
	height int

	selected time.Time // local midnight
	cursor   int       // index into the selected day's events

	formActive bool
	form       *huh.Form
	formTitle  *string
}

func newCalendarModel(c *app.Container) calendarModel {
	title := ""
	return calendarModel{
		c:         c,
		selected:  calendar.Midnight(c.Clock.Now()),
		formTitle: &title,
	}
}

func (m *calendarModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

func (m calendarModel) selectedKey() string {
	return calendar.DateKey(m.selected.Year(), int(m.selected.Month())-1, m.selected.Day())
}

func (m *calendarModel) clampCursor() {
	n := len(m.c.Events.EventsOn(m.selectedKey()))
	if m.cursor >= n {
		m.cursor = max(0, n-1)
	}
}

func (m *calendarModel) moveDays(n int) {
	m.selected = m.selected.AddDate(0, 0, n)
	m.cursor = 0
}

// moveMonths keeps the day of month where possible, clamping to the last
// day of a shorter month.
func (m *calendarModel) moveMonths(n int) {
	y, mo, d := m.selected.Date()
	first := time.Date(y, mo, 1, 0, 0, 0, 0, m.selected.Location()).AddDate(0, n, 0)
	d = min(d, calendar.DaysInMonth(first.Year(), int(first.Month())-1))
	m.selected = first.AddDate(0, 0, d-1)
	m.cursor = 0
}

func (m calendarModel) update(msg tea.Msg) (calendarModel, tea.Cmd) {
	if m.formActive && m.form != nil {
		return m.updateForm(msg)
	}

	msgKey, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	evs := m.c.Events.EventsOn(m.selectedKey())
	switch {
	case key.Matches(msgKey, keys.Left):
		m.moveDays(-1)
	case key.Matches(msgKey, keys.Right):
		m.moveDays(1)
	case key.Matches(msgKey, keys.Up):
		m.moveDays(-7)
	case key.Matches(msgKey, keys.Down):
		m.moveDays(7)
	case key.Matches(msgKey, keys.PrevMonth):
		m.moveMonths(-1)
	case key.Matches(msgKey, keys.NextMonth):
		m.moveMonths(1)
	case key.Matches(msgKey, keys.PrevItem):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msgKey, keys.NextItem):
		if m.cursor < len(evs)-1 {
			m.cursor++
		}
	case key.Matches(msgKey, keys.New), key.Matches(msgKey, keys.Enter):
		return m.showForm()
	case key.Matches(msgKey, keys.Toggle):
		if len(evs) > 0 {
			return m, errorCmd(m.c.Events.Toggle(evs[m.cursor].ID))
		}
	case key.Matches(msgKey, keys.Delete):
		if len(evs) > 0 {
			err := m.c.Events.Delete(evs[m.cursor].ID)
			m.clampCursor()
			return m, errorCmd(err)
		}
	}
	return m, nil
}

func (m calendarModel) showForm() (calendarModel, tea.Cmd) {
	*m.formTitle = ""
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Event on " + m.selected.Format("Mon, Jan 2 2006")).
				Value(m.formTitle),
		),
	).WithShowHelp(true).WithShowErrors(true)

	m.formActive = true
	return m, m.form.Init()
}

func (m calendarModel) updateForm(msg tea.Msg) (calendarModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			m.formActive = false
			m.form = nil
			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		m.formActive = false
		m.form = nil
		_, err := m.c.Events.Add(m.selectedKey(), *m.formTitle)
		return m, errorCmd(err)
	}

	return m, cmd
}

func (m calendarModel) view() string {
	w := m.width - 4

	if m.formActive && m.form != nil {
		title := titleStyle.Render("New Event")
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", m.form.View()),
		)
	}

	gridWidth := 7*5 + 6
	grid := panelStyle.Width(gridWidth).Render(m.renderGrid())
	events := panelStyle.Width(max(w-gridWidth, 24)).Render(m.renderEvents(max(w-gridWidth-6, 16)))
	return lipgloss.JoinHorizontal(lipgloss.Top, grid, events)
}

func (m calendarModel) renderGrid() string {
	year, month0 := m.selected.Year(), int(m.selected.Month())-1
	todayKey := calendar.DayKey(m.c.Clock.Now())

	var rows []string
	rows = append(rows, titleStyle.Render(m.selected.Format("January 2006")))
	rows = append(rows, "")

	var head strings.Builder
	for _, l := range calendar.WeekdayLabels {
		head.WriteString(mutedStyle.Render(padRight(l, 5)))
	}
	rows = append(rows, head.String())

	var line strings.Builder
	for i, d := range calendar.MonthCells(year, month0) {
		if i > 0 && i%7 == 0 {
			rows = append(rows, line.String())
			line.Reset()
		}
		if d == 0 {
			line.WriteString("     ")
			continue
		}
		dk := calendar.DateKey(year, month0, d)
		num := fmt.Sprintf("%2d", d)
		marker := " "
		if m.c.Events.HasEventsOn(dk) {
			marker = calEventStyle.Render("•")
		}
		switch {
		case d == m.selected.Day():
			num = calSelectedStyle.Render(num)
		case dk == todayKey:
			num = calTodayStyle.Render(num)
		default:
			num = normalItemStyle.Render(num)
		}
		line.WriteString(" " + num + marker + " ")
	}
	if line.Len() > 0 {
		rows = append(rows, line.String())
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("←↑↓→: day  </>: month"))
	return strings.Join(rows, "\n")
}

func (m calendarModel) renderEvents(w int) string {
	evs := m.c.Events.EventsOn(m.selectedKey())

	var rows []string
	rows = append(rows, titleStyle.Render(m.selected.Format("Monday, Jan 2")))
	rows = append(rows, "")

	if len(evs) == 0 {
		rows = append(rows, mutedStyle.Render("No events. Press n to add one."))
	}
	for i, ev := range evs {
		cursor := "  "
		style := normalItemStyle
		mark := "○"
		if ev.Completed {
			style = doneItemStyle
			mark = "✓"
		}
		if i == m.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(fmt.Sprintf("%s%s %s", cursor, mark, truncate(ev.Title, w-4))))
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("n: new  [/]: select  space: toggle  d: delete"))
	return strings.Join(rows, "\n")
}
