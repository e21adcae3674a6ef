package tui

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/zenflow/internal/activity"
	"github.com/sadopc/zenflow/internal/app"
	"github.com/sadopc/zenflow/internal/config"
	"github.com/sadopc/zenflow/internal/export"
	"github.com/sadopc/zenflow/internal/timer"
)

// App is the root Bubble Tea model.
type App struct {
	c       *app.Container
	refresh time.Duration
	width   int
	height  int

	activeView    viewState
	showHelp      bool
	exportPicking bool
	exportCursor  int

	// timerGen identifies the live 1s tick chain. Every start, pause or
	// reset bumps it, so at most one chain ever drives the engine.
	timerGen int

	report activity.Report

	dashboard dashboardModel
	tasks     tasksModel
	calendar  calendarModel
	focus     focusModel
	analytics analyticsModel
	settings  settingsModel

	help    help.Model
	status  string
	isError bool
}

// NewApp builds the root model over c. refresh is the activity rollup
// period; zero means activity.DefaultInterval.
func NewApp(c *app.Container, refresh time.Duration) App {
	if refresh <= 0 {
		refresh = activity.DefaultInterval
	}
	h := help.New()
	h.ShowAll = false

	return App{
		c:          c,
		refresh:    refresh,
		activeView: viewDashboard,
		dashboard:  newDashboardModel(c),
		tasks:      newTasksModel(c),
		calendar:   newCalendarModel(c),
		focus:      newFocusModel(c),
		analytics:  newAnalyticsModel(),
		settings:   newSettingsModel(c),
		help:       h,
	}
}

func (a App) Init() tea.Cmd {
	return func() tea.Msg { return refreshTickMsg(time.Now()) }
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		contentHeight := a.height - 4 // header + footer
		a.dashboard.setSize(a.width, contentHeight)
		a.tasks.setSize(a.width, contentHeight)
		a.calendar.setSize(a.width, contentHeight)
		a.focus.setSize(a.width, contentHeight)
		a.analytics.setSize(a.width, contentHeight)
		a.settings.setSize(a.width, contentHeight)
		a.analytics.setReport(a.report)
		return a, nil

	case tea.KeyMsg:
		if a.exportPicking {
			return a.updateExportPicker(msg)
		}

		// If a child view is capturing input (e.g. form), delegate first.
		if a.isFormActive() {
			return a.updateActiveView(msg)
		}

		switch {
		case key.Matches(msg, keys.Export):
			a.exportPicking = true
			a.exportCursor = 0
			return a, nil
		case key.Matches(msg, keys.Quit):
			return a, tea.Quit
		case key.Matches(msg, keys.Help):
			a.showHelp = !a.showHelp
			a.help.ShowAll = a.showHelp
			return a, nil
		case key.Matches(msg, keys.Tab1):
			return a.switchView(viewDashboard)
		case key.Matches(msg, keys.Tab2):
			return a.switchView(viewTasks)
		case key.Matches(msg, keys.Tab3):
			return a.switchView(viewCalendar)
		case key.Matches(msg, keys.Tab4):
			return a.switchView(viewFocus)
		case key.Matches(msg, keys.Tab5):
			return a.switchView(viewAnalytics)
		case key.Matches(msg, keys.Tab6):
			return a.switchView(viewSettings)
		case key.Matches(msg, keys.Tab):
			return a.switchView((a.activeView + 1) % viewState(len(viewNames)))
		}

	case timerTickMsg:
		return a.onTimerTick(msg)

	case timerChangedMsg:
		a.timerGen++
		if a.c.Timer.Running() {
			return a, timerTickCmd(a.timerGen)
		}
		return a, nil

	case refreshTickMsg:
		return a, tea.Batch(a.refreshActivity(), refreshTickCmd(a.refresh))

	case activityMsg:
		a.report = msg.report
		a.dashboard.report = msg.report
		a.analytics.setReport(msg.report)
		if msg.err != nil {
			a.status, a.isError = fmt.Sprintf("Activity not saved: %v", msg.err), true
		}
		return a, nil

	case dataClearedMsg:
		a.timerGen++
		a.tasks.clampCursor()
		a.calendar.clampCursor()
		a.status, a.isError = "All data cleared", false
		return a, a.refreshActivity()

	case statusMsg:
		a.status, a.isError = msg.text, msg.isError
		return a, nil

	case exportDoneMsg:
		a.status, a.isError = "Exported to "+msg.path, false
		a.exportPicking = false
		return a, nil
	}

	return a.updateActiveView(msg)
}

// onTimerTick advances the engine by one second if msg belongs to the live
// chain, and schedules the next tick.
func (a App) onTimerTick(msg timerTickMsg) (tea.Model, tea.Cmd) {
	if msg.gen != a.timerGen || !a.c.Timer.Running() {
		return a, nil
	}
	before := a.c.Timer.State()
	err := a.c.Timer.Tick()
	cmds := []tea.Cmd{timerTickCmd(a.timerGen), errorCmd(err)}

	after := a.c.Timer.State()
	if after.Mode != before.Mode {
		if after.Mode == timer.ModeBreak {
			cmds = append(cmds, statusCmd(fmt.Sprintf("Session %d complete. Break time! \a", after.Sessions)))
		} else {
			cmds = append(cmds, statusCmd("Break over. Back to work! \a"))
		}
	}
	return a, tea.Batch(cmds...)
}

// refreshActivity recomputes the weekly rollup. It runs inside Update so
// that every component call stays on one goroutine.
func (a App) refreshActivity() tea.Cmd {
	report, err := a.c.Activity.Refresh()
	return func() tea.Msg { return activityMsg{report: report, err: err} }
}

func (a App) switchView(v viewState) (tea.Model, tea.Cmd) {
	a.activeView = v
	switch v {
	case viewDashboard, viewAnalytics:
		return a, a.refreshActivity()
	case viewCalendar:
		a.calendar.clampCursor()
	case viewTasks:
		a.tasks.clampCursor()
	}
	return a, nil
}

func (a App) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.activeView {
	case viewDashboard:
		a.dashboard, cmd = a.dashboard.update(msg)
	case viewTasks:
		a.tasks, cmd = a.tasks.update(msg)
	case viewCalendar:
		a.calendar, cmd = a.calendar.update(msg)
	case viewFocus:
		a.focus, cmd = a.focus.update(msg)
	case viewAnalytics:
		a.analytics, cmd = a.analytics.update(msg)
	case viewSettings:
		a.settings, cmd = a.settings.update(msg)
	}
	return a, cmd
}

func (a App) isFormActive() bool {
	switch a.activeView {
	case viewTasks:
		return a.tasks.formActive
	case viewCalendar:
		return a.calendar.formActive
	case viewSettings:
		return a.settings.formActive
	}
	return false
}

func (a App) View() string {
	if a.width == 0 {
		return "Loading..."
	}

	header := a.renderHeader()
	footer := a.renderFooter()

	var content string
	switch a.activeView {
	case viewDashboard:
		content = a.dashboard.view()
	case viewTasks:
		content = a.tasks.view()
	case viewCalendar:
		content = a.calendar.view()
	case viewFocus:
		content = a.focus.view()
	case viewAnalytics:
		content = a.analytics.view()
	case viewSettings:
		content = a.settings.view()
	}

	// Calculate available height for content
	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := a.height - headerHeight - footerHeight
	if contentHeight < 1 {
		contentHeight = 1
	}

	if a.exportPicking {
		content = a.renderExportPicker()
	}

	content = lipgloss.NewStyle().
		Width(a.width).
		Height(contentHeight).
		Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

func (a App) renderHeader() string {
	var tabs []string
	for i, name := range viewNames {
		if viewState(i) == a.activeView {
			tabs = append(tabs, activeTabStyle.Render(name))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(name))
		}
	}

	tabRow := lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)

	title := lipgloss.NewStyle().Bold(true).Foreground(colorPrimary).Render("zenflow")
	gap := a.width - lipgloss.Width(title) - lipgloss.Width(tabRow) - 4
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return headerStyle.Render(
		lipgloss.JoinHorizontal(lipgloss.Bottom, title, spacer, tabRow),
	)
}

func (a App) renderFooter() string {
	helpView := a.help.View(keys)

	status := ""
	if a.status != "" {
		style := mutedStyle
		if a.isError {
			style = errorStyle
		}
		status = style.Render(" " + a.status)
	}

	// Timer indicator in footer
	timerInfo := ""
	if st := a.c.Timer.State(); st.IsRunning {
		label := " ● " + timer.FormatClock(st.TimeRemaining)
		if st.Mode == timer.ModeBreak {
			timerInfo = successStyle.Render(label + " break")
		} else {
			timerInfo = accentStyle.Render(label + " work")
		}
	}

	left := footerStyle.Render(helpView)
	right := timerInfo + status

	gap := a.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return lipgloss.JoinHorizontal(lipgloss.Bottom, left, spacer, right)
}


func (a App) renderExportPicker() string {
	title := titleStyle.Render("Export")
	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")
	for i, f := range export.Formats {
		cursor := "  "
		style := normalItemStyle
		if i == a.exportCursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(cursor+f.Title()))
	}
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  enter: export  esc: cancel"))

	w := a.width - 4
	return activePanelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (a App) updateExportPicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if a.exportCursor > 0 {
			a.exportCursor--
		}
	case key.Matches(msg, keys.Down):
		if a.exportCursor < len(export.Formats)-1 {
			a.exportCursor++
		}
	case key.Matches(msg, keys.Enter):
		a.exportPicking = false
		return a, a.doExport(export.Formats[a.exportCursor])
	case key.Matches(msg, keys.Back):
		a.exportPicking = false
	}
	return a, nil
}

// doExport snapshots the data now and writes the file in the background.
func (a App) doExport(f export.Format) tea.Cmd {
	snap := a.c.Snapshot()
	path := filepath.Join(config.ExportDir(), export.DefaultFileName(f, snap))
	return func() tea.Msg {
		if err := export.Write(f, snap, path); err != nil {
			return statusMsg{text: fmt.Sprintf("Export error: %v", err), isError: true}
		}
		return exportDoneMsg{path: path}
	}
}
