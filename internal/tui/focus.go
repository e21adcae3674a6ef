package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/zenflow/internal/activity"
	"github.com/sadopc/zenflow/internal/app"
	"github.com/sadopc/zenflow/internal/timer"
)

type focusModel struct {
	c      *app.Container
	width  int
	height int
}

func newFocusModel(c *app.Container) focusModel {
	return focusModel{c: c}
}

func (f *focusModel) setSize(w, h int) {
	f.width = w
	f.height = h
}

func (f focusModel) update(msg tea.Msg) (focusModel, tea.Cmd) {
	msgKey, ok := msg.(tea.KeyMsg)
	if !ok {
		return f, nil
	}

	var err error
	switch {
	case key.Matches(msgKey, keys.Toggle), key.Matches(msgKey, keys.Enter):
		err = f.c.Timer.ToggleRunning()
	case key.Matches(msgKey, keys.Reset):
		err = f.c.Timer.Reset()
	case key.Matches(msgKey, keys.WorkMode):
		err = f.c.Timer.SwitchMode(timer.ModeWork)
	case key.Matches(msgKey, keys.BreakMode):
		err = f.c.Timer.SwitchMode(timer.ModeBreak)
	default:
		return f, nil
	}
	return f, tea.Batch(errorCmd(err), func() tea.Msg { return timerChangedMsg{} })
}

func (f focusModel) view() string {
	w := f.width - 4
	st := f.c.Timer.State()
	settings := f.c.Timer.Settings()

	workTab := inactiveTabStyle.Render(fmt.Sprintf("Work %dm", settings.WorkDuration))
	breakTab := inactiveTabStyle.Render(fmt.Sprintf("Break %dm", settings.BreakDuration))
	style := timerWorkStyle
	if st.Mode == timer.ModeBreak {
		breakTab = activeTabStyle.Render(fmt.Sprintf("Break %dm", settings.BreakDuration))
		style = timerBreakStyle
	} else {
		workTab = activeTabStyle.Render(fmt.Sprintf("Work %dm", settings.WorkDuration))
	}
	if !st.IsRunning {
		style = timerStyle
	}

	status := mutedStyle.Render("Paused")
	if st.IsRunning {
		status = successStyle.Render("Running")
	}

	content := lipgloss.JoinVertical(lipgloss.Center,
		titleStyle.Render("Focus"),
		"",
		lipgloss.JoinHorizontal(lipgloss.Bottom, workTab, breakTab),
		"",
		style.Width(w-6).Render(f.c.Timer.Display()),
		status,
		"",
		progressBar(f.c.Timer.Progress(), min(max(w-10, 1), 50)),
		"",
		mutedStyle.Render(fmt.Sprintf("%d sessions completed · %s focused",
			st.Sessions, activity.FormatFocus(f.c.Timer.FocusMinutes()))),
	)

	controls := mutedStyle.Render("space: start/pause  r: reset  w: work  b: break")

	if st.IsRunning {
		return activePanelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Center, content, "", controls),
		)
	}
	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Center, content, "", controls),
	)
}
