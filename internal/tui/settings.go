package tui

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/zenflow/internal/app"
	"github.com/sadopc/zenflow/internal/timer"
)

const customPreset = "custom"

type settingsModel struct {
	c      *app.Container
	width  int
	height int

	formActive bool
	form       *huh.Form
	formType   string // "timer", "clear"

	// Form values as pointers (survive value copies)
	preset       *string
	workMinutes  *string
	breakMinutes *string
	confirmClear *bool
}

func newSettingsModel(c *app.Container) settingsModel {
	p, wm, bm := customPreset, "", ""
	confirm := false
	return settingsModel{
		c:            c,
		preset:       &p,
		workMinutes:  &wm,
		breakMinutes: &bm,
		confirmClear: &confirm,
	}
}

func (s *settingsModel) setSize(w, h int) {
	s.width = w
	s.height = h
}

func (s settingsModel) update(msg tea.Msg) (settingsModel, tea.Cmd) {
	if s.formActive && s.form != nil {
		return s.updateForm(msg)
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, keys.Enter), key.Matches(msg, keys.New):
			return s.showTimerForm()
		case key.Matches(msg, keys.Clear):
			return s.showClearForm()
		}
	}
	return s, nil
}

func (s settingsModel) showTimerForm() (settingsModel, tea.Cmd) {
	cur := s.c.Timer.Settings()
	*s.preset = customPreset
	*s.workMinutes = strconv.Itoa(cur.WorkDuration)
	*s.breakMinutes = strconv.Itoa(cur.BreakDuration)
	s.formType = "timer"

	options := []huh.Option[string]{huh.NewOption("Custom (fields below)", customPreset)}
	for _, p := range timer.Presets {
		label := fmt.Sprintf("%s work / %d min break", p.Label, p.Settings.BreakDuration)
		options = append(options, huh.NewOption(label, p.Label))
	}

	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().Title("Preset").Options(options...).Value(s.preset),
			huh.NewInput().
				Title(fmt.Sprintf("Work duration (%d-%d min)", timer.MinWork, timer.MaxWork)).
				Value(s.workMinutes),
			huh.NewInput().
				Title(fmt.Sprintf("Break duration (%d-%d min)", timer.MinBreak, timer.MaxBreak)).
				Value(s.breakMinutes),
		).Title("Timer"),
	).WithShowHelp(true).WithShowErrors(true)

	s.formActive = true
	return s, s.form.Init()
}

func (s settingsModel) showClearForm() (settingsModel, tea.Cmd) {
	*s.confirmClear = false
	s.formType = "clear"

	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Clear all data?").
				Description("Tasks, events, timer, settings and activity history will be deleted.").
				Affirmative("Delete everything").
				Negative("Cancel").
				Value(s.confirmClear),
		),
	).WithShowHelp(true)

	s.formActive = true
	return s, s.form.Init()
}

func (s settingsModel) updateForm(msg tea.Msg) (settingsModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			s.formActive = false
			s.form = nil
			return s, nil
		}
	}

	form, cmd := s.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		s.form = f
	}

	if s.form.State == huh.StateCompleted {
		s.formActive = false
		s.form = nil
		switch s.formType {
		case "timer":
			return s, s.saveTimerSettings()
		case "clear":
			if *s.confirmClear {
				s.c.ClearAllData()
				return s, func() tea.Msg { return dataClearedMsg{} }
			}
		}
		return s, nil
	}

	return s, cmd
}

// saveTimerSettings applies the chosen preset, or the typed durations when
// no preset is selected. Applying settings always stops the timer.
func (s settingsModel) saveTimerSettings() tea.Cmd {
	next := timer.ParseSettings(*s.workMinutes, *s.breakMinutes)
	for _, p := range timer.Presets {
		if p.Label == *s.preset {
			next = p.Settings
		}
	}
	changed := func() tea.Msg { return timerChangedMsg{} }
	if err := s.c.Timer.ApplySettings(next); err != nil {
		return tea.Batch(changed, errorCmd(err))
	}
	applied := s.c.Timer.Settings()
	return tea.Batch(changed, statusCmd(fmt.Sprintf("Timer set to %d/%d min", applied.WorkDuration, applied.BreakDuration)))
}

func (s settingsModel) view() string {
	w := s.width - 4
	title := titleStyle.Render("Settings")

	if s.formActive && s.form != nil {
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", s.form.View()),
		)
	}

	cur := s.c.Timer.Settings()
	label := lipgloss.NewStyle().Width(20)

	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")
	rows = append(rows, fmt.Sprintf("  %s %s", label.Render("Work duration"), highlightStyle.Render(fmt.Sprintf("%d min", cur.WorkDuration))))
	rows = append(rows, fmt.Sprintf("  %s %s", label.Render("Break duration"), highlightStyle.Render(fmt.Sprintf("%d min", cur.BreakDuration))))
	rows = append(rows, "")
	rows = append(rows, subtitleStyle.Render("  Presets"))
	for _, p := range timer.Presets {
		mark := "  "
		if p.Settings == cur {
			mark = successStyle.Render("✓ ")
		}
		rows = append(rows, fmt.Sprintf("  %s%s", mark, normalItemStyle.Render(
			fmt.Sprintf("%-7s %d/%d", p.Label, p.Settings.WorkDuration, p.Settings.BreakDuration))))
	}
	rows = append(rows, "")
	rows = append(rows, subtitleStyle.Render("  Stored data"))
	recs, err := s.c.StoredRecords()
	switch {
	case err != nil:
		rows = append(rows, errorStyle.Render("  "+err.Error()))
	case len(recs) == 0:
		rows = append(rows, mutedStyle.Render("  nothing saved yet"))
	}
	for _, r := range recs {
		rows = append(rows, fmt.Sprintf("  %s %s",
			normalItemStyle.Width(28).Render(r.Key),
			mutedStyle.Render(r.UpdatedAt.Local().Format("Jan 02 15:04"))))
	}
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  enter: edit timer  "))
	rows = append(rows, warningStyle.Render("  C: clear all data"))

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}
