package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/zenflow/internal/app"
	"github.com/sadopc/zenflow/internal/tasks"
)

type tasksModel struct {
	c      *app.Container
	width  int
	height int

	cursor int

	formActive bool
	form       *huh.Form
	formText   *string // survives value copies
}

func newTasksModel(c *app.Container) tasksModel {
	text := ""
	return tasksModel{c: c, formText: &text}
}

func (m *tasksModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

// rows is the display order: pending first, then completed.
func (m tasksModel) rows() []tasks.Task {
	sum := m.c.Tasks.List()
	return append(sum.Pending, sum.Completed...)
}

func (m *tasksModel) clampCursor() {
	n := len(m.c.Tasks.Tasks())
	if m.cursor >= n {
		m.cursor = max(0, n-1)
	}
}

func (m tasksModel) update(msg tea.Msg) (tasksModel, tea.Cmd) {
	if m.formActive && m.form != nil {
		return m.updateForm(msg)
	}

	msgKey, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	rows := m.rows()
	switch {
	case key.Matches(msgKey, keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msgKey, keys.Down):
		if m.cursor < len(rows)-1 {
			m.cursor++
		}
	case key.Matches(msgKey, keys.New):
		return m.showForm()
	case key.Matches(msgKey, keys.Toggle), key.Matches(msgKey, keys.Enter):
		if len(rows) > 0 {
			err := m.c.Tasks.Toggle(rows[m.cursor].ID)
			return m, errorCmd(err)
		}
	case key.Matches(msgKey, keys.Delete):
		if len(rows) > 0 {
			err := m.c.Tasks.Delete(rows[m.cursor].ID)
			m.clampCursor()
			return m, errorCmd(err)
		}
	}
	return m, nil
}

func (m tasksModel) showForm() (tasksModel, tea.Cmd) {
	*m.formText = ""
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("What needs doing?").Value(m.formText),
		),
	).WithShowHelp(true).WithShowErrors(true)

	m.formActive = true
	return m, m.form.Init()
}

func (m tasksModel) updateForm(msg tea.Msg) (tasksModel, tea.Cmd) {
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
		t, err := m.c.Tasks.Add(*m.formText)
		if t != nil {
			m.cursor = 0
		}
		return m, errorCmd(err)
	}

	return m, cmd
}

func (m tasksModel) view() string {
	w := m.width - 4

	if m.formActive && m.form != nil {
		title := titleStyle.Render("New Task")
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", m.form.View()),
		)
	}

	sum := m.c.Tasks.List()
	title := fmt.Sprintf("%s  %s",
		titleStyle.Render("Tasks"),
		mutedStyle.Render(fmt.Sprintf("%d/%d done · %d%%", sum.CompletedCount, sum.Total, sum.ProgressPercent)),
	)

	if sum.Total == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			title,
			"",
			mutedStyle.Render("No tasks yet. Press n to add one."),
		)
		return panelStyle.Width(w).Render(content)
	}

	var rows []string
	rows = append(rows, title)
	rows = append(rows, progressBar(float64(sum.ProgressPercent)/100, max(w-8, 1)))
	rows = append(rows, "")

	textWidth := w - 12
	i := 0
	if len(sum.Pending) > 0 {
		rows = append(rows, subtitleStyle.Render(fmt.Sprintf("Pending (%d)", len(sum.Pending))))
		for _, t := range sum.Pending {
			rows = append(rows, m.renderRow(i, "○", t.Text, normalItemStyle, textWidth))
			i++
		}
		rows = append(rows, "")
	}
	if len(sum.Completed) > 0 {
		rows = append(rows, subtitleStyle.Render(fmt.Sprintf("Completed (%d)", len(sum.Completed))))
		for _, t := range sum.Completed {
			rows = append(rows, m.renderRow(i, "✓", t.Text, doneItemStyle, textWidth))
			i++
		}
		rows = append(rows, "")
	}

	rows = append(rows, mutedStyle.Render("  n: new  space: toggle  d: delete"))
	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func (m tasksModel) renderRow(i int, mark, text string, style lipgloss.Style, w int) string {
	cursor := "  "
	if i == m.cursor {
		cursor = "> "
		style = selectedItemStyle
	}
	return style.Render(fmt.Sprintf("%s%s %s", cursor, mark, truncate(text, w)))
}
