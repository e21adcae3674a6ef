package tui

import (
	"fmt"
	"strings"

	"github.com/NimbleMarkets/ntcharts/barchart"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/zenflow/internal/activity"
)

type analyticsModel struct {
	width  int
	height int

	report activity.Report
	chart  barchart.Model
}

func newAnalyticsModel() analyticsModel {
	return analyticsModel{
		chart: barchart.New(60, 12),
	}
}

func (r *analyticsModel) setSize(w, h int) {
	r.width = w
	r.height = h
}

func (r *analyticsModel) setReport(rep activity.Report) {
	r.report = rep
	r.buildChart()
}

func (r analyticsModel) update(tea.Msg) (analyticsModel, tea.Cmd) {
	return r, nil
}

func (r *analyticsModel) buildChart() {
	chartWidth := r.width - 8
	if chartWidth < 20 {
		chartWidth = 20
	}
	chartHeight := 10
	if r.height > 36 {
		chartHeight = 14
	}

	r.chart = barchart.New(chartWidth, chartHeight)

	var bars []barchart.BarData
	for _, d := range r.report.Days {
		bars = append(bars, barchart.BarData{
			Label: d.Label,
			Values: []barchart.BarValue{
				{Name: "Sessions", Value: float64(d.Activity.Sessions), Style: sessionBarStyle},
				{Name: "Tasks", Value: float64(d.Activity.TasksCompleted), Style: taskBarStyle},
			},
		})
	}

	r.chart.PushAll(bars)
	r.chart.Draw()
}

func (r analyticsModel) view() string {
	w := r.width - 4
	t := r.report.Totals

	header := lipgloss.JoinHorizontal(lipgloss.Bottom,
		titleStyle.Render("Analytics"), "  ",
		mutedStyle.Render(r.weekLabel()),
	)

	totals := fmt.Sprintf("%s   %s   %s",
		highlightStyle.Render(fmt.Sprintf("%d sessions", t.Sessions)),
		highlightStyle.Render(activity.FormatFocus(t.FocusMinutes)+" focus"),
		highlightStyle.Render(fmt.Sprintf("%d tasks", t.TasksCompleted)),
	)

	legend := fmt.Sprintf("  %s Sessions  %s Tasks",
		sessionBarStyle.Render("●"), taskBarStyle.Render("●"))

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			header, "", totals, "", r.chart.View(), legend, "",
			r.renderTaskBars(w), "",
			r.renderTable(w),
		),
	)
}

func (r analyticsModel) weekLabel() string {
	first, last := r.report.Days[0], r.report.Days[6]
	if first.Key == "" {
		return ""
	}
	return fmt.Sprintf("%s – %s", first.Date.Format("Jan 02"), last.Date.Format("Jan 02, 2006"))
}

// renderTaskBars draws tasks completed per day scaled to the busiest day.
func (r analyticsModel) renderTaskBars(w int) string {
	track := max(min(w-24, 40), 5)
	top := activity.MaxTasks(r.report.Days[:])

	rows := []string{subtitleStyle.Render("Tasks completed")}
	for _, d := range r.report.Days {
		n := activity.ScaledBarHeight(d.Activity.TasksCompleted, top, track)
		bar := taskBarStyle.Render(strings.Repeat("█", n))
		if n == 0 {
			bar = mutedStyle.Render("▏")
		}
		label := mutedStyle.Render(d.Label)
		if d.IsToday {
			label = highlightStyle.Render(d.Label)
		}
		rows = append(rows, fmt.Sprintf("  %s %s %d", label, bar, d.Activity.TasksCompleted))
	}
	return strings.Join(rows, "\n")
}

func (r analyticsModel) renderTable(w int) string {
	var rows []string
	rows = append(rows, mutedStyle.Render(fmt.Sprintf("  %-12s %-4s %9s %8s %7s", "Date", "Day", "Sessions", "Focus", "Tasks")))
	rows = append(rows, mutedStyle.Render("  "+strings.Repeat("─", min(max(w-6, 1), 44))))
	for _, d := range r.report.Days {
		line := fmt.Sprintf("  %-12s %-4s %9d %8s %7d",
			d.Key, d.Label, d.Activity.Sessions,
			activity.FormatFocus(d.Activity.FocusMinutes), d.Activity.TasksCompleted)
		if d.IsToday {
			line = highlightStyle.Render(line)
		}
		rows = append(rows, line)
	}
	return strings.Join(rows, "\n")
}
