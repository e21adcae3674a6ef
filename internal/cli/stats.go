package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/sadopc/zenflow/internal/activity"
	"github.com/spf13/cobra"
)

func newStatsCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Roll up today's activity and print the week",
		Long: `Stats refreshes today's entry in the weekly activity history from the
current tasks and timer, then prints Monday through Sunday of this week.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, _, err := opts.open()
			if err != nil {
				return err
			}
			defer c.Close()

			report, err := c.Activity.Refresh()
			printReport(cmd.OutOrStdout(), report)
			return err
		},
	}
}

func printReport(w io.Writer, r activity.Report) {
	rows := make([][]string, 0, len(r.Days))
	for _, d := range r.Days {
		label := d.Label
		if d.IsToday {
			label += " *"
		}
		rows = append(rows, []string{
			d.Key,
			label,
			strconv.Itoa(d.Activity.Sessions),
			activity.FormatFocus(d.Activity.FocusMinutes),
			strconv.Itoa(d.Activity.TasksCompleted),
		})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("Date", "Day", "Sessions", "Focus", "Tasks").
		Rows(rows...)

	fmt.Fprintln(w, t.Render())
	fmt.Fprintf(w, "Week: %d sessions, %s focus, %d tasks completed\n",
		r.Totals.Sessions, activity.FormatFocus(r.Totals.FocusMinutes), r.Totals.TasksCompleted)
}
