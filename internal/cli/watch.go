package cli

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sadopc/zenflow/internal/activity"
	"github.com/spf13/cobra"
)

func newWatchCommand(opts *options) *cobra.Command {
	var every time.Duration

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Keep the activity history rolled up without the dashboard",
		Long: `Watch refreshes today's activity entry on a fixed period and prints a
line after each refresh. It runs until interrupted.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, cfg, err := opts.open()
			if err != nil {
				return err
			}
			defer c.Close()

			if every <= 0 {
				every = cfg.Refresh
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			out := cmd.OutOrStdout()
			c.Activity.Watch(ctx, every, func(r activity.Report, err error) {
				printWatchLine(out, c.Clock.Now(), r, err)
			})
			return nil
		},
	}

	cmd.Flags().DurationVar(&every, "every", 0, "refresh period (default from config)")
	return cmd
}

func printWatchLine(w io.Writer, now time.Time, r activity.Report, err error) {
	if err != nil {
		fmt.Fprintf(w, "%s  error: %v\n", now.Format("15:04:05"), err)
		return
	}
	today := r.Map[r.Today]
	fmt.Fprintf(w, "%s  today %d sessions, %s focus, %d tasks | week %d sessions, %d tasks\n",
		now.Format("15:04:05"),
		today.Sessions, activity.FormatFocus(today.FocusMinutes), today.TasksCompleted,
		r.Totals.Sessions, r.Totals.TasksCompleted)
}
