package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/sadopc/zenflow/internal/activity"
	"github.com/sadopc/zenflow/internal/tasks"
)

// ActivityToCSV writes one row per day of the weekly view.
func ActivityToCSV(days []activity.Day, path string) error {
	rows := make([][]string, 0, len(days))
	for _, d := range days {
		rows = append(rows, []string{
			d.Key,
			d.Label,
			strconv.Itoa(d.Activity.Sessions),
			strconv.Itoa(d.Activity.FocusMinutes),
			strconv.Itoa(d.Activity.TasksCompleted),
		})
	}
	return writeCSV(path, []string{"Date", "Day", "Sessions", "Focus Minutes", "Tasks Completed"}, rows)
}

// TasksToCSV writes the ledger in stored order.
func TasksToCSV(ts []tasks.Task, path string) error {
	rows := make([][]string, 0, len(ts))
	for _, t := range ts {
		rows = append(rows, []string{
			t.ID,
			t.Text,
			string(t.Priority),
			strconv.FormatBool(t.Completed),
			time.UnixMilli(t.CreatedAt).Local().Format(time.RFC3339),
		})
	}
	return writeCSV(path, []string{"ID", "Task", "Priority", "Completed", "Created"}, rows)
}

func writeCSV(path string, header []string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return err
	}
	if err := w.WriteAll(rows); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	return nil
}
