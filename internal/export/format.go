package export

import (
	"fmt"
	"strings"

	"github.com/sadopc/zenflow/internal/activity"
	"github.com/sadopc/zenflow/internal/calendar"
)

// Format selects what an export writes.
type Format string

const (
	FormatActivity Format = "activity" // weekly activity, CSV
	FormatTasks    Format = "tasks"    // task ledger, CSV
	FormatJSON     Format = "json"     // everything, JSON
)

// Formats lists every format in menu order.
var Formats = []Format{FormatActivity, FormatTasks, FormatJSON}

func ParseFormat(s string) (Format, error) {
	for _, f := range Formats {
		if strings.EqualFold(s, string(f)) {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown export format %q (want activity, tasks or json)", s)
}

// Title is the human label shown in pickers.
func (f Format) Title() string {
	switch f {
	case FormatActivity:
		return "Weekly activity (CSV)"
	case FormatTasks:
		return "Tasks (CSV)"
	default:
		return "Everything (JSON)"
	}
}

// FileName is the default file name for an export taken on day (YYYY-MM-DD).
func (f Format) FileName(day string) string {
	switch f {
	case FormatActivity:
		return fmt.Sprintf("zenflow-activity-%s.csv", day)
	case FormatTasks:
		return fmt.Sprintf("zenflow-tasks-%s.csv", day)
	default:
		return fmt.Sprintf("zenflow-export-%s.json", day)
	}
}

// Write exports s to path in format f. The activity CSV covers the week
// containing s.ExportedAt.
func Write(f Format, s Snapshot, path string) error {
	switch f {
	case FormatActivity:
		days := activity.Week(s.Activity, s.ExportedAt).Days
		return ActivityToCSV(days[:], path)
	case FormatTasks:
		return TasksToCSV(s.Tasks, path)
	case FormatJSON:
		return ToJSON(s, path)
	}
	return fmt.Errorf("unknown export format %q", f)
}

// DefaultFileName names an export of s in format f.
func DefaultFileName(f Format, s Snapshot) string {
	return f.FileName(calendar.DayKey(s.ExportedAt))
}
