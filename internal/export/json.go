package export

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/sadopc/zenflow/internal/activity"
	"github.com/sadopc/zenflow/internal/events"
	"github.com/sadopc/zenflow/internal/tasks"
	"github.com/sadopc/zenflow/internal/timer"
)

// Snapshot is everything a full export contains.
type Snapshot struct {
	ExportedAt time.Time
	Tasks      []tasks.Task
	Events     []events.Event
	Timer      timer.State
	Settings   timer.Settings
	Activity   activity.WeeklyMap
}

type jsonExport struct {
	ExportedAt string             `json:"exported_at"`
	Tasks      []tasks.Task       `json:"tasks"`
	Events     []events.Event     `json:"events"`
	Timer      timer.State        `json:"timer"`
	Settings   timer.Settings     `json:"settings"`
	Activity   activity.WeeklyMap `json:"activity"`
}

// ToJSON writes s as indented JSON. Records keep their stored field names.
func ToJSON(s Snapshot, path string) error {
	export := jsonExport{
		ExportedAt: s.ExportedAt.UTC().Format(time.RFC3339),
		Tasks:      s.Tasks,
		Events:     s.Events,
		Timer:      s.Timer,
		Settings:   s.Settings,
		Activity:   s.Activity,
	}
	if export.Tasks == nil {
		export.Tasks = []tasks.Task{}
	}
	if export.Events == nil {
		export.Events = []events.Event{}
	}
	if export.Activity == nil {
		export.Activity = activity.WeeklyMap{}
	}

	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write json file: %w", err)
	}
	return nil
}
