package activity

import (
	"fmt"
	"math"
)

// MinScaleMax keeps a quiet week from filling the whole track.
const MinScaleMax = 5

// FixedBarHeight scales tasks linearly at unit per task, capped at limit.
func FixedBarHeight(tasks, unit, limit int) int {
	if tasks <= 0 {
		return 0
	}
	return min(tasks*unit, limit)
}

// ScaledBarHeight scales tasks against the busiest day of the week, with the
// scale maximum never below MinScaleMax.
func ScaledBarHeight(tasks, observedMax, track int) int {
	if tasks <= 0 {
		return 0
	}
	top := max(observedMax, MinScaleMax)
	h := int(math.Round(float64(tasks) / float64(top) * float64(track)))
	return min(h, track)
}

// MaxTasks is the largest tasksCompleted among days.
func MaxTasks(days []Day) int {
	m := 0
	for _, d := range days {
		m = max(m, d.Activity.TasksCompleted)
	}
	return m
}

// FormatFocus renders focus minutes as "45m" or "1.5h".
func FormatFocus(minutes int) string {
	if minutes < 60 {
		return fmt.Sprintf("%dm", minutes)
	}
	return fmt.Sprintf("%.1fh", float64(minutes)/60)
}
