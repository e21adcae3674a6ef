// Package tasks implements the task ledger: an ordered, newest-first list of
// to-do items persisted as one JSON record.
package tasks

import (
	"fmt"
	"io"
	"log/slog"
	"math"
	"strings"

	"github.com/google/uuid"
	"github.com/sadopc/zenflow/internal/calendar"
	"github.com/sadopc/zenflow/internal/store"
)

// StorageKey is the record holding the ledger.
const StorageKey = "zenflow-todos"

type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

type Task struct {
	ID        string   `json:"id"`
	Text      string   `json:"text"`
	Completed bool     `json:"completed"`
	Priority  Priority `json:"priority"`
	CreatedAt int64    `json:"createdAt"` // unix milliseconds
}

// Summary is the ledger partitioned for display.
type Summary struct {
	Pending         []Task
	Completed       []Task
	CompletedCount  int
	Total           int
	ProgressPercent int
}

type Ledger struct {
	records store.Records
	clock   calendar.Clock
	log     *slog.Logger
	newID   func() string

	tasks []Task
}

// Load reads the ledger from records. A missing or malformed record yields an
// empty ledger.
func Load(records store.Records, clock calendar.Clock, logger *slog.Logger) *Ledger {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	l := &Ledger{
		records: records,
		clock:   clock,
		log:     logger,
		newID:   func() string { return uuid.New().String() },
	}
	l.Reload()
	return l
}

// ReadSnapshot returns the last persisted ledger without retaining it.
// ok is false when no ledger has been persisted or it could not be read.
func ReadSnapshot(records store.Records, logger *slog.Logger) (tasks []Task, ok bool) {
	if !store.LoadJSON(records, StorageKey, &tasks, logger) {
		return nil, false
	}
	return tasks, true
}

// Reload discards in-memory state and re-reads the persisted ledger.
func (l *Ledger) Reload() {
	l.tasks, _ = ReadSnapshot(l.records, l.log)
}

// Add prepends a new high-priority task. Blank text is ignored and returns nil.
func (l *Ledger) Add(text string) (*Task, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, nil
	}
	t := Task{
		ID:        l.newID(),
		Text:      text,
		Completed: false,
		Priority:  PriorityHigh,
		CreatedAt: l.clock.Now().UnixMilli(),
	}
	l.tasks = append([]Task{t}, l.tasks...)
	return &t, l.save()
}

// Toggle flips completion of the task with id. Unknown ids are a no-op.
func (l *Ledger) Toggle(id string) error {
	for i := range l.tasks {
		if l.tasks[i].ID == id {
			l.tasks[i].Completed = !l.tasks[i].Completed
			return l.save()
		}
	}
	return nil
}

// Delete removes the task with id. Unknown ids are a no-op.
func (l *Ledger) Delete(id string) error {
	for i := range l.tasks {
		if l.tasks[i].ID == id {
			l.tasks = append(l.tasks[:i], l.tasks[i+1:]...)
			return l.save()
		}
	}
	return nil
}

// Tasks returns a copy of the ledger in stored order.
func (l *Ledger) Tasks() []Task {
	out := make([]Task, len(l.tasks))
	copy(out, l.tasks)
	return out
}

func (l *Ledger) List() Summary {
	return Summarize(l.tasks)
}

// Summarize partitions tasks into pending and completed, keeping ledger order.
func Summarize(tasks []Task) Summary {
	s := Summary{Total: len(tasks)}
	for _, t := range tasks {
		if t.Completed {
			s.Completed = append(s.Completed, t)
		} else {
			s.Pending = append(s.Pending, t)
		}
	}
	s.CompletedCount = len(s.Completed)
	s.ProgressPercent = ProgressPercent(s.CompletedCount, s.Total)
	return s
}

// ProgressPercent is round(100*completed/total), or 0 for an empty ledger.
func ProgressPercent(completed, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(100 * float64(completed) / float64(total)))
}

// CountCompleted counts tasks currently marked completed.
func CountCompleted(tasks []Task) int {
	n := 0
	for _, t := range tasks {
		if t.Completed {
			n++
		}
	}
	return n
}

func (l *Ledger) save() error {
	tasks := l.tasks
	if tasks == nil {
		tasks = []Task{}
	}
	if err := store.SetJSON(l.records, StorageKey, tasks); err != nil {
		l.log.Error("persist task ledger", "err", err)
		return fmt.Errorf("save tasks: %w", err)
	}
	return nil
}
