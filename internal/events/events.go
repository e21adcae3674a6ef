// Package events implements the event planner: dated calendar entries with a
// completion flag, keyed by day key.
package events

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/sadopc/zenflow/internal/store"
)

// StorageKey is the record holding every event.
const StorageKey = "zenflow-calendar-events"

type Event struct {
	ID        string `json:"id"`
	Date      string `json:"date"` // day key, YYYY-MM-DD
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

type Planner struct {
	records store.Records
	log     *slog.Logger
	newID   func() string

	events []Event
}

func Load(records store.Records, logger *slog.Logger) *Planner {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	p := &Planner{
		records: records,
		log:     logger,
		newID:   func() string { return uuid.New().String() },
	}
	p.Reload()
	return p
}

// Reload discards in-memory state and re-reads the persisted events.
func (p *Planner) Reload() {
	var evs []Event
	if !store.LoadJSON(p.records, StorageKey, &evs, p.log) {
		evs = nil
	}
	p.events = evs
}

// Add appends an event on date. A blank title or missing date is ignored.
func (p *Planner) Add(date, title string) (*Event, error) {
	title = strings.TrimSpace(title)
	if title == "" || date == "" {
		return nil, nil
	}
	ev := Event{
		ID:    p.newID(),
		Date:  date,
		Title: title,
	}
	p.events = append(p.events, ev)
	return &ev, p.save()
}

func (p *Planner) Toggle(id string) error {
	for i := range p.events {
		if p.events[i].ID == id {
			p.events[i].Completed = !p.events[i].Completed
			return p.save()
		}
	}
	return nil
}

func (p *Planner) Delete(id string) error {
	for i := range p.events {
		if p.events[i].ID == id {
			p.events = append(p.events[:i], p.events[i+1:]...)
			return p.save()
		}
	}
	return nil
}

// EventsOn returns the events dated date in insertion order.
func (p *Planner) EventsOn(date string) []Event {
	var out []Event
	for _, ev := range p.events {
		if ev.Date == date {
			out = append(out, ev)
		}
	}
	return out
}

func (p *Planner) HasEventsOn(date string) bool {
	for _, ev := range p.events {
		if ev.Date == date {
			return true
		}
	}
	return false
}

// Events returns a copy of every event in insertion order.
func (p *Planner) Events() []Event {
	out := make([]Event, len(p.events))
	copy(out, p.events)
	return out
}

func (p *Planner) save() error {
	evs := p.events
	if evs == nil {
		evs = []Event{}
	}
	if err := store.SetJSON(p.records, StorageKey, evs); err != nil {
		p.log.Error("persist events", "err", err)
		return fmt.Errorf("save events: %w", err)
	}
	return nil
}
