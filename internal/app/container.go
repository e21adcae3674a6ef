// Package app provides the dependency injection container for the application.
package app

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/sadopc/zenflow/internal/activity"
	"github.com/sadopc/zenflow/internal/calendar"
	"github.com/sadopc/zenflow/internal/config"
	"github.com/sadopc/zenflow/internal/events"
	"github.com/sadopc/zenflow/internal/export"
	"github.com/sadopc/zenflow/internal/logging"
	"github.com/sadopc/zenflow/internal/store"
	"github.com/sadopc/zenflow/internal/tasks"
	"github.com/sadopc/zenflow/internal/timer"
)

// StorageKeys lists every record the application owns.
var StorageKeys = []string{
	tasks.StorageKey,
	events.StorageKey,
	timer.StateKey,
	timer.SettingsKey,
	activity.StorageKey,
}

// Container holds the components, all built over one record store.
type Container struct {
	Records store.Records
	Clock   calendar.Clock
	Logger  *slog.Logger

	Tasks    *tasks.Ledger
	Events   *events.Planner
	Timer    *timer.Engine
	Activity *activity.Aggregator

	closers []func() error
}

// New builds every component over records.
func New(records store.Records, clock calendar.Clock, logger *slog.Logger) *Container {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Container{
		Records:  records,
		Clock:    clock,
		Logger:   logger,
		Tasks:    tasks.Load(records, clock, logger.With("component", "tasks")),
		Events:   events.Load(records, logger.With("component", "events")),
		Timer:    timer.Load(records, logger.With("component", "timer")),
		Activity: activity.New(records, clock, logger.With("component", "activity")),
	}
}

// Open opens the log file and the record store named by cfg and builds a
// container over them. Close releases both.
func Open(cfg config.Config) (*Container, error) {
	logger, closeLog, err := logging.New(cfg.LogFile, logging.ParseLevel(cfg.LogLevel))
	if err != nil {
		return nil, err
	}
	s, err := store.New(cfg.DBPath)
	if err != nil {
		closeLog()
		return nil, fmt.Errorf("open record store: %w", err)
	}
	logger.Info("zenflow started", "db", cfg.DBPath)

	c := New(s, calendar.RealClock{}, logger)
	c.closers = []func() error{s.Close, closeLog}
	return c, nil
}

// Close releases whatever Open acquired.
func (c *Container) Close() error {
	var errs []error
	for _, fn := range c.closers {
		errs = append(errs, fn())
	}
	c.closers = nil
	return errors.Join(errs...)
}

// ClearAllData removes every application record and reloads the components
// from the emptied store. Each removal is attempted regardless of the
// others; failures are logged.
func (c *Container) ClearAllData() {
	for _, key := range StorageKeys {
		if err := c.Records.Remove(key); err != nil {
			c.Logger.Error("remove record", "key", key, "err", err)
		}
	}
	c.Tasks.Reload()
	c.Events.Reload()
	c.Timer.Reload()
	c.Logger.Info("all data cleared")
}

// RecordInfo describes one stored record.
type RecordInfo struct {
	Key       string
	UpdatedAt time.Time
}

// StoredRecords lists the records currently held, or nil if the store
// cannot describe its contents.
func (c *Container) StoredRecords() ([]RecordInfo, error) {
	in, ok := c.Records.(store.Inspector)
	if !ok {
		return nil, nil
	}
	keys, err := in.Keys()
	if err != nil {
		return nil, err
	}
	out := make([]RecordInfo, 0, len(keys))
	for _, k := range keys {
		at, err := in.UpdatedAt(k)
		if err != nil {
			return nil, err
		}
		out = append(out, RecordInfo{Key: k, UpdatedAt: at})
	}
	return out, nil
}

// Snapshot collects the state of every component for export.
func (c *Container) Snapshot() export.Snapshot {
	return export.Snapshot{
		ExportedAt: c.Clock.Now(),
		Tasks:      c.Tasks.Tasks(),
		Events:     c.Events.Events(),
		Timer:      c.Timer.State(),
		Settings:   c.Timer.Settings(),
		Activity:   activity.ReadMap(c.Records, c.Logger),
	}
}
