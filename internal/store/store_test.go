package store

import (
	"path/filepath"
	"testing"
	"time"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewMemory()
	if err != nil {
		t.Fatalf("new memory store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// ============================================================
// Store initialization
// ============================================================

func TestNewMemory(t *testing.T) {
	s, err := NewMemory()
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	// Should have run migration v1
	var version int
	s.db.QueryRow("PRAGMA user_version").Scan(&version)
	if version != 1 {
		t.Fatalf("expected user_version 1, got %d", version)
	}
}

func TestNewWithPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sub", "zenflow.db")
	s, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Set("k", "v"); err != nil {
		t.Fatal(err)
	}
	s.Close()

	// Reopen: data survives and migration is not re-run destructively
	s2, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	defer s2.Close()
	v, ok, err := s2.Get("k")
	if err != nil || !ok || v != "v" {
		t.Fatalf("Get after reopen = %q, %v, %v", v, ok, err)
	}
}

func TestMigrationIdempotent(t *testing.T) {
	s := newTestStore(t)
	// Running migrate again should be a no-op
	if err := s.migrate(); err != nil {
		t.Fatalf("second migration failed: %v", err)
	}
}

// ============================================================
// Records
// ============================================================

func TestGetMissing(t *testing.T) {
	s := newTestStore(t)
	v, ok, err := s.Get("zenflow-todos")
	if err != nil {
		t.Fatal(err)
	}
	if ok || v != "" {
		t.Fatalf("expected absent key, got %q ok=%v", v, ok)
	}
}

func TestSetAndGet(t *testing.T) {
	s := newTestStore(t)
	if err := s.Set("zenflow-pomodoro", `{"sessions":2}`); err != nil {
		t.Fatal(err)
	}
	v, ok, err := s.Get("zenflow-pomodoro")
	if err != nil {
		t.Fatal(err)
	}
	if !ok || v != `{"sessions":2}` {
		t.Fatalf("Get = %q ok=%v", v, ok)
	}
}

func TestSetOverwrites(t *testing.T) {
	s := newTestStore(t)
	s.Set("k", "one")
	s.Set("k", "two")

	v, _, _ := s.Get("k")
	if v != "two" {
		t.Fatalf("expected overwrite, got %q", v)
	}
	keys, _ := s.Keys()
	if len(keys) != 1 {
		t.Fatalf("expected 1 key, got %d", len(keys))
	}
}

func TestSetEmptyValue(t *testing.T) {
	s := newTestStore(t)
	s.Set("k", "")
	v, ok, _ := s.Get("k")
	if !ok || v != "" {
		t.Fatalf("empty value should be stored, got %q ok=%v", v, ok)
	}
}

func TestRemove(t *testing.T) {
	s := newTestStore(t)
	s.Set("k", "v")
	if err := s.Remove("k"); err != nil {
		t.Fatal(err)
	}
	if _, ok, _ := s.Get("k"); ok {
		t.Fatal("key should be gone")
	}
	// Removing again is not an error
	if err := s.Remove("k"); err != nil {
		t.Fatalf("second remove: %v", err)
	}
}

func TestKeysSorted(t *testing.T) {
	s := newTestStore(t)
	s.Set("zenflow-todos", "[]")
	s.Set("zenflow-calendar-events", "[]")

	keys, err := s.Keys()
	if err != nil {
		t.Fatal(err)
	}
	if len(keys) != 2 || keys[0] != "zenflow-calendar-events" || keys[1] != "zenflow-todos" {
		t.Fatalf("unexpected keys %v", keys)
	}
}

func TestKeysEmpty(t *testing.T) {
	s := newTestStore(t)
	keys, err := s.Keys()
	if err != nil {
		t.Fatal(err)
	}
	if keys != nil {
		t.Fatalf("expected nil slice, got %d items", len(keys))
	}
}

func TestUpdatedAt(t *testing.T) {
	s := newTestStore(t)
	before := time.Now().UTC().Add(-2 * time.Second)
	s.Set("k", "v")

	at, err := s.UpdatedAt("k")
	if err != nil {
		t.Fatal(err)
	}
	if at.Before(before) {
		t.Fatalf("updated_at %v before %v", at, before)
	}

	if _, err := s.UpdatedAt("missing"); err == nil {
		t.Fatal("expected error for missing key")
	}
}

func TestClosedStoreReportsErrors(t *testing.T) {
	s, err := NewMemory()
	if err != nil {
		t.Fatal(err)
	}
	s.Close()

	if err := s.Set("k", "v"); err == nil {
		t.Fatal("Set on closed store should fail")
	}
	if _, _, err := s.Get("k"); err == nil {
		t.Fatal("Get on closed store should fail")
	}
	if err := s.Remove("k"); err == nil {
		t.Fatal("Remove on closed store should fail")
	}
}
