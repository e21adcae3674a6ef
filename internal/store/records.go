package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

func (s *Store) Get(key string) (string, bool, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM records WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get record %q: %w", key, err)
	}
	return value, true, nil
}

func (s *Store) Set(key, value string) error {
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := s.db.Exec(
		`INSERT INTO records (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, now,
	)
	if err != nil {
		return fmt.Errorf("set record %q: %w", key, err)
	}
	return nil
}

// Remove deletes key. Removing an absent key is not an error.
func (s *Store) Remove(key string) error {
	if _, err := s.db.Exec(`DELETE FROM records WHERE key = ?`, key); err != nil {
		return fmt.Errorf("remove record %q: %w", key, err)
	}
	return nil
}

// Keys lists every stored key in order.
func (s *Store) Keys() ([]string, error) {
	rows, err := s.db.Query(`SELECT key FROM records ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, err
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}

// UpdatedAt returns when key was last written.
func (s *Store) UpdatedAt(key string) (time.Time, error) {
	var updatedAt string
	err := s.db.QueryRow(`SELECT updated_at FROM records WHERE key = ?`, key).Scan(&updatedAt)
	if err != nil {
		return time.Time{}, fmt.Errorf("get record %q: %w", key, err)
	}
	t, _ := time.Parse(time.RFC3339, updatedAt)
	return t, nil
}
