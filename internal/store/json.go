package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
)

// DecodeError reports a record whose stored text is not valid JSON for the
// requested type. Readers recover from it by falling back to defaults.
type DecodeError struct {
	Key string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode record %q: %v", e.Key, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// GetJSON decodes the record at key into v. ok is false when the key is
// absent, in which case v is untouched. A malformed record yields a
// *DecodeError; a storage failure is returned as-is.
func GetJSON(r Records, key string, v any) (bool, error) {
	raw, ok, err := r.Get(key)
	if err != nil || !ok {
		return false, err
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		return false, &DecodeError{Key: key, Err: err}
	}
	return true, nil
}

// SetJSON encodes v and stores it at key.
func SetJSON(r Records, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode record %q: %w", key, err)
	}
	return r.Set(key, string(data))
}

// LoadJSON is GetJSON for readers that recover locally: any failure is
// logged on logger and reported as ok=false, leaving v at its default.
func LoadJSON(r Records, key string, v any, logger *slog.Logger) bool {
	ok, err := GetJSON(r, key, v)
	if err == nil {
		return ok
	}
	if logger != nil {
		var de *DecodeError
		if errors.As(err, &de) {
			logger.Warn("discarding malformed record", "key", key, "err", de.Err)
		} else {
			logger.Error("read record", "key", key, "err", err)
		}
	}
	return false
}
