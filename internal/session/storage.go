package session

import (
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"
)

// probeKey is written and removed by Available.
const probeKey = "__session_storage_test__"

// Check inspects a stored payload before it is decoded. A non-nil error
// makes Load fall back to its default.
type Check func(raw []byte) error

// Storage is the safe face of a Backend: reads fall back to a default and
// writes report success as a bool. Every failure is logged, none propagates.
type Storage struct {
	backend Backend
	log     zerolog.Logger
}

// New wraps backend. Failures are logged on l.
func New(backend Backend, l zerolog.Logger) *Storage {
	return &Storage{backend: backend, log: l}
}

// Backend returns the wrapped backend.
func (s *Storage) Backend() Backend { return s.backend }

// Load returns the value stored under key, or def when the key is absent,
// the payload fails a check, or it cannot be decoded into T.
func Load[T any](s *Storage, key string, def T, checks ...Check) T {
	raw, ok, err := s.backend.Get(key)
	if err != nil {
		s.log.Error().Err(err).Str("key", key).Msg("error reading from session storage")
		return def
	}
	if !ok {
		return def
	}

	for _, check := range checks {
		if err := check(raw); err != nil {
			s.log.Error().Err(err).Str("key", key).Msg("error reading from session storage")
			return def
		}
	}

	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		s.log.Error().Err(fmt.Errorf("json unmarshal: %w", err)).Str("key", key).Msg("error reading from session storage")
		return def
	}
	return v
}

// Save serializes value as JSON and stores it under key.
func Save[T any](s *Storage, key string, value T) bool {
	b, err := json.Marshal(value)
	if err != nil {
		s.log.Error().Err(fmt.Errorf("json marshal: %w", err)).Str("key", key).Msg("error writing to session storage")
		return false
	}
	if err := s.backend.Set(key, b); err != nil {
		s.log.Error().Err(err).Str("key", key).Msg("error writing to session storage")
		return false
	}
	return true
}

// Remove deletes key. A missing key is not a failure.
func (s *Storage) Remove(key string) bool {
	if err := s.backend.Delete(key); err != nil {
		s.log.Error().Err(err).Str("key", key).Msg("error removing from session storage")
		return false
	}
	return true
}

// Clear removes every key of the session.
func (s *Storage) Clear() bool {
	if err := s.backend.Clear(); err != nil {
		s.log.Error().Err(err).Msg("error clearing session storage")
		return false
	}
	return true
}

// Available reports whether the backend accepts a write and a delete.
func (s *Storage) Available() bool {
	if err := s.backend.Set(probeKey, []byte(`"test"`)); err != nil {
		return false
	}
	return s.backend.Delete(probeKey) == nil
}

// Close releases the backend.
func (s *Storage) Close() error {
	return s.backend.Close()
}
