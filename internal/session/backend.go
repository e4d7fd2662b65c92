// Package session is the key/value checkpoint store behind the todo list.
//
// A Backend moves raw bytes; Storage layers the load/save contract on top of
// it: decoding failures read as absence, write failures are logged and
// reported as false, nothing is ever returned as an error to the caller.
package session

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

var (
	// ErrQuotaExceeded is returned by a backend that refuses a write because
	// it would grow past its configured size.
	ErrQuotaExceeded = errors.New("session storage quota exceeded")
	// ErrUnknownDriver is returned by Open for an unsupported driver name.
	ErrUnknownDriver = errors.New("unknown storage driver")
	// ErrInvalidSession is returned for session names that cannot name a
	// session directory.
	ErrInvalidSession = errors.New("invalid session name")
)

// ValidateName rejects empty names and the path elements "." and "..",
// which url escaping leaves intact.
func ValidateName(session string) error {
	switch session {
	case "":
		return fmt.Errorf("%w: empty", ErrInvalidSession)
	case ".", "..":
		return fmt.Errorf("%w: %q", ErrInvalidSession, session)
	}
	return nil
}

// Backend is a byte store scoped to a single session.
type Backend interface {
	// Get returns the stored bytes and whether the key was present.
	Get(key string) ([]byte, bool, error)
	Set(key string, value []byte) error
	Delete(key string) error
	// Clear removes every key of the session.
	Clear() error
	Close() error
}

// Driver names accepted by Open.
const (
	DriverMemory = "memory"
	DriverFile   = "file"
	DriverSQLite = "sqlite"
)

// Drivers lists the supported driver names.
func Drivers() []string { return []string{DriverMemory, DriverFile, DriverSQLite} }

// Options selects and configures a backend.
type Options struct {
	Driver     string
	DataDir    string
	Session    string
	QuotaBytes int
}

// Open returns the backend for opts.Driver.
func Open(opts Options) (Backend, error) {
	switch strings.ToLower(opts.Driver) {
	case DriverMemory, "":
		return NewMemory(opts.QuotaBytes), nil
	case DriverFile:
		return NewFileBackend(filepath.Join(opts.DataDir, "sessions"), opts.Session)
	case DriverSQLite:
		return OpenSQLite(filepath.Join(opts.DataDir, "todo.db"), opts.Session)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, opts.Driver)
}
