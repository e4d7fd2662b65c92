package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

const (
	maxRetries  = 5
	initialWait = 50 * time.Millisecond
	busyTimeout = 5000 // milliseconds
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS session_entries (
	session    TEXT    NOT NULL,
	key        TEXT    NOT NULL,
	value      BLOB    NOT NULL,
	updated_at INTEGER NOT NULL,
	PRIMARY KEY (session, key)
);`

// SQLite keeps every session in one database file; rows are keyed by
// (session, key) so Clear only touches the current session.
type SQLite struct {
	conn    *sql.DB
	session string
}

var _ Backend = (*SQLite)(nil)

// OpenSQLite opens (creating if needed) the database at path.
func OpenSQLite(path, session string) (*SQLite, error) {
	if session == "" {
		return nil, fmt.Errorf("sqlite backend: empty session name")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("mkdir: %w", err)
	}

	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(%d)", path, busyTimeout)
	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// single writer; avoids SQLITE_BUSY between pooled connections
	conn.SetMaxOpenConns(1)

	s := &SQLite{conn: conn, session: session}
	ctx := context.Background()

	if err := s.pingWithRetry(ctx); err != nil {
		_ = conn.Close()
		return nil, err
	}
	if _, err := conn.ExecContext(ctx, schemaSQL); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return s, nil
}

func (s *SQLite) pingWithRetry(ctx context.Context) error {
	wait := initialWait
	for i := 0; i < maxRetries; i++ {
		if err := s.conn.PingContext(ctx); err == nil {
			return nil
		}
		if i < maxRetries-1 {
			time.Sleep(wait)
			wait *= 2
		}
	}
	return fmt.Errorf("ping database after %d retries", maxRetries)
}

func (s *SQLite) Get(key string) ([]byte, bool, error) {
	var value []byte
	err := s.conn.QueryRow(
		`SELECT value FROM session_entries WHERE session = ? AND key = ?`,
		s.session, key,
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("sqlite get %q: %w", key, err)
	}
	return value, true, nil
}

func (s *SQLite) Set(key string, value []byte) error {
	_, err := s.conn.Exec(
		`INSERT INTO session_entries (session, key, value, updated_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT (session, key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		s.session, key, value, time.Now().UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("sqlite set %q: %w", key, err)
	}
	return nil
}

func (s *SQLite) Delete(key string) error {
	if _, err := s.conn.Exec(`DELETE FROM session_entries WHERE session = ? AND key = ?`, s.session, key); err != nil {
		return fmt.Errorf("sqlite delete %q: %w", key, err)
	}
	return nil
}

func (s *SQLite) Clear() error {
	if _, err := s.conn.Exec(`DELETE FROM session_entries WHERE session = ?`, s.session); err != nil {
		return fmt.Errorf("sqlite clear: %w", err)
	}
	return nil
}

// Sessions lists the session names that currently hold at least one key.
func (s *SQLite) Sessions() ([]string, error) {
	rows, err := s.conn.Query(`SELECT DISTINCT session FROM session_entries ORDER BY session`)
	if err != nil {
		return nil, fmt.Errorf("sqlite sessions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("sqlite sessions scan: %w", err)
		}
		out = append(out, name)
	}
	return out, rows.Err()
}

func (s *SQLite) Close() error {
	return s.conn.Close()
}
