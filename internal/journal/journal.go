// Package journal keeps a persistent diagnostic record of every control
// message pulled from the host, grouped by process session. It is strictly
// best-effort: the liveness core logs journal failures and carries on.
package journal

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

// Open opens sqlite with sensible defaults.
func Open(path string) (*sql.DB, error) {
	dsn := fmt.Sprintf("file:%s?_foreign_keys=on&_busy_timeout=5000", path)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1) // sqlite
	db.SetConnMaxLifetime(0)
	return db, nil
}

// Now returns UTC time truncated to seconds (consistent with SQLite default).
func Now() time.Time {
	return time.Now().UTC().Truncate(time.Second)
}

// Entry is one recorded control message.
type Entry struct {
	ID         int64
	SessionID  string
	ReceivedAt time.Time
	Raw        string
	Kind       string
}

// Journal records host traffic for one process session.
type Journal struct {
	db        *sql.DB
	sessionID string
}

// New opens a journal over db and begins a new session.
func New(ctx context.Context, db *sql.DB) (*Journal, error) {
	id := uuid.NewString()
	_, err := db.ExecContext(ctx,
		`INSERT INTO sessions (id, started_at) VALUES (?, ?)`,
		id, Now().Format(time.RFC3339))
	if err != nil {
		return nil, fmt.Errorf("begin session: %w", err)
	}
	return &Journal{db: db, sessionID: id}, nil
}

// SessionID returns the identifier of the current session.
func (j *Journal) SessionID() string {
	return j.sessionID
}

// Record stores one pulled message with its classification.
func (j *Journal) Record(ctx context.Context, raw, kind string) error {
	_, err := j.db.ExecContext(ctx,
		`INSERT INTO messages (session_id, received_at, raw, kind) VALUES (?, ?, ?, ?)`,
		j.sessionID, Now().Format(time.RFC3339), raw, kind)
	if err != nil {
		return fmt.Errorf("record message: %w", err)
	}
	return nil
}

// Recent returns up to n most recent entries for the current session,
// newest first.
func (j *Journal) Recent(ctx context.Context, n int) ([]Entry, error) {
	rows, err := j.db.QueryContext(ctx,
		`SELECT id, session_id, received_at, raw, kind
		 FROM messages WHERE session_id = ?
		 ORDER BY id DESC LIMIT ?`,
		j.sessionID, n)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var e Entry
		var ts string
		if err := rows.Scan(&e.ID, &e.SessionID, &ts, &e.Raw, &e.Kind); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		e.ReceivedAt, _ = time.Parse(time.RFC3339, ts)
		out = append(out, e)
	}
	return out, rows.Err()
}
