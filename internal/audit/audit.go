// Package audit keeps a local, file-backed log of every mutation applied to
// the table set, so modders can trace what a session changed and when.
package audit

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

// Action is the kind of mutation being recorded.
type Action string

const (
	ActionPlaneAdd    Action = "plane_add"
	ActionPlaneEdit   Action = "plane_edit"
	ActionPlaneDelete Action = "plane_delete"
	ActionSkinAdd     Action = "skin_add"
	ActionSkinRemove  Action = "skin_remove"
	ActionCommit      Action = "commit"
)

// Entry is a single audit log row.
type Entry struct {
	ID        string    `json:"id"`
	Action    Action    `json:"action"`
	TableName string    `json:"table"`
	RowKey    string    `json:"rowKey,omitempty"`
	Detail    string    `json:"detail,omitempty"`
	SessionID string    `json:"sessionId,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Store is a SQLite-backed audit log.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the audit database at path.
// Use ":memory:" for an ephemeral store in tests.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open audit db: %w", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS
			audit_log
		(
			id         TEXT PRIMARY KEY,
			action     TEXT NOT NULL,
			table_name TEXT NOT NULL,
			row_key    TEXT,
			detail     TEXT,
			session_id TEXT,
			created_at TEXT NOT NULL
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("init audit schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Record appends an entry. A missing ID and timestamp are filled in.
func (s *Store) Record(ctx context.Context, e Entry) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO
			audit_log
				(id, action, table_name, row_key, detail, session_id, created_at)
		VALUES
				(?, ?, ?, ?, ?, ?, ?)
	`, e.ID, string(e.Action), e.TableName, e.RowKey, e.Detail, e.SessionID, e.CreatedAt.Format(time.RFC3339Nano))
	return err
}

// List returns the newest entries first, at most limit of them.
func (s *Store) List(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 100
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT
			id, action, table_name, row_key, detail, session_id, created_at
		FROM
			audit_log
		ORDER BY
			created_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var action, createdAt string
		if err := rows.Scan(&e.ID, &action, &e.TableName, &e.RowKey, &e.Detail, &e.SessionID, &createdAt); err != nil {
			return nil, err
		}
		e.Action = Action(action)
		e.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt)
		if err != nil {
			return nil, fmt.Errorf("parse created_at: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
