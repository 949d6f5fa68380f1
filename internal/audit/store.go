package audit

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS events (
		seq        INTEGER PRIMARY KEY AUTOINCREMENT,
		event_id   TEXT NOT NULL,
		timestamp  TEXT NOT NULL,
		agent_id   TEXT NOT NULL,
		operation  TEXT NOT NULL,
		path       TEXT NOT NULL,
		success    INTEGER NOT NULL,
		details    TEXT
	)`,
	`CREATE INDEX IF NOT EXISTS idx_events_agent ON events(agent_id)`,
}

// SQLiteSink stores events durably in a local SQLite database.
type SQLiteSink struct {
	db *sql.DB
}

// OpenSQLite opens (or creates) the database at path and ensures the
// events table exists.
func OpenSQLite(path string) (*SQLiteSink, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("audit: create directory: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("audit: open database: %w", err)
	}
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("audit: create schema: %w", err)
		}
	}
	return &SQLiteSink{db: db}, nil
}

// Write inserts one event. Details are stored as JSON text.
func (s *SQLiteSink) Write(e Event) error {
	var details []byte
	if e.Details != nil {
		var err error
		details, err = json.Marshal(e.Details)
		if err != nil {
			return fmt.Errorf("audit: marshal details: %w", err)
		}
	}
	_, err := s.db.Exec(
		`INSERT INTO events (event_id, timestamp, agent_id, operation, path, success, details)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.Timestamp.UTC().Format(time.RFC3339Nano), e.AgentID,
		e.Operation, e.Path, boolToInt(e.Success), nullable(details),
	)
	if err != nil {
		return fmt.Errorf("audit: insert event: %w", err)
	}
	return nil
}

// Events returns every stored event in insertion order. An empty agentID
// returns all agents.
func (s *SQLiteSink) Events(agentID string) ([]Event, error) {
	query := `SELECT event_id, timestamp, agent_id, operation, path, success, details
	          FROM events ORDER BY seq`
	args := []any{}
	if agentID != "" {
		query = `SELECT event_id, timestamp, agent_id, operation, path, success, details
		         FROM events WHERE agent_id = ? ORDER BY seq`
		args = append(args, agentID)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("audit: query events: %w", err)
	}
	defer rows.Close()

	var out []Event
	for rows.Next() {
		var (
			e       Event
			ts      string
			success int
			details sql.NullString
		)
		if err := rows.Scan(&e.ID, &ts, &e.AgentID, &e.Operation, &e.Path, &success, &details); err != nil {
			return nil, fmt.Errorf("audit: scan event: %w", err)
		}
		if t, err := time.Parse(time.RFC3339Nano, ts); err == nil {
			e.Timestamp = t
		}
		e.Success = success != 0
		if details.Valid && details.String != "" {
			if err := json.Unmarshal([]byte(details.String), &e.Details); err != nil {
				return nil, fmt.Errorf("audit: decode details: %w", err)
			}
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("audit: iterate events: %w", err)
	}
	return out, nil
}

// Close closes the underlying database.
func (s *SQLiteSink) Close() error {
	return s.db.Close()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func nullable(b []byte) any {
	if len(b) == 0 {
		return nil
	}
	return string(b)
}
