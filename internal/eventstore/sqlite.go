package eventstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS events (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	invocation_id TEXT NOT NULL,
	event_type TEXT NOT NULL,
	outcome TEXT NOT NULL DEFAULT '',
	timestamp INTEGER NOT NULL,
	payload BLOB NOT NULL,
	metadata TEXT
);
CREATE INDEX IF NOT EXISTS idx_invocation_id ON events(invocation_id);
CREATE INDEX IF NOT EXISTS idx_outcome ON events(outcome);
CREATE INDEX IF NOT EXISTS idx_timestamp ON events(timestamp);
`

const selectEvents = "SELECT id, invocation_id, event_type, timestamp, payload, metadata FROM events"

// SQLiteStore implements Store on a SQLite database (pure Go driver).
type SQLiteStore struct {
	db *sql.DB
	mu sync.RWMutex
}

// NewSQLiteStore opens or creates the history database at dbPath.
// ":memory:" gives a private in-memory database.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, wrap(ErrDatabaseOpenFailed, err)
	}
	// One connection keeps ":memory:" databases alive and serializes writers.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, wrap(ErrDatabaseOpenFailed, fmt.Errorf("initialize schema: %w", err))
	}
	return &SQLiteStore{db: db}, nil
}

// Append implements Store. The outcome metadata entry is copied into an
// indexed column.
func (s *SQLiteStore) Append(ctx context.Context, invocationID, eventType string, payload []byte, metadata map[string]string) error {
	var metadataJSON []byte
	if metadata != nil {
		var err error
		if metadataJSON, err = json.Marshal(metadata); err != nil {
			return wrap(ErrEventAppendFailed, fmt.Errorf("marshal metadata: %w", err))
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO events (invocation_id, event_type, outcome, timestamp, payload, metadata) VALUES (?, ?, ?, ?, ?, ?)",
		invocationID, eventType, metadata[MetadataOutcome], time.Now().UnixMilli(), payload, metadataJSON,
	)
	if err != nil {
		return wrap(ErrEventAppendFailed, err)
	}
	return nil
}

// GetByInvocationID implements Store.
func (s *SQLiteStore) GetByInvocationID(ctx context.Context, invocationID string) ([]Event, error) {
	return s.query(ctx, selectEvents+" WHERE invocation_id = ? ORDER BY id", invocationID)
}

// GetRange implements Store. Both bounds are inclusive.
func (s *SQLiteStore) GetRange(ctx context.Context, start, end time.Time) ([]Event, error) {
	return s.query(ctx, selectEvents+" WHERE timestamp >= ? AND timestamp <= ? ORDER BY id",
		start.UnixMilli(), end.UnixMilli())
}

// Recent implements Store. A non-positive limit means 20.
func (s *SQLiteStore) Recent(ctx context.Context, limit int) ([]Event, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.query(ctx, selectEvents+" ORDER BY id DESC LIMIT ?", limit)
}

// CountByOutcome implements Store.
func (s *SQLiteStore) CountByOutcome(ctx context.Context) (map[string]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, "SELECT outcome, COUNT(*) FROM events GROUP BY outcome")
	if err != nil {
		return nil, wrap(ErrEventQueryFailed, err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var (
			outcome string
			n       int
		)
		if err := rows.Scan(&outcome, &n); err != nil {
			return nil, wrap(ErrEventQueryFailed, fmt.Errorf("scan count: %w", err))
		}
		counts[outcome] = n
	}
	if err := rows.Err(); err != nil {
		return nil, wrap(ErrEventQueryFailed, err)
	}
	return counts, nil
}

// Prune implements Store.
func (s *SQLiteStore) Prune(ctx context.Context, keep int) (int64, error) {
	if keep < 0 {
		keep = 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx,
		"DELETE FROM events WHERE id NOT IN (SELECT id FROM events ORDER BY id DESC LIMIT ?)", keep)
	if err != nil {
		return 0, wrap(ErrEventPruneFailed, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, wrap(ErrEventPruneFailed, err)
	}
	return n, nil
}

func (s *SQLiteStore) query(ctx context.Context, query string, args ...any) ([]Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, wrap(ErrEventQueryFailed, err)
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, wrap(ErrEventQueryFailed, err)
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap(ErrEventQueryFailed, fmt.Errorf("iterate rows: %w", err))
	}
	return events, nil
}

func scanEvent(rows *sql.Rows) (*BaseEvent, error) {
	var (
		e            BaseEvent
		timestamp    int64
		metadataJSON []byte
	)
	if err := rows.Scan(&e.EventID, &e.EventInvocationID, &e.EventType, &timestamp, &e.EventPayload, &metadataJSON); err != nil {
		return nil, fmt.Errorf("scan event: %w", err)
	}
	e.EventTimestamp = time.UnixMilli(timestamp)
	if len(metadataJSON) > 0 {
		if err := json.Unmarshal(metadataJSON, &e.EventMetadata); err != nil {
			return nil, fmt.Errorf("unmarshal metadata: %w", err)
		}
	}
	return &e, nil
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Close()
}
