package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// EventRecord mirrors the domain event structure for persistence.
// The events package does NOT import this; the adapter in cmd translates.
type EventRecord struct {
	ID        string    `json:"id" db:"id"`
	Timestamp time.Time `json:"timestamp" db:"timestamp"`
	EventType string    `json:"event_type" db:"event_type"`
	Stage     string    `json:"stage" db:"stage"`
	Age       int       `json:"age" db:"age"`
	Detail    string    `json:"detail" db:"detail"`
}

// SQLiteEventRepository appends simulation events to the SQLite ledger.
type SQLiteEventRepository struct {
	db *sql.DB
}

func NewSQLiteEventRepository(db *sql.DB) *SQLiteEventRepository {
	return &SQLiteEventRepository{db: db}
}

func (r *SQLiteEventRepository) Append(ctx context.Context, event EventRecord) error {
	query := `
		INSERT INTO pet_events (id, timestamp, event_type, stage, age, detail)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.ExecContext(ctx, query,
		event.ID, event.Timestamp, event.EventType, event.Stage, event.Age, event.Detail,
	)
	if err != nil {
		return fmt.Errorf("failed to append event: %w", err)
	}
	return nil
}

func (r *SQLiteEventRepository) getMany(ctx context.Context, query string, args ...interface{}) ([]EventRecord, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []EventRecord
	for rows.Next() {
		var e EventRecord
		if err := rows.Scan(&e.ID, &e.Timestamp, &e.EventType, &e.Stage, &e.Age, &e.Detail); err != nil {
			return nil, err
		}
		records = append(records, e)
	}
	return records, rows.Err()
}

// GetByType retrieves all ledger events of one type, oldest first.
func (r *SQLiteEventRepository) GetByType(ctx context.Context, eventType string) ([]EventRecord, error) {
	query := `SELECT id, timestamp, event_type, stage, age, detail FROM pet_events WHERE event_type = ? ORDER BY timestamp ASC`
	return r.getMany(ctx, query, eventType)
}

// GetRecent retrieves the most recent ledger events, newest first.
func (r *SQLiteEventRepository) GetRecent(ctx context.Context, limit int) ([]EventRecord, error) {
	query := `SELECT id, timestamp, event_type, stage, age, detail FROM pet_events ORDER BY timestamp DESC LIMIT ?`
	return r.getMany(ctx, query, limit)
}
