package session

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// LogRepository defines storage operations for session logs.
type LogRepository interface {
	Insert(ctx context.Context, log Log) error
	FindByDate(ctx context.Context, date string) ([]Log, error)
}

// DBLogRepository implements LogRepository using SQLite.
type DBLogRepository struct {
	db *sqlx.DB
}

// NewDBLogRepository creates a new DBLogRepository.
func NewDBLogRepository(db *sqlx.DB) *DBLogRepository {
	return &DBLogRepository{db: db}
}

// Insert appends one session log. Logs are never updated or deleted.
func (r *DBLogRepository) Insert(ctx context.Context, log Log) error {
	_, err := r.db.NamedExecContext(ctx, `
		INSERT INTO session_logs (log_date, order_index, topic_id, minutes, questions_done, correct, skipped, created_at)
		VALUES (:log_date, :order_index, :topic_id, :minutes, :questions_done, :correct, :skipped, :created_at)
	`, log)
	if err != nil {
		return fmt.Errorf("db.NamedExecContext(session log) > %w", err)
	}
	return nil
}

// FindByDate returns the logs of one day in insertion order.
func (r *DBLogRepository) FindByDate(ctx context.Context, date string) ([]Log, error) {
	var logs []Log
	if err := r.db.SelectContext(ctx, &logs,
		"SELECT * FROM session_logs WHERE log_date = ? ORDER BY id", date); err != nil {
		return nil, fmt.Errorf("db.SelectContext(session logs) > %w", err)
	}
	return logs, nil
}
