package statistics

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/hrathore/padhai/internal/session"
)

// Repository defines the read queries the aggregator runs.
type Repository interface {
	LogsBetween(ctx context.Context, from, to string) ([]session.Log, error)
	TopicAggregates(ctx context.Context, from string) ([]TopicAggregate, error)
}

// DBRepository implements Repository using SQLite.
type DBRepository struct {
	db *sqlx.DB
}

// NewDBRepository creates a new DBRepository.
func NewDBRepository(db *sqlx.DB) *DBRepository {
	return &DBRepository{db: db}
}

// LogsBetween returns session logs with from <= log_date <= to.
func (r *DBRepository) LogsBetween(ctx context.Context, from, to string) ([]session.Log, error) {
	var logs []session.Log
	if err := r.db.SelectContext(ctx, &logs,
		"SELECT * FROM session_logs WHERE log_date BETWEEN ? AND ? ORDER BY log_date, id",
		from, to); err != nil {
		return nil, fmt.Errorf("db.SelectContext(logs between) > %w", err)
	}
	return logs, nil
}

// TopicAggregates sums studied minutes and practice results per topic over
// logs since from. Topics without logs appear with zero totals.
func (r *DBRepository) TopicAggregates(ctx context.Context, from string) ([]TopicAggregate, error) {
	var aggregates []TopicAggregate
	if err := r.db.SelectContext(ctx, &aggregates, `
		SELECT t.id AS topic_id,
		       t.name,
		       t.paper,
		       t.section,
		       CAST(ROUND(t.target_hours * 60) AS INTEGER) AS target_minutes,
		       COALESCE(SUM(CASE WHEN l.skipped = 0 THEN l.minutes END), 0)        AS studied_minutes,
		       COALESCE(SUM(CASE WHEN l.skipped = 0 THEN l.questions_done END), 0) AS questions_done,
		       COALESCE(SUM(CASE WHEN l.skipped = 0 THEN l.correct END), 0)        AS correct
		FROM topics t
		LEFT JOIN session_logs l ON l.topic_id = t.id AND l.log_date >= ?
		GROUP BY t.id
		ORDER BY t.paper, t.section, t.id
	`, from); err != nil {
		return nil, fmt.Errorf("db.SelectContext(topic aggregates) > %w", err)
	}
	return aggregates, nil
}
