package syllabus

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// TopicRepository defines read operations over the topic catalogue.
type TopicRepository interface {
	FindAll(ctx context.Context) ([]Topic, error)
	FindByPaper(ctx context.Context, paper int) ([]Topic, error)
	Find(ctx context.Context, id int64) (*Topic, error)
	HighestPriority(ctx context.Context, paper int, section string) (*Topic, error)
}

// DBTopicRepository implements TopicRepository using SQLite.
type DBTopicRepository struct {
	db *sqlx.DB
}

// NewDBTopicRepository creates a new DBTopicRepository.
func NewDBTopicRepository(db *sqlx.DB) *DBTopicRepository {
	return &DBTopicRepository{db: db}
}

// FindAll returns every topic ordered by paper, then section.
func (r *DBTopicRepository) FindAll(ctx context.Context) ([]Topic, error) {
	var topics []Topic
	if err := r.db.SelectContext(ctx, &topics,
		"SELECT * FROM topics ORDER BY paper, section, marks_weight DESC"); err != nil {
		return nil, fmt.Errorf("db.SelectContext(topics) > %w", err)
	}
	return topics, nil
}

// FindByPaper returns the topics of a single paper.
func (r *DBTopicRepository) FindByPaper(ctx context.Context, paper int) ([]Topic, error) {
	var topics []Topic
	if err := r.db.SelectContext(ctx, &topics,
		"SELECT * FROM topics WHERE paper = ? ORDER BY section, marks_weight DESC",
		paper); err != nil {
		return nil, fmt.Errorf("db.SelectContext(topics by paper) > %w", err)
	}
	return topics, nil
}

// Find returns a topic by id, or nil if not found.
func (r *DBTopicRepository) Find(ctx context.Context, id int64) (*Topic, error) {
	var topic Topic
	err := r.db.GetContext(ctx, &topic, "SELECT * FROM topics WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("db.GetContext(topic) > %w", err)
	}
	return &topic, nil
}

// HighestPriority returns the most important topic of a paper section, or nil
// when the section has no topics. Ordering is deterministic: priority rank,
// then marks weight, then id.
func (r *DBTopicRepository) HighestPriority(ctx context.Context, paper int, section string) (*Topic, error) {
	var topic Topic
	err := r.db.GetContext(ctx, &topic,
		`SELECT * FROM topics WHERE paper = ? AND section = ?
		ORDER BY CASE priority WHEN 'HIGH' THEN 0 WHEN 'MEDIUM' THEN 1 ELSE 2 END, marks_weight DESC, id
		LIMIT 1`,
		paper, section)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("db.GetContext(highest priority topic) > %w", err)
	}
	return &topic, nil
}
