package plan

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// BlockRepository defines storage operations for daily study blocks.
type BlockRepository interface {
	FindByDate(ctx context.Context, date string) ([]StudyBlock, error)
	NextPending(ctx context.Context, date string) (*StudyBlock, error)
	InsertBlocks(ctx context.Context, blocks []StudyBlock) error
	UpdateStatus(ctx context.Context, id int64, status string) error
}

// DBBlockRepository implements BlockRepository using SQLite.
type DBBlockRepository struct {
	db *sqlx.DB
}

// NewDBBlockRepository creates a new DBBlockRepository.
func NewDBBlockRepository(db *sqlx.DB) *DBBlockRepository {
	return &DBBlockRepository{db: db}
}

// FindByDate returns the blocks of one day in plan order.
func (r *DBBlockRepository) FindByDate(ctx context.Context, date string) ([]StudyBlock, error) {
	var blocks []StudyBlock
	if err := r.db.SelectContext(ctx, &blocks,
		"SELECT * FROM daily_blocks WHERE plan_date = ? ORDER BY order_index",
		date); err != nil {
		return nil, fmt.Errorf("db.SelectContext(daily blocks) > %w", err)
	}
	return blocks, nil
}

// NextPending returns the first pending block of the day, or nil when none
// remains.
func (r *DBBlockRepository) NextPending(ctx context.Context, date string) (*StudyBlock, error) {
	var block StudyBlock
	err := r.db.GetContext(ctx, &block,
		"SELECT * FROM daily_blocks WHERE plan_date = ? AND status = ? ORDER BY order_index LIMIT 1",
		date, StatusPending)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("db.GetContext(next pending block) > %w", err)
	}
	return &block, nil
}

// InsertBlocks writes a full day's plan in one transaction.
func (r *DBBlockRepository) InsertBlocks(ctx context.Context, blocks []StudyBlock) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("db.BeginTxx() > %w", err)
	}
	defer tx.Rollback()

	for _, block := range blocks {
		_, err := tx.NamedExecContext(ctx, `
			INSERT INTO daily_blocks (plan_date, order_index, label, paper, section, target_minutes, topic_id, status)
			VALUES (:plan_date, :order_index, :label, :paper, :section, :target_minutes, :topic_id, :status)
		`, block)
		if err != nil {
			return fmt.Errorf("tx.NamedExecContext() > %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("tx.Commit() > %w", err)
	}
	return nil
}

// UpdateStatus sets a block's status.
func (r *DBBlockRepository) UpdateStatus(ctx context.Context, id int64, status string) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE daily_blocks SET status = ? WHERE id = ?", status, id)
	if err != nil {
		return fmt.Errorf("db.ExecContext(update block status) > %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("result.RowsAffected() > %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("study block %d not found", id)
	}
	return nil
}
