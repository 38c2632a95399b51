// Package plan generates and tracks the fixed daily study plan.
package plan

import (
	"database/sql"
	"errors"
)

// Block statuses.
const (
	StatusPending = "pending"
	StatusDone    = "done"
	StatusSkipped = "skipped"
)

// ErrNoActiveBlock is returned when every block of the day has already been
// completed or skipped.
var ErrNoActiveBlock = errors.New("no pending study block for today")

// StudyBlock is one timed slot of a day's plan.
type StudyBlock struct {
	ID            int64         `db:"id"`
	PlanDate      string        `db:"plan_date"`
	OrderIndex    int           `db:"order_index"`
	Label         string        `db:"label"`
	Paper         int           `db:"paper"`
	Section       string        `db:"section"`
	TargetMinutes int           `db:"target_minutes"`
	TopicID       sql.NullInt64 `db:"topic_id"`
	Status        string        `db:"status"`
}

// Hours returns the block target in hours.
func (b StudyBlock) Hours() float64 {
	return float64(b.TargetMinutes) / 60
}
