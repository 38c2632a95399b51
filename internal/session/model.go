// Package session records completed and skipped study blocks.
package session

import (
	"database/sql"
	"errors"
	"time"
)

// ErrInvalidScore is returned when a practice score cannot be parsed.
var ErrInvalidScore = errors.New("invalid score, use forms like 8/10, 80% or 8")

// ErrInvalidMinutes is returned for out-of-range session durations.
var ErrInvalidMinutes = errors.New("minutes must be between 1 and 720")

// Log is one append-only record of a finished or skipped block.
type Log struct {
	ID            int64         `db:"id"`
	LogDate       string        `db:"log_date"`
	OrderIndex    int           `db:"order_index"`
	TopicID       sql.NullInt64 `db:"topic_id"`
	Minutes       int           `db:"minutes"`
	QuestionsDone int           `db:"questions_done"`
	Correct       int           `db:"correct"`
	Skipped       bool          `db:"skipped"`
	CreatedAt     time.Time     `db:"created_at"`
}

// Accuracy returns the fraction of correct answers, or 0 when no questions
// were attempted.
func (l Log) Accuracy() float64 {
	if l.QuestionsDone == 0 {
		return 0
	}
	return float64(l.Correct) / float64(l.QuestionsDone)
}
