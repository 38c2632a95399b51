// Package mock runs negative-marked mock tests from the question bank.
package mock

import (
	"database/sql"
	"errors"
)

// Test kinds.
const (
	KindFull   = "full"
	KindMini   = "mini"
	KindPaper1 = "paper1"
)

var (
	// ErrInsufficientQuestions is returned when the bank cannot fill the
	// requested test size. No attempt is recorded.
	ErrInsufficientQuestions = errors.New("not enough questions in the bank")
	// ErrNoAttempt is returned when no mock test is in progress.
	ErrNoAttempt = errors.New("no mock test in progress")
	// ErrAttemptInProgress is returned when a mock test is already running.
	ErrAttemptInProgress = errors.New("a mock test is already in progress")
	// ErrInvalidOption is returned for answer indexes outside a..d.
	ErrInvalidOption = errors.New("answer must be one of a, b, c or d")
	// ErrUnknownKind is returned for unrecognised test kinds.
	ErrUnknownKind = errors.New("unknown mock kind, use full, mini or paper1")
)

// Question is one multiple-choice entry of the bank.
type Question struct {
	ID          int64         `db:"id"`
	Paper       int           `db:"paper"`
	Section     string        `db:"section"`
	TopicID     sql.NullInt64 `db:"topic_id"`
	Question    string        `db:"question"`
	OptionA     string        `db:"option_a"`
	OptionB     string        `db:"option_b"`
	OptionC     string        `db:"option_c"`
	OptionD     string        `db:"option_d"`
	AnswerIndex int           `db:"answer_index"`
	Level       string        `db:"level"`
	Explanation string        `db:"explanation"`
}

// Options returns the four answer options in order.
func (q Question) Options() []string {
	return []string{q.OptionA, q.OptionB, q.OptionC, q.OptionD}
}

// Attempt is one immutable finished mock test.
type Attempt struct {
	ID              int64   `db:"id"`
	AttemptDate     string  `db:"attempt_date"`
	Kind            string  `db:"kind"`
	QuestionIDs     string  `db:"question_ids"`
	Answers         string  `db:"answers"`
	TotalQuestions  int     `db:"total_questions"`
	Attempted       int     `db:"attempted"`
	Correct         int     `db:"correct"`
	Wrong           int     `db:"wrong"`
	Skipped         int     `db:"skipped"`
	ScoreRaw        float64 `db:"score_raw"`
	ScoreNet        float64 `db:"score_net"`
	DurationSeconds int     `db:"duration_seconds"`
}
