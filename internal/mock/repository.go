package mock

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

//go:generate mockgen -source=repository.go -destination=../mocks/mock/mock_repository.go -package=mock_mock

// QuestionRepository defines read operations over the question bank.
type QuestionRepository interface {
	FindByPaper(ctx context.Context, paper int) ([]Question, error)
}

// AttemptRepository defines storage operations for finished attempts.
type AttemptRepository interface {
	Insert(ctx context.Context, attempt Attempt) error
	History(ctx context.Context, limit int) ([]Attempt, error)
}

// DBQuestionRepository implements QuestionRepository using SQLite.
type DBQuestionRepository struct {
	db *sqlx.DB
}

// NewDBQuestionRepository creates a new DBQuestionRepository.
func NewDBQuestionRepository(db *sqlx.DB) *DBQuestionRepository {
	return &DBQuestionRepository{db: db}
}

// FindByPaper returns the bank of one paper.
func (r *DBQuestionRepository) FindByPaper(ctx context.Context, paper int) ([]Question, error) {
	var questions []Question
	if err := r.db.SelectContext(ctx, &questions,
		"SELECT * FROM questions WHERE paper = ? ORDER BY id", paper); err != nil {
		return nil, fmt.Errorf("db.SelectContext(questions) > %w", err)
	}
	return questions, nil
}

// DBAttemptRepository implements AttemptRepository using SQLite.
type DBAttemptRepository struct {
	db *sqlx.DB
}

// NewDBAttemptRepository creates a new DBAttemptRepository.
func NewDBAttemptRepository(db *sqlx.DB) *DBAttemptRepository {
	return &DBAttemptRepository{db: db}
}

// Insert records one finished attempt.
func (r *DBAttemptRepository) Insert(ctx context.Context, attempt Attempt) error {
	_, err := r.db.NamedExecContext(ctx, `
		INSERT INTO mock_attempts (attempt_date, kind, question_ids, answers, total_questions, attempted, correct, wrong, skipped, score_raw, score_net, duration_seconds)
		VALUES (:attempt_date, :kind, :question_ids, :answers, :total_questions, :attempted, :correct, :wrong, :skipped, :score_raw, :score_net, :duration_seconds)
	`, attempt)
	if err != nil {
		return fmt.Errorf("db.NamedExecContext(mock attempt) > %w", err)
	}
	return nil
}

// History returns the most recent attempts, newest first.
func (r *DBAttemptRepository) History(ctx context.Context, limit int) ([]Attempt, error) {
	var attempts []Attempt
	if err := r.db.SelectContext(ctx, &attempts,
		"SELECT * FROM mock_attempts ORDER BY id DESC LIMIT ?", limit); err != nil {
		return nil, fmt.Errorf("db.SelectContext(mock attempts) > %w", err)
	}
	return attempts, nil
}
