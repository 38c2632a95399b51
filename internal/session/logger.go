package session

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/hrathore/padhai/internal/plan"
)

// Logger closes out study blocks: it records a session log and advances the
// day's plan.
type Logger struct {
	generator *plan.Generator
	blocks    plan.BlockRepository
	logs      LogRepository
	now       func() time.Time
}

// NewLogger creates a new Logger.
func NewLogger(generator *plan.Generator, blocks plan.BlockRepository, logs LogRepository) *Logger {
	return &Logger{
		generator: generator,
		blocks:    blocks,
		logs:      logs,
		now:       time.Now,
	}
}

// LogDone marks the current pending block done and records how it went.
// minutes 0 means the block's full target duration. score uses the
// ParseScore forms and may be empty.
func (l *Logger) LogDone(ctx context.Context, day time.Time, minutes int, score string) (*plan.StudyBlock, error) {
	questionsDone, correct, err := ParseScore(score)
	if err != nil {
		return nil, err
	}
	if minutes < 0 || minutes > 720 {
		return nil, ErrInvalidMinutes
	}

	block, err := l.generator.NextPending(ctx, day)
	if err != nil {
		return nil, fmt.Errorf("generator.NextPending() > %w", err)
	}
	if minutes == 0 {
		minutes = block.TargetMinutes
	}

	log := Log{
		LogDate:       block.PlanDate,
		OrderIndex:    block.OrderIndex,
		TopicID:       block.TopicID,
		Minutes:       minutes,
		QuestionsDone: questionsDone,
		Correct:       correct,
		CreatedAt:     l.now().UTC(),
	}
	if err := l.logs.Insert(ctx, log); err != nil {
		return nil, fmt.Errorf("logs.Insert() > %w", err)
	}
	if err := l.blocks.UpdateStatus(ctx, block.ID, plan.StatusDone); err != nil {
		return nil, fmt.Errorf("blocks.UpdateStatus() > %w", err)
	}
	slog.Info("Logged study block",
		slog.String("label", block.Label),
		slog.Int("minutes", minutes),
		slog.Int("questions", questionsDone),
	)
	return block, nil
}

// LogSkip marks the current pending block skipped. Skipped blocks record a
// zero-minute log so the day still shows what was passed over.
func (l *Logger) LogSkip(ctx context.Context, day time.Time) (*plan.StudyBlock, error) {
	block, err := l.generator.NextPending(ctx, day)
	if err != nil {
		return nil, fmt.Errorf("generator.NextPending() > %w", err)
	}

	log := Log{
		LogDate:    block.PlanDate,
		OrderIndex: block.OrderIndex,
		TopicID:    block.TopicID,
		Skipped:    true,
		CreatedAt:  l.now().UTC(),
	}
	if err := l.logs.Insert(ctx, log); err != nil {
		return nil, fmt.Errorf("logs.Insert() > %w", err)
	}
	if err := l.blocks.UpdateStatus(ctx, block.ID, plan.StatusSkipped); err != nil {
		return nil, fmt.Errorf("blocks.UpdateStatus() > %w", err)
	}
	slog.Info("Skipped study block", slog.String("label", block.Label))
	return block, nil
}
