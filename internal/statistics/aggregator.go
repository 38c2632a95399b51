package statistics

import (
	"context"
	"fmt"
	"time"

	"github.com/hrathore/padhai/internal/config"
	"github.com/hrathore/padhai/internal/database"
	"github.com/hrathore/padhai/internal/plan"
)

// streakLookbackDays bounds the log window used for streak counting.
const streakLookbackDays = 366

// Aggregator loads stored rows and turns them into the numbers the bot,
// scheduler and report present.
type Aggregator struct {
	planConfig config.PlanConfig
	weakConfig config.WeakConfig
	blocks     plan.BlockRepository
	repository Repository
}

// NewAggregator creates a new Aggregator.
func NewAggregator(planConfig config.PlanConfig, weakConfig config.WeakConfig, blocks plan.BlockRepository, repository Repository) *Aggregator {
	return &Aggregator{
		planConfig: planConfig,
		weakConfig: weakConfig,
		blocks:     blocks,
		repository: repository,
	}
}

// Daily returns the stats of one day.
func (a *Aggregator) Daily(ctx context.Context, day time.Time) (DailyStats, error) {
	date := day.Format(database.DateLayout)
	blocks, err := a.blocks.FindByDate(ctx, date)
	if err != nil {
		return DailyStats{}, fmt.Errorf("blocks.FindByDate() > %w", err)
	}
	logs, err := a.repository.LogsBetween(ctx, date, date)
	if err != nil {
		return DailyStats{}, fmt.Errorf("repository.LogsBetween() > %w", err)
	}

	stats := ComputeDailyStats(date, blocks, logs)
	if stats.TargetMinutes == 0 {
		// No plan generated yet, fall back to the configured target.
		stats.TargetMinutes = a.planConfig.DailyMinutes()
	}
	return stats, nil
}

// Weekly returns the 7-day series ending on end.
func (a *Aggregator) Weekly(ctx context.Context, end time.Time) ([]DayPoint, error) {
	from := end.AddDate(0, 0, -6).Format(database.DateLayout)
	logs, err := a.repository.LogsBetween(ctx, from, end.Format(database.DateLayout))
	if err != nil {
		return nil, fmt.Errorf("repository.LogsBetween() > %w", err)
	}
	return WeeklySeries(logs, end), nil
}

// CurrentStreak returns the study streak ending today.
func (a *Aggregator) CurrentStreak(ctx context.Context, today time.Time) (int, error) {
	from := today.AddDate(0, 0, -streakLookbackDays).Format(database.DateLayout)
	logs, err := a.repository.LogsBetween(ctx, from, today.Format(database.DateLayout))
	if err != nil {
		return 0, fmt.Errorf("repository.LogsBetween() > %w", err)
	}
	return Streak(logs, today), nil
}

// WeakTopics classifies topics over the configured lookback window.
func (a *Aggregator) WeakTopics(ctx context.Context, today time.Time) ([]WeakTopic, error) {
	from := today.AddDate(0, 0, -a.weakConfig.LookbackDays).Format(database.DateLayout)
	aggregates, err := a.repository.TopicAggregates(ctx, from)
	if err != nil {
		return nil, fmt.Errorf("repository.TopicAggregates() > %w", err)
	}
	return WeakTopics(aggregates, a.weakConfig), nil
}

// Countdown returns the days left until the configured exam date.
func (a *Aggregator) Countdown(today time.Time) (int, bool) {
	return ExamCountdown(a.planConfig.ExamDate, today)
}
