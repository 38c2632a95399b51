package plan

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/hrathore/padhai/internal/config"
	"github.com/hrathore/padhai/internal/database"
	"github.com/hrathore/padhai/internal/syllabus"
)

// Generator materialises the configured block template into per-day plans.
// Generating the same day twice returns the stored plan unchanged.
type Generator struct {
	planConfig config.PlanConfig
	blocks     BlockRepository
	topics     syllabus.TopicRepository
}

// NewGenerator creates a new Generator.
func NewGenerator(planConfig config.PlanConfig, blocks BlockRepository, topics syllabus.TopicRepository) *Generator {
	return &Generator{
		planConfig: planConfig,
		blocks:     blocks,
		topics:     topics,
	}
}

// EnsureDaily returns the plan for the given day, creating it from the
// configured template on first access.
func (g *Generator) EnsureDaily(ctx context.Context, day time.Time) ([]StudyBlock, error) {
	date := day.Format(database.DateLayout)

	existing, err := g.blocks.FindByDate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("blocks.FindByDate() > %w", err)
	}
	if len(existing) > 0 {
		return existing, nil
	}

	plan := make([]StudyBlock, 0, len(g.planConfig.Blocks))
	for i, template := range g.planConfig.Blocks {
		block := StudyBlock{
			PlanDate:      date,
			OrderIndex:    i,
			Label:         template.Label,
			Paper:         template.Paper,
			Section:       template.Section,
			TargetMinutes: int(math.Round(template.Hours * 60)),
			Status:        StatusPending,
		}
		if template.Paper > 0 {
			topic, err := g.topics.HighestPriority(ctx, template.Paper, template.Section)
			if err != nil {
				return nil, fmt.Errorf("topics.HighestPriority() > %w", err)
			}
			if topic != nil {
				block.TopicID = sql.NullInt64{Int64: topic.ID, Valid: true}
			}
		}
		plan = append(plan, block)
	}

	if err := g.blocks.InsertBlocks(ctx, plan); err != nil {
		return nil, fmt.Errorf("blocks.InsertBlocks() > %w", err)
	}
	slog.Info("Generated daily plan", slog.String("date", date), slog.Int("blocks", len(plan)))

	// Re-read so callers get the stored ids.
	created, err := g.blocks.FindByDate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("blocks.FindByDate() > %w", err)
	}
	return created, nil
}

// NextPending returns the first unfinished block of the day.
// ErrNoActiveBlock signals the day's plan is exhausted.
func (g *Generator) NextPending(ctx context.Context, day time.Time) (*StudyBlock, error) {
	if _, err := g.EnsureDaily(ctx, day); err != nil {
		return nil, fmt.Errorf("Generator.EnsureDaily() > %w", err)
	}
	block, err := g.blocks.NextPending(ctx, day.Format(database.DateLayout))
	if err != nil {
		return nil, fmt.Errorf("blocks.NextPending() > %w", err)
	}
	if block == nil {
		return nil, ErrNoActiveBlock
	}
	return block, nil
}
