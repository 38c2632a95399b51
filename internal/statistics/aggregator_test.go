package statistics

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hrathore/padhai/internal/config"
	"github.com/hrathore/padhai/internal/database"
	"github.com/hrathore/padhai/internal/plan"
	"github.com/hrathore/padhai/internal/session"
	"github.com/hrathore/padhai/internal/syllabus"
)

func setupAggregator(t *testing.T) (*Aggregator, *session.Logger) {
	t.Helper()
	ctx := context.Background()
	db, err := database.Open(config.DatabaseConfig{
		Path:          filepath.Join(t.TempDir(), "padhai.db"),
		BusyTimeoutMs: 5000,
	})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, database.EnsureSchema(ctx, db))
	require.NoError(t, syllabus.NewSeeder(db).Seed(ctx, "", ""))

	planConfig := config.PlanConfig{
		DailyHours: 2.5,
		ExamDate:   "2026-06-01",
		Blocks: []config.BlockConfig{
			{Label: "Sr. Sec. Biology", Paper: 2, Section: "SrSec", Hours: 1.5},
			{Label: "Revision Notes", Paper: 0, Section: "Mixed", Hours: 1.0},
		},
	}
	weakConfig := config.WeakConfig{
		CompletionThreshold: 0.60,
		AccuracyThreshold:   0.50,
		LookbackDays:        14,
	}

	blocks := plan.NewDBBlockRepository(db)
	generator := plan.NewGenerator(planConfig, blocks, syllabus.NewDBTopicRepository(db))
	logger := session.NewLogger(generator, blocks, session.NewDBLogRepository(db))
	return NewAggregator(planConfig, weakConfig, blocks, NewDBRepository(db)), logger
}

func TestAggregator_DailyReflectsLoggedSessions(t *testing.T) {
	ctx := context.Background()
	aggregator, logger := setupAggregator(t)
	day := time.Date(2026, 3, 17, 9, 0, 0, 0, time.UTC)

	before, err := aggregator.Daily(ctx, day)
	require.NoError(t, err)
	assert.Equal(t, 0, before.Minutes)
	// No plan yet, target falls back to the configured daily total.
	assert.Equal(t, 150, before.TargetMinutes)

	_, err = logger.LogDone(ctx, day, 90, "8/10")
	require.NoError(t, err)

	after, err := aggregator.Daily(ctx, day)
	require.NoError(t, err)
	assert.Equal(t, before.Minutes+90, after.Minutes)
	assert.Equal(t, 10, after.QuestionsDone)
	assert.Equal(t, 8, after.Correct)
	assert.Equal(t, 1, after.BlocksDone)
	assert.Equal(t, 2, after.BlocksTotal)
	assert.Equal(t, 150, after.TargetMinutes)
}

func TestAggregator_WeakTopicsAndStreak(t *testing.T) {
	ctx := context.Background()
	aggregator, logger := setupAggregator(t)
	day := time.Date(2026, 3, 17, 9, 0, 0, 0, time.UTC)

	// Untouched catalogue: nothing is flagged yet.
	weak, err := aggregator.WeakTopics(ctx, day)
	require.NoError(t, err)
	assert.Empty(t, weak)

	// A short, inaccurate session flags its topic.
	_, err = logger.LogDone(ctx, day, 90, "2/10")
	require.NoError(t, err)

	weak, err = aggregator.WeakTopics(ctx, day)
	require.NoError(t, err)
	require.Len(t, weak, 1)
	assert.Equal(t, 90, weak[0].StudiedMinutes)
	assert.InDelta(t, 0.2, weak[0].Accuracy(), 0.001)

	streak, err := aggregator.CurrentStreak(ctx, day)
	require.NoError(t, err)
	assert.Equal(t, 1, streak)

	days, ok := aggregator.Countdown(day)
	assert.True(t, ok)
	assert.Equal(t, 76, days)
}
