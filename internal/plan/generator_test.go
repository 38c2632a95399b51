package plan

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hrathore/padhai/internal/config"
	"github.com/hrathore/padhai/internal/database"
	"github.com/hrathore/padhai/internal/syllabus"
)

func testPlanConfig() config.PlanConfig {
	return config.PlanConfig{
		DailyHours: 10.5,
		Blocks: []config.BlockConfig{
			{Label: "Sr. Sec. Biology", Paper: 2, Section: "SrSec", Hours: 2.5},
			{Label: "Graduation Biology", Paper: 2, Section: "Grad", Hours: 2.0},
			{Label: "Pedagogy", Paper: 2, Section: "Pedagogy", Hours: 1.0},
			{Label: "ICT in Teaching", Paper: 2, Section: "ICT", Hours: 1.0},
			{Label: "Paper I GK", Paper: 1, Section: "History", Hours: 2.0},
			{Label: "MCQ Practice", Paper: 0, Section: "Mixed", Hours: 1.5},
			{Label: "Revision Notes", Paper: 0, Section: "Mixed", Hours: 0.5},
		},
	}
}

func setupGenerator(t *testing.T) *Generator {
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

	return NewGenerator(testPlanConfig(), NewDBBlockRepository(db), syllabus.NewDBTopicRepository(db))
}

func TestGenerator_EnsureDaily(t *testing.T) {
	ctx := context.Background()
	generator := setupGenerator(t)
	day := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)

	blocks, err := generator.EnsureDaily(ctx, day)
	require.NoError(t, err)
	require.Len(t, blocks, 7)

	total := 0
	for i, block := range blocks {
		assert.Equal(t, i, block.OrderIndex)
		assert.Equal(t, StatusPending, block.Status)
		assert.Equal(t, "2026-03-10", block.PlanDate)
		total += block.TargetMinutes
	}
	assert.Equal(t, 630, total)

	// Syllabus-backed blocks get a topic, free blocks do not.
	assert.True(t, blocks[0].TopicID.Valid)
	assert.False(t, blocks[5].TopicID.Valid)

	// Second call returns the stored plan, unchanged.
	again, err := generator.EnsureDaily(ctx, day)
	require.NoError(t, err)
	assert.Equal(t, blocks, again)
}

func TestGenerator_NextPending(t *testing.T) {
	ctx := context.Background()
	generator := setupGenerator(t)
	day := time.Date(2026, 3, 11, 8, 0, 0, 0, time.UTC)

	first, err := generator.NextPending(ctx, day)
	require.NoError(t, err)
	assert.Equal(t, 0, first.OrderIndex)

	require.NoError(t, generator.blocks.UpdateStatus(ctx, first.ID, StatusDone))

	second, err := generator.NextPending(ctx, day)
	require.NoError(t, err)
	assert.Equal(t, 1, second.OrderIndex)

	// Exhaust the day.
	blocks, err := generator.EnsureDaily(ctx, day)
	require.NoError(t, err)
	for _, block := range blocks {
		if block.Status == StatusPending {
			require.NoError(t, generator.blocks.UpdateStatus(ctx, block.ID, StatusSkipped))
		}
	}

	_, err = generator.NextPending(ctx, day)
	assert.ErrorIs(t, err, ErrNoActiveBlock)
}
