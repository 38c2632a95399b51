package syllabus

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hrathore/padhai/internal/config"
	"github.com/hrathore/padhai/internal/database"
)

func TestSeeder_Seed(t *testing.T) {
	ctx := context.Background()
	db, err := database.Open(config.DatabaseConfig{
		Path:          filepath.Join(t.TempDir(), "padhai.db"),
		BusyTimeoutMs: 5000,
	})
	require.NoError(t, err)
	defer db.Close()
	require.NoError(t, database.EnsureSchema(ctx, db))

	seeder := NewSeeder(db)
	require.NoError(t, seeder.Seed(ctx, "", ""))

	var topicCount, questionCount int
	require.NoError(t, db.GetContext(ctx, &topicCount, "SELECT COUNT(*) FROM topics"))
	require.NoError(t, db.GetContext(ctx, &questionCount, "SELECT COUNT(*) FROM questions"))
	assert.Equal(t, 14, topicCount)
	assert.Equal(t, 27, questionCount)

	// Seeding again must not duplicate rows.
	require.NoError(t, seeder.Seed(ctx, "", ""))
	var again int
	require.NoError(t, db.GetContext(ctx, &again, "SELECT COUNT(*) FROM topics"))
	assert.Equal(t, topicCount, again)
}

func TestReadTopicsCSV(t *testing.T) {
	topics, err := readTopicsCSV(fallbackTopicsCSV)
	require.NoError(t, err)
	require.NotEmpty(t, topics)
	for _, topic := range topics {
		assert.NotEmpty(t, topic.Name)
		assert.Contains(t, []int{1, 2}, topic.Paper)
		assert.Greater(t, topic.TargetHours, 0.0)
	}
}

func TestReadQuestionsJSON(t *testing.T) {
	questions, err := readQuestionsJSON(fallbackQuestionsJSON)
	require.NoError(t, err)
	require.NotEmpty(t, questions)
	for _, question := range questions {
		assert.Len(t, question.Options, 4)
		assert.GreaterOrEqual(t, question.AnswerIndex, 0)
		assert.LessOrEqual(t, question.AnswerIndex, 3)
	}

	_, err = readQuestionsJSON([]byte(`[{"id":1,"options":["a","b"],"answer_index":0}]`))
	assert.Error(t, err)
}
