package mock_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/hrathore/padhai/internal/config"
	"github.com/hrathore/padhai/internal/mock"
	mock_mock "github.com/hrathore/padhai/internal/mocks/mock"
)

func testMockConfig() config.MockConfig {
	return config.MockConfig{
		FullSize:        15,
		MiniSize:        3,
		Paper1Size:      10,
		NegativeMarking: 1.0 / 3.0,
		HistoryLimit:    5,
		ScorePrecision:  2,
	}
}

func miniBank() []mock.Question {
	return []mock.Question{
		{ID: 1, Paper: 2, Section: "SrSec", AnswerIndex: 0, Explanation: "first"},
		{ID: 2, Paper: 2, Section: "SrSec", AnswerIndex: 1},
		{ID: 3, Paper: 2, Section: "SrSec", AnswerIndex: 2},
	}
}

func TestEngine_FullRun(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	questions := mock_mock.NewMockQuestionRepository(ctrl)
	attempts := mock_mock.NewMockAttemptRepository(ctrl)

	questions.EXPECT().FindByPaper(gomock.Any(), 2).Return(miniBank(), nil)

	var recorded mock.Attempt
	attempts.EXPECT().Insert(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, attempt mock.Attempt) error {
			recorded = attempt
			return nil
		})

	engine := mock.NewEngine(testMockConfig(), questions, attempts)
	engine.SetClock(func() time.Time { return time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC) })

	progress, err := engine.Start(ctx, mock.KindMini)
	require.NoError(t, err)
	assert.Equal(t, 1, progress.Number)
	assert.Equal(t, 3, progress.Total)
	assert.True(t, engine.Active())

	// Answer the first question with its correct option.
	feedback, result, err := engine.Answer(ctx, progress.Question.AnswerIndex)
	require.NoError(t, err)
	assert.True(t, feedback.Correct)
	assert.Nil(t, result)

	// Answer the second one wrong.
	current, err := engine.Current()
	require.NoError(t, err)
	wrongOption := (current.Question.AnswerIndex + 1) % 4
	feedback, result, err = engine.Answer(ctx, wrongOption)
	require.NoError(t, err)
	assert.False(t, feedback.Correct)
	assert.Equal(t, current.Question.AnswerIndex, feedback.AnswerIndex)
	assert.Nil(t, result)

	// Skip the last question, which finishes the test.
	result, err = engine.SkipQuestion(ctx)
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.Equal(t, 3, recorded.TotalQuestions)
	assert.Equal(t, 2, recorded.Attempted)
	assert.Equal(t, 1, recorded.Correct)
	assert.Equal(t, 1, recorded.Wrong)
	assert.Equal(t, 1, recorded.Skipped)
	assert.Equal(t, 1.0, recorded.ScoreRaw)
	assert.InDelta(t, 0.67, recorded.ScoreNet, 0.001)
	assert.Equal(t, "2026-03-15", recorded.AttemptDate)
	assert.False(t, engine.Active())
}

func TestEngine_InsufficientBankRecordsNothing(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	questions := mock_mock.NewMockQuestionRepository(ctrl)
	attempts := mock_mock.NewMockAttemptRepository(ctrl)

	questions.EXPECT().FindByPaper(gomock.Any(), 2).Return(miniBank(), nil)
	// No Insert expectation: the attempt must not be recorded.

	engine := mock.NewEngine(testMockConfig(), questions, attempts)
	_, err := engine.Start(ctx, mock.KindFull)
	assert.ErrorIs(t, err, mock.ErrInsufficientQuestions)
	assert.False(t, engine.Active())
}

func TestEngine_StateErrors(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	questions := mock_mock.NewMockQuestionRepository(ctrl)
	attempts := mock_mock.NewMockAttemptRepository(ctrl)

	engine := mock.NewEngine(testMockConfig(), questions, attempts)

	_, err := engine.Current()
	assert.ErrorIs(t, err, mock.ErrNoAttempt)
	_, _, err = engine.Answer(ctx, 0)
	assert.ErrorIs(t, err, mock.ErrNoAttempt)
	_, err = engine.Finish(ctx)
	assert.ErrorIs(t, err, mock.ErrNoAttempt)
	_, err = engine.Start(ctx, "marathon")
	assert.ErrorIs(t, err, mock.ErrUnknownKind)

	questions.EXPECT().FindByPaper(gomock.Any(), 2).Return(miniBank(), nil)
	_, err = engine.Start(ctx, mock.KindMini)
	require.NoError(t, err)

	_, err = engine.Start(ctx, mock.KindMini)
	assert.ErrorIs(t, err, mock.ErrAttemptInProgress)

	_, _, err = engine.Answer(ctx, 7)
	assert.ErrorIs(t, err, mock.ErrInvalidOption)
}

func TestEngine_FinishEarly(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	questions := mock_mock.NewMockQuestionRepository(ctrl)
	attempts := mock_mock.NewMockAttemptRepository(ctrl)

	questions.EXPECT().FindByPaper(gomock.Any(), 2).Return(miniBank(), nil)
	attempts.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)

	engine := mock.NewEngine(testMockConfig(), questions, attempts)
	progress, err := engine.Start(ctx, mock.KindMini)
	require.NoError(t, err)

	_, _, err = engine.Answer(ctx, progress.Question.AnswerIndex)
	require.NoError(t, err)

	result, err := engine.Finish(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Attempted)
	assert.Equal(t, 2, result.Skipped)
	assert.False(t, engine.Active())
}
