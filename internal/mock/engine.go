package mock

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/hrathore/padhai/internal/config"
	"github.com/hrathore/padhai/internal/database"
)

const answerSkipped = -1

// Progress is the question currently awaiting an answer.
type Progress struct {
	Question Question
	Number   int
	Total    int
}

// Feedback is the immediate result of answering one question.
type Feedback struct {
	Correct     bool
	AnswerIndex int
	Explanation string
}

// Engine runs one mock test at a time for the single user.
type Engine struct {
	mockConfig config.MockConfig
	questions  QuestionRepository
	attempts   AttemptRepository
	rng        *rand.Rand
	now        func() time.Time

	mu      sync.Mutex
	current *activeAttempt
}

type activeAttempt struct {
	kind      string
	startedAt time.Time
	questions []Question
	answers   []int
	index     int
}

// NewEngine creates a new Engine.
func NewEngine(mockConfig config.MockConfig, questions QuestionRepository, attempts AttemptRepository) *Engine {
	return &Engine{
		mockConfig: mockConfig,
		questions:  questions,
		attempts:   attempts,
		rng:        rand.New(rand.NewSource(time.Now().UnixNano())),
		now:        time.Now,
	}
}

func (e *Engine) kindSettings(kind string) (paper, size int, err error) {
	switch kind {
	case KindFull:
		return 2, e.mockConfig.FullSize, nil
	case KindMini:
		return 2, e.mockConfig.MiniSize, nil
	case KindPaper1:
		return 1, e.mockConfig.Paper1Size, nil
	default:
		return 0, 0, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
}

// Start begins a new mock test and returns the first question.
// No attempt is recorded until the test finishes.
func (e *Engine) Start(ctx context.Context, kind string) (*Progress, error) {
	paper, size, err := e.kindSettings(kind)
	if err != nil {
		return nil, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.current != nil {
		return nil, ErrAttemptInProgress
	}

	bank, err := e.questions.FindByPaper(ctx, paper)
	if err != nil {
		return nil, fmt.Errorf("questions.FindByPaper() > %w", err)
	}
	picked, err := draw(e.rng, bank, size)
	if err != nil {
		return nil, err
	}

	answers := make([]int, len(picked))
	for i := range answers {
		answers[i] = answerSkipped
	}
	e.current = &activeAttempt{
		kind:      kind,
		startedAt: e.now(),
		questions: picked,
		answers:   answers,
	}
	slog.Info("Started mock test", slog.String("kind", kind), slog.Int("questions", size))
	return e.progressLocked(), nil
}

// Current returns the question awaiting an answer.
func (e *Engine) Current() (*Progress, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.current == nil {
		return nil, ErrNoAttempt
	}
	return e.progressLocked(), nil
}

// Active reports whether a mock test is in progress.
func (e *Engine) Active() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.current != nil
}

// Answer records the chosen option for the current question. The returned
// Attempt is non-nil when this was the last question, in which case the
// attempt has been recorded.
func (e *Engine) Answer(ctx context.Context, option int) (*Feedback, *Attempt, error) {
	if option < 0 || option > 3 {
		return nil, nil, ErrInvalidOption
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.current == nil {
		return nil, nil, ErrNoAttempt
	}

	question := e.current.questions[e.current.index]
	e.current.answers[e.current.index] = option
	e.current.index++

	feedback := &Feedback{
		Correct:     option == question.AnswerIndex,
		AnswerIndex: question.AnswerIndex,
		Explanation: question.Explanation,
	}
	if e.current.index < len(e.current.questions) {
		return feedback, nil, nil
	}

	attempt, err := e.finishLocked(ctx)
	if err != nil {
		return nil, nil, err
	}
	return feedback, attempt, nil
}

// SkipQuestion leaves the current question unanswered and moves on.
func (e *Engine) SkipQuestion(ctx context.Context) (*Attempt, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.current == nil {
		return nil, ErrNoAttempt
	}

	e.current.index++
	if e.current.index < len(e.current.questions) {
		return nil, nil
	}
	return e.finishLocked(ctx)
}

// Finish ends the test early. Remaining questions count as skipped.
func (e *Engine) Finish(ctx context.Context) (*Attempt, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.current == nil {
		return nil, ErrNoAttempt
	}
	return e.finishLocked(ctx)
}

// History returns the most recent finished attempts.
func (e *Engine) History(ctx context.Context) ([]Attempt, error) {
	attempts, err := e.attempts.History(ctx, e.mockConfig.HistoryLimit)
	if err != nil {
		return nil, fmt.Errorf("attempts.History() > %w", err)
	}
	return attempts, nil
}

func (e *Engine) progressLocked() *Progress {
	return &Progress{
		Question: e.current.questions[e.current.index],
		Number:   e.current.index + 1,
		Total:    len(e.current.questions),
	}
}

func (e *Engine) finishLocked(ctx context.Context) (*Attempt, error) {
	active := e.current

	var attempted, correct, wrong int
	for i, answer := range active.answers {
		if answer == answerSkipped {
			continue
		}
		attempted++
		if answer == active.questions[i].AnswerIndex {
			correct++
		} else {
			wrong++
		}
	}
	total := len(active.questions)
	raw, net := Score(correct, wrong, e.mockConfig.NegativeMarking, e.mockConfig.ScorePrecision)

	ids := make([]int64, total)
	for i, question := range active.questions {
		ids[i] = question.ID
	}
	idsJSON, err := json.Marshal(ids)
	if err != nil {
		return nil, fmt.Errorf("json.Marshal(question ids) > %w", err)
	}
	answersJSON, err := json.Marshal(active.answers)
	if err != nil {
		return nil, fmt.Errorf("json.Marshal(answers) > %w", err)
	}

	now := e.now()
	attempt := Attempt{
		AttemptDate:     now.Format(database.DateLayout),
		Kind:            active.kind,
		QuestionIDs:     string(idsJSON),
		Answers:         string(answersJSON),
		TotalQuestions:  total,
		Attempted:       attempted,
		Correct:         correct,
		Wrong:           wrong,
		Skipped:         total - attempted,
		ScoreRaw:        raw,
		ScoreNet:        net,
		DurationSeconds: int(now.Sub(active.startedAt).Seconds()),
	}
	if err := e.attempts.Insert(ctx, attempt); err != nil {
		return nil, fmt.Errorf("attempts.Insert() > %w", err)
	}

	e.current = nil
	slog.Info("Finished mock test",
		slog.String("kind", attempt.Kind),
		slog.Int("correct", correct),
		slog.Int("wrong", wrong),
		slog.Float64("net", net),
	)
	return &attempt, nil
}
