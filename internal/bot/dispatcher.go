package bot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/hrathore/padhai/internal/config"
	"github.com/hrathore/padhai/internal/mock"
	"github.com/hrathore/padhai/internal/plan"
	"github.com/hrathore/padhai/internal/report"
	"github.com/hrathore/padhai/internal/session"
	"github.com/hrathore/padhai/internal/statistics"
	"github.com/hrathore/padhai/internal/syllabus"
	"github.com/hrathore/padhai/internal/telegram"
)

//go:generate mockgen -source=dispatcher.go -destination=../mocks/bot/mock_messenger.go -package=mock_bot Messenger

// Messenger is the outgoing side of the Telegram client.
type Messenger interface {
	SendMessage(ctx context.Context, chatID int64, text string) error
	SendDocument(ctx context.Context, chatID int64, filePath string, caption string) error
}

const helpText = `*padhai* — your study tracker

/today — today's plan
/next — what to study now
/done [minutes] [score] — finish the current block (score: 8/10, 80% or 8)
/skip — skip the current block
/mock [mini|paper1] — start a mock test
/mock\_history — recent mock results
/stats — today's numbers and streak
/weak — topics needing attention
/report — tonight's PDF report, right now
/books — reading list
/syllabus [1|2] — syllabus overview
/config — current settings`

// Dispatcher routes one chat's commands to the services.
type Dispatcher struct {
	config     *config.Config
	messenger  Messenger
	generator  *plan.Generator
	logger     *session.Logger
	engine     *mock.Engine
	aggregator *statistics.Aggregator
	topics     syllabus.TopicRepository
	builder    *report.Builder
	location   *time.Location
	now        func() time.Time
}

// NewDispatcher creates a new Dispatcher.
func NewDispatcher(
	cfg *config.Config,
	messenger Messenger,
	generator *plan.Generator,
	logger *session.Logger,
	engine *mock.Engine,
	aggregator *statistics.Aggregator,
	topics syllabus.TopicRepository,
	builder *report.Builder,
) (*Dispatcher, error) {
	location, err := time.LoadLocation(cfg.Notifications.Timezone)
	if err != nil {
		return nil, fmt.Errorf("time.LoadLocation(%s) > %w", cfg.Notifications.Timezone, err)
	}
	return &Dispatcher{
		config:     cfg,
		messenger:  messenger,
		generator:  generator,
		logger:     logger,
		engine:     engine,
		aggregator: aggregator,
		topics:     topics,
		builder:    builder,
		location:   location,
		now:        time.Now,
	}, nil
}

func (d *Dispatcher) today() time.Time {
	return d.now().In(d.location)
}

// HandleUpdate processes one incoming update. Messages from other chats
// are ignored.
func (d *Dispatcher) HandleUpdate(ctx context.Context, update telegram.Update) {
	if update.Message == nil {
		return
	}
	if update.Message.Chat.ID != d.config.Telegram.ChatID {
		slog.Warn("Ignoring message from unknown chat", slog.Int64("chatID", update.Message.Chat.ID))
		return
	}

	text := strings.TrimSpace(update.Message.Text)
	if text == "" {
		return
	}

	var reply string
	var err error
	if !strings.HasPrefix(text, "/") && d.engine.Active() {
		reply, err = d.handleMockAnswer(ctx, text)
	} else {
		reply, err = d.handleCommand(ctx, text)
	}

	if err != nil {
		reply = userMessage(err)
	}
	if reply == "" {
		return
	}
	if err := d.messenger.SendMessage(ctx, d.config.Telegram.ChatID, reply); err != nil {
		slog.Error("Failed to send reply", slog.Any("error", err))
	}
}

// userMessage maps an error to what the user sees. Domain errors keep
// their message, everything else collapses to a generic line.
func userMessage(err error) string {
	for _, known := range []error{
		plan.ErrNoActiveBlock,
		session.ErrInvalidScore,
		session.ErrInvalidMinutes,
		mock.ErrInsufficientQuestions,
		mock.ErrNoAttempt,
		mock.ErrAttemptInProgress,
		mock.ErrInvalidOption,
		mock.ErrUnknownKind,
	} {
		if errors.Is(err, known) {
			return known.Error()
		}
	}
	slog.Error("Command failed", slog.Any("error", err))
	return "Something went wrong, check the logs."
}

func (d *Dispatcher) handleCommand(ctx context.Context, text string) (string, error) {
	fields := strings.Fields(text)
	command := strings.ToLower(fields[0])
	if at := strings.Index(command, "@"); at > 0 {
		command = command[:at]
	}
	args := fields[1:]

	switch command {
	case "/start", "/help":
		return helpText, nil
	case "/today":
		return d.handleToday(ctx)
	case "/next":
		return d.handleNext(ctx)
	case "/done":
		return d.handleDone(ctx, args)
	case "/skip":
		return d.handleSkip(ctx)
	case "/mock":
		return d.handleMock(ctx, args)
	case "/mock_history":
		return d.handleMockHistory(ctx)
	case "/stats":
		return d.handleStats(ctx)
	case "/weak":
		return d.handleWeak(ctx)
	case "/report":
		return d.handleReport(ctx)
	case "/books":
		return d.handleBooks(ctx)
	case "/syllabus":
		return d.handleSyllabus(ctx, args)
	case "/config":
		return d.handleConfig(), nil
	default:
		return "Unknown command. See /help.", nil
	}
}

func (d *Dispatcher) handleToday(ctx context.Context) (string, error) {
	day := d.today()
	blocks, err := d.generator.EnsureDaily(ctx, day)
	if err != nil {
		return "", fmt.Errorf("generator.EnsureDaily() > %w", err)
	}
	countdown, hasCountdown := d.aggregator.Countdown(day)
	return FormatPlan(day.Format("2006-01-02"), blocks, countdown, hasCountdown), nil
}

func (d *Dispatcher) handleNext(ctx context.Context) (string, error) {
	block, err := d.generator.NextPending(ctx, d.today())
	if errors.Is(err, plan.ErrNoActiveBlock) {
		return "All blocks done for today. 🎉", nil
	}
	if err != nil {
		return "", fmt.Errorf("generator.NextPending() > %w", err)
	}
	return FormatBlock(*block), nil
}

func (d *Dispatcher) handleDone(ctx context.Context, args []string) (string, error) {
	minutes := 0
	score := ""
	if len(args) > 0 {
		parsed, err := strconv.Atoi(args[0])
		if err != nil {
			// First argument is not minutes, treat everything as the score.
			score = strings.Join(args, " ")
		} else {
			minutes = parsed
			score = strings.Join(args[1:], " ")
		}
	}

	block, err := d.logger.LogDone(ctx, d.today(), minutes, score)
	if err != nil {
		return "", err
	}
	reply := fmt.Sprintf("Logged *%s*. ✅", block.Label)
	if next, err := d.generator.NextPending(ctx, d.today()); err == nil {
		reply += "\n" + FormatBlock(*next)
	} else if errors.Is(err, plan.ErrNoActiveBlock) {
		reply += "\nThat was the last block of the day. 🎉"
	}
	return reply, nil
}

func (d *Dispatcher) handleSkip(ctx context.Context) (string, error) {
	block, err := d.logger.LogSkip(ctx, d.today())
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Skipped *%s*.", block.Label), nil
}

func (d *Dispatcher) handleMock(ctx context.Context, args []string) (string, error) {
	kind := mock.KindFull
	if len(args) > 0 {
		kind = strings.ToLower(args[0])
	}
	progress, err := d.engine.Start(ctx, kind)
	if err != nil {
		return "", err
	}
	return FormatQuestion(*progress), nil
}

func (d *Dispatcher) handleMockAnswer(ctx context.Context, text string) (string, error) {
	letters := map[string]int{"a": 0, "b": 1, "c": 2, "d": 3}

	switch input := strings.ToLower(strings.TrimSpace(text)); input {
	case "skip":
		result, err := d.engine.SkipQuestion(ctx)
		if err != nil {
			return "", err
		}
		if result != nil {
			return FormatAttempt(*result), nil
		}
	case "end":
		result, err := d.engine.Finish(ctx)
		if err != nil {
			return "", err
		}
		return FormatAttempt(*result), nil
	default:
		option, ok := letters[input]
		if !ok {
			return "", mock.ErrInvalidOption
		}
		feedback, result, err := d.engine.Answer(ctx, option)
		if err != nil {
			return "", err
		}
		if result != nil {
			return FormatFeedback(*feedback) + "\n\n" + FormatAttempt(*result), nil
		}
		progress, err := d.engine.Current()
		if err != nil {
			return "", err
		}
		return FormatFeedback(*feedback) + "\n\n" + FormatQuestion(*progress), nil
	}

	progress, err := d.engine.Current()
	if err != nil {
		return "", err
	}
	return FormatQuestion(*progress), nil
}

func (d *Dispatcher) handleMockHistory(ctx context.Context) (string, error) {
	attempts, err := d.engine.History(ctx)
	if err != nil {
		return "", fmt.Errorf("engine.History() > %w", err)
	}
	return FormatHistory(attempts), nil
}

func (d *Dispatcher) handleStats(ctx context.Context) (string, error) {
	day := d.today()
	stats, err := d.aggregator.Daily(ctx, day)
	if err != nil {
		return "", fmt.Errorf("aggregator.Daily() > %w", err)
	}
	streak, err := d.aggregator.CurrentStreak(ctx, day)
	if err != nil {
		return "", fmt.Errorf("aggregator.CurrentStreak() > %w", err)
	}
	series, err := d.aggregator.Weekly(ctx, day)
	if err != nil {
		return "", fmt.Errorf("aggregator.Weekly() > %w", err)
	}
	return FormatStats(stats, streak) + "\n\n" + FormatWeekly(series), nil
}

func (d *Dispatcher) handleWeak(ctx context.Context) (string, error) {
	weak, err := d.aggregator.WeakTopics(ctx, d.today())
	if err != nil {
		return "", fmt.Errorf("aggregator.WeakTopics() > %w", err)
	}
	return FormatWeakTopics(weak), nil
}

func (d *Dispatcher) handleReport(ctx context.Context) (string, error) {
	day := d.today()
	bundle, err := d.builder.Build(ctx, day)
	if err != nil {
		return "", fmt.Errorf("builder.Build() > %w", err)
	}
	markdown, err := report.RenderMarkdown(bundle, "")
	if err != nil {
		return "", fmt.Errorf("report.RenderMarkdown() > %w", err)
	}
	pdfPath, err := report.WritePDF(markdown, d.config.Reports.OutputDirectory, bundle.Date)
	if err != nil {
		return "", fmt.Errorf("report.WritePDF() > %w", err)
	}
	caption := fmt.Sprintf("Study report %s", bundle.Date)
	if err := d.messenger.SendDocument(ctx, d.config.Telegram.ChatID, pdfPath, caption); err != nil {
		return "", fmt.Errorf("messenger.SendDocument() > %w", err)
	}
	return "", nil
}

func (d *Dispatcher) handleBooks(ctx context.Context) (string, error) {
	topics, err := d.topics.FindAll(ctx)
	if err != nil {
		return "", fmt.Errorf("topics.FindAll() > %w", err)
	}
	return syllabus.FormatBooks(topics), nil
}

func (d *Dispatcher) handleSyllabus(ctx context.Context, args []string) (string, error) {
	var topics []syllabus.Topic
	var err error
	if len(args) > 0 {
		paper, parseErr := strconv.Atoi(args[0])
		if parseErr != nil || (paper != 1 && paper != 2) {
			return "Usage: /syllabus [1|2]", nil
		}
		topics, err = d.topics.FindByPaper(ctx, paper)
	} else {
		topics, err = d.topics.FindAll(ctx)
	}
	if err != nil {
		return "", fmt.Errorf("topics query > %w", err)
	}
	return syllabus.FormatSummary(topics), nil
}

func (d *Dispatcher) handleConfig() string {
	cfg := d.config
	return fmt.Sprintf(
		"*Settings*\nDaily target: %.1fh in %d blocks\nWeak thresholds: completion %.0f%%, accuracy %.0f%%\nMock sizes: full %d, mini %d, paper1 %d\nNotifications: %s / %s / %s (%s)",
		cfg.Plan.DailyHours, len(cfg.Plan.Blocks),
		cfg.Weak.CompletionThreshold*100, cfg.Weak.AccuracyThreshold*100,
		cfg.Mock.FullSize, cfg.Mock.MiniSize, cfg.Mock.Paper1Size,
		cfg.Notifications.Morning, cfg.Notifications.Midday, cfg.Notifications.Night,
		cfg.Notifications.Timezone,
	)
}
