// Package scheduler fires the daily notifications: morning briefing,
// midday nag and night summary with the PDF report.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/hrathore/padhai/internal/bot"
	"github.com/hrathore/padhai/internal/config"
	"github.com/hrathore/padhai/internal/database"
	"github.com/hrathore/padhai/internal/plan"
	"github.com/hrathore/padhai/internal/report"
	"github.com/hrathore/padhai/internal/statistics"
)

// Event names.
const (
	EventMorning = "morning"
	EventMidday  = "midday"
	EventNight   = "night"
)

// Scheduler waits for the next configured wall-clock time and sends the
// matching notification.
type Scheduler struct {
	config     *config.Config
	messenger  bot.Messenger
	generator  *plan.Generator
	aggregator *statistics.Aggregator
	builder    *report.Builder
	location   *time.Location
	now        func() time.Time
}

// NewScheduler creates a new Scheduler.
func NewScheduler(
	cfg *config.Config,
	messenger bot.Messenger,
	generator *plan.Generator,
	aggregator *statistics.Aggregator,
	builder *report.Builder,
) (*Scheduler, error) {
	location, err := time.LoadLocation(cfg.Notifications.Timezone)
	if err != nil {
		return nil, fmt.Errorf("time.LoadLocation(%s) > %w", cfg.Notifications.Timezone, err)
	}
	return &Scheduler{
		config:     cfg,
		messenger:  messenger,
		generator:  generator,
		aggregator: aggregator,
		builder:    builder,
		location:   location,
		now:        time.Now,
	}, nil
}

// Run fires events until the context is cancelled.
func (s *Scheduler) Run(ctx context.Context) error {
	for {
		event, at, err := s.nextEvent(s.now().In(s.location))
		if err != nil {
			return fmt.Errorf("Scheduler.nextEvent() > %w", err)
		}
		slog.Info("Next scheduled event", slog.String("event", event), slog.Time("at", at))

		timer := time.NewTimer(time.Until(at))
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}

		if err := s.fire(ctx, event); err != nil {
			slog.Error("Scheduled event failed", slog.String("event", event), slog.Any("error", err))
		}
	}
}

// nextEvent returns the soonest upcoming event strictly after now.
func (s *Scheduler) nextEvent(now time.Time) (string, time.Time, error) {
	events := []struct {
		name  string
		clock string
	}{
		{EventMorning, s.config.Notifications.Morning},
		{EventMidday, s.config.Notifications.Midday},
		{EventNight, s.config.Notifications.Night},
	}

	var bestName string
	var bestAt time.Time
	for _, event := range events {
		hour, minute, err := parseClock(event.clock)
		if err != nil {
			return "", time.Time{}, err
		}
		at := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())
		if !at.After(now) {
			at = at.AddDate(0, 0, 1)
		}
		if bestAt.IsZero() || at.Before(bestAt) {
			bestName = event.name
			bestAt = at
		}
	}
	return bestName, bestAt, nil
}

func parseClock(clock string) (hour, minute int, err error) {
	before, after, found := strings.Cut(clock, ":")
	if !found {
		return 0, 0, fmt.Errorf("invalid clock time %q", clock)
	}
	hour, err = strconv.Atoi(before)
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, fmt.Errorf("invalid clock time %q", clock)
	}
	minute, err = strconv.Atoi(after)
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("invalid clock time %q", clock)
	}
	return hour, minute, nil
}

func (s *Scheduler) fire(ctx context.Context, event string) error {
	switch event {
	case EventMorning:
		return s.morningBriefing(ctx)
	case EventMidday:
		return s.middayNag(ctx)
	case EventNight:
		return s.nightSummary(ctx)
	default:
		return fmt.Errorf("unknown event %q", event)
	}
}

func (s *Scheduler) morningBriefing(ctx context.Context) error {
	day := s.now().In(s.location)
	blocks, err := s.generator.EnsureDaily(ctx, day)
	if err != nil {
		return fmt.Errorf("generator.EnsureDaily() > %w", err)
	}
	countdown, hasCountdown := s.aggregator.Countdown(day)

	text := "Good morning! ☀️\n\n" + bot.FormatPlan(day.Format(database.DateLayout), blocks, countdown, hasCountdown)
	if err := s.messenger.SendMessage(ctx, s.config.Telegram.ChatID, text); err != nil {
		return fmt.Errorf("messenger.SendMessage() > %w", err)
	}
	return nil
}

// middayNag pings only when the morning went below the configured pace.
func (s *Scheduler) middayNag(ctx context.Context) error {
	day := s.now().In(s.location)
	stats, err := s.aggregator.Daily(ctx, day)
	if err != nil {
		return fmt.Errorf("aggregator.Daily() > %w", err)
	}

	nagBelowMinutes := int(s.config.Notifications.MiddayNagHour * 60)
	if stats.Minutes >= nagBelowMinutes {
		return nil
	}

	text := fmt.Sprintf(
		"Midday check: only %.1fh logged so far. 📚\nBack to the books — /next shows what's up.",
		float64(stats.Minutes)/60,
	)
	if err := s.messenger.SendMessage(ctx, s.config.Telegram.ChatID, text); err != nil {
		return fmt.Errorf("messenger.SendMessage() > %w", err)
	}
	return nil
}

func (s *Scheduler) nightSummary(ctx context.Context) error {
	day := s.now().In(s.location)
	stats, err := s.aggregator.Daily(ctx, day)
	if err != nil {
		return fmt.Errorf("aggregator.Daily() > %w", err)
	}
	streak, err := s.aggregator.CurrentStreak(ctx, day)
	if err != nil {
		return fmt.Errorf("aggregator.CurrentStreak() > %w", err)
	}

	text := "Day's over. 🌙\n\n" + bot.FormatStats(stats, streak)
	if err := s.messenger.SendMessage(ctx, s.config.Telegram.ChatID, text); err != nil {
		return fmt.Errorf("messenger.SendMessage() > %w", err)
	}

	bundle, err := s.builder.Build(ctx, day)
	if err != nil {
		return fmt.Errorf("builder.Build() > %w", err)
	}
	markdown, err := report.RenderMarkdown(bundle, "")
	if err != nil {
		return fmt.Errorf("report.RenderMarkdown() > %w", err)
	}
	pdfPath, err := report.WritePDF(markdown, s.config.Reports.OutputDirectory, bundle.Date)
	if err != nil {
		return fmt.Errorf("report.WritePDF() > %w", err)
	}
	caption := fmt.Sprintf("Study report %s", bundle.Date)
	if err := s.messenger.SendDocument(ctx, s.config.Telegram.ChatID, pdfPath, caption); err != nil {
		return fmt.Errorf("messenger.SendDocument() > %w", err)
	}
	return nil
}
