package report

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/hrathore/padhai/internal/database"
	"github.com/hrathore/padhai/internal/mock"
	"github.com/hrathore/padhai/internal/statistics"
	"github.com/hrathore/padhai/internal/syllabus"
)

// Builder assembles report bundles from the aggregated data.
type Builder struct {
	aggregator *statistics.Aggregator
	engine     *mock.Engine
	topics     syllabus.TopicRepository
}

// NewBuilder creates a new Builder.
func NewBuilder(aggregator *statistics.Aggregator, engine *mock.Engine, topics syllabus.TopicRepository) *Builder {
	return &Builder{
		aggregator: aggregator,
		engine:     engine,
		topics:     topics,
	}
}

// Build loads everything the report for day shows.
func (b *Builder) Build(ctx context.Context, day time.Time) (Bundle, error) {
	stats, err := b.aggregator.Daily(ctx, day)
	if err != nil {
		return Bundle{}, fmt.Errorf("aggregator.Daily() > %w", err)
	}
	week, err := b.aggregator.Weekly(ctx, day)
	if err != nil {
		return Bundle{}, fmt.Errorf("aggregator.Weekly() > %w", err)
	}
	weak, err := b.aggregator.WeakTopics(ctx, day)
	if err != nil {
		return Bundle{}, fmt.Errorf("aggregator.WeakTopics() > %w", err)
	}
	streak, err := b.aggregator.CurrentStreak(ctx, day)
	if err != nil {
		return Bundle{}, fmt.Errorf("aggregator.CurrentStreak() > %w", err)
	}
	history, err := b.engine.History(ctx)
	if err != nil {
		return Bundle{}, fmt.Errorf("engine.History() > %w", err)
	}
	topics, err := b.topics.FindAll(ctx)
	if err != nil {
		return Bundle{}, fmt.Errorf("topics.FindAll() > %w", err)
	}
	countdown, hasCountdown := b.aggregator.Countdown(day)

	return Bundle{
		Date:          day.Format(database.DateLayout),
		Stats:         stats,
		Week:          week,
		Weak:          weak,
		History:       history,
		Books:         bookList(topics),
		Streak:        streak,
		CountdownDays: countdown,
		HasCountdown:  hasCountdown,
	}, nil
}

func bookList(topics []syllabus.Topic) []string {
	seen := map[string]bool{}
	var books []string
	for _, topic := range topics {
		for _, book := range strings.Split(topic.Books, ";") {
			book = strings.TrimSpace(book)
			if book == "" || seen[book] {
				continue
			}
			seen[book] = true
			books = append(books, book)
		}
	}
	sort.Strings(books)
	return books
}
