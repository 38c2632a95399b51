package main

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/hrathore/padhai/internal/config"
	"github.com/hrathore/padhai/internal/database"
	"github.com/hrathore/padhai/internal/mock"
	"github.com/hrathore/padhai/internal/plan"
	"github.com/hrathore/padhai/internal/report"
	"github.com/hrathore/padhai/internal/session"
	"github.com/hrathore/padhai/internal/statistics"
	"github.com/hrathore/padhai/internal/syllabus"
)

// app bundles the wired services every subcommand works with.
type app struct {
	config     *config.Config
	db         *sqlx.DB
	topics     syllabus.TopicRepository
	generator  *plan.Generator
	logger     *session.Logger
	engine     *mock.Engine
	aggregator *statistics.Aggregator
	builder    *report.Builder
	location   *time.Location
}

func newApp(ctx context.Context) (*app, error) {
	loader, err := config.NewConfigLoader(configFile)
	if err != nil {
		return nil, fmt.Errorf("config.NewConfigLoader() > %w", err)
	}
	cfg, err := loader.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	location, err := time.LoadLocation(cfg.Notifications.Timezone)
	if err != nil {
		return nil, fmt.Errorf("time.LoadLocation(%s) > %w", cfg.Notifications.Timezone, err)
	}

	db, err := database.Open(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("database.Open() > %w", err)
	}
	if err := database.EnsureSchema(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("database.EnsureSchema() > %w", err)
	}
	if err := syllabus.NewSeeder(db).Seed(ctx, cfg.Data.TopicsCSV, cfg.Data.QuestionsJSON); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to seed the database: %w", err)
	}

	topics := syllabus.NewDBTopicRepository(db)
	blocks := plan.NewDBBlockRepository(db)
	generator := plan.NewGenerator(cfg.Plan, blocks, topics)
	logger := session.NewLogger(generator, blocks, session.NewDBLogRepository(db))
	engine := mock.NewEngine(cfg.Mock, mock.NewDBQuestionRepository(db), mock.NewDBAttemptRepository(db))
	aggregator := statistics.NewAggregator(cfg.Plan, cfg.Weak, blocks, statistics.NewDBRepository(db))
	builder := report.NewBuilder(aggregator, engine, topics)

	return &app{
		config:     cfg,
		db:         db,
		topics:     topics,
		generator:  generator,
		logger:     logger,
		engine:     engine,
		aggregator: aggregator,
		builder:    builder,
		location:   location,
	}, nil
}

func (a *app) Close() error {
	return a.db.Close()
}

func (a *app) today() time.Time {
	return time.Now().In(a.location)
}
