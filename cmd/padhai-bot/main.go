package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"

	"github.com/hrathore/padhai/internal/bot"
	"github.com/hrathore/padhai/internal/config"
	"github.com/hrathore/padhai/internal/database"
	"github.com/hrathore/padhai/internal/mock"
	"github.com/hrathore/padhai/internal/plan"
	"github.com/hrathore/padhai/internal/report"
	"github.com/hrathore/padhai/internal/scheduler"
	"github.com/hrathore/padhai/internal/session"
	"github.com/hrathore/padhai/internal/statistics"
	"github.com/hrathore/padhai/internal/syllabus"
	"github.com/hrathore/padhai/internal/telegram"
)

func main() {
	var configFile string
	var healthAddr string
	var debugMode bool
	pflag.StringVar(&configFile, "config", "", "config file path")
	pflag.StringVar(&healthAddr, "health-addr", ":8080", "health endpoint listen address")
	pflag.BoolVar(&debugMode, "debug", false, "Enable debug mode")
	pflag.Parse()

	logLevel := slog.LevelInfo
	if debugMode {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(
		slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level:     logLevel,
			AddSource: true,
		})),
	)

	if err := run(configFile, healthAddr); err != nil && !errors.Is(err, context.Canceled) {
		slog.Error("Bot exited", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(configFile, healthAddr string) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	loader, err := config.NewConfigLoader(configFile)
	if err != nil {
		return fmt.Errorf("config.NewConfigLoader() > %w", err)
	}
	cfg, err := loader.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if cfg.Telegram.Token == "" {
		return fmt.Errorf("TELEGRAM_BOT_TOKEN is required")
	}
	if cfg.Telegram.ChatID == 0 {
		return fmt.Errorf("telegram chat_id is required")
	}

	db, err := database.Open(cfg.Database)
	if err != nil {
		return fmt.Errorf("database.Open() > %w", err)
	}
	defer db.Close()
	if err := database.EnsureSchema(ctx, db); err != nil {
		return fmt.Errorf("database.EnsureSchema() > %w", err)
	}
	if err := syllabus.NewSeeder(db).Seed(ctx, cfg.Data.TopicsCSV, cfg.Data.QuestionsJSON); err != nil {
		return fmt.Errorf("failed to seed the database: %w", err)
	}

	topics := syllabus.NewDBTopicRepository(db)
	blocks := plan.NewDBBlockRepository(db)
	generator := plan.NewGenerator(cfg.Plan, blocks, topics)
	logger := session.NewLogger(generator, blocks, session.NewDBLogRepository(db))
	engine := mock.NewEngine(cfg.Mock, mock.NewDBQuestionRepository(db), mock.NewDBAttemptRepository(db))
	aggregator := statistics.NewAggregator(cfg.Plan, cfg.Weak, blocks, statistics.NewDBRepository(db))
	builder := report.NewBuilder(aggregator, engine, topics)
	client := telegram.NewClient(cfg.Telegram.Token)

	dispatcher, err := bot.NewDispatcher(cfg, client, generator, logger, engine, aggregator, topics, builder)
	if err != nil {
		return fmt.Errorf("bot.NewDispatcher() > %w", err)
	}
	poller := bot.NewPoller(client, dispatcher, cfg.Telegram.PollTimeoutSeconds)

	notifier, err := scheduler.NewScheduler(cfg, client, generator, aggregator, builder)
	if err != nil {
		return fmt.Errorf("scheduler.NewScheduler() > %w", err)
	}

	// Keep-alive endpoint for the hosting platform's health checks.
	healthServer := &http.Server{
		Addr: healthAddr,
		Handler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			fmt.Fprintln(w, "ok")
		}),
	}

	errCh := make(chan error, 3)
	go func() {
		slog.Info("Health endpoint listening", slog.String("addr", healthAddr))
		if err := healthServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("healthServer.ListenAndServe() > %w", err)
		}
	}()
	go func() {
		errCh <- notifier.Run(ctx)
	}()
	go func() {
		slog.Info("Polling for updates")
		errCh <- poller.Run(ctx)
	}()

	var runErr error
	select {
	case <-ctx.Done():
		runErr = ctx.Err()
	case err := <-errCh:
		runErr = err
		cancel()
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := healthServer.Shutdown(shutdownCtx); err != nil {
		slog.Warn("Health endpoint shutdown failed", slog.Any("error", err))
	}
	return runErr
}
