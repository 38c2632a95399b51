package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hrathore/padhai/internal/bot"
)

func newStatsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show today's numbers, the weekly series and the streak",
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer application.Close()

			day := application.today()
			stats, err := application.aggregator.Daily(cmd.Context(), day)
			if err != nil {
				return fmt.Errorf("failed to aggregate daily stats: %w", err)
			}
			streak, err := application.aggregator.CurrentStreak(cmd.Context(), day)
			if err != nil {
				return fmt.Errorf("failed to compute the streak: %w", err)
			}
			series, err := application.aggregator.Weekly(cmd.Context(), day)
			if err != nil {
				return fmt.Errorf("failed to aggregate the weekly series: %w", err)
			}

			fmt.Println(bot.FormatStats(stats, streak))
			fmt.Println()
			fmt.Println(bot.FormatWeekly(series))
			return nil
		},
	}
}

func newWeakCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "weak",
		Short: "Show topics needing attention",
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer application.Close()

			weak, err := application.aggregator.WeakTopics(cmd.Context(), application.today())
			if err != nil {
				return fmt.Errorf("failed to classify weak topics: %w", err)
			}
			fmt.Println(bot.FormatWeakTopics(weak))
			return nil
		},
	}
}
