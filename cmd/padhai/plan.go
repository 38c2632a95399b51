package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hrathore/padhai/internal/bot"
	"github.com/hrathore/padhai/internal/database"
	"github.com/hrathore/padhai/internal/plan"
)

func newPlanCommand() *cobra.Command {
	planCommand := &cobra.Command{
		Use:   "plan",
		Short: "Show and advance today's study plan",
	}

	planCommand.AddCommand(newPlanTodayCommand())
	planCommand.AddCommand(newPlanNextCommand())

	return planCommand
}

func newPlanTodayCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "today",
		Short: "Show today's block list",
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer application.Close()

			day := application.today()
			blocks, err := application.generator.EnsureDaily(cmd.Context(), day)
			if err != nil {
				return fmt.Errorf("failed to generate the daily plan: %w", err)
			}
			countdown, hasCountdown := application.aggregator.Countdown(day)
			fmt.Println(bot.FormatPlan(day.Format(database.DateLayout), blocks, countdown, hasCountdown))
			return nil
		},
	}
}

func newPlanNextCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "next",
		Short: "Show the next pending block",
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer application.Close()

			block, err := application.generator.NextPending(cmd.Context(), application.today())
			if errors.Is(err, plan.ErrNoActiveBlock) {
				fmt.Println("All blocks done for today.")
				return nil
			}
			if err != nil {
				return fmt.Errorf("failed to find the next block: %w", err)
			}
			fmt.Println(bot.FormatBlock(*block))
			return nil
		},
	}
}
