package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/hrathore/padhai/internal/mock"
)

func newMockCommand() *cobra.Command {
	var kind string
	command := &cobra.Command{
		Use:   "mock",
		Short: "Run an interactive mock test in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer application.Close()

			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			return runInteractiveMock(ctx, application.engine, kind)
		},
	}
	command.Flags().StringVar(&kind, "kind", mock.KindFull, "Test kind: full, mini or paper1")
	command.AddCommand(newMockHistoryCommand())
	return command
}

func runInteractiveMock(ctx context.Context, engine *mock.Engine, kind string) error {
	progress, err := engine.Start(ctx, kind)
	if err != nil {
		return err
	}

	letters := map[string]int{"a": 0, "b": 1, "c": 2, "d": 3}
	letterNames := []string{"a", "b", "c", "d"}
	scanner := bufio.NewScanner(os.Stdin)

	for {
		if err := ctx.Err(); err != nil {
			// Interrupted mid-test: score what was answered so far.
			if _, finishErr := engine.Finish(context.WithoutCancel(ctx)); finishErr != nil {
				return finishErr
			}
			return err
		}

		fmt.Printf("\nQuestion %d/%d [%s]\n%s\n", progress.Number, progress.Total, progress.Question.Section, progress.Question.Question)
		for i, option := range progress.Question.Options() {
			fmt.Printf("  %s) %s\n", letterNames[i], option)
		}
		fmt.Print("\nAnswer (a/b/c/d, skip, end): ")

		if !scanner.Scan() {
			break
		}
		input := strings.ToLower(strings.TrimSpace(scanner.Text()))

		var result *mock.Attempt
		switch input {
		case "skip":
			result, err = engine.SkipQuestion(ctx)
			if err != nil {
				return err
			}
		case "end":
			result, err = engine.Finish(ctx)
			if err != nil {
				return err
			}
		default:
			option, ok := letters[input]
			if !ok {
				color.Yellow("Answer with a, b, c, d, skip or end.")
				continue
			}
			var feedback *mock.Feedback
			feedback, result, err = engine.Answer(ctx, option)
			if err != nil {
				return err
			}
			if feedback.Correct {
				color.Green("Correct!")
			} else {
				color.Red("Wrong, the answer was %s.", letterNames[feedback.AnswerIndex])
				if feedback.Explanation != "" {
					fmt.Println(feedback.Explanation)
				}
			}
		}

		if result != nil {
			printAttempt(*result)
			return nil
		}
		progress, err = engine.Current()
		if err != nil {
			return err
		}
	}

	// Stdin closed, end the test and show what was scored.
	result, err := engine.Finish(ctx)
	if err != nil {
		return err
	}
	printAttempt(*result)
	return nil
}

func printAttempt(attempt mock.Attempt) {
	fmt.Printf("\nMock finished (%s)\n", attempt.Kind)
	color.New(color.Bold).Printf("Net score: %.2f/%d\n", attempt.ScoreNet, attempt.TotalQuestions)
	fmt.Printf("Correct %d, wrong %d, skipped %d in %dm%02ds\n",
		attempt.Correct, attempt.Wrong, attempt.Skipped,
		attempt.DurationSeconds/60, attempt.DurationSeconds%60)
}

func newMockHistoryCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "Show recent mock results",
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer application.Close()

			attempts, err := application.engine.History(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to load mock history: %w", err)
			}
			if len(attempts) == 0 {
				fmt.Println("No mock tests yet.")
				return nil
			}
			for _, attempt := range attempts {
				fmt.Printf("%s %-7s %.2f/%d (%dc/%dw/%ds)\n",
					attempt.AttemptDate, attempt.Kind, attempt.ScoreNet, attempt.TotalQuestions,
					attempt.Correct, attempt.Wrong, attempt.Skipped)
			}
			return nil
		},
	}
}
