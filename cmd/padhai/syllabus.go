package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/hrathore/padhai/internal/syllabus"
)

func newSyllabusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "syllabus [paper]",
		Short: "Show the syllabus, optionally for one paper",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer application.Close()

			var topics []syllabus.Topic
			if len(args) > 0 {
				paper, parseErr := strconv.Atoi(args[0])
				if parseErr != nil || (paper != 1 && paper != 2) {
					return fmt.Errorf("paper must be 1 or 2, got %q", args[0])
				}
				topics, err = application.topics.FindByPaper(cmd.Context(), paper)
			} else {
				topics, err = application.topics.FindAll(cmd.Context())
			}
			if err != nil {
				return fmt.Errorf("failed to load topics: %w", err)
			}
			fmt.Println(syllabus.FormatSummary(topics))
			return nil
		},
	}
}

func newBooksCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "books",
		Short: "Show the deduplicated reading list",
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer application.Close()

			topics, err := application.topics.FindAll(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to load topics: %w", err)
			}
			fmt.Println(syllabus.FormatBooks(topics))
			return nil
		},
	}
}

func newSeedCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Seed the topic catalogue and question bank into an empty database",
		RunE: func(cmd *cobra.Command, args []string) error {
			// newApp seeds on startup, so reaching this point means it ran.
			application, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer application.Close()

			topics, err := application.topics.FindAll(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to load topics: %w", err)
			}
			fmt.Printf("Database ready with %d topics.\n", len(topics))
			return nil
		},
	}
}
