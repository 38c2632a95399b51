package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

func newLogCommand() *cobra.Command {
	logCommand := &cobra.Command{
		Use:   "log",
		Short: "Record finished or skipped study blocks",
	}

	logCommand.AddCommand(newLogDoneCommand())
	logCommand.AddCommand(newLogSkipCommand())

	return logCommand
}

func newLogDoneCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "done [minutes] [score]",
		Short: "Finish the current block, optionally with minutes and a practice score",
		Args:  cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			minutes := 0
			score := ""
			if len(args) > 0 {
				parsed, err := strconv.Atoi(args[0])
				if err != nil {
					score = strings.Join(args, " ")
				} else {
					minutes = parsed
					score = strings.Join(args[1:], " ")
				}
			}

			application, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer application.Close()

			block, err := application.logger.LogDone(cmd.Context(), application.today(), minutes, score)
			if err != nil {
				return err
			}
			fmt.Printf("Logged %s.\n", block.Label)
			return nil
		},
	}
}

func newLogSkipCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "skip",
		Short: "Skip the current block",
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer application.Close()

			block, err := application.logger.LogSkip(cmd.Context(), application.today())
			if err != nil {
				return err
			}
			fmt.Printf("Skipped %s.\n", block.Label)
			return nil
		},
	}
}
