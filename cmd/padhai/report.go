package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hrathore/padhai/internal/report"
)

func newReportCommand() *cobra.Command {
	var templatePath string
	command := &cobra.Command{
		Use:   "report",
		Short: "Render today's study report as a PDF",
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer application.Close()

			bundle, err := application.builder.Build(cmd.Context(), application.today())
			if err != nil {
				return fmt.Errorf("failed to build the report: %w", err)
			}
			markdown, err := report.RenderMarkdown(bundle, templatePath)
			if err != nil {
				return fmt.Errorf("failed to render the report: %w", err)
			}
			pdfPath, err := report.WritePDF(markdown, application.config.Reports.OutputDirectory, bundle.Date)
			if err != nil {
				return fmt.Errorf("failed to write the PDF: %w", err)
			}
			fmt.Printf("Report written to %s\n", pdfPath)
			return nil
		},
	}
	command.Flags().StringVar(&templatePath, "template", "", "Markdown template override")
	return command
}
