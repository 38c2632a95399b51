package report

import (
	_ "embed"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"text/template"
)

//go:embed templates/report.md.go.tmpl
var fallbackReportTemplate string

const barBlockMinutes = 30

// RenderMarkdown renders the report bundle through the report template.
// templatePath overrides the embedded template when it points to a
// parseable file.
func RenderMarkdown(bundle Bundle, templatePath string) (string, error) {
	tmpl, err := parseTemplateWithFallback(templatePath, fallbackReportTemplate)
	if err != nil {
		return "", fmt.Errorf("parseTemplateWithFallback() > %w", err)
	}

	var builder strings.Builder
	if err := tmpl.Execute(&builder, bundle); err != nil {
		return "", fmt.Errorf("tmpl.Execute() > %w", err)
	}
	return builder.String(), nil
}

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"join": strings.Join,
		"pct": func(fraction float64) string {
			return fmt.Sprintf("%.0f%%", fraction*100)
		},
		"minutes": func(minutes int) string {
			return fmt.Sprintf("%.1fh", float64(minutes)/60)
		},
		// One block per half hour, so a full study day stays readable.
		"bar": func(minutes int) string {
			return strings.Repeat("█", minutes/barBlockMinutes)
		},
	}
}

func parseTemplateWithFallback(templatePath string, fallbackTemplate string) (*template.Template, error) {
	funcMap := templateFuncs()

	if templatePath != "" {
		if _, err := os.Stat(templatePath); err == nil {
			fileName := filepath.Base(templatePath)
			tmpl, err := template.New(fileName).
				Funcs(funcMap).
				ParseFiles(templatePath)
			if err == nil {
				return tmpl, nil
			}
			slog.Warn("Failed to parse report template, using embedded one",
				slog.String("templatePath", templatePath),
				slog.Any("error", err),
			)
		}
	}

	tmpl, err := template.New("report.md.go.tmpl").
		Funcs(funcMap).
		Parse(fallbackReportTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse embedded template: %w", err)
	}
	return tmpl, nil
}
