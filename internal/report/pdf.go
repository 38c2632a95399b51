package report

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mandolyte/mdtopdf/v2"
)

// WritePDF writes the rendered markdown into outputDirectory and converts
// it to an A4 PDF next to it. It returns the PDF path.
func WritePDF(markdown string, outputDirectory string, date string) (string, error) {
	if err := os.MkdirAll(outputDirectory, 0755); err != nil {
		return "", fmt.Errorf("os.MkdirAll(%s) > %w", outputDirectory, err)
	}

	markdownPath := filepath.Join(outputDirectory, fmt.Sprintf("report-%s.md", date))
	if err := os.WriteFile(markdownPath, []byte(markdown), 0644); err != nil {
		return "", fmt.Errorf("os.WriteFile(%s) > %w", markdownPath, err)
	}

	pdfPath := filepath.Join(outputDirectory, fmt.Sprintf("report-%s.pdf", date))
	renderer := mdtopdf.NewPdfRenderer(mdtopdf.PdfRendererParams{
		Orientation: "P",
		Papersz:     "A4",
		PdfFile:     pdfPath,
		Theme:       mdtopdf.LIGHT,
	})
	if err := renderer.Process([]byte(markdown)); err != nil {
		return "", fmt.Errorf("renderer.Process() > %w", err)
	}

	absPath, err := filepath.Abs(pdfPath)
	if err != nil {
		return pdfPath, nil
	}
	return absPath, nil
}
