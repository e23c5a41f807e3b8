// SPDX-License-Identifier: GPL-3.0-only

// Package report renders an assessment result into a fixed-layout PDF.
// Compilation is a pure transform, no storage or network access.
package report

import (
	"bytes"
	"fmt"
	"petdor-server/scoring"
	"time"

	"github.com/jung-kurt/gofpdf"
)

type Input struct {
	TutorName string
	PetName   string
	Species   scoring.Species
	Percent   float64
	// Summary lines echo each question with its answer over the scale max.
	Summary []string
	Comment string
	// GeneratedAt stamps the document; the zero value means time.Now().
	GeneratedAt time.Time
}

// Compile produces the report PDF bytes. Identical inputs with the same
// GeneratedAt yield identical bytes.
func Compile(in Input) ([]byte, error) {
	generatedAt := in.GeneratedAt
	if generatedAt.IsZero() {
		generatedAt = time.Now()
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetCatalogSort(true)
	pdf.SetCreationDate(generatedAt)
	pdf.SetModificationDate(generatedAt)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 10, tr("PET DOR Pain Report"), "", 1, "C", false, 0, "")
	pdf.Ln(6)

	pdf.SetFont("Arial", "", 12)
	pdf.CellFormat(0, 8, tr(fmt.Sprintf("Tutor: %s", in.TutorName)), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 8, tr(fmt.Sprintf("Pet: %s (%s)", in.PetName, in.Species)), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 8, tr(fmt.Sprintf("Result: %.1f%% pain estimate", in.Percent)), "", 1, "L", false, 0, "")
	pdf.MultiCell(0, 8, tr(scoring.Classify(in.Percent).Advice()), "", "L", false)
	pdf.Ln(4)

	pdf.MultiCell(0, 8, tr("Answer summary:"), "", "L", false)
	pdf.Ln(2)
	for _, line := range in.Summary {
		pdf.MultiCell(0, 7, tr("- "+line), "", "L", false)
	}
	pdf.Ln(6)

	if in.Comment != "" {
		pdf.MultiCell(0, 7, tr("Tutor comment:"), "", "L", false)
		pdf.MultiCell(0, 7, tr(in.Comment), "", "L", false)
	}

	pdf.SetFont("Arial", "I", 10)
	pdf.Ln(6)
	pdf.CellFormat(0, 7, tr(fmt.Sprintf("Generated at: %s", generatedAt.Format("2006-01-02 15:04"))), "", 1, "R", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render report PDF: %w", err)
	}
	return buf.Bytes(), nil
}

// SummaryLines pairs each question with its answer over the species scale.
func SummaryLines(species scoring.Species, answers []int) []string {
	questions := species.Questions()
	scaleMax := species.ScaleMax()
	lines := make([]string, 0, len(answers))
	for i, answer := range answers {
		if i >= len(questions) {
			break
		}
		lines = append(lines, fmt.Sprintf("%s - %d/%d", questions[i], answer, scaleMax))
	}
	return lines
}

// Filename is the suggested download name for a compiled report.
func Filename(petName string) string {
	return fmt.Sprintf("report_%s.pdf", petName)
}
