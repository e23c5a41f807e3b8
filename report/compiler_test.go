// SPDX-License-Identifier: GPL-3.0-only

package report

import (
	"bytes"
	"petdor-server/scoring"
	"strings"
	"testing"
	"time"
)

func sampleInput() Input {
	answers := []int{3, 4, 2, 5, 1, 0, 6, 7, 3, 2, 4, 5, 1, 0, 3}
	return Input{
		TutorName:   "Maria Silva",
		PetName:     "Rex",
		Species:     scoring.SpeciesDog,
		Percent:     43.8,
		Summary:     SummaryLines(scoring.SpeciesDog, answers),
		Comment:     "Limping since Tuesday",
		GeneratedAt: time.Date(2025, 3, 14, 10, 30, 0, 0, time.UTC),
	}
}

func TestCompileProducesPDF(t *testing.T) {
	doc, err := Compile(sampleInput())
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
	if len(doc) == 0 {
		t.Fatal("Compiled document should not be empty")
	}
	if !bytes.HasPrefix(doc, []byte("%PDF-")) {
		t.Errorf("Document should start with a PDF header, got %q", doc[:8])
	}
}

func TestCompileIsDeterministic(t *testing.T) {
	in := sampleInput()
	first, err := Compile(in)
	if err != nil {
		t.Fatalf("First Compile failed: %v", err)
	}
	second, err := Compile(in)
	if err != nil {
		t.Fatalf("Second Compile failed: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Error("Compiling identical inputs with a fixed timestamp should yield identical bytes")
	}
}

func TestCompileWithoutComment(t *testing.T) {
	in := sampleInput()
	in.Comment = ""
	doc, err := Compile(in)
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
	if len(doc) == 0 {
		t.Fatal("Compiled document should not be empty")
	}
}

func TestSummaryLines(t *testing.T) {
	answers := []int{0, 4, 2, 0, 0, 1, 0, 3, 4}
	lines := SummaryLines(scoring.SpeciesCat, answers)
	if len(lines) != 9 {
		t.Fatalf("Expected 9 summary lines, got %d", len(lines))
	}
	if !strings.HasSuffix(lines[1], "4/4") {
		t.Errorf("Line should end with answer over scale max, got %q", lines[1])
	}
	if !strings.HasPrefix(lines[0], "My cat jumps up") {
		t.Errorf("Line should start with the question, got %q", lines[0])
	}
}

func TestFilename(t *testing.T) {
	if got := Filename("Rex"); got != "report_Rex.pdf" {
		t.Errorf("Filename = %q", got)
	}
}
