// SPDX-License-Identifier: GPL-3.0-only

package scoring

import (
	"errors"
	"testing"
)

func TestComputeBounds(t *testing.T) {
	allMax := make([]int, 15)
	for i := range allMax {
		allMax[i] = 7
	}
	percent, err := Compute(allMax, 7)
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}
	if percent != 100.0 {
		t.Errorf("All-max answers should score 100.0, got %v", percent)
	}

	allZero := make([]int, 15)
	percent, err = Compute(allZero, 7)
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}
	if percent != 0.0 {
		t.Errorf("All-zero answers should score 0.0, got %v", percent)
	}
}

func TestComputeEmpty(t *testing.T) {
	for _, scaleMax := range []int{0, 4, 7} {
		percent, err := Compute(nil, scaleMax)
		if err != nil {
			t.Fatalf("Compute(nil, %d) failed: %v", scaleMax, err)
		}
		if percent != 0.0 {
			t.Errorf("Compute(nil, %d) should be 0.0, got %v", scaleMax, percent)
		}
	}
}

func TestComputeGolden(t *testing.T) {
	// Pinned golden value: sum=46, max=105, 43.8095...% rounds to 43.8.
	answers := []int{3, 4, 2, 5, 1, 0, 6, 7, 3, 2, 4, 5, 1, 0, 3}
	percent, err := Compute(answers, 7)
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}
	if percent != 43.8 {
		t.Errorf("Golden value mismatch: want 43.8, got %v", percent)
	}
}

func TestComputeRounding(t *testing.T) {
	// 1/15*100 = 6.666... rounds half away from zero to 6.7.
	answers := make([]int, 15)
	answers[0] = 1
	percent, err := Compute(answers, 1)
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}
	if percent != 6.7 {
		t.Errorf("Rounding mismatch: want 6.7, got %v", percent)
	}

	// 1/8*100 = 12.5 at the half boundary rounds up, not to even.
	percent, err = Compute([]int{1, 0}, 4)
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}
	if percent != 12.5 {
		t.Errorf("Expected exact 12.5, got %v", percent)
	}
}

func TestComputeInvalidAnswer(t *testing.T) {
	if _, err := Compute([]int{0, 8, 0}, 7); !errors.Is(err, ErrInvalidAnswer) {
		t.Errorf("Answer above scale max should fail with ErrInvalidAnswer, got %v", err)
	}
	if _, err := Compute([]int{-1}, 7); !errors.Is(err, ErrInvalidAnswer) {
		t.Errorf("Negative answer should fail with ErrInvalidAnswer, got %v", err)
	}
}

func TestClassify(t *testing.T) {
	cases := []struct {
		percent float64
		want    Band
	}{
		{0, BandMild},
		{39.9, BandMild},
		{40, BandModerate},
		{69.9, BandModerate},
		{70, BandSevere},
		{100, BandSevere},
	}
	for _, tc := range cases {
		if got := Classify(tc.percent); got != tc.want {
			t.Errorf("Classify(%v) = %v, want %v", tc.percent, got, tc.want)
		}
	}
}

func TestSpecies(t *testing.T) {
	if n := len(SpeciesDog.Questions()); n != 15 {
		t.Errorf("Dog questionnaire should have 15 questions, got %d", n)
	}
	if n := len(SpeciesCat.Questions()); n != 9 {
		t.Errorf("Cat questionnaire should have 9 questions, got %d", n)
	}
	if SpeciesDog.ScaleMax() != 7 {
		t.Errorf("Dog scale max should be 7, got %d", SpeciesDog.ScaleMax())
	}
	if SpeciesCat.ScaleMax() != 4 {
		t.Errorf("Cat scale max should be 4, got %d", SpeciesCat.ScaleMax())
	}
	if Species("parrot").Valid() {
		t.Error("Unknown species should not be valid")
	}

	qs := SpeciesDog.Questions()
	qs[0] = "mutated"
	if SpeciesDog.Questions()[0] == "mutated" {
		t.Error("Questions should return a copy")
	}
}
