// SPDX-License-Identifier: GPL-3.0-only

// Package scoring turns questionnaire answers into a bounded pain percentage.
// It is a pure computation with no storage or network access.
package scoring

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidAnswer reports an answer outside [0, scaleMax].
var ErrInvalidAnswer = errors.New("invalid answer")

// Compute returns the pain percentage for the given answers on a 0..scaleMax
// scale, rounded to one decimal place, half away from zero. An empty answer
// set scores 0.0 for any scale.
func Compute(answers []int, scaleMax int) (float64, error) {
	sum := 0
	for i, v := range answers {
		if v < 0 || v > scaleMax {
			return 0, fmt.Errorf("%w: answer %d is %d, must be in [0, %d]", ErrInvalidAnswer, i, v, scaleMax)
		}
		sum += v
	}

	maxTotal := len(answers) * scaleMax
	if maxTotal == 0 {
		return 0.0, nil
	}

	percent := (float64(sum) / float64(maxTotal)) * 100.0
	return math.Round(percent*10) / 10, nil
}

// Band is the percent-range classification used for result presentation.
type Band string

const (
	BandSevere   Band = "severe"
	BandModerate Band = "moderate"
	BandMild     Band = "mild"
)

// Classify maps a percentage to its band. Boundaries are inclusive on the
// lower bound of each band.
func Classify(percent float64) Band {
	switch {
	case percent >= 70:
		return BandSevere
	case percent >= 40:
		return BandModerate
	}
	return BandMild
}

// Advice is the guidance line shown on reports for a band.
func (b Band) Advice() string {
	switch b {
	case BandSevere:
		return "Severe pain indicated. Seek a veterinarian immediately."
	case BandModerate:
		return "Moderate pain indicated. A veterinary consultation is recommended."
	}
	return "No significant pain detected at the moment. Keep observing."
}
