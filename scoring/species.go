// SPDX-License-Identifier: GPL-3.0-only

package scoring

// Species selects the questionnaire and the per-question answer scale.
type Species string

const (
	SpeciesDog Species = "dog"
	SpeciesCat Species = "cat"
)

var dogQuestions = []string{
	"My dog has little energy",
	"My dog's appetite has decreased",
	"My dog is reluctant to get up",
	"My dog likes being close to me",
	"My dog has been playful",
	"My dog showed a normal amount of affection",
	"My dog enjoyed being touched or petted",
	"My dog did their favorite activities",
	"My dog slept well through the night",
	"My dog acted normally",
	"My dog had trouble standing up or lying down",
	"My dog had trouble walking",
	"My dog fell or lost balance",
	"My dog ate their favorite food normally",
	"My dog had trouble getting comfortable",
}

var catQuestions = []string{
	"My cat jumps up",
	"My cat jumps up to counter height or similar in one leap",
	"My cat jumps down",
	"My cat plays with toys and/or chases objects",
	"My cat plays and interacts with other pets",
	"My cat gets up from a resting position",
	"My cat lies down and/or sits",
	"My cat stretches",
	"My cat grooms normally",
}

func (s Species) Valid() bool {
	switch s {
	case SpeciesDog, SpeciesCat:
		return true
	}
	return false
}

// ScaleMax is the upper bound of a single answer for the species (0 means
// no alteration, ScaleMax means severe alteration).
func (s Species) ScaleMax() int {
	switch s {
	case SpeciesDog:
		return 7
	case SpeciesCat:
		return 4
	}
	return 0
}

// Questions returns the ordered questionnaire for the species. The returned
// slice is a copy, callers may modify it freely.
func (s Species) Questions() []string {
	var qs []string
	switch s {
	case SpeciesDog:
		qs = dogQuestions
	case SpeciesCat:
		qs = catQuestions
	}
	out := make([]string, len(qs))
	copy(out, qs)
	return out
}

func AllSpecies() []Species {
	return []Species{SpeciesDog, SpeciesCat}
}
