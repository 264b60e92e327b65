// Package phq9 implements the PHQ-9 questionnaire: item texts, answer
// parsing, scoring and severity classification, plus the crisis language
// scan used by the triage flow.
package phq9

import (
	"github.com/samber/oops"
)

type Category string

const (
	CategoryMinimal          Category = "MINIMAL"
	CategoryMild             Category = "MILD"
	CategoryModerate         Category = "MODERATE"
	CategoryModeratelySevere Category = "MODERATELY_SEVERE"
	CategorySevere           Category = "SEVERE"
	CategoryCrisis           Category = "CRISIS"
)

const (
	NumItems     = 9
	MaxItemScore = 3

	// SelfHarmItem is the index of item 9 ("better off dead or hurting
	// yourself"). It never contributes to the numeric score: any positive
	// answer routes to CategoryCrisis instead.
	SelfHarmItem = 8

	maxTotalScore = NumItems * MaxItemScore
)

// Questions holds the item texts, indices 0-7 are the core questions,
// index 8 is the self-harm item.
// https://www.mdcalc.com/calc/1725/phq9-patient-health-questionnaire9
var Questions = [NumItems]string{
	"Little interest or pleasure in doing things?",
	"Feeling down, depressed, or hopeless?",
	"Trouble falling or staying asleep, or sleeping too much?",
	"Feeling tired or having little energy?",
	"Poor appetite or overeating?",
	"Feeling bad about yourself, or that you are a failure or have let yourself or your family down?",
	"Trouble concentrating on things, such as reading the newspaper or watching television?",
	"Moving or speaking so slowly that other people could have noticed? Or the opposite, being so fidgety or restless that you have been moving around a lot more than usual?",
	"Thoughts that you would be better off dead or of hurting yourself in some way?",
}

// AskOrder is the order items are administered in: the self-harm item comes
// first as the immediate crisis question, then the eight core items.
var AskOrder = [NumItems]int{SelfHarmItem, 0, 1, 2, 3, 4, 5, 6, 7}

// Classify maps a total score to its severity band.
func Classify(score int) (Category, error) {
	if score < 0 || score > maxTotalScore {
		return "", oops.Errorf("score %d is out of range [0, %d]", score, maxTotalScore)
	}

	switch {
	case score >= 20:
		return CategorySevere, nil
	case score >= 15:
		return CategoryModeratelySevere, nil
	case score >= 10:
		return CategoryModerate, nil
	case score >= 5:
		return CategoryMild, nil
	default:
		return CategoryMinimal, nil
	}
}

// Score sums the eight core items. The self-harm item is excluded: it is
// handled by the crisis override, not the bands.
func Score(answers map[int]int) (int, error) {
	if !Complete(answers) {
		return 0, oops.Errorf("incomplete answer set: %d of %d items", len(answers), NumItems)
	}

	total := 0
	for item, value := range answers {
		if item == SelfHarmItem {
			continue
		}
		if value < 0 || value > MaxItemScore {
			return 0, oops.Errorf("item %d has invalid value %d", item, value)
		}
		total += value
	}

	return total, nil
}

// Complete reports whether every item has been answered.
func Complete(answers map[int]int) bool {
	if len(answers) < NumItems {
		return false
	}

	for item := 0; item < NumItems; item++ {
		if _, ok := answers[item]; !ok {
			return false
		}
	}

	return true
}
