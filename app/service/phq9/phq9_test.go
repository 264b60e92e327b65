package phq9

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyBands(t *testing.T) {
	cases := map[int]Category{
		0:  CategoryMinimal,
		4:  CategoryMinimal,
		5:  CategoryMild,
		9:  CategoryMild,
		10: CategoryModerate,
		14: CategoryModerate,
		15: CategoryModeratelySevere,
		19: CategoryModeratelySevere,
		20: CategorySevere,
		24: CategorySevere,
		27: CategorySevere,
	}

	for score, want := range cases {
		got, err := Classify(score)
		require.NoError(t, err)
		assert.Equal(t, want, got, "score %d", score)
	}
}

func TestClassifyRejectsOutOfRange(t *testing.T) {
	_, err := Classify(-1)
	assert.Error(t, err)

	_, err = Classify(28)
	assert.Error(t, err)
}

func TestScoreExcludesSelfHarmItem(t *testing.T) {
	answers := map[int]int{
		0: 0, 1: 1, 2: 1, 3: 2, 4: 0, 5: 1, 6: 0, 7: 0,
		SelfHarmItem: 3,
	}

	total, err := Score(answers)
	require.NoError(t, err)
	assert.Equal(t, 5, total)
}

func TestScoreRequiresAllAnswers(t *testing.T) {
	answers := map[int]int{0: 1, 1: 2}

	_, err := Score(answers)
	assert.Error(t, err)
}

func TestScoreRejectsInvalidValue(t *testing.T) {
	answers := map[int]int{
		0: 4, 1: 0, 2: 0, 3: 0, 4: 0, 5: 0, 6: 0, 7: 0,
		SelfHarmItem: 0,
	}

	_, err := Score(answers)
	assert.Error(t, err)
}

func TestDetectCrisis(t *testing.T) {
	assert.True(t, DetectCrisis("I want to die"))
	assert.True(t, DetectCrisis("Sometimes I think about SUICIDE"))
	assert.True(t, DetectCrisis("honestly i can't go on like this"))

	assert.False(t, DetectCrisis("I slept badly this week"))
	assert.False(t, DetectCrisis("2"))
}

func TestParseAnswer(t *testing.T) {
	cases := map[string]int{
		"0":                0,
		" 3 ":              3,
		"Not at all":       0,
		"several days":     1,
		"More than half":   2,
		"nearly every day": 3,
	}

	for text, want := range cases {
		got, err := ParseAnswer(text)
		require.NoError(t, err, "input %q", text)
		assert.Equal(t, want, got, "input %q", text)
	}
}

func TestParseAnswerRejectsGarbage(t *testing.T) {
	for _, text := range []string{"", "maybe", "5", "-1", "yes"} {
		_, err := ParseAnswer(text)
		assert.ErrorIs(t, err, ErrUnparsable, "input %q", text)
	}
}

func TestAskOrderStartsWithSelfHarmItem(t *testing.T) {
	assert.Equal(t, SelfHarmItem, AskOrder[0])
	assert.Len(t, AskOrder, NumItems)

	seen := make(map[int]bool)
	for _, item := range AskOrder {
		seen[item] = true
	}
	assert.Len(t, seen, NumItems)
}
