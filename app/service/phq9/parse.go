package phq9

import (
	"errors"
	"strconv"
	"strings"
)

// ErrUnparsable means the message could not be read as an item answer.
// The caller re-asks the same question instead of advancing.
var ErrUnparsable = errors.New("message is not a valid answer")

var answerPhrases = map[string]int{
	"not at all":              0,
	"several days":            1,
	"more than half the days": 2,
	"more than half":          2,
	"nearly every day":        3,
	"almost every day":        3,
}

// ParseAnswer reads a user message as a 0-3 item answer. Accepts a bare
// digit or one of the standard PHQ-9 response phrases.
func ParseAnswer(message string) (int, error) {
	text := strings.ToLower(strings.TrimSpace(message))
	if text == "" {
		return 0, ErrUnparsable
	}

	if value, err := strconv.Atoi(text); err == nil {
		if value < 0 || value > MaxItemScore {
			return 0, ErrUnparsable
		}
		return value, nil
	}

	for phrase, value := range answerPhrases {
		if strings.Contains(text, phrase) {
			return value, nil
		}
	}

	return 0, ErrUnparsable
}
