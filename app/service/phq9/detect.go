package phq9

import "strings"

var crisisIndicators = []string{
	"kill myself", "suicide", "end it all", "want to die",
	"harm myself", "self harm", "not worth living",
	"better off dead", "can't go on", "end my life",
}

// SafetyResponse is returned whenever crisis language is detected. Once a
// session has produced it, every later message produces it again.
const SafetyResponse = `I'm deeply concerned about what you're sharing.

Please reach out for immediate help:
- National Suicide Prevention Lifeline: 0800 587 0800
- Alternative Suicide Prevention Lifeline: 0800 689 0880
- Emergency Services: 999

You are not alone, and there are people who want to help you right now.`

// DetectCrisis scans a message for crisis language.
func DetectCrisis(message string) bool {
	lower := strings.ToLower(message)

	for _, indicator := range crisisIndicators {
		if strings.Contains(lower, indicator) {
			return true
		}
	}

	return false
}
