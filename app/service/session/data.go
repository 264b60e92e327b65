package session

import (
	"sync"
	"time"

	"deprebuddy/app/service/phq9"
)

// Step is the position of a session in the triage flow. It only ever moves
// forward.
type Step int

const (
	StepTriage Step = iota
	StepAssessment
	StepResource
	StepComplete
)

func (s Step) String() string {
	switch s {
	case StepTriage:
		return "triage"
	case StepAssessment:
		return "assessment"
	case StepResource:
		return "resource"
	case StepComplete:
		return "complete"
	default:
		return "unknown"
	}
}

// Turn is one entry of the conversation history.
type Turn struct {
	Speaker string `json:"speaker"`
	Text    string `json:"text"`
}

// Session is the per-conversation state. Callers must hold the session lock
// while reading or mutating it; the store hands out shared pointers.
type Session struct {
	mu sync.Mutex

	ID        string
	CreatedAt time.Time

	Step    Step
	History []Turn

	// Answers maps item index (0-8) to the 0-3 response. Filled one item
	// per request, never more than phq9.NumItems entries.
	Answers map[int]int

	// Score and Category are set by the assessment stage and nil before it.
	Score    *int
	Category *phq9.Category

	// CrisisFlag is sticky: once set it is never cleared and every later
	// message short-circuits to the safety response.
	CrisisFlag bool

	// ClosingMessage caches the resource reply so replays after completion
	// do not re-run the search.
	ClosingMessage string
}

// Lock serializes requests against the same session id.
func (s *Session) Lock() {
	s.mu.Lock()
}

func (s *Session) Unlock() {
	s.mu.Unlock()
}

// Append adds a turn to the history. The history is append-only.
func (s *Session) Append(speaker, text string) {
	s.History = append(s.History, Turn{Speaker: speaker, Text: text})
}
