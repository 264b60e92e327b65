package conversation

import (
	"context"
	"fmt"
	"strings"

	"deprebuddy/app/client/gsearch"
	"deprebuddy/app/service/phq9"
	"deprebuddy/app/service/session"
)

const (
	AgentTriage     = "triage_agent"
	AgentAssessment = "assessment_agent"
	AgentResource   = "resource_agent"
	AgentSafety     = "safety_agent"
)

const (
	speakerUser  = "user"
	speakerAgent = "agent"
)

// TextGenerator is the text-generation collaborator.
type TextGenerator interface {
	Generate(ctx context.Context, prompt, system string) (string, error)
}

// GroundedSearcher is the grounded-search collaborator.
type GroundedSearcher interface {
	Search(ctx context.Context, query, system string) (*gsearch.Result, error)
}

// Reply is what a handler hands back to the HTTP layer: the user-facing
// message plus a snapshot of the session metadata after the request.
type Reply struct {
	Message        string
	CurrentAgent   string
	CrisisDetected bool
	Score          *int
	Category       *phq9.Category
}

func questionBlock(item int) string {
	return fmt.Sprintf("%s\n(0 = not at all, 1 = several days, 2 = more than half the days, 3 = nearly every day)",
		phq9.Questions[item])
}

func formatHistory(turns []session.Turn) string {
	if len(turns) == 0 {
		return "No messages yet"
	}

	var builder strings.Builder
	for _, turn := range turns {
		builder.WriteString(fmt.Sprintf("%s: %s\n", turn.Speaker, turn.Text))
	}

	return builder.String()
}
