package conversation

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"deprebuddy/app/client/gsearch"
	"deprebuddy/app/service/phq9"
	"deprebuddy/app/service/session"

	_ "embed"

	"github.com/elliotchance/pie/v2"
)

//go:embed resource_prompt.txt
var resourcePromptTemplate string

const resourceSystemPrompt = "You are an empathetic mental health support agent writing the closing message " +
	"of a triage conversation. Be warm and concrete, never diagnose, and keep it under 150 words."

const searchSystemPrompt = "You are a resource lookup assistant. Find current, reputable mental health " +
	"resources (hotlines, self-help programs, finding a therapist) and summarize them briefly."

var categoryGuidance = map[phq9.Category]string{
	phq9.CategoryMinimal:          "No depression indicated. Encourage healthy routines and checking in again if things change.",
	phq9.CategoryMild:             "Mild symptoms. Suggest self-help materials and monitoring how they feel over the coming weeks.",
	phq9.CategoryModerate:         "Moderate symptoms. Suggest self-help plus considering a conversation with a professional.",
	phq9.CategoryModeratelySevere: "Moderately severe symptoms. Recommend reaching out to a mental health professional soon.",
	phq9.CategorySevere:           "Severe symptoms. Strongly recommend professional attention without delay.",
}

var categorySearchQuery = map[phq9.Category]string{
	phq9.CategoryMinimal:          "evidence-based habits for maintaining good mental health",
	phq9.CategoryMild:             "self-help resources for mild depression symptoms",
	phq9.CategoryModerate:         "self-help and counseling options for moderate depression",
	phq9.CategoryModeratelySevere: "how to find a therapist for depression quickly",
	phq9.CategorySevere:           "urgent mental health support and depression treatment options",
}

// fallbackResource guarantees the closing message always carries at least
// one usable resource, even when search returns nothing.
const fallbackResource = "National Suicide Prevention Lifeline (24/7): 0800 587 0800"

// runResource produces the closing message: a category-tailored empathetic
// text from the model, augmented with grounded search citations. Both
// collaborator failures degrade, neither aborts the request.
func (s *Service) runResource(ctx context.Context, sess *session.Session) *Reply {
	if sess.Category == nil {
		slog.Error("resource stage reached without category", "session_id", sess.ID)
		return s.reply(sess, AgentResource, failureMessage)
	}
	category := *sess.Category

	templateValues := map[string]any{
		"category": string(category),
		"guidance": categoryGuidance[category],
		"history":  formatHistory(sess.History),
	}

	prompt := resourcePromptTemplate
	for key, value := range templateValues {
		prompt = strings.ReplaceAll(prompt, "{"+key+"}", fmt.Sprint(value))
	}

	message, err := s.generator.Generate(ctx, prompt, resourceSystemPrompt)
	if err != nil {
		slog.Error("resource text generation failed", "session_id", sess.ID, "error", err)
		message = fmt.Sprintf(
			"Thank you for answering everything. Your screening result falls in the %s range. %s",
			category, categoryGuidance[category])
	}

	searchResult, err := s.searcher.Search(ctx, categorySearchQuery[category], searchSystemPrompt)
	if err != nil {
		slog.Warn("grounded search failed, closing without citations", "session_id", sess.ID, "error", err)
		searchResult = nil
	}

	message = mergeResources(message, searchResult)

	sess.Step = session.StepComplete
	sess.ClosingMessage = message

	return s.reply(sess, AgentResource, message)
}

func mergeResources(message string, result *gsearch.Result) string {
	var builder strings.Builder
	builder.WriteString(message)

	if result != nil && result.Text != "" {
		builder.WriteString("\n\n")
		builder.WriteString(result.Text)
	}

	builder.WriteString("\n\nResources:\n")

	var lines []string
	if result != nil {
		lines = pie.Map(result.Sources, func(src gsearch.Source) string {
			if src.Title == "" {
				return "- " + src.URI
			}
			return fmt.Sprintf("- %s (%s)", src.Title, src.URI)
		})
	}
	if len(lines) == 0 {
		lines = []string{"- " + fallbackResource}
	}

	builder.WriteString(strings.Join(lines, "\n"))

	return builder.String()
}
