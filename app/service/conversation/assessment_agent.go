package conversation

import (
	"context"
	"log/slog"

	"deprebuddy/app/service/phq9"
	"deprebuddy/app/service/session"
)

// runAssessment is fully deterministic, it makes no model call. Routing
// guarantees all nine answers are present before it runs; an incomplete set
// here is a programming error, logged and downgraded to a generic failure.
func (s *Service) runAssessment(ctx context.Context, sess *session.Session) *Reply {
	score, err := phq9.Score(sess.Answers)
	if err != nil {
		slog.Error("assessment invoked with invalid answer set", "session_id", sess.ID, "error", err)
		return s.reply(sess, AgentAssessment, failureMessage)
	}

	category, err := phq9.Classify(score)
	if err != nil {
		slog.Error("score classification failed", "session_id", sess.ID, "score", score, "error", err)
		return s.reply(sess, AgentAssessment, failureMessage)
	}

	// the scoring sentinel: a positive self-harm answer wins over the bands
	if sess.Answers[phq9.SelfHarmItem] > 0 {
		category = phq9.CategoryCrisis
	}

	sess.Score = &score
	sess.Category = &category
	sess.Step = session.StepResource

	slog.Info("assessment complete", "session_id", sess.ID, "score", score, "category", category)

	if category == phq9.CategoryCrisis {
		sess.CrisisFlag = true
		return s.reply(sess, AgentSafety, phq9.SafetyResponse)
	}

	return s.runResource(ctx, sess)
}
