package conversation

import (
	"context"

	"deprebuddy/app/service/phq9"
	"deprebuddy/app/service/session"
)

// runTriage collects one questionnaire answer per message. The item being
// answered is determined by how many answers are already in, following
// phq9.AskOrder. Unparsable input re-asks the same question and records
// nothing.
func (s *Service) runTriage(ctx context.Context, sess *session.Session, userMessage string) *Reply {
	item := phq9.AskOrder[len(sess.Answers)]

	value, err := phq9.ParseAnswer(userMessage)
	if err != nil {
		return s.reply(sess, AgentTriage,
			"Please answer with a number from 0 to 3.\n\n"+questionBlock(item))
	}

	sess.Answers[item] = value

	// positive self-harm answer: crisis override, no thresholds
	if item == phq9.SelfHarmItem && value > 0 {
		return s.safetyReply(sess)
	}

	if phq9.Complete(sess.Answers) {
		sess.Step = session.StepAssessment
		return s.runAssessment(ctx, sess)
	}

	next := phq9.AskOrder[len(sess.Answers)]

	return s.reply(sess, AgentTriage,
		"Thank you. Next one:\n\n"+questionBlock(next))
}
