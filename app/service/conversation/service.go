// Package conversation runs the triage dialogue: a step-keyed dispatcher
// over three agents (triage, assessment, resource) that chain synchronously
// within one request, plus the crisis guard that overrides all of them.
package conversation

import (
	"context"
	"log/slog"

	"deprebuddy/app/client/gsearch"
	"deprebuddy/app/client/llm"
	"deprebuddy/app/service/phq9"
	"deprebuddy/app/service/session"

	_ "embed"

	"github.com/samber/do"
)

//go:embed greeting_prompt.txt
var greetingSystemPrompt string

const failureMessage = "Something went wrong on our side. Please try again, or start a new session."

type Service struct {
	sessionSvc *session.Service
	generator  TextGenerator
	searcher   GroundedSearcher
}

func New(di *do.Injector) (*Service, error) {
	return NewWithCollaborators(
		do.MustInvoke[*session.Service](di),
		do.MustInvoke[*llm.Client](di),
		do.MustInvoke[*gsearch.Client](di),
	), nil
}

// NewWithCollaborators wires explicit collaborator implementations. Tests
// use it to inject fakes.
func NewWithCollaborators(
	sessionSvc *session.Service,
	generator TextGenerator,
	searcher GroundedSearcher,
) *Service {
	return &Service{
		sessionSvc: sessionSvc,
		generator:  generator,
		searcher:   searcher,
	}
}

// StartSession creates a session and produces the greeting, which already
// asks the immediate crisis question (the self-harm item comes first).
func (s *Service) StartSession(ctx context.Context) (*session.Session, string) {
	firstItem := phq9.AskOrder[0]

	greeting, err := s.generator.Generate(ctx,
		"The user is reaching out for support. Begin the conversation now. Greet them warmly in two sentences at most, do not ask any question yourself.",
		greetingSystemPrompt)
	if err != nil {
		slog.Warn("greeting generation failed, using fallback", "error", err)
		greeting = "Hi, I'm Depre Buddy. I'm here to listen and help you figure out what kind of support could be useful."
	}

	greeting = greeting + "\n\nOver the last two weeks, how often have you been bothered by the following?\n\n" + questionBlock(firstItem)

	sess := s.sessionSvc.Create()
	sess.Lock()
	sess.Append(speakerAgent, greeting)
	sess.Unlock()

	slog.Info("session created", "session_id", sess.ID)

	return sess, greeting
}

// ProcessMessage routes one user message through the dispatch table. The
// crisis guard is evaluated before the step lookup, so every handler is
// covered by it. Handler chaining happens inside the switch arms: a request
// that completes the questionnaire runs triage, assessment and resource
// before returning.
func (s *Service) ProcessMessage(ctx context.Context, sessionID, userMessage string) (*Reply, error) {
	sess, err := s.sessionSvc.Get(sessionID)
	if err != nil {
		return nil, err
	}

	sess.Lock()
	defer sess.Unlock()

	sess.Append(speakerUser, userMessage)

	var reply *Reply

	if sess.CrisisFlag || phq9.DetectCrisis(userMessage) {
		reply = s.safetyReply(sess)
	} else {
		switch sess.Step {
		case session.StepTriage:
			reply = s.runTriage(ctx, sess, userMessage)
		case session.StepAssessment:
			reply = s.runAssessment(ctx, sess)
		case session.StepResource:
			reply = s.runResource(ctx, sess)
		case session.StepComplete:
			reply = s.completedReply(sess)
		default:
			slog.Error("no handler for step", "step", sess.Step, "session_id", sess.ID)
			reply = s.reply(sess, AgentTriage, failureMessage)
		}
	}

	sess.Append(speakerAgent, reply.Message)

	slog.Info("message processed",
		"session_id", sess.ID,
		"step", sess.Step.String(),
		"agent", reply.CurrentAgent,
		"crisis", reply.CrisisDetected,
	)

	return reply, nil
}

// reply snapshots the session metadata into a Reply.
func (s *Service) reply(sess *session.Session, agent, message string) *Reply {
	return &Reply{
		Message:        message,
		CurrentAgent:   agent,
		CrisisDetected: sess.CrisisFlag,
		Score:          sess.Score,
		Category:       sess.Category,
	}
}

// safetyReply sets the sticky crisis flag and answers with the hotline
// message. The step is left where it was: it is terminal in effect, the
// guard catches every later message.
func (s *Service) safetyReply(sess *session.Session) *Reply {
	sess.CrisisFlag = true

	category := phq9.CategoryCrisis
	sess.Category = &category

	return s.reply(sess, AgentSafety, phq9.SafetyResponse)
}

// completedReply replays the cached closing message without re-running
// assessment or search.
func (s *Service) completedReply(sess *session.Session) *Reply {
	return s.reply(sess, AgentResource, sess.ClosingMessage)
}
