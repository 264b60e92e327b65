package conversation

import (
	"context"
	"errors"
	"testing"

	"deprebuddy/app/client/gsearch"
	"deprebuddy/app/service/phq9"
	"deprebuddy/app/service/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGenerator struct {
	reply string
	err   error
	calls int
}

func (f *fakeGenerator) Generate(_ context.Context, _, _ string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

type fakeSearcher struct {
	result *gsearch.Result
	err    error
	calls  int
}

func (f *fakeSearcher) Search(_ context.Context, _, _ string) (*gsearch.Result, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func newTestService(t *testing.T, generator *fakeGenerator, searcher *fakeSearcher) *Service {
	t.Helper()

	sessionSvc, err := session.New(nil)
	require.NoError(t, err)

	return NewWithCollaborators(sessionSvc, generator, searcher)
}

func sendAll(t *testing.T, svc *Service, sessionID string, messages []string) *Reply {
	t.Helper()

	var reply *Reply
	for _, msg := range messages {
		var err error
		reply, err = svc.ProcessMessage(context.Background(), sessionID, msg)
		require.NoError(t, err)
	}

	return reply
}

// Item 9 answer first, then the eight core items summing to 5.
var mildAnswers = []string{"0", "0", "1", "1", "2", "0", "1", "0", "0"}

func TestStartSession(t *testing.T) {
	svc := newTestService(t,
		&fakeGenerator{reply: "Hello, thank you for reaching out."},
		&fakeSearcher{})

	sess, greeting := svc.StartSession(context.Background())

	assert.Equal(t, session.StepTriage, sess.Step)
	assert.Empty(t, sess.Answers)
	assert.Contains(t, greeting, "Hello, thank you for reaching out.")
	assert.Contains(t, greeting, phq9.Questions[phq9.SelfHarmItem])
}

func TestStartSessionFallsBackWhenGeneratorFails(t *testing.T) {
	svc := newTestService(t,
		&fakeGenerator{err: errors.New("api down")},
		&fakeSearcher{})

	_, greeting := svc.StartSession(context.Background())
	assert.Contains(t, greeting, phq9.Questions[phq9.SelfHarmItem])
}

func TestFullFlowMild(t *testing.T) {
	generator := &fakeGenerator{reply: "You shared a lot today, and your result is in the MILD range."}
	searcher := &fakeSearcher{result: &gsearch.Result{
		Text: "Here are some self-help options.",
		Sources: []gsearch.Source{
			{Title: "NHS self-help", URI: "https://example.org/self-help"},
		},
	}}
	svc := newTestService(t, generator, searcher)
	sess, _ := svc.StartSession(context.Background())

	reply := sendAll(t, svc, sess.ID, mildAnswers)

	assert.Equal(t, AgentResource, reply.CurrentAgent)
	assert.False(t, reply.CrisisDetected)
	require.NotNil(t, reply.Score)
	assert.Equal(t, 5, *reply.Score)
	require.NotNil(t, reply.Category)
	assert.Equal(t, phq9.CategoryMild, *reply.Category)
	assert.Contains(t, reply.Message, "MILD")
	assert.Contains(t, reply.Message, "https://example.org/self-help")
	assert.Equal(t, session.StepComplete, sess.Step)
	assert.Equal(t, 1, searcher.calls)
}

func TestReplayAfterCompleteIsStable(t *testing.T) {
	generator := &fakeGenerator{reply: "Closing message."}
	searcher := &fakeSearcher{result: &gsearch.Result{}}
	svc := newTestService(t, generator, searcher)
	sess, _ := svc.StartSession(context.Background())

	first := sendAll(t, svc, sess.ID, mildAnswers)

	replay, err := svc.ProcessMessage(context.Background(), sess.ID, "thanks")
	require.NoError(t, err)

	assert.Equal(t, first.Message, replay.Message)
	assert.Equal(t, AgentResource, replay.CurrentAgent)
	assert.Equal(t, 1, searcher.calls)
}

func TestCrisisKeywordShortCircuits(t *testing.T) {
	svc := newTestService(t, &fakeGenerator{reply: "hi"}, &fakeSearcher{})
	sess, _ := svc.StartSession(context.Background())

	reply, err := svc.ProcessMessage(context.Background(), sess.ID, "I want to die")
	require.NoError(t, err)

	assert.True(t, reply.CrisisDetected)
	assert.Equal(t, AgentSafety, reply.CurrentAgent)
	assert.Contains(t, reply.Message, "Suicide Prevention Lifeline")
	assert.Empty(t, sess.Answers)

	// the flag is sticky: a normal-looking answer changes nothing
	later, err := svc.ProcessMessage(context.Background(), sess.ID, "2")
	require.NoError(t, err)

	assert.Equal(t, AgentSafety, later.CurrentAgent)
	assert.True(t, later.CrisisDetected)
	assert.Empty(t, sess.Answers)
	assert.Equal(t, session.StepTriage, sess.Step)
}

func TestPositiveSelfHarmAnswerIsCrisis(t *testing.T) {
	svc := newTestService(t, &fakeGenerator{reply: "hi"}, &fakeSearcher{})
	sess, _ := svc.StartSession(context.Background())

	reply, err := svc.ProcessMessage(context.Background(), sess.ID, "1")
	require.NoError(t, err)

	assert.True(t, reply.CrisisDetected)
	assert.Equal(t, AgentSafety, reply.CurrentAgent)
	require.NotNil(t, reply.Category)
	assert.Equal(t, phq9.CategoryCrisis, *reply.Category)
}

func TestUnparsableAnswerReprompts(t *testing.T) {
	svc := newTestService(t, &fakeGenerator{reply: "hi"}, &fakeSearcher{})
	sess, _ := svc.StartSession(context.Background())

	reply, err := svc.ProcessMessage(context.Background(), sess.ID, "I guess so?")
	require.NoError(t, err)

	assert.Equal(t, AgentTriage, reply.CurrentAgent)
	assert.Contains(t, reply.Message, phq9.Questions[phq9.SelfHarmItem])
	assert.Empty(t, sess.Answers)
}

func TestUnknownSession(t *testing.T) {
	svc := newTestService(t, &fakeGenerator{}, &fakeSearcher{})

	_, err := svc.ProcessMessage(context.Background(), "missing", "hello")
	assert.ErrorIs(t, err, session.ErrNotFound)
}

func TestCollaboratorFailuresDegrade(t *testing.T) {
	generator := &fakeGenerator{err: errors.New("model unavailable")}
	searcher := &fakeSearcher{err: errors.New("search unavailable")}
	svc := newTestService(t, generator, searcher)
	sess, _ := svc.StartSession(context.Background())

	reply := sendAll(t, svc, sess.ID, mildAnswers)

	assert.Equal(t, AgentResource, reply.CurrentAgent)
	assert.Contains(t, reply.Message, "MILD")
	assert.Contains(t, reply.Message, "Lifeline")
	assert.Equal(t, session.StepComplete, sess.Step)
}
