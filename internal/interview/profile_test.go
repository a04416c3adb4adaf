package interview

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/talentscout/screener/internal/ai"
	"github.com/talentscout/screener/internal/session"
)

type stubJudge struct {
	verdict ai.Verdict
	err     error
	calls   int
}

func (j *stubJudge) Assess(_ context.Context, _, _ string, _ session.Stage) (*ai.Verdict, error) {
	j.calls++
	if j.err != nil {
		return nil, j.err
	}
	v := j.verdict
	return &v, nil
}

type stubQuestions struct {
	questions []string
	err       error
	profile   ai.Profile
	calls     int
}

func (q *stubQuestions) Generate(_ context.Context, profile ai.Profile) ([]string, error) {
	q.calls++
	q.profile = profile
	if q.err != nil {
		return nil, q.err
	}
	return q.questions, nil
}

func newTestInterviewer(judge ai.Judge, source ai.QuestionSource) *Interviewer {
	return New(Deps{
		Context:   ai.NewContextClassifier(judge, zap.NewNop()),
		Questions: source,
		Logger:    zap.NewNop(),
	})
}

// Canonical accepted input per profile field.
var profileInputs = map[session.Field]string{
	session.FieldFullName:         "John Smith",
	session.FieldEmail:            "john@example.com",
	session.FieldPhone:            "+1 555 0100",
	session.FieldExperienceYears:  "5 years",
	session.FieldDesiredPositions: "Backend Engineer",
	session.FieldLocation:         "Berlin",
	session.FieldTechStack:        "Python, Go, SQL",
}

// advanceTo feeds accepted inputs until the given field is the pending one.
func advanceTo(t *testing.T, i *Interviewer, field session.Field) {
	t.Helper()

	for {
		current, pending := i.Session().CurrentField()
		if !pending {
			t.Fatalf("profile completed before reaching %s", field)
		}
		if current == field {
			return
		}
		outcome, err := i.AdvanceProfile(context.Background(), profileInputs[current])
		if err != nil {
			t.Fatalf("filling %s: %v", current, err)
		}
		if outcome.Kind != ProfileFieldFilled {
			t.Fatalf("input for %s rejected: %q", current, outcome.Message)
		}
	}
}

func TestAdvanceProfileCollectsFieldsInOrder(t *testing.T) {
	source := &stubQuestions{questions: []string{"Q1", "Q2", "Q3", "Q4", "Q5"}}
	i := newTestInterviewer(nil, source)

	for _, field := range session.FieldOrder() {
		outcome, err := i.AdvanceProfile(context.Background(), profileInputs[field])
		if err != nil {
			t.Fatalf("filling %s: %v", field, err)
		}
		if outcome.Kind != ProfileFieldFilled || outcome.Field != field {
			t.Fatalf("unexpected outcome for %s: %+v", field, outcome)
		}
	}

	if !i.Session().ProfileComplete() {
		t.Fatal("profile should be complete")
	}
	if got := i.Session().Stage(); got != session.StageGatheringInfo {
		t.Fatalf("stage transition is the caller's job, got %s", got)
	}

	profile := i.Session().Profile()
	if profile.FullName != "John Smith" || profile.ExperienceYears != 5 {
		t.Fatalf("unexpected profile: %+v", profile)
	}
	if len(profile.TechStack) != 3 || profile.TechStack[1] != "Go" {
		t.Fatalf("unexpected tech stack: %v", profile.TechStack)
	}

	// Storing the tech stack loads the question queue.
	if got := i.Session().QueueLen(); got != 5 {
		t.Fatalf("expected 5 queued questions, got %d", got)
	}

	first, err := i.Session().AdvanceToQA()
	if err != nil {
		t.Fatalf("starting QA: %v", err)
	}
	if first != "Q1" {
		t.Fatalf("expected first generated question, got %q", first)
	}
}

func TestAdvanceProfileNameSkipsJudge(t *testing.T) {
	judge := &stubJudge{verdict: ai.Verdict{OnTopic: false, Confidence: 0.95, Guidance: "nope"}}
	i := newTestInterviewer(judge, nil)

	outcome, err := i.AdvanceProfile(context.Background(), "John Smith")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if outcome.Kind != ProfileFieldFilled {
		t.Fatalf("plausible name rejected: %+v", outcome)
	}
	if judge.calls != 0 {
		t.Fatalf("judge consulted %d times for a structurally valid name", judge.calls)
	}
}

func TestAdvanceProfileRejectsBadEmail(t *testing.T) {
	i := newTestInterviewer(nil, nil)
	advanceTo(t, i, session.FieldEmail)

	outcome, err := i.AdvanceProfile(context.Background(), "not-an-email")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if outcome.Kind != ProfileRejected {
		t.Fatalf("expected rejection, got %+v", outcome)
	}
	if !strings.Contains(outcome.Message, "valid email") {
		t.Fatalf("unexpected message: %q", outcome.Message)
	}
	if current, _ := i.Session().CurrentField(); current != session.FieldEmail {
		t.Fatalf("pending field moved to %s after rejection", current)
	}

	outcome, err = i.AdvanceProfile(context.Background(), "john@example.com")
	if err != nil || outcome.Kind != ProfileFieldFilled {
		t.Fatalf("valid email rejected: %+v, %v", outcome, err)
	}
}

func TestAdvanceProfileOffTopicAnswer(t *testing.T) {
	judge := &stubJudge{verdict: ai.Verdict{
		OnTopic:    false,
		Confidence: 0.9,
		Guidance:   "Please share the role you are applying for.",
	}}
	i := newTestInterviewer(judge, nil)
	advanceTo(t, i, session.FieldDesiredPositions)

	filled := i.Session().FilledCount()
	outcome, err := i.AdvanceProfile(context.Background(), "I would rather discuss my favorite movies with you")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if outcome.Kind != ProfileRejected {
		t.Fatalf("expected rejection, got %+v", outcome)
	}
	if judge.calls != 1 {
		t.Fatalf("expected one judge call, got %d", judge.calls)
	}
	if !strings.Contains(outcome.Message, "Please share the role") ||
		!strings.Contains(outcome.Message, "desired positions") {
		t.Fatalf("unexpected message: %q", outcome.Message)
	}
	if i.Session().FilledCount() != filled {
		t.Fatal("rejected input mutated the profile")
	}
}

func TestAdvanceProfileJudgeFailureIsForgiving(t *testing.T) {
	judge := &stubJudge{err: errors.New("model unavailable")}
	i := newTestInterviewer(judge, nil)
	advanceTo(t, i, session.FieldDesiredPositions)

	outcome, err := i.AdvanceProfile(context.Background(), "Senior backend engineer working on distributed systems")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if outcome.Kind != ProfileFieldFilled {
		t.Fatalf("judge outage must not block the candidate: %+v", outcome)
	}
}

func TestAdvanceProfileShiftDetection(t *testing.T) {
	judge := &stubJudge{verdict: ai.Verdict{OnTopic: true, Confidence: 0.9}}
	i := newTestInterviewer(judge, nil)

	outcome, err := i.AdvanceProfile(context.Background(), "tell me a joke please?")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if outcome.Kind != ProfileRejected {
		t.Fatalf("expected rejection, got %+v", outcome)
	}
	if !strings.Contains(outcome.Message, "full name") {
		t.Fatalf("message should repeat the pending field prompt: %q", outcome.Message)
	}
	if judge.calls != 0 {
		t.Fatal("rule-based drift detection should run before the judge")
	}
}

func TestAdvanceProfileFallsBackOnGenerationFailure(t *testing.T) {
	source := &stubQuestions{err: errors.New("quota exhausted")}
	i := newTestInterviewer(nil, source)
	advanceTo(t, i, session.FieldTechStack)

	outcome, err := i.AdvanceProfile(context.Background(), profileInputs[session.FieldTechStack])
	if err != nil || outcome.Kind != ProfileFieldFilled {
		t.Fatalf("tech stack rejected: %+v, %v", outcome, err)
	}

	fallback := FallbackQuestions()
	if got := i.Session().QueueLen(); got != len(fallback) {
		t.Fatalf("expected %d fallback questions, got %d", len(fallback), got)
	}

	first, err := i.Session().AdvanceToQA()
	if err != nil {
		t.Fatalf("starting QA: %v", err)
	}
	if first != fallback[0] {
		t.Fatalf("expected first fallback question, got %q", first)
	}
}

func TestQuestionSourceReceivesProfile(t *testing.T) {
	source := &stubQuestions{questions: []string{"Q1", "Q2"}}
	i := newTestInterviewer(nil, source)
	advanceTo(t, i, session.FieldTechStack)

	if _, err := i.AdvanceProfile(context.Background(), "Go, SQL"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if source.calls != 1 {
		t.Fatalf("expected one generation call, got %d", source.calls)
	}
	if source.profile.ExperienceYears != 5 {
		t.Fatalf("unexpected experience: %d", source.profile.ExperienceYears)
	}
	if len(source.profile.TechStack) != 2 || source.profile.TechStack[0] != "Go" {
		t.Fatalf("unexpected tech stack: %v", source.profile.TechStack)
	}
}

func TestAdvanceProfileWrongStage(t *testing.T) {
	i := newTestInterviewer(nil, &stubQuestions{questions: []string{"Q1"}})
	advanceTo(t, i, session.FieldTechStack)
	if _, err := i.AdvanceProfile(context.Background(), profileInputs[session.FieldTechStack]); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := i.Session().AdvanceToQA(); err != nil {
		t.Fatalf("starting QA: %v", err)
	}

	if _, err := i.AdvanceProfile(context.Background(), "anything"); err == nil {
		t.Fatal("expected an error outside the gathering stage")
	}
}
