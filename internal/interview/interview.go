// Package interview drives the screening conversation: it collects the
// candidate profile one field at a time, then runs the technical Q&A until
// the question queue is exhausted.
package interview

import (
	"context"

	"go.uber.org/zap"

	"github.com/talentscout/screener/internal/ai"
	"github.com/talentscout/screener/internal/session"
)

const (
	// Off-topic confidence thresholds. Profile answers are cheap to reject,
	// so that stage uses the lower bar; technical answers are naturally more
	// free-form and get more slack.
	profileOffTopicThreshold = 0.6
	qaOffTopicThreshold      = 0.7
)

// fallbackQuestions is the fixed question set used when generation fails.
// Treated as read-only; use FallbackQuestions for a copy.
var fallbackQuestions = []string{
	"Tell me about your experience with your primary programming language.",
	"Describe a challenging technical problem you've solved recently.",
	"How do you approach debugging a complex issue?",
	"What's your experience with version control systems like Git?",
	"How do you stay updated with the latest developments in technology?",
}

// FallbackQuestions returns a copy of the default technical question set.
func FallbackQuestions() []string {
	return append([]string(nil), fallbackQuestions...)
}

// Deps aggregates the collaborators the interviewer needs. Context may wrap a
// nil judge and Questions may be nil; both degrade to safe defaults.
type Deps struct {
	Context   *ai.ContextClassifier
	Questions ai.QuestionSource
	Logger    *zap.Logger
}

// Interviewer owns one candidate's session and applies the stage handlers
// to raw chat input. It is not safe for concurrent use.
type Interviewer struct {
	session   *session.Session
	context   *ai.ContextClassifier
	questions ai.QuestionSource
	logger    *zap.Logger
}

func New(deps Deps) *Interviewer {
	log := deps.Logger
	if log == nil {
		log = zap.NewNop()
	}
	ctxClassifier := deps.Context
	if ctxClassifier == nil {
		ctxClassifier = ai.NewContextClassifier(nil, log)
	}

	return &Interviewer{
		session:   session.New(),
		context:   ctxClassifier,
		questions: deps.Questions,
		logger:    log,
	}
}

// Session exposes the underlying session for the shell (stage dispatch,
// prompts, conclusion flow).
func (i *Interviewer) Session() *session.Session {
	return i.session
}

// Reset discards all collected state and starts over with a fresh session.
func (i *Interviewer) Reset() {
	i.session.Reset()
	i.logger.Info("session reset")
}

// loadQuestionQueue fills the session's question queue from the question
// source, substituting the fallback set when generation fails or returns
// nothing usable. The interview never stalls on generator failure.
func (i *Interviewer) loadQuestionQueue(ctx context.Context) {
	profile := i.session.Profile()

	questions := FallbackQuestions()
	if i.questions != nil {
		generated, err := i.questions.Generate(ctx, ai.Profile{
			ExperienceYears: profile.ExperienceYears,
			DesiredPosition: profile.DesiredPositions,
			TechStack:       profile.TechStack,
		})
		if err != nil {
			i.logger.Warn("question generation failed, using fallback questions", zap.Error(err))
		} else if len(generated) > 0 {
			questions = generated
		}
	} else {
		i.logger.Debug("no question source configured, using fallback questions")
	}

	i.session.LoadQuestions(questions)
	i.logger.Info("question queue loaded", zap.Int("count", len(questions)))
}
