package ai

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/talentscout/screener/internal/session"
)

const shortAnswerMaxWords = 3

// DefaultGuidance is the generic refocusing message used when the judge
// cannot produce one.
const DefaultGuidance = "Let's stay focused on the interview questions."

// Keywords that disqualify a short answer from the short-circuit path.
var shortAnswerEscapes = []string{"help", "bye", "quit", "exit"}

// ContextClassifier wraps a Judge with the guarantees the handlers rely on:
// obviously-fine short answers never hit the external judge, and any judge
// failure degrades to a safe on-topic verdict so the interview never stalls.
type ContextClassifier struct {
	judge  Judge
	logger *zap.Logger
}

func NewContextClassifier(judge Judge, logger *zap.Logger) *ContextClassifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ContextClassifier{judge: judge, logger: logger}
}

// Assess returns a verdict on whether the answer addresses the question.
// It never fails; the zero-information outcome is an on-topic verdict at
// confidence 0.5 with generic guidance.
func (c *ContextClassifier) Assess(ctx context.Context, question, answer string, stage session.Stage) Verdict {
	if c == nil {
		return safeDefault()
	}

	if shortAndHarmless(answer) {
		c.logger.Debug("short response, skipping context analysis",
			zap.String("stage", stage.String()),
		)
		return Verdict{OnTopic: true, Confidence: 0.9}
	}

	if c.judge == nil {
		return safeDefault()
	}

	verdict, err := c.judge.Assess(ctx, question, answer, stage)
	if err != nil || verdict == nil {
		c.logger.Warn("context judge unavailable, assuming on-topic",
			zap.String("stage", stage.String()),
			zap.Error(err),
		)
		return safeDefault()
	}

	if verdict.Guidance == "" {
		verdict.Guidance = DefaultGuidance
	}

	return *verdict
}

func safeDefault() Verdict {
	return Verdict{OnTopic: true, Guidance: DefaultGuidance, Confidence: 0.5}
}

func shortAndHarmless(answer string) bool {
	if len(strings.Fields(answer)) > shortAnswerMaxWords {
		return false
	}
	lower := strings.ToLower(answer)
	for _, kw := range shortAnswerEscapes {
		if strings.Contains(lower, kw) {
			return false
		}
	}
	return true
}
