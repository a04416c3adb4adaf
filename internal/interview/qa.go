package interview

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/talentscout/screener/internal/classify"
	"github.com/talentscout/screener/internal/session"
)

const minAnswerWords = 3

// Questions containing these hints legitimately take one-word answers.
var yesNoHints = []string{"yes or no", "have you", "do you", "did you"}

const (
	answerAck      = "Thanks for your answer!"
	interviewDone  = "Thank you for completing the interview!"
	elaborationAsk = "Could you please elaborate on your answer? " +
		"Technical questions typically require more detailed responses."
)

// QAOutcome is the result of one technical-question step. When the answer was
// rejected, NextQuestion repeats the current question unchanged. Concluded is
// set exactly once, on the step that drains the queue.
type QAOutcome struct {
	Followup     string
	NextQuestion string
	Concluded    bool
}

// AdvanceQA handles the candidate's answer to the current technical question.
func (i *Interviewer) AdvanceQA(ctx context.Context, answer string) (QAOutcome, error) {
	if i.session.Stage() != session.StageQA {
		return QAOutcome{}, fmt.Errorf("qa handler called in stage %s", i.session.Stage())
	}

	current := i.session.CurrentQuestion()
	if current == "" {
		return QAOutcome{}, fmt.Errorf("no question is pending")
	}

	if shifted, guidance := classify.DetectShift(answer, session.StageQA); shifted {
		return QAOutcome{Followup: guidance, NextQuestion: current}, nil
	}

	verdict := i.context.Assess(ctx, current, answer, session.StageQA)
	if !verdict.OnTopic && verdict.Confidence > qaOffTopicThreshold {
		i.logger.Info("off-topic answer",
			zap.Float64("confidence", verdict.Confidence),
		)
		return QAOutcome{Followup: verdict.Guidance, NextQuestion: current}, nil
	}

	if len(strings.Fields(answer)) < minAnswerWords && !looksLikeYesNoQuestion(current) {
		return QAOutcome{Followup: elaborationAsk, NextQuestion: current}, nil
	}

	if err := i.session.RecordAnswer(answer); err != nil {
		return QAOutcome{}, err
	}

	if next, ok := i.session.PopQuestion(); ok {
		i.logger.Info("next question",
			zap.Int("remaining", i.session.QueueLen()),
		)
		return QAOutcome{Followup: answerAck, NextQuestion: next}, nil
	}

	if err := i.session.Conclude(); err != nil {
		return QAOutcome{}, err
	}

	i.logger.Info("interview concluded",
		zap.Int("answers", len(i.session.Pairs())),
	)

	return QAOutcome{Followup: interviewDone, Concluded: true}, nil
}

func looksLikeYesNoQuestion(question string) bool {
	lower := strings.ToLower(question)
	for _, hint := range yesNoHints {
		if strings.Contains(lower, hint) {
			return true
		}
	}
	return false
}
