package interview

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/talentscout/screener/internal/classify"
	"github.com/talentscout/screener/internal/session"
)

// ProfileOutcomeKind discriminates the two results of a profile step.
type ProfileOutcomeKind int

const (
	// ProfileFieldFilled means the input was accepted and one field stored.
	ProfileFieldFilled ProfileOutcomeKind = iota
	// ProfileRejected means the input was off-topic or malformed; Message
	// holds the text to show the candidate and no state was mutated.
	ProfileRejected
)

// ProfileOutcome is the discriminated result of a profile-collection step.
type ProfileOutcome struct {
	Kind    ProfileOutcomeKind
	Field   session.Field
	Message string
}

// AdvanceProfile handles one candidate input during profile collection. The
// returned error indicates misuse (wrong stage, complete profile), never a
// bad answer; candidate-facing problems come back as ProfileRejected.
func (i *Interviewer) AdvanceProfile(ctx context.Context, input string) (ProfileOutcome, error) {
	if i.session.Stage() != session.StageGatheringInfo {
		return ProfileOutcome{}, fmt.Errorf("profile handler called in stage %s", i.session.Stage())
	}

	field, pending := i.session.CurrentField()
	if !pending {
		return ProfileOutcome{}, fmt.Errorf("profile is already complete")
	}

	intent := classify.AnalyzeIntent(input, field)
	i.logger.Debug("profile input",
		zap.String("field", string(field)),
		zap.String("intent", string(intent.Type)),
		zap.Float64("intent_confidence", intent.Confidence),
		zap.Bool("intent_relevant", intent.Relevant),
	)

	if shifted, guidance := classify.DetectShift(input, session.StageGatheringInfo); shifted {
		return ProfileOutcome{
			Kind:    ProfileRejected,
			Message: repeatFieldPrompt(guidance, field),
		}, nil
	}

	// Fields with cheap structural validators double as relevance checks and
	// skip the model-backed judge.
	if !bypassContextCheck(field, input) {
		prompt := fmt.Sprintf("Please provide your %s", field.Label())
		verdict := i.context.Assess(ctx, prompt, input, session.StageGatheringInfo)
		if !verdict.OnTopic && verdict.Confidence > profileOffTopicThreshold {
			i.logger.Info("off-topic profile answer",
				zap.String("field", string(field)),
				zap.Float64("confidence", verdict.Confidence),
			)
			return ProfileOutcome{
				Kind:    ProfileRejected,
				Message: repeatFieldPrompt(verdict.Guidance, field),
			}, nil
		}
	}

	if err := storeField(i.session, field, input); err != nil {
		var vErr *ValidationError
		if errors.As(err, &vErr) {
			return ProfileOutcome{Kind: ProfileRejected, Message: vErr.Message}, nil
		}
		return ProfileOutcome{}, err
	}

	i.logger.Info("profile field collected",
		zap.String("field", string(field)),
		zap.Int("filled", i.session.FilledCount()),
	)

	// Storing the tech stack triggers question generation synchronously; the
	// stage transition itself stays with the caller.
	if field == session.FieldTechStack {
		i.loadQuestionQueue(ctx)
	}

	return ProfileOutcome{Kind: ProfileFieldFilled, Field: field}, nil
}

func bypassContextCheck(field session.Field, input string) bool {
	trimmed := strings.TrimSpace(input)
	switch field {
	case session.FieldFullName:
		words := len(strings.Fields(trimmed))
		return words >= 1 && words <= 5
	case session.FieldEmail:
		return strings.Contains(trimmed, "@") && strings.Contains(trimmed, ".")
	case session.FieldPhone:
		return strings.ContainsAny(trimmed, "0123456789") && len(trimmed) <= maxPhoneLength
	default:
		return false
	}
}

func repeatFieldPrompt(guidance string, field session.Field) string {
	guidance = strings.TrimSpace(guidance)
	if guidance == "" {
		guidance = "Let's stay focused on the interview."
	}
	return fmt.Sprintf("%s\n\nPlease provide your %s.", guidance, field.Label())
}
