package classify

import (
	"strings"

	"github.com/talentscout/screener/internal/session"
)

// Rule-based pre-filter for conversational drift. It is deliberately cheap:
// it runs before any model-backed check and short answers bypass it entirely.

var exitKeywords = []string{
	" quit ", " exit ", " stop ", " end ", " terminate ", " bye ", " goodbye ",
}

var helpKeywords = []string{
	" help ", " confused ", " don't understand ", " what is this ", " what's this ",
}

var irrelevantPatterns = []string{
	" weather ", " joke ", " tell me a joke ", " who are you ", " what can you do ",
	" what's your name ", " how are you ", " what is your ",
}

const (
	exitGuidance = "It seems like you want to end the conversation. " +
		"If you'd like to continue the interview, please answer the current question."
	helpGatheringGuidance = "I'm collecting basic information for your candidate profile. " +
		"Please provide the requested information so we can proceed to the technical questions."
	helpQAGuidance = "This is a technical interview. " +
		"Please answer the question to the best of your abilities."
	helpGenericGuidance = "This is an automated interview process. " +
		"Please answer the questions as they come."
	irrelevantGuidance = "I'm an interview assistant focused on conducting your technical screening. " +
		"Let's stay focused on the current question."
)

// DetectShift reports whether the input is an attempt to steer the
// conversation away from the interview, with a guidance message to show the
// candidate. At most one category fires; exit intent wins over help, help
// over irrelevant chatter.
func DetectShift(input string, stage session.Stage) (bool, string) {
	words := len(strings.Fields(input))

	// Short direct answers without punctuation cues are never drift.
	if words <= 5 && !strings.ContainsAny(input, "?!") {
		return false, ""
	}

	// Pad with spaces so keyword matches are bounded by word boundaries.
	padded := " " + strings.ToLower(input) + " "

	for _, kw := range exitKeywords {
		// Only treat the input as an exit request when it is essentially just
		// the exit phrase; "end my career in frontend" must pass through.
		if strings.Contains(padded, kw) && words <= 3 {
			return true, exitGuidance
		}
	}

	for _, kw := range helpKeywords {
		if strings.Contains(padded, kw) {
			switch stage {
			case session.StageGatheringInfo:
				return true, helpGatheringGuidance
			case session.StageQA:
				return true, helpQAGuidance
			default:
				return true, helpGenericGuidance
			}
		}
	}

	for _, pattern := range irrelevantPatterns {
		if strings.Contains(padded, pattern) && words <= len(strings.Fields(pattern))+3 {
			return true, irrelevantGuidance
		}
	}

	return false, ""
}
