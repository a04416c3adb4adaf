package classify

import (
	"strings"

	"github.com/talentscout/screener/internal/session"
)

// IntentType is the coarse category of a user input.
type IntentType string

const (
	IntentAnswer   IntentType = "answer"
	IntentQuestion IntentType = "question"
	IntentCommand  IntentType = "command"
	IntentMeta     IntentType = "meta"
)

// Intent is the advisory result of heuristic input classification. It is
// surfaced as telemetry and does not gate the interview flow.
type Intent struct {
	Type       IntentType
	Confidence float64
	Relevant   bool
}

var questionStarts = []string{
	"what", "how", "why", "where", "when", "who", "can you", "could you",
}

var commandIndicators = []string{
	"tell me", "show me", "give me", "i want", "please",
}

var metaIndicators = []string{
	"this interview", "this conversation", "talking", "chat", "ask", "question",
}

var knownTechTerms = []string{
	"javascript", "python", "java", "html", "css", "react", "angular",
	"node", "express", "django", "flask", "ruby", "c++", "c#", "php",
	"typescript", "sql", "nosql", "mongo", "mysql", "postgres", "go", "rust",
	"kubernetes", "docker", "terraform",
}

// AnalyzeIntent estimates whether the input is a direct answer, a question, a
// command or meta-conversation, and whether it looks relevant to the expected
// field. Unknown fields are always considered relevant.
func AnalyzeIntent(input string, expected session.Field) Intent {
	text := strings.ToLower(strings.TrimSpace(input))

	hasQuestion := strings.Contains(text, "?")
	for _, q := range questionStarts {
		if strings.HasPrefix(text, q) {
			hasQuestion = true
			break
		}
	}

	hasCommand := false
	for _, c := range commandIndicators {
		if strings.Contains(text, c) {
			hasCommand = true
			break
		}
	}

	isMeta := false
	for _, m := range metaIndicators {
		if strings.Contains(text, m) {
			isMeta = true
			break
		}
	}

	result := Intent{Type: IntentAnswer, Confidence: 0.8, Relevant: fieldRelevance(text, expected)}

	switch {
	case hasQuestion:
		result.Type = IntentQuestion
		result.Confidence = 0.9
	case hasCommand:
		result.Type = IntentCommand
		result.Confidence = 0.8
	case isMeta:
		result.Type = IntentMeta
		result.Confidence = 0.7
	}

	return result
}

func fieldRelevance(text string, expected session.Field) bool {
	switch expected {
	case session.FieldFullName:
		return len(strings.Fields(text)) <= 3
	case session.FieldEmail:
		return strings.Contains(text, "@") && strings.Contains(text, ".")
	case session.FieldPhone:
		return strings.ContainsAny(text, "0123456789")
	case session.FieldTechStack:
		for _, term := range knownTechTerms {
			if strings.Contains(text, term) {
				return true
			}
		}
		return false
	default:
		return true
	}
}
