package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/talentscout/screener/internal/ai"
	"github.com/talentscout/screener/internal/logger"
	"github.com/talentscout/screener/internal/session"
)

type contentGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
	Model() string
}

const defaultMaxLogLength = 200

// Judge asks Gemini whether a candidate's answer stays on topic.
type Judge struct {
	generator contentGenerator
	logger    *zap.Logger
	maxLogLen int
}

func NewJudge(generator contentGenerator, log *zap.Logger, maxLogLength int) *Judge {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}
	model := ""
	if generator != nil {
		model = generator.Model()
	}

	return &Judge{
		generator: generator,
		logger:    logger.WithCommonFields(log, "gemini", model),
		maxLogLen: maxLogLength,
	}
}

const judgePromptTemplate = `You are an AI assistant analyzing responses during a technical interview.
Your goal is to determine if the candidate's response is on-topic or if they are trying to change the subject.

INTERVIEW STAGE: %s
QUESTION/PROMPT: "%s"
USER RESPONSE: "%s"

Technical Interview Context:
- The interview is focused on assessing technical skills
- The candidate should be answering questions about their technical knowledge and experience
- Attempts to change topics, evade questions, or discuss unrelated matters are off-topic
- Phrases like "let's talk about something else" indicate off-topic responses

BE STRICT: This is an interview context where candidates should stay focused on answering the question asked.

VERY IMPORTANT:
1. Respond ONLY with JSON format
2. Don't include any explanations outside the JSON structure
3. If the user is clearly trying to change the subject, mark as off-topic with high confidence

Analyze and return a JSON object with:
{
  "on_topic": boolean,
  "guidance": "A helpful message to guide the user back on topic if they're off-topic",
  "confidence": float between 0.0-1.0
}`

// Assess sends the question/answer pair to Gemini and parses the structured
// verdict. Malformed model output is an error; the caller supplies the safe
// default.
func (j *Judge) Assess(ctx context.Context, question, answer string, stage session.Stage) (*ai.Verdict, error) {
	if j == nil || j.generator == nil {
		return nil, fmt.Errorf("judge is not initialized")
	}

	prompt := fmt.Sprintf(judgePromptTemplate, stage, question, answer)

	j.logger.Debug("context judge request",
		zap.String("stage", stage.String()),
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("answer_preview", logger.TruncateForLog(answer, j.maxLogLen)),
	)

	raw, err := j.generator.GenerateContent(ctx, prompt)
	if err != nil {
		return nil, err
	}

	j.logger.Debug("context judge response",
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", logger.TruncateForLog(raw, j.maxLogLen)),
	)

	verdict, err := parseVerdict(raw)
	if err != nil {
		return nil, err
	}

	verdict.Raw = raw
	return verdict, nil
}

func parseVerdict(raw string) (*ai.Verdict, error) {
	cleaned := extractJSON(raw)

	var data map[string]any
	if err := json.Unmarshal([]byte(cleaned), &data); err != nil {
		return nil, fmt.Errorf("parse judge response: %w", err)
	}

	confidence := coerceFloat(data["confidence"])
	if math.IsNaN(confidence) {
		confidence = 0
	}

	return &ai.Verdict{
		OnTopic:    coerceBool(data["on_topic"]),
		Guidance:   coerceString(data["guidance"]),
		Confidence: confidence,
	}, nil
}
