package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"

	"github.com/talentscout/screener/internal/ai"
	"github.com/talentscout/screener/internal/logger"
)

// Scorer produces a structured evaluation of the full interview transcript.
type Scorer struct {
	generator contentGenerator
	logger    *zap.Logger
	maxLogLen int
}

func NewScorer(generator contentGenerator, log *zap.Logger, maxLogLength int) *Scorer {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}
	model := ""
	if generator != nil {
		model = generator.Model()
	}

	return &Scorer{
		generator: generator,
		logger:    logger.WithCommonFields(log, "gemini", model),
		maxLogLen: maxLogLength,
	}
}

const scorerPromptHeader = `You are an expert technical interviewer. Given the following interview questions and candidate answers, score each answer on a scale of 1-10 for the following parameters: Technical Depth, Clarity, Relevance, and Overall. Also provide a one-sentence feedback for each answer. Return the result as a JSON list, one object per answer, with keys: question, answer, technical_depth, clarity, relevance, overall, feedback.

Questions and Answers:
`

// Score evaluates the answers against their questions. The raw model text is
// returned even when parsing fails so the caller can display it as-is.
func (s *Scorer) Score(ctx context.Context, questions, answers []string) ([]ai.Evaluation, string, error) {
	if s == nil || s.generator == nil {
		return nil, "", fmt.Errorf("scorer is not initialized")
	}
	if len(questions) != len(answers) {
		return nil, "", fmt.Errorf("got %d questions but %d answers", len(questions), len(answers))
	}
	if len(questions) == 0 {
		return nil, "", fmt.Errorf("nothing to score")
	}

	var prompt strings.Builder
	prompt.WriteString(scorerPromptHeader)
	for i := range questions {
		fmt.Fprintf(&prompt, "\nQ%d: %s\nA%d: %s", i+1, questions[i], i+1, answers[i])
	}
	prompt.WriteString("\n\nReturn only the JSON list.")

	s.logger.Debug("scoring request", zap.Int("pairs", len(questions)))

	raw, err := s.generator.GenerateContent(ctx, prompt.String())
	if err != nil {
		return nil, "", err
	}

	s.logger.Debug("scoring response",
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", logger.TruncateForLog(raw, s.maxLogLen)),
	)

	evaluations, err := parseEvaluations(raw)
	if err != nil {
		return nil, raw, err
	}

	return evaluations, raw, nil
}

func parseEvaluations(raw string) ([]ai.Evaluation, error) {
	cleaned := extractJSON(raw)

	var items []map[string]any
	if err := json.Unmarshal([]byte(cleaned), &items); err != nil {
		return nil, fmt.Errorf("parse scoring response: %w", err)
	}

	var evaluations []ai.Evaluation
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		// Models occasionally return scores as strings.
		WeaklyTypedInput: true,
		Result:           &evaluations,
	})
	if err != nil {
		return nil, err
	}

	if err := decoder.Decode(items); err != nil {
		return nil, fmt.Errorf("decode evaluations: %w", err)
	}

	return evaluations, nil
}
