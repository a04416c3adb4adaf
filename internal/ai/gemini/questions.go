package gemini

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/talentscout/screener/internal/ai"
	"github.com/talentscout/screener/internal/logger"
)

// A generation yielding fewer usable lines than this is treated as a failure
// so the caller can substitute the fallback set.
const minUsableQuestions = 2

// QuestionSource generates the technical question queue from a candidate
// profile via Gemini.
type QuestionSource struct {
	generator contentGenerator
	logger    *zap.Logger
	maxLogLen int
}

func NewQuestionSource(generator contentGenerator, log *zap.Logger, maxLogLength int) *QuestionSource {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}
	model := ""
	if generator != nil {
		model = generator.Model()
	}

	return &QuestionSource{
		generator: generator,
		logger:    logger.WithCommonFields(log, "gemini", model),
		maxLogLen: maxLogLength,
	}
}

// Generate asks Gemini for five questions tailored to the profile, one per
// line. An error is returned when the call fails or too few usable lines come
// back.
func (s *QuestionSource) Generate(ctx context.Context, profile ai.Profile) ([]string, error) {
	if s == nil || s.generator == nil {
		return nil, fmt.Errorf("question source is not initialized")
	}

	stack := strings.Join(profile.TechStack, ", ")
	if stack == "" {
		stack = "general software engineering"
	}

	prompt := fmt.Sprintf(
		"Generate FIVE short, conversational technical interview questions "+
			"for a candidate with %d years experience in %s. "+
			"Output only the questions, one per line, no numbering or commentary.",
		profile.ExperienceYears, stack,
	)

	s.logger.Debug("question generation request",
		zap.Int("experience_years", profile.ExperienceYears),
		zap.String("tech_stack", stack),
	)

	raw, err := s.generator.GenerateContent(ctx, prompt)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("question generation response",
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", logger.TruncateForLog(raw, s.maxLogLen)),
	)

	questions := splitQuestions(raw)
	if len(questions) < minUsableQuestions {
		return nil, fmt.Errorf("expected at least %d questions, got %d", minUsableQuestions, len(questions))
	}

	return questions, nil
}

func splitQuestions(raw string) []string {
	var questions []string
	for _, line := range strings.Split(raw, "\n") {
		line = cleanQuestionLine(line)
		if line == "" {
			continue
		}
		questions = append(questions, line)
	}
	return questions
}

// cleanQuestionLine strips the numbering and bullet artifacts models add
// despite being told not to.
func cleanQuestionLine(line string) string {
	line = strings.TrimSpace(line)
	line = strings.TrimLeft(line, "-*• ")
	trimmed := strings.TrimLeft(line, "0123456789")
	if trimmed != line {
		trimmed = strings.TrimLeft(trimmed, ".) ")
		line = trimmed
	}
	return strings.TrimSpace(line)
}
