package ai

import (
	"context"

	"github.com/talentscout/screener/internal/session"
)

// Verdict is the structured result of an on-topic assessment.
type Verdict struct {
	OnTopic    bool
	Guidance   string
	Confidence float64
	Raw        string
}

// Judge decides whether a candidate's answer addresses the question asked.
type Judge interface {
	Assess(ctx context.Context, question, answer string, stage session.Stage) (*Verdict, error)
}

// Profile is the slice of candidate information a question source needs.
type Profile struct {
	ExperienceYears int
	DesiredPosition string
	TechStack       []string
}

// QuestionSource produces the initial technical question queue for a profile.
type QuestionSource interface {
	Generate(ctx context.Context, profile Profile) ([]string, error)
}

// Evaluation is the per-answer result of the final scoring pass.
type Evaluation struct {
	Question       string  `json:"question" mapstructure:"question"`
	Answer         string  `json:"answer" mapstructure:"answer"`
	TechnicalDepth float64 `json:"technical_depth" mapstructure:"technical_depth"`
	Clarity        float64 `json:"clarity" mapstructure:"clarity"`
	Relevance      float64 `json:"relevance" mapstructure:"relevance"`
	Overall        float64 `json:"overall" mapstructure:"overall"`
	Feedback       string  `json:"feedback" mapstructure:"feedback"`
}

// Scorer evaluates the full interview transcript. The raw model text is
// returned alongside the parsed evaluations so callers can fall back to
// displaying it when parsing fails.
type Scorer interface {
	Score(ctx context.Context, questions, answers []string) ([]Evaluation, string, error)
}
