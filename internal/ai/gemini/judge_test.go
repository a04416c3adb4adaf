package gemini

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/talentscout/screener/internal/session"
)

type stubGenerator struct {
	response   string
	err        error
	lastPrompt string
}

func (s *stubGenerator) GenerateContent(_ context.Context, prompt string) (string, error) {
	s.lastPrompt = prompt
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

func (s *stubGenerator) Model() string {
	return "stub-model"
}

func TestJudgeAssess(t *testing.T) {
	stub := &stubGenerator{response: `{"on_topic": false, "guidance": "Please answer the question.", "confidence": 0.85}`}
	judge := NewJudge(stub, zap.NewNop(), 0)

	verdict, err := judge.Assess(context.Background(), "Explain goroutines.", "let's order pizza instead", session.StageQA)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if verdict.OnTopic {
		t.Fatal("expected off-topic verdict")
	}
	if verdict.Confidence != 0.85 {
		t.Fatalf("expected confidence 0.85, got %v", verdict.Confidence)
	}
	if verdict.Guidance != "Please answer the question." {
		t.Fatalf("unexpected guidance: %q", verdict.Guidance)
	}
	if verdict.Raw == "" {
		t.Fatal("expected raw response to be preserved")
	}

	if !strings.Contains(stub.lastPrompt, "INTERVIEW STAGE: QA") {
		t.Fatalf("expected stage in prompt, got: %s", stub.lastPrompt)
	}
	if !strings.Contains(stub.lastPrompt, `QUESTION/PROMPT: "Explain goroutines."`) {
		t.Fatalf("expected question in prompt, got: %s", stub.lastPrompt)
	}
}

func TestJudgeHandlesCodeBlock(t *testing.T) {
	stub := &stubGenerator{response: "```json\n{\"on_topic\": \"true\", \"guidance\": \"\", \"confidence\": \"0.9\"}\n```"}
	judge := NewJudge(stub, zap.NewNop(), 0)

	verdict, err := judge.Assess(context.Background(), "q", "a", session.StageGatheringInfo)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !verdict.OnTopic {
		t.Fatal("expected on-topic after string coercion")
	}
	if verdict.Confidence != 0.9 {
		t.Fatalf("expected confidence 0.9, got %v", verdict.Confidence)
	}
}

func TestJudgeMalformedResponseIsAnError(t *testing.T) {
	stub := &stubGenerator{response: "I think the answer is fine."}
	judge := NewJudge(stub, zap.NewNop(), 0)

	if _, err := judge.Assess(context.Background(), "q", "a", session.StageQA); err == nil {
		t.Fatal("expected error for non-JSON response")
	}
}

func TestJudgePropagatesGeneratorError(t *testing.T) {
	stub := &stubGenerator{err: errors.New("quota exhausted")}
	judge := NewJudge(stub, zap.NewNop(), 0)

	if _, err := judge.Assess(context.Background(), "q", "a", session.StageQA); err == nil {
		t.Fatal("expected generator error to propagate")
	}
}
