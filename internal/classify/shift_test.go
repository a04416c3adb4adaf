package classify

import (
	"strings"
	"testing"

	"github.com/talentscout/screener/internal/session"
)

func TestShortDirectAnswersBypassDetection(t *testing.T) {
	inputs := []string{
		"John Smith",
		"5",
		"Python, Go, SQL",
		"I want to stop", // mentions an exit word but reads like an answer
	}

	for _, input := range inputs {
		if shifted, _ := DetectShift(input, session.StageGatheringInfo); shifted {
			t.Fatalf("expected %q to bypass shift detection", input)
		}
	}
}

func TestExitIntentRequiresShortInput(t *testing.T) {
	shifted, guidance := DetectShift("quit !", session.StageQA)
	if !shifted {
		t.Fatal("expected exit intent to fire")
	}
	if !strings.Contains(guidance, "end the conversation") {
		t.Fatalf("unexpected guidance: %q", guidance)
	}

	// Long sentences that merely contain an exit word must pass through.
	long := "I want to end my career in frontend development eventually!"
	if shifted, _ := DetectShift(long, session.StageQA); shifted {
		t.Fatalf("expected %q not to be treated as exit intent", long)
	}
}

func TestHelpGuidanceDependsOnStage(t *testing.T) {
	input := "I don't understand what you want?"

	shifted, guidance := DetectShift(input, session.StageGatheringInfo)
	if !shifted || !strings.Contains(guidance, "candidate profile") {
		t.Fatalf("unexpected gathering guidance: %v %q", shifted, guidance)
	}

	shifted, guidance = DetectShift(input, session.StageQA)
	if !shifted || !strings.Contains(guidance, "technical interview") {
		t.Fatalf("unexpected QA guidance: %v %q", shifted, guidance)
	}

	shifted, guidance = DetectShift(input, session.StageConcluded)
	if !shifted || !strings.Contains(guidance, "automated interview") {
		t.Fatalf("unexpected generic guidance: %v %q", shifted, guidance)
	}
}

func TestIrrelevantTopicBoundedByPhraseLength(t *testing.T) {
	shifted, guidance := DetectShift("tell me a joke please?", session.StageQA)
	if !shifted {
		t.Fatal("expected irrelevant topic to fire")
	}
	if !strings.Contains(guidance, "technical screening") {
		t.Fatalf("unexpected guidance: %q", guidance)
	}

	// An answer that mentions a keyword in passing is not drift.
	answer := "We monitor weather data pipelines built with Kafka and Go services!"
	if shifted, _ := DetectShift(answer, session.StageQA); shifted {
		t.Fatalf("expected %q not to be flagged", answer)
	}
}

func TestExitBeatsHelpAndIrrelevant(t *testing.T) {
	// Contains both an exit word and a help word; exit has priority.
	shifted, guidance := DetectShift("help quit ?", session.StageQA)
	if !shifted {
		t.Fatal("expected shift")
	}
	if !strings.Contains(guidance, "end the conversation") {
		t.Fatalf("expected exit guidance, got %q", guidance)
	}
}
