package llm

import (
	"strings"
	"testing"
)

func TestBuildEvalSystemPrompt(t *testing.T) {
	t.Run("text mode asks for a judgement", func(t *testing.T) {
		p := buildEvalSystemPrompt(ModeText)
		if !strings.Contains(p, `"isCorrect"`) {
			t.Error("expected isCorrect field in prompt")
		}
		if strings.Contains(p, "cannotGrade") {
			t.Error("text mode must not mention cannotGrade")
		}
	})

	t.Run("multimodal mode mentions the attached image", func(t *testing.T) {
		p := buildEvalSystemPrompt(ModeMultimodal)
		if !strings.Contains(p, "image is attached") {
			t.Error("expected image reference in prompt")
		}
		if !strings.Contains(p, `"isCorrect"`) {
			t.Error("expected isCorrect field in prompt")
		}
	})

	t.Run("lenient mode forbids a verdict", func(t *testing.T) {
		p := buildEvalSystemPrompt(ModeLenient)
		if !strings.Contains(p, `"cannotGrade": true`) {
			t.Error("expected cannotGrade field in prompt")
		}
		if !strings.Contains(p, "CANNOT see") {
			t.Error("expected hidden-figure instruction in prompt")
		}
		if strings.Contains(p, `"isCorrect"`) {
			t.Error("lenient mode must not request isCorrect")
		}
	})
}

func TestBuildEvalUserPrompt(t *testing.T) {
	p := buildEvalUserPrompt("What is 2+2?", "4")
	if !strings.Contains(p, "QUESTION: What is 2+2?") {
		t.Error("question text missing")
	}
	if !strings.Contains(p, "STUDENT ANSWER: 4") {
		t.Error("answer text missing")
	}
}

func TestBuildHintPrompts(t *testing.T) {
	sys := buildHintSystemPrompt()
	if !strings.Contains(sys, "NEVER reveal the final answer") {
		t.Error("answer-protection instruction missing")
	}
	if !strings.Contains(sys, `{"hint"`) {
		t.Error("hint JSON shape missing")
	}

	t.Run("no prior hints", func(t *testing.T) {
		p := buildHintUserPrompt("Solve for x.", nil)
		if !strings.Contains(p, "No hints have been given yet") {
			t.Error("expected empty-history note")
		}
	})

	t.Run("prior hints are numbered", func(t *testing.T) {
		p := buildHintUserPrompt("Solve for x.", []string{"Isolate x.", "Divide both sides."})
		if !strings.Contains(p, "1. Isolate x.") || !strings.Contains(p, "2. Divide both sides.") {
			t.Errorf("hint history not numbered:\n%s", p)
		}
		if !strings.Contains(p, "do not repeat these") {
			t.Error("repeat-protection instruction missing")
		}
	})
}

func TestBuildExtractionSystemPrompt(t *testing.T) {
	p := buildExtractionSystemPrompt()
	if !strings.Contains(p, "[figure]") {
		t.Error("figure marker instruction missing")
	}
	if !strings.Contains(p, "empty list") {
		t.Error("empty-page instruction missing")
	}
	if !strings.Contains(p, `{"questions"`) {
		t.Error("extraction JSON shape missing")
	}
}
