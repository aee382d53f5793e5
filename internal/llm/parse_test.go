package llm

import (
	"testing"
)

func TestStripCodeFences(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"no fence", `{"a":1}`, `{"a":1}`},
		{"json fence", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"bare fence", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"unclosed fence", "```json\n{\"a\":1}", `{"a":1}`},
		{"surrounding whitespace", "  \n```json\n{\"a\":1}\n```\n  ", `{"a":1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripCodeFences(tt.input); got != tt.want {
				t.Errorf("StripCodeFences(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseVerdict(t *testing.T) {
	t.Run("correct", func(t *testing.T) {
		got := parseVerdict(`{"isCorrect": true, "feedback": "Well done."}`)
		if got.Ungradable {
			t.Fatal("unexpected ungradable")
		}
		if got.IsCorrect == nil || !*got.IsCorrect {
			t.Errorf("IsCorrect = %v, want true", got.IsCorrect)
		}
		if got.Feedback != "Well done." {
			t.Errorf("Feedback = %q", got.Feedback)
		}
	})

	t.Run("incorrect", func(t *testing.T) {
		got := parseVerdict(`{"isCorrect": false, "feedback": "Check your signs."}`)
		if got.IsCorrect == nil || *got.IsCorrect {
			t.Errorf("IsCorrect = %v, want false", got.IsCorrect)
		}
	})

	t.Run("fenced response", func(t *testing.T) {
		got := parseVerdict("```json\n{\"isCorrect\": true, \"feedback\": \"ok\"}\n```")
		if got.IsCorrect == nil || !*got.IsCorrect {
			t.Errorf("IsCorrect = %v, want true", got.IsCorrect)
		}
	})

	t.Run("cannot grade", func(t *testing.T) {
		got := parseVerdict(`{"cannotGrade": true, "feedback": "Your method looks sound."}`)
		if !got.Ungradable {
			t.Fatal("expected ungradable")
		}
		if got.IsCorrect != nil {
			t.Errorf("IsCorrect = %v, want nil", got.IsCorrect)
		}
		if got.Feedback != "Your method looks sound." {
			t.Errorf("Feedback = %q", got.Feedback)
		}
	})

	t.Run("cannot grade without feedback", func(t *testing.T) {
		got := parseVerdict(`{"cannotGrade": true}`)
		if !got.Ungradable || got.Feedback != FallbackFeedback {
			t.Errorf("got %+v, want ungradable with fallback feedback", got)
		}
	})

	t.Run("malformed JSON falls back", func(t *testing.T) {
		got := parseVerdict(`I think the answer is probably right!`)
		if !got.Ungradable {
			t.Fatal("expected ungradable")
		}
		if got.IsCorrect != nil {
			t.Errorf("IsCorrect = %v, want nil", got.IsCorrect)
		}
		if got.Feedback != FallbackFeedback {
			t.Errorf("Feedback = %q, want %q", got.Feedback, FallbackFeedback)
		}
	})

	t.Run("valid JSON without judgement falls back", func(t *testing.T) {
		got := parseVerdict(`{"feedback": "nice try"}`)
		if !got.Ungradable || got.Feedback != FallbackFeedback {
			t.Errorf("got %+v, want ungradable with fallback feedback", got)
		}
	})
}

func TestParseHint(t *testing.T) {
	if got := parseHint(`{"hint": "Think about the base and height."}`); got != "Think about the base and height." {
		t.Errorf("parseHint = %q", got)
	}
	if got := parseHint("```json\n{\"hint\": \"x\"}\n```"); got != "x" {
		t.Errorf("parseHint fenced = %q", got)
	}
	if got := parseHint(`not json`); got != "" {
		t.Errorf("parseHint malformed = %q, want empty", got)
	}
	if got := parseHint(`{"hint": "  "}`); got != "" {
		t.Errorf("parseHint blank = %q, want empty", got)
	}
}

func TestParseExtraction(t *testing.T) {
	t.Run("preserves response order", func(t *testing.T) {
		raw := `{"questions": [
			{"number": "2", "text": "Second on the page"},
			{"number": "1b", "text": "Part b"},
			{"number": "1a", "text": "Part a"}
		]}`
		got := parseExtraction(raw)
		if len(got) != 3 {
			t.Fatalf("len = %d, want 3", len(got))
		}
		wantNumbers := []string{"2", "1b", "1a"}
		for i, q := range got {
			if q.Number != wantNumbers[i] {
				t.Errorf("questions[%d].Number = %q, want %q", i, q.Number, wantNumbers[i])
			}
		}
	})

	t.Run("empty list", func(t *testing.T) {
		got := parseExtraction(`{"questions": []}`)
		if len(got) != 0 {
			t.Errorf("len = %d, want 0", len(got))
		}
	})

	t.Run("malformed yields nil", func(t *testing.T) {
		if got := parseExtraction(`oops`); got != nil {
			t.Errorf("got %v, want nil", got)
		}
	})
}
