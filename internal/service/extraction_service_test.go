package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/tutorstack/tutor-backend/internal/llm"
)

func TestMapQuestions(t *testing.T) {
	docID := uuid.New()

	t.Run("order follows response position, not labels", func(t *testing.T) {
		extracted := []llm.ExtractedQuestion{
			{Number: "2", Text: "Second on the page"},
			{Number: "1b", Text: "Part b"},
			{Number: "1a", Text: "Part a"},
		}
		got := MapQuestions(docID, extracted)
		if len(got) != 3 {
			t.Fatalf("len = %d, want 3", len(got))
		}
		for i, q := range got {
			if q.OrderNum != i+1 {
				t.Errorf("questions[%d].OrderNum = %d, want %d", i, q.OrderNum, i+1)
			}
			if q.DocumentID != docID {
				t.Errorf("questions[%d].DocumentID = %s, want %s", i, q.DocumentID, docID)
			}
		}
		if got[0].Label != "2" || got[1].Label != "1b" || got[2].Label != "1a" {
			t.Errorf("labels reordered: %q %q %q", got[0].Label, got[1].Label, got[2].Label)
		}
	})

	t.Run("empty extraction yields empty slice", func(t *testing.T) {
		got := MapQuestions(docID, nil)
		if got == nil || len(got) != 0 {
			t.Errorf("got %v, want empty non-nil slice", got)
		}
	})
}
