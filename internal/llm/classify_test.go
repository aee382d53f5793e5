package llm

import (
	"testing"

	"github.com/tutorstack/tutor-backend/internal/model"
)

func TestHasVisualReference(t *testing.T) {
	tests := []struct {
		name string
		text string
		want bool
	}{
		{"plain question", "What is 2 + 2?", false},
		{"figure keyword", "Using Figure 3, find the slope.", true},
		{"chart keyword", "What does the chart show?", true},
		{"graph keyword", "Read the value from the graph.", true},
		{"diagram keyword", "Label the diagram below.", true},
		{"table keyword", "Complete the table of values.", true},
		{"uppercase keyword", "SEE THE DIAGRAM", true},
		{"explicit marker", "Find x. [figure]", true},
		{"keyword inside word", "A vegetable garden is 3m wide.", true}, // "table" substring; accepted heuristic noise
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HasVisualReference(tt.text); got != tt.want {
				t.Errorf("HasVisualReference(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestSelectGradingMode(t *testing.T) {
	tests := []struct {
		name string
		text string
		kind model.DocumentKind
		want GradingMode
	}{
		{"no reference, image doc", "What is 2 + 2?", model.DocumentKindImage, ModeText},
		{"no reference, paginated doc", "What is 2 + 2?", model.DocumentKindPaginated, ModeText},
		{"reference, image doc", "Use the graph to find x.", model.DocumentKindImage, ModeMultimodal},
		{"reference, paginated doc", "Use the graph to find x.", model.DocumentKindPaginated, ModeLenient},
		{"reference, no document", "Use the graph to find x.", model.DocumentKindNone, ModeText},
		{"marker, image doc", "Find the area. [figure]", model.DocumentKindImage, ModeMultimodal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SelectGradingMode(tt.text, tt.kind); got != tt.want {
				t.Errorf("SelectGradingMode(%q, %s) = %s, want %s", tt.text, tt.kind, got, tt.want)
			}
		})
	}
}

func TestAttachImageForHint(t *testing.T) {
	tests := []struct {
		name string
		text string
		kind model.DocumentKind
		want bool
	}{
		{"reference with image", "Read the chart.", model.DocumentKindImage, true},
		{"reference with paginated", "Read the chart.", model.DocumentKindPaginated, false},
		{"no reference with image", "Solve for x.", model.DocumentKindImage, false},
		{"no reference no document", "Solve for x.", model.DocumentKindNone, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AttachImageForHint(tt.text, tt.kind); got != tt.want {
				t.Errorf("AttachImageForHint(%q, %s) = %v, want %v", tt.text, tt.kind, got, tt.want)
			}
		})
	}
}
