package llm

import (
	"strings"

	"github.com/tutorstack/tutor-backend/internal/model"
)

// GradingMode is the request shape chosen for one question/answer pair.
type GradingMode string

const (
	// ModeText grades from question and answer text alone.
	ModeText GradingMode = "text"
	// ModeMultimodal attaches the source image so the model can read the
	// figure the question refers to.
	ModeMultimodal GradingMode = "multimodal"
	// ModeLenient is used when the question references a figure the model
	// cannot see (paginated source). The model is told to comment on the
	// method without asserting correctness.
	ModeLenient GradingMode = "lenient"
)

// visualKeywords are the signals that a question refers to a visual element.
// This is a heuristic; false positives and negatives are accepted.
var visualKeywords = []string{"figure", "chart", "graph", "diagram", "table"}

// figureMarker is the explicit marker the extraction step embeds in question
// text when the source shows an accompanying figure.
const figureMarker = "[figure]"

// HasVisualReference reports whether the question text appears to refer to
// a figure, chart, graph, diagram, or table.
func HasVisualReference(questionText string) bool {
	lower := strings.ToLower(questionText)
	if strings.Contains(lower, figureMarker) {
		return true
	}
	for _, kw := range visualKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// SelectGradingMode resolves the three-way branch for an evaluation:
//
//	no visual reference            → ModeText, regardless of document kind
//	visual reference + image doc   → ModeMultimodal
//	visual reference + paginated   → ModeLenient
//	visual reference + no document → ModeText (nothing to attach)
func SelectGradingMode(questionText string, kind model.DocumentKind) GradingMode {
	if !HasVisualReference(questionText) {
		return ModeText
	}
	switch kind {
	case model.DocumentKindImage:
		return ModeMultimodal
	case model.DocumentKindPaginated:
		return ModeLenient
	default:
		return ModeText
	}
}

// AttachImageForHint reports whether a hint request should carry the source
// image. Hints reuse the evaluation classifier but never have a lenient
// branch; a paginated source simply means text-only.
func AttachImageForHint(questionText string, kind model.DocumentKind) bool {
	return HasVisualReference(questionText) && kind == model.DocumentKindImage
}
