package llm

import (
	"encoding/json"
	"strings"
)

// FallbackFeedback is stored when the grading service returns content that
// cannot be parsed as a judgement.
const FallbackFeedback = "Unable to evaluate answer."

// GradeResult is the tri-state outcome of one evaluation. Ungradable is a
// first-class result, distinct from both correct and incorrect; IsCorrect is
// nil exactly when Ungradable is true.
type GradeResult struct {
	IsCorrect  *bool
	Ungradable bool
	Feedback   string
}

// verdictPayload is the wire shape of a grading response.
type verdictPayload struct {
	IsCorrect   *bool  `json:"isCorrect"`
	CannotGrade bool   `json:"cannotGrade"`
	Feedback    string `json:"feedback"`
}

// hintPayload is the wire shape of a hint response.
type hintPayload struct {
	Hint string `json:"hint"`
}

// ExtractedQuestion is one labeled question fragment from the extraction
// service. Number is a free-form display label ("1", "2ii", "(iv)").
type ExtractedQuestion struct {
	Number string `json:"number"`
	Text   string `json:"text"`
}

// extractionPayload is the wire shape of an extraction response.
type extractionPayload struct {
	Questions []ExtractedQuestion `json:"questions"`
}

// StripCodeFences removes a markdown code fence wrapper (```json ... ```)
// if present and trims surrounding whitespace.
func StripCodeFences(content string) string {
	content = strings.TrimSpace(content)
	if !strings.HasPrefix(content, "```") {
		return content
	}

	// Skip the opening fence and its optional language tag line.
	start := 3
	if nl := strings.Index(content[start:], "\n"); nl != -1 {
		start += nl + 1
	}

	if end := strings.Index(content[start:], "```"); end != -1 {
		content = content[start : start+end]
	} else {
		content = content[start:]
	}
	return strings.TrimSpace(content)
}

// parseVerdict maps raw grading output to the tri-state result. Content that
// fails structural parsing resolves to the ungradable fallback, never to an
// error: a broken response must not be confused with "incorrect".
func parseVerdict(raw string) GradeResult {
	var v verdictPayload
	if err := json.Unmarshal([]byte(StripCodeFences(raw)), &v); err != nil {
		return GradeResult{Ungradable: true, Feedback: FallbackFeedback}
	}
	if v.CannotGrade {
		if v.Feedback == "" {
			v.Feedback = FallbackFeedback
		}
		return GradeResult{Ungradable: true, Feedback: v.Feedback}
	}
	if v.IsCorrect == nil {
		// Valid JSON but not a judgement shape.
		return GradeResult{Ungradable: true, Feedback: FallbackFeedback}
	}
	return GradeResult{IsCorrect: v.IsCorrect, Feedback: v.Feedback}
}

// parseHint returns the hint string, or "" when the content is not a
// well-formed hint payload.
func parseHint(raw string) string {
	var h hintPayload
	if err := json.Unmarshal([]byte(StripCodeFences(raw)), &h); err != nil {
		return ""
	}
	return strings.TrimSpace(h.Hint)
}

// parseExtraction returns the labeled question list in response order.
// Malformed content yields an empty list: extraction failures degrade to
// "zero questions extracted", not to a processing error.
func parseExtraction(raw string) []ExtractedQuestion {
	var p extractionPayload
	if err := json.Unmarshal([]byte(StripCodeFences(raw)), &p); err != nil {
		return nil
	}
	return p.Questions
}
