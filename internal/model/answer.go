package model

import (
	"time"

	"github.com/google/uuid"
)

// Answer is one submitted attempt at a question. Re-submissions are not
// deduplicated; each submission is its own row.
//
// The grading outcome is tri-state: IsCorrect nil + GradedAt set means the
// answer was ungradable, which is a first-class result distinct from both
// correct and incorrect. IsCorrect nil + GradedAt nil means not yet graded.
type Answer struct {
	ID         uuid.UUID  `json:"id"`
	QuestionID uuid.UUID  `json:"question_id"`
	OwnerID    int        `json:"owner_id"`
	AnswerText string     `json:"answer_text"`
	IsCorrect  *bool      `json:"is_correct"`
	Feedback   *string    `json:"feedback"`
	GradedAt   *time.Time `json:"graded_at"`
	CreatedAt  time.Time  `json:"created_at"`
}

// SubmitAnswerRequest is the payload for submitting an answer. Empty
// submissions are rejected at the binding layer, before grading is invoked.
type SubmitAnswerRequest struct {
	AnswerText string `json:"answer_text" binding:"required,min=1,max=8000"`
}

// HintRequest carries the hint history for a question. The client owns the
// history; the backend holds no hint state between calls.
type HintRequest struct {
	PreviousHints []string `json:"previous_hints" binding:"omitempty,max=20,dive,max=2000"`
}
