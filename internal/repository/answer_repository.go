package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tutorstack/tutor-backend/internal/model"
)

// AnswerRepository handles answer data access.
type AnswerRepository struct {
	pool *pgxpool.Pool
}

// NewAnswerRepository creates a new AnswerRepository.
func NewAnswerRepository(pool *pgxpool.Pool) *AnswerRepository {
	return &AnswerRepository{pool: pool}
}

// Create inserts a new answer with the grading outcome unset. Every
// submission is a new row; re-submissions are not deduplicated.
func (r *AnswerRepository) Create(ctx context.Context, a *model.Answer) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO answers (question_id, owner_id, answer_text)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at`,
		a.QuestionID, a.OwnerID, a.AnswerText,
	).Scan(&a.ID, &a.CreatedAt)
}

// SetOutcome atomically records an answer's grading outcome and feedback.
// isCorrect stays NULL for the ungradable outcome; graded_at marks the row
// as graded either way. Under concurrent grading of the same answer the
// last write wins.
func (r *AnswerRepository) SetOutcome(ctx context.Context, id uuid.UUID, isCorrect *bool, feedback string) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE answers SET is_correct = $1, feedback = $2, graded_at = NOW()
		 WHERE id = $3`,
		isCorrect, feedback, id)
	return err
}

// ListByQuestion retrieves the owner's submissions for a question, newest
// first. Each row is an independent attempt.
func (r *AnswerRepository) ListByQuestion(ctx context.Context, questionID uuid.UUID, ownerID int) ([]model.Answer, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, question_id, owner_id, answer_text, is_correct, feedback, graded_at, created_at
		 FROM answers WHERE question_id = $1 AND owner_id = $2
		 ORDER BY created_at DESC`, questionID, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var answers []model.Answer
	for rows.Next() {
		var a model.Answer
		if err := rows.Scan(&a.ID, &a.QuestionID, &a.OwnerID, &a.AnswerText,
			&a.IsCorrect, &a.Feedback, &a.GradedAt, &a.CreatedAt); err != nil {
			return nil, err
		}
		answers = append(answers, a)
	}
	return answers, rows.Err()
}
