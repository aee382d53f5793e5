package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tutorstack/tutor-backend/internal/model"
)

// QuestionRepository handles question data access.
type QuestionRepository struct {
	pool *pgxpool.Pool
}

// NewQuestionRepository creates a new QuestionRepository.
func NewQuestionRepository(pool *pgxpool.Pool) *QuestionRepository {
	return &QuestionRepository{pool: pool}
}

// CreateBatch inserts all questions of a document in one transaction and
// marks the document COMPLETED. Called exactly once per document, when
// extraction finishes; an empty batch still completes the document.
func (r *QuestionRepository) CreateBatch(ctx context.Context, documentID uuid.UUID, questions []model.Question) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for i := range questions {
		q := &questions[i]
		q.DocumentID = documentID
		if err := tx.QueryRow(ctx,
			`INSERT INTO questions (document_id, label, question_text, order_num)
			 VALUES ($1, $2, $3, $4)
			 RETURNING id`,
			q.DocumentID, q.Label, q.Text, q.OrderNum,
		).Scan(&q.ID); err != nil {
			return err
		}
	}

	if _, err := tx.Exec(ctx,
		`UPDATE documents SET status = $1, updated_at = NOW() WHERE id = $2`,
		model.DocumentStatusCompleted, documentID,
	); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// ListByDocument retrieves all questions of a document ordered by the
// positional ordering key, never by the display label.
func (r *QuestionRepository) ListByDocument(ctx context.Context, documentID uuid.UUID) ([]model.Question, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, document_id, label, question_text, order_num
		 FROM questions WHERE document_id = $1
		 ORDER BY order_num`, documentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var questions []model.Question
	for rows.Next() {
		var q model.Question
		if err := rows.Scan(&q.ID, &q.DocumentID, &q.Label, &q.Text, &q.OrderNum); err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}
	return questions, rows.Err()
}

// GetOwned retrieves a question together with its owning document, only if
// the document belongs to ownerID. Questions inherit visibility through
// their document.
func (r *QuestionRepository) GetOwned(ctx context.Context, id uuid.UUID, ownerID int) (*model.Question, *model.Document, error) {
	q := &model.Question{}
	d := &model.Document{}
	err := r.pool.QueryRow(ctx,
		`SELECT q.id, q.document_id, q.label, q.question_text, q.order_num,
		        d.id, d.owner_id, d.filename, d.file_url, d.content_type, d.status, d.created_at, d.updated_at
		 FROM questions q
		 JOIN documents d ON d.id = q.document_id
		 WHERE q.id = $1 AND d.owner_id = $2`, id, ownerID,
	).Scan(&q.ID, &q.DocumentID, &q.Label, &q.Text, &q.OrderNum,
		&d.ID, &d.OwnerID, &d.Filename, &d.FileURL, &d.ContentType, &d.Status, &d.CreatedAt, &d.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil, ErrOwnedRowNotFound
	}
	if err != nil {
		return nil, nil, err
	}
	return q, d, nil
}
