package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tutorstack/tutor-backend/internal/model"
)

// ErrOwnedRowNotFound signals that a row does not exist or belongs to a
// different owner; the two cases are deliberately indistinguishable.
var ErrOwnedRowNotFound = errors.New("row not found for owner")

// DocumentRepository handles document data access. Every read is scoped by
// owner: a document is visible and operable only by its owning user.
type DocumentRepository struct {
	pool *pgxpool.Pool
}

// NewDocumentRepository creates a new DocumentRepository.
func NewDocumentRepository(pool *pgxpool.Pool) *DocumentRepository {
	return &DocumentRepository{pool: pool}
}

// Create inserts a new document in PROCESSING status.
func (r *DocumentRepository) Create(ctx context.Context, d *model.Document) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO documents (owner_id, filename, file_url, content_type, status)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at, updated_at`,
		d.OwnerID, d.Filename, d.FileURL, d.ContentType, d.Status,
	).Scan(&d.ID, &d.CreatedAt, &d.UpdatedAt)
}

// GetByID retrieves a document without an ownership check. Used by the
// background extraction worker, which acts on behalf of the system.
func (r *DocumentRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Document, error) {
	return r.scanOne(r.pool.QueryRow(ctx,
		`SELECT id, owner_id, filename, file_url, content_type, status, created_at, updated_at
		 FROM documents WHERE id = $1`, id))
}

// GetOwned retrieves a document only if it belongs to ownerID.
func (r *DocumentRepository) GetOwned(ctx context.Context, id uuid.UUID, ownerID int) (*model.Document, error) {
	d, err := r.scanOne(r.pool.QueryRow(ctx,
		`SELECT id, owner_id, filename, file_url, content_type, status, created_at, updated_at
		 FROM documents WHERE id = $1 AND owner_id = $2`, id, ownerID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrOwnedRowNotFound
	}
	return d, err
}

// ListByOwner retrieves the owner's documents, newest first, with the total
// count for pagination.
func (r *DocumentRepository) ListByOwner(ctx context.Context, ownerID, limit, offset int) ([]model.Document, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM documents WHERE owner_id = $1`, ownerID,
	).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.pool.Query(ctx,
		`SELECT id, owner_id, filename, file_url, content_type, status, created_at, updated_at
		 FROM documents WHERE owner_id = $1
		 ORDER BY created_at DESC
		 LIMIT $2 OFFSET $3`, ownerID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var docs []model.Document
	for rows.Next() {
		var d model.Document
		if err := rows.Scan(&d.ID, &d.OwnerID, &d.Filename, &d.FileURL, &d.ContentType,
			&d.Status, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, 0, err
		}
		docs = append(docs, d)
	}
	return docs, total, rows.Err()
}

// UpdateStatus transitions a document's lifecycle status.
func (r *DocumentRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.DocumentStatus) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE documents SET status = $1, updated_at = NOW() WHERE id = $2`,
		status, id)
	return err
}

// DeleteOwned removes a document (cascading to its questions and answers)
// only if it belongs to ownerID. Returns the deleted document's file URL so
// the caller can clean up storage.
func (r *DocumentRepository) DeleteOwned(ctx context.Context, id uuid.UUID, ownerID int) (string, error) {
	var fileURL string
	err := r.pool.QueryRow(ctx,
		`DELETE FROM documents WHERE id = $1 AND owner_id = $2 RETURNING file_url`,
		id, ownerID,
	).Scan(&fileURL)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", ErrOwnedRowNotFound
	}
	return fileURL, err
}

func (r *DocumentRepository) scanOne(row pgx.Row) (*model.Document, error) {
	d := &model.Document{}
	err := row.Scan(&d.ID, &d.OwnerID, &d.Filename, &d.FileURL, &d.ContentType,
		&d.Status, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return d, nil
}
