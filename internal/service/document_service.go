package service

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/tutorstack/tutor-backend/internal/config"
	"github.com/tutorstack/tutor-backend/internal/model"
	"github.com/tutorstack/tutor-backend/internal/repository"
	"github.com/tutorstack/tutor-backend/internal/response"
	"github.com/tutorstack/tutor-backend/internal/storage"
)

// ErrFileTooLarge signals an upload over the configured size limit.
var ErrFileTooLarge = errors.New("file too large")

// DocumentService handles document upload, lookup, and deletion. Uploads go
// to the object store; extraction runs asynchronously via the Redis queue.
type DocumentService struct {
	docRepo      *repository.DocumentRepository
	questionRepo *repository.QuestionRepository
	store        storage.Store
	rdb          *redis.Client
	maxBytes     int64
	log          zerolog.Logger
}

// NewDocumentService creates a new DocumentService.
func NewDocumentService(
	docRepo *repository.DocumentRepository,
	questionRepo *repository.QuestionRepository,
	store storage.Store,
	rdb *redis.Client,
	cfg *config.Config,
	log zerolog.Logger,
) *DocumentService {
	return &DocumentService{
		docRepo:      docRepo,
		questionRepo: questionRepo,
		store:        store,
		rdb:          rdb,
		maxBytes:     cfg.MaxUploadBytes,
		log:          log.With().Str("component", "document_service").Logger(),
	}
}

// Upload stores the file, creates a PROCESSING document, and queues it for
// extraction. The document becomes COMPLETED or FAILED asynchronously.
func (s *DocumentService) Upload(ctx context.Context, ownerID int, filename, contentType string, size int64, r io.Reader) (*model.Document, error) {
	if size > s.maxBytes {
		return nil, fmt.Errorf("%w: %d bytes (max %d)", ErrFileTooLarge, size, s.maxBytes)
	}

	fileURL, err := s.store.Put(contentType, r)
	if err != nil {
		return nil, err
	}

	doc := &model.Document{
		OwnerID:     ownerID,
		Filename:    filename,
		FileURL:     fileURL,
		ContentType: contentType,
		Status:      model.DocumentStatusProcessing,
	}
	if err := s.docRepo.Create(ctx, doc); err != nil {
		// Storage cleanup is best-effort; an orphaned file is harmless.
		_ = s.store.Delete(fileURL)
		return nil, err
	}

	if err := s.rdb.RPush(ctx, config.WorkerKey.ExtractDocumentsQueue, doc.ID.String()).Err(); err != nil {
		s.log.Error().Err(err).Str("document_id", doc.ID.String()).Msg("Failed to enqueue extraction")
		// The document stays in PROCESSING; the upload itself succeeded.
	}

	return doc, nil
}

// List retrieves the owner's documents with pagination.
func (s *DocumentService) List(ctx context.Context, ownerID, page, perPage int) ([]model.Document, *response.Pagination, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 10
	}
	if perPage > 100 {
		perPage = 100
	}

	docs, total, err := s.docRepo.ListByOwner(ctx, ownerID, perPage, (page-1)*perPage)
	if err != nil {
		return nil, nil, err
	}
	if docs == nil {
		docs = []model.Document{}
	}

	pagination := &response.Pagination{
		Page:       page,
		PerPage:    perPage,
		TotalItems: total,
		TotalPages: (total + perPage - 1) / perPage,
	}
	return docs, pagination, nil
}

// Get retrieves one of the owner's documents.
func (s *DocumentService) Get(ctx context.Context, id uuid.UUID, ownerID int) (*model.Document, error) {
	return s.docRepo.GetOwned(ctx, id, ownerID)
}

// Questions retrieves a document's extracted questions in order, after an
// ownership check.
func (s *DocumentService) Questions(ctx context.Context, id uuid.UUID, ownerID int) ([]model.Question, error) {
	if _, err := s.docRepo.GetOwned(ctx, id, ownerID); err != nil {
		return nil, err
	}
	return s.questionRepo.ListByDocument(ctx, id)
}

// Delete removes one of the owner's documents, cascading to questions and
// answers, then removes the stored file.
func (s *DocumentService) Delete(ctx context.Context, id uuid.UUID, ownerID int) error {
	fileURL, err := s.docRepo.DeleteOwned(ctx, id, ownerID)
	if err != nil {
		return err
	}
	if err := s.store.Delete(fileURL); err != nil {
		s.log.Warn().Err(err).Str("file_url", fileURL).Msg("Failed to delete stored file")
	}
	return nil
}
