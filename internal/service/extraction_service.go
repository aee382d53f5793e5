package service

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/tutorstack/tutor-backend/internal/config"
	"github.com/tutorstack/tutor-backend/internal/llm"
	"github.com/tutorstack/tutor-backend/internal/model"
	"github.com/tutorstack/tutor-backend/internal/repository"
	"github.com/tutorstack/tutor-backend/internal/storage"
)

// Extractor is the question-extraction collaborator consumed by
// ExtractionService.
type Extractor interface {
	ExtractQuestions(ctx context.Context, imageDataURI string) ([]llm.ExtractedQuestion, error)
}

// ExtractionService turns an uploaded document into its questions. It runs
// from the background worker, never from a request handler.
type ExtractionService struct {
	docRepo      *repository.DocumentRepository
	questionRepo *repository.QuestionRepository
	store        storage.Store
	extractor    Extractor
	rdb          *redis.Client
	log          zerolog.Logger
}

// NewExtractionService creates a new ExtractionService.
func NewExtractionService(
	docRepo *repository.DocumentRepository,
	questionRepo *repository.QuestionRepository,
	store storage.Store,
	extractor Extractor,
	rdb *redis.Client,
	log zerolog.Logger,
) *ExtractionService {
	return &ExtractionService{
		docRepo:      docRepo,
		questionRepo: questionRepo,
		store:        store,
		extractor:    extractor,
		rdb:          rdb,
		log:          log.With().Str("component", "extraction_service").Logger(),
	}
}

// MapQuestions converts extraction results into question rows for a document.
// Ordering follows the position in the extraction output, not the question
// labels: labels are free-form strings ("1a", "iv") and are kept for display
// only.
func MapQuestions(documentID uuid.UUID, extracted []llm.ExtractedQuestion) []model.Question {
	questions := make([]model.Question, 0, len(extracted))
	for i, q := range extracted {
		questions = append(questions, model.Question{
			DocumentID: documentID,
			Label:      q.Number,
			Text:       q.Text,
			OrderNum:   i + 1,
		})
	}
	return questions
}

// ProcessDocument extracts questions for the document and stores them. The
// document ends in COMPLETED status (possibly with zero questions) or FAILED;
// either way a status event goes out over the document's pub/sub channel so
// connected clients stop polling.
func (s *ExtractionService) ProcessDocument(ctx context.Context, documentID uuid.UUID) error {
	doc, err := s.docRepo.GetByID(ctx, documentID)
	if err != nil {
		return err
	}

	dataURI, err := encodeDataURI(s.store, doc.FileURL, doc.ContentType)
	if err != nil {
		s.fail(ctx, documentID)
		return err
	}

	extracted, err := s.extractor.ExtractQuestions(ctx, dataURI)
	if err != nil {
		s.fail(ctx, documentID)
		return err
	}

	questions := MapQuestions(documentID, extracted)
	if err := s.questionRepo.CreateBatch(ctx, documentID, questions); err != nil {
		s.fail(ctx, documentID)
		return err
	}

	s.publishStatus(ctx, documentID, model.DocumentStatusCompleted, len(questions))
	return nil
}

func (s *ExtractionService) fail(ctx context.Context, documentID uuid.UUID) {
	if err := s.docRepo.UpdateStatus(ctx, documentID, model.DocumentStatusFailed); err != nil {
		s.log.Error().Err(err).Str("document_id", documentID.String()).Msg("Failed to mark document as failed")
	}
	s.publishStatus(ctx, documentID, model.DocumentStatusFailed, 0)
}

func (s *ExtractionService) publishStatus(ctx context.Context, documentID uuid.UUID, status model.DocumentStatus, questionCount int) {
	payload, err := json.Marshal(map[string]any{
		"status":         status,
		"question_count": questionCount,
	})
	if err != nil {
		return
	}
	channel := config.CacheKey.DocumentStatusChannel(documentID.String())
	if err := s.rdb.Publish(ctx, channel, payload).Err(); err != nil {
		s.log.Warn().Err(err).Str("document_id", documentID.String()).Msg("Failed to publish status event")
	}
}
