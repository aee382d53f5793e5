package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/tutorstack/tutor-backend/internal/llm"
	"github.com/tutorstack/tutor-backend/internal/model"
	"github.com/tutorstack/tutor-backend/internal/repository"
	"github.com/tutorstack/tutor-backend/internal/storage"
)

// Hinter is the hint-generation collaborator consumed by HintService.
type Hinter interface {
	GenerateHint(ctx context.Context, questionText string, previousHints []string, kind model.DocumentKind, imageDataURI string) (string, error)
}

// HintService produces progressive hints for a question. The service is
// stateless: the caller supplies the hints it has already seen and receives
// exactly one new hint per call.
type HintService struct {
	questionRepo *repository.QuestionRepository
	store        storage.Store
	hinter       Hinter
	timeout      time.Duration
	log          zerolog.Logger
}

// NewHintService creates a new HintService.
func NewHintService(
	questionRepo *repository.QuestionRepository,
	store storage.Store,
	hinter Hinter,
	timeout time.Duration,
	log zerolog.Logger,
) *HintService {
	return &HintService{
		questionRepo: questionRepo,
		store:        store,
		hinter:       hinter,
		timeout:      timeout,
		log:          log.With().Str("component", "hint_service").Logger(),
	}
}

// GetHint returns one new hint for the question, taking the caller's prior
// hints into account so the new hint is more specific than the last.
func (s *HintService) GetHint(ctx context.Context, questionID uuid.UUID, ownerID int, previousHints []string) (string, error) {
	question, doc, err := s.questionRepo.GetOwned(ctx, questionID, ownerID)
	if err != nil {
		return "", err
	}

	var imageURI string
	if llm.AttachImageForHint(question.Text, doc.Kind()) {
		uri, err := encodeDataURI(s.store, doc.FileURL, doc.ContentType)
		if err != nil {
			s.log.Warn().Err(err).Str("document_id", doc.ID.String()).Msg("Could not load source image")
		} else {
			imageURI = uri
		}
	}

	hintCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	return s.hinter.GenerateHint(hintCtx, question.Text, previousHints, doc.Kind(), imageURI)
}
