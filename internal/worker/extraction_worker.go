package worker

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/tutorstack/tutor-backend/internal/config"
	"github.com/tutorstack/tutor-backend/internal/service"
)

// PollTimeout must be >= 1s to satisfy Redis.
const PollTimeout = 1 * time.Second

// ExtractionWorker consumes extract_documents_queue and runs question
// extraction for each uploaded document. One job per document; jobs are
// independent, so a failed extraction never blocks the queue.
type ExtractionWorker struct {
	extraction *service.ExtractionService
	rdb        *redis.Client
	log        zerolog.Logger
}

// NewExtractionWorker creates a new ExtractionWorker.
func NewExtractionWorker(extraction *service.ExtractionService, rdb *redis.Client, log zerolog.Logger) *ExtractionWorker {
	return &ExtractionWorker{
		extraction: extraction,
		rdb:        rdb,
		log:        log.With().Str("component", "extraction_worker").Logger(),
	}
}

// Start begins the infinite worker loop. Call in a goroutine.
func (w *ExtractionWorker) Start(ctx context.Context) {
	w.log.Info().Msg("Worker started")

	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("Worker stopped")
			return
		default:
			w.processNext(ctx)
		}
	}
}

func (w *ExtractionWorker) processNext(ctx context.Context) {
	result, err := w.rdb.BLPop(ctx, PollTimeout, config.WorkerKey.ExtractDocumentsQueue).Result()
	if err != nil {
		if err != redis.Nil && ctx.Err() == nil {
			w.log.Error().Err(err).Msg("BLPop error")
		}
		return
	}

	if len(result) < 2 {
		return
	}

	documentID, err := uuid.Parse(result[1])
	if err != nil {
		w.log.Error().Err(err).Str("payload", result[1]).Msg("Invalid document id in queue")
		return
	}

	if err := w.extraction.ProcessDocument(ctx, documentID); err != nil {
		w.log.Error().Err(err).Str("document_id", documentID.String()).Msg("Extraction failed")
		return
	}

	w.log.Info().Str("document_id", documentID.String()).Msg("Document processed")
}
