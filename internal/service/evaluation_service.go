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

// Grader is the grading-service collaborator consumed by EvaluationService.
type Grader interface {
	EvaluateAnswer(ctx context.Context, in llm.EvalInput) (llm.GradeResult, error)
}

// EvaluationService orchestrates grading: it records the submission, sends
// the question/answer pair to the grading service with the right request
// shape, and persists the tri-state outcome. It holds no state across calls;
// concurrent evaluations of the same answer are last-write-wins.
type EvaluationService struct {
	questionRepo *repository.QuestionRepository
	answerRepo   *repository.AnswerRepository
	store        storage.Store
	grader       Grader
	timeout      time.Duration
	log          zerolog.Logger
}

// NewEvaluationService creates a new EvaluationService.
func NewEvaluationService(
	questionRepo *repository.QuestionRepository,
	answerRepo *repository.AnswerRepository,
	store storage.Store,
	grader Grader,
	timeout time.Duration,
	log zerolog.Logger,
) *EvaluationService {
	return &EvaluationService{
		questionRepo: questionRepo,
		answerRepo:   answerRepo,
		store:        store,
		grader:       grader,
		timeout:      timeout,
		log:          log.With().Str("component", "evaluation_service").Logger(),
	}
}

// SubmitAndGrade creates a new Answer row for the submission and grades it.
// The answer row outlives a grading failure: if the service call errors the
// row simply stays ungraded and the error propagates to the caller, which
// decides whether to retry. A grading error is never stored as "incorrect".
func (s *EvaluationService) SubmitAndGrade(ctx context.Context, questionID uuid.UUID, ownerID int, answerText string) (*model.Answer, error) {
	question, doc, err := s.questionRepo.GetOwned(ctx, questionID, ownerID)
	if err != nil {
		return nil, err
	}

	answer := &model.Answer{
		QuestionID: questionID,
		OwnerID:    ownerID,
		AnswerText: answerText,
	}
	if err := s.answerRepo.Create(ctx, answer); err != nil {
		return nil, err
	}

	in := llm.EvalInput{
		QuestionText: question.Text,
		AnswerText:   answerText,
		DocumentKind: doc.Kind(),
	}
	if llm.SelectGradingMode(question.Text, doc.Kind()) == llm.ModeMultimodal {
		uri, err := encodeDataURI(s.store, doc.FileURL, doc.ContentType)
		if err != nil {
			// Grade from text alone rather than failing the submission.
			s.log.Warn().Err(err).Str("document_id", doc.ID.String()).Msg("Could not load source image")
		} else {
			in.ImageDataURI = uri
		}
	}

	gradeCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	result, err := s.grader.EvaluateAnswer(gradeCtx, in)
	if err != nil {
		return nil, err
	}

	if err := s.answerRepo.SetOutcome(ctx, answer.ID, result.IsCorrect, result.Feedback); err != nil {
		return nil, err
	}

	now := time.Now()
	answer.IsCorrect = result.IsCorrect
	answer.Feedback = &result.Feedback
	answer.GradedAt = &now
	return answer, nil
}

// History retrieves the owner's previous submissions for a question, newest
// first, after an ownership check.
func (s *EvaluationService) History(ctx context.Context, questionID uuid.UUID, ownerID int) ([]model.Answer, error) {
	if _, _, err := s.questionRepo.GetOwned(ctx, questionID, ownerID); err != nil {
		return nil, err
	}
	return s.answerRepo.ListByQuestion(ctx, questionID, ownerID)
}
