package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/tutorstack/tutor-backend/internal/llm"
	"github.com/tutorstack/tutor-backend/internal/middleware"
	"github.com/tutorstack/tutor-backend/internal/model"
	"github.com/tutorstack/tutor-backend/internal/repository"
	"github.com/tutorstack/tutor-backend/internal/response"
	"github.com/tutorstack/tutor-backend/internal/service"
	"github.com/tutorstack/tutor-backend/internal/validator"
)

// AnswerHandler handles answer submission and grading endpoints.
type AnswerHandler struct {
	evaluationService *service.EvaluationService
}

// NewAnswerHandler creates a new AnswerHandler.
func NewAnswerHandler(evaluationService *service.EvaluationService) *AnswerHandler {
	return &AnswerHandler{evaluationService: evaluationService}
}

// Submit godoc
// POST /api/v1/questions/:id/answers
// Records the answer and grades it synchronously. An ungradable answer is
// still a 200: is_correct stays null with the feedback explaining why. Only
// grading-service failures surface as errors, with the answer left ungraded.
func (h *AnswerHandler) Submit(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	questionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.SubmitAnswerRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	answer, err := h.evaluationService.SubmitAndGrade(c.Request.Context(), questionID, claims.UserID, req.AnswerText)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrOwnedRowNotFound):
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		case errors.Is(err, llm.ErrRateLimited):
			response.Fail(c, http.StatusTooManyRequests, response.ErrLLMRateLimited)
		case errors.Is(err, llm.ErrQuotaExceeded):
			response.Fail(c, http.StatusPaymentRequired, response.ErrLLMQuotaExceeded)
		default:
			response.Fail(c, http.StatusBadGateway, response.ErrEvaluationFailed)
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"answer": answer})
}

// History godoc
// GET /api/v1/questions/:id/answers
// Returns the caller's previous submissions for the question, newest first.
func (h *AnswerHandler) History(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	questionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	answers, err := h.evaluationService.History(c.Request.Context(), questionID, claims.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrOwnedRowNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"answers": answers})
}
