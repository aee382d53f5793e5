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

// HintHandler handles hint generation endpoints.
type HintHandler struct {
	hintService *service.HintService
}

// NewHintHandler creates a new HintHandler.
func NewHintHandler(hintService *service.HintService) *HintHandler {
	return &HintHandler{hintService: hintService}
}

// GetHint godoc
// POST /api/v1/questions/:id/hint
// Returns one new hint. The client sends the hints it already received so
// each call produces a more specific one.
func (h *HintHandler) GetHint(c *gin.Context) {
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

	var req model.HintRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	hint, err := h.hintService.GetHint(c.Request.Context(), questionID, claims.UserID, req.PreviousHints)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrOwnedRowNotFound):
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		case errors.Is(err, llm.ErrRateLimited):
			response.Fail(c, http.StatusTooManyRequests, response.ErrLLMRateLimited)
		case errors.Is(err, llm.ErrQuotaExceeded):
			response.Fail(c, http.StatusPaymentRequired, response.ErrLLMQuotaExceeded)
		default:
			response.Fail(c, http.StatusBadGateway, response.ErrHintUnavailable)
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"hint": hint})
}
