package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/tutorstack/tutor-backend/internal/middleware"
	"github.com/tutorstack/tutor-backend/internal/model"
	"github.com/tutorstack/tutor-backend/internal/repository"
	"github.com/tutorstack/tutor-backend/internal/response"
	"github.com/tutorstack/tutor-backend/internal/service"
	"github.com/tutorstack/tutor-backend/internal/storage"
)

// DocumentHandler handles document upload and management endpoints.
type DocumentHandler struct {
	documentService *service.DocumentService
}

// NewDocumentHandler creates a new DocumentHandler.
func NewDocumentHandler(documentService *service.DocumentService) *DocumentHandler {
	return &DocumentHandler{documentService: documentService}
}

// Upload godoc
// POST /api/v1/documents
// Accepts a multipart file upload, stores it, and queues question extraction.
// The response carries the document in PROCESSING status; clients follow the
// status over the WebSocket channel or by polling GET /documents/:id.
func (h *DocumentHandler) Upload(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrFileRequired)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrFileRequired)
		return
	}
	defer file.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	doc, err := h.documentService.Upload(
		c.Request.Context(),
		claims.UserID,
		fileHeader.Filename,
		contentType,
		fileHeader.Size,
		file,
	)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrUnsupportedFileType):
			response.Fail(c, http.StatusUnsupportedMediaType, response.ErrUnsupportedFile)
		case errors.Is(err, service.ErrFileTooLarge):
			response.Fail(c, http.StatusRequestEntityTooLarge, response.ErrFileTooLarge)
		default:
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"document": doc})
}

// List godoc
// GET /api/v1/documents?page=1&per_page=20
// Lists the caller's documents, newest first.
func (h *DocumentHandler) List(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "20"))

	docs, pagination, err := h.documentService.List(c.Request.Context(), claims.UserID, page, perPage)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.SuccessWithPagination(c, http.StatusOK, gin.H{"documents": docs}, pagination)
}

// Get godoc
// GET /api/v1/documents/:id
// Returns a single document, including its extraction status.
func (h *DocumentHandler) Get(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	doc, err := h.documentService.Get(c.Request.Context(), id, claims.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrOwnedRowNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"document": doc})
}

// ListQuestions godoc
// GET /api/v1/documents/:id/questions
// Returns the extracted questions in document order. A document still
// PROCESSING returns 409; a FAILED one returns 422.
func (h *DocumentHandler) ListQuestions(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	doc, err := h.documentService.Get(c.Request.Context(), id, claims.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrOwnedRowNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	switch doc.Status {
	case model.DocumentStatusProcessing:
		response.Fail(c, http.StatusConflict, response.ErrDocumentNotReady)
		return
	case model.DocumentStatusFailed:
		response.Fail(c, http.StatusUnprocessableEntity, response.ErrDocumentFailed)
		return
	}

	questions, err := h.documentService.Questions(c.Request.Context(), id, claims.UserID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"questions": questions})
}

// Delete godoc
// DELETE /api/v1/documents/:id
// Removes a document with its questions, answers, and stored file.
func (h *DocumentHandler) Delete(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if err := h.documentService.Delete(c.Request.Context(), id, claims.UserID); err != nil {
		if errors.Is(err, repository.ErrOwnedRowNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{})
}
