package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/tutorstack/tutor-backend/internal/config"
	"github.com/tutorstack/tutor-backend/internal/middleware"
	"github.com/tutorstack/tutor-backend/internal/model"
	"github.com/tutorstack/tutor-backend/internal/repository"
	"github.com/tutorstack/tutor-backend/internal/service"
	ws "github.com/tutorstack/tutor-backend/internal/websocket"
)

// buildUpgrader creates a WebSocket upgrader with origin validation.
// allowedOrigins comes from config.Config.AllowedOrigins.
// An empty slice permits all origins (development mode).
func buildUpgrader(allowedOrigins []string) websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			if len(allowedOrigins) == 0 {
				return true
			}
			origin := r.Header.Get("Origin")
			for _, allowed := range allowedOrigins {
				if strings.EqualFold(allowed, origin) {
					return true
				}
			}
			return false
		},
	}
}

// WSHandler streams document extraction status over WebSocket.
type WSHandler struct {
	rdb             *redis.Client
	documentService *service.DocumentService
	log             zerolog.Logger
	upgrader        websocket.Upgrader
}

// NewWSHandler creates a new WSHandler.
func NewWSHandler(rdb *redis.Client, documentService *service.DocumentService, log zerolog.Logger, allowedOrigins []string) *WSHandler {
	return &WSHandler{
		rdb:             rdb,
		documentService: documentService,
		log:             log.With().Str("component", "ws_handler").Logger(),
		upgrader:        buildUpgrader(allowedOrigins),
	}
}

type statusEvent struct {
	Status        model.DocumentStatus `json:"status"`
	QuestionCount int                  `json:"question_count"`
}

// DocumentStatusStream godoc
// WS /ws/v1/documents/:id/status
// Upgrades to WebSocket and pushes extraction status updates for the
// document. If the document is already settled the final status is sent
// immediately and the connection closed.
func (h *WSHandler) DocumentStatusStream(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	documentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid document ID"})
		return
	}

	if _, err := h.documentService.Get(c.Request.Context(), documentID, claims.UserID); err != nil {
		if errors.Is(err, repository.ErrOwnedRowNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "document not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Error().Err(err).Msg("WebSocket upgrade failed")
		return
	}
	defer conn.Close()

	wsLog := h.log.With().
		Int("user_id", claims.UserID).
		Str("document_id", documentID.String()).
		Logger()

	channel := config.CacheKey.DocumentStatusChannel(documentID.String())
	pubsub := h.rdb.Subscribe(c.Request.Context(), channel)
	defer pubsub.Close()

	// Re-read the status AFTER subscribing: pub/sub has no replay, so a
	// terminal event published between the ownership check and the
	// subscription would otherwise be lost and the stream would never end.
	doc, err := h.documentService.Get(c.Request.Context(), documentID, claims.UserID)
	if err != nil {
		ws.WriteError(conn, "internal error")
		return
	}

	// Already settled: report once and close.
	if doc.Status != model.DocumentStatusProcessing {
		questionCount := 0
		if doc.Status == model.DocumentStatusCompleted {
			if questions, err := h.documentService.Questions(c.Request.Context(), documentID, claims.UserID); err == nil {
				questionCount = len(questions)
			}
		}
		ws.WriteTyped(conn, ws.StatusResponse{
			Event:         ws.EventStatus,
			Status:        string(doc.Status),
			QuestionCount: questionCount,
		})
		return
	}

	wsLog.Info().Msg("Client subscribed to document status")

	// Detect client disconnects so the subscription does not leak.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-done:
			wsLog.Debug().Msg("Connection closed")
			return
		case <-c.Request.Context().Done():
			return
		case msg, ok := <-pubsub.Channel():
			if !ok {
				return
			}

			var event statusEvent
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				wsLog.Warn().Err(err).Msg("Malformed status payload")
				continue
			}

			if err := ws.WriteTyped(conn, ws.StatusResponse{
				Event:         ws.EventStatus,
				Status:        string(event.Status),
				QuestionCount: event.QuestionCount,
			}); err != nil {
				return
			}

			// PROCESSING is the only non-terminal status.
			if event.Status != model.DocumentStatusProcessing {
				return
			}
		}
	}
}
