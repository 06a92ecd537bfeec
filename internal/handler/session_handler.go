package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/spacesedan/sentitrack/internal/models"
	"github.com/spacesedan/sentitrack/internal/sentiment"
	"github.com/spacesedan/sentitrack/internal/session"
)

// Headroom for JSON framing and escapes on top of the review itself.
const bodyOverhead = 1 << 12

type ReviewClassifier interface {
	Classify(ctx context.Context, sess *session.Session, review string) (*models.ClassificationResult, error)
}

type SessionHandler struct {
	pipeline     ReviewClassifier
	sessions     *session.Store
	maxBodyBytes int64
}

// NewSessionHandler limits request bodies to what a review of maxChars runes
// can need. Zero maxChars leaves bodies unbounded.
func NewSessionHandler(pipeline ReviewClassifier, sessions *session.Store, maxChars int) *SessionHandler {
	var limit int64
	if maxChars > 0 {
		limit = int64(maxChars)*4 + bodyOverhead
	}
	return &SessionHandler{pipeline: pipeline, sessions: sessions, maxBodyBytes: limit}
}

type SubmitReviewRequest struct {
	Review string `json:"review"`
}

type SessionResponse struct {
	ID string `json:"id"`
}

func (h *SessionHandler) CreateSession(c *gin.Context) {
	s := h.sessions.Create()
	respondSuccess(c, http.StatusCreated, SessionResponse{ID: s.ID})
}

func (h *SessionHandler) DeleteSession(c *gin.Context) {
	if !h.sessions.Delete(c.Param("id")) {
		HandleSessionNotFound(c)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *SessionHandler) SubmitReview(c *gin.Context) {
	s, ok := h.sessions.Get(c.Param("id"))
	if !ok {
		HandleSessionNotFound(c)
		return
	}

	if h.maxBodyBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBodyBytes)
	}

	var req SubmitReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var maxBytes *http.MaxBytesError
		if errors.As(err, &maxBytes) {
			HandleClassifyError(c, err)
			return
		}
		HandleInvalidRequest(c, "request body must be JSON with a review field")
		return
	}

	result, err := h.pipeline.Classify(c.Request.Context(), s, req.Review)
	if errors.Is(err, sentiment.ErrEmptyInput) {
		c.Status(http.StatusNoContent)
		return
	}
	if err != nil {
		HandleClassifyError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, result)
}

func (h *SessionHandler) GetHistory(c *gin.Context) {
	s, ok := h.sessions.Get(c.Param("id"))
	if !ok {
		HandleSessionNotFound(c)
		return
	}

	var view models.HistoryView
	s.Do(func(hist *session.History) { view = hist.View() })
	respondSuccess(c, http.StatusOK, view)
}

func (h *SessionHandler) ResetHistory(c *gin.Context) {
	s, ok := h.sessions.Get(c.Param("id"))
	if !ok {
		HandleSessionNotFound(c)
		return
	}

	var view models.HistoryView
	s.Do(func(hist *session.History) {
		hist.Reset()
		view = hist.View()
	})
	respondSuccess(c, http.StatusOK, view)
}
