package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/spacesedan/sentitrack/internal/classifier"
	"github.com/spacesedan/sentitrack/internal/models"
	"github.com/spacesedan/sentitrack/internal/sentiment"
	"github.com/spacesedan/sentitrack/internal/session"
)

type MockClassifier struct {
	mock.Mock
}

func (m *MockClassifier) Classify(ctx context.Context, sess *session.Session, review string) (*models.ClassificationResult, error) {
	args := m.Called(ctx, sess, review)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ClassificationResult), args.Error(1)
}

func setupTestRouter(h *SessionHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID())
	r.POST("/api/v1/sessions", h.CreateSession)
	r.DELETE("/api/v1/sessions/:id", h.DeleteSession)
	r.POST("/api/v1/sessions/:id/reviews", h.SubmitReview)
	r.GET("/api/v1/sessions/:id/history", h.GetHistory)
	r.DELETE("/api/v1/sessions/:id/history", h.ResetHistory)
	return r
}

func decode(t *testing.T, w *httptest.ResponseRecorder) Response {
	t.Helper()
	var resp Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func postReview(router *gin.Engine, id, body string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/sessions/"+id+"/reviews", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestCreateSession(t *testing.T) {
	store := session.NewStore(10, time.Minute)
	router := setupTestRouter(NewSessionHandler(new(MockClassifier), store, 100))

	req, _ := http.NewRequest(http.MethodPost, "/api/v1/sessions", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	resp := decode(t, w)
	assert.True(t, resp.Success)
	assert.NotEmpty(t, resp.Meta.RequestID)

	id := resp.Data.(map[string]interface{})["id"].(string)
	_, ok := store.Get(id)
	assert.True(t, ok)
}

func TestSubmitReview_Success(t *testing.T) {
	store := session.NewStore(10, time.Minute)
	s := store.Create()
	mockClf := new(MockClassifier)
	router := setupTestRouter(NewSessionHandler(mockClf, store, 100))

	expected := sentiment.NewResult(0.9)
	mockClf.On("Classify", mock.Anything, s, "great product").Return(expected, nil)

	w := postReview(router, s.ID, `{"review": "great product"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decode(t, w)
	data := resp.Data.(map[string]interface{})
	assert.Equal(t, "positive", data["label"])
	assert.Equal(t, "Positive Review (90.00%)", data["banner"])
	assert.Equal(t, float64(90), data["progress"])
	mockClf.AssertExpectations(t)
}

func TestSubmitReview_EmptyIsNoContent(t *testing.T) {
	store := session.NewStore(10, time.Minute)
	s := store.Create()
	mockClf := new(MockClassifier)
	router := setupTestRouter(NewSessionHandler(mockClf, store, 100))

	mockClf.On("Classify", mock.Anything, s, "  ").Return(nil, sentiment.ErrEmptyInput)

	w := postReview(router, s.ID, `{"review": "  "}`)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())
}

func TestSubmitReview_ErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"too long", fmt.Errorf("%w: 900 characters", sentiment.ErrReviewTooLong), http.StatusRequestEntityTooLarge, "REVIEW_TOO_LONG"},
		{"inference", fmt.Errorf("%w: dimension mismatch", classifier.ErrInference), http.StatusUnprocessableEntity, "INFERENCE_ERROR"},
		{"unexpected", fmt.Errorf("boom"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := session.NewStore(10, time.Minute)
			s := store.Create()
			mockClf := new(MockClassifier)
			router := setupTestRouter(NewSessionHandler(mockClf, store, 100))
			mockClf.On("Classify", mock.Anything, s, "text").Return(nil, tt.err)

			w := postReview(router, s.ID, `{"review": "text"}`)

			assert.Equal(t, tt.status, w.Code)
			resp := decode(t, w)
			assert.False(t, resp.Success)
			assert.Equal(t, tt.code, resp.Error.Code)
		})
	}
}

func TestSubmitReview_UnknownSession(t *testing.T) {
	mockClf := new(MockClassifier)
	router := setupTestRouter(NewSessionHandler(mockClf, session.NewStore(10, time.Minute), 100))

	w := postReview(router, "nope", `{"review": "text"}`)

	assert.Equal(t, http.StatusNotFound, w.Code)
	mockClf.AssertNotCalled(t, "Classify", mock.Anything, mock.Anything, mock.Anything)
}

func TestSubmitReview_InvalidBody(t *testing.T) {
	store := session.NewStore(10, time.Minute)
	s := store.Create()
	router := setupTestRouter(NewSessionHandler(new(MockClassifier), store, 100))

	w := postReview(router, s.ID, `not json`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_REQUEST", decode(t, w).Error.Code)
}

func TestSubmitReview_OversizedBody(t *testing.T) {
	store := session.NewStore(10, time.Minute)
	s := store.Create()
	mockClf := new(MockClassifier)
	router := setupTestRouter(NewSessionHandler(mockClf, store, 10))

	big := strings.Repeat("a", 10*4+bodyOverhead+1)
	w := postReview(router, s.ID, `{"review": "`+big+`"}`)

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	mockClf.AssertNotCalled(t, "Classify", mock.Anything, mock.Anything, mock.Anything)
}

func TestHistoryAndReset(t *testing.T) {
	store := session.NewStore(10, time.Minute)
	s := store.Create()
	s.Do(func(h *session.History) {
		h.Append(0.2)
		h.Append(0.9)
		h.Append(0.55)
	})
	router := setupTestRouter(NewSessionHandler(new(MockClassifier), store, 100))

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/sessions/"+s.ID+"/history", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	data := decode(t, w).Data.(map[string]interface{})
	assert.Equal(t, []interface{}{0.2, 0.9, 0.55}, data["scores"])
	assert.Equal(t, float64(3), data["size"])
	assert.NotNil(t, data["trend"])

	req, _ = http.NewRequest(http.MethodDelete, "/api/v1/sessions/"+s.ID+"/history", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	data = decode(t, w).Data.(map[string]interface{})
	assert.Equal(t, float64(0), data["size"])
	assert.Nil(t, data["trend"])
	s.Do(func(h *session.History) { assert.Zero(t, h.Size()) })
}

func TestDeleteSession(t *testing.T) {
	store := session.NewStore(10, time.Minute)
	s := store.Create()
	router := setupTestRouter(NewSessionHandler(new(MockClassifier), store, 100))

	req, _ := http.NewRequest(http.MethodDelete, "/api/v1/sessions/"+s.ID, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)

	req, _ = http.NewRequest(http.MethodDelete, "/api/v1/sessions/"+s.ID, nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
