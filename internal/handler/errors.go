package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/spacesedan/sentitrack/internal/classifier"
	"github.com/spacesedan/sentitrack/internal/sentiment"
)

type ErrorResponse struct {
	StatusCode int
	Code       string
	Message    string
}

// MapClassifyError maps pipeline errors to HTTP error responses.
func MapClassifyError(err error) ErrorResponse {
	var maxBytes *http.MaxBytesError

	switch {
	case errors.Is(err, sentiment.ErrReviewTooLong), errors.As(err, &maxBytes):
		return ErrorResponse{
			StatusCode: http.StatusRequestEntityTooLarge,
			Code:       CODE_REVIEW_TOO_LONG,
			Message:    err.Error(),
		}
	case errors.Is(err, classifier.ErrInference):
		return ErrorResponse{
			StatusCode: http.StatusUnprocessableEntity,
			Code:       CODE_INFERENCE_ERROR,
			Message:    err.Error(),
		}
	default:
		return ErrorResponse{
			StatusCode: http.StatusInternalServerError,
			Code:       CODE_INTERNAL_ERROR,
			Message:    "internal server error",
		}
	}
}

func HandleClassifyError(c *gin.Context, err error) {
	errResp := MapClassifyError(err)
	respondError(c, errResp.StatusCode, errResp.Code, errResp.Message)
}

func HandleSessionNotFound(c *gin.Context) {
	respondError(c, http.StatusNotFound, CODE_NOT_FOUND, "session not found")
}

func HandleInvalidRequest(c *gin.Context, message string) {
	respondError(c, http.StatusBadRequest, CODE_INVALID_REQUEST, message)
}

// HandleArtifactsUnavailable refuses input while the artifacts are missing or
// corrupt.
func HandleArtifactsUnavailable(c *gin.Context, loadErr error) {
	respondError(c, http.StatusServiceUnavailable, CODE_ARTIFACTS_UNAVAILABLE, loadErr.Error())
}
