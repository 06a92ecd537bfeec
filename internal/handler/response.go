package handler

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
)

const (
	CODE_INVALID_REQUEST       = "INVALID_REQUEST"
	CODE_NOT_FOUND             = "NOT_FOUND"
	CODE_REVIEW_TOO_LONG       = "REVIEW_TOO_LONG"
	CODE_INFERENCE_ERROR       = "INFERENCE_ERROR"
	CODE_ARTIFACTS_UNAVAILABLE = "ARTIFACTS_UNAVAILABLE"
	CODE_INTERNAL_ERROR        = "INTERNAL_ERROR"
)

// Response wraps every JSON answer of the session API.
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *ErrorInfo  `json:"error,omitempty"`
	Meta    *MetaInfo   `json:"meta"`
}

type ErrorInfo struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type MetaInfo struct {
	Timestamp string `json:"timestamp"`
	RequestID string `json:"request_id"`
}

// meta reuses the ID set by the RequestID middleware; it is empty on routes
// mounted without it.
func meta(c *gin.Context) *MetaInfo {
	return &MetaInfo{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		RequestID: c.GetString(REQUEST_ID_KEY),
	}
}

func respondSuccess(c *gin.Context, status int, data interface{}) {
	c.JSON(status, Response{Success: true, Data: data, Meta: meta(c)})
}

// respondError aborts the handler chain. Server-side failures are logged with
// the request ID so they can be matched to the client's report.
func respondError(c *gin.Context, status int, code, message string) {
	if status >= 500 {
		slog.Warn("[HTTP] Request failed",
			slog.String("code", code),
			slog.String("message", message),
			slog.String("path", c.FullPath()),
			slog.String("request_id", c.GetString(REQUEST_ID_KEY)))
	}

	c.AbortWithStatusJSON(status, Response{
		Error: &ErrorInfo{Code: code, Message: message},
		Meta:  meta(c),
	})
}
