package handler

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	REQUEST_ID_KEY    = "request_id"
	REQUEST_ID_HEADER = "X-Request-ID"
)

func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(REQUEST_ID_HEADER)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(REQUEST_ID_KEY, id)
		c.Header(REQUEST_ID_HEADER, id)
		c.Next()
	}
}

func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		slog.Info("[HTTP] Request handled",
			slog.String("method", c.Request.Method),
			slog.String("path", c.FullPath()),
			slog.Int("status", c.Writer.Status()),
			slog.Duration("elapsed", time.Since(start)),
			slog.String("request_id", c.GetString(REQUEST_ID_KEY)))
	}
}

// RequireArtifacts answers 503 for every request when the artifacts failed
// to load.
func RequireArtifacts(loadErr error) gin.HandlerFunc {
	return func(c *gin.Context) {
		if loadErr != nil {
			HandleArtifactsUnavailable(c, loadErr)
			return
		}
		c.Next()
	}
}
