package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	loadErr error
}

func NewHealthHandler(loadErr error) *HealthHandler {
	return &HealthHandler{loadErr: loadErr}
}

func (h *HealthHandler) Health(c *gin.Context) {
	if h.loadErr != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "unavailable",
			"error":  h.loadErr.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
