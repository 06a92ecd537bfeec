package router

import (
	"github.com/gin-gonic/gin"

	"github.com/spacesedan/sentitrack/internal/handler"
	"github.com/spacesedan/sentitrack/internal/session"
)

type Deps struct {
	// Pipeline is nil when LoadErr is set.
	Pipeline handler.ReviewClassifier
	LoadErr  error
	Sessions *session.Store
	MaxChars int
}

// Setup creates and configures the Gin router.
func Setup(deps Deps) *gin.Engine {
	router := gin.New()

	router.Use(handler.RequestID())
	router.Use(handler.Logger())
	router.Use(gin.Recovery())

	healthHandler := handler.NewHealthHandler(deps.LoadErr)
	router.GET("/health", healthHandler.Health)

	sessionHandler := handler.NewSessionHandler(deps.Pipeline, deps.Sessions, deps.MaxChars)

	v1 := router.Group("/api/v1")
	v1.Use(handler.RequireArtifacts(deps.LoadErr))
	{
		sessions := v1.Group("/sessions")
		{
			sessions.POST("", sessionHandler.CreateSession)
			sessions.DELETE("/:id", sessionHandler.DeleteSession)
			sessions.POST("/:id/reviews", sessionHandler.SubmitReview)
			sessions.GET("/:id/history", sessionHandler.GetHistory)
			sessions.DELETE("/:id/history", sessionHandler.ResetHistory)
		}
	}

	return router
}
