package api

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/yourusername/mediafetch-go/api/handlers"
	"github.com/yourusername/mediafetch-go/api/middleware"
	"github.com/yourusername/mediafetch-go/internal/app"
	"github.com/yourusername/mediafetch-go/internal/domain"
)

// SetupRouter sets up the HTTP router
func SetupRouter(
	sessions *app.SessionManager,
	ledger domain.SaveRepository,
	log *zap.Logger,
) *gin.Engine {
	// Set Gin mode
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Middleware
	router.Use(middleware.Logger(log))
	router.Use(middleware.Recovery(log))
	router.Use(middleware.CORS())

	// Health endpoints
	healthHandler := handlers.NewHealthHandler(sessions, ledger)
	router.GET("/health", healthHandler.Health)
	router.GET("/ready", healthHandler.Ready)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Session endpoints
		sessionHandler := handlers.NewSessionHandler(sessions, log)
		sessionRoutes := v1.Group("/sessions")
		{
			sessionRoutes.POST("", sessionHandler.CreateSession)
			sessionRoutes.GET("/:id", sessionHandler.GetSession)
			sessionRoutes.DELETE("/:id", sessionHandler.DeleteSession)
			sessionRoutes.POST("/:id/url", sessionHandler.SubmitURL)
			sessionRoutes.POST("/:id/content-type", sessionHandler.SelectContentType)
			sessionRoutes.POST("/:id/quality", sessionHandler.SelectQuality)
			sessionRoutes.POST("/:id/download", sessionHandler.StartDownload)
			sessionRoutes.POST("/:id/reset", sessionHandler.Reset)
		}

		// Saved-asset ledger endpoints
		savesHandler := handlers.NewSavesHandler(ledger, log)
		saveRoutes := v1.Group("/saves")
		{
			saveRoutes.GET("", savesHandler.ListSaves)
			saveRoutes.GET("/:id", savesHandler.GetSave)
			saveRoutes.DELETE("/:id", savesHandler.DeleteSave)
		}
	}

	return router
}
