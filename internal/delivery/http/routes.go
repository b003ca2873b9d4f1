package http

import (
	"github.com/gin-gonic/gin"

	"github.com/winematch/backend/config"
)

// SetupRouter creates and configures the Gin router
func SetupRouter(cfg *config.Config, handler *Handler) *gin.Engine {
	// Set Gin mode based on environment
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware
	router.Use(RequestIDMiddleware())
	router.Use(RecoveryMiddleware())
	router.Use(LoggerMiddleware())
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))

	router.GET("/health", handler.HealthCheck)

	v1 := router.Group("/api/v1")
	{
		match := v1.Group("/match")
		{
			match.POST("/resolve", handler.ResolveWine)
			match.POST("/batch", handler.ResolveBatch)
			match.POST("/compare", handler.CompareWines)
			match.POST("/score", handler.ExplainScore)
		}

		wine := v1.Group("/wine")
		{
			wine.POST("/style", handler.SimplifyStyle)
		}
	}

	return router
}
