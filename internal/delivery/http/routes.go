package http

import (
	"github.com/gin-gonic/gin"
	"github.com/medrec/backend/config"
)

// SetupRouter creates and configures the Gin router
func SetupRouter(cfg *config.Config, handler *Handler) *gin.Engine {
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(gin.Logger())
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))

	router.GET("/health", handler.HealthCheck)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/recommend", handler.Recommend)
		v1.GET("/products", handler.Products)
		v1.GET("/categories", handler.Categories)
		v1.POST("/refresh", handler.Refresh)
	}

	return router
}
