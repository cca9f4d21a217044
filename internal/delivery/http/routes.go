package http

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/relatedbrands/generator/config"
	"github.com/relatedbrands/generator/internal/logger"
)

// SetupRouter creates and configures the Gin router
func SetupRouter(cfg *config.Config, handler *Handler, log logger.Logger) *gin.Engine {
	// Set Gin mode based on environment
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware
	router.Use(RecoveryMiddleware())
	router.Use(LoggerMiddleware(log))
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))

	router.GET("/health", handler.HealthCheck)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Same path the storefront serves the artifact from
	router.GET("/content/"+cfg.Output.FileName, handler.ServeArtifact)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		brands := v1.Group("/brands")
		{
			brands.GET("/:id/related", handler.GetRelatedBrands)
		}
	}

	return router
}
