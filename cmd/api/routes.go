package main

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/therealutkarshpriyadarshi/tubeinsight/internal/config"
	"github.com/therealutkarshpriyadarshi/tubeinsight/internal/logging"
	"github.com/therealutkarshpriyadarshi/tubeinsight/internal/metrics"
	"github.com/therealutkarshpriyadarshi/tubeinsight/internal/middleware"
)

// setupRouter wires middleware and routes. rateLimiter may be nil.
func setupRouter(api *API, cfg *config.Config, logger *logging.Logger, rateLimiter *middleware.RateLimiter) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(logger))
	router.Use(middleware.Metrics())
	router.Use(cors.New(corsConfig(cfg.CORS.AllowOrigins)))

	if cfg.Metrics.Enabled && cfg.Metrics.Port == 0 {
		router.GET("/metrics", gin.WrapH(metrics.Handler()))
	}

	apiGroup := router.Group("/api")
	apiGroup.GET("/health", api.healthCheck)
	apiGroup.POST("/detect-language", api.detectLanguage)

	limited := apiGroup.Group("")
	if rateLimiter != nil {
		limited.Use(middleware.RateLimit(rateLimiter))
	}
	{
		limited.POST("/transcript", api.getTranscript)
		limited.POST("/video-info", api.getVideoInfo)
	}

	return router
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.DefaultConfig()
	cfg.AllowHeaders = append(cfg.AllowHeaders, middleware.RequestIDHeader)
	cfg.ExposeHeaders = []string{middleware.RequestIDHeader}

	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
		return cfg
	}
	for _, origin := range origins {
		if origin == "*" {
			cfg.AllowAllOrigins = true
			return cfg
		}
	}
	cfg.AllowOrigins = origins
	return cfg
}
