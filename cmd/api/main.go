package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/therealutkarshpriyadarshi/tubeinsight/internal/captions"
	"github.com/therealutkarshpriyadarshi/tubeinsight/internal/config"
	"github.com/therealutkarshpriyadarshi/tubeinsight/internal/language"
	"github.com/therealutkarshpriyadarshi/tubeinsight/internal/logging"
	"github.com/therealutkarshpriyadarshi/tubeinsight/internal/metrics"
	"github.com/therealutkarshpriyadarshi/tubeinsight/internal/middleware"
	"github.com/therealutkarshpriyadarshi/tubeinsight/internal/tracing"
	"github.com/therealutkarshpriyadarshi/tubeinsight/internal/transcript"
	"github.com/therealutkarshpriyadarshi/tubeinsight/internal/youtube"
)

func main() {
	// Load configuration
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		bootLogger, _ := logging.NewDefaultLogger()
		bootLogger.Fatalf("Failed to load config: %v", err)
	}

	logger, err := logging.NewLogger(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})
	if err != nil {
		bootLogger, _ := logging.NewDefaultLogger()
		bootLogger.Fatalf("Failed to initialize logger: %v", err)
	}

	// Initialize tracing
	closer, err := tracing.InitTracer(cfg.Tracing.Enabled, cfg.Tracing.ServiceName, cfg.Tracing.JaegerEndpoint)
	if err != nil {
		logger.WarnWithErr("Failed to initialize tracing, continuing without it", err)
	} else {
		defer closer.Close()
	}

	if cfg.Server.Production {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	captionsClient := captions.NewClient(cfg.Upstream.CaptionsURL, cfg.Upstream.Timeout, cfg.Upstream.MaxBodyBytes, logger)

	api := &API{
		transcripts: transcript.NewService(captionsClient, logger),
		videoInfo:   youtube.NewInfoClient(cfg.VideoInfo.OEmbedURL, cfg.VideoInfo.WatchURL, cfg.VideoInfo.Timeout, logger),
		languages:   language.NewService(language.NewWhatlangDetector(), logger),
		logger:      logger.WithComponent("api"),
	}

	var rateLimiter *middleware.RateLimiter
	stopCleanup := make(chan struct{})
	if cfg.RateLimit.Enabled {
		rateLimiter = middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
		go rateLimiter.Cleanup(time.Minute, stopCleanup)
	}

	router := setupRouter(api, cfg, logger, rateLimiter)

	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	var metricsServer *metrics.Server
	if cfg.Metrics.Enabled && cfg.Metrics.Port > 0 {
		metricsServer = metrics.NewServer(cfg.Metrics.Port, logger)
		go func() {
			if err := metricsServer.Start(); err != nil {
				logger.ErrorWithErr("Metrics server stopped", err)
			}
		}()
	}

	// Start server in goroutine
	go func() {
		logger.Infof("Starting TubeInsight API on %s (production=%t)", srv.Addr, cfg.Server.Production)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")
	close(stopCleanup)

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if metricsServer != nil {
		if err := metricsServer.Shutdown(ctx); err != nil {
			logger.WarnWithErr("Metrics server shutdown failed", err)
		}
	}

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatalf("Server forced to shutdown: %v", err)
	}

	logger.Info("Server stopped")
}
