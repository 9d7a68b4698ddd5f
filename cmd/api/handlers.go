package main

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/therealutkarshpriyadarshi/tubeinsight/internal/logging"
	"github.com/therealutkarshpriyadarshi/tubeinsight/internal/metrics"
	"github.com/therealutkarshpriyadarshi/tubeinsight/internal/middleware"
	"github.com/therealutkarshpriyadarshi/tubeinsight/internal/youtube"
	"github.com/therealutkarshpriyadarshi/tubeinsight/pkg/models"
)

const serviceName = "TubeInsight"

// TranscriptFetcher defines the interface for transcript extraction
type TranscriptFetcher interface {
	Fetch(ctx context.Context, videoURL string) models.TranscriptResult
}

// VideoInfoFetcher defines the interface for video metadata lookups
type VideoInfoFetcher interface {
	Fetch(ctx context.Context, videoID string) models.VideoInfo
}

// LanguageDetector defines the interface for text language detection
type LanguageDetector interface {
	DetectOrDefault(text string) models.LanguageDetection
}

type API struct {
	transcripts TranscriptFetcher
	videoInfo   VideoInfoFetcher
	languages   LanguageDetector
	logger      *logging.Logger
}

// Health check endpoint
func (api *API) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, models.HealthResponse{
		Status:  "ok",
		Service: serviceName,
	})
}

// Transcript endpoint
func (api *API) getTranscript(c *gin.Context) {
	videoURL, videoID, ok := api.bindVideoURL(c)
	if !ok {
		return
	}

	log := api.logger.WithRequestID(middleware.GetRequestID(c)).WithVideoID(videoID)
	ctx := c.Request.Context()

	info := api.videoInfo.Fetch(ctx, videoID)

	result := api.transcripts.Fetch(ctx, videoURL)
	if !result.Found() {
		log.Warn("No captions found")
		metrics.RecordError("api", "no_captions")
		c.JSON(http.StatusUnprocessableEntity, models.ErrorResponse{Error: "No captions found for this video"})
		return
	}

	lang := result.Language
	if lang == "" {
		lang = models.LanguageAuto
	}

	c.JSON(http.StatusOK, models.TranscriptResponse{
		Transcript: result.Transcript,
		Lang:       lang,
		VideoInfo:  info,
		Method:     models.TranscriptMethodCaptions,
	})
}

// Video info endpoint
func (api *API) getVideoInfo(c *gin.Context) {
	_, videoID, ok := api.bindVideoURL(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, api.videoInfo.Fetch(c.Request.Context(), videoID))
}

// Language detection endpoint. It always answers 200; unusable input
// yields the degraded default.
func (api *API) detectLanguage(c *gin.Context) {
	var req models.DetectLanguageRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		api.logger.WithRequestID(middleware.GetRequestID(c)).WarnWithErr("Unreadable detect-language body", err)
		metrics.RecordLanguageDetection(models.DefaultLanguageCode, true)
		c.JSON(http.StatusOK, models.LanguageDetection{
			Code:   models.DefaultLanguageCode,
			Reason: models.DetectionReasonError,
		})
		return
	}

	c.JSON(http.StatusOK, api.languages.DetectOrDefault(req.Text))
}

// bindVideoURL reads {url} from the body and extracts the video ID,
// writing a 400 response and returning false when either step fails.
func (api *API) bindVideoURL(c *gin.Context) (string, string, bool) {
	var req models.TranscriptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return "", "", false
	}

	videoURL := strings.TrimSpace(req.URL)
	if videoURL == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "YouTube URL is required"})
		return "", "", false
	}

	videoID, err := youtube.ExtractVideoID(videoURL)
	if err != nil {
		if !errors.Is(err, youtube.ErrInvalidURL) {
			api.logger.ErrorWithErr("Unexpected URL parsing error", err)
		}
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Invalid YouTube URL"})
		return "", "", false
	}

	return videoURL, videoID, true
}
