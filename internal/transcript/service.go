package transcript

import (
	"context"

	"github.com/therealutkarshpriyadarshi/tubeinsight/internal/logging"
	"github.com/therealutkarshpriyadarshi/tubeinsight/internal/metrics"
	"github.com/therealutkarshpriyadarshi/tubeinsight/pkg/models"
)

// CaptionsFetcher retrieves the raw captions response for a video URL
type CaptionsFetcher interface {
	FetchCaptions(ctx context.Context, videoURL string) ([]byte, error)
}

// Service fetches captions and normalizes them
type Service struct {
	fetcher CaptionsFetcher
	logger  *logging.Logger
}

// NewService creates a transcript service
func NewService(fetcher CaptionsFetcher, logger *logging.Logger) *Service {
	return &Service{
		fetcher: fetcher,
		logger:  logger.WithComponent("transcript"),
	}
}

// Fetch returns the transcript for videoURL. Transport failures and
// unusable payloads both come back as an empty result.
func (s *Service) Fetch(ctx context.Context, videoURL string) models.TranscriptResult {
	body, err := s.fetcher.FetchCaptions(ctx, videoURL)
	if err != nil {
		s.logger.ErrorWithErr("Captions request failed", err)
		metrics.RecordTranscriptExtraction(StrategyNone, 0)
		return notFound()
	}

	payload := Classify(body)
	result := Normalize(payload)
	metrics.RecordTranscriptExtraction(result.Strategy, len(result.Transcript))

	if !result.Found() {
		var keys []string
		if obj, ok := payload.(ObjectPayload); ok {
			keys = obj.Keys()
		}
		s.logger.LogNormalizationFailure(payload.shape(), keys)
		return result
	}

	s.logger.LogNormalization(result.Strategy, result.Segments, len(result.Transcript), result.Language)
	return result
}
