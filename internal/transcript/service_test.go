package transcript

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/therealutkarshpriyadarshi/tubeinsight/internal/captions"
	"github.com/therealutkarshpriyadarshi/tubeinsight/internal/logging"
	"github.com/therealutkarshpriyadarshi/tubeinsight/pkg/models"
)

// MockFetcher is a mock implementation of CaptionsFetcher
type MockFetcher struct {
	mock.Mock
}

func (m *MockFetcher) FetchCaptions(ctx context.Context, videoURL string) ([]byte, error) {
	args := m.Called(ctx, videoURL)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

const videoURL = "https://www.youtube.com/watch?v=dQw4w9WgXcQ"

func TestServiceFetchSuccess(t *testing.T) {
	fetcher := new(MockFetcher)
	fetcher.On("FetchCaptions", mock.Anything, videoURL).
		Return([]byte(`{"transcript":"a transcript long enough to keep","language":"es"}`), nil)

	service := NewService(fetcher, logging.NewNopLogger())
	result := service.Fetch(context.Background(), videoURL)

	assert.Equal(t, "a transcript long enough to keep", result.Transcript)
	assert.Equal(t, "es", result.Language)
	fetcher.AssertExpectations(t)
}

func TestServiceFetchTransportError(t *testing.T) {
	fetcher := new(MockFetcher)
	fetcher.On("FetchCaptions", mock.Anything, videoURL).
		Return(nil, &captions.TransportError{Kind: captions.KindTimeout})

	service := NewService(fetcher, logging.NewNopLogger())
	result := service.Fetch(context.Background(), videoURL)

	assert.Equal(t, models.TranscriptResult{Strategy: StrategyNone}, result)
	fetcher.AssertNumberOfCalls(t, "FetchCaptions", 1)
}

func TestServiceFetchUnusablePayload(t *testing.T) {
	fetcher := new(MockFetcher)
	fetcher.On("FetchCaptions", mock.Anything, videoURL).
		Return([]byte(`{"error":"video unavailable"}`), nil)

	service := NewService(fetcher, logging.NewNopLogger())
	result := service.Fetch(context.Background(), videoURL)

	assert.False(t, result.Found())
	assert.Empty(t, result.Language)
}
