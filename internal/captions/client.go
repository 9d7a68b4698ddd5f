package captions

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/opentracing/opentracing-go"
	"github.com/therealutkarshpriyadarshi/tubeinsight/internal/logging"
	"github.com/therealutkarshpriyadarshi/tubeinsight/internal/metrics"
	"github.com/therealutkarshpriyadarshi/tubeinsight/internal/tracing"
)

// DefaultMaxBodyBytes caps the response body read from the service
const DefaultMaxBodyBytes = 10 * 1024 * 1024

// ErrorKind classifies a transport failure
type ErrorKind string

// Transport failure kinds
const (
	KindTimeout    ErrorKind = "timeout"
	KindStatus     ErrorKind = "status"
	KindConnection ErrorKind = "connection"
	KindRead       ErrorKind = "read"
	KindTooLarge   ErrorKind = "too_large"
)

// TransportError is returned when the captions service could not be reached
// or answered with a non-2xx status. No body accompanies it.
type TransportError struct {
	Kind       ErrorKind
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.Kind == KindStatus {
		return fmt.Sprintf("captions service returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("captions service %s error: %v", e.Kind, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// The upstream rejects requests that do not look like they come from its
// own web page.
var browserHeaders = map[string]string{
	"Accept":             "*/*",
	"Accept-Language":    "en-US,en;q=0.9",
	"Content-Type":       "application/json",
	"Origin":             "https://maestra.ai",
	"Referer":            "https://maestra.ai/",
	"Sec-Ch-Ua":          `"Not:A-Brand";v="99", "Google Chrome";v="145", "Chromium";v="145"`,
	"Sec-Ch-Ua-Mobile":   "?1",
	"Sec-Ch-Ua-Platform": `"iOS"`,
	"Sec-Fetch-Dest":     "empty",
	"Sec-Fetch-Mode":     "cors",
	"Sec-Fetch-Site":     "cross-site",
	"User-Agent":         "Mozilla/5.0 (iPhone; CPU iPhone OS 18_5 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/18.5 Mobile/15E148 Safari/604.1",
}

// Client posts video URLs to the captions extraction service
type Client struct {
	client       *http.Client
	endpoint     string
	maxBodyBytes int64
	logger       *logging.Logger
}

// NewClient creates a captions client. A single attempt is made per call.
func NewClient(endpoint string, timeout time.Duration, maxBodyBytes int64, logger *logging.Logger) *Client {
	if maxBodyBytes <= 0 {
		maxBodyBytes = DefaultMaxBodyBytes
	}
	return &Client{
		client: &http.Client{
			Timeout: timeout,
		},
		endpoint:     endpoint,
		maxBodyBytes: maxBodyBytes,
		logger:       logger.WithComponent("captions"),
	}
}

type captionsRequest struct {
	VideoURL string `json:"videoUrl"`
}

// FetchCaptions returns the raw response body for videoURL.
// Failures are reported as *TransportError with a nil body.
func (c *Client) FetchCaptions(ctx context.Context, videoURL string) ([]byte, error) {
	span, ctx := tracing.StartClientSpan(ctx, "captions.fetch", http.MethodPost, c.endpoint)
	defer tracing.FinishSpan(span)

	payload, err := json.Marshal(captionsRequest{VideoURL: videoURL})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	for k, v := range browserHeaders {
		req.Header.Set(k, v)
	}

	c.logger.Info("Fetching captions")
	start := time.Now()

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, c.fail(span, start, 0, 0, &TransportError{Kind: classify(err), Err: err})
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBodyBytes+1))
	if err != nil {
		kind := classify(err)
		if kind == KindConnection {
			kind = KindRead
		}
		return nil, c.fail(span, start, resp.StatusCode, len(body), &TransportError{Kind: kind, StatusCode: resp.StatusCode, Err: err})
	}

	if int64(len(body)) > c.maxBodyBytes {
		return nil, c.fail(span, start, resp.StatusCode, len(body), &TransportError{
			Kind:       KindTooLarge,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("body exceeds %d bytes", c.maxBodyBytes),
		})
	}

	tracing.SetTag(span, "http.status_code", resp.StatusCode)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, c.fail(span, start, resp.StatusCode, len(body), &TransportError{Kind: KindStatus, StatusCode: resp.StatusCode})
	}

	duration := time.Since(start)
	c.logger.LogUpstreamCall(resp.StatusCode, len(body), duration, nil)
	c.logger.LogResponsePreview(body)
	metrics.RecordUpstreamRequest("captions", "success", duration.Seconds())
	metrics.RecordUpstreamResponseSize(len(body))

	return body, nil
}

func (c *Client) fail(span opentracing.Span, start time.Time, status, size int, terr *TransportError) error {
	duration := time.Since(start)
	c.logger.LogUpstreamCall(status, size, duration, terr)
	tracing.LogError(span, terr)
	metrics.RecordUpstreamRequest("captions", string(terr.Kind), duration.Seconds())
	metrics.RecordError("captions", string(terr.Kind))
	return terr
}

func classify(err error) ErrorKind {
	if errors.Is(err, context.DeadlineExceeded) {
		return KindTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return KindTimeout
	}
	return KindConnection
}
