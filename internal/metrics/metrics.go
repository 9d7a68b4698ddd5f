package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API Metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tubeinsight_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "tubeinsight_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	// Upstream Metrics
	UpstreamRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tubeinsight_upstream_requests_total",
			Help: "Total number of calls to external services",
		},
		[]string{"service", "outcome"},
	)

	UpstreamRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "tubeinsight_upstream_request_duration_seconds",
			Help:    "External service call latency in seconds",
			Buckets: prometheus.ExponentialBuckets(0.1, 2, 10), // 100ms to ~51s
		},
		[]string{"service"},
	)

	UpstreamResponseBytes = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "tubeinsight_upstream_response_bytes",
			Help:    "Size of captions service responses in bytes",
			Buckets: prometheus.ExponentialBuckets(256, 4, 10), // 256B to 64MB
		},
	)

	// Transcript Metrics
	TranscriptExtractionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tubeinsight_transcript_extractions_total",
			Help: "Transcript normalization outcomes by strategy",
		},
		[]string{"strategy"},
	)

	TranscriptLengthChars = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "tubeinsight_transcript_length_chars",
			Help:    "Length of extracted transcripts in characters",
			Buckets: prometheus.ExponentialBuckets(32, 4, 9),
		},
	)

	// Language Detection Metrics
	LanguageDetectionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tubeinsight_language_detections_total",
			Help: "Language detections by resulting code",
		},
		[]string{"code", "degraded"},
	)

	// Video Info Metrics
	VideoInfoLookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tubeinsight_video_info_lookups_total",
			Help: "Video metadata lookups by source that answered",
		},
		[]string{"source"},
	)

	// Error Metrics
	ErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tubeinsight_errors_total",
			Help: "Total number of errors",
		},
		[]string{"component", "error_type"},
	)
)

// RecordHTTPRequest records an HTTP request
func RecordHTTPRequest(method, endpoint, status string, duration float64) {
	HTTPRequestsTotal.WithLabelValues(method, endpoint, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, endpoint).Observe(duration)
}

// RecordUpstreamRequest records a call to an external service
func RecordUpstreamRequest(service, outcome string, duration float64) {
	UpstreamRequestsTotal.WithLabelValues(service, outcome).Inc()
	UpstreamRequestDuration.WithLabelValues(service).Observe(duration)
}

// RecordUpstreamResponseSize records the size of a captions response
func RecordUpstreamResponseSize(bytes int) {
	UpstreamResponseBytes.Observe(float64(bytes))
}

// RecordTranscriptExtraction records a normalizer outcome
func RecordTranscriptExtraction(strategy string, chars int) {
	TranscriptExtractionsTotal.WithLabelValues(strategy).Inc()
	if chars > 0 {
		TranscriptLengthChars.Observe(float64(chars))
	}
}

// RecordLanguageDetection records a language detection
func RecordLanguageDetection(code string, degraded bool) {
	d := "false"
	if degraded {
		d = "true"
	}
	LanguageDetectionsTotal.WithLabelValues(code, d).Inc()
}

// RecordVideoInfoLookup records which metadata source answered
func RecordVideoInfoLookup(source string) {
	VideoInfoLookupsTotal.WithLabelValues(source).Inc()
}

// RecordError records an error
func RecordError(component, errorType string) {
	ErrorsTotal.WithLabelValues(component, errorType).Inc()
}
