package language

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/therealutkarshpriyadarshi/tubeinsight/internal/logging"
	"github.com/therealutkarshpriyadarshi/tubeinsight/internal/metrics"
	"github.com/therealutkarshpriyadarshi/tubeinsight/pkg/models"
)

// MinTextChars is the shortest trimmed text handed to the detector
const MinTextChars = 2

// DetectionFault explains why a text could not be classified.
// Reason is the value reported to clients.
type DetectionFault struct {
	Reason string
	Err    error
}

func (f *DetectionFault) Error() string {
	if f.Err != nil {
		return fmt.Sprintf("language detection failed: %s: %v", f.Reason, f.Err)
	}
	return "language detection failed: " + f.Reason
}

func (f *DetectionFault) Unwrap() error {
	return f.Err
}

// Service classifies text and maps detector codes onto project codes
type Service struct {
	detector Detector
	logger   *logging.Logger
}

// NewService creates a language detection service
func NewService(detector Detector, logger *logging.Logger) *Service {
	return &Service{
		detector: detector,
		logger:   logger.WithComponent("language"),
	}
}

// Detect classifies text. Texts shorter than MinTextChars, detector errors,
// empty rankings and detector panics are returned as *DetectionFault.
func (s *Service) Detect(text string) (detection models.LanguageDetection, err error) {
	text = strings.TrimSpace(text)
	if utf8.RuneCountInString(text) < MinTextChars {
		return models.LanguageDetection{}, &DetectionFault{Reason: models.DetectionReasonTooShort}
	}

	candidates, err := s.rank(text)
	if err != nil {
		var fault *DetectionFault
		if errors.As(err, &fault) {
			return models.LanguageDetection{}, fault
		}
		if errors.Is(err, ErrNoDetection) {
			return models.LanguageDetection{}, &DetectionFault{Reason: models.DetectionReasonNoDetection, Err: err}
		}
		return models.LanguageDetection{}, &DetectionFault{Reason: err.Error(), Err: err}
	}
	if len(candidates) == 0 {
		return models.LanguageDetection{}, &DetectionFault{Reason: models.DetectionReasonNoDetection}
	}

	best := candidates[0]
	detection = models.LanguageDetection{
		Code:       models.NormalizeLanguageCode(best.Lang),
		Confidence: math.Round(best.Prob*10000) / 10000,
		Raw:        best.Lang,
	}

	s.logger.LogDetection(text, detection.Raw, detection.Code, detection.Confidence)
	return detection, nil
}

// DetectOrDefault is Detect with every fault converted to the degraded
// default: English with zero confidence and the fault's reason.
func (s *Service) DetectOrDefault(text string) models.LanguageDetection {
	detection, err := s.Detect(text)
	if err == nil {
		metrics.RecordLanguageDetection(detection.Code, false)
		return detection
	}

	reason := models.DetectionReasonError
	var fault *DetectionFault
	if errors.As(err, &fault) {
		reason = fault.Reason
	}
	if fault == nil || fault.Reason != models.DetectionReasonTooShort {
		s.logger.WarnWithErr("Language detection degraded", err)
	}

	metrics.RecordLanguageDetection(models.DefaultLanguageCode, true)
	return models.LanguageDetection{
		Code:       models.DefaultLanguageCode,
		Confidence: 0,
		Reason:     reason,
	}
}

// rank calls the detector, turning a panic into a fault
func (s *Service) rank(text string) (candidates []Candidate, err error) {
	defer func() {
		if r := recover(); r != nil {
			metrics.RecordError("language", "panic")
			err = &DetectionFault{Reason: models.DetectionReasonError, Err: fmt.Errorf("detector panic: %v", r)}
		}
	}()
	return s.detector.DetectLangs(text)
}
