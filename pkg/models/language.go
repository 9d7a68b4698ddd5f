package models

// LanguageDetection is the result of classifying a text snippet.
// Code is the project language tag, Raw the detector's own tag.
type LanguageDetection struct {
	Code       string  `json:"code"`
	Confidence float64 `json:"confidence"`
	Raw        string  `json:"raw,omitempty"`
	Reason     string  `json:"reason,omitempty"`
}

// DetectLanguageRequest is the body accepted by the detect-language endpoint
type DetectLanguageRequest struct {
	Text string `json:"text"`
}

// DefaultLanguageCode is reported whenever detection is not possible
const DefaultLanguageCode = "en"

// Degraded-detection reasons
const (
	DetectionReasonTooShort    = "text too short"
	DetectionReasonNoDetection = "no detection"
	DetectionReasonError       = "error"
)

// SupportedLanguages lists the project language codes
var SupportedLanguages = []string{
	"en", "es", "fr", "de", "it", "pt", "nl", "pl", "ru",
	"ja", "ko", "zh", "ar", "hi", "tr", "sv",
	"no", "da", "fi", "gu",
}

// LanguageAliases maps detector-specific codes onto project codes
var LanguageAliases = map[string]string{
	"zh-cn": "zh",
	"zh-tw": "zh",
	"nb":    "no",
	"nn":    "no",
}

// IsSupportedLanguage reports whether code is a project language code
func IsSupportedLanguage(code string) bool {
	for _, c := range SupportedLanguages {
		if c == code {
			return true
		}
	}
	return false
}

// NormalizeLanguageCode maps a detector code onto its project code.
// Codes without an alias are returned unchanged.
func NormalizeLanguageCode(raw string) string {
	if code, ok := LanguageAliases[raw]; ok {
		return code
	}
	return raw
}
