package models

import (
	"encoding/json"
	"testing"
)

func TestNormalizeLanguageCode(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"zh-cn", "zh"},
		{"zh-tw", "zh"},
		{"nb", "no"},
		{"fr", "fr"},
		{"xx", "xx"},
	}

	for _, tt := range tests {
		if got := NormalizeLanguageCode(tt.raw); got != tt.want {
			t.Errorf("NormalizeLanguageCode(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

func TestAliasesTargetSupportedLanguages(t *testing.T) {
	for raw, code := range LanguageAliases {
		if !IsSupportedLanguage(code) {
			t.Errorf("Alias %s maps to unsupported code %s", raw, code)
		}
	}
}

func TestLanguageDetectionJSON(t *testing.T) {
	data, err := json.Marshal(LanguageDetection{Code: "en", Reason: DetectionReasonTooShort})
	if err != nil {
		t.Fatalf("Failed to marshal: %v", err)
	}

	var result map[string]interface{}
	if err := json.Unmarshal(data, &result); err != nil {
		t.Fatalf("Failed to unmarshal: %v", err)
	}

	// Confidence is always present, raw only when detected
	if result["confidence"] != 0.0 {
		t.Errorf("Expected confidence 0, got %v", result["confidence"])
	}
	if _, ok := result["raw"]; ok {
		t.Error("Expected raw to be omitted")
	}
}

func TestTranscriptResultFound(t *testing.T) {
	if (TranscriptResult{}).Found() {
		t.Error("Empty result should not be found")
	}
	if !(TranscriptResult{Transcript: "hello", Language: LanguageAuto}).Found() {
		t.Error("Non-empty result should be found")
	}
}
