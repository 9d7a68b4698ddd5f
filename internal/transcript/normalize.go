package transcript

import (
	"encoding/json"
	"strings"
	"unicode/utf8"

	"github.com/therealutkarshpriyadarshi/tubeinsight/pkg/models"
)

const (
	// MinTranscriptChars is the trimmed length a transcript must exceed.
	// Shorter strings are usually labels or timestamps, not speech.
	MinTranscriptChars = 20
	// MinPlainTextChars is the length a non-JSON body must exceed
	MinPlainTextChars = 50
)

// Strategy names reported in TranscriptResult.Strategy
const (
	StrategyPlainText = "plain_text"
	StrategyArray     = "array"
	StrategyObject    = "object"
	StrategyNone      = "none"
)

// CandidateKeys are the object fields searched for a transcript, in order
var CandidateKeys = []string{"captions", "transcript", "text", "subtitles", "result"}

// Normalize turns a classified payload into a transcript. It is total:
// payloads no strategy can use yield an empty result with no language.
func Normalize(p Payload) models.TranscriptResult {
	switch p := p.(type) {
	case TextPayload:
		return fromText(p)
	case ArrayPayload:
		return fromArray(p)
	case ObjectPayload:
		return fromObject(p)
	default:
		return notFound()
	}
}

// NormalizeBody classifies and normalizes a raw response body
func NormalizeBody(body []byte) models.TranscriptResult {
	return Normalize(Classify(body))
}

func fromText(p TextPayload) models.TranscriptResult {
	if utf8.RuneCountInString(p.Body) <= MinPlainTextChars || !longEnough(p.Body) {
		return notFound()
	}
	return models.TranscriptResult{
		Transcript: p.Body,
		Language:   models.LanguageAuto,
		Strategy:   StrategyPlainText,
		Segments:   1,
	}
}

func fromArray(p ArrayPayload) models.TranscriptResult {
	segments := extractSegments(p.Items)
	joined := strings.Join(segments, " ")
	if !longEnough(joined) {
		return notFound()
	}
	return models.TranscriptResult{
		Transcript: joined,
		Language:   models.LanguageAuto,
		Strategy:   StrategyArray,
		Segments:   len(segments),
	}
}

func fromObject(p ObjectPayload) models.TranscriptResult {
	language := stringField(p.Fields, "language")
	if language == "" {
		language = models.LanguageAuto
	}

	for _, key := range CandidateKeys {
		raw, ok := p.Fields[key]
		if !ok {
			continue
		}

		var s string
		if json.Unmarshal(raw, &s) == nil {
			if longEnough(s) {
				return models.TranscriptResult{
					Transcript: s,
					Language:   language,
					Strategy:   StrategyObject + ":" + key,
					Segments:   1,
				}
			}
			continue
		}

		var items []json.RawMessage
		if json.Unmarshal(raw, &items) == nil {
			segments := extractSegments(items)
			joined := strings.Join(segments, " ")
			if longEnough(joined) {
				return models.TranscriptResult{
					Transcript: joined,
					Language:   language,
					Strategy:   StrategyObject + ":" + key,
					Segments:   len(segments),
				}
			}
		}
	}

	return notFound()
}

// extractSegments pulls one trimmed fragment out of every element that has
// one: the element itself when it is a string, otherwise its text or
// content field. Empty fragments are dropped.
func extractSegments(items []json.RawMessage) []string {
	segments := make([]string, 0, len(items))
	for _, item := range items {
		var text string

		var s string
		var obj map[string]json.RawMessage
		switch {
		case json.Unmarshal(item, &s) == nil:
			text = s
		case json.Unmarshal(item, &obj) == nil && obj != nil:
			text = strings.TrimSpace(stringField(obj, "text"))
			if text == "" {
				text = stringField(obj, "content")
			}
		default:
			continue
		}

		if text = strings.TrimSpace(text); text != "" {
			segments = append(segments, text)
		}
	}
	return segments
}

// stringField returns fields[key] when it is a JSON string
func stringField(fields map[string]json.RawMessage, key string) string {
	raw, ok := fields[key]
	if !ok {
		return ""
	}
	var s string
	if json.Unmarshal(raw, &s) != nil {
		return ""
	}
	return s
}

func longEnough(s string) bool {
	return utf8.RuneCountInString(strings.TrimSpace(s)) > MinTranscriptChars
}

func notFound() models.TranscriptResult {
	return models.TranscriptResult{Strategy: StrategyNone}
}
