package transcript

import (
	"bytes"
	"encoding/json"
	"sort"
)

// Payload is one of the response shapes the captions service is known to
// produce. Classify maps raw bytes onto exactly one of them.
type Payload interface {
	shape() string
}

// TextPayload is a body that is not JSON at all
type TextPayload struct {
	Body string
}

// ArrayPayload is a top-level JSON array
type ArrayPayload struct {
	Items []json.RawMessage
}

// ObjectPayload is a top-level JSON object
type ObjectPayload struct {
	Fields map[string]json.RawMessage
}

// ScalarPayload is valid JSON that is neither an array nor an object
type ScalarPayload struct {
	Value json.RawMessage
}

func (TextPayload) shape() string   { return "text" }
func (ArrayPayload) shape() string  { return "array" }
func (ObjectPayload) shape() string { return "object" }
func (ScalarPayload) shape() string { return "scalar" }

// Keys returns the object's field names in sorted order
func (p ObjectPayload) Keys() []string {
	keys := make([]string, 0, len(p.Fields))
	for k := range p.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Classify decides which shape body has. It never fails. A leading
// byte order mark is ignored.
func Classify(body []byte) Payload {
	trimmed := bytes.TrimSpace(bytes.TrimPrefix(body, utf8BOM))
	if !json.Valid(trimmed) {
		return TextPayload{Body: string(body)}
	}

	switch trimmed[0] {
	case '[':
		var items []json.RawMessage
		if err := json.Unmarshal(trimmed, &items); err == nil {
			return ArrayPayload{Items: items}
		}
	case '{':
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(trimmed, &fields); err == nil {
			return ObjectPayload{Fields: fields}
		}
	}
	return ScalarPayload{Value: json.RawMessage(trimmed)}
}
