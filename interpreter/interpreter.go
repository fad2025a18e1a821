package interpreter

import (
	"encoding/json"
	"errors"
	"strings"
)

var ErrNoJSONObject = errors.New("no JSON object in reply")

// FreeText returns a chat reply as user-facing content.
func FreeText(raw string) string {
	return strings.TrimSpace(raw)
}

// ExtractJSON isolates the JSON object in a model reply that may be wrapped
// in markdown fences or surrounded by prose.
func ExtractJSON(raw string) (string, error) {
	cleaned := strings.ReplaceAll(raw, "```json", "")
	cleaned = strings.ReplaceAll(cleaned, "```JSON", "")
	cleaned = strings.ReplaceAll(cleaned, "```", "")

	start := strings.Index(cleaned, "{")
	end := strings.LastIndex(cleaned, "}")
	if start < 0 || end < start {
		return "", ErrNoJSONObject
	}

	return cleaned[start : end+1], nil
}

// Result is a structured reply. Parsed is false when Value is the fallback.
type Result[T any] struct {
	Value  T
	Parsed bool
	Err    error
}

// Interpret decodes raw into T. When the reply holds no valid JSON object the
// fallback is returned instead of an error. Sanitize, if set, runs on every
// result so partially populated replies are completed from the fallback.
func Interpret[T any](raw string, fallback func() T, sanitize func(*T)) Result[T] {
	result := Result[T]{Parsed: true}

	body, err := ExtractJSON(raw)
	if err == nil {
		err = json.Unmarshal([]byte(body), &result.Value)
	}

	if err != nil {
		result = Result[T]{Value: fallback(), Parsed: false, Err: err}
	}

	if sanitize != nil {
		sanitize(&result.Value)
	}
	return result
}

// Object interprets a reply as a generic JSON object.
func Object(raw string) Result[map[string]any] {
	return Interpret(raw, func() map[string]any { return map[string]any{} }, nil)
}
