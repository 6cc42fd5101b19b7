// Package payload reads fields off fetched GitHub API bodies (decoded
// generically as maps), re-decodes a body into a typed struct on request,
// defines the common event envelope and the list of event type names, and
// holds a minimal payload sanity check. The handlers in core/handlers read
// fields through String/Object/ID; no typed GitHub wire-struct library is
// used.
package payload

import (
	"fmt"

	"github.com/goccy/go-json"
)

// Decode re-marshals body (as decoded generically off the wire, e.g. from
// document.Document.Body) into target, a pointer to any struct with JSON
// tags. It is a convenience for callers that want typed field access
// rather than walking body by hand.
func Decode(body map[string]any, target any) error {
	raw, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("payload: re-marshaling body: %w", err)
	}
	if err := json.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("payload: decoding into %T: %w", target, err)
	}
	return nil
}

// String reads a string field off a raw body map, returning "" if absent
// or of the wrong type. Handlers use this for the handful of fields (URI
// template URLs, embedded sub-objects) that are more natural to read
// straight off the decoded JSON than through a typed struct.
func String(body map[string]any, key string) string {
	v, ok := body[key]
	if !ok {
		return ""
	}
	s, _ := v.(string)
	return s
}

// Object reads a nested object field off a raw body map, returning nil if
// absent or of the wrong type.
func Object(body map[string]any, key string) map[string]any {
	v, ok := body[key]
	if !ok {
		return nil
	}
	m, _ := v.(map[string]any)
	return m
}

// Number reads a numeric field off a raw body map as an int64, returning 0
// if absent. JSON numbers decode to float64 by default.
func Number(body map[string]any, key string) int64 {
	v, ok := body[key]
	if !ok {
		return 0
	}
	switch n := v.(type) {
	case float64:
		return int64(n)
	case int64:
		return n
	default:
		return 0
	}
}

// ID reads a field and formats it as a decimal string, the form every URN
// builder call in core/handlers expects for an identifier. It accepts
// either a JSON number or a JSON string (commit shas, node ids).
func ID(body map[string]any, key string) string {
	v, ok := body[key]
	if !ok {
		return ""
	}
	switch n := v.(type) {
	case float64:
		return fmt.Sprintf("%d", int64(n))
	case string:
		return n
	default:
		return ""
	}
}
