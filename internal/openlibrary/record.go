package openlibrary

import (
	"encoding/json"
	"math"
	"sort"
)

// Record is one loosely typed document. Fields the service did not send are
// absent, never zero-valued. Numbers are json.Number.
type Record map[string]any

// StringValue returns the field as a string.
func (r Record) StringValue(key string) (string, bool) {
	s, ok := r[key].(string)
	return s, ok
}

// IntValue returns the field as an integer.
func (r Record) IntValue(key string) (int64, bool) {
	switch v := r[key].(type) {
	case json.Number:
		n, err := v.Int64()
		return n, err == nil
	case float64:
		if v == math.Trunc(v) {
			return int64(v), true
		}
	}
	return 0, false
}

// BoolValue returns the field as a boolean.
func (r Record) BoolValue(key string) (bool, bool) {
	b, ok := r[key].(bool)
	return b, ok
}

// StringList returns the string elements of a list field. Non-string
// elements are skipped.
func (r Record) StringList(key string) []string {
	list, ok := r[key].([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(list))
	for _, item := range list {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// Text returns a text field that may be either a plain string or a typed
// value such as {"type": "/type/text", "value": "..."}.
func (r Record) Text(key string) (string, bool) {
	switch v := r[key].(type) {
	case string:
		return v, true
	case map[string]any:
		s, ok := v["value"].(string)
		return s, ok
	}
	return "", false
}

// Nested returns a nested object field.
func (r Record) Nested(key string) (Record, bool) {
	m, ok := r[key].(map[string]any)
	return m, ok
}

// Keys returns the field names in sorted order.
func (r Record) Keys() []string {
	keys := make([]string, 0, len(r))
	for k := range r {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
