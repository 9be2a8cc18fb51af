// Package jsonutil provides shared utilities for tolerant JSON handling:
// decoding with error context and defaulting accessors over decoded maps.
// Backend responses vary between deployments, so readers never assume a
// field is present or correctly typed.
package jsonutil

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// UnmarshalWithContext unmarshals JSON data into v and wraps any error
// with the provided context message.
func UnmarshalWithContext(data []byte, v interface{}, context string) error {
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%s: %w", context, err)
	}
	return nil
}

// DecodeObject unmarshals JSON data into a map[string]any, wrapping errors
// with the provided context. The returned map is never nil on success.
func DecodeObject(data []byte, context string) (map[string]any, error) {
	var m map[string]any
	if err := UnmarshalWithContext(data, &m, context); err != nil {
		return nil, err
	}
	if m == nil {
		m = map[string]any{}
	}
	return m, nil
}

// GetString safely extracts a string value from a map.
// Returns the value if it's a string, otherwise returns empty string.
func GetString(m map[string]any, key string) string {
	if val, ok := m[key].(string); ok {
		return val
	}
	return ""
}

// GetStringOr safely extracts a string value from a map with a default
// value if the key doesn't exist or isn't a string.
func GetStringOr(m map[string]any, key string, defaultValue string) string {
	if val, ok := m[key].(string); ok {
		return val
	}
	return defaultValue
}

// GetFloat extracts a numeric value from a map as float64.
// Accepts float64 (the encoding/json default), integer types, json.Number,
// and numeric strings. Returns 0 when the key is missing or non-numeric.
func GetFloat(m map[string]any, key string) float64 {
	f, _ := toFloat(m[key])
	return f
}

// GetFloatOr extracts a numeric value with a default for missing or
// non-numeric entries.
func GetFloatOr(m map[string]any, key string, defaultValue float64) float64 {
	if f, ok := toFloat(m[key]); ok {
		return f
	}
	return defaultValue
}

// GetFloatFirst returns the value of the first key in keys that holds a
// number. Used where backend versions emit the same quantity under
// different names. The boolean reports whether any key matched.
func GetFloatFirst(m map[string]any, keys ...string) (float64, bool) {
	for _, k := range keys {
		if _, present := m[k]; !present {
			continue
		}
		if f, ok := toFloat(m[k]); ok {
			return f, true
		}
	}
	return 0, false
}

// GetInt extracts a numeric value from a map as int, truncating fractions.
// Returns 0 when the key is missing or non-numeric.
func GetInt(m map[string]any, key string) int {
	f, _ := toFloat(m[key])
	return int(f)
}

// GetIntOr extracts a numeric value as int with a default for missing or
// non-numeric entries.
func GetIntOr(m map[string]any, key string, defaultValue int) int {
	if f, ok := toFloat(m[key]); ok {
		return int(f)
	}
	return defaultValue
}

// GetBool extracts a boolean from a map. Numeric values follow the
// backend's 0/1 flag convention; anything else is false.
func GetBool(m map[string]any, key string) bool {
	if v, ok := m[key].(bool); ok {
		return v
	}
	if f, ok := toFloat(m[key]); ok {
		return f != 0
	}
	return false
}

// GetMap extracts a nested object from a map. Returns an empty (non-nil)
// map when the key is missing or not an object, so callers can chain
// accessors without nil checks.
func GetMap(m map[string]any, key string) map[string]any {
	if val, ok := m[key].(map[string]any); ok {
		return val
	}
	return map[string]any{}
}

// GetMaps extracts an array of objects from a map. Non-object elements
// are skipped; a missing or non-array value yields nil.
func GetMaps(m map[string]any, key string) []map[string]any {
	arr, ok := m[key].([]any)
	if !ok {
		return nil
	}
	out := make([]map[string]any, 0, len(arr))
	for _, el := range arr {
		if obj, ok := el.(map[string]any); ok {
			out = append(out, obj)
		}
	}
	return out
}

// GetFloats extracts an array of numbers from a map. Non-numeric elements
// are skipped; a missing or non-array value yields nil.
func GetFloats(m map[string]any, key string) []float64 {
	arr, ok := m[key].([]any)
	if !ok {
		return nil
	}
	out := make([]float64, 0, len(arr))
	for _, el := range arr {
		if f, ok := toFloat(el); ok {
			out = append(out, f)
		}
	}
	return out
}

// GetStrings extracts an array of strings from a map, coercing numeric
// and boolean elements with ToString. Missing or non-array values yield nil.
func GetStrings(m map[string]any, key string) []string {
	arr, ok := m[key].([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(arr))
	for _, el := range arr {
		if el == nil {
			continue
		}
		out = append(out, ToString(el))
	}
	return out
}

// Has reports whether the key is present with a non-nil value.
func Has(m map[string]any, key string) bool {
	v, ok := m[key]
	return ok && v != nil
}

// ToString converts an interface{} value to a string representation.
// Handles string, float64 (formatted as integer), bool, and other types.
func ToString(v interface{}) string {
	if v == nil {
		return ""
	}
	switch val := v.(type) {
	case string:
		return val
	case float64:
		// Format as integer for whole numbers, otherwise as float
		if val == float64(int64(val)) {
			return fmt.Sprintf("%.0f", val)
		}
		return fmt.Sprintf("%g", val)
	case bool:
		return fmt.Sprintf("%t", val)
	default:
		return fmt.Sprintf("%v", val)
	}
}

func toFloat(v any) (float64, bool) {
	switch val := v.(type) {
	case float64:
		return val, true
	case float32:
		return float64(val), true
	case int:
		return float64(val), true
	case int64:
		return float64(val), true
	case json.Number:
		f, err := val.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(val, 64)
		return f, err == nil
	}
	return 0, false
}
