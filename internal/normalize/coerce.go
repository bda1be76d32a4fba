package normalize

import (
	"strconv"
	"strings"
)

// asMap returns v as a JSON object, or nil if it is any other shape.
func asMap(v any) map[string]any {
	m, _ := v.(map[string]any)
	return m
}

// asSlice returns v as a JSON array, or nil if it is any other shape.
func asSlice(v any) []any {
	s, _ := v.([]any)
	return s
}

// asString coerces a scalar JSON value to a string. Numbers are formatted
// without trailing zeros (a GPA of 3.8 decoded as float64 becomes "3.8").
// Objects, arrays, booleans and null all coerce to "".
func asString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return ""
	}
}

// stringField returns the first non-empty string value found under the given
// keys, or "" if none is present.
func stringField(m map[string]any, keys ...string) string {
	for _, key := range keys {
		if v, ok := m[key]; ok {
			if s := strings.TrimSpace(asString(v)); s != "" {
				return s
			}
		}
	}
	return ""
}

// stringList coerces a JSON array to a list of non-empty trimmed strings.
// Any other shape yields nil.
func stringList(v any) []string {
	items := asSlice(v)
	if items == nil {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s := strings.TrimSpace(asString(item)); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// intField returns the integer value under key, or fallback if the value is
// absent or not a number. JSON numbers decode as float64 and are truncated.
func intField(m map[string]any, key string, fallback int) int {
	if v, ok := m[key]; ok {
		if f, ok := v.(float64); ok {
			return int(f)
		}
	}
	return fallback
}

// oneOf returns value if it is a member of allowed, otherwise fallback.
func oneOf(value string, allowed []string, fallback string) string {
	for _, a := range allowed {
		if value == a {
			return value
		}
	}
	return fallback
}

// capitalize upper-cases the first byte of s. Good enough for turning a
// socials map key like "linkedin" into a label.
func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
