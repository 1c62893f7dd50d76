// Package schema provides defaulting helpers over loosely-typed decoded
// values. The generator upstream is free text and cannot be trusted to
// return well-shaped records, so every field read through this package
// falls back to a fixed default instead of failing. Nothing here returns
// an error.
package schema

import "strings"

// Obj returns v as an object, or an empty one when v is not an object.
func Obj(v any) map[string]any {
	m, ok := v.(map[string]any)
	if !ok {
		return map[string]any{}
	}
	return m
}

// Str returns the string at key, or def when the field is absent, empty,
// or not a string.
func Str(m map[string]any, key, def string) string {
	s, ok := m[key].(string)
	if !ok || strings.TrimSpace(s) == "" {
		return def
	}
	return s
}

// Choice returns the string at key normalized to lower case when it is one
// of allowed, or def otherwise.
func Choice(m map[string]any, key string, allowed []string, def string) string {
	s := strings.ToLower(strings.TrimSpace(Str(m, key, def)))
	for _, a := range allowed {
		if s == a {
			return a
		}
	}
	return def
}

// List returns the array at key, or nil when the field is absent or not
// an array.
func List(m map[string]any, key string) []any {
	arr, ok := m[key].([]any)
	if !ok {
		return nil
	}
	return arr
}

// Tags coerces v into a tag list. A non-array value, an empty array, or an
// array with no usable string entries yields [fallback]. When max is
// positive the list is truncated to the first max entries.
func Tags(v any, fallback string, max int) []string {
	arr, ok := v.([]any)
	if !ok {
		return []string{fallback}
	}

	var tags []string
	for _, item := range arr {
		s, ok := item.(string)
		if !ok || strings.TrimSpace(s) == "" {
			continue
		}
		tags = append(tags, strings.TrimSpace(s))
	}

	if len(tags) == 0 {
		return []string{fallback}
	}
	if max > 0 && len(tags) > max {
		tags = tags[:max]
	}
	return tags
}
