// Package jsonblock extracts and parses the first top-level JSON object
// from a chat-completions response body, tolerating markdown code
// fences and leading/trailing prose — the shared parsing step for both
// the path selector (C3) and field distiller (C5), per spec.md §4.3/§4.5.
package jsonblock

import (
	"encoding/json"
	"errors"
	"strings"
)

// ErrNoObject is returned when content contains no balanced `{...}` block.
var ErrNoObject = errors.New("jsonblock: no JSON object found in response")

// ErrNoArray is returned when content contains no balanced `[...]` block.
var ErrNoArray = errors.New("jsonblock: no JSON array found in response")

// Extract returns the first balanced `{...}` substring of content,
// stripping a surrounding ```json ... ``` fence if present.
func Extract(content string) (string, error) {
	return extractBalanced(content, '{', '}', ErrNoObject)
}

// ExtractArray returns the first balanced `[...]` substring of content,
// stripping a surrounding ```json ... ``` fence if present. Some
// providers answer C3's prompt with a bare array of paths instead of
// the `{"selected_paths": [...]}` object (spec.md §8's legacy-format
// boundary case); this is the fallback scan for that shape.
func ExtractArray(content string) (string, error) {
	return extractBalanced(content, '[', ']', ErrNoArray)
}

func extractBalanced(content string, open, close byte, notFound error) (string, error) {
	content = stripCodeFence(content)

	start := strings.IndexByte(content, open)
	if start < 0 {
		return "", notFound
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(content); i++ {
		c := content[i]
		switch {
		case escaped:
			escaped = false
		case c == '\\' && inString:
			escaped = true
		case c == '"':
			inString = !inString
		case inString:
			// inside a string literal, brackets don't count
		case c == open:
			depth++
		case c == close:
			depth--
			if depth == 0 {
				return content[start : i+1], nil
			}
		}
	}
	return "", notFound
}

// ParseObject extracts the first JSON object in content and unmarshals
// it into a map.
func ParseObject(content string) (map[string]any, error) {
	block, err := Extract(content)
	if err != nil {
		return nil, err
	}
	var obj map[string]any
	if err := json.Unmarshal([]byte(block), &obj); err != nil {
		return nil, err
	}
	return obj, nil
}

// ParseArray extracts the first JSON array in content and unmarshals it
// into a slice.
func ParseArray(content string) ([]any, error) {
	block, err := ExtractArray(content)
	if err != nil {
		return nil, err
	}
	var arr []any
	if err := json.Unmarshal([]byte(block), &arr); err != nil {
		return nil, err
	}
	return arr, nil
}

// Preview returns up to n runes of content, for embedding a raw-response
// prefix in parse-failure error messages without dumping the whole body.
func Preview(content string, n int) string {
	r := []rune(strings.TrimSpace(content))
	if len(r) <= n {
		return string(r)
	}
	return string(r[:n]) + "…"
}

func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		firstLine := strings.TrimSpace(s[:nl])
		if firstLine == "" || strings.EqualFold(firstLine, "json") {
			s = s[nl+1:]
		}
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return s
}
