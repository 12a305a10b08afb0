package llmjson

// Recovery parsing for generative replies: the service returns free-form text
// that usually, but not always, contains a JSON object, often wrapped in
// markdown fences or prose.

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNoObject means the reply contains no opening brace at all.
	ErrNoObject = errors.New("llmjson: no JSON object found")
	// ErrUnbalanced means an opening brace was found but never closed.
	ErrUnbalanced = errors.New("llmjson: unbalanced braces")
)

// StripFences removes markdown code fences from model output.
func StripFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// ExtractObject returns the first balanced {...} span in s, ignoring braces
// inside JSON string literals. Trailing garbage after the span is discarded.
func ExtractObject(s string) (string, error) {
	s = StripFences(s)
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return "", ErrNoObject
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1], nil
			}
		}
	}
	return "", ErrUnbalanced
}

// Unmarshal extracts the first balanced object span from raw and decodes it
// into out.
func Unmarshal(raw string, out any) error {
	span, err := ExtractObject(raw)
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(span), out); err != nil {
		return fmt.Errorf("llmjson: decode extracted object: %w", err)
	}
	return nil
}
