package classifier

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

var fencedBlockPattern = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)\\s*```")

// extractPayload coerces a model response into the expected structured
// payload. Models wrap JSON in prose or code fences often enough that a
// single parse attempt is not good enough, so this walks a fixed ladder:
// direct parse, then the first fenced code block, then the first balanced
// brace span. Exhausting the ladder is an error; callers absorb it into a
// failed (empty) classification result.
func extractPayload(raw string, target interface{}) error {
	cleaned := strings.TrimSpace(raw)
	if cleaned == "" {
		return fmt.Errorf("empty response from model")
	}

	if err := json.Unmarshal([]byte(cleaned), target); err == nil {
		return nil
	}

	if match := fencedBlockPattern.FindStringSubmatch(cleaned); match != nil {
		if err := json.Unmarshal([]byte(match[1]), target); err == nil {
			return nil
		}
	}

	if span := firstBalancedSpan(cleaned); span != "" {
		if err := json.Unmarshal([]byte(span), target); err == nil {
			return nil
		}
	}

	return fmt.Errorf("no parseable JSON object in model response")
}

// firstBalancedSpan returns the first {...} span whose braces balance,
// tracking string literals so that braces inside quoted text don't count.
func firstBalancedSpan(s string) string {
	start := strings.Index(s, "{")
	if start < 0 {
		return ""
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if escaped {
			escaped = false
			continue
		}
		switch c {
		case '\\':
			if inString {
				escaped = true
			}
		case '"':
			inString = !inString
		case '{':
			if !inString {
				depth++
			}
		case '}':
			if !inString {
				depth--
				if depth == 0 {
					return s[start : i+1]
				}
			}
		}
	}
	return ""
}
