// Package extract is the parse-with-fallback boundary between
// free-form AI text and typed data. Generative output is unreliable
// input: it may be wrapped in markdown fences, truncated, or not JSON
// at all. Parse makes the failure explicit; Extract maps it to a
// caller-supplied fallback so downstream code never sees a missing
// value.
package extract

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Parse decodes raw assistant text into T after stripping any markdown
// code-fence wrapper. Returns the zero value and an error when the
// text is not valid JSON for T.
func Parse[T any](raw string) (T, error) {
	var out T
	cleaned := CleanJSONBlock(raw)
	if cleaned == "" {
		return out, fmt.Errorf("empty response")
	}
	if err := json.Unmarshal([]byte(cleaned), &out); err != nil {
		return out, fmt.Errorf("parse response: %w", err)
	}
	return out, nil
}

// Extract decodes raw text into the shape of fallback, returning
// fallback unchanged on any parse failure. It never errors; this is
// the sole error boundary between AI text and the typed pipeline.
func Extract[T any](raw string, fallback T) T {
	parsed, err := Parse[T](raw)
	if err != nil {
		return fallback
	}
	return parsed
}

// CleanJSONBlock removes markdown code-fence wrappers from a response.
// LLMs often wrap JSON in ```json blocks even when instructed not to.
func CleanJSONBlock(text string) string {
	text = strings.TrimSpace(text)

	if strings.HasPrefix(text, "```json") {
		text = strings.TrimPrefix(text, "```json")
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
		return strings.TrimSpace(text)
	}

	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		// Skip a language identifier on the first line.
		if idx := strings.Index(text, "\n"); idx >= 0 {
			firstLine := text[:idx]
			if len(firstLine) < 20 && !strings.Contains(firstLine, " ") && !strings.Contains(firstLine, "{") {
				text = text[idx+1:]
			}
		}
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
		return strings.TrimSpace(text)
	}

	return text
}
