package interview

import (
	"regexp"
	"strings"
)

var fencedJSONPattern = regexp.MustCompile("(?s)```(?:json|JSON)\\s*(.*?)```")

// extractJSONCandidates returns candidate JSON payloads from a model response,
// in decreasing order of confidence: the content of a fenced block labeled as
// JSON, the first top-level brace span, then the raw text. Callers try each
// candidate in order and stop at the first one that unmarshals into a valid
// value.
func extractJSONCandidates(text string) []string {
	var candidates []string

	if match := fencedJSONPattern.FindStringSubmatch(text); match != nil {
		if inner := strings.TrimSpace(match[1]); inner != "" {
			candidates = append(candidates, inner)
		}
	}

	if span := firstBraceSpan(text); span != "" {
		candidates = append(candidates, span)
	}

	if trimmed := strings.TrimSpace(text); trimmed != "" {
		candidates = append(candidates, trimmed)
	}

	return candidates
}

// firstBraceSpan returns the first balanced top-level {...} span in text, or
// "" when none exists. Braces inside JSON string literals are skipped.
func firstBraceSpan(text string) string {
	start := strings.IndexByte(text, '{')
	if start < 0 {
		return ""
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		ch := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}
		switch ch {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return text[start : i+1]
			}
		}
	}
	return ""
}
