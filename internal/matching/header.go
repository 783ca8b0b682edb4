package matching

import (
	"net/http"
	"strings"
)

// MatchHeaderPattern checks if a header matches a pattern.
// Header names are case-insensitive. Supports exact values and simple
// prefix (value*), suffix (*value) and contains (*value*) patterns.
func MatchHeaderPattern(name, pattern string, headers http.Header) bool {
	actualValue := headers.Get(name)
	if actualValue == "" {
		return false
	}

	if !strings.Contains(pattern, "*") {
		return actualValue == pattern
	}

	// Prefix match (pattern*)
	if strings.HasSuffix(pattern, "*") && !strings.HasPrefix(pattern, "*") {
		return strings.HasPrefix(actualValue, strings.TrimSuffix(pattern, "*"))
	}

	// Suffix match (*pattern)
	if strings.HasPrefix(pattern, "*") && !strings.HasSuffix(pattern, "*") {
		return strings.HasSuffix(actualValue, strings.TrimPrefix(pattern, "*"))
	}

	// Contains match (*pattern*)
	if strings.HasPrefix(pattern, "*") && strings.HasSuffix(pattern, "*") {
		return strings.Contains(actualValue, strings.Trim(pattern, "*"))
	}

	return false
}
