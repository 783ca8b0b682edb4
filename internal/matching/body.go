package matching

import (
	"bytes"
	"regexp"
	"unicode/utf8"
)

// MatchBodyContains checks if the body contains the substring.
func MatchBodyContains(body []byte, contains string) bool {
	if contains == "" {
		return true
	}
	return bytes.Contains(body, []byte(contains))
}

// MatchBodyEquals checks if the body exactly equals the expected value.
func MatchBodyEquals(body []byte, expected string) bool {
	if expected == "" {
		return true
	}
	return string(body) == expected
}

// MatchBodyPattern checks if the request body matches a regex pattern.
// Uses Go's regexp package with RE2 syntax. Invalid patterns never match.
func MatchBodyPattern(pattern string, body []byte) bool {
	if pattern == "" {
		return true
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return false
	}
	return re.Match(body)
}

// truncate shortens s to at most maxLen bytes without splitting a rune.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	cut := maxLen
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}
