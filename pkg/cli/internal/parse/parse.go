// Package parse provides string parsing utilities for CLI commands.
package parse

import (
	"fmt"
	"net/http"
	"strings"
)

// KeyValue parses a "key:value" or "key=value" string.
// If delimiters are provided, uses the first one found; otherwise defaults to ':'.
func KeyValue(s string, delimiters ...rune) (key, value string, ok bool) {
	if len(delimiters) == 0 {
		delimiters = []rune{':'}
	}

	for i, c := range s {
		for _, d := range delimiters {
			if c == d {
				return s[:i], s[i+1:], true
			}
		}
	}
	return "", "", false
}

// Headers parses curl-style "Name: value" flags into an http.Header.
// Repeated names accumulate values.
func Headers(values []string) (http.Header, error) {
	h := http.Header{}
	for _, v := range values {
		key, value, ok := KeyValue(v, ':')
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid header %q, expected \"Name: value\"", v)
		}
		h.Add(key, strings.TrimSpace(value))
	}
	return h, nil
}
