package matching

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// SplitURLPattern separates the query string from a URL pattern. The query
// parameters become additional required parameters.
func SplitURLPattern(pattern string) (string, url.Values) {
	base, rawQuery, found := strings.Cut(pattern, "?")
	if !found {
		return normalizeBase(base), nil
	}
	values, err := url.ParseQuery(rawQuery)
	if err != nil {
		return normalizeBase(base), nil
	}
	return normalizeBase(base), values
}

// normalizeBase gives bare hosts a root path so "http://example.com" and
// "http://example.com/" are the same pattern.
func normalizeBase(base string) string {
	scheme, rest, ok := strings.Cut(base, "://")
	if !ok {
		return base
	}
	if !strings.Contains(rest, "/") {
		rest += "/"
	}
	return strings.ToLower(scheme) + "://" + rest
}

func hasScheme(pattern string) bool {
	return strings.Contains(pattern, "://")
}

// urlTarget returns the part of u a pattern is compared with: the full URL
// without query when the pattern has a scheme, otherwise only the path.
func urlTarget(pattern string, u *url.URL) string {
	path := u.EscapedPath()
	if path == "" {
		path = "/"
	}
	if !hasScheme(pattern) {
		return path
	}
	return strings.ToLower(u.Scheme) + "://" + strings.ToLower(u.Host) + path
}

// MatchURL checks if u matches the URL pattern. The query string of the
// pattern is ignored here; see SplitURLPattern.
func MatchURL(pattern string, u *url.URL) bool {
	base, _ := SplitURLPattern(pattern)
	return MatchPath(base, urlTarget(base, u))
}

// MatchPath checks if the request path matches the pattern.
// Supports:
//   - Exact match: "/api/users" matches "/api/users"
//   - Wildcard: "/api/users/*" matches "/api/users/123"
//   - Globs: "/api/**/items" matches "/api/v1/users/items"
//   - Named params: "/api/users/{id}" matches "/api/users/123"
func MatchPath(pattern, path string) bool {
	if pattern == path {
		return true
	}

	if strings.Contains(pattern, "**") {
		ok, err := doublestar.Match(globParams(pattern), path)
		return err == nil && ok
	}

	if strings.Contains(pattern, "{") && strings.Contains(pattern, "}") {
		if matchNamedParams(pattern, path) {
			return true
		}
	}

	if strings.HasSuffix(pattern, "/*") {
		prefix := strings.TrimSuffix(pattern, "/*")
		if strings.HasPrefix(path, prefix+"/") || path == prefix {
			return true
		}
	}

	if strings.Contains(pattern, "*") {
		return matchWildcard(pattern, path)
	}

	return false
}

// globParams rewrites {name} segments to single-segment wildcards so they are
// not read as doublestar brace alternation.
func globParams(pattern string) string {
	parts := strings.Split(pattern, "/")
	for i, part := range parts {
		if isParam(part) {
			parts[i] = "*"
		}
	}
	return strings.Join(parts, "/")
}

func isParam(segment string) bool {
	return len(segment) > 2 && strings.HasPrefix(segment, "{") && strings.HasSuffix(segment, "}")
}

// matchNamedParams checks if path matches a pattern with named parameters.
// Example: "/users/{id}" matches "/users/123"
func matchNamedParams(pattern, path string) bool {
	patternParts := strings.Split(strings.Trim(pattern, "/"), "/")
	pathParts := strings.Split(strings.Trim(path, "/"), "/")

	if len(patternParts) != len(pathParts) {
		return false
	}

	for i, patternPart := range patternParts {
		if isParam(patternPart) {
			if pathParts[i] == "" {
				return false
			}
			continue
		}
		if patternPart != pathParts[i] {
			return false
		}
	}

	return true
}

// matchWildcard performs simple wildcard pattern matching.
// * matches any sequence of characters.
func matchWildcard(pattern, path string) bool {
	parts := strings.Split(pattern, "*")
	if len(parts) == 1 {
		return pattern == path
	}

	pos := 0
	for i, part := range parts {
		if part == "" {
			continue
		}

		// First part must be a prefix
		if i == 0 {
			if !strings.HasPrefix(path, part) {
				return false
			}
			pos = len(part)
			continue
		}

		idx := strings.Index(path[pos:], part)
		if idx == -1 {
			return false
		}
		pos += idx + len(part)
	}

	// A pattern that does not end in * must consume the whole path.
	last := parts[len(parts)-1]
	return last == "" || strings.HasSuffix(path, last)
}

// MatchURLPattern reports whether the regex pattern is found in the full
// request URL. Invalid patterns never match.
func MatchURLPattern(pattern string, u *url.URL) bool {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return false
	}
	return re.MatchString(u.String())
}

// MatchMethod checks if the request method matches.
func MatchMethod(expected, actual string) bool {
	return strings.EqualFold(expected, actual)
}
