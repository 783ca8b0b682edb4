package matching

import (
	"net/url"
)

// MatchQueryParam checks if a specific query parameter matches. Any of the
// parameter's values may satisfy the expectation.
func MatchQueryParam(name, expectedValue string, params url.Values) bool {
	for _, v := range params[name] {
		if v == expectedValue {
			return true
		}
	}
	return false
}
