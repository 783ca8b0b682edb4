package mock

import (
	"fmt"
	"regexp"

	"github.com/getmockd/mockreg/internal/matching"
)

// ValidationError represents a validation failure with context.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on %s: %s", e.Field, e.Message)
}

// tokenRegex matches an RFC 7230 token, the syntax of header names and methods.
var tokenRegex = regexp.MustCompile(`^[A-Za-z0-9!#$%&'*+\-.^_\x60|~]+$`)

// Validate checks if the Response is valid before it is registered.
func (r *Response) Validate() error {
	if r.URL == "" {
		return &ValidationError{Field: "url", Message: "url is required"}
	}
	if r.Method != "" && !tokenRegex.MatchString(r.Method) {
		return &ValidationError{Field: "method", Message: fmt.Sprintf("invalid method %q", r.Method)}
	}

	if r.Match != nil {
		for name := range r.Match.Headers {
			if !tokenRegex.MatchString(name) {
				return &ValidationError{Field: "match.headers", Message: fmt.Sprintf("invalid header name %q", name)}
			}
		}
	}
	if err := matching.Validate(r.Criteria()); err != nil {
		return &ValidationError{Field: "match", Message: err.Error()}
	}

	if s := r.Reply.Status; s != 0 && (s < 100 || s > 599) {
		return &ValidationError{Field: "response.status", Message: fmt.Sprintf("status %d out of range", s)}
	}
	for name := range r.Reply.Headers {
		if !tokenRegex.MatchString(name) {
			return &ValidationError{Field: "response.headers", Message: fmt.Sprintf("invalid header name %q", name)}
		}
	}
	return nil
}
