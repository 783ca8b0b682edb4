package mock

import (
	"fmt"
	"strings"
)

// NoMatchError reports a request that no registered response matched. It
// lists each candidate with the reason it was rejected.
type NoMatchError struct {
	Request    *Request
	Candidates []*Response
	Reasons    []string
}

func (e *NoMatchError) Error() string {
	var b strings.Builder
	b.WriteString("no registered mock matches the request\n\nRequest:\n- ")
	if e.Request != nil {
		b.WriteString(e.Request.String())
	}
	if len(e.Candidates) == 0 {
		b.WriteString("\n\nNo mocks are registered.")
		return b.String()
	}
	b.WriteString("\n\nAvailable mocks:")
	for i, c := range e.Candidates {
		fmt.Fprintf(&b, "\n- %s", c)
		if i < len(e.Reasons) && e.Reasons[i] != "" {
			fmt.Fprintf(&b, ": %s", e.Reasons[i])
		}
	}
	return b.String()
}

// Find looks req up in reg and turns a miss into a *NoMatchError. The
// registry's consumption rules apply unchanged.
func Find(reg Registry, req *Request) (*Response, error) {
	resp, found, reasons := reg.Find(req)
	if found {
		return resp, nil
	}
	return nil, &NoMatchError{
		Request:    req,
		Candidates: reg.Registered(),
		Reasons:    reasons,
	}
}
