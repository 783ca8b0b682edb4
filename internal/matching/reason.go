package matching

import (
	"fmt"
	"strings"
)

// Reason creates a human-readable explanation of why a request did not
// satisfy the criteria. Every mismatching field is listed, in field order.
func Reason(fields []FieldResult) string {
	var parts []string
	for i := range fields {
		if !fields[i].Matched {
			parts = append(parts, formatMismatch(&fields[i]))
		}
	}
	if len(parts) == 0 {
		return ""
	}
	return strings.Join(parts, "; ")
}

func formatMismatch(f *FieldResult) string {
	switch f.Field {
	case "method":
		return fmt.Sprintf("method mismatch: expected %v, got %v", f.Expected, f.Actual)
	case "url":
		return fmt.Sprintf("URL mismatch: expected %v, got %v", f.Expected, f.Actual)
	case "urlPattern":
		return fmt.Sprintf("URL %v does not match pattern %q", f.Actual, f.Expected)
	case "query":
		return fmt.Sprintf("query mismatch: missing %s", f.Details)
	case "headers":
		return "header mismatch: " + f.Details
	case "bodyEquals":
		return fmt.Sprintf("body mismatch: expected %q, got %q", f.Expected, f.Actual)
	case "bodyContains":
		return fmt.Sprintf("body does not contain %q", f.Expected)
	case "bodyPattern":
		return fmt.Sprintf("body does not match pattern %q", f.Expected)
	case "bodyJsonPath":
		return "body JSONPath mismatch: " + f.Details
	case "bodyXPath":
		return "body XML mismatch: " + f.Details
	case "expr":
		if f.Details != "" {
			return fmt.Sprintf("expression %q failed: %s", f.Expected, f.Details)
		}
		return fmt.Sprintf("expression %q is false", f.Expected)
	default:
		return f.Field + " did not match"
	}
}
