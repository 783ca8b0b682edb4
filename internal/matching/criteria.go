package matching

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"sort"
	"strings"
)

// Input is the request snapshot criteria are evaluated against.
type Input struct {
	Method string
	URL    *url.URL
	Header http.Header
	Body   []byte
}

// Criteria lists the conditions a request must satisfy. Empty fields are
// not checked.
type Criteria struct {
	Method       string
	URL          string
	URLPattern   string
	Query        map[string]string
	Headers      map[string]string
	BodyEquals   string
	BodyContains string
	BodyPattern  string
	BodyJSONPath map[string]interface{}
	BodyXPath    map[string]string
	Expr         string
}

// FieldResult describes whether a single criteria field matched the request.
type FieldResult struct {
	Field    string      `json:"field"`
	Matched  bool        `json:"matched"`
	Expected interface{} `json:"expected,omitempty"`
	Actual   interface{} `json:"actual,omitempty"`
	Details  string      `json:"details,omitempty"`
}

// Match reports whether in satisfies every field of c. When it does not,
// the returned reason describes each mismatching field.
func Match(c *Criteria, in *Input) (bool, string) {
	fields := Evaluate(c, in)
	for i := range fields {
		if !fields[i].Matched {
			return false, Reason(fields)
		}
	}
	return true, ""
}

// Evaluate checks every specified field of c against in, in a fixed order:
// method, url, urlPattern, query, headers, bodyEquals, bodyContains,
// bodyPattern, bodyJsonPath, bodyXPath, expr.
func Evaluate(c *Criteria, in *Input) []FieldResult {
	if c == nil {
		return nil
	}
	u := in.URL
	if u == nil {
		u = &url.URL{}
	}

	var fields []FieldResult

	if c.Method != "" {
		fields = append(fields, FieldResult{
			Field:    "method",
			Matched:  MatchMethod(c.Method, in.Method),
			Expected: strings.ToUpper(c.Method),
			Actual:   in.Method,
		})
	}

	// Query parameters embedded in the URL are checked with the query field.
	query := c.Query
	if c.URL != "" {
		base, urlQuery := SplitURLPattern(c.URL)
		fields = append(fields, FieldResult{
			Field:    "url",
			Matched:  MatchURL(base, u),
			Expected: base,
			Actual:   urlTarget(base, u),
		})
		if len(urlQuery) > 0 {
			query = mergeQuery(urlQuery, c.Query)
		}
	}

	if c.URLPattern != "" {
		fields = append(fields, FieldResult{
			Field:    "urlPattern",
			Matched:  MatchURLPattern(c.URLPattern, u),
			Expected: c.URLPattern,
			Actual:   u.String(),
		})
	}

	if len(query) > 0 {
		params := u.Query()
		var missing []string
		for _, name := range sortedKeys(query) {
			if !MatchQueryParam(name, query[name], params) {
				missing = append(missing, fmt.Sprintf("%s=%s", name, query[name]))
			}
		}
		fields = append(fields, FieldResult{
			Field:    "query",
			Matched:  len(missing) == 0,
			Expected: query,
			Actual:   u.RawQuery,
			Details:  strings.Join(missing, ", "),
		})
	}

	if len(c.Headers) > 0 {
		var failed []string
		for _, name := range sortedKeys(c.Headers) {
			if !MatchHeaderPattern(name, c.Headers[name], in.Header) {
				actual := in.Header.Get(name)
				if actual == "" {
					actual = "(missing)"
				}
				failed = append(failed, fmt.Sprintf("%s: expected %q, got %q", name, c.Headers[name], actual))
			}
		}
		fields = append(fields, FieldResult{
			Field:    "headers",
			Matched:  len(failed) == 0,
			Expected: c.Headers,
			Details:  strings.Join(failed, ", "),
		})
	}

	if c.BodyEquals != "" {
		fields = append(fields, FieldResult{
			Field:    "bodyEquals",
			Matched:  MatchBodyEquals(in.Body, c.BodyEquals),
			Expected: truncate(c.BodyEquals, 80),
			Actual:   truncate(string(in.Body), 80),
		})
	}

	if c.BodyContains != "" {
		fields = append(fields, FieldResult{
			Field:    "bodyContains",
			Matched:  MatchBodyContains(in.Body, c.BodyContains),
			Expected: c.BodyContains,
			Actual:   truncate(string(in.Body), 80),
		})
	}

	if c.BodyPattern != "" {
		fields = append(fields, FieldResult{
			Field:    "bodyPattern",
			Matched:  MatchBodyPattern(c.BodyPattern, in.Body),
			Expected: c.BodyPattern,
			Actual:   truncate(string(in.Body), 80),
		})
	}

	if len(c.BodyJSONPath) > 0 {
		ok, failed := MatchJSONPath(c.BodyJSONPath, in.Body)
		fields = append(fields, FieldResult{
			Field:    "bodyJsonPath",
			Matched:  ok,
			Expected: c.BodyJSONPath,
			Details:  failed,
		})
	}

	if len(c.BodyXPath) > 0 {
		ok, failed := MatchXPath(c.BodyXPath, in.Body)
		fields = append(fields, FieldResult{
			Field:    "bodyXPath",
			Matched:  ok,
			Expected: c.BodyXPath,
			Details:  failed,
		})
	}

	if c.Expr != "" {
		ok, err := MatchExpr(c.Expr, in)
		result := FieldResult{
			Field:    "expr",
			Matched:  ok,
			Expected: c.Expr,
		}
		if err != nil {
			result.Details = err.Error()
		}
		fields = append(fields, result)
	}

	return fields
}

// Validate compiles every pattern in c and reports all invalid ones.
func Validate(c *Criteria) error {
	if c == nil {
		return nil
	}
	var errs []error
	if c.URLPattern != "" {
		if _, err := regexp.Compile(c.URLPattern); err != nil {
			errs = append(errs, fmt.Errorf("invalid urlPattern %q: %w", c.URLPattern, err))
		}
	}
	if c.BodyPattern != "" {
		if _, err := regexp.Compile(c.BodyPattern); err != nil {
			errs = append(errs, fmt.Errorf("invalid bodyPattern %q: %w", c.BodyPattern, err))
		}
	}
	for _, path := range sortedKeys(c.BodyJSONPath) {
		if err := ValidateJSONPathExpression(path); err != nil {
			errs = append(errs, err)
		}
	}
	for _, path := range sortedKeys(c.BodyXPath) {
		if err := ValidateXPath(path); err != nil {
			errs = append(errs, err)
		}
	}
	if c.Expr != "" {
		if err := ValidateExpr(c.Expr); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func mergeQuery(fromURL url.Values, explicit map[string]string) map[string]string {
	merged := make(map[string]string, len(fromURL)+len(explicit))
	for name := range fromURL {
		merged[name] = fromURL.Get(name)
	}
	for name, value := range explicit {
		merged[name] = value
	}
	return merged
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
