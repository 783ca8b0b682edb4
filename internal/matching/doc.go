// Package matching evaluates HTTP request criteria for mock responses.
//
// Each registered response carries a Criteria value. Evaluate checks every
// specified field against a request snapshot without short-circuiting and
// reports one FieldResult per field, so that a failed match can explain all
// of its mismatches at once:
//
//   - Method: case-insensitive comparison
//   - URL: exact, trailing "/*" and inline "*" wildcards, "**" globs,
//     and {name} segment parameters, against the path or the full URL
//   - URLPattern: RE2 regular expression searched in the full URL
//   - Query and Headers: required key/value pairs (headers accept "*" patterns)
//   - Body: equals, contains, regex, JSONPath conditions and XML paths
//   - Expr: a boolean expr-lang expression over the request
//
// Invalid patterns never panic; they are reported as a mismatch. Validate
// rejects them before a response is registered.
package matching
