package matching

import (
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/ohler55/ojg/jp"
)

// MatchJSONPath evaluates JSONPath conditions against a JSON body.
// All conditions must hold. When one fails, the returned string names it.
// A body that is not valid JSON never matches.
func MatchJSONPath(conditions map[string]interface{}, body []byte) (bool, string) {
	if len(conditions) == 0 {
		return true, ""
	}

	var data interface{}
	if err := json.Unmarshal(body, &data); err != nil {
		return false, "body is not valid JSON"
	}

	for _, path := range sortedKeys(conditions) {
		expected := conditions[path]
		if !matchSingleJSONPath(path, expected, data) {
			return false, fmt.Sprintf("%s expected %s", path, describeExpected(expected))
		}
	}

	return true, ""
}

// matchSingleJSONPath evaluates a single JSONPath condition.
func matchSingleJSONPath(path string, expected interface{}, data interface{}) bool {
	expr, err := jp.ParseString(path)
	if err != nil {
		return false
	}

	results := expr.Get(data)

	if isExistenceCheck(expected) {
		return getExistsValue(expected) == (len(results) > 0)
	}

	// For wildcard paths that return multiple results, any may match
	for _, result := range results {
		if valuesEqual(result, expected) {
			return true
		}
	}

	return false
}

func describeExpected(expected interface{}) string {
	if isExistenceCheck(expected) {
		if getExistsValue(expected) {
			return "to exist"
		}
		return "to be absent"
	}
	b, err := json.Marshal(expected)
	if err != nil {
		return fmt.Sprintf("%v", expected)
	}
	return string(b)
}

// isExistenceCheck determines if the expected value is an existence check object.
// An existence check is a map with an "exists" key containing a boolean.
func isExistenceCheck(expected interface{}) bool {
	m, ok := expected.(map[string]interface{})
	if !ok {
		return false
	}
	_, hasExists := m["exists"]
	return hasExists && len(m) == 1
}

// getExistsValue extracts the boolean value from an existence check.
func getExistsValue(expected interface{}) bool {
	m, ok := expected.(map[string]interface{})
	if !ok {
		return false
	}
	exists, ok := m["exists"]
	if !ok {
		return false
	}
	b, ok := exists.(bool)
	return ok && b
}

// valuesEqual compares two values for equality, handling type coercion.
// Supports comparing:
//   - strings
//   - numbers (float64, int, etc.)
//   - booleans
//   - null
func valuesEqual(actual, expected interface{}) bool {
	// Handle nil/null
	if actual == nil && expected == nil {
		return true
	}
	if actual == nil || expected == nil {
		return false
	}

	// Try direct equality first
	if reflect.DeepEqual(actual, expected) {
		return true
	}

	// Handle numeric comparison (JSON numbers are float64)
	actualNum, actualIsNum := toFloat64(actual)
	expectedNum, expectedIsNum := toFloat64(expected)
	if actualIsNum && expectedIsNum {
		return actualNum == expectedNum
	}

	// Handle string comparison
	actualStr, actualIsStr := actual.(string)
	expectedStr, expectedIsStr := expected.(string)
	if actualIsStr && expectedIsStr {
		return actualStr == expectedStr
	}

	// Handle boolean comparison
	actualBool, actualIsBool := actual.(bool)
	expectedBool, expectedIsBool := expected.(bool)
	if actualIsBool && expectedIsBool {
		return actualBool == expectedBool
	}

	return false
}

// toFloat64 attempts to convert a value to float64.
func toFloat64(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case int32:
		return float64(n), true
	case int16:
		return float64(n), true
	case int8:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint64:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint8:
		return float64(n), true
	default:
		return 0, false
	}
}

// ValidateJSONPathExpression validates a JSONPath expression at load time.
// Returns an error if the expression is invalid.
func ValidateJSONPathExpression(path string) error {
	_, err := jp.ParseString(path)
	if err != nil {
		return fmt.Errorf("invalid JSONPath expression %q: %w", path, err)
	}
	return nil
}
