package config

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed mock.schema.json
var mockFileSchema string

const schemaResource = "mock.schema.json"

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

// FieldError is a single schema violation.
type FieldError struct {
	Path    string // JSON pointer into the document, e.g. "/mocks/0/url"
	Message string
}

func (e FieldError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Message)
	}
	return e.Message
}

// ValidationError lists every schema violation found in a mock file.
type ValidationError struct {
	Source string
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		msgs = append(msgs, fe.Error())
	}
	return fmt.Sprintf("%s: invalid mock file:\n  %s", e.Source, strings.Join(msgs, "\n  "))
}

func loadSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		compiler.Draft = jsonschema.Draft2020
		if err := compiler.AddResource(schemaResource, strings.NewReader(mockFileSchema)); err != nil {
			schemaErr = fmt.Errorf("failed to add schema resource: %w", err)
			return
		}
		compiledSchema, schemaErr = compiler.Compile(schemaResource)
	})
	return compiledSchema, schemaErr
}

// validateDocument checks a decoded YAML document against the mock file
// schema.
func validateDocument(doc interface{}, source string) error {
	schema, err := loadSchema()
	if err != nil {
		return fmt.Errorf("schema compilation error: %w", err)
	}

	// Round-trip through JSON so YAML scalars use JSON types.
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("%s: document is not JSON compatible: %w", source, err)
	}
	var normalized interface{}
	if err := json.Unmarshal(data, &normalized); err != nil {
		return fmt.Errorf("%s: %w", source, err)
	}

	err = schema.Validate(normalized)
	if err == nil {
		return nil
	}
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return fmt.Errorf("%s: %w", source, err)
	}

	result := &ValidationError{Source: source}
	collectSchemaErrors(ve, result)
	sort.SliceStable(result.Errors, func(i, j int) bool {
		return result.Errors[i].Path < result.Errors[j].Path
	})
	return result
}

// collectSchemaErrors flattens the leaf causes of a schema validation error.
func collectSchemaErrors(err *jsonschema.ValidationError, result *ValidationError) {
	if len(err.Causes) == 0 {
		result.Errors = append(result.Errors, FieldError{
			Path:    err.InstanceLocation,
			Message: err.Message,
		})
		return
	}
	for _, cause := range err.Causes {
		collectSchemaErrors(cause, result)
	}
}
