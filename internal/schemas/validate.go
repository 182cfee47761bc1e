// Package schemas checks backend payloads against the JSON Schemas embedded in
// this package before they are decoded.
package schemas

import (
	"embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

// Schema names.
const (
	Candidate     = "candidate"
	Job           = "job"
	Analysis      = "analysis"
	LoginResponse = "login_response"
)

//go:embed *.schema.json
var files embed.FS

var (
	mu       sync.Mutex
	compiled = map[string]*gojsonschema.Schema{}
)

// ValidationError represents a schema validation error with field paths
type ValidationError struct {
	Schema string
	Errors []FieldError
}

// FieldError represents a single validation error at a specific field
type FieldError struct {
	Field   string
	Message string
}

// SchemaLoadError represents errors loading or parsing the schema itself
type SchemaLoadError struct {
	Path    string
	Message string
	Cause   error
}

func (e *SchemaLoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to load schema %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("failed to load schema %s: %s", e.Path, e.Message)
}

func (e *SchemaLoadError) Unwrap() error {
	return e.Cause
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s payload failed validation:", ve.Schema)
	for i, err := range ve.Errors {
		fmt.Fprintf(&sb, "\n  %d. %s: %s", i+1, err.Field, err.Message)
	}
	return sb.String()
}

// Names lists the embedded schemas.
func Names() []string {
	return []string{Candidate, Job, Analysis, LoginResponse}
}

// ValidateBytes validates one JSON document against the named schema.
func ValidateBytes(name string, data []byte) error {
	schema, err := load(name, false)
	if err != nil {
		return err
	}
	return check(name, schema, data)
}

// ValidateList validates a JSON array whose every element must satisfy the
// named schema.
func ValidateList(name string, data []byte) error {
	schema, err := load(name, true)
	if err != nil {
		return err
	}
	return check(name+" list", schema, data)
}

func check(label string, schema *gojsonschema.Schema, data []byte) error {
	result, err := schema.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		// The document itself could not be read, usually malformed JSON.
		return &ValidationError{
			Schema: label,
			Errors: []FieldError{{Field: "(root)", Message: err.Error()}},
		}
	}
	if result.Valid() {
		return nil
	}

	validationErr := &ValidationError{
		Schema: label,
		Errors: make([]FieldError, 0, len(result.Errors())),
	}
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		validationErr.Errors = append(validationErr.Errors, FieldError{
			Field:   field,
			Message: desc.Description(),
		})
	}
	return validationErr
}

func load(name string, list bool) (*gojsonschema.Schema, error) {
	key := name
	if list {
		key += "[]"
	}

	mu.Lock()
	defer mu.Unlock()
	if s, ok := compiled[key]; ok {
		return s, nil
	}

	path := name + ".schema.json"
	raw, err := files.ReadFile(path)
	if err != nil {
		return nil, &SchemaLoadError{Path: path, Message: "unknown schema", Cause: err}
	}

	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, &SchemaLoadError{Path: path, Message: "invalid schema JSON", Cause: err}
	}
	if list {
		delete(doc, "$schema")
		doc = map[string]any{"type": "array", "items": doc}
	}

	s, err := gojsonschema.NewSchema(gojsonschema.NewGoLoader(doc))
	if err != nil {
		return nil, &SchemaLoadError{Path: path, Message: "invalid schema", Cause: err}
	}
	compiled[key] = s
	return s, nil
}
