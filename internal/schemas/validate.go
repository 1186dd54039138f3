// Package schemas checks the shape of JSON request bodies against embedded JSON Schemas.
package schemas

import (
	"embed"
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

const (
	JobMatchRequest      = "job_match_request.schema.json"
	BatchAnalysisRequest = "batch_analysis_request.schema.json"
)

//go:embed *.schema.json
var schemaFS embed.FS

var (
	cacheMu sync.Mutex
	cache   = map[string]*gojsonschema.Schema{}
)

// ValidationError lists every schema violation found in a document.
type ValidationError struct {
	Errors []FieldError
}

// FieldError is a single violation at a field path.
type FieldError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		msgs = append(msgs, fmt.Sprintf("%s: %s", fe.Field, fe.Message))
	}
	return fmt.Sprintf("schema validation failed: %s", strings.Join(msgs, "; "))
}

// Validate checks a raw JSON document against the named embedded schema.
func Validate(name string, document []byte) error {
	schema, err := load(name)
	if err != nil {
		return err
	}

	res, err := schema.Validate(gojsonschema.NewBytesLoader(document))
	if err != nil {
		return &ValidationError{Errors: []FieldError{{Field: "(root)", Message: "body is not valid JSON"}}}
	}
	if res.Valid() {
		return nil
	}

	verr := &ValidationError{}
	for _, e := range res.Errors() {
		verr.Errors = append(verr.Errors, FieldError{Field: e.Field(), Message: e.Description()})
	}
	return verr
}

func load(name string) (*gojsonschema.Schema, error) {
	cacheMu.Lock()
	defer cacheMu.Unlock()

	if s, ok := cache[name]; ok {
		return s, nil
	}

	raw, err := schemaFS.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema %s: %w", name, err)
	}

	s, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema %s: %w", name, err)
	}

	cache[name] = s
	return s, nil
}
