// Package schemas provides JSON Schema diagnostics for raw imported resume
// data. The schema check never blocks an import: the normalizer accepts any
// shape, so results are reported as warnings only.
package schemas

import (
	_ "embed"
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed resume.schema.json
var resumeSchema []byte

// FieldError represents a single validation error at a specific field
type FieldError struct {
	Field   string
	Message string
}

func (e FieldError) String() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// DiagnoseResume validates raw resume JSON against the canonical schema and
// returns one entry per mismatch. An unloadable document yields a single
// entry describing the problem; a conforming document yields nil.
func DiagnoseResume(raw []byte) []FieldError {
	schemaLoader := gojsonschema.NewBytesLoader(resumeSchema)
	documentLoader := gojsonschema.NewBytesLoader(raw)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return []FieldError{{Field: "(document)", Message: err.Error()}}
	}
	if result.Valid() {
		return nil
	}

	errors := make([]FieldError, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		errors = append(errors, FieldError{
			Field:   desc.Field(),
			Message: desc.Description(),
		})
	}
	return errors
}

// WarningStrings flattens field errors into display strings.
func WarningStrings(errors []FieldError) []string {
	if len(errors) == 0 {
		return nil
	}
	out := make([]string, len(errors))
	for i, e := range errors {
		out[i] = e.String()
	}
	return out
}
