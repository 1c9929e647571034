// internal/common/validation/schema.go
package validation

import (
	"embed"
	"fmt"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed schemas/*.json
var schemaFiles embed.FS

// Request schema names.
const (
	SchemaFranchise = "franchise"
	SchemaBranch    = "branch"
	SchemaProduct   = "product"
)

// Job variable schemas for the catalog workers.
const (
	SchemaAddProductJob  = "job-add-product"
	SchemaUpdateStockJob = "job-update-stock"
	SchemaTopProductsJob = "job-top-products"
)

var schemaNames = []string{
	SchemaFranchise, SchemaBranch, SchemaProduct,
	SchemaAddProductJob, SchemaUpdateStockJob, SchemaTopProductsJob,
}

type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

var (
	compileOnce sync.Once
	compiled    map[string]*gojsonschema.Schema
	compileErr  error
)

func loadSchemas() (map[string]*gojsonschema.Schema, error) {
	compileOnce.Do(func() {
		compiled = make(map[string]*gojsonschema.Schema)
		for _, name := range schemaNames {
			raw, err := schemaFiles.ReadFile("schemas/" + name + ".json")
			if err != nil {
				compileErr = fmt.Errorf("read schema %s: %w", name, err)
				return
			}
			schema, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(raw))
			if err != nil {
				compileErr = fmt.Errorf("compile schema %s: %w", name, err)
				return
			}
			compiled[name] = schema
		}
	})
	return compiled, compileErr
}

// HasSchema reports whether name is one of the embedded schemas.
func HasSchema(name string) bool {
	schemas, err := loadSchemas()
	if err != nil {
		return false
	}
	_, ok := schemas[name]
	return ok
}

// ValidateRequest checks a decoded JSON body (map, slice or primitive as
// produced by encoding/json) against the named request schema.
func ValidateRequest(schemaName string, document interface{}) (*ValidationResult, error) {
	schemas, err := loadSchemas()
	if err != nil {
		return nil, err
	}
	schema, ok := schemas[schemaName]
	if !ok {
		return nil, fmt.Errorf("unknown schema %q", schemaName)
	}

	result, err := schema.Validate(gojsonschema.NewGoLoader(document))
	if err != nil {
		return nil, fmt.Errorf("validation error: %w", err)
	}

	out := &ValidationResult{Valid: result.Valid()}
	for _, desc := range result.Errors() {
		out.Errors = append(out.Errors, ValidationError{
			Field:   desc.Field(),
			Message: desc.Description(),
			Code:    desc.Type(),
		})
	}
	return out, nil
}

func (vr *ValidationResult) GetErrorMessages() []string {
	messages := make([]string, len(vr.Errors))
	for i, err := range vr.Errors {
		messages[i] = fmt.Sprintf("%s: %s", err.Field, err.Message)
	}
	return messages
}

func (vr *ValidationResult) HasErrors(field string) bool {
	for _, err := range vr.Errors {
		if err.Field == field {
			return true
		}
	}
	return false
}
