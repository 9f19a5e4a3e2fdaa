package service

import (
	"bytes"
	"encoding/json"
	"fmt"

	"letter-extractor/internal/domain"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

const schemaResource = "letter.schema.json"

// SchemaValidator checks provider output against the extraction schema.
// The schema is compiled once and is safe for concurrent use.
type SchemaValidator struct {
	schema *jsonschema.Schema
}

func NewSchemaValidator(schema domain.ExtractionSchema) (*SchemaValidator, error) {
	b, err := json.Marshal(schema)
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(schemaResource, bytes.NewReader(b)); err != nil {
		return nil, fmt.Errorf("add schema: %w", err)
	}
	compiled, err := compiler.Compile(schemaResource)
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	return &SchemaValidator{schema: compiled}, nil
}

// Validate reports whether data is a JSON document conforming to the schema.
func (v *SchemaValidator) Validate(data []byte) error {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrSchemaMismatch, err)
	}
	if err := v.schema.Validate(doc); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrSchemaMismatch, err)
	}
	return nil
}
