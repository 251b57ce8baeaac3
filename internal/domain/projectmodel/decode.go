// Where: internal/domain/projectmodel/decode.go
// What: Schema-checked decoding of project context documents.
// Why: Reject documents whose known fields have the wrong shape before they reach callers.
package projectmodel

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

const schemaURL = "mem://projectctx/project_context.schema.json"

//go:embed schema/project_context.schema.json
var schemaDoc []byte

var (
	schemaOnce     sync.Once
	schemaErr      error
	compiledSchema *jsonschema.Schema

	utf8BOM = []byte{0xef, 0xbb, 0xbf}

	// ErrEmptyDocument is returned when the tool wrote an empty output file.
	ErrEmptyDocument = errors.New("project context document is empty")
)

// Decode validates data against the embedded schema and unmarshals it.
func Decode(data []byte) (*ProjectContext, error) {
	var out ProjectContext
	if err := DecodeInto(data, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DecodeInto unmarshals data into v. Schema validation only applies when v is
// a *ProjectContext; other targets define their own contract.
func DecodeInto(data []byte, v any) error {
	data = bytes.TrimPrefix(data, utf8BOM)
	if len(bytes.TrimSpace(data)) == 0 {
		return ErrEmptyDocument
	}
	if _, ok := v.(*ProjectContext); ok {
		if err := Validate(data); err != nil {
			return err
		}
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode project context: %w", err)
	}
	return nil
}

// Validate checks data against the project context schema.
func Validate(data []byte) error {
	sch, err := loadSchema()
	if err != nil {
		return err
	}
	var document any
	if err := json.Unmarshal(bytes.TrimPrefix(data, utf8BOM), &document); err != nil {
		return fmt.Errorf("parse project context json: %w", err)
	}
	if err := sch.Validate(document); err != nil {
		return fmt.Errorf("validate project context: %w", err)
	}
	return nil
}

func loadSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource(schemaURL, bytes.NewReader(schemaDoc)); err != nil {
			schemaErr = fmt.Errorf("load project context schema: %w", err)
			return
		}
		compiledSchema, schemaErr = compiler.Compile(schemaURL)
	})
	return compiledSchema, schemaErr
}
