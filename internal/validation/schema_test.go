package validation_test

import (
	"errors"
	"testing"

	"github.com/goliatone/go-composer/internal/validation"
)

func TestCompileShorthandSchema(t *testing.T) {
	schema, err := validation.Compile(map[string]any{
		"fields": []any{
			map[string]any{"name": "title", "type": "string", "required": true},
			map[string]any{"name": "columns", "type": "integer"},
			"subtitle",
		},
	})
	if err != nil {
		t.Fatalf("compile: %v", err)
	}

	if err := schema.Validate(map[string]any{"title": "Hello", "columns": 3}); err != nil {
		t.Fatalf("expected valid payload, got %v", err)
	}

	err = schema.Validate(map[string]any{"columns": "three"})
	if !errors.Is(err, validation.ErrSchemaValidation) {
		t.Fatalf("expected ErrSchemaValidation, got %v", err)
	}
	if issues := validation.Issues(err); len(issues) == 0 {
		t.Fatal("expected validation issues")
	}
}

func TestCompileEmptySchemaAcceptsEverything(t *testing.T) {
	schema, err := validation.Compile(nil)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if err := schema.Validate(map[string]any{"anything": true}); err != nil {
		t.Fatalf("expected nil schema to accept payload, got %v", err)
	}
}

func TestValidateSchemaRejectsBrokenSchema(t *testing.T) {
	err := validation.ValidateSchema(map[string]any{"type": 42})
	if !errors.Is(err, validation.ErrSchemaInvalid) {
		t.Fatalf("expected ErrSchemaInvalid, got %v", err)
	}
}

func TestValidatePayloadWithJSONSchema(t *testing.T) {
	schema := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"items": map[string]any{"type": "array"},
		},
		"required": []any{"items"},
	}
	if err := validation.ValidatePayload(schema, map[string]any{"items": []any{}}); err != nil {
		t.Fatalf("expected valid payload, got %v", err)
	}
	if err := validation.ValidatePayload(schema, map[string]any{}); err == nil {
		t.Fatal("expected missing required field to fail")
	}
}
