package exercise

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const schemaURL = "schema://numa-exercise-set.json"

// itemSchema describes a single exercise: an expression string or a
// question record.
var itemSchema = map[string]any{
	"oneOf": []any{
		map[string]any{
			"type":      "string",
			"minLength": 1,
		},
		map[string]any{
			"type": "object",
			"properties": map[string]any{
				"question": map[string]any{"type": "string"},
				"answer":   map[string]any{"type": []any{"string", "number", "null"}},
				"accept":   map[string]any{"type": "array"},
				"validation": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"type":      map[string]any{"type": "string", "enum": []any{TypeExact, TypeNumeric}},
						"decimals":  map[string]any{"type": "integer", "minimum": 0, "maximum": 12},
						"maxLength": map[string]any{"type": "integer", "minimum": 1},
						"minLength": map[string]any{"type": "integer", "minimum": 0},
						"target":    map[string]any{"type": "number"},
					},
				},
			},
			"required": []any{"question"},
		},
	},
}

// SetSchema accepts either a bare array of items or an object wrapping them.
var SetSchema = map[string]any{
	"oneOf": []any{
		map[string]any{
			"type":  "array",
			"items": itemSchema,
		},
		map[string]any{
			"type": "object",
			"properties": map[string]any{
				"title": map[string]any{"type": "string"},
				"items": map[string]any{"type": "array", "items": itemSchema},
				"modes": map[string]any{
					"type":  "array",
					"items": map[string]any{"type": "string"},
				},
			},
			"required": []any{"items"},
		},
	},
}

var (
	compileOnce sync.Once
	compiled    *jsonschema.Schema
	compileErr  error
)

// compiledSchema compiles SetSchema once.
func compiledSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		// The compiler wants a decoded JSON document, not Go literals.
		raw, err := json.Marshal(SetSchema)
		if err != nil {
			compileErr = fmt.Errorf("marshal schema: %w", err)
			return
		}
		var doc any
		if err := json.Unmarshal(raw, &doc); err != nil {
			compileErr = fmt.Errorf("parse schema: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		if err := c.AddResource(schemaURL, doc); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiled, compileErr = c.Compile(schemaURL)
		if compileErr != nil {
			compileErr = fmt.Errorf("compile: %w", compileErr)
		}
	})
	return compiled, compileErr
}
