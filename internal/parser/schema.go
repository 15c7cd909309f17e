package parser

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// QuizSchemaName identifies the quiz response schema for structured-output providers.
const QuizSchemaName = "quiz-response"

// QuizResponseSchema is the JSON Schema of the canonical JSON quiz response.
// Providers with native structured output send it upstream.
func QuizResponseSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"questions": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"id":       map[string]any{"type": "string"},
						"question": map[string]any{"type": "string"},
						"options": map[string]any{
							"type":     "array",
							"items":    map[string]any{"type": "string"},
							"minItems": 4,
							"maxItems": 4,
						},
						"correctAnswer": map[string]any{"type": "string"},
						"explanation":   map[string]any{"type": "string"},
						"difficulty": map[string]any{
							"type": "string",
							"enum": []any{"easy", "medium", "hard"},
						},
					},
					"required":             []any{"id", "question", "options", "correctAnswer", "explanation", "difficulty"},
					"additionalProperties": false,
				},
			},
			"metadata": metadataSchema(),
		},
		"required":             []any{"questions", "metadata"},
		"additionalProperties": false,
	}
}

func metadataSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"title":       map[string]any{"type": "string"},
			"description": map[string]any{"type": "string"},
			"difficultyDistribution": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"easy":   map[string]any{"type": "integer"},
					"medium": map[string]any{"type": "integer"},
					"hard":   map[string]any{"type": "integer"},
				},
				"required":             []any{"easy", "medium", "hard"},
				"additionalProperties": false,
			},
			"numberOfQuestions": map[string]any{"type": "integer"},
		},
		"required":             []any{"title", "description", "difficultyDistribution", "numberOfQuestions"},
		"additionalProperties": false,
	}
}

var (
	metadataOnce     sync.Once
	metadataCompiled *jsonschema.Schema
	metadataErr      error
)

func compiledMetadataSchema() (*jsonschema.Schema, error) {
	metadataOnce.Do(func() {
		metadataCompiled, metadataErr = compileSchema("metadata", metadataSchema())
	})
	return metadataCompiled, metadataErr
}

func compileSchema(name string, def map[string]any) (*jsonschema.Schema, error) {
	// The compiler wants the document in its own decoded form.
	defBytes, err := json.Marshal(def)
	if err != nil {
		return nil, fmt.Errorf("marshal schema definition: %w", err)
	}
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(defBytes))
	if err != nil {
		return nil, fmt.Errorf("parse schema definition: %w", err)
	}

	c := jsonschema.NewCompiler()
	url := fmt.Sprintf("schema://%s.json", name)
	if err := c.AddResource(url, doc); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}
	return c.Compile(url)
}

// ValidateMetadata checks a metadata object against the metadata schema. Callers
// treat a failure as a warning: metadata never gates a quiz.
func ValidateMetadata(raw json.RawMessage) error {
	schema, err := compiledMetadataSchema()
	if err != nil {
		return err
	}
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("invalid metadata JSON: %w", err)
	}
	return schema.Validate(inst)
}
