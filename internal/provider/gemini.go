package provider

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"doc-quiz/internal/domain"
	"doc-quiz/internal/parser"

	"google.golang.org/genai"
)

// GeminiAdapter generates quizzes through the Gemini API with a JSON response schema.
type GeminiAdapter struct {
	base
	client *genai.Client
}

// NewGeminiAdapter creates the client eagerly; a client error is returned rather than
// leaving a half-configured adapter registered as available.
func NewGeminiAdapter(ctx context.Context, s Settings) (*GeminiAdapter, error) {
	a := &GeminiAdapter{base: newBase(domain.ProviderGemini, s, s.APIKey != "")}
	if !a.available {
		return a, nil
	}

	cc := &genai.ClientConfig{
		APIKey:  s.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if s.BaseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: s.BaseURL}
	}
	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("create Gemini client: %w", err)
	}
	a.client = client
	return a, nil
}

func (a *GeminiAdapter) OutputFormat() domain.OutputFormat { return domain.FormatJSON }

func (a *GeminiAdapter) GenerateQuiz(ctx context.Context, req domain.GenerateRequest) (*domain.RawOutput, error) {
	if err := a.checkAvailable(); err != nil {
		return nil, err
	}
	opts := a.resolve(req.Options)
	prompt := BuildPrompt(req, domain.FormatJSON, a.settings.ContentLimit)

	temp := float32(opts.temperature)
	config := &genai.GenerateContentConfig{
		MaxOutputTokens: int32(opts.maxTokens),
		Temperature:     &temp,
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: prompt.System}},
		},
		ResponseMIMEType: "application/json",
		ResponseSchema:   buildGeminiSchema(parser.QuizResponseSchema()),
	}
	contents := []*genai.Content{
		{Role: "user", Parts: []*genai.Part{{Text: prompt.User}}},
	}

	result, err := a.client.Models.GenerateContent(ctx, opts.model, contents, config)
	if err != nil {
		return nil, mapGeminiError(err)
	}
	text := result.Text()
	if strings.TrimSpace(text) == "" {
		return nil, &ErrUpstream{Err: errors.New("empty Gemini response")}
	}
	return &domain.RawOutput{Text: text, Format: domain.FormatJSON, Model: opts.model}, nil
}

// buildGeminiSchema converts a JSON Schema map into genai's schema type. Keywords
// genai does not model (additionalProperties, item bounds) are dropped.
func buildGeminiSchema(def map[string]any) *genai.Schema {
	schema := &genai.Schema{}
	if t, ok := def["type"].(string); ok {
		schema.Type = mapGeminiType(t)
	}
	if props, ok := def["properties"].(map[string]any); ok {
		schema.Properties = make(map[string]*genai.Schema, len(props))
		for k, v := range props {
			if propDef, ok := v.(map[string]any); ok {
				schema.Properties[k] = buildGeminiSchema(propDef)
			}
		}
	}
	if req, ok := def["required"].([]any); ok {
		for _, r := range req {
			if s, ok := r.(string); ok {
				schema.Required = append(schema.Required, s)
			}
		}
	}
	if enums, ok := def["enum"].([]any); ok {
		for _, e := range enums {
			if s, ok := e.(string); ok {
				schema.Enum = append(schema.Enum, s)
			}
		}
	}
	if items, ok := def["items"].(map[string]any); ok {
		schema.Items = buildGeminiSchema(items)
	}
	return schema
}

func mapGeminiType(t string) genai.Type {
	switch t {
	case "number":
		return genai.TypeNumber
	case "integer":
		return genai.TypeInteger
	case "boolean":
		return genai.TypeBoolean
	case "array":
		return genai.TypeArray
	case "object":
		return genai.TypeObject
	default:
		return genai.TypeString
	}
}

func mapGeminiError(err error) error {
	var apiErr *genai.APIError
	if errors.As(err, &apiErr) {
		return classifyStatus(apiErr.Code, err)
	}
	return &ErrUpstream{Err: err}
}
