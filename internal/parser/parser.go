// Package parser turns raw LLM quiz output into validated questions.
//
// Two input shapes are supported. JSON responses are validated strictly: one bad
// question rejects the response. Markdown tables are parsed leniently: bad rows
// are dropped and logged. Both paths end in Normalize.
package parser

import (
	"fmt"

	"doc-quiz/internal/domain"
)

// Result is the normalized output of one provider response.
type Result struct {
	Questions []domain.QuizQuestion `json:"questions"`
	Title     string                `json:"title,omitempty"`
}

// Parse dispatches on the declared output format.
func Parse(text string, format domain.OutputFormat) (*Result, error) {
	switch format {
	case domain.FormatJSON:
		parsed, err := ParseAndValidate(text)
		if err != nil {
			return nil, err
		}
		return &Result{
			Questions: Normalize(parsed.Candidates),
			Title:     parsed.Metadata.Title,
		}, nil
	case domain.FormatMarkdown:
		questions, err := ParseQuizTable(text)
		if err != nil {
			return nil, err
		}
		return &Result{Questions: questions}, nil
	default:
		return nil, domain.NewParseError(fmt.Sprintf("unknown output format: %s", format))
	}
}
