// Package export renders a stored quiz in downloadable formats.
package export

import (
	"encoding/json"
	"fmt"
	"strings"

	"doc-quiz/internal/domain"

	"gopkg.in/yaml.v3"
)

type Format string

const (
	FormatJSON     Format = "json"
	FormatText     Format = "text"
	FormatHTML     Format = "html"
	FormatMarkdown Format = "markdown"
	FormatYAML     Format = "yaml"
)

// Formats lists every supported export format.
func Formats() []Format {
	return []Format{FormatJSON, FormatText, FormatHTML, FormatMarkdown, FormatYAML}
}

// ParseFormat is case-insensitive; "md" and "yml" are accepted aliases.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "json":
		return FormatJSON, nil
	case "text", "txt":
		return FormatText, nil
	case "html":
		return FormatHTML, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return "", domain.NewUnsupportedFormatError(s)
}

// Document is a rendered export.
type Document struct {
	Data        []byte
	ContentType string
	Extension   string
}

// Filename is the attachment name for a quiz export.
func (d *Document) Filename(quizID string) string {
	return "quiz-" + quizID + d.Extension
}

// Title is the heading used by text-like formats.
func Title(q *domain.Quiz) string {
	if t := strings.TrimSpace(q.Metadata.Title); t != "" {
		return t
	}
	return "Quiz " + q.ID
}

// Render produces the quiz in the requested format.
func Render(q *domain.Quiz, format Format) (*Document, error) {
	switch format {
	case FormatJSON:
		data, err := json.MarshalIndent(q, "", "  ")
		if err != nil {
			return nil, err
		}
		return &Document{Data: data, ContentType: "application/json", Extension: ".json"}, nil
	case FormatText:
		return &Document{Data: []byte(renderText(q)), ContentType: "text/plain; charset=utf-8", Extension: ".txt"}, nil
	case FormatHTML:
		data, err := renderHTML(q)
		if err != nil {
			return nil, err
		}
		return &Document{Data: data, ContentType: "text/html; charset=utf-8", Extension: ".html"}, nil
	case FormatMarkdown:
		return &Document{Data: []byte(RenderMarkdown(q)), ContentType: "text/markdown; charset=utf-8", Extension: ".md"}, nil
	case FormatYAML:
		data, err := yaml.Marshal(q)
		if err != nil {
			return nil, fmt.Errorf("marshal yaml: %w", err)
		}
		return &Document{Data: data, ContentType: "application/yaml", Extension: ".yaml"}, nil
	}
	return nil, domain.NewUnsupportedFormatError(string(format))
}

func optionLabel(i int) string {
	return string(rune('A' + i))
}

func renderText(q *domain.Quiz) string {
	var b strings.Builder
	b.WriteString(Title(q))
	b.WriteString("\n\n")
	for i, question := range q.Questions {
		fmt.Fprintf(&b, "Question %d: %s\n", i+1, question.Question)
		for j, opt := range question.Options {
			fmt.Fprintf(&b, "%s) %s\n", optionLabel(j), opt)
		}
		fmt.Fprintf(&b, "\nCorrect Answer: %s\n", question.CorrectAnswer)
		fmt.Fprintf(&b, "Explanation: %s\n\n", question.Explanation)
	}
	return b.String()
}

// RenderMarkdown writes the canonical quiz table, which the markdown parser reads back.
func RenderMarkdown(q *domain.Quiz) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", Title(q))
	b.WriteString("| Question | Option A | Option B | Option C | Option D | Correct Answer | Explanation | Difficulty |\n")
	b.WriteString("|----------|----------|----------|----------|----------|----------------|-------------|------------|\n")
	for _, question := range q.Questions {
		cells := make([]string, 0, 8)
		cells = append(cells, cell(question.Question))
		for j := 0; j < domain.OptionCount; j++ {
			opt := ""
			if j < len(question.Options) {
				opt = question.Options[j]
			}
			cells = append(cells, cell(opt))
		}
		cells = append(cells, cell(question.CorrectAnswer), cell(question.Explanation), string(question.Difficulty))
		b.WriteString("| " + strings.Join(cells, " | ") + " |\n")
	}
	return b.String()
}

// cell keeps a value on one table row; pipes would split the cell.
func cell(s string) string {
	s = strings.ReplaceAll(s, "|", "/")
	s = strings.ReplaceAll(s, "\r\n", " ")
	return strings.TrimSpace(strings.ReplaceAll(s, "\n", " "))
}
