package parser

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"doc-quiz/internal/domain"
	"doc-quiz/internal/logger"

	"go.uber.org/zap"
)

// ResponseMetadata is the metadata object a JSON provider returns next to its questions.
type ResponseMetadata struct {
	Title             string `json:"title"`
	Description       string `json:"description"`
	NumberOfQuestions int    `json:"numberOfQuestions"`
	// Distribution is nil when the provider omitted it or sent a non-object.
	Distribution *domain.DifficultyDistribution `json:"difficultyDistribution,omitempty"`
	Raw          map[string]interface{}
}

// ParsedResponse is a structurally valid JSON provider response.
type ParsedResponse struct {
	Candidates []domain.RawQuestionCandidate
	Metadata   ResponseMetadata
}

// rawQuestion keeps every field undecoded so presence and type can be checked per field.
type rawQuestion struct {
	ID            json.RawMessage `json:"id"`
	Question      json.RawMessage `json:"question"`
	Options       json.RawMessage `json:"options"`
	CorrectAnswer json.RawMessage `json:"correctAnswer"`
	Explanation   json.RawMessage `json:"explanation"`
	Difficulty    json.RawMessage `json:"difficulty"`
	Category      json.RawMessage `json:"category"`
}

type rawResponse struct {
	Questions json.RawMessage `json:"questions"`
	Metadata  json.RawMessage `json:"metadata"`
}

// CleanJSON strips code fences, surrounding prose and comments from provider text.
func CleanJSON(raw string) string {
	text := stripFences(strings.TrimSpace(raw))

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start != -1 && end != -1 && start < end {
		text = text[start : end+1]
	}

	return stripComments(text)
}

func stripFences(text string) string {
	if strings.HasPrefix(text, "```") {
		text = text[3:]
		if len(text) >= 4 && strings.EqualFold(text[:4], "json") {
			text = text[4:]
		}
	}
	text = strings.TrimSpace(text)
	text = strings.TrimSpace(strings.TrimSuffix(text, "```"))

	// A bare "json" label line left over from a mangled fence.
	if first, rest, found := strings.Cut(text, "\n"); found && strings.EqualFold(strings.TrimSpace(first), "json") {
		text = strings.TrimSpace(rest)
	}
	return text
}

// stripComments removes // line comments and /* */ block comments that sit outside string literals.
func stripComments(text string) string {
	var b strings.Builder
	b.Grow(len(text))

	inString, escaped := false, false
	for i := 0; i < len(text); i++ {
		c := text[i]
		if inString {
			b.WriteByte(c)
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}

		if c == '"' {
			inString = true
			b.WriteByte(c)
			continue
		}
		if c == '/' && i+1 < len(text) {
			switch text[i+1] {
			case '/':
				for i < len(text) && text[i] != '\n' {
					i++
				}
				if i < len(text) {
					b.WriteByte('\n')
				}
				continue
			case '*':
				closeIdx := strings.Index(text[i+2:], "*/")
				if closeIdx == -1 {
					i = len(text)
				} else {
					i += 2 + closeIdx + 1
				}
				continue
			}
		}
		b.WriteByte(c)
	}
	return b.String()
}

// ParseAndValidate cleans raw provider text and checks the quiz response shape.
// Any invalid question fails the whole response.
func ParseAndValidate(raw string) (*ParsedResponse, error) {
	cleaned := CleanJSON(raw)

	var resp rawResponse
	if err := json.Unmarshal([]byte(cleaned), &resp); err != nil {
		return nil, domain.NewMalformedResponseError(cleaned, err)
	}

	var questions []json.RawMessage
	if !isJSONArray(resp.Questions) || json.Unmarshal(resp.Questions, &questions) != nil {
		return nil, domain.NewInvalidShapeError("missing or invalid questions array")
	}

	var metadata map[string]interface{}
	if !isJSONObject(resp.Metadata) || json.Unmarshal(resp.Metadata, &metadata) != nil {
		return nil, domain.NewInvalidShapeError("missing or invalid metadata")
	}

	candidates := make([]domain.RawQuestionCandidate, 0, len(questions))
	for i, item := range questions {
		var q rawQuestion
		if !isJSONObject(item) || json.Unmarshal(item, &q) != nil {
			return nil, domain.NewInvalidShapeError(fmt.Sprintf("Question %d is missing required fields", i+1))
		}
		c, err := validateQuestion(i+1, q)
		if err != nil {
			return nil, err
		}
		candidates = append(candidates, c)
	}

	meta := decodeMetadata(metadata)
	if err := ValidateMetadata(resp.Metadata); err != nil {
		logger.Get().Warn("Provider metadata does not match schema",
			zap.Error(err),
			zap.Int("question_count", len(candidates)),
		)
	}

	return &ParsedResponse{Candidates: candidates, Metadata: meta}, nil
}

func validateQuestion(n int, q rawQuestion) (domain.RawQuestionCandidate, error) {
	question, okQuestion := scalarString(q.Question)
	answer, okAnswer := scalarString(q.CorrectAnswer)
	options, okOptions := stringArray(q.Options)
	if !okQuestion || question == "" || !okAnswer || answer == "" || !okOptions {
		return domain.RawQuestionCandidate{}, domain.NewInvalidShapeError(fmt.Sprintf("Question %d is missing required fields", n))
	}
	if len(options) != domain.OptionCount {
		return domain.RawQuestionCandidate{}, domain.NewInvalidShapeError(fmt.Sprintf("Question %d must have exactly 4 options", n))
	}
	if !contains(options, answer) {
		return domain.RawQuestionCandidate{}, domain.NewInvalidShapeError(fmt.Sprintf("Question %d correct answer is not among the options", n))
	}

	c := domain.RawQuestionCandidate{
		Question:      question,
		Options:       options,
		CorrectAnswer: answer,
	}
	if id, ok := scalarString(q.ID); ok {
		c.ID = id
	}
	c.Explanation = optionalString(q.Explanation)
	c.Difficulty = optionalString(q.Difficulty)
	c.Category = optionalString(q.Category)
	return c, nil
}

func decodeMetadata(m map[string]interface{}) ResponseMetadata {
	meta := ResponseMetadata{Raw: m}
	if title, ok := m["title"].(string); ok {
		meta.Title = title
	}
	if desc, ok := m["description"].(string); ok {
		meta.Description = desc
	}
	if n, ok := m["numberOfQuestions"].(float64); ok {
		meta.NumberOfQuestions = int(n)
	}
	if dist, ok := m["difficultyDistribution"].(map[string]interface{}); ok {
		share := func(key string) int {
			v, _ := dist[key].(float64)
			return int(v)
		}
		meta.Distribution = &domain.DifficultyDistribution{
			Easy:   share("easy"),
			Medium: share("medium"),
			Hard:   share("hard"),
		}
	}
	return meta
}

func isJSONArray(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '['
}

func isJSONObject(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '{'
}

// scalarString accepts JSON strings, numbers and booleans. Providers occasionally
// emit numeric ids or options.
func scalarString(raw json.RawMessage) (string, bool) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return "", false
	}
	switch trimmed[0] {
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return "", false
		}
		return s, true
	case '{', '[':
		return "", false
	}
	if _, err := strconv.ParseFloat(string(trimmed), 64); err == nil {
		return string(trimmed), true
	}
	if string(trimmed) == "true" || string(trimmed) == "false" {
		return string(trimmed), true
	}
	return "", false
}

func stringArray(raw json.RawMessage) ([]string, bool) {
	if !isJSONArray(raw) {
		return nil, false
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, false
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		s, ok := scalarString(item)
		if !ok {
			return nil, false
		}
		out = append(out, s)
	}
	return out, true
}

func optionalString(raw json.RawMessage) *string {
	s, ok := scalarString(raw)
	if !ok {
		return nil
	}
	return &s
}

func contains(options []string, v string) bool {
	for _, o := range options {
		if o == v {
			return true
		}
	}
	return false
}
