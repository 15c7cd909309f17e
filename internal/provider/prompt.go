package provider

import (
	"fmt"
	"strings"

	"doc-quiz/internal/domain"
)

const (
	// DefaultContentLimit is the number of characters of document text sent upstream.
	DefaultContentLimit = 20000
	truncationSuffix    = "...(truncated)"
)

// TruncateContent cuts content to limit runes and marks the cut.
func TruncateContent(content string, limit int) string {
	if limit <= 0 {
		return content
	}
	runes := []rune(content)
	if len(runes) <= limit {
		return content
	}
	return string(runes[:limit]) + truncationSuffix
}

// DifficultyText renders the requested difficulty for a prompt.
func DifficultyText(spec domain.DifficultySpec) string {
	dist := spec.Resolve()
	if level, ok := dist.Single(); ok {
		return string(level)
	}
	return fmt.Sprintf("mixed difficulty (%d%% easy, %d%% medium, %d%% hard)", dist.Easy, dist.Medium, dist.Hard)
}

// Prompt is a system/user message pair.
type Prompt struct {
	System string
	User   string
}

// BuildPrompt renders the instructions for the given output format.
func BuildPrompt(req domain.GenerateRequest, format domain.OutputFormat, contentLimit int) Prompt {
	difficulty := DifficultyText(req.Difficulty)
	dist := req.Difficulty.Resolve()
	content := TruncateContent(req.Content, contentLimit)

	var b strings.Builder
	b.WriteString("You are an expert quiz creator who writes high-quality multiple-choice questions from provided content.\n\n")
	fmt.Fprintf(&b, "Generate %d %s multiple-choice questions based on the provided text.\n\n", req.NumberOfQuestions, difficulty)
	b.WriteString("Requirements:\n")
	b.WriteString("1. Each question has exactly 4 options.\n")
	b.WriteString("2. The correct answer is exactly one of the options, copied verbatim.\n")
	b.WriteString("3. Keep questions, options and explanations in the same language as the source text.\n")
	b.WriteString("4. Include a brief explanation for each correct answer.\n")
	b.WriteString("5. Each option is distinct and plausible.\n\n")

	switch format {
	case domain.FormatMarkdown:
		b.WriteString("Return only a markdown table with this exact header and no other text:\n")
		b.WriteString("| Question | Option A | Option B | Option C | Option D | Correct Answer | Explanation | Difficulty |\n")
		b.WriteString("|----------|----------|----------|----------|----------|----------------|-------------|------------|\n")
		b.WriteString("The Correct Answer cell repeats the text of the correct option. Difficulty is easy, medium or hard.\n")
		b.WriteString("Do not use the | character inside cells.\n")
	default:
		b.WriteString("Return only raw JSON, without markdown code fences, in this structure:\n")
		fmt.Fprintf(&b, `{
  "questions": [
    {
      "id": "1",
      "question": "What is...",
      "options": ["Option A", "Option B", "Option C", "Option D"],
      "correctAnswer": "Option A",
      "explanation": "This is correct because...",
      "difficulty": "easy|medium|hard"
    }
  ],
  "metadata": {
    "title": "Quiz Title",
    "description": "Quiz Description",
    "difficultyDistribution": {"easy": %d, "medium": %d, "hard": %d},
    "numberOfQuestions": %d
  }
}
`, dist.Easy, dist.Medium, dist.Hard, req.NumberOfQuestions)
	}

	if instr := strings.TrimSpace(req.AdditionalInstructions); instr != "" {
		b.WriteString("\nAdditional instructions:\n")
		b.WriteString(instr)
		b.WriteString("\n")
	}

	return Prompt{
		System: b.String(),
		User:   "Create a quiz based on this content. Keep the original language of the text:\n\n" + content,
	}
}
