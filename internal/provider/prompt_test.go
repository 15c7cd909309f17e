package provider

import (
	"strings"
	"testing"

	"doc-quiz/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestTruncateContent(t *testing.T) {
	assert.Equal(t, "short", TruncateContent("short", 10))
	assert.Equal(t, "abc...(truncated)", TruncateContent("abcdef", 3))
	assert.Equal(t, "한국...(truncated)", TruncateContent("한국어입니다", 2))
	assert.Equal(t, "anything", TruncateContent("anything", 0))
}

func TestDifficultyText(t *testing.T) {
	assert.Equal(t, "hard", DifficultyText(domain.DifficultySpec{Level: domain.DifficultyHard}))

	mixed := DifficultyText(domain.DifficultySpec{
		Distribution: &domain.DifficultyDistribution{Easy: 30, Medium: 50, Hard: 20},
	})
	assert.Equal(t, "mixed difficulty (30% easy, 50% medium, 20% hard)", mixed)
}

func TestBuildPrompt(t *testing.T) {
	req := domain.GenerateRequest{
		Content:                strings.Repeat("x", 50),
		NumberOfQuestions:      3,
		Difficulty:             domain.DifficultySpec{Level: domain.DifficultyEasy},
		AdditionalInstructions: "  Focus on dates.  ",
	}

	t.Run("json", func(t *testing.T) {
		p := BuildPrompt(req, domain.FormatJSON, 10)
		assert.Contains(t, p.System, "Generate 3 easy multiple-choice questions")
		assert.Contains(t, p.System, `"correctAnswer"`)
		assert.Contains(t, p.System, `"difficultyDistribution": {"easy": 100, "medium": 0, "hard": 0}`)
		assert.Contains(t, p.System, "Additional instructions:\nFocus on dates.")
		assert.True(t, strings.HasSuffix(p.User, strings.Repeat("x", 10)+"...(truncated)"))
	})

	t.Run("markdown", func(t *testing.T) {
		p := BuildPrompt(req, domain.FormatMarkdown, 100)
		assert.Contains(t, p.System, "| Question | Option A | Option B | Option C | Option D | Correct Answer | Explanation | Difficulty |")
		assert.NotContains(t, p.System, `"questions"`)
		assert.NotContains(t, p.User, "...(truncated)")
	})
}

func TestStripThinking(t *testing.T) {
	assert.Equal(t, `{"a":1}`, stripThinking("<think>\nlet me see\n</think>\n{\"a\":1}"))
	assert.Equal(t, "plain", stripThinking("  plain \n"))
	assert.Equal(t, "<think>unclosed", stripThinking("<think>unclosed"))
}
