package parser

import (
	"strconv"
	"strings"

	"doc-quiz/internal/domain"
	"doc-quiz/internal/logger"

	"go.uber.org/zap"
)

// NormalizeDifficulty maps a label onto a Difficulty, falling back to medium.
// Absent labels fall back silently; unrecognised ones are logged.
func NormalizeDifficulty(label *string) domain.Difficulty {
	if label == nil || strings.TrimSpace(*label) == "" {
		return domain.DifficultyMedium
	}
	if d, ok := domain.ParseDifficulty(*label); ok {
		return d
	}
	logger.Get().Warn("Unknown difficulty, defaulting to medium", zap.String("difficulty", *label))
	return domain.DifficultyMedium
}

// Normalize fills defaults on structurally valid candidates. It does not re-check
// option membership, and applying it to its own output changes nothing.
func Normalize(candidates []domain.RawQuestionCandidate) []domain.QuizQuestion {
	questions := make([]domain.QuizQuestion, 0, len(candidates))
	for i, c := range candidates {
		q := domain.QuizQuestion{
			ID:            strings.TrimSpace(c.ID),
			Question:      c.Question,
			Options:       c.Options,
			CorrectAnswer: c.CorrectAnswer,
			Difficulty:    NormalizeDifficulty(c.Difficulty),
			Category:      domain.DefaultCategory,
		}
		if q.ID == "" {
			q.ID = strconv.Itoa(i + 1)
		}
		if c.Explanation != nil {
			q.Explanation = *c.Explanation
		}
		if c.Category != nil && strings.TrimSpace(*c.Category) != "" {
			q.Category = *c.Category
		}
		questions = append(questions, q)
	}
	return questions
}

// Candidates converts questions back into candidates, e.g. to re-run them through Normalize.
func Candidates(questions []domain.QuizQuestion) []domain.RawQuestionCandidate {
	out := make([]domain.RawQuestionCandidate, len(questions))
	for i, q := range questions {
		explanation, difficulty, category := q.Explanation, string(q.Difficulty), q.Category
		out[i] = domain.RawQuestionCandidate{
			ID:            q.ID,
			Question:      q.Question,
			Options:       q.Options,
			CorrectAnswer: q.CorrectAnswer,
			Explanation:   &explanation,
			Difficulty:    &difficulty,
			Category:      &category,
		}
	}
	return out
}
