package domain

import (
	"fmt"
	"strings"
	"time"
)

// Difficulty is the per-question difficulty level.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// DefaultCategory is assigned to questions the provider did not categorize.
const DefaultCategory = "general"

// OptionCount is the number of answer options every question carries.
const OptionCount = 4

var difficultySynonyms = map[string]Difficulty{
	"easy":         DifficultyEasy,
	"beginner":     DifficultyEasy,
	"basic":        DifficultyEasy,
	"medium":       DifficultyMedium,
	"intermediate": DifficultyMedium,
	"moderate":     DifficultyMedium,
	"hard":         DifficultyHard,
	"advanced":     DifficultyHard,
	"difficult":    DifficultyHard,
}

// ParseDifficulty maps a provider-supplied difficulty label onto a Difficulty.
// The second return value is false when the label is not recognised.
func ParseDifficulty(s string) (Difficulty, bool) {
	d, ok := difficultySynonyms[strings.ToLower(strings.TrimSpace(s))]
	return d, ok
}

// IsValid reports whether d is one of the three canonical levels.
func (d Difficulty) IsValid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// QuizQuestion is a validated multiple-choice question.
type QuizQuestion struct {
	ID            string     `json:"id" yaml:"id"`
	Question      string     `json:"question" yaml:"question"`
	Options       []string   `json:"options" yaml:"options"`
	CorrectAnswer string     `json:"correctAnswer" yaml:"correctAnswer"`
	Explanation   string     `json:"explanation" yaml:"explanation"`
	Difficulty    Difficulty `json:"difficulty" yaml:"difficulty"`
	Category      string     `json:"category" yaml:"category"`
}

// HasAnswerAmongOptions reports whether CorrectAnswer is one of Options.
func (q QuizQuestion) HasAnswerAmongOptions() bool {
	for _, opt := range q.Options {
		if opt == q.CorrectAnswer {
			return true
		}
	}
	return false
}

// AnswerIndex returns the position of CorrectAnswer in Options, or -1.
func (q QuizQuestion) AnswerIndex() int {
	for i, opt := range q.Options {
		if opt == q.CorrectAnswer {
			return i
		}
	}
	return -1
}

// DifficultyDistribution is a percentage split across the three levels.
type DifficultyDistribution struct {
	Easy   int `json:"easy" yaml:"easy"`
	Medium int `json:"medium" yaml:"medium"`
	Hard   int `json:"hard" yaml:"hard"`
}

// DistributionFromLegacy converts a single difficulty level into a 100% distribution.
func DistributionFromLegacy(d Difficulty) DifficultyDistribution {
	switch d {
	case DifficultyEasy:
		return DifficultyDistribution{Easy: 100}
	case DifficultyHard:
		return DifficultyDistribution{Hard: 100}
	default:
		return DifficultyDistribution{Medium: 100}
	}
}

// Validate checks each share is within [0,100] and the total is 100, allowing
// one point of rounding slack.
func (d DifficultyDistribution) Validate() error {
	for name, v := range map[string]int{"easy": d.Easy, "medium": d.Medium, "hard": d.Hard} {
		if v < 0 || v > 100 {
			return NewInvalidInputError(fmt.Sprintf("difficulty share %s must be between 0 and 100, got %d", name, v))
		}
	}
	sum := d.Easy + d.Medium + d.Hard
	if sum < 99 || sum > 101 {
		return NewInvalidInputError(fmt.Sprintf("difficulty distribution must sum to 100, got %d", sum))
	}
	return nil
}

// Single returns the level that takes the whole distribution, if any.
func (d DifficultyDistribution) Single() (Difficulty, bool) {
	switch {
	case d.Easy >= 99 && d.Medium == 0 && d.Hard == 0:
		return DifficultyEasy, true
	case d.Medium >= 99 && d.Easy == 0 && d.Hard == 0:
		return DifficultyMedium, true
	case d.Hard >= 99 && d.Easy == 0 && d.Medium == 0:
		return DifficultyHard, true
	}
	return "", false
}

// DifficultySpec carries either a legacy single level or a distribution.
// Exactly one of the fields is expected to be set; Resolve collapses it.
type DifficultySpec struct {
	Level        Difficulty              `json:"level,omitempty"`
	Distribution *DifficultyDistribution `json:"distribution,omitempty"`
}

// Resolve turns the spec into a single distribution. An empty spec resolves to 100% medium.
func (s DifficultySpec) Resolve() DifficultyDistribution {
	if s.Distribution != nil {
		return *s.Distribution
	}
	return DistributionFromLegacy(s.Level)
}

// QuizMetadata describes how a quiz was produced.
type QuizMetadata struct {
	Title        string                 `json:"title" yaml:"title"`
	DocumentID   string                 `json:"documentId,omitempty" yaml:"documentId,omitempty"`
	Provider     ProviderType           `json:"provider" yaml:"provider"`
	Model        string                 `json:"model,omitempty" yaml:"model,omitempty"`
	Difficulty   DifficultyDistribution `json:"difficulty" yaml:"difficulty"`
	SourceFormat OutputFormat           `json:"sourceFormat" yaml:"sourceFormat"`
}

// Quiz is one generated batch of questions. It is never mutated after creation.
type Quiz struct {
	ID        string         `json:"id" yaml:"id"`
	Questions []QuizQuestion `json:"questions" yaml:"questions"`
	Metadata  QuizMetadata   `json:"metadata" yaml:"metadata"`
	CreatedAt time.Time      `json:"createdAt" yaml:"createdAt"`
}

// QuestionResult is the outcome of one answered question.
type QuestionResult struct {
	QuestionID    string `json:"questionId"`
	Chosen        string `json:"chosen"`
	CorrectAnswer string `json:"correctAnswer"`
	Correct       bool   `json:"correct"`
}

// ScoreResult summarises a set of answers against a quiz.
type ScoreResult struct {
	QuizID     string           `json:"quizId"`
	Total      int              `json:"total"`
	Correct    int              `json:"correct"`
	Unanswered int              `json:"unanswered"`
	Percentage float64          `json:"percentage"`
	Results    []QuestionResult `json:"results"`
}

// Score grades answers keyed by question ID. Comparison is exact on option text.
func (q *Quiz) Score(answers map[string]string) ScoreResult {
	res := ScoreResult{QuizID: q.ID, Total: len(q.Questions)}
	for _, question := range q.Questions {
		chosen, ok := answers[question.ID]
		r := QuestionResult{
			QuestionID:    question.ID,
			Chosen:        chosen,
			CorrectAnswer: question.CorrectAnswer,
			Correct:       ok && chosen == question.CorrectAnswer,
		}
		if !ok || chosen == "" {
			res.Unanswered++
		}
		if r.Correct {
			res.Correct++
		}
		res.Results = append(res.Results, r)
	}
	if res.Total > 0 {
		res.Percentage = float64(res.Correct) * 100 / float64(res.Total)
	}
	return res
}
