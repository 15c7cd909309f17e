package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseDifficulty(t *testing.T) {
	tests := []struct {
		in     string
		want   Difficulty
		wantOK bool
	}{
		{"easy", DifficultyEasy, true},
		{"Beginner", DifficultyEasy, true},
		{" basic ", DifficultyEasy, true},
		{"medium", DifficultyMedium, true},
		{"INTERMEDIATE", DifficultyMedium, true},
		{"moderate", DifficultyMedium, true},
		{"hard", DifficultyHard, true},
		{"advanced", DifficultyHard, true},
		{"Difficult", DifficultyHard, true},
		{"expert", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseDifficulty(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDifficultyDistribution_Validate(t *testing.T) {
	tests := []struct {
		name    string
		dist    DifficultyDistribution
		wantErr bool
	}{
		{"exact", DifficultyDistribution{Easy: 30, Medium: 50, Hard: 20}, false},
		{"rounded down", DifficultyDistribution{Easy: 33, Medium: 33, Hard: 33}, false},
		{"rounded up", DifficultyDistribution{Easy: 34, Medium: 34, Hard: 33}, false},
		{"too low", DifficultyDistribution{Easy: 30, Medium: 30, Hard: 30}, true},
		{"too high", DifficultyDistribution{Easy: 50, Medium: 50, Hard: 10}, true},
		{"negative share", DifficultyDistribution{Easy: -10, Medium: 60, Hard: 50}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.dist.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				assert.True(t, HasCode(err, CodeInvalidInput))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDifficultySpec_Resolve(t *testing.T) {
	assert.Equal(t, DifficultyDistribution{Hard: 100}, DifficultySpec{Level: DifficultyHard}.Resolve())
	assert.Equal(t, DifficultyDistribution{Medium: 100}, DifficultySpec{}.Resolve())

	dist := DifficultyDistribution{Easy: 20, Medium: 40, Hard: 40}
	assert.Equal(t, dist, DifficultySpec{Level: DifficultyEasy, Distribution: &dist}.Resolve())

	level, ok := DistributionFromLegacy(DifficultyEasy).Single()
	assert.True(t, ok)
	assert.Equal(t, DifficultyEasy, level)

	_, ok = dist.Single()
	assert.False(t, ok)
}

func TestQuiz_Score(t *testing.T) {
	quiz := &Quiz{
		ID: "q1",
		Questions: []QuizQuestion{
			{ID: "1", Options: []string{"a", "b", "c", "d"}, CorrectAnswer: "a"},
			{ID: "2", Options: []string{"a", "b", "c", "d"}, CorrectAnswer: "b"},
			{ID: "3", Options: []string{"a", "b", "c", "d"}, CorrectAnswer: "c"},
			{ID: "4", Options: []string{"a", "b", "c", "d"}, CorrectAnswer: "d"},
		},
	}

	res := quiz.Score(map[string]string{"1": "a", "2": "c", "3": "c"})

	assert.Equal(t, 4, res.Total)
	assert.Equal(t, 2, res.Correct)
	assert.Equal(t, 1, res.Unanswered)
	assert.InDelta(t, 50.0, res.Percentage, 0.001)
	assert.Len(t, res.Results, 4)
	assert.False(t, res.Results[1].Correct)
	assert.Equal(t, "b", res.Results[1].CorrectAnswer)
}

func TestQuizQuestion_AnswerIndex(t *testing.T) {
	q := QuizQuestion{Options: []string{"w", "x", "y", "z"}, CorrectAnswer: "y"}
	assert.True(t, q.HasAnswerAmongOptions())
	assert.Equal(t, 2, q.AnswerIndex())

	q.CorrectAnswer = "Y"
	assert.False(t, q.HasAnswerAmongOptions())
	assert.Equal(t, -1, q.AnswerIndex())
}

func TestDomainError(t *testing.T) {
	err := NewProviderUnavailableError(ProviderGemini)
	assert.Equal(t, CodeProviderUnavailable, err.Code)
	assert.Equal(t, "gemini", err.Context["provider"])
	assert.True(t, HasCode(err, CodeProviderUnavailable))
	assert.False(t, HasCode(err, CodeUnsupportedProvider))

	cause := NewInvalidShapeError("missing or invalid metadata")
	wrapped := NewLLMServiceError(ProviderOpenAI, cause)
	assert.ErrorIs(t, wrapped, cause)
	assert.Contains(t, wrapped.Error(), "missing or invalid metadata")
}
