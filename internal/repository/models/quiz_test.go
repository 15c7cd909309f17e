package models

import (
	"testing"

	"doc-quiz/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuestionList_Value(t *testing.T) {
	val, err := QuestionList(nil).Value()
	require.NoError(t, err)
	assert.Equal(t, "[]", val)

	val, err = QuestionList{{ID: "1", Question: "Q?", Options: []string{"a", "b", "c", "d"}, CorrectAnswer: "a",
		Difficulty: domain.DifficultyEasy, Category: "general"}}.Value()
	require.NoError(t, err)
	assert.Contains(t, val, `"correctAnswer":"a"`)
}

func TestQuestionList_Scan(t *testing.T) {
	tests := []struct {
		name    string
		input   interface{}
		want    QuestionList
		wantErr bool
	}{
		{"nil", nil, QuestionList{}, false},
		{"empty string", "", QuestionList{}, false},
		{"json null", []byte("null"), QuestionList{}, false},
		{"string", `[{"id":"1","question":"Q?","options":["a","b","c","d"],"correctAnswer":"b","explanation":"","difficulty":"hard","category":"general"}]`,
			QuestionList{{ID: "1", Question: "Q?", Options: []string{"a", "b", "c", "d"}, CorrectAnswer: "b",
				Difficulty: domain.DifficultyHard, Category: "general"}}, false},
		{"unsupported", 42, nil, true},
		{"bad json", "[{", nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got QuestionList
			err := got.Scan(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
