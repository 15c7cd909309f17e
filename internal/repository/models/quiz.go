package models

import (
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"doc-quiz/internal/domain"
)

// QuestionList stores a quiz's questions as a JSON text column.
type QuestionList []domain.QuizQuestion

// Value writes an empty JSON array for nil so the NOT NULL column is always valid.
func (q QuestionList) Value() (driver.Value, error) {
	if q == nil {
		return "[]", nil
	}
	data, err := json.Marshal([]domain.QuizQuestion(q))
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Scan accepts the string/[]byte forms SQLite and Oracle CLOBs return.
func (q *QuestionList) Scan(value interface{}) error {
	var data []byte
	switch v := value.(type) {
	case nil:
		*q = QuestionList{}
		return nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("QuestionList Scan: unsupported type %T", value)
	}
	if len(data) == 0 || string(data) == "null" {
		*q = QuestionList{}
		return nil
	}
	return json.Unmarshal(data, (*[]domain.QuizQuestion)(q))
}

// ArchivedQuiz is one row of quiz_archive. Optional text columns are
// nullable because Oracle stores empty strings as NULL.
type ArchivedQuiz struct {
	ID            string         `db:"id"`
	Title         sql.NullString `db:"title"`
	DocumentID    sql.NullString `db:"document_id"`
	Provider      string         `db:"provider"`
	Model         sql.NullString `db:"model"`
	Difficulty    sql.NullString `db:"difficulty"`
	SourceFormat  sql.NullString `db:"source_format"`
	QuestionCount int            `db:"question_count"`
	Questions     QuestionList   `db:"questions"`
	CreatedAt     time.Time      `db:"created_at"`
}

// ArchivedQuizSummary is the listing projection of quiz_archive.
type ArchivedQuizSummary struct {
	ID            string         `db:"id"`
	Title         sql.NullString `db:"title"`
	Provider      string         `db:"provider"`
	QuestionCount int            `db:"question_count"`
	CreatedAt     time.Time      `db:"created_at"`
}
