package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"doc-quiz/internal/domain"
	"doc-quiz/internal/repository/models"
	"doc-quiz/internal/util"

	"github.com/jmoiron/sqlx"
)

// Columns are aliased in lower case; Oracle otherwise returns them upper-cased
// and sqlx cannot map them onto the db tags.
const selectArchivedQuiz = `SELECT
	id "id",
	title "title",
	document_id "document_id",
	provider "provider",
	model "model",
	difficulty "difficulty",
	source_format "source_format",
	question_count "question_count",
	questions "questions",
	created_at "created_at"
FROM quiz_archive`

// QuizArchiveAdapter implements domain.QuizArchive with sqlx. Queries are
// written with ? and rebound for the connected driver.
type QuizArchiveAdapter struct {
	db *sqlx.DB
}

func NewQuizArchiveAdapter(db *sqlx.DB) domain.QuizArchive {
	return &QuizArchiveAdapter{db: db}
}

func (a *QuizArchiveAdapter) Save(ctx context.Context, quiz *domain.Quiz) error {
	row := toArchivedQuiz(quiz)
	query := a.db.Rebind(`INSERT INTO quiz_archive
		(id, title, document_id, provider, model, difficulty, source_format, question_count, questions, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)

	_, err := a.db.ExecContext(ctx, query,
		row.ID, row.Title, row.DocumentID, row.Provider, row.Model, row.Difficulty,
		row.SourceFormat, row.QuestionCount, row.Questions, row.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to archive quiz %s: %w", quiz.ID, err)
	}
	return nil
}

// FindByID returns nil, nil when the quiz is not archived.
func (a *QuizArchiveAdapter) FindByID(ctx context.Context, id string) (*domain.Quiz, error) {
	var row models.ArchivedQuiz
	err := a.db.GetContext(ctx, &row, a.db.Rebind(selectArchivedQuiz+` WHERE id = ?`), id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get archived quiz %s: %w", id, err)
	}
	return toDomainQuiz(&row), nil
}

func (a *QuizArchiveAdapter) ListRecent(ctx context.Context, limit int) ([]domain.QuizSummary, error) {
	if limit <= 0 {
		limit = 20
	}
	limitClause := "LIMIT ?"
	if a.db.DriverName() == "oracle" {
		limitClause = "FETCH FIRST ? ROWS ONLY"
	}
	query := a.db.Rebind(`SELECT
		id "id",
		title "title",
		provider "provider",
		question_count "question_count",
		created_at "created_at"
	FROM quiz_archive
	ORDER BY created_at DESC ` + limitClause)

	var rows []models.ArchivedQuizSummary
	if err := a.db.SelectContext(ctx, &rows, query, limit); err != nil {
		return nil, fmt.Errorf("failed to list archived quizzes: %w", err)
	}

	summaries := make([]domain.QuizSummary, 0, len(rows))
	for _, row := range rows {
		summaries = append(summaries, domain.QuizSummary{
			ID:            row.ID,
			Title:         util.NullStringValue(row.Title),
			Provider:      domain.ProviderType(row.Provider),
			QuestionCount: row.QuestionCount,
			CreatedAt:     row.CreatedAt,
		})
	}
	return summaries, nil
}

func (a *QuizArchiveAdapter) Delete(ctx context.Context, id string) (bool, error) {
	res, err := a.db.ExecContext(ctx, a.db.Rebind(`DELETE FROM quiz_archive WHERE id = ?`), id)
	if err != nil {
		return false, fmt.Errorf("failed to delete archived quiz %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to delete archived quiz %s: %w", id, err)
	}
	return n > 0, nil
}

func toArchivedQuiz(q *domain.Quiz) *models.ArchivedQuiz {
	d := q.Metadata.Difficulty
	return &models.ArchivedQuiz{
		ID:            q.ID,
		Title:         util.StringToNullString(q.Metadata.Title),
		DocumentID:    util.StringToNullString(q.Metadata.DocumentID),
		Provider:      string(q.Metadata.Provider),
		Model:         util.StringToNullString(q.Metadata.Model),
		Difficulty:    util.StringToNullString(fmt.Sprintf("%d/%d/%d", d.Easy, d.Medium, d.Hard)),
		SourceFormat:  util.StringToNullString(string(q.Metadata.SourceFormat)),
		QuestionCount: len(q.Questions),
		Questions:     models.QuestionList(q.Questions),
		CreatedAt:     q.CreatedAt,
	}
}

func toDomainQuiz(row *models.ArchivedQuiz) *domain.Quiz {
	var d domain.DifficultyDistribution
	// A malformed column leaves the zero distribution; the questions are what matter.
	_, _ = fmt.Sscanf(util.NullStringValue(row.Difficulty), "%d/%d/%d", &d.Easy, &d.Medium, &d.Hard)

	questions := []domain.QuizQuestion(row.Questions)
	if questions == nil {
		questions = []domain.QuizQuestion{}
	}
	return &domain.Quiz{
		ID:        row.ID,
		Questions: questions,
		Metadata: domain.QuizMetadata{
			Title:        util.NullStringValue(row.Title),
			DocumentID:   util.NullStringValue(row.DocumentID),
			Provider:     domain.ProviderType(row.Provider),
			Model:        util.NullStringValue(row.Model),
			Difficulty:   d,
			SourceFormat: domain.OutputFormat(util.NullStringValue(row.SourceFormat)),
		},
		CreatedAt: row.CreatedAt,
	}
}
