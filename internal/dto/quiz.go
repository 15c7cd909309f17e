package dto

import (
	"doc-quiz/internal/domain"
)

// GenerateQuizRequest represents a quiz generation request
// @Description Request body for generating a quiz from document text
type GenerateQuizRequest struct {
	DocumentText           string                         `json:"documentText,omitempty"`
	DocumentID             string                         `json:"documentId,omitempty"`
	NumberOfQuestions      int                            `json:"numberOfQuestions,omitempty"`
	Difficulty             string                         `json:"difficulty,omitempty"`
	DifficultyDistribution *domain.DifficultyDistribution `json:"difficultyDistribution,omitempty"`
	AdditionalInstructions string                         `json:"additionalInstructions,omitempty"`
	Provider               string                         `json:"provider,omitempty"`
	Model                  string                         `json:"model,omitempty"`
	Temperature            *float64                       `json:"temperature,omitempty"`
	MaxTokens              int                            `json:"maxTokens,omitempty"`
}

// GenerateQuizResponse represents a generated quiz
type GenerateQuizResponse struct {
	Success   bool                  `json:"success"`
	QuizID    string                `json:"quizId"`
	Title     string                `json:"title,omitempty"`
	Questions []domain.QuizQuestion `json:"questions"`
	Provider  domain.ProviderType   `json:"provider"`
	Model     string                `json:"model,omitempty"`
}

// UploadResponse represents an uploaded document and its extracted text
type UploadResponse struct {
	Success  bool   `json:"success"`
	ID       string `json:"id"`
	Filename string `json:"filename"`
	Content  string `json:"content"`
}

// ScoreRequest maps question IDs to the chosen option text
// @Description Request body for scoring answers to a stored quiz
type ScoreRequest struct {
	Answers map[string]string `json:"answers"`
}

// ProviderStatus describes one registered provider
type ProviderStatus struct {
	Type         domain.ProviderType `json:"type"`
	Available    bool                `json:"available"`
	Model        string              `json:"model,omitempty"`
	OutputFormat domain.OutputFormat `json:"outputFormat"`
}

// AIStatusResponse reports whether any provider can serve requests
type AIStatusResponse struct {
	Available bool             `json:"available"`
	Providers []ProviderStatus `json:"providers"`
}

// QuizListResponse lists archived quizzes, newest first
type QuizListResponse struct {
	Quizzes []domain.QuizSummary `json:"quizzes"`
}
