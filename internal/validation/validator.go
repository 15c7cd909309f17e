package validation

import (
	"strings"

	"doc-quiz/internal/domain"
	"doc-quiz/internal/dto"
	"doc-quiz/internal/util"
)

const (
	maxInstructionsLength = 2000
	maxQuestionCount      = 100
)

// Validator provides request validation functionality
type Validator struct{}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateGenerateRequest checks field shapes. The question count is clamped
// by the service rather than rejected here, except for values that are clearly wrong.
func (v *Validator) ValidateGenerateRequest(req *dto.GenerateQuizRequest) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if strings.TrimSpace(req.DocumentText) == "" && strings.TrimSpace(req.DocumentID) == "" {
		errors = append(errors, domain.NewMissingFieldError("documentText"))
	}

	if req.NumberOfQuestions < 0 || req.NumberOfQuestions > maxQuestionCount {
		errors = append(errors, domain.NewOutOfRangeError("numberOfQuestions", req.NumberOfQuestions, 0, maxQuestionCount))
	}

	if req.DifficultyDistribution != nil {
		if err := req.DifficultyDistribution.Validate(); err != nil {
			errors = append(errors, domain.ValidationError{
				Field:   "difficultyDistribution",
				Message: err.Error(),
				Value:   req.DifficultyDistribution,
			})
		}
	} else if req.Difficulty != "" {
		if _, ok := domain.ParseDifficulty(req.Difficulty); !ok {
			errors = append(errors, domain.NewInvalidFormatError("difficulty", req.Difficulty))
		}
	}

	if len(req.AdditionalInstructions) > maxInstructionsLength {
		errors = append(errors, domain.NewOutOfRangeError("additionalInstructions", len(req.AdditionalInstructions), 0, maxInstructionsLength))
	}

	if req.Temperature != nil && (*req.Temperature < 0 || *req.Temperature > 2) {
		errors = append(errors, domain.NewOutOfRangeError("temperature", *req.Temperature, 0, 2))
	}

	if req.MaxTokens < 0 {
		errors = append(errors, domain.NewInvalidFormatError("maxTokens", req.MaxTokens))
	}

	return errors
}

// ValidateQuizID requires a ULID, the format quiz IDs are minted in.
func (v *Validator) ValidateQuizID(quizID string) domain.ValidationErrors {
	if strings.TrimSpace(quizID) == "" {
		return domain.ValidationErrors{domain.NewMissingFieldError("id")}
	}
	if !util.IsULID(quizID) {
		return domain.ValidationErrors{domain.NewInvalidFormatError("id", quizID)}
	}
	return nil
}

// ValidateScoreRequest requires at least one answer.
func (v *Validator) ValidateScoreRequest(req *dto.ScoreRequest) domain.ValidationErrors {
	if len(req.Answers) == 0 {
		return domain.ValidationErrors{domain.NewMissingFieldError("answers")}
	}
	return nil
}
