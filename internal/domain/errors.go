package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrorCode represents a specific type of error in the domain
type ErrorCode string

const (
	// Common errors
	CodeInternal     ErrorCode = "INTERNAL_ERROR"
	CodeInvalidInput ErrorCode = "INVALID_INPUT"
	CodeValidation   ErrorCode = "VALIDATION_ERROR"

	// Response normalization errors
	CodeParse             ErrorCode = "PARSE_ERROR"
	CodeMalformedResponse ErrorCode = "MALFORMED_RESPONSE"
	CodeInvalidShape      ErrorCode = "INVALID_SHAPE"

	// Provider selection errors
	CodeUnsupportedProvider ErrorCode = "UNSUPPORTED_PROVIDER"
	CodeProviderUnavailable ErrorCode = "PROVIDER_UNAVAILABLE"
	CodeNoProviderAvailable ErrorCode = "NO_PROVIDER_AVAILABLE"
	CodeLLMServiceError     ErrorCode = "LLM_SERVICE_ERROR"

	// Quiz and document errors
	CodeQuizNotFound        ErrorCode = "QUIZ_NOT_FOUND"
	CodeDocumentNotFound    ErrorCode = "DOCUMENT_NOT_FOUND"
	CodeUnsupportedFormat   ErrorCode = "UNSUPPORTED_FORMAT"
	CodeUnsupportedFileType ErrorCode = "UNSUPPORTED_FILE_TYPE"
)

// DomainError represents a domain-specific error
type DomainError struct {
	Code    ErrorCode              `json:"code"`
	Message string                 `json:"message"`
	Err     error                  `json:"-"`
	Context map[string]interface{} `json:"-"`
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error { return e.Err }

// MarshalJSON implements the json.Marshaler interface
func (e *DomainError) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}{
		Code:    string(e.Code),
		Message: e.Message,
	})
}

// WithContext attaches a detail entry. Entries are surfaced in HTTP error
// responses except raw provider output, which is only logged.
func (e *DomainError) WithContext(key string, value interface{}) *DomainError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// NewError creates a new DomainError
func NewError(code ErrorCode, message string, err error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// HasCode reports whether err wraps a DomainError with the given code.
func HasCode(err error, code ErrorCode) bool {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Code == code
	}
	return false
}

// Helper functions for common errors
func NewInvalidInputError(message string) *DomainError {
	return NewError(CodeInvalidInput, message, nil)
}

func NewInternalError(message string, err error) *DomainError {
	return NewError(CodeInternal, message, err)
}

func NewParseError(message string) *DomainError {
	return NewError(CodeParse, message, nil)
}

// NewMalformedResponseError keeps the cleaned text so callers can log what failed to parse.
func NewMalformedResponseError(cleaned string, err error) *DomainError {
	return NewError(CodeMalformedResponse, "Failed to parse JSON response", err).
		WithContext("cleaned", cleaned)
}

func NewInvalidShapeError(message string) *DomainError {
	return NewError(CodeInvalidShape, message, nil)
}

func NewUnsupportedProviderError(provider string) *DomainError {
	return NewError(CodeUnsupportedProvider, fmt.Sprintf("Unsupported provider: %s", provider), nil)
}

func NewProviderUnavailableError(provider ProviderType) *DomainError {
	return NewError(CodeProviderUnavailable,
		fmt.Sprintf("Provider %s is not available. Please check your API key.", provider), nil).
		WithContext("provider", string(provider))
}

func NewNoProviderAvailableError() *DomainError {
	return NewError(CodeNoProviderAvailable, "No AI provider is configured", nil)
}

func NewLLMServiceError(provider ProviderType, err error) *DomainError {
	return NewError(CodeLLMServiceError, "Failed to process with LLM service", err).
		WithContext("provider", string(provider))
}

func NewQuizNotFoundError(quizID string) *DomainError {
	return NewError(CodeQuizNotFound, fmt.Sprintf("Quiz not found with ID: %s", quizID), nil)
}

func NewDocumentNotFoundError(documentID string) *DomainError {
	return NewError(CodeDocumentNotFound, fmt.Sprintf("Document not found with ID: %s", documentID), nil)
}

func NewUnsupportedFormatError(format string) *DomainError {
	return NewError(CodeUnsupportedFormat, fmt.Sprintf("Unsupported export format: %s", format), nil)
}

func NewUnsupportedFileTypeError(ext string) *DomainError {
	return NewError(CodeUnsupportedFileType, fmt.Sprintf("Unsupported file type: %s", ext), nil)
}

// ValidationError describes a single invalid request field.
type ValidationError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors collects field errors for a single request.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	msgs := make([]string, len(e))
	for i, v := range e {
		msgs[i] = v.Error()
	}
	return strings.Join(msgs, "; ")
}

func NewMissingFieldError(field string) ValidationError {
	return ValidationError{Field: field, Message: "field is required"}
}

func NewInvalidFormatError(field string, value interface{}) ValidationError {
	return ValidationError{Field: field, Message: "invalid format", Value: value}
}

func NewOutOfRangeError(field string, value interface{}, min, max int) ValidationError {
	return ValidationError{
		Field:   field,
		Message: fmt.Sprintf("must be between %d and %d", min, max),
		Value:   value,
	}
}
