package middleware

import (
	"strconv"

	"doc-quiz/internal/domain"
	"doc-quiz/internal/validation"

	"github.com/gofiber/fiber/v2"
)

const (
	// LocalQuizID holds the validated :id route parameter.
	LocalQuizID = "validated_quiz_id"
	// LocalListLimit holds the validated ?limit query parameter.
	LocalListLimit = "validated_limit"

	defaultListLimit = 20
	maxListLimit     = 100
)

// ValidationMiddleware provides request validation middleware
type ValidationMiddleware struct {
	validator *validation.Validator
}

// NewValidationMiddleware creates a new validation middleware instance
func NewValidationMiddleware() *ValidationMiddleware {
	return &ValidationMiddleware{
		validator: validation.NewValidator(),
	}
}

// ValidateQuizID validates the :id path parameter
func (vm *ValidationMiddleware) ValidateQuizID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		quizID := c.Params("id")
		if errors := vm.validator.ValidateQuizID(quizID); len(errors) > 0 {
			return errors // This will be handled by ErrorHandler middleware
		}
		c.Locals(LocalQuizID, quizID)
		return c.Next()
	}
}

// ValidateListLimit validates the optional limit query parameter
func (vm *ValidationMiddleware) ValidateListLimit() fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit := defaultListLimit
		if raw := c.Query("limit"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil {
				return domain.ValidationErrors{domain.NewInvalidFormatError("limit", raw)}
			}
			if parsed < 1 || parsed > maxListLimit {
				return domain.ValidationErrors{domain.NewOutOfRangeError("limit", parsed, 1, maxListLimit)}
			}
			limit = parsed
		}
		c.Locals(LocalListLimit, limit)
		return c.Next()
	}
}
