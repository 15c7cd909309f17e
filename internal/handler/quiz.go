package handler

import (
	"fmt"

	"doc-quiz/internal/domain"
	"doc-quiz/internal/dto"
	"doc-quiz/internal/logger"
	"doc-quiz/internal/middleware"
	"doc-quiz/internal/service"
	"doc-quiz/internal/validation"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// QuizHandler handles quiz-related HTTP requests
type QuizHandler struct {
	service   service.QuizService
	validator *validation.Validator
}

// NewQuizHandler creates a new QuizHandler instance
func NewQuizHandler(service service.QuizService) *QuizHandler {
	return &QuizHandler{
		service:   service,
		validator: validation.NewValidator(),
	}
}

// GenerateQuiz godoc
// @Summary Generate a quiz
// @Description Generates multiple-choice questions from document text or an uploaded document
// @Tags quiz
// @Accept json
// @Produce json
// @Param request body dto.GenerateQuizRequest true "Generation request"
// @Success 200 {object} dto.GenerateQuizResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 422 {object} middleware.ErrorResponse
// @Failure 502 {object} middleware.ErrorResponse
// @Failure 503 {object} middleware.ErrorResponse
// @Router /quiz/generate [post]
func (h *QuizHandler) GenerateQuiz(c *fiber.Ctx) error {
	var req dto.GenerateQuizRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("request body must be valid JSON")
	}
	if errs := h.validator.ValidateGenerateRequest(&req); len(errs) > 0 {
		return errs
	}

	resp, err := h.service.Generate(c.UserContext(), &req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// GetQuiz godoc
// @Summary Get a generated quiz
// @Tags quiz
// @Produce json
// @Param id path string true "Quiz ID"
// @Success 200 {object} domain.Quiz
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /quiz/{id} [get]
func (h *QuizHandler) GetQuiz(c *fiber.Ctx) error {
	quiz, err := h.service.GetQuiz(c.UserContext(), quizID(c))
	if err != nil {
		return err
	}
	return c.JSON(quiz)
}

// ExportQuiz godoc
// @Summary Export a quiz
// @Description Downloads a quiz as json, text, html, markdown or yaml
// @Tags quiz
// @Produce octet-stream
// @Param id path string true "Quiz ID"
// @Param format query string false "Export format" Enums(json, text, html, markdown, yaml)
// @Success 200 {file} file
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /quiz/{id}/export [get]
func (h *QuizHandler) ExportQuiz(c *fiber.Ctx) error {
	id := quizID(c)
	doc, err := h.service.Export(c.UserContext(), id, c.Query("format"))
	if err != nil {
		return err
	}

	c.Set(fiber.HeaderContentType, doc.ContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, doc.Filename(id)))
	return c.Send(doc.Data)
}

// ScoreQuiz godoc
// @Summary Score answers
// @Description Scores the submitted answers against a stored quiz
// @Tags quiz
// @Accept json
// @Produce json
// @Param id path string true "Quiz ID"
// @Param request body dto.ScoreRequest true "Answers keyed by question ID"
// @Success 200 {object} domain.ScoreResult
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /quiz/{id}/score [post]
func (h *QuizHandler) ScoreQuiz(c *fiber.Ctx) error {
	var req dto.ScoreRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("request body must be valid JSON")
	}
	if errs := h.validator.ValidateScoreRequest(&req); len(errs) > 0 {
		return errs
	}

	result, err := h.service.Score(c.UserContext(), quizID(c), req.Answers)
	if err != nil {
		return err
	}
	return c.JSON(result)
}

// DeleteQuiz godoc
// @Summary Delete a quiz
// @Description Evicts a quiz from the store and the archive
// @Tags quiz
// @Param id path string true "Quiz ID"
// @Success 204
// @Failure 404 {object} middleware.ErrorResponse
// @Router /quiz/{id} [delete]
func (h *QuizHandler) DeleteQuiz(c *fiber.Ctx) error {
	if err := h.service.Delete(c.UserContext(), quizID(c)); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListQuizzes godoc
// @Summary List recent quizzes
// @Tags quiz
// @Produce json
// @Param limit query int false "Maximum number of quizzes" minimum(1) maximum(100)
// @Success 200 {object} dto.QuizListResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Router /quizzes [get]
func (h *QuizHandler) ListQuizzes(c *fiber.Ctx) error {
	limit, _ := c.Locals(middleware.LocalListLimit).(int)
	quizzes, err := h.service.ListRecent(c.UserContext(), limit)
	if err != nil {
		return err
	}
	if quizzes == nil {
		quizzes = []domain.QuizSummary{}
	}
	return c.JSON(dto.QuizListResponse{Quizzes: quizzes})
}

// AIStatus godoc
// @Summary Provider status
// @Description Reports which LLM providers are configured and reachable
// @Tags quiz
// @Produce json
// @Success 200 {object} dto.AIStatusResponse
// @Router /quiz/status/ai [get]
func (h *QuizHandler) AIStatus(c *fiber.Ctx) error {
	status := h.service.AIStatus()
	if !status.Available {
		logger.Get().Warn("No LLM provider available", zap.Int("providers", len(status.Providers)))
	}
	return c.JSON(status)
}

func quizID(c *fiber.Ctx) string {
	if id, ok := c.Locals(middleware.LocalQuizID).(string); ok {
		return id
	}
	return c.Params("id")
}
