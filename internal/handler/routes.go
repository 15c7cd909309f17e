package handler

import (
	"doc-quiz/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes mounts the quiz API under router. The static
// /quiz/status/ai route is registered ahead of /quiz/:id.
func RegisterRoutes(router fiber.Router, quiz *QuizHandler, upload *UploadHandler) {
	vm := middleware.NewValidationMiddleware()

	router.Post("/upload", upload.Upload)

	router.Post("/quiz/generate", quiz.GenerateQuiz)
	router.Get("/quiz/status/ai", quiz.AIStatus)
	router.Get("/quiz/:id", vm.ValidateQuizID(), quiz.GetQuiz)
	router.Delete("/quiz/:id", vm.ValidateQuizID(), quiz.DeleteQuiz)
	router.Get("/quiz/:id/export", vm.ValidateQuizID(), quiz.ExportQuiz)
	router.Post("/quiz/:id/score", vm.ValidateQuizID(), quiz.ScoreQuiz)
	router.Get("/quizzes", vm.ValidateListLimit(), quiz.ListQuizzes)
}
