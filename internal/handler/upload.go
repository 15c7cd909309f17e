package handler

import (
	"io"

	"doc-quiz/internal/domain"
	"doc-quiz/internal/dto"
	"doc-quiz/internal/service"

	"github.com/gofiber/fiber/v2"
)

// UploadHandler accepts documents for later quiz generation
type UploadHandler struct {
	documents service.DocumentService
}

// NewUploadHandler creates a new UploadHandler instance
func NewUploadHandler(documents service.DocumentService) *UploadHandler {
	return &UploadHandler{documents: documents}
}

// Upload godoc
// @Summary Upload a document
// @Description Stores a txt, md, html, docx or pdf file and returns its extracted text
// @Tags documents
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Document"
// @Success 200 {object} dto.UploadResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Router /upload [post]
func (h *UploadHandler) Upload(c *fiber.Ctx) error {
	header, err := c.FormFile("file")
	if err != nil {
		return domain.NewInvalidInputError("No file uploaded")
	}

	f, err := header.Open()
	if err != nil {
		return domain.NewInternalError("failed to open upload", err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return domain.NewInternalError("failed to read upload", err)
	}

	doc, err := h.documents.Upload(c.UserContext(), header.Filename, data)
	if err != nil {
		return err
	}

	return c.JSON(dto.UploadResponse{
		Success:  true,
		ID:       doc.ID,
		Filename: doc.Filename,
		Content:  doc.Content,
	})
}
