package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"doc-quiz/internal/cache"
	"doc-quiz/internal/config"
	"doc-quiz/internal/domain"
	"doc-quiz/internal/extract"
	"doc-quiz/internal/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DocumentService stores uploads and serves their extracted text.
type DocumentService interface {
	Upload(ctx context.Context, filename string, data []byte) (*domain.Document, error)
	Content(ctx context.Context, documentID string) (string, error)
}

type documentService struct {
	cache   domain.Cache
	dir     string
	maxSize int64
	ttl     time.Duration
}

func NewDocumentService(c domain.Cache, cfg config.UploadsConfig, ttl time.Duration) DocumentService {
	return &documentService{
		cache:   c,
		dir:     cfg.Dir,
		maxSize: int64(cfg.MaxSizeMB) << 20,
		ttl:     ttl,
	}
}

// Upload writes the file as <uuid><ext> under the uploads directory and caches its text.
func (s *documentService) Upload(ctx context.Context, filename string, data []byte) (*domain.Document, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if !extract.IsSupported(filename) {
		return nil, domain.NewUnsupportedFileTypeError(ext)
	}
	if len(data) == 0 {
		return nil, domain.NewInvalidInputError("uploaded file is empty")
	}
	if s.maxSize > 0 && int64(len(data)) > s.maxSize {
		return nil, domain.NewInvalidInputError(fmt.Sprintf("file exceeds the %d MB upload limit", s.maxSize>>20))
	}

	content, err := extract.Text(filename, data)
	if err != nil {
		if domain.HasCode(err, domain.CodeUnsupportedFileType) {
			return nil, err
		}
		return nil, domain.NewInvalidInputError(fmt.Sprintf("could not read %s: %v", filename, err))
	}
	if content == "" {
		return nil, domain.NewInvalidInputError("no text could be extracted from the document")
	}

	id := uuid.NewString()
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return nil, domain.NewInternalError("failed to create uploads directory", err)
	}
	path := filepath.Join(s.dir, id+ext)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return nil, domain.NewInternalError("failed to save uploaded file", err)
	}

	if err := s.cache.Set(ctx, cache.DocumentKey(id), content, s.ttl); err != nil {
		// The file on disk can still be re-extracted.
		logger.Get().Warn("Failed to cache document text", zap.Error(err), zap.String("documentID", id))
	}

	logger.Get().Info("Document uploaded",
		zap.String("documentID", id),
		zap.String("filename", filename),
		zap.Int("size", len(data)),
		zap.Int("contentLength", len(content)))

	return &domain.Document{
		ID:         id,
		Filename:   filename,
		Extension:  ext,
		Path:       path,
		Size:       int64(len(data)),
		Content:    content,
		UploadedAt: time.Now(),
	}, nil
}

// Content returns cached text, re-extracting from disk after the cache entry expires.
func (s *documentService) Content(ctx context.Context, documentID string) (string, error) {
	if _, err := uuid.Parse(documentID); err != nil {
		return "", domain.NewDocumentNotFoundError(documentID)
	}

	text, err := s.cache.Get(ctx, cache.DocumentKey(documentID))
	if err == nil && text != "" {
		return text, nil
	}
	if err != nil && !errors.Is(err, domain.ErrCacheMiss) {
		logger.Get().Warn("Document cache read failed", zap.Error(err), zap.String("documentID", documentID))
	}

	matches, err := filepath.Glob(filepath.Join(s.dir, documentID+".*"))
	if err != nil || len(matches) == 0 {
		return "", domain.NewDocumentNotFoundError(documentID)
	}
	data, err := os.ReadFile(matches[0])
	if err != nil {
		return "", domain.NewInternalError("failed to read uploaded file", err)
	}
	text, err = extract.Text(matches[0], data)
	if err != nil {
		return "", domain.NewInternalError("failed to extract uploaded file", err)
	}
	if err := s.cache.Set(ctx, cache.DocumentKey(documentID), text, s.ttl); err != nil {
		logger.Get().Warn("Failed to re-cache document text", zap.Error(err), zap.String("documentID", documentID))
	}
	return text, nil
}
