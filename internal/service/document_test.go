package service

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"doc-quiz/internal/adapter"
	"doc-quiz/internal/cache"
	"doc-quiz/internal/config"
	"doc-quiz/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDocumentService(t *testing.T) (DocumentService, *adapter.MemoryCache, string) {
	t.Helper()
	dir := t.TempDir()
	memory := adapter.NewMemoryCache()
	return NewDocumentService(memory, config.UploadsConfig{Dir: dir, MaxSizeMB: 1}, time.Hour), memory, dir
}

func TestDocumentService_Upload(t *testing.T) {
	svc, memory, dir := newDocumentService(t)
	ctx := context.Background()

	doc, err := svc.Upload(ctx, "Notes.MD", []byte("# Goroutines\n\nLightweight threads."))
	require.NoError(t, err)
	assert.Equal(t, ".md", doc.Extension)
	assert.Equal(t, "# Goroutines\n\nLightweight threads.", doc.Content)
	assert.Equal(t, filepath.Join(dir, doc.ID+".md"), doc.Path)

	onDisk, err := os.ReadFile(doc.Path)
	require.NoError(t, err)
	assert.Equal(t, "# Goroutines\n\nLightweight threads.", string(onDisk))

	cached, err := memory.Get(ctx, cache.DocumentKey(doc.ID))
	require.NoError(t, err)
	assert.Equal(t, doc.Content, cached)

	text, err := svc.Content(ctx, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, doc.Content, text)
}

func TestDocumentService_UploadRejects(t *testing.T) {
	svc, _, _ := newDocumentService(t)
	ctx := context.Background()

	_, err := svc.Upload(ctx, "deck.pptx", []byte("x"))
	assert.True(t, domain.HasCode(err, domain.CodeUnsupportedFileType))

	_, err = svc.Upload(ctx, "empty.txt", nil)
	assert.True(t, domain.HasCode(err, domain.CodeInvalidInput))

	_, err = svc.Upload(ctx, "blank.txt", []byte("   \n"))
	assert.True(t, domain.HasCode(err, domain.CodeInvalidInput))

	_, err = svc.Upload(ctx, "big.txt", []byte(strings.Repeat("a", 2<<20)))
	assert.True(t, domain.HasCode(err, domain.CodeInvalidInput))
}

func TestDocumentService_ContentReextractsAfterCacheExpiry(t *testing.T) {
	svc, memory, _ := newDocumentService(t)
	ctx := context.Background()

	doc, err := svc.Upload(ctx, "a.txt", []byte("Channels carry values."))
	require.NoError(t, err)
	require.NoError(t, memory.Delete(ctx, cache.DocumentKey(doc.ID)))

	text, err := svc.Content(ctx, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, "Channels carry values.", text)
}

func TestDocumentService_ContentNotFound(t *testing.T) {
	svc, _, _ := newDocumentService(t)

	_, err := svc.Content(context.Background(), "3f1c2a8e-6a1b-4a55-9b51-2d1f9b0f7a11")
	assert.True(t, domain.HasCode(err, domain.CodeDocumentNotFound))

	_, err = svc.Content(context.Background(), "../../etc/passwd")
	assert.True(t, domain.HasCode(err, domain.CodeDocumentNotFound))
}
