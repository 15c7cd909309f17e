// Package extract pulls plain text out of uploaded documents so it can be
// sent to a quiz provider.
package extract

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"doc-quiz/internal/domain"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
)

type extractFunc func(data []byte) (string, error)

var extractors = map[string]extractFunc{
	".txt":  plainText,
	".md":   plainText,
	".html": htmlText,
	".htm":  htmlText,
	".docx": docxText,
	".pdf":  pdfText,
}

// SupportedExtensions lists the accepted upload extensions, lower-case with the dot.
func SupportedExtensions() []string {
	return []string{".pdf", ".docx", ".txt", ".md", ".html"}
}

// IsSupported reports whether filename has an extension Text can read.
func IsSupported(filename string) bool {
	_, ok := extractors[strings.ToLower(filepath.Ext(filename))]
	return ok
}

// Text extracts the text of a document based on its file extension.
func Text(filename string, data []byte) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	fn, ok := extractors[ext]
	if !ok {
		return "", domain.NewUnsupportedFileTypeError(ext)
	}
	text, err := fn(data)
	if err != nil {
		return "", fmt.Errorf("extract %s: %w", ext, err)
	}
	return strings.TrimSpace(text), nil
}

func plainText(data []byte) (string, error) {
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	if !utf8.Valid(data) {
		return "", fmt.Errorf("file is not valid UTF-8 text")
	}
	return string(data), nil
}

// htmlText converts HTML to markdown, which keeps headings and lists readable for the model.
func htmlText(data []byte) (string, error) {
	markdown, err := htmltomarkdown.ConvertString(string(data))
	if err != nil {
		return "", fmt.Errorf("converting HTML to markdown: %w", err)
	}
	return markdown, nil
}
