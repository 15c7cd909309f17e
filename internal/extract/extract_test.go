package extract

import (
	"archive/zip"
	"bytes"
	"testing"

	"doc-quiz/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildDocx(t *testing.T, documentXML string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/document.xml")
	require.NoError(t, err)
	_, err = w.Write([]byte(documentXML))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestText_PlainAndMarkdown(t *testing.T) {
	text, err := Text("notes.TXT", []byte("\xef\xbb\xbf  Go has goroutines.\n"))
	require.NoError(t, err)
	assert.Equal(t, "Go has goroutines.", text)

	text, err = Text("readme.md", []byte("# Title\n\nBody"))
	require.NoError(t, err)
	assert.Equal(t, "# Title\n\nBody", text)

	_, err = Text("binary.txt", []byte{0xff, 0xfe, 0xfd})
	assert.Error(t, err)
}

func TestText_HTML(t *testing.T) {
	text, err := Text("page.html", []byte("<html><body><h1>Channels</h1><p>Send and <strong>receive</strong>.</p></body></html>"))
	require.NoError(t, err)
	assert.Contains(t, text, "# Channels")
	assert.Contains(t, text, "**receive**")
	assert.NotContains(t, text, "<p>")
}

func TestText_Docx(t *testing.T) {
	doc := `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:r><w:t>First</w:t></w:r><w:r><w:tab/><w:t xml:space="preserve">paragraph</w:t></w:r></w:p>
    <w:p><w:r><w:t>Second</w:t><w:br/><w:t>line</w:t></w:r></w:p>
  </w:body>
</w:document>`

	text, err := Text("essay.docx", buildDocx(t, doc))
	require.NoError(t, err)
	assert.Equal(t, "First\tparagraph\nSecond\nline", text)
}

func TestText_DocxWithoutDocument(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	_, err := zw.Create("other.xml")
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	_, err = Text("broken.docx", buf.Bytes())
	assert.ErrorContains(t, err, "word/document.xml not found")

	_, err = Text("broken.docx", []byte("not a zip"))
	assert.Error(t, err)
}

func TestText_InvalidPDF(t *testing.T) {
	_, err := Text("scan.pdf", []byte("%PDF-garbage"))
	assert.Error(t, err)
}

func TestText_Unsupported(t *testing.T) {
	_, err := Text("slides.pptx", []byte("x"))
	assert.True(t, domain.HasCode(err, domain.CodeUnsupportedFileType))

	assert.True(t, IsSupported("a.PDF"))
	assert.False(t, IsSupported("a.exe"))
	assert.False(t, IsSupported("noext"))
}
