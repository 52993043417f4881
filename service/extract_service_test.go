package service

import (
	"archive/zip"
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tieubaoca/thinknotes-be/types"
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

func TestExtractUnsupportedFormat(t *testing.T) {
	svc := NewExtractService()

	_, err := svc.Extract([]byte("hello"), "notes.txt")
	assert.ErrorIs(t, err, types.ErrUnsupportedFormat)

	_, err = svc.Extract([]byte("hello"), "noextension")
	assert.ErrorIs(t, err, types.ErrUnsupportedFormat)
}

func TestExtractDocx(t *testing.T) {
	docXML := `<?xml version="1.0" encoding="UTF-8"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:r><w:t>First paragraph</w:t></w:r></w:p>
    <w:p><w:r><w:t>   </w:t></w:r></w:p>
    <w:p><w:r><w:t>Second</w:t><w:tab/><w:t>half</w:t></w:r></w:p>
  </w:body>
</w:document>`
	svc := NewExtractService()

	text, err := svc.Extract(buildDocx(t, docXML), "Notes.DOCX")
	require.NoError(t, err)
	assert.Equal(t, "First paragraph\nSecond half", text)
}

func TestExtractDocxCorrupt(t *testing.T) {
	svc := NewExtractService()

	_, err := svc.Extract([]byte("this is not a zip archive"), "broken.docx")
	assert.ErrorIs(t, err, types.ErrExtractionFailed)
}

func TestExtractDocxMissingDocument(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/styles.xml")
	require.NoError(t, err)
	_, err = w.Write([]byte("<styles/>"))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	svc := NewExtractService()
	_, err = svc.Extract(buf.Bytes(), "empty.docx")
	assert.ErrorIs(t, err, types.ErrExtractionFailed)
}

func TestExtractPDFCorrupt(t *testing.T) {
	svc := NewExtractService()

	_, err := svc.Extract([]byte("%PDF-1.4 but truncated garbage"), "broken.pdf")
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrExtractionFailed))
}

func TestExtractPDFRoundTrip(t *testing.T) {
	builder := NewPDFBuilderService()
	pdfBytes, err := builder.Build("Plain summary text for the round trip.", nil)
	require.NoError(t, err)

	svc := NewExtractService()
	text, err := svc.Extract(pdfBytes, "generated.pdf")
	require.NoError(t, err)
	assert.NotEmpty(t, text)
}
