package service

import (
	"context"
	"encoding/base64"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tieubaoca/thinknotes-be/types"
)

type fakeExtractor struct {
	text string
	err  error
}

func (f *fakeExtractor) Extract(data []byte, filename string) (string, error) {
	return f.text, f.err
}

type fakeGenerator struct {
	content types.GeneratedContent
	err     error
}

func (f *fakeGenerator) Generate(ctx context.Context, text string) (types.GeneratedContent, error) {
	return f.content, f.err
}

type fakeBuilder struct {
	data []byte
	err  error
}

func (f *fakeBuilder) Build(summary string, flashcards []any) ([]byte, error) {
	return f.data, f.err
}

func TestProcessRejectsOversizedPayload(t *testing.T) {
	svc := NewStudyService(&fakeExtractor{text: "text"}, &fakeGenerator{}, &fakeBuilder{})

	_, err := svc.Process(context.Background(), make([]byte, MaxUploadSize+1), "big.pdf", true)
	assert.ErrorIs(t, err, types.ErrPayloadTooLarge)
}

func TestProcessAcceptsPayloadAtLimit(t *testing.T) {
	svc := NewStudyService(
		&fakeExtractor{text: "extracted"},
		&fakeGenerator{content: types.GeneratedContent{Summary: "S", Flashcards: []any{}}},
		&fakeBuilder{data: []byte("%PDF-fake")},
	)

	resp, err := svc.Process(context.Background(), make([]byte, MaxUploadSize), "exact.pdf", false)
	require.NoError(t, err)
	assert.Equal(t, "S", resp.Summary)
}

func TestProcessEmptyDocument(t *testing.T) {
	svc := NewStudyService(&fakeExtractor{text: "   \n\t "}, &fakeGenerator{}, &fakeBuilder{})

	_, err := svc.Process(context.Background(), []byte("data"), "blank.docx", true)
	assert.ErrorIs(t, err, types.ErrEmptyDocument)
}

func TestProcessGenerationFailure(t *testing.T) {
	svc := NewStudyService(
		&fakeExtractor{text: "text"},
		&fakeGenerator{err: types.ErrGenerationFailed},
		&fakeBuilder{},
	)

	_, err := svc.Process(context.Background(), []byte("data"), "doc.pdf", true)
	assert.ErrorIs(t, err, types.ErrGenerationFailed)
}

func TestProcessRenderFailureDegrades(t *testing.T) {
	cards := []any{types.Flashcard{Question: "Q", Answer: "A"}}
	svc := NewStudyService(
		&fakeExtractor{text: "text"},
		&fakeGenerator{content: types.GeneratedContent{Summary: "S", Flashcards: cards}},
		&fakeBuilder{err: errors.New("layout exploded")},
	)

	resp, err := svc.Process(context.Background(), []byte("data"), "doc.pdf", true)
	require.NoError(t, err)
	assert.Equal(t, "S", resp.Summary)
	assert.Equal(t, cards, resp.Flashcards)
	assert.Nil(t, resp.PdfB64)
	assert.Contains(t, resp.PdfError, "Failed to build PDF")
}

func TestProcessEncodesPDF(t *testing.T) {
	svc := NewStudyService(
		&fakeExtractor{text: "text"},
		&fakeGenerator{content: types.GeneratedContent{Summary: "S", Flashcards: []any{}}},
		&fakeBuilder{data: []byte("%PDF-1.4 content")},
	)

	resp, err := svc.Process(context.Background(), []byte("data"), "doc.pdf", true)
	require.NoError(t, err)
	require.NotNil(t, resp.PdfB64)
	decoded, err := base64.StdEncoding.DecodeString(*resp.PdfB64)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4 content", string(decoded))
	assert.Empty(t, resp.PdfError)
}

func TestProcessSkipsPDFWhenNotWanted(t *testing.T) {
	svc := NewStudyService(
		&fakeExtractor{text: "text"},
		&fakeGenerator{content: types.GeneratedContent{Summary: "S", Flashcards: []any{}}},
		&fakeBuilder{err: errors.New("must not be called")},
	)

	resp, err := svc.Process(context.Background(), []byte("data"), "doc.pdf", false)
	require.NoError(t, err)
	assert.Nil(t, resp.PdfB64)
	assert.Empty(t, resp.PdfError)
}

func TestProcessWithStatusReportsStages(t *testing.T) {
	svc := NewStudyService(
		&fakeExtractor{text: "text"},
		&fakeGenerator{content: types.GeneratedContent{Summary: "S", Flashcards: []any{}}},
		&fakeBuilder{data: []byte("%PDF")},
	)

	var stages []string
	_, err := svc.ProcessWithStatus(context.Background(), []byte("data"), "doc.pdf", true,
		func(stage, message string) {
			stages = append(stages, stage)
		})
	require.NoError(t, err)
	assert.Equal(t, []string{"extracting", "generating", "rendering"}, stages)
}
