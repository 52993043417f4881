package service

import (
	"context"
	"encoding/base64"
	"fmt"
	"log"
	"strings"

	"github.com/tieubaoca/thinknotes-be/types"
)

// MaxUploadSize caps the raw document payload before any parsing happens.
const MaxUploadSize = 10 << 20

type TextExtractor interface {
	Extract(data []byte, filename string) (string, error)
}

type ContentGenerator interface {
	Generate(ctx context.Context, text string) (types.GeneratedContent, error)
}

type DocumentBuilder interface {
	Build(summary string, flashcards []any) ([]byte, error)
}

// StudyService runs the document-to-study-material pipeline: extract text,
// generate a summary plus flashcards, and optionally render the result into
// a downloadable PDF. It holds no per-request state.
type StudyService struct {
	extractor TextExtractor
	content   ContentGenerator
	builder   DocumentBuilder
}

func NewStudyService(extractor TextExtractor, content ContentGenerator, builder DocumentBuilder) *StudyService {
	return &StudyService{
		extractor: extractor,
		content:   content,
		builder:   builder,
	}
}

// Process handles one uploaded document end to end.
func (s *StudyService) Process(ctx context.Context, data []byte, filename string, wantPDF bool) (*types.StudyMaterialResponse, error) {
	return s.ProcessWithStatus(ctx, data, filename, wantPDF, nil)
}

// ProcessWithStatus is Process with per-stage notifications for streaming
// transports. A rendering failure degrades the response instead of failing
// it: the generated text content is always returned once it exists.
func (s *StudyService) ProcessWithStatus(ctx context.Context, data []byte, filename string, wantPDF bool, onStage types.StageHandler) (*types.StudyMaterialResponse, error) {
	if len(data) > MaxUploadSize {
		return nil, fmt.Errorf("%w: max %d bytes", types.ErrPayloadTooLarge, MaxUploadSize)
	}

	notify(onStage, "extracting", "Extracting text from document")
	text, err := s.extractor.Extract(data, filename)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(text) == "" {
		return nil, types.ErrEmptyDocument
	}

	notify(onStage, "generating", "Generating summary and flashcards")
	content, err := s.content.Generate(ctx, text)
	if err != nil {
		return nil, err
	}

	resp := &types.StudyMaterialResponse{
		Summary:    content.Summary,
		Flashcards: content.Flashcards,
	}

	if wantPDF {
		notify(onStage, "rendering", "Building PDF")
		pdfBytes, err := s.builder.Build(content.Summary, content.Flashcards)
		if err != nil {
			log.Println("Failed to build PDF from AI results:", err)
			resp.PdfError = fmt.Sprintf("Failed to build PDF: %v", err)
		} else {
			encoded := base64.StdEncoding.EncodeToString(pdfBytes)
			resp.PdfB64 = &encoded
		}
	}
	return resp, nil
}

func notify(onStage types.StageHandler, stage, message string) {
	if onStage != nil {
		onStage(stage, message)
	}
}
