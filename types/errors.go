package types

import "errors"

// Pipeline error taxonomy. Handlers map these to HTTP status classes with
// errors.Is; services wrap them with %w and attach detail.
var (
	ErrUnsupportedFormat = errors.New("unsupported file format")
	ErrExtractionFailed  = errors.New("failed to extract text")
	ErrEmptyDocument     = errors.New("no extractable text found in file")
	ErrPayloadTooLarge   = errors.New("file too large")
	ErrGenerationFailed  = errors.New("ai generation failed")
	ErrRenderFailed      = errors.New("failed to build pdf")
)
