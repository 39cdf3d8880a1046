package pipeline

import "errors"

var (
	// ErrDocumentExtractorRequired indicates a nil document extractor.
	ErrDocumentExtractorRequired = errors.New("document extractor is required")

	// ErrImageExtractorRequired indicates a nil image extractor.
	ErrImageExtractorRequired = errors.New("image extractor is required")

	// ErrAudioExtractorRequired indicates a nil audio extractor.
	ErrAudioExtractorRequired = errors.New("audio extractor is required")
)
