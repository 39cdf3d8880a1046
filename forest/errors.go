package forest

import "errors"

var (
	// ErrSynthesizerRequired indicates a nil tree synthesizer.
	ErrSynthesizerRequired = errors.New("tree synthesizer is required")

	// ErrBuilderRequired indicates a nil forest builder.
	ErrBuilderRequired = errors.New("forest builder is required")

	// ErrContentRepositoryRequired indicates a nil content repository.
	ErrContentRepositoryRequired = errors.New("content repository is required")

	// ErrForestRepositoryRequired indicates a nil forest repository.
	ErrForestRepositoryRequired = errors.New("forest repository is required")
)
