package extract

import "errors"

var (
	// ErrResolverRequired indicates a nil object-store resolver.
	ErrResolverRequired = errors.New("object store resolver is required")

	// ErrAnalyzerRequired indicates a nil content analyzer.
	ErrAnalyzerRequired = errors.New("content analyzer is required")

	// ErrUnsupportedAsset indicates an asset type no extractor understands.
	ErrUnsupportedAsset = errors.New("unsupported asset type")

	// ErrNotAnImage indicates bytes that could not be decoded as an image.
	ErrNotAnImage = errors.New("data is not a decodable image")
)
