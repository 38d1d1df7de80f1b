package domain

import "errors"

var (
	// ErrInvalidConfig marks malformed engine configuration, surfaced
	// at construction time before any document is processed.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrExtractorUnavailable is returned by NER adapters when the
	// underlying model cannot be reached. The ensemble recovers from
	// it locally; it never propagates out of a parse.
	ErrExtractorUnavailable = errors.New("entity extractor unavailable")
)
