package domain

import "errors"

var (
	// ErrTitleNotFound signals that no movie resolves for a title, even after fuzzy fallback.
	ErrTitleNotFound = errors.New("title not found")
	// ErrCategoryNotFound signals that a requested category does not exist in the catalog.
	ErrCategoryNotFound = errors.New("category not found")
	// ErrEmbeddingProviderError signals an embedding provider failure.
	ErrEmbeddingProviderError = errors.New("embedding provider error")
	// ErrEmbeddingQuotaExceeded signals an exhausted embedding token budget.
	ErrEmbeddingQuotaExceeded = errors.New("embedding quota exceeded")
	// ErrVectorDimMismatch signals a vector whose dimension differs from the session's.
	ErrVectorDimMismatch = errors.New("vector dimension mismatch")
)
