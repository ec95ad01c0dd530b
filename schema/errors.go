package schema

import (
	"errors"
	"fmt"
)

// Error taxonomy for the query pipeline. Only EmbeddingError escapes the
// orchestrator as a hard failure; every other condition degrades to a valid
// user-presentable response.

// EmbeddingError means no query vector could be produced; the request cannot
// proceed to retrieval.
type EmbeddingError struct {
	Err error
}

func (e *EmbeddingError) Error() string {
	return fmt.Sprintf("create query embedding failed: %v", e.Err)
}

func (e *EmbeddingError) Unwrap() error { return e.Err }

// RetrievalError is non-fatal: the pipeline continues with an empty match set.
type RetrievalError struct {
	Err error
}

func (e *RetrievalError) Error() string {
	return fmt.Sprintf("vector search failed: %v", e.Err)
}

func (e *RetrievalError) Unwrap() error { return e.Err }

// TranslationError is non-fatal: retrieval falls back to the original text.
type TranslationError struct {
	Err error
}

func (e *TranslationError) Error() string {
	return fmt.Sprintf("query translation failed: %v", e.Err)
}

func (e *TranslationError) Unwrap() error { return e.Err }

// GenerationError is fatal to producing a real answer but not to the request;
// it surfaces as a localized error answer with error metadata.
type GenerationError struct {
	Err error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("answer generation failed: %v", e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// ErrInsufficientContext marks the expected terminal outcome where retrieval
// produced too little grounding material. It is not a failure.
var ErrInsufficientContext = errors.New("insufficient context")

// IsEmbeddingError reports whether err is (or wraps) an EmbeddingError.
func IsEmbeddingError(err error) bool {
	var ee *EmbeddingError
	return errors.As(err, &ee)
}
