package domain

import "errors"

var (
	ErrEmptyDocumentName = errors.New("document name must not be empty")
	ErrEmptyQuestion     = errors.New("question must not be empty")
	ErrQuestionTooLong   = errors.New("question exceeds maximum length")
	ErrDimensionMismatch = errors.New("embedding dimensionality mismatch")
	ErrEmbeddingFailed   = errors.New("embedding call failed")
	ErrGenerationFailed  = errors.New("generation call failed")
	ErrSchemaViolation   = errors.New("generated response violates schema")
)
