package service

import (
	"context"

	"github.com/docqa-team/docqa-backend/internal/document_question_answering/domain"
)

// Embedder converts text into an embedding vector.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float64, error)
}

// Generator produces raw model text for a system/user prompt pair.
type Generator interface {
	Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// SimilarityIndex stores embedded chunks and answers nearest-neighbor queries.
type SimilarityIndex interface {
	AddDocuments(chunks []domain.DocumentChunk) error
	SimilaritySearch(queryEmbedding []float64, topK int) []domain.ScoredResult
}

// DocumentRegistry records raw document text for preview.
type DocumentRegistry interface {
	Record(name, text string) string
	List() []domain.DocumentRecord
}
