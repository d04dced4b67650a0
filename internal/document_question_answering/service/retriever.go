package service

import (
	"context"
	"fmt"
	"math"

	"github.com/docqa-team/docqa-backend/internal/document_question_answering/domain"
)

// Retriever embeds a question, searches the similarity index, and keeps only
// results that clear the relevance floor.
type Retriever struct {
	embedder Embedder
	index    SimilarityIndex
}

func NewRetriever(embedder Embedder, index SimilarityIndex) *Retriever {
	return &Retriever{embedder: embedder, index: index}
}

// Retrieve returns the usable evidence for a question, best first. An empty
// result is the normal no-evidence case, not an error.
func (r *Retriever) Retrieve(ctx context.Context, question string, topK int) ([]domain.ScoredResult, error) {
	vec, err := r.embedder.Embed(ctx, question)
	if err != nil {
		return nil, fmt.Errorf("embed question: %w", err)
	}
	recordEmbeddingCall()

	results := r.index.SimilaritySearch(vec, topK)
	filtered := make([]domain.ScoredResult, 0, len(results))
	for _, res := range results {
		if math.IsNaN(res.Score) || math.IsInf(res.Score, 0) {
			continue
		}
		if res.Score < RelevanceFloor {
			continue
		}
		filtered = append(filtered, res)
	}
	return filtered, nil
}
