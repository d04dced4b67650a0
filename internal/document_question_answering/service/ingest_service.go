package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/docqa-team/docqa-backend/internal/document_question_answering/chunker"
	"github.com/docqa-team/docqa-backend/internal/document_question_answering/domain"
)

// IngestService splits a document, embeds every chunk, and hands the embedded
// batch to the similarity index in one call.
type IngestService struct {
	embedder          Embedder
	index             SimilarityIndex
	registry          DocumentRegistry
	maxTokensPerChunk int
}

func NewIngestService(embedder Embedder, index SimilarityIndex, registry DocumentRegistry, maxTokensPerChunk int) *IngestService {
	if maxTokensPerChunk <= 0 {
		maxTokensPerChunk = chunker.DefaultMaxTokens
	}
	return &IngestService{
		embedder:          embedder,
		index:             index,
		registry:          registry,
		maxTokensPerChunk: maxTokensPerChunk,
	}
}

// Ingest chunks text and adds the embedded chunks to the index. Chunks are
// embedded one at a time, in order, so pageOrSection numbering stays
// deterministic and the load on the embedding provider stays predictable.
// Text that normalizes to empty yields chunksAdded=0 without error.
func (s *IngestService) Ingest(ctx context.Context, documentName, text, sectionLabel string) (domain.IngestResult, error) {
	logger := NewLogger(ctx)

	documentName = strings.TrimSpace(documentName)
	if documentName == "" {
		return domain.IngestResult{}, domain.ErrEmptyDocumentName
	}

	pieces := chunker.Chunk(text, s.maxTokensPerChunk, true)
	if len(pieces) == 0 {
		return domain.IngestResult{ChunksAdded: 0}, nil
	}

	batch := make([]domain.DocumentChunk, 0, len(pieces))
	for i, piece := range pieces {
		vec, err := s.embedder.Embed(ctx, piece)
		if err != nil {
			return domain.IngestResult{}, fmt.Errorf("embed chunk %d of %q: %w", i+1, documentName, err)
		}
		recordEmbeddingCall()

		label := fmt.Sprintf("chunk %d", i+1)
		if sectionLabel != "" {
			label = fmt.Sprintf("%s (chunk %d)", sectionLabel, i+1)
		}
		batch = append(batch, domain.DocumentChunk{
			Embedding: vec,
			Metadata: domain.ChunkMetadata{
				Name:          documentName,
				PageOrSection: label,
				Text:          piece,
			},
		})
	}

	if err := s.index.AddDocuments(batch); err != nil {
		return domain.IngestResult{}, fmt.Errorf("add documents: %w", err)
	}
	recordChunksIngested(len(batch))

	if s.registry != nil {
		s.registry.Record(documentName, text)
	}
	logger.LogInfof("ingest", "document=%q chunks=%d", documentName, len(batch))

	return domain.IngestResult{ChunksAdded: len(batch)}, nil
}

// ListDocuments returns the recorded documents sorted by name.
func (s *IngestService) ListDocuments() []domain.DocumentRecord {
	if s.registry == nil {
		return nil
	}
	return s.registry.List()
}
