package domain

import "time"

// ChunkMetadata locates a chunk inside its source document. Text holds the
// verbatim chunk content so answers can cite it exactly.
type ChunkMetadata struct {
	Name          string `json:"name"`
	PageOrSection string `json:"pageOrSection"`
	Text          string `json:"text"`
}

// DocumentChunk is the unit of embedding and citation. Immutable once created;
// owned by the similarity index after insertion.
type DocumentChunk struct {
	Embedding []float64
	Metadata  ChunkMetadata
}

// ScoredResult is a read-only projection of an index entry with its cosine
// similarity against a query vector.
type ScoredResult struct {
	Score    float64       `json:"score"`
	Metadata ChunkMetadata `json:"metadata"`
}

// SourceDocument is a single citation inside a RagResponse. Excerpt must be a
// verbatim substring of some ingested chunk's text.
type SourceDocument struct {
	Name          string `json:"name"`
	PageOrSection string `json:"pageOrSection"`
	Excerpt       string `json:"excerpt"`
}

// RagResponse is the structured answer produced for one query. Never persisted.
type RagResponse struct {
	Answer          string           `json:"answer"`
	SourceDocuments []SourceDocument `json:"sourceDocuments"`
	ConfidenceScore float64          `json:"confidenceScore"`
	Recommendation  string           `json:"recommendation"`
}

// IngestResult reports how many chunks one ingestion produced.
type IngestResult struct {
	ChunksAdded int `json:"chunksAdded"`
}

// DocumentRecord is the preview-only bookkeeping entry kept per ingested
// document.
type DocumentRecord struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Text       string    `json:"text"`
	IngestedAt time.Time `json:"ingestedAt"`
}
