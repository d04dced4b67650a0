package index

import (
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/docqa-team/docqa-backend/internal/document_question_answering/domain"
)

// Memory is an in-memory similarity index using brute-force cosine similarity.
// Safe for concurrent readers and writers; index contents live only for the
// lifetime of the process.
type Memory struct {
	mu        sync.RWMutex
	dimension int
	chunks    []domain.DocumentChunk
}

func NewMemory() *Memory {
	return &Memory{}
}

// AddDocuments appends chunks to the index. Chunks with a missing or empty
// embedding are skipped without error, each chunk evaluated independently.
// A chunk whose embedding dimensionality differs from the chunks already
// stored is rejected with domain.ErrDimensionMismatch.
func (m *Memory) AddDocuments(chunks []domain.DocumentChunk) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, ch := range chunks {
		if len(ch.Embedding) == 0 {
			continue
		}
		if m.dimension == 0 {
			m.dimension = len(ch.Embedding)
		} else if len(ch.Embedding) != m.dimension {
			return fmt.Errorf("%w: index holds %d-dimensional vectors, got %d",
				domain.ErrDimensionMismatch, m.dimension, len(ch.Embedding))
		}
		m.chunks = append(m.chunks, ch)
	}
	return nil
}

// Len returns the number of stored chunks.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.chunks)
}

// SimilaritySearch scores every stored chunk against queryEmbedding by cosine
// similarity and returns results in descending score order. Vectors are
// normalized per call; zero-magnitude vectors cannot be normalized and are
// excluded from scoring. Equal scores keep insertion order. topK <= 0 or
// topK >= result count returns everything.
func (m *Memory) SimilaritySearch(queryEmbedding []float64, topK int) []domain.ScoredResult {
	m.mu.RLock()
	defer m.mu.RUnlock()

	query := normalize(queryEmbedding)
	if query == nil {
		return nil
	}

	results := make([]domain.ScoredResult, 0, len(m.chunks))
	for _, ch := range m.chunks {
		stored := normalize(ch.Embedding)
		if stored == nil {
			continue
		}
		results = append(results, domain.ScoredResult{
			Score:    dot(stored, query),
			Metadata: ch.Metadata,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if topK > 0 && topK < len(results) {
		results = results[:topK]
	}
	return results
}

// normalize returns v scaled to unit L2 length, or nil for a zero-magnitude
// vector.
func normalize(v []float64) []float64 {
	var sum float64
	for _, x := range v {
		sum += x * x
	}
	if sum == 0 {
		return nil
	}
	mag := math.Sqrt(sum)
	out := make([]float64, len(v))
	for i, x := range v {
		out[i] = x / mag
	}
	return out
}

// dot multiplies over the overlapping prefix when lengths differ. The
// insertion guard in AddDocuments keeps stored vectors uniform, so the
// truncation only matters for the query vector.
func dot(a, b []float64) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	sum := 0.0
	for i := 0; i < n; i++ {
		sum += a[i] * b[i]
	}
	return sum
}
