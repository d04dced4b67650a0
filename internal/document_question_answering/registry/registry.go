package registry

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/docqa-team/docqa-backend/internal/document_question_answering/domain"
)

// Registry keeps the raw text of ingested documents for human preview. It is
// bookkeeping only; retrieval never reads from it.
type Registry struct {
	mu   sync.RWMutex
	docs []domain.DocumentRecord
}

func New() *Registry {
	return &Registry{}
}

// Record stores one ingested document and returns its generated ID.
func (r *Registry) Record(name, text string) string {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec := domain.DocumentRecord{
		ID:         uuid.NewString(),
		Name:       name,
		Text:       text,
		IngestedAt: time.Now().UTC(),
	}
	r.docs = append(r.docs, rec)
	return rec.ID
}

// List returns all recorded documents sorted by name.
func (r *Registry) List() []domain.DocumentRecord {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.DocumentRecord, len(r.docs))
	copy(out, r.docs)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
