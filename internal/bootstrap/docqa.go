package bootstrap

import (
	"github.com/docqa-team/docqa-backend/config"
	"github.com/docqa-team/docqa-backend/internal/document_question_answering/index"
	"github.com/docqa-team/docqa-backend/internal/document_question_answering/llm"
	"github.com/docqa-team/docqa-backend/internal/document_question_answering/registry"
	"github.com/docqa-team/docqa-backend/internal/document_question_answering/service"
)

// Core holds the question-answering pipeline wired for one process. The
// similarity index and document registry are constructed once here and passed
// by reference to everything that needs them; they live until the process
// exits.
type Core struct {
	Index    *index.Memory
	Registry *registry.Registry
	Ingest   *service.IngestService
	Query    *service.QueryService
}

func BuildCore(cfg *config.Config) *Core {
	client := llm.NewClient(llm.Config{
		APIKey:          cfg.OpenAI.APIKey,
		BaseURL:         cfg.OpenAI.BaseURL,
		EmbeddingModel:  cfg.OpenAI.EmbeddingModel,
		GenerationModel: cfg.OpenAI.GenerationModel,
		EmbedRPS:        cfg.OpenAI.EmbedRPS,
	})

	idx := index.NewMemory()
	reg := registry.New()

	return &Core{
		Index:    idx,
		Registry: reg,
		Ingest:   service.NewIngestService(client, idx, reg, cfg.Chunking.MaxTokensPerChunk),
		Query:    service.NewQueryService(service.NewRetriever(client, idx), client),
	}
}
