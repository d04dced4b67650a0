package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/docqa-team/docqa-backend/internal/document_question_answering/domain"
)

// QueryService answers questions grounded in retrieved evidence. Per query it
// performs at most one retrieval and at most MaxGenerationAttempts generation
// calls; nothing here mutates the similarity index.
type QueryService struct {
	retriever *Retriever
	generator Generator
}

func NewQueryService(retriever *Retriever, generator Generator) *QueryService {
	return &QueryService{retriever: retriever, generator: generator}
}

// InsufficientInformationResponse is the deterministic fallback returned when
// retrieval finds no usable evidence or the generated answer falls below the
// confidence floor.
func InsufficientInformationResponse() domain.RagResponse {
	return domain.RagResponse{
		Answer:          "I don't have sufficient information in the ingested documents to answer this question.",
		SourceDocuments: []domain.SourceDocument{},
		ConfidenceScore: 0,
		Recommendation:  "Ingest additional documents that cover this topic, then ask again.",
	}
}

// Query runs the grounded pipeline for one question. topK outside 1..MaxTopK
// falls back to DefaultTopK.
func (s *QueryService) Query(ctx context.Context, question string, topK int) (domain.RagResponse, error) {
	logger := NewLogger(ctx)

	question = strings.TrimSpace(question)
	if question == "" {
		return domain.RagResponse{}, domain.ErrEmptyQuestion
	}
	if len(question) > MaxQuestionLength {
		return domain.RagResponse{}, domain.ErrQuestionTooLong
	}
	if topK <= 0 || topK > MaxTopK {
		topK = DefaultTopK
	}

	evidence, err := s.retriever.Retrieve(ctx, question, topK)
	if err != nil {
		logger.LogError("retrieve", err)
		return domain.RagResponse{}, err
	}
	if len(evidence) == 0 {
		logger.LogInfo("query", "no evidence cleared the relevance floor")
		return InsufficientInformationResponse(), nil
	}

	userPrompt := BuildUserPrompt(question, evidence)
	prompt := userPrompt

	for attempt := 1; attempt <= MaxGenerationAttempts; attempt++ {
		start := time.Now()
		raw, err := s.generator.Generate(ctx, groundingSystemPrompt, prompt)
		recordGenerationCall(time.Since(start))
		if err != nil {
			// Transport-level failures are never retried here.
			logger.LogError("generate", err)
			return domain.RagResponse{}, err
		}

		resp, err := ParseResponse(raw)
		if err != nil {
			if attempt == MaxGenerationAttempts {
				logger.LogError("generate", err)
				return domain.RagResponse{}, fmt.Errorf("%w: repair attempt also produced invalid output: %v",
					domain.ErrGenerationFailed, err)
			}
			logger.LogWarnf("generate", "attempt %d produced invalid output, retrying once: %v", attempt, err)
			recordGenerationRepair()
			prompt = BuildRepairPrompt(userPrompt, raw)
			continue
		}

		if resp.ConfidenceScore < ConfidenceFloor {
			logger.LogInfof("query", "confidence %.2f below floor, returning fallback", resp.ConfidenceScore)
			return InsufficientInformationResponse(), nil
		}
		return resp, nil
	}

	// Unreachable: the loop either returns or retries within the budget.
	return domain.RagResponse{}, domain.ErrGenerationFailed
}
