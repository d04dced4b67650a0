package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docqa-team/docqa-backend/internal/document_question_answering/domain"
	"github.com/docqa-team/docqa-backend/internal/document_question_answering/index"
)

// populatedIndex returns an index holding one chunk aligned with the fake
// embedder's fixed vector, so retrieval always clears the floor.
func populatedIndex(t *testing.T) *index.Memory {
	t.Helper()
	idx := index.NewMemory()
	require.NoError(t, idx.AddDocuments([]domain.DocumentChunk{
		{
			Embedding: []float64{1, 0, 0},
			Metadata:  domain.ChunkMetadata{Name: "manual.txt", PageOrSection: "chunk 1", Text: "Warranty: two years."},
		},
	}))
	return idx
}

func TestQuery_ValidationErrors(t *testing.T) {
	gen := &fakeGenerator{}
	svc := NewQueryService(NewRetriever(&fakeEmbedder{}, index.NewMemory()), gen)

	t.Run("empty question", func(t *testing.T) {
		_, err := svc.Query(context.Background(), "   ", 5)
		assert.ErrorIs(t, err, domain.ErrEmptyQuestion)
	})

	t.Run("oversized question", func(t *testing.T) {
		_, err := svc.Query(context.Background(), strings.Repeat("x", MaxQuestionLength+1), 5)
		assert.ErrorIs(t, err, domain.ErrQuestionTooLong)
	})

	// Validation failures never reach a collaborator.
	assert.Equal(t, 0, gen.calls)
}

func TestQuery_NoEvidenceReturnsCannedResponseWithoutGeneration(t *testing.T) {
	gen := &fakeGenerator{outputs: []string{validResponseJSON}}
	svc := NewQueryService(NewRetriever(&fakeEmbedder{}, index.NewMemory()), gen)

	resp, err := svc.Query(context.Background(), "what is the warranty?", 5)
	require.NoError(t, err)

	assert.Equal(t, InsufficientInformationResponse(), resp)
	assert.Equal(t, 0, gen.calls, "no generation call may happen without evidence")
}

func TestQuery_SuccessReturnsValidatedResponse(t *testing.T) {
	gen := &fakeGenerator{outputs: []string{validResponseJSON}}
	svc := NewQueryService(NewRetriever(&fakeEmbedder{}, populatedIndex(t)), gen)

	resp, err := svc.Query(context.Background(), "what is the warranty?", 5)
	require.NoError(t, err)

	assert.Equal(t, "The warranty lasts two years.", resp.Answer)
	assert.Equal(t, 1, gen.calls)
	require.NotEmpty(t, gen.userPrompts)
	assert.Contains(t, gen.userPrompts[0], "what is the warranty?")
	assert.Contains(t, gen.userPrompts[0], "Warranty: two years.")
}

func TestQuery_ConfidenceGateOverridesModelAnswer(t *testing.T) {
	lowConfidence := `{"answer": "Probably two years?", "sourceDocuments": [], "confidenceScore": 0.29, "recommendation": "none"}`
	gen := &fakeGenerator{outputs: []string{lowConfidence}}
	svc := NewQueryService(NewRetriever(&fakeEmbedder{}, populatedIndex(t)), gen)

	resp, err := svc.Query(context.Background(), "what is the warranty?", 5)
	require.NoError(t, err)

	assert.Equal(t, InsufficientInformationResponse(), resp)
	assert.NotEqual(t, "Probably two years?", resp.Answer)
}

func TestQuery_RepairPathRetriesExactlyOnce(t *testing.T) {
	gen := &fakeGenerator{outputs: []string{"I will answer in prose instead.", validResponseJSON}}
	svc := NewQueryService(NewRetriever(&fakeEmbedder{}, populatedIndex(t)), gen)

	resp, err := svc.Query(context.Background(), "what is the warranty?", 5)
	require.NoError(t, err)

	assert.Equal(t, 2, gen.calls)
	assert.Equal(t, "The warranty lasts two years.", resp.Answer)
	// The repair prompt quotes the invalid first output verbatim.
	require.Len(t, gen.userPrompts, 2)
	assert.Contains(t, gen.userPrompts[1], "I will answer in prose instead.")
}

func TestQuery_SecondFailureIsFatal(t *testing.T) {
	gen := &fakeGenerator{outputs: []string{"not json", "still not json"}}
	svc := NewQueryService(NewRetriever(&fakeEmbedder{}, populatedIndex(t)), gen)

	_, err := svc.Query(context.Background(), "what is the warranty?", 5)
	require.Error(t, err)

	assert.ErrorIs(t, err, domain.ErrGenerationFailed)
	assert.Equal(t, MaxGenerationAttempts, gen.calls)
}

func TestQuery_TransportFailureIsNotRetried(t *testing.T) {
	genErr := errors.New("provider unreachable")
	gen := &fakeGenerator{err: genErr}
	svc := NewQueryService(NewRetriever(&fakeEmbedder{}, populatedIndex(t)), gen)

	_, err := svc.Query(context.Background(), "what is the warranty?", 5)
	require.Error(t, err)

	assert.ErrorIs(t, err, genErr)
	assert.Equal(t, 1, gen.calls)
}

func TestQuery_RepairedLowConfidenceStillGated(t *testing.T) {
	lowConfidence := `{"answer": "Maybe.", "sourceDocuments": [], "confidenceScore": 0.1, "recommendation": "none"}`
	gen := &fakeGenerator{outputs: []string{"garbage", lowConfidence}}
	svc := NewQueryService(NewRetriever(&fakeEmbedder{}, populatedIndex(t)), gen)

	resp, err := svc.Query(context.Background(), "what is the warranty?", 5)
	require.NoError(t, err)

	assert.Equal(t, InsufficientInformationResponse(), resp)
	assert.Equal(t, 2, gen.calls)
}
