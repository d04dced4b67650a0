package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docqa-team/docqa-backend/internal/document_question_answering/domain"
)

const validResponseJSON = `{
	"answer": "The warranty lasts two years.",
	"sourceDocuments": [{"name": "manual.txt", "pageOrSection": "chunk 3", "excerpt": "Warranty: two years."}],
	"confidenceScore": 0.9,
	"recommendation": "See the warranty section for exclusions."
}`

func TestExtractJSONObject_StrictParse(t *testing.T) {
	object, err := ExtractJSONObject("  " + validResponseJSON + "  ")
	require.NoError(t, err)
	assert.Equal(t, validResponseJSON, object)
}

func TestExtractJSONObject_BracketSpanFallback(t *testing.T) {
	raw := "Sure! Here is the JSON you asked for:\n```json\n" + validResponseJSON + "\n```\nHope that helps."
	object, err := ExtractJSONObject(raw)
	require.NoError(t, err)
	assert.Equal(t, validResponseJSON, object)
}

func TestExtractJSONObject_NoBracesIsParseFailure(t *testing.T) {
	_, err := ExtractJSONObject("I cannot answer that in JSON, sorry.")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrSchemaViolation)
}

func TestExtractJSONObject_InvalidSpanIsParseFailure(t *testing.T) {
	_, err := ExtractJSONObject(`prefix {"answer": broken suffix}`)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrSchemaViolation)
}

func TestParseResponse_Valid(t *testing.T) {
	resp, err := ParseResponse(validResponseJSON)
	require.NoError(t, err)

	assert.Equal(t, "The warranty lasts two years.", resp.Answer)
	assert.InDelta(t, 0.9, resp.ConfidenceScore, 1e-9)
	require.Len(t, resp.SourceDocuments, 1)
	assert.Equal(t, "manual.txt", resp.SourceDocuments[0].Name)
	assert.Equal(t, "chunk 3", resp.SourceDocuments[0].PageOrSection)
}

func TestParseResponse_SchemaFailures(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{"missing answer", `{"sourceDocuments": [], "confidenceScore": 0.5, "recommendation": "r"}`},
		{"extra key", `{"answer": "a", "sourceDocuments": [], "confidenceScore": 0.5, "recommendation": "r", "debug": true}`},
		{"wrong answer type", `{"answer": 42, "sourceDocuments": [], "confidenceScore": 0.5, "recommendation": "r"}`},
		{"confidence above one", `{"answer": "a", "sourceDocuments": [], "confidenceScore": 1.5, "recommendation": "r"}`},
		{"confidence below zero", `{"answer": "a", "sourceDocuments": [], "confidenceScore": -0.1, "recommendation": "r"}`},
		{"confidence not a number", `{"answer": "a", "sourceDocuments": [], "confidenceScore": "high", "recommendation": "r"}`},
		{"source doc extra key", `{"answer": "a", "sourceDocuments": [{"name": "n", "pageOrSection": "p", "excerpt": "e", "url": "u"}], "confidenceScore": 0.5, "recommendation": "r"}`},
		{"source doc missing excerpt", `{"answer": "a", "sourceDocuments": [{"name": "n", "pageOrSection": "p"}], "confidenceScore": 0.5, "recommendation": "r"}`},
		{"source docs not an array", `{"answer": "a", "sourceDocuments": "none", "confidenceScore": 0.5, "recommendation": "r"}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseResponse(tc.raw)
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrSchemaViolation)
		})
	}
}

func TestParseResponse_BoundaryConfidenceValues(t *testing.T) {
	for _, score := range []string{"0", "1"} {
		raw := `{"answer": "a", "sourceDocuments": [], "confidenceScore": ` + score + `, "recommendation": "r"}`
		_, err := ParseResponse(raw)
		assert.NoError(t, err, "confidenceScore=%s should be accepted", score)
	}
}
