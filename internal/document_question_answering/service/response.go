package service

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/docqa-team/docqa-backend/internal/document_question_answering/domain"
)

// ExtractJSONObject pulls a JSON object out of raw model text. Stage one
// accepts the trimmed text when it is exactly an object; stage two falls back
// to the outermost {...} span. Anything else is a parse failure.
func ExtractJSONObject(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if strings.HasPrefix(trimmed, "{") && strings.HasSuffix(trimmed, "}") && json.Valid([]byte(trimmed)) {
		return trimmed, nil
	}

	start := strings.Index(trimmed, "{")
	end := strings.LastIndex(trimmed, "}")
	if start == -1 || end == -1 || end < start {
		return "", fmt.Errorf("%w: no JSON object found in model output", domain.ErrSchemaViolation)
	}
	span := trimmed[start : end+1]
	if !json.Valid([]byte(span)) {
		return "", fmt.Errorf("%w: extracted span is not valid JSON", domain.ErrSchemaViolation)
	}
	return span, nil
}

// ParseResponse extracts and validates a RagResponse from raw model text.
// The object must carry exactly the schema's fields with the right types and
// a confidenceScore in [0,1].
func ParseResponse(raw string) (domain.RagResponse, error) {
	var resp domain.RagResponse

	object, err := ExtractJSONObject(raw)
	if err != nil {
		return resp, err
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(object), &fields); err != nil {
		return resp, fmt.Errorf("%w: %v", domain.ErrSchemaViolation, err)
	}
	if err := requireExactKeys(fields, "answer", "sourceDocuments", "confidenceScore", "recommendation"); err != nil {
		return resp, err
	}

	if err := json.Unmarshal(fields["answer"], &resp.Answer); err != nil {
		return resp, fmt.Errorf("%w: answer must be a string", domain.ErrSchemaViolation)
	}
	if err := json.Unmarshal(fields["confidenceScore"], &resp.ConfidenceScore); err != nil {
		return resp, fmt.Errorf("%w: confidenceScore must be a number", domain.ErrSchemaViolation)
	}
	if resp.ConfidenceScore < 0 || resp.ConfidenceScore > 1 {
		return resp, fmt.Errorf("%w: confidenceScore %v outside [0,1]", domain.ErrSchemaViolation, resp.ConfidenceScore)
	}
	if err := json.Unmarshal(fields["recommendation"], &resp.Recommendation); err != nil {
		return resp, fmt.Errorf("%w: recommendation must be a string", domain.ErrSchemaViolation)
	}

	var sources []map[string]json.RawMessage
	if err := json.Unmarshal(fields["sourceDocuments"], &sources); err != nil {
		return resp, fmt.Errorf("%w: sourceDocuments must be an array of objects", domain.ErrSchemaViolation)
	}
	resp.SourceDocuments = make([]domain.SourceDocument, 0, len(sources))
	for i, src := range sources {
		if err := requireExactKeys(src, "name", "pageOrSection", "excerpt"); err != nil {
			return domain.RagResponse{}, fmt.Errorf("sourceDocuments[%d]: %w", i, err)
		}
		var doc domain.SourceDocument
		if err := json.Unmarshal(src["name"], &doc.Name); err != nil {
			return domain.RagResponse{}, fmt.Errorf("%w: sourceDocuments[%d].name must be a string", domain.ErrSchemaViolation, i)
		}
		if err := json.Unmarshal(src["pageOrSection"], &doc.PageOrSection); err != nil {
			return domain.RagResponse{}, fmt.Errorf("%w: sourceDocuments[%d].pageOrSection must be a string", domain.ErrSchemaViolation, i)
		}
		if err := json.Unmarshal(src["excerpt"], &doc.Excerpt); err != nil {
			return domain.RagResponse{}, fmt.Errorf("%w: sourceDocuments[%d].excerpt must be a string", domain.ErrSchemaViolation, i)
		}
		resp.SourceDocuments = append(resp.SourceDocuments, doc)
	}

	return resp, nil
}

func requireExactKeys(fields map[string]json.RawMessage, keys ...string) error {
	for _, k := range keys {
		if _, ok := fields[k]; !ok {
			return fmt.Errorf("%w: missing key %q", domain.ErrSchemaViolation, k)
		}
	}
	if len(fields) != len(keys) {
		for k := range fields {
			known := false
			for _, want := range keys {
				if k == want {
					known = true
					break
				}
			}
			if !known {
				return fmt.Errorf("%w: unexpected key %q", domain.ErrSchemaViolation, k)
			}
		}
	}
	return nil
}
