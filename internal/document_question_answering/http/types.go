package http

import (
	"github.com/docqa-team/docqa-backend/internal/document_question_answering/service"
)

type Handler struct {
	ingest *service.IngestService
	query  *service.QueryService
}

func New(ingest *service.IngestService, query *service.QueryService) *Handler {
	return &Handler{ingest: ingest, query: query}
}

type ingestRequest struct {
	Name         string `json:"name" binding:"required"`
	Text         string `json:"text"`
	SectionLabel string `json:"sectionLabel"`
}

type queryRequest struct {
	Question string `json:"question" binding:"required"`
	TopK     int    `json:"topK"`
}
