package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/docqa-team/docqa-backend/internal/document_question_answering/domain"
	"github.com/docqa-team/docqa-backend/internal/document_question_answering/service"
)

func (h *Handler) queryDocuments(c *gin.Context) {
	var req queryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
		return
	}
	if req.TopK < 0 || req.TopK > service.MaxTopK {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "topK must be between 1 and 20"})
		return
	}

	resp, err := h.query.Query(c.Request.Context(), req.Question, req.TopK)
	if err != nil {
		status := http.StatusBadGateway
		if errors.Is(err, domain.ErrEmptyQuestion) || errors.Is(err, domain.ErrQuestionTooLong) {
			status = http.StatusBadRequest
		}
		c.JSON(status, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "response": resp})
}

func (h *Handler) metrics(c *gin.Context) {
	m := service.GetMetrics()
	c.JSON(http.StatusOK, gin.H{
		"ok":                     true,
		"embeddingCalls":         m.EmbeddingCalls(),
		"generationCalls":        m.GenerationCalls(),
		"generationRepairs":      m.GenerationRepairs(),
		"chunksIngested":         m.ChunksIngested(),
		"avgGenerationLatencyMs": m.AverageGenerationLatency(),
	})
}
