package http

import "github.com/gin-gonic/gin"

func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.POST("/documents", h.ingestDocument)
	rg.POST("/documents/pdf", h.ingestPDF)
	rg.GET("/documents", h.listDocuments)
	rg.POST("/query", h.queryDocuments)
	rg.GET("/metrics", h.metrics)
}
