package http

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/ledongthuc/pdf"

	"github.com/docqa-team/docqa-backend/internal/document_question_answering/domain"
)

func (h *Handler) ingestDocument(c *gin.Context) {
	var req ingestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
		return
	}

	res, err := h.ingest.Ingest(c.Request.Context(), req.Name, req.Text, req.SectionLabel)
	if err != nil {
		status := http.StatusBadGateway
		if errors.Is(err, domain.ErrEmptyDocumentName) {
			status = http.StatusBadRequest
		}
		c.JSON(status, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "chunksAdded": res.ChunksAdded})
}

// ingestPDF accepts a multipart PDF upload, extracts its plain text, and runs
// the same ingestion path as raw text.
func (h *Handler) ingestPDF(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "missing file field"})
		return
	}
	defer file.Close()

	// The pdf library reads from a file path, so spill to a temp file first.
	tmp, err := os.CreateTemp("", "upload-*.pdf")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "failed to create temp file"})
		return
	}
	defer os.Remove(tmp.Name())
	defer tmp.Close()

	if _, err := io.Copy(tmp, file); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "failed to save upload"})
		return
	}

	f, rdr, err := pdf.Open(tmp.Name())
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "failed to open pdf"})
		return
	}
	defer f.Close()

	var buf bytes.Buffer
	plain, err := rdr.GetPlainText()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "failed to read pdf text"})
		return
	}
	if _, err := io.Copy(&buf, plain); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "failed to buffer pdf text"})
		return
	}
	if strings.TrimSpace(buf.String()) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "no text extracted from pdf"})
		return
	}

	res, err := h.ingest.Ingest(c.Request.Context(), header.Filename, buf.String(), c.PostForm("sectionLabel"))
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "chunksAdded": res.ChunksAdded, "filename": header.Filename})
}

func (h *Handler) listDocuments(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true, "documents": h.ingest.ListDocuments()})
}
