package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Service   string    `json:"service"`
	Version   string    `json:"version"`
	Chunks    int       `json:"chunks"`
}

// ChunkCounter reports how many chunks the similarity index currently holds.
type ChunkCounter interface {
	Len() int
}

type HealthHandler struct {
	serviceName string
	version     string
	index       ChunkCounter
}

func NewHealthHandler(serviceName, version string, index ChunkCounter) *HealthHandler {
	return &HealthHandler{
		serviceName: serviceName,
		version:     version,
		index:       index,
	}
}

func (h *HealthHandler) HealthCheck(c *gin.Context) {
	count := 0
	if h.index != nil {
		count = h.index.Len()
	}

	c.JSON(http.StatusOK, HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
		Service:   h.serviceName,
		Version:   h.version,
		Chunks:    count,
	})
}

func (h *HealthHandler) RegisterRoutes(r gin.IRouter) {
	r.GET("/health", h.HealthCheck)
	r.GET("/healthz", h.HealthCheck)
}
