package service

import (
	"sync/atomic"
	"time"
)

// Metrics tracks collaborator call counts for the question-answering core.
type Metrics struct {
	embeddingCalls    int64
	generationCalls   int64
	generationRepairs int64
	generationLatency int64 // total latency in nanoseconds
	chunksIngested    int64
}

var globalMetrics = &Metrics{}

// GetMetrics returns the current metrics snapshot
func GetMetrics() Metrics {
	return Metrics{
		embeddingCalls:    atomic.LoadInt64(&globalMetrics.embeddingCalls),
		generationCalls:   atomic.LoadInt64(&globalMetrics.generationCalls),
		generationRepairs: atomic.LoadInt64(&globalMetrics.generationRepairs),
		generationLatency: atomic.LoadInt64(&globalMetrics.generationLatency),
		chunksIngested:    atomic.LoadInt64(&globalMetrics.chunksIngested),
	}
}

// ResetMetrics resets all metrics (useful for testing)
func ResetMetrics() {
	atomic.StoreInt64(&globalMetrics.embeddingCalls, 0)
	atomic.StoreInt64(&globalMetrics.generationCalls, 0)
	atomic.StoreInt64(&globalMetrics.generationRepairs, 0)
	atomic.StoreInt64(&globalMetrics.generationLatency, 0)
	atomic.StoreInt64(&globalMetrics.chunksIngested, 0)
}

func recordEmbeddingCall() {
	atomic.AddInt64(&globalMetrics.embeddingCalls, 1)
}

func recordGenerationCall(duration time.Duration) {
	atomic.AddInt64(&globalMetrics.generationCalls, 1)
	atomic.AddInt64(&globalMetrics.generationLatency, duration.Nanoseconds())
}

func recordGenerationRepair() {
	atomic.AddInt64(&globalMetrics.generationRepairs, 1)
}

func recordChunksIngested(n int) {
	atomic.AddInt64(&globalMetrics.chunksIngested, int64(n))
}

// EmbeddingCalls returns the number of embedding calls made.
func (m Metrics) EmbeddingCalls() int64 { return m.embeddingCalls }

// GenerationCalls returns the number of generation calls made.
func (m Metrics) GenerationCalls() int64 { return m.generationCalls }

// GenerationRepairs returns the number of repair retries taken.
func (m Metrics) GenerationRepairs() int64 { return m.generationRepairs }

// ChunksIngested returns the number of chunks added to the index.
func (m Metrics) ChunksIngested() int64 { return m.chunksIngested }

// AverageGenerationLatency returns the average latency in milliseconds
func (m Metrics) AverageGenerationLatency() float64 {
	if m.generationCalls == 0 {
		return 0
	}
	avgNs := float64(m.generationLatency) / float64(m.generationCalls)
	return avgNs / 1e6
}
