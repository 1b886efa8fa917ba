package assistant

import (
	"github.com/sandevgo/sagebot/internal/core"
	"github.com/sandevgo/sagebot/internal/rag"
)

// Metrics holds the per-process usage counters. It is an explicit object
// owned by each Assistant instance, not package state, so independent
// assistants can coexist. Reset on process start, never persisted.
type Metrics struct {
	TotalQueries          int
	SourcesUsed           map[core.Source]int
	LearningOpportunities int
	MemoryUsageCount      int
}

func NewMetrics() *Metrics {
	return &Metrics{
		SourcesUsed: make(map[core.Source]int),
	}
}

// MetricsSnapshot is the read-only view returned to callers, with the
// retrieval index statistics folded in.
type MetricsSnapshot struct {
	TotalQueries          int                 `json:"total_queries"`
	SourcesUsed           map[core.Source]int `json:"sources_used"`
	LearningOpportunities int                 `json:"learning_opportunities"`
	MemoryUsageCount      int                 `json:"memory_usage_count"`
	RAGStatistics         rag.Statistics      `json:"rag_statistics"`
}

func (m *Metrics) snapshot(stats rag.Statistics) MetricsSnapshot {
	sources := make(map[core.Source]int, len(m.SourcesUsed))
	for source, count := range m.SourcesUsed {
		sources[source] = count
	}
	return MetricsSnapshot{
		TotalQueries:          m.TotalQueries,
		SourcesUsed:           sources,
		LearningOpportunities: m.LearningOpportunities,
		MemoryUsageCount:      m.MemoryUsageCount,
		RAGStatistics:         stats,
	}
}
