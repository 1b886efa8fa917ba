package core

import "time"

const (
	SageName          = "SageBot"
	SageRepositoryURL = "https://github.com/sandevgo/sagebot"
	SageVersion       = "0.1.0"
)

// Source identifies the subsystem that produced a candidate answer.
type Source string

const (
	SourceDirectLLM Source = "direct_llm"
	SourceRAG       Source = "rag"
	SourceTool      Source = "tool"
	SourceReact     Source = "react"
	SourceFallback  Source = "fallback"
	SourceError     Source = "error"
)

// Candidate is one generated answer to a query, tagged with the subsystem
// that produced it. Confidence and Content may be overwritten by selection
// and refinement before the candidate is persisted.
type Candidate struct {
	Content        string
	Source         Source
	Confidence     float64
	Method         string
	ResponseLength int

	// Set only for tool candidates.
	ToolName string
	ToolData map[string]any
}

// Fact is a durable per-user key-value attribute extracted from conversation.
// Key embeds a stable hash of the value so multiple facts of the same
// category can coexist.
type Fact struct {
	Key   string
	Value string
	Type  string
}

// Turn is one stored query/response exchange.
type Turn struct {
	UserID    string
	SessionID string
	Message   string
	Response  string
	CreatedAt time.Time
}

// Document is one entry in the retrieval index. LearnedAt is set only for
// documents produced by the learning write-back and drives the recency boost.
type Document struct {
	Content    string     `json:"content"`
	Source     string     `json:"source"`
	Confidence float64    `json:"confidence"`
	LearnedAt  *time.Time `json:"learned_at,omitempty"`
	AddedAt    *time.Time `json:"added_at,omitempty"`
}

// Result is what ProcessQuery returns to the transport layer.
type Result struct {
	Response          string
	SessionID         string
	Source            Source
	Confidence        float64
	LearningApplied   bool
	MemoryUsed        bool
	UserMemoriesCount int
}
