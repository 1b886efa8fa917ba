package scoring

import (
	"testing"

	"github.com/sandevgo/sagebot/internal/core"
	"github.com/stretchr/testify/assert"
)

func TestSelectEmptyListReturnsFallback(t *testing.T) {
	s := NewSelector()
	got := s.Select("anything", nil)

	assert.Equal(t, core.SourceFallback, got.Source)
	assert.Equal(t, FallbackContent, got.Content)
	assert.Equal(t, 0.1, got.Confidence)
}

func TestSelectConfidenceBounds(t *testing.T) {
	s := NewSelector()

	candidates := [][]core.Candidate{
		{{Content: "error unable cannot", Source: core.SourceFallback, Confidence: 0.5}},
		{{Content: "The result is 42", Source: core.SourceTool, Confidence: 0.95}},
		{{Content: "a perfectly ordinary answer about weather patterns today", Source: core.SourceRAG, Confidence: 0.85}},
	}

	for _, list := range candidates {
		got := s.Select("what is the weather like in spring", list)
		assert.GreaterOrEqual(t, got.Confidence, 0.1)
		assert.LessOrEqual(t, got.Confidence, 0.95)
	}
}

func TestSelectPrefersToolForToolQuery(t *testing.T) {
	s := NewSelector()

	candidates := []core.Candidate{
		{
			Content:    "The sum of 25 and 17 equals 42. Addition combines two quantities into one total.",
			Source:     core.SourceDirectLLM,
			Confidence: 0.7,
			Method:     "llm_basic",
		},
		{
			Content:    "The result is 42",
			Source:     core.SourceTool,
			Confidence: 0.95,
			Method:     "tool_calculator",
			ToolName:   "calculator",
		},
	}

	got := s.Select("What is 25 + 17?", candidates)
	assert.Equal(t, core.SourceTool, got.Source)
}

func TestSelectHedgingPenalty(t *testing.T) {
	s := NewSelector()

	candidates := []core.Candidate{
		{Content: "I don't know anything about gopher burrowing habits at all here", Source: core.SourceDirectLLM, Confidence: 0.7},
		{Content: "Gophers dig extensive burrow networks for shelter and food storage", Source: core.SourceDirectLLM, Confidence: 0.7},
	}

	got := s.Select("tell me about gopher burrowing habits", candidates)
	assert.Contains(t, got.Content, "extensive burrow networks")
}

func TestSelectMemoryMethodBonus(t *testing.T) {
	s := NewSelector()

	candidates := []core.Candidate{
		{Content: "Plain answer about favorite subjects in school", Source: core.SourceDirectLLM, Confidence: 0.7, Method: "llm_basic"},
		{Content: "Plain answer about favorite subjects in school", Source: core.SourceDirectLLM, Confidence: 0.7, Method: "llm_memory"},
	}

	got := s.Select("what is my favorite subject", candidates)
	assert.Equal(t, "llm_memory", got.Method)
}

func TestSelectTieKeepsFirst(t *testing.T) {
	s := NewSelector()

	candidates := []core.Candidate{
		{Content: "identical twin answer", Source: core.SourceDirectLLM, Confidence: 0.7, Method: "first"},
		{Content: "identical twin answer", Source: core.SourceDirectLLM, Confidence: 0.7, Method: "second"},
	}

	got := s.Select("some question", candidates)
	assert.Equal(t, "first", got.Method)
}

func TestHeuristicScoreFloor(t *testing.T) {
	p := NewHeuristicProfile()
	c := core.Candidate{Content: "error unable cannot", Source: core.SourceFallback, Confidence: 0.1}
	assert.GreaterOrEqual(t, p.Score("anything", c), 10.0)
}
