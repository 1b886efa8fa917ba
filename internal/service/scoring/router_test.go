package scoring

import (
	"testing"

	"github.com/sandevgo/sagebot/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoute(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  core.Source
	}{
		{
			name:  "weather keyword routes to tool",
			query: "weather forecast please",
			want:  core.SourceTool,
		},
		{
			name:  "knowledge phrasing routes to rag",
			query: "who is the president of France",
			want:  core.SourceRAG,
		},
		{
			name:  "tool beats rag on shared query",
			query: "what is the weather in Delhi",
			want:  core.SourceTool,
		},
		{
			name:  "complex query routes to react",
			query: "compare multiple caching layers either redis or memcached and pick which fits, which one wins?",
			want:  core.SourceReact,
		},
		{
			name:  "plain chat falls back to direct",
			query: "hello there friend",
			want:  core.SourceDirectLLM,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRouter()
			assert.Equal(t, tt.want, r.Route(tt.query))
		})
	}
}

func TestRouteRecordsHistoryWithAllScores(t *testing.T) {
	r := NewRouter()
	r.Route("what is the capital of France")

	history := r.History(10)
	require.Len(t, history, 1)

	decision := history[0]
	assert.Equal(t, core.SourceRAG, decision.Selected)
	assert.Equal(t, 0.7, decision.Confidence)
	// direct_llm is always present as a route; rag fired too.
	assert.GreaterOrEqual(t, len(decision.AllRoutes), 2)
}

func TestReactConfidenceIndicators(t *testing.T) {
	// All four indicators fire: long, has and+or, has a complexity word,
	// question mark after a multi-word clause.
	conf := reactConfidence(
		"compare multiple options and alternatives or tradeoffs which complex design wins here overall?",
		"compare multiple options and alternatives or tradeoffs which complex design wins here overall?",
	)
	assert.Equal(t, 1.0, conf)

	assert.Less(t, reactConfidence("short one", "short one"), 0.51)
}
