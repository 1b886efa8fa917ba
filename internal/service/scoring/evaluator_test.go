package scoring

import (
	"testing"

	"github.com/sandevgo/sagebot/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluateEmptyList(t *testing.T) {
	e := NewEvaluator()
	result := e.Evaluate("any query", nil)

	assert.Equal(t, core.SourceError, result.Selected.Source)
	assert.Equal(t, 0.0, result.Selected.Confidence)
	assert.Equal(t, "no_responses", result.Reason)
}

func TestCompositeMonotonicInOverlap(t *testing.T) {
	p := NewCompositeProfile()
	query := "explain gopher burrowing habits underground"

	// Same length, same structure, same source and confidence; only the
	// number of shared query terms differs.
	low := core.Candidate{
		Content:    "Rodents tunnel beneath fields seeking shelter and roots to eat daily",
		Source:     core.SourceRAG,
		Confidence: 0.85,
	}
	high := core.Candidate{
		Content:    "Gopher burrowing habits underground involve tunnels for shelter and daily food",
		Source:     core.SourceRAG,
		Confidence: 0.85,
	}

	assert.Greater(t, p.Evaluate(query, high).Composite, p.Evaluate(query, low).Composite)
}

func TestSourceScoreTable(t *testing.T) {
	tests := []struct {
		source core.Source
		want   float64
	}{
		{core.SourceTool, 0.9},
		{core.SourceReact, 0.85},
		{core.SourceRAG, 0.8},
		{core.SourceDirectLLM, 0.7},
		{core.SourceFallback, 0.3},
		{core.SourceError, 0.1},
		{core.Source("mystery"), 0.5},
	}

	for _, tt := range tests {
		t.Run(string(tt.source), func(t *testing.T) {
			assert.Equal(t, tt.want, sourceScore(tt.source))
		})
	}
}

func TestCompletenessHedgingHalves(t *testing.T) {
	confident := completenessScore("Gophers dig tunnels. They store food there. Their burrows run deep.")
	hedged := completenessScore("I don't know much. Gophers might dig tunnels. Hard to say really.")

	assert.Less(t, hedged, confident)
}

func TestCoherenceBands(t *testing.T) {
	// Average sentence length inside the ideal 8-20 word band.
	ideal := coherenceScore("Gophers dig extensive burrow systems beneath open grassland every season. However their tunnels also aerate and enrich the surrounding soil.")
	// Choppy two-word sentences fall to the lowest band.
	choppy := coherenceScore("Yes. No. Maybe. Sure.")

	assert.Greater(t, ideal, choppy)
}

func TestEvaluatePicksHighestComposite(t *testing.T) {
	e := NewEvaluator()
	query := "what is the weather forecast today"

	candidates := []core.Candidate{
		{Content: "ok", Source: core.SourceFallback, Confidence: 0.1},
		{Content: "The weather forecast today shows sunny skies with mild temperatures expected", Source: core.SourceTool, Confidence: 0.9},
	}

	result := e.Evaluate(query, candidates)
	assert.Equal(t, core.SourceTool, result.Selected.Source)
	require.Len(t, result.AllScores, 2)
	assert.Contains(t, result.Reason, "Highest composite score")
}

func TestEvaluationHistoryRecorded(t *testing.T) {
	e := NewEvaluator()
	e.Evaluate("first", []core.Candidate{{Content: "an answer of reasonable length here", Source: core.SourceDirectLLM, Confidence: 0.7}})
	e.Evaluate("second", nil)

	history := e.History(10)
	require.Len(t, history, 2)
	assert.Equal(t, "no_responses", history[1].Reason)

	assert.Len(t, e.History(1), 1)
}

func TestCompositeCapped(t *testing.T) {
	p := NewCompositeProfile()
	c := core.Candidate{
		Content:    "Gophers burrow underground for shelter. However they surface to forage. Therefore fields show visible mounds.",
		Source:     core.SourceTool,
		Confidence: 1.0,
	}
	eval := p.Evaluate("gophers burrow underground shelter", c)
	assert.LessOrEqual(t, eval.Composite, 1.0)
}
