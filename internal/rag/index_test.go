package rag

import (
	"context"
	"testing"
	"time"

	"github.com/sandevgo/sagebot/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestIndex(t *testing.T) *Index {
	t.Helper()
	idx, err := NewIndex(context.Background(), NewFileStorage(t.TempDir()), 3)
	require.NoError(t, err)
	return idx
}

func TestExtractTerms(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "drops stop words and short tokens",
			input: "the capital of France",
			want:  []string{"capital", "france"},
		},
		{
			name:  "strips punctuation",
			input: "What about programming, exactly?",
			want:  []string{"what", "about", "programming", "exactly"},
		},
		{
			name:  "empty input",
			input: "",
			want:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractTerms(tt.input))
		})
	}
}

func TestSearchFindsAddedDocument(t *testing.T) {
	ctx := context.Background()
	idx := newTestIndex(t)

	err := idx.AddDocument(ctx, core.Document{
		Content:    "Paris is the capital of France",
		Source:     "seed",
		Confidence: 0.8,
	})
	require.NoError(t, err)

	hits := idx.Search(ctx, "what is the capital of France?", 3)
	require.Len(t, hits, 1)
	assert.Greater(t, hits[0].Score, 0.0)
	assert.Equal(t, "Paris is the capital of France", hits[0].Content)
}

func TestSearchNoOverlapReturnsEmpty(t *testing.T) {
	ctx := context.Background()
	idx := newTestIndex(t)

	require.NoError(t, idx.AddDocument(ctx, core.Document{
		Content:    "Paris is the capital of France",
		Source:     "seed",
		Confidence: 0.8,
	}))

	hits := idx.Search(ctx, "quantum chromodynamics lattice", 3)
	assert.Empty(t, hits)
}

func TestAddDocumentSkipsEmptyContent(t *testing.T) {
	ctx := context.Background()
	idx := newTestIndex(t)

	require.NoError(t, idx.AddDocument(ctx, core.Document{Source: "seed"}))
	assert.Equal(t, 0, idx.Statistics().TotalDocuments)
}

func TestLearnFromInteraction(t *testing.T) {
	ctx := context.Background()
	idx := newTestIndex(t)

	query := "what is photosynthesis"
	response := "Photosynthesis is the process plants use to convert sunlight water and carbon dioxide into energy"

	require.NoError(t, idx.LearnFromInteraction(ctx, query, response, core.SourceDirectLLM))

	stats := idx.Statistics()
	assert.Equal(t, 1, stats.TotalDocuments)
	assert.Equal(t, map[string]int{"learned_from_direct_llm": 1}, stats.SourcesDistribution)
	assert.Greater(t, stats.LearnedPatterns, 0)

	hits := idx.Search(ctx, "photosynthesis", 3)
	require.Len(t, hits, 1)
	assert.Contains(t, hits[0].Content, "Question: what is photosynthesis")
}

func TestLearnFromInteractionIgnoresShortResponses(t *testing.T) {
	ctx := context.Background()
	idx := newTestIndex(t)

	require.NoError(t, idx.LearnFromInteraction(ctx, "hi", "hello there", core.SourceDirectLLM))
	assert.Equal(t, 0, idx.Statistics().TotalDocuments)
}

func TestLearningTwiceAppendsDocumentsButAssociationsConverge(t *testing.T) {
	ctx := context.Background()
	idx := newTestIndex(t)

	query := "what is photosynthesis"
	response := "Photosynthesis is the process plants use to convert sunlight water and carbon dioxide into energy"

	require.NoError(t, idx.LearnFromInteraction(ctx, query, response, core.SourceRAG))
	assocAfterFirst := len(idx.associations["photosynthesis"])

	require.NoError(t, idx.LearnFromInteraction(ctx, query, response, core.SourceRAG))

	// Documents are append-only, no dedup.
	assert.Equal(t, 2, idx.Statistics().TotalDocuments)
	// Association membership is a set: re-adding is a no-op.
	assert.Equal(t, assocAfterFirst, len(idx.associations["photosynthesis"]))
}

func TestQueryExpansionUsesAssociations(t *testing.T) {
	ctx := context.Background()
	idx := newTestIndex(t)

	// Teach the index that "gopher" co-occurs with "golang".
	require.NoError(t, idx.LearnFromInteraction(ctx,
		"tell me about gopher",
		"golang is the language whose gopher mascot appears on much of the project artwork and merchandise",
		core.SourceDirectLLM))

	require.NoError(t, idx.AddDocument(ctx, core.Document{
		Content:    "golang compiles fast",
		Source:     "seed",
		Confidence: 0.9,
	}))

	// "gopher" does not appear in the seed doc, but its learned association
	// "golang" does.
	hits := idx.Search(ctx, "gopher", 5)
	found := false
	for _, hit := range hits {
		if hit.Content == "golang compiles fast" {
			found = true
		}
	}
	assert.True(t, found, "expected expansion to surface the golang document")
}

func TestRecencyBoostDecays(t *testing.T) {
	ctx := context.Background()
	idx := newTestIndex(t)

	old := time.Now().Add(-60 * 24 * time.Hour)
	recent := time.Now()

	require.NoError(t, idx.AddDocument(ctx, core.Document{
		Content: "Question: about gophers\nAnswer: gophers burrow", Source: "learned_from_rag",
		Confidence: 0.7, LearnedAt: &old,
	}))
	require.NoError(t, idx.AddDocument(ctx, core.Document{
		Content: "Question: about gophers\nAnswer: gophers dig", Source: "learned_from_rag",
		Confidence: 0.7, LearnedAt: &recent,
	}))

	hits := idx.Search(ctx, "gophers", 2)
	require.Len(t, hits, 2)
	// The fresher document outranks the stale one; the stale one bottoms out
	// at half weight rather than vanishing.
	assert.Contains(t, hits[0].Content, "dig")
	assert.GreaterOrEqual(t, hits[1].Score, 0.7*0.5*1.0/3.0)
}

func TestQueryReturnsTopTwoConcatenated(t *testing.T) {
	ctx := context.Background()
	idx := newTestIndex(t)

	_, ok := idx.Query(ctx, "anything")
	assert.False(t, ok)

	require.NoError(t, idx.AddDocument(ctx, core.Document{Content: "gophers burrow underground", Source: "seed", Confidence: 0.9}))
	require.NoError(t, idx.AddDocument(ctx, core.Document{Content: "gophers eat roots", Source: "seed", Confidence: 0.8}))
	require.NoError(t, idx.AddDocument(ctx, core.Document{Content: "gophers are rodents", Source: "seed", Confidence: 0.7}))

	content, ok := idx.Query(ctx, "gophers")
	require.True(t, ok)
	assert.Contains(t, content, "burrow")
	assert.Contains(t, content, "roots")
	assert.NotContains(t, content, "rodents")
}

func TestIndexPersistsAcrossReload(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	idx, err := NewIndex(ctx, NewFileStorage(dir), 3)
	require.NoError(t, err)
	require.NoError(t, idx.AddDocument(ctx, core.Document{Content: "persistent gophers", Source: "seed", Confidence: 0.9}))

	reloaded, err := NewIndex(ctx, NewFileStorage(dir), 3)
	require.NoError(t, err)
	hits := reloaded.Search(ctx, "gophers", 3)
	require.Len(t, hits, 1)
}
