// Package rag implements the lexical retrieval index: an append-only
// document collection scored by term overlap, a recency boost for learned
// documents, and a term co-occurrence table that expands queries with
// associations learned from past interactions.
package rag

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/sandevgo/sagebot/internal/core"
	"github.com/sandevgo/sagebot/pkg/log"
)

const (
	// Responses shorter than this carry too little signal to learn from.
	minLearnableWords = 10
	// How many associations a single query term may pull into a search.
	maxExpansionsPerTerm = 3
	// Learned documents older than this bottom out at half weight.
	recencyWindowDays = 30

	learnedConfidence = 0.7
)

type Storage interface {
	LoadDocuments(ctx context.Context) ([]core.Document, error)
	SaveDocuments(ctx context.Context, docs []core.Document) error
	LoadAssociations(ctx context.Context) (map[string][]string, error)
	SaveAssociations(ctx context.Context, assoc map[string][]string) error
}

type ScoredDocument struct {
	core.Document
	Score float64
}

type Statistics struct {
	TotalDocuments      int            `json:"total_documents"`
	SourcesDistribution map[string]int `json:"sources_distribution"`
	LearnedPatterns     int            `json:"learned_patterns"`
}

type Index struct {
	storage      Storage
	documents    []core.Document
	associations map[string][]string
	topK         int

	// now is replaceable for recency tests.
	now func() time.Time
}

func NewIndex(ctx context.Context, storage Storage, topK int) (*Index, error) {
	docs, err := storage.LoadDocuments(ctx)
	if err != nil {
		return nil, fmt.Errorf("load documents: %w", err)
	}
	assoc, err := storage.LoadAssociations(ctx)
	if err != nil {
		return nil, fmt.Errorf("load associations: %w", err)
	}

	log.FromCtx(ctx).Info().
		Int("documents", len(docs)).
		Int("patterns", len(assoc)).
		Msg("retrieval index loaded")

	return &Index{
		storage:      storage,
		documents:    docs,
		associations: assoc,
		topK:         topK,
		now:          time.Now,
	}, nil
}

func (i *Index) AddDocument(ctx context.Context, doc core.Document) error {
	if doc.Content == "" {
		return nil
	}
	i.documents = append(i.documents, doc)
	if err := i.storage.SaveDocuments(ctx, i.documents); err != nil {
		return fmt.Errorf("persist documents: %w", err)
	}
	return nil
}

// Search returns up to k documents by descending score. Documents with no
// query-term overlap are excluded.
func (i *Index) Search(ctx context.Context, query string, k int) []ScoredDocument {
	if k <= 0 {
		k = i.topK
	}

	queryTerms := i.expandQuery(query)
	if len(queryTerms) == 0 {
		return nil
	}

	var results []ScoredDocument
	for _, doc := range i.documents {
		score := i.scoreDocument(doc, queryTerms)
		if score > 0 {
			results = append(results, ScoredDocument{Document: doc, Score: score})
		}
	}

	sort.SliceStable(results, func(a, b int) bool {
		return results[a].Score > results[b].Score
	})

	if len(results) > k {
		results = results[:k]
	}
	return results
}

// Query returns the concatenated content of the top 2 hits, or false when
// nothing matched.
func (i *Index) Query(ctx context.Context, question string) (string, bool) {
	hits := i.Search(ctx, question, i.topK)
	if len(hits) == 0 {
		return "", false
	}
	if len(hits) > 2 {
		hits = hits[:2]
	}
	contents := make([]string, 0, len(hits))
	for _, hit := range hits {
		contents = append(contents, hit.Content)
	}
	return strings.Join(contents, "\n"), true
}

// LearnFromInteraction feeds a finished exchange back into the index: the
// pair is stored as a question/answer document and every query term gains
// every response term as an association.
func (i *Index) LearnFromInteraction(ctx context.Context, query, response string, source core.Source) error {
	if len(strings.Fields(response)) <= minLearnableWords {
		return nil
	}

	learnedAt := i.now()
	doc := core.Document{
		Content:    fmt.Sprintf("Question: %s\nAnswer: %s", query, response),
		Source:     fmt.Sprintf("learned_from_%s", source),
		Confidence: learnedConfidence,
		LearnedAt:  &learnedAt,
	}
	if err := i.AddDocument(ctx, doc); err != nil {
		return err
	}

	i.learnAssociations(query, response)
	if err := i.storage.SaveAssociations(ctx, i.associations); err != nil {
		return fmt.Errorf("persist associations: %w", err)
	}

	log.FromCtx(ctx).Debug().
		Str("source", string(source)).
		Msg("learned from interaction")
	return nil
}

func (i *Index) learnAssociations(query, response string) {
	queryTerms := ExtractTerms(query)
	responseTerms := ExtractTerms(response)

	for _, qTerm := range queryTerms {
		existing := i.associations[qTerm]
		for _, rTerm := range responseTerms {
			if !contains(existing, rTerm) {
				existing = append(existing, rTerm)
			}
		}
		i.associations[qTerm] = existing
	}
}

// expandQuery widens the query with up to three learned associations per
// term, deduplicated, first-appearance order preserved.
func (i *Index) expandQuery(query string) []string {
	queryTerms := uniqueTerms(ExtractTerms(query))
	expanded := make([]string, 0, len(queryTerms))
	expanded = append(expanded, queryTerms...)

	for _, term := range queryTerms {
		assoc := i.associations[term]
		if len(assoc) > maxExpansionsPerTerm {
			assoc = assoc[:maxExpansionsPerTerm]
		}
		expanded = append(expanded, assoc...)
	}
	return uniqueTerms(expanded)
}

func (i *Index) scoreDocument(doc core.Document, queryTerms []string) float64 {
	content := strings.ToLower(doc.Content)

	matches := 0
	for _, term := range queryTerms {
		if strings.Contains(content, term) {
			matches++
		}
	}
	if matches == 0 {
		return 0
	}
	termScore := float64(matches) / float64(len(queryTerms))

	recencyBoost := 1.0
	if doc.LearnedAt != nil {
		daysAgo := i.now().Sub(*doc.LearnedAt).Hours() / 24
		recencyBoost = 1.0 - daysAgo/recencyWindowDays
		if recencyBoost < 0.5 {
			recencyBoost = 0.5
		}
	}

	confidence := doc.Confidence
	if confidence == 0 {
		confidence = 0.5
	}

	return termScore * recencyBoost * confidence
}

func (i *Index) Statistics() Statistics {
	sources := make(map[string]int)
	for _, doc := range i.documents {
		source := doc.Source
		if source == "" {
			source = "unknown"
		}
		sources[source]++
	}
	return Statistics{
		TotalDocuments:      len(i.documents),
		SourcesDistribution: sources,
		LearnedPatterns:     len(i.associations),
	}
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
