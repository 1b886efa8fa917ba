// Package scoring ranks candidate answers for a query. Selection, evaluation
// and routing share one home so their weight tables stay side by side: the
// Profile contract is the single scoring interface, and each call site picks
// a named profile instead of growing its own inline formula.
package scoring

import (
	"strings"

	"github.com/sandevgo/sagebot/internal/core"
)

// Profile scores one candidate answer against a query. Implementations are
// pure functions over (query, candidate); scale is profile-specific.
type Profile interface {
	Name() string
	Score(query string, c core.Candidate) float64
}

// hedgingPhrases mark answers that dodge the question. Used by the heuristic
// profile as a hard penalty and by the composite profile as a completeness
// haircut (with its own, softer list).
var hedgingPhrases = []string{
	"error", "unable", "cannot", "don't know", "i don't have",
}

// toolKeywords are query words that signal a tool answer is on topic.
var toolKeywords = []string{
	"weather", "calculate", "time", "search", "math", "temperature",
}

// termOverlapRatio is the share of significant query terms (longer than 3
// chars, case-folded) that also appear in the content.
func termOverlapRatio(query, content string) float64 {
	queryTerms := significantTerms(query)
	if len(queryTerms) == 0 {
		return 0
	}
	contentTerms := significantTerms(content)

	common := 0
	for term := range queryTerms {
		if _, ok := contentTerms[term]; ok {
			common++
		}
	}
	return float64(common) / float64(len(queryTerms))
}

func significantTerms(text string) map[string]struct{} {
	terms := make(map[string]struct{})
	for _, word := range strings.Fields(text) {
		if len(word) > 3 {
			terms[strings.ToLower(word)] = struct{}{}
		}
	}
	return terms
}

func containsAny(text string, phrases []string) bool {
	for _, phrase := range phrases {
		if strings.Contains(text, phrase) {
			return true
		}
	}
	return false
}

func wordCount(text string) int {
	return len(strings.Fields(text))
}
