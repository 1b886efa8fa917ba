package rag

import "strings"

var stopWords = map[string]struct{}{
	"the": {}, "a": {}, "an": {}, "and": {}, "or": {}, "but": {},
	"in": {}, "on": {}, "at": {}, "to": {}, "for": {},
}

const punctuation = `.,!?;:"()[]{}`

// ExtractTerms lowercases, splits on whitespace, strips surrounding
// punctuation and drops stop-words and short tokens.
func ExtractTerms(text string) []string {
	words := strings.Fields(strings.ToLower(text))
	terms := make([]string, 0, len(words))
	for _, word := range words {
		if len(word) <= 3 {
			continue
		}
		if _, stop := stopWords[word]; stop {
			continue
		}
		terms = append(terms, strings.Trim(word, punctuation))
	}
	return terms
}

// uniqueTerms preserves first-appearance order.
func uniqueTerms(terms []string) []string {
	seen := make(map[string]struct{}, len(terms))
	out := make([]string, 0, len(terms))
	for _, term := range terms {
		if _, ok := seen[term]; ok {
			continue
		}
		seen[term] = struct{}{}
		out = append(out, term)
	}
	return out
}
