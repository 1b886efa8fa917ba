// Package memory extracts durable personal facts from raw query text.
// Extraction is regex-driven on purpose: each pattern is an isolated pure
// rule, so swapping in a smarter classifier later does not touch the
// orchestrator.
package memory

import (
	"fmt"
	"hash/fnv"
	"regexp"
	"strings"

	"github.com/sandevgo/sagebot/internal/core"
)

var factPatterns = []struct {
	re       *regexp.Regexp
	factType string
}{
	{regexp.MustCompile(`my (?:name is|name's) (\w+)`), "name"},
	{regexp.MustCompile(`i am (\w+) years old`), "age"},
	{regexp.MustCompile(`i am from (\w+)`), "location"},
	{regexp.MustCompile(`my favorite (?:subject|color|food|movie) is (\w+)`), "favorite"},
	{regexp.MustCompile(`i (?:like|love|enjoy) (\w+)`), "likes"},
	{regexp.MustCompile(`i (?:hate|dislike) (\w+)`), "dislikes"},
	{regexp.MustCompile(`i work as (\w+)`), "occupation"},
}

var memoryIndicators = []string{"remember that", "don't forget", "my"}

// Extract returns the single personal fact found in the query, if any.
// The key embeds a stable hash of the value so several facts of the same
// category (multiple "likes") can coexist under last-write-wins storage.
func Extract(query string) (core.Fact, bool) {
	queryLower := strings.ToLower(query)

	for _, pattern := range factPatterns {
		match := pattern.re.FindStringSubmatch(queryLower)
		if match == nil {
			continue
		}
		value := strings.TrimSpace(match[1])
		return core.Fact{
			Key:   factKey(pattern.factType, value),
			Value: value,
			Type:  pattern.factType,
		}, true
	}

	return extractCustom(queryLower)
}

// extractCustom handles the free-form "remember that X is Y" shape.
func extractCustom(queryLower string) (core.Fact, bool) {
	indicatorFound := false
	for _, indicator := range memoryIndicators {
		if strings.Contains(queryLower, indicator) {
			indicatorFound = true
			break
		}
	}
	if !indicatorFound || !strings.Contains(queryLower, " is ") {
		return core.Fact{}, false
	}

	parts := strings.SplitN(queryLower, " is ", 2)
	if len(parts) != 2 {
		return core.Fact{}, false
	}

	keyPart := strings.TrimSpace(strings.NewReplacer(
		"my ", "",
		"remember that ", "",
	).Replace(parts[0]))
	valuePart := strings.TrimSpace(parts[1])

	if keyPart == "" || valuePart == "" {
		return core.Fact{}, false
	}

	return core.Fact{
		Key:   factKey("custom", keyPart),
		Value: fmt.Sprintf("%s: %s", keyPart, valuePart),
		Type:  "custom",
	}, true
}

func factKey(factType, value string) string {
	return fmt.Sprintf("%s_%d", factType, stableHash(value)%1000)
}

func stableHash(s string) uint32 {
	h := fnv.New32a()
	h.Write([]byte(s))
	return h.Sum32()
}
