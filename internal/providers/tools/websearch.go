package tools

import (
	"context"
	"errors"
	"fmt"

	"github.com/sandevgo/sagebot/internal/core"
)

const defaultMaxResults = 3

// WebSearch is a stub provider: it fabricates result snippets instead of
// hitting a search API.
type WebSearch struct{}

func (s *WebSearch) Name() string        { return "web_search" }
func (s *WebSearch) Description() string { return "Search the web for information" }

func (s *WebSearch) Parameters() map[string]core.ParamSpec {
	return map[string]core.ParamSpec{
		"query": {
			Type:        "string",
			Description: "Search query",
		},
		"max_results": {
			Type:        "integer",
			Description: "Maximum number of results",
			Default:     defaultMaxResults,
		},
	}
}

func (s *WebSearch) Execute(ctx context.Context, params map[string]any) (map[string]any, error) {
	query, _ := params["query"].(string)
	if query == "" {
		return nil, errors.New("query parameter is required")
	}

	maxResults := defaultMaxResults
	switch v := params["max_results"].(type) {
	case int:
		maxResults = v
	case float64:
		maxResults = int(v)
	}

	results := []map[string]any{
		{
			"title":   fmt.Sprintf("Result 1 for %s", query),
			"snippet": fmt.Sprintf("This is information about %s from the web.", query),
			"url":     "https://example.com/1",
		},
		{
			"title":   fmt.Sprintf("Result 2 for %s", query),
			"snippet": fmt.Sprintf("More details about %s found online.", query),
			"url":     "https://example.com/2",
		},
	}
	if maxResults < len(results) {
		results = results[:maxResults]
	}

	return map[string]any{
		"query":   query,
		"results": results,
		"source":  "web_search_api",
	}, nil
}
