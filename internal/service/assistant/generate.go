package assistant

import (
	"context"
	"fmt"
	"strings"

	"github.com/sandevgo/sagebot/internal/core"
	"github.com/sandevgo/sagebot/internal/providers/llm"
	"github.com/sandevgo/sagebot/pkg/log"
)

const directPrompt = `You are a helpful assistant. Answer the user's question clearly.

Question: %s

Response:`

// generateAll invokes the three generators in a fixed order so candidate
// iteration, and therefore tie-breaking, is deterministic. The direct-LLM
// candidate is always present; retrieval and tool candidates are
// conditional.
func (a *Assistant) generateAll(ctx context.Context, query string, history []core.Turn, userFacts map[string]string) []core.Candidate {
	candidates := []core.Candidate{a.generateDirect(ctx, query)}

	if ragCandidate, ok := a.generateRAG(ctx, query, history, userFacts); ok {
		candidates = append(candidates, ragCandidate)
	}

	candidates = append(candidates, a.generateToolCandidates(ctx, query, history)...)
	return candidates
}

// generateDirect always yields a candidate: a provider failure becomes a
// canned quota message, still a valid low-value answer rather than a gap.
func (a *Assistant) generateDirect(ctx context.Context, query string) core.Candidate {
	content, err := a.llm.Generate(ctx, fmt.Sprintf(directPrompt, query), "", 0)
	if err != nil {
		if llm.IsQuotaErr(err) {
			log.FromCtx(ctx).Warn().Msg("llm quota exhausted")
		} else {
			log.FromCtx(ctx).Error().Err(err).Msg("llm generation failed")
		}
		content = quotaMessage
	}

	return core.Candidate{
		Content:        content,
		Source:         core.SourceDirectLLM,
		Confidence:     0.7,
		Method:         "llm_basic",
		ResponseLength: len(content),
	}
}

func (a *Assistant) generateRAG(ctx context.Context, query string, history []core.Turn, userFacts map[string]string) (core.Candidate, bool) {
	enhanced := enhanceQueryWithMemory(query, history, userFacts)

	content, ok := a.index.Query(ctx, enhanced)
	if !ok {
		return core.Candidate{}, false
	}

	return core.Candidate{
		Content:        content,
		Source:         core.SourceRAG,
		Confidence:     0.85,
		Method:         "rag_basic",
		ResponseLength: len(content),
	}, true
}

// enhanceQueryWithMemory widens the retrieval query with terms from
// remembered facts and the tail of the conversation.
func enhanceQueryWithMemory(query string, history []core.Turn, userFacts map[string]string) string {
	var enhanced []string

	for _, value := range sortedValues(userFacts) {
		for _, word := range strings.Fields(value) {
			if len(word) > 3 {
				enhanced = append(enhanced, word)
			}
		}
	}

	if len(history) > 0 {
		start := len(history) - 2
		if start < 0 {
			start = 0
		}
		for _, turn := range history[start:] {
			enhanced = append(enhanced, firstWords(turn.Message, 3)...)
			enhanced = append(enhanced, firstWords(turn.Response, 3)...)
		}
	}

	if len(enhanced) == 0 {
		return query
	}

	seen := make(map[string]struct{})
	var unique []string
	for _, term := range enhanced {
		term = strings.ToLower(term)
		if len(term) <= 3 {
			continue
		}
		if _, ok := seen[term]; ok {
			continue
		}
		seen[term] = struct{}{}
		unique = append(unique, term)
	}
	if len(unique) == 0 {
		return query
	}
	return query + " " + strings.Join(unique, " ")
}

func firstWords(text string, n int) []string {
	words := strings.Fields(text)
	if len(words) > n {
		words = words[:n]
	}
	return words
}

// generateToolCandidates tests every registered tool for relevance and
// invokes the ones that match. Failed invocations are dropped, not surfaced.
func (a *Assistant) generateToolCandidates(ctx context.Context, query string, history []core.Turn) []core.Candidate {
	logger := log.FromCtx(ctx)
	queryLower := strings.ToLower(query)

	var candidates []core.Candidate
	for _, toolName := range a.tools.List() {
		if !isToolRelevant(queryLower, toolName, history) {
			continue
		}

		params := extractToolParams(query, toolName)
		result, err := a.tools.Execute(ctx, toolName, params)
		if err != nil {
			logger.Debug().Err(err).Str("tool", toolName).Msg("tool invocation dropped")
			continue
		}

		content := formatToolResponse(result, toolName)
		candidates = append(candidates, core.Candidate{
			Content:        content,
			Source:         core.SourceTool,
			Confidence:     toolConfidence(result, queryLower, toolName),
			Method:         "tool_" + toolName,
			ResponseLength: len(content),
			ToolName:       toolName,
			ToolData:       result,
		})
	}
	return candidates
}
