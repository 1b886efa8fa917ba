package assistant

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/sandevgo/sagebot/pkg/log"
)

const refinePrompt = `You are personalizing a response using known facts about the user.

Known facts about the user:
%s

Original question: %s

Original response: %s

Rewrite the response so it naturally uses the relevant facts above. Keep the response short and specific. Avoid generic motivational language. If no fact is relevant, return the original response unchanged.`

const maxRefineFacts = 10

// refineWithMemory asks the model to personalize an already-selected answer
// with stored facts. It is conservative: any failure, empty output, or
// degenerate rewrite keeps the original.
func (a *Assistant) refineWithMemory(ctx context.Context, original, query string, facts map[string]string) (string, bool) {
	trimmed := strings.TrimSpace(original)
	if len(trimmed) < 10 || strings.Contains(strings.ToLower(trimmed), "unable to complete") {
		return original, false
	}

	bullets := factBullets(facts)
	if len(bullets) == 0 {
		return original, false
	}

	prompt := fmt.Sprintf(refinePrompt, strings.Join(bullets, "\n"), query, original)
	refined, err := a.llm.Generate(ctx, prompt, "", 500)
	if err != nil {
		log.FromCtx(ctx).Debug().Err(err).Msg("memory refinement failed, keeping original")
		return original, false
	}

	refined = strings.TrimSpace(refined)
	if refined == "" || refined == quotaMessage || len(refined) <= 10 ||
		strings.Contains(strings.ToLower(refined), "unable to complete") {
		return original, false
	}
	return refined, true
}

// factBullets renders facts as "- key: value" lines, deduplicated by value
// and capped, in stable key order.
func factBullets(facts map[string]string) []string {
	keys := make([]string, 0, len(facts))
	for key := range facts {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	seen := make(map[string]struct{}, len(facts))
	bullets := make([]string, 0, maxRefineFacts)
	for _, key := range keys {
		value := strings.TrimSpace(facts[key])
		if len(value) <= 2 {
			continue
		}
		if _, dup := seen[value]; dup {
			continue
		}
		seen[value] = struct{}{}
		bullets = append(bullets, "- "+key+": "+value)
		if len(bullets) == maxRefineFacts {
			break
		}
	}
	return bullets
}

// sortedValues returns fact values in stable key order.
func sortedValues(facts map[string]string) []string {
	keys := make([]string, 0, len(facts))
	for key := range facts {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	values := make([]string, 0, len(keys))
	for _, key := range keys {
		values = append(values, facts[key])
	}
	return values
}
