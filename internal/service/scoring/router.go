package scoring

import (
	"strings"
	"time"

	"github.com/sandevgo/sagebot/internal/core"
)

// routerToolKeywords maps each tool family to the query words that suggest
// it. Iterated in declaration order so detection is deterministic.
var routerToolKeywords = []struct {
	tool     string
	keywords []string
}{
	{"weather", []string{"weather", "temperature", "forecast"}},
	{"calculator", []string{"calculate", "math", "equation", "times", "plus", "minus"}},
	{"time", []string{"time", "current time", "what time", "date"}},
	{"web_search", []string{"search for", "find information about", "look up"}},
}

var ragPhrasings = []string{
	"what is", "who is", "explain", "tell me about", "define",
	"capital of", "founder of", "invented by", "located in",
}

var complexityWords = []string{"complex", "multiple", "various"}

type Route struct {
	Family     core.Source
	Confidence float64
	Reason     string
}

type RoutingDecision struct {
	Query      string
	Selected   core.Source
	Confidence float64
	Reason     string
	AllRoutes  []Route
	Timestamp  time.Time
}

// Router classifies a query into a preferred source family. It is an
// auxiliary signal, not a hard gate: the orchestrator's selector still sees
// every candidate.
type Router struct {
	history      []RoutingDecision
	historyLimit int
}

func NewRouter() *Router {
	return &Router{historyLimit: 1000}
}

// Route computes an independent confidence per family and returns the
// highest. Ties go to the family inserted first: tool, rag, react,
// direct_llm.
func (r *Router) Route(query string) core.Source {
	queryLower := strings.ToLower(query)

	var routes []Route

	if conf, tool := toolConfidence(queryLower); conf > 0 {
		routes = append(routes, Route{
			Family:     core.SourceTool,
			Confidence: conf,
			Reason:     "Detected tool: " + tool,
		})
	}

	if containsAny(queryLower, ragPhrasings) {
		routes = append(routes, Route{
			Family:     core.SourceRAG,
			Confidence: 0.7,
			Reason:     "Knowledge-based query",
		})
	}

	if conf := reactConfidence(query, queryLower); conf > 0.5 {
		routes = append(routes, Route{
			Family:     core.SourceReact,
			Confidence: conf,
			Reason:     "Complex query requiring reasoning",
		})
	}

	routes = append(routes, Route{
		Family:     core.SourceDirectLLM,
		Confidence: 0.6,
		Reason:     "General query",
	})

	best := routes[0]
	for _, route := range routes[1:] {
		if route.Confidence > best.Confidence {
			best = route
		}
	}

	r.record(RoutingDecision{
		Query:      query,
		Selected:   best.Family,
		Confidence: best.Confidence,
		Reason:     best.Reason,
		AllRoutes:  routes,
		Timestamp:  time.Now(),
	})

	return best.Family
}

func toolConfidence(queryLower string) (float64, string) {
	for _, entry := range routerToolKeywords {
		if containsAny(queryLower, entry.keywords) {
			return 0.8, entry.tool
		}
	}
	return 0, ""
}

// reactConfidence averages four boolean complexity indicators.
func reactConfidence(query, queryLower string) float64 {
	indicators := []bool{
		wordCount(query) > 10,
		strings.Contains(queryLower, "and") && strings.Contains(queryLower, "or"),
		containsAny(queryLower, complexityWords),
		hasQuestionClause(query),
	}

	hits := 0
	for _, ind := range indicators {
		if ind {
			hits++
		}
	}
	return float64(hits) / float64(len(indicators))
}

// hasQuestionClause reports whether a question mark follows a multi-word
// clause.
func hasQuestionClause(query string) bool {
	idx := strings.Index(query, "?")
	if idx < 0 {
		return false
	}
	return strings.Contains(query[:idx], " ")
}

func (r *Router) record(decision RoutingDecision) {
	r.history = append(r.history, decision)
	if r.historyLimit > 0 && len(r.history) > r.historyLimit {
		r.history = r.history[len(r.history)-r.historyLimit:]
	}
}

// History returns the most recent routing decisions, oldest first.
func (r *Router) History(limit int) []RoutingDecision {
	start := len(r.history) - limit
	if limit <= 0 || start < 0 {
		start = 0
	}
	out := make([]RoutingDecision, len(r.history)-start)
	copy(out, r.history[start:])
	return out
}
