package assistant

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/sandevgo/sagebot/internal/core"
)

// Per-tool relevance rules: a tool fires when any pattern or keyword
// matches, or when the tool was mentioned in the last two turns. Inherently
// stringly-typed; kept as isolated tables so a better classifier can replace
// them without touching the pipeline.
type toolRule struct {
	patterns []*regexp.Regexp
	keywords []string
}

var toolRules = map[string]toolRule{
	"calculator": {
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`\d+\.?\d*\s*[-+*/]\s*\d+\.?\d*`),
			regexp.MustCompile(`calculate`),
			regexp.MustCompile(`what is \d+`),
			regexp.MustCompile(`\d+ plus \d+`),
			regexp.MustCompile(`\d+ minus \d+`),
			regexp.MustCompile(`\d+ times \d+`),
			regexp.MustCompile(`\d+ divided by \d+`),
			regexp.MustCompile(`sum of`),
			regexp.MustCompile(`product of`),
			regexp.MustCompile(`difference between`),
		},
		keywords: []string{"calculate", "math", "add", "subtract", "multiply", "divide", "sum", "product"},
	},
	"get_weather": {
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`weather(?: in| at| for)?\s+([a-z]+)`),
			regexp.MustCompile(`temperature(?: in| at| for)?\s+([a-z]+)`),
			regexp.MustCompile(`forecast(?: in| at| for)?\s+([a-z]+)`),
			regexp.MustCompile(`how is the weather`),
			regexp.MustCompile(`how's the weather`),
		},
		keywords: []string{"weather", "temperature", "forecast", "rain", "sunny", "hot", "cold"},
	},
	"get_time": {
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`what is the time`),
			regexp.MustCompile(`what's the time`),
			regexp.MustCompile(`current time`),
			regexp.MustCompile(`what time is it`),
			regexp.MustCompile(`time now`),
			regexp.MustCompile(`date and time`),
		},
		keywords: []string{"time", "current time", "what time", "clock", "date"},
	},
	"web_search": {
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`search for`),
			regexp.MustCompile(`find information about`),
			regexp.MustCompile(`look up`),
			regexp.MustCompile(`google`),
		},
		keywords: []string{"search", "find", "look up", "information about"},
	},
}

func isToolRelevant(queryLower, toolName string, history []core.Turn) bool {
	rule, ok := toolRules[toolName]
	if !ok {
		return false
	}

	for _, pattern := range rule.patterns {
		if pattern.MatchString(queryLower) {
			return true
		}
	}
	for _, keyword := range rule.keywords {
		if strings.Contains(queryLower, keyword) {
			return true
		}
	}

	if len(history) > 0 {
		start := len(history) - 2
		if start < 0 {
			start = 0
		}
		var recent strings.Builder
		for _, turn := range history[start:] {
			recent.WriteString(turn.Message)
			recent.WriteString(" ")
			recent.WriteString(turn.Response)
			recent.WriteString(" ")
		}
		if strings.Contains(strings.ToLower(recent.String()), toolName) {
			return true
		}
	}

	return false
}

var (
	calcExprRe  = regexp.MustCompile(`(\d+\.?\d*)\s*([-+*/])\s*(\d+\.?\d*)`)
	calcWordRes = []*regexp.Regexp{
		regexp.MustCompile(`(\d+)\s+plus\s+(\d+)`),
		regexp.MustCompile(`(\d+)\s+minus\s+(\d+)`),
		regexp.MustCompile(`(\d+)\s+times\s+(\d+)`),
		regexp.MustCompile(`(\d+)\s+divided by\s+(\d+)`),
		regexp.MustCompile(`sum of (\d+) and (\d+)`),
		regexp.MustCompile(`product of (\d+) and (\d+)`),
		regexp.MustCompile(`difference between (\d+) and (\d+)`),
	}
	calcWordOps = []string{"+", "-", "*", "/", "+", "*", "-"}
	locationRes = []*regexp.Regexp{
		regexp.MustCompile(`weather(?: in| at| for)?\s+([a-z]+(?:\s+[a-z]+)*)`),
		regexp.MustCompile(`temperature(?: in| at| for)?\s+([a-z]+(?:\s+[a-z]+)*)`),
		regexp.MustCompile(`forecast(?: in| at| for)?\s+([a-z]+(?:\s+[a-z]+)*)`),
		regexp.MustCompile(`in\s+([a-z]+(?:\s+[a-z]+)*)(?:\s+weather|\s+temperature)`),
		regexp.MustCompile(`at\s+([a-z]+(?:\s+[a-z]+)*)(?:\s+weather|\s+temperature)`),
	}
	searchRes = []*regexp.Regexp{
		regexp.MustCompile(`search for\s+(.+)`),
		regexp.MustCompile(`find information about\s+(.+)`),
		regexp.MustCompile(`look up\s+(.+)`),
		regexp.MustCompile(`google\s+(.+)`),
	}
)

const defaultWeatherLocation = "Delhi"

// extractToolParams derives each tool's parameters from the query with
// per-tool regex rules, falling back to tool-specific defaults.
func extractToolParams(query, toolName string) map[string]any {
	queryLower := strings.ToLower(query)

	switch toolName {
	case "calculator":
		if match := calcExprRe.FindStringSubmatch(queryLower); match != nil {
			return map[string]any{"expression": fmt.Sprintf("%s %s %s", match[1], match[2], match[3])}
		}
		for i, re := range calcWordRes {
			if match := re.FindStringSubmatch(queryLower); match != nil {
				return map[string]any{"expression": fmt.Sprintf("%s %s %s", match[1], calcWordOps[i], match[2])}
			}
		}
		return map[string]any{}

	case "get_weather":
		for _, re := range locationRes {
			if match := re.FindStringSubmatch(queryLower); match != nil {
				location := strings.TrimSpace(match[1])
				if len(location) > 1 {
					return map[string]any{"location": location}
				}
			}
		}
		return map[string]any{"location": defaultWeatherLocation}

	case "web_search":
		for _, re := range searchRes {
			if match := re.FindStringSubmatch(queryLower); match != nil {
				return map[string]any{"query": strings.TrimSpace(match[1]), "max_results": 3}
			}
		}
		return map[string]any{"query": query, "max_results": 3}
	}

	return map[string]any{}
}

// formatToolResponse turns a raw tool result into a natural sentence.
func formatToolResponse(result map[string]any, toolName string) string {
	switch toolName {
	case "calculator":
		if value, ok := result["result"]; ok {
			return fmt.Sprintf("The result is %v", value)
		}
	case "get_weather":
		location, hasLocation := result["location"]
		temperature, hasTemperature := result["temperature"]
		if hasLocation && hasTemperature {
			return fmt.Sprintf("Current weather in %v: %v", location, temperature)
		}
	case "get_time":
		if value, ok := result["current_time"]; ok {
			return fmt.Sprintf("The current time is %v", value)
		}
	case "web_search":
		if results, ok := result["results"].([]map[string]any); ok && len(results) > 0 {
			if snippet, ok := results[0]["snippet"].(string); ok {
				return snippet
			}
			return "No details available"
		}
	}
	return fmt.Sprintf("%v", result)
}

// toolConfidence assigns tool-specific confidence to a successful result.
func toolConfidence(result map[string]any, queryLower, toolName string) float64 {
	switch toolName {
	case "calculator":
		if _, ok := result["result"]; ok {
			return 0.95
		}
	case "get_time":
		return 0.95
	case "get_weather":
		if _, ok := result["temperature"]; ok {
			return 0.90
		}
		return 0.80
	}

	confidence := 0.85
	for _, keyword := range []string{toolName, "calculate", "weather", "time", "search"} {
		if strings.Contains(queryLower, keyword) {
			confidence += 0.05
			break
		}
	}
	return min(confidence, 0.95)
}
