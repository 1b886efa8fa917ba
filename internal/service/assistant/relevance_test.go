package assistant

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sandevgo/sagebot/internal/core"
)

func TestIsToolRelevant(t *testing.T) {
	tests := []struct {
		name  string
		query string
		tool  string
		want  bool
	}{
		{"arithmetic expression", "what is 25 + 17?", "calculator", true},
		{"spelled out arithmetic", "what is 5 plus 3", "calculator", true},
		{"weather question", "what's the weather in london", "get_weather", true},
		{"time question", "what time is it", "get_time", true},
		{"search request", "search for go generics", "web_search", true},
		{"plain question", "describe a banana please", "calculator", false},
		{"plain question weather", "describe a banana please", "get_weather", false},
		{"unknown tool", "what is 25 + 17?", "nonexistent", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isToolRelevant(tt.query, tt.tool, nil))
		})
	}
}

func TestIsToolRelevantFollowsHistory(t *testing.T) {
	history := []core.Turn{
		{Message: "can you use get_weather", Response: "sure"},
	}
	assert.True(t, isToolRelevant("and tomorrow?", "get_weather", history))
	assert.False(t, isToolRelevant("and tomorrow?", "get_weather", nil))
}

func TestExtractToolParamsCalculator(t *testing.T) {
	tests := []struct {
		query string
		want  string
	}{
		{"what is 25 + 17?", "25 + 17"},
		{"what is 10/4", "10 / 4"},
		{"what is 5 plus 3", "5 + 3"},
		{"8 minus 2 please", "8 - 2"},
		{"the sum of 2 and 9", "2 + 9"},
		{"product of 6 and 7", "6 * 7"},
	}
	for _, tt := range tests {
		params := extractToolParams(tt.query, "calculator")
		assert.Equal(t, tt.want, params["expression"], tt.query)
	}

	empty := extractToolParams("no numbers here", "calculator")
	assert.Empty(t, empty)
}

func TestExtractToolParamsWeather(t *testing.T) {
	params := extractToolParams("What is the weather in paris", "get_weather")
	assert.Equal(t, "paris", params["location"])

	params = extractToolParams("how is the weather", "get_weather")
	assert.Equal(t, defaultWeatherLocation, params["location"])
}

func TestExtractToolParamsWebSearch(t *testing.T) {
	params := extractToolParams("search for go generics", "web_search")
	assert.Equal(t, "go generics", params["query"])
	assert.Equal(t, 3, params["max_results"])

	params = extractToolParams("find me things", "web_search")
	assert.Equal(t, "find me things", params["query"])
}

func TestFormatToolResponse(t *testing.T) {
	assert.Equal(t, "The result is 42",
		formatToolResponse(map[string]any{"result": "42"}, "calculator"))
	assert.Equal(t, "Current weather in Paris: 22°C",
		formatToolResponse(map[string]any{"location": "Paris", "temperature": "22°C"}, "get_weather"))
	assert.Equal(t, "The current time is 2026-08-29 10:00:00",
		formatToolResponse(map[string]any{"current_time": "2026-08-29 10:00:00"}, "get_time"))
	assert.Equal(t, "First snippet",
		formatToolResponse(map[string]any{"results": []map[string]any{{"snippet": "First snippet"}}}, "web_search"))
}

func TestToolConfidence(t *testing.T) {
	assert.InDelta(t, 0.95, toolConfidence(map[string]any{"result": "42"}, "what is 25 + 17", "calculator"), 1e-9)
	assert.InDelta(t, 0.95, toolConfidence(map[string]any{}, "what time is it", "get_time"), 1e-9)
	assert.InDelta(t, 0.90, toolConfidence(map[string]any{"temperature": "22°C"}, "weather in paris", "get_weather"), 1e-9)
	assert.InDelta(t, 0.80, toolConfidence(map[string]any{}, "weather in paris", "get_weather"), 1e-9)
	assert.InDelta(t, 0.90, toolConfidence(map[string]any{}, "search for cats", "web_search"), 1e-9)
	assert.InDelta(t, 0.85, toolConfidence(map[string]any{}, "hello there", "web_search"), 1e-9)
}
