package tools

import (
	"context"
	"errors"

	"github.com/sandevgo/sagebot/internal/core"
)

// Weather is a stub provider returning canned conditions. The shape matches
// what a real weather API adapter would produce.
type Weather struct{}

func (w *Weather) Name() string        { return "get_weather" }
func (w *Weather) Description() string { return "Get current weather information for a location" }

func (w *Weather) Parameters() map[string]core.ParamSpec {
	return map[string]core.ParamSpec{
		"location": {
			Type:        "string",
			Description: "City name or location",
		},
	}
}

func (w *Weather) Execute(ctx context.Context, params map[string]any) (map[string]any, error) {
	location, _ := params["location"].(string)
	if location == "" {
		return nil, errors.New("location parameter is required")
	}

	return map[string]any{
		"location":    location,
		"temperature": "22°C",
		"conditions":  "Sunny",
		"humidity":    "65%",
		"wind_speed":  "15 km/h",
		"source":      "weather_api",
	}, nil
}
