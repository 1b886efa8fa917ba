package tools

import (
	"context"
	"time"

	"github.com/sandevgo/sagebot/internal/core"
)

type Clock struct {
	// Now is replaceable for tests; defaults to time.Now.
	Now func() time.Time
}

func (c *Clock) Name() string        { return "get_time" }
func (c *Clock) Description() string { return "Get current date and time information" }

func (c *Clock) Parameters() map[string]core.ParamSpec {
	return nil
}

func (c *Clock) Execute(ctx context.Context, params map[string]any) (map[string]any, error) {
	now := time.Now()
	if c.Now != nil {
		now = c.Now()
	}

	return map[string]any{
		"current_time": now.Format("2006-01-02 15:04:05"),
		"timezone":     "local",
		"timestamp":    now.Unix(),
		"formats": map[string]any{
			"iso":      now.Format(time.RFC3339),
			"readable": now.Format("Monday, January 2, 2006 at 3:04 PM"),
		},
	}, nil
}
