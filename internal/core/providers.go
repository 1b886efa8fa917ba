package core

import (
	"context"
	"encoding/json"
)

type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// LLMClient is the language-model collaborator. Implementations own their
// retry and transport concerns; callers classify failures with llm.IsQuotaErr.
type LLMClient interface {
	Generate(ctx context.Context, prompt, systemMessage string, maxTokens int) (string, error)
	Chat(ctx context.Context, messages []ChatMessage) (string, error)
	GenerateStructured(ctx context.Context, prompt string, schema json.RawMessage) (map[string]any, error)
}

// Tool is one named callable in the catalogue.
type Tool interface {
	Name() string
	Description() string
	Parameters() map[string]ParamSpec
	Execute(ctx context.Context, params map[string]any) (map[string]any, error)
}

type ParamSpec struct {
	Type        string `json:"type"`
	Description string `json:"description"`
	Default     any    `json:"default,omitempty"`
}
