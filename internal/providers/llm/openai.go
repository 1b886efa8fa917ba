package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/sandevgo/sagebot/internal/config"
	"github.com/sandevgo/sagebot/internal/core"
	"github.com/sandevgo/sagebot/pkg/log"
	"github.com/sandevgo/sagebot/pkg/retry"
)

const defaultSystemMessage = "You are a helpful assistant."

// OpenAI talks to any OpenAI-compatible chat completions endpoint.
type OpenAI struct {
	baseProvider
	model       string
	temperature float64
	maxTokens   int
	retrier     *retry.Retrier
}

func NewOpenAI(cfg *config.OpenAIConfig) *OpenAI {
	return &OpenAI{
		baseProvider: newBaseProvider(cfg.BaseURL, cfg.APIKey),
		model:        cfg.Model,
		temperature:  cfg.Temperature,
		maxTokens:    cfg.MaxTokens,
		retrier:      retry.NewDefaultRetrier(),
	}
}

type completionsRequest struct {
	Model          string             `json:"model"`
	Messages       []core.ChatMessage `json:"messages"`
	Temperature    float64            `json:"temperature"`
	MaxTokens      int                `json:"max_tokens,omitempty"`
	ResponseFormat json.RawMessage    `json:"response_format,omitempty"`
}

type completionsResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Code    any    `json:"code"`
	} `json:"error"`
}

func (o *OpenAI) Generate(ctx context.Context, prompt, systemMessage string, maxTokens int) (string, error) {
	if systemMessage == "" {
		systemMessage = defaultSystemMessage
	}
	if maxTokens <= 0 {
		maxTokens = o.maxTokens
	}

	messages := []core.ChatMessage{
		{Role: core.RoleSystem, Content: systemMessage},
		{Role: core.RoleUser, Content: prompt},
	}

	log.FromCtx(ctx).Debug().
		Int("prompt_tokens", o.CountTokens(prompt)).
		Msg("llm generate")

	return o.complete(ctx, completionsRequest{
		Model:       o.model,
		Messages:    messages,
		Temperature: o.temperature,
		MaxTokens:   maxTokens,
	})
}

func (o *OpenAI) Chat(ctx context.Context, messages []core.ChatMessage) (string, error) {
	return o.complete(ctx, completionsRequest{
		Model:       o.model,
		Messages:    messages,
		Temperature: o.temperature,
		MaxTokens:   o.maxTokens,
	})
}

func (o *OpenAI) GenerateStructured(ctx context.Context, prompt string, schema json.RawMessage) (map[string]any, error) {
	messages := []core.ChatMessage{
		{Role: core.RoleSystem, Content: "You are a helpful assistant that outputs structured data."},
		{Role: core.RoleUser, Content: prompt},
	}

	content, err := o.complete(ctx, completionsRequest{
		Model:          o.model,
		Messages:       messages,
		Temperature:    o.temperature,
		ResponseFormat: schema,
	})
	if err != nil {
		return nil, err
	}

	var out map[string]any
	if err := json.Unmarshal([]byte(content), &out); err != nil {
		return nil, fmt.Errorf("decode structured response: %w", err)
	}
	return out, nil
}

func (o *OpenAI) complete(ctx context.Context, reqBody completionsRequest) (string, error) {
	headers := map[string]string{
		"Authorization": "Bearer " + o.apiKey,
	}

	var content string
	var permErr error
	err := o.retrier.Do(ctx, func() error {
		resp, err := o.doRequest(ctx, http.MethodPost, "/v1/chat/completions", reqBody, headers)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("read response body: %w", err)
		}

		if resp.StatusCode != http.StatusOK {
			apiErr := fmt.Errorf("http %d: %s", resp.StatusCode, string(data))
			if resp.StatusCode == http.StatusTooManyRequests || IsQuotaErr(apiErr) {
				// Quota exhaustion is terminal, retrying cannot succeed.
				permErr = apiErr
				return nil
			}
			return apiErr
		}

		var apiResp completionsResponse
		if err := json.Unmarshal(data, &apiResp); err != nil {
			return fmt.Errorf("decode completions response: %w", err)
		}
		if apiResp.Error != nil {
			permErr = fmt.Errorf("api error: %s", apiResp.Error.Message)
			return nil
		}
		if len(apiResp.Choices) == 0 {
			return errors.New("no choices in response")
		}

		content = apiResp.Choices[0].Message.Content
		return nil
	})
	if err != nil {
		return "", err
	}
	if permErr != nil {
		return "", permErr
	}
	return content, nil
}

// IsQuotaErr reports whether an LLM failure looks like quota or rate-limit
// exhaustion. Detection is textual: providers are not consistent about
// structured codes for this case.
func IsQuotaErr(err error) bool {
	if err == nil {
		return false
	}
	text := strings.ToLower(err.Error())
	return strings.Contains(text, "insufficient_quota") ||
		strings.Contains(text, "429") ||
		strings.Contains(text, "quota")
}
