package llm

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sandevgo/sagebot/internal/config"
	"github.com/sandevgo/sagebot/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsQuotaErr(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "nil", err: nil, want: false},
		{name: "insufficient quota", err: errors.New("insufficient_quota: billing hard limit"), want: true},
		{name: "status 429", err: errors.New("http 429: too many requests"), want: true},
		{name: "quota word", err: errors.New("You exceeded your current QUOTA"), want: true},
		{name: "unrelated", err: errors.New("connection reset by peer"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsQuotaErr(tt.err))
		})
	}
}

func newTestClient(baseURL string) *OpenAI {
	return NewOpenAI(&config.OpenAIConfig{
		APIKey:      "test-key",
		BaseURL:     baseURL,
		Model:       "gpt-3.5-turbo",
		Temperature: 0.1,
		MaxTokens:   500,
	})
}

func TestGenerateReturnsContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/chat/completions", r.URL.Path)
		require.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		w.Write([]byte(`{"choices":[{"message":{"content":"Paris is the capital of France."}}]}`))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	got, err := client.Generate(context.Background(), "What is the capital of France?", "", 0)
	require.NoError(t, err)
	assert.Equal(t, "Paris is the capital of France.", got)
}

func TestGenerateQuotaErrorNotRetried(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":{"message":"insufficient_quota"}}`))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	_, err := client.Generate(context.Background(), "hello", "", 0)
	require.Error(t, err)
	assert.True(t, IsQuotaErr(err))
	assert.Equal(t, 1, calls)
}

func TestChatSendsHistory(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[{"message":{"content":"ok"}}]}`))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	got, err := client.Chat(context.Background(), []core.ChatMessage{
		{Role: core.RoleSystem, Content: "be brief"},
		{Role: core.RoleUser, Content: "hi"},
	})
	require.NoError(t, err)
	assert.Equal(t, "ok", got)
}
