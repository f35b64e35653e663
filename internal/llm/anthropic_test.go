package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

func newTestAnthropicProvider(t *testing.T, handler http.HandlerFunc) *AnthropicProvider {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := anthropic.NewClient(
		option.WithAPIKey("test-key"),
		option.WithBaseURL(server.URL),
		option.WithMaxRetries(0),
	)
	return &AnthropicProvider{client: &client, model: "claude-haiku-4-5-20251001"}
}

func anthropicReply(w http.ResponseWriter, text, stop string) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"id":          "msg_test",
		"type":        "message",
		"role":        "assistant",
		"content":     []map[string]any{{"type": "text", "text": text}},
		"model":       "claude-haiku-4-5-20251001",
		"stop_reason": stop,
		"usage":       map[string]any{"input_tokens": 50, "output_tokens": 30},
	})
}

func TestAnthropicProvider_HappyPath(t *testing.T) {
	p := newTestAnthropicProvider(t, func(w http.ResponseWriter, r *http.Request) {
		anthropicReply(w, `{"exercises":[{"first":52,"second":28,"operator":"-","result":24}]}`, "end_turn")
	})

	resp, err := p.Generate(context.Background(), Request{
		System:    "Eres un tutor de matemáticas.",
		Messages:  []Message{{Role: RoleUser, Content: "Genera 1 resta."}},
		Schema:    exerciseBatchSchema(),
		MaxTokens: 256,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Usage.InputTokens != 50 || resp.Usage.TotalTokens != 80 {
		t.Fatalf("unexpected usage: %+v", resp.Usage)
	}
	if resp.StopReason != "end" {
		t.Fatalf("expected stop reason 'end', got %q", resp.StopReason)
	}
}

func TestAnthropicProvider_Truncated(t *testing.T) {
	p := newTestAnthropicProvider(t, func(w http.ResponseWriter, r *http.Request) {
		anthropicReply(w, `{"exercises":[{"first":52`, "max_tokens")
	})

	_, err := p.Generate(context.Background(), Request{
		Messages:  []Message{{Role: RoleUser, Content: "test"}},
		MaxTokens: 8,
	})
	var maxTok *ErrMaxTokensExceeded
	if !errors.As(err, &maxTok) {
		t.Fatalf("expected ErrMaxTokensExceeded, got: %T (%v)", err, err)
	}
}

func TestAnthropicProvider_RateLimit(t *testing.T) {
	p := newTestAnthropicProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		json.NewEncoder(w).Encode(map[string]any{
			"type":  "error",
			"error": map[string]any{"type": "rate_limit_error", "message": "Rate limit exceeded"},
		})
	})

	_, err := p.Generate(context.Background(), Request{
		Messages:  []Message{{Role: RoleUser, Content: "test"}},
		MaxTokens: 100,
	})
	var rl *ErrRateLimit
	if !errors.As(err, &rl) {
		t.Fatalf("expected ErrRateLimit, got: %T (%v)", err, err)
	}
}

func TestAnthropicProvider_ServerError(t *testing.T) {
	p := newTestAnthropicProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]any{
			"type":  "error",
			"error": map[string]any{"type": "api_error", "message": "Internal server error"},
		})
	})

	_, err := p.Generate(context.Background(), Request{
		Messages:  []Message{{Role: RoleUser, Content: "test"}},
		MaxTokens: 100,
	})
	var unavail *ErrProviderUnavailable
	if !errors.As(err, &unavail) {
		t.Fatalf("expected ErrProviderUnavailable, got: %T (%v)", err, err)
	}
}

func TestAnthropicModelMapping(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"claude-haiku", "claude-haiku-4-5-20251001"},
		{"claude-sonnet", "claude-sonnet-4-5-20250929"},
		{"claude-opus-4-1", "claude-opus-4-1"},
	}
	for _, tt := range tests {
		if got := resolveModel(tt.input, anthropicModels); got != tt.expected {
			t.Errorf("resolveModel(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}
