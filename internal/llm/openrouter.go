package llm

import "fmt"

const defaultOpenRouterBaseURL = "https://openrouter.ai/api/v1"

// OpenRouterProvider is an OpenAIProvider pointed at OpenRouter, which
// speaks the OpenAI chat completions protocol.
type OpenRouterProvider struct {
	*OpenAIProvider
}

func NewOpenRouterProvider(cfg OpenRouterConfig) (*OpenRouterProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openrouter API key is required")
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultOpenRouterBaseURL
	}
	model := cfg.Model
	if model == "" {
		model = DefaultConfig().OpenRouter.Model
	}

	// OpenRouter model IDs are vendor-prefixed and bypass the OpenAI
	// alias table.
	inner, err := NewOpenAIProvider(OpenAIConfig{APIKey: cfg.APIKey, BaseURL: baseURL})
	if err != nil {
		return nil, err
	}
	inner.model = model

	return &OpenRouterProvider{OpenAIProvider: inner}, nil
}
