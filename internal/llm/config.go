package llm

import (
	"fmt"
	"os"
	"time"
)

// Provider names accepted in Config.Provider.
const (
	ProviderGemini     = "gemini"
	ProviderOpenAI     = "openai"
	ProviderOpenRouter = "openrouter"
	ProviderAnthropic  = "anthropic"
	ProviderMock       = "mock"
)

// Config selects and configures the model backend.
type Config struct {
	Provider string `mapstructure:"provider"`

	Gemini     GeminiConfig     `mapstructure:"gemini"`
	OpenAI     OpenAIConfig     `mapstructure:"openai"`
	OpenRouter OpenRouterConfig `mapstructure:"openrouter"`
	Anthropic  AnthropicConfig  `mapstructure:"anthropic"`
	Retry      RetryConfig      `mapstructure:"retry"`

	// Timeout bounds one enhanced request, retries included.
	Timeout time.Duration `mapstructure:"timeout"`
}

type GeminiConfig struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"`
}

type OpenAIConfig struct {
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model"`
	BaseURL string `mapstructure:"base_url"`
}

type OpenRouterConfig struct {
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model"`
	BaseURL string `mapstructure:"base_url"`
}

type AnthropicConfig struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"`
}

// RetryConfig drives the exponential backoff of WithRetry.
type RetryConfig struct {
	MaxAttempts int           `mapstructure:"max_attempts"`
	InitialWait time.Duration `mapstructure:"initial_wait"`
	MaxWait     time.Duration `mapstructure:"max_wait"`
	Multiplier  float64       `mapstructure:"multiplier"`
}

// DefaultConfig targets Gemini Flash, the model the web app used.
// Retries are kept short: a child is waiting for the worksheet and the
// generator falls back to local exercises anyway.
func DefaultConfig() Config {
	return Config{
		Provider:   ProviderGemini,
		Gemini:     GeminiConfig{Model: "gemini-flash"},
		OpenAI:     OpenAIConfig{Model: "gpt-4o-mini"},
		OpenRouter: OpenRouterConfig{Model: "google/gemini-2.5-flash"},
		Anthropic:  AnthropicConfig{Model: "claude-haiku"},
		Retry: RetryConfig{
			MaxAttempts: 2,
			InitialWait: 500 * time.Millisecond,
			MaxWait:     4 * time.Second,
			Multiplier:  2.0,
		},
		Timeout: 20 * time.Second,
	}
}

// DiscoverConfig looks for the vendors' conventional API key variables
// (Gemini, then OpenAI, Anthropic and OpenRouter) and returns a default
// Config for the first one set.
func DiscoverConfig() (Config, bool) {
	cfg := DefaultConfig()

	switch {
	case os.Getenv("GEMINI_API_KEY") != "":
		cfg.Provider = ProviderGemini
		cfg.Gemini.APIKey = os.Getenv("GEMINI_API_KEY")
	case os.Getenv("OPENAI_API_KEY") != "":
		cfg.Provider = ProviderOpenAI
		cfg.OpenAI.APIKey = os.Getenv("OPENAI_API_KEY")
	case os.Getenv("ANTHROPIC_API_KEY") != "":
		cfg.Provider = ProviderAnthropic
		cfg.Anthropic.APIKey = os.Getenv("ANTHROPIC_API_KEY")
	case os.Getenv("OPENROUTER_API_KEY") != "":
		cfg.Provider = ProviderOpenRouter
		cfg.OpenRouter.APIKey = os.Getenv("OPENROUTER_API_KEY")
	default:
		return Config{}, false
	}
	return cfg, true
}

// HasCredentials reports whether the selected provider has an API key.
func (c Config) HasCredentials() bool {
	switch c.Provider {
	case ProviderGemini:
		return c.Gemini.APIKey != ""
	case ProviderOpenAI:
		return c.OpenAI.APIKey != ""
	case ProviderOpenRouter:
		return c.OpenRouter.APIKey != ""
	case ProviderAnthropic:
		return c.Anthropic.APIKey != ""
	case ProviderMock:
		return true
	}
	return false
}

// Validate checks the provider name and that its key is present.
func (c Config) Validate() error {
	switch c.Provider {
	case ProviderGemini, ProviderOpenAI, ProviderOpenRouter, ProviderAnthropic, ProviderMock:
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	if !c.HasCredentials() {
		return fmt.Errorf("MATEMAGICA_LLM_%s_API_KEY is required for the %s provider",
			envName(c.Provider), c.Provider)
	}
	return nil
}

func envName(provider string) string {
	switch provider {
	case ProviderOpenAI:
		return "OPENAI"
	case ProviderOpenRouter:
		return "OPENROUTER"
	case ProviderAnthropic:
		return "ANTHROPIC"
	default:
		return "GEMINI"
	}
}
