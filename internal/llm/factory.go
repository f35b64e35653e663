package llm

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/matemagica/matemagica/internal/store"
)

// NewProvider builds the configured backend wrapped as
// caller → retry → logging → backend. events may be nil.
func NewProvider(ctx context.Context, cfg Config, events store.EventRecorder, logger *slog.Logger) (Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var (
		base Provider
		err  error
	)
	switch cfg.Provider {
	case ProviderGemini:
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case ProviderOpenAI:
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case ProviderOpenRouter:
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	case ProviderAnthropic:
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case ProviderMock:
		return NewMockProvider(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	return WithRetry(WithLogging(base, cfg.Provider, events, logger), cfg.Retry), nil
}
