package llm

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"
)

// NewProvider creates a Provider from configuration, wrapped with logging and
// retry middleware (caller → retry → logging → base).
func NewProvider(ctx context.Context, cfg Config, log *zap.Logger) (Provider, error) {
	var base Provider
	var err error

	switch cfg.Provider {
	case "anthropic":
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case "openai", "openrouter":
		oai := cfg.OpenAI
		if cfg.Provider == "openrouter" && oai.BaseURL == "" {
			oai.BaseURL = openRouterBaseURL
		}
		base, err = NewOpenAIProvider(oai)
	case "gemini":
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case "mock":
		return NewMockProvider(), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	return WithRetry(WithLogging(base, log), cfg.Retry), nil
}

// NewProviderFromEnv builds a provider from STUDYAPP_* env vars, falling back
// to bare API key discovery when no provider is selected explicitly.
func NewProviderFromEnv(ctx context.Context, log *zap.Logger) (Provider, error) {
	if os.Getenv("STUDYAPP_LLM_PROVIDER") == "" {
		if cfg, ok := DiscoverConfig(); ok {
			return NewProvider(ctx, cfg, log)
		}
	}
	cfg := ConfigFromEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return NewProvider(ctx, cfg, log)
}
