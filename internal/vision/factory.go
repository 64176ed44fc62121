package vision

import (
	"context"
	"fmt"

	"github.com/platinummonkey/scanproof/internal/logger"
)

// NewClient creates a vision client based on the provider configuration
func NewClient(ctx context.Context, cfg *ClientConfig, log *logger.Logger) (Client, error) {
	if log == nil {
		log = logger.Get()
	}

	switch cfg.Provider {
	case ProviderOllama:
		opts := []OllamaOption{
			WithLogger(log),
		}
		if cfg.Endpoint != "" {
			opts = append(opts, WithEndpoint(cfg.Endpoint))
		}
		if cfg.MaxRetries > 0 {
			opts = append(opts, WithMaxRetries(cfg.MaxRetries))
		}
		if cfg.Prompt != "" {
			opts = append(opts, WithPrompt(cfg.Prompt))
		}
		return NewOllamaClient(opts...), nil

	case ProviderOpenAI:
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("OpenAI API key is required (set OPENAI_API_KEY environment variable)")
		}
		return NewOpenAIClient(cfg.APIKey, cfg.Temperature, cfg.MaxRetries, cfg.Prompt, log), nil

	case ProviderAnthropic:
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("anthropic API key is required (set ANTHROPIC_API_KEY environment variable)")
		}
		return NewAnthropicClient(cfg.APIKey, cfg.Temperature, cfg.MaxRetries, cfg.Prompt, log), nil

	case ProviderGoogle:
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("google API key is required (set GOOGLE_API_KEY or GOOGLE_APPLICATION_CREDENTIALS environment variable)")
		}
		client, err := NewGoogleClient(ctx, cfg.APIKey, cfg.Temperature, cfg.MaxRetries, cfg.Prompt, log)
		if err != nil {
			return nil, fmt.Errorf("failed to create Google vision client: %w", err)
		}
		return client, nil

	default:
		return nil, fmt.Errorf("unsupported provider: %s (supported: ollama, openai, anthropic, google)", cfg.Provider)
	}
}

// ValidateConfig validates that the provider configuration is complete and correct
func ValidateConfig(cfg *ClientConfig) error {
	if cfg == nil {
		return fmt.Errorf("vision client config is nil")
	}

	validProviders := map[Provider]bool{
		ProviderOllama:    true,
		ProviderOpenAI:    true,
		ProviderAnthropic: true,
		ProviderGoogle:    true,
	}

	if !validProviders[cfg.Provider] {
		return fmt.Errorf("invalid provider: %s", cfg.Provider)
	}

	if cfg.Model == "" {
		return fmt.Errorf("model is required")
	}

	switch cfg.Provider {
	case ProviderOllama:
		if cfg.Endpoint == "" {
			return fmt.Errorf("endpoint is required for Ollama provider")
		}

	case ProviderOpenAI, ProviderAnthropic, ProviderGoogle:
		if cfg.APIKey == "" {
			return fmt.Errorf("API key is required for %s provider", cfg.Provider)
		}
	}

	if cfg.Temperature < 0.0 || cfg.Temperature > 2.0 {
		return fmt.Errorf("temperature must be between 0.0 and 2.0, got %f", cfg.Temperature)
	}

	if cfg.MaxRetries < 0 {
		return fmt.Errorf("max retries must be non-negative, got %d", cfg.MaxRetries)
	}

	return nil
}

// DefaultModelForProvider returns a recommended default model for the given provider
func DefaultModelForProvider(provider Provider) string {
	switch provider {
	case ProviderOllama:
		return "llava"
	case ProviderOpenAI:
		return "gpt-4o"
	case ProviderAnthropic:
		return "claude-3-5-sonnet-20241022"
	case ProviderGoogle:
		return "gemini-1.5-pro"
	default:
		return ""
	}
}
