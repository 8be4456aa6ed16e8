package ai

import (
	"context"
	"errors"
)

// Provider defines the interface for LLM providers.
type Provider interface {
	// Test sends a test message and returns the response.
	Test(ctx context.Context) (string, error)
	// Name returns the provider name.
	Name() string
	// Complete generates a response without streaming.
	Complete(ctx context.Context, systemPrompt, content string) (string, error)
	// CompleteStream generates a response using streaming.
	// Returns two channels: one for text chunks, one for errors.
	// The text channel is closed when streaming is complete.
	CompleteStream(ctx context.Context, systemPrompt, content string) (<-chan string, <-chan error)
}

// Config holds the configuration for an LLM provider. The API key is the
// per-user credential; the rest comes from application settings.
type Config struct {
	Provider string // openai, anthropic, compatible
	APIKey   string
	BaseURL  string // optional for openai, required for compatible
	Model    string
}

// ProviderType constants
const (
	ProviderOpenAI     = "openai"
	ProviderAnthropic  = "anthropic"
	ProviderCompatible = "compatible"
)

var (
	ErrInvalidProvider = errors.New("invalid provider")
	ErrMissingAPIKey   = errors.New("API key is required")
	ErrMissingBaseURL  = errors.New("base URL is required for compatible provider")
	ErrMissingModel    = errors.New("model is required")
)

// NewProvider creates a new LLM provider based on the config.
func NewProvider(cfg Config) (Provider, error) {
	if cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}
	if cfg.Model == "" {
		return nil, ErrMissingModel
	}

	switch cfg.Provider {
	case ProviderOpenAI:
		return NewOpenAIProvider(cfg.APIKey, cfg.BaseURL, cfg.Model), nil
	case ProviderAnthropic:
		return NewAnthropicProvider(cfg.APIKey, cfg.BaseURL, cfg.Model), nil
	case ProviderCompatible:
		if cfg.BaseURL == "" {
			return nil, ErrMissingBaseURL
		}
		return NewCompatibleProvider(cfg.APIKey, cfg.BaseURL, cfg.Model), nil
	default:
		return nil, ErrInvalidProvider
	}
}
