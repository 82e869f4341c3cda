package llm

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gameguide-backend/internal/config"
)

const (
	ProviderAnthropic = "anthropic"
	ProviderGemini    = "gemini"
)

var (
	ErrMissingAPIKey = errors.New("llm api key not configured")
	ErrEmptyResponse = errors.New("llm returned no text")
)

// Request is one single-turn generation call.
type Request struct {
	System string
	Prompt string

	// APIKey overrides the key the generator was built with when non-empty.
	APIKey string
}

// Generator produces raw text (expected to be a JSON object) for a prompt.
// Implementations make exactly one upstream call per Generate.
type Generator interface {
	Generate(ctx context.Context, req Request) (string, error)
	Provider() string
}

// Options shared by every provider.
type Options struct {
	APIKey      string
	BaseURL     string
	Model       string
	MaxTokens   int
	Temperature float64
	Timeout     time.Duration
}

// NewGenerator builds the generator selected by cfg.Provider.
func NewGenerator(cfg config.LLMConfig) (Generator, error) {
	switch cfg.Provider {
	case ProviderAnthropic:
		return NewAnthropicGenerator(Options{
			APIKey:      cfg.AnthropicAPIKey,
			BaseURL:     cfg.AnthropicURL,
			Model:       cfg.AnthropicModel,
			MaxTokens:   cfg.MaxTokens,
			Temperature: cfg.Temperature,
			Timeout:     cfg.Timeout,
		}), nil
	case ProviderGemini:
		return NewGeminiGenerator(Options{
			APIKey:      cfg.GeminiAPIKey,
			Model:       cfg.GeminiModel,
			MaxTokens:   cfg.MaxTokens,
			Temperature: cfg.Temperature,
			Timeout:     cfg.Timeout,
		}), nil
	default:
		return nil, fmt.Errorf("unknown llm provider %q", cfg.Provider)
	}
}

func resolveKey(configured, override string) (string, error) {
	if override != "" {
		return override, nil
	}
	if configured == "" {
		return "", ErrMissingAPIKey
	}
	return configured, nil
}
