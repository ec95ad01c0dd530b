package llm

import (
	"context"
	"fmt"

	"github.com/shahsyedai/rag-agent/config"
)

// Provider is the text-generation service: one fully rendered prompt in, one
// completion out. Streaming is a UI concern and stays out of the core.
type Provider interface {
	GenerateCompletion(ctx context.Context, prompt string) (string, error)
}

// NewLLMProvider creates an LLM provider from configuration.
func NewLLMProvider(cfg config.LLMConfig) (Provider, error) {
	switch cfg.Provider {
	case "openai":
		return newOpenAIProvider(cfg)
	default:
		return nil, fmt.Errorf("unsupported llm provider: %s", cfg.Provider)
	}
}
