package embedding

import (
	"context"
	"fmt"

	"github.com/shahsyedai/rag-agent/config"
)

// Provider converts free text into a query vector. Implementations are
// process-wide and safe for concurrent use; client pooling is the service
// SDK's responsibility.
type Provider interface {
	GetEmbedding(ctx context.Context, text string) ([]float32, error)
	Dimensions() int
}

// NewEmbeddingProvider creates an embedding provider from configuration.
func NewEmbeddingProvider(cfg config.EmbeddingConfig) (Provider, error) {
	switch cfg.Provider {
	case "openai":
		return newOpenAIProvider(cfg)
	default:
		return nil, fmt.Errorf("unsupported embedding provider: %s", cfg.Provider)
	}
}
