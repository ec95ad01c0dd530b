package vectordb

import (
	"context"
	"fmt"

	"github.com/shahsyedai/rag-agent/config"
	"github.com/shahsyedai/rag-agent/schema"
)

// VectorStoreProvider is the read-only contract against the hosted vector
// index. The query pipeline never writes; ingestion is a separate job.
type VectorStoreProvider interface {
	// SearchDocs runs one similarity query and returns matches in descending
	// score order with metadata included.
	SearchDocs(ctx context.Context, vector []float32, opts *schema.SearchOptions) ([]schema.SearchResult, error)
	Close() error
}

// NewVectorDBProvider creates a vector store provider from configuration.
// The handle is long-lived; the caller owns its lifecycle.
func NewVectorDBProvider(cfg *config.VectorDBConfig, dim int, httpCfg *config.HTTPClientConfig) (VectorStoreProvider, error) {
	switch cfg.Provider {
	case "milvus":
		return newMilvusProvider(cfg, dim)
	case "qdrant":
		return newQdrantProvider(cfg, httpCfg), nil
	case "memory":
		return NewMemoryProvider(dim), nil
	default:
		return nil, fmt.Errorf("unsupported vectordb provider: %s", cfg.Provider)
	}
}
