package rag

import (
	"context"
	"fmt"

	"github.com/shahsyedai/rag-agent/assembler"
	"github.com/shahsyedai/rag-agent/config"
	"github.com/shahsyedai/rag-agent/embedding"
	"github.com/shahsyedai/rag-agent/language"
	"github.com/shahsyedai/rag-agent/llm"
	"github.com/shahsyedai/rag-agent/orchestrator"
	"github.com/shahsyedai/rag-agent/retriever"
	"github.com/shahsyedai/rag-agent/schema"
	"github.com/shahsyedai/rag-agent/topics"
	"github.com/shahsyedai/rag-agent/translate"
	"github.com/shahsyedai/rag-agent/vectordb"
)

// RAGClient owns the long-lived service handles (embedding, generation,
// vector index) and the wired question pipeline. Construct once at startup
// and share across requests; Close releases the index connection.
type RAGClient struct {
	config            *config.Config
	vectordbProvider  vectordb.VectorStoreProvider
	embeddingProvider embedding.Provider
	llmProvider       llm.Provider
	topicsProvider    *topics.Provider
	orch              *orchestrator.Orchestrator
}

// NewRAGClient creates a new RAG client instance.
func NewRAGClient(cfg *config.Config) (*RAGClient, error) {
	ragclient := &RAGClient{
		config: cfg,
	}

	embeddingProvider, err := embedding.NewEmbeddingProvider(cfg.Embedding)
	if err != nil {
		return nil, fmt.Errorf("create embedding provider failed, err: %w", err)
	}
	ragclient.embeddingProvider = embeddingProvider

	llmProvider, err := llm.NewLLMProvider(cfg.LLM)
	if err != nil {
		return nil, fmt.Errorf("create llm provider failed, err: %w", err)
	}
	ragclient.llmProvider = llmProvider

	dim := cfg.Embedding.Dimensions
	provider, err := vectordb.NewVectorDBProvider(&cfg.VectorDB, dim, cfg.HTTP)
	if err != nil {
		return nil, fmt.Errorf("create vector store provider failed, err: %w", err)
	}
	ragclient.vectordbProvider = provider

	ragclient.topicsProvider = topics.NewProvider(provider, dim, &cfg.Topics)

	vectorRet := &retriever.VectorRetriever{
		Embed: embeddingProvider,
		Store: provider,
		TopK:  cfg.Pipeline.TopK,
	}

	ragclient.orch = orchestrator.New(
		language.NewDetector(cfg.Pipeline.ArabicRatio),
		translate.NewTranslator(llmProvider),
		vectorRet,
		assembler.New(cfg.Pipeline.MinContextChars),
		llmProvider,
		cfg.Pipeline.TopK,
	)
	return ragclient, nil
}

// Ask runs one question through the pipeline and returns its answer with
// diagnostic metadata. It never returns an error; failures are reported in
// the response metadata.
func (r *RAGClient) Ask(ctx context.Context, req schema.Request) schema.Response {
	return r.orch.Process(ctx, req)
}

// Topics returns the current topic taxonomy, "all" entry first.
func (r *RAGClient) Topics(ctx context.Context) []schema.TopicInfo {
	return r.topicsProvider.List(ctx)
}

// RefreshTopics drops the cached taxonomy so the next Topics call
// re-discovers it from the index.
func (r *RAGClient) RefreshTopics() {
	r.topicsProvider.Refresh()
}

// Close releases the vector index connection.
func (r *RAGClient) Close() error {
	if r.vectordbProvider == nil {
		return nil
	}
	if err := r.vectordbProvider.Close(); err != nil {
		return fmt.Errorf("close vector store failed, err: %w", err)
	}
	return nil
}
