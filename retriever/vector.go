package retriever

import (
	"context"
	"fmt"

	"github.com/shahsyedai/rag-agent/common/logger"
	"github.com/shahsyedai/rag-agent/embedding"
	"github.com/shahsyedai/rag-agent/metrics"
	"github.com/shahsyedai/rag-agent/schema"
	"github.com/shahsyedai/rag-agent/vectordb"
)

// VectorRetriever embeds the retrieval text once and issues exactly one
// topic-filtered similarity query. No re-ranking, no deduplication, no second
// query: the per-request call budget is one embed plus one search.
type VectorRetriever struct {
	Embed embedding.Provider
	Store vectordb.VectorStoreProvider
	TopK  int
}

func (r *VectorRetriever) Type() string { return "vector" }

// Search returns matches in index order (descending cosine score). An
// embedding failure is fatal to the request; an index failure degrades to an
// empty match set, which the caller treats like "nothing found".
func (r *VectorRetriever) Search(ctx context.Context, retrievalText, topicFolder string, topK int) ([]schema.SearchResult, error) {
	if retrievalText == "" {
		return nil, fmt.Errorf("retriever: retrieval text is empty")
	}
	if topK <= 0 {
		if r.TopK > 0 {
			topK = r.TopK
		} else {
			topK = DefaultTopK
		}
	}

	vector, err := r.Embed.GetEmbedding(ctx, retrievalText)
	if err != nil {
		return nil, &schema.EmbeddingError{Err: err}
	}

	opts := &schema.SearchOptions{TopK: topK, TopicFolder: topicFolder}
	results, err := r.Store.SearchDocs(ctx, vector, opts)
	if err != nil {
		logger.Warnf("retriever: vector search degraded to empty result: %v", err)
		metrics.IncError("retrieval")
		return []schema.SearchResult{}, nil
	}
	metrics.ObserveRetrieved(len(results))
	return results, nil
}
