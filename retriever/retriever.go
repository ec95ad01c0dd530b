package retriever

import (
	"context"

	"github.com/shahsyedai/rag-agent/schema"
)

// Retriever turns retrieval text into scored matches from the index.
type Retriever interface {
	Type() string
	Search(ctx context.Context, retrievalText, topicFolder string, topK int) ([]schema.SearchResult, error)
}

// DefaultTopK is the nearest-neighbour count used when the caller does not
// override it. Three chunks keep the context tight and the answer call cheap.
const DefaultTopK = 3
