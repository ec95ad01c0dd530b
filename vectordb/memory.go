package vectordb

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/shahsyedai/rag-agent/schema"
)

// MemoryProvider is an in-process vector store with cosine similarity and
// topic-folder filtering. It backs tests and local smoke runs; the hosted
// deployments use milvus or qdrant.
type MemoryProvider struct {
	mu   sync.RWMutex
	dim  int
	docs []schema.Document
}

func NewMemoryProvider(dim int) *MemoryProvider {
	return &MemoryProvider{dim: dim}
}

// Upsert adds or replaces documents by ID. Only tests and local tooling
// write; the query pipeline never calls this.
func (p *MemoryProvider) Upsert(docs ...schema.Document) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, doc := range docs {
		if p.dim > 0 && len(doc.Vector) != p.dim {
			return fmt.Errorf("memory store: document %s has %d dimensions, want %d", doc.ID, len(doc.Vector), p.dim)
		}
		replaced := false
		for i := range p.docs {
			if p.docs[i].ID == doc.ID {
				p.docs[i] = doc
				replaced = true
				break
			}
		}
		if !replaced {
			p.docs = append(p.docs, doc)
		}
	}
	return nil
}

func (p *MemoryProvider) SearchDocs(_ context.Context, vector []float32, opts *schema.SearchOptions) ([]schema.SearchResult, error) {
	if opts == nil || opts.TopK <= 0 {
		return nil, fmt.Errorf("memory search: top_k must be positive")
	}
	p.mu.RLock()
	defer p.mu.RUnlock()

	results := make([]schema.SearchResult, 0, len(p.docs))
	for _, doc := range p.docs {
		if opts.TopicFolderFiltered() && doc.Metadata[schema.MetaTopicFolder] != opts.TopicFolder {
			continue
		}
		results = append(results, schema.SearchResult{
			Document: doc,
			Score:    cosine(vector, doc.Vector),
		})
	}
	sort.SliceStable(results, func(i, j int) bool { return results[i].Score > results[j].Score })
	if len(results) > opts.TopK {
		results = results[:opts.TopK]
	}
	return results, nil
}

func (p *MemoryProvider) Close() error { return nil }

func cosine(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
