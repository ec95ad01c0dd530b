package vectordb

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/shahsyedai/rag-agent/common/httpx"
	"github.com/shahsyedai/rag-agent/config"
	"github.com/shahsyedai/rag-agent/schema"
)

// qdrantProvider is a minimal REST client to Qdrant, kept for deployments
// where the index lives in Qdrant instead of Milvus. It assumes cosine
// distance configured at collection creation.
type qdrantProvider struct {
	baseURL    string
	apiKey     string
	collection string
	client     *httpx.Client
}

func newQdrantProvider(cfg *config.VectorDBConfig, httpCfg *config.HTTPClientConfig) *qdrantProvider {
	scheme := "http"
	port := cfg.Port
	if port == 0 {
		port = 6333
	}
	return &qdrantProvider{
		baseURL:    fmt.Sprintf("%s://%s:%d", scheme, cfg.Host, port),
		apiKey:     cfg.APIKey,
		collection: cfg.Collection,
		client:     httpx.NewFromConfig(httpCfg),
	}
}

type qdrantSearchReq struct {
	Vector      []float32     `json:"vector"`
	Limit       int           `json:"limit"`
	WithPayload bool          `json:"with_payload"`
	Filter      *qdrantFilter `json:"filter,omitempty"`
}

type qdrantFilter struct {
	Must []qdrantCondition `json:"must"`
}

type qdrantCondition struct {
	Key   string      `json:"key"`
	Match qdrantMatch `json:"match"`
}

type qdrantMatch struct {
	Value string `json:"value"`
}

type qdrantSearchResp struct {
	Result []struct {
		ID      json.RawMessage   `json:"id"`
		Score   float64           `json:"score"`
		Payload map[string]string `json:"payload"`
	} `json:"result"`
}

func (p *qdrantProvider) SearchDocs(ctx context.Context, vector []float32, opts *schema.SearchOptions) ([]schema.SearchResult, error) {
	if opts == nil || opts.TopK <= 0 {
		return nil, fmt.Errorf("qdrant search: top_k must be positive")
	}

	body := qdrantSearchReq{Vector: vector, Limit: opts.TopK, WithPayload: true}
	if opts.TopicFolderFiltered() {
		body.Filter = &qdrantFilter{Must: []qdrantCondition{{
			Key:   schema.MetaTopicFolder,
			Match: qdrantMatch{Value: opts.TopicFolder},
		}}}
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("qdrant search: encode request: %w", err)
	}

	url := fmt.Sprintf("%s/collections/%s/points/search", p.baseURL, p.collection)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if p.apiKey != "" {
		req.Header.Set("api-key", p.apiKey)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("qdrant search failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("qdrant search: unexpected status %s", resp.Status)
	}

	var decoded qdrantSearchResp
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("qdrant search: decode response: %w", err)
	}

	out := make([]schema.SearchResult, 0, len(decoded.Result))
	for _, r := range decoded.Result {
		doc := schema.Document{
			ID:       string(bytes.Trim(r.ID, `"`)),
			Metadata: make(map[string]string, len(r.Payload)),
		}
		for k, v := range r.Payload {
			if k == milvusContentField {
				doc.Content = v
				continue
			}
			doc.Metadata[k] = v
		}
		out = append(out, schema.SearchResult{Document: doc, Score: r.Score})
	}
	return out, nil
}

func (p *qdrantProvider) Close() error { return nil }
