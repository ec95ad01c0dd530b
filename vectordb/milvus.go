package vectordb

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/milvus-io/milvus-sdk-go/v2/client"
	"github.com/milvus-io/milvus-sdk-go/v2/entity"

	"github.com/shahsyedai/rag-agent/common/logger"
	"github.com/shahsyedai/rag-agent/config"
	"github.com/shahsyedai/rag-agent/schema"
)

const (
	milvusVectorField  = "vector"
	milvusContentField = "content"
	milvusConnectWait  = 10 * time.Second
)

// metadataFields are the chunk metadata columns written by the ingestion job.
var metadataFields = []string{
	schema.MetaTopicFolder,
	schema.MetaTopicName,
	schema.MetaCategory,
	schema.MetaContentType,
	schema.MetaPriority,
	schema.MetaSource,
	schema.MetaSourceURL,
}

type milvusProvider struct {
	c          client.Client
	collection string
	dim        int
}

func newMilvusProvider(cfg *config.VectorDBConfig, dim int) (*milvusProvider, error) {
	ctx, cancel := context.WithTimeout(context.Background(), milvusConnectWait)
	defer cancel()

	address := cfg.Host
	if cfg.Port > 0 {
		address = fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	}
	c, err := client.NewClient(ctx, client.Config{
		Address:  address,
		Username: cfg.Username,
		Password: cfg.Password,
		DBName:   cfg.Database,
	})
	if err != nil {
		return nil, fmt.Errorf("connect milvus at %s failed: %w", address, err)
	}

	p := &milvusProvider{c: c, collection: cfg.Collection, dim: dim}
	if err := c.LoadCollection(ctx, cfg.Collection, false); err != nil {
		// Collection may already be loaded or loading is managed elsewhere.
		logger.Warnf("milvus: load collection %s: %v", cfg.Collection, err)
	}
	return p, nil
}

func (p *milvusProvider) SearchDocs(ctx context.Context, vector []float32, opts *schema.SearchOptions) ([]schema.SearchResult, error) {
	if opts == nil || opts.TopK <= 0 {
		return nil, fmt.Errorf("milvus search: top_k must be positive")
	}
	if p.dim > 0 && len(vector) != p.dim {
		return nil, fmt.Errorf("milvus search: vector has %d dimensions, collection expects %d", len(vector), p.dim)
	}

	expr := ""
	if opts.TopicFolderFiltered() {
		expr = fmt.Sprintf(`%s == "%s"`, schema.MetaTopicFolder, escapeExpr(opts.TopicFolder))
	}

	sp, err := entity.NewIndexHNSWSearchParam(64)
	if err != nil {
		return nil, fmt.Errorf("milvus search params: %w", err)
	}
	outputFields := append([]string{milvusContentField}, metadataFields...)

	results, err := p.c.Search(ctx, p.collection, nil, expr, outputFields,
		[]entity.Vector{entity.FloatVector(vector)}, milvusVectorField,
		entity.COSINE, opts.TopK, sp)
	if err != nil {
		return nil, fmt.Errorf("milvus search failed: %w", err)
	}

	var out []schema.SearchResult
	for _, rs := range results {
		if rs.Err != nil {
			return nil, fmt.Errorf("milvus search result: %w", rs.Err)
		}
		for i := 0; i < rs.ResultCount; i++ {
			doc := schema.Document{Metadata: make(map[string]string, len(metadataFields))}
			if rs.IDs != nil {
				if id, err := rs.IDs.GetAsString(i); err == nil {
					doc.ID = id
				}
			}
			if col := rs.Fields.GetColumn(milvusContentField); col != nil {
				if v, err := col.GetAsString(i); err == nil {
					doc.Content = v
				}
			}
			for _, field := range metadataFields {
				if col := rs.Fields.GetColumn(field); col != nil {
					if v, err := col.GetAsString(i); err == nil && v != "" {
						doc.Metadata[field] = v
					}
				}
			}
			out = append(out, schema.SearchResult{
				Document: doc,
				Score:    float64(rs.Scores[i]),
			})
		}
	}
	return out, nil
}

func (p *milvusProvider) Close() error {
	return p.c.Close()
}

// escapeExpr guards the boolean expression against quotes in user-supplied
// topic folders.
func escapeExpr(v string) string {
	v = strings.ReplaceAll(v, `\`, `\\`)
	return strings.ReplaceAll(v, `"`, `\"`)
}
