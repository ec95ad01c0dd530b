package topics

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shahsyedai/rag-agent/config"
	"github.com/shahsyedai/rag-agent/schema"
	"github.com/shahsyedai/rag-agent/vectordb"
)

const testDims = 4

type countingStore struct {
	vectordb.VectorStoreProvider
	searches int
}

func (c *countingStore) SearchDocs(ctx context.Context, vector []float32, opts *schema.SearchOptions) ([]schema.SearchResult, error) {
	c.searches++
	return c.VectorStoreProvider.SearchDocs(ctx, vector, opts)
}

type brokenStore struct{}

func (brokenStore) SearchDocs(_ context.Context, _ []float32, _ *schema.SearchOptions) ([]schema.SearchResult, error) {
	return nil, errors.New("connection refused")
}

func (brokenStore) Close() error { return nil }

func seededStore(t *testing.T, folders map[string]string) *vectordb.MemoryProvider {
	t.Helper()
	store := vectordb.NewMemoryProvider(testDims)
	i := 0
	for folder, name := range folders {
		doc := schema.Document{
			ID:      fmt.Sprintf("doc-%d", i),
			Content: "chunk",
			Vector:  []float32{0.1, 0.1, 0.1, 0.1},
			Metadata: map[string]string{
				schema.MetaTopicFolder: folder,
				schema.MetaTopicName:   name,
			},
		}
		require.NoError(t, store.Upsert(doc))
		i++
	}
	return store
}

func manyFolders() map[string]string {
	return map[string]string{
		"07_Namaz_Prayers":       "Namaz Prayers",
		"08_Taharat_Cleanliness": "Taharat Cleanliness",
		"10_Ramzan_Fasting":      "Ramzan Fasting",
		"11_Nikah_Marriage":      "Nikah Marriage",
		"14_Kalmay":              "Kalmay",
	}
}

func TestListDiscoversFromIndex(t *testing.T) {
	p := NewProvider(seededStore(t, manyFolders()), testDims, nil)

	topics := p.List(context.Background())
	require.Len(t, topics, 6)
	assert.Equal(t, schema.TopicAll, topics[0].FolderName)
	assert.Equal(t, "All Topics", topics[0].DisplayName)

	// Discovered entries are folder-sorted after the "all" entry.
	assert.Equal(t, "07_Namaz_Prayers", topics[1].FolderName)
	assert.Equal(t, "Namaz Prayers", topics[1].DisplayName)
	assert.Equal(t, "Content from Namaz Prayers", topics[1].Description)
	assert.Equal(t, "14_Kalmay", topics[5].FolderName)
}

func TestListMergesDefaultsWhenSparse(t *testing.T) {
	p := NewProvider(seededStore(t, map[string]string{
		"07_Namaz_Prayers": "Namaz Prayers",
	}), testDims, nil)

	topics := p.List(context.Background())
	require.Greater(t, len(topics), minDiscovered)
	assert.Equal(t, schema.TopicAll, topics[0].FolderName)
	assert.Equal(t, "07_Namaz_Prayers", topics[1].FolderName)

	folders := make(map[string]int)
	for _, topic := range topics {
		folders[topic.FolderName]++
	}
	assert.Equal(t, 1, folders["07_Namaz_Prayers"], "discovered folder must not be duplicated by defaults")
	assert.Equal(t, 1, folders["08_Taharat_Cleanliness"], "missing defaults are merged in")
}

func TestListDegradesToDefaultsOnFailure(t *testing.T) {
	p := NewProvider(brokenStore{}, testDims, nil)

	topics := p.List(context.Background())
	require.NotEmpty(t, topics)
	assert.Equal(t, schema.TopicAll, topics[0].FolderName)
	assert.Len(t, topics, 17)
}

func TestListCachesTaxonomy(t *testing.T) {
	counting := &countingStore{VectorStoreProvider: seededStore(t, manyFolders())}
	p := NewProvider(counting, testDims, &config.TopicsConfig{CacheTTLSeconds: 300})

	first := p.List(context.Background())
	probes := counting.searches
	second := p.List(context.Background())

	assert.Equal(t, first, second)
	assert.Equal(t, probes, counting.searches, "cached List must not re-probe the index")

	p.Refresh()
	p.List(context.Background())
	assert.Greater(t, counting.searches, probes)
}

func TestListFailureIsNotCached(t *testing.T) {
	p := NewProvider(brokenStore{}, testDims, nil)
	p.List(context.Background())
	assert.Zero(t, p.cache.Len(), "default fallback must not be cached as the taxonomy")
}
