package vectordb

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shahsyedai/rag-agent/schema"
)

func seedStore(t *testing.T) *MemoryProvider {
	t.Helper()
	store := NewMemoryProvider(3)
	require.NoError(t, store.Upsert(
		schema.Document{
			ID: "taharat-1", Content: "وضو کا طریقہ", Vector: []float32{1, 0, 0},
			Metadata: map[string]string{
				schema.MetaTopicFolder: "08_Taharat_Cleanliness",
				schema.MetaTopicName:   "Taharat Cleanliness",
			},
		},
		schema.Document{
			ID: "namaz-1", Content: "نماز کے اوقات", Vector: []float32{0, 1, 0},
			Metadata: map[string]string{
				schema.MetaTopicFolder: "07_Namaz_Prayers",
				schema.MetaTopicName:   "Namaz Prayers",
			},
		},
		schema.Document{
			ID: "taharat-2", Content: "غسل کے احکام", Vector: []float32{0.9, 0.1, 0},
			Metadata: map[string]string{
				schema.MetaTopicFolder: "08_Taharat_Cleanliness",
				schema.MetaTopicName:   "Taharat Cleanliness",
			},
		},
	))
	return store
}

func TestMemorySearchOrdersByScore(t *testing.T) {
	store := seedStore(t)

	res, err := store.SearchDocs(context.Background(), []float32{1, 0, 0}, &schema.SearchOptions{TopK: 3})
	require.NoError(t, err)
	require.Len(t, res, 3)
	assert.Equal(t, "taharat-1", res[0].Document.ID)
	assert.Equal(t, "taharat-2", res[1].Document.ID)
	assert.GreaterOrEqual(t, res[0].Score, res[1].Score)
	assert.GreaterOrEqual(t, res[1].Score, res[2].Score)
}

func TestMemorySearchTopicFilter(t *testing.T) {
	store := seedStore(t)

	res, err := store.SearchDocs(context.Background(), []float32{0, 1, 0}, &schema.SearchOptions{
		TopK:        3,
		TopicFolder: "08_Taharat_Cleanliness",
	})
	require.NoError(t, err)
	require.NotEmpty(t, res)
	for _, r := range res {
		assert.Equal(t, "08_Taharat_Cleanliness", r.Document.Metadata[schema.MetaTopicFolder])
	}
}

func TestMemorySearchAllSentinelUnrestricted(t *testing.T) {
	store := seedStore(t)

	res, err := store.SearchDocs(context.Background(), []float32{1, 1, 0}, &schema.SearchOptions{
		TopK:        10,
		TopicFolder: schema.TopicAll,
	})
	require.NoError(t, err)
	assert.Len(t, res, 3)
}

func TestMemorySearchIdempotent(t *testing.T) {
	store := seedStore(t)
	opts := &schema.SearchOptions{TopK: 2}

	first, err := store.SearchDocs(context.Background(), []float32{1, 0.2, 0}, opts)
	require.NoError(t, err)
	second, err := store.SearchDocs(context.Background(), []float32{1, 0.2, 0}, opts)
	require.NoError(t, err)

	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].Document.ID, second[i].Document.ID)
		assert.Equal(t, first[i].Score, second[i].Score)
	}
}

func TestMemoryUpsertDimensionCheck(t *testing.T) {
	store := NewMemoryProvider(3)
	err := store.Upsert(schema.Document{ID: "bad", Vector: []float32{1, 2}})
	require.Error(t, err)
}
