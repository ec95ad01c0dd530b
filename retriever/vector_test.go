package retriever

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shahsyedai/rag-agent/schema"
	"github.com/shahsyedai/rag-agent/vectordb"
)

type fakeEmbedder struct {
	vector []float32
	err    error
	calls  int
}

func (f *fakeEmbedder) GetEmbedding(_ context.Context, _ string) ([]float32, error) {
	f.calls++
	return f.vector, f.err
}

func (f *fakeEmbedder) Dimensions() int { return len(f.vector) }

type failingStore struct{}

func (failingStore) SearchDocs(_ context.Context, _ []float32, _ *schema.SearchOptions) ([]schema.SearchResult, error) {
	return nil, errors.New("index unavailable")
}

func (failingStore) Close() error { return nil }

func newStore(t *testing.T) *vectordb.MemoryProvider {
	t.Helper()
	store := vectordb.NewMemoryProvider(2)
	require.NoError(t, store.Upsert(
		schema.Document{ID: "a", Content: "الف", Vector: []float32{1, 0},
			Metadata: map[string]string{schema.MetaTopicFolder: "08_Taharat_Cleanliness"}},
		schema.Document{ID: "b", Content: "ب", Vector: []float32{0, 1},
			Metadata: map[string]string{schema.MetaTopicFolder: "07_Namaz_Prayers"}},
	))
	return store
}

func TestVectorRetrieverSearch(t *testing.T) {
	emb := &fakeEmbedder{vector: []float32{1, 0}}
	r := &VectorRetriever{Embed: emb, Store: newStore(t)}

	res, err := r.Search(context.Background(), "وضو", "", 3)
	require.NoError(t, err)
	require.Len(t, res, 2)
	assert.Equal(t, "a", res[0].Document.ID)
	assert.Equal(t, 1, emb.calls, "exactly one embedding call per request")
}

func TestVectorRetrieverTopicFilter(t *testing.T) {
	emb := &fakeEmbedder{vector: []float32{0, 1}}
	r := &VectorRetriever{Embed: emb, Store: newStore(t)}

	res, err := r.Search(context.Background(), "نماز", "08_Taharat_Cleanliness", 3)
	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.Equal(t, "a", res[0].Document.ID)
}

func TestVectorRetrieverEmbeddingFailureIsFatal(t *testing.T) {
	emb := &fakeEmbedder{err: errors.New("auth failure")}
	r := &VectorRetriever{Embed: emb, Store: newStore(t)}

	_, err := r.Search(context.Background(), "q", "", 3)
	require.Error(t, err)
	assert.True(t, schema.IsEmbeddingError(err))
}

func TestVectorRetrieverIndexFailureDegrades(t *testing.T) {
	emb := &fakeEmbedder{vector: []float32{1, 0}}
	r := &VectorRetriever{Embed: emb, Store: failingStore{}}

	res, err := r.Search(context.Background(), "q", "", 3)
	require.NoError(t, err, "index failure must not abort the request")
	assert.Empty(t, res)
}

func TestVectorRetrieverEmptyTextRejected(t *testing.T) {
	r := &VectorRetriever{Embed: &fakeEmbedder{vector: []float32{1, 0}}, Store: newStore(t)}

	_, err := r.Search(context.Background(), "", "", 3)
	require.Error(t, err)
}

func TestVectorRetrieverDefaultTopK(t *testing.T) {
	emb := &fakeEmbedder{vector: []float32{1, 0}}
	r := &VectorRetriever{Embed: emb, Store: newStore(t)}

	res, err := r.Search(context.Background(), "q", "", 0)
	require.NoError(t, err)
	assert.LessOrEqual(t, len(res), DefaultTopK)
}
