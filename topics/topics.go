// Package topics maintains the topic taxonomy exposed for filtered search.
// The taxonomy is discovered from the vector index itself by sampling with
// probe vectors and collecting the distinct topic metadata of the matches,
// so the list tracks whatever content has actually been ingested. Discovery
// is expensive, so results are cached and a static default table covers
// cold or degraded indexes.
package topics

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shahsyedai/rag-agent/cache"
	"github.com/shahsyedai/rag-agent/common/logger"
	"github.com/shahsyedai/rag-agent/config"
	"github.com/shahsyedai/rag-agent/schema"
	"github.com/shahsyedai/rag-agent/vectordb"
)

const (
	// DefaultSampleTopK is how many matches each probe query requests.
	DefaultSampleTopK = 200

	// minDiscovered is the taxonomy size below which the default table
	// is merged in.
	minDiscovered = 5

	cacheKey = "taxonomy"
)

// probeValues seed the discovery vectors. Each value fills a full-dimension
// vector; the spread of magnitudes and signs reaches different regions of
// the index.
var probeValues = []float32{0.1, -0.1, 0.01}

// allTopics is the unfiltered entry, always listed first.
var allTopics = schema.TopicInfo{
	FolderName:  schema.TopicAll,
	DisplayName: "All Topics",
	Description: "Search across all Islamic knowledge categories",
}

// Provider serves the topic taxonomy.
type Provider struct {
	store      vectordb.VectorStoreProvider
	dimensions int
	sampleTopK int
	ttl        time.Duration
	cache      cache.Cache
}

// NewProvider builds a Provider sampling the given store. The store's
// vector dimensionality must be passed so probe vectors match the index.
func NewProvider(store vectordb.VectorStoreProvider, dimensions int, cfg *config.TopicsConfig) *Provider {
	sampleTopK := DefaultSampleTopK
	ttl := 5 * time.Minute
	if cfg != nil {
		if cfg.SampleTopK > 0 {
			sampleTopK = cfg.SampleTopK
		}
		if cfg.CacheTTLSeconds > 0 {
			ttl = time.Duration(cfg.CacheTTLSeconds) * time.Second
		}
	}
	return &Provider{
		store:      store,
		dimensions: dimensions,
		sampleTopK: sampleTopK,
		ttl:        ttl,
		cache:      cache.NewLRU(4, ttl),
	}
}

// List returns the current taxonomy, starting with the "all" entry. The
// result is served from cache when fresh; on discovery failure the static
// default table is returned instead of an error so callers always have a
// usable topic list.
func (p *Provider) List(ctx context.Context) []schema.TopicInfo {
	if v, ok := p.cache.Get(cacheKey); ok {
		return v.([]schema.TopicInfo)
	}

	topics, err := p.discover(ctx)
	if err != nil {
		logger.Warnf("topics: discovery failed, serving defaults: %v", err)
		return defaultTaxonomy()
	}
	p.cache.Set(cacheKey, topics, p.ttl)
	return topics
}

// Refresh drops the cached taxonomy so the next List re-discovers.
func (p *Provider) Refresh() {
	p.cache.Purge()
}

// discover samples the index with probe vectors and collects unique
// topic_folder/topic_name pairs from match metadata. Individual probe
// failures are tolerated; discovery fails only when every probe fails.
func (p *Provider) discover(ctx context.Context) ([]schema.TopicInfo, error) {
	found := make(map[string]string)
	probesFailed := 0

	for i, val := range probeValues {
		probe := make([]float32, p.dimensions)
		for j := range probe {
			probe[j] = val
		}
		results, err := p.store.SearchDocs(ctx, probe, &schema.SearchOptions{TopK: p.sampleTopK})
		if err != nil {
			logger.Warnf("topics: probe %d failed: %v", i+1, err)
			probesFailed++
			continue
		}
		for _, res := range results {
			folder := res.Document.Metadata[schema.MetaTopicFolder]
			name := res.Document.Metadata[schema.MetaTopicName]
			if folder != "" && name != "" {
				found[folder] = name
			}
		}
	}
	if probesFailed == len(probeValues) {
		return nil, fmt.Errorf("all %d discovery probes failed", len(probeValues))
	}

	folders := make([]string, 0, len(found))
	for folder := range found {
		folders = append(folders, folder)
	}
	sort.Strings(folders)

	topics := make([]schema.TopicInfo, 0, len(found)+1)
	topics = append(topics, allTopics)
	for _, folder := range folders {
		topics = append(topics, schema.TopicInfo{
			FolderName:  folder,
			DisplayName: found[folder],
			Description: fmt.Sprintf("Content from %s", found[folder]),
		})
	}

	if len(topics) < minDiscovered {
		topics = mergeDefaults(topics)
	}
	return topics, nil
}

// mergeDefaults appends default entries whose folders were not discovered.
func mergeDefaults(topics []schema.TopicInfo) []schema.TopicInfo {
	seen := make(map[string]bool, len(topics))
	for _, t := range topics {
		seen[t.FolderName] = true
	}
	for _, t := range defaultTaxonomy() {
		if !seen[t.FolderName] {
			topics = append(topics, t)
		}
	}
	return topics
}

// defaultTaxonomy is the static topic table used when the index cannot be
// sampled or holds too little content to enumerate.
func defaultTaxonomy() []schema.TopicInfo {
	return []schema.TopicInfo{
		allTopics,
		{FolderName: "03_Hadith_Mawdat_ul_Qurba", DisplayName: "Hadith Mawdat ul Qurba", Description: "Prophetic traditions and sayings"},
		{FolderName: "04_Kitab_ul_Etiqadia", DisplayName: "Kitab ul Etiqadia", Description: "Islamic beliefs and theology"},
		{FolderName: "05_Awrad_Prayers", DisplayName: "Awrad Prayers", Description: "Daily spiritual recitations"},
		{FolderName: "06_Dua_Collection", DisplayName: "Dua Collection", Description: "Collection of Islamic supplications"},
		{FolderName: "07_Namaz_Prayers", DisplayName: "Namaz Prayers", Description: "Islamic prayer guidelines"},
		{FolderName: "08_Taharat_Cleanliness", DisplayName: "Taharat Cleanliness", Description: "Purification and cleanliness rules"},
		{FolderName: "09_Zakat_Khums", DisplayName: "Zakat Khums", Description: "Islamic charity and financial obligations"},
		{FolderName: "10_Ramzan_Fasting", DisplayName: "Ramzan Fasting", Description: "Ramadan and fasting guidelines"},
		{FolderName: "11_Nikah_Marriage", DisplayName: "Nikah Marriage", Description: "Islamic marriage laws and procedures"},
		{FolderName: "12_Mayat_Death_Rites", DisplayName: "Mayat Death Rites", Description: "Islamic funeral and burial procedures"},
		{FolderName: "13_Ayam_Special_Days", DisplayName: "Ayam Special Days", Description: "Important Islamic dates and occasions"},
		{FolderName: "14_Kalmay", DisplayName: "Kalmay", Description: "Islamic declarations of faith"},
		{FolderName: "15_Buzurgan_e_Deen", DisplayName: "Buzurgan e Deen", Description: "Religious personalities and scholars"},
		{FolderName: "16_Daily_Wazaif", DisplayName: "Daily Wazaif", Description: "Daily spiritual practices and recitations"},
		{FolderName: "17_Question_Answer", DisplayName: "Question Answer", Description: "Religious questions and answers"},
		{FolderName: "18_Additional_Content", DisplayName: "Additional Content", Description: "Additional Islamic knowledge and resources"},
	}
}
