package schema

import "time"

// Script classifies the writing system of a user query.
type Script string

const (
	// ScriptEnglish covers Latin-script input, including Roman Urdu that the
	// statistical detector cannot separate from English.
	ScriptEnglish Script = "english"
	// ScriptArabic covers Arabic-script input (Arabic, Urdu, Persian).
	ScriptArabic Script = "arabic-script"
	// ScriptRomanized is reserved for romanized non-English input detected by
	// downstream heuristics; the translation decision treats it like English.
	ScriptRomanized Script = "romanized-other"
)

// Query captures one user question after language classification. It is
// immutable once detection has run; nothing here is persisted.
type Query struct {
	RawText       string
	Script        Script
	RetrievalText string
}

// Translation is the outcome of the retrieval-language translation step.
type Translation struct {
	NeedsTranslation bool
	RetrievalText    string
	RawOutput        string
	// Fallback is set when the labeled output line could not be parsed and the
	// whole model output was used instead. It signals prompt drift.
	Fallback bool
}

// Document is one indexed chunk as stored in the vector index. The core only
// ever reads these; the ingestion job owns writes.
type Document struct {
	ID       string            `json:"id"`
	Content  string            `json:"content"`
	Vector   []float32         `json:"vector,omitempty"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// Chunk metadata keys written by the ingestion job.
const (
	MetaTopicFolder = "topic_folder"
	MetaTopicName   = "topic_name"
	MetaCategory    = "category"
	MetaContentType = "content_type"
	MetaPriority    = "priority"
	MetaSource      = "source"
	MetaSourceURL   = "source_url"
)

// SearchResult pairs a retrieved document with its similarity score. Results
// are consumed in index order, which is descending score for cosine search.
type SearchResult struct {
	Document Document `json:"document"`
	Score    float64  `json:"score"`
}

// SearchOptions controls a single similarity query.
type SearchOptions struct {
	TopK int
	// TopicFolder restricts the search to one partition; empty or "all" means
	// unrestricted.
	TopicFolder string
}

// TopicFolderFiltered reports whether the options carry a real topic filter.
func (o *SearchOptions) TopicFolderFiltered() bool {
	return o != nil && o.TopicFolder != "" && o.TopicFolder != TopicAll
}

// TopicAll is the sentinel folder meaning "search every topic".
const TopicAll = "all"

// AssembledContext is the attributed grounding material handed to the answer
// generator.
type AssembledContext struct {
	Text         string
	CharLength   int
	TokenLength  int
	SourcesCount int
	// PrimaryTopic is the topic of the best match, empty for an empty or
	// mixed-topic result set where the header pattern did not match.
	PrimaryTopic string
}

// Request is the caller-facing question shape.
type Request struct {
	Question    string `json:"question"`
	TopicFolder string `json:"topic_folder,omitempty"`
}

// Metadata carries per-request diagnostics back to the caller.
type Metadata struct {
	QueryID             string        `json:"query_id"`
	DetectedScript      Script        `json:"detected_script"`
	Translations        string        `json:"translations"`
	TranslationFallback bool          `json:"translation_fallback,omitempty"`
	ProcessingTime      time.Duration `json:"processing_time"`
	ContextLength       int           `json:"context_length"`
	ContextTokens       int           `json:"context_tokens"`
	TopicFilter         string        `json:"topic_filter,omitempty"`
	SourcesCount        int           `json:"sources_count"`
	Warning             string        `json:"warning,omitempty"`
	Error               bool          `json:"error,omitempty"`
	ErrorMessage        string        `json:"error_message,omitempty"`
}

// Response is the caller-facing answer shape.
type Response struct {
	Answer    string   `json:"answer"`
	TopicName string   `json:"topic_name,omitempty"`
	Metadata  Metadata `json:"metadata"`
}

// TopicInfo describes one entry of the topic taxonomy.
type TopicInfo struct {
	FolderName  string `json:"folder_name"`
	DisplayName string `json:"display_name"`
	Description string `json:"description"`
}
