package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the main configuration structure for the RAG agent.
type Config struct {
	Pipeline  PipelineConfig  `json:"pipeline" yaml:"pipeline"`
	LLM       LLMConfig       `json:"llm" yaml:"llm"`
	Embedding EmbeddingConfig `json:"embedding" yaml:"embedding"`
	VectorDB  VectorDBConfig  `json:"vectordb" yaml:"vectordb"`
	Topics    TopicsConfig    `json:"topics,omitempty" yaml:"topics,omitempty"`
	// HTTP holds defaults for outbound REST calls (qdrant provider).
	HTTP *HTTPClientConfig `json:"http,omitempty" yaml:"http,omitempty"`
}

// PipelineConfig contains the query pipeline knobs.
type PipelineConfig struct {
	// TopK is the number of nearest neighbours fetched per query.
	TopK int `json:"top_k,omitempty" yaml:"top_k,omitempty"`
	// MinContextChars is the assembled-context length below which the
	// pipeline short-circuits with the insufficient-context answer.
	MinContextChars int `json:"min_context_chars,omitempty" yaml:"min_context_chars,omitempty"`
	// ArabicRatio is the Arabic-script character fraction above which a query
	// is classified as arabic-script without consulting the detector.
	ArabicRatio float64 `json:"arabic_ratio,omitempty" yaml:"arabic_ratio,omitempty"`
}

// LLMConfig defines configuration for the text-generation service.
type LLMConfig struct {
	Provider    string  `json:"provider" yaml:"provider"` // Available options: openai
	APIKey      string  `json:"api_key,omitempty" yaml:"api_key"`
	BaseURL     string  `json:"base_url,omitempty" yaml:"base_url,omitempty"`
	Model       string  `json:"model" yaml:"model"`
	Temperature float64 `json:"temperature,omitempty" yaml:"temperature,omitempty"`
	MaxTokens   int     `json:"max_tokens,omitempty" yaml:"max_tokens,omitempty"`
}

// EmbeddingConfig defines configuration for the embedding service.
type EmbeddingConfig struct {
	Provider   string `json:"provider" yaml:"provider"` // Available options: openai
	APIKey     string `json:"api_key,omitempty" yaml:"api_key,omitempty"`
	BaseURL    string `json:"base_url,omitempty" yaml:"base_url,omitempty"`
	Model      string `json:"model,omitempty" yaml:"model,omitempty"`
	Dimensions int    `json:"dimensions,omitempty" yaml:"dimensions,omitempty"`
}

// VectorDBConfig defines configuration for the vector index.
type VectorDBConfig struct {
	Provider   string `json:"provider" yaml:"provider"` // Available options: milvus, qdrant, memory
	Host       string `json:"host,omitempty" yaml:"host,omitempty"`
	Port       int    `json:"port,omitempty" yaml:"port,omitempty"`
	Database   string `json:"database,omitempty" yaml:"database,omitempty"`
	Collection string `json:"collection,omitempty" yaml:"collection,omitempty"`
	Username   string `json:"username,omitempty" yaml:"username,omitempty"`
	Password   string `json:"password,omitempty" yaml:"password,omitempty"`
	APIKey     string `json:"api_key,omitempty" yaml:"api_key,omitempty"`
}

// TopicsConfig controls taxonomy discovery and caching.
type TopicsConfig struct {
	// CacheTTLSeconds bounds how long a discovered taxonomy is reused.
	CacheTTLSeconds int `json:"cache_ttl_seconds,omitempty" yaml:"cache_ttl_seconds,omitempty"`
	// SampleTopK is the per-probe result count used by discovery-by-sampling.
	SampleTopK int `json:"sample_top_k,omitempty" yaml:"sample_top_k,omitempty"`
}

// HTTPClientConfig defines outbound HTTP behaviour for REST vector stores.
type HTTPClientConfig struct {
	TimeoutMs              int      `json:"timeout_ms,omitempty" yaml:"timeout_ms,omitempty"`
	Retry                  int      `json:"retry,omitempty" yaml:"retry,omitempty"`
	BackoffMinMs           int      `json:"backoff_min_ms,omitempty" yaml:"backoff_min_ms,omitempty"`
	BackoffMaxMs           int      `json:"backoff_max_ms,omitempty" yaml:"backoff_max_ms,omitempty"`
	HostAllowlist          []string `json:"host_allowlist,omitempty" yaml:"host_allowlist,omitempty"`
	MaxConsecutiveFailures int      `json:"max_consecutive_failures,omitempty" yaml:"max_consecutive_failures,omitempty"`
	CircuitOpenSeconds     int      `json:"circuit_open_seconds,omitempty" yaml:"circuit_open_seconds,omitempty"`
}

// Default returns a configuration pre-filled with the values the hosted
// deployment runs with.
func Default() *Config {
	return &Config{
		Pipeline: PipelineConfig{
			TopK:            3,
			MinContextChars: 50,
			ArabicRatio:     0.3,
		},
		LLM: LLMConfig{
			Provider:    "openai",
			Model:       "gpt-4.1",
			Temperature: 0.1,
			MaxTokens:   2048,
		},
		Embedding: EmbeddingConfig{
			Provider:   "openai",
			Model:      "text-embedding-3-large",
			Dimensions: 3072,
		},
		VectorDB: VectorDBConfig{
			Provider:   "milvus",
			Collection: "islamic_knowledge_topics_v2",
		},
		Topics: TopicsConfig{
			CacheTTLSeconds: 300,
			SampleTopK:      200,
		},
	}
}

// Load reads a YAML config file on top of the defaults and resolves
// credential placeholders from the environment.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv fills credentials left empty in the file from the environment.
func (c *Config) applyEnv() {
	if c.Embedding.APIKey == "" {
		c.Embedding.APIKey = os.Getenv("OPENAI_API_KEY")
	}
	if c.LLM.APIKey == "" {
		c.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
	}
	if c.VectorDB.APIKey == "" {
		c.VectorDB.APIKey = os.Getenv("VECTORDB_API_KEY")
	}
	if c.VectorDB.Password == "" {
		c.VectorDB.Password = os.Getenv("VECTORDB_PASSWORD")
	}
}
