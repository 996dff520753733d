package model

import "time"

// Config is the complete kinship configuration tree
type Config struct {
	HTTP        HTTPConfig        `yaml:"http"`
	Cache       CacheConfig       `yaml:"cache"`
	Extract     ExtractConfig     `yaml:"extract"`
	Match       MatchConfig       `yaml:"match"`
	Concurrency ConcurrencyConfig `yaml:"concurrency"`
	LLM         LLMConfig         `yaml:"llm"`
	Output      OutputConfig      `yaml:"output"`
}

// HTTPConfig controls page fetching
type HTTPConfig struct {
	Timeout      time.Duration `yaml:"timeout"`
	UserAgent    string        `yaml:"user_agent"`
	MaxBodyBytes int64         `yaml:"max_body_bytes"`
	InsecureTLS  bool          `yaml:"insecure_tls"`
	HTTPProxy    string        `yaml:"http_proxy"`
	HTTPSProxy   string        `yaml:"https_proxy"`
	NoProxy      string        `yaml:"no_proxy"`
}

// CacheConfig controls the layered page cache
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled"`
	Dir       string        `yaml:"dir"`
	MemoryTTL time.Duration `yaml:"memory_ttl"`
	DiskTTL   time.Duration `yaml:"disk_ttl"`
}

// LabelSynonym adds caller-supplied phrases to a built-in label category.
// Recognized extra categories: "profession" and "place".
type LabelSynonym struct {
	Label    string   `yaml:"label" json:"label"`
	Aliases  []string `yaml:"aliases" json:"aliases"`
	Category string   `yaml:"category,omitempty" json:"category,omitempty"`
}

// ExtractConfig controls field extraction
type ExtractConfig struct {
	ExtraLabels []LabelSynonym `yaml:"extra_labels"`
}

// MatchConfig holds entity-matching policy constants
type MatchConfig struct {
	SuggestionThreshold float64 `yaml:"suggestion_threshold"`
	AutoLinkThreshold   float64 `yaml:"auto_link_threshold"`
	MaxSuggestions      int     `yaml:"max_suggestions"`
}

// ConcurrencyConfig controls batch processing and politeness limits
type ConcurrencyConfig struct {
	BatchWorkers      int     `yaml:"batch_workers"`
	RequestsPerSecond float64 `yaml:"requests_per_second"`
	Burst             int     `yaml:"burst"`
}

// LLMConfig controls the optional research-note summarizer
type LLMConfig struct {
	Provider  string `yaml:"provider"` // "" disables, "openai" enables
	Model     string `yaml:"model"`
	APIKey    string `yaml:"-"` // From environment only, never persisted
	BaseURL   string `yaml:"base_url"`
	Timeout   int    `yaml:"timeout_seconds"`
	MaxTokens int    `yaml:"max_tokens"`
}

// OutputConfig controls CLI output behavior
type OutputConfig struct {
	Verbose bool `yaml:"verbose"`
	Pretty  bool `yaml:"pretty"`
}

// DefaultConfig returns the built-in defaults
func DefaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Timeout:      30 * time.Second,
			UserAgent:    "Kinship/0.1 (+https://github.com/okkonen/kinship)",
			MaxBodyBytes: 2_000_000,
		},
		Cache: CacheConfig{
			Enabled:   true,
			Dir:       "", // Empty means $HOME/.kinship/cache, resolved by the fetcher
			MemoryTTL: 15 * time.Minute,
			DiskTTL:   24 * time.Hour,
		},
		Match: MatchConfig{
			SuggestionThreshold: 0.45,
			AutoLinkThreshold:   0.8,
			MaxSuggestions:      5,
		},
		Concurrency: ConcurrencyConfig{
			BatchWorkers:      4,
			RequestsPerSecond: 1,
			Burst:             3,
		},
		LLM: LLMConfig{
			Model:     "gpt-4o-mini",
			Timeout:   60,
			MaxTokens: 600,
		},
		Output: OutputConfig{
			Pretty: true,
		},
	}
}
