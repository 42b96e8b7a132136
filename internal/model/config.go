package model

import "time"

// Config is the complete runtime configuration, loaded from defaults,
// ~/.sourcescore/config.yaml, SOURCESCORE_* env vars, and CLI flags.
type Config struct {
	HTTP         HTTPConfig               `json:"http" yaml:"http"`
	Classifier   ClassifierConfig         `json:"classifier" yaml:"classifier"`
	Concurrency  ConcurrencyConfig        `json:"concurrency" yaml:"concurrency"`
	RateLimiting RateLimitConfig          `json:"rate_limiting" yaml:"rate_limiting"`
	Cache        CacheConfig              `json:"cache" yaml:"cache"`
	Scoring      ScoringConfig            `json:"scoring" yaml:"scoring"`
	Output       OutputConfig             `json:"output" yaml:"output"`
	Categories   map[string]CategoryTarget `json:"categories" yaml:"categories"`
}

// HTTPConfig controls the article fetcher.
type HTTPConfig struct {
	Timeout      time.Duration `json:"timeout" yaml:"timeout"`
	UserAgent    string        `json:"user_agent" yaml:"user_agent"`
	MaxBodyBytes int64         `json:"max_body_bytes" yaml:"max_body_bytes"`
	HTTPProxy    string        `json:"http_proxy,omitempty" yaml:"http_proxy,omitempty"`
	HTTPSProxy   string        `json:"https_proxy,omitempty" yaml:"https_proxy,omitempty"`
	NoProxy      string        `json:"no_proxy,omitempty" yaml:"no_proxy,omitempty"`
	RespectRobots bool         `json:"respect_robots" yaml:"respect_robots"`
}

// ClassifierConfig controls the external semantic classifier call.
type ClassifierConfig struct {
	Provider  string        `json:"provider" yaml:"provider"`   // "openai", "ollama", "" (disabled)
	Model     string        `json:"model" yaml:"model"`
	APIKey    string        `json:"-" yaml:"-"`                 // Env only, never serialized
	BaseURL   string        `json:"base_url,omitempty" yaml:"base_url,omitempty"`
	Timeout   time.Duration `json:"timeout" yaml:"timeout"`
	MaxChars  int           `json:"max_chars" yaml:"max_chars"` // Request text bound
	MaxTokens int           `json:"max_tokens" yaml:"max_tokens"`
}

// ConcurrencyConfig bounds the worker pool.
type ConcurrencyConfig struct {
	Workers int `json:"workers" yaml:"workers"`
}

// RateLimitConfig throttles outbound requests.
type RateLimitConfig struct {
	RequestsPerSecond float64 `json:"requests_per_second" yaml:"requests_per_second"`
	BurstSize         int     `json:"burst_size" yaml:"burst_size"`
}

// CacheConfig controls the classifier-response cache.
type CacheConfig struct {
	Enabled bool          `json:"enabled" yaml:"enabled"`
	Dir     string        `json:"dir" yaml:"dir"`
	TTL     time.Duration `json:"ttl" yaml:"ttl"`
}

// ScoringConfig selects the active scoring policy by name. The policy is
// passed explicitly into the engine; concurrent batches may run different
// policies without interfering.
type ScoringConfig struct {
	Policy string `json:"policy" yaml:"policy"`
}

// OutputConfig controls where results land.
type OutputConfig struct {
	Verbose   bool   `json:"verbose" yaml:"verbose"`
	Dir       string `json:"dir" yaml:"dir"`
	StorePath string `json:"store_path" yaml:"store_path"` // SQLite result sink ("" disables)
}

// DefaultConfig returns the built-in defaults. House targets come from the
// newsroom style guide: News 350w/2 sources, Feature 800w/4, Sport 350w/2.
func DefaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Timeout:       30 * time.Second,
			UserAgent:     "Sourcescore/0.1 (+https://github.com/creedharan/sourcescore)",
			MaxBodyBytes:  2_000_000,
			RespectRobots: true,
		},
		Classifier: ClassifierConfig{
			Provider:  "",
			Timeout:   30 * time.Second,
			MaxChars:  8000,
			MaxTokens: 2000,
		},
		Concurrency: ConcurrencyConfig{
			Workers: 4,
		},
		RateLimiting: RateLimitConfig{
			RequestsPerSecond: 1.0,
			BurstSize:         3,
		},
		Cache: CacheConfig{
			Enabled: true,
			Dir:     "",
			TTL:     24 * time.Hour,
		},
		Scoring: ScoringConfig{
			Policy: "ssi-standard",
		},
		Output: OutputConfig{
			Dir:       "./sourcescore-reports",
			StorePath: "",
		},
		Categories: map[string]CategoryTarget{
			"News":    {WordCount: 350, Sources: 2},
			"Feature": {WordCount: 800, Sources: 4},
			"Sport":   {WordCount: 350, Sources: 2},
		},
	}
}

// Target looks up the house targets for a category.
func (c *Config) Target(category string) (CategoryTarget, error) {
	t, ok := c.Categories[category]
	if !ok || t.WordCount <= 0 || t.Sources <= 0 {
		return CategoryTarget{}, ErrMissingCategoryConfig
	}
	return t, nil
}
