package config

import (
	"fmt"
	"strings"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Environment string `envconfig:"ENVIRONMENT" default:"local"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`

	NYTAPIKey            string `envconfig:"NYT_API_KEY" required:"true"`
	NewsAPIKey           string `envconfig:"NEWS_API_KEY" required:"true"`
	NewsCountry          string `envconfig:"NEWS_COUNTRY" default:"in"`
	FeedURL              string `envconfig:"FEED_URL" default:""`
	SourceTimeoutSeconds int    `envconfig:"SOURCE_TIMEOUT_SECONDS" default:"10"`

	EmbeddingEndpoint string `envconfig:"EMBEDDING_ENDPOINT" default:"http://127.0.0.1:8844/embed"`
	EmbeddingModel    string `envconfig:"EMBEDDING_MODEL" default:"all-MiniLM-L6-v2"`
	CohereAPIKey      string `envconfig:"COHERE_API_KEY" default:""`
	RedisAddr         string `envconfig:"REDIS_ADDR" default:""`

	VerdictThreshold  float64 `envconfig:"VERDICT_THRESHOLD" default:"0.60"`
	VerdictStrategy   string  `envconfig:"VERDICT_STRATEGY" default:"semantic"`
	NormalizeMaxChars int     `envconfig:"NORMALIZE_MAX_CHARS" default:"2000"`
	DefaultTopK       int     `envconfig:"DEFAULT_TOP_K" default:"10"`

	CORSAllowedOrigins string `envconfig:"CORS_ALLOWED_ORIGINS" default:""`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.NYTAPIKey) == "" {
		return fmt.Errorf("NYT_API_KEY is required")
	}
	if strings.TrimSpace(c.NewsAPIKey) == "" {
		return fmt.Errorf("NEWS_API_KEY is required")
	}
	if len(strings.TrimSpace(c.NewsCountry)) != 2 {
		return fmt.Errorf("NEWS_COUNTRY must be a two-letter country code")
	}
	if c.SourceTimeoutSeconds < 1 {
		return fmt.Errorf("SOURCE_TIMEOUT_SECONDS must be >= 1")
	}
	if c.VerdictThreshold < 0 || c.VerdictThreshold > 1 {
		return fmt.Errorf("VERDICT_THRESHOLD must be within [0, 1]")
	}
	switch strings.ToLower(strings.TrimSpace(c.VerdictStrategy)) {
	case "semantic", "substring":
	default:
		return fmt.Errorf("VERDICT_STRATEGY must be %q or %q", "semantic", "substring")
	}
	if c.NormalizeMaxChars < 1 {
		return fmt.Errorf("NORMALIZE_MAX_CHARS must be >= 1")
	}
	if c.DefaultTopK < 1 {
		return fmt.Errorf("DEFAULT_TOP_K must be >= 1")
	}
	return nil
}

func (c *Config) CORSAllowedOriginsList() []string {
	if c == nil {
		return nil
	}

	parts := strings.Split(c.CORSAllowedOrigins, ",")
	origins := make([]string, 0, len(parts))
	seen := make(map[string]struct{}, len(parts))
	for _, part := range parts {
		origin := strings.TrimSpace(part)
		if origin == "" {
			continue
		}
		if _, exists := seen[origin]; exists {
			continue
		}
		seen[origin] = struct{}{}
		origins = append(origins, origin)
	}
	return origins
}
