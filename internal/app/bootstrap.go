package app

import (
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"fakebuster/internal/config"
	"fakebuster/internal/embedding"
	"fakebuster/internal/engine"
	"fakebuster/internal/normalize"
	"fakebuster/internal/source"
	"fakebuster/internal/translation"
	"fakebuster/internal/verdict"
)

const embeddingCacheTTL = 24 * time.Hour

// buildEngine wires the full verification pipeline from configuration:
// translation registry, normalizer, candidate sources, embedding provider
// (with optional Redis cache) and verdict strategies.
func buildEngine(cfg *config.Config, logger zerolog.Logger) (*engine.Engine, error) {
	registry := translation.NewRegistryFromEnv()
	normalizer := normalize.New(registry, logger, normalize.Options{
		MaxChars: cfg.NormalizeMaxChars,
	})

	timeout := time.Duration(cfg.SourceTimeoutSeconds) * time.Second

	archive := source.NewArchiveSource(cfg.NYTAPIKey, source.ArchiveOptions{
		Timeout: timeout,
	})
	headlines := source.NewHeadlinesSource(cfg.NewsAPIKey, source.HeadlinesOptions{
		Country: cfg.NewsCountry,
		Timeout: timeout,
	})

	sources := []engine.SourceSpec{
		{Source: archive, Archive: true},
		{Source: headlines},
	}
	if cfg.FeedURL != "" {
		sources = append(sources, engine.SourceSpec{
			Source: source.NewFeedSource(cfg.FeedURL, source.DefaultFeedLimit),
		})
	}

	provider := buildEmbeddingProvider(cfg, logger)

	eng, err := engine.New(engine.Options{
		Normalizer: normalizer,
		Sources:    sources,
		Strategies: []verdict.Strategy{
			verdict.NewSemanticStrategy(provider, cfg.VerdictThreshold),
			verdict.NewSubstringStrategy(),
		},
		DefaultStrategy: cfg.VerdictStrategy,
		Archive:         archive,
		DefaultTopK:     cfg.DefaultTopK,
		Logger:          logger,
	})
	if err != nil {
		return nil, fmt.Errorf("build engine: %w", err)
	}
	return eng, nil
}

func buildEmbeddingProvider(cfg *config.Config, logger zerolog.Logger) embedding.Provider {
	var provider embedding.Provider
	if cfg.CohereAPIKey != "" {
		provider = embedding.NewCohereProvider(cfg.CohereAPIKey, cfg.EmbeddingModel)
		logger.Info().Str("provider", "cohere").Msg("embedding provider configured")
	} else {
		provider = embedding.NewLocalProvider(cfg.EmbeddingEndpoint, cfg.EmbeddingModel, embedding.LocalOptions{})
		logger.Info().
			Str("provider", "local").
			Str("endpoint", cfg.EmbeddingEndpoint).
			Msg("embedding provider configured")
	}

	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		provider = embedding.NewCachedProvider(provider, rdb, embeddingCacheTTL, logger)
		logger.Info().Str("addr", cfg.RedisAddr).Msg("embedding cache enabled")
	}

	return provider
}
