package embedding

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// DefaultCacheTTL bounds how long a memoized vector survives.
const DefaultCacheTTL = 24 * time.Hour

// CachedProvider memoizes vectors in Redis keyed by a fingerprint of
// model name and text. Cache failures degrade to the inner provider;
// the cache is an optimization, never a correctness dependency.
type CachedProvider struct {
	inner  Provider
	rdb    *redis.Client
	ttl    time.Duration
	logger zerolog.Logger
}

func NewCachedProvider(inner Provider, rdb *redis.Client, ttl time.Duration, logger zerolog.Logger) *CachedProvider {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &CachedProvider{
		inner:  inner,
		rdb:    rdb,
		ttl:    ttl,
		logger: logger,
	}
}

func (p *CachedProvider) ModelName() string {
	if p == nil || p.inner == nil {
		return ""
	}
	return p.inner.ModelName()
}

func (p *CachedProvider) Embed(ctx context.Context, texts []string) ([][]float64, error) {
	if p == nil || p.inner == nil {
		return nil, fmt.Errorf("cached embedding provider is nil")
	}
	if len(texts) == 0 {
		return [][]float64{}, nil
	}
	if p.rdb == nil {
		return p.inner.Embed(ctx, texts)
	}

	keys := make([]string, len(texts))
	for i, text := range texts {
		keys[i] = cacheKey(p.inner.ModelName(), text)
	}

	vectors := make([][]float64, len(texts))
	missing := make([]int, 0, len(texts))

	cached, err := p.rdb.MGet(ctx, keys...).Result()
	if err != nil {
		p.logger.Warn().Err(err).Msg("embedding cache read failed, falling back to provider")
		return p.inner.Embed(ctx, texts)
	}

	for i, raw := range cached {
		encoded, ok := raw.(string)
		if !ok {
			missing = append(missing, i)
			continue
		}
		var vector []float64
		if err := json.Unmarshal([]byte(encoded), &vector); err != nil {
			missing = append(missing, i)
			continue
		}
		vectors[i] = vector
	}

	if len(missing) == 0 {
		return vectors, nil
	}

	missingTexts := make([]string, len(missing))
	for i, idx := range missing {
		missingTexts[i] = texts[idx]
	}

	fresh, err := p.inner.Embed(ctx, missingTexts)
	if err != nil {
		return nil, err
	}
	if len(fresh) != len(missing) {
		return nil, fmt.Errorf("embedding count mismatch from inner provider: requested=%d returned=%d", len(missing), len(fresh))
	}

	for i, idx := range missing {
		vectors[idx] = fresh[i]
		encoded, err := json.Marshal(fresh[i])
		if err != nil {
			continue
		}
		if err := p.rdb.Set(ctx, keys[idx], encoded, p.ttl).Err(); err != nil {
			p.logger.Warn().Err(err).Msg("embedding cache write failed")
		}
	}

	return vectors, nil
}

func cacheKey(model, text string) string {
	sum := sha256.Sum256([]byte(model + "\x00" + text))
	return "fakebuster:embedding:" + hex.EncodeToString(sum[:])
}
