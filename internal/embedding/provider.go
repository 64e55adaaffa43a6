package embedding

import "context"

// Provider maps a batch of texts to fixed-length dense vectors, preserving
// input order. Implementations are constructed once at startup and must be
// safe for concurrent read-only use.
type Provider interface {
	Embed(ctx context.Context, texts []string) ([][]float64, error)
	ModelName() string
}
