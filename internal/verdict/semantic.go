package verdict

import (
	"context"
	"fmt"

	"fakebuster/internal/embedding"
)

const StrategySemantic = "semantic"

// SemanticStrategy scores candidates by cosine similarity between the query
// embedding and each candidate headline embedding. Headlines from one source
// are embedded in a single batched call.
type SemanticStrategy struct {
	provider  embedding.Provider
	threshold float64
}

func NewSemanticStrategy(provider embedding.Provider, threshold float64) *SemanticStrategy {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	return &SemanticStrategy{
		provider:  provider,
		threshold: threshold,
	}
}

func (s *SemanticStrategy) Name() string {
	return StrategySemantic
}

func (s *SemanticStrategy) Evaluate(ctx context.Context, query string, sources []SourceCandidates, topK int) (Result, error) {
	if s == nil || s.provider == nil {
		return Result{}, fmt.Errorf("semantic strategy is not initialized")
	}

	queryVectors, err := s.provider.Embed(ctx, []string{query})
	if err != nil {
		return Result{}, fmt.Errorf("embed query: %w", err)
	}
	if len(queryVectors) != 1 {
		return Result{}, fmt.Errorf("embed query: expected 1 vector, got %d", len(queryVectors))
	}
	queryVector := queryVectors[0]

	scored := make([]ScoredSource, 0, len(sources))
	for _, src := range sources {
		if len(src.Candidates) == 0 {
			continue
		}

		texts := make([]string, 0, len(src.Candidates))
		for _, candidate := range src.Candidates {
			texts = append(texts, candidate.Headline)
		}

		vectors, err := s.provider.Embed(ctx, texts)
		if err != nil {
			return Result{}, fmt.Errorf("embed %s candidates: %w", src.Adapter, err)
		}
		if len(vectors) != len(src.Candidates) {
			return Result{}, fmt.Errorf("embed %s candidates: expected %d vectors, got %d", src.Adapter, len(src.Candidates), len(vectors))
		}

		scores := embedding.Score(queryVector, vectors)
		matches := make([]Match, 0, len(src.Candidates))
		for i, candidate := range src.Candidates {
			matches = append(matches, Match{
				Source:   candidate.Source,
				Headline: candidate.Headline,
				URL:      candidate.URL,
				Score:    scores[i],
			})
		}
		scored = append(scored, ScoredSource{
			Archive: src.Archive,
			Matches: matches,
		})
	}

	return Aggregate(scored, s.threshold, topK), nil
}
