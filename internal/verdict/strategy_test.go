package verdict

import (
	"context"
	"testing"

	"fakebuster/internal/source"
)

// vectorProvider maps known texts to fixed vectors so similarity scores are
// fully deterministic.
type vectorProvider struct {
	vectors map[string][]float64
	calls   int
}

func (p *vectorProvider) Embed(_ context.Context, texts []string) ([][]float64, error) {
	p.calls++
	out := make([][]float64, 0, len(texts))
	for _, text := range texts {
		vector, ok := p.vectors[text]
		if !ok {
			vector = []float64{0, 0}
		}
		out = append(out, vector)
	}
	return out, nil
}

func (p *vectorProvider) ModelName() string {
	return "test-model"
}

func TestSemanticStrategyScoresAndAggregates(t *testing.T) {
	t.Parallel()

	provider := &vectorProvider{vectors: map[string][]float64{
		"Flooding hits coastal city":          {1, 0},
		"Coastal city hit by severe flooding": {0.9192388, 0.3938925}, // ~0.92 similarity
		"Unrelated sports result":             {0.12, 0.9927789},      // ~0.12 similarity
	}}
	strategy := NewSemanticStrategy(provider, DefaultThreshold)

	sources := []SourceCandidates{
		{
			Adapter: "NYT",
			Archive: true,
			Candidates: []source.Candidate{
				{Source: "NYT", Headline: "Coastal city hit by severe flooding", URL: "https://example.com/flood"},
			},
		},
		{
			Adapter: "NewsAPI",
			Candidates: []source.Candidate{
				{Source: "The Hindu", Headline: "Unrelated sports result"},
			},
		},
	}

	result, err := strategy.Evaluate(context.Background(), "Flooding hits coastal city", sources, 10)
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}

	if result.Verdict != VerdictLikelyReal {
		t.Fatalf("unexpected verdict: %s", result.Verdict)
	}
	if len(result.Matches) != 1 {
		t.Fatalf("unexpected match count: %d", len(result.Matches))
	}
	if result.Matches[0].Headline != "Coastal city hit by severe flooding" {
		t.Fatalf("unexpected match: %+v", result.Matches[0])
	}
	if result.Confidence < 0.85 || result.Confidence > 1.0 {
		t.Fatalf("unexpected confidence: %f", result.Confidence)
	}

	// One call for the query, one batched call per non-empty source.
	if provider.calls != 3 {
		t.Fatalf("unexpected embed call count: %d", provider.calls)
	}
}

func TestSemanticStrategySkipsEmptySources(t *testing.T) {
	t.Parallel()

	provider := &vectorProvider{vectors: map[string][]float64{
		"query text": {1, 0},
	}}
	strategy := NewSemanticStrategy(provider, DefaultThreshold)

	result, err := strategy.Evaluate(context.Background(), "query text", []SourceCandidates{
		{Adapter: "NYT", Archive: true},
		{Adapter: "NewsAPI"},
	}, 10)
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if result.Verdict != VerdictFake || result.Confidence != 0.0 || len(result.Matches) != 0 {
		t.Fatalf("unexpected result: %+v", result)
	}
	if provider.calls != 1 {
		t.Fatalf("expected only the query embed call, got %d", provider.calls)
	}
}

func TestSemanticStrategyIsDeterministic(t *testing.T) {
	t.Parallel()

	provider := &vectorProvider{vectors: map[string][]float64{
		"the query":    {1, 1},
		"one headline": {1, 0.8},
	}}
	strategy := NewSemanticStrategy(provider, DefaultThreshold)
	sources := []SourceCandidates{
		{
			Adapter: "NYT",
			Archive: true,
			Candidates: []source.Candidate{
				{Source: "NYT", Headline: "one headline"},
			},
		},
	}

	first, err := strategy.Evaluate(context.Background(), "the query", sources, 10)
	if err != nil {
		t.Fatalf("first evaluate: %v", err)
	}
	second, err := strategy.Evaluate(context.Background(), "the query", sources, 10)
	if err != nil {
		t.Fatalf("second evaluate: %v", err)
	}

	if first.Verdict != second.Verdict || first.Confidence != second.Confidence || len(first.Matches) != len(second.Matches) {
		t.Fatalf("results differ across identical calls: %+v vs %+v", first, second)
	}
}

func TestSubstringStrategyMatchesLegacyRules(t *testing.T) {
	t.Parallel()

	strategy := NewSubstringStrategy()
	sources := []SourceCandidates{
		{
			Adapter: "NYT",
			Archive: true,
			Candidates: []source.Candidate{
				// Archive presence counts regardless of headline content.
				{Source: "NYT", Headline: "An entirely different story"},
			},
		},
		{
			Adapter: "NewsAPI",
			Candidates: []source.Candidate{
				{Source: "The Hindu", Headline: "Breaking: coastal flooding worsens overnight"},
				{Source: "Blank Times", Headline: "Cricket scores for the weekend"},
			},
		},
	}

	result, err := strategy.Evaluate(context.Background(), "Coastal Flooding", sources, 10)
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}

	if result.Verdict != VerdictReal {
		t.Fatalf("unexpected verdict: %s", result.Verdict)
	}
	if len(result.Matches) != 2 {
		t.Fatalf("unexpected match count: %d", len(result.Matches))
	}
	if result.Confidence != 1.0 {
		t.Fatalf("unexpected confidence: %f", result.Confidence)
	}
}

func TestSubstringStrategyFakeWithoutMatches(t *testing.T) {
	t.Parallel()

	strategy := NewSubstringStrategy()
	result, err := strategy.Evaluate(context.Background(), "coastal flooding", []SourceCandidates{
		{Adapter: "NYT", Archive: true},
		{
			Adapter: "NewsAPI",
			Candidates: []source.Candidate{
				{Source: "The Hindu", Headline: "Cricket scores for the weekend"},
			},
		},
	}, 10)
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if result.Verdict != VerdictFake {
		t.Fatalf("unexpected verdict: %s", result.Verdict)
	}
}
