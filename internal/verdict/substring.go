package verdict

import (
	"context"
	"strings"
)

const StrategySubstring = "substring"

// SubstringStrategy is the legacy binary presence check, kept as a selectable
// mode for backward compatibility and testing. The archive source counts as
// matched when it returned any candidate for the query; other sources match
// when the query appears verbatim (case-insensitive) inside a headline.
// Matched candidates score 1.0; there is no graded similarity.
type SubstringStrategy struct{}

func NewSubstringStrategy() *SubstringStrategy {
	return &SubstringStrategy{}
}

func (s *SubstringStrategy) Name() string {
	return StrategySubstring
}

func (s *SubstringStrategy) Evaluate(_ context.Context, query string, sources []SourceCandidates, topK int) (Result, error) {
	needle := strings.ToLower(strings.TrimSpace(query))

	scored := make([]ScoredSource, 0, len(sources))
	for _, src := range sources {
		matches := make([]Match, 0, len(src.Candidates))
		for _, candidate := range src.Candidates {
			if !src.Archive {
				if needle == "" || !strings.Contains(strings.ToLower(candidate.Headline), needle) {
					continue
				}
			}
			matches = append(matches, Match{
				Source:   candidate.Source,
				Headline: candidate.Headline,
				URL:      candidate.URL,
				Score:    1.0,
			})
		}
		scored = append(scored, ScoredSource{
			Archive: src.Archive,
			Matches: matches,
		})
	}

	return Aggregate(scored, DefaultThreshold, topK), nil
}
