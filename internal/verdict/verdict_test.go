package verdict

import "testing"

func scoredSources(archive []float64, other []float64) []ScoredSource {
	archiveMatches := make([]Match, 0, len(archive))
	for _, score := range archive {
		archiveMatches = append(archiveMatches, Match{
			Source:   "NYT",
			Headline: "archive headline",
			Score:    score,
		})
	}
	otherMatches := make([]Match, 0, len(other))
	for _, score := range other {
		otherMatches = append(otherMatches, Match{
			Source:   "The Hindu",
			Headline: "other headline",
			Score:    score,
		})
	}
	return []ScoredSource{
		{Archive: true, Matches: archiveMatches},
		{Archive: false, Matches: otherMatches},
	}
}

func TestAggregateRealWhenBothSourceTypesContribute(t *testing.T) {
	t.Parallel()

	result := Aggregate(scoredSources([]float64{0.85}, []float64{0.72}), DefaultThreshold, 10)
	if result.Verdict != VerdictReal {
		t.Fatalf("unexpected verdict: %s", result.Verdict)
	}
	if result.Confidence != 0.85 {
		t.Fatalf("unexpected confidence: %f", result.Confidence)
	}
	if len(result.Matches) != 2 {
		t.Fatalf("unexpected match count: %d", len(result.Matches))
	}
}

func TestAggregateLikelyRealWhenSingleSourceContributes(t *testing.T) {
	t.Parallel()

	// Archive hit only, other source below threshold.
	result := Aggregate(scoredSources([]float64{0.85}, []float64{0.12}), DefaultThreshold, 10)
	if result.Verdict != VerdictLikelyReal {
		t.Fatalf("unexpected verdict: %s", result.Verdict)
	}
	if result.Confidence != 0.85 {
		t.Fatalf("unexpected confidence: %f", result.Confidence)
	}
	if len(result.Matches) != 1 {
		t.Fatalf("unexpected match count: %d", len(result.Matches))
	}

	// Non-archive hit only.
	result = Aggregate(scoredSources(nil, []float64{0.7}), DefaultThreshold, 10)
	if result.Verdict != VerdictLikelyReal {
		t.Fatalf("unexpected verdict: %s", result.Verdict)
	}
}

func TestAggregateFakeWhenNothingPassesThreshold(t *testing.T) {
	t.Parallel()

	result := Aggregate(scoredSources([]float64{0.4}, []float64{0.12}), DefaultThreshold, 10)
	if result.Verdict != VerdictFake {
		t.Fatalf("unexpected verdict: %s", result.Verdict)
	}
	if result.Confidence != 0.0 {
		t.Fatalf("expected zero confidence, got %f", result.Confidence)
	}
	if len(result.Matches) != 0 {
		t.Fatalf("expected empty matches, got %d", len(result.Matches))
	}
}

func TestAggregateEmptyInput(t *testing.T) {
	t.Parallel()

	result := Aggregate(nil, DefaultThreshold, 10)
	if result.Verdict != VerdictFake || result.Confidence != 0.0 || len(result.Matches) != 0 {
		t.Fatalf("unexpected result for empty input: %+v", result)
	}
}

func TestAggregateSortsDescendingAndTruncates(t *testing.T) {
	t.Parallel()

	result := Aggregate(scoredSources([]float64{0.7, 0.95, 0.8}, []float64{0.9, 0.65}), DefaultThreshold, 3)
	if len(result.Matches) != 3 {
		t.Fatalf("unexpected match count: %d", len(result.Matches))
	}
	for i := 1; i < len(result.Matches); i++ {
		if result.Matches[i].Score > result.Matches[i-1].Score {
			t.Fatalf("matches not sorted descending: %+v", result.Matches)
		}
	}
	if result.Confidence != 0.95 {
		t.Fatalf("unexpected confidence: %f", result.Confidence)
	}
}

func TestAggregateTiesKeepEnumerationOrder(t *testing.T) {
	t.Parallel()

	scored := []ScoredSource{
		{Archive: true, Matches: []Match{
			{Source: "NYT", Headline: "first seen", Score: 0.8},
		}},
		{Archive: false, Matches: []Match{
			{Source: "The Hindu", Headline: "second seen", Score: 0.8},
		}},
	}
	result := Aggregate(scored, DefaultThreshold, 10)
	if result.Matches[0].Headline != "first seen" || result.Matches[1].Headline != "second seen" {
		t.Fatalf("tie order not preserved: %+v", result.Matches)
	}
}

func TestAggregateVerdictEvaluatedOnTruncatedSet(t *testing.T) {
	t.Parallel()

	// The only non-archive match ranks below the cut. After truncation only
	// archive matches remain, so cross-source agreement does not hold.
	result := Aggregate(scoredSources([]float64{0.95, 0.9}, []float64{0.7}), DefaultThreshold, 2)
	if result.Verdict != VerdictLikelyReal {
		t.Fatalf("unexpected verdict: %s", result.Verdict)
	}
}
