package verdict

import (
	"context"
	"sort"

	"fakebuster/internal/source"
)

// Verdict classifies the credibility of a submitted article.
type Verdict string

const (
	VerdictReal       Verdict = "REAL"
	VerdictLikelyReal Verdict = "LIKELY_REAL"
	VerdictFake       Verdict = "FAKE"
)

// DefaultThreshold is the similarity acceptance bound, tuned against
// all-MiniLM-L6-v2 and kept configurable for other embedding models.
const DefaultThreshold = 0.60

// DefaultTopK bounds the returned match list.
const DefaultTopK = 10

// Match is one accepted, scored headline in the final ranked set.
type Match struct {
	Source      string  `json:"source"`
	Headline    string  `json:"headline"`
	URL         string  `json:"url,omitempty"`
	Score       float64 `json:"score"`
	FromArchive bool    `json:"-"`
}

// Result is the aggregated outcome for one request.
type Result struct {
	Verdict    Verdict `json:"verdict"`
	Confidence float64 `json:"confidence"`
	Matches    []Match `json:"matches"`
}

// SourceCandidates groups one adapter's unscored candidates. Archive marks
// the deep-archive source, which the verdict rule treats as the anchor for
// cross-source corroboration.
type SourceCandidates struct {
	Adapter    string
	Archive    bool
	Candidates []source.Candidate
}

// ScoredSource groups one adapter's scored candidates, in retrieval order.
type ScoredSource struct {
	Archive bool
	Matches []Match
}

// Strategy evaluates a normalized query against per-source candidates.
type Strategy interface {
	Name() string
	Evaluate(ctx context.Context, query string, sources []SourceCandidates, topK int) (Result, error)
}

// Aggregate filters scored candidates by threshold, merges all sources into
// one ranked list (descending score, first-seen order on ties), truncates to
// topK, and derives the verdict:
//
//	REAL        - the ranked set contains the archive source and at least one
//	              other source
//	LIKELY_REAL - at least one match, but no cross-source agreement
//	FAKE        - no match passed the threshold
func Aggregate(scored []ScoredSource, threshold float64, topK int) Result {
	if topK <= 0 {
		topK = DefaultTopK
	}

	accepted := make([]Match, 0)
	for _, src := range scored {
		for _, match := range src.Matches {
			if match.Score < threshold {
				continue
			}
			match.FromArchive = src.Archive
			accepted = append(accepted, match)
		}
	}

	sort.SliceStable(accepted, func(i, j int) bool {
		return accepted[i].Score > accepted[j].Score
	})
	if len(accepted) > topK {
		accepted = accepted[:topK]
	}

	hasArchive := false
	hasOther := false
	confidence := 0.0
	for _, match := range accepted {
		if match.FromArchive {
			hasArchive = true
		} else {
			hasOther = true
		}
		if match.Score > confidence {
			confidence = match.Score
		}
	}

	verdict := VerdictFake
	switch {
	case hasArchive && hasOther:
		verdict = VerdictReal
	case len(accepted) > 0:
		verdict = VerdictLikelyReal
	}

	return Result{
		Verdict:    verdict,
		Confidence: confidence,
		Matches:    accepted,
	}
}
