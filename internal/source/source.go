package source

import "context"

// Candidate is one retrieved headline, not yet scored.
type Candidate struct {
	Source   string
	Headline string
	URL      string
}

// Source supplies candidate headlines for one external feed. Implementations
// return an error on transport or status failures; callers decide how to
// degrade (the engine treats any failure as an empty candidate list).
type Source interface {
	Name() string
	FetchCandidates(ctx context.Context, query string) ([]Candidate, error)
}
