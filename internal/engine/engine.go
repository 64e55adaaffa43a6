package engine

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"fakebuster/internal/normalize"
	"fakebuster/internal/source"
	"fakebuster/internal/verdict"
)

var (
	// ErrInvalidInput marks requests rejected before any source is contacted.
	ErrInvalidInput = errors.New("invalid input")
)

// SourceSpec binds an adapter to its role in the verdict rule.
type SourceSpec struct {
	Source  source.Source
	Archive bool
}

// Engine runs the verification pipeline: normalize, fan out to sources,
// score, aggregate. All state is request-scoped; the engine itself is safe
// for concurrent use.
type Engine struct {
	normalizer      *normalize.Normalizer
	sources         []SourceSpec
	strategies      map[string]verdict.Strategy
	defaultStrategy string
	archive         *source.ArchiveSource
	defaultTopK     int
	logger          zerolog.Logger
}

type Options struct {
	Normalizer      *normalize.Normalizer
	Sources         []SourceSpec
	Strategies      []verdict.Strategy
	DefaultStrategy string
	Archive         *source.ArchiveSource
	DefaultTopK     int
	Logger          zerolog.Logger
}

// CheckRequest is one verification request.
type CheckRequest struct {
	Article  string
	TopK     int
	Strategy string
}

// CheckResponse is the aggregated verdict for one article.
type CheckResponse struct {
	Verdict          verdict.Verdict `json:"verdict"`
	Confidence       float64         `json:"confidence"`
	DetectedLanguage string          `json:"detected_language"`
	Matches          []verdict.Match `json:"matches"`
}

// RelatedResponse is the raw related-article lookup result, no scoring.
type RelatedResponse struct {
	QueryTranslated  string            `json:"query_translated"`
	DetectedLanguage string            `json:"detected_language"`
	Results          []source.Document `json:"results"`
}

func New(opts Options) (*Engine, error) {
	if opts.Normalizer == nil {
		return nil, fmt.Errorf("normalizer is required")
	}
	if len(opts.Sources) == 0 {
		return nil, fmt.Errorf("at least one candidate source is required")
	}
	if len(opts.Strategies) == 0 {
		return nil, fmt.Errorf("at least one verdict strategy is required")
	}

	strategies := make(map[string]verdict.Strategy, len(opts.Strategies))
	for _, strategy := range opts.Strategies {
		strategies[strategy.Name()] = strategy
	}

	defaultStrategy := strings.ToLower(strings.TrimSpace(opts.DefaultStrategy))
	if defaultStrategy == "" {
		defaultStrategy = verdict.StrategySemantic
	}
	if _, ok := strategies[defaultStrategy]; !ok {
		return nil, fmt.Errorf("default strategy %q is not registered", defaultStrategy)
	}

	defaultTopK := opts.DefaultTopK
	if defaultTopK <= 0 {
		defaultTopK = verdict.DefaultTopK
	}

	return &Engine{
		normalizer:      opts.Normalizer,
		sources:         opts.Sources,
		strategies:      strategies,
		defaultStrategy: defaultStrategy,
		archive:         opts.Archive,
		defaultTopK:     defaultTopK,
		logger:          opts.Logger,
	}, nil
}

// Check verifies one article. Source and scoring failures degrade to a
// smaller result set; only invalid input is surfaced to the caller.
func (e *Engine) Check(ctx context.Context, req CheckRequest) (CheckResponse, error) {
	if e == nil {
		return CheckResponse{}, fmt.Errorf("engine is not initialized")
	}

	article := strings.TrimSpace(req.Article)
	if article == "" {
		return CheckResponse{}, fmt.Errorf("%w: article text is required", ErrInvalidInput)
	}

	strategy, err := e.resolveStrategy(req.Strategy)
	if err != nil {
		return CheckResponse{}, err
	}

	topK := req.TopK
	if topK <= 0 {
		topK = e.defaultTopK
	}

	query := e.normalizer.Normalize(ctx, article)
	candidates := e.fetchAll(ctx, query.Text)

	result, err := strategy.Evaluate(ctx, query.Text, candidates, topK)
	if err != nil {
		// Scoring failures are downstream failures: degrade to an empty
		// result set instead of surfacing an engine error.
		e.logger.Error().Err(err).Str("strategy", strategy.Name()).Msg("verdict evaluation failed")
		result = verdict.Result{
			Verdict:    verdict.VerdictFake,
			Confidence: 0.0,
			Matches:    []verdict.Match{},
		}
	}

	if result.Matches == nil {
		result.Matches = []verdict.Match{}
	}

	return CheckResponse{
		Verdict:          result.Verdict,
		Confidence:       result.Confidence,
		DetectedLanguage: query.DetectedLanguage,
		Matches:          result.Matches,
	}, nil
}

// Related returns raw archive results for a query, no scoring.
func (e *Engine) Related(ctx context.Context, rawQuery string) (RelatedResponse, error) {
	if e == nil {
		return RelatedResponse{}, fmt.Errorf("engine is not initialized")
	}

	trimmed := strings.TrimSpace(rawQuery)
	if trimmed == "" {
		return RelatedResponse{}, fmt.Errorf("%w: query parameter is required", ErrInvalidInput)
	}

	query := e.normalizer.Normalize(ctx, trimmed)

	results := []source.Document{}
	if e.archive != nil {
		docs, err := e.archive.SearchDocuments(ctx, query.Text, e.defaultTopK)
		if err != nil {
			e.logger.Warn().Err(err).Msg("related-news archive lookup failed")
		} else {
			results = docs
		}
	}

	return RelatedResponse{
		QueryTranslated:  query.Text,
		DetectedLanguage: query.DetectedLanguage,
		Results:          results,
	}, nil
}

// Strategies lists the registered verdict strategy names.
func (e *Engine) Strategies() []string {
	if e == nil {
		return nil
	}
	names := make([]string, 0, len(e.strategies))
	for name := range e.strategies {
		names = append(names, name)
	}
	return names
}

func (e *Engine) resolveStrategy(name string) (verdict.Strategy, error) {
	resolved := strings.ToLower(strings.TrimSpace(name))
	if resolved == "" {
		resolved = e.defaultStrategy
	}
	strategy, ok := e.strategies[resolved]
	if !ok {
		return nil, fmt.Errorf("%w: unknown strategy %q", ErrInvalidInput, resolved)
	}
	return strategy, nil
}

// fetchAll queries every source concurrently. Each fetch failure degrades to
// an empty candidate list; source enumeration order is preserved so ranking
// ties stay deterministic.
func (e *Engine) fetchAll(ctx context.Context, query string) []verdict.SourceCandidates {
	results := make([]verdict.SourceCandidates, len(e.sources))

	var wg sync.WaitGroup
	for i, spec := range e.sources {
		wg.Add(1)
		go func(i int, spec SourceSpec) {
			defer wg.Done()

			candidates, err := spec.Source.FetchCandidates(ctx, query)
			if err != nil {
				e.logger.Warn().
					Err(err).
					Str("source", spec.Source.Name()).
					Msg("candidate fetch failed, continuing with empty list")
				candidates = nil
			}
			results[i] = verdict.SourceCandidates{
				Adapter:    spec.Source.Name(),
				Archive:    spec.Archive,
				Candidates: candidates,
			}
		}(i, spec)
	}
	wg.Wait()

	return results
}
