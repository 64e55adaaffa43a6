package normalize

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"fakebuster/internal/langdetect"
	"fakebuster/internal/translation"
)

const (
	// LanguageUnknown labels input whose language could not be detected.
	LanguageUnknown = "unknown"

	// DefaultMaxChars bounds the text handed to the embedding provider.
	DefaultMaxChars = 2000

	targetLanguage = "en"
)

// Query is the English-normalized, length-bounded form of a submitted article.
type Query struct {
	Text             string
	DetectedLanguage string
}

// Normalizer detects input language and produces English text for matching.
// It never fails: detection and translation errors degrade to the original
// text with the best available language label.
type Normalizer struct {
	registry *translation.Registry
	provider string
	maxChars int
	logger   zerolog.Logger
}

type Options struct {
	Provider string
	MaxChars int
}

func New(registry *translation.Registry, logger zerolog.Logger, opts Options) *Normalizer {
	maxChars := opts.MaxChars
	if maxChars <= 0 {
		maxChars = DefaultMaxChars
	}
	return &Normalizer{
		registry: registry,
		provider: strings.TrimSpace(opts.Provider),
		maxChars: maxChars,
		logger:   logger,
	}
}

// Normalize returns a best-effort English version of rawText plus the
// detected source language.
func (n *Normalizer) Normalize(ctx context.Context, rawText string) Query {
	text := strings.TrimSpace(rawText)

	detected := langdetect.DetectISO6391(text)
	if detected == "" {
		detected = LanguageUnknown
	}

	if detected == targetLanguage || detected == LanguageUnknown {
		return Query{
			Text:             truncateRunes(text, n.maxChars),
			DetectedLanguage: detected,
		}
	}

	translated, ok := n.translate(ctx, text, detected)
	if !ok {
		// Degraded path: downstream matching sees the original language.
		return Query{
			Text:             truncateRunes(text, n.maxChars),
			DetectedLanguage: detected,
		}
	}

	return Query{
		Text:             truncateRunes(translated, n.maxChars),
		DetectedLanguage: detected,
	}
}

func (n *Normalizer) translate(ctx context.Context, text, sourceLang string) (string, bool) {
	if n == nil || n.registry == nil {
		return "", false
	}

	provider, err := n.registry.Provider(n.provider)
	if err != nil {
		n.logger.Warn().Err(err).Msg("translation provider unavailable, keeping original text")
		return "", false
	}

	resp, err := provider.Translate(ctx, translation.TranslateRequest{
		Text:       text,
		SourceLang: sourceLang,
		TargetLang: targetLanguage,
	})
	if err != nil {
		n.logger.Warn().
			Err(err).
			Str("provider", provider.Name()).
			Str("source_lang", sourceLang).
			Msg("translation failed, keeping original text")
		return "", false
	}

	translated := strings.TrimSpace(resp.Text)
	if translated == "" {
		return "", false
	}
	return translated, true
}

func truncateRunes(text string, maxChars int) string {
	if maxChars <= 0 {
		return text
	}
	runes := []rune(text)
	if len(runes) <= maxChars {
		return text
	}
	return string(runes[:maxChars])
}
