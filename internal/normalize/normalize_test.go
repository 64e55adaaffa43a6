package normalize

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"fakebuster/internal/translation"
)

type fixedProvider struct {
	name string
	text string
	err  error
}

func (p *fixedProvider) Translate(_ context.Context, req translation.TranslateRequest) (*translation.TranslateResponse, error) {
	if p.err != nil {
		return nil, p.err
	}
	return &translation.TranslateResponse{
		Text:         p.text,
		SourceLang:   req.SourceLang,
		TargetLang:   req.TargetLang,
		ProviderName: p.name,
	}, nil
}

func (p *fixedProvider) Name() string {
	return p.name
}

func (p *fixedProvider) SupportedLanguages() []string {
	return []string{"en", "es", "hi"}
}

func newTestNormalizer(t *testing.T, provider translation.Provider, opts Options) *Normalizer {
	t.Helper()

	registry := translation.NewRegistry(provider.Name())
	if err := registry.Register(provider); err != nil {
		t.Fatalf("register provider: %v", err)
	}
	return New(registry, zerolog.Nop(), opts)
}

func TestNormalizeKeepsEnglishText(t *testing.T) {
	t.Parallel()

	provider := &fixedProvider{name: "stub", err: fmt.Errorf("must not be called")}
	normalizer := newTestNormalizer(t, provider, Options{Provider: "stub"})

	query := normalizer.Normalize(context.Background(), "Severe flooding hits the coastal city after record rainfall")
	if query.DetectedLanguage != "en" {
		t.Fatalf("unexpected detected language: %q", query.DetectedLanguage)
	}
	if query.Text != "Severe flooding hits the coastal city after record rainfall" {
		t.Fatalf("unexpected normalized text: %q", query.Text)
	}
}

func TestNormalizeTranslatesNonEnglishText(t *testing.T) {
	t.Parallel()

	provider := &fixedProvider{name: "stub", text: "Severe flooding hits the coastal city"}
	normalizer := newTestNormalizer(t, provider, Options{Provider: "stub"})

	query := normalizer.Normalize(context.Background(), "Las inundaciones severas golpean la ciudad costera después de lluvias récord")
	if query.DetectedLanguage != "es" {
		t.Fatalf("unexpected detected language: %q", query.DetectedLanguage)
	}
	if query.Text != "Severe flooding hits the coastal city" {
		t.Fatalf("unexpected normalized text: %q", query.Text)
	}
}

func TestNormalizeFallsBackWhenTranslationFails(t *testing.T) {
	t.Parallel()

	original := "Las inundaciones severas golpean la ciudad costera después de lluvias récord"
	provider := &fixedProvider{name: "stub", err: fmt.Errorf("endpoint down")}
	normalizer := newTestNormalizer(t, provider, Options{Provider: "stub"})

	query := normalizer.Normalize(context.Background(), original)
	if query.DetectedLanguage != "es" {
		t.Fatalf("expected detected language to survive fallback, got %q", query.DetectedLanguage)
	}
	if query.Text != original {
		t.Fatalf("expected original text on translation failure, got %q", query.Text)
	}
}

func TestNormalizeLabelsUndetectableInputUnknown(t *testing.T) {
	t.Parallel()

	provider := &fixedProvider{name: "stub", err: fmt.Errorf("must not be called")}
	normalizer := newTestNormalizer(t, provider, Options{Provider: "stub"})

	query := normalizer.Normalize(context.Background(), "12345 !!")
	if query.DetectedLanguage != LanguageUnknown {
		t.Fatalf("unexpected detected language: %q", query.DetectedLanguage)
	}
	if query.Text != "12345 !!" {
		t.Fatalf("unexpected normalized text: %q", query.Text)
	}
}

func TestNormalizeTruncatesLongText(t *testing.T) {
	t.Parallel()

	provider := &fixedProvider{name: "stub", err: fmt.Errorf("must not be called")}
	normalizer := newTestNormalizer(t, provider, Options{Provider: "stub", MaxChars: 24})

	long := strings.Repeat("the quick brown fox and the lazy dog ", 10)
	query := normalizer.Normalize(context.Background(), long)
	if got := len([]rune(query.Text)); got != 24 {
		t.Fatalf("unexpected truncated length: %d", got)
	}
}
