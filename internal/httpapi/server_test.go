package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"fakebuster/internal/engine"
	"fakebuster/internal/normalize"
	"fakebuster/internal/source"
	"fakebuster/internal/translation"
	"fakebuster/internal/verdict"
)

type stubSource struct {
	name       string
	candidates []source.Candidate
}

func (s *stubSource) Name() string {
	return s.name
}

func (s *stubSource) FetchCandidates(_ context.Context, _ string) ([]source.Candidate, error) {
	return s.candidates, nil
}

type echoTranslator struct{}

func (echoTranslator) Translate(_ context.Context, req translation.TranslateRequest) (*translation.TranslateResponse, error) {
	return &translation.TranslateResponse{Text: req.Text, ProviderName: "stub"}, nil
}

func (echoTranslator) Name() string {
	return "stub"
}

func (echoTranslator) SupportedLanguages() []string {
	return []string{"en"}
}

func newTestServer(t *testing.T) *Server {
	t.Helper()

	registry := translation.NewRegistry("stub")
	if err := registry.Register(echoTranslator{}); err != nil {
		t.Fatalf("register provider: %v", err)
	}
	normalizer := normalize.New(registry, zerolog.Nop(), normalize.Options{Provider: "stub"})

	archiveSrc := &stubSource{name: "NYT", candidates: []source.Candidate{
		{Source: "NYT", Headline: "Coastal city hit by severe flooding", URL: "https://example.com/flood"},
	}}
	otherSrc := &stubSource{name: "NewsAPI", candidates: []source.Candidate{
		{Source: "The Hindu", Headline: "Severe coastal flooding reported overnight"},
	}}

	eng, err := engine.New(engine.Options{
		Normalizer: normalizer,
		Sources: []engine.SourceSpec{
			{Source: archiveSrc, Archive: true},
			{Source: otherSrc},
		},
		Strategies:      []verdict.Strategy{verdict.NewSubstringStrategy()},
		DefaultStrategy: verdict.StrategySubstring,
		Logger:          zerolog.Nop(),
	})
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	return NewServer(eng, zerolog.Nop(), Options{})
}

func TestHandleCheckReturnsVerdict(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)
	e := srv.buildEcho()

	body := `{"article": "coastal flooding", "top_k": 5}`
	req := httptest.NewRequest(http.MethodPost, "/api/check", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d body=%s", rec.Code, rec.Body.String())
	}

	var parsed struct {
		Status string               `json:"status"`
		Data   engine.CheckResponse `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &parsed); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if parsed.Status != "success" {
		t.Fatalf("unexpected jsend status: %q", parsed.Status)
	}
	if parsed.Data.Verdict != verdict.VerdictReal {
		t.Fatalf("unexpected verdict: %s", parsed.Data.Verdict)
	}
	if len(parsed.Data.Matches) == 0 {
		t.Fatal("expected matches in response")
	}
}

func TestHandleCheckRejectsEmptyBody(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)
	e := srv.buildEcho()

	req := httptest.NewRequest(http.MethodPost, "/api/check", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("unexpected status: %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "fail") {
		t.Fatalf("expected jsend fail envelope: %s", rec.Body.String())
	}
}

func TestHandleCheckRejectsWhitespaceArticle(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)
	e := srv.buildEcho()

	req := httptest.NewRequest(http.MethodPost, "/api/check", strings.NewReader(`{"article": "   "}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("unexpected status: %d", rec.Code)
	}
}

func TestHandleRelatedRequiresQuery(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)
	e := srv.buildEcho()

	req := httptest.NewRequest(http.MethodGet, "/api/related-news", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("unexpected status: %d", rec.Code)
	}
}

func TestHandleHealth(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)
	e := srv.buildEcho()

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "fakebuster") {
		t.Fatalf("expected service name in health payload: %s", rec.Body.String())
	}
}
