package translation

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestParseGoogleSegments(t *testing.T) {
	t.Parallel()

	body := []byte(`[[["Hello world","नमस्ते दुनिया",null,null,10],[" again","फिर",null,null,10]],null,"hi"]`)
	got, err := parseGoogleSegments(body)
	if err != nil {
		t.Fatalf("parse segments: %v", err)
	}
	if got != "Hello world again" {
		t.Fatalf("unexpected translated text: %q", got)
	}
}

func TestParseGoogleSegmentsRejectsMalformedPayload(t *testing.T) {
	t.Parallel()

	if _, err := parseGoogleSegments([]byte(`{"not":"an array"}`)); err == nil {
		t.Fatal("expected error for malformed payload")
	}
	if _, err := parseGoogleSegments([]byte(`[]`)); err == nil {
		t.Fatal("expected error for empty payload")
	}
}

func TestGoogleProviderTranslate(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("tl"); got != "en" {
			t.Errorf("unexpected target language: %q", got)
		}
		if got := r.URL.Query().Get("q"); got != "नमस्ते दुनिया" {
			t.Errorf("unexpected query text: %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[[["Hello world","नमस्ते दुनिया",null,null,10]],null,"hi"]`))
	}))
	defer server.Close()

	provider := &GoogleProvider{
		endpointURL: server.URL,
		client:      &http.Client{Timeout: 5 * time.Second},
	}

	resp, err := provider.Translate(context.Background(), TranslateRequest{
		Text:       "नमस्ते दुनिया",
		SourceLang: "hi",
		TargetLang: "en",
	})
	if err != nil {
		t.Fatalf("translate: %v", err)
	}
	if resp.Text != "Hello world" {
		t.Fatalf("unexpected translation: %q", resp.Text)
	}
	if resp.ProviderName != "google" {
		t.Fatalf("unexpected provider name: %q", resp.ProviderName)
	}
}

func TestGoogleProviderPropagatesEndpointFailure(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer server.Close()

	provider := &GoogleProvider{
		endpointURL: server.URL,
		client:      &http.Client{Timeout: 5 * time.Second},
	}

	if _, err := provider.Translate(context.Background(), TranslateRequest{Text: "hola", TargetLang: "en"}); err == nil {
		t.Fatal("expected error for non-2xx response")
	}
}
