package source

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

const feedFixture = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>Example Wire</title>
    <link>https://example.com</link>
    <item>
      <title>Coastal city declares flood emergency</title>
      <link>https://example.com/emergency</link>
    </item>
    <item>
      <title></title>
      <description>Relief camps opened across the district</description>
      <link>https://example.com/relief</link>
    </item>
    <item>
      <title>Third story beyond the limit</title>
      <link>https://example.com/third</link>
    </item>
  </channel>
</rss>`

func TestFeedFetchCandidates(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		_, _ = w.Write([]byte(feedFixture))
	}))
	defer server.Close()

	src := NewFeedSource(server.URL, 2)
	candidates, err := src.FetchCandidates(context.Background(), "ignored")
	if err != nil {
		t.Fatalf("fetch candidates: %v", err)
	}

	if len(candidates) != 2 {
		t.Fatalf("unexpected candidate count: %d", len(candidates))
	}
	if candidates[0].Source != "Example Wire" {
		t.Fatalf("unexpected feed label: %q", candidates[0].Source)
	}
	if candidates[0].Headline != "Coastal city declares flood emergency" {
		t.Fatalf("unexpected headline: %q", candidates[0].Headline)
	}
	if candidates[1].Headline != "Relief camps opened across the district" {
		t.Fatalf("expected description fallback, got %q", candidates[1].Headline)
	}
}

func TestFeedFetchCandidatesRequiresURL(t *testing.T) {
	t.Parallel()

	src := NewFeedSource("", 0)
	if _, err := src.FetchCandidates(context.Background(), ""); err == nil {
		t.Fatal("expected error when no feed URL is configured")
	}
}
