package source

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	// DefaultHeadlinesBaseURL is the NewsAPI top-headlines endpoint.
	DefaultHeadlinesBaseURL = "https://newsapi.org/v2/top-headlines"

	// HeadlinesSourceName is the fallback label when an article carries no
	// publisher name.
	HeadlinesSourceName = "NewsAPI"

	DefaultHeadlinesCountry = "in"
)

// HeadlinesSource fetches current top stories for a fixed region. It takes no
// query; the same headlines are scored against every submitted article.
type HeadlinesSource struct {
	apiKey  string
	country string
	baseURL string
	client  *http.Client
}

// HeadlinesOptions overrides endpoint and transport defaults, mainly for tests.
type HeadlinesOptions struct {
	Country    string
	BaseURL    string
	Timeout    time.Duration
	HTTPClient *http.Client
}

type headlinesResponse struct {
	Articles []headlineArticle `json:"articles"`
}

type headlineArticle struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	Source      struct {
		Name string `json:"name"`
	} `json:"source"`
}

func NewHeadlinesSource(apiKey string, opts HeadlinesOptions) *HeadlinesSource {
	country := strings.ToLower(strings.TrimSpace(opts.Country))
	if country == "" {
		country = DefaultHeadlinesCountry
	}
	baseURL := strings.TrimSpace(opts.BaseURL)
	if baseURL == "" {
		baseURL = DefaultHeadlinesBaseURL
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultFetchTimeout
	}
	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: timeout}
	}
	return &HeadlinesSource{
		apiKey:  strings.TrimSpace(apiKey),
		country: country,
		baseURL: baseURL,
		client:  client,
	}
}

func (s *HeadlinesSource) Name() string {
	return HeadlinesSourceName
}

// FetchCandidates ignores the query and returns the region's current top
// headlines. Articles without a usable title are dropped.
func (s *HeadlinesSource) FetchCandidates(ctx context.Context, _ string) ([]Candidate, error) {
	if s == nil {
		return nil, fmt.Errorf("headlines source is nil")
	}

	params := url.Values{}
	params.Set("country", s.country)
	params.Set("apiKey", s.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build top-headlines request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("top-headlines request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read top-headlines response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("top-headlines status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var parsed headlinesResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("decode top-headlines response: %w", err)
	}

	candidates := make([]Candidate, 0, len(parsed.Articles))
	for _, article := range parsed.Articles {
		headline := strings.TrimSpace(article.Title)
		if headline == "" {
			headline = strings.TrimSpace(article.Description)
		}
		if headline == "" {
			continue
		}
		sourceName := strings.TrimSpace(article.Source.Name)
		if sourceName == "" {
			sourceName = HeadlinesSourceName
		}
		candidates = append(candidates, Candidate{
			Source:   sourceName,
			Headline: headline,
			URL:      strings.TrimSpace(article.URL),
		})
	}
	return candidates, nil
}
