package source

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	// DefaultArchiveBaseURL is the NYT Article Search endpoint.
	DefaultArchiveBaseURL = "https://api.nytimes.com/svc/search/v2/articlesearch.json"

	// ArchiveSourceName labels matches from the deep-archive search.
	ArchiveSourceName = "NYT"

	DefaultFetchTimeout = 10 * time.Second
)

// ArchiveSource searches the NYT article archive for a query.
type ArchiveSource struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// ArchiveOptions overrides endpoint and transport defaults, mainly for tests.
type ArchiveOptions struct {
	BaseURL    string
	Timeout    time.Duration
	HTTPClient *http.Client
}

// Document is one raw archive search result for the related-news path.
type Document struct {
	Headline string  `json:"headline"`
	Snippet  string  `json:"snippet,omitempty"`
	URL      string  `json:"url,omitempty"`
	PubDate  *string `json:"pub_date,omitempty"`
}

type archiveSearchResponse struct {
	Response struct {
		Docs []archiveDoc `json:"docs"`
	} `json:"response"`
}

type archiveDoc struct {
	Headline struct {
		Main string `json:"main"`
	} `json:"headline"`
	Abstract string  `json:"abstract"`
	Snippet  string  `json:"snippet"`
	WebURL   string  `json:"web_url"`
	PubDate  *string `json:"pub_date"`
}

func NewArchiveSource(apiKey string, opts ArchiveOptions) *ArchiveSource {
	baseURL := strings.TrimSpace(opts.BaseURL)
	if baseURL == "" {
		baseURL = DefaultArchiveBaseURL
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultFetchTimeout
	}
	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: timeout}
	}
	return &ArchiveSource{
		apiKey:  strings.TrimSpace(apiKey),
		baseURL: baseURL,
		client:  client,
	}
}

func (s *ArchiveSource) Name() string {
	return ArchiveSourceName
}

// FetchCandidates returns archive headlines for the query. Documents without a
// usable headline are dropped.
func (s *ArchiveSource) FetchCandidates(ctx context.Context, query string) ([]Candidate, error) {
	docs, err := s.search(ctx, query, 0)
	if err != nil {
		return nil, err
	}

	candidates := make([]Candidate, 0, len(docs))
	for _, doc := range docs {
		headline := strings.TrimSpace(doc.Headline.Main)
		if headline == "" {
			headline = strings.TrimSpace(doc.Abstract)
		}
		if headline == "" {
			continue
		}
		candidates = append(candidates, Candidate{
			Source:   ArchiveSourceName,
			Headline: headline,
			URL:      strings.TrimSpace(doc.WebURL),
		})
	}
	return candidates, nil
}

// SearchDocuments returns raw archive results for the related-news lookup.
func (s *ArchiveSource) SearchDocuments(ctx context.Context, query string, limit int) ([]Document, error) {
	docs, err := s.search(ctx, query, 0)
	if err != nil {
		return nil, err
	}

	if limit > 0 && len(docs) > limit {
		docs = docs[:limit]
	}
	results := make([]Document, 0, len(docs))
	for _, doc := range docs {
		results = append(results, Document{
			Headline: strings.TrimSpace(doc.Headline.Main),
			Snippet:  strings.TrimSpace(doc.Snippet),
			URL:      strings.TrimSpace(doc.WebURL),
			PubDate:  doc.PubDate,
		})
	}
	return results, nil
}

func (s *ArchiveSource) search(ctx context.Context, query string, page int) ([]archiveDoc, error) {
	if s == nil {
		return nil, fmt.Errorf("archive source is nil")
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("api-key", s.apiKey)
	params.Set("sort", "newest")
	params.Set("page", strconv.Itoa(page))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build archive search request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("archive search request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read archive search response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("archive search status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var parsed archiveSearchResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("decode archive search response: %w", err)
	}
	return parsed.Response.Docs, nil
}
