package embedding

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"
)

const (
	// DefaultEndpoint points to a local sentence-embedding service.
	DefaultEndpoint = "http://127.0.0.1:8844/embed"
	// DefaultModelName matches the model the service is expected to serve.
	DefaultModelName = "all-MiniLM-L6-v2"

	DefaultMaxLength      = 512
	DefaultRequestTimeout = 45 * time.Second
)

// LocalProvider calls a local embedding HTTP endpoint. It speaks the plain
// {"texts": [...]} protocol and falls back to the OpenAI-compatible
// {"input": [...]} shape when the endpoint path ends in /v1/embeddings.
type LocalProvider struct {
	endpoint  string
	model     string
	maxLength int
	client    *http.Client
}

// LocalOptions overrides transport defaults, mainly for tests.
type LocalOptions struct {
	MaxLength      int
	RequestTimeout time.Duration
	HTTPClient     *http.Client
}

type embedRequest struct {
	Texts     []string `json:"texts,omitempty"`
	Input     []string `json:"input,omitempty"`
	Model     string   `json:"model,omitempty"`
	MaxLength int      `json:"max_length,omitempty"`
}

type embedResponse struct {
	Embeddings [][]float64 `json:"embeddings"`
	Data       []struct {
		Index     int       `json:"index"`
		Embedding []float64 `json:"embedding"`
	} `json:"data"`
}

func NewLocalProvider(endpoint, model string, opts LocalOptions) *LocalProvider {
	maxLength := opts.MaxLength
	if maxLength <= 0 {
		maxLength = DefaultMaxLength
	}
	timeout := opts.RequestTimeout
	if timeout <= 0 {
		timeout = DefaultRequestTimeout
	}
	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: timeout}
	}

	trimmedModel := strings.TrimSpace(model)
	if trimmedModel == "" {
		trimmedModel = DefaultModelName
	}

	return &LocalProvider{
		endpoint:  normalizeEmbeddingEndpoint(endpoint),
		model:     trimmedModel,
		maxLength: maxLength,
		client:    client,
	}
}

func (p *LocalProvider) ModelName() string {
	if p == nil {
		return ""
	}
	return p.model
}

func (p *LocalProvider) Embed(ctx context.Context, texts []string) ([][]float64, error) {
	if p == nil {
		return nil, fmt.Errorf("local embedding provider is nil")
	}
	if len(texts) == 0 {
		return [][]float64{}, nil
	}

	payload := embedRequest{
		Texts:     texts,
		MaxLength: p.maxLength,
	}
	if isOpenAIEndpoint(p.endpoint) {
		payload = embedRequest{
			Input: texts,
			Model: p.model,
		}
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal embedding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build embedding request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("embedding request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read embedding response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("embedding service status %d: %s", resp.StatusCode, strings.TrimSpace(string(respBody)))
	}

	var parsed embedResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, fmt.Errorf("decode embedding response: %w", err)
	}

	vectors := parsed.Embeddings
	if len(vectors) == 0 && len(parsed.Data) > 0 {
		sort.Slice(parsed.Data, func(i, j int) bool {
			return parsed.Data[i].Index < parsed.Data[j].Index
		})
		vectors = make([][]float64, 0, len(parsed.Data))
		for _, row := range parsed.Data {
			vectors = append(vectors, row.Embedding)
		}
	}
	if len(vectors) != len(texts) {
		return nil, fmt.Errorf("embedding response count mismatch: requested=%d returned=%d", len(texts), len(vectors))
	}

	return vectors, nil
}

func isOpenAIEndpoint(endpoint string) bool {
	parsed, err := url.Parse(endpoint)
	if err != nil {
		return false
	}
	return strings.HasSuffix(parsed.Path, "/v1/embeddings")
}

func normalizeEmbeddingEndpoint(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return DefaultEndpoint
	}
	parsed, err := url.Parse(trimmed)
	if err != nil {
		return trimmed
	}
	if parsed.Path == "" || parsed.Path == "/" {
		parsed.Path = "/embed"
	}
	return parsed.String()
}
