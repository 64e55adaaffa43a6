package embedding

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	cohere "github.com/cohere-ai/cohere-go/v2"
	cohereclient "github.com/cohere-ai/cohere-go/v2/client"
)

// DefaultCohereModel is a reasonable default for Cohere v3 embeddings.
const DefaultCohereModel = "embed-english-v3.0"

// CohereProvider generates embeddings through the Cohere V2 Embed API.
type CohereProvider struct {
	client *cohereclient.Client
	model  string
}

func NewCohereProvider(apiKey, model string) *CohereProvider {
	trimmedModel := strings.TrimSpace(model)
	if trimmedModel == "" || !strings.HasPrefix(trimmedModel, "embed-") {
		trimmedModel = DefaultCohereModel
	}

	httpClient := &http.Client{
		Timeout: 60 * time.Second,
	}
	client := cohereclient.NewClient(
		cohereclient.WithToken(strings.TrimSpace(apiKey)),
		cohereclient.WithHTTPClient(httpClient),
	)
	return &CohereProvider{client: client, model: trimmedModel}
}

func (p *CohereProvider) ModelName() string {
	if p == nil {
		return ""
	}
	return p.model
}

func (p *CohereProvider) Embed(ctx context.Context, texts []string) ([][]float64, error) {
	if p == nil || p.client == nil {
		return nil, fmt.Errorf("cohere embedding provider is nil")
	}
	if len(texts) == 0 {
		return [][]float64{}, nil
	}

	resp, err := p.client.V2.Embed(ctx, &cohere.V2EmbedRequest{
		Texts:          texts,
		Model:          p.model,
		InputType:      cohere.EmbedInputTypeSearchDocument,
		EmbeddingTypes: []cohere.EmbeddingType{cohere.EmbeddingTypeFloat},
	})
	if err != nil {
		return nil, fmt.Errorf("cohere embed: %w", err)
	}
	if resp == nil || resp.Embeddings == nil || resp.Embeddings.Float == nil {
		return nil, fmt.Errorf("cohere embed returned no float embeddings")
	}

	vectors := resp.Embeddings.Float
	if len(vectors) != len(texts) {
		return nil, fmt.Errorf("cohere embedding count mismatch: requested=%d returned=%d", len(texts), len(vectors))
	}
	return vectors, nil
}
