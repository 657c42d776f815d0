package agent

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// Embedder turns text into a vector
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float64, error)
}

// OllamaEmbedder calls the embeddings endpoint of an Ollama instance
type OllamaEmbedder struct {
	http  *resty.Client
	model string
}

func NewOllamaEmbedder(baseURL, model string) *OllamaEmbedder {
	if baseURL == "" {
		baseURL = "http://localhost:11434"
	}
	if model == "" {
		model = "nomic-embed-text"
	}
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(120 * time.Second).
		SetRetryCount(2).
		SetRetryWaitTime(500 * time.Millisecond).
		SetHeader("Content-Type", "application/json")

	return &OllamaEmbedder{http: client, model: model}
}

type embeddingRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
}

type embeddingResponse struct {
	Embedding []float64 `json:"embedding"`
}

var ErrEmptyEmbedding = errors.New("empty embedding returned")

func (e *OllamaEmbedder) Embed(ctx context.Context, text string) ([]float64, error) {
	var out embeddingResponse
	resp, err := e.http.R().
		SetContext(ctx).
		SetBody(embeddingRequest{Model: e.model, Prompt: text}).
		SetResult(&out).
		Post("/api/embeddings")
	if err != nil {
		return nil, fmt.Errorf("send embedding request: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("ollama API error (status %d): %s", resp.StatusCode(), resp.String())
	}
	if len(out.Embedding) == 0 {
		return nil, ErrEmptyEmbedding
	}
	return out.Embedding, nil
}
