package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

const (
	DefaultURL = "http://localhost:11434/api"
)

// EmbeddingRequest represents the request structure for a single embedding
type EmbeddingRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
}

// EmbeddingResponse represents the response structure from a single embedding
type EmbeddingResponse struct {
	Embedding []float64 `json:"embedding"`
}

// BatchEmbeddingRequest represents the request structure for batch embeddings
type BatchEmbeddingRequest struct {
	Model string   `json:"model"`
	Input []string `json:"input"`
}

// BatchEmbeddingResponse represents the response structure from batch embeddings
type BatchEmbeddingResponse struct {
	Embeddings [][]float64 `json:"embeddings"`
}

// GenerateRequest represents the request structure for model generation
type GenerateRequest struct {
	Model   string                 `json:"model"`
	System  string                 `json:"system"`
	Prompt  string                 `json:"prompt"`
	Stream  bool                   `json:"stream"`
	Options map[string]interface{} `json:"options,omitempty"`
}

// GenerateResponse represents the response structure from generation
type GenerateResponse struct {
	Model    string `json:"model"`
	Response string `json:"response"`
	Done     bool   `json:"done"`
}

// Client represents an Ollama API client
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient creates a new Ollama API client
func NewClient(baseURL string, c *http.Client) *Client {
	if baseURL == "" {
		baseURL = DefaultURL
	}

	return &Client{
		httpClient: c,
		baseURL:    baseURL,
	}
}

// GetEmbedding generates an embedding vector for the given text using the specified model
func (c *Client) GetEmbedding(ctx context.Context, model string, text string) ([]float32, error) {
	reqBody := EmbeddingRequest{
		Model:  model,
		Prompt: text,
	}

	var result EmbeddingResponse
	if err := c.post(ctx, "/embeddings", reqBody, &result); err != nil {
		return nil, err
	}

	return toFloat32(result.Embedding), nil
}

// GetEmbeddings generates embedding vectors for a batch of texts. The
// returned vectors are in input order.
func (c *Client) GetEmbeddings(ctx context.Context, model string, texts []string) ([][]float32, error) {
	reqBody := BatchEmbeddingRequest{
		Model: model,
		Input: texts,
	}

	var result BatchEmbeddingResponse
	if err := c.post(ctx, "/embed", reqBody, &result); err != nil {
		return nil, err
	}

	if len(result.Embeddings) != len(texts) {
		return nil, fmt.Errorf("expected %d embeddings, got %d", len(texts), len(result.Embeddings))
	}

	embeddings := make([][]float32, len(result.Embeddings))
	for i, embedding := range result.Embeddings {
		embeddings[i] = toFloat32(embedding)
	}

	return embeddings, nil
}

// Generate performs model generation with the given system instruction and prompt
func (c *Client) Generate(ctx context.Context, model, system, prompt string, options map[string]interface{}) (string, error) {
	reqBody := GenerateRequest{
		Model:   model,
		System:  system,
		Prompt:  prompt,
		Stream:  false,
		Options: options,
	}

	var result GenerateResponse
	if err := c.post(ctx, "/generate", reqBody, &result); err != nil {
		return "", err
	}

	return strings.TrimSpace(result.Response), nil
}

// Ping reports whether the Ollama server is reachable.
func (c *Client) Ping(ctx context.Context) bool {
	url := strings.TrimSuffix(c.baseURL, "/api")
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return false
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()

	return resp.StatusCode == http.StatusOK
}

func (c *Client) post(ctx context.Context, path string, reqBody, result interface{}) error {
	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return fmt.Errorf("error marshaling request: %w", err)
	}

	url := c.baseURL + path
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("error creating request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("error making request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("error decoding response: %w", err)
	}

	return nil
}

func toFloat32(values []float64) []float32 {
	result := make([]float32, len(values))
	for i, v := range values {
		result[i] = float32(v)
	}
	return result
}
