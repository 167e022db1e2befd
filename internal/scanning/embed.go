package scanning

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"github.com/sashabaranov/go-openai"
	"google.golang.org/api/option"
)

const embedTimeout = 15 * time.Second

// GeminiEmbedder embeds text with a Gemini embedding model
type GeminiEmbedder struct {
	client *genai.Client
	model  *genai.EmbeddingModel
}

// NewGeminiEmbedder creates a new GeminiEmbedder
func NewGeminiEmbedder(apiKey string, modelName string) (*GeminiEmbedder, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key is required")
	}
	if modelName == "" {
		modelName = "text-embedding-004"
	}

	client, err := genai.NewClient(context.Background(), option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}

	return &GeminiEmbedder{
		client: client,
		model:  client.EmbeddingModel(modelName),
	}, nil
}

// Embed returns the embedding vector for text
func (g *GeminiEmbedder) Embed(text string) ([]float32, error) {
	ctx, cancel := context.WithTimeout(context.Background(), embedTimeout)
	defer cancel()

	res, err := g.model.EmbedContent(ctx, genai.Text(text))
	if err != nil {
		return nil, fmt.Errorf("embedding content: %w", err)
	}
	if res.Embedding == nil || len(res.Embedding.Values) == 0 {
		return nil, fmt.Errorf("gemini returned an empty embedding")
	}
	return res.Embedding.Values, nil
}

// Close closes the Gemini client
func (g *GeminiEmbedder) Close() error {
	return g.client.Close()
}

// OllamaEmbedder embeds text with a local Ollama embedding model
type OllamaEmbedder struct {
	baseURL string
	model   string
	client  *http.Client
}

// NewOllamaEmbedder creates a new OllamaEmbedder
func NewOllamaEmbedder(baseURL string, modelName string) *OllamaEmbedder {
	if baseURL == "" {
		baseURL = defaultOllamaURL
	}
	if modelName == "" {
		modelName = "nomic-embed-text"
	}

	return &OllamaEmbedder{
		baseURL: strings.TrimRight(baseURL, "/"),
		model:   modelName,
		client:  &http.Client{Timeout: embedTimeout},
	}
}

type ollamaEmbedRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
}

type ollamaEmbedResponse struct {
	Embedding []float64 `json:"embedding"`
}

// Embed returns the embedding vector for text
func (o *OllamaEmbedder) Embed(text string) ([]float32, error) {
	ctx, cancel := context.WithTimeout(context.Background(), embedTimeout)
	defer cancel()

	var resp ollamaEmbedResponse
	err := postJSON(ctx, o.client, o.baseURL+"/api/embeddings", ollamaEmbedRequest{Model: o.model, Prompt: text}, &resp)
	if err != nil {
		return nil, err
	}
	if len(resp.Embedding) == 0 {
		return nil, fmt.Errorf("ollama returned an empty embedding")
	}

	vec := make([]float32, len(resp.Embedding))
	for i, v := range resp.Embedding {
		vec[i] = float32(v)
	}
	return vec, nil
}

// Close is a no-op for the HTTP client
func (o *OllamaEmbedder) Close() error {
	return nil
}

// OpenAIEmbedder embeds text with the OpenAI embeddings API or any server
// compatible with it
type OpenAIEmbedder struct {
	client *openai.Client
	model  openai.EmbeddingModel
}

// NewOpenAIEmbedder creates a new OpenAIEmbedder. baseURL may be empty to
// use the public API.
func NewOpenAIEmbedder(apiKey, baseURL, modelName string) (*OpenAIEmbedder, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("openai api key is required")
	}
	if modelName == "" {
		modelName = "text-embedding-3-small"
	}

	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = strings.TrimRight(baseURL, "/")
	}

	return &OpenAIEmbedder{
		client: openai.NewClientWithConfig(cfg),
		model:  openai.EmbeddingModel(modelName),
	}, nil
}

// Embed returns the embedding vector for text
func (o *OpenAIEmbedder) Embed(text string) ([]float32, error) {
	ctx, cancel := context.WithTimeout(context.Background(), embedTimeout)
	defer cancel()

	resp, err := o.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input: []string{text},
		Model: o.model,
	})
	if err != nil {
		return nil, fmt.Errorf("creating embedding: %w", err)
	}
	if len(resp.Data) == 0 || len(resp.Data[0].Embedding) == 0 {
		return nil, fmt.Errorf("openai returned an empty embedding")
	}
	return resp.Data[0].Embedding, nil
}

// Close is a no-op for the HTTP client
func (o *OpenAIEmbedder) Close() error {
	return nil
}
