package scanning

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const defaultOllamaURL = "http://localhost:11434"

// Ollama implements the Scanner interface using Ollama
type Ollama struct {
	baseURL string
	model   string
	client  *http.Client
}

// NewOllama creates a new Ollama Scanner instance
// Recommended models for receipt transcription:
//   - qwen2.5vl (strong OCR, handles Turkish glyphs)
//   - llava:1.6 (general purpose vision model)
//   - minicpm-v (smaller, faster)
func NewOllama(baseURL string, modelName string) (*Ollama, error) {
	if baseURL == "" {
		baseURL = defaultOllamaURL
	}
	if modelName == "" {
		modelName = "qwen2.5vl"
	}

	return &Ollama{
		baseURL: strings.TrimRight(baseURL, "/"),
		model:   modelName,
		client: &http.Client{
			Timeout: 120 * time.Second, // vision models are slow on CPU
		},
	}, nil
}

// ollamaChatRequest represents the request body for Ollama's chat API
type ollamaChatRequest struct {
	Model    string          `json:"model"`
	Messages []ollamaMessage `json:"messages"`
	Stream   bool            `json:"stream"`
}

type ollamaMessage struct {
	Role    string   `json:"role"`
	Content string   `json:"content"`
	Images  []string `json:"images,omitempty"`
}

// ollamaChatResponse represents the response from Ollama's chat API
type ollamaChatResponse struct {
	Message ollamaMessage `json:"message"`
	Done    bool          `json:"done"`
}

// ScanText transcribes the text printed on a receipt
func (o *Ollama) ScanText(data []byte, contentType string) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)
	defer cancel()

	pngData, err := prepareImageData(data, contentType)
	if err != nil {
		return "", err
	}

	reqBody := ollamaChatRequest{
		Model:  o.model,
		Stream: false,
		Messages: []ollamaMessage{
			{
				Role:    "system",
				Content: "You are an OCR engine. You output the exact text printed in the image and nothing else.",
			},
			{
				Role:    "user",
				Content: transcribePrompt,
				Images:  []string{base64.StdEncoding.EncodeToString(pngData)},
			},
		},
	}

	var chatResp ollamaChatResponse
	if err := postJSON(ctx, o.client, o.baseURL+"/api/chat", reqBody, &chatResp); err != nil {
		return "", err
	}

	return cleanTranscript(chatResp.Message.Content)
}

// Close closes the Ollama client (no-op for HTTP client)
func (o *Ollama) Close() error {
	return nil
}

// postJSON sends body to url and decodes a 200 response into out
func postJSON(ctx context.Context, client *http.Client, url string, body, out any) error {
	jsonData, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("calling ollama API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("ollama API error (status %d): %s", resp.StatusCode, string(respBody))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}
