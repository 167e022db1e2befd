package scanning

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// Gemini implements the Scanner interface using Google Gemini
type Gemini struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

// NewGemini creates a new Gemini Scanner instance
func NewGemini(apiKey string, modelName string) (*Gemini, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key is required")
	}
	if modelName == "" {
		modelName = "gemini-2.5-flash"
	}

	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}

	model := client.GenerativeModel(modelName)
	model.SetTemperature(0)

	return &Gemini{
		client: client,
		model:  model,
	}, nil
}

// ScanText transcribes the text printed on a receipt
func (g *Gemini) ScanText(data []byte, contentType string) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pngData, err := prepareImageData(data, contentType)
	if err != nil {
		return "", err
	}

	// genai.ImageData expects just the format suffix, not the full MIME type
	parts := []genai.Part{
		genai.ImageData("png", pngData),
		genai.Text(transcribePrompt),
	}

	resp, err := g.model.GenerateContent(ctx, parts...)
	if err != nil {
		return "", fmt.Errorf("generating content: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("gemini returned no candidates: %w", ErrNoTextFound)
	}

	var text strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if t, ok := part.(genai.Text); ok {
			text.WriteString(string(t))
		}
	}

	return cleanTranscript(text.String())
}

// Close closes the Gemini client
func (g *Gemini) Close() error {
	return g.client.Close()
}
