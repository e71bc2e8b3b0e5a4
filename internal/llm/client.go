// Package llm provides the language-model client used for resume extraction.
package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// ExtractionModel is the fixed, cost-efficient model used for structured
// resume extraction. It is not caller-configurable.
const ExtractionModel = "gemini-2.5-flash-lite"

// Client is an abstraction over the LLM provider.
type Client interface {
	// GenerateJSON sends one system instruction and one user prompt and
	// returns the model's JSON text completion. The call is synchronous
	// and single-attempt.
	GenerateJSON(ctx context.Context, system, prompt string) (string, error)
	// Close releases any resources held by the client
	Close() error
}

// GeminiClient implements Client for Google Gemini.
type GeminiClient struct {
	client *genai.Client
	model  string
}

// NewGeminiClient creates a new Gemini client.
func NewGeminiClient(ctx context.Context, apiKey string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiClient{
		client: client,
		model:  ExtractionModel,
	}, nil
}

// GenerateJSON generates a JSON completion for the prompt.
func (c *GeminiClient) GenerateJSON(ctx context.Context, system, prompt string) (string, error) {
	model := c.client.GenerativeModel(c.model)
	model.SetTemperature(0) // Deterministic output for parsing
	model.ResponseMIMEType = "application/json"
	if system != "" {
		model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(system)}}
	}

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	text, err := extractTextFromResponse(resp)
	if err != nil {
		return "", err
	}

	return CleanJSONBlock(text), nil
}

// Close releases resources held by the client.
func (c *GeminiClient) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

// extractTextFromResponse extracts text from a Gemini API response.
func extractTextFromResponse(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("no candidates in response")
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", fmt.Errorf("no content in response")
	}

	var parts []string
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			parts = append(parts, string(text))
		}
	}

	if len(parts) == 0 {
		return "", fmt.Errorf("no text parts in response")
	}

	return strings.Join(parts, ""), nil
}
