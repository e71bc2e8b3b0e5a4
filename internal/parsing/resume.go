// Package parsing turns uploaded resume files into structured data by
// composing text extraction, prompt construction, one model-service call,
// and schema validation.
package parsing

import (
	"context"
	"strings"

	"github.com/jonathan/job-board/internal/extract"
	"github.com/jonathan/job-board/internal/llm"
	"github.com/jonathan/job-board/internal/schema"
)

// Parser orchestrates resume extraction through the model service.
type Parser struct {
	client llm.Client
}

// NewParser creates a Parser backed by the Gemini client. An empty API key
// fails immediately with *CredentialError, before any file I/O.
func NewParser(ctx context.Context, apiKey string) (*Parser, error) {
	if apiKey == "" {
		return nil, &CredentialError{}
	}

	client, err := llm.NewGeminiClient(ctx, apiKey)
	if err != nil {
		return nil, &APICallError{Message: "failed to create LLM client", Cause: err}
	}

	return &Parser{client: client}, nil
}

// NewParserWithClient creates a Parser with an explicit client. Used by the
// lifecycle wiring and by tests.
func NewParserWithClient(client llm.Client) *Parser {
	return &Parser{client: client}
}

// Client exposes the underlying model client so other extraction flows can
// share one connection.
func (p *Parser) Client() llm.Client {
	return p.client
}

// Close releases the underlying client.
func (p *Parser) Close() error {
	if p.client != nil {
		return p.client.Close()
	}
	return nil
}

// ParseResume extracts text from the file at path, prompts the model for
// structured output in the given variant, and validates the response. The
// model call is synchronous and single-attempt; failures surface as the
// typed error of the stage that failed.
func (p *Parser) ParseResume(ctx context.Context, path, fileType string, variant schema.Variant) (*schema.ParsedResume, error) {
	resumeText, err := extract.Text(path, fileType)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(resumeText) == "" {
		return nil, &EmptyDocumentError{Path: path}
	}

	def := schema.Get(variant)
	prompt := BuildPrompt(def, resumeText)

	response, err := p.client.GenerateJSON(ctx, systemInstruction, prompt)
	if err != nil {
		return nil, &APICallError{Message: "failed to generate content from LLM", Cause: err}
	}

	parsed, err := def.Parse(response)
	if err != nil {
		return nil, err
	}

	return parsed, nil
}
