package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const defaultGeminiModel = "gemini-1.5-flash"

// GeminiClient calls the Google Generative AI API. One instance is shared by
// all requests; Close releases the underlying connection.
type GeminiClient struct {
	client  *genai.Client
	model   string
	timeout time.Duration
}

// NewGeminiClient builds a client authenticated with apiKey.
func NewGeminiClient(ctx context.Context, apiKey, model string, timeout time.Duration) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("api key required")
	}
	if model == "" {
		model = defaultGeminiModel
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("creating Google AI client: %w", err)
	}
	return &GeminiClient{client: client, model: model, timeout: timeout}, nil
}

func (c *GeminiClient) Generate(ctx context.Context, prompt string, image *InlineData) (string, error) {
	if c == nil || c.client == nil {
		return "", fmt.Errorf("nil gemini client")
	}
	parts := []genai.Part{genai.Text(prompt)}
	if image != nil {
		data, err := image.Bytes()
		if err != nil {
			return "", err
		}
		parts = append(parts, genai.Blob{MIMEType: image.MIMEType, Data: data})
	}

	reqCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	resp, err := c.client.GenerativeModel(c.model).GenerateContent(reqCtx, parts...)
	if err != nil {
		return "", fmt.Errorf("generating content: %w", err)
	}
	return candidateText(resp.Candidates)
}

// Close releases the client.
func (c *GeminiClient) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}

// candidateText joins the text parts of the first candidate.
func candidateText(candidates []*genai.Candidate) (string, error) {
	if len(candidates) == 0 {
		return "", fmt.Errorf("no response candidates: %w", ErrNoContent)
	}
	candidate := candidates[0]
	if candidate == nil || candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", ErrNoContent
	}
	var text strings.Builder
	for _, part := range candidate.Content.Parts {
		if t, ok := part.(genai.Text); ok {
			text.WriteString(string(t))
		}
	}
	return text.String(), nil
}
