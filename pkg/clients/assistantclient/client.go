package assistantclient

import (
	"context"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// DefaultModel is used when no model is configured
const DefaultModel = "gemini-2.0-flash"

// Client wraps the Gemini API for proposing recurring-event edits from
// natural-language instructions
type Client struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

// NewClient creates a new assistant client with the given API key and model
func NewClient(ctx context.Context, apiKey, model string) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("assistant api key is required")
	}
	if model == "" {
		model = DefaultModel
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	generativeModel := client.GenerativeModel(model)
	generativeModel.ResponseMIMEType = "application/json"

	return &Client{
		client: client,
		model:  generativeModel,
	}, nil
}

// Close releases the underlying API client
func (c *Client) Close() error {
	return c.client.Close()
}
